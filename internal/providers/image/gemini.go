package image

import (
	"context"
	"fmt"

	"brandforge/internal/domain"
	"brandforge/internal/providers/genai"
)

type GeminiGenerator struct {
	client *genai.Client
}

func NewGeminiGenerator(client *genai.Client) *GeminiGenerator {
	return &GeminiGenerator{client: client}
}

func (g *GeminiGenerator) Generate(ctx context.Context, req GenerateRequest) (*domain.Image, error) {
	imgReq := genai.ImageRequest{
		Prompt:    req.Prompt,
		Width:     req.Width,
		Height:    req.Height,
		Palette:   req.Palette,
		RequestID: req.RequestID,
	}
	if req.Reference != nil && len(req.Reference.Data) > 0 {
		imgReq.Reference = &genai.InlineImage{MIMEType: req.Reference.MIMEType, Data: req.Reference.Data}
	}
	asset, err := g.client.GenerateImage(ctx, imgReq)
	if err != nil {
		return nil, err
	}
	if asset == nil || len(asset.Data) == 0 {
		return nil, fmt.Errorf("gemini generator: %w", domain.ErrNoImage)
	}
	return &domain.Image{
		Data:     asset.Data,
		MIMEType: asset.Format,
		Width:    asset.Width,
		Height:   asset.Height,
	}, nil
}

var _ Generator = (*GeminiGenerator)(nil)
