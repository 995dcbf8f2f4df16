package image

import (
	"context"

	"brandforge/internal/domain"
)

// GenerateRequest describes one image the loop needs.
type GenerateRequest struct {
	Prompt string
	// Reference is the previous attempt's image, passed on regeneration.
	Reference *domain.Image
	Width     int
	Height    int
	// Palette hints the brand colors to providers that can use them.
	Palette   []string
	RequestID string
}

// Generator is the contract implemented by all image providers.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (*domain.Image, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, req GenerateRequest) (*domain.Image, error)

func (f GeneratorFunc) Generate(ctx context.Context, req GenerateRequest) (*domain.Image, error) {
	return f(ctx, req)
}
