package genai

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strconv"
	"strings"
)

const maxSyntheticSide = 1024

func (c *Client) syntheticImage(req ImageRequest) *ImageAsset {
	width, height := fitSynthetic(req.Width, req.Height)
	seed := deterministicSeed(req.RequestID, req.Prompt, c.imageModel)
	data := renderSyntheticImage(width, height, seed, req.Palette)

	c.logger.Debug().
		Str("request_id", req.RequestID).
		Str("model", c.imageModel).
		Int("width", width).
		Int("height", height).
		Msg("genai: generated synthetic image")

	return &ImageAsset{
		Data:   data,
		Format: "image/png",
		Width:  width,
		Height: height,
	}
}

// fitSynthetic keeps the requested aspect ratio while bounding the longest
// side.
func fitSynthetic(width, height int) (int, int) {
	if width <= 0 || height <= 0 {
		return maxSyntheticSide, maxSyntheticSide
	}
	longest := maxInt(width, height)
	if longest <= maxSyntheticSide {
		return width, height
	}
	w := width * maxSyntheticSide / longest
	h := height * maxSyntheticSide / longest
	return maxInt(w, 1), maxInt(h, 1)
}

func renderSyntheticImage(width, height int, seed string, palette []string) []byte {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	base := paletteColor(palette, 0, seed)
	accent := paletteColor(palette, 1, seed)
	diagonal := paletteColor(palette, 2, seed)
	draw.Draw(img, img.Bounds(), &image.Uniform{base}, image.Point{}, draw.Src)

	stripeHeight := maxInt(16, height/12)
	for y := 0; y < height; y += stripeHeight * 2 {
		stripe := image.Rect(0, y, width, minInt(height, y+stripeHeight))
		draw.Draw(img, stripe, &image.Uniform{accent}, image.Point{}, draw.Over)
	}

	for i := 0; i < maxInt(width, height); i += maxInt(16, width/32) {
		for y := 0; y < height; y++ {
			xx := i + y
			if xx >= width {
				break
			}
			img.Set(xx, y, diagonal)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil
	}
	return buf.Bytes()
}

func paletteColor(palette []string, idx int, seed string) color.RGBA {
	if idx < len(palette) {
		if c, ok := parseHexColor(palette[idx]); ok {
			return c
		}
	}
	return colorFromSeed(seed, idx)
}

func parseHexColor(value string) (color.RGBA, bool) {
	v := strings.TrimPrefix(strings.TrimSpace(value), "#")
	if len(v) != 6 {
		return color.RGBA{}, false
	}
	n, err := strconv.ParseUint(v, 16, 32)
	if err != nil {
		return color.RGBA{}, false
	}
	return color.RGBA{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n), A: 255}, true
}

func colorFromSeed(seed string, shift int) color.RGBA {
	if len(seed) < 6 {
		seed = "000000"
	}
	doubled := seed + seed
	start := (shift * 6) % len(seed)
	segment := doubled[start : start+6]
	c, _ := parseHexColor(segment)
	return c
}

func deterministicSeed(parts ...any) string {
	hasher := sha256.New()
	for _, part := range parts {
		fmt.Fprintf(hasher, "%v|", part)
	}
	return hex.EncodeToString(hasher.Sum(nil))[:16]
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
