package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidGuidelines   = errors.New("invalid brand guidelines")
	ErrAnalysisUnavailable = errors.New("brand analysis unavailable")
	ErrEmptyPrompt         = errors.New("prompt is empty")
	ErrContentPolicy       = errors.New("content policy rejection")
	ErrNoImage             = errors.New("no image returned")
	ErrGeneration          = errors.New("image generation failed")
	ErrValidation          = errors.New("validation failed")
	ErrAssetExhausted      = errors.New("asset exhausted attempts")
	ErrEmptySelection      = errors.New("no asset categories selected")
)

// GenerationError reports a failed image-generation attempt.
type GenerationError struct {
	Attempt int
	Err     error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation attempt %d: %v", e.Attempt, e.Err)
}

func (e *GenerationError) Unwrap() []error { return []error{ErrGeneration, e.Err} }

// ValidationError reports that an image could not be scored at all. It is
// distinct from a low score.
type ValidationError struct {
	Attempt int
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation attempt %d: %v", e.Attempt, e.Err)
}

func (e *ValidationError) Unwrap() []error { return []error{ErrValidation, e.Err} }

// FatalError aborts a whole request before any asset work begins.
type FatalError struct {
	Stage string
	Err   error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *FatalError) Unwrap() error { return e.Err }
