package main

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"brandforge/internal/domain"
)

// guidelineFile is the on-disk format: the guideline fields at the top level
// plus an optional selection block. JSON files parse as YAML.
type guidelineFile struct {
	domain.BrandGuidelines `yaml:",inline"`
	Selection              *domain.Selection `yaml:"selection,omitempty"`
}

func loadGuidelineFile(path string) (guidelineFile, error) {
	var f guidelineFile
	if strings.TrimSpace(path) == "" {
		return f, errors.New("a guidelines file is required (-f)")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return f, fmt.Errorf("read guidelines: %w", err)
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return f, fmt.Errorf("parse guidelines %s: %w", path, err)
	}
	return f, nil
}

var categoryNames = []string{"logos", "social", "presentation", "email", "marketing"}

// selectionFor returns the file's selection, or every category, narrowed to
// the --only list when given. Categories named in --only but absent from the
// file get their defaults.
func selectionFor(f guidelineFile, only []string) (domain.Selection, error) {
	sel := domain.DefaultSelection()
	if f.Selection != nil {
		sel = *f.Selection
	}
	if len(only) == 0 {
		return sel, nil
	}
	want := map[string]bool{}
	for _, name := range only {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		if !slices.Contains(categoryNames, name) {
			return domain.Selection{}, fmt.Errorf("unknown category %q (supported: %s)", name, strings.Join(categoryNames, ", "))
		}
		want[name] = true
	}
	defaults := domain.DefaultSelection()
	var out domain.Selection
	if want["logos"] {
		out.Logos = firstNonNil(sel.Logos, defaults.Logos)
	}
	if want["social"] {
		out.Social = firstNonNil(sel.Social, defaults.Social)
	}
	if want["presentation"] {
		out.Presentation = firstNonNil(sel.Presentation, defaults.Presentation)
	}
	if want["email"] {
		out.Email = firstNonNil(sel.Email, defaults.Email)
	}
	if want["marketing"] {
		out.Marketing = firstNonNil(sel.Marketing, defaults.Marketing)
	}
	return out, nil
}

func firstNonNil[T any](a, b *T) *T {
	if a != nil {
		return a
	}
	return b
}
