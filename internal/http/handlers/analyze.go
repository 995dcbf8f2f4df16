package handlers

import (
	"context"
	"net/http"

	"brandforge/internal/domain"
)

type analyzeResponse struct {
	BrandName string `json:"brand_name"`
	Analysis  string `json:"analysis"`
}

func (a *App) AnalyzeBrand(w http.ResponseWriter, r *http.Request) {
	var g domain.BrandGuidelines
	if !a.decode(w, r, &g) {
		return
	}
	ctx, cancel := a.runContext(r)
	defer cancel()
	analysis, err := a.Orchestrator.Analyze(ctx, g)
	if err != nil {
		a.runError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, analyzeResponse{BrandName: g.Normalize().BrandName, Analysis: analysis})
}

func (a *App) runContext(r *http.Request) (context.Context, context.CancelFunc) {
	if a.RequestTimeout <= 0 {
		return context.WithCancel(r.Context())
	}
	return context.WithTimeout(r.Context(), a.RequestTimeout)
}
