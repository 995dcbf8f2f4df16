package handlers

import (
	"context"
	"errors"
	"net/http"

	"brandforge/internal/domain"
)

// classify maps an orchestration error to a status and envelope.
func classify(err error) (int, errorBody) {
	var fatal *domain.FatalError
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return http.StatusGatewayTimeout, errorBody{Code: "timeout", Message: "generation did not finish in time"}
	case errors.Is(err, domain.ErrInvalidGuidelines):
		return http.StatusUnprocessableEntity, errorBody{Code: "invalid_guidelines", Message: err.Error()}
	case errors.As(err, &fatal) && fatal.Stage == "selection":
		return http.StatusUnprocessableEntity, errorBody{Code: "invalid_selection", Message: err.Error()}
	case errors.Is(err, domain.ErrAnalysisUnavailable), errors.As(err, &fatal):
		return http.StatusBadGateway, errorBody{Code: "analysis_unavailable", Message: "brand analysis is unavailable, try again later"}
	default:
		return http.StatusInternalServerError, errorBody{Code: "internal", Message: "generation failed"}
	}
}

func (a *App) runError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := classify(err)
	if status >= http.StatusInternalServerError {
		a.Logger.Error().Err(err).Str("path", r.URL.Path).Msg("handlers: run failed")
	}
	a.error(w, status, body.Code, body.Message)
}
