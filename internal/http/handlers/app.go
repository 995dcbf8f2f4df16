package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"brandforge/internal/batch"
	"brandforge/internal/infra"
)

const maxBodyBytes = 1 << 20

// App carries the dependencies shared by every handler.
type App struct {
	Orchestrator   *batch.Orchestrator
	Logger         *infra.Logger
	Version        string
	RequestTimeout time.Duration
}

func NewApp(o *batch.Orchestrator, logger *infra.Logger, version string, timeout time.Duration) *App {
	return &App{
		Orchestrator:   o,
		Logger:         infra.OrNop(logger),
		Version:        version,
		RequestTimeout: timeout,
	}
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, errorEnvelope{Error: errorBody{Code: code, Message: message}})
}

func (a *App) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return false
	}
	return true
}
