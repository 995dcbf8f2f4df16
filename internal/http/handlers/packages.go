package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"brandforge/internal/batch"
	"brandforge/internal/domain"
	"brandforge/internal/middleware"
	"brandforge/internal/progress"
	"brandforge/internal/storage"
	"brandforge/pkg/zip"
)

// packageRequest accepts either an explicit selection or the include_* flags.
// With neither, every category is generated with its defaults.
type packageRequest struct {
	Guidelines          domain.BrandGuidelines `json:"guidelines"`
	Selection           *domain.Selection      `json:"selection,omitempty"`
	IncludeLogos        *bool                  `json:"include_logos,omitempty"`
	IncludeSocial       *bool                  `json:"include_social,omitempty"`
	IncludePresentation *bool                  `json:"include_presentation,omitempty"`
	IncludeEmail        *bool                  `json:"include_email,omitempty"`
	IncludeMarketing    *bool                  `json:"include_marketing,omitempty"`
}

func (p packageRequest) selection() domain.Selection {
	if p.Selection != nil {
		return *p.Selection
	}
	flags := []*bool{p.IncludeLogos, p.IncludeSocial, p.IncludePresentation, p.IncludeEmail, p.IncludeMarketing}
	anySet := false
	for _, f := range flags {
		if f != nil {
			anySet = true
		}
	}
	if !anySet {
		return domain.DefaultSelection()
	}
	on := func(f *bool) bool { return f == nil || *f }
	return domain.SelectionFromFlags(on(p.IncludeLogos), on(p.IncludeSocial), on(p.IncludePresentation), on(p.IncludeEmail), on(p.IncludeMarketing))
}

func (a *App) readPackageRequest(w http.ResponseWriter, r *http.Request) (batch.Request, bool) {
	var body packageRequest
	if !a.decode(w, r, &body) {
		return batch.Request{}, false
	}
	req := batch.Request{
		Guidelines: body.Guidelines,
		Selection:  body.selection(),
		RequestID:  middleware.RequestIDFromContext(r.Context()),
	}
	if _, _, err := a.Orchestrator.Prepare(req); err != nil {
		a.runError(w, r, err)
		return batch.Request{}, false
	}
	return req, true
}

// CreatePackage runs one orchestration and returns the package as JSON.
func (a *App) CreatePackage(w http.ResponseWriter, r *http.Request) {
	req, ok := a.readPackageRequest(w, r)
	if !ok {
		return
	}
	ctx, cancel := a.runContext(r)
	defer cancel()
	pkg, err := a.Orchestrator.Run(ctx, req, nil)
	if err != nil {
		a.runError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, pkg)
}

// StreamPackage reports progress as server-sent events and ends with a
// single complete or error event.
func (a *App) StreamPackage(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		a.error(w, http.StatusInternalServerError, "internal", "streaming unsupported")
		return
	}
	req, ok := a.readPackageRequest(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	send := func(event string, v any) {
		data, err := json.Marshal(v)
		if err != nil {
			a.Logger.Error().Err(err).Str("event", event).Msg("handlers: encode event")
			return
		}
		fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
		flusher.Flush()
	}

	// The pump is the only writer until Close returns.
	sink := progress.NewAsync(func(e progress.Event) { send("progress", e) })
	ctx, cancel := a.runContext(r)
	defer cancel()
	pkg, err := a.Orchestrator.Run(ctx, req, sink)
	sink.Close()

	if err != nil {
		if r.Context().Err() != nil {
			return
		}
		_, body := classify(err)
		send("error", body)
		return
	}
	send("complete", pkg)
}

// ArchivePackage runs one orchestration and returns a ZIP with the images and
// a package.json manifest.
func (a *App) ArchivePackage(w http.ResponseWriter, r *http.Request) {
	req, ok := a.readPackageRequest(w, r)
	if !ok {
		return
	}
	ctx, cancel := a.runContext(r)
	defer cancel()
	pkg, err := a.Orchestrator.Run(ctx, req, nil)
	if err != nil {
		a.runError(w, r, err)
		return
	}
	entries, err := storage.Entries(pkg)
	if err != nil {
		a.runError(w, r, err)
		return
	}
	data, err := zip.ArchiveAssets(entries)
	if err != nil {
		a.runError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", archiveName(pkg.BrandName)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

func archiveName(brand string) string {
	slug := strings.Trim(slugPattern.ReplaceAllString(strings.ToLower(brand), "-"), "-")
	if slug == "" {
		slug = "brand"
	}
	return slug + "-assets.zip"
}
