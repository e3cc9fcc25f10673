package web

import (
	"net/http"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/exoarchive/internal/core"
	"github.com/JonMunkholm/exoarchive/internal/core/views"
	"github.com/JonMunkholm/exoarchive/internal/logging"
	"github.com/JonMunkholm/exoarchive/internal/web/templates"
)

// renderPage writes body inside the site layout.
func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, title string, body templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	page := templates.Layout(templates.PageMeta{
		Title:     title,
		Path:      r.URL.Path,
		Supernova: s.site.Supernova(),
	}, body)
	if err := page.Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render page", "title", title, "error", err)
	}
}

// handleHome renders the landing page with statistics and recent discoveries.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stats, err := s.service.Stats(ctx, views.BrowserKey, core.Query{})
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	recent, err := s.service.RecentDiscoveries(ctx)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	s.renderPage(w, r, http.StatusOK, "Home", templates.Home(templates.HomeData{
		Stats:    stats,
		Recent:   recent,
		RetryURL: "/",
	}))
}

// handleDatabase renders one page of the browser view.
func (s *Server) handleDatabase(w http.ResponseWriter, r *http.Request) {
	res, err := s.service.Browse(r.Context(), views.BrowserKey, parseQuery(r), parseIntParam(r, "page", 1))
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	s.renderPage(w, r, http.StatusOK, "Database", templates.Database(res))
}

// handleDetectionForm renders the detection form with default values.
func (s *Server) handleDetectionForm(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, http.StatusOK, "Detection", templates.Detection(templates.DetectionData{
		Input: core.DefaultDetectionInput(),
	}))
}

// handleDetectionSubmit runs the detection rules on the submitted form. Bad
// values re-render the form with an error instead of a result.
func (s *Server) handleDetectionSubmit(w http.ResponseWriter, r *http.Request) {
	in, err := detectionFromForm(w, r)
	if err != nil {
		msg := core.MapError(err)
		logging.FromContext(r.Context()).Warn("invalid detection form", "error", err)
		s.renderPage(w, r, http.StatusBadRequest, "Detection", templates.Detection(templates.DetectionData{
			Input: in,
			Error: &msg,
		}))
		return
	}

	result := core.Detect(in)
	logging.FromContext(r.Context()).Info("detection run", "label", result.Label)

	s.renderPage(w, r, http.StatusOK, "Detection", templates.Detection(templates.DetectionData{
		Input:  in,
		Result: &result,
	}))
}
