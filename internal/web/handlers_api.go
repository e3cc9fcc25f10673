package web

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/exoarchive/internal/core"
	"github.com/JonMunkholm/exoarchive/internal/logging"
)

// handleListViews returns all registered views.
func (s *Server) handleListViews(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.service.ListViews())
}

// handleBrowse returns one filtered page of a view.
func (s *Server) handleBrowse(w http.ResponseWriter, r *http.Request) {
	res, err := s.service.Browse(r.Context(), chi.URLParam(r, "view"), parseQuery(r), parseIntParam(r, "page", 1))
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, r, http.StatusOK, res)
}

// handleRecent returns the most recently discovered planets.
func (s *Server) handleRecent(w http.ResponseWriter, r *http.Request) {
	res, err := s.service.RecentDiscoveries(r.Context())
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, r, http.StatusOK, res)
}

// handleStats returns aggregates over a filtered view.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	res, err := s.service.Stats(r.Context(), chi.URLParam(r, "view"), parseQuery(r))
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, r, http.StatusOK, res)
}

// handleMethods returns the discovery methods present in a view.
func (s *Server) handleMethods(w http.ResponseWriter, r *http.Request) {
	viewKey := chi.URLParam(r, "view")
	methods, err := s.service.Methods(r.Context(), viewKey)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{
		"view":    viewKey,
		"methods": methods,
	})
}

// exportColumns is the header of exported CSV files. Names follow the
// archive's column names.
var exportColumns = []string{
	"pl_name", "hostname", "discoverymethod", "disc_year", "pl_orbper",
	"pl_rade", "pl_bmasse", "st_teff", "sy_dist", "disposition", "planet_type",
}

// handleExport downloads a filtered view as CSV. Missing values are written
// as empty cells.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	viewKey := chi.URLParam(r, "view")
	res, err := s.service.Load(r.Context(), viewKey)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	records := core.Filter(res.Records, parseQuery(r))

	filename := fmt.Sprintf("%s_%s.csv", viewKey, time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Header().Set("X-Data-Source", string(res.Source))

	csvWriter := csv.NewWriter(w)
	_ = csvWriter.Write(exportColumns)
	for _, rec := range records {
		_ = csvWriter.Write([]string{
			rec.Name,
			rec.HostStar,
			rec.DiscoveryMethod,
			exportInt(rec.DiscoveryYear, rec.Known.DiscoveryYear),
			exportFloat(rec.OrbitalPeriodDays, rec.Known.OrbitalPeriod),
			exportFloat(rec.RadiusEarth, rec.Known.Radius),
			exportFloat(rec.MassEarth, rec.Known.Mass),
			exportFloat(rec.StellarTempK, rec.Known.StellarTemp),
			exportFloat(rec.Distance, rec.Known.Distance),
			string(rec.Disposition),
			string(rec.PlanetType),
		})
	}
	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		logging.FromContext(r.Context()).Error("export write failed", "view", viewKey, "error", err)
	}
}

func exportInt(v int, known bool) string {
	if !known {
		return ""
	}
	return strconv.Itoa(v)
}

func exportFloat(v float64, known bool) string {
	if !known {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// handleDownloadCSV serves the current source text. When the live source is
// down the latest snapshot is served instead.
func (s *Server) handleDownloadCSV(w http.ResponseWriter, r *http.Request) {
	text, src, err := s.service.RawCSV(r.Context())
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="exoplanet-data.csv"`)
	w.Header().Set("X-Data-Source", string(src))
	if _, err := io.WriteString(w, text); err != nil {
		logging.FromContext(r.Context()).Warn("download interrupted", "error", err)
	}
}

// handleDetect runs the detection rules on a JSON body. Omitted fields keep
// the form defaults.
func (s *Server) handleDetect(w http.ResponseWriter, r *http.Request) {
	in := core.DefaultDetectionInput()

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxFormBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil && !errors.Is(err, io.EOF) {
		perr := &core.ParamError{Name: "body", Value: err.Error()}
		respondError(w, r, perr, http.StatusBadRequest)
		return
	}

	writeJSON(w, r, http.StatusOK, core.Detect(in))
}

type supernovaResponse struct {
	Supernova bool `json:"supernova"`
}

func (s *Server) handleGetSupernova(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, supernovaResponse{Supernova: s.site.Supernova()})
}

// handleSetSupernova sets or toggles the supernova theme. JSON bodies set
// {"supernova": bool}; forms set the "supernova" field and are redirected to
// their "return" path. With no value the theme is toggled.
func (s *Server) handleSetSupernova(w http.ResponseWriter, r *http.Request) {
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		var req struct {
			Supernova *bool `json:"supernova"`
		}
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxFormBytes)).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			respondError(w, r, &core.ParamError{Name: "body", Value: err.Error()}, http.StatusBadRequest)
			return
		}
		writeJSON(w, r, http.StatusOK, supernovaResponse{Supernova: s.applySupernova(req.Supernova)})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		respondError(w, r, &core.ParamError{Name: "form", Value: err.Error()}, http.StatusBadRequest)
		return
	}

	var want *bool
	if v := r.PostForm.Get("supernova"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			respondError(w, r, &core.ParamError{Name: "supernova", Value: v}, http.StatusBadRequest)
			return
		}
		want = &b
	}
	on := s.applySupernova(want)

	if ret := r.PostForm.Get("return"); ret != "" {
		http.Redirect(w, r, safeReturnPath(ret), http.StatusSeeOther)
		return
	}
	writeJSON(w, r, http.StatusOK, supernovaResponse{Supernova: on})
}

func (s *Server) applySupernova(want *bool) bool {
	if want == nil {
		return s.site.Toggle()
	}
	s.site.SetSupernova(*want)
	return *want
}

// handleRefresh re-fetches the source and stores a snapshot.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	res, err := s.service.Refresh(r.Context())
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, r, http.StatusOK, res)
}

// StatusResponse reports server state for monitoring.
type StatusResponse struct {
	Views         int               `json:"views"`
	SourcePath    string            `json:"source_path"`
	CacheEnabled  bool              `json:"cache_enabled"`
	Cache         *core.CacheStatus `json:"cache,omitempty"`
	Supernova     bool              `json:"supernova"`
	UptimeSeconds int64             `json:"uptime_seconds"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	resp := StatusResponse{
		Views:         len(s.service.ListViews()),
		SourcePath:    s.service.SourcePath(),
		Supernova:     s.site.Supernova(),
		UptimeSeconds: int64(time.Since(s.startedAt).Seconds()),
	}
	if status, ok := s.service.CacheStatus(); ok {
		resp.CacheEnabled = true
		resp.Cache = &status
	}
	writeJSON(w, r, http.StatusOK, resp)
}

// handleHealth is a liveness probe. It does not touch the source.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
