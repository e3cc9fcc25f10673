package core

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/exoarchive/internal/logging"
	"github.com/JonMunkholm/exoarchive/internal/schema"
)

// DefaultSnapshotInterval is the minimum time between snapshots saved from
// ordinary loads. Refresh always saves.
const DefaultSnapshotInterval = time.Hour

// Service provides the core operations for browsing the archive.
type Service struct {
	fetcher    Fetcher
	sourcePath string
	layout     schema.Layout

	cache     *Cache
	snapshots SnapshotStore
	fallback  []Record
	overrides map[string]func(*ViewDefinition)
	now       func() time.Time

	snapshotInterval time.Duration
	mu               sync.Mutex
	lastSnapshot     time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithCache memoizes fetched bodies. Without a cache every load re-fetches.
func WithCache(c *Cache) Option {
	return func(s *Service) { s.cache = c }
}

// WithSnapshots enables saving and falling back to stored bodies.
func WithSnapshots(store SnapshotStore) Option {
	return func(s *Service) { s.snapshots = store }
}

// WithSnapshotInterval sets the minimum time between automatic snapshots.
func WithSnapshotInterval(d time.Duration) Option {
	return func(s *Service) { s.snapshotInterval = d }
}

// WithLayout replaces the default column layout.
func WithLayout(l schema.Layout) Option {
	return func(s *Service) { s.layout = l }
}

// WithSourcePath sets the resource path passed to the fetcher.
func WithSourcePath(path string) Option {
	return func(s *Service) { s.sourcePath = path }
}

// WithFallback replaces the built-in sample records used when nothing else
// loads. An empty slice means failures show an empty table.
func WithFallback(records []Record) Option {
	return func(s *Service) { s.fallback = records }
}

// WithViewOverride adjusts a registered view for this service only.
func WithViewOverride(key string, fn func(*ViewDefinition)) Option {
	return func(s *Service) { s.overrides[key] = fn }
}

// NewService creates a new Service instance.
func NewService(fetcher Fetcher, opts ...Option) *Service {
	s := &Service{
		fetcher:          fetcher,
		sourcePath:       DefaultSourcePath,
		layout:           schema.DefaultLayout(),
		fallback:         SampleRecords(),
		overrides:        make(map[string]func(*ViewDefinition)),
		now:              time.Now,
		snapshotInterval: DefaultSnapshotInterval,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SourcePath returns the resource path the service loads.
func (s *Service) SourcePath() string { return s.sourcePath }

// View returns the effective definition of a registered view.
func (s *Service) View(key string) (ViewDefinition, error) {
	def, err := MustGet(key)
	if err != nil {
		return ViewDefinition{}, err
	}
	if fn, ok := s.overrides[key]; ok {
		fn(&def)
	}
	return def, nil
}

// ListViews returns information about all registered views.
func (s *Service) ListViews() []ViewInfo {
	defs := All()
	infos := make([]ViewInfo, len(defs))
	for i, def := range defs {
		infos[i] = def.Info
	}
	return infos
}

// Load fetches, parses and normalizes the source for one view.
//
// Fetch failures and missing headers do not fail the load: the result falls
// back to the latest snapshot, then to the sample records, and is marked
// Degraded with the problem that caused it. Only unknown views and context
// cancellation are returned as errors.
func (s *Service) Load(ctx context.Context, viewKey string) (*LoadResult, error) {
	def, err := s.View(viewKey)
	if err != nil {
		return nil, err
	}

	log := logging.WithFields(ctx, "view", viewKey, "source_path", s.sourcePath)
	start := s.now()

	text, src, err := s.source(ctx)
	if err == nil {
		var records []Record
		records, err = s.build(text, def)
		if err == nil {
			if src == SourceLive {
				s.maybeSnapshot(ctx, text, false)
			}
			log.Debug("view loaded",
				"source", src,
				"records", len(records),
				"duration_ms", time.Since(start).Milliseconds(),
			)
			return s.result(def, records, src, nil), nil
		}
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if errors.Is(err, context.Canceled) {
		return nil, err
	}

	log.Warn("source unavailable, using fallback", "error", err)
	return s.fallbackResult(ctx, def, err), nil
}

// source returns the current CSV body and where it came from.
func (s *Service) source(ctx context.Context) (string, Source, error) {
	if s.cache == nil {
		text, err := s.fetchLive(ctx)
		return text, SourceLive, err
	}

	text, hit, err := s.cache.Get(ctx, s.sourcePath, s.fetchLive)
	if hit {
		return text, SourceCache, err
	}
	return text, SourceLive, err
}

// fetchLive fetches the body and rejects it before it can be cached when it
// has no header line.
func (s *Service) fetchLive(ctx context.Context) (string, error) {
	text, err := s.fetcher.Fetch(ctx, s.sourcePath)
	if err != nil {
		return "", err
	}
	if err := CheckHeader(text); err != nil {
		return "", err
	}
	return text, nil
}

// build parses text with the view's rules.
func (s *Service) build(text string, def ViewDefinition) ([]Record, error) {
	parsed, err := ParseCSV(text, def.LineCap)
	if err != nil {
		return nil, err
	}
	records := Normalize(parsed.Rows, s.layout.Resolve(parsed.Header), NormalizeOptions{
		RequireYear: def.RequireYear,
	})
	return def.Shape(records), nil
}

func (s *Service) fallbackResult(ctx context.Context, def ViewDefinition, cause error) *LoadResult {
	problem := MapError(cause)

	if s.snapshots != nil {
		snap, err := s.snapshots.Latest(ctx, s.sourcePath)
		switch {
		case err == nil:
			records, buildErr := s.build(snap.Body, def)
			if buildErr == nil {
				return s.result(def, records, SourceSnapshot, &problem)
			}
			logging.FromContext(ctx).Warn("stored snapshot unusable", "snapshot_id", snap.ID, "error", buildErr)
		case !errors.Is(err, ErrNoSnapshot):
			logging.FromContext(ctx).Warn("snapshot lookup failed", "error", err)
		}
	}

	records := make([]Record, 0, len(s.fallback))
	for _, r := range s.fallback {
		if def.RequireYear && r.DiscoveryYear <= 0 {
			continue
		}
		records = append(records, r)
	}
	return s.result(def, def.Shape(records), SourceSample, &problem)
}

func (s *Service) result(def ViewDefinition, records []Record, src Source, problem *UserMessage) *LoadResult {
	return &LoadResult{
		ID:       uuid.New(),
		View:     def.Info.Key,
		Records:  records,
		Source:   src,
		Degraded: problem != nil,
		Problem:  problem,
		LoadedAt: s.now(),
	}
}

// Browse loads a view and returns one filtered page of it.
func (s *Service) Browse(ctx context.Context, viewKey string, q Query, page int) (*BrowseResult, error) {
	def, err := s.View(viewKey)
	if err != nil {
		return nil, err
	}

	res, err := s.Load(ctx, viewKey)
	if err != nil {
		return nil, err
	}

	filtered := Filter(res.Records, q)

	pageSize := def.PageSize
	if pageSize <= 0 {
		// Unpaginated views show everything on one page.
		pageSize = max(len(filtered), 1)
	}
	p := Paginate(filtered, page, pageSize)

	return &BrowseResult{
		View:          viewKey,
		Query:         q,
		Page:          p,
		Window:        PageWindow(p.Page, p.TotalPages, DefaultWindowWidth),
		Methods:       UniqueMethods(res.Records),
		TotalRecords:  len(res.Records),
		FilteredCount: len(filtered),
		Source:        res.Source,
		Degraded:      res.Degraded,
		Problem:       res.Problem,
		LoadID:        res.ID,
	}, nil
}

// RecentDiscoveries returns the most recently discovered planets.
func (s *Service) RecentDiscoveries(ctx context.Context) (*LoadResult, error) {
	return s.Load(ctx, RecentViewKey)
}

// RecentViewKey names the view served by RecentDiscoveries.
const RecentViewKey = "recent"

// StatsResult is ComputeStats over one filtered view.
type StatsResult struct {
	View     string       `json:"view"`
	Query    Query        `json:"query"`
	Stats    Stats        `json:"stats"`
	Source   Source       `json:"source"`
	Degraded bool         `json:"degraded"`
	Problem  *UserMessage `json:"problem,omitempty"`
}

// Stats aggregates a view after filtering.
func (s *Service) Stats(ctx context.Context, viewKey string, q Query) (*StatsResult, error) {
	res, err := s.Load(ctx, viewKey)
	if err != nil {
		return nil, err
	}
	return &StatsResult{
		View:     viewKey,
		Query:    q,
		Stats:    ComputeStats(Filter(res.Records, q)),
		Source:   res.Source,
		Degraded: res.Degraded,
		Problem:  res.Problem,
	}, nil
}

// Methods lists the discovery methods present in a view.
func (s *Service) Methods(ctx context.Context, viewKey string) ([]string, error) {
	res, err := s.Load(ctx, viewKey)
	if err != nil {
		return nil, err
	}
	return UniqueMethods(res.Records), nil
}

// RefreshResult describes a forced re-fetch.
type RefreshResult struct {
	Bytes         int       `json:"bytes"`
	Rows          int       `json:"rows"`
	FetchedAt     time.Time `json:"fetched_at"`
	SnapshotSaved bool      `json:"snapshot_saved"`
}

// Refresh drops the cached body, fetches the source again and stores a
// snapshot. Unlike Load it reports failures instead of falling back.
func (s *Service) Refresh(ctx context.Context) (*RefreshResult, error) {
	s.InvalidateSource()

	text, _, err := s.source(ctx)
	if err != nil {
		return nil, fmt.Errorf("refresh %s: %w", s.sourcePath, err)
	}

	parsed, err := ParseCSV(text, 0)
	if err != nil {
		return nil, fmt.Errorf("refresh %s: %w", s.sourcePath, err)
	}

	saved := s.maybeSnapshot(ctx, text, true)
	logging.FromContext(ctx).Info("source refreshed",
		"source_path", s.sourcePath,
		"bytes", len(text),
		"rows", len(parsed.Rows),
		"snapshot_saved", saved,
	)

	return &RefreshResult{
		Bytes:         len(text),
		Rows:          len(parsed.Rows),
		FetchedAt:     s.now(),
		SnapshotSaved: saved,
	}, nil
}

// RawCSV returns the current source text for download. When the live source
// fails it serves the latest snapshot; there is no sample fallback because
// the sample has no CSV form.
func (s *Service) RawCSV(ctx context.Context) (string, Source, error) {
	text, src, err := s.source(ctx)
	if err == nil {
		return text, src, nil
	}
	if ctx.Err() != nil || s.snapshots == nil {
		return "", "", err
	}

	snap, snapErr := s.snapshots.Latest(ctx, s.sourcePath)
	if snapErr != nil {
		return "", "", err
	}
	logging.FromContext(ctx).Warn("serving snapshot for download", "snapshot_id", snap.ID, "error", err)
	return snap.Body, SourceSnapshot, nil
}

// InvalidateSource drops the cached body so the next load re-fetches.
func (s *Service) InvalidateSource() {
	if s.cache != nil {
		s.cache.Invalidate(s.sourcePath)
	}
}

// CacheStatus reports cache counters; ok is false when caching is off.
func (s *Service) CacheStatus() (status CacheStatus, ok bool) {
	if s.cache == nil {
		return CacheStatus{}, false
	}
	return s.cache.Status(), true
}

// maybeSnapshot stores text when a store is configured and the interval has
// elapsed (or force is set). Save failures are logged, never returned.
func (s *Service) maybeSnapshot(ctx context.Context, text string, force bool) bool {
	if s.snapshots == nil {
		return false
	}

	now := s.now()
	s.mu.Lock()
	due := force || s.lastSnapshot.IsZero() || now.Sub(s.lastSnapshot) >= s.snapshotInterval
	if due {
		s.lastSnapshot = now
	}
	s.mu.Unlock()
	if !due {
		return false
	}

	parsed, err := ParseCSV(text, 0)
	if err != nil {
		return false
	}

	snap := Snapshot{
		ID:        uuid.New(),
		Source:    s.sourcePath,
		FetchedAt: now,
		RowCount:  len(parsed.Rows),
		Body:      text,
	}
	if err := s.snapshots.Save(ctx, snap); err != nil {
		logging.FromContext(ctx).Error("save snapshot failed", "error", err)
		s.mu.Lock()
		s.lastSnapshot = time.Time{}
		s.mu.Unlock()
		return false
	}
	return true
}
