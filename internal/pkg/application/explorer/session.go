package explorer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/diwise/mac-explorer/internal/pkg/application/colors"
	"github.com/diwise/mac-explorer/internal/pkg/application/region"
	"github.com/diwise/mac-explorer/internal/pkg/application/render"
	"github.com/diwise/mac-explorer/internal/pkg/application/report"
	"github.com/diwise/mac-explorer/internal/pkg/application/summary"
	"github.com/diwise/mac-explorer/pkg/client"
	"github.com/diwise/mac-explorer/pkg/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

var (
	ErrSuperseded    = errors.New("a newer request has replaced this one")
	ErrEmptyIdentity = errors.New("no mac address provided")
	ErrNoMarkers     = errors.New("no markers to select")
)

const (
	EventRegion      string = "region"
	EventMarkers     string = "markers"
	EventViewport    string = "viewport"
	EventSummary     string = "summary"
	EventNotice      string = "notice"
	EventInitialized string = "initialized"
)

type RenderResult struct {
	Generation uint64           `json:"generation"`
	Region     *types.GeoBox    `json:"region,omitempty"`
	Markers    []render.Marker  `json:"markers"`
	Viewport   *render.Viewport `json:"viewport,omitempty"`
	Notice     *Notice          `json:"notice,omitempty"`
}

type IdentityResult struct {
	RenderResult
	Summary *summary.Content `json:"summary,omitempty"`
}

type Snapshot struct {
	ID          string           `json:"id"`
	Initialized bool             `json:"initialized"`
	Region      *types.GeoBox    `json:"region,omitempty"`
	LastRegion  *types.GeoBox    `json:"lastRegion,omitempty"`
	Markers     []render.Marker  `json:"markers"`
	Viewport    *render.Viewport `json:"viewport,omitempty"`
	Summary     summary.Content  `json:"summary"`
}

// Session is the interaction state of one map page. Region queries and
// identity lookups share a render generation, selections have their own, and
// a response is only applied while its generation is still the latest.
type Session struct {
	id      string
	backend client.BackendClient
	events  Publisher
	palette colors.Palette
	padding int

	regions *region.Controller
	markers *render.State
	panel   *summary.Panel

	renderMu      sync.Mutex
	renderGen     atomic.Uint64
	selectionMu   sync.Mutex
	selectionGen  atomic.Uint64
	isInitialized atomic.Bool
}

func newSession(id string, backend client.BackendClient, events Publisher, palette colors.Palette, padding int) *Session {
	return &Session{
		id:      id,
		backend: backend,
		events:  events,
		palette: palette,
		padding: padding,
		regions: region.NewController(),
		markers: render.NewState(),
		panel:   summary.NewPanel(),
	}
}

func (s *Session) ID() string {
	return s.id
}

// Initialize runs the whole world query that establishes the first view.
// Markers are not rendered, only the viewport is fitted. It runs once per
// session and never supersedes a pending region query or identity lookup.
func (s *Session) Initialize(ctx context.Context) (RenderResult, error) {
	log := s.logger(ctx)
	gen := s.renderGen.Load()

	if s.isInitialized.Load() {
		log.Debug().Msg("session already initialized")
		return RenderResult{Generation: gen, Markers: s.markers.Markers()}, nil
	}

	records, err := s.backend.QueryRegion(ctx, types.WorldBox)
	if err != nil {
		log.Error().Err(err).Msg("initial query failed")
		return RenderResult{Generation: gen}, s.fail(log, NoticeQueryFailed, "Could not load sightings.", err)
	}

	s.renderMu.Lock()
	defer s.renderMu.Unlock()

	s.isInitialized.Store(true)
	s.publish(log, EventInitialized, struct {
		Sightings int `json:"sightings"`
	}{len(records)})

	result := RenderResult{Generation: gen, Markers: s.markers.Markers()}

	if gen != s.renderGen.Load() {
		log.Debug().Msgf("initial view for generation %d superseded", gen)
		return result, ErrSuperseded
	}

	if vp, ok := s.markers.FitRecords(records, s.padding); ok {
		result.Viewport = &vp
		s.publish(log, EventViewport, vp)
	}

	log.Info().Msgf("initialized with %d known sightings", len(records))

	return result, nil
}

func (s *Session) DrawRegion(ctx context.Context, rect region.Rectangle) (RenderResult, error) {
	log := s.logger(ctx)

	box := s.regions.Draw(rect)
	s.publish(log, EventRegion, box)

	gen := s.renderGen.Add(1)

	records, err := s.backend.QueryRegion(ctx, box)
	if err != nil {
		log.Error().Err(err).Msg("region query failed")
		return RenderResult{Generation: gen, Region: &box}, s.fail(log, NoticeQueryFailed, "Query failed, the map shows earlier results.", err)
	}

	log.Debug().Msgf("region query returned %d sightings", len(records))

	// edge handling belongs to the backend, only report what looks wrong
	outside := lo.CountBy(records, func(r types.LocationRecord) bool {
		return !box.Contains(r.Lat, r.Lon)
	})
	if outside > 0 {
		log.Warn().Msgf("%d of %d sightings are outside the drawn box", outside, len(records))
	}

	return s.render(log, gen, records, &box, "No sightings found in this region.")
}

// LookupIdentity shows every sighting and the summary of one identity. The
// drawn shape is removed but the last drawn box is kept for export.
func (s *Session) LookupIdentity(ctx context.Context, mac string) (IdentityResult, error) {
	log := s.logger(ctx)

	mac = strings.TrimSpace(mac)
	if mac == "" {
		return IdentityResult{}, ErrEmptyIdentity
	}

	log = log.With().Str("mac", mac).Logger()

	s.regions.ClearShape()
	s.publish(log, EventRegion, nil)

	gen := s.renderGen.Add(1)
	sel := s.selectionGen.Add(1)

	var entries []types.SummaryEntry
	var records []types.LocationRecord
	var summaryErr, locationErr error

	g := errgroup.Group{}
	g.Go(func() error {
		entries, summaryErr = s.backend.QuerySummary(ctx, mac)
		return summaryErr
	})
	g.Go(func() error {
		records, locationErr = s.backend.QueryIdentity(ctx, mac)
		if errors.Is(locationErr, client.ErrNotFound) {
			return nil
		}
		return locationErr
	})
	err := g.Wait()

	result := IdentityResult{RenderResult: RenderResult{Generation: gen}}

	if summaryErr == nil {
		content, err := s.showSummary(log, sel, mac, entries)
		if err == nil {
			result.Summary = &content
		}
	}

	if locationErr == nil || errors.Is(locationErr, client.ErrNotFound) {
		var renderErr error
		result.RenderResult, renderErr = s.render(log, gen, records, nil, "Location not found for this MAC address.")
		if renderErr != nil && err == nil {
			err = renderErr
		}
	}

	if err != nil && !errors.Is(err, ErrSuperseded) {
		log.Error().Err(err).Msg("identity lookup failed")
		return result, s.fail(log, NoticeQueryFailed, "Lookup failed.", err)
	}

	return result, err
}

func (s *Session) SelectMarker(ctx context.Context, mac string) (summary.Content, error) {
	log := s.logger(ctx)

	mac = strings.TrimSpace(mac)
	if mac == "" {
		return summary.Content{}, ErrEmptyIdentity
	}

	log = log.With().Str("mac", mac).Logger()
	sel := s.selectionGen.Add(1)

	entries, err := s.backend.QuerySummary(ctx, mac)
	if err != nil {
		log.Error().Err(err).Msg("summary query failed")
		return summary.Content{}, s.fail(log, NoticeQueryFailed, "Could not load relationships for this MAC.", err)
	}

	return s.showSummary(log, sel, mac, entries)
}

// SelectAt selects the rendered marker closest to the given position.
func (s *Session) SelectAt(ctx context.Context, lat, lon float64) (summary.Content, error) {
	m, ok := s.markers.NearestMarker(lat, lon)
	if !ok {
		return summary.Content{}, s.fail(s.logger(ctx), NoticeNotFound, "There are no markers to select.", ErrNoMarkers)
	}

	return s.SelectMarker(ctx, m.Identity)
}

// Export builds the vendor report for the last drawn box.
func (s *Session) Export(ctx context.Context) (report.Report, error) {
	log := s.logger(ctx)

	box, ok := s.regions.Last()
	if !ok {
		return report.Report{}, s.fail(log, NoticeDrawRegionFirst, "Draw a bounding box first.", report.ErrNoRegion)
	}

	r, err := ExportRegion(ctx, s.backend, box)
	if errors.Is(err, report.ErrNoData) {
		return report.Report{}, s.fail(log, NoticeNoData, "No vendor data to export.", err)
	}
	if err != nil {
		log.Error().Err(err).Msg("export failed")
		return report.Report{}, s.fail(log, NoticeQueryFailed, "Export failed.", err)
	}

	log.Info().Msgf("exported %d vendors to %s", len(r.Rows), r.Filename)

	return r, nil
}

func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		ID:          s.id,
		Initialized: s.isInitialized.Load(),
		Markers:     s.markers.Markers(),
		Summary:     s.panel.Content(),
	}

	if box, ok := s.regions.Active(); ok {
		snap.Region = &box
	}
	if box, ok := s.regions.Last(); ok {
		snap.LastRegion = &box
	}
	if vp, ok := s.markers.Viewport(); ok {
		snap.Viewport = &vp
	}

	return snap
}

// ExportRegion fetches the aggregates for box and builds the report.
func ExportRegion(ctx context.Context, backend client.BackendClient, box types.GeoBox) (report.Report, error) {
	bundle, err := backend.QueryAggregates(ctx, box)
	if err != nil {
		return report.Report{}, fmt.Errorf("failed to fetch aggregates: %w", err)
	}

	return report.Build(box, bundle)
}

func (s *Session) render(log zerolog.Logger, gen uint64, records []types.LocationRecord, box *types.GeoBox, notFound string) (RenderResult, error) {
	s.renderMu.Lock()
	defer s.renderMu.Unlock()

	if gen != s.renderGen.Load() {
		log.Debug().Msgf("dropping stale render for generation %d", gen)
		return RenderResult{Generation: gen, Region: box}, ErrSuperseded
	}

	assignment := s.palette.Assign(records)
	markers := s.markers.Replace(records, assignment.ColorOf)
	s.publish(log, EventMarkers, markers)

	result := RenderResult{
		Generation: gen,
		Region:     box,
		Markers:    markers,
	}

	if vp, ok := s.markers.FitBounds(s.padding); ok {
		result.Viewport = &vp
		s.publish(log, EventViewport, vp)
	} else {
		n := Notice{Kind: NoticeNotFound, Message: notFound}
		result.Notice = &n
		s.publish(log, EventNotice, n)
	}

	return result, nil
}

func (s *Session) showSummary(log zerolog.Logger, sel uint64, mac string, entries []types.SummaryEntry) (summary.Content, error) {
	s.selectionMu.Lock()
	defer s.selectionMu.Unlock()

	if sel != s.selectionGen.Load() {
		log.Debug().Msgf("dropping stale summary for selection %d", sel)
		return summary.Content{}, ErrSuperseded
	}

	c := s.panel.Show(mac, entries)
	s.publish(log, EventSummary, c)

	return c, nil
}

func (s *Session) fail(log zerolog.Logger, kind NoticeKind, message string, err error) error {
	n := Notice{Kind: kind, Message: message}
	s.publish(log, EventNotice, n)
	return &NoticeError{Notice: n, Err: err}
}

func (s *Session) publish(log zerolog.Logger, event string, data any) {
	if s.events == nil {
		return
	}

	if err := s.events.Publish(s.id, event, data); err != nil {
		log.Error().Err(err).Msgf("could not publish %s event", event)
	}
}

func (s *Session) logger(ctx context.Context) zerolog.Logger {
	return logging.GetFromContext(ctx).With().Str("session_id", s.id).Logger()
}
