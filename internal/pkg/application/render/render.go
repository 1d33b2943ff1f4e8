package render

import (
	"math"
	"sync"

	"github.com/diwise/mac-explorer/pkg/types"
	"github.com/dhconnelly/rtreego"
)

const DefaultPadding int = 30

const (
	dimensions  = 2
	minChildren = 25
	maxChildren = 50
	tolerance   = 0.00001
)

type Marker struct {
	Identity string  `json:"mac"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Color    string  `json:"color"`
}

type Bounds struct {
	North float64 `json:"north"`
	East  float64 `json:"east"`
	South float64 `json:"south"`
	West  float64 `json:"west"`
}

type Viewport struct {
	Bounds  Bounds `json:"bounds"`
	Padding int    `json:"padding"`
}

// BoundsOf returns the smallest bounds covering every record.
func BoundsOf(records []types.LocationRecord) (Bounds, bool) {
	if len(records) == 0 {
		return Bounds{}, false
	}

	b := Bounds{
		North: math.Inf(-1),
		East:  math.Inf(-1),
		South: math.Inf(1),
		West:  math.Inf(1),
	}

	for _, r := range records {
		b.North = math.Max(b.North, r.Lat)
		b.South = math.Min(b.South, r.Lat)
		b.East = math.Max(b.East, r.Lon)
		b.West = math.Min(b.West, r.Lon)
	}

	return b, true
}

type spatialMarker struct {
	Marker
	rect *rtreego.Rect
}

func (sm *spatialMarker) Bounds() *rtreego.Rect {
	return sm.rect
}

// State owns the markers currently shown on the map and the current
// viewport. The marker set is only ever swapped as a whole.
type State struct {
	mu       sync.RWMutex
	markers  []Marker
	index    *rtreego.Rtree
	viewport *Viewport
}

func NewState() *State {
	return &State{
		markers: []Marker{},
		index:   rtreego.NewTree(dimensions, minChildren, maxChildren),
	}
}

// Replace drops every previously rendered marker and renders one marker per
// record, colored by colorOf.
func (s *State) Replace(records []types.LocationRecord, colorOf func(identity string) string) []Marker {
	markers := make([]Marker, 0, len(records))
	tree := rtreego.NewTree(dimensions, minChildren, maxChildren)

	for _, r := range records {
		m := Marker{
			Identity: r.Identity,
			Lat:      r.Lat,
			Lon:      r.Lon,
			Color:    colorOf(r.Identity),
		}
		markers = append(markers, m)
		tree.Insert(&spatialMarker{
			Marker: m,
			rect:   rtreego.Point{m.Lat, m.Lon}.ToRect(tolerance),
		})
	}

	s.mu.Lock()
	s.markers = markers
	s.index = tree
	s.mu.Unlock()

	return copyOf(markers)
}

func (s *State) Markers() []Marker {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return copyOf(s.markers)
}

func (s *State) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.markers)
}

// NearestMarker returns the rendered marker closest to the given position.
func (s *State) NearestMarker(lat, lon float64) (Marker, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.markers) == 0 {
		return Marker{}, false
	}

	nearest, ok := s.index.NearestNeighbor(rtreego.Point{lat, lon}).(*spatialMarker)
	if !ok || nearest == nil {
		return Marker{}, false
	}

	return nearest.Marker, true
}

// FitBounds adjusts the viewport to cover every rendered marker. With no
// markers the viewport is left as it is and false is returned.
func (s *State) FitBounds(padding int) (Viewport, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]types.LocationRecord, 0, len(s.markers))
	for _, m := range s.markers {
		records = append(records, types.LocationRecord{Identity: m.Identity, Lat: m.Lat, Lon: m.Lon})
	}

	return s.fit(records, padding)
}

// FitRecords adjusts the viewport to cover records that are not rendered.
func (s *State) FitRecords(records []types.LocationRecord, padding int) (Viewport, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.fit(records, padding)
}

func (s *State) Viewport() (Viewport, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.viewport == nil {
		return Viewport{}, false
	}

	return *s.viewport, true
}

func (s *State) fit(records []types.LocationRecord, padding int) (Viewport, bool) {
	b, ok := BoundsOf(records)
	if !ok {
		return Viewport{}, false
	}

	s.viewport = &Viewport{Bounds: b, Padding: padding}

	return *s.viewport, true
}

func copyOf(markers []Marker) []Marker {
	c := make([]Marker, len(markers))
	copy(c, markers)
	return c
}
