package region

import (
	"sync"

	"github.com/diwise/mac-explorer/pkg/types"
)

// Rectangle is a drawn shape as reported by the map's drawing widget.
type Rectangle struct {
	North float64 `json:"north"`
	East  float64 `json:"east"`
	South float64 `json:"south"`
	West  float64 `json:"west"`
}

// Controller keeps track of the single visible region and of the last drawn
// box. The last drawn box outlives the visible shape and is used for export.
type Controller struct {
	mu     sync.RWMutex
	active *types.GeoBox
	last   *types.GeoBox
}

func NewController() *Controller {
	return &Controller{}
}

// Draw replaces any visible region with r and records it as the last drawn
// box. Zero area rectangles are accepted.
func (c *Controller) Draw(r Rectangle) types.GeoBox {
	box := ToGeoBox(r)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.active = &box
	last := box
	c.last = &last

	return box
}

// ClearShape removes the visible region but keeps the last drawn box.
func (c *Controller) ClearShape() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.active = nil
}

func (c *Controller) Active() (types.GeoBox, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.active == nil {
		return types.GeoBox{}, false
	}

	return *c.active, true
}

func (c *Controller) Last() (types.GeoBox, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.last == nil {
		return types.GeoBox{}, false
	}

	return *c.last, true
}

// ToGeoBox maps the four edges of a rectangle onto a box. An inverted
// north/south pair is swapped, longitudes are kept as given.
func ToGeoBox(r Rectangle) types.GeoBox {
	north, south := r.North, r.South
	if north < south {
		north, south = south, north
	}

	return types.GeoBox{
		TopLat:    north,
		TopLon:    r.East,
		BottomLat: south,
		BottomLon: r.West,
	}
}
