package region

import (
	"testing"

	"github.com/diwise/mac-explorer/pkg/types"
	"github.com/matryer/is"
)

func TestThatDrawReplacesPreviousRegion(t *testing.T) {
	is := is.New(t)
	c := NewController()

	c.Draw(Rectangle{North: 10, East: 10, South: 0, West: 0})
	box := c.Draw(Rectangle{North: 40.71284, East: -74.00601, South: 40.70000, West: -74.01000})

	active, ok := c.Active()
	is.True(ok)
	is.Equal(active, box)
	is.Equal(box, types.GeoBox{TopLat: 40.71284, TopLon: -74.00601, BottomLat: 40.70000, BottomLon: -74.01000})

	last, ok := c.Last()
	is.True(ok)
	is.Equal(last, box)
}

func TestThatNothingIsDrawnInitially(t *testing.T) {
	is := is.New(t)
	c := NewController()

	_, ok := c.Active()
	is.True(!ok)
	_, ok = c.Last()
	is.True(!ok)
}

func TestThatClearShapeKeepsLastBox(t *testing.T) {
	is := is.New(t)
	c := NewController()

	box := c.Draw(Rectangle{North: 2, East: 2, South: 1, West: 1})
	c.ClearShape()

	_, ok := c.Active()
	is.True(!ok)

	last, ok := c.Last()
	is.True(ok)
	is.Equal(last, box)
}

func TestThatInvertedLatitudesAreSwapped(t *testing.T) {
	is := is.New(t)

	box := ToGeoBox(Rectangle{North: -5, East: 3, South: 5, West: 4})

	is.Equal(box.TopLat, 5.0)
	is.Equal(box.BottomLat, -5.0)
	is.Equal(box.TopLon, 3.0)
	is.Equal(box.BottomLon, 4.0)
}

func TestThatDegenerateRegionIsAccepted(t *testing.T) {
	is := is.New(t)
	c := NewController()

	box := c.Draw(Rectangle{North: 1, East: 1, South: 1, West: 1})
	is.Equal(box, types.GeoBox{TopLat: 1, TopLon: 1, BottomLat: 1, BottomLon: 1})
}
