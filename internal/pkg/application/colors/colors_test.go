package colors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/diwise/mac-explorer/pkg/types"
	"github.com/matryer/is"
)

func TestThatDistinctIdentitiesGetColorsInOrderOfAppearance(t *testing.T) {
	is := is.New(t)

	a := DefaultPalette.Assign([]types.LocationRecord{
		{Identity: "AA", Lat: 1, Lon: 1},
		{Identity: "BB", Lat: 2, Lon: 2},
		{Identity: "AA", Lat: 3, Lon: 3},
	})

	is.Equal(len(a), 2)
	is.Equal(a.ColorOf("AA"), DefaultPalette[0])
	is.Equal(a.ColorOf("BB"), DefaultPalette[1])
	is.Equal(a.DistinctColors(), 2)
}

func TestThatPaletteWrapsAround(t *testing.T) {
	is := is.New(t)

	p, err := NewPalette("red", "green", "blue")
	is.NoErr(err)

	ids := []string{}
	for i := 0; i < len(p)+1; i++ {
		ids = append(ids, fmt.Sprintf("id-%d", i))
	}

	a := p.AssignIdentities(ids)

	is.Equal(a.ColorOf("id-3"), a.ColorOf("id-0"))
	is.Equal(a.ColorOf("id-1"), "green")
}

func TestThatAssignmentIsStableForIdenticalInput(t *testing.T) {
	is := is.New(t)

	records := []types.LocationRecord{{Identity: "x"}, {Identity: "y"}, {Identity: "z"}}

	is.Equal(DefaultPalette.Assign(records), DefaultPalette.Assign(records))
}

func TestThatDuplicateIdentitiesDoNotConsumePaletteSlots(t *testing.T) {
	is := is.New(t)

	p, _ := NewPalette("red", "green")
	a := p.AssignIdentities([]string{"a", "a", "b"})

	is.Equal(a.ColorOf("b"), "green")
}

func TestThatUnknownIdentityHasNoColor(t *testing.T) {
	is := is.New(t)
	is.Equal(DefaultPalette.Assign(nil).ColorOf("nope"), "")
}

func TestThatSingleColorPaletteIsRejected(t *testing.T) {
	is := is.New(t)

	_, err := NewPalette("red")
	is.True(errors.Is(err, ErrPaletteTooSmall))
}
