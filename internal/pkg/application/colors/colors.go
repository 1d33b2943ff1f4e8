package colors

import (
	"errors"

	"github.com/diwise/mac-explorer/pkg/types"
	"github.com/samber/lo"
)

var ErrPaletteTooSmall = errors.New("a palette needs at least two colors")

// Palette is a fixed, ordered set of contrasting colors.
type Palette []string

var DefaultPalette = Palette{
	"#60a5fa", "#f59e42", "#34d399", "#f472b6", "#a78bfa", "#f87171", "#facc15", "#38bdf8", "#6366f1", "#10b981",
	"#eab308", "#ef4444", "#a3e635", "#f43f5e", "#818cf8", "#fbbf24", "#06b6d4", "#84cc16", "#e11d48", "#7c3aed",
}

func NewPalette(colors ...string) (Palette, error) {
	if len(colors) < 2 {
		return nil, ErrPaletteTooSmall
	}

	p := make(Palette, len(colors))
	copy(p, colors)

	return p, nil
}

// Assignment maps identities to colors for a single render cycle.
type Assignment map[string]string

// Assign gives the i:th distinct identity, in order of first appearance,
// the color at i mod len(p). Identities share colors once the palette wraps.
func (p Palette) Assign(records []types.LocationRecord) Assignment {
	identities := lo.Uniq(lo.Map(records, func(r types.LocationRecord, _ int) string {
		return r.Identity
	}))

	return p.AssignIdentities(identities)
}

func (p Palette) AssignIdentities(identities []string) Assignment {
	a := make(Assignment, len(identities))

	if len(p) == 0 {
		return a
	}

	for _, id := range identities {
		if _, ok := a[id]; ok {
			continue
		}
		a[id] = p[len(a)%len(p)]
	}

	return a
}

func (a Assignment) ColorOf(identity string) string {
	return a[identity]
}

func (a Assignment) DistinctColors() int {
	return len(lo.Uniq(lo.Values(a)))
}
