package economy

import (
	"github.com/talgya/pizza-forge/internal/catalog"
)

// fixedSource always returns the same sample, letting tests force or
// forbid crits and golden spawns.
type fixedSource struct{ v float64 }

func (f fixedSource) Float() float64 { return f.v }

// newTestGame builds a fresh game with a deterministic random source.
// v=1 means rolls never pass any probability check.
func newTestGame(v float64) *Game {
	return NewGame(catalog.Default(), NewState(), fixedSource{v})
}
