// ABOUTME: Burn-in offset value and its projections onto render targets
// ABOUTME: CSS transform for the browser page, cell offsets for terminals
package clock

import (
	"fmt"
	"math"
)

// Offset is a burn-in translation in viewport units (DX in vw, DY in vh)
type Offset struct {
	DX float64
	DY float64
}

// CSS composes the translation with the fixed centering transform
func (o Offset) CSS() string {
	return fmt.Sprintf("translate3d(calc(-50%% + %.3fvw), calc(-50%% + %.3fvh), 0)", o.DX, o.DY)
}

// Cells converts the offset to whole terminal cells for a cols x rows viewport
func (o Offset) Cells(cols, rows int) (dx, dy int) {
	dx = int(math.Round(o.DX / 100 * float64(cols)))
	dy = int(math.Round(o.DY / 100 * float64(rows)))
	return dx, dy
}

// InBounds reports whether both axes are within the burn-in distance
func (o Offset) InBounds() bool {
	return math.Abs(o.DX) <= BurnInDistance && math.Abs(o.DY) <= BurnInDistance
}
