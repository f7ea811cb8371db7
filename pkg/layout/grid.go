package layout

import (
	"math"

	"github.com/treekit/lineage/pkg/member"
)

// ComputeGrid arranges all members in row-major order on a fixed-column
// grid, with the column count the ceiling of the square root of the member
// count. It is the degraded fallback when hierarchical layout is not
// desired: positions ignore relationships entirely, but the emitted edges
// are identical to Compute's.
//
// Like Compute, ComputeGrid is pure, tolerant of any input, and falls back
// to DefaultConfig when cfg is invalid.
func ComputeGrid(c *member.Collection, cfg Config) Layout {
	if err := cfg.Validate(); err != nil {
		cfg = DefaultConfig()
	}

	cols := gridColumns(c.Len())
	positions := make(map[string]Position, c.Len())

	i := 0
	for _, m := range c.Members() {
		if _, placed := positions[m.ID]; placed {
			continue
		}
		row := i / cols
		col := i % cols
		positions[m.ID] = Position{
			X: cfg.MarginX + float64(col)*(cfg.NodeWidth+cfg.HorizontalSpacing),
			Y: cfg.MarginY + float64(row)*(cfg.NodeHeight+cfg.VerticalSpacing),
		}
		i++
	}

	return Layout{
		Mode:   ModeGrid,
		Config: cfg,
		Nodes:  emitNodes(c, positions),
		Edges:  emitEdges(c),
	}
}

// gridColumns returns ceil(sqrt(n)), with a floor of one column.
func gridColumns(n int) int {
	if n <= 1 {
		return 1
	}
	return int(math.Ceil(math.Sqrt(float64(n))))
}
