package layout

import "github.com/treekit/lineage/pkg/member"

// Compute runs the hierarchical layout: it builds the family forest,
// assigns subtree-width-aware collision-free positions, and emits the
// renderer-agnostic node and edge lists.
//
// Compute is a pure function of its inputs. It performs no I/O, never
// mutates the collection, and has no failing paths for malformed relational
// data - dangling references, cycles, and empty input all degrade to a
// valid (possibly visually imperfect) layout. Repeated invocation over the
// same snapshot yields identical positions and identical edge IDs.
//
// An invalid cfg falls back to DefaultConfig.
func Compute(c *member.Collection, cfg Config) Layout {
	if err := cfg.Validate(); err != nil {
		cfg = DefaultConfig()
	}

	positions := make(map[string]Position, c.Len())
	cursor := cfg.MarginX
	for _, tree := range BuildForest(c, cfg) {
		positionSubtree(tree, cfg, cursor, positions)
		cursor += tree.Width + 2*cfg.HorizontalSpacing
	}

	return Layout{
		Mode:   ModeTree,
		Config: cfg,
		Nodes:  emitNodes(c, positions),
		Edges:  emitEdges(c),
	}
}

// positionSubtree assigns absolute coordinates to n and its descendants.
// left is the subtree's left cursor: the smallest x this subtree may use.
// It returns the x assigned to n itself.
func positionSubtree(n *TreeNode, cfg Config, left float64, positions map[string]Position) float64 {
	y := cfg.MarginY + float64(n.Level)*(cfg.NodeHeight+cfg.VerticalSpacing)

	var x float64
	if len(n.Children) == 0 {
		// Leaf (including cycle-truncated branches): place at the cursor.
		x = left
	} else {
		// Children first, left to right, each allotted its own width.
		childLeft := left
		for _, child := range n.Children {
			positionSubtree(child, cfg, childLeft, positions)
			childLeft += child.Width + cfg.HorizontalSpacing
		}

		// Center the parent over the first..last child span. A child whose
		// position is missing falls back to the subtree cursor rather than
		// failing.
		firstX := childX(n.Children[0], left, positions)
		lastX := childX(n.Children[len(n.Children)-1], left, positions)
		x = (firstX + lastX) / 2

		// Center the couple rather than just the parent.
		if n.HasSpouse() {
			x -= cfg.SpouseSpacing / 2
		}

		// Never drift left of the allotted region.
		if x < left {
			x = left
		}
	}

	positions[n.Member.ID] = Position{X: x, Y: y}
	if n.HasSpouse() {
		positions[n.Spouse.ID] = Position{X: x + cfg.SpouseSpacing, Y: y}
	}
	return x
}

// childX looks up a positioned child's x, falling back to the subtree's
// left cursor when the position is missing.
func childX(child *TreeNode, left float64, positions map[string]Position) float64 {
	if p, ok := positions[child.Member.ID]; ok {
		return p.X
	}
	return left
}

// emitNodes produces exactly one node per distinct input member ID, in
// collection order. Members that never received a position (unreachable
// through malformed data) default to the origin.
func emitNodes(c *member.Collection, positions map[string]Position) []Node {
	nodes := make([]Node, 0, c.Len())
	seen := make(map[string]bool, c.Len())
	for _, m := range c.Members() {
		if seen[m.ID] {
			continue
		}
		seen[m.ID] = true
		nodes = append(nodes, Node{
			ID:       m.ID,
			Position: positions[m.ID],
			Data:     NodeData{Member: m},
		})
	}
	return nodes
}

// emitEdges produces the relationship edges in collection order: for each
// member its father edge, mother edge, then spouse edge. Edges referencing
// IDs absent from the collection are skipped. Spouse edges are emitted only
// from the lexicographically smaller ID of the pair, so a mutually-linked
// couple yields exactly one edge.
func emitEdges(c *member.Collection) []Edge {
	var edges []Edge
	for _, m := range c.Members() {
		for _, parentID := range []string{m.FatherID, m.MotherID} {
			if parentID == "" || parentID == m.ID {
				continue
			}
			if _, ok := c.Member(parentID); !ok {
				continue
			}
			edges = append(edges, Edge{
				ID:           ParentChildEdgeID(parentID, m.ID),
				Source:       parentID,
				Target:       m.ID,
				SourceHandle: HandleChild,
				TargetHandle: HandleParent,
				Type:         EdgeTypeParentChild,
			})
		}

		if m.SpouseID != "" && m.ID < m.SpouseID {
			if _, ok := c.Member(m.SpouseID); ok {
				edges = append(edges, Edge{
					ID:           SpouseEdgeID(m.ID, m.SpouseID),
					Source:       m.ID,
					Target:       m.SpouseID,
					SourceHandle: HandleSpouseRight,
					TargetHandle: HandleSpouseLeft,
					Type:         EdgeTypeSpouse,
				})
			}
		}
	}
	if edges == nil {
		edges = []Edge{}
	}
	return edges
}
