package layout

import (
	"maps"

	"github.com/treekit/lineage/pkg/member"
)

// TreeNode is one member in the constructed family forest. Tree nodes are
// the intermediate representation between the flat member collection and
// the positioned layout; read-only consumers (the nested public-site
// renderer) can traverse the forest directly without coordinates.
type TreeNode struct {
	// Member is the node's member record.
	Member *member.FamilyMember

	// Spouse is the resolved spouse, or nil when the member records none
	// or the reference is dangling.
	Spouse *member.FamilyMember

	// Children are the member's (and spouse's, when present) children,
	// merged into one sibling group in collection order.
	Children []*TreeNode

	// Level is the recursion depth from the root (root = 0). It is used as
	// the vertical row index, so two unrelated branches that happen to
	// share recursion depth render on the same row even when their true
	// generational distance differs.
	Level int

	// Width is the horizontal span, in layout units, required to render
	// the member, its spouse, and all descendants without overlap.
	// A branch truncated by the cycle guard has Width 0.
	Width float64

	// Truncated marks a node where the cycle guard stopped descending.
	Truncated bool
}

// HasSpouse reports whether the node has a resolved spouse.
func (n *TreeNode) HasSpouse() bool { return n.Spouse != nil }

// Size returns the number of tree nodes in this subtree, itself included.
func (n *TreeNode) Size() int {
	total := 1
	for _, c := range n.Children {
		total += c.Size()
	}
	return total
}

// Walk visits the subtree depth-first in child order, parent before
// children. Walk stops early when fn returns false.
func (n *TreeNode) Walk(fn func(*TreeNode) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.Children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

// BuildForest constructs one tree per root member (no recorded father or
// mother), in collection order. A parentless member already placed in an
// earlier tree - typically a spouse, who renders beside their partner - does
// not start a tree of its own. A member whose parent reference dangles is
// not a root and is not reachable from one; it stays out of the forest and
// the emitter later places it at the origin.
//
// Construction is cycle-safe. Each branch carries its own visited set,
// copied when descending, so a member may legitimately appear in two
// sibling branches of cyclic data; the branch that revisits an ancestor
// terminates with a zero-width truncated leaf. Total work is bounded by
// O(members) tree-construction steps per root.
//
// Subtree widths are computed bottom-up during construction using cfg, the
// same constants the positioning pass uses.
func BuildForest(c *member.Collection, cfg Config) []*TreeNode {
	var forest []*TreeNode
	placed := make(map[string]bool, c.Len())
	for _, root := range c.Roots() {
		if placed[root.ID] {
			continue
		}
		tree := buildNode(c, cfg, root, 0, map[string]bool{})
		tree.Walk(func(n *TreeNode) bool {
			placed[n.Member.ID] = true
			if n.Spouse != nil {
				placed[n.Spouse.ID] = true
			}
			return true
		})
		forest = append(forest, tree)
	}
	return forest
}

// buildNode recursively constructs the subtree rooted at m. visited holds
// the member IDs on the path from the root down to (but not including) m.
func buildNode(c *member.Collection, cfg Config, m *member.FamilyMember, level int, visited map[string]bool) *TreeNode {
	node := &TreeNode{
		Member: m,
		Spouse: c.Spouse(m),
		Level:  level,
	}

	// Cycle guard: the member is already an ancestor on this branch.
	if visited[m.ID] {
		node.Truncated = true
		return node
	}

	branch := maps.Clone(visited)
	branch[m.ID] = true

	parentIDs := []string{m.ID}
	if node.Spouse != nil {
		parentIDs = append(parentIDs, node.Spouse.ID)
	}
	for _, child := range c.ChildrenOf(parentIDs...) {
		if child.ID == m.ID {
			continue // self-parenting, already guarded but never descend
		}
		node.Children = append(node.Children, buildNode(c, cfg, child, level+1, branch))
	}

	node.Width = subtreeWidth(node, cfg)
	return node
}

// subtreeWidth computes the bottom-up width of a node: a leaf occupies its
// own couple footprint; an internal node occupies the larger of its couple
// footprint and its children's combined span.
func subtreeWidth(n *TreeNode, cfg Config) float64 {
	if n.Truncated {
		return 0
	}

	own := cfg.coupleWidth(n.HasSpouse())
	if len(n.Children) == 0 {
		return own
	}

	var childSpan float64
	for _, c := range n.Children {
		childSpan += c.Width
	}
	childSpan += float64(len(n.Children)-1) * cfg.HorizontalSpacing

	return max(own, childSpan)
}
