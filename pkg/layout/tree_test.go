package layout

import (
	"testing"

	"github.com/treekit/lineage/pkg/member"
)

// testConfig uses round numbers so expected widths and positions are easy
// to verify by hand.
func testConfig() Config {
	return Config{
		NodeWidth:         100,
		NodeHeight:        50,
		HorizontalSpacing: 20,
		VerticalSpacing:   30,
		SpouseSpacing:     120,
		MarginX:           0,
		MarginY:           0,
	}
}

func collect(members ...member.FamilyMember) *member.Collection {
	return member.NewCollection(members)
}

func TestBuildForestRoots(t *testing.T) {
	c := collect(
		member.FamilyMember{ID: "a"},
		member.FamilyMember{ID: "b", FatherID: "a"},
		member.FamilyMember{ID: "c"},
	)

	forest := BuildForest(c, testConfig())
	if len(forest) != 2 {
		t.Fatalf("forest size = %d, want 2", len(forest))
	}
	if forest[0].Member.ID != "a" || forest[1].Member.ID != "c" {
		t.Errorf("root order = %s, %s, want a, c", forest[0].Member.ID, forest[1].Member.ID)
	}
	if len(forest[0].Children) != 1 || forest[0].Children[0].Member.ID != "b" {
		t.Errorf("a should have the single child b")
	}
	if forest[0].Children[0].Level != 1 {
		t.Errorf("child level = %d, want 1", forest[0].Children[0].Level)
	}
}

func TestBuildForestMergesCoupleChildren(t *testing.T) {
	// Children record a as father and b as mother; they must appear once,
	// in the tree rooted at a, with b resolved as spouse.
	c := collect(
		member.FamilyMember{ID: "a", SpouseID: "b"},
		member.FamilyMember{ID: "b", SpouseID: "a"},
		member.FamilyMember{ID: "c", FatherID: "a", MotherID: "b"},
		member.FamilyMember{ID: "d", FatherID: "a", MotherID: "b"},
	)

	forest := BuildForest(c, testConfig())
	if len(forest) != 1 {
		t.Fatalf("forest size = %d, want 1 (spouse must not start a second tree)", len(forest))
	}

	root := forest[0]
	if !root.HasSpouse() || root.Spouse.ID != "b" {
		t.Fatalf("root spouse not resolved")
	}
	if len(root.Children) != 2 {
		t.Fatalf("children = %d, want 2", len(root.Children))
	}
	if root.Children[0].Member.ID != "c" || root.Children[1].Member.ID != "d" {
		t.Errorf("sibling order = %s, %s, want c, d",
			root.Children[0].Member.ID, root.Children[1].Member.ID)
	}
}

func TestBuildForestDanglingSpouse(t *testing.T) {
	c := collect(member.FamilyMember{ID: "a", SpouseID: "ghost"})

	forest := BuildForest(c, testConfig())
	if len(forest) != 1 {
		t.Fatalf("forest size = %d, want 1", len(forest))
	}
	if forest[0].HasSpouse() {
		t.Error("dangling spouse reference must resolve to no spouse")
	}
	if got := forest[0].Width; got != 100 {
		t.Errorf("width = %v, want 100 (no spouse footprint)", got)
	}
}

func TestSubtreeWidths(t *testing.T) {
	cfg := testConfig()

	tests := []struct {
		name    string
		members []member.FamilyMember
		want    float64
	}{
		{
			name:    "LeafNoSpouse",
			members: []member.FamilyMember{{ID: "a"}},
			want:    100,
		},
		{
			name: "LeafWithSpouse",
			members: []member.FamilyMember{
				{ID: "a", SpouseID: "b"},
				{ID: "b", SpouseID: "a"},
			},
			want: 220, // NodeWidth + SpouseSpacing
		},
		{
			name: "ChildrenWiderThanCouple",
			members: []member.FamilyMember{
				{ID: "a"},
				{ID: "b", FatherID: "a"},
				{ID: "c", FatherID: "a"},
				{ID: "d", FatherID: "a"},
			},
			want: 340, // 3*100 + 2*20
		},
		{
			name: "CoupleWiderThanChildren",
			members: []member.FamilyMember{
				{ID: "a", SpouseID: "b"},
				{ID: "b", SpouseID: "a"},
				{ID: "c", FatherID: "a"},
			},
			want: 220, // couple footprint dominates the single 100-wide child
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			forest := BuildForest(collect(tt.members...), cfg)
			if len(forest) == 0 {
				t.Fatal("empty forest")
			}
			if got := forest[0].Width; got != tt.want {
				t.Errorf("root width = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuildForestCycleTerminates(t *testing.T) {
	// a and b list each other as parents: pathological, must terminate.
	c := collect(
		member.FamilyMember{ID: "a", FatherID: "b"},
		member.FamilyMember{ID: "b", FatherID: "a"},
		member.FamilyMember{ID: "root"},
		member.FamilyMember{ID: "kid", FatherID: "root", MotherID: "kid2"},
	)

	forest := BuildForest(c, testConfig())
	for _, tree := range forest {
		if n := tree.Size(); n > c.Len()+1 {
			t.Errorf("tree size %d exceeds input bound", n)
		}
	}
}

func TestBuildForestSelfParent(t *testing.T) {
	// A member listing itself as its own father must not recurse.
	c := collect(member.FamilyMember{ID: "a"}, member.FamilyMember{ID: "b", FatherID: "b"})

	forest := BuildForest(c, testConfig())
	if len(forest) != 1 {
		t.Fatalf("forest size = %d, want 1", len(forest))
	}
	if forest[0].Member.ID != "a" {
		t.Errorf("root = %s, want a", forest[0].Member.ID)
	}
}

func TestTruncatedBranchHasZeroWidth(t *testing.T) {
	// c's parents form a loop through c itself: c -> a -> c.
	c := collect(
		member.FamilyMember{ID: "a", FatherID: "c"},
		member.FamilyMember{ID: "c", FatherID: "a"},
	)

	// Neither member is a root; forest is empty but Lint and the emitter
	// still see them. Force a build from a to check truncation directly.
	forest := BuildForest(c, testConfig())
	if len(forest) != 0 {
		t.Fatalf("forest size = %d, want 0 (no parentless member)", len(forest))
	}

	m, _ := c.Member("a")
	tree := buildNode(c, testConfig(), m, 0, map[string]bool{})
	found := false
	tree.Walk(func(n *TreeNode) bool {
		if n.Truncated {
			found = true
			if n.Width != 0 {
				t.Errorf("truncated node width = %v, want 0", n.Width)
			}
			if len(n.Children) != 0 {
				t.Errorf("truncated node must not descend")
			}
		}
		return true
	})
	if !found {
		t.Error("expected a truncated node in the cyclic branch")
	}
}
