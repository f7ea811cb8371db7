package layout_test

import (
	"fmt"

	"github.com/treekit/lineage/pkg/layout"
	"github.com/treekit/lineage/pkg/member"
)

func ExampleCompute() {
	c := member.NewCollection([]member.FamilyMember{
		{ID: "anna", FirstName: "Anna", SpouseID: "bert"},
		{ID: "bert", FirstName: "Bert", SpouseID: "anna"},
		{ID: "carl", FirstName: "Carl", FatherID: "bert", MotherID: "anna"},
	})

	cfg := layout.Config{
		NodeWidth:         100,
		NodeHeight:        50,
		HorizontalSpacing: 20,
		VerticalSpacing:   30,
		SpouseSpacing:     120,
	}

	l := layout.Compute(c, cfg)
	for _, n := range l.Nodes {
		fmt.Printf("%s at (%.0f, %.0f)\n", n.ID, n.Position.X, n.Position.Y)
	}
	for _, e := range l.Edges {
		fmt.Printf("%s: %s -> %s\n", e.Type, e.Source, e.Target)
	}
	// Output:
	// anna at (0, 0)
	// bert at (120, 0)
	// carl at (0, 80)
	// spouse: anna -> bert
	// parent-child: bert -> carl
	// parent-child: anna -> carl
}

func ExampleComputeGrid() {
	c := member.NewCollection([]member.FamilyMember{
		{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"},
	})

	l := layout.ComputeGrid(c, layout.DefaultConfig())
	fmt.Println("mode:", l.Mode)
	fmt.Println("nodes:", len(l.Nodes))
	// Output:
	// mode: grid
	// nodes: 4
}
