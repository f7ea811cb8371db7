package render

import (
	"strings"
	"testing"
	"time"

	"github.com/treekit/lineage/pkg/layout"
	"github.com/treekit/lineage/pkg/member"
)

func date(year int) *time.Time {
	t := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return &t
}

func testLayout() layout.Layout {
	members := []member.FamilyMember{
		{ID: "anna", FirstName: "Anna", LastName: "Vogel", SpouseID: "bert", BirthDate: date(1950), Occupation: "Teacher"},
		{ID: "bert", FirstName: "Bert", LastName: "Vogel", SpouseID: "anna"},
		{ID: "carl", FirstName: "Carl", LastName: "Vogel", FatherID: "bert", MotherID: "anna"},
	}
	return layout.Compute(member.NewCollection(members), layout.DefaultConfig())
}

func TestToDOTNodesAndEdges(t *testing.T) {
	dot := ToDOT(testLayout(), Options{})

	if !strings.HasPrefix(dot, "digraph family {") {
		t.Errorf("DOT should open a digraph: %s", dot[:40])
	}
	for _, want := range []string{
		`"anna" [label="Anna Vogel"`,
		`"bert" [label="Bert Vogel"`,
		`"carl" [label="Carl Vogel"`,
		`"anna" -> "bert" [dir=none, style=dashed, constraint=false];`,
		`"bert" -> "carl";`,
		`"anna" -> "carl";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOTPinnedPositions(t *testing.T) {
	dot := ToDOT(testLayout(), Options{})

	// Every node is pinned; y is negated because Graphviz points grow upward.
	if !strings.Contains(dot, `pos="`) {
		t.Fatalf("DOT should pin node positions:\n%s", dot)
	}
	for _, line := range strings.Split(dot, "\n") {
		if strings.Contains(line, "pos=") && !strings.Contains(line, `!"`) {
			t.Errorf("position should be pinned with !: %s", line)
		}
	}
}

func TestToDOTDetailedLabels(t *testing.T) {
	dot := ToDOT(testLayout(), Options{Detailed: true})

	if !strings.Contains(dot, "Anna Vogel\\n1950–\\nTeacher") {
		t.Errorf("detailed label should include lifespan and occupation:\n%s", dot)
	}
	// Members without extra data keep a bare name label
	if !strings.Contains(dot, `"carl" [label="Carl Vogel"`) {
		t.Errorf("member without details should keep plain label:\n%s", dot)
	}
}

func TestToDOTFallsBackToID(t *testing.T) {
	members := []member.FamilyMember{{ID: "x1"}}
	l := layout.Compute(member.NewCollection(members), layout.DefaultConfig())

	dot := ToDOT(l, Options{})
	if !strings.Contains(dot, `"x1" [label="x1"`) {
		t.Errorf("nameless member should be labeled by ID:\n%s", dot)
	}
}
