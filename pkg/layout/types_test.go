package layout

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treekit/lineage/pkg/member"
)

func TestEdgeIDsAreDeterministic(t *testing.T) {
	assert.Equal(t, "edge-bert-carl", ParentChildEdgeID("bert", "carl"))
	assert.Equal(t, "spouse-anna-bert", SpouseEdgeID("anna", "bert"))

	// Same inputs, same IDs, across calls
	assert.Equal(t, ParentChildEdgeID("a", "b"), ParentChildEdgeID("a", "b"))
}

func TestLayoutNodeLookup(t *testing.T) {
	l := Layout{
		Nodes: []Node{
			{ID: "anna", Position: Position{X: 10, Y: 20}},
			{ID: "bert", Position: Position{X: 250, Y: 20}},
		},
	}

	n, ok := l.Node("bert")
	require.True(t, ok)
	assert.Equal(t, 250.0, n.Position.X)

	_, ok = l.Node("ghost")
	assert.False(t, ok)
}

func TestLayoutFileRoundTrip(t *testing.T) {
	c := member.NewCollection([]member.FamilyMember{
		{ID: "anna", FirstName: "Anna", LastName: "Vogel", SpouseID: "bert"},
		{ID: "bert", FirstName: "Bert", LastName: "Vogel", SpouseID: "anna"},
		{ID: "carl", FirstName: "Carl", LastName: "Vogel", FatherID: "bert", MotherID: "anna"},
	})
	l := Compute(c, DefaultConfig())

	path := filepath.Join(t.TempDir(), "family.layout.json")
	require.NoError(t, WriteLayoutFile(l, path))

	got, err := ReadLayoutFile(path)
	require.NoError(t, err)

	assert.Equal(t, l.Mode, got.Mode)
	assert.Equal(t, len(l.Nodes), len(got.Nodes))
	assert.Equal(t, len(l.Edges), len(got.Edges))

	for _, n := range l.Nodes {
		read, ok := got.Node(n.ID)
		require.True(t, ok, "node %s missing after round trip", n.ID)
		assert.Equal(t, n.Position, read.Position)
	}
}

func TestUnmarshalLayoutDefaultsMode(t *testing.T) {
	l, err := UnmarshalLayout([]byte(`{"nodes": [], "edges": []}`))
	require.NoError(t, err)
	assert.Equal(t, ModeTree, l.Mode)
}

func TestUnmarshalLayoutRejectsGarbage(t *testing.T) {
	_, err := UnmarshalLayout([]byte(`{not json`))
	assert.Error(t, err)
}

func TestReadLayoutFileMissing(t *testing.T) {
	_, err := ReadLayoutFile(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}
