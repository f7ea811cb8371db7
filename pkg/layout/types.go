package layout

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/treekit/lineage/pkg/member"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Layout modes.
const (
	ModeTree = "tree" // hierarchical, subtree-width aware
	ModeGrid = "grid" // row-major fallback grid
)

// Edge types understood by the rendering layer.
const (
	EdgeTypeParentChild = "parent-child"
	EdgeTypeSpouse      = "spouse"
)

// Connection-point handle tokens. These are fixed names understood by the
// rendering layer's connection-point model.
const (
	HandleParent      = "parent"
	HandleChild       = "child"
	HandleSpouseLeft  = "spouse-left"
	HandleSpouseRight = "spouse-right"
)

// =============================================================================
// Output Types
// =============================================================================

// Position is an absolute 2-D coordinate in layout units.
type Position struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Node is one positioned member in the layout output. Exactly one Node is
// emitted per input member, including members unreachable from any root due
// to malformed data (those default to the origin position).
type Node struct {
	ID       string   `json:"id" bson:"id"`
	Position Position `json:"position" bson:"position"`
	Data     NodeData `json:"data" bson:"data"`
}

// NodeData is the payload attached to each node. Member is a copy of the
// input record. Extra is an opaque decoration slot for callers (editing
// surfaces attach their handler references there); the engine never reads
// or writes it.
type NodeData struct {
	Member member.FamilyMember `json:"member" bson:"member"`
	Extra  map[string]any      `json:"extra,omitempty" bson:"extra,omitempty"`
}

// Edge is a rendered connection between two member nodes.
//
// Parent-child edges run from the parent's child-handle to the child's
// parent-handle. Spouse edges connect the couple's facing handles and are
// emitted exactly once per mutually-linked couple.
type Edge struct {
	ID           string `json:"id" bson:"id"`
	Source       string `json:"source" bson:"source"`
	Target       string `json:"target" bson:"target"`
	SourceHandle string `json:"source_handle" bson:"source_handle"`
	TargetHandle string `json:"target_handle" bson:"target_handle"`
	Type         string `json:"type" bson:"type"`
}

// ParentChildEdgeID derives the deterministic identifier for a parent-child
// edge. Repeated layout runs over the same data produce identical IDs.
func ParentChildEdgeID(parentID, childID string) string {
	return fmt.Sprintf("edge-%s-%s", parentID, childID)
}

// SpouseEdgeID derives the deterministic identifier for a spouse edge.
// The caller is responsible for passing the couple in emission order
// (lexicographically smaller ID first).
func SpouseEdgeID(leftID, rightID string) string {
	return fmt.Sprintf("spouse-%s-%s", leftID, rightID)
}

// Layout is the renderer-agnostic output pair of the engine, plus the mode
// and configuration that produced it so cached layouts remain reproducible.
type Layout struct {
	Mode   string `json:"mode" bson:"mode"`
	Config Config `json:"config" bson:"config"`
	Nodes  []Node `json:"nodes" bson:"nodes"`
	Edges  []Edge `json:"edges" bson:"edges"`
}

// Node returns the positioned node with the given member ID and true, or a
// zero Node and false if absent.
func (l *Layout) Node(id string) (Node, bool) {
	for _, n := range l.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	if l.Mode == "" {
		l.Mode = ModeTree
	}
	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}

// errInvalidConfig formats a configuration validation failure.
func errInvalidConfig(field string, value float64) error {
	return fmt.Errorf("invalid layout config: %s = %v", field, value)
}
