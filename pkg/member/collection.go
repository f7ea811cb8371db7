package member

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Collection is a read-only snapshot of family members, passed to the layout
// engine per invocation. Input order is preserved: it determines the
// left-to-right placement of independent root trees.
//
// A Collection never owns its members' lifecycle - persistence lives in an
// external store. Building a Collection indexes members by ID; when the
// input contains duplicate IDs, the first occurrence wins (Lint reports the
// duplicates).
type Collection struct {
	members []FamilyMember
	byID    map[string]*FamilyMember
}

// NewCollection builds an indexed snapshot from a member slice.
// The slice is copied, so later mutation of the input does not affect the
// collection.
func NewCollection(members []FamilyMember) *Collection {
	c := &Collection{
		members: make([]FamilyMember, len(members)),
		byID:    make(map[string]*FamilyMember, len(members)),
	}
	copy(c.members, members)
	for i := range c.members {
		m := &c.members[i]
		if _, exists := c.byID[m.ID]; !exists {
			c.byID[m.ID] = m
		}
	}
	return c
}

// Len returns the number of members in the snapshot, duplicates included.
func (c *Collection) Len() int { return len(c.members) }

// Members returns the members in input order.
// The returned slice is the collection's backing storage - treat it as
// read-only.
func (c *Collection) Members() []FamilyMember { return c.members }

// Member returns the member with the given ID and true, or nil and false if
// the ID is absent (the dangling-reference case).
func (c *Collection) Member(id string) (*FamilyMember, bool) {
	m, ok := c.byID[id]
	return m, ok
}

// Spouse resolves a member's spouse reference. It returns nil when the
// member records no spouse or when the reference is dangling.
func (c *Collection) Spouse(m *FamilyMember) *FamilyMember {
	if m == nil || m.SpouseID == "" {
		return nil
	}
	s, ok := c.byID[m.SpouseID]
	if !ok {
		return nil
	}
	return s
}

// Roots returns members with no recorded parents, in input order.
func (c *Collection) Roots() []*FamilyMember {
	var roots []*FamilyMember
	for i := range c.members {
		if c.members[i].IsRoot() {
			roots = append(roots, &c.members[i])
		}
	}
	return roots
}

// ChildrenOf returns the members whose FatherID or MotherID equals any of
// the given parent IDs, in input order. Each child appears once even when
// both of its parents are listed. Empty parent IDs are ignored.
func (c *Collection) ChildrenOf(parentIDs ...string) []*FamilyMember {
	parents := make(map[string]bool, len(parentIDs))
	for _, id := range parentIDs {
		if id != "" {
			parents[id] = true
		}
	}
	if len(parents) == 0 {
		return nil
	}
	var children []*FamilyMember
	for i := range c.members {
		m := &c.members[i]
		if parents[m.FatherID] || parents[m.MotherID] {
			children = append(children, m)
		}
	}
	return children
}

// =============================================================================
// Snapshot Serialization
// =============================================================================

// MarshalMembers serializes a collection to pretty-printed JSON bytes.
// Members are written in input order for round-trip fidelity.
func MarshalMembers(c *Collection) ([]byte, error) {
	return json.MarshalIndent(c.Members(), "", "  ")
}

// UnmarshalMembers deserializes JSON bytes into an indexed collection.
func UnmarshalMembers(data []byte) (*Collection, error) {
	var members []FamilyMember
	if err := json.Unmarshal(data, &members); err != nil {
		return nil, fmt.Errorf("unmarshal members: %w", err)
	}
	return NewCollection(members), nil
}

// ReadMembers decodes a JSON member array from an io.Reader.
func ReadMembers(r io.Reader) (*Collection, error) {
	var members []FamilyMember
	if err := json.NewDecoder(r).Decode(&members); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return NewCollection(members), nil
}

// ReadMembersFile reads a JSON file and returns the decoded collection.
func ReadMembersFile(path string) (*Collection, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadMembers(f)
}

// WriteMembersFile writes a collection to a JSON file.
// The file is created with 0644 permissions.
func WriteMembersFile(c *Collection, path string) error {
	data, err := MarshalMembers(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
