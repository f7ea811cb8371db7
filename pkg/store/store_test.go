package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/treekit/lineage/pkg/member"
)

func testMembers() []member.FamilyMember {
	return []member.FamilyMember{
		{ID: "anna", FirstName: "Anna", LastName: "Vogel", SpouseID: "bert"},
		{ID: "bert", FirstName: "Bert", LastName: "Vogel", SpouseID: "anna"},
		{ID: "carl", FirstName: "Carl", LastName: "Vogel", FatherID: "bert", MotherID: "anna"},
	}
}

func TestNewSnapshot(t *testing.T) {
	snap := NewSnapshot("vogels", testMembers())

	if snap.ID == "" {
		t.Error("NewSnapshot should assign an ID")
	}
	if snap.Name != "vogels" {
		t.Errorf("unexpected name: %s", snap.Name)
	}
	if len(snap.Members) != 3 {
		t.Errorf("unexpected member count: %d", len(snap.Members))
	}
	if snap.CreatedAt.IsZero() || snap.UpdatedAt.IsZero() {
		t.Error("timestamps should be set")
	}

	// IDs are unique across snapshots
	other := NewSnapshot("vogels", testMembers())
	if snap.ID == other.ID {
		t.Error("snapshot IDs should be unique")
	}
}

func TestSnapshotCollection(t *testing.T) {
	snap := NewSnapshot("vogels", testMembers())
	c := snap.Collection()

	if c.Len() != 3 {
		t.Fatalf("collection should index all members, got %d", c.Len())
	}
	if m, ok := c.Member("carl"); !ok || m == nil {
		t.Error("collection should resolve member by ID")
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore error: %v", err)
	}
	defer s.Close(ctx)

	snap := NewSnapshot("vogels", testMembers())
	if err := s.Put(ctx, snap); err != nil {
		t.Fatalf("Put error: %v", err)
	}

	got, err := s.Get(ctx, snap.ID)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.ID != snap.ID || got.Name != "vogels" {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if len(got.Members) != 3 {
		t.Errorf("members should survive round trip, got %d", len(got.Members))
	}
	if got.Members[2].FatherID != "bert" {
		t.Errorf("relational fields should survive round trip: %+v", got.Members[2])
	}
}

func TestFileStoreGetNotFound(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore error: %v", err)
	}

	_, err = s.Get(ctx, "does-not-exist")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestFileStoreRejectsUnsafeIDs(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore error: %v", err)
	}

	for _, id := range []string{"", "../escape", "a/b", `a\b`} {
		if _, err := s.Get(ctx, id); err == nil {
			t.Errorf("Get(%q) should reject unsafe ID", id)
		}
		if err := s.Put(ctx, &Snapshot{ID: id}); err == nil {
			t.Errorf("Put(%q) should reject unsafe ID", id)
		}
	}
}

func TestFileStorePutReplacesAndRefreshesUpdatedAt(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore error: %v", err)
	}

	snap := NewSnapshot("v1", testMembers())
	firstUpdated := snap.UpdatedAt
	if err := s.Put(ctx, snap); err != nil {
		t.Fatalf("Put error: %v", err)
	}

	time.Sleep(5 * time.Millisecond)
	snap.Name = "v2"
	if err := s.Put(ctx, snap); err != nil {
		t.Fatalf("second Put error: %v", err)
	}

	got, err := s.Get(ctx, snap.ID)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.Name != "v2" {
		t.Errorf("Put should replace existing snapshot, got name %s", got.Name)
	}
	if !got.UpdatedAt.After(firstUpdated) {
		t.Error("Put should refresh UpdatedAt")
	}
}

func TestFileStoreDelete(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore error: %v", err)
	}

	snap := NewSnapshot("", testMembers())
	if err := s.Put(ctx, snap); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	if err := s.Delete(ctx, snap.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, err := s.Get(ctx, snap.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleted snapshot should be gone, got %v", err)
	}

	// Deleting an absent ID is not an error
	if err := s.Delete(ctx, snap.ID); err != nil {
		t.Errorf("Delete of absent ID should not error: %v", err)
	}
}

func TestFileStoreList(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore error: %v", err)
	}

	first := NewSnapshot("first", testMembers())
	if err := s.Put(ctx, first); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	second := NewSnapshot("second", testMembers()[:1])
	if err := s.Put(ctx, second); err != nil {
		t.Fatalf("Put error: %v", err)
	}

	summaries, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}

	// Newest first
	if summaries[0].ID != second.ID {
		t.Errorf("expected newest snapshot first, got %s", summaries[0].ID)
	}
	if summaries[0].Count != 1 || summaries[1].Count != 3 {
		t.Errorf("summaries should carry member counts: %+v", summaries)
	}
}
