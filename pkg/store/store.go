// Package store persists named member snapshots.
//
// A snapshot is an immutable-by-ID collection of family members plus
// bookkeeping timestamps. Backends:
//   - FileStore: JSON files in a data directory, for CLI usage
//   - MongoStore: MongoDB-backed storage for serve deployments
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/treekit/lineage/pkg/member"
)

// Sentinel errors for snapshot operations.
var (
	// ErrNotFound is returned when a snapshot does not exist.
	ErrNotFound = errors.New("snapshot not found")
)

// Snapshot is a named, persisted set of family members.
type Snapshot struct {
	ID        string                `json:"id" bson:"_id"`
	Name      string                `json:"name,omitempty" bson:"name,omitempty"`
	Members   []member.FamilyMember `json:"members" bson:"members"`
	CreatedAt time.Time             `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time             `json:"updated_at" bson:"updated_at"`
}

// Collection builds an indexed collection over the snapshot's members.
func (s *Snapshot) Collection() *member.Collection {
	return member.NewCollection(s.Members)
}

func nowUTC() time.Time { return time.Now().UTC() }

// NewSnapshot creates a snapshot with a fresh UUID and current timestamps.
func NewSnapshot(name string, members []member.FamilyMember) *Snapshot {
	now := nowUTC()
	return &Snapshot{
		ID:        uuid.NewString(),
		Name:      name,
		Members:   members,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Store is the interface for snapshot storage backends.
type Store interface {
	// Get retrieves a snapshot by ID. Returns ErrNotFound if absent.
	Get(ctx context.Context, id string) (*Snapshot, error)

	// Put stores a snapshot, replacing any existing snapshot with the
	// same ID. UpdatedAt is refreshed.
	Put(ctx context.Context, snap *Snapshot) error

	// Delete removes a snapshot. Deleting an absent ID is not an error.
	Delete(ctx context.Context, id string) error

	// List returns summaries of all stored snapshots, newest first.
	List(ctx context.Context) ([]Summary, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// Summary describes a stored snapshot without its member payload.
type Summary struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name,omitempty" bson:"name,omitempty"`
	Count     int       `json:"count" bson:"count"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
