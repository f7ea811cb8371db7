// Package cache provides content-addressed caching for layout computation.
//
// Layouts are pure functions of (member snapshot, layout options), so cache
// keys are derived from a SHA-256 hash of the snapshot plus the options that
// influence the result. Backends:
//   - FileCache: XDG cache directory, for CLI usage
//   - RedisCache: shared cache for multi-instance serve deployments
//   - NullCache: caching disabled
package cache

import (
	"context"
	"time"
)

// TTLs per cached artifact kind. Layouts are cheap to recompute but member
// snapshots change rarely, so everything defaults to a day.
const (
	// TTLMembers is how long loaded member snapshots stay cached.
	TTLMembers = 24 * time.Hour

	// TTLLayout is how long computed layouts stay cached.
	TTLLayout = 24 * time.Hour

	// TTLArtifact is how long rendered artifacts (SVG, PNG, DOT) stay cached.
	TTLArtifact = 24 * time.Hour
)

// Cache is the storage interface shared by all backends.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return value reports a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// =============================================================================
// Keyer - Cache Key Derivation
// =============================================================================

// LayoutKeyOpts are the options that influence a layout computation and
// therefore participate in its cache key.
type LayoutKeyOpts struct {
	Mode              string  `json:"mode"`
	NodeWidth         float64 `json:"node_width"`
	NodeHeight        float64 `json:"node_height"`
	HorizontalSpacing float64 `json:"horizontal_spacing"`
	VerticalSpacing   float64 `json:"vertical_spacing"`
	SpouseSpacing     float64 `json:"spouse_spacing"`
	MarginX           float64 `json:"margin_x"`
	MarginY           float64 `json:"margin_y"`
}

// ArtifactKeyOpts are the options that influence a rendered artifact.
type ArtifactKeyOpts struct {
	Format   string `json:"format"`
	Detailed bool   `json:"detailed"`
}

// Keyer derives cache keys for the pipeline stages.
type Keyer interface {
	// MembersKey generates a key for a loaded member snapshot.
	MembersKey(source string) string

	// LayoutKey generates a key for a computed layout, derived from the
	// member snapshot hash and the layout options.
	LayoutKey(membersHash string, opts LayoutKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact, derived from
	// the layout hash and the render options.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key derivation scheme.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

// MembersKey generates a key for a loaded member snapshot.
func (k *DefaultKeyer) MembersKey(source string) string {
	return "members:" + Hash([]byte(source))
}

// LayoutKey generates a key for a computed layout.
func (k *DefaultKeyer) LayoutKey(membersHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", membersHash, opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

var _ Keyer = (*DefaultKeyer)(nil)
