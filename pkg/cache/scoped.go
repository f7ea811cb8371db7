package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
// This is useful when serving multiple families from one process, where
// each family's snapshots need a separate cache namespace.
//
// Example usage:
//
//	// Family-specific keys for private trees
//	familyKeyer := NewScopedKeyer(NewDefaultKeyer(), "family:abc123:")
//
//	// Global keys for shared demo data
//	globalKeyer := NewDefaultKeyer()
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// MembersKey generates a prefixed key for member snapshot caching.
func (k *ScopedKeyer) MembersKey(source string) string {
	return k.prefix + k.inner.MembersKey(source)
}

// LayoutKey generates a prefixed key for layout caching.
func (k *ScopedKeyer) LayoutKey(membersHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(membersHash, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
