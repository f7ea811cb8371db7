package errors

import (
	"strings"
	"unicode"
)

// ValidateSnapshotID validates a snapshot identifier for safety.
// Snapshot IDs name files on disk and documents in the database, so the
// rules are intentionally conservative:
//   - No empty IDs
//   - No control characters or null bytes
//   - No path separators or traversal sequences
//   - Maximum length of 128 characters
func ValidateSnapshotID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidSnapshot, "snapshot ID cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidSnapshot, "snapshot ID too long (max 128 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidSnapshot, "snapshot ID contains invalid control characters")
		}
	}

	if strings.ContainsAny(id, "/\\") || strings.Contains(id, "..") {
		return New(ErrCodeInvalidSnapshot, "snapshot ID contains path characters")
	}

	return nil
}

// ValidateMemberID validates a member identifier.
// Member IDs are opaque, but they participate in derived edge identifiers,
// so the same conservative character rules apply.
func ValidateMemberID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidMembers, "member ID cannot be empty")
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidMembers, "member ID too long (max 256 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidMembers, "member ID contains invalid control characters")
		}
	}

	return nil
}
