package errors

import (
	"strings"
	"testing"
)

func TestValidateSnapshotID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"Valid", "snap-2024-01", false},
		{"ValidUUID", "0f8fad5b-d9cb-469f-a165-70867728950e", false},
		{"Empty", "", true},
		{"Slash", "a/b", true},
		{"Backslash", `a\b`, true},
		{"Traversal", "..", true},
		{"Control", "a\x00b", true},
		{"TooLong", strings.Repeat("x", 129), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSnapshotID(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSnapshotID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidSnapshot) {
				t.Errorf("wrong code: %v", GetCode(err))
			}
		})
	}
}

func TestValidateMemberID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"Valid", "member-17", false},
		{"Empty", "", true},
		{"Control", "a\tb", true},
		{"TooLong", strings.Repeat("x", 257), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMemberID(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateMemberID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
		})
	}
}
