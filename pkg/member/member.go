package member

import (
	"strings"
	"time"
)

// FamilyMember is the sole entity of the lineage data model. Members are
// related to each other only through ID back-references (FatherID, MotherID,
// SpouseID); there is no ownership between records and no cascading.
//
// All relationship fields are optional. A member with neither a father nor
// a mother recorded is a root member.
type FamilyMember struct {
	ID         string `json:"id" bson:"id"`
	FirstName  string `json:"first_name" bson:"first_name"`
	LastName   string `json:"last_name" bson:"last_name"`
	MaidenName string `json:"maiden_name,omitempty" bson:"maiden_name,omitempty"`

	BirthDate       *time.Time `json:"birth_date,omitempty" bson:"birth_date,omitempty"`
	DeathDate       *time.Time `json:"death_date,omitempty" bson:"death_date,omitempty"`
	BirthPlace      string     `json:"birth_place,omitempty" bson:"birth_place,omitempty"`
	Occupation      string     `json:"occupation,omitempty" bson:"occupation,omitempty"`
	Biography       string     `json:"biography,omitempty" bson:"biography,omitempty"`
	ProfilePhotoURL string     `json:"profile_photo_url,omitempty" bson:"profile_photo_url,omitempty"`

	// Relationship back-references. These are referential only: they may
	// point at IDs absent from the collection (dangling), and spouse links
	// are expected but not required to be symmetric.
	FatherID string `json:"father_id,omitempty" bson:"father_id,omitempty"`
	MotherID string `json:"mother_id,omitempty" bson:"mother_id,omitempty"`
	SpouseID string `json:"spouse_id,omitempty" bson:"spouse_id,omitempty"`

	CreatedAt time.Time `json:"created_at,omitzero" bson:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitzero" bson:"updated_at,omitempty"`
}

// FullName returns "FirstName LastName", falling back to the ID when both
// name fields are empty.
func (m *FamilyMember) FullName() string {
	name := strings.TrimSpace(m.FirstName + " " + m.LastName)
	if name == "" {
		return m.ID
	}
	return name
}

// IsRoot reports whether the member has no recorded parents.
func (m *FamilyMember) IsRoot() bool {
	return m.FatherID == "" && m.MotherID == ""
}

// HasSpouse reports whether the member records a spouse reference.
// The reference may still be dangling; use Collection.Spouse to resolve it.
func (m *FamilyMember) HasSpouse() bool {
	return m.SpouseID != ""
}

// Lifespan returns a human-readable "YYYY–YYYY" span. Missing dates are
// rendered as an empty side, and a fully unknown lifespan returns "".
func (m *FamilyMember) Lifespan() string {
	if m.BirthDate == nil && m.DeathDate == nil {
		return ""
	}
	var b strings.Builder
	if m.BirthDate != nil {
		b.WriteString(m.BirthDate.Format("2006"))
	}
	b.WriteString("–")
	if m.DeathDate != nil {
		b.WriteString(m.DeathDate.Format("2006"))
	}
	return b.String()
}
