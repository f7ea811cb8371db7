package member

import "fmt"

// FindingKind classifies a relationship anomaly reported by Lint.
//
// Anomalies never fail the layout path - the engine degrades gracefully on
// all of them. Lint exists so editing surfaces can surface data problems to
// the user instead of silently rendering an imperfect tree.
type FindingKind string

const (
	// FindingDuplicateID reports a member ID that occurs more than once.
	FindingDuplicateID FindingKind = "duplicate-id"

	// FindingDanglingFather reports a FatherID absent from the collection.
	FindingDanglingFather FindingKind = "dangling-father"

	// FindingDanglingMother reports a MotherID absent from the collection.
	FindingDanglingMother FindingKind = "dangling-mother"

	// FindingDanglingSpouse reports a SpouseID absent from the collection.
	FindingDanglingSpouse FindingKind = "dangling-spouse"

	// FindingAsymmetricSpouse reports A.SpouseID = B where B.SpouseID != A.
	FindingAsymmetricSpouse FindingKind = "asymmetric-spouse"

	// FindingAncestryCycle reports a member recorded as its own ancestor,
	// directly or transitively.
	FindingAncestryCycle FindingKind = "ancestry-cycle"

	// FindingSelfReference reports a member listing itself as parent or spouse.
	FindingSelfReference FindingKind = "self-reference"
)

// Finding is one relationship anomaly in a collection.
type Finding struct {
	Kind     FindingKind `json:"kind" bson:"kind"`
	MemberID string      `json:"member_id" bson:"member_id"`
	RefID    string      `json:"ref_id,omitempty" bson:"ref_id,omitempty"`
	Message  string      `json:"message" bson:"message"`
}

func (f Finding) String() string {
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

// Lint checks a collection for relationship anomalies and returns the
// findings in a deterministic order (input order, one pass per check).
// A clean collection returns an empty slice.
func Lint(c *Collection) []Finding {
	var findings []Finding

	findings = append(findings, lintDuplicates(c)...)
	findings = append(findings, lintReferences(c)...)
	findings = append(findings, lintCycles(c)...)

	return findings
}

func lintDuplicates(c *Collection) []Finding {
	var findings []Finding
	seen := make(map[string]bool, c.Len())
	for _, m := range c.Members() {
		if seen[m.ID] {
			findings = append(findings, Finding{
				Kind:     FindingDuplicateID,
				MemberID: m.ID,
				Message:  fmt.Sprintf("member ID %q occurs more than once", m.ID),
			})
		}
		seen[m.ID] = true
	}
	return findings
}

func lintReferences(c *Collection) []Finding {
	var findings []Finding
	for _, m := range c.Members() {
		if m.FatherID == m.ID || m.MotherID == m.ID || m.SpouseID == m.ID {
			findings = append(findings, Finding{
				Kind:     FindingSelfReference,
				MemberID: m.ID,
				RefID:    m.ID,
				Message:  fmt.Sprintf("member %q references itself", m.ID),
			})
		}
		if m.FatherID != "" {
			if _, ok := c.Member(m.FatherID); !ok {
				findings = append(findings, Finding{
					Kind:     FindingDanglingFather,
					MemberID: m.ID,
					RefID:    m.FatherID,
					Message:  fmt.Sprintf("member %q records father %q, which does not exist", m.ID, m.FatherID),
				})
			}
		}
		if m.MotherID != "" {
			if _, ok := c.Member(m.MotherID); !ok {
				findings = append(findings, Finding{
					Kind:     FindingDanglingMother,
					MemberID: m.ID,
					RefID:    m.MotherID,
					Message:  fmt.Sprintf("member %q records mother %q, which does not exist", m.ID, m.MotherID),
				})
			}
		}
		if m.SpouseID != "" && m.SpouseID != m.ID {
			spouse, ok := c.Member(m.SpouseID)
			switch {
			case !ok:
				findings = append(findings, Finding{
					Kind:     FindingDanglingSpouse,
					MemberID: m.ID,
					RefID:    m.SpouseID,
					Message:  fmt.Sprintf("member %q records spouse %q, which does not exist", m.ID, m.SpouseID),
				})
			case spouse.SpouseID != m.ID:
				findings = append(findings, Finding{
					Kind:     FindingAsymmetricSpouse,
					MemberID: m.ID,
					RefID:    m.SpouseID,
					Message:  fmt.Sprintf("member %q records spouse %q, but %q does not link back", m.ID, m.SpouseID, m.SpouseID),
				})
			}
		}
	}
	return findings
}

// lintCycles detects members that are their own ancestors by walking
// parent references with white/gray/black coloring, the same scheme the
// layout's tree builder guards against with per-branch visited sets.
func lintCycles(c *Collection) []Finding {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, c.Len())
	inCycle := make(map[string]bool)

	var walk func(id string)
	walk = func(id string) {
		color[id] = gray
		m, ok := c.Member(id)
		if ok {
			for _, parent := range []string{m.FatherID, m.MotherID} {
				if parent == "" {
					continue
				}
				if _, exists := c.Member(parent); !exists {
					continue // dangling, reported by lintReferences
				}
				switch color[parent] {
				case white:
					walk(parent)
				case gray:
					inCycle[parent] = true
				}
			}
		}
		color[id] = black
	}

	for _, m := range c.Members() {
		if color[m.ID] == white {
			walk(m.ID)
		}
	}

	var findings []Finding
	for _, m := range c.Members() {
		if inCycle[m.ID] {
			findings = append(findings, Finding{
				Kind:     FindingAncestryCycle,
				MemberID: m.ID,
				Message:  fmt.Sprintf("member %q is recorded as its own ancestor", m.ID),
			})
		}
	}
	return findings
}
