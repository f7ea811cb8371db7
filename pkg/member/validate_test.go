package member

import "testing"

func kinds(findings []Finding) map[FindingKind]int {
	m := map[FindingKind]int{}
	for _, f := range findings {
		m[f.Kind]++
	}
	return m
}

func TestLintClean(t *testing.T) {
	c := NewCollection([]FamilyMember{
		{ID: "a", SpouseID: "b"},
		{ID: "b", SpouseID: "a"},
		{ID: "c", FatherID: "a", MotherID: "b"},
	})

	if findings := Lint(c); len(findings) != 0 {
		t.Errorf("clean collection produced findings: %v", findings)
	}
}

func TestLintDanglingReferences(t *testing.T) {
	c := NewCollection([]FamilyMember{
		{ID: "a", FatherID: "no-father", MotherID: "no-mother", SpouseID: "no-spouse"},
	})

	got := kinds(Lint(c))
	for _, want := range []FindingKind{FindingDanglingFather, FindingDanglingMother, FindingDanglingSpouse} {
		if got[want] != 1 {
			t.Errorf("findings missing %s: %v", want, got)
		}
	}
}

func TestLintAsymmetricSpouse(t *testing.T) {
	c := NewCollection([]FamilyMember{
		{ID: "a", SpouseID: "b"},
		{ID: "b"}, // does not link back
	})

	got := kinds(Lint(c))
	if got[FindingAsymmetricSpouse] != 1 {
		t.Errorf("expected one asymmetric-spouse finding, got %v", got)
	}
}

func TestLintDuplicateIDs(t *testing.T) {
	c := NewCollection([]FamilyMember{
		{ID: "a"},
		{ID: "a"},
		{ID: "a"},
	})

	got := kinds(Lint(c))
	if got[FindingDuplicateID] != 2 {
		t.Errorf("expected two duplicate-id findings (second and third record), got %v", got)
	}
}

func TestLintSelfReference(t *testing.T) {
	c := NewCollection([]FamilyMember{
		{ID: "a", FatherID: "a"},
	})

	got := kinds(Lint(c))
	if got[FindingSelfReference] != 1 {
		t.Errorf("expected one self-reference finding, got %v", got)
	}
}

func TestLintAncestryCycle(t *testing.T) {
	c := NewCollection([]FamilyMember{
		{ID: "a", FatherID: "b"},
		{ID: "b", FatherID: "c"},
		{ID: "c", FatherID: "a"},
		{ID: "clean"},
	})

	findings := Lint(c)
	got := kinds(findings)
	if got[FindingAncestryCycle] == 0 {
		t.Fatalf("expected ancestry-cycle findings, got %v", findings)
	}
	for _, f := range findings {
		if f.MemberID == "clean" {
			t.Errorf("member outside the cycle reported: %v", f)
		}
	}
}

func TestLintDeterministic(t *testing.T) {
	c := NewCollection([]FamilyMember{
		{ID: "a", FatherID: "ghost", SpouseID: "b"},
		{ID: "b"},
		{ID: "a"},
	})

	first := Lint(c)
	second := Lint(c)
	if len(first) != len(second) {
		t.Fatalf("lint not deterministic: %d vs %d findings", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("finding %d differs: %v vs %v", i, first[i], second[i])
		}
	}
}
