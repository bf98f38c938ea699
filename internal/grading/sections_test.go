package grading

import (
	"errors"
	"testing"
)

var declared = []Section{{ID: "essay"}, {ID: "problem-1"}, {ID: "problem-2"}}

func TestDefaultSectionScores(t *testing.T) {
	got := DefaultSectionScores(declared)
	if len(got) != 3 {
		t.Fatalf("len = %d", len(got))
	}
	for i, s := range got {
		if s.SectionID != declared[i].ID || s.Points != 0 {
			t.Fatalf("entry %d = %+v", i, s)
		}
	}
	if got := DefaultSectionScores(nil); len(got) != 0 {
		t.Fatalf("nil template: %+v", got)
	}
}

func TestReconcileSections(t *testing.T) {
	got, err := ReconcileSections(declared, []SectionScore{{"problem-2", 1.5}, {"essay", 2}})
	if err != nil {
		t.Fatal(err)
	}
	want := []SectionScore{{"essay", 2}, {"problem-1", 0}, {"problem-2", 1.5}}
	if len(got) != len(want) {
		t.Fatalf("got %+v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("entry %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestReconcileSections_Rejects(t *testing.T) {
	if _, err := ReconcileSections(declared, []SectionScore{{"bogus", 1}}); !errors.Is(err, ErrUnknownSection) {
		t.Fatalf("unknown: err = %v", err)
	}
	if _, err := ReconcileSections(declared, []SectionScore{{"essay", 1}, {"essay", 2}}); !errors.Is(err, ErrDuplicateSection) {
		t.Fatalf("duplicate: err = %v", err)
	}
}

func TestValidateSections(t *testing.T) {
	if err := ValidateSections(declared); err != nil {
		t.Fatal(err)
	}
	if err := ValidateSections([]Section{{ID: ""}}); err == nil {
		t.Fatal("expected error for empty id")
	}
	if err := ValidateSections([]Section{{ID: "a"}, {ID: "a"}}); !errors.Is(err, ErrDuplicateSection) {
		t.Fatalf("err = %v", err)
	}
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name  string
		in    Input
		codes []string
	}{
		{name: "consistent", in: Input{TotalQuestions: 10, Hits: 5, Errors: 5}},
		{name: "exceeds", in: Input{TotalQuestions: 10, Hits: 8, Errors: 3}, codes: []string{AdvisoryAnsweredExceedsTotal}},
		{name: "negative", in: Input{TotalQuestions: 10, Hits: -1}, codes: []string{AdvisoryNegativeInput}},
		{name: "negative section", in: Input{TotalQuestions: 1, SectionScores: []SectionScore{{"a", -2}}}, codes: []string{AdvisoryNegativeSection}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Check(tc.in)
			if len(got) != len(tc.codes) {
				t.Fatalf("advisories = %+v", got)
			}
			for i, c := range tc.codes {
				if got[i].Code != c || got[i].Message == "" {
					t.Fatalf("advisory %d = %+v, want code %s", i, got[i], c)
				}
			}
		})
	}
}

func TestReconcileSections_TrimsDeclaredIDs(t *testing.T) {
	padded := []Section{{ID: " s1"}, {ID: "s2 ", Title: " Proof "}}
	got, err := ReconcileSections(padded, []SectionScore{{SectionID: "s1", Points: 3}})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != (SectionScore{SectionID: "s1", Points: 3}) || got[1].SectionID != "s2" {
		t.Fatalf("got %+v", got)
	}

	trimmed := TrimSections(padded)
	if trimmed[0].ID != "s1" || trimmed[1] != (Section{ID: "s2", Title: "Proof"}) {
		t.Fatalf("trimmed = %+v", trimmed)
	}
	if padded[0].ID != " s1" {
		t.Fatal("TrimSections must not modify its input")
	}
	if TrimSections(nil) != nil {
		t.Fatal("nil in, nil out")
	}
}
