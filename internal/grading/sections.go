package grading

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownSection   = errors.New("unknown section")
	ErrDuplicateSection = errors.New("duplicate section")
)

// Section is an open-response ("develop") section declared by an exam template.
type Section struct {
	ID    string `json:"id"`
	Title string `json:"title,omitempty"`
}

// DefaultSectionScores returns one zero-point score per declared section,
// in template order.
func DefaultSectionScores(declared []Section) []SectionScore {
	out := make([]SectionScore, 0, len(declared))
	for _, s := range declared {
		out = append(out, SectionScore{SectionID: s.ID})
	}
	return out
}

// ReconcileSections maps given scores onto the declared sections. The result
// follows template order and missing sections score 0. Unknown or repeated
// section IDs are rejected.
func ReconcileSections(declared []Section, given []SectionScore) ([]SectionScore, error) {
	declared = TrimSections(declared)
	known := make(map[string]bool, len(declared))
	for _, s := range declared {
		known[s.ID] = true
	}
	byID := make(map[string]float64, len(given))
	for _, g := range given {
		id := strings.TrimSpace(g.SectionID)
		if !known[id] {
			return nil, fmt.Errorf("%w: %q", ErrUnknownSection, id)
		}
		if _, dup := byID[id]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateSection, id)
		}
		byID[id] = g.Points
	}
	out := DefaultSectionScores(declared)
	for i := range out {
		out[i].Points = byID[out[i].SectionID]
	}
	return out, nil
}

// TrimSections returns a copy of declared with surrounding spaces removed
// from IDs and titles.
func TrimSections(declared []Section) []Section {
	if declared == nil {
		return nil
	}
	out := make([]Section, len(declared))
	for i, s := range declared {
		out[i] = Section{ID: strings.TrimSpace(s.ID), Title: strings.TrimSpace(s.Title)}
	}
	return out
}

// ValidateSections checks that declared section IDs are present and unique.
func ValidateSections(declared []Section) error {
	seen := map[string]bool{}
	for _, s := range declared {
		id := strings.TrimSpace(s.ID)
		if id == "" {
			return errors.New("section.id is required")
		}
		if seen[id] {
			return fmt.Errorf("%w: %q", ErrDuplicateSection, id)
		}
		seen[id] = true
	}
	return nil
}
