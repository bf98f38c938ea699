package grading

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

var ErrInvalidRules = errors.New("invalid rules")

// Rules configures how the multiple-choice ("test") portion is scored.
type Rules struct {
	PointsPerCorrect float64 `json:"points_per_correct"`
	PenaltyPerWrong  float64 `json:"penalty_per_wrong"`
	MaxTestScore     float64 `json:"max_test_score"`
}

// DefaultRules is a base-10 scale with a quarter point penalty per error.
func DefaultRules() Rules {
	return Rules{PointsPerCorrect: 1, PenaltyPerWrong: 0.25, MaxTestScore: 10}
}

// Validate requires positive points per correct answer and a positive
// maximum. The penalty may be zero.
func (r Rules) Validate() error {
	switch {
	case !(r.PointsPerCorrect > 0):
		return fmt.Errorf("%w: points_per_correct must be positive", ErrInvalidRules)
	case !(r.PenaltyPerWrong >= 0):
		return fmt.Errorf("%w: penalty_per_wrong must not be negative", ErrInvalidRules)
	case !(r.MaxTestScore > 0):
		return fmt.Errorf("%w: max_test_score must be positive", ErrInvalidRules)
	}
	return nil
}

// Overlay applies the fields present in raw on top of r and validates the
// result. Fields raw leaves out keep r's values; empty or null raw returns r.
func (r Rules) Overlay(raw json.RawMessage) (Rules, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return r, nil
	}
	out := r
	if err := json.Unmarshal(raw, &out); err != nil {
		return r, fmt.Errorf("%w: %v", ErrInvalidRules, err)
	}
	if err := out.Validate(); err != nil {
		return r, err
	}
	return out, nil
}

// SectionScore is the manual point value given to one open-response section.
type SectionScore struct {
	SectionID string  `json:"section_id"`
	Points    float64 `json:"points"`
}

// Input is one grading session's raw data. It is never mutated here.
type Input struct {
	TotalQuestions int            `json:"total_questions"`
	Hits           int            `json:"hits"`
	Errors         int            `json:"errors"`
	SectionScores  []SectionScore `json:"section_scores"`
}

// Breakdown is the full result of grading one Input.
type Breakdown struct {
	TestScore          float64    `json:"test_score"`
	DevelopScore       float64    `json:"develop_score"`
	WeightedTestPoints float64    `json:"weighted_test_points"`
	FinalGrade         float64    `json:"final_grade"`
	FinalGradeDisplay  string     `json:"final_grade_display"`
	Unanswered         int        `json:"unanswered"`
	Advisories         []Advisory `json:"advisories,omitempty"`
}

// ComputeTestScore normalizes the multiple-choice raw score to rules.MaxTestScore.
// The raw score is clamped at zero; no questions yields 0.
func ComputeTestScore(hits, errors, totalQuestions int, rules Rules) float64 {
	raw := float64(hits)*rules.PointsPerCorrect - float64(errors)*rules.PenaltyPerWrong
	if raw < 0 {
		raw = 0
	}
	maxRaw := float64(totalQuestions) * rules.PointsPerCorrect
	if maxRaw <= 0 {
		return 0
	}
	return raw / maxRaw * rules.MaxTestScore
}

// ComputeDevelopScore sums the section points as entered. There is no cap:
// section maxima are authored by the grader.
func ComputeDevelopScore(scores []SectionScore) float64 {
	total := 0.0
	for _, s := range scores {
		total += s.Points
	}
	return total
}

// ComputeFinalGrade weights the test portion by its percentage and adds the
// develop points unweighted.
func ComputeFinalGrade(testScore, developScore float64, w WeightSplit) float64 {
	weightedTest := testScore * (float64(w.TestPercent()) / 100)
	return weightedTest + developScore
}

// Unanswered is the blank count, never negative.
func Unanswered(totalQuestions, hits, errors int) int {
	n := totalQuestions - hits - errors
	if n < 0 {
		return 0
	}
	return n
}

// Grade evaluates in against rules and weights. It never fails; input
// inconsistencies come back as advisories next to the computed values.
func Grade(in Input, rules Rules, w WeightSplit) Breakdown {
	test := ComputeTestScore(in.Hits, in.Errors, in.TotalQuestions, rules)
	develop := ComputeDevelopScore(in.SectionScores)
	final := ComputeFinalGrade(test, develop, w)
	return Breakdown{
		TestScore:          test,
		DevelopScore:       develop,
		WeightedTestPoints: test * (float64(w.TestPercent()) / 100),
		FinalGrade:         final,
		FinalGradeDisplay:  Display(final),
		Unanswered:         Unanswered(in.TotalQuestions, in.Hits, in.Errors),
		Advisories:         Check(in),
	}
}

// Display formats a score with two decimals. Presentation only.
func Display(v float64) string {
	return fmt.Sprintf("%.2f", Round2(v))
}

// Round2 rounds half away from zero to two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
