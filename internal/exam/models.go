package exam

import (
	"errors"
	"strings"

	"github.com/mind-engage/mindengage-grades/internal/grading"
)

var ErrNotFound = errors.New("not found")

// Template is an exam as authored: its content, the develop sections it
// declares, and the grading rules and weights it is scored with.
type Template struct {
	ID       string              `json:"id"`
	Title    string              `json:"title"`
	Content  string              `json:"content,omitempty"`
	Sections []grading.Section   `json:"sections"`
	Rules    grading.Rules       `json:"rules"`
	Weights  grading.WeightSplit `json:"weights"`

	CreatedAt int64 `json:"created_at,omitempty"`
	UpdatedAt int64 `json:"updated_at,omitempty"`
}

// Validate checks the fields a template cannot be stored without.
func (t Template) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("id required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("title required")
	}
	if err := t.Rules.Validate(); err != nil {
		return err
	}
	return grading.ValidateSections(t.Sections)
}

// DefaultInput is the starting grading form for this template: detected
// question count and one zero score per declared section.
func (t Template) DefaultInput() grading.Input {
	return grading.Input{
		TotalQuestions: grading.CountQuestions(t.Content),
		SectionScores:  grading.DefaultSectionScores(t.Sections),
	}
}

// TemplateSummary is what list views need.
type TemplateSummary struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Sections  int    `json:"sections"`
	UpdatedAt int64  `json:"updated_at"`
}

// Record is the stored outcome of grading one exam attempt.
type Record struct {
	ID        string              `json:"id"`
	ExamID    string              `json:"exam_id"`
	Student   string              `json:"student,omitempty"`
	Input     grading.Input       `json:"input"`
	Rules     grading.Rules       `json:"rules"`
	Weights   grading.WeightSplit `json:"weights"`
	Breakdown grading.Breakdown   `json:"breakdown"`
	GradedBy  string              `json:"graded_by,omitempty"`
	CreatedAt int64               `json:"created_at"`
}
