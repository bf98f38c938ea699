package grading

import "fmt"

const (
	AdvisoryAnsweredExceedsTotal = "answered_exceeds_total"
	AdvisoryNegativeInput        = "negative_input"
	AdvisoryNegativeSection      = "negative_section_points"
)

// Advisory is a non-blocking warning about inconsistent input.
type Advisory struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Check reports input inconsistencies. The numbers are still graded as given.
func Check(in Input) []Advisory {
	var out []Advisory
	if in.Hits < 0 || in.Errors < 0 || in.TotalQuestions < 0 {
		out = append(out, Advisory{
			Code:    AdvisoryNegativeInput,
			Message: fmt.Sprintf("negative count (hits=%d errors=%d total=%d)", in.Hits, in.Errors, in.TotalQuestions),
		})
	}
	if answered := in.Hits + in.Errors; answered > in.TotalQuestions {
		out = append(out, Advisory{
			Code:    AdvisoryAnsweredExceedsTotal,
			Message: fmt.Sprintf("hits + errors (%d) exceeds total questions (%d)", answered, in.TotalQuestions),
		})
	}
	for _, s := range in.SectionScores {
		if s.Points < 0 {
			out = append(out, Advisory{
				Code:    AdvisoryNegativeSection,
				Message: fmt.Sprintf("section %s has negative points (%g)", s.SectionID, s.Points),
			})
		}
	}
	return out
}
