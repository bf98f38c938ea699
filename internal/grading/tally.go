package grading

import "unicode"

// Counts is the hit/error/blank tally of a multiple-choice answer sheet.
type Counts struct {
	Total      int `json:"total"`
	Hits       int `json:"hits"`
	Errors     int `json:"errors"`
	Unanswered int `json:"unanswered"`
}

// Tally compares answers against key question by question. Blank answers are
// unanswered; matching ignores case, punctuation and extra spaces. Answers
// past the end of the key are ignored.
func Tally(key, answers []string) Counts {
	c := Counts{Total: len(key)}
	for i, k := range key {
		var a string
		if i < len(answers) {
			a = normalize(answers[i])
		}
		switch {
		case a == "":
			c.Unanswered++
		case a == normalize(k):
			c.Hits++
		default:
			c.Errors++
		}
	}
	return c
}

// normalize does simple casefolding and trims punctuation/extra spaces.
func normalize(s string) string {
	out := make([]rune, 0, len(s))
	space := false
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			space = true
		case unicode.IsPunct(r):
		default:
			if space && len(out) > 0 {
				out = append(out, ' ')
			}
			space = false
			out = append(out, unicode.ToLower(r))
		}
	}
	return string(out)
}
