package grading

import "regexp"

// numbered matches "12." or "12)" at the start of a line, followed by
// whitespace or end of line. "1.5 kg" is not a question.
var numbered = regexp.MustCompile(`(?m)^[ \t]*\d+[.)](?:\s|$)`)

// CountQuestions counts numbered question lines in exam content.
func CountQuestions(content string) int {
	return len(numbered.FindAllStringIndex(content, -1))
}

// ResolveTotal prefers a positive manual override over the detected count.
func ResolveTotal(content string, override int) int {
	if override > 0 {
		return override
	}
	return CountQuestions(content)
}
