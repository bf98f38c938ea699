package grading

import "testing"

func TestTally(t *testing.T) {
	tests := []struct {
		name    string
		key     []string
		answers []string
		want    Counts
	}{
		{name: "all correct", key: []string{"a", "b", "c"}, answers: []string{"A", "b", "c."}, want: Counts{Total: 3, Hits: 3}},
		{name: "mixed", key: []string{"a", "b", "c", "d"}, answers: []string{"a", "c", "", "d"}, want: Counts{Total: 4, Hits: 2, Errors: 1, Unanswered: 1}},
		{name: "short sheet", key: []string{"a", "b", "c"}, answers: []string{"a"}, want: Counts{Total: 3, Hits: 1, Unanswered: 2}},
		{name: "extra answers ignored", key: []string{"a"}, answers: []string{"b", "c", "d"}, want: Counts{Total: 1, Errors: 1}},
		{name: "punctuation only is blank", key: []string{"a"}, answers: []string{" - "}, want: Counts{Total: 1, Unanswered: 1}},
		{name: "words", key: []string{"Paris"}, answers: []string{"  paris!"}, want: Counts{Total: 1, Hits: 1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Tally(tc.key, tc.answers); got != tc.want {
				t.Fatalf("Tally = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestTally_FeedsCalculator(t *testing.T) {
	key := make([]string, 20)
	answers := make([]string, 20)
	for i := range key {
		key[i] = "a"
		switch {
		case i < 16:
			answers[i] = "a"
		default:
			answers[i] = "b"
		}
	}
	c := Tally(key, answers)
	got := ComputeTestScore(c.Hits, c.Errors, c.Total, Rules{PointsPerCorrect: 1, PenaltyPerWrong: 0.25, MaxTestScore: 10})
	if !approx(got, 7.5) {
		t.Fatalf("score = %v", got)
	}
}
