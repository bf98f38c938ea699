package grading

import "encoding/json"

// DefaultTestWeight is the test share used when nothing else is configured.
const DefaultTestWeight = 60

// WeightSplit allocates the final grade between the test and develop parts.
// Only the test share is stored, so the two always add up to 100.
type WeightSplit struct {
	test int
}

// NewWeightSplit returns a split with the given test share, clamped to 0..100.
func NewWeightSplit(testPercent int) WeightSplit {
	return WeightSplit{test: clampPercent(testPercent)}
}

// DefaultWeights returns the DefaultTestWeight split.
func DefaultWeights() WeightSplit { return NewWeightSplit(DefaultTestWeight) }

func (w WeightSplit) TestPercent() int    { return w.test }
func (w WeightSplit) DevelopPercent() int { return 100 - w.test }

// WithTest sets the test share and recomputes the develop share.
func (w WeightSplit) WithTest(p int) WeightSplit { return NewWeightSplit(p) }

// WithDevelop sets the develop share and recomputes the test share.
func (w WeightSplit) WithDevelop(p int) WeightSplit { return NewWeightSplit(100 - clampPercent(p)) }

type weightSplitJSON struct {
	Test    *int `json:"test_weight_percent,omitempty"`
	Develop *int `json:"develop_weight_percent,omitempty"`
}

func (w WeightSplit) MarshalJSON() ([]byte, error) {
	t, d := w.TestPercent(), w.DevelopPercent()
	return json.Marshal(weightSplitJSON{Test: &t, Develop: &d})
}

// UnmarshalJSON accepts either share; the test share wins when both are set.
// An empty object decodes to the default split.
func (w *WeightSplit) UnmarshalJSON(b []byte) error {
	var raw weightSplitJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	switch {
	case raw.Test != nil:
		*w = NewWeightSplit(*raw.Test)
	case raw.Develop != nil:
		*w = WeightSplit{}.WithDevelop(*raw.Develop)
	default:
		*w = DefaultWeights()
	}
	return nil
}

func clampPercent(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
