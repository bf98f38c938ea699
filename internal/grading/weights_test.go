package grading

import (
	"encoding/json"
	"testing"
)

func TestWeightSplit_AlwaysSumsTo100(t *testing.T) {
	w := DefaultWeights()
	for _, p := range []int{-20, 0, 1, 37, 50, 99, 100, 140} {
		a := w.WithTest(p)
		if a.TestPercent()+a.DevelopPercent() != 100 {
			t.Fatalf("WithTest(%d): %d + %d", p, a.TestPercent(), a.DevelopPercent())
		}
		b := w.WithDevelop(p)
		if b.TestPercent()+b.DevelopPercent() != 100 {
			t.Fatalf("WithDevelop(%d): %d + %d", p, b.TestPercent(), b.DevelopPercent())
		}
	}
}

func TestWeightSplit_SettingOneAdjustsOther(t *testing.T) {
	w := NewWeightSplit(60)
	if w.DevelopPercent() != 40 {
		t.Fatalf("develop = %d", w.DevelopPercent())
	}
	w = w.WithDevelop(25)
	if w.TestPercent() != 75 || w.DevelopPercent() != 25 {
		t.Fatalf("after WithDevelop(25): %d/%d", w.TestPercent(), w.DevelopPercent())
	}
	w = w.WithTest(130)
	if w.TestPercent() != 100 || w.DevelopPercent() != 0 {
		t.Fatalf("clamp: %d/%d", w.TestPercent(), w.DevelopPercent())
	}
}

func TestWeightSplit_JSON(t *testing.T) {
	b, err := json.Marshal(NewWeightSplit(70))
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `{"test_weight_percent":70,"develop_weight_percent":30}` {
		t.Fatalf("marshal = %s", b)
	}

	tests := []struct {
		in       string
		wantTest int
	}{
		{`{"test_weight_percent":80}`, 80},
		{`{"develop_weight_percent":10}`, 90},
		{`{"test_weight_percent":55,"develop_weight_percent":10}`, 55},
		{`{}`, DefaultTestWeight},
		{`{"test_weight_percent":0}`, 0},
	}
	for _, tc := range tests {
		var w WeightSplit
		if err := json.Unmarshal([]byte(tc.in), &w); err != nil {
			t.Fatalf("%s: %v", tc.in, err)
		}
		if w.TestPercent() != tc.wantTest || w.DevelopPercent() != 100-tc.wantTest {
			t.Errorf("%s: got %d/%d", tc.in, w.TestPercent(), w.DevelopPercent())
		}
	}
}
