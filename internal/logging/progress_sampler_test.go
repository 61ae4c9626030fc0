package logging

import "testing"

func TestNewProgressSamplerDefaults(t *testing.T) {
	tests := []struct {
		name       string
		bucketSize float64
		wantSize   float64
	}{
		{"default for zero", 0, 10},
		{"default for negative", -1, 10},
		{"custom", 25, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewProgressSampler(tt.bucketSize)
			if s.bucketSize != tt.wantSize {
				t.Errorf("bucketSize = %v, want %v", s.bucketSize, tt.wantSize)
			}
			if s.lastBucket != -1 || s.lastSection != -1 {
				t.Errorf("unexpected initial state %+v", s)
			}
		})
	}
}

func TestProgressSamplerNil(t *testing.T) {
	var s *ProgressSampler
	if !s.ShouldLog(50, 0) {
		t.Error("nil sampler should always log")
	}
}

func TestProgressSamplerBuckets(t *testing.T) {
	s := NewProgressSampler(10)
	steps := []struct {
		percent float64
		section int
		want    bool
	}{
		{0, 0, true},
		{4, 0, false},
		{10, 0, true},
		{19.9, 0, false},
		{20, 1, true},
		{21, 1, false},
		{150, 1, true},
		{100, 1, false},
		{-1, 2, true},
		{-1, 2, false},
		{-1, -1, false},
	}
	for i, step := range steps {
		if got := s.ShouldLog(step.percent, step.section); got != step.want {
			t.Fatalf("step %d (%v, %d): got %v want %v", i, step.percent, step.section, got, step.want)
		}
	}
}
