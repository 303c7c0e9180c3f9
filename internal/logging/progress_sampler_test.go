package logging

import "testing"

func TestNewProgressSampler(t *testing.T) {
	tests := []struct {
		name       string
		bucketSize float64
		wantSize   float64
	}{
		{"default bucket size for zero", 0, 10},
		{"default bucket size for negative", -1, 10},
		{"custom bucket size", 25, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewProgressSampler(tt.bucketSize)
			if s.bucketSize != tt.wantSize {
				t.Errorf("bucketSize = %v, want %v", s.bucketSize, tt.wantSize)
			}
			if s.lastBucket != -1 {
				t.Errorf("lastBucket = %d, want -1", s.lastBucket)
			}
		})
	}
}

func TestProgressSamplerNil(t *testing.T) {
	var s *ProgressSampler
	if !s.ShouldLog(50, "copy") {
		t.Error("ShouldLog on nil sampler should always return true")
	}
	s.Reset()
}

func TestProgressSamplerBuckets(t *testing.T) {
	s := NewProgressSampler(10)
	steps := []struct {
		percent float64
		want    bool
	}{
		{0, true},
		{4, false},
		{10, true},
		{19.9, false},
		{55, true},
		{54, false},
		{100, true},
		{140, false},
	}
	for _, step := range steps {
		if got := s.ShouldLog(step.percent, "convert"); got != step.want {
			t.Errorf("ShouldLog(%v) = %v, want %v", step.percent, got, step.want)
		}
	}
}

func TestProgressSamplerPhaseChangeResetsBuckets(t *testing.T) {
	s := NewProgressSampler(10)
	s.ShouldLog(50, "copy")
	if !s.ShouldLog(50, " convert ") {
		t.Error("phase change should log")
	}
	if s.lastPhase != "convert" {
		t.Errorf("lastPhase = %q, want trimmed", s.lastPhase)
	}
	if s.ShouldLog(-1, "convert") {
		t.Error("unknown percent in same phase should not log")
	}
	s.Reset()
	if !s.ShouldLog(0, "convert") {
		t.Error("reset sampler should log again")
	}
}
