package logging

// ProgressSampler thins out per-frame progress logs. It emits when the lesson
// moves to another section or the percent crosses into a new bucket.
type ProgressSampler struct {
	bucketSize  float64
	lastSection int
	lastBucket  int
}

// NewProgressSampler returns a sampler with the given bucket width in
// percent; non-positive widths default to 10.
func NewProgressSampler(bucketSize float64) *ProgressSampler {
	if bucketSize <= 0 {
		bucketSize = 10
	}
	return &ProgressSampler{bucketSize: bucketSize, lastSection: -1, lastBucket: -1}
}

// ShouldLog reports whether an update at percent in section should be logged.
// A negative percent means unknown, so only section changes count.
func (s *ProgressSampler) ShouldLog(percent float64, section int) bool {
	if s == nil {
		return true
	}
	emit := false
	if section >= 0 && section != s.lastSection {
		s.lastSection = section
		emit = true
	}
	if percent >= 0 {
		bucket := int(min(percent, 100) / s.bucketSize)
		if bucket > s.lastBucket {
			s.lastBucket = bucket
			emit = true
		}
	}
	return emit
}
