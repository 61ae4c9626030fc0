package reveal

import "math"

// rampEpsilon absorbs float error at segment boundaries so that progress
// exactly at (i+1)/n always yields 1 for segment i.
const rampEpsilon = 1e-9

// Clamp limits value to [0, 1]. NaN is treated as 0.
func Clamp(value float64) float64 {
	if math.IsNaN(value) || value <= 0 {
		return 0
	}
	if value >= 1 {
		return 1
	}
	return value
}

// Ramp returns the progress of segment index out of count segments sharing
// one overall progress: clamp(progress*count - index, 0, 1). Segment i starts
// only once segments 0..i-1 have reached 1.
func Ramp(progress float64, count, index int) float64 {
	if count <= 0 || index < 0 || index >= count {
		return 0
	}
	value := Clamp(progress)*float64(count) - float64(index)
	if value < rampEpsilon {
		return 0
	}
	if value > 1-rampEpsilon {
		return 1
	}
	return value
}

// Partial reports whether progress is strictly between 0 and 1.
func Partial(progress float64) bool {
	return progress > 0 && progress < 1
}
