package numbers

import "math"

// Average is a running, optionally time-weighted, average.
type Average struct {
	sum    float64
	count  float64
	weight float64
	min    float64
	max    float64
}

// NewMean returns an Average where every applied value has the same weight.
func NewMean() *Average {
	return NewAverage(1)
}

// NewDecaying returns a temporarely-weighted Average. I.e. if a new value is
// applied, it takes halfLife other values until the initial value's "weight"
// is only half of the one, that has just been applied.
func NewDecaying(halfLife float64) *Average {
	return NewAverage(math.Pow(0.5, 1/halfLife))
}

// NewAverage returns an Average multiplying previous values by weight each
// time a new value is applied.
func NewAverage(weight float64) *Average {
	return &Average{
		weight: weight,
		min:    math.Inf(1),
		max:    math.Inf(-1),
	}
}

// Apply adds v to the average.
func (a *Average) Apply(v float64) {
	a.sum *= a.weight
	a.count *= a.weight

	a.sum += v
	a.count++

	a.min = math.Min(a.min, v)
	a.max = math.Max(a.max, v)
}

// Get returns the current average or 0 if nothing was applied yet.
func (a *Average) Get() float64 {
	if a.count == 0.0 {
		return 0.0
	}
	return a.sum / a.count
}

// Min returns the smallest applied value or 0 if nothing was applied yet.
func (a *Average) Min() float64 {
	if a.count == 0.0 {
		return 0.0
	}
	return a.min
}

// Max returns the largest applied value or 0 if nothing was applied yet.
func (a *Average) Max() float64 {
	if a.count == 0.0 {
		return 0.0
	}
	return a.max
}
