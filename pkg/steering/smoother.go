package steering

import "github.com/go-gl/mathgl/mgl64"

// Smoother keeps a running average over the last N velocity samples, used
// to stabilize the derived heading against per-tick noise. The running sum
// always equals the sum of the currently buffered samples, so the average
// costs O(1) per update regardless of capacity.
type Smoother struct {
	samples []mgl64.Vec3
	sum     mgl64.Vec3
	head    int
	filled  int
}

// NewSmoother returns a smoother over the given number of samples.
// A capacity of zero (or less) makes Update a pass-through with no
// buffering cost.
func NewSmoother(capacity int) *Smoother {
	if capacity < 0 {
		capacity = 0
	}
	return &Smoother{samples: make([]mgl64.Vec3, capacity)}
}

// Capacity returns the number of samples the smoother averages over.
func (s *Smoother) Capacity() int {
	return len(s.samples)
}

// Update inserts a new sample, evicting the oldest one once at capacity,
// and returns the average of the buffered samples.
func (s *Smoother) Update(sample mgl64.Vec3) mgl64.Vec3 {
	if len(s.samples) == 0 {
		return sample
	}

	if s.filled == len(s.samples) {
		s.sum = s.sum.Sub(s.samples[s.head])
	} else {
		s.filled++
	}
	s.samples[s.head] = sample
	s.sum = s.sum.Add(sample)
	s.head = (s.head + 1) % len(s.samples)

	return s.sum.Mul(1 / float64(s.filled))
}

// Reset discards all buffered samples.
func (s *Smoother) Reset() {
	s.sum = mgl64.Vec3{}
	s.head = 0
	s.filled = 0
	for i := range s.samples {
		s.samples[i] = mgl64.Vec3{}
	}
}
