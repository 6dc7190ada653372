package steering

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestSmootherAveragesLastSamples(t *testing.T) {
	s := NewSmoother(5)

	var got mgl64.Vec3
	for i := 1; i <= 6; i++ {
		got = s.Update(mgl64.Vec3{float64(i), float64(i), float64(i)})
	}

	// After the 6th sample only 2..6 remain buffered, averaging to 4.
	want := mgl64.Vec3{4, 4, 4}
	if got.Sub(want).Len() > 1e-9 {
		t.Errorf("average after 6 samples = %v, want %v", got, want)
	}
}

func TestSmootherPartialFill(t *testing.T) {
	s := NewSmoother(4)

	got := s.Update(mgl64.Vec3{2, 0, 0})
	if want := (mgl64.Vec3{2, 0, 0}); got != want {
		t.Errorf("first average = %v, want %v", got, want)
	}

	got = s.Update(mgl64.Vec3{4, 0, 0})
	if want := (mgl64.Vec3{3, 0, 0}); got.Sub(want).Len() > 1e-9 {
		t.Errorf("second average = %v, want %v", got, want)
	}
}

func TestSmootherZeroCapacityIsPassthrough(t *testing.T) {
	for _, capacity := range []int{0, -3} {
		s := NewSmoother(capacity)
		in := mgl64.Vec3{7, -2, 1}
		if got := s.Update(in); got != in {
			t.Errorf("capacity %d: Update(%v) = %v, want the sample back", capacity, in, got)
		}
	}
}

func TestSmootherReset(t *testing.T) {
	s := NewSmoother(3)
	s.Update(mgl64.Vec3{100, 0, 0})
	s.Update(mgl64.Vec3{200, 0, 0})
	s.Reset()

	got := s.Update(mgl64.Vec3{6, 0, 0})
	if want := (mgl64.Vec3{6, 0, 0}); got != want {
		t.Errorf("average after reset = %v, want %v", got, want)
	}
}

func TestSmootherRunningSumMatchesBuffer(t *testing.T) {
	s := NewSmoother(3)
	samples := []float64{1, -4, 9, 2, 7, -1, 3, 3, 8}

	for i, x := range samples {
		s.Update(mgl64.Vec3{x, 0, 0})

		// Recompute the expected sum over the window by hand.
		lo := i - 2
		if lo < 0 {
			lo = 0
		}
		var want float64
		for _, y := range samples[lo : i+1] {
			want += y
		}
		if got := s.sum.X(); got != want {
			t.Fatalf("after sample %d: running sum = %v, want %v", i, got, want)
		}
	}
}

func BenchmarkSmootherUpdate(b *testing.B) {
	s := NewSmoother(10)
	sample := mgl64.Vec3{1, 2, 3}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Update(sample)
	}
}
