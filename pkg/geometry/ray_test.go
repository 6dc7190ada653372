package geometry

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestRayIntersectAABB(t *testing.T) {
	box := AABBFromCenter(mgl64.Vec3{}, mgl64.Vec3{1, 1, 1})

	tests := []struct {
		name    string
		origin  mgl64.Vec3
		dir     mgl64.Vec3
		wantHit bool
		wantT   float64
	}{
		{name: "head on", origin: mgl64.Vec3{0, 0, -5}, dir: mgl64.Vec3{0, 0, 1}, wantHit: true, wantT: 4},
		{name: "diagonal into corner region", origin: mgl64.Vec3{-3, 0, -3}, dir: mgl64.Vec3{1, 0, 1}, wantHit: true, wantT: 2 * math.Sqrt2},
		{name: "origin inside", origin: mgl64.Vec3{0.5, 0.2, 0}, dir: mgl64.Vec3{1, 0, 0}, wantHit: true, wantT: 0},
		{name: "pointing away", origin: mgl64.Vec3{0, 0, -5}, dir: mgl64.Vec3{0, 0, -1}, wantHit: false},
		{name: "parallel miss", origin: mgl64.Vec3{0, 2, -5}, dir: mgl64.Vec3{0, 0, 1}, wantHit: false},
		{name: "parallel inside slab", origin: mgl64.Vec3{0, 0.5, -5}, dir: mgl64.Vec3{0, 0, 1}, wantHit: true, wantT: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := NewRay(tt.origin, tt.dir)
			got, hit := ray.IntersectAABB(box)
			if hit != tt.wantHit {
				t.Fatalf("hit = %v, want %v", hit, tt.wantHit)
			}
			if hit && math.Abs(got-tt.wantT) > testEpsilon {
				t.Errorf("t = %v, want %v", got, tt.wantT)
			}
		})
	}
}

func TestRayIntersectOBB(t *testing.T) {
	cube := AABBFromCenter(mgl64.Vec3{}, mgl64.Vec3{1, 1, 1})
	rotated := OBBFromAABB(cube, mgl64.HomogRotate3DY(math.Pi/4))

	t.Run("hits the rotated corner region", func(t *testing.T) {
		// The corner of the rotated cube reaches sqrt(2) along world x.
		ray := NewRay(mgl64.Vec3{5, 0, 0}, mgl64.Vec3{-1, 0, 0})
		got, hit := ray.IntersectOBB(rotated)
		if !hit {
			t.Fatal("expected a hit")
		}
		want := 5 - math.Sqrt2
		if math.Abs(got-want) > testEpsilon {
			t.Errorf("t = %v, want %v", got, want)
		}
	})

	t.Run("misses beside the rotated face", func(t *testing.T) {
		// (1.2, 0, 1.2) projected on the box diagonal axis is outside the
		// cube even though it is inside the cube's world bounds.
		ray := NewRay(mgl64.Vec3{1.2, 5, 1.2}, mgl64.Vec3{0, -1, 0})
		if _, hit := ray.IntersectOBB(rotated); hit {
			t.Error("expected a miss")
		}
	})

	t.Run("origin inside reports zero distance", func(t *testing.T) {
		ray := NewRay(mgl64.Vec3{0.3, -0.2, 0.1}, mgl64.Vec3{0.3, 0.8, -0.5})
		got, hit := ray.IntersectOBB(rotated)
		if !hit {
			t.Fatal("expected a hit from inside")
		}
		if got != 0 {
			t.Errorf("t = %v, want 0 for an interior origin", got)
		}
	})
}

func TestRayIntersectTriangle(t *testing.T) {
	a := mgl64.Vec3{-1, 0, -1}
	b := mgl64.Vec3{1, 0, -1}
	c := mgl64.Vec3{0, 0, 1}

	tests := []struct {
		name    string
		origin  mgl64.Vec3
		dir     mgl64.Vec3
		wantHit bool
		wantT   float64
	}{
		{name: "through the middle", origin: mgl64.Vec3{0, 3, -0.5}, dir: mgl64.Vec3{0, -1, 0}, wantHit: true, wantT: 3},
		{name: "from below (back face)", origin: mgl64.Vec3{0, -2, -0.5}, dir: mgl64.Vec3{0, 1, 0}, wantHit: true, wantT: 2},
		{name: "outside the edges", origin: mgl64.Vec3{2, 3, 0}, dir: mgl64.Vec3{0, -1, 0}, wantHit: false},
		{name: "behind the origin", origin: mgl64.Vec3{0, 3, -0.5}, dir: mgl64.Vec3{0, 1, 0}, wantHit: false},
		{name: "parallel to the plane", origin: mgl64.Vec3{0, 1, 0}, dir: mgl64.Vec3{1, 0, 0}, wantHit: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := NewRay(tt.origin, tt.dir)
			got, hit := ray.IntersectTriangle(a, b, c)
			if hit != tt.wantHit {
				t.Fatalf("hit = %v, want %v", hit, tt.wantHit)
			}
			if hit && math.Abs(got-tt.wantT) > testEpsilon {
				t.Errorf("t = %v, want %v", got, tt.wantT)
			}
		})
	}
}

func TestRayAcceptanceWindow(t *testing.T) {
	r := Ray{Origin: mgl64.Vec3{}, Dir: mgl64.Vec3{0, 0, 1}}

	if got := r.MinDistance(); got != 0 {
		t.Errorf("default MinDistance = %v, want 0", got)
	}
	if got := r.MaxDistance(); !math.IsInf(got, 1) {
		t.Errorf("default MaxDistance = %v, want +Inf", got)
	}

	r.Near = 0.5
	r.PrecisionEpsilon = 0.8
	if got := r.MinDistance(); got != 0.8 {
		t.Errorf("MinDistance = %v, want the larger of near and epsilon", got)
	}

	r.Far = 12
	if got := r.MaxDistance(); got != 12 {
		t.Errorf("MaxDistance = %v, want 12", got)
	}
}
