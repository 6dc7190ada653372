package geometry

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestOBBFromAABB(t *testing.T) {
	local := AABBFromCenter(mgl64.Vec3{}, mgl64.Vec3{2, 1, 3})

	t.Run("identity transform", func(t *testing.T) {
		o := OBBFromAABB(local, mgl64.Ident4())
		if !vecNear(o.Center, mgl64.Vec3{}, testEpsilon) {
			t.Errorf("center = %v, want origin", o.Center)
		}
		if !vecNear(o.HalfSize, mgl64.Vec3{2, 1, 3}, testEpsilon) {
			t.Errorf("half size = %v, want (2,1,3)", o.HalfSize)
		}
		for i, axis := range o.Axes {
			if !vecNear(axis, identityAxes[i], testEpsilon) {
				t.Errorf("axis %d = %v, want %v", i, axis, identityAxes[i])
			}
		}
	})

	t.Run("rotation and scale", func(t *testing.T) {
		m := mgl64.Translate3D(5, 0, 0).
			Mul4(mgl64.HomogRotate3DY(math.Pi / 2)).
			Mul4(mgl64.Scale3D(2, 1, 1))
		o := OBBFromAABB(local, m)

		if !vecNear(o.Center, mgl64.Vec3{5, 0, 0}, testEpsilon) {
			t.Errorf("center = %v, want (5,0,0)", o.Center)
		}
		// Local x is scaled by 2 then rotated onto -z.
		if !vecNear(o.Axes[0], mgl64.Vec3{0, 0, -1}, testEpsilon) {
			t.Errorf("axis 0 = %v, want (0,0,-1)", o.Axes[0])
		}
		if math.Abs(o.HalfSize[0]-4) > testEpsilon {
			t.Errorf("half size x = %v, want 4", o.HalfSize[0])
		}
		for i, axis := range o.Axes {
			if math.Abs(axis.Len()-1) > testEpsilon {
				t.Errorf("axis %d not unit: %v", i, axis)
			}
		}
	})
}

func TestOBBIntersectsAABB(t *testing.T) {
	// Unit cube rotated 45 degrees around the up axis; its corners reach
	// sqrt(2) on x/z but its faces pull in well inside that square.
	cube := AABBFromCenter(mgl64.Vec3{}, mgl64.Vec3{1, 1, 1})
	rotated := OBBFromAABB(cube, mgl64.HomogRotate3DY(math.Pi/4))

	tests := []struct {
		name  string
		query AABB
		want  bool
	}{
		{name: "query at center", query: AABBFromCenter(mgl64.Vec3{}, mgl64.Vec3{0.1, 0.1, 0.1}), want: true},
		{name: "query on rotated face", query: AABBFromCenter(mgl64.Vec3{1.2, 0, 0}, mgl64.Vec3{0.3, 0.3, 0.3}), want: true},
		{
			// Inside the world AABB of the rotated cube but outside the cube
			// itself; only the oriented test can tell.
			name:  "corner gap",
			query: AABBFromCenter(mgl64.Vec3{1.25, 0, 1.25}, mgl64.Vec3{0.1, 0.1, 0.1}),
			want:  false,
		},
		{name: "far away", query: AABBFromCenter(mgl64.Vec3{10, 0, 0}, mgl64.Vec3{1, 1, 1}), want: false},
		{name: "above", query: AABBFromCenter(mgl64.Vec3{0, 3, 0}, mgl64.Vec3{1, 1, 1}), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rotated.IntersectsAABB(tt.query); got != tt.want {
				t.Errorf("IntersectsAABB(%+v) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}

	t.Run("corner gap overlaps the world aabb", func(t *testing.T) {
		// Sanity check that the corner-gap case above actually discriminates
		// between the axis-aligned and oriented answers.
		world := cube.Transformed(mgl64.HomogRotate3DY(math.Pi / 4))
		query := AABBFromCenter(mgl64.Vec3{1.25, 0, 1.25}, mgl64.Vec3{0.1, 0.1, 0.1})
		if !world.Overlaps(query) {
			t.Error("expected the loose world bounds to overlap the query")
		}
	})
}

func TestOBBIntersectsOBB(t *testing.T) {
	cube := AABBFromCenter(mgl64.Vec3{}, mgl64.Vec3{1, 1, 1})

	tests := []struct {
		name string
		a, b mgl64.Mat4
		want bool
	}{
		{name: "identical", a: mgl64.Ident4(), b: mgl64.Ident4(), want: true},
		{name: "offset but overlapping", a: mgl64.Ident4(), b: mgl64.Translate3D(1.5, 0, 0), want: true},
		{name: "separated along x", a: mgl64.Ident4(), b: mgl64.Translate3D(2.5, 0, 0), want: false},
		{
			name: "rotated corners interleave",
			a:    mgl64.Ident4(),
			b:    mgl64.Translate3D(2.2, 0, 0).Mul4(mgl64.HomogRotate3DY(math.Pi / 4)),
			want: true,
		},
		{
			name: "edge pair near parallel",
			a:    mgl64.HomogRotate3DY(1e-7),
			b:    mgl64.Translate3D(2.5, 0, 0),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oa := OBBFromAABB(cube, tt.a)
			ob := OBBFromAABB(cube, tt.b)
			if got := oa.IntersectsOBB(ob); got != tt.want {
				t.Errorf("IntersectsOBB = %v, want %v", got, tt.want)
			}
			if got := ob.IntersectsOBB(oa); got != tt.want {
				t.Errorf("reverse IntersectsOBB = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOBBIntersectionIsDeterministic(t *testing.T) {
	cube := AABBFromCenter(mgl64.Vec3{}, mgl64.Vec3{1, 2, 0.5})
	o := OBBFromAABB(cube, mgl64.HomogRotate3DY(0.37))
	query := AABBFromCenter(mgl64.Vec3{1.1, 0, 0.4}, mgl64.Vec3{0.2, 0.2, 0.2})

	first := o.IntersectsAABB(query)
	for i := 0; i < 100; i++ {
		if got := o.IntersectsAABB(query); got != first {
			t.Fatalf("call %d returned %v, first call returned %v", i, got, first)
		}
	}
}

func TestOBBContainsPoint(t *testing.T) {
	cube := AABBFromCenter(mgl64.Vec3{}, mgl64.Vec3{1, 1, 1})
	o := OBBFromAABB(cube, mgl64.HomogRotate3DY(math.Pi/4))

	if !o.ContainsPoint(mgl64.Vec3{}) {
		t.Error("center not contained")
	}
	// The rotated corner reaches sqrt(2) along world x.
	if !o.ContainsPoint(mgl64.Vec3{1.3, 0, 0}) {
		t.Error("point near rotated corner not contained")
	}
	if o.ContainsPoint(mgl64.Vec3{1.3, 0, 1.3}) {
		t.Error("point outside rotated cube reported as contained")
	}
}

func BenchmarkOBBIntersectsOBB(b *testing.B) {
	cube := AABBFromCenter(mgl64.Vec3{}, mgl64.Vec3{1, 2, 3})
	oa := OBBFromAABB(cube, mgl64.HomogRotate3DY(0.3))
	ob := OBBFromAABB(cube, mgl64.Translate3D(1.5, 0.5, -1).Mul4(mgl64.HomogRotate3DY(1.1)))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		oa.IntersectsOBB(ob)
	}
}
