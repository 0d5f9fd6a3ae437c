package vec3

import (
	"math"
	"testing"
)

const eps = 1e-12

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= eps
}

func vecAlmostEqual(a, b Vec3) bool {
	return almostEqual(a.X, b.X) && almostEqual(a.Y, b.Y) && almostEqual(a.Z, b.Z)
}

func TestNorm(t *testing.T) {
	v := New(3, 4, 12)
	if got := v.Norm(); !almostEqual(got, 13) {
		t.Fatalf("Norm() = %v, want 13", got)
	}
}

func TestAddSubScale(t *testing.T) {
	a := New(1, 2, 3)
	b := New(4, -2, 0.5)

	if got := a.Add(b); !vecAlmostEqual(got, New(5, 0, 3.5)) {
		t.Fatalf("Add = %+v", got)
	}
	if got := a.Sub(b); !vecAlmostEqual(got, New(-3, 4, 2.5)) {
		t.Fatalf("Sub = %+v", got)
	}
	if got := a.Scale(-2); !vecAlmostEqual(got, New(-2, -4, -6)) {
		t.Fatalf("Scale = %+v", got)
	}
}

func TestDotOrthogonal(t *testing.T) {
	if got := New(1, 0, 0).Dot(New(0, 5, 0)); got != 0 {
		t.Fatalf("Dot of orthogonal vectors = %v, want 0", got)
	}
}

func TestCrossRightHanded(t *testing.T) {
	got := New(1, 0, 0).Cross(New(0, 1, 0))
	if !vecAlmostEqual(got, New(0, 0, 1)) {
		t.Fatalf("x cross y = %+v, want +z", got)
	}
}

func TestNormalize(t *testing.T) {
	v := New(0, 3, 4).Normalize()
	if !almostEqual(v.Norm(), 1) {
		t.Fatalf("normalized norm = %v, want 1", v.Norm())
	}
	if !vecAlmostEqual(Vec3{}.Normalize(), Vec3{}) {
		t.Fatal("normalizing zero vector should stay zero")
	}
}

func TestDistanceTo(t *testing.T) {
	a := New(1, 1, 1)
	b := New(4, 5, 1)
	if got := a.DistanceTo(b); !almostEqual(got, 5) {
		t.Fatalf("DistanceTo = %v, want 5", got)
	}
}

func TestRotZQuarterTurn(t *testing.T) {
	// Rotating the frame by +90° about Z maps +X onto the new frame's -Y.
	r := RotZ(math.Pi / 2)
	got := r.MulVec(New(1, 0, 0))
	if !vecAlmostEqual(got, New(0, -1, 0)) {
		t.Fatalf("RotZ(90°)·x = %+v, want (0,-1,0)", got)
	}
}

func TestRotationOrthonormal(t *testing.T) {
	angles := []float64{0, 0.3, math.Pi / 3, 2.1, math.Pi}
	for _, a := range angles {
		for _, m := range []Mat3{RotX(a), RotZ(a)} {
			p := m.Mul(m.Transpose())
			id := Identity()
			for i := 0; i < 3; i++ {
				for j := 0; j < 3; j++ {
					if !almostEqual(p[i][j], id[i][j]) {
						t.Fatalf("R·Rᵀ[%d][%d] = %v at angle %v, want %v", i, j, p[i][j], a, id[i][j])
					}
				}
			}
		}
	}
}

func TestMulVecAgainstManual(t *testing.T) {
	m := Mat3{
		{1, 2, 3},
		{4, 5, 6},
		{7, 8, 9},
	}
	got := m.MulVec(New(1, 0, -1))
	if !vecAlmostEqual(got, New(-2, -2, -2)) {
		t.Fatalf("MulVec = %+v, want (-2,-2,-2)", got)
	}
}
