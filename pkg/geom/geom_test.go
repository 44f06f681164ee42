package geom

import (
	"math"
	"testing"

	"github.com/golang/geo/s2"
)

func unit(x, y, z float64) Point {
	return Point{X: x, Y: y, Z: z}.Normalize()
}

func TestSlerpMatchesS2Interpolate(t *testing.T) {
	tests := []struct {
		name string
		a, b Point
		t    float64
	}{
		{"axis midpoint", unit(1, 0, 0), unit(0, 1, 0), 0.5},
		{"skewed midpoint", unit(1, 2, 3), unit(-2, 1, 0.5), 0.5},
		{"quarter", unit(0, 0, 1), unit(1, 1, 0), 0.25},
		{"start", unit(3, -1, 2), unit(1, 1, 1), 0},
		{"end", unit(3, -1, 2), unit(1, 1, 1), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Slerp(tt.a, tt.b, tt.t)
			want := s2.Interpolate(tt.t,
				s2.PointFromCoords(tt.a.X, tt.a.Y, tt.a.Z),
				s2.PointFromCoords(tt.b.X, tt.b.Y, tt.b.Z))
			if math.Abs(got.X-want.X) > 1e-9 || math.Abs(got.Y-want.Y) > 1e-9 || math.Abs(got.Z-want.Z) > 1e-9 {
				t.Errorf("Slerp = %v, s2.Interpolate = %v", got, want.Vector)
			}
		})
	}
}

func TestSlerpStaysOnUnitSphere(t *testing.T) {
	a := unit(0.3, -0.7, 0.2)
	b := unit(-0.1, 0.4, 0.9)
	for i := 0; i <= 10; i++ {
		p := Slerp(a, b, float64(i)/10)
		if !DefaultTolerance.OnUnitSphere(p) {
			t.Errorf("Slerp(t=%.1f) has length %f", float64(i)/10, p.Length())
		}
	}
}

func TestSlerpCoincident(t *testing.T) {
	a := unit(1, 1, 0)
	if got := Slerp(a, a, 0.5); got != a {
		t.Errorf("Slerp(a, a) = %v, want %v", got, a)
	}
}

func TestOutward(t *testing.T) {
	a := unit(1, 0, 0)
	b := unit(0, 1, 0)
	c := unit(0, 0, 1)
	if !Outward(a, b, c) {
		t.Error("abc on the first octant should face outward")
	}
	if Outward(a, c, b) {
		t.Error("acb should face inward")
	}
}

func TestTolerance(t *testing.T) {
	tol := Tolerance{Unit: 1e-4}
	if !tol.OnUnitSphere(Point{X: 1.00005}) {
		t.Error("1.00005 should be within 1e-4 of the unit sphere")
	}
	if tol.OnUnitSphere(Point{X: 1.001}) {
		t.Error("1.001 should not be within 1e-4 of the unit sphere")
	}
}

func TestVec32(t *testing.T) {
	v := Vec32(Point{X: 0.5, Y: -0.25, Z: 1})
	if v.X() != 0.5 || v.Y() != -0.25 || v.Z() != 1 {
		t.Errorf("Vec32 = %v", v)
	}
}
