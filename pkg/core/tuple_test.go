package core

import (
	"math"
	"math/rand"
	"testing"
)

func TestPointVectorArithmetic(t *testing.T) {
	p := NewPoint(3, -2, 5)
	v := NewVector(-2, 3, 1)

	if got := p.Add(v); !got.Equals(NewPoint(1, 1, 6)) {
		t.Errorf("Expected point(1, 1, 6), got %v", got)
	}

	p2 := NewPoint(5, 6, 7)
	if got := p.Subtract(p2); !got.Equals(NewVector(-2, -8, -2)) {
		t.Errorf("Expected vector(-2, -8, -2), got %v", got)
	}

	if got := p.SubtractVector(v); !got.Equals(NewPoint(5, -5, 4)) {
		t.Errorf("Expected point(5, -5, 4), got %v", got)
	}

	if got := v.Add(NewVector(1, 1, 1)); !got.Equals(NewVector(-1, 4, 2)) {
		t.Errorf("Expected vector(-1, 4, 2), got %v", got)
	}

	if got := v.Negate(); !got.Equals(NewVector(2, -3, -1)) {
		t.Errorf("Expected vector(2, -3, -1), got %v", got)
	}
}

func TestVectorScalarOps(t *testing.T) {
	v := NewVector(1, -2, 3)
	if got := v.Multiply(3.5); !got.Equals(NewVector(3.5, -7, 10.5)) {
		t.Errorf("Expected vector(3.5, -7, 10.5), got %v", got)
	}
	if got := v.Divide(2); !got.Equals(NewVector(0.5, -1, 1.5)) {
		t.Errorf("Expected vector(0.5, -1, 1.5), got %v", got)
	}
}

func TestVectorLength(t *testing.T) {
	tests := []struct {
		v        Vector
		expected float64
	}{
		{NewVector(1, 0, 0), 1},
		{NewVector(0, 1, 0), 1},
		{NewVector(1, 2, 3), math.Sqrt(14)},
		{NewVector(-1, -2, -3), math.Sqrt(14)},
	}

	for _, tt := range tests {
		if got := tt.v.Length(); !ApproxEqual(got, tt.expected) {
			t.Errorf("Length(%v): expected %f, got %f", tt.v, tt.expected, got)
		}
	}
}

func TestVectorUnit(t *testing.T) {
	if got := NewVector(4, 0, 0).Unit(); !got.Equals(NewVector(1, 0, 0)) {
		t.Errorf("Expected vector(1, 0, 0), got %v", got)
	}

	u := NewVector(1, 2, 3).Unit()
	expected := NewVector(1/math.Sqrt(14), 2/math.Sqrt(14), 3/math.Sqrt(14))
	if !u.Equals(expected) {
		t.Errorf("Expected %v, got %v", expected, u)
	}
	if !ApproxEqual(u.Length(), 1) {
		t.Errorf("Expected unit length, got %f", u.Length())
	}
}

func TestDotAndCross(t *testing.T) {
	a := NewVector(1, 2, 3)
	b := NewVector(2, 3, 4)

	if got := a.Dot(b); got != 20 {
		t.Errorf("Expected dot 20, got %f", got)
	}
	if got := a.Cross(b); !got.Equals(NewVector(-1, 2, -1)) {
		t.Errorf("Expected vector(-1, 2, -1), got %v", got)
	}
	if got := b.Cross(a); !got.Equals(NewVector(1, -2, 1)) {
		t.Errorf("Expected vector(1, -2, 1), got %v", got)
	}
}

func randomVector(random *rand.Rand) Vector {
	return NewVector(random.Float64()*200-100, random.Float64()*200-100, random.Float64()*200-100)
}

func TestVectorUnitRandom(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	for i := 0; i < 1000; i++ {
		v := randomVector(random)
		if v.Length() < 1e-6 {
			continue
		}
		if got := v.Unit().Length(); !ApproxEqual(got, 1) {
			t.Fatalf("Unit(%v): expected length 1, got %f", v, got)
		}
	}
}

func TestCrossOrthogonalRandom(t *testing.T) {
	random := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		a, b := randomVector(random), randomVector(random)
		la, lb := a.Length(), b.Length()
		if la < 1e-6 || lb < 1e-6 {
			continue
		}
		// the dot products grow with |a|²|b| and |a||b|², so compare relative to that
		c := a.Cross(b)
		if got := c.Dot(a) / (la * la * lb); !ApproxEqual(got, 0) {
			t.Fatalf("cross(%v, %v) not orthogonal to a: %g", a, b, got)
		}
		if got := c.Dot(b) / (la * lb * lb); !ApproxEqual(got, 0) {
			t.Fatalf("cross(%v, %v) not orthogonal to b: %g", a, b, got)
		}
	}
}

func TestReflect(t *testing.T) {
	tests := []struct {
		name     string
		v, n     Vector
		expected Vector
	}{
		{"45 degrees", NewVector(1, -1, 0), NewVector(0, 1, 0), NewVector(1, 1, 0)},
		{"slanted surface", NewVector(0, -1, 0), NewVector(math.Sqrt2/2, math.Sqrt2/2, 0), NewVector(1, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Reflect(tt.n); !got.Equals(tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestApproxEqual(t *testing.T) {
	if !ApproxEqual(1.0, 1.0+Epsilon/2) {
		t.Error("Expected values within epsilon to compare equal")
	}
	if ApproxEqual(1.0, 1.0+Epsilon*2) {
		t.Error("Expected values beyond epsilon to compare unequal")
	}
	if !NewPoint(1, 2, 3).Equals(NewPoint(1.000001, 2, 3)) {
		t.Error("Expected nearly equal points to compare equal")
	}
}

func TestHomogeneous(t *testing.T) {
	if got := NewPoint(1, 2, 3).Homogeneous(); got != [4]float64{1, 2, 3, 1} {
		t.Errorf("Expected w=1 for point, got %v", got)
	}
	if got := NewVector(1, 2, 3).Homogeneous(); got != [4]float64{1, 2, 3, 0} {
		t.Errorf("Expected w=0 for vector, got %v", got)
	}
}

func TestRayAt(t *testing.T) {
	r := NewRay(NewPoint(2, 3, 4), NewVector(1, 0, 0))
	tests := []struct {
		t        float64
		expected Point
	}{
		{0, NewPoint(2, 3, 4)},
		{1, NewPoint(3, 3, 4)},
		{-1, NewPoint(1, 3, 4)},
		{2.5, NewPoint(4.5, 3, 4)},
	}
	for _, tt := range tests {
		if got := r.At(tt.t); !got.Equals(tt.expected) {
			t.Errorf("At(%f): expected %v, got %v", tt.t, tt.expected, got)
		}
	}
}

func TestRadians(t *testing.T) {
	tests := []struct {
		degrees  float64
		expected float64
	}{
		{0, 0},
		{90, math.Pi / 2},
		{180, math.Pi},
		{-45, -math.Pi / 4},
	}

	for _, tt := range tests {
		if got := Radians(tt.degrees); !ApproxEqual(got, tt.expected) {
			t.Errorf("Radians(%v): expected %v, got %v", tt.degrees, tt.expected, got)
		}
	}
}
