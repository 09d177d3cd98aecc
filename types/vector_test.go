package types

import (
	"math"
	"testing"
)

func TestNormalize(t *testing.T) {
	v := XYZ(3, 4, 0).Normalize()
	if l := v.Len(); l < 1-floatCmpEpsilon || l > 1+floatCmpEpsilon {
		t.Fatalf("expected normalized vector to be unit length; got %f", l)
	}

	zero := Vec3{}
	if got := zero.Normalize(); got != zero {
		t.Fatalf("expected normalizing a zero vector to yield a zero vector; got %v", got)
	}
}

func TestCross(t *testing.T) {
	got := XYZ(1, 0, 0).Cross(XYZ(0, 1, 0))
	if got != XYZ(0, 0, 1) {
		t.Fatalf("expected x cross y to be z; got %v", got)
	}
}

func TestDot(t *testing.T) {
	if got := XYZ(1, 2, 3).Dot(XYZ(4, -5, 6)); got != 12 {
		t.Fatalf("expected dot product 12; got %f", got)
	}
}

func TestMinMaxVec3(t *testing.T) {
	v1 := XYZ(1, -2, 5)
	v2 := XYZ(-1, 3, 5)

	if got := MinVec3(v1, v2); got != XYZ(-1, -2, 5) {
		t.Fatalf("expected componentwise min (-1,-2,5); got %v", got)
	}
	if got := MaxVec3(v1, v2); got != XYZ(1, 3, 5) {
		t.Fatalf("expected componentwise max (1,3,5); got %v", got)
	}
}

func TestQuatRotate(t *testing.T) {
	rot := QuatFromAxisAngle(XYZ(0, 1, 0), math.Pi/2)
	got := rot.Rotate(XYZ(1, 0, 0))

	exp := XYZ(0, 0, -1)
	if got.Sub(exp).Len() > floatCmpEpsilon {
		t.Fatalf("expected quarter turn about y to map x onto -z; got %v", got)
	}
}
