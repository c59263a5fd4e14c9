package geom

import (
	"math"
	"testing"
)

func TestVec2Add(t *testing.T) {
	a := Vec2{1, 2}
	b := Vec2{3, 4}
	got := a.Add(b)
	want := Vec2{4, 6}
	if got != want {
		t.Errorf("Vec2.Add() = %v, want %v", got, want)
	}
}

func TestVec2Length(t *testing.T) {
	v := Vec2{3, 4}
	if got, want := v.Length(), 5.0; got != want {
		t.Errorf("Vec2.Length() = %v, want %v", got, want)
	}
}

func TestVec2Normalize(t *testing.T) {
	v := Vec2{3, 4}
	n := v.Normalize()
	if l := n.Length(); math.Abs(l-1) > 1e-9 {
		t.Errorf("Vec2.Normalize().Length() = %v, want ~1", l)
	}
}

func TestVec2NormalizeZero(t *testing.T) {
	if got := (Vec2{}).Normalize(); got != (Vec2{}) {
		t.Errorf("Vec2{}.Normalize() = %v, want zero vector", got)
	}
}

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Lerp(t *testing.T) {
	a := Vec3{0, 0, 0}
	b := Vec3{10, 0, 0}
	got := Lerp(a, b, 0.5)
	want := Vec3{5, 0, 0}
	if got != want {
		t.Errorf("Lerp() = %v, want %v", got, want)
	}
}

func TestClamp(t *testing.T) {
	cases := []struct {
		x, lo, hi, want float64
	}{
		{-1, 0, 1, 0},
		{2, 0, 1, 1},
		{0.5, 0, 1, 0.5},
	}
	for _, c := range cases {
		if got := Clamp(c.x, c.lo, c.hi); got != c.want {
			t.Errorf("Clamp(%v, %v, %v) = %v, want %v", c.x, c.lo, c.hi, got, c.want)
		}
	}
}

func TestGetOrthogonalVector(t *testing.T) {
	dirs := []Vec3{{0, 0, 1}, {1, 0, 0}, {0, 1, 0}, {1, 1, 1}}
	for _, d := range dirs {
		o := GetOrthogonalVector(d.Normalize())
		if dot := math.Abs(o.Dot(d.Normalize())); dot > 1e-6 {
			t.Errorf("GetOrthogonalVector(%v) = %v, not orthogonal (dot=%v)", d, o, dot)
		}
		if l := o.Length(); math.Abs(l-1) > 1e-6 {
			t.Errorf("GetOrthogonalVector(%v) length = %v, want ~1", d, l)
		}
	}
}

func TestGetLookAtRotIdentity(t *testing.T) {
	q := GetLookAtRot(Vec3{0, 0, 1})
	if math.Abs(q.W-1) > 1e-6 {
		t.Errorf("GetLookAtRot((0,0,1)) = %v, want identity", q)
	}
}

func TestGetLookAtRotMapsDirection(t *testing.T) {
	target := Vec3{1, 1, 1}.Normalize()
	q := GetLookAtRot(target)
	got := q.RotateVec3(Vec3{0, 0, 1})
	if got.Distance(target) > 1e-6 {
		t.Errorf("GetLookAtRot rotated (0,0,1) to %v, want %v", got, target)
	}
}

func TestGetLookAtRotOpposite(t *testing.T) {
	q := GetLookAtRot(Vec3{0, 0, -1})
	got := q.RotateVec3(Vec3{0, 0, 1})
	want := Vec3{0, 0, -1}
	if got.Distance(want) > 1e-6 {
		t.Errorf("GetLookAtRot opposite rotated to %v, want %v", got, want)
	}
}

func TestProjectOnPlane(t *testing.T) {
	v := Vec3{1, 2, 3}
	n := Vec3{0, 0, 1}
	got := ProjectOnPlane(v, n)
	want := Vec3{1, 2, 0}
	if got != want {
		t.Errorf("ProjectOnPlane() = %v, want %v", got, want)
	}
}
