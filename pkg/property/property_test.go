package property

import (
	"math"
	"testing"

	"github.com/Faultbox/midgard-ro/pkg/geom"
)

func TestConstant(t *testing.T) {
	p := Constant(3.5)
	for _, t0 := range []float64{0, 0.5, 1} {
		if got := p.Eval(t0, nil); got != 3.5 {
			t.Errorf("Constant.Eval(%v) = %v, want 3.5", t0, got)
		}
	}
}

func TestRandomDeterministicFromSeed(t *testing.T) {
	p := Random(1, 2)
	a := p.Eval(0, geom.NewRNG(5))
	b := p.Eval(0, geom.NewRNG(5))
	if a != b {
		t.Errorf("Random not deterministic for same seed: %v != %v", a, b)
	}
	if a < 1 || a > 2 {
		t.Errorf("Random out of range: %v", a)
	}
}

func TestCurveLinearEndpoints(t *testing.T) {
	p := Curve(Linear, Keyframe{0, 0}, Keyframe{1, 10})
	if got := p.Eval(0, nil); got != 0 {
		t.Errorf("Eval(0) = %v, want 0", got)
	}
	if got := p.Eval(1, nil); got != 10 {
		t.Errorf("Eval(1) = %v, want 10", got)
	}
	if got := p.Eval(0.5, nil); math.Abs(got-5) > 1e-9 {
		t.Errorf("Eval(0.5) = %v, want 5", got)
	}
}

func TestCurveClampsBeyondKeyframes(t *testing.T) {
	p := Curve(Linear, Keyframe{0.2, 1}, Keyframe{0.8, 2})
	if got := p.Eval(0, nil); got != 1 {
		t.Errorf("Eval before first key = %v, want 1", got)
	}
	if got := p.Eval(1, nil); got != 2 {
		t.Errorf("Eval after last key = %v, want 2", got)
	}
}

func TestCurveSmoothstepMidpoint(t *testing.T) {
	linear := Curve(Linear, Keyframe{0, 0}, Keyframe{1, 1})
	smooth := Curve(Smoothstep, Keyframe{0, 0}, Keyframe{1, 1})
	// at the midpoint both curves agree (symmetry of smoothstep)
	if math.Abs(linear.Eval(0.5, nil)-smooth.Eval(0.5, nil)) > 1e-9 {
		t.Errorf("smoothstep and linear should agree at t=0.5")
	}
	// off the midpoint, smoothstep eases and differs from linear
	if math.Abs(linear.Eval(0.25, nil)-smooth.Eval(0.25, nil)) < 1e-9 {
		t.Errorf("smoothstep should differ from linear away from t=0.5")
	}
}

func TestCurveSortsOutOfOrderKeyframes(t *testing.T) {
	p := Curve(Linear, Keyframe{1, 10}, Keyframe{0, 0})
	if got := p.Eval(0, nil); got != 0 {
		t.Errorf("Eval(0) = %v, want 0 after sort", got)
	}
}
