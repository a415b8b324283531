package geometry

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestParamEllipseOnImplicitCurve(t *testing.T) {
	cx, cy, hdg := 12.0, -5.0, 0.7
	smjA, smnA := 100.0, 80.0

	for i := 0; i < 36; i++ {
		alpha := float64(i) * 2 * math.Pi / 36
		x, y := ParamEllipse(alpha, cx, cy, smjA, smnA, hdg)
		if v := EllipseEval(cx, cy, hdg, smjA, smnA, x, y); !scalar.EqualWithinAbs(v, 0, 1e-9) {
			t.Errorf("alpha=%.3f: implicit value = %g, want 0", alpha, v)
		}
	}
}

func TestEllipseEvalSign(t *testing.T) {
	// 中心在原点、朝向0的圆：内部为负，外部为正
	if v := EllipseEval(0, 0, 0, 10, 10, 1, 1); v >= 0 {
		t.Errorf("inside point should be negative, got %g", v)
	}
	if v := EllipseEval(0, 0, 0, 10, 10, 20, 0); v <= 0 {
		t.Errorf("outside point should be positive, got %g", v)
	}
}

func TestTangentHeadingDegenerateAxes(t *testing.T) {
	// 退化半轴不得产生NaN
	for _, axes := range [][2]float64{{0, 0}, {0, 10}, {10, 0}, {5, 5}} {
		for i := 0; i < 8; i++ {
			alpha := float64(i) * math.Pi / 4
			theta := TangentHeading(axes[0], axes[1], alpha, 0.3)
			if math.IsNaN(theta) {
				t.Errorf("axes=%v alpha=%.2f: tangent heading is NaN", axes, alpha)
			}
		}
	}
}

func TestTangentIntersection(t *testing.T) {
	// 过(0,0)的45度线与过(2,0)的135度线交于(1,1)
	x, y := TangentIntersection(0, 0, math.Pi/4, 2, 0, 3*math.Pi/4)
	if !scalar.EqualWithinAbs(x, 1, 1e-9) || !scalar.EqualWithinAbs(y, 1, 1e-9) {
		t.Errorf("intersection = (%g, %g), want (1, 1)", x, y)
	}

	// 平行切线退化为弦中点
	x, y = TangentIntersection(0, 0, 0, 4, 2, 0)
	if !scalar.EqualWithinAbs(x, 2, 1e-9) || !scalar.EqualWithinAbs(y, 1, 1e-9) {
		t.Errorf("parallel fallback = (%g, %g), want (2, 1)", x, y)
	}
}
