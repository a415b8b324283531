package roadnet

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestLineEvaluateDS(t *testing.T) {
	g := NewLine(0, 1, 2, math.Pi/2, 10)

	x, y, h := g.EvaluateDS(4)
	if !scalar.EqualWithinAbs(x, 1, 1e-9) || !scalar.EqualWithinAbs(y, 6, 1e-9) {
		t.Errorf("point = (%g, %g), want (1, 6)", x, y)
	}
	if h != math.Pi/2 {
		t.Errorf("heading = %g, want %g", h, math.Pi/2)
	}
}

func TestArcEvaluateDS(t *testing.T) {
	// 半径100的半圆，从原点朝x正方向出发左转，终点(0, 200)朝向π
	g := NewArc(0, 0, 0, 0, 100*math.Pi, 0.01)

	x, y, h := g.EvaluateDS(g.Length)
	if !scalar.EqualWithinAbs(x, 0, 1e-6) || !scalar.EqualWithinAbs(y, 200, 1e-6) {
		t.Errorf("end point = (%g, %g), want (0, 200)", x, y)
	}
	if !scalar.EqualWithinAbs(h, math.Pi, 1e-9) {
		t.Errorf("end heading = %g, want %g", h, math.Pi)
	}

	// 四分之一处应在(100, 100)朝向π/2
	x, y, h = g.EvaluateDS(50 * math.Pi)
	if !scalar.EqualWithinAbs(x, 100, 1e-6) || !scalar.EqualWithinAbs(y, 100, 1e-6) {
		t.Errorf("quarter point = (%g, %g), want (100, 100)", x, y)
	}
	if !scalar.EqualWithinAbs(h, math.Pi/2, 1e-9) {
		t.Errorf("quarter heading = %g, want %g", h, math.Pi/2)
	}
}

func TestRoadEvaluateAcrossGeometries(t *testing.T) {
	// 直线接四分之一圆弧：道路弧长跨段求值应连续
	line := NewLine(0, 0, 0, 0, 100)
	arc := NewArc(100, 100, 0, 0, 50*math.Pi, 0.01)
	road := NewRoad(0, []Geometry{line, arc}, []*Lane{NewLane(-1, 3.5)})

	if !scalar.EqualWithinAbs(road.Length(), 100+50*math.Pi, 1e-9) {
		t.Fatalf("road length = %g", road.Length())
	}

	x, y, _ := road.Evaluate(100)
	if !scalar.EqualWithinAbs(x, 100, 1e-9) || !scalar.EqualWithinAbs(y, 0, 1e-9) {
		t.Errorf("junction point = (%g, %g), want (100, 0)", x, y)
	}

	x, y, h := road.Evaluate(100 + 50*math.Pi)
	if !scalar.EqualWithinAbs(x, 200, 1e-6) || !scalar.EqualWithinAbs(y, 100, 1e-6) {
		t.Errorf("end point = (%g, %g), want (200, 100)", x, y)
	}
	if !scalar.EqualWithinAbs(h, math.Pi/2, 1e-9) {
		t.Errorf("end heading = %g, want %g", h, math.Pi/2)
	}
}

func TestRingNetworkConnectivity(t *testing.T) {
	net := CreateRingNetwork(200, 12, 2)

	if net.NumRoads() != 12 {
		t.Fatalf("road count = %d, want 12", net.NumRoads())
	}
	if !net.IsStronglyConnected() {
		t.Error("ring network should be strongly connected")
	}

	// 每条道路恰有一条后继
	for i := 0; i < net.NumRoads(); i++ {
		if succ := net.Successors(net.RoadByIdx(i)); len(succ) != 1 {
			t.Errorf("road %d: successor count = %d, want 1", i, len(succ))
		}
	}
}

func TestStadiumNetworkConnectivity(t *testing.T) {
	net := CreateStadiumNetwork(400, 100, 2)

	if net.NumRoads() != 4 {
		t.Fatalf("road count = %d, want 4", net.NumRoads())
	}
	if !net.IsStronglyConnected() {
		t.Error("stadium network should be strongly connected")
	}
}

func TestPositionFromXYHRoundTrip(t *testing.T) {
	net := CreateRingNetwork(200, 12, 2)
	road := net.RoadByIdx(3)

	s0 := 37.3
	x, y, h := road.Evaluate(s0)

	pos, err := net.PositionFromXYH(x, y, h)
	if err != nil {
		t.Fatalf("PositionFromXYH failed: %v", err)
	}
	if pos.RoadID != road.ID() {
		t.Errorf("road = %d, want %d", pos.RoadID, road.ID())
	}
	if math.Abs(pos.S-s0) > 0.1 {
		t.Errorf("s = %g, want %g", pos.S, s0)
	}
}

func TestPositionFromXYHFarAway(t *testing.T) {
	net := CreateRingNetwork(100, 8, 1)

	if _, err := net.PositionFromXYH(10000, 10000, 0); err == nil {
		t.Error("expected error for position far from any road")
	}
}

func TestEvaluateLaneOffset(t *testing.T) {
	// 朝x正方向的直路，-1车道中心应在参考线右侧半车道宽处
	road := NewRoad(0,
		[]Geometry{NewLine(0, 0, 0, 0, 100)},
		[]*Lane{NewLane(-1, 3.5), NewLane(-2, 3.5)},
	)

	_, y, _ := road.EvaluateLane(50, -1)
	if !scalar.EqualWithinAbs(y, -1.75, 1e-9) {
		t.Errorf("lane -1 offset y = %g, want -1.75", y)
	}

	_, y, _ = road.EvaluateLane(50, -2)
	if !scalar.EqualWithinAbs(y, -5.25, 1e-9) {
		t.Errorf("lane -2 offset y = %g, want -5.25", y)
	}
}
