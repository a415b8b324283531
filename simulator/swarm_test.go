package simulator

import (
	"math"
	"testing"

	"golang.org/x/exp/rand"

	"trafficSwarm/element"
	"trafficSwarm/roadnet"
)

// newTestSwarm 构建一条600单位直路，中心车辆静止在中点
// 外椭圆半轴100/80，中间椭圆半轴70/60
func newTestSwarm(maxVehicles int) (*SwarmTraffic, *element.Entities) {
	road := roadnet.NewRoad(0,
		[]roadnet.Geometry{roadnet.NewLine(0, 0, 0, 0, 600)},
		[]*roadnet.Lane{roadnet.NewLane(-1, 3.5), roadnet.NewLane(-2, 3.5)},
	)
	net := roadnet.NewNetwork()
	net.AddRoad(road)

	entities := element.NewEntities()
	central := element.NewVehicle("central", 0)
	central.SetLanePosition(net, 0, -1, 300, false)
	entities.AddObject(central)

	rng := rand.New(rand.NewSource(42))
	swarm := NewSwarmTraffic(net, entities, central, SwarmConfig{
		InnerRadius:      40,
		SemiMajorAxis:    100,
		SemiMinorAxis:    80,
		NumberOfVehicles: maxVehicles,
		Velocity:         0,
	}, rng)
	swarm.Start(0)
	return swarm, entities
}

// injectVehicle 直接注入一辆带生成记录的静止车辆
func injectVehicle(s *SwarmTraffic, x, y float64) int64 {
	v := element.NewVehicle("", 0)
	v.SetPosition(roadnet.Position{RoadID: 0, LaneID: -1, S: x, X: x, Y: y, H: 0})
	id := s.entities.AddObject(v)
	s.spawned = append(s.spawned, SpawnInfo{VehicleID: id, RoadID: 0, LaneID: -1})
	return id
}

func TestDespawnOutsideOuterEllipse(t *testing.T) {
	swarm, entities := newTestSwarm(10)
	cPos := swarm.central.Position()

	// 沿长轴放置，使外椭圆隐式值恰为0.01
	x := cPos.X + swarm.cfg.SemiMajorAxis*math.Sqrt(1.01)
	id := injectVehicle(swarm, x, cPos.Y)

	if got := swarm.despawn(0); got != 1 {
		t.Errorf("despawn count = %d, want 1", got)
	}
	if _, ok := entities.GetObjectByID(id); ok {
		t.Error("vehicle outside outer ellipse should be removed")
	}
	if swarm.Live() != 0 {
		t.Errorf("live spawn records = %d, want 0", swarm.Live())
	}
}

func TestDespawnHysteresisOnMidBorder(t *testing.T) {
	swarm, entities := newTestSwarm(10)
	cPos := swarm.central.Position()

	// 恰在中间椭圆边界上：e1 = 0按界外累计，但不会立即回收
	id := injectVehicle(swarm, cPos.X+swarm.midSMjA, cPos.Y)

	for i := 1; i <= uselessThreshold; i++ {
		if got := swarm.despawn(0); got != 0 {
			t.Fatalf("tick %d: despawn count = %d, want 0", i, got)
		}
		if swarm.spawned[0].OutMidAreaCount != i {
			t.Fatalf("tick %d: counter = %d, want %d", i, swarm.spawned[0].OutMidAreaCount, i)
		}
	}

	// 第6个连续界外时间步超过阈值，车辆被回收
	if got := swarm.despawn(0); got != 1 {
		t.Errorf("despawn count after exceeding threshold = %d, want 1", got)
	}
	if _, ok := entities.GetObjectByID(id); ok {
		t.Error("vehicle should be removed after exceeding hysteresis threshold")
	}
}

func TestDespawnCounterResetInsideMid(t *testing.T) {
	swarm, _ := newTestSwarm(10)
	cPos := swarm.central.Position()

	injectVehicle(swarm, cPos.X, cPos.Y)
	swarm.spawned[0].OutMidAreaCount = 3

	if got := swarm.despawn(0); got != 0 {
		t.Errorf("despawn count = %d, want 0", got)
	}
	if swarm.spawned[0].OutMidAreaCount != 0 {
		t.Errorf("counter = %d, want 0 after returning inside mid ellipse", swarm.spawned[0].OutMidAreaCount)
	}
}

func TestSpawnInvalidSampleRangeAborts(t *testing.T) {
	swarm, entities := newTestSwarm(2)
	before := entities.Count()

	// maxCars = 2 < replace = 3：采样区间无效，本步放弃生成
	if got := swarm.spawn(nil, 3, 0); got != 0 {
		t.Errorf("spawn count = %d, want 0", got)
	}
	if entities.Count() != before {
		t.Errorf("population changed from %d to %d on aborted spawn", before, entities.Count())
	}
}

func TestSpawnSkipsWhenPopulationFull(t *testing.T) {
	swarm, _ := newTestSwarm(1)
	cPos := swarm.central.Position()
	injectVehicle(swarm, cPos.X+10, cPos.Y)

	if got := swarm.spawn(nil, 0, 0); got != 0 {
		t.Errorf("spawn count = %d, want 0 when population is full", got)
	}
}

func TestTickPopulationBoundAndSpacing(t *testing.T) {
	const maxVehicles = 10
	swarm, entities := newTestSwarm(maxVehicles)

	simTime := 0.0
	for i := 0; i < 30; i++ {
		simTime += 0.2
		swarm.Step(0.2, simTime)

		if swarm.Live() > maxVehicles {
			t.Fatalf("tick %d: live = %d exceeds max %d", i, swarm.Live(), maxVehicles)
		}
		// 生成记录与活动实体一一对应（中心车辆除外）
		if entities.Count() != swarm.Live()+1 {
			t.Fatalf("tick %d: entities = %d, records = %d", i, entities.Count(), swarm.Live())
		}
	}

	if swarm.Live() == 0 {
		t.Fatal("expected some vehicles to spawn on a road crossing the band")
	}

	// 同路同车道的任意两辆生成车辆必须保持最小间距
	records := swarm.SpawnRecords()
	for i := 0; i < len(records); i++ {
		for j := i + 1; j < len(records); j++ {
			a, b := records[i], records[j]
			if a.RoadID != b.RoadID || a.LaneID != b.LaneID {
				continue
			}
			va, _ := entities.GetObjectByID(a.VehicleID)
			vb, _ := entities.GetObjectByID(b.VehicleID)
			if d := math.Abs(va.Position().S - vb.Position().S); d <= vehicleDistance {
				t.Errorf("vehicles %d and %d on road %d lane %d only %.2f apart",
					a.VehicleID, b.VehicleID, a.RoadID, a.LaneID, d)
			}
		}
	}
}

func TestStepSelfThrottles(t *testing.T) {
	swarm, _ := newTestSwarm(5)

	swarm.Step(0.05, 0)
	if swarm.lastTime != 0 {
		t.Fatalf("first step should process, lastTime = %g", swarm.lastTime)
	}

	// 间隔未超过固定时间间隔，该步被跳过
	swarm.Step(0.05, 0.05)
	if swarm.lastTime != 0 {
		t.Errorf("step within interval should be skipped, lastTime = %g", swarm.lastTime)
	}

	swarm.Step(0.05, 0.2)
	if swarm.lastTime != 0.2 {
		t.Errorf("step past interval should process, lastTime = %g", swarm.lastTime)
	}
}
