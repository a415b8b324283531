package element

import (
	"math"
	"sync"

	"trafficSwarm/roadnet"
)

// Vehicle 表示一个仿真车辆
// 位置同时维护世界位姿与道路相对位置，二者在移动时保持同步
type Vehicle struct {
	id    int64
	name  string
	speed float64          // 巡航速度
	pos   roadnet.Position // 当前位置
	mu    sync.RWMutex     // 用于保护并发访问
}

// NewVehicle 创建一个新车辆
func NewVehicle(name string, speed float64) *Vehicle {
	if speed < 0 {
		panic("speed must be non-negative")
	}
	return &Vehicle{name: name, speed: speed}
}

// ID 返回车辆ID（由Entities在注册时分配）
func (v *Vehicle) ID() int64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.id
}

// Name 返回车辆名称
func (v *Vehicle) Name() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.name
}

// Speed 返回车辆巡航速度
func (v *Vehicle) Speed() float64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.speed
}

// SetSpeed 设置车辆巡航速度
func (v *Vehicle) SetSpeed(speed float64) {
	if speed < 0 {
		panic("speed must be non-negative")
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.speed = speed
}

// Position 返回车辆当前位置
func (v *Vehicle) Position() roadnet.Position {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.pos
}

// SetPosition 设置车辆位置
func (v *Vehicle) SetPosition(pos roadnet.Position) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pos = pos
}

// SetLanePosition 按道路、车道与弧长设置车辆位置并更新世界位姿
//
// hdgFlip为true时航向相对道路方向翻转π，用于沿道路反方向行驶的车道
func (v *Vehicle) SetLanePosition(net *roadnet.Network, roadID int64, laneID int, s float64, hdgFlip bool) bool {
	road, ok := net.RoadByID(roadID)
	if !ok {
		return false
	}

	x, y, h := road.EvaluateLane(s, laneID)
	if hdgFlip {
		h += math.Pi
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.pos = roadnet.Position{RoadID: roadID, LaneID: laneID, S: s, X: x, Y: y, H: h}
	return true
}

// MoveAlong 沿路网推进车辆
//
// 按speed*dt推进弧长，越过道路末端时转移到第一条后继道路；
// 无后继道路时停在末端
func (v *Vehicle) MoveAlong(net *roadnet.Network, dt float64) {
	v.mu.Lock()
	defer v.mu.Unlock()

	road, ok := net.RoadByID(v.pos.RoadID)
	if !ok {
		return
	}

	s := v.pos.S + v.speed*dt
	for s > road.Length() {
		succ := net.Successors(road)
		if len(succ) == 0 {
			s = road.Length()
			break
		}
		s -= road.Length()
		road = succ[0]
	}

	x, y, h := road.EvaluateLane(s, v.pos.LaneID)
	v.pos = roadnet.Position{RoadID: road.ID(), LaneID: v.pos.LaneID, S: s, X: x, Y: y, H: h}
}
