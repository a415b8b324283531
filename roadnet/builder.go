package roadnet

import "math"

const defaultLaneWidth = 3.5

// makeLanes 生成numLanes条右侧行驶车道（ID为-1, -2, ...）
func makeLanes(numLanes int) []*Lane {
	lanes := make([]*Lane, numLanes)
	for i := 0; i < numLanes; i++ {
		lanes[i] = NewLane(-(i + 1), defaultLaneWidth)
	}
	return lanes
}

// CreateRingNetwork 创建一个由圆弧道路组成的环形路网
//
// 参数:
//   - radius: 环形半径
//   - numRoads: 道路段数（圆被均分为numRoads段圆弧）
//   - numLanes: 每条道路的车道数
//
// 返回:
//   - *Network: 创建的路网，首尾相连形成闭环
func CreateRingNetwork(radius float64, numRoads, numLanes int) *Network {
	if radius <= 0 {
		panic("radius must be positive")
	}
	if numRoads < 2 {
		panic("numRoads must be at least 2")
	}
	if numLanes <= 0 {
		panic("numLanes must be positive")
	}

	net := NewNetwork()
	curvature := 1.0 / radius
	arcLength := 2 * math.Pi * radius / float64(numRoads)

	roads := make([]*Road, numRoads)
	for i := 0; i < numRoads; i++ {
		// 第i段圆弧的起点位姿：圆心在原点，逆时针行进
		phi := 2 * math.Pi * float64(i) / float64(numRoads)
		x := radius * math.Cos(phi)
		y := radius * math.Sin(phi)
		hdg := phi + math.Pi/2

		geom := NewArc(0, x, y, hdg, arcLength, curvature)
		roads[i] = NewRoad(int64(i), []Geometry{geom}, makeLanes(numLanes))
		net.AddRoad(roads[i])
	}

	for i := 0; i < numRoads; i++ {
		net.Connect(roads[i], roads[(i+1)%numRoads])
	}

	return net
}

// CreateStadiumNetwork 创建一个跑道形路网（两条直道加两个半圆弯道）
//
// 参数:
//   - straightLen: 直道长度
//   - radius: 弯道半径
//   - numLanes: 每条道路的车道数
//
// 同时包含直线段与圆弧段，用于覆盖两种几何类型
func CreateStadiumNetwork(straightLen, radius float64, numLanes int) *Network {
	if straightLen <= 0 {
		panic("straightLen must be positive")
	}
	if radius <= 0 {
		panic("radius must be positive")
	}
	if numLanes <= 0 {
		panic("numLanes must be positive")
	}

	net := NewNetwork()
	halfCircle := math.Pi * radius

	// 下方直道自左向右，上方直道自右向左，弯道逆时针衔接
	bottom := NewRoad(0, []Geometry{NewLine(0, 0, 0, 0, straightLen)}, makeLanes(numLanes))
	rightTurn := NewRoad(1, []Geometry{NewArc(0, straightLen, 0, 0, halfCircle, 1/radius)}, makeLanes(numLanes))
	top := NewRoad(2, []Geometry{NewLine(0, straightLen, 2*radius, math.Pi, straightLen)}, makeLanes(numLanes))
	leftTurn := NewRoad(3, []Geometry{NewArc(0, 0, 2*radius, math.Pi, halfCircle, 1/radius)}, makeLanes(numLanes))

	for _, r := range []*Road{bottom, rightTurn, top, leftTurn} {
		net.AddRoad(r)
	}
	net.Connect(bottom, rightTurn)
	net.Connect(rightTurn, top)
	net.Connect(top, leftTurn)
	net.Connect(leftTurn, bottom)

	return net
}
