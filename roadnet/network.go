package roadnet

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// 世界坐标反查道路位置时的粗采样步长与最大容许横向距离
const (
	projectionStep      = 1.0
	projectionTolerance = 10.0
)

// Position 表示一个道路相对位置及其对应的世界位姿
type Position struct {
	RoadID int64
	LaneID int
	S      float64
	X      float64
	Y      float64
	H      float64
}

// Network 表示由道路构成的路网
// 道路作为节点保存在有向图中，边表示道路首尾连接关系
type Network struct {
	g       *simple.DirectedGraph
	roads   map[int64]*Road
	ordered []*Road
}

// NewNetwork 创建一个空路网
func NewNetwork() *Network {
	return &Network{
		g:     simple.NewDirectedGraph(),
		roads: make(map[int64]*Road),
	}
}

// AddRoad 将道路加入路网
func (n *Network) AddRoad(r *Road) {
	if _, ok := n.roads[r.ID()]; ok {
		panic("duplicate road id")
	}
	n.g.AddNode(r)
	n.roads[r.ID()] = r
	n.ordered = append(n.ordered, r)
}

// Connect 声明from道路终点连接到to道路起点
func (n *Network) Connect(from, to *Road) {
	n.g.SetEdge(simple.Edge{F: from, T: to})
}

// NumRoads 返回路网中道路数量
func (n *Network) NumRoads() int {
	return len(n.ordered)
}

// RoadByIdx 按加入顺序返回道路
func (n *Network) RoadByIdx(i int) *Road {
	if i < 0 || i >= len(n.ordered) {
		return nil
	}
	return n.ordered[i]
}

// RoadByID 根据道路ID查找道路
func (n *Network) RoadByID(id int64) (*Road, bool) {
	r, ok := n.roads[id]
	return r, ok
}

// Successors 返回道路的后继道路列表
func (n *Network) Successors(r *Road) []*Road {
	var succ []*Road
	it := n.g.From(r.ID())
	for it.Next() {
		succ = append(succ, it.Node().(*Road))
	}
	return succ
}

// IsStronglyConnected 检查路网是否强连通
func (n *Network) IsStronglyConnected() bool {
	if len(n.ordered) == 0 {
		return false
	}
	return len(topo.TarjanSCC(n.g)) == 1
}

// PositionFromXYH 将世界坐标反查为道路相对位置
//
// 对每条道路的参考线做粗采样找到最近点，再在邻域内细化。
// 若所有道路的横向距离均超出容差则返回错误，调用方应丢弃该候选点
func (n *Network) PositionFromXYH(x, y, h float64) (Position, error) {
	bestDist := math.Inf(1)
	var bestRoad *Road
	bestS := 0.0

	for _, r := range n.ordered {
		s, d := projectOnRoad(r, x, y)
		if d < bestDist {
			bestDist = d
			bestRoad = r
			bestS = s
		}
	}

	if bestRoad == nil || bestDist > projectionTolerance {
		return Position{}, errors.New("no road found near position")
	}

	rx, ry, rh := bestRoad.Evaluate(bestS)
	// 根据横向偏移符号判断点位于参考线左侧还是右侧
	t := -(x-rx)*math.Sin(rh) + (y-ry)*math.Cos(rh)
	laneID := nearestLane(bestRoad, t)

	return Position{
		RoadID: bestRoad.ID(),
		LaneID: laneID,
		S:      bestS,
		X:      x,
		Y:      y,
		H:      h,
	}, nil
}

// projectOnRoad 在单条道路上寻找距(x, y)最近的弧长位置
func projectOnRoad(r *Road, x, y float64) (s, dist float64) {
	best := math.Inf(1)
	bestS := 0.0
	for cand := 0.0; ; cand += projectionStep {
		if cand > r.Length() {
			cand = r.Length()
		}
		px, py, _ := r.Evaluate(cand)
		d := math.Hypot(px-x, py-y)
		if d < best {
			best = d
			bestS = cand
		}
		if cand >= r.Length() {
			break
		}
	}

	// 在最近采样点邻域内做三分细化
	lo := math.Max(0, bestS-projectionStep)
	hi := math.Min(r.Length(), bestS+projectionStep)
	for i := 0; i < 40; i++ {
		m1 := lo + (hi-lo)/3
		m2 := hi - (hi-lo)/3
		x1, y1, _ := r.Evaluate(m1)
		x2, y2, _ := r.Evaluate(m2)
		if math.Hypot(x1-x, y1-y) < math.Hypot(x2-x, y2-y) {
			hi = m2
		} else {
			lo = m1
		}
	}
	s = (lo + hi) / 2
	px, py, _ := r.Evaluate(s)
	return s, math.Hypot(px-x, py-y)
}

// nearestLane 根据横向偏移选择最近的车道ID
func nearestLane(r *Road, t float64) int {
	bestID := 0
	best := math.Inf(1)
	for _, l := range r.lanes {
		d := math.Abs(r.laneOffset(l.id) - t)
		if d < best {
			best = d
			bestID = l.id
		}
	}
	return bestID
}
