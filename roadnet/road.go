package roadnet

import "math"

// Lane 表示道路上的一条车道
// ID遵循右侧为负、左侧为正的约定，0保留给参考线
type Lane struct {
	id    int
	width float64
}

// NewLane 创建一条车道
func NewLane(id int, width float64) *Lane {
	if id == 0 {
		panic("lane id 0 is reserved for the reference line")
	}
	if width <= 0 {
		panic("lane width must be positive")
	}
	return &Lane{id: id, width: width}
}

// ID 返回车道ID
func (l *Lane) ID() int {
	return l.id
}

// Width 返回车道宽度
func (l *Lane) Width() float64 {
	return l.width
}

// Road 表示一条由若干几何段组成的道路
// Road实现gonum的graph.Node接口，道路之间的连接关系保存在Network的有向图中
type Road struct {
	id         int64
	length     float64
	geometries []Geometry
	lanes      []*Lane
}

// NewRoad 创建一条道路
// 几何段必须按弧长顺序排列且首尾衔接
func NewRoad(id int64, geometries []Geometry, lanes []*Lane) *Road {
	if len(geometries) == 0 {
		panic("road must have at least one geometry")
	}

	length := 0.0
	for _, g := range geometries {
		length += g.Length
	}

	return &Road{
		id:         id,
		length:     length,
		geometries: geometries,
		lanes:      lanes,
	}
}

// ID 返回道路ID，同时满足graph.Node接口
func (r *Road) ID() int64 {
	return r.id
}

// Length 返回道路总长
func (r *Road) Length() float64 {
	return r.length
}

// NumGeometries 返回几何段数量
func (r *Road) NumGeometries() int {
	return len(r.geometries)
}

// Geometry 返回指定索引的几何段
func (r *Road) Geometry(idx int) (Geometry, bool) {
	if idx < 0 || idx >= len(r.geometries) {
		return Geometry{}, false
	}
	return r.geometries[idx], true
}

// Evaluate 计算道路弧长s处的世界坐标与航向
// s会被截断到[0, Length]范围内
func (r *Road) Evaluate(s float64) (x, y, h float64) {
	if s < 0 {
		s = 0
	}
	if s > r.length {
		s = r.length
	}

	for _, g := range r.geometries {
		if s <= g.S+g.Length {
			return g.EvaluateDS(s - g.S)
		}
	}
	last := r.geometries[len(r.geometries)-1]
	return last.EvaluateDS(last.Length)
}

// NumberOfDrivingLanes 返回弧长s处可行驶车道数
// 当前车道组不随弧长变化，s参数保留以对齐道路查询接口
func (r *Road) NumberOfDrivingLanes(s float64) int {
	return len(r.lanes)
}

// DrivingLaneByIdx 返回弧长s处第idx条可行驶车道
func (r *Road) DrivingLaneByIdx(s float64, idx int) (*Lane, bool) {
	if idx < 0 || idx >= len(r.lanes) {
		return nil, false
	}
	return r.lanes[idx], true
}

// LaneByID 根据车道ID查找车道
func (r *Road) LaneByID(id int) (*Lane, bool) {
	for _, l := range r.lanes {
		if l.id == id {
			return l, true
		}
	}
	return nil, false
}

// laneOffset 返回车道中心线相对参考线的横向偏移
// 右侧车道（负ID）偏移为负
func (r *Road) laneOffset(laneID int) float64 {
	offset := 0.0
	if laneID < 0 {
		for _, l := range r.lanes {
			if l.id < 0 && l.id >= laneID {
				offset -= l.width
			}
		}
		offset += r.widthOf(laneID) / 2
	} else {
		for _, l := range r.lanes {
			if l.id > 0 && l.id <= laneID {
				offset += l.width
			}
		}
		offset -= r.widthOf(laneID) / 2
	}
	return offset
}

func (r *Road) widthOf(laneID int) float64 {
	if l, ok := r.LaneByID(laneID); ok {
		return l.width
	}
	return 0
}

// EvaluateLane 计算弧长s处指定车道中心线上的世界坐标与航向
func (r *Road) EvaluateLane(s float64, laneID int) (x, y, h float64) {
	x, y, h = r.Evaluate(s)
	t := r.laneOffset(laneID)
	// 沿参考线法向偏移
	x += -t * math.Sin(h)
	y += t * math.Cos(h)
	return x, y, h
}
