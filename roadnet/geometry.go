package roadnet

import "math"

// GeometryType 几何段类型
type GeometryType int

const (
	GeometryTypeUnknown GeometryType = iota
	GeometryTypeLine
	GeometryTypeArc
)

// Geometry 表示道路参考线上的一个几何段
// 采用带类型标签的单一结构而非接口层次，Curvature仅对圆弧段有效
type Geometry struct {
	Type      GeometryType
	S         float64 // 段起点在道路参考线上的弧长
	X         float64 // 段起点世界坐标
	Y         float64
	Hdg       float64 // 段起点航向角
	Length    float64
	Curvature float64 // 圆弧曲率，正值为左转
}

// NewLine 创建一个直线几何段
func NewLine(s, x, y, hdg, length float64) Geometry {
	if length <= 0 {
		panic("geometry length must be positive")
	}
	return Geometry{Type: GeometryTypeLine, S: s, X: x, Y: y, Hdg: hdg, Length: length}
}

// NewArc 创建一个圆弧几何段
func NewArc(s, x, y, hdg, length, curvature float64) Geometry {
	if length <= 0 {
		panic("geometry length must be positive")
	}
	if curvature == 0 {
		panic("arc curvature must be non-zero")
	}
	return Geometry{Type: GeometryTypeArc, S: s, X: x, Y: y, Hdg: hdg, Length: length, Curvature: curvature}
}

// EvaluateDS 计算距段起点弧长ds处的世界坐标与航向
// ds会被截断到[0, Length]范围内
func (g Geometry) EvaluateDS(ds float64) (x, y, h float64) {
	if ds < 0 {
		ds = 0
	}
	if ds > g.Length {
		ds = g.Length
	}

	switch g.Type {
	case GeometryTypeLine:
		return g.X + ds*math.Cos(g.Hdg), g.Y + ds*math.Sin(g.Hdg), g.Hdg
	case GeometryTypeArc:
		h = g.Hdg + g.Curvature*ds
		x = g.X + (math.Sin(h)-math.Sin(g.Hdg))/g.Curvature
		y = g.Y - (math.Cos(h)-math.Cos(g.Hdg))/g.Curvature
		return x, y, h
	default:
		return g.X, g.Y, g.Hdg
	}
}

// EndPose 返回段终点的世界坐标与航向
func (g Geometry) EndPose() (x, y, h float64) {
	return g.EvaluateDS(g.Length)
}
