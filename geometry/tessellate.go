package geometry

import (
	"math"

	"trafficSwarm/roadnet"
	"trafficSwarm/spatial"
)

// 椭圆离散化的角度增量与道路离散化共用，保证两侧分辨率一致
const (
	AngleIncrement = math.Pi / 36
	angleOffset    = math.Pi / 72
)

// MinTriangleSize 根据中间椭圆计算道路离散化的最大步长
//
// 取角度增量在中间椭圆上产生的弦长，向上取整到0.01；
// 退化椭圆产生零弦长时夹紧为1.0
func MinTriangleSize(midSMjA, midSMnA float64) float64 {
	x0, y0 := ParamEllipse(0, 0, 0, midSMjA, midSMnA, 0)
	x1, y1 := ParamEllipse(AngleIncrement, 0, 0, midSMjA, midSMnA, 0)

	minSize := math.Ceil(math.Hypot(x1-x0, y1-y0)*100) / 100
	if minSize == 0 {
		minSize = 1.0
	}
	return minSize
}

// TessellateRoad 将单条道路的全部几何段离散为三角形并放入Arena
//
// 直线段按minSize步进；圆弧段的步长额外受角度增量限制，
// 保证每个三角形覆盖的航向变化不超过AngleIncrement
func TessellateRoad(road *roadnet.Road, minSize float64, arena *spatial.Arena) {
	for gi := 0; gi < road.NumGeometries(); gi++ {
		g, _ := road.Geometry(gi)
		switch g.Type {
		case roadnet.GeometryTypeUnknown:
			continue
		case roadnet.GeometryTypeLine:
			segment2triangles(road.ID(), gi, g, minSize, arena)
		default:
			step := minSize
			if arcStep := AngleIncrement / math.Abs(g.Curvature); arcStep < step {
				step = arcStep
			}
			segment2triangles(road.ID(), gi, g, step, arena)
		}
	}
}

// segment2triangles 将一个几何段按固定步长切成三角形
//
// 每步以首尾两点为底边，第三个顶点取弦中点偏移弦长四分之一，
// 使三角形具有非零面积从而保证包围盒不退化
func segment2triangles(roadID int64, geomIdx int, g roadnet.Geometry, step float64, arena *spatial.Arena) {
	for dist := 0.0; dist < g.Length; {
		ds := dist + step
		if ds > g.Length {
			ds = g.Length
		}

		x0, y0, _ := g.EvaluateDS(dist)
		x1, y1, _ := g.EvaluateDS(ds)
		l := math.Hypot(x1-x0, y1-y0)
		x2 := (x1+x0)/2 + l/4
		y2 := (y1+y0)/2 + l/4

		arena.Add(spatial.Triangle{
			A:       spatial.Point{X: x0, Y: y0},
			B:       spatial.Point{X: x1, Y: y1},
			C:       spatial.Point{X: x2, Y: y2},
			RoadID:  roadID,
			GeomIdx: geomIdx,
			SI:      dist,
			SF:      ds,
		})
		dist = ds
	}
}

// EllipseInfo 描述一次查询所用的椭圆带
type EllipseInfo struct {
	SMjA float64 // 长半轴
	SMnA float64 // 短半轴
	CX   float64 // 中心x
	CY   float64 // 中心y
	Hdg  float64 // 朝向
}

// TessellateEllipse 将椭圆边界离散为楔形三角形并放入Arena
//
// 参数角从-π/72走到2π-π/72，每步π/36：楔形以两个边界点为底，
// 两条切线的交点为顶，形成对椭圆弧的外切分段线性近似。
// 该近似仅用于生成保守包围盒，真实求交使用精确椭圆方程
func TessellateEllipse(info EllipseInfo, arena *spatial.Arena) {
	// 整圈恰好72个楔形；按步数迭代避免浮点累加在末端多出退化楔形
	numWedges := int(math.Round(2 * math.Pi / AngleIncrement))
	limit := 2*math.Pi - angleOffset

	for i := 0; i < numWedges; i++ {
		alpha := -angleOffset + float64(i)*AngleIncrement
		da := alpha + AngleIncrement
		if da > limit {
			da = limit
		}

		x0, y0 := ParamEllipse(alpha, info.CX, info.CY, info.SMjA, info.SMnA, info.Hdg)
		x1, y1 := ParamEllipse(da, info.CX, info.CY, info.SMjA, info.SMnA, info.Hdg)

		theta0 := TangentHeading(info.SMjA, info.SMnA, alpha, info.Hdg)
		theta1 := TangentHeading(info.SMjA, info.SMnA, da, info.Hdg)

		x2, y2 := TangentIntersection(x0, y0, theta0, x1, y1, theta1)

		arena.Add(spatial.Triangle{
			A:       spatial.Point{X: x0, Y: y0},
			B:       spatial.Point{X: x1, Y: y1},
			C:       spatial.Point{X: x2, Y: y2},
			RoadID:  -1,
			GeomIdx: -1,
		})
	}
}
