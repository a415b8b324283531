package geometry

import (
	"math"
	"sort"

	"trafficSwarm/roadnet"
	"trafficSwarm/spatial"
)

// SolutionPoint 表示椭圆带与路面的一个确认交点
type SolutionPoint struct {
	X float64
	Y float64
	H float64 // 交点处道路切线方向
}

// 根求解与去重的容差
const (
	rootTolerance  = 1e-9
	pointTolerance = 1e-3
)

// ProcessCandidates 将候选对压平为去重后的道路侧三角形索引
//
// 椭圆侧三角形只用于驱动空间查询，在此丢弃。
// 结果按索引升序排列，保证后续求解与候选对顺序无关
func ProcessCandidates(candidates []spatial.Candidate) []int {
	seen := make(map[int]struct{}, len(candidates))
	for _, c := range candidates {
		seen[c.A] = struct{}{}
	}

	idxs := make([]int, 0, len(seen))
	for i := range seen {
		idxs = append(idxs, i)
	}
	sort.Ints(idxs)
	return idxs
}

// FindPoints 对每个道路侧三角形求其代表弧段与椭圆边界的真实交点
//
// 直线段代入隐式椭圆方程解一元二次方程，圆弧段在弧长区间上
// 用符号变化定界加二分法求根。离散化产生的误报三角形不产生交点
func FindPoints(net *roadnet.Network, arena *spatial.Arena, triIdxs []int, info EllipseInfo) []SolutionPoint {
	var sols []SolutionPoint

	for _, ti := range triIdxs {
		tri := arena.Tri(ti)
		road, ok := net.RoadByID(tri.RoadID)
		if !ok {
			continue
		}
		g, ok := road.Geometry(tri.GeomIdx)
		if !ok {
			continue
		}

		var roots []float64
		switch g.Type {
		case roadnet.GeometryTypeLine:
			roots = lineEllipseRoots(g, tri.SI, tri.SF, info)
		case roadnet.GeometryTypeArc:
			roots = bracketedRoots(g, tri.SI, tri.SF, info)
		default:
			continue
		}

		for _, s := range roots {
			x, y, h := g.EvaluateDS(s)
			if !duplicatePoint(sols, x, y) {
				sols = append(sols, SolutionPoint{X: x, Y: y, H: h})
			}
		}
	}

	return sols
}

// lineEllipseRoots 求直线段与椭圆边界的交点弧长
//
// 将直线参数方程代入椭圆坐标系得到关于弧长的二次方程，
// 只保留落在[sI, sF]区间内的实根
func lineEllipseRoots(g roadnet.Geometry, sI, sF float64, info EllipseInfo) []float64 {
	ch, sh := math.Cos(info.Hdg), math.Sin(info.Hdg)
	dc, dsn := math.Cos(g.Hdg), math.Sin(g.Hdg)

	smjA := clampAxis(info.SMjA)
	smnA := clampAxis(info.SMnA)

	// 椭圆坐标系下直线的参数形式 (u0 + s*uc, v0 + s*vc)
	dx0, dy0 := g.X-info.CX, g.Y-info.CY
	u0 := dx0*ch + dy0*sh
	v0 := -dx0*sh + dy0*ch
	uc := dc*ch + dsn*sh
	vc := -dc*sh + dsn*ch

	a := (uc/smjA)*(uc/smjA) + (vc/smnA)*(vc/smnA)
	b := 2 * (u0*uc/(smjA*smjA) + v0*vc/(smnA*smnA))
	c := (u0/smjA)*(u0/smjA) + (v0/smnA)*(v0/smnA) - 1

	var roots []float64
	if a == 0 {
		if b != 0 {
			roots = append(roots, -c/b)
		}
	} else {
		disc := b*b - 4*a*c
		if disc < 0 {
			return nil
		}
		sq := math.Sqrt(disc)
		roots = append(roots, (-b-sq)/(2*a), (-b+sq)/(2*a))
	}

	var inRange []float64
	for _, s := range roots {
		if s >= sI && s <= sF {
			inRange = append(inRange, s)
		}
	}
	return inRange
}

// bracketedRoots 在弧长区间上用符号变化定界后二分求根
func bracketedRoots(g roadnet.Geometry, sI, sF float64, info EllipseInfo) []float64 {
	const subdivisions = 8

	f := func(s float64) float64 {
		x, y, _ := g.EvaluateDS(s)
		return EllipseEval(info.CX, info.CY, info.Hdg, info.SMjA, info.SMnA, x, y)
	}

	var roots []float64
	step := (sF - sI) / subdivisions
	if step <= 0 {
		return nil
	}

	prev := sI
	fPrev := f(prev)
	for i := 1; i <= subdivisions; i++ {
		cur := sI + float64(i)*step
		if i == subdivisions {
			cur = sF
		}
		fCur := f(cur)

		if fPrev == 0 {
			roots = append(roots, prev)
		} else if fPrev*fCur < 0 {
			roots = append(roots, bisect(f, prev, cur))
		}

		prev, fPrev = cur, fCur
	}
	if fPrev == 0 {
		roots = append(roots, sF)
	}
	return roots
}

// bisect 在[lo, hi]上二分求f的根，要求f(lo)与f(hi)异号
func bisect(f func(float64) float64, lo, hi float64) float64 {
	fLo := f(lo)
	for i := 0; i < 100 && hi-lo > rootTolerance; i++ {
		mid := (lo + hi) / 2
		fMid := f(mid)
		if fMid == 0 {
			return mid
		}
		if fLo*fMid < 0 {
			hi = mid
		} else {
			lo, fLo = mid, fMid
		}
	}
	return (lo + hi) / 2
}

// duplicatePoint 检查是否已存在容差范围内的交点
// 相邻三角形共享端点，落在公共边界上的根会被两侧各求出一次
func duplicatePoint(sols []SolutionPoint, x, y float64) bool {
	for _, p := range sols {
		if math.Hypot(p.X-x, p.Y-y) < pointTolerance {
			return true
		}
	}
	return false
}
