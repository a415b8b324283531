package geometry

import "math"

// 椭圆半轴小于该值时视为退化，参与正切计算前先夹紧
const minAxis = 1e-9

// clampAxis 将退化的半轴夹紧到最小可用值
func clampAxis(a float64) float64 {
	if a < minAxis {
		return minAxis
	}
	return a
}

// ParamEllipse 计算椭圆参数方程在角度alpha处的点
//
// 参数:
//   - alpha: 参数角
//   - cx, cy: 椭圆中心
//   - smjA, smnA: 长短半轴
//   - hdg: 椭圆朝向（长轴与x轴夹角）
func ParamEllipse(alpha, cx, cy, smjA, smnA, hdg float64) (x, y float64) {
	ca, sa := math.Cos(alpha), math.Sin(alpha)
	ch, sh := math.Cos(hdg), math.Sin(hdg)
	x = cx + smjA*ca*ch - smnA*sa*sh
	y = cy + smjA*ca*sh + smnA*sa*ch
	return x, y
}

// TangentHeading 计算椭圆在参数角alpha处切线的方向角
// 使用atan2形式，半轴退化时夹紧，不会产生NaN
func TangentHeading(smjA, smnA, alpha, hdg float64) float64 {
	smjA = clampAxis(smjA)
	smnA = clampAxis(smnA)
	return math.Atan2(smnA*math.Cos(alpha), -smjA*math.Sin(alpha)) + hdg
}

// TangentIntersection 计算两条切线的交点
//
// 切线分别过(x0, y0)和(x1, y1)，方向角为theta0和theta1。
// 两线近似平行时退化为弦中点，避免交点飞出
func TangentIntersection(x0, y0, theta0, x1, y1, theta1 float64) (x, y float64) {
	c0, s0 := math.Cos(theta0), math.Sin(theta0)
	c1, s1 := math.Cos(theta1), math.Sin(theta1)

	det := c0*s1 - s0*c1
	if math.Abs(det) < 1e-12 {
		return (x0 + x1) / 2, (y0 + y1) / 2
	}

	// (x0,y0)+t0*(c0,s0) = (x1,y1)+t1*(c1,s1) 解t0
	t0 := ((x1-x0)*s1 - (y1-y0)*c1) / det
	return x0 + t0*c0, y0 + t0*s0
}

// EllipseEval 计算隐式椭圆方程在点(x, y)处的值
//
// 将点旋转平移到以(cx, cy)为中心、朝向hdg的椭圆坐标系后代入标准方程，
// 返回值为0表示点在椭圆上，正值在外，负值在内
func EllipseEval(cx, cy, hdg, smjA, smnA, x, y float64) float64 {
	smjA = clampAxis(smjA)
	smnA = clampAxis(smnA)

	dx, dy := x-cx, y-cy
	ch, sh := math.Cos(hdg), math.Sin(hdg)
	u := dx*ch + dy*sh
	v := -dx*sh + dy*ch
	return (u/smjA)*(u/smjA) + (v/smnA)*(v/smnA) - 1
}
