package spatial

import "math"

// Point 表示一个二维平面上的点
type Point struct {
	X float64
	Y float64
}

// Triangle 表示路面或椭圆带离散化产生的一个三角形
// RoadID和GeomIdx标记其来源的道路几何段（椭圆侧三角形两者均为-1）
// SI和SF表示该三角形在几何段上覆盖的弧长区间
type Triangle struct {
	A       Point
	B       Point
	C       Point
	RoadID  int64
	GeomIdx int
	SI      float64
	SF      float64
}

// BBox 表示由三角形计算得到的轴对齐包围盒
// Tri为其在Arena中唯一对应的三角形索引，构建后不可变
type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
	Tri  int
}

// Overlaps 判断两个包围盒是否相交
func (b BBox) Overlaps(o BBox) bool {
	return b.MinX <= o.MaxX && b.MaxX >= o.MinX &&
		b.MinY <= o.MaxY && b.MaxY >= o.MinY
}

// contains 判断包围盒是否完全包含另一个包围盒
func (b BBox) contains(o BBox) bool {
	return b.MinX <= o.MinX && b.MaxX >= o.MaxX &&
		b.MinY <= o.MinY && b.MaxY >= o.MaxY
}

// merge 返回覆盖两个包围盒的最小包围盒
func (b BBox) merge(o BBox) BBox {
	return BBox{
		MinX: math.Min(b.MinX, o.MinX),
		MinY: math.Min(b.MinY, o.MinY),
		MaxX: math.Max(b.MaxX, o.MaxX),
		MaxY: math.Max(b.MaxY, o.MaxY),
		Tri:  -1,
	}
}

// center 返回包围盒中心点
func (b BBox) center() Point {
	return Point{X: (b.MinX + b.MaxX) / 2, Y: (b.MinY + b.MaxY) / 2}
}

// Arena 集中持有三角形及其包围盒
// 树节点只保存整型索引，道路侧Arena在整个场景生命周期内长期存在，
// 椭圆侧Arena每个时间步重建
type Arena struct {
	tris  []Triangle
	boxes []BBox
}

// NewArena 创建一个新的Arena
func NewArena() *Arena {
	return &Arena{}
}

// Reset 清空Arena以便复用底层存储
func (a *Arena) Reset() {
	a.tris = a.tris[:0]
	a.boxes = a.boxes[:0]
}

// Add 添加一个三角形并计算其包围盒，返回包围盒索引
func (a *Arena) Add(t Triangle) int {
	idx := len(a.tris)
	a.tris = append(a.tris, t)
	a.boxes = append(a.boxes, BBox{
		MinX: math.Min(t.A.X, math.Min(t.B.X, t.C.X)),
		MinY: math.Min(t.A.Y, math.Min(t.B.Y, t.C.Y)),
		MaxX: math.Max(t.A.X, math.Max(t.B.X, t.C.X)),
		MaxY: math.Max(t.A.Y, math.Max(t.B.Y, t.C.Y)),
		Tri:  idx,
	})
	return idx
}

// Len 返回Arena中包围盒的数量
func (a *Arena) Len() int {
	return len(a.boxes)
}

// Box 返回指定索引的包围盒
func (a *Arena) Box(i int) BBox {
	return a.boxes[i]
}

// Tri 返回指定索引的三角形
func (a *Arena) Tri(i int) Triangle {
	return a.tris[i]
}
