package spatial

import "sort"

// Candidate 表示一对包围盒相交的叶节点三角形
// A来自调用Intersect的树，B来自参数树，均为各自Arena中的三角形索引
type Candidate struct {
	A int
	B int
}

// node 树节点，left/right为节点切片中的索引（-1表示无子节点）
// leaf为叶节点对应的包围盒索引，内部节点为-1
type node struct {
	box   BBox
	left  int
	right int
	leaf  int
}

// Tree 表示建立在Arena之上的包围盒层次树
// 所有节点存储在扁平切片中，通过整型索引引用，避免指针共享
type Tree struct {
	arena *Arena
	nodes []node
	root  int
}

// NewTree 创建一棵空树
func NewTree(arena *Arena) *Tree {
	return &Tree{arena: arena, root: -1}
}

// Build 由Arena中指定的包围盒批量构建平衡层次结构
// boxIdxs为空时构建空树；每个输入包围盒恰好落在一个叶节点上
func (t *Tree) Build(boxIdxs []int) {
	t.nodes = t.nodes[:0]
	t.root = -1
	if len(boxIdxs) == 0 {
		return
	}
	// 复制一份，构建过程会原地重排
	idxs := make([]int, len(boxIdxs))
	copy(idxs, boxIdxs)
	t.root = t.build(idxs)
}

// BuildAll 使用Arena中全部包围盒构建树
func (t *Tree) BuildAll() {
	idxs := make([]int, t.arena.Len())
	for i := range idxs {
		idxs[i] = i
	}
	t.Build(idxs)
}

// build 递归构建子树，返回新建节点索引
func (t *Tree) build(idxs []int) int {
	if len(idxs) == 1 {
		t.nodes = append(t.nodes, node{
			box:  t.arena.Box(idxs[0]),
			left: -1, right: -1,
			leaf: idxs[0],
		})
		return len(t.nodes) - 1
	}

	box := t.arena.Box(idxs[0])
	for _, i := range idxs[1:] {
		box = box.merge(t.arena.Box(i))
	}

	// 沿包围盒中心分布最长的轴做中位数划分
	splitX := box.MaxX-box.MinX >= box.MaxY-box.MinY
	sort.Slice(idxs, func(i, j int) bool {
		ci, cj := t.arena.Box(idxs[i]).center(), t.arena.Box(idxs[j]).center()
		if splitX {
			return ci.X < cj.X
		}
		return ci.Y < cj.Y
	})
	mid := len(idxs) / 2

	self := len(t.nodes)
	t.nodes = append(t.nodes, node{box: box, left: -1, right: -1, leaf: -1})
	left := t.build(idxs[:mid])
	right := t.build(idxs[mid:])
	t.nodes[self].left = left
	t.nodes[self].right = right
	return self
}

// Empty 判断树是否为空
func (t *Tree) Empty() bool {
	return t.root < 0
}

// BBox 返回根节点包围盒，空树返回false
func (t *Tree) BBox() (BBox, bool) {
	if t.Empty() {
		return BBox{}, false
	}
	return t.nodes[t.root].box, true
}

// LeafCount 返回叶节点数量
func (t *Tree) LeafCount() int {
	n := 0
	for _, nd := range t.nodes {
		if nd.leaf >= 0 {
			n++
		}
	}
	return n
}

// Intersect 与另一棵树做成对下降相交检测
// 每当两叶节点包围盒重叠时输出一个候选对；包围盒不重叠的子树被整体剪枝。
// 结果不含漏报，可能含误报，由下游精确几何判定过滤；任一方为空树时无输出
func (t *Tree) Intersect(o *Tree, out *[]Candidate) {
	if t.Empty() || o.Empty() {
		return
	}
	t.intersect(t.root, o, o.root, out)
}

func (t *Tree) intersect(ni int, o *Tree, oi int, out *[]Candidate) {
	a, b := t.nodes[ni], o.nodes[oi]
	if !a.box.Overlaps(b.box) {
		return
	}

	switch {
	case a.leaf >= 0 && b.leaf >= 0:
		*out = append(*out, Candidate{
			A: t.arena.Box(a.leaf).Tri,
			B: o.arena.Box(b.leaf).Tri,
		})
	case a.leaf >= 0:
		t.intersect(ni, o, b.left, out)
		t.intersect(ni, o, b.right, out)
	case b.leaf >= 0:
		t.intersect(a.left, o, oi, out)
		t.intersect(a.right, o, oi, out)
	default:
		t.intersect(a.left, o, b.left, out)
		t.intersect(a.left, o, b.right, out)
		t.intersect(a.right, o, b.left, out)
		t.intersect(a.right, o, b.right, out)
	}
}
