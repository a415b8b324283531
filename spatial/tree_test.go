package spatial

import (
	"testing"

	"golang.org/x/exp/rand"
)

// randomArena 生成n个随机分布的小三角形
func randomArena(rng *rand.Rand, n int, spread float64) *Arena {
	arena := NewArena()
	for i := 0; i < n; i++ {
		x := rng.Float64() * spread
		y := rng.Float64() * spread
		arena.Add(Triangle{
			A: Point{X: x, Y: y},
			B: Point{X: x + 1, Y: y},
			C: Point{X: x, Y: y + 1},
		})
	}
	return arena
}

func TestBuildLeafCountAndRootContainment(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for _, n := range []int{1, 2, 7, 100} {
		arena := randomArena(rng, n, 50)
		tree := NewTree(arena)
		tree.BuildAll()

		if got := tree.LeafCount(); got != n {
			t.Errorf("n=%d: leaf count = %d, want %d", n, got, n)
		}

		root, ok := tree.BBox()
		if !ok {
			t.Fatalf("n=%d: tree unexpectedly empty", n)
		}
		for i := 0; i < arena.Len(); i++ {
			if !root.contains(arena.Box(i)) {
				t.Errorf("n=%d: root box does not contain input box %d", n, i)
			}
		}
	}
}

func TestBuildEmpty(t *testing.T) {
	tree := NewTree(NewArena())
	tree.BuildAll()

	if !tree.Empty() {
		t.Error("tree built from empty input should be empty")
	}
	if _, ok := tree.BBox(); ok {
		t.Error("empty tree should not report a bounding box")
	}
}

func TestIntersectNoFalseNegatives(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	arenaA := randomArena(rng, 80, 40)
	arenaB := randomArena(rng, 60, 40)

	treeA := NewTree(arenaA)
	treeA.BuildAll()
	treeB := NewTree(arenaB)
	treeB.BuildAll()

	var candidates []Candidate
	treeA.Intersect(treeB, &candidates)

	found := make(map[Candidate]struct{}, len(candidates))
	for _, c := range candidates {
		if !arenaA.Box(c.A).Overlaps(arenaB.Box(c.B)) {
			t.Errorf("candidate (%d, %d) boxes do not actually overlap", c.A, c.B)
		}
		found[c] = struct{}{}
	}

	// 暴力枚举所有真实重叠的叶对，每一对都必须出现在结果中
	for i := 0; i < arenaA.Len(); i++ {
		for j := 0; j < arenaB.Len(); j++ {
			if arenaA.Box(i).Overlaps(arenaB.Box(j)) {
				if _, ok := found[Candidate{A: i, B: j}]; !ok {
					t.Errorf("overlapping pair (%d, %d) missing from intersect output", i, j)
				}
			}
		}
	}
}

func TestIntersectEmptyTree(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	arena := randomArena(rng, 10, 20)
	tree := NewTree(arena)
	tree.BuildAll()

	empty := NewTree(NewArena())
	empty.BuildAll()

	var candidates []Candidate
	tree.Intersect(empty, &candidates)
	if len(candidates) != 0 {
		t.Errorf("intersect with empty tree produced %d candidates", len(candidates))
	}

	empty.Intersect(tree, &candidates)
	if len(candidates) != 0 {
		t.Errorf("intersect from empty tree produced %d candidates", len(candidates))
	}
}
