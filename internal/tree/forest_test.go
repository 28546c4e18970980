package tree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type item struct {
	id, parent int
}

func build(items []item) *Forest[item] {
	return Build(items,
		func(it item) int { return it.id },
		func(it item) (int, bool) { return it.parent, it.parent != 0 },
	)
}

func collect(f *Forest[item]) (ids, depths []int) {
	f.Walk(func(depth int, it item) {
		ids = append(ids, it.id)
		depths = append(depths, depth)
	})
	return ids, depths
}

func TestBuild_PreOrderWalk(t *testing.T) {
	t.Parallel()

	// 1
	// ├── 2
	// │   └── 4
	// └── 3
	// 5
	f := build([]item{{1, 0}, {2, 1}, {3, 1}, {4, 2}, {5, 0}})

	ids, depths := collect(f)
	require.Equal(t, []int{1, 2, 4, 3, 5}, ids)
	require.Equal(t, []int{0, 1, 2, 1, 0}, depths)
	require.Equal(t, 5, f.Len())
	require.Len(t, f.Roots(), 2)
}

func TestBuild_OrphanBecomesRoot(t *testing.T) {
	t.Parallel()

	f := build([]item{{1, 0}, {7, 99}, {8, 7}})

	ids, depths := collect(f)
	require.Equal(t, []int{1, 7, 8}, ids)
	require.Equal(t, []int{0, 0, 1}, depths)
}

func TestBuild_DuplicatesAndSelfParent(t *testing.T) {
	t.Parallel()

	f := build([]item{{1, 0}, {1, 0}, {2, 2}})

	ids, _ := collect(f)
	require.Equal(t, []int{1, 2}, ids)
}

func TestBuild_CycleVisitedOnce(t *testing.T) {
	t.Parallel()

	f := build([]item{{5, 0}, {1, 2}, {2, 1}})

	ids, depths := collect(f)
	require.Equal(t, []int{5, 1, 2}, ids)
	require.Equal(t, []int{0, 0, 1}, depths)

	// 1 стал корнем и отцеплен от 2: цикл разорван в самой арене.
	require.Equal(t, []int{0, 1}, f.Roots())
	require.Equal(t, []int{2}, f.Children(1))
	require.Empty(t, f.Children(2))
}

// TestBuild_CycleIsRealForest — рекурсивный обход по Children без защиты
// от повторов завершается и посещает каждый узел ровно один раз.
func TestBuild_CycleIsRealForest(t *testing.T) {
	t.Parallel()

	cases := map[string][]item{
		"pair":          {{1, 2}, {2, 1}},
		"triangle":      {{1, 3}, {2, 1}, {3, 2}},
		"self_and_tail": {{1, 0}, {2, 4}, {3, 2}, {4, 3}, {5, 3}},
	}

	for name, items := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			f := build(items)

			seen := make(map[int]int)
			visits := 0
			var visit func(i int)
			visit = func(i int) {
				visits++
				require.LessOrEqual(t, visits, f.Len())
				seen[f.Value(i).id]++
				for _, c := range f.Children(i) {
					visit(c)
				}
			}
			for _, r := range f.Roots() {
				visit(r)
			}

			require.Len(t, seen, len(items))
			for id, n := range seen {
				require.Equal(t, 1, n, "node %d", id)
			}
		})
	}
}

func TestMap_KeepsShape(t *testing.T) {
	t.Parallel()

	f := build([]item{{1, 0}, {2, 1}})
	m := Map(f, func(it item) int { return it.id * 10 })

	var got []int
	m.Walk(func(_ int, v int) { got = append(got, v) })
	require.Equal(t, []int{10, 20}, got)
	require.Equal(t, []int{1}, m.Children(m.Roots()[0]))
}

func TestBuild_Empty(t *testing.T) {
	t.Parallel()

	f := build(nil)
	require.Equal(t, 0, f.Len())

	called := false
	f.Walk(func(int, item) { called = true })
	require.False(t, called)
}
