// Package tree — лес узлов в арене с индексными списками детей.
//
// Forest хранит только уже загруженные значения и не знает ни о каком
// хранилище: обход всегда работает по материализованным данным.
package tree

type node[T any] struct {
	value    T
	children []int
}

// Forest — упорядоченный лес. Порядок корней и детей совпадает с порядком входных данных.
type Forest[T any] struct {
	nodes []node[T]
	roots []int
}

// Build собирает лес из плоского списка.
// id возвращает ключ элемента, parent — ключ родителя (false для корня).
// Элемент, чей родитель отсутствует во входных данных, становится корнем.
// Дубликаты ключей: побеждает первый элемент, последующие отбрасываются.
func Build[T any, K comparable](items []T, id func(T) K, parent func(T) (K, bool)) *Forest[T] {
	f := &Forest[T]{nodes: make([]node[T], 0, len(items))}
	index := make(map[K]int, len(items))

	for _, it := range items {
		k := id(it)
		if _, dup := index[k]; dup {
			continue
		}
		index[k] = len(f.nodes)
		f.nodes = append(f.nodes, node[T]{value: it})
	}

	parents := make([]int, len(f.nodes))
	for i := range f.nodes {
		parents[i] = -1

		p, ok := parent(f.nodes[i].value)
		if !ok {
			f.roots = append(f.roots, i)
			continue
		}

		pi, found := index[p]
		if !found || pi == i {
			f.roots = append(f.roots, i)
			continue
		}
		parents[i] = pi
		f.nodes[pi].children = append(f.nodes[pi].children, i)
	}

	// Узлы в циклах недостижимы из корней: первый из них становится корнем
	// и отцепляется от родителя, после чего каждый узел имеет ровно один путь от корня.
	reached := make([]bool, len(f.nodes))
	for _, r := range f.roots {
		f.mark(r, reached)
	}
	for i := range f.nodes {
		if reached[i] {
			continue
		}
		f.detach(parents[i], i)
		f.roots = append(f.roots, i)
		f.mark(i, reached)
	}

	return f
}

func (f *Forest[T]) detach(parent, child int) {
	if parent < 0 {
		return
	}

	kids := f.nodes[parent].children
	for n, c := range kids {
		if c == child {
			f.nodes[parent].children = append(kids[:n:n], kids[n+1:]...)
			return
		}
	}
}

func (f *Forest[T]) mark(start int, reached []bool) {
	stack := []int{start}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if reached[i] {
			continue
		}
		reached[i] = true
		stack = append(stack, f.nodes[i].children...)
	}
}

// Len — число узлов.
func (f *Forest[T]) Len() int { return len(f.nodes) }

// Roots — индексы корней.
func (f *Forest[T]) Roots() []int { return f.roots }

// Children — индексы прямых детей узла i.
func (f *Forest[T]) Children(i int) []int { return f.nodes[i].children }

// Value — значение узла i.
func (f *Forest[T]) Value(i int) T { return f.nodes[i].value }

// Map возвращает лес той же формы со значениями, преобразованными fn.
func Map[T, U any](f *Forest[T], fn func(T) U) *Forest[U] {
	out := &Forest[U]{
		nodes: make([]node[U], len(f.nodes)),
		roots: f.roots,
	}
	for i, n := range f.nodes {
		out.nodes[i] = node[U]{value: fn(n.value), children: n.children}
	}

	return out
}

// Walk обходит лес в прямом порядке (pre-order): узел, затем его дети слева направо.
// depth корня равна 0. Каждый узел посещается не больше одного раза.
func (f *Forest[T]) Walk(fn func(depth int, v T)) {
	visited := make([]bool, len(f.nodes))

	type frame struct{ idx, depth int }
	stack := make([]frame, 0, len(f.nodes))
	for i := len(f.roots) - 1; i >= 0; i-- {
		stack = append(stack, frame{idx: f.roots[i]})
	}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[top.idx] {
			continue
		}
		visited[top.idx] = true

		fn(top.depth, f.nodes[top.idx].value)

		kids := f.nodes[top.idx].children
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, frame{idx: kids[i], depth: top.depth + 1})
		}
	}
}
