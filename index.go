package interp

import (
	"fmt"
	"math"
	"sort"

	vec2d "github.com/flywave/go3d/float64/vec2"
	"gonum.org/v1/gonum/spatial/kdtree"
)

// node is an indexed sample location. Queries use index -1.
type node struct {
	X, Y  float64
	index int
}

func (p node) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(node)
	switch d {
	case 0:
		return p.X - q.X
	case 1:
		return p.Y - q.Y
	default:
		panic("illegal dimension")
	}
}

func (p node) Dims() int { return 2 }

// Distance returns the squared Euclidean distance.
func (p node) Distance(c kdtree.Comparable) float64 {
	q := c.(node)
	dx := p.X - q.X
	dy := p.Y - q.Y
	return dx*dx + dy*dy
}

type nodes []node

func (p nodes) Index(i int) kdtree.Comparable         { return p[i] }
func (p nodes) Len() int                              { return len(p) }
func (p nodes) Slice(start, end int) kdtree.Interface { return p[start:end] }

// Pivot sorts instead of sampling so the same points always build the same
// tree.
func (p nodes) Pivot(d kdtree.Dim) int {
	pl := plane{nodes: p, Dim: d}
	sort.Stable(pl)
	return kdtree.Partition(pl, pl.Len()/2)
}

type plane struct {
	nodes
	kdtree.Dim
}

func (p plane) Less(i, j int) bool {
	switch p.Dim {
	case 0:
		return p.nodes[i].X < p.nodes[j].X
	case 1:
		return p.nodes[i].Y < p.nodes[j].Y
	default:
		panic("illegal dimension")
	}
}

func (p plane) Slice(start, end int) kdtree.SortSlicer {
	return plane{nodes: p.nodes[start:end], Dim: p.Dim}
}

func (p plane) Swap(i, j int) {
	p.nodes[i], p.nodes[j] = p.nodes[j], p.nodes[i]
}

// Index answers k-nearest-neighbor queries over a fixed set of 2-D points.
// It is never modified after NewIndex and may be queried concurrently.
type Index struct {
	tree *kdtree.Tree
	n    int
}

// Neighbors holds, per query point, the distances to its nearest indexed
// points in ascending order and the positions of those points in the list
// given to NewIndex.
type Neighbors struct {
	Distances [][]float64
	Indices   [][]int
	K         int
	// Note is set when the requested k was clamped.
	Note string
}

func NewIndex(points [][]float64) (*Index, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("%w: no points to index", ErrInvalidInput)
	}
	ns := make(nodes, len(points))
	for i, p := range points {
		if len(p) != 2 {
			return nil, fmt.Errorf("%w: point %d has %d components, want 2", ErrInvalidInput, i, len(p))
		}
		if math.IsNaN(p[0]) || math.IsNaN(p[1]) || math.IsInf(p[0], 0) || math.IsInf(p[1], 0) {
			return nil, fmt.Errorf("%w: point %d is not finite", ErrInvalidInput, i)
		}
		ns[i] = node{X: p[0], Y: p[1], index: i}
	}
	return &Index{tree: kdtree.New(ns, true), n: len(ns)}, nil
}

func (ix *Index) Len() int {
	return ix.n
}

func (ix *Index) QueryKNearest(queries []vec2d.T, k int) (Neighbors, error) {
	if k < 1 {
		return Neighbors{}, fmt.Errorf("%w: k=%d, want at least 1", ErrInvalidInput, k)
	}
	ret := Neighbors{K: k}
	if k > ix.n {
		ret.Note = fmt.Sprintf("k=%d exceeds the %d indexed points, clamped to %d", k, ix.n, ix.n)
		ret.K = ix.n
	}
	ret.Distances = make([][]float64, len(queries))
	ret.Indices = make([][]int, len(queries))
	for i, q := range queries {
		ret.Distances[i], ret.Indices[i] = ix.nearest(q, ret.K)
	}
	return ret, nil
}

// nearest returns the k indexed points closest to q. Points tied with the
// k-th distance are ranked by their position in the indexed list, so the
// same query always selects the same points.
func (ix *Index) nearest(q vec2d.T, k int) ([]float64, []int) {
	query := node{X: q[0], Y: q[1], index: -1}
	keeper := kdtree.NewNKeeper(k)
	ix.tree.NearestSet(keeper, query)
	found := collect(keeper.Heap)

	if len(found) == k && k < ix.n {
		// Pick up every point tied with the farthest kept one.
		ties := kdtree.NewDistKeeper(found[len(found)-1].Dist)
		ix.tree.NearestSet(ties, query)
		found = collect(ties.Heap)[:k]
	}

	dist := make([]float64, len(found))
	idx := make([]int, len(found))
	for i, item := range found {
		dist[i] = math.Sqrt(item.Dist)
		idx[i] = item.Comparable.(node).index
	}
	return dist, idx
}

func collect(h kdtree.Heap) []kdtree.ComparableDist {
	found := make([]kdtree.ComparableDist, 0, len(h))
	for _, item := range h {
		// Skip the sentinel value
		if item.Comparable == nil {
			continue
		}
		found = append(found, item)
	}
	sort.Slice(found, func(i, j int) bool {
		if found[i].Dist != found[j].Dist {
			return found[i].Dist < found[j].Dist
		}
		return found[i].Comparable.(node).index < found[j].Comparable.(node).index
	})
	return found
}
