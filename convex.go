package interp

import (
	"math"

	vec2d "github.com/flywave/go3d/float64/vec2"
)

// Convex is the convex hull of a point set, computed lazily by quickhull.
type Convex struct {
	vertices []vec2d.T
	hull     []vec2d.T
	edges    []Edge
}

// Edge is a hull side. Normal is the outward unit normal.
type Edge struct {
	Start  vec2d.T
	End    vec2d.T
	Normal vec2d.T
}

func NewConvex(vertices []vec2d.T) *Convex {
	return &Convex{vertices: vertices}
}

func (c *Convex) Rect() vec2d.Rect {
	r := vec2d.Rect{Min: vec2d.MaxVal, Max: vec2d.MinVal}
	hull := c.Hull()
	for i := range hull {
		r.Extend(&hull[i])
	}
	return r
}

// Hull returns the hull vertices in counterclockwise order.
func (c *Convex) Hull() []vec2d.T {
	if c.hull == nil && len(c.vertices) > 0 {
		minX, maxX := c.getExtremePoints()
		c.hull = append(c.quickHull(c.vertices, maxX, minX), c.quickHull(c.vertices, minX, maxX)...)
	}
	return c.hull
}

func (c *Convex) Edges() []Edge {
	if c.edges == nil {
		hull := c.Hull()
		for i, start := range hull {
			end := hull[(i+1)%len(hull)]
			r := Rotator{90}
			normal := r.RotateVector(vec2d.Sub(&start, &end))
			normal.Normalize()
			c.edges = append(c.edges, Edge{start, end, normal})
		}
	}
	return c.edges
}

// Contains reports whether point lies inside the hull or on its boundary.
func (c *Convex) Contains(point vec2d.T) bool {
	edges := c.Edges()
	if len(edges) < 3 {
		return false
	}
	for _, edge := range edges {
		v := vec2d.Sub(&point, &edge.Start)
		e := vec2d.Sub(&edge.End, &edge.Start)
		if cross(v, e) > 1e-12*v.Length()*e.Length() {
			return false
		}
	}
	return true
}

func (c *Convex) quickHull(points []vec2d.T, start, end vec2d.T) []vec2d.T {
	lhs := c.getLhsPointDistanceIndicatorMap(points, start, end)
	if len(lhs) == 0 {
		return []vec2d.T{end}
	}

	farthestPoint := c.getFarthestPoint(lhs)

	newPoints := make([]vec2d.T, 0, len(lhs))
	for point := range lhs {
		newPoints = append(newPoints, point)
	}

	return append(
		c.quickHull(newPoints, farthestPoint, end),
		c.quickHull(newPoints, start, farthestPoint)...)
}

func (c *Convex) getExtremePoints() (minX, maxX vec2d.T) {
	minX = vec2d.T{math.MaxFloat64, 0}
	maxX = vec2d.T{-math.MaxFloat64, 0}

	for _, p := range c.vertices {
		if p[0] < minX[0] {
			minX = p
		}
		if maxX[0] < p[0] {
			maxX = p
		}
	}
	return minX, maxX
}

func (c *Convex) getLhsPointDistanceIndicatorMap(points []vec2d.T, start, end vec2d.T) map[vec2d.T]float64 {
	ret := make(map[vec2d.T]float64)
	vLine := vec2d.Sub(&end, &start)
	for _, point := range points {
		vPoint := vec2d.Sub(&point, &start)
		if d := cross(vLine, vPoint); d > 0 {
			ret[point] = d
		}
	}
	return ret
}

func (c *Convex) getFarthestPoint(lhs map[vec2d.T]float64) (farthestPoint vec2d.T) {
	maxDistanceIndicator := -math.MaxFloat64
	for point, d := range lhs {
		if maxDistanceIndicator < d {
			maxDistanceIndicator = d
			farthestPoint = point
		}
	}
	return farthestPoint
}
