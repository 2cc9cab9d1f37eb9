package interp

import (
	"fmt"

	vec2d "github.com/flywave/go3d/float64/vec2"
)

type voxelGrid struct {
	LeafSize vec2d.T
}

type voxel struct {
	x, y, value float64
	num         int
	first       int
}

func newVoxelGrid(leafSize vec2d.T) *voxelGrid {
	return &voxelGrid{LeafSize: leafSize}
}

// Thin merges samples falling in the same cell of size leaf into one sample
// at their mean location carrying their mean value. A non-positive leaf
// component collapses that axis into a single cell. Output follows the
// order in which cells are first hit.
func Thin(s Samples, leaf vec2d.T) (Samples, error) {
	if err := s.Validate(); err != nil {
		return Samples{}, err
	}
	if s.Len() == 0 {
		return Samples{}, fmt.Errorf("%w: no samples to thin", ErrInvalidInput)
	}
	return newVoxelGrid(leaf).filter(s), nil
}

func (f *voxelGrid) filter(s Samples) Samples {
	min, max, _ := minMaxVec3(s.Positions())

	cells := func(axis int) int {
		if f.LeafSize[axis] <= 0 {
			return 1
		}
		return int((max[axis]-min[axis])/f.LeafSize[axis]) + 1
	}
	cell := func(v float64, axis int) int {
		if f.LeafSize[axis] <= 0 {
			return 0
		}
		return int((v - min[axis]) / f.LeafSize[axis])
	}

	xs := cells(0)
	voxels := make(map[int]*voxel)
	order := make([]int, 0, s.Len())
	for i, p := range s.Points {
		key := cell(p[0], 0) + xs*cell(p[1], 1)
		v, ok := voxels[key]
		if !ok {
			v = &voxel{first: i}
			voxels[key] = v
			order = append(order, key)
		}
		v.num++
		v.x += p[0]
		v.y += p[1]
		v.value += s.Values[i]
	}

	ret := Samples{Points: make([][]float64, 0, len(order)), Values: make([]float64, 0, len(order))}
	for _, key := range order {
		v := voxels[key]
		if v.num == 1 {
			ret.Points = append(ret.Points, []float64{s.Points[v.first][0], s.Points[v.first][1]})
			ret.Values = append(ret.Values, s.Values[v.first])
			continue
		}
		n := float64(v.num)
		ret.Points = append(ret.Points, []float64{v.x / n, v.y / n})
		ret.Values = append(ret.Values, v.value/n)
	}
	return ret
}
