package interp

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// zeroDistance replaces exact zero distances so a node on top of a sample
// takes that sample's value.
const zeroDistance = 1e-10

// IDW is an inverse distance weighting SurfaceProducer.
type IDW struct {
	Config IDWConfig
}

func NewIDW(config IDWConfig) IDW {
	return IDW{Config: config}
}

// Interpolate estimates every node of grid as the normalized distance
// weighted mean of its nearest samples. Nodes without any sample within
// MaxDistance get the configured fallback, or NaN; if that is true of every
// node the call fails with ErrNoValidNeighbors.
func (p IDW) Interpolate(samples Samples, grid *Grid) (*Surface, error) {
	cfg := p.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := samples.Validate(); err != nil {
		return nil, err
	}
	if err := grid.validate(); err != nil {
		return nil, err
	}

	index, err := NewIndex(samples.Points)
	if err != nil {
		return nil, err
	}

	k := index.Len()
	if cfg.Neighbors != nil {
		k = *cfg.Neighbors
	}

	neighbors, err := index.QueryKNearest(grid.Nodes(), k)
	if err != nil {
		return nil, err
	}

	if cfg.MaxDistance != nil {
		for _, dist := range neighbors.Distances {
			for j := range dist {
				if dist[j] > *cfg.MaxDistance {
					dist[j] = math.Inf(1)
				}
			}
		}
	}

	rows, cols := grid.Dims()
	out := make([]float64, rows*cols)
	valid := 0
	for i, dist := range neighbors.Distances {
		w := weights(dist, cfg.Power)
		if w == nil {
			out[i] = cfg.fallback()
			continue
		}
		valid++
		var v float64
		for j, idx := range neighbors.Indices[i] {
			v += w[j] * samples.Values[idx]
		}
		out[i] = v
	}
	if valid == 0 {
		return nil, fmt.Errorf("%w: all %d nodes are beyond the distance cutoff", ErrNoValidNeighbors, len(out))
	}

	return &Surface{Values: mat.NewDense(rows, cols, out), Note: neighbors.Note}, nil
}

// weights returns the normalized inverse distance weights of one node, or
// nil when every distance is infinite. Distances are taken relative to the
// nearest one so d^-p neither overflows nor underflows; the ratio is
// unchanged by the normalization.
func weights(dist []float64, power float64) []float64 {
	nearest := math.Inf(1)
	for _, d := range dist {
		if d < nearest {
			nearest = d
		}
	}
	if math.IsInf(nearest, 1) {
		return nil
	}
	if nearest == 0 {
		nearest = zeroDistance
	}

	w := make([]float64, len(dist))
	for j, d := range dist {
		if math.IsInf(d, 1) {
			continue
		}
		if d == 0 {
			d = zeroDistance
		}
		w[j] = math.Pow(d/nearest, -power)
	}
	floats.Scale(1/floats.Sum(w), w)
	return w
}
