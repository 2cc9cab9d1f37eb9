package interp

import (
	"fmt"
	"os"

	vec2d "github.com/flywave/go3d/float64/vec2"
	vec3d "github.com/flywave/go3d/float64/vec3"

	"github.com/flywave/go-geo"
	"github.com/flywave/go-geoid"
	"github.com/flywave/go-geom"
	"github.com/flywave/go-geom/general"
)

// ReadOptions controls how GeoJSON vertices become samples. Zero EPSG codes
// disable reprojection.
type ReadOptions struct {
	SourceEPSG    int                 `yaml:"sourceEpsg" json:"sourceEpsg"`
	TargetEPSG    int                 `yaml:"targetEpsg" json:"targetEpsg"`
	VerticalDatum geoid.VerticalDatum `yaml:"verticalDatum" json:"verticalDatum"`
	HeightOffset  float64             `yaml:"heightOffset" json:"heightOffset"`
}

func ReadSamplesFile(path string, opts ReadOptions) (Samples, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Samples{}, err
	}
	return ReadSamples(data, opts)
}

// ReadSamples takes every vertex of every feature of a GeoJSON feature
// collection as a sample whose value is the vertex's third coordinate.
func ReadSamples(data []byte, opts ReadOptions) (Samples, error) {
	fcs, err := general.UnmarshalFeatureCollection(data)
	if err != nil {
		return Samples{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	pos, err := extractPositions(fcs)
	if err != nil {
		return Samples{}, err
	}
	if len(pos) == 0 {
		return Samples{}, fmt.Errorf("%w: feature collection has no vertices", ErrInvalidInput)
	}
	reproject(pos, opts)
	convertHeight(pos, opts)
	return NewSamples(pos), nil
}

type positions struct {
	ret     []vec3d.T
	missing int
}

func (p *positions) add(x, y float64, data []float64) {
	if len(data) < 3 {
		p.missing++
		return
	}
	p.ret = append(p.ret, vec3d.T{x, y, data[2]})
}

func extractPositions(fcs *geom.FeatureCollection) ([]vec3d.T, error) {
	p := &positions{ret: make([]vec3d.T, 0, 1000)}

	for _, feas := range fcs.Features {
		switch g := feas.Geometry.(type) {
		case *general.Point:
			p.add(g.X(), g.Y(), g.Data())
		case *general.MultiPoint:
			for _, pos := range g.Points() {
				p.add(pos.X(), pos.Y(), pos.Data())
			}
		case *general.LineString:
			for _, pos := range g.Subpoints() {
				p.add(pos.X(), pos.Y(), pos.Data())
			}
		case *general.MultiLine:
			for _, li := range g.Lines() {
				for _, pos := range li.Subpoints() {
					p.add(pos.X(), pos.Y(), pos.Data())
				}
			}
		case *general.Polygon:
			for _, sli := range g.Sublines() {
				for _, pos := range sli.Subpoints() {
					p.add(pos.X(), pos.Y(), pos.Data())
				}
			}
		case *general.MultiPolygon:
			for _, poly := range g.Polygons() {
				for _, sli := range poly.Sublines() {
					for _, pos := range sli.Subpoints() {
						p.add(pos.X(), pos.Y(), pos.Data())
					}
				}
			}
		}
	}
	if p.missing > 0 {
		return nil, fmt.Errorf("%w: %d vertices have no value coordinate", ErrShape, p.missing)
	}
	return p.ret, nil
}

func reproject(pos []vec3d.T, opts ReadOptions) {
	if opts.SourceEPSG == 0 || opts.TargetEPSG == 0 || opts.SourceEPSG == opts.TargetEPSG {
		return
	}
	src, dst := geo.NewProj(opts.SourceEPSG), geo.NewProj(opts.TargetEPSG)
	if src.Eq(dst) {
		return
	}
	xy := make([]vec2d.T, len(pos))
	for i := range pos {
		xy[i] = vec2d.T{pos[i][0], pos[i][1]}
	}
	xy = src.TransformTo(dst, xy)
	for i := range pos {
		pos[i][0], pos[i][1] = xy[i][0], xy[i][1]
	}
}

// convertHeight turns geoid referenced values into ellipsoidal heights.
// Coordinates must be geographic for the geoid lookup.
func convertHeight(pos []vec3d.T, opts ReadOptions) {
	if (opts.VerticalDatum == geoid.HAE && opts.HeightOffset == 0) || opts.VerticalDatum == geoid.UNKNOWN {
		return
	}
	if opts.VerticalDatum == geoid.HAE {
		for i := range pos {
			pos[i][2] += opts.HeightOffset
		}
		return
	}
	gid := geoid.NewGeoid(opts.VerticalDatum, false)
	for i := range pos {
		pos[i][2] = gid.ConvertHeight(pos[i][0], pos[i][1], pos[i][2], geoid.GEOIDTOELLIPSOID)
	}
}
