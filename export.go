package interp

import (
	"encoding/json"
	"fmt"
	"image"
	"io"
	"math"
	"strconv"

	vec2d "github.com/flywave/go3d/float64/vec2"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/flywave/go-cog"
	"github.com/flywave/go-geo"
)

const DefaultNoData = float64(-9999)

// ContourRectangle is a row-major raster of a surface, ready for contouring
// clients. Row 0 is the first grid row.
type ContourRectangle struct {
	Contour     []float64  `json:"contour"`
	Variance    []float64  `json:"variance,omitempty"`
	XWidth      int        `json:"xWidth"`
	YWidth      int        `json:"yWidth"`
	Xlim        [2]float64 `json:"xLim"`
	Ylim        [2]float64 `json:"yLim"`
	Zlim        [2]float64 `json:"zLim"`
	XResolution float64    `json:"xResolution"`
	YResolution float64    `json:"yResolution"`
	NoData      float64    `json:"noData"`
}

// FlowRectangle is the row-major raster pair of a flow field.
type FlowRectangle struct {
	FlowX       []float64  `json:"flowX"`
	FlowY       []float64  `json:"flowY"`
	XWidth      int        `json:"xWidth"`
	YWidth      int        `json:"yWidth"`
	Xlim        [2]float64 `json:"xLim"`
	Ylim        [2]float64 `json:"yLim"`
	XResolution float64    `json:"xResolution"`
	YResolution float64    `json:"yResolution"`
	NoData      float64    `json:"noData"`
}

type extent struct {
	width, height int
	xlim, ylim    [2]float64
	xres, yres    float64
}

func gridExtent(g *Grid) extent {
	rows, cols := g.Dims()
	b := g.Bounds()
	e := extent{
		width:  cols,
		height: rows,
		xlim:   [2]float64{b.Min[0], b.Max[0]},
		ylim:   [2]float64{b.Min[1], b.Max[1]},
	}
	if cols > 1 {
		e.xres = (b.Max[0] - b.Min[0]) / float64(cols-1)
	}
	if rows > 1 {
		e.yres = (b.Max[1] - b.Min[1]) / float64(rows-1)
	}
	return e
}

func NewContourRectangle(s *Surface, g *Grid, noData float64) (*ContourRectangle, error) {
	if s == nil {
		return nil, checkAligned(nil, g)
	}
	if err := checkAligned(s.Values, g); err != nil {
		return nil, err
	}
	e := gridExtent(g)
	ret := &ContourRectangle{
		Contour:     raster(s.Values, noData),
		XWidth:      e.width,
		YWidth:      e.height,
		Xlim:        e.xlim,
		Ylim:        e.ylim,
		XResolution: e.xres,
		YResolution: e.yres,
		NoData:      noData,
	}
	if s.Variance != nil {
		ret.Variance = raster(s.Variance, noData)
	}
	ret.Zlim = zlim(s.Values, noData)
	return ret, nil
}

func NewFlowRectangle(f *FlowField, g *Grid, noData float64) (*FlowRectangle, error) {
	if f == nil {
		return nil, checkAligned(nil, g)
	}
	if err := checkAligned(f.X, g); err != nil {
		return nil, err
	}
	if err := checkAligned(f.Y, g); err != nil {
		return nil, err
	}
	e := gridExtent(g)
	return &FlowRectangle{
		FlowX:       raster(f.X, noData),
		FlowY:       raster(f.Y, noData),
		XWidth:      e.width,
		YWidth:      e.height,
		Xlim:        e.xlim,
		Ylim:        e.ylim,
		XResolution: e.xres,
		YResolution: e.yres,
		NoData:      noData,
	}, nil
}

// raster copies z row by row, replacing values JSON can not carry.
func raster(z *mat.Dense, noData float64) []float64 {
	rows, cols := z.Dims()
	ret := make([]float64, 0, rows*cols)
	for r := 0; r < rows; r++ {
		for _, v := range mat.Row(nil, r, z) {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				v = noData
			}
			ret = append(ret, v)
		}
	}
	return ret
}

func zlim(z *mat.Dense, noData float64) [2]float64 {
	rows, _ := z.Dims()
	finite := make([]float64, 0)
	for r := 0; r < rows; r++ {
		for _, v := range mat.Row(nil, r, z) {
			if !math.IsNaN(v) && !math.IsInf(v, 0) {
				finite = append(finite, v)
			}
		}
	}
	if len(finite) == 0 {
		return [2]float64{noData, noData}
	}
	return [2]float64{floats.Min(finite), floats.Max(finite)}
}

func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// maxTileSide is the largest raster side a single GeoTIFF tile can hold.
const maxTileSide = math.MaxUint16

// Raster is a north-up float32 image of a grid aligned matrix. Bounds are
// the outer pixel edges, nodes sit at pixel centers.
type Raster struct {
	Data   []float32
	Size   [2]uint32
	Bounds vec2d.Rect
}

// NewRaster lays z out north-up: the first image row is the grid row of
// largest Y and the first column the grid column of smallest X. Values
// that can not be represented become noData.
func NewRaster(z *mat.Dense, g *Grid, noData float64) (*Raster, error) {
	if err := checkAligned(z, g); err != nil {
		return nil, err
	}
	rows, cols := g.Dims()
	if rows < 2 || cols < 2 {
		return nil, fmt.Errorf("%w: raster needs at least 2x2 nodes, have %dx%d", ErrShape, cols, rows)
	}
	if rows > maxTileSide || cols > maxTileSide {
		return nil, fmt.Errorf("%w: %dx%d nodes exceed a single tile", ErrGridShape, cols, rows)
	}

	e := gridExtent(g)
	flipY := g.Y.At(0, 0) < g.Y.At(rows-1, 0)
	flipX := g.X.At(0, 0) > g.X.At(0, cols-1)

	data := make([]float32, 0, rows*cols)
	for i := 0; i < rows; i++ {
		r := i
		if flipY {
			r = rows - 1 - i
		}
		for j := 0; j < cols; j++ {
			c := j
			if flipX {
				c = cols - 1 - j
			}
			v := z.At(r, c)
			if math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) > math.MaxFloat32 {
				v = noData
			}
			data = append(data, float32(v))
		}
	}

	half := vec2d.T{e.xres / 2, e.yres / 2}
	return &Raster{
		Data: data,
		Size: [2]uint32{uint32(cols), uint32(rows)},
		Bounds: vec2d.Rect{
			Min: vec2d.T{e.xlim[0] - half[0], e.ylim[0] - half[1]},
			Max: vec2d.T{e.xlim[1] + half[0], e.ylim[1] + half[1]},
		},
	}, nil
}

// WriteGeoTIFF writes r as an LZW compressed single tile GeoTIFF. srs is
// the reference of the raster bounds; nil means EPSG:4326. The file is
// georeferenced in EPSG:4326.
func WriteGeoTIFF(path string, r *Raster, srs geo.Proj, noData float64) error {
	if srs == nil {
		srs = geo.NewProj(4326)
	}
	rect := image.Rect(0, 0, int(r.Size[0]), int(r.Size[1]))
	src := cog.NewSource(r.Data, &rect, cog.CTLZW)
	nd := strconv.FormatFloat(noData, 'f', -1, 64)
	return cog.WriteTile(path, src, r.Bounds, srs, r.Size, &nd)
}
