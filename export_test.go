package interp

import (
	"bytes"
	"encoding/json"
	"math"
	"path/filepath"
	"testing"

	vec2d "github.com/flywave/go3d/float64/vec2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/flywave/go-cog"
)

func TestContourRectangle(t *testing.T) {
	a := assert.New(t)

	g, err := NewMeshGrid([]float64{0, 1, 2}, []float64{0, 5})
	require.NoError(t, err)
	s := &Surface{Values: mat.NewDense(2, 3, []float64{1, 2, math.NaN(), 4, 5, 6})}

	c, err := NewContourRectangle(s, g, DefaultNoData)
	require.NoError(t, err)
	a.Equal([]float64{1, 2, DefaultNoData, 4, 5, 6}, c.Contour)
	a.Equal(3, c.XWidth)
	a.Equal(2, c.YWidth)
	a.Equal([2]float64{0, 2}, c.Xlim)
	a.Equal([2]float64{0, 5}, c.Ylim)
	a.Equal([2]float64{1, 6}, c.Zlim)
	a.Equal(1.0, c.XResolution)
	a.Equal(5.0, c.YResolution)
	a.Nil(c.Variance)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, c))
	var back ContourRectangle
	require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
	a.Equal(*c, back)

	_, err = NewContourRectangle(&Surface{Values: mat.NewDense(3, 3, nil)}, g, DefaultNoData)
	a.ErrorIs(err, ErrDimensionMismatch)
}

func TestFlowRectangle(t *testing.T) {
	a := assert.New(t)

	g := testGrid(t)
	m, err := NewFlowModel(surfaceOf(g, func(x, y float64) float64 { return x }), g)
	require.NoError(t, err)

	f, err := NewFlowRectangle(m.Flow(), g, DefaultNoData)
	require.NoError(t, err)
	a.Len(f.FlowX, 25)
	a.Len(f.FlowY, 25)
	a.InDelta(-1.0, f.FlowX[12], 1e-12)
	a.InDelta(2.5, f.XResolution, 1e-12)
}

func TestNewRaster(t *testing.T) {
	a := assert.New(t)

	g, err := NewMeshGrid([]float64{0, 1, 2}, []float64{0, 5})
	require.NoError(t, err)
	z := mat.NewDense(2, 3, []float64{1, 2, math.NaN(), 4, 5, 6})

	r, err := NewRaster(z, g, DefaultNoData)
	require.NoError(t, err)
	a.Equal([]float32{4, 5, 6, 1, 2, -9999}, r.Data)
	a.Equal([2]uint32{3, 2}, r.Size)
	a.Equal(vec2d.Rect{Min: vec2d.T{-0.5, -2.5}, Max: vec2d.T{2.5, 7.5}}, r.Bounds)

	// a grid that already runs north to south keeps its row order
	g, err = NewMeshGrid([]float64{0, 1, 2}, []float64{5, 0})
	require.NoError(t, err)
	r, err = NewRaster(z, g, DefaultNoData)
	require.NoError(t, err)
	a.Equal([]float32{1, 2, -9999, 4, 5, 6}, r.Data)

	line, err := NewMeshGrid([]float64{0, 1, 2}, []float64{0})
	require.NoError(t, err)
	_, err = NewRaster(mat.NewDense(1, 3, nil), line, DefaultNoData)
	a.ErrorIs(err, ErrShape)
	_, err = NewRaster(mat.NewDense(3, 3, nil), g, DefaultNoData)
	a.ErrorIs(err, ErrDimensionMismatch)
}

func TestWriteGeoTIFF(t *testing.T) {
	a := assert.New(t)

	g, err := NewMeshGrid([]float64{10, 10.5, 11, 11.5}, []float64{20, 20.5, 21})
	require.NoError(t, err)
	s := surfaceOf(g, func(x, y float64) float64 { return x + y })
	r, err := NewRaster(s.Values, g, DefaultNoData)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "surface.tif")
	require.NoError(t, WriteGeoTIFF(path, r, nil, DefaultNoData))

	tif := cog.Read(path)
	require.NotNil(t, tif)
	a.Equal([2]uint32{4, 3}, tif.GetSize(0))
	epsg, err := tif.GetEPSGCode(0)
	require.NoError(t, err)
	a.Equal(4326, epsg)

	b := tif.GetBounds(0)
	a.InDelta(9.75, b.Min[0], 1e-9)
	a.InDelta(19.75, b.Min[1], 1e-9)
	a.InDelta(11.75, b.Max[0], 1e-9)
	a.InDelta(21.25, b.Max[1], 1e-9)
}
