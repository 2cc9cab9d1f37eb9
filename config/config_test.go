package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	interp "github.com/flywave/go-interp"
)

func TestLoadMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestSaveLoad(t *testing.T) {
	a := assert.New(t)

	path := filepath.Join(t.TempDir(), "conf", "run.yaml")
	cfg := Default()
	cfg.Method = MethodKriging
	cfg.Kriging.Model = interp.Gaussian
	cfg.Kriging.Variance = true
	n := 8
	cfg.IDW.Neighbors = &n
	cfg.Grid.Resolution = 2
	cfg.Grid.Bounds = &[4]float64{0, 0, 100, 50}
	cfg.Flow = true
	cfg.Format = FormatGeoTIFF

	require.NoError(t, Save(cfg, path))
	back, err := Load(path)
	require.NoError(t, err)
	a.Equal(cfg, back)
}

func TestLoadHjson(t *testing.T) {
	a := assert.New(t)

	path := filepath.Join(t.TempDir(), "run.hjson")
	src := `{
  # comments are allowed
  method: kriging
  kriging: {
    model: exponential
    lags: 12
    alpha: 50
    anisotropyRatio: 1
  }
  grid: { resolution: 5 }
  thin: [2, 2]
}`
	require.NoError(t, os.WriteFile(path, []byte(src), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	a.Equal(MethodKriging, cfg.Method)
	a.Equal(interp.Exponential, cfg.Kriging.Model)
	a.Equal(12, cfg.Kriging.Lags)
	a.Equal(5.0, cfg.Grid.Resolution)
	a.Equal(&[2]float64{2, 2}, cfg.Thin)
	a.Equal(interp.DefaultPower, cfg.IDW.Power)
	a.Equal(interp.DefaultNoData, cfg.NoData)
	a.Equal(FormatJSON, cfg.Format)
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("method: [idw"), 0644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestProducer(t *testing.T) {
	a := assert.New(t)

	cfg := Default()
	p, err := cfg.Producer()
	require.NoError(t, err)
	a.IsType(interp.IDW{}, p)

	cfg.Method = "Kriging"
	p, err = cfg.Producer()
	require.NoError(t, err)
	a.IsType(interp.Kriging{}, p)

	cfg.Method = "spline"
	_, err = cfg.Producer()
	a.ErrorIs(err, ErrUnknownMethod)
}
