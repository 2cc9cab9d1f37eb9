package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	vec2d "github.com/flywave/go3d/float64/vec2"
	"github.com/pkg/profile"
	"gonum.org/v1/gonum/mat"

	"github.com/flywave/go-geo"

	interp "github.com/flywave/go-interp"
	"github.com/flywave/go-interp/config"
)

type output struct {
	Surface *interp.ContourRectangle `json:"surface"`
	Flow    *interp.FlowRectangle    `json:"flow,omitempty"`
}

func main() {
	os.Exit(realMain())
}

// realMain returns the exit code so deferred calls, the profiler among
// them, run before the process exits.
func realMain() int {
	configPath := flag.String("config", "interp.yaml", "Path to a YAML or HJSON run configuration")
	inputPath := flag.String("input", "", "GeoJSON feature collection of samples")
	outputPath := flag.String("output", "surface.json", "Output file")
	format := flag.String("format", "", "Output format: json or geotiff")
	method := flag.String("method", "", "Interpolation method: idw or kriging")
	power := flag.Float64("power", 0, "IDW distance exponent")
	neighbors := flag.Int("neighbors", 0, "IDW neighbor count")
	maxDistance := flag.Float64("max-distance", 0, "IDW maximum neighbor distance")
	model := flag.String("model", "", "Kriging variogram model")
	resolution := flag.Float64("resolution", 0, "Grid node spacing")
	flow := flag.Bool("flow", false, "Also derive flow vectors")
	prof := flag.Bool("profile", false, "Write a CPU profile to the working directory")
	flag.Parse()

	if *inputPath == "" {
		flag.Usage()
		return 2
	}
	if *prof {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		return 1
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "format":
			cfg.Format = *format
		case "method":
			cfg.Method = *method
		case "power":
			cfg.IDW.Power = *power
		case "neighbors":
			cfg.IDW.Neighbors = neighbors
		case "max-distance":
			cfg.IDW.MaxDistance = maxDistance
		case "model":
			cfg.Kriging.Model = interp.ModelType(*model)
		case "resolution":
			cfg.Grid.Resolution = *resolution
		case "flow":
			cfg.Flow = *flow
		}
	})

	if err := run(cfg, *inputPath, *outputPath); err != nil {
		log.Printf("Interpolation failed: %v", err)
		return 1
	}
	return 0
}

func run(cfg *config.Config, inputPath, outputPath string) error {
	start := time.Now()

	samples, err := interp.ReadSamplesFile(inputPath, cfg.Input)
	if err != nil {
		return err
	}
	log.Printf("Read %d samples from %s", samples.Len(), inputPath)

	if cfg.Thin != nil {
		if samples, err = interp.Thin(samples, vec2d.T(*cfg.Thin)); err != nil {
			return err
		}
		log.Printf("Thinned to %d samples", samples.Len())
	}

	grid, err := buildGrid(cfg, samples)
	if err != nil {
		return err
	}
	rows, cols := grid.Dims()
	log.Printf("Grid of %dx%d nodes", cols, rows)

	producer, err := cfg.Producer()
	if err != nil {
		return err
	}
	surface, err := producer.Interpolate(samples, grid)
	if err != nil {
		return err
	}
	if surface.Note != "" {
		log.Printf("Note: %s", surface.Note)
	}

	var flowField *interp.FlowField
	if cfg.Flow {
		model, err := interp.NewFlowModel(surface, grid)
		if err != nil {
			return err
		}
		flowField = model.Flow()
	}

	switch strings.ToLower(cfg.Format) {
	case config.FormatJSON, "":
		err = writeJSON(cfg, outputPath, surface, flowField, grid)
	case config.FormatGeoTIFF:
		err = writeGeoTIFF(cfg, outputPath, surface, flowField, grid)
	default:
		err = fmt.Errorf("%w: %q", config.ErrUnknownFormat, cfg.Format)
	}
	if err != nil {
		return err
	}

	log.Printf("Wrote %s in %.2f seconds", outputPath, time.Since(start).Seconds())
	return nil
}

func writeJSON(cfg *config.Config, path string, s *interp.Surface, f *interp.FlowField, g *interp.Grid) error {
	var out output
	var err error
	if out.Surface, err = interp.NewContourRectangle(s, g, cfg.NoData); err != nil {
		return err
	}
	if f != nil {
		if out.Flow, err = interp.NewFlowRectangle(f, g, cfg.NoData); err != nil {
			return err
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return interp.WriteJSON(file, out)
}

type layer struct {
	suffix string
	z      *mat.Dense
}

// writeGeoTIFF writes the surface to path and every other layer next to it,
// suffixed with the layer name.
func writeGeoTIFF(cfg *config.Config, path string, s *interp.Surface, f *interp.FlowField, g *interp.Grid) error {
	layers := []layer{{"", s.Values}}
	if s.Variance != nil {
		layers = append(layers, layer{"_variance", s.Variance})
	}
	if f != nil {
		layers = append(layers, layer{"_flowx", f.X}, layer{"_flowy", f.Y})
	}

	srs := rasterProj(cfg.Input)
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	for _, l := range layers {
		r, err := interp.NewRaster(l.z, g, cfg.NoData)
		if err != nil {
			return err
		}
		if err := interp.WriteGeoTIFF(base+l.suffix+ext, r, srs, cfg.NoData); err != nil {
			return err
		}
	}
	return nil
}

// rasterProj is the reference of the grid coordinates.
func rasterProj(opts interp.ReadOptions) geo.Proj {
	switch {
	case opts.SourceEPSG != 0 && opts.TargetEPSG != 0:
		return geo.NewProj(opts.TargetEPSG)
	case opts.SourceEPSG != 0:
		return geo.NewProj(opts.SourceEPSG)
	default:
		return nil
	}
}

func buildGrid(cfg *config.Config, samples interp.Samples) (*interp.Grid, error) {
	if cfg.Grid.Bounds == nil {
		return interp.GridFromSamples(samples, cfg.Grid.Resolution)
	}
	b := *cfg.Grid.Bounds
	return interp.NewResolutionGrid(vec2d.Rect{Min: vec2d.T{b[0], b[1]}, Max: vec2d.T{b[2], b[3]}}, cfg.Grid.Resolution)
}
