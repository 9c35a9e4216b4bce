package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	geoengine "github.com/sciagent/geo-engine"
	"github.com/sciagent/geo-engine/bridge"
	"github.com/sciagent/geo-engine/registry"
)

func main() {
	var (
		configPath  = pflag.String("config", "", "path to YAML engine config")
		modulePath  = pflag.String("module", "", "path to the geometry module binary (overrides config)")
		greetName   = pflag.String("greet", "", "print a greeting for the given name and exit")
		demo        = pflag.Bool("demo", false, "start from the built-in demo dataset")
		source      = pflag.String("dataset", "", "load the starting dataset from this source")
		sliceSpec   = pflag.String("slice", "", "slice plane as ox,oy,oz:nx,ny,nz")
		clipSpec    = pflag.String("clip", "", "clip plane as ox,oy,oz:nx,ny,nz")
		contourAt   = pflag.String("contour", "", "extract the isosurface at this scalar value")
		elevation   = pflag.Bool("elevation", false, "add an elevation scalar field")
		interactive = pflag.BoolP("interactive", "i", false, "interactive mode with TUI")
		verbose     = pflag.BoolP("verbose", "v", false, "enable debug logging")
	)
	pflag.Parse()

	cfg, err := buildConfig(*configPath, *modulePath, *verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *interactive {
		if err := runInteractive(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(cfg, *greetName, *demo, *source, *sliceSpec, *clipSpec, *contourAt, *elevation); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func buildConfig(configPath, modulePath string, verbose bool) (bridge.Config, error) {
	var cfg bridge.Config
	if configPath != "" {
		loaded, err := bridge.LoadConfig(configPath)
		if err != nil {
			return bridge.Config{}, err
		}
		cfg = loaded
	}
	if modulePath != "" {
		cfg.ModulePath = modulePath
	}
	if verbose {
		log, err := zap.NewDevelopment()
		if err != nil {
			return bridge.Config{}, err
		}
		cfg.Logger = log
	}
	return cfg, nil
}

func run(cfg bridge.Config, greetName string, demo bool, source, sliceSpec, clipSpec, contourAt string, elevation bool) error {
	ctx := context.Background()

	if greetName != "" {
		// Greeting never touches the foreign module.
		cfg.Acquisition = bridge.AcquireLazy
		e, err := bridge.New(ctx, cfg)
		if err != nil {
			return err
		}
		defer e.Close(ctx)
		fmt.Println(e.Greet(greetName))
		return nil
	}

	if !demo && source == "" {
		fmt.Fprintln(os.Stderr, "Usage: geom --module <geometry.wasm> --demo [--slice ox,oy,oz:nx,ny,nz] [--contour v]")
		fmt.Fprintln(os.Stderr, "       geom --module <geometry.wasm> --dataset <source>")
		fmt.Fprintln(os.Stderr, "       geom --module <geometry.wasm> -i  (interactive mode)")
		return fmt.Errorf("no starting dataset: pass --demo or --dataset")
	}

	e, err := bridge.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer e.Close(ctx)

	var h registry.Handle
	if demo {
		h, err = e.CreateDemoDataset(ctx)
	} else {
		h, err = e.LoadDataset(ctx, source)
	}
	if err != nil {
		return err
	}

	if sliceSpec != "" {
		origin, normal, err := parsePlane(sliceSpec)
		if err != nil {
			return err
		}
		if h, err = e.ApplySlice(ctx, h, origin, normal); err != nil {
			return err
		}
	}

	if clipSpec != "" {
		origin, normal, err := parsePlane(clipSpec)
		if err != nil {
			return err
		}
		if h, err = e.ApplyClip(ctx, h, origin, normal); err != nil {
			return err
		}
	}

	if contourAt != "" {
		value, err := strconv.ParseFloat(contourAt, 64)
		if err != nil {
			return fmt.Errorf("parse contour value %q: %w", contourAt, err)
		}
		if h, err = e.ApplyContour(ctx, h, value); err != nil {
			return err
		}
	}

	if elevation {
		if h, err = e.ApplyElevation(ctx, h); err != nil {
			return err
		}
	}

	info, err := e.GetDataInfo(ctx, h)
	if err != nil {
		return err
	}
	fmt.Print(formatInfo(info))
	return nil
}

// formatInfo renders a dataset info map in a stable order.
func formatInfo(info map[string]string) string {
	var b strings.Builder
	for _, key := range []string{"Points", "Cells", "Bounds", "Error"} {
		if v, ok := info[key]; ok {
			fmt.Fprintf(&b, "%s: %s\n", key, v)
		}
	}
	return b.String()
}

// parsePlane parses "ox,oy,oz:nx,ny,nz" into origin and normal.
func parsePlane(spec string) (geoengine.Vec3, geoengine.Vec3, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return geoengine.Vec3{}, geoengine.Vec3{}, fmt.Errorf("plane %q: want ox,oy,oz:nx,ny,nz", spec)
	}
	origin, err := parseVec3(parts[0])
	if err != nil {
		return geoengine.Vec3{}, geoengine.Vec3{}, fmt.Errorf("plane origin: %w", err)
	}
	normal, err := parseVec3(parts[1])
	if err != nil {
		return geoengine.Vec3{}, geoengine.Vec3{}, fmt.Errorf("plane normal: %w", err)
	}
	return origin, normal, nil
}

func parseVec3(s string) (geoengine.Vec3, error) {
	fields := strings.Split(s, ",")
	if len(fields) != 3 {
		return geoengine.Vec3{}, fmt.Errorf("vector %q: want x,y,z", s)
	}
	var v [3]float64
	for i, f := range fields {
		x, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return geoengine.Vec3{}, fmt.Errorf("vector %q: %w", s, err)
		}
		v[i] = x
	}
	return geoengine.Vec3{X: v[0], Y: v[1], Z: v[2]}, nil
}
