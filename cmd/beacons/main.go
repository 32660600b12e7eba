// Command beacons reads sensor records and reports how many positions on a
// row cannot hold a beacon, and where the one undetected beacon in a square
// search area must be.
//
//	beacons -input sensors.txt -row 2000000 -max 4000000
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/google/uuid"

	"github.com/banshee-data/sensorzone/internal/config"
	"github.com/banshee-data/sensorzone/internal/geom"
	"github.com/banshee-data/sensorzone/internal/monitoring"
	"github.com/banshee-data/sensorzone/internal/report"
	"github.com/banshee-data/sensorzone/internal/sensor"
	"github.com/banshee-data/sensorzone/internal/span"
	"github.com/banshee-data/sensorzone/internal/version"
	"github.com/banshee-data/sensorzone/internal/zone"
)

const (
	modeRow  = "row"
	modeGap  = "gap"
	modeBoth = "both"
)

type options struct {
	input       string
	configPath  string
	mode        string
	showVersion bool
	cfg         *config.SearchConfig
}

// parseFlags builds the run configuration. Explicit flags win over the
// config file, which wins over built-in defaults.
func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("beacons", flag.ContinueOnError)
	fs.SetOutput(stderr)

	opts := &options{}
	fs.StringVar(&opts.input, "input", "", "Sensor records file (required)")
	fs.StringVar(&opts.configPath, "config", "", "Optional search config JSON (see "+config.DefaultConfigPath+")")
	fs.StringVar(&opts.mode, "mode", modeBoth, "What to compute: 'row', 'gap' or 'both'")
	fs.BoolVar(&opts.showVersion, "version", false, "Print version and exit")
	row := fs.Int64("row", config.DefaultRow, "Row to count excluded positions on")
	domainMax := fs.Int64("max", config.DefaultDomainMax, "Gap search covers [0, max] on both axes")
	workers := fs.Int("workers", 0, "Gap search goroutines (0 = one per CPU)")
	progress := fs.Int64("progress", 0, "Log gap search progress every N rows (0 = silent)")
	plotPath := fs.String("plot", "", "Write a PNG of the exclusion zones to this path")
	chartPath := fs.String("chart", "", "Write an HTML chart of the query row to this path")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if opts.showVersion {
		return opts, nil
	}

	cfg := config.EmptySearchConfig()
	if opts.configPath != "" {
		loaded, err := config.LoadSearchConfig(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "row":
			cfg.Row = row
		case "max":
			cfg.DomainMax = domainMax
		case "workers":
			cfg.Workers = workers
		case "progress":
			cfg.ProgressEveryRows = progress
		case "plot":
			cfg.PlotPath = plotPath
		case "chart":
			cfg.ChartPath = chartPath
		}
	})
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	opts.cfg = cfg

	if opts.input == "" {
		return nil, errors.New("-input is required")
	}
	switch opts.mode {
	case modeRow, modeGap, modeBoth:
	default:
		return nil, fmt.Errorf("unknown -mode %q: expected row, gap or both", opts.mode)
	}
	return opts, nil
}

func loadSensors(path string) ([]sensor.Sensor, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close()

	sensors, err := sensor.NewParser().ParseReader(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sensors, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	if opts.showVersion {
		fmt.Fprintf(stdout, "beacons %s\n", version.String())
		return nil
	}
	cfg := opts.cfg

	runID := uuid.NewString()
	monitoring.Logf("run %s: input=%s row=%d max=%d workers=%d", runID, opts.input, cfg.GetRow(), cfg.GetDomainMax(), cfg.GetWorkers())

	sensors, err := loadSensors(opts.input)
	if err != nil {
		return err
	}
	monitoring.Logf("run %s: %v", runID, report.Summarize(sensors))

	var gap *geom.Point
	if opts.mode == modeGap || opts.mode == modeBoth {
		done := monitoring.Timed("gap search")
		s := &zone.Searcher{
			Workers:       cfg.GetWorkers(),
			ProgressEvery: cfg.GetProgressEveryRows(),
		}
		p, err := s.FindGap(ctx, sensors, cfg.GetDomainMax())
		done()
		if err != nil {
			return fmt.Errorf("gap search: %w", err)
		}
		gap = &p
	}

	if opts.mode == modeRow || opts.mode == modeBoth {
		done := monitoring.Timed("row query")
		count := zone.CountExcludedOnRow(sensors, cfg.GetRow(), sensor.References(sensors))
		done()
		fmt.Fprintf(stdout, "row %d: %d positions cannot contain a beacon\n", cfg.GetRow(), count)
	}
	if gap != nil {
		fmt.Fprintf(stdout, "gap at %v: tuning frequency %d\n", *gap, zone.TuningFrequency(*gap))
	}

	return writeArtifacts(cfg, runID, sensors, gap)
}

func writeArtifacts(cfg *config.SearchConfig, runID string, sensors []sensor.Sensor, gap *geom.Point) error {
	if path := cfg.GetPlotPath(); path != "" {
		d := zone.SquareDomain(cfg.GetDomainMax())
		err := report.SavePlot(path, report.ZonePlot{
			Title:   "Exclusion zones (run " + runID + ")",
			Sensors: sensors,
			Domain:  &d,
			Gap:     gap,
		})
		if err != nil {
			return err
		}
		monitoring.Logf("run %s: wrote %s", runID, path)
	}

	if path := cfg.GetChartPath(); path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("failed to create output dir: %w", err)
		}
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create chart file: %w", err)
		}
		defer f.Close()

		row := cfg.GetRow()
		err = report.RenderRowChart(f, report.RowChart{
			RunID:   runID,
			Row:     row,
			Spans:   zone.RowSpans(sensors, row, span.Unbounded),
			Sensors: sensors,
			Gap:     gap,
		})
		if err != nil {
			return err
		}
		monitoring.Logf("run %s: wrote %s", runID, path)
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		if errors.Is(err, zone.ErrInvariant) || errors.Is(err, zone.ErrNoGap) {
			log.Fatalf("input breaks the single-gap contract: %v", err)
		}
		log.Fatalf("beacons: %v", err)
	}
}
