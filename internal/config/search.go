package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// DefaultConfigPath is the path to the canonical search defaults file.
const DefaultConfigPath = "config/search.defaults.json"

// Built-in defaults, used for any field the JSON leaves out.
const (
	DefaultRow       int64 = 2_000_000
	DefaultDomainMax int64 = 4_000_000
)

// SearchConfig holds the parameters of one run: which row to count, how far
// the gap search extends, and how the search is executed. Pointer fields
// distinguish "not set" from zero so partial files are safe.
type SearchConfig struct {
	Row       *int64 `json:"row,omitempty"`
	DomainMax *int64 `json:"domain_max,omitempty"`

	// Gap search execution
	Workers           *int   `json:"workers,omitempty"`             // 0 = one per CPU
	ProgressEveryRows *int64 `json:"progress_every_rows,omitempty"` // 0 = silent

	// Optional artifacts
	PlotPath  *string `json:"plot_path,omitempty"`  // PNG of the exclusion zones
	ChartPath *string `json:"chart_path,omitempty"` // HTML chart of the query row
}

func ptrInt(v int) *int          { return &v }
func ptrInt64(v int64) *int64    { return &v }
func ptrString(v string) *string { return &v }

// EmptySearchConfig returns a SearchConfig with every field unset.
func EmptySearchConfig() *SearchConfig {
	return &SearchConfig{}
}

// DefaultSearchConfig returns a SearchConfig with every field populated
// from the built-in defaults.
func DefaultSearchConfig() *SearchConfig {
	return &SearchConfig{
		Row:               ptrInt64(DefaultRow),
		DomainMax:         ptrInt64(DefaultDomainMax),
		Workers:           ptrInt(0),
		ProgressEveryRows: ptrInt64(0),
		PlotPath:          ptrString(""),
		ChartPath:         ptrString(""),
	}
}

// LoadSearchConfig loads a SearchConfig from a JSON file.
// The file must have a .json extension and be under 1MB. Fields omitted from
// the file keep their defaults through the Get* accessors.
func LoadSearchConfig(path string) (*SearchConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptySearchConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration values are usable.
func (c *SearchConfig) Validate() error {
	if c.DomainMax != nil && *c.DomainMax < 0 {
		return fmt.Errorf("domain_max must be non-negative, got %d", *c.DomainMax)
	}
	if c.Workers != nil && *c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", *c.Workers)
	}
	if c.ProgressEveryRows != nil && *c.ProgressEveryRows < 0 {
		return fmt.Errorf("progress_every_rows must be non-negative, got %d", *c.ProgressEveryRows)
	}
	if c.PlotPath != nil && *c.PlotPath != "" {
		if ext := filepath.Ext(*c.PlotPath); ext != ".png" {
			return fmt.Errorf("plot_path must have .png extension, got %q", ext)
		}
	}
	if c.ChartPath != nil && *c.ChartPath != "" {
		if ext := filepath.Ext(*c.ChartPath); ext != ".html" {
			return fmt.Errorf("chart_path must have .html extension, got %q", ext)
		}
	}
	return nil
}

// GetRow returns the row to count or the default.
func (c *SearchConfig) GetRow() int64 {
	if c.Row == nil {
		return DefaultRow
	}
	return *c.Row
}

// GetDomainMax returns the gap search bound or the default.
func (c *SearchConfig) GetDomainMax() int64 {
	if c.DomainMax == nil {
		return DefaultDomainMax
	}
	return *c.DomainMax
}

// GetWorkers returns the number of gap search workers. Zero or unset means
// one per CPU.
func (c *SearchConfig) GetWorkers() int {
	if c.Workers == nil || *c.Workers == 0 {
		return runtime.NumCPU()
	}
	return *c.Workers
}

// GetProgressEveryRows returns the progress log cadence in rows, 0 if silent.
func (c *SearchConfig) GetProgressEveryRows() int64 {
	if c.ProgressEveryRows == nil {
		return 0
	}
	return *c.ProgressEveryRows
}

// GetPlotPath returns the PNG output path, empty when disabled.
func (c *SearchConfig) GetPlotPath() string {
	if c.PlotPath == nil {
		return ""
	}
	return *c.PlotPath
}

// GetChartPath returns the HTML chart output path, empty when disabled.
func (c *SearchConfig) GetChartPath() string {
	if c.ChartPath == nil {
		return ""
	}
	return *c.ChartPath
}
