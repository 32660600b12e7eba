package report

import (
	"bytes"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/sensorzone/internal/geom"
	"github.com/banshee-data/sensorzone/internal/sensor"
	"github.com/banshee-data/sensorzone/internal/span"
	"github.com/banshee-data/sensorzone/internal/testutil"
)

func exampleSensors(t *testing.T) []sensor.Sensor {
	t.Helper()
	sensors, err := sensor.NewParser().ParseReader(strings.NewReader(testutil.ExampleInput))
	require.NoError(t, err)
	return sensors
}

func TestSummarize(t *testing.T) {
	sum := Summarize(exampleSensors(t))
	assert.Equal(t, 14, sum.Sensors)
	assert.Equal(t, 6, sum.References)
	assert.Equal(t, 1.0, sum.MinRadius)
	assert.Equal(t, 10.0, sum.MaxRadius)
	assert.InDelta(t, 73.0/14.0, sum.MeanRadius, 1e-9)
	assert.Greater(t, sum.StdDevRadius, 0.0)
	assert.Contains(t, sum.String(), "14 sensors, 6 beacons")
}

func TestSummarizeSmall(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(nil))

	one := Summarize([]sensor.Sensor{sensor.New(geom.Pt(0, 0), geom.Pt(3, 4))})
	assert.Equal(t, 7.0, one.MeanRadius)
	assert.Equal(t, 7.0, one.MinRadius)
	assert.Zero(t, one.StdDevRadius)
	assert.False(t, math.IsNaN(one.StdDevRadius))
}

func TestSavePlot(t *testing.T) {
	d := span.NewDomain(0, testutil.ExampleDomainMax)
	gap := geom.Pt(testutil.ExampleGapX, testutil.ExampleGapY)
	path := filepath.Join(t.TempDir(), "plots", "zones.png")

	err := SavePlot(path, ZonePlot{
		Title:   "example",
		Sensors: exampleSensors(t),
		Domain:  &d,
		Gap:     &gap,
	})
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Positive(t, img.Bounds().Dx())
}

func TestBuildEmptyPlot(t *testing.T) {
	p, err := ZonePlot{Title: "empty"}.Build()
	require.NoError(t, err)
	assert.Equal(t, "empty", p.Title.Text)
}

func TestRenderRowChart(t *testing.T) {
	sensors := exampleSensors(t)
	var spans []span.Span
	for _, s := range sensors {
		if sp, ok := s.ExcludedSpanOnRow(testutil.ExampleRow); ok {
			spans = append(spans, sp)
		}
	}
	gap := geom.Pt(testutil.ExampleGapX, testutil.ExampleGapY)

	var buf bytes.Buffer
	err := RenderRowChart(&buf, RowChart{
		RunID:   "test-run",
		Row:     testutil.ExampleRow,
		Spans:   span.Compact(spans, span.Unbounded),
		Sensors: sensors,
		Gap:     &gap,
	})
	require.NoError(t, err)

	html := buf.String()
	assert.Contains(t, html, "<html")
	assert.Contains(t, html, "Row 10 excluded spans")
	assert.Contains(t, html, "run=test-run")
	assert.Contains(t, html, "[-2, 24]")
}

func TestZonePalette(t *testing.T) {
	assert.Len(t, zonePalette(5), 5)
	assert.Empty(t, zonePalette(0))

	r, g, b := hslToRGB(0, 0, 0.5)
	assert.Equal(t, r, g)
	assert.Equal(t, g, b)
}
