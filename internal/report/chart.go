package report

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/sensorzone/internal/geom"
	"github.com/banshee-data/sensorzone/internal/sensor"
	"github.com/banshee-data/sensorzone/internal/span"
)

// RowChart describes the HTML page written by RenderRowChart: a scatter of
// the sensor field and a bar per excluded span of one row.
type RowChart struct {
	RunID   string
	Row     int64
	Spans   span.SpanSet
	Sensors []sensor.Sensor
	Gap     *geom.Point
}

func (rc RowChart) fieldScatter() *charts.Scatter {
	sensorsData := make([]opts.ScatterData, 0, len(rc.Sensors))
	maxRadius := int64(1)
	for _, s := range rc.Sensors {
		sensorsData = append(sensorsData, opts.ScatterData{
			Name:  s.String(),
			Value: []interface{}{s.Location.X, s.Location.Y, s.Radius()},
		})
		maxRadius = max(maxRadius, s.Radius())
	}
	beaconData := make([]opts.ScatterData, 0)
	for _, p := range sensor.References(rc.Sensors) {
		beaconData = append(beaconData, opts.ScatterData{Name: p.String(), Value: []interface{}{p.X, p.Y}})
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Sensor exclusion zones", Width: "900px", Height: "700px"}),
		charts.WithTitleOpts(opts.Title{Title: "Sensor field", Subtitle: fmt.Sprintf("run=%s sensors=%d", rc.RunID, len(rc.Sensors))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "x", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "y", NameLocation: "middle", NameGap: 30}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        float32(maxRadius),
			Dimension:  "2",
			InRange:    &opts.VisualMapInRange{Color: []string{"#440154", "#3e4989", "#26828e", "#35b779", "#fde725"}},
		}),
	)
	scatter.AddSeries("sensors", sensorsData, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 10}))
	scatter.AddSeries("beacons", beaconData, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 6}))
	if rc.Gap != nil {
		scatter.AddSeries("gap", []opts.ScatterData{{Name: rc.Gap.String(), Value: []interface{}{rc.Gap.X, rc.Gap.Y}}},
			charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 14}))
	}
	return scatter
}

func (rc RowChart) spanBar() *charts.Bar {
	x := make([]string, 0, rc.Spans.Len())
	y := make([]opts.BarData, 0, rc.Spans.Len())
	for _, s := range rc.Spans.Spans {
		x = append(x, s.String())
		y = append(y, opts.BarData{Value: s.Len()})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "900px", Height: "400px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("Row %d excluded spans", rc.Row),
			Subtitle: fmt.Sprintf("spans=%d covered=%d", rc.Spans.Len(), rc.Spans.Total()),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(x).
		AddSeries("cells", y,
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
		)
	return bar
}

// RenderRowChart writes the row chart page to w.
func RenderRowChart(w io.Writer, rc RowChart) error {
	page := components.NewPage()
	page.AddCharts(rc.fieldScatter(), rc.spanBar())
	if err := page.Render(w); err != nil {
		return fmt.Errorf("render row chart: %w", err)
	}
	return nil
}
