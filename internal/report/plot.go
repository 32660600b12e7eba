package report

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/banshee-data/sensorzone/internal/geom"
	"github.com/banshee-data/sensorzone/internal/sensor"
	"github.com/banshee-data/sensorzone/internal/span"
)

// ZonePlot describes the PNG written by SavePlot.
type ZonePlot struct {
	Title   string
	Sensors []sensor.Sensor
	// Domain, when non-empty, is drawn as the square [Min, Max]².
	Domain *span.Domain
	// Gap, when set, is marked with a cross.
	Gap *geom.Point
}

// diamond returns the four corners of a sensor's exclusion zone.
func diamond(s sensor.Sensor) plotter.XYs {
	x, y, r := float64(s.Location.X), float64(s.Location.Y), float64(s.Radius())
	return plotter.XYs{
		{X: x, Y: y - r},
		{X: x + r, Y: y},
		{X: x, Y: y + r},
		{X: x - r, Y: y},
	}
}

func pointsXY(pts []geom.Point) plotter.XYs {
	out := make(plotter.XYs, len(pts))
	for i, p := range pts {
		out[i] = plotter.XY{X: float64(p.X), Y: float64(p.Y)}
	}
	return out
}

// Build assembles the plot without writing it.
func (zp ZonePlot) Build() (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = zp.Title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	fills := zonePalette(len(zp.Sensors))
	locations := make([]geom.Point, len(zp.Sensors))
	for i, s := range zp.Sensors {
		poly, err := plotter.NewPolygon(diamond(s))
		if err != nil {
			return nil, fmt.Errorf("sensor %d zone: %w", i, err)
		}
		poly.Color = fills[i]
		poly.LineStyle.Width = vg.Points(0.5)
		p.Add(poly)
		locations[i] = s.Location
	}

	if len(zp.Sensors) > 0 {
		sensorsPts, err := plotter.NewScatter(pointsXY(locations))
		if err != nil {
			return nil, fmt.Errorf("sensor scatter: %w", err)
		}
		sensorsPts.GlyphStyle.Shape = draw.CircleGlyph{}
		sensorsPts.GlyphStyle.Radius = vg.Points(2)
		p.Add(sensorsPts)
		p.Legend.Add("sensor", sensorsPts)

		beacons, err := plotter.NewScatter(pointsXY(sensor.References(zp.Sensors)))
		if err != nil {
			return nil, fmt.Errorf("beacon scatter: %w", err)
		}
		beacons.GlyphStyle.Shape = draw.SquareGlyph{}
		beacons.GlyphStyle.Radius = vg.Points(2)
		beacons.GlyphStyle.Color = color.RGBA{R: 30, G: 30, B: 200, A: 255}
		p.Add(beacons)
		p.Legend.Add("beacon", beacons)
	}

	if zp.Domain != nil {
		lo, hi := float64(zp.Domain.Min), float64(zp.Domain.Max)
		border, err := plotter.NewLine(plotter.XYs{{X: lo, Y: lo}, {X: hi, Y: lo}, {X: hi, Y: hi}, {X: lo, Y: hi}, {X: lo, Y: lo}})
		if err != nil {
			return nil, fmt.Errorf("domain border: %w", err)
		}
		border.Width = vg.Points(1)
		border.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		p.Add(border)
		p.Legend.Add("domain", border)
	}

	if zp.Gap != nil {
		gap, err := plotter.NewScatter(pointsXY([]geom.Point{*zp.Gap}))
		if err != nil {
			return nil, fmt.Errorf("gap marker: %w", err)
		}
		gap.GlyphStyle.Shape = draw.CrossGlyph{}
		gap.GlyphStyle.Radius = vg.Points(6)
		gap.GlyphStyle.Color = color.RGBA{R: 220, A: 255}
		p.Add(gap)
		p.Legend.Add("gap "+zp.Gap.String(), gap)
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10
	return p, nil
}

// SavePlot writes the zone plot as a PNG to path, creating parent
// directories as needed.
func SavePlot(path string, zp ZonePlot) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	p, err := zp.Build()
	if err != nil {
		return err
	}
	if err := p.Save(10*vg.Inch, 10*vg.Inch, path); err != nil {
		return fmt.Errorf("save zone plot: %w", err)
	}
	return nil
}

// zonePalette returns n translucent fills spread around the hue circle.
func zonePalette(n int) []color.Color {
	out := make([]color.Color, n)
	for i := range out {
		r, g, b := hslToRGB(float64(i)/float64(n), 0.7, 0.5)
		out[i] = color.NRGBA{R: r, G: g, B: b, A: 70}
	}
	return out
}

// hslToRGB converts HSL to RGB (0-255 range).
func hslToRGB(h, s, l float64) (r, g, b uint8) {
	if s == 0 {
		v := uint8(l * 255)
		return v, v, v
	}
	q := l + s - l*s
	if l < 0.5 {
		q = l * (1 + s)
	}
	p := 2*l - q
	return uint8(hueToRGB(p, q, h+1.0/3.0) * 255),
		uint8(hueToRGB(p, q, h) * 255),
		uint8(hueToRGB(p, q, h-1.0/3.0) * 255)
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t += 1
	}
	if t > 1 {
		t -= 1
	}
	switch {
	case t < 1.0/6.0:
		return p + (q-p)*6*t
	case t < 1.0/2.0:
		return q
	case t < 2.0/3.0:
		return p + (q-p)*(2.0/3.0-t)*6
	}
	return p
}
