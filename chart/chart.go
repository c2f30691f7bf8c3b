// Package chart renders estimation results as PNG images.
//
// Scatter draws sampled 2-D points colored by classification, and Lines
// draws timing series such as elapsed time against worker count.
package chart

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"

	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

var (
	// ErrMismatchedLength is returned when X and Y of a series differ in length.
	ErrMismatchedLength = errors.New("chart: x and y lengths differ")

	// ErrNoData is returned when there is nothing to draw.
	ErrNoData = errors.New("chart: no data")
)

var (
	insideColor  = color.RGBA{R: 255, A: 255}
	outsideColor = color.RGBA{B: 255, A: 255}
)

// XY is a set of points stored as parallel coordinate slices.
type XY struct {
	X, Y []float64
}

// Len returns the number of points.
func (xy XY) Len() int { return len(xy.X) }

// XY returns the i-th point. It implements plotter.XYer.
func (xy XY) XY(i int) (float64, float64) { return xy.X[i], xy.Y[i] }

func (xy XY) check() error {
	if len(xy.X) != len(xy.Y) {
		return fmt.Errorf("%w: %d != %d", ErrMismatchedLength, len(xy.X), len(xy.Y))
	}
	return nil
}

// Series is a named line.
type Series struct {
	Name string
	XY
}

// Scatter renders inside points in red and outside points in blue on the
// square [-1, 1] x [-1, 1].
func Scatter(title string, inside, outside XY) ([]byte, error) {
	if err := inside.check(); err != nil {
		return nil, err
	}
	if err := outside.check(); err != nil {
		return nil, err
	}

	p := hplot.New()
	p.Title.Text = title
	p.X.Label.Text = "x"
	p.X.Min, p.X.Max = -1, 1
	p.Y.Label.Text = "y"
	p.Y.Min, p.Y.Max = -1, 1

	radius := vg.Points(0.5)
	for _, set := range []struct {
		xy    XY
		color color.Color
	}{
		{inside, insideColor},
		{outside, outsideColor},
	} {
		if set.xy.Len() == 0 {
			continue
		}
		s, err := hplot.NewScatter(set.xy)
		if err != nil {
			return nil, err
		}
		s.Color = set.color
		s.Radius = radius
		p.Add(s)
	}
	p.Add(hplot.NewGrid())

	size := 20 * vg.Centimeter
	return render(p, size, size)
}

// Lines renders one line per series. With logY the y axis uses a log scale
// and non-positive values are dropped.
func Lines(title, xlabel, ylabel string, series []Series, logY bool) ([]byte, error) {
	p := hplot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	if logY {
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	}

	drawn := 0
	for i, s := range series {
		if err := s.check(); err != nil {
			return nil, fmt.Errorf("series %q: %w", s.Name, err)
		}

		xys := make(plotter.XYs, 0, s.Len())
		for j := range s.X {
			if logY && s.Y[j] <= 0 {
				continue
			}
			xys = append(xys, plotter.XY{X: s.X[j], Y: s.Y[j]})
		}
		if len(xys) == 0 {
			continue
		}

		line, points, err := plotter.NewLinePoints(xys)
		if err != nil {
			return nil, fmt.Errorf("series %q: %w", s.Name, err)
		}
		line.Color = plotutil.Color(i)
		points.Color = plotutil.Color(i)
		points.Shape = plotutil.Shape(i)
		p.Add(line, points)
		p.Legend.Add(s.Name, line, points)
		drawn++
	}
	if drawn == 0 {
		return nil, ErrNoData
	}
	p.Add(hplot.NewGrid())

	return render(p, 20*vg.Centimeter, 12*vg.Centimeter)
}

func render(p *hplot.Plot, w, h vg.Length) ([]byte, error) {
	canvas := vgimg.PngCanvas{Canvas: vgimg.New(w, h)}
	p.Draw(draw.New(canvas))

	out := new(bytes.Buffer)
	if _, err := canvas.WriteTo(out); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
