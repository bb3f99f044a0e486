package main

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/iafilius/ComplexityCharts/src/analysis"
	"github.com/iafilius/ComplexityCharts/src/logging"
)

// Fixed figure geometry: two panels side by side over a caption strip.
const (
	panelWidth    = 750
	panelHeight   = 560
	captionHeight = 64
)

// lineStyle returns a solid line-plus-dots style in the given color.
func lineStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: 2,
		StrokeColor: col,
		DotWidth:    4,
		DotColor:    col,
	}
}

// dashedStyle returns a dashed line style in the given color.
func dashedStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth:     2,
		StrokeColor:     col,
		StrokeDashArray: []float64{5.0, 5.0},
	}
}

// renderFigure produces the complete two-panel figure with caption.
func renderFigure(rows []analysis.MeasurementRow) (image.Image, error) {
	defer logging.TimeTrack(time.Now(), "renderFigure")
	norm, err := analysis.NormalizeTheoretical(rows)
	if err != nil {
		return nil, err
	}
	eff, err := analysis.MeanEfficiencyPercent(rows)
	if err != nil {
		return nil, err
	}
	a, err := renderRuntimePanel(rows, norm)
	if err != nil {
		return nil, err
	}
	b, err := renderComplexityPanel(rows)
	if err != nil {
		return nil, err
	}
	caption := []string{
		fmt.Sprintf("Average Algorithm Efficiency: %.1f%% of theoretical maximum", eff),
		"Divide & Conquer shows consistent O(n^2 log n) scaling behavior",
	}
	return composeFigure(a, b, caption), nil
}

// renderRuntimePanel draws Panel A on linear axes: measured running time with
// error bars, overlaid with the normalized theoretical curve (dashed).
func renderRuntimePanel(rows []analysis.MeasurementRow, norm []float64) (image.Image, error) {
	xs := make([]float64, len(rows))
	actual := make([]float64, len(rows))
	minY := math.MaxFloat64
	maxY := -math.MaxFloat64
	for i, r := range rows {
		xs[i] = float64(r.GridSize)
		actual[i] = r.ActualTime
		if lo := r.ActualTime - r.StdDev; lo < minY {
			minY = lo
		}
		if hi := r.ActualTime + r.StdDev; hi > maxY {
			maxY = hi
		}
	}
	for _, v := range norm {
		if v < minY {
			minY = v
		}
		if v > maxY {
			maxY = v
		}
	}

	series := []chart.Series{
		chart.ContinuousSeries{Name: "Actual Performance", XValues: xs, YValues: actual, Style: lineStyle(chart.ColorBlue)},
		chart.ContinuousSeries{Name: "Theoretical O(n² log n)", XValues: xs, YValues: norm, Style: dashedStyle(chart.ColorRed)},
	}
	// go-chart has no error-bar series type: each bar is one unnamed polyline
	// tracing cap-stem-cap, so retraced segments overlap their own pixels.
	// Unnamed series are skipped by the legend.
	capHalf := (xs[len(xs)-1] - xs[0]) * 0.008
	if capHalf <= 0 {
		capHalf = 0.5
	}
	for i, r := range rows {
		if r.StdDev <= 0 {
			continue
		}
		series = append(series, errorBarSeries(xs[i], actual[i], r.StdDev, capHalf))
	}

	xMin, xMax := niceAxisBounds(xs[0], xs[len(xs)-1])
	yMin, yMax := niceAxisBounds(minY, maxY)
	ch := chart.Chart{
		Title:      "Divide & Conquer: Actual vs Theoretical Performance",
		Background: chart.Style{Padding: chart.Box{Top: 14, Left: 16, Right: 12, Bottom: 28}},
		Width:      panelWidth,
		Height:     panelHeight,
		XAxis: chart.XAxis{
			Name:  "Grid Size (n)",
			Range: &chart.ContinuousRange{Min: xMin, Max: xMax},
			Ticks: niceTicks(xMin, xMax, 6),
		},
		YAxis: chart.YAxis{
			Name:  "Running Time (ms)",
			Range: &chart.ContinuousRange{Min: yMin, Max: yMax},
			Ticks: niceTicks(yMin, yMax, 6),
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return renderToImage(ch)
}

// errorBarSeries traces one error bar (top cap, stem, bottom cap) as a single
// six-point polyline centered on (x, y) with half-height dev.
func errorBarSeries(x, y, dev, capHalf float64) chart.ContinuousSeries {
	top := y + dev
	bottom := y - dev
	return chart.ContinuousSeries{
		XValues: []float64{x - capHalf, x + capHalf, x, x, x - capHalf, x + capHalf},
		YValues: []float64{top, top, top, bottom, bottom, bottom},
		Style:   chart.Style{StrokeWidth: 1.5, StrokeColor: chart.ColorBlue},
	}
}

// renderComplexityPanel draws Panel B on log-log axes: measured comparison
// counts against the raw theoretical curve (dashed). go-chart has no log-log
// mode, so values are log10-transformed onto linear axes and the ticks are
// labeled with the original decade magnitudes.
func renderComplexityPanel(rows []analysis.MeasurementRow) (image.Image, error) {
	lx := make([]float64, len(rows))
	la := make([]float64, len(rows))
	lt := make([]float64, len(rows))
	minY := math.MaxFloat64
	maxY := -math.MaxFloat64
	for i, r := range rows {
		if r.TheoreticalComplexity <= 0 {
			return nil, fmt.Errorf("%w: log-log panel requires positive theoretical complexity (row %d)", analysis.ErrData, i+1)
		}
		lx[i] = math.Log10(float64(r.GridSize))
		la[i] = math.Log10(float64(r.ActualComparisons))
		lt[i] = math.Log10(r.TheoreticalComplexity)
		for _, v := range []float64{la[i], lt[i]} {
			if v < minY {
				minY = v
			}
			if v > maxY {
				maxY = v
			}
		}
	}
	xTicks, xMin, xMax := logTicks(lx[0], lx[len(lx)-1])
	yTicks, yMin, yMax := logTicks(minY, maxY)
	logging.Debugf("complexity panel: %d x ticks, %d y ticks", len(xTicks), len(yTicks))

	ch := chart.Chart{
		Title:      "Complexity Analysis: Actual vs Theoretical",
		Background: chart.Style{Padding: chart.Box{Top: 14, Left: 16, Right: 12, Bottom: 28}},
		Width:      panelWidth,
		Height:     panelHeight,
		XAxis: chart.XAxis{
			Name:  "Grid Size (n)",
			Range: &chart.ContinuousRange{Min: xMin, Max: xMax},
			Ticks: xTicks,
		},
		YAxis: chart.YAxis{
			Name:  "Number of Operations (log scale)",
			Range: &chart.ContinuousRange{Min: yMin, Max: yMax},
			Ticks: yTicks,
		},
		Series: []chart.Series{
			chart.ContinuousSeries{Name: "Actual Comparisons", XValues: lx, YValues: la, Style: lineStyle(chart.ColorBlue)},
			chart.ContinuousSeries{Name: "Theoretical O(n² log n)", XValues: lx, YValues: lt, Style: dashedStyle(chart.ColorRed)},
		},
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return renderToImage(ch)
}

// renderToImage renders the chart to PNG and decodes it back so panels can be
// composed with image/draw.
func renderToImage(ch chart.Chart) (image.Image, error) {
	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render chart %q: %w", ch.Title, err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("decode chart %q: %w", ch.Title, err)
	}
	return img, nil
}

// composeFigure places the two panels side by side above a light caption
// strip and draws the caption lines centered. basicfont covers ASCII only,
// so caption text sticks to ASCII.
func composeFigure(a, b image.Image, caption []string) *image.RGBA {
	aw, ah := a.Bounds().Dx(), a.Bounds().Dy()
	bw, bh := b.Bounds().Dx(), b.Bounds().Dy()
	w := aw + bw
	h := ah
	if bh > h {
		h = bh
	}
	out := image.NewRGBA(image.Rect(0, 0, w, h+captionHeight))
	draw.Draw(out, out.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(out, image.Rect(0, 0, aw, ah), a, a.Bounds().Min, draw.Src)
	draw.Draw(out, image.Rect(aw, 0, w, bh), b, b.Bounds().Min, draw.Src)

	strip := image.Rect(0, h, w, h+captionHeight)
	draw.Draw(out, strip, image.NewUniform(color.RGBA{R: 230, G: 230, B: 230, A: 255}), image.Point{}, draw.Src)

	face := basicfont.Face7x13
	textCol := image.NewUniform(color.RGBA{A: 255})
	lineH := face.Metrics().Height.Ceil() + 4
	y := h + (captionHeight-lineH*len(caption))/2 + face.Metrics().Ascent.Ceil()
	for _, line := range caption {
		dr := &font.Drawer{Dst: out, Src: textCol, Face: face}
		tw := dr.MeasureString(line).Ceil()
		dr.Dot = fixed.Point26_6{X: fixed.I((w - tw) / 2), Y: fixed.I(y)}
		dr.DrawString(line)
		y += lineH
	}
	return out
}

// savePNG encodes img and writes it to path.
func savePNG(img image.Image, path string) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("%w: encode %s: %v", analysis.ErrIO, path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("%w: write %s: %v", analysis.ErrIO, path, err)
	}
	return nil
}
