// Package chart renders the fitted curves as PNG images: one GAB isotherm
// per category and one Arrhenius line per category.
package chart

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"

	"github.com/foodkinetics/shelflife-go/internal/arrhenius"
	"github.com/foodkinetics/shelflife-go/internal/errors"
	"github.com/foodkinetics/shelflife-go/internal/gab"
	"github.com/foodkinetics/shelflife-go/internal/product"
)

const (
	width  = 500
	height = 500

	marginLeft   = 60.0
	marginRight  = 25.0
	marginTop    = 40.0
	marginBottom = 50.0

	curveSamples = 200
)

// plotArea maps data coordinates onto the pixel canvas.
type plotArea struct {
	xMin, xMax float64
	yMin, yMax float64
}

func (a plotArea) px(x float64) float64 {
	return marginLeft + (x-a.xMin)/(a.xMax-a.xMin)*(width-marginLeft-marginRight)
}

func (a plotArea) py(y float64) float64 {
	return height - marginBottom - (y-a.yMin)/(a.yMax-a.yMin)*(height-marginTop-marginBottom)
}

// SaveGABIsotherm renders the fitted GAB isotherm for one category together
// with the observed (aw, moisture) points.
func SaveGABIsotherm(path string, cat product.Category, p gab.Parameters, aw, moisture []float64) error {
	// Sample the fitted curve over the conventional display range.
	curveX := make([]float64, curveSamples)
	curveY := make([]float64, curveSamples)
	for i := range curveX {
		curveX[i] = 0.1 + (0.95-0.1)*float64(i)/float64(curveSamples-1)
		curveY[i] = p.Evaluate(curveX[i])
	}

	yMax := maxOf(append(append([]float64{}, curveY...), moisture...))
	area := plotArea{xMin: 0, xMax: 1, yMin: 0, yMax: yMax * 1.1}
	if area.yMax <= area.yMin {
		area.yMax = area.yMin + 1
	}

	dc := newCanvas()
	drawAxes(dc, area, "Water activity", "Moisture content")
	drawTitle(dc, fmt.Sprintf("GAB Isotherm for category %s (%s)", cat, cat.Name()))

	// Fitted curve
	dc.SetRGB255(58, 110, 165)
	dc.SetLineWidth(1.5)
	for i := 1; i < len(curveX); i++ {
		dc.DrawLine(area.px(curveX[i-1]), area.py(curveY[i-1]), area.px(curveX[i]), area.py(curveY[i]))
	}
	dc.Stroke()

	// Observed points
	dc.SetRGB255(197, 78, 74)
	for i := range aw {
		dc.DrawCircle(area.px(aw[i]), area.py(moisture[i]), 3)
		dc.Fill()
	}

	// Fit annotation
	dc.SetRGB(0.2, 0.2, 0.2)
	annotation := fmt.Sprintf("Wm=%.4f C=%.4f K=%.4f  R2=%.4f", p.Wm, p.C, p.K, p.Metrics.R2)
	dc.DrawStringAnchored(annotation, marginLeft+10, marginTop+15, 0, 0.5)

	return savePNG(dc, path)
}

// SaveArrheniusLine renders the linearized Arrhenius fit for one category:
// observed ln(1/IP) points against 1000/T with the fitted line.
func SaveArrheniusLine(path string, cat product.Category, p arrhenius.Parameters, setpointsC, meanInductionHours []float64) error {
	if len(setpointsC) == 0 || len(setpointsC) != len(meanInductionHours) {
		return errors.Newf("need matching setpoint and induction slices, got %d and %d", len(setpointsC), len(meanInductionHours)).
			Component("chart").
			Category(errors.CategoryValidation).
			Build()
	}

	// Recover line coefficients from the fitted parameters.
	a := math.Log(p.PreExponential)
	b := -p.ActivationEnergy * 1000 / arrhenius.GasConstant

	x := make([]float64, len(setpointsC))
	y := make([]float64, len(setpointsC))
	yPred := make([]float64, len(setpointsC))
	for i := range setpointsC {
		invT := 1 / (setpointsC[i] + arrhenius.KelvinOffset)
		x[i] = invT * 1000
		y[i] = math.Log(1 / meanInductionHours[i])
		yPred[i] = a + b*invT
	}

	area := plotArea{
		xMin: minOf(x) - 0.05, xMax: maxOf(x) + 0.05,
		yMin: minOf(append(append([]float64{}, y...), yPred...)) - 0.5,
		yMax: maxOf(append(append([]float64{}, y...), yPred...)) + 0.5,
	}

	dc := newCanvas()
	drawAxes(dc, area, "1000/T", "ln(1/IP)")
	drawTitle(dc, fmt.Sprintf("Arrhenius line for category %s (%s)", cat, cat.Name()))

	// Fitted line across the observed range
	dc.SetRGB255(58, 110, 165)
	dc.SetLineWidth(1.5)
	for i := 1; i < len(x); i++ {
		dc.DrawLine(area.px(x[i-1]), area.py(yPred[i-1]), area.px(x[i]), area.py(yPred[i]))
	}
	dc.Stroke()

	// Observed points
	dc.SetRGB255(197, 78, 74)
	for i := range x {
		dc.DrawCircle(area.px(x[i]), area.py(y[i]), 3)
		dc.Fill()
	}

	dc.SetRGB(0.2, 0.2, 0.2)
	annotation := fmt.Sprintf("Ea=%.2f kJ/mol  k0=%.3e 1/h  R2=%.4f", p.ActivationEnergy, p.PreExponential, p.Metrics.R2)
	dc.DrawStringAnchored(annotation, marginLeft+10, marginTop+15, 0, 0.5)

	return savePNG(dc, path)
}

func newCanvas() *gg.Context {
	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	return dc
}

func drawTitle(dc *gg.Context, title string) {
	dc.SetRGB(0, 0, 0)
	dc.DrawStringAnchored(title, width/2, marginTop/2, 0.5, 0.5)
}

func drawAxes(dc *gg.Context, area plotArea, xLabel, yLabel string) {
	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(1)

	// Axis lines
	dc.DrawLine(marginLeft, marginTop, marginLeft, height-marginBottom)
	dc.DrawLine(marginLeft, height-marginBottom, width-marginRight, height-marginBottom)
	dc.Stroke()

	// End labels keep the plot readable without full tick machinery.
	dc.DrawStringAnchored(fmt.Sprintf("%.2f", area.xMin), marginLeft, height-marginBottom+15, 0.5, 0.5)
	dc.DrawStringAnchored(fmt.Sprintf("%.2f", area.xMax), width-marginRight, height-marginBottom+15, 0.5, 0.5)
	dc.DrawStringAnchored(fmt.Sprintf("%.2f", area.yMin), marginLeft-5, height-marginBottom, 1, 0.5)
	dc.DrawStringAnchored(fmt.Sprintf("%.2f", area.yMax), marginLeft-5, marginTop, 1, 0.5)

	dc.DrawStringAnchored(xLabel, (marginLeft+width-marginRight)/2, height-marginBottom+30, 0.5, 0.5)
	dc.DrawStringAnchored(yLabel, marginLeft-5, marginTop-12, 1, 0.5)
}

func savePNG(dc *gg.Context, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.New(err).
				Component("chart").
				Category(errors.CategoryFileIO).
				Context("path", dir).
				Build()
		}
	}
	if err := dc.SavePNG(path); err != nil {
		return errors.New(err).
			Component("chart").
			Category(errors.CategoryChart).
			Context("path", path).
			Build()
	}
	return nil
}

func maxOf(xs []float64) float64 {
	m := math.Inf(-1)
	for _, x := range xs {
		if x > m {
			m = x
		}
	}
	return m
}

func minOf(xs []float64) float64 {
	m := math.Inf(1)
	for _, x := range xs {
		if x < m {
			m = x
		}
	}
	return m
}
