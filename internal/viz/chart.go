package viz

import (
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/possn/stress-strain-vni/internal/scenario"
	"github.com/possn/stress-strain-vni/internal/timeline"
)

var (
	strainStroke = drawing.Color{R: 185, G: 28, B: 28, A: 255}
	crfStroke    = drawing.Color{R: 37, G: 99, B: 235, A: 255}
	safeStroke   = drawing.Color{R: 107, G: 114, B: 128, A: 255}
)

// TimelineChart renders strain and CRF over time as a PNG. CRF is drawn
// against the secondary axis so both curves stay readable.
func TimelineChart(sc scenario.Scenario, fps, width, height int, out io.Writer) error {
	rows := timeline.Sample(sc, fps)
	if len(rows) < 2 {
		return fmt.Errorf("not enough samples to chart (fps %d)", fps)
	}

	ts := make([]float64, len(rows))
	strain := make([]float64, len(rows))
	crf := make([]float64, len(rows))
	safe := make([]float64, len(rows))
	for i, r := range rows {
		ts[i] = r.T
		strain[i] = r.Strain
		crf[i] = r.CRF
		safe[i] = sc.SafeStrain
	}

	ch := chart.Chart{
		Title:      "Strain e CRF ao longo do tempo",
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 14, Left: 16, Right: 12, Bottom: 28}},
		XAxis:      chart.XAxis{Name: "t (s)"},
		YAxis: chart.YAxis{
			Name:  "strain",
			Range: &chart.ContinuousRange{Min: 0, Max: sc.StrainAxisMax},
		},
		YAxisSecondary: chart.YAxis{Name: "CRF (L)"},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "strain",
				XValues: ts,
				YValues: strain,
				Style:   chart.Style{StrokeColor: strainStroke, StrokeWidth: 2},
			},
			chart.ContinuousSeries{
				Name:    "CRF",
				XValues: ts,
				YValues: crf,
				YAxis:   chart.YAxisSecondary,
				Style:   chart.Style{StrokeColor: crfStroke, StrokeWidth: 2},
			},
			chart.ContinuousSeries{
				Name:    "limite seguro",
				XValues: ts,
				YValues: safe,
				Style:   chart.Style{StrokeColor: safeStroke, StrokeWidth: 1.5, StrokeDashArray: []float64{5, 5}},
			},
		},
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return ch.Render(chart.PNG, out)
}
