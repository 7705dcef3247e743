package viz

import (
	"github.com/guptarohit/asciigraph"

	"github.com/possn/stress-strain-vni/internal/scenario"
	"github.com/possn/stress-strain-vni/internal/timeline"
)

const plotSampleRate = 4 // samples per second, asciigraph compresses the rest

// PlotStrain renders the strain curve as an ASCII chart.
func PlotStrain(sc scenario.Scenario, width, height int) string {
	return plotSeries(sc, width, height, "strain = ΔV / V0", func(r timeline.Row) float64 {
		return r.Strain
	})
}

// PlotCRF renders the CRF curve as an ASCII chart.
func PlotCRF(sc scenario.Scenario, width, height int) string {
	return plotSeries(sc, width, height, "CRF (L)", func(r timeline.Row) float64 {
		return r.CRF
	})
}

func plotSeries(sc scenario.Scenario, width, height int, caption string, pick func(timeline.Row) float64) string {
	rows := timeline.Sample(sc, plotSampleRate)
	if len(rows) < 2 {
		return ""
	}
	data := make([]float64, len(rows))
	for i, r := range rows {
		data[i] = pick(r)
	}
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(2),
		asciigraph.Caption(caption))
}
