// Package timeline samples a scenario onto the frame grid and exports
// the resulting value table as CSV or JSON.
package timeline

import (
	"math"

	"github.com/possn/stress-strain-vni/internal/scenario"
)

// Row is one sampled instant, one per video frame.
type Row struct {
	T       float64 `json:"t"`
	Phase   string  `json:"phase"`
	CRF     float64 `json:"crf"`
	VT      float64 `json:"tidal_volume"`
	Strain  float64 `json:"strain"`
	Rupture bool    `json:"rupture"`
}

// Sample evaluates the scenario at every frame instant i/fps.
func Sample(sc scenario.Scenario, fps int) []Row {
	if fps <= 0 {
		return nil
	}
	n := int(math.Round(sc.Duration() * float64(fps)))
	rows := make([]Row, 0, n)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(fps)
		fs := sc.Compute(t)
		rows = append(rows, Row{
			T:       t,
			Phase:   fs.Phase.String(),
			CRF:     fs.CRF,
			VT:      fs.TidalVolume,
			Strain:  fs.Strain,
			Rupture: fs.RuptureVisible,
		})
	}
	return rows
}

// Summary aggregates a sampled timeline.
type Summary struct {
	Samples      int
	MaxStrain    float64
	MaxStrainT   float64
	MinCRF       float64
	RuptureOnset float64 // first rupture instant, -1 when none
	UnsafeFrac   float64 // fraction of samples above the safe line
	PhaseSamples map[string]int
}

func Summarize(sc scenario.Scenario, rows []Row) Summary {
	s := Summary{
		RuptureOnset: -1,
		PhaseSamples: make(map[string]int),
	}
	if len(rows) == 0 {
		return s
	}

	s.Samples = len(rows)
	s.MinCRF = rows[0].CRF
	unsafe := 0
	for _, r := range rows {
		if r.Strain > s.MaxStrain {
			s.MaxStrain = r.Strain
			s.MaxStrainT = r.T
		}
		if r.CRF < s.MinCRF {
			s.MinCRF = r.CRF
		}
		if r.Rupture && s.RuptureOnset < 0 {
			s.RuptureOnset = r.T
		}
		if r.Strain > sc.SafeStrain {
			unsafe++
		}
		s.PhaseSamples[r.Phase]++
	}
	s.UnsafeFrac = float64(unsafe) / float64(len(rows))
	return s
}
