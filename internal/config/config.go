package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/possn/stress-strain-vni/internal/scenario"
)

// Document is the on-disk YAML form of a storyboard. Fields omitted from a
// file keep the canonical defaults, so a document only spells out what it
// changes.
type Document struct {
	Name      string    `yaml:"name"`
	Segments  Segments  `yaml:"segments"`
	Volumes   Volumes   `yaml:"volumes"`
	Breathing Breathing `yaml:"breathing"`
	Gauge     Gauge     `yaml:"gauge"`

	RuptureOnset float64 `yaml:"rupture_onset"`
	CRFFloor     float64 `yaml:"crf_floor"`
}

type Segments struct {
	Healthy float64 `yaml:"healthy"`
	LowCRF  float64 `yaml:"low_crf"`
	VNI     float64 `yaml:"vni"`
}

type Volumes struct {
	CRFHealthy  float64 `yaml:"crf_healthy"`
	CRFLow      float64 `yaml:"crf_low"`
	CRFVNIStart float64 `yaml:"crf_vni_start"`
	CRFVNIEnd   float64 `yaml:"crf_vni_end"`
	TidalVolume float64 `yaml:"tidal_volume"`
}

type Breathing struct {
	Period      float64 `yaml:"period"`
	Oscillation float64 `yaml:"oscillation"`
}

type Gauge struct {
	SafeStrain float64 `yaml:"safe_strain"`
	AxisMax    float64 `yaml:"axis_max"`
}

// Default returns the canonical storyboard document.
func Default() *Document {
	return fromScenario("classic", scenario.Default())
}

func fromScenario(name string, sc scenario.Scenario) *Document {
	return &Document{
		Name: name,
		Segments: Segments{
			Healthy: sc.HealthyDur,
			LowCRF:  sc.LowCRFDur,
			VNI:     sc.VNIDur,
		},
		Volumes: Volumes{
			CRFHealthy:  sc.CRFHealthy,
			CRFLow:      sc.CRFLow,
			CRFVNIStart: sc.CRFVNIStart,
			CRFVNIEnd:   sc.CRFVNIEnd,
			TidalVolume: sc.TidalVolume,
		},
		Breathing: Breathing{
			Period:      sc.BreathPeriod,
			Oscillation: sc.VTOscillation,
		},
		Gauge: Gauge{
			SafeStrain: sc.SafeStrain,
			AxisMax:    sc.StrainAxisMax,
		},
		RuptureOnset: sc.RuptureOnset,
		CRFFloor:     sc.CRFFloor,
	}
}

// Scenario converts the document into its runtime form.
func (d *Document) Scenario() scenario.Scenario {
	return scenario.Scenario{
		HealthyDur:    d.Segments.Healthy,
		LowCRFDur:     d.Segments.LowCRF,
		VNIDur:        d.Segments.VNI,
		CRFHealthy:    d.Volumes.CRFHealthy,
		CRFLow:        d.Volumes.CRFLow,
		CRFVNIStart:   d.Volumes.CRFVNIStart,
		CRFVNIEnd:     d.Volumes.CRFVNIEnd,
		TidalVolume:   d.Volumes.TidalVolume,
		VTOscillation: d.Breathing.Oscillation,
		BreathPeriod:  d.Breathing.Period,
		SafeStrain:    d.Gauge.SafeStrain,
		StrainAxisMax: d.Gauge.AxisMax,
		RuptureOnset:  d.RuptureOnset,
		CRFFloor:      d.CRFFloor,
	}
}

// Load reads a storyboard document, layering it over the defaults and
// validating the result.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc := Default()
	if err := yaml.Unmarshal(data, doc); err != nil {
		return nil, err
	}
	if err := doc.Scenario().Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", path, err)
	}
	return doc, nil
}

// Save writes the document as YAML, for seeding a file to edit.
func Save(path string, doc *Document) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
