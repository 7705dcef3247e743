package config

import "sort"

// Presets are the built-in storyboards. "classic" matches the reference
// animation; the others vary one didactic knob at a time.
var Presets = map[string]*Document{
	"classic": {
		Name:         "classic",
		Segments:     Segments{Healthy: 20, LowCRF: 20, VNI: 20},
		Volumes:      Volumes{CRFHealthy: 2.5, CRFLow: 1.0, CRFVNIStart: 1.0, CRFVNIEnd: 1.8, TidalVolume: 0.45},
		Breathing:    Breathing{Period: 4},
		Gauge:        Gauge{SafeStrain: 0.20, AxisMax: 0.60},
		RuptureOnset: 0.35,
		CRFFloor:     0.1,
	},
	"strict": {
		Name:         "strict",
		Segments:     Segments{Healthy: 20, LowCRF: 20, VNI: 20},
		Volumes:      Volumes{CRFHealthy: 2.5, CRFLow: 1.0, CRFVNIStart: 1.0, CRFVNIEnd: 1.8, TidalVolume: 0.45},
		Breathing:    Breathing{Period: 4},
		Gauge:        Gauge{SafeStrain: 0.25, AxisMax: 0.60},
		RuptureOnset: 0.35,
		CRFFloor:     0.1,
	},
	"breathing": {
		Name:         "breathing",
		Segments:     Segments{Healthy: 20, LowCRF: 20, VNI: 20},
		Volumes:      Volumes{CRFHealthy: 2.5, CRFLow: 1.0, CRFVNIStart: 1.0, CRFVNIEnd: 1.8, TidalVolume: 0.45},
		Breathing:    Breathing{Period: 4, Oscillation: 0.12},
		Gauge:        Gauge{SafeStrain: 0.20, AxisMax: 0.60},
		RuptureOnset: 0.35,
		CRFFloor:     0.1,
	},
	"short": {
		Name:         "short",
		Segments:     Segments{Healthy: 4, LowCRF: 4, VNI: 4},
		Volumes:      Volumes{CRFHealthy: 2.5, CRFLow: 1.0, CRFVNIStart: 1.0, CRFVNIEnd: 1.8, TidalVolume: 0.45},
		Breathing:    Breathing{Period: 2},
		Gauge:        Gauge{SafeStrain: 0.20, AxisMax: 0.60},
		RuptureOnset: 0.35,
		CRFFloor:     0.1,
	},
}

func GetPreset(name string) *Document {
	doc, ok := Presets[name]
	if !ok {
		return nil
	}
	return doc
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
