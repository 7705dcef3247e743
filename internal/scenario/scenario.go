package scenario

import (
	"fmt"
	"math"
)

// Phase identifies one didactic segment of the timeline.
type Phase int

const (
	PhaseHealthy Phase = iota
	PhaseLowCRF
	PhaseVNI
)

func (p Phase) String() string {
	switch p {
	case PhaseHealthy:
		return "healthy"
	case PhaseLowCRF:
		return "low_crf"
	case PhaseVNI:
		return "vni"
	default:
		return "unknown"
	}
}

// FrameState carries every scenario value a single frame depends on.
type FrameState struct {
	Elapsed        float64 // seconds since the start of the timeline
	Phase          Phase
	CRF            float64 // functional residual capacity, liters
	TidalVolume    float64 // liters
	Strain         float64 // TidalVolume / CRF, dimensionless
	BreathCycle    float64 // position inside the current breath, [0,1)
	RuptureVisible bool
}

// Scenario is the storyboard of one animation. The zero value is not
// usable; start from [Default] and override fields, or load a document
// through the config package.
type Scenario struct {
	HealthyDur float64 // seconds of the healthy-lung segment
	LowCRFDur  float64 // seconds of the low-CRF segment
	VNIDur     float64 // seconds of the VNI segment

	CRFHealthy  float64 // liters
	CRFLow      float64 // liters
	CRFVNIStart float64 // liters at the start of the VNI ramp
	CRFVNIEnd   float64 // liters at the end of the VNI ramp

	TidalVolume   float64 // nominal VT, liters
	VTOscillation float64 // sinusoidal swing as a fraction of TidalVolume
	BreathPeriod  float64 // seconds per breath cycle

	SafeStrain    float64 // didactic safe limit drawn on the gauge
	StrainAxisMax float64 // top of the gauge range
	RuptureOnset  float64 // eased low-CRF progress beyond which rupture shows
	CRFFloor      float64 // lower clamp applied to CRF before dividing
}

// Default returns the canonical 60 second storyboard: 20 s healthy lung at
// CRF 2.5 L, 20 s low CRF at 1.0 L, then 20 s of VNI recruiting the lung
// back up to 1.8 L.
func Default() Scenario {
	return Scenario{
		HealthyDur:    20,
		LowCRFDur:     20,
		VNIDur:        20,
		CRFHealthy:    2.5,
		CRFLow:        1.0,
		CRFVNIStart:   1.0,
		CRFVNIEnd:     1.8,
		TidalVolume:   0.45,
		VTOscillation: 0,
		BreathPeriod:  4,
		SafeStrain:    0.20,
		StrainAxisMax: 0.60,
		RuptureOnset:  0.35,
		CRFFloor:      0.1,
	}
}

// Duration returns the total timeline length in seconds.
func (s Scenario) Duration() float64 {
	return s.HealthyDur + s.LowCRFDur + s.VNIDur
}

// Boundaries returns the instants at which the low-CRF and VNI segments
// begin.
func (s Scenario) Boundaries() (lowStart, vniStart float64) {
	return s.HealthyDur, s.HealthyDur + s.LowCRFDur
}

// PhaseAt returns the segment t falls in. A boundary instant belongs to
// the segment it opens.
func (s Scenario) PhaseAt(t float64) Phase {
	lowStart, vniStart := s.Boundaries()
	switch {
	case t < lowStart:
		return PhaseHealthy
	case t < vniStart:
		return PhaseLowCRF
	default:
		return PhaseVNI
	}
}

// Compute evaluates the scenario at elapsed time t. Times outside the
// timeline are clamped to its ends, so callers can feed raw frame indexes
// without worrying about the last sample landing past the total duration.
func (s Scenario) Compute(t float64) FrameState {
	total := s.Duration()
	switch {
	case t < 0:
		t = 0
	case t > total:
		t = total
	}

	fs := FrameState{Elapsed: t, Phase: s.PhaseAt(t)}

	if s.BreathPeriod > 0 {
		fs.BreathCycle = math.Mod(t, s.BreathPeriod) / s.BreathPeriod
	}
	fs.TidalVolume = s.TidalVolume
	if s.VTOscillation > 0 {
		fs.TidalVolume = s.TidalVolume * (1 + s.VTOscillation*math.Sin(2*math.Pi*fs.BreathCycle))
	}

	lowStart, vniStart := s.Boundaries()
	switch fs.Phase {
	case PhaseHealthy:
		fs.CRF = s.CRFHealthy
	case PhaseLowCRF:
		fs.CRF = s.CRFLow
		if s.LowCRFDur > 0 {
			eased := Smoothstep((t - lowStart) / s.LowCRFDur)
			fs.RuptureVisible = eased > s.RuptureOnset
		}
	case PhaseVNI:
		x := 1.0
		if s.VNIDur > 0 {
			x = (t - vniStart) / s.VNIDur
		}
		fs.CRF = s.CRFVNIStart + (s.CRFVNIEnd-s.CRFVNIStart)*Smoothstep(x)
	}

	if fs.CRF < s.CRFFloor {
		fs.CRF = s.CRFFloor
	}
	fs.Strain = fs.TidalVolume / fs.CRF
	return fs
}

// Validate checks that the storyboard is internally consistent.
func (s Scenario) Validate() error {
	if s.HealthyDur < 0 || s.LowCRFDur < 0 || s.VNIDur < 0 {
		return fmt.Errorf("segment durations must be non-negative, got %v/%v/%v",
			s.HealthyDur, s.LowCRFDur, s.VNIDur)
	}
	if s.Duration() <= 0 {
		return fmt.Errorf("timeline duration must be positive, got %v", s.Duration())
	}
	if s.CRFHealthy <= 0 || s.CRFLow <= 0 || s.CRFVNIStart <= 0 || s.CRFVNIEnd <= 0 {
		return fmt.Errorf("reference volumes must be positive")
	}
	if s.TidalVolume < 0 {
		return fmt.Errorf("tidal volume must be non-negative, got %v", s.TidalVolume)
	}
	if s.VTOscillation < 0 || s.VTOscillation >= 1 {
		return fmt.Errorf("vt oscillation must be in [0,1), got %v", s.VTOscillation)
	}
	if s.BreathPeriod <= 0 {
		return fmt.Errorf("breath period must be positive, got %v", s.BreathPeriod)
	}
	if s.SafeStrain <= 0 {
		return fmt.Errorf("safe strain must be positive, got %v", s.SafeStrain)
	}
	if s.StrainAxisMax <= s.SafeStrain {
		return fmt.Errorf("strain axis max %v must exceed the safe limit %v",
			s.StrainAxisMax, s.SafeStrain)
	}
	if s.RuptureOnset < 0 || s.RuptureOnset > 1 {
		return fmt.Errorf("rupture onset must be in [0,1], got %v", s.RuptureOnset)
	}
	if s.CRFFloor <= 0 {
		return fmt.Errorf("crf floor must be positive, got %v", s.CRFFloor)
	}
	return nil
}
