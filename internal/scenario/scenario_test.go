package scenario_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/possn/stress-strain-vni/internal/scenario"
)

var _ = Describe("Scenario", func() {
	var sc scenario.Scenario

	BeforeEach(func() {
		sc = scenario.Default()
	})

	Describe("Compute", func() {
		It("derives strain as VT over CRF at every sample", func() {
			for t := 0.0; t <= sc.Duration(); t += 0.05 {
				fs := sc.Compute(t)
				Expect(fs.CRF).To(BeNumerically(">", 0))
				Expect(fs.Strain).To(BeNumerically("~", fs.TidalVolume/fs.CRF, 1e-12))
				Expect(fs.Strain).To(BeNumerically(">=", 0))
			}
		})

		It("reproduces the storyboard reference values", func() {
			Expect(sc.Compute(10).Strain).To(BeNumerically("~", 0.18, 1e-9))
			Expect(sc.Compute(30).Strain).To(BeNumerically("~", 0.45, 1e-9))
			Expect(sc.Compute(60).Strain).To(BeNumerically("~", 0.25, 1e-9))
		})

		It("holds CRF constant inside the first two segments", func() {
			for t := 0.0; t < 20; t += 0.25 {
				Expect(sc.Compute(t).CRF).To(BeNumerically("~", 2.5, 1e-12))
			}
			for t := 20.0; t < 40; t += 0.25 {
				Expect(sc.Compute(t).CRF).To(BeNumerically("~", 1.0, 1e-12))
			}
		})

		It("drops CRF discontinuously when the healthy segment ends", func() {
			before := sc.Compute(20 - 1e-9)
			after := sc.Compute(20)
			Expect(before.CRF).To(BeNumerically("~", 2.5, 1e-9))
			Expect(after.CRF).To(BeNumerically("~", 1.0, 1e-9))
		})

		It("keeps the low-CRF to VNI handoff continuous", func() {
			before := sc.Compute(40 - 1e-6)
			after := sc.Compute(40)
			Expect(after.CRF).To(BeNumerically("~", before.CRF, 1e-6))
		})

		It("ramps CRF monotonically to the VNI target", func() {
			last := sc.Compute(40).CRF
			Expect(last).To(BeNumerically("~", 1.0, 1e-9))
			for t := 40.0; t <= 60; t += 0.02 {
				crf := sc.Compute(t).CRF
				Expect(crf).To(BeNumerically(">=", last-1e-12))
				last = crf
			}
			Expect(last).To(BeNumerically("~", 1.8, 1e-9))
		})

		It("shows rupture only inside the low-CRF segment, past the gate", func() {
			// Eased progress crosses the 0.35 gate at
			// t = 20 + 20*acos(1-2*0.35)/pi, about 28.1 s.
			onset := 20 + 20*math.Acos(1-2*sc.RuptureOnset)/math.Pi
			for t := 0.0; t <= 60; t += 0.05 {
				fs := sc.Compute(t)
				if fs.RuptureVisible {
					Expect(fs.Phase).To(Equal(scenario.PhaseLowCRF))
					Expect(t).To(BeNumerically(">", onset-0.05))
				}
			}
			Expect(sc.Compute(onset - 0.5).RuptureVisible).To(BeFalse())
			Expect(sc.Compute(onset + 0.5).RuptureVisible).To(BeTrue())
			Expect(sc.Compute(45).RuptureVisible).To(BeFalse())
		})

		It("clamps times outside the timeline", func() {
			Expect(sc.Compute(-3)).To(Equal(sc.Compute(0)))
			far := sc.Compute(1e6)
			Expect(far.Phase).To(Equal(scenario.PhaseVNI))
			Expect(far.CRF).To(BeNumerically("~", 1.8, 1e-9))
		})

		It("oscillates tidal volume around the nominal value when enabled", func() {
			sc.VTOscillation = 0.12
			lo, hi := math.Inf(1), math.Inf(-1)
			for t := 0.0; t < 8; t += 0.01 {
				vt := sc.Compute(t).TidalVolume
				Expect(vt).To(BeNumerically(">", 0))
				lo = math.Min(lo, vt)
				hi = math.Max(hi, vt)
			}
			Expect(hi).To(BeNumerically("~", 0.45*1.12, 1e-3))
			Expect(lo).To(BeNumerically("~", 0.45*0.88, 1e-3))
		})

		It("applies the CRF floor before dividing", func() {
			sc.CRFLow = 0.01
			fs := sc.Compute(30)
			Expect(fs.CRF).To(BeNumerically("~", sc.CRFFloor, 1e-12))
			Expect(fs.Strain).To(BeNumerically("~", sc.TidalVolume/sc.CRFFloor, 1e-9))
		})

		It("tracks the breath cycle with the configured period", func() {
			Expect(sc.Compute(0).BreathCycle).To(BeZero())
			Expect(sc.Compute(1).BreathCycle).To(BeNumerically("~", 0.25, 1e-12))
			Expect(sc.Compute(6).BreathCycle).To(BeNumerically("~", 0.5, 1e-12))
		})
	})

	Describe("PhaseAt", func() {
		It("opens each segment at its boundary instant", func() {
			Expect(sc.PhaseAt(0)).To(Equal(scenario.PhaseHealthy))
			Expect(sc.PhaseAt(19.999)).To(Equal(scenario.PhaseHealthy))
			Expect(sc.PhaseAt(20)).To(Equal(scenario.PhaseLowCRF))
			Expect(sc.PhaseAt(39.999)).To(Equal(scenario.PhaseLowCRF))
			Expect(sc.PhaseAt(40)).To(Equal(scenario.PhaseVNI))
			Expect(sc.PhaseAt(60)).To(Equal(scenario.PhaseVNI))
		})
	})

	Describe("Validate", func() {
		It("accepts the default storyboard", func() {
			Expect(scenario.Default().Validate()).To(Succeed())
		})

		It("rejects a zero-length timeline", func() {
			sc.HealthyDur, sc.LowCRFDur, sc.VNIDur = 0, 0, 0
			Expect(sc.Validate()).To(HaveOccurred())
		})

		It("rejects non-positive reference volumes", func() {
			sc.CRFLow = 0
			Expect(sc.Validate()).To(HaveOccurred())
		})

		It("rejects a safe limit at or past the gauge top", func() {
			sc.SafeStrain = sc.StrainAxisMax
			Expect(sc.Validate()).To(HaveOccurred())
		})

		It("rejects an oscillation that could empty the lung", func() {
			sc.VTOscillation = 1.0
			Expect(sc.Validate()).To(HaveOccurred())
		})
	})
})

var _ = Describe("Easing", func() {
	It("pins smoothstep to the unit interval", func() {
		Expect(scenario.Smoothstep(-1)).To(BeZero())
		Expect(scenario.Smoothstep(0)).To(BeZero())
		Expect(scenario.Smoothstep(0.5)).To(BeNumerically("~", 0.5, 1e-12))
		Expect(scenario.Smoothstep(1)).To(BeNumerically("~", 1, 1e-12))
		Expect(scenario.Smoothstep(2)).To(BeNumerically("~", 1, 1e-12))
	})

	It("keeps smoothstep monotone", func() {
		last := -1.0
		for x := 0.0; x <= 1; x += 0.001 {
			v := scenario.Smoothstep(x)
			Expect(v).To(BeNumerically(">=", last))
			last = v
		}
	})

	It("peaks the breath wave at mid-cycle", func() {
		Expect(scenario.BreathWave(0)).To(BeNumerically("~", 0, 1e-12))
		Expect(scenario.BreathWave(0.5)).To(BeNumerically("~", 1, 1e-12))
		Expect(scenario.BreathWave(0.25)).To(BeNumerically("~", 0.5, 1e-12))
	})
})
