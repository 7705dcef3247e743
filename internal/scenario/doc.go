// Package scenario computes the lung-mechanics values behind the
// stress-strain animation.
//
// A [Scenario] describes the storyboard: three consecutive segments
// (healthy lung, low CRF, VNI recruitment) with their reference volumes
// and timing. [Scenario.Compute] maps an elapsed time to a [FrameState],
// the complete set of values one frame needs:
//
//   - [FrameState.Phase]: which segment the instant falls in
//   - [FrameState.CRF]: functional residual capacity in liters
//   - [FrameState.TidalVolume]: delta volume per breath in liters
//   - [FrameState.Strain]: tidal volume divided by CRF
//   - [FrameState.RuptureVisible]: whether the overpressure overlay shows
//
// Compute is a pure function of elapsed time, so frames can be evaluated
// in any order, resampled at any frame rate, or probed at a single
// instant without running the rest of the timeline.
package scenario
