// Package viz provides terminal and chart visualization for scenarios.
//
// The package implements an interactive playback TUI using the Bubble Tea
// framework plus static exports:
//
//   - [Model]: real-time terminal playback with a strain history graph
//   - [PlotStrain], [PlotCRF]: ASCII charts for non-interactive shells
//   - [TimelineChart]: PNG chart of strain and CRF over the full timeline
//
// # Key Bindings
//
//	Space - Pause/Resume playback
//	R     - Restart from t=0
//	←/→   - Seek one second
//	↑/↓   - Speed up / slow down
//	?     - Show help overlay
//
// Playback loops at the end of the timeline so the animation can run
// unattended during a lecture.
package viz
