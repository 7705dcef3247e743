// Package render composites animation frames from scenario values.
//
// A frame is a 16:9 canvas split into a title band and three columns:
//
//   - text panel: phase title, the strain definition with live numbers,
//     didactic notes and a badge
//   - lung panel: artwork scaled by the breath cycle and strain, with
//     rupture marks when the scenario says so
//   - gauge panel: a vertical strain bar with safe and danger zones
//
// [Renderer.Draw] is deterministic: the same scenario and frame state
// always produce the same pixels, so single frames can be re-rendered in
// isolation. Everything is drawn with CPU rasterization (image/draw,
// golang.org/x/image) so rendering needs no display server.
package render
