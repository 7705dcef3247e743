// Package encode turns rendered frames into video artifacts.
//
// All outputs implement [Sink]: frames go in presentation order through
// Append, and Close finalizes the artifact. Available sinks:
//
//   - [FFmpeg]: pipes raw RGB24 into an ffmpeg child process encoding
//     H.264 (the production path)
//   - [PNGDir]: a numbered PNG sequence, useful for inspecting frames
//   - [GIF]: an animated GIF with a frame stride to keep size down
//   - [Null]: discards frames, for benchmarks
package encode
