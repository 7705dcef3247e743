package encode

import "image"

// Null discards frames. Benchmarks use it to measure pure render speed.
type Null struct {
	frames int
}

func (e *Null) Append(*image.RGBA) error {
	e.frames++
	return nil
}

func (e *Null) Close() error {
	return nil
}

// Frames reports how many frames were discarded.
func (e *Null) Frames() int {
	return e.frames
}
