package encode

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"os"
)

// GIF buffers frames and writes an animated GIF on Close. A stride of n
// keeps every nth frame to hold the file size down.
type GIF struct {
	path   string
	anim   gif.GIF
	delay  int // hundredths of a second per retained frame
	stride int
	seen   int
}

func NewGIF(path string, fps, stride int) (*GIF, error) {
	if fps <= 0 {
		return nil, fmt.Errorf("fps must be positive, got %d", fps)
	}
	if stride < 1 {
		stride = 1
	}
	return &GIF{path: path, delay: 100 * stride / fps, stride: stride}, nil
}

func (e *GIF) Append(img *image.RGBA) error {
	keep := e.seen%e.stride == 0
	e.seen++
	if !keep {
		return nil
	}
	b := img.Bounds()
	pal := image.NewPaletted(b, palette.Plan9)
	draw.FloydSteinberg.Draw(pal, b, img, b.Min)
	e.anim.Image = append(e.anim.Image, pal)
	e.anim.Delay = append(e.anim.Delay, e.delay)
	return nil
}

func (e *GIF) Close() error {
	if len(e.anim.Image) == 0 {
		return fmt.Errorf("no frames to write")
	}
	f, err := os.Create(e.path)
	if err != nil {
		return err
	}
	if err := gif.EncodeAll(f, &e.anim); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Frames reports how many frames were retained.
func (e *GIF) Frames() int {
	return len(e.anim.Image)
}
