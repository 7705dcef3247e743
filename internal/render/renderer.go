package render

import (
	"fmt"
	"image"
	"math"

	"github.com/possn/stress-strain-vni/internal/scenario"
)

// videoTitle is the banner above the three panels.
const videoTitle = "STRESS–STRAIN — CRF e papel da VNI"

// Options configures a Renderer.
type Options struct {
	Width  int
	Height int

	// LungImage is an optional path to lung artwork. When empty a
	// synthetic lung is drawn instead.
	LungImage string
}

// Renderer composites frames of the animation. It owns font faces and is
// not safe for concurrent use; run one renderer per goroutine.
type Renderer struct {
	opts   Options
	layout Layout
	fonts  *FontSet
	lung   image.Image
}

// New builds a renderer for the given frame size, loading fonts and the
// lung artwork up front.
func New(opts Options) (*Renderer, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("frame size must be positive, got %dx%d", opts.Width, opts.Height)
	}
	fonts, err := NewFontSet(opts.Height)
	if err != nil {
		return nil, err
	}

	var lung image.Image
	if opts.LungImage != "" {
		lung, err = LoadLungImage(opts.LungImage)
		if err != nil {
			fonts.Close()
			return nil, err
		}
	} else {
		lung = SyntheticLung(512)
	}

	return &Renderer{
		opts:   opts,
		layout: NewLayout(opts.Width, opts.Height),
		fonts:  fonts,
		lung:   lung,
	}, nil
}

// Close releases the renderer's font faces.
func (r *Renderer) Close() error {
	return r.fonts.Close()
}

// Bounds returns the frame rectangle.
func (r *Renderer) Bounds() image.Rectangle {
	return image.Rect(0, 0, r.opts.Width, r.opts.Height)
}

// Frame allocates a buffer sized for this renderer. Buffers can be reused
// across Draw calls.
func (r *Renderer) Frame() *image.RGBA {
	return image.NewRGBA(r.Bounds())
}

// Draw composites one frame into dst, which must match Bounds.
func (r *Renderer) Draw(dst *image.RGBA, sc scenario.Scenario, fs scenario.FrameState) {
	fillRect(dst, dst.Bounds(), White)

	drawCentered(dst, r.fonts.Title, Ink, r.opts.Width/2, r.layout.TitleBaseline, videoTitle)

	r.drawTextPanel(dst, sc, fs)
	r.drawLungPanel(dst, sc, fs)
	r.drawGauge(dst, sc, fs)
}

// lw converts a design line width in points to pixels at this frame size.
func (r *Renderer) lw(pts float64) float64 {
	return pts / 72 * fontDPI * float64(r.opts.Height) / 864.0
}

// px is lw rounded to whole pixels, at least one.
func (r *Renderer) px(pts float64) int {
	p := int(math.Round(r.lw(pts)))
	if p < 1 {
		p = 1
	}
	return p
}
