package render

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// fontDPI matches the 120 dpi design canvas, so point sizes carry over
// unchanged from the storyboard.
const fontDPI = 120

// FontSet holds the faces used by the compositor, sized for one frame
// height. Faces are not safe for concurrent use; neither is the renderer
// that owns them.
type FontSet struct {
	Title      font.Face // bold 18pt, video title
	Heading    font.Face // bold 13.5pt, panel titles
	Label      font.Face // bold 11pt, section labels and badge
	Value      font.Face // bold 14.5pt, strain readout
	ValueSmall font.Face // bold 12.5pt, gauge readout
	Formula    font.Face // regular 13.5pt
	Body       font.Face // regular 12pt, value lines
	Note       font.Face // regular 10.4pt, didactic bullets
	Small      font.Face // regular 9.5pt, captions

	faces []font.Face
}

// NewFontSet builds faces scaled so the design point sizes land on a
// frame of the given height (864 px renders at design size).
func NewFontSet(height int) (*FontSet, error) {
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, err
	}

	scale := float64(height) / 864.0
	fs := &FontSet{}
	mk := func(src *sfnt.Font, pts float64, dst *font.Face) error {
		face, err := opentype.NewFace(src, &opentype.FaceOptions{
			Size:    pts * scale,
			DPI:     fontDPI,
			Hinting: font.HintingFull,
		})
		if err != nil {
			return err
		}
		*dst = face
		fs.faces = append(fs.faces, face)
		return nil
	}

	defs := []struct {
		src *sfnt.Font
		pts float64
		dst *font.Face
	}{
		{bold, 18, &fs.Title},
		{bold, 13.5, &fs.Heading},
		{bold, 11, &fs.Label},
		{bold, 14.5, &fs.Value},
		{bold, 12.5, &fs.ValueSmall},
		{regular, 13.5, &fs.Formula},
		{regular, 12, &fs.Body},
		{regular, 10.4, &fs.Note},
		{regular, 9.5, &fs.Small},
	}
	for _, d := range defs {
		if err := mk(d.src, d.pts, d.dst); err != nil {
			fs.Close()
			return nil, err
		}
	}
	return fs, nil
}

// Close releases the font faces.
func (fs *FontSet) Close() error {
	var first error
	for _, f := range fs.faces {
		if err := f.Close(); err != nil && first == nil {
			first = err
		}
	}
	fs.faces = nil
	return first
}

// drawString paints s with its baseline at (x, y).
func drawString(dst *image.RGBA, face font.Face, col color.Color, x, y int, s string) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(s)
}

// drawCentered paints s centered horizontally on cx, baseline at y.
func drawCentered(dst *image.RGBA, face font.Face, col color.Color, cx, y int, s string) {
	drawString(dst, face, col, cx-stringWidth(face, s)/2, y, s)
}

func stringWidth(face font.Face, s string) int {
	return font.MeasureString(face, s).Ceil()
}

// lineHeight returns ascent plus descent in pixels.
func lineHeight(face font.Face) int {
	m := face.Metrics()
	return m.Ascent.Ceil() + m.Descent.Ceil()
}
