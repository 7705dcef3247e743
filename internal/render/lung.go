package render

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	xdraw "golang.org/x/image/draw"

	"github.com/possn/stress-strain-vni/internal/scenario"
)

// LoadLungImage reads lung artwork from disk. PNG with transparency works
// best; JPEG is accepted too.
func LoadLungImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding lung image %s: %w", path, err)
	}
	return img, nil
}

// SyntheticLung draws a stylized two-lobe lung on a transparent canvas so
// the renderer works without external artwork.
func SyntheticLung(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	s := float64(size)

	fillEllipse(img, 0.36*s, 0.58*s, 0.21*s, 0.30*s, lungFill)
	fillEllipse(img, 0.64*s, 0.58*s, 0.21*s, 0.30*s, lungFill)
	fillEllipse(img, 0.36*s, 0.62*s, 0.12*s, 0.19*s, lungShade)
	fillEllipse(img, 0.64*s, 0.62*s, 0.12*s, 0.19*s, lungShade)

	// trachea and main bronchi
	fillRect(img, image.Rect(int(0.47*s), int(0.08*s), int(0.53*s), int(0.34*s)), trachea)
	strokeLine(img, 0.50*s, 0.32*s, 0.40*s, 0.46*s, 0.045*s, trachea)
	strokeLine(img, 0.50*s, 0.32*s, 0.60*s, 0.46*s, 0.045*s, trachea)

	return img
}

// drawLungPanel blits the lung artwork, scaled by the breath cycle and the
// strain level, plus the rupture marks and caption.
func (r *Renderer) drawLungPanel(dst *image.RGBA, sc scenario.Scenario, fs scenario.FrameState) {
	panel := r.layout.Lung

	axisMax := sc.StrainAxisMax
	if axisMax <= 0 {
		axisMax = 0.60
	}
	breath := scenario.BreathWave(fs.BreathCycle)
	// pulse amplitude grows with strain to dramatize overdistension
	amp := 0.06 + 0.12*scenario.Clamp01(fs.Strain/axisMax)
	scale := 0.72 + amp*(breath-0.5)

	w := 0.72 * scale * float64(panel.Dx())
	h := 0.80 * scale * float64(panel.Dy())
	cx, cy := pt(panel, 0.50, 0.54)
	target := image.Rect(cx-int(w/2), cy-int(h/2), cx+int(w/2), cy+int(h/2))
	xdraw.CatmullRom.Scale(dst, target, r.lung, r.lung.Bounds(), xdraw.Over, nil)

	if fs.RuptureVisible {
		x0, y0 := pt(panel, 0.40, 0.62)
		x1, y1 := pt(panel, 0.62, 0.40)
		strokeLine(dst, float64(x0), float64(y0), float64(x1), float64(y1), r.lw(4.0), Ink)
		x0, y0 = pt(panel, 0.46, 0.58)
		x1, y1 = pt(panel, 0.58, 0.46)
		strokeLine(dst, float64(x0), float64(y0), float64(x1), float64(y1), r.lw(3.2), Ink)
	}

	capX, capY := pt(panel, 0.50, 0.10)
	drawCentered(dst, r.fonts.Small, Muted, capX, capY, "Pulmão (ilustração) — deformação aumenta com strain")
}
