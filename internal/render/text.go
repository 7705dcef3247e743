package render

import (
	"fmt"
	"image"
	"math"

	"github.com/possn/stress-strain-vni/internal/scenario"
)

// drawTextPanel paints the left column: phase title, the strain definition
// substituted with live numbers, the didactic notes and the badge.
func (r *Renderer) drawTextPanel(dst *image.RGBA, sc scenario.Scenario, fs scenario.FrameState) {
	panel := r.layout.Text
	nar := Script(fs.Phase)

	x, y := pt(panel, 0, 0.90)
	drawString(dst, r.fonts.Heading, Ink, x, y, nar.Title)

	x, y = pt(panel, 0, 0.80)
	drawString(dst, r.fonts.Label, Ink, x, y, "Definição:")
	x, y = pt(panel, 0, 0.74)
	drawString(dst, r.fonts.Formula, Ink, x, y, "strain = ΔV / V0")

	x, y = pt(panel, 0, 0.62)
	drawString(dst, r.fonts.Body, Ink, x, y, fmt.Sprintf("V0 (≈ CRF) = %s", FormatLiters(fs.CRF)))
	x, y = pt(panel, 0, 0.55)
	drawString(dst, r.fonts.Body, Ink, x, y,
		fmt.Sprintf("ΔV (VT)   = %s (%s)", FormatLiters(fs.TidalVolume), FormatMilliliters(fs.TidalVolume)))

	x, y = pt(panel, 0, 0.46)
	drawString(dst, r.fonts.Value, strainColor(fs.Strain, sc.SafeStrain), x, y,
		fmt.Sprintf("strain = %s", FormatStrain(fs.Strain)))

	x, y = pt(panel, 0, 0.34)
	drawString(dst, r.fonts.Label, Ink, x, y, "Relação-chave (didáctica):")
	noteAscent := r.fonts.Note.Metrics().Ascent.Ceil()
	for i, line := range nar.Notes {
		nx, ny := pt(panel, 0.02, 0.29-0.06*float64(i))
		drawString(dst, r.fonts.Note, Ink, nx, ny+noteAscent, "• "+line)
	}

	r.drawBadge(dst, panel, nar)
}

// drawBadge paints the rounded badge pinned to the panel's bottom-left.
func (r *Renderer) drawBadge(dst *image.RGBA, panel image.Rectangle, nar Narration) {
	scale := float64(r.layout.H) / 864.0
	padX := int(math.Round(14 * scale))
	padY := int(math.Round(9 * scale))
	radius := int(math.Round(10 * scale))

	m := r.fonts.Label.Metrics()
	ascent, descent := m.Ascent.Ceil(), m.Descent.Ceil()
	tw := stringWidth(r.fonts.Label, nar.Badge)

	x, bottom := pt(panel, 0, 0.06)
	box := image.Rect(x, bottom-ascent-descent-2*padY, x+tw+2*padX, bottom)
	fillRoundRect(dst, box, radius, nar.BadgeColor)
	drawString(dst, r.fonts.Label, Ink, x+padX, bottom-padY-descent, nar.Badge)
}
