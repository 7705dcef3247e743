package render

import (
	"image"

	"github.com/possn/stress-strain-vni/internal/scenario"
)

// drawGauge paints the vertical strain bar: green zone up to the safe
// limit, red above, a thick marker at the current value and a dashed line
// with its label at the limit.
func (r *Renderer) drawGauge(dst *image.RGBA, sc scenario.Scenario, fs scenario.FrameState) {
	panel := r.layout.Gauge

	axisMax := sc.StrainAxisMax
	if axisMax <= 0 {
		axisMax = 0.60
	}
	frac := scenario.Clamp01(fs.Strain / axisMax)
	safeFrac := scenario.Clamp01(sc.SafeStrain / axisMax)

	// bar geometry in panel fractions
	const x0, y0 = 0.35, 0.15
	const bw, bh = 0.30, 0.70

	barLeft, barBottom := pt(panel, x0, y0)
	barRight, barTop := pt(panel, x0+bw, y0+bh)
	_, safeY := pt(panel, 0, y0+bh*safeFrac)
	_, markY := pt(panel, 0, y0+bh*frac)

	fillRect(dst, image.Rect(barLeft, safeY, barRight, barBottom), SafeFill)
	fillRect(dst, image.Rect(barLeft, barTop, barRight, safeY), DangerFill)
	strokeRect(dst, image.Rect(barLeft, barTop, barRight, barBottom), r.px(2.0), Ink)

	// current value marker
	mx0, _ := pt(panel, x0-0.08, 0)
	mx1, _ := pt(panel, x0+bw+0.08, 0)
	hLine(dst, mx0, mx1, markY, r.px(3.2), Ink)

	// safe limit
	sx0, _ := pt(panel, x0-0.06, 0)
	sx1, _ := pt(panel, x0+bw+0.06, 0)
	dashedHLine(dst, sx0, sx1, safeY, r.px(2.0), r.px(6), r.px(4), Muted)

	cx := panel.Min.X + panel.Dx()/2
	lh := lineHeight(r.fonts.Small)
	labelGap := int(0.035 * float64(panel.Dy()))
	drawCentered(dst, r.fonts.Small, Muted, cx, safeY-labelGap-lh, "limite")
	drawCentered(dst, r.fonts.Small, Muted, cx, safeY-labelGap, "seguro")

	_, titleY := pt(panel, 0, 0.92)
	drawCentered(dst, r.fonts.Label, Ink, cx, titleY, "STRAIN")

	_, valueY := pt(panel, 0, 0.08)
	drawCentered(dst, r.fonts.ValueSmall, strainColor(fs.Strain, sc.SafeStrain), cx, valueY, FormatStrain(fs.Strain))
}
