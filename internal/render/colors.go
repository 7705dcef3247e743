package render

import "image/color"

// Palette of the deck: dark slate ink and muted gray for text, pale
// green/red zone fills with their darker text counterparts.
var (
	White      = color.NRGBA{0xff, 0xff, 0xff, 0xff}
	Ink        = color.NRGBA{0x11, 0x18, 0x27, 0xff} // #111827
	Muted      = color.NRGBA{0x6b, 0x72, 0x80, 0xff} // #6b7280
	SafeFill   = color.NRGBA{0xdc, 0xfc, 0xe7, 0xff} // #dcfce7
	DangerFill = color.NRGBA{0xfe, 0xe2, 0xe2, 0xff} // #fee2e2
	SafeText   = color.NRGBA{0x16, 0x65, 0x34, 0xff} // #166534
	DangerText = color.NRGBA{0xb9, 0x1c, 0x1c, 0xff} // #b91c1c

	lungFill  = color.NRGBA{0xef, 0x9f, 0xa8, 0xff}
	lungShade = color.NRGBA{0xe2, 0x83, 0x90, 0xff}
	trachea   = color.NRGBA{0xd9, 0xa0, 0xa8, 0xff}
)

// strainColor picks the readout color for a strain value against the safe
// limit.
func strainColor(strain, safe float64) color.NRGBA {
	if strain <= safe {
		return SafeText
	}
	return DangerText
}
