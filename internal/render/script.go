package render

import (
	"image/color"

	"github.com/possn/stress-strain-vni/internal/scenario"
)

// Narration is the didactic copy shown on the text panel during one phase.
// The wording is European Portuguese.
type Narration struct {
	Title      string
	Notes      []string
	Badge      string
	BadgeColor color.NRGBA
}

// Script returns the storyboard copy for a phase.
func Script(p scenario.Phase) Narration {
	switch p {
	case scenario.PhaseLowCRF:
		return Narration{
			Title: "Pulmão com CRF baixa",
			Notes: []string{
				"CRF baixa → V0 pequeno → strain sobe",
				"mesmo VT → mais distensão relativa",
				"lesão mecânica provável se persistir",
			},
			Badge:      "CRF baixa → strain excessivo (lesão provável)",
			BadgeColor: DangerFill,
		}
	case scenario.PhaseVNI:
		return Narration{
			Title: "VNI: porquê ajuda?",
			Notes: []string{
				"VNI/PEEP ↑ → recruta alvéolos → CRF ↑",
				"V0 ↑ → strain ↓ para o mesmo VT",
				"↓ stress/strain → ↓ risco de VILI",
			},
			Badge:      "VNI aumenta CRF → reduz strain para o mesmo VT",
			BadgeColor: SafeFill,
		}
	default:
		return Narration{
			Title: "Pulmão saudável",
			Notes: []string{
				"CRF alta → para o mesmo VT, strain baixo",
				"stress (tensão) sobe quando strain sobe",
				"risco mecânico aumenta quando CRF diminui",
			},
			Badge:      "CRF alta → strain baixo (reversível/seguro)",
			BadgeColor: SafeFill,
		}
	}
}
