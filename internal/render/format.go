package render

import (
	"fmt"
	"math"
	"strings"
)

// FormatLiters renders a volume with a decimal comma, e.g. "2,5 L".
func FormatLiters(v float64) string {
	return strings.Replace(fmt.Sprintf("%.1f L", v), ".", ",", 1)
}

// FormatStrain renders a strain value with a decimal comma, e.g. "0,45".
func FormatStrain(v float64) string {
	return strings.Replace(fmt.Sprintf("%.2f", v), ".", ",", 1)
}

// FormatMilliliters renders a volume in whole milliliters, e.g. "450 mL".
func FormatMilliliters(v float64) string {
	return fmt.Sprintf("%d mL", int(math.Round(v*1000)))
}
