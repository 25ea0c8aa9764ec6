package style

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

var (
	PositiveColor = color.New(color.FgGreen)
	NegativeColor = color.New(color.FgRed)
)

// SignColor picks green for a positive value and red otherwise.
func SignColor(v float64) *color.Color {
	if v > 0 {
		return PositiveColor
	}
	return NegativeColor
}

// PercentString formats a ratio as a signed percentage, 0.0123 => "+1.23%".
func PercentString(v float64, prec int) string {
	s := fmt.Sprintf("%.*f%%", prec, v*100)
	if v > 0 && !strings.HasPrefix(s, "+") {
		s = "+" + s
	}
	return s
}
