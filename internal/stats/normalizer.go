package stats

import (
	"math"

	"github.com/limloop/limloop/internal/models"
)

// Row is a display-ready statistics entry with an integer percentage.
type Row struct {
	Category   string  `json:"category"`
	TotalKg    float64 `json:"totalKg"`
	Percentage int     `json:"percentage"`
}

// Normalize rounds every percentage to the nearest integer independently and
// recomputes the last row as 100 minus the sum of the others, so the displayed
// shares always add up to exactly 100. Row order is preserved, totals are
// passed through untouched, out-of-range input percentages are not clamped.
func Normalize(in []models.RecycleStat) []Row {
	out := make([]Row, 0, len(in))
	if len(in) == 0 {
		return out
	}
	roundedSum := 0
	for i, s := range in {
		p := int(math.Round(s.Percentage))
		if i == len(in)-1 {
			p = 100 - roundedSum
		} else {
			roundedSum += p
		}
		out = append(out, Row{Category: s.Category, TotalKg: s.TotalKg, Percentage: p})
	}
	return out
}
