package orderclient

import (
	"fmt"
	"strings"

	"github.com/limloop/limloop/internal/models"
)

var dayAbbreviations = map[string]string{
	"Monday":    "T2",
	"Tuesday":   "T3",
	"Wednesday": "T4",
	"Thursday":  "T5",
	"Friday":    "T6",
	"Saturday":  "T7",
	"Sunday":    "CN",
}

// FormatWorkingTimes renders center hours the way the confirmation screen
// shows them, one line per range with Vietnamese day abbreviations.
// A day field may be a single day or a "Monday-Friday" span.
func FormatWorkingTimes(times []models.WorkingTime) string {
	lines := make([]string, 0, len(times))
	for _, wt := range times {
		days := strings.Split(wt.Day, "-")
		for i, d := range days {
			if abbr, ok := dayAbbreviations[d]; ok {
				days[i] = abbr
			}
		}
		lines = append(lines, fmt.Sprintf("%s: %s - %s", strings.Join(days, " - "), wt.StartTime, wt.EndTime))
	}
	return strings.Join(lines, "\n")
}
