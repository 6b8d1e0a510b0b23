package extraction

import (
	"regexp"
	"time"
)

// datePattern matches the two date shapes seen on receipts: day-first
// with slash or hyphen, or year-first. A shape match that parses under
// no layout (year-first with slashes, impossible calendar dates) counts
// as no date found.
var datePattern = regexp.MustCompile(`\b(\d{2}[-/]\d{2}[-/]\d{4}|\d{4}[-/]\d{2}[-/]\d{2})\b`)

// dateLayouts are tried in order, first successful parse wins. Day-first
// is assumed when day and month are both 12 or less; downstream data
// depends on that reading.
var dateLayouts = []string{"02/01/2006", "02-01-2006", "2006-01-02"}

// Date finds the first date-shaped substring in recognized text and
// normalizes it to YYYY-MM-DD. The second return is false when no shape
// is present, or the matched shape does not parse as a calendar date.
func Date(text string) (string, bool) {
	match := datePattern.FindString(text)
	if match == "" {
		return "", false
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, match); err == nil {
			return parsed.Format("2006-01-02"), true
		}
	}
	return "", false
}
