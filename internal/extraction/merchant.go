package extraction

import "strings"

// Merchant picks the merchant name from recognized text. Receipts
// conventionally print the store name on the first line, so the first
// line with non-whitespace content wins, trimmed. The second return is
// false for empty or all-whitespace input.
func Merchant(text string) (string, bool) {
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed, true
		}
	}
	return "", false
}
