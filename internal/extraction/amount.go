package extraction

import (
	"regexp"
	"strconv"
	"strings"
)

// totalPatterns are tried in order. Receipts print the total with the
// keyword either before or after the amount, so both orders are matched.
var totalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:TOTAL\s*TTC|MONTANT\s*TTC|TOTAL\s*A\s*PAYER|NET\s*A\s*PAYER|TOTAL)\s*:?\s*([0-9]+(?:[.,][0-9]{1,2})?)`),
	regexp.MustCompile(`(?i)([0-9]+(?:[.,][0-9]{1,2})?)\s*(?:€|EUR)?\s*(?:TOTAL\s*TTC|MONTANT\s*TTC|TOTAL\s*A\s*PAYER|NET\s*A\s*PAYER|TOTAL)`),
}

// plainAmount matches bare decimal tokens with exactly two decimal digits
var plainAmount = regexp.MustCompile(`\b[0-9]+\.[0-9]{2}\b`)

var nonNumeric = regexp.MustCompile(`[^0-9.,]`)

// Amount scans recognized text for the receipt total. Keyword-anchored
// candidates win over bare decimal tokens; among candidates the maximum
// wins, which favors the grand total over subtotals and line items on
// most layouts. A single expensive line item can still beat a discounted
// total, a known limitation of the heuristic. The second return is false
// when no candidate parses.
func Amount(text string) (float64, bool) {
	best := 0.0
	found := false
	for _, pattern := range totalPatterns {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			if value, ok := parseAmountToken(match[1]); ok && value > best {
				best = value
				found = true
			}
		}
	}
	if found && best > 0 {
		return best, true
	}

	// No keyword anchored a positive amount: take the largest plain
	// decimal token anywhere in the text.
	for _, token := range plainAmount.FindAllString(text, -1) {
		if value, ok := parseAmountToken(token); ok && value > best {
			best = value
			found = true
		}
	}
	if !found {
		return 0, false
	}
	return best, true
}

// parseAmountToken strips stray characters, normalizes the French comma
// separator and parses the remainder. Malformed tokens are skipped, never
// surfaced as errors.
func parseAmountToken(token string) (float64, bool) {
	cleaned := nonNumeric.ReplaceAllString(token, "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || value < 0 {
		return 0, false
	}
	return value, true
}
