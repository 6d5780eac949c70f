package extract

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

const amountWindow = 1000

var (
	amountTokenRe = regexp.MustCompile(`(?:Rs\.?|INR|₹)?\s*(\d{1,3}(?:,\d{2,3})+(?:\.\d{1,2})?|\d+(?:\.\d{1,2})?)`)
	hasDigit      = regexp.MustCompile(`\d`)

	amountFloor   = decimal.NewFromInt(100)
	amountCeiling = decimal.NewFromInt(1_000_000_000)
)

// FindAmount returns the total loss amount. Labelled amounts win; otherwise
// the largest plausible currency value in the window after a total marker.
func FindAmount(corpus string) string {
	return findAmount(corpus, false)
}

// FindAmountPermissive is FindAmount scanning the whole corpus instead of a
// window once a total marker is present.
func FindAmountPermissive(corpus string) string {
	return findAmount(corpus, true)
}

func findAmount(corpus string, permissive bool) string {
	if corpus == "" {
		return ""
	}
	for _, p := range AmountPatterns {
		if m := compile(p).FindStringSubmatch(corpus); m != nil && hasDigit.MatchString(m[1]) {
			return m[1]
		}
	}

	start := -1
	for _, marker := range AmountMarkers {
		if start = strings.Index(corpus, marker); start >= 0 {
			break
		}
	}
	if start < 0 {
		return ""
	}
	region := corpus
	if !permissive {
		region = corpus[start:min(start+amountWindow, len(corpus))]
	}
	return largestAmount(region)
}

// largestAmount returns the text of the largest plausible amount, the first
// one on ties.
func largestAmount(region string) string {
	var (
		best     string
		bestVal  decimal.Decimal
		haveBest bool
	)
	for _, m := range amountTokenRe.FindAllStringSubmatch(region, -1) {
		v, ok := parseAmount(m[1])
		if !ok {
			continue
		}
		if !haveBest || v.GreaterThan(bestVal) {
			best, bestVal, haveBest = m[1], v, true
		}
	}
	return best
}

func parseAmount(token string) (decimal.Decimal, bool) {
	v, err := decimal.NewFromString(strings.ReplaceAll(token, ",", ""))
	if err != nil {
		return decimal.Decimal{}, false
	}
	if !v.GreaterThan(amountFloor) || !v.LessThan(amountCeiling) {
		return decimal.Decimal{}, false
	}
	for _, year := range AmountExcludedYears {
		if v.Equal(decimal.NewFromInt(year)) {
			return decimal.Decimal{}, false
		}
	}
	return v, true
}
