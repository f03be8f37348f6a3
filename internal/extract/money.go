package extract

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ticketer-app/ticketer/internal/pdf"
)

// moneyRe matches localized monetary tokens with either separator
// convention: "1.234,56", "1,234.56", "15,00".
var moneyRe = regexp.MustCompile(`-?\d{1,3}(?:[.,]\d{3})*(?:[.,]\d{2})`)

const (
	// Plausible single-item retail price range. Anything outside is page
	// noise: quantities, VAT rates, grand totals of bulk orders.
	minItemPrice = 10
	maxItemPrice = 10000

	vatRate = 0.19

	// Candidate cap for the combinatorial subtotal search. Beyond this the
	// multi-way search is skipped to keep malformed documents tractable;
	// pairwise rejection still runs.
	maxSumCandidates = 12
)

// ParseMoney converts a monetary token to a numeric value. The last
// separator is taken as the decimal mark, everything before it as grouping.
func ParseMoney(token string) (float64, bool) {
	s := strings.ReplaceAll(strings.TrimSpace(token), " ", "")
	last := strings.LastIndexAny(s, ".,")
	if last >= 0 {
		intPart := strings.NewReplacer(".", "", ",", "").Replace(s[:last])
		s = intPart + "." + s[last+1:]
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, false
	}
	return d.InexactFloat64(), true
}

// CollectPrices gathers every plausible unit-price value in the document.
// The text layer does not keep prices near their items, so the whole
// document is scanned. Values are deduplicated and sorted descending.
func CollectPrices(doc *pdf.Document) []float64 {
	seen := make(map[float64]bool)
	var prices []float64

	for _, ln := range doc.Lines {
		for _, token := range moneyRe.FindAllString(ln.Text, -1) {
			v, ok := ParseMoney(token)
			if !ok || v < minItemPrice || v > maxItemPrice {
				continue
			}
			if seen[v] {
				continue
			}
			seen[v] = true
			prices = append(prices, v)
		}
	}

	sort.Sort(sort.Reverse(sort.Float64Slice(prices)))
	return prices
}

// isVATAmount reports whether price is within 0.5 of 19% of another
// candidate, i.e. a VAT line rather than a unit price.
func isVATAmount(price float64, candidates []float64) bool {
	for _, base := range candidates {
		if base == price {
			continue
		}
		if math.Abs(price-base*vatRate) < 0.5 {
			return true
		}
	}
	return false
}

// isSumOfOthers reports whether price equals (within 1.0) the sum of two
// other candidates, or of any 3..9 others when at least four candidates
// exist. Such values are subtotals or totals, not unit prices.
func isSumOfOthers(price float64, candidates []float64) bool {
	others := make([]float64, 0, len(candidates))
	for _, c := range candidates {
		if c != price {
			others = append(others, c)
		}
	}

	for i := 0; i < len(others); i++ {
		for j := i + 1; j < len(others); j++ {
			if math.Abs(price-(others[i]+others[j])) < 1 {
				return true
			}
		}
	}

	if len(candidates) < 4 || len(candidates) > maxSumCandidates {
		return false
	}

	upper := len(candidates)
	if upper > 10 {
		upper = 10
	}
	for k := 3; k < upper && k <= len(others); k++ {
		if sumCombinationExists(others, k, price) {
			return true
		}
	}
	return false
}

// sumCombinationExists checks whether any k-element combination of values
// sums to target within 1.0.
func sumCombinationExists(values []float64, k int, target float64) bool {
	var walk func(start, remaining int, sum float64) bool
	walk = func(start, remaining int, sum float64) bool {
		if remaining == 0 {
			return math.Abs(target-sum) < 1
		}
		for i := start; i <= len(values)-remaining; i++ {
			if walk(i+1, remaining-1, sum+values[i]) {
				return true
			}
		}
		return false
	}
	return walk(0, k, 0)
}

// FilterPrices drops VAT amounts and subtotal/total sums from the candidate
// list, preserving order.
func FilterPrices(candidates []float64) []float64 {
	var kept []float64
	for _, p := range candidates {
		if isVATAmount(p, candidates) || isSumOfOthers(p, candidates) {
			continue
		}
		kept = append(kept, p)
	}
	return kept
}

// FallbackPrices recovers unit prices when filtering over-rejected: genuine
// prices are usually among the smallest plausible values, totals among the
// largest. Returns at most skuCount values sorted descending.
func FallbackPrices(candidates []float64, skuCount int) []float64 {
	asc := append([]float64(nil), candidates...)
	sort.Float64s(asc)

	limit := skuCount * 2
	if limit > len(asc) {
		limit = len(asc)
	}

	var kept []float64
	for _, v := range asc[:limit] {
		if v >= minItemPrice {
			kept = append(kept, v)
		}
	}

	sort.Sort(sort.Reverse(sort.Float64Slice(kept)))
	if len(kept) > skuCount {
		kept = kept[:skuCount]
	}
	return kept
}
