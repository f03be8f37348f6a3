package extract

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ticketer-app/ticketer/internal/pdf"
)

// tableAnchor is the item-code column header that marks the start of the
// product table in both layouts.
const tableAnchor = "Κωδικός Είδους"

var (
	skuRe        = regexp.MustCompile(`^\d{6,8}$`)
	anyLetterRe  = regexp.MustCompile(`[A-Za-zΑ-Ωα-ω]`)
	moneyTokenRe = regexp.MustCompile(`^` + moneyRe.String() + `$`)
)

// Matcher recovers {SKU, description, price} triples from the interleaved
// text layer of the item table.
type Matcher struct {
	keywords *Keywords
}

// NewMatcher creates an item/price matcher using the given keyword tables.
func NewMatcher(keywords *Keywords) *Matcher {
	return &Matcher{keywords: keywords}
}

type skuRecord struct {
	sku  string
	pos  int
	desc string
}

type descCandidate struct {
	pos  int
	text string
}

// Match reconstructs the invoice's product line items. The phone number
// found earlier is excluded from SKU discovery since 8-digit phones collide
// with the SKU shape. Items are returned in SKU discovery order.
func (m *Matcher) Match(doc *pdf.Document, phoneToExclude string) []Item {
	tableStart := -1
	for _, ln := range doc.Lines {
		if strings.Contains(ln.Text, tableAnchor) {
			tableStart = ln.Pos
			break
		}
	}
	if tableStart < 0 {
		return nil
	}

	skus := m.discoverSKUs(doc, tableStart, phoneToExclude)
	if len(skus) == 0 {
		return nil
	}

	m.associateDescriptions(doc, tableStart, skus)

	allPrices := CollectPrices(doc)
	prices := FilterPrices(allPrices)
	if len(prices) < len(skus) {
		prices = FallbackPrices(allPrices, len(skus))
	}

	return m.assignPrices(skus, prices)
}

// discoverSKUs scans lines after the table start for standalone 6-8 digit
// codes, or lines whose first token is such a code followed by a recognized
// product description. Duplicate codes keep their first occurrence.
func (m *Matcher) discoverSKUs(doc *pdf.Document, tableStart int, phoneToExclude string) []*skuRecord {
	var skus []*skuRecord
	seen := make(map[string]bool)

	for i := tableStart + 1; i < len(doc.Lines); i++ {
		line := doc.Lines[i].Text

		if skuRe.MatchString(line) {
			if line == phoneToExclude || seen[line] {
				continue
			}
			seen[line] = true
			skus = append(skus, &skuRecord{sku: line, pos: i})
			continue
		}

		first, rest := splitFirstToken(line)
		if rest == "" || !skuRe.MatchString(first) || first == phoneToExclude || seen[first] {
			continue
		}
		seen[first] = true
		rec := &skuRecord{sku: first, pos: i}
		if containsAnyFold(rest, m.keywords.ProductKeywords) {
			rec.desc = rest
		}
		skus = append(skus, rec)
	}

	return skus
}

// associateDescriptions pairs each SKU lacking an inline description with
// the nearest unclaimed candidate line. Greedy, no reassignment: once a
// candidate is claimed it stays claimed, and on equal distance the earlier
// candidate wins.
func (m *Matcher) associateDescriptions(doc *pdf.Document, tableStart int, skus []*skuRecord) {
	maxPos := tableStart
	known := make(map[string]bool, len(skus))
	for _, r := range skus {
		if r.pos > maxPos {
			maxPos = r.pos
		}
		known[r.sku] = true
	}

	end := maxPos + 15
	if end > len(doc.Lines) {
		end = len(doc.Lines)
	}

	var candidates []descCandidate
	for i := tableStart + 1; i < end; i++ {
		candidate := doc.Lines[i].Text

		if containsAny(candidate, m.keywords.EndOfTableMarkers) {
			break
		}
		if skuRe.MatchString(candidate) {
			continue
		}
		if first, _ := splitFirstToken(candidate); skuRe.MatchString(first) && known[first] {
			continue
		}
		if equalsAny(candidate, m.keywords.TableHeaderLabels) {
			continue
		}
		if strings.Contains(strings.ToLower(candidate), "σειριακός") {
			continue
		}
		if isDigitsOnly(candidate) || moneyTokenRe.MatchString(candidate) {
			continue
		}
		if utf8.RuneCountInString(candidate) <= 3 || !anyLetterRe.MatchString(candidate) {
			continue
		}
		if containsAnyFold(candidate, m.keywords.ProductKeywords) {
			candidates = append(candidates, descCandidate{pos: i, text: candidate})
		}
	}

	claimed := make(map[string]bool)
	for _, r := range skus {
		if r.desc != "" {
			claimed[r.desc] = true
		}
	}

	for _, r := range skus {
		if r.desc != "" {
			continue
		}
		best := -1
		bestDist := int(^uint(0) >> 1)
		for ci, c := range candidates {
			if claimed[c.text] {
				continue
			}
			dist := c.pos - r.pos
			if dist < 0 {
				dist = -dist
			}
			if dist < bestDist {
				bestDist = dist
				best = ci
			}
		}
		if best >= 0 {
			r.desc = candidates[best].text
			claimed[r.desc] = true
		}
	}
}

// assignPrices pairs the surviving price candidates with the discovered
// items. When the counts line up, items are ranked by a keyword value tier
// so that phones get the large prices and accessories the small ones;
// otherwise prices are handed out in discovery order and overflow items
// keep an absent price.
func (m *Matcher) assignPrices(skus []*skuRecord, prices []float64) []Item {
	items := make([]Item, len(skus))
	for i, r := range skus {
		items[i] = Item{SKU: r.sku, Description: r.desc}
	}

	if len(items) == len(prices) {
		order := make([]int, len(items))
		for i := range order {
			order[i] = i
		}
		scores := make([]int, len(items))
		for i, it := range items {
			scores[i] = m.valueScore(it.Description)
		}
		// Stable: equal tiers keep discovery order.
		sort.SliceStable(order, func(a, b int) bool {
			return scores[order[a]] > scores[order[b]]
		})
		for rank, idx := range order {
			p := prices[rank]
			items[idx].Price = &p
		}
		return items
	}

	for i := range items {
		if i < len(prices) {
			p := prices[i]
			items[i].Price = &p
		}
	}
	return items
}

// valueScore estimates an item's relative value tier from its description.
func (m *Matcher) valueScore(desc string) int {
	upper := strings.ToUpper(desc)

	if containsAnyFold(upper, m.keywords.HighValueKeywords) {
		return 1000
	}
	if strings.Contains(upper, "SAMSUNG") && strings.Contains(upper, "PHONE") {
		return 1000
	}
	if strings.Contains(upper, "SPEAKER") && strings.Contains(upper, "PORTABLE") {
		return 100
	}
	if containsAnyFold(upper, m.keywords.MidValueKeywords) {
		return 100
	}
	if containsAnyFold(upper, m.keywords.AccessoryKeywords) {
		return 10
	}
	return 50
}

// splitFirstToken splits a line into its first whitespace-separated token
// and the trimmed remainder.
func splitFirstToken(line string) (first, rest string) {
	line = strings.TrimSpace(line)
	idx := strings.IndexFunc(line, unicode.IsSpace)
	if idx < 0 {
		return line, ""
	}
	return line[:idx], strings.TrimSpace(line[idx:])
}

// isDigitsOnly reports whether the line is purely numeric once separators
// and spaces are removed.
func isDigitsOnly(s string) bool {
	stripped := strings.NewReplacer(".", "", ",", "", " ", "").Replace(s)
	if stripped == "" {
		return false
	}
	for _, r := range stripped {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
