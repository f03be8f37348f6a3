package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ticketer-app/ticketer/internal/pdf"
)

var (
	// Invoice number, legacy layout: labeled inline.
	invoiceOldRe = regexp.MustCompile(`Αρ\. παραστατικού:\s*([0-9]+ΑΠΔΑ[0-9]+)`)
	// Invoice number, current layout: a standalone line.
	invoiceNewRe = regexp.MustCompile(`^\d{6}ΑΠΔΑ\d{6}$`)

	serialRe = regexp.MustCompile(`\d{14,20}`)

	dateRe = regexp.MustCompile(`^\d{1,2}[/-]\d{1,2}[/-]\d{2,4}$`)

	// The three CST shapes: P2, ten digits, CΒ + eight digits (Greek or
	// Latin second letter, both occur in the wild).
	cstShortRe = regexp.MustCompile(`^[A-Za-zΑ-Ωα-ω]{1,2}\d$`)
	cst10Re    = regexp.MustCompile(`^\d{10}$`)
	cstCBRe    = regexp.MustCompile(`^C[ΒB]\d{8}$`)
)

// ExtractInvoice returns the invoice number, trying the labeled legacy
// pattern first and falling back to a standalone token line.
func ExtractInvoice(doc *pdf.Document) string {
	if m := invoiceOldRe.FindStringSubmatch(doc.Raw); m != nil {
		return m[1]
	}
	for _, ln := range doc.Lines {
		if invoiceNewRe.MatchString(ln.Text) {
			return ln.Text
		}
	}
	return ""
}

// IsValidCST reports whether a token is shaped like a CST/store code.
func IsValidCST(candidate string) bool {
	candidate = strings.TrimSpace(candidate)

	if candidate == "" || utf8.RuneCountInString(candidate) > 12 {
		return false
	}
	// Dates and date-like ranges are the main false positives.
	if strings.ContainsAny(candidate, "/-") {
		return false
	}
	if dateRe.MatchString(candidate) {
		return false
	}

	return cstShortRe.MatchString(candidate) ||
		cst10Re.MatchString(candidate) ||
		cstCBRe.MatchString(candidate)
}

// ExtractCST scans tokens line by line for the first valid CST code and
// falls back to a whole-document token scan.
func ExtractCST(doc *pdf.Document) string {
	for _, ln := range doc.Lines {
		for _, token := range strings.Fields(ln.Text) {
			if IsValidCST(token) {
				return token
			}
		}
	}

	for _, token := range strings.Fields(doc.Raw) {
		if IsValidCST(token) {
			return token
		}
	}

	return ""
}

// ExtractSerial returns the first 14-20 digit run on a line carrying the
// serial label. Multiple serialized items are not disambiguated; the first
// one wins.
func ExtractSerial(doc *pdf.Document) string {
	for _, ln := range doc.Lines {
		if !strings.Contains(strings.ToLower(ln.Text), "σειριακός") {
			continue
		}
		compact := strings.ReplaceAll(ln.Text, " ", "")
		if m := serialRe.FindString(compact); m != "" {
			return m
		}
	}
	return ""
}
