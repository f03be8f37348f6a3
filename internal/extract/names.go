package extract

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ticketer-app/ticketer/internal/pdf"
)

// Letter ranges for Latin plus Greek including accented vowels.
const nameLetters = `A-Za-zΑ-Ωα-ωΪΫϊϋΐΰάέήίόύώΆΈΉΊΌΎΏ`

var (
	// A full customer name: two or more tokens of letters, dots and hyphens.
	nameLineRe = regexp.MustCompile(`^[` + nameLetters + `.\-]+(?:\s+[` + nameLetters + `.\-]+)+$`)

	// A candidate name fragment in the new layout: letters and spacing only.
	letterLineRe = regexp.MustCompile(`^[` + nameLetters + `.\-\s]+$`)

	// Cyprus mobile/landline shape; digit boundaries are checked separately
	// because RE2 has no lookarounds.
	phone8Re = regexp.MustCompile(`[29]\d{7}`)

	// International fallback, prefix retained.
	intlPhoneRe = regexp.MustCompile(`\+\d{10,15}`)
)

const (
	oldPhoneLabel = "Τηλέφωνο:"
	newNameLabel  = "ΕΠΩΝΥΜΙΑ:"
)

// findPhone8 returns the first 8-digit Cyprus phone token in s, ignoring
// spaces and rejecting matches embedded in longer digit runs.
func findPhone8(s string) string {
	compact := strings.ReplaceAll(s, " ", "")
	for _, loc := range phone8Re.FindAllStringIndex(compact, -1) {
		if loc[0] > 0 && isASCIIDigit(compact[loc[0]-1]) {
			continue
		}
		if loc[1] < len(compact) && isASCIIDigit(compact[loc[1]]) {
			continue
		}
		return compact[loc[0]:loc[1]]
	}
	return ""
}

func isASCIIDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// looksLikeName reports whether a line plausibly holds a full customer name.
// The denylist is consulted before the shape check, so a denylisted phrase is
// rejected even when it is shaped like a name.
func (e *Extractor) looksLikeName(s string) bool {
	if strings.Contains(s, ":") || strings.Contains(s, "Στοιχεία") {
		return false
	}
	if strings.ContainsFunc(s, unicode.IsDigit) {
		return false
	}
	if containsAny(s, e.keywords.NameDenylist) {
		return false
	}
	if !nameLineRe.MatchString(s) {
		return false
	}
	if utf8.RuneCountInString(s) > 60 {
		return false
	}
	return len(strings.Fields(s)) >= 2
}

// splitName applies the last-token rule: the final token is the given name,
// everything before it joined is the surname.
func splitName(line string) (name, surname string) {
	parts := strings.Fields(line)
	switch {
	case len(parts) >= 2:
		return parts[len(parts)-1], strings.Join(parts[:len(parts)-1], " ")
	case len(parts) == 1:
		return parts[0], ""
	default:
		return "", ""
	}
}

// extractNamePhoneOld handles the legacy layout: the name sits within a few
// lines below the customer-details anchor, the phone behind a label nearby.
func (e *Extractor) extractNamePhoneOld(doc *pdf.Document) (name, surname, phone string) {
	anchor := -1
	for _, ln := range doc.Lines {
		if strings.Contains(ln.Text, customerDetailsAnchor) {
			anchor = ln.Pos
			break
		}
	}
	if anchor < 0 {
		return "", "", ""
	}

	for i := anchor + 1; i < len(doc.Lines) && i < anchor+12; i++ {
		if e.looksLikeName(doc.Lines[i].Text) {
			name, surname = splitName(doc.Lines[i].Text)
			break
		}
	}

	for i := anchor; i < len(doc.Lines) && i < anchor+15; i++ {
		if !strings.Contains(doc.Lines[i].Text, oldPhoneLabel) {
			continue
		}
		if p := findPhone8(doc.Lines[i].Text); p != "" {
			phone = p
			break
		}
	}

	return name, surname, phone
}

// extractNamePhoneNew handles the current layout. The customer name follows
// the ΕΠΩΝΥΜΙΑ label split across up to three lines; the phone can sit
// anywhere in the document.
func (e *Extractor) extractNamePhoneNew(doc *pdf.Document) (name, surname, phone string) {
	for i, ln := range doc.Lines {
		if !strings.Contains(ln.Text, newNameLabel) {
			continue
		}

		var fragments []string
		for j := i + 1; j < len(doc.Lines) && j < i+8; j++ {
			candidate := doc.Lines[j].Text
			if containsAny(candidate, e.keywords.NewFormatStopLabels) {
				break
			}
			if containsAny(candidate, e.keywords.NewFormatSkipPhrases) {
				continue
			}
			if letterLineRe.MatchString(candidate) {
				fragments = append(fragments, candidate)
				if len(fragments) >= 3 {
					break
				}
			}
		}

		switch {
		case len(fragments) >= 2:
			// Last fragment is the given name, the rest the surname.
			name = fragments[len(fragments)-1]
			surname = strings.Join(fragments[:len(fragments)-1], " ")
		case len(fragments) == 1:
			name, surname = splitName(fragments[0])
		}
		break
	}

	for _, ln := range doc.Lines {
		if p := findPhone8(ln.Text); p != "" {
			phone = p
			break
		}
	}
	if phone == "" {
		for _, ln := range doc.Lines {
			compact := strings.ReplaceAll(ln.Text, " ", "")
			if m := intlPhoneRe.FindString(compact); m != "" {
				phone = m
				break
			}
		}
	}

	return name, surname, phone
}
