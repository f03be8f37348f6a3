package extract

import (
	"github.com/ticketer-app/ticketer/internal/pdf"
)

// Extractor turns one invoice PDF into a normalized FieldSet. It is a pure
// function of its input file: no shared mutable state, safe for concurrent
// use from multiple goroutines.
type Extractor struct {
	reader   *pdf.Reader
	matcher  *Matcher
	keywords *Keywords
}

// NewExtractor creates an extractor. A nil keywords argument selects the
// built-in tables for the two known layouts.
func NewExtractor(maxFileSize int64, keywords *Keywords) *Extractor {
	if keywords == nil {
		keywords = DefaultKeywords()
	}
	return &Extractor{
		reader:   pdf.NewReader(maxFileSize),
		matcher:  NewMatcher(keywords),
		keywords: keywords,
	}
}

// Extract runs the full pipeline on the PDF at path. A missing or unreadable
// file degrades to an empty document so that every field resolves to its
// empty default; tickets must still be creatable with placeholders.
func (e *Extractor) Extract(path string) FieldSet {
	doc, err := e.reader.ReadDocument(path)
	if err != nil {
		doc = &pdf.Document{}
	}
	return e.ExtractDocument(doc)
}

// ExtractDocument composes the individual extractors over an already-read
// document and returns the complete field mapping. No extractor failure
// aborts the extraction; unmatched fields stay empty.
func (e *Extractor) ExtractDocument(doc *pdf.Document) FieldSet {
	fields := FieldSet{
		Invoice: ExtractInvoice(doc),
		CSTCode: ExtractCST(doc),
	}

	var name, surname, phone string
	if DetectFormat(doc) == FormatOld {
		name, surname, phone = e.extractNamePhoneOld(doc)
	} else {
		name, surname, phone = e.extractNamePhoneNew(doc)
	}

	// Global fallbacks: re-scan the whole document when the format-specific
	// strategy came up empty.
	if name == "" {
		for _, ln := range doc.Lines {
			if e.looksLikeName(ln.Text) {
				name, surname = splitName(ln.Text)
				break
			}
		}
	}
	if phone == "" {
		for _, ln := range doc.Lines {
			if p := findPhone8(ln.Text); p != "" {
				phone = p
				break
			}
		}
	}

	fields.Name = name
	fields.Surname = surname
	fields.Phone = phone

	items := e.matcher.Match(doc, phone)
	if best := canonicalItem(items); best != nil {
		fields.Material = best.SKU
		fields.Product = best.Description
	}

	fields.Serial = ExtractSerial(doc)

	return fields
}

// canonicalItem picks the highest-priced item; an absent price ranks lowest
// and ties keep the first-discovered item.
func canonicalItem(items []Item) *Item {
	if len(items) == 0 {
		return nil
	}
	best := 0
	for i := 1; i < len(items); i++ {
		if itemPrice(items[i]) > itemPrice(items[best]) {
			best = i
		}
	}
	return &items[best]
}

func itemPrice(it Item) float64 {
	if it.Price == nil {
		return 0
	}
	return *it.Price
}
