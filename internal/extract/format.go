package extract

import (
	"strings"

	"github.com/ticketer-app/ticketer/internal/pdf"
)

// Format identifies which of the two known invoice layouts a document uses.
type Format int

const (
	// FormatNew is the current layout with an ΕΠΩΝΥΜΙΑ customer block.
	FormatNew Format = iota
	// FormatOld is the legacy layout with a "Στοιχεία Πελάτη" section.
	FormatOld
)

// customerDetailsAnchor marks the legacy customer-details section. Its
// presence anywhere in the document is what distinguishes the two layouts.
const customerDetailsAnchor = "Στοιχεία Πελάτη"

// String returns a readable name for the format.
func (f Format) String() string {
	if f == FormatOld {
		return "old"
	}
	return "new"
}

// DetectFormat decides between the two known invoice layouts. The decision
// only selects the name/phone strategy; item and scalar extraction are
// layout-agnostic.
func DetectFormat(doc *pdf.Document) Format {
	for _, ln := range doc.Lines {
		if strings.Contains(ln.Text, customerDetailsAnchor) {
			return FormatOld
		}
	}
	return FormatNew
}
