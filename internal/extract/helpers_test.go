package extract

import (
	"strings"

	"github.com/ticketer-app/ticketer/internal/pdf"
)

// testDoc builds a Document the way the layout reader would: stripped,
// blank lines dropped, positions assigned in order.
func testDoc(lines ...string) *pdf.Document {
	var ls []pdf.Line
	for _, s := range lines {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		ls = append(ls, pdf.Line{Text: s, Pos: len(ls)})
	}

	parts := make([]string, len(ls))
	for i, ln := range ls {
		parts[i] = ln.Text
	}

	return &pdf.Document{Lines: ls, Raw: strings.Join(parts, "\n")}
}
