package pdf

// Line is a single stripped, non-blank text line together with its position
// index in document order.
type Line struct {
	Text string `json:"text"`
	Pos  int    `json:"pos"`
}

// Document holds the ordered text lines of a PDF's embedded text layer plus
// their newline-joined concatenation. A Document is rebuilt from scratch on
// every read and never mutated afterwards.
type Document struct {
	Lines []Line `json:"lines"`
	Raw   string `json:"raw"`
}

// Empty reports whether the document contains no extractable text.
func (d *Document) Empty() bool {
	return d == nil || len(d.Lines) == 0
}

// FileInfo represents information about a stored PDF file
type FileInfo struct {
	Path         string `json:"path"`
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	ModifiedTime string `json:"modified_time"`
}
