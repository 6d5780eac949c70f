package pdf

import "strings"

// Table is a grid of cell strings taken from one page.
type Table = [][]string

// Page is the decoded content of one page.
type Page struct {
	Number int     `json:"number"`
	Text   string  `json:"text"`
	Layout string  `json:"layout"`
	Tables []Table `json:"tables,omitempty"`
}

// Document is the decoded content of a PDF. A document that failed to decode
// has no pages.
type Document struct {
	Pages []Page `json:"pages"`
}

// PlainText concatenates the plain text of every page.
func (d *Document) PlainText() string {
	return d.join(func(p Page) string { return p.Text })
}

// LayoutText concatenates the layout-preserving text of every page.
func (d *Document) LayoutText() string {
	return d.join(func(p Page) string { return p.Layout })
}

// AllTables returns the tables of every page in page order.
func (d *Document) AllTables() [][][]string {
	if d == nil {
		return nil
	}
	var tables [][][]string
	for _, p := range d.Pages {
		tables = append(tables, p.Tables...)
	}
	return tables
}

// PageCount returns the number of decoded pages.
func (d *Document) PageCount() int {
	if d == nil {
		return 0
	}
	return len(d.Pages)
}

func (d *Document) join(text func(Page) string) string {
	if d == nil {
		return ""
	}
	var b strings.Builder
	for _, p := range d.Pages {
		if t := text(p); t != "" {
			b.WriteString(t)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// PDFValidateFileRequest represents a request to validate a PDF file
type PDFValidateFileRequest struct {
	Path string `json:"path"`
}

// PDFValidateFileResult represents the result of a PDF validation operation
type PDFValidateFileResult struct {
	Valid   bool   `json:"valid"`
	Path    string `json:"path"`
	Pages   int    `json:"pages,omitempty"`
	Size    int64  `json:"size,omitempty"`
	Message string `json:"message,omitempty"`
}
