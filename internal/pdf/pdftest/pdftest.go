// Package pdftest builds small PDF documents for tests.
package pdftest

import (
	"bytes"
	"fmt"
	"strings"
)

const (
	fontSize   = 10
	lineHeight = 14
	left       = 50
	top        = 740
	linesPage  = 48
)

// Document renders lines of monospaced text, one per row, breaking pages every
// 48 lines. Runs of spaces are kept so callers can lay out columns.
func Document(lines ...string) []byte {
	var pages [][]string
	for len(lines) > linesPage {
		pages = append(pages, lines[:linesPage])
		lines = lines[linesPage:]
	}
	pages = append(pages, lines)

	// Objects: 1 catalog, 2 pages, 3 font, then a page and a content stream
	// per page.
	objects := []string{
		"", // catalog, filled once kids are known
		"", // pages
		"<< /Type /Font /Subtype /Type1 /BaseFont /Courier /FirstChar 32 /LastChar 126 /Widths [" +
			strings.TrimSpace(strings.Repeat("600 ", 95)) + "] >>",
	}
	var kids []string
	for _, page := range pages {
		pageID := len(objects) + 1
		contentID := pageID + 1
		kids = append(kids, fmt.Sprintf("%d 0 R", pageID))

		var content bytes.Buffer
		for i, line := range page {
			fmt.Fprintf(&content, "BT /F1 %d Tf %d %d Td (%s) Tj ET\n", fontSize, left, top-i*lineHeight, escape(line))
		}
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents %d 0 R "+
				"/Resources << /Font << /F1 3 0 R >> >> >>", contentID),
			fmt.Sprintf("<< /Length %d >>\nstream\n%sendstream", content.Len(), content.String()),
		)
	}
	objects[0] = "<< /Type /Catalog /Pages 2 0 R >>"
	objects[1] = fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages))

	var out bytes.Buffer
	out.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = out.Len()
		fmt.Fprintf(&out, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := out.Len()
	fmt.Fprintf(&out, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&out, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&out, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return out.Bytes()
}

func escape(s string) string {
	return strings.NewReplacer(`\`, `\\`, "(", `\(`, ")", `\)`).Replace(s)
}

// Complaint returns a minimal acknowledgement report for ack in the
// portal's two-column layout.
func Complaint(ack string) []byte {
	return Document(
		"Acknowledgement Number:    "+ack,
		"Category of complaint:     Online Financial Fraud",
		"Incident Date/Time:        15/05/2025 10:30 AM",
		"Complaint Date:            16/05/2025",
		"Name:                      Rajesh Kumar",
		"Mobile:                    9876543210",
		"Total Fraudulent Amount:   250,000.00",
	)
}
