package pdf

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"golang.org/x/text/unicode/norm"
)

const (
	// Glyphs whose baselines differ by at most this many points share a line.
	lineTolerance   = 2.0
	defaultFontSize = 10.0
	// Horizontal gaps are measured in multiples of the font size.
	spaceGapFactor = 0.18
	cellGapFactor  = 1.2
	// Average glyph width as a fraction of the font size, used when a glyph
	// carries no width.
	glyphWidthFactor = 0.5

	minTableCells = 3
	minTableRows  = 2
)

type textLine struct {
	y      float64
	glyphs []pdf.Text
}

type renderedLine struct {
	layout string
	cells  []string
}

// buildPage turns the positioned glyphs of a page into plain text, layout
// text and tables.
func buildPage(number int, texts []pdf.Text) Page {
	lines := groupLines(texts)
	page := Page{Number: number}
	if len(lines) == 0 {
		return page
	}

	originX, charWidth := metrics(lines)
	rendered := make([]renderedLine, len(lines))
	var plain, layout strings.Builder
	for i, l := range lines {
		r := renderLine(l, originX, charWidth)
		rendered[i] = r
		layout.WriteString(strings.TrimRight(r.layout, " "))
		layout.WriteByte('\n')
		if p := strings.Join(strings.Fields(r.layout), " "); p != "" {
			plain.WriteString(p)
			plain.WriteByte('\n')
		}
	}

	page.Text = strings.TrimRight(plain.String(), "\n")
	page.Layout = strings.TrimRight(layout.String(), "\n")
	page.Tables = detectTables(rendered)
	return page
}

// groupLines buckets glyphs into lines ordered top to bottom, each sorted
// left to right. Whitespace glyphs are dropped; spacing is rebuilt from gaps.
func groupLines(texts []pdf.Text) []textLine {
	glyphs := make([]pdf.Text, 0, len(texts))
	for _, t := range texts {
		t.S = norm.NFKC.String(strings.ToValidUTF8(t.S, ""))
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		glyphs = append(glyphs, t)
	}
	sort.SliceStable(glyphs, func(i, j int) bool { return glyphs[i].Y > glyphs[j].Y })

	var lines []textLine
	for _, g := range glyphs {
		if n := len(lines); n > 0 && math.Abs(lines[n-1].y-g.Y) <= lineTolerance {
			lines[n-1].glyphs = append(lines[n-1].glyphs, g)
			continue
		}
		lines = append(lines, textLine{y: g.Y, glyphs: []pdf.Text{g}})
	}
	for i := range lines {
		gs := lines[i].glyphs
		sort.SliceStable(gs, func(a, b int) bool { return gs[a].X < gs[b].X })
	}
	return lines
}

// metrics returns the left edge of the page text and the average width of
// one character.
func metrics(lines []textLine) (originX, charWidth float64) {
	originX = math.MaxFloat64
	var total float64
	var runes int
	for _, l := range lines {
		for _, g := range l.glyphs {
			originX = math.Min(originX, g.X)
			total += glyphWidth(g)
			runes += utf8.RuneCountInString(g.S)
		}
	}
	charWidth = defaultFontSize * glyphWidthFactor
	if runes > 0 && total > 0 {
		charWidth = total / float64(runes)
	}
	return originX, charWidth
}

// renderLine lays a line out on a character grid and splits it into cells at
// wide gaps.
func renderLine(l textLine, originX, charWidth float64) renderedLine {
	var (
		layout, cell strings.Builder
		cells        []string
		column       int
		prevEnd      float64
	)
	for i, g := range l.glyphs {
		size := fontSize(g)
		spaced := false
		if i > 0 {
			gap := g.X - prevEnd
			switch {
			case gap >= size*cellGapFactor:
				cells = append(cells, strings.TrimSpace(cell.String()))
				cell.Reset()
				spaced = true
			case gap >= size*spaceGapFactor:
				cell.WriteByte(' ')
				spaced = true
			}
		}

		target := int(math.Round((g.X - originX) / charWidth))
		switch {
		case target > column:
			layout.WriteString(strings.Repeat(" ", target-column))
			column = target
		case spaced:
			layout.WriteByte(' ')
			column++
		}
		layout.WriteString(g.S)
		cell.WriteString(g.S)
		column += utf8.RuneCountInString(g.S)
		prevEnd = g.X + glyphWidth(g)
	}
	cells = append(cells, strings.TrimSpace(cell.String()))
	return renderedLine{layout: layout.String(), cells: cells}
}

// detectTables collects runs of consecutive multi-cell lines.
func detectTables(lines []renderedLine) []Table {
	var (
		tables []Table
		run    Table
	)
	flush := func() {
		if len(run) >= minTableRows {
			tables = append(tables, run)
		}
		run = nil
	}
	for _, l := range lines {
		if len(l.cells) < minTableCells {
			flush()
			continue
		}
		run = append(run, l.cells)
	}
	flush()
	return tables
}

func fontSize(g pdf.Text) float64 {
	if g.FontSize > 0 {
		return g.FontSize
	}
	return defaultFontSize
}

func glyphWidth(g pdf.Text) float64 {
	if g.W > 0 {
		return g.W
	}
	return fontSize(g) * glyphWidthFactor * float64(utf8.RuneCountInString(g.S))
}
