package pdf

import (
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// glyphs lays s out at (x, y) with fixed 5pt advances, skipping spaces the
// way a content stream positions them.
func glyphs(x, y float64, s string) []pdf.Text {
	var out []pdf.Text
	for _, r := range s {
		if r != ' ' {
			out = append(out, pdf.Text{Font: "Helvetica", FontSize: 10, X: x, Y: y, W: 5, S: string(r)})
		}
		x += 5
	}
	return out
}

func join(parts ...[]pdf.Text) []pdf.Text {
	var out []pdf.Text
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func TestBuildPageLabelValue(t *testing.T) {
	texts := join(
		glyphs(200, 700, "Rajesh Kumar"),
		glyphs(30, 700.5, "Name:"),
		glyphs(30, 686, "Mobile:"),
		glyphs(200, 686, "9876543210"),
	)

	page := buildPage(1, texts)

	assert.Equal(t, 1, page.Number)
	assert.Equal(t, "Name: Rajesh Kumar\nMobile: 9876543210", page.Text)
	require.Contains(t, page.Layout, "\n")
	assert.Regexp(t, `^Name: {2,}Rajesh Kumar\nMobile: {2,}9876543210$`, page.Layout)
	assert.Empty(t, page.Tables)
}

func TestBuildPageTables(t *testing.T) {
	row := func(y float64, cells ...string) []pdf.Text {
		var out []pdf.Text
		for i, c := range cells {
			out = append(out, glyphs(30+float64(i)*100, y, c)...)
		}
		return out
	}
	texts := join(
		row(700, "S No.", "Bank/Merchant", "Account No."),
		row(686, "1", "HDFC Bank", "XXXXXX1234"),
		glyphs(30, 660, "Action Taken by bank"),
		row(640, "1", "Suspect", "9988776655"),
	)

	page := buildPage(2, texts)

	require.Len(t, page.Tables, 1)
	assert.Equal(t, Table{
		{"S No.", "Bank/Merchant", "Account No."},
		{"1", "HDFC Bank", "XXXXXX1234"},
	}, page.Tables[0])
	assert.Contains(t, page.Text, "1 Suspect 9988776655")
}

func TestBuildPageEmpty(t *testing.T) {
	page := buildPage(3, []pdf.Text{{S: " ", X: 10, Y: 10}})
	assert.Equal(t, Page{Number: 3}, page)
}

func TestGroupLinesNormalizesGlyphs(t *testing.T) {
	lines := groupLines([]pdf.Text{{S: "ﬁ", X: 10, Y: 10, W: 5, FontSize: 10}})
	require.Len(t, lines, 1)
	assert.Equal(t, "fi", lines[0].glyphs[0].S)
}

func TestGroupLinesDropsInvalidUTF8(t *testing.T) {
	lines := groupLines([]pdf.Text{
		{S: "\xff", X: 5, Y: 10, W: 5, FontSize: 10},
		{S: "R\xffa", X: 10, Y: 10, W: 5, FontSize: 10},
	})
	require.Len(t, lines, 1)
	require.Len(t, lines[0].glyphs, 1)
	assert.Equal(t, "Ra", lines[0].glyphs[0].S)
}

func TestGlyphWidthFallback(t *testing.T) {
	assert.Equal(t, 5.0, glyphWidth(pdf.Text{S: "a"}))
	assert.Equal(t, 12.0, glyphWidth(pdf.Text{S: "ab", FontSize: 12}))
	assert.Equal(t, 3.0, glyphWidth(pdf.Text{S: "a", W: 3}))
}
