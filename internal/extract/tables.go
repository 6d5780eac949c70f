package extract

import (
	"regexp"
	"strings"
)

// Table is a grid of cell strings. Rows may differ in length and cells may be
// empty.
type Table = [][]string

var mobileRe = regexp.MustCompile(`^[6-9]\d{9}$`)

// FindSuspectPhone scans table cells for a ten-digit mobile number that is not
// the complainant's. Bank, evidence and transaction rows are skipped. The last
// match wins.
func FindSuspectPhone(tables []Table, complainantPhone string) string {
	phone := ""
	for _, table := range tables {
		for _, row := range table {
			if isListingRow(row) {
				continue
			}
			for _, cell := range row {
				c := Normalize(cell)
				if mobileRe.MatchString(c) && c != complainantPhone {
					phone = c
				}
			}
		}
	}
	return phone
}

// FindSuspectIdentifier returns the suspect's social-media handle, e-mail or
// profile link. A labelled value in the layout text wins; otherwise the first
// plausible table cell is used.
func FindSuspectIdentifier(tables []Table, layout, knownEmail string) string {
	if v := FindInLayout(layout, SuspectIDKeywords); v != "" && !strings.EqualFold(v, knownEmail) {
		return v
	}
	for _, table := range tables {
		for _, row := range table {
			if isListingRow(row) {
				continue
			}
			for _, cell := range row {
				if c := Normalize(cell); isIdentifierCell(c) && !strings.EqualFold(c, knownEmail) {
					return c
				}
			}
		}
	}
	return ""
}

func isIdentifierCell(c string) bool {
	if c == "" || len(c) > maxIdentifierLen || len(strings.Fields(c)) > maxIdentifierWords {
		return false
	}
	lc := strings.ToLower(c)
	if containsAny(lc, TransactionTerms) || isSupportMailbox(lc) {
		return false
	}
	return containsAny(lc, URLMarkers) || strings.Contains(c, "@")
}

func isSupportMailbox(lc string) bool {
	for _, p := range SupportMailboxPatterns {
		if compile(p).MatchString(lc) {
			return true
		}
	}
	return false
}

func isListingRow(row []string) bool {
	return containsAny(strings.ToLower(strings.Join(row, " ")), RowMarkers)
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
