package extract

import (
	"regexp"
	"strings"
)

var (
	yearRunRe = regexp.MustCompile(`\d{4}`)
	bareAckRe = regexp.MustCompile(`\b(\d{12,17})\b`)
)

// FindAckNumber returns the acknowledgement number, preferring a labelled
// value over the first bare 12 to 17 digit run.
func FindAckNumber(plain string) string {
	if v := FindAfterKeyword(plain, AckKeywords); v != "" {
		return v
	}
	if m := bareAckRe.FindStringSubmatch(plain); m != nil {
		return m[1]
	}
	return ""
}

// ClassifyCategory maps the corpus to one of the two known categories by
// marker terms. Empty when neither matches.
func ClassifyCategory(corpus string) string {
	lc := strings.ToLower(corpus)
	for _, cm := range CategoryMarkers {
		if containsAny(lc, cm.Terms) {
			return cm.Category
		}
	}
	return ""
}

// SubCategoryAfter returns the first non-empty line after the line holding
// the category literal. Yes/no answers and values with a four digit run are
// rejected.
func SubCategoryAfter(plain, category string) string {
	if category == "" {
		return ""
	}
	idx := strings.Index(plain, category)
	if idx < 0 {
		return ""
	}
	rest := plain[idx+len(category):]
	nl := strings.IndexByte(rest, '\n')
	if nl < 0 {
		return ""
	}
	for _, line := range strings.Split(rest[nl+1:], "\n") {
		v := Normalize(line)
		if v == "" {
			continue
		}
		if strings.EqualFold(v, "yes") || strings.EqualFold(v, "no") || yearRunRe.MatchString(v) {
			return ""
		}
		return v
	}
	return ""
}

// FindAddress assembles the complainant address from its components, falling
// back to a single address line.
func FindAddress(layout, plain string) string {
	var b strings.Builder
	for _, part := range AddressParts {
		v := FindInLayoutThenText(layout, plain, part.Keywords)
		if v == "" {
			continue
		}
		switch {
		case b.Len() == 0 && part.Prefix != "":
			b.WriteString(strings.TrimLeft(part.Prefix, " "))
		case b.Len() == 0:
		case part.Prefix != "":
			b.WriteString(part.Prefix)
		default:
			b.WriteString(", ")
		}
		b.WriteString(v)
	}
	if b.Len() > 0 {
		return b.String()
	}
	return FindInLayoutThenText(layout, plain, AddressKeywords)
}
