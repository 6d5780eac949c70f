package extract

import (
	"regexp"
	"strings"
	"sync"
	"unicode"
)

var (
	patternCache sync.Map
	columnGap    = regexp.MustCompile(`\s{3,}`)
)

// compile returns a cached compiled pattern. Patterns are built from the
// package rule tables, so a bad one is a programming error.
func compile(pattern string) *regexp.Regexp {
	if re, ok := patternCache.Load(pattern); ok {
		return re.(*regexp.Regexp)
	}
	re := regexp.MustCompile(pattern)
	actual, _ := patternCache.LoadOrStore(pattern, re)
	return actual.(*regexp.Regexp)
}

// keywordPattern matches a keyword literally, case-insensitively, at a word
// start.
func keywordPattern(keyword string) string {
	return `(?i)\b` + regexp.QuoteMeta(keyword)
}

// nonTrivial reports whether a captured value carries content.
func nonTrivial(value string) bool {
	if len([]rune(value)) <= 1 {
		return false
	}
	return strings.TrimFunc(value, unicode.IsPunct) != ""
}

// FindAfterKeyword returns the rest of the line following the first keyword
// that yields a non-trivial value. Separators between keyword and value may be
// colons, dashes or whitespace.
func FindAfterKeyword(corpus string, keywords []string) string {
	if corpus == "" {
		return ""
	}
	for _, kw := range keywords {
		m := compile(keywordPattern(kw) + `[:\-\s]+([^\n\r]+)`).FindStringSubmatch(corpus)
		if m == nil {
			continue
		}
		if v := Normalize(m[1]); nonTrivial(v) {
			return v
		}
	}
	return ""
}

// FindInLayout looks a keyword up in layout-preserving text. A value set off
// by a wide gap is tried first, then a single separator. Either way the value
// is cut at the next column.
func FindInLayout(layout string, keywords []string) string {
	if layout == "" {
		return ""
	}
	for _, kw := range keywords {
		kp := keywordPattern(kw)
		if m := compile(kp + `[ \t]*[:\-]?[ \t]{2,}([^\n\r]+)`).FindStringSubmatch(layout); m != nil {
			if v := Normalize(firstColumn(m[1])); nonTrivial(v) {
				return v
			}
		}
		if m := compile(kp + `[ \t]*[:\- \t][ \t]*([^\n\r]+)`).FindStringSubmatch(layout); m != nil {
			if v := Normalize(firstColumn(m[1])); nonTrivial(v) {
				return v
			}
		}
	}
	return ""
}

func firstColumn(s string) string {
	return columnGap.Split(strings.TrimSpace(s), 2)[0]
}

// FindInLayoutThenText tries the layout text first and the plain text second.
func FindInLayoutThenText(layout, plain string, keywords []string) string {
	if v := FindInLayout(layout, keywords); v != "" {
		return v
	}
	return FindAfterKeyword(plain, keywords)
}
