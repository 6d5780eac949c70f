package extract

import (
	"regexp"
	"strings"
)

const (
	dateWindow = 1500
	timeWindow = 2000

	// slack lets a token that starts inside a window finish outside it.
	slack = 32
)

const (
	datePattern = `\d{1,2}[/\-]\d{1,2}[/\-]\d{4}|\d{4}[/\-]\d{1,2}[/\-]\d{1,2}`
	timePattern = `\d{1,2}:\d{2}(?::\d{2})?:?(?: ?[APap][Mm]\b)?`
)

var (
	dateRe     = regexp.MustCompile(datePattern)
	timeRe     = regexp.MustCompile(timePattern)
	dateTimeRe = regexp.MustCompile(`(?:` + datePattern + `)\s+(` + timePattern + `)`)
)

// FindAllDates returns every date-like substring in document order.
func FindAllDates(corpus string) []string {
	return dateRe.FindAllString(corpus, -1)
}

// FindDateNearKeyword returns the first date within the window after any
// occurrence of a keyword, falling back to the first date of the pool.
func FindDateNearKeyword(corpus string, keywords, fallback []string) string {
	if v := searchNear(corpus, keywords, dateWindow, dateRe); v != "" {
		return v
	}
	if len(fallback) > 0 {
		return fallback[0]
	}
	return ""
}

// FindTimeNearKeyword returns the first time after a keyword, or the time
// printed right after any date.
func FindTimeNearKeyword(corpus string, keywords []string) string {
	v := searchNear(corpus, keywords, timeWindow, timeRe)
	if v == "" {
		if m := dateTimeRe.FindStringSubmatch(corpus); m != nil {
			v = m[1]
		}
	}
	return strings.TrimRight(strings.TrimSpace(v), ":")
}

func searchNear(corpus string, keywords []string, window int, re *regexp.Regexp) string {
	if corpus == "" {
		return ""
	}
	for _, kw := range keywords {
		for _, loc := range compile(keywordPattern(kw)).FindAllStringIndex(corpus, -1) {
			start := loc[1]
			end := min(start+window+slack, len(corpus))
			m := re.FindStringIndex(corpus[start:end])
			if m == nil || m[0] > window {
				continue
			}
			return corpus[start+m[0] : start+m[1]]
		}
	}
	return ""
}
