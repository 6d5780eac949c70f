package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var narrativeRe = buildNarrativeRe()

func buildNarrativeRe() *regexp.Regexp {
	quote := func(ms []string) string {
		q := make([]string, len(ms))
		for i, m := range ms {
			q[i] = regexp.QuoteMeta(m)
		}
		return strings.Join(q, "|")
	}
	return regexp.MustCompile(`(?is)(?:` + quote(NarrativeStartMarkers) + `)[:\-\s]+(.*?)(?:` +
		quote(NarrativeEndMarkers) + `|$)`)
}

// FindAdditionalInfo returns the complaint narrative. The text between a
// narrative heading and the next section heading is preferred; otherwise the
// longest substantive line.
func FindAdditionalInfo(corpus string) string {
	if corpus == "" {
		return ""
	}
	if m := narrativeRe.FindStringSubmatch(corpus); m != nil {
		if v := Normalize(m[1]); utf8.RuneCountInString(v) > minNarrativeLen {
			return v
		}
	}

	longest, longestLen := "", 0
	for _, line := range strings.Split(corpus, "\n") {
		l := strings.TrimSpace(line)
		n := utf8.RuneCountInString(l)
		if n <= minNarrativeLineLen || n <= longestLen || isBoilerplate(l) {
			continue
		}
		longest, longestLen = l, n
	}
	return Normalize(longest)
}

func isBoilerplate(line string) bool {
	return containsAny(strings.ToLower(line), Boilerplate)
}
