package extract

import "strings"

// Normalize collapses every whitespace run to a single space and trims both
// ends. Invalid UTF-8 bytes are dropped.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	return strings.Join(strings.Fields(strings.ToValidUTF8(text, "")), " ")
}
