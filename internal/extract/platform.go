package extract

import "strings"

// InferPlatform names the social-media platform, from a labelled value in the
// layout text or from the suspect identifier.
func InferPlatform(layout, suspectIdentifier string) string {
	if v := FindInLayout(layout, PlatformKeywords); v != "" {
		return v
	}
	if suspectIdentifier == "" {
		return ""
	}
	id := strings.ToLower(suspectIdentifier)
	for _, pf := range PlatformFragments {
		if strings.Contains(id, pf.Fragment) {
			return pf.Platform
		}
	}
	return ""
}
