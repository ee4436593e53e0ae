package mtran

import "strings"

// Normalizer canonicalizes user-supplied base URLs.
type Normalizer struct {
	// Default is returned for blank input. Empty means DefaultBaseURL.
	Default string
}

// NormalizeURL canonicalizes raw using DefaultBaseURL as the fallback.
func NormalizeURL(raw string) string {
	return Normalizer{}.Normalize(raw)
}

// Normalize trims raw, strips every trailing slash and adds a scheme when
// missing. Inputs mentioning port 443 get https, everything else http.
func (n Normalizer) Normalize(raw string) string {
	fallback := strings.TrimSpace(n.Default)
	if fallback == "" {
		fallback = DefaultBaseURL
	}

	trimmed := strings.TrimRight(strings.TrimSpace(raw), "/")
	if trimmed == "" {
		// "///" has nothing left once the slashes go.
		return fallback
	}

	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return trimmed
	}
	if strings.Contains(trimmed, ":443") {
		return "https://" + trimmed
	}
	return "http://" + trimmed
}
