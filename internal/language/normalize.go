package language

import "strings"

// Auto is the source language sentinel asking for detection.
const Auto = "auto"

// NormalizeTag normalizes a language tag to lowercase and "-" separators.
// Returns an empty string when the value is blank or contains invalid characters.
func NormalizeTag(raw string) string {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return ""
	}

	trimmed = strings.ReplaceAll(trimmed, "_", "-")
	parts := strings.Split(trimmed, "-")
	normalized := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if !isAlphaLower(part) {
			return ""
		}
		normalized = append(normalized, part)
	}

	if len(normalized) == 0 {
		return ""
	}
	return strings.Join(normalized, "-")
}

// IsAuto reports whether raw is the "auto" sentinel.
func IsAuto(raw string) bool {
	return strings.EqualFold(strings.TrimSpace(raw), Auto)
}

// ServerCode maps a host language code onto the code MTranServer expects.
// Simplified Chinese ("zh_cn") is sent as "zh"; other codes pass through
// trimmed. Blank input and the "auto" sentinel return "".
func ServerCode(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || IsAuto(trimmed) {
		return ""
	}
	if NormalizeTag(trimmed) == "zh-cn" {
		return "zh"
	}
	return trimmed
}

func isAlphaLower(value string) bool {
	for _, r := range value {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
