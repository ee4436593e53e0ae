package language

import "testing"

func TestNormalizeTag(t *testing.T) {
	t.Parallel()

	if got := NormalizeTag(" EN_us "); got != "en-us" {
		t.Fatalf("unexpected normalized tag: %q", got)
	}
	if got := NormalizeTag("zh-Hans"); got != "zh-hans" {
		t.Fatalf("unexpected normalized tag: %q", got)
	}
	if got := NormalizeTag("en--US"); got != "en-us" {
		t.Fatalf("unexpected collapsed tag: %q", got)
	}
	if got := NormalizeTag("en_123"); got != "" {
		t.Fatalf("expected invalid tag to normalize to empty string, got %q", got)
	}
}

func TestIsAuto(t *testing.T) {
	t.Parallel()

	if !IsAuto(" AUTO ") {
		t.Fatalf("expected padded upper-case auto to match")
	}
	if IsAuto("en") || IsAuto("") {
		t.Fatalf("did not expect en or blank to match auto")
	}
}

func TestServerCode(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"zh_cn":  "zh",
		"zh-CN":  "zh",
		" en ":   "en",
		"zh_tw":  "zh_tw",
		"auto":   "",
		"   ":    "",
		"pt_BR":  "pt_BR",
		"ZH_CN ": "zh",
	}
	for raw, want := range cases {
		if got := ServerCode(raw); got != want {
			t.Fatalf("ServerCode(%q): got %q want %q", raw, got, want)
		}
	}
}
