package resolve

import (
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "adds https when scheme missing",
			input:    "instagram.com/someuser",
			expected: "https://instagram.com/someuser",
		},
		{
			name:     "forces https over http",
			input:    "http://open.spotify.com/artist/abc",
			expected: "https://open.spotify.com/artist/abc",
		},
		{
			name:     "strips utm parameters",
			input:    "https://example.com/page?utm_source=x&utm_medium=y&keep=1",
			expected: "https://example.com/page?keep=1",
		},
		{
			name:     "strips fbclid and igshid",
			input:    "https://instagram.com/user?fbclid=abc&igshid=def",
			expected: "https://instagram.com/user",
		},
		{
			name:     "strips ref and source and _ga",
			input:    "https://example.com/?ref=profile&source=bio&_ga=123",
			expected: "https://example.com/",
		},
		{
			name:     "lowercases host only",
			input:    "HTTPS://Instagram.COM/SomeUser",
			expected: "https://instagram.com/SomeUser",
		},
		{
			name:     "drops fragment",
			input:    "https://example.com/page#section",
			expected: "https://example.com/page",
		},
		{
			name:     "empty input unchanged",
			input:    "",
			expected: "",
		},
		{
			name:     "garbage with control chars unchanged",
			input:    "ht tp://%%%\x7f",
			expected: "ht tp://%%%\x7f",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizeNeverPanicsOrEmptiesValidInput(t *testing.T) {
	inputs := []string{
		"example.com",
		"https://example.com",
		"  spaced.example.com/path  ",
		"mailto:someone@example.com",
		"://broken",
	}

	for _, in := range inputs {
		got := Normalize(in)
		if strings.TrimSpace(in) != "" && got == "" {
			t.Errorf("Normalize(%q) returned empty string", in)
		}
	}
}

func TestIsTrackingParam(t *testing.T) {
	positives := []string{"utm_source", "utm_campaign", "UTM_TERM", "fbclid", "gclid", "igshid", "_ga", "ref", "source"}
	negatives := []string{"q", "v", "page", "utmx", "reference"}

	for _, p := range positives {
		if !isTrackingParam(p) {
			t.Errorf("isTrackingParam(%q) = false, want true", p)
		}
	}
	for _, n := range negatives {
		if isTrackingParam(n) {
			t.Errorf("isTrackingParam(%q) = true, want false", n)
		}
	}
}
