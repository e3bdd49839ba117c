// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"strings"
	"testing"
)

func TestSanitizeTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"plain title passes through", "Introduction", "Introduction"},
		{"every invalid character stripped", `a<b>c:d"e/f\g|h?i*j`, "abcdefghij"},
		{"leading and trailing dots and spaces trimmed", "  .Chapter One.  ", "Chapter One"},
		{"interior dots kept", "2.1 Background", "2.1 Background"},
		{"empty falls back", "", "chapter"},
		{"only invalid characters falls back", `<>:"/\|?*`, "chapter"},
		{"only dots and spaces falls back", " .. . ", "chapter"},
		{"unicode preserved", "Einführung — Überblick", "Einführung — Überblick"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeTitle(tt.title, 0)
			if got != tt.want {
				t.Errorf("SanitizeTitle(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestSanitizeTitle_Deterministic(t *testing.T) {
	title := `Weird: <Title>/with\every|bad?char* and length`
	first := SanitizeTitle(title, 0)
	second := SanitizeTitle(title, 0)
	if first != second {
		t.Errorf("SanitizeTitle not deterministic: %q vs %q", first, second)
	}
	if strings.ContainsAny(first, invalidFilenameChars) {
		t.Errorf("SanitizeTitle(%q) = %q still contains invalid characters", title, first)
	}
}

func TestSanitizeTitle_Truncation(t *testing.T) {
	long := strings.Repeat("ab ", 100) // 300 chars
	got := SanitizeTitle(long, 0)
	if len([]rune(got)) > DefaultTitleMaxLen {
		t.Errorf("len = %d, want <= %d", len([]rune(got)), DefaultTitleMaxLen)
	}
	if strings.HasSuffix(got, " ") {
		t.Errorf("truncated title %q has trailing space", got)
	}

	short := SanitizeTitle("abcdefgh", 4)
	if short != "abcd" {
		t.Errorf("SanitizeTitle with maxLen 4 = %q, want %q", short, "abcd")
	}
}

func TestFilename(t *testing.T) {
	tests := []struct {
		number int
		title  string
		want   string
	}{
		{1, "Introduction", "01_Introduction.pdf"},
		{12, "Advanced Topics", "12_Advanced Topics.pdf"},
		{100, "Appendix", "100_Appendix.pdf"},
		{7, `What? Why: How*`, "07_What Why How.pdf"},
	}

	for _, tt := range tests {
		got := Filename(tt.number, tt.title, 0)
		if got != tt.want {
			t.Errorf("Filename(%d, %q) = %q, want %q", tt.number, tt.title, got, tt.want)
		}
	}
}
