// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"
	"strings"
)

// DefaultTitleMaxLen caps the sanitized title portion of a filename,
// leaving headroom under the common 255-character filesystem limit once the
// numeric prefix and extension are added.
const DefaultTitleMaxLen = 200

// invalidFilenameChars are the characters rejected by the most restrictive
// supported target filesystem (Windows).
const invalidFilenameChars = `<>:"/\|?*`

// SanitizeTitle makes a bookmark title safe for use in a filename: invalid
// characters are stripped, leading and trailing dots and spaces removed, and
// the result truncated to maxLen runes. An empty result falls back to
// "chapter".
func SanitizeTitle(title string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = DefaultTitleMaxLen
	}

	var b strings.Builder
	for _, r := range title {
		if strings.ContainsRune(invalidFilenameChars, r) {
			continue
		}
		b.WriteRune(r)
	}

	sanitized := strings.Trim(b.String(), ". ")
	if runes := []rune(sanitized); len(runes) > maxLen {
		sanitized = strings.TrimRight(string(runes[:maxLen]), " ")
	}

	if sanitized == "" {
		return "chapter"
	}
	return sanitized
}

// Filename composes the output filename for a chapter: the chapter number
// zero-padded to at least two digits, an underscore, the sanitized title,
// and the .pdf extension.
func Filename(number int, title string, maxLen int) string {
	return fmt.Sprintf("%02d_%s.pdf", number, SanitizeTitle(title, maxLen))
}
