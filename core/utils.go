package core

import (
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// FormatDuration renders seconds as m:ss.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// Label returns labels[key] or the key itself when it has no label.
func Label[K comparable](labels map[K]string, key K) string {
	if l, ok := labels[key]; ok {
		return l
	}
	return fmt.Sprint(key)
}

// IntPtr returns a pointer to i.
func IntPtr(i int) *int {
	return &i
}

var plainText = bluemonday.StrictPolicy()

// Preview strips markup from s and shortens it to n runes.
func Preview(s string, n int) string {
	s = strings.Join(strings.Fields(html.UnescapeString(plainText.Sanitize(s))), " ")
	r := []rune(s)
	if n > 0 && len(r) > n {
		return string(r[:n]) + "…"
	}
	return s
}
