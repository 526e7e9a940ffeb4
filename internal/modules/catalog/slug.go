package catalog

import (
	"strconv"
	"strings"
	"unicode"
)

const (
	maxSlugLen      = 60
	maxSlugAttempts = 1000
)

// Slugify turns a display name into a URL-safe identifier: lowercase,
// only [a-z0-9-], whitespace and hyphen runs collapsed to single hyphens,
// capped at maxSlugLen without a dangling hyphen.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))

	var b strings.Builder
	pendingHyphen := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		case r == '-' || unicode.IsSpace(r):
			pendingHyphen = true
		}
	}

	slug := b.String()
	if len(slug) > maxSlugLen {
		slug = strings.TrimRight(slug[:maxSlugLen], "-")
	}
	return slug
}

// suffixed appends "-n" to base, shortening base if needed so the result
// stays within maxSlugLen.
func suffixed(base string, n int) string {
	suffix := "-" + strconv.Itoa(n)
	if len(base)+len(suffix) > maxSlugLen {
		base = strings.TrimRight(base[:maxSlugLen-len(suffix)], "-")
	}
	return base + suffix
}
