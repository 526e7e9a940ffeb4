package domain

import "strings"

// NormalizeEmail is applied to every identity before it is compared or
// stored, so ownership checks are case-insensitive by construction.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
