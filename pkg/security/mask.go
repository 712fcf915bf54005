// Package security provides helpers for safe handling of sensitive values.
package security

import "strings"

// MaskEmail creates a masked version of an email address for logging,
// keeping the first character of the local part and the full domain.
func MaskEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at <= 0 {
		return "***"
	}

	local := email[:at]
	domain := email[at:]

	if len(local) <= 2 {
		return "***" + domain
	}
	return local[:1] + strings.Repeat("*", len(local)-1) + domain
}
