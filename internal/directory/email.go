package directory

import "strings"

// NormalizeEmail lowercases the domain portion of an email address (the
// part after the last "@") and trims surrounding whitespace. The local
// part is preserved as given; no further grammar validation is attempted,
// since mail routing is the only authority on what a deliverable address
// looks like.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	i := strings.LastIndex(email, "@")
	if i < 0 {
		return email
	}
	return email[:i+1] + strings.ToLower(email[i+1:])
}
