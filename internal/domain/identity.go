package domain

import "strings"

// CanonicalIdentityKey derives the storage key for a registration from the
// submitted phone number. A number that already carries an international
// prefix passes through unchanged; anything else gets the default country
// code prepended. The same input always yields the same key, which is what
// makes resubmission a replace instead of a duplicate.
func CanonicalIdentityKey(raw, defaultCountryCode string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrInvalidIdentity
	}
	if strings.HasPrefix(trimmed, "+") {
		return trimmed, nil
	}
	return defaultCountryCode + trimmed, nil
}
