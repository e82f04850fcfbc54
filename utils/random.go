package utils

import (
	"crypto/rand"
)

// DigitSuffix returns a random string of decimal digits. Booking references
// and ticket ids append it to a millisecond timestamp so that ids stay
// all-digit after the namespace prefix but no longer collide on clock
// coarseness.
func DigitSuffix(length int) (string, error) {
	const charset = "0123456789"

	// Make a slice of length random bytes.
	code := make([]byte, length)

	// Read into the slice.
	if _, err := rand.Read(code); err != nil {
		return "", err
	}

	// Convert bytes to string.
	for i := 0; i < length; i++ {
		code[i] = charset[int(code[i])%len(charset)]
	}

	return string(code), nil
}
