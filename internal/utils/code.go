package utils

import (
	"crypto/rand"
	"fmt"
	"strings"
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// maxUnbiased is the largest multiple of len(codeAlphabet) that fits in a byte;
// bytes at or above it are discarded so every symbol is equally likely.
const maxUnbiased = 256 - 256%len(codeAlphabet)

var randRead = rand.Read

// GenerateCode generates a random upper-case alphanumeric code of the given length
func GenerateCode(length int) (string, error) {
	if length <= 0 || length > 32 {
		return "", fmt.Errorf("invalid code length: %d", length)
	}

	var builder strings.Builder
	builder.Grow(length)
	buf := make([]byte, length)
	for builder.Len() < length {
		if _, err := randRead(buf); err != nil {
			return "", fmt.Errorf("failed to generate random bytes: %w", err)
		}
		for _, b := range buf {
			if int(b) >= maxUnbiased {
				continue
			}
			builder.WriteByte(codeAlphabet[int(b)%len(codeAlphabet)])
			if builder.Len() == length {
				break
			}
		}
	}

	return builder.String(), nil
}

// NormalizeCode trims and upper-cases a user-entered code
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// LoginAddress maps a phone number onto the opaque login identifier stored for the account
func LoginAddress(phone, domain string) string {
	return strings.TrimSpace(phone) + "@" + domain
}
