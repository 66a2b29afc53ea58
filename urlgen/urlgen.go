// Package urlgen generates random short codes for the URL shortener service.
package urlgen

import (
	"crypto/rand"
	"math/big"
	"strings"
)

// charset defines the character set used for generating short codes.
const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// DefaultLength is the code length used when no explicit length is configured.
// 62^6 gives roughly 56.8 billion possible codes.
const DefaultLength = 6

// Generate creates a new random short code of the given length.
// A length of zero or less falls back to DefaultLength.
//
// Generation is probabilistic: uniqueness is enforced by the storage
// layer's constraint on the short code, not here.
func Generate(length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}

	var sb strings.Builder
	sb.Grow(length) // Pre-allocate the required capacity for better performance

	charsetLength := big.NewInt(int64(len(charset)))

	for i := 0; i < length; i++ {
		randomIndex, err := rand.Int(rand.Reader, charsetLength)
		if err != nil {
			return "", err
		}
		sb.WriteByte(charset[randomIndex.Int64()])
	}
	return sb.String(), nil
}
