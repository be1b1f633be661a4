package slug

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"unicode"
)

// Normalize turns free text into a URL-safe slug: lowercase, runs of
// non-alphanumeric characters collapsed to single hyphens, hyphens trimmed
// from both ends. Returns "" if nothing usable remains.
func Normalize(s string) string {
	var b strings.Builder
	lastHyphen := true

	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	return strings.Trim(b.String(), "-")
}

// RandomToken returns n bytes of randomness hex-encoded (2n characters).
func RandomToken(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand only fails if the OS entropy source is broken
		panic(err)
	}
	return hex.EncodeToString(buf)
}
