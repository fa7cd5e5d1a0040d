package token

import (
	"crypto/rand"
	"encoding/base64"
)

// Generate returns a crypto-secure random string of length n, drawn from
// ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_.
func Generate(n int) (string, error) {
	// base64 turns every 3 raw bytes into 4 characters; pad the raw byte
	// count so the encoded string is always at least n characters long,
	// however small or large n is.
	raw := make([]byte, n*3/4+4)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(raw)[:n], nil
}
