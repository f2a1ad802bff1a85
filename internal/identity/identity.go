// Package identity produces the short pseudonymous poster ids shown next to
// posts. Ids are cosmetic: collisions are acceptable and nothing authenticates
// against them.
package identity

import (
	"crypto/rand"

	"github.com/ctchan-dev/ctchan/internal/domain"
)

const (
	alphabet = "0123456789ABCDEF"
	idLength = 8
)

// Generate returns a fresh 8-character poster id, uniform per character over
// a hex-like alphabet.
func Generate() domain.PosterId {
	buf := make([]byte, idLength)
	// rand.Read never fails on supported platforms since go1.24
	rand.Read(buf)
	for i, b := range buf {
		buf[i] = alphabet[int(b)%len(alphabet)]
	}
	return string(buf)
}
