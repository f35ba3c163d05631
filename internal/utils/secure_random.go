package utils

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/rurasogoodo/notes_app/internal/core/domain"
)

// SecretBytes is the size of every generated token secret (256 bits).
const SecretBytes = 32

// RandomSecretGenerator draws token secrets from crypto/rand.
type RandomSecretGenerator struct{}

// Generate returns 256 random bits and their unpadded base64url encoding.
func (RandomSecretGenerator) Generate() (domain.Secret, error) {
	b := make([]byte, SecretBytes)
	if _, err := rand.Read(b); err != nil {
		return domain.Secret{}, fmt.Errorf("failed to read random bytes: %w", err)
	}
	return domain.Secret{Raw: b, Encoded: base64.RawURLEncoding.EncodeToString(b)}, nil
}
