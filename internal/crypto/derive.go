package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"

	kerrors "github.com/ramiz7171/NoteMe-sub001/internal/errors"
)

// Argon2id parameters. Fixed for every derivation so the same passphrase and
// salt always reproduce the same key; the key itself is never stored.
const (
	argonTime    = 2
	argonMemory  = 64 * 1024 // KiB
	argonThreads = 4

	// SaltSize is the number of random bytes in a freshly generated salt.
	SaltSize = 16
)

// GenerateSalt returns fresh CSPRNG salt bytes. A new salt is drawn once per
// enable cycle and never reused across cycles.
func GenerateSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	return salt, nil
}

// EncodeSalt renders a salt for storage in the preference document.
func EncodeSalt(salt []byte) string {
	return base64.StdEncoding.EncodeToString(salt)
}

// DecodeSalt parses a stored salt. An empty or undecodable value is a
// DerivationFailure: unlock and disable cannot proceed without the salt.
func DecodeSalt(s string) ([]byte, error) {
	if s == "" {
		return nil, kerrors.ErrDerivationFailed
	}
	salt, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrDerivationFailed, err)
	}
	if len(salt) < SaltSize {
		return nil, fmt.Errorf("%w: salt too short", kerrors.ErrDerivationFailed)
	}
	return salt, nil
}

// DeriveKey stretches a passphrase into a session key with Argon2id.
// Deterministic: identical passphrase and salt always yield the identical
// key. This call is CPU and memory heavy; callers should keep it off the
// interactive path.
func DeriveKey(passphrase, salt []byte) *SessionKey {
	raw := argon2.IDKey(passphrase, salt, argonTime, argonMemory, argonThreads, KeySize)
	key := NewSessionKey(raw)
	ZeroBytes(raw)
	return key
}
