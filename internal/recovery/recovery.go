// Package recovery manages one-time MFA backup codes. Codes are generated in
// batches, stored server-side as hashes, and shown to the user exactly once;
// each code is consumable a single time and generating a new batch
// invalidates the previous one.
package recovery

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base32"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/ramiz7171/NoteMe-sub001/internal/store"
)

// BatchSize is the number of codes generated per batch.
const BatchSize = 8

// codeBytes yields 10 base32 characters (50 bits) per code.
const codeBytes = 7

var codeEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// Manager generates and verifies recovery codes against the server-side
// store.
type Manager struct {
	codes store.RecoveryCodeStore
}

func NewManager(codes store.RecoveryCodeStore) *Manager {
	return &Manager{codes: codes}
}

// Generate mints a fresh batch, replaces the stored hashes, and returns the
// plaintext codes for one-time display. They are not retrievable afterwards.
func (m *Manager) Generate(userID string) ([]string, error) {
	plain := make([]string, 0, BatchSize)
	hashes := make([]string, 0, BatchSize)
	for i := 0; i < BatchSize; i++ {
		code, err := newCode()
		if err != nil {
			return nil, err
		}
		plain = append(plain, code)
		hashes = append(hashes, HashCode(code))
	}
	if err := m.codes.Replace(userID, uuid.New().String(), hashes); err != nil {
		return nil, fmt.Errorf("failed to store recovery codes: %w", err)
	}
	return plain, nil
}

// Verify consumes a code. It returns true exactly once per code; a replayed
// or unknown code returns false.
func (m *Manager) Verify(userID, code string) (bool, error) {
	return m.codes.Consume(userID, HashCode(code))
}

// HashCode maps a code to its stored form. Codes carry 50 bits of entropy,
// so a plain SHA-256 suffices; the slow hashes are reserved for low-entropy
// PINs and passwords.
func HashCode(code string) string {
	sum := sha256.Sum256([]byte(Normalize(code)))
	return hex.EncodeToString(sum[:])
}

// Normalize strips the display grouping so users can enter codes with or
// without the dash.
func Normalize(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	return strings.ReplaceAll(code, "-", "")
}

func newCode() (string, error) {
	raw := make([]byte, codeBytes)
	if _, err := io.ReadFull(rand.Reader, raw); err != nil {
		return "", fmt.Errorf("failed to generate recovery code: %w", err)
	}
	s := strings.ToLower(codeEncoding.EncodeToString(raw))[:10]
	return s[:5] + "-" + s[5:], nil
}
