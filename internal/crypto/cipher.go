package crypto

import (
	"crypto/rand"
	"fmt"
	"io"

	"golang.org/x/crypto/nacl/secretbox"

	"github.com/ramiz7171/NoteMe-sub001/internal/envelope"
	kerrors "github.com/ramiz7171/NoteMe-sub001/internal/errors"
)

// EncryptContent seals a note or transcript string into a text envelope with
// a fresh nonce. Encrypting the same plaintext twice yields different
// envelopes.
func EncryptContent(plain string, key *SessionKey) (string, error) {
	nonce, err := newNonce()
	if err != nil {
		return "", err
	}
	box := secretbox.Seal(nil, []byte(plain), nonce, key.Raw())
	return envelope.Encode(nonce[:], box), nil
}

// DecryptContent opens a text envelope. Plaintext passes through unchanged so
// a partially migrated repository stays readable. An authentication failure,
// from a wrong passphrase or corrupted ciphertext, returns
// ErrDecryptionFailed; callers surface it as an unreadable-content sentinel,
// never as garbled bytes.
func DecryptContent(s string, key *SessionKey) (string, error) {
	if !envelope.IsEncrypted(s) {
		return s, nil
	}
	rawNonce, box, err := envelope.Decode(s)
	if err != nil {
		return "", err
	}
	var nonce [envelope.NonceSize]byte
	copy(nonce[:], rawNonce)
	plain, ok := secretbox.Open(nil, box, &nonce, key.Raw())
	if !ok {
		return "", kerrors.ErrDecryptionFailed
	}
	return string(plain), nil
}

// EncryptFile seals a binary blob into a binary envelope. The blob's content
// type is not part of the ciphertext stream; the file repository keeps it as
// metadata and re-attaches it on download.
func EncryptFile(blob []byte, key *SessionKey) ([]byte, error) {
	nonce, err := newNonce()
	if err != nil {
		return nil, err
	}
	box := secretbox.Seal(nil, blob, nonce, key.Raw())
	return envelope.EncodeBinary(nonce[:], box), nil
}

// DecryptFile opens a binary envelope, passing plain blobs through unchanged.
func DecryptFile(blob []byte, key *SessionKey) ([]byte, error) {
	if !envelope.IsEncryptedBinary(blob) {
		return blob, nil
	}
	rawNonce, box, err := envelope.DecodeBinary(blob)
	if err != nil {
		return nil, err
	}
	var nonce [envelope.NonceSize]byte
	copy(nonce[:], rawNonce)
	plain, ok := secretbox.Open(nil, box, &nonce, key.Raw())
	if !ok {
		return nil, kerrors.ErrDecryptionFailed
	}
	return plain, nil
}

func newNonce() (*[envelope.NonceSize]byte, error) {
	var nonce [envelope.NonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}
	return &nonce, nil
}
