// Package envelope defines the on-disk container for encrypted note content
// and file blobs. Text envelopes are marker-prefixed base64 so they survive
// any plaintext transport the content repository uses; binary envelopes carry
// a fixed magic prefix instead. Detection is a plain prefix check and performs
// no cryptography, so migration loops can classify items cheaply and decrypt
// can pass untouched plaintext through during a mixed repository state.
package envelope

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"

	kerrors "github.com/ramiz7171/NoteMe-sub001/internal/errors"
)

// Marker prefixes every encrypted text envelope. The vendor prefix and
// version make an accidental collision with stored plaintext implausible;
// content that legitimately starts with the marker would itself have to be a
// NoteMe envelope.
const Marker = "noteme:enc:v1:"

// BinaryMagic prefixes every encrypted file blob.
var BinaryMagic = []byte{'N', 'M', 'E', 'N', 'C', '1', 0x00, 0x01}

// NonceSize is the secretbox nonce length carried at the front of the payload.
const NonceSize = 24

// IsEncrypted reports whether s is a text envelope. It checks only the
// marker; a true result does not guarantee the payload decodes.
func IsEncrypted(s string) bool {
	return strings.HasPrefix(s, Marker)
}

// Encode wraps a nonce and sealed box into a text envelope.
func Encode(nonce, box []byte) string {
	payload := make([]byte, 0, len(nonce)+len(box))
	payload = append(payload, nonce...)
	payload = append(payload, box...)
	return Marker + base64.StdEncoding.EncodeToString(payload)
}

// Decode splits a text envelope into its nonce and sealed box.
func Decode(s string) (nonce, box []byte, err error) {
	if !strings.HasPrefix(s, Marker) {
		return nil, nil, fmt.Errorf("%w: missing marker", kerrors.ErrMalformedEnvelope)
	}
	payload, err := base64.StdEncoding.DecodeString(s[len(Marker):])
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", kerrors.ErrMalformedEnvelope, err)
	}
	if len(payload) <= NonceSize {
		return nil, nil, fmt.Errorf("%w: payload too short", kerrors.ErrMalformedEnvelope)
	}
	return payload[:NonceSize], payload[NonceSize:], nil
}

// IsEncryptedBinary reports whether b is an encrypted file blob.
func IsEncryptedBinary(b []byte) bool {
	return bytes.HasPrefix(b, BinaryMagic)
}

// EncodeBinary wraps a nonce and sealed box into a binary envelope. File
// blobs skip base64 since the file repository stores bytes verbatim.
func EncodeBinary(nonce, box []byte) []byte {
	out := make([]byte, 0, len(BinaryMagic)+len(nonce)+len(box))
	out = append(out, BinaryMagic...)
	out = append(out, nonce...)
	out = append(out, box...)
	return out
}

// DecodeBinary splits a binary envelope into its nonce and sealed box.
func DecodeBinary(b []byte) (nonce, box []byte, err error) {
	if !bytes.HasPrefix(b, BinaryMagic) {
		return nil, nil, fmt.Errorf("%w: missing magic", kerrors.ErrMalformedEnvelope)
	}
	payload := b[len(BinaryMagic):]
	if len(payload) <= NonceSize {
		return nil, nil, fmt.Errorf("%w: payload too short", kerrors.ErrMalformedEnvelope)
	}
	return payload[:NonceSize], payload[NonceSize:], nil
}
