package crypto

import "runtime"

// KeySize is the secretbox key length in bytes.
const KeySize = 32

// SessionKey is the ephemeral symmetric key held in process memory while the
// vault is unlocked. It is owned by exactly one lifecycle manager, is zeroed
// on lock, disable, or sign-out, and is never serialized.
type SessionKey struct {
	k    [KeySize]byte
	dead bool
}

// NewSessionKey copies raw key bytes into an owned handle. The caller should
// zero its own copy afterwards.
func NewSessionKey(raw []byte) *SessionKey {
	var key SessionKey
	copy(key.k[:], raw)
	return &key
}

// Raw exposes the key in the fixed-size form secretbox expects. The returned
// pointer aliases the handle's memory; callers must not retain it past the
// operation.
func (k *SessionKey) Raw() *[KeySize]byte {
	return &k.k
}

// Zero overwrites the key material. The handle is unusable afterwards.
func (k *SessionKey) Zero() {
	for i := range k.k {
		k.k[i] = 0
	}
	k.dead = true
	runtime.KeepAlive(&k.k)
}

// Zeroed reports whether the key has been wiped.
func (k *SessionKey) Zeroed() bool {
	return k.dead
}

// String redacts the key so accidental logging cannot leak it.
func (k *SessionKey) String() string {
	return "SessionKey(redacted)"
}

// ZeroBytes overwrites a byte slice holding sensitive material.
func ZeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}
