package crypto

import (
	"bytes"
	"errors"
	"testing"

	"github.com/ramiz7171/NoteMe-sub001/internal/envelope"
	kerrors "github.com/ramiz7171/NoteMe-sub001/internal/errors"
)

func testKey(t *testing.T, passphrase string) (*SessionKey, []byte) {
	t.Helper()
	salt, err := GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt failed: %v", err)
	}
	return DeriveKey([]byte(passphrase), salt), salt
}

func TestDeriveKey_Deterministic(t *testing.T) {
	salt, err := GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt failed: %v", err)
	}

	a := DeriveKey([]byte("correct horse"), salt)
	b := DeriveKey([]byte("correct horse"), salt)
	if *a.Raw() != *b.Raw() {
		t.Error("same passphrase and salt produced different keys")
	}

	c := DeriveKey([]byte("wrong horse"), salt)
	if *a.Raw() == *c.Raw() {
		t.Error("different passphrases produced the same key")
	}

	otherSalt, err := GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt failed: %v", err)
	}
	d := DeriveKey([]byte("correct horse"), otherSalt)
	if *a.Raw() == *d.Raw() {
		t.Error("different salts produced the same key")
	}
}

func TestGenerateSalt_Fresh(t *testing.T) {
	a, err := GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt failed: %v", err)
	}
	if len(a) != SaltSize {
		t.Fatalf("salt length = %d, want %d", len(a), SaltSize)
	}
	b, err := GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt failed: %v", err)
	}
	if bytes.Equal(a, b) {
		t.Error("two generated salts are identical")
	}
}

func TestSaltEncoding_RoundTrip(t *testing.T) {
	salt, err := GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt failed: %v", err)
	}
	decoded, err := DecodeSalt(EncodeSalt(salt))
	if err != nil {
		t.Fatalf("DecodeSalt failed: %v", err)
	}
	if !bytes.Equal(salt, decoded) {
		t.Error("salt round trip did not preserve bytes")
	}
}

func TestDecodeSalt_Malformed(t *testing.T) {
	for name, input := range map[string]string{
		"empty":      "",
		"not base64": "%%%",
		"too short":  "QUJD",
	} {
		if _, err := DecodeSalt(input); !errors.Is(err, kerrors.ErrDerivationFailed) {
			t.Errorf("%s: error = %v, want ErrDerivationFailed", name, err)
		}
	}
}

func TestContent_RoundTrip(t *testing.T) {
	key, _ := testKey(t, "pw1")

	for _, plain := range []string{"", "a", "meeting notes\nwith lines", "noteme-ish but plain"} {
		env, err := EncryptContent(plain, key)
		if err != nil {
			t.Fatalf("EncryptContent(%q) failed: %v", plain, err)
		}
		if !envelope.IsEncrypted(env) {
			t.Fatalf("ciphertext not detected as encrypted: %q", env)
		}
		got, err := DecryptContent(env, key)
		if err != nil {
			t.Fatalf("DecryptContent failed: %v", err)
		}
		if got != plain {
			t.Errorf("round trip mismatch: got %q, want %q", got, plain)
		}
	}
}

func TestContent_PlaintextPassThrough(t *testing.T) {
	key, _ := testKey(t, "pw1")
	got, err := DecryptContent("still plaintext", key)
	if err != nil {
		t.Fatalf("DecryptContent on plaintext failed: %v", err)
	}
	if got != "still plaintext" {
		t.Errorf("pass-through altered plaintext: %q", got)
	}
}

func TestContent_WrongKeyFailsLoudly(t *testing.T) {
	key, _ := testKey(t, "pw1")
	wrong, _ := testKey(t, "pw2")

	env, err := EncryptContent("secret", key)
	if err != nil {
		t.Fatalf("EncryptContent failed: %v", err)
	}
	if _, err := DecryptContent(env, wrong); !errors.Is(err, kerrors.ErrDecryptionFailed) {
		t.Errorf("wrong key error = %v, want ErrDecryptionFailed", err)
	}
}

func TestContent_TamperDetected(t *testing.T) {
	key, _ := testKey(t, "pw1")
	env, err := EncryptContent("secret", key)
	if err != nil {
		t.Fatalf("EncryptContent failed: %v", err)
	}
	// Flip a character inside the base64 payload.
	tampered := []byte(env)
	i := len(env) - 2
	if tampered[i] == 'A' {
		tampered[i] = 'B'
	} else {
		tampered[i] = 'A'
	}
	_, err = DecryptContent(string(tampered), key)
	if !errors.Is(err, kerrors.ErrDecryptionFailed) && !errors.Is(err, kerrors.ErrMalformedEnvelope) {
		t.Errorf("tampered envelope error = %v, want decryption or envelope failure", err)
	}
}

func TestFile_RoundTripAndPassThrough(t *testing.T) {
	key, _ := testKey(t, "pw1")
	blob := []byte{0x00, 0x01, 0xFF, 0x42, 0x00}

	enc, err := EncryptFile(blob, key)
	if err != nil {
		t.Fatalf("EncryptFile failed: %v", err)
	}
	if !envelope.IsEncryptedBinary(enc) {
		t.Fatal("encrypted blob not detected")
	}

	dec, err := DecryptFile(enc, key)
	if err != nil {
		t.Fatalf("DecryptFile failed: %v", err)
	}
	if !bytes.Equal(dec, blob) {
		t.Error("file round trip mismatch")
	}

	plain, err := DecryptFile([]byte("raw pdf bytes"), key)
	if err != nil || string(plain) != "raw pdf bytes" {
		t.Errorf("plain blob pass-through failed: %q, %v", plain, err)
	}
}

func TestSessionKey_Zero(t *testing.T) {
	key, _ := testKey(t, "pw1")
	key.Zero()
	if !key.Zeroed() {
		t.Error("Zeroed() = false after Zero()")
	}
	var empty [KeySize]byte
	if *key.Raw() != empty {
		t.Error("key material survived Zero()")
	}
	if key.String() != "SessionKey(redacted)" {
		t.Errorf("String() leaked something: %q", key.String())
	}
}

func TestEncrypt_NonceFreshness(t *testing.T) {
	key, _ := testKey(t, "pw1")
	a, err := EncryptContent("same plaintext", key)
	if err != nil {
		t.Fatalf("EncryptContent failed: %v", err)
	}
	b, err := EncryptContent("same plaintext", key)
	if err != nil {
		t.Fatalf("EncryptContent failed: %v", err)
	}
	if a == b {
		t.Error("two encryptions of the same plaintext produced identical envelopes")
	}
}
