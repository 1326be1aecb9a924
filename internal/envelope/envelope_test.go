package envelope

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	kerrors "github.com/ramiz7171/NoteMe-sub001/internal/errors"
)

func TestEncode_RoundTrip(t *testing.T) {
	nonce := bytes.Repeat([]byte{0xAB}, NonceSize)
	box := []byte("sealed-bytes-go-here")

	env := Encode(nonce, box)
	if !IsEncrypted(env) {
		t.Fatalf("Encode produced a string IsEncrypted does not recognize: %q", env)
	}

	gotNonce, gotBox, err := Decode(env)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !bytes.Equal(gotNonce, nonce) {
		t.Errorf("nonce mismatch: got %x, want %x", gotNonce, nonce)
	}
	if !bytes.Equal(gotBox, box) {
		t.Errorf("box mismatch: got %x, want %x", gotBox, box)
	}
}

func TestIsEncrypted_PlaintextNeverMatches(t *testing.T) {
	samples := []string{
		"",
		"plain meeting notes",
		"noteme:",
		"noteme:enc:",
		"noteme:enc:v2:" + "AAAA", // future version is not this codec's envelope
		"ENC:AAAA",
	}
	for _, s := range samples {
		if IsEncrypted(s) {
			t.Errorf("IsEncrypted(%q) = true, want false", s)
		}
	}
}

func TestDecode_Malformed(t *testing.T) {
	cases := map[string]string{
		"no marker":     "just some text",
		"bad base64":    Marker + "!!!not-base64!!!",
		"short payload": Marker + "QUJD", // 3 bytes, below nonce size
	}
	for name, input := range cases {
		if _, _, err := Decode(input); !errors.Is(err, kerrors.ErrMalformedEnvelope) {
			t.Errorf("%s: Decode error = %v, want ErrMalformedEnvelope", name, err)
		}
	}
}

func TestBinary_RoundTrip(t *testing.T) {
	nonce := bytes.Repeat([]byte{0x01}, NonceSize)
	box := []byte{0xDE, 0xAD, 0xBE, 0xEF}

	blob := EncodeBinary(nonce, box)
	if !IsEncryptedBinary(blob) {
		t.Fatal("EncodeBinary produced a blob IsEncryptedBinary does not recognize")
	}
	if IsEncryptedBinary([]byte("plain file contents")) {
		t.Error("IsEncryptedBinary matched a plain blob")
	}

	gotNonce, gotBox, err := DecodeBinary(blob)
	if err != nil {
		t.Fatalf("DecodeBinary failed: %v", err)
	}
	if !bytes.Equal(gotNonce, nonce) || !bytes.Equal(gotBox, box) {
		t.Error("binary round trip did not preserve nonce and box")
	}
}

func TestDecodeBinary_Malformed(t *testing.T) {
	if _, _, err := DecodeBinary([]byte("no magic here")); !errors.Is(err, kerrors.ErrMalformedEnvelope) {
		t.Errorf("missing magic: error = %v, want ErrMalformedEnvelope", err)
	}
	short := append(append([]byte{}, BinaryMagic...), 0x01, 0x02)
	if _, _, err := DecodeBinary(short); !errors.Is(err, kerrors.ErrMalformedEnvelope) {
		t.Errorf("short payload: error = %v, want ErrMalformedEnvelope", err)
	}
}

func TestMarker_DistinguishableFromItsOwnOutput(t *testing.T) {
	// An envelope fed back through Encode must still be detected, and the
	// marker must survive as a strict prefix.
	env := Encode(bytes.Repeat([]byte{0}, NonceSize), []byte("x"))
	if !strings.HasPrefix(env, Marker) {
		t.Fatal("envelope does not start with marker")
	}
}
