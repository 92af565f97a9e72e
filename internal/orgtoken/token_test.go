package orgtoken

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1"
	"crypto/x509"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
)

// mintToken builds a well-formed token around the given plaintext, the
// same way the issuing system does.
func mintToken(t *testing.T, plaintext string) string {
	t.Helper()

	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate rsa key: %v", err)
	}

	aesKey := make([]byte, 32)
	if _, err := rand.Read(aesKey); err != nil {
		t.Fatalf("generate aes key: %v", err)
	}
	iv := make([]byte, aes.BlockSize)
	if _, err := rand.Read(iv); err != nil {
		t.Fatalf("generate iv: %v", err)
	}

	padded := padPKCS7([]byte(plaintext))
	block, err := aes.NewCipher(aesKey)
	if err != nil {
		t.Fatalf("aes cipher: %v", err)
	}
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	wrappedKey, err := rsa.EncryptOAEP(sha1.New(), rand.Reader, &priv.PublicKey, aesKey, nil)
	if err != nil {
		t.Fatalf("wrap aes key: %v", err)
	}

	keyDER, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		t.Fatalf("marshal private key: %v", err)
	}

	envelope := append(append(wrappedKey, iv...), ciphertext...)
	return base64.RawURLEncoding.EncodeToString(envelope) + "." + base64.RawURLEncoding.EncodeToString(keyDER)
}

func padPKCS7(data []byte) []byte {
	pad := aes.BlockSize - len(data)%aes.BlockSize
	out := make([]byte, len(data)+pad)
	copy(out, data)
	for i := len(data); i < len(out); i++ {
		out[i] = byte(pad)
	}
	return out
}

func TestOrgIDJSONPayload(t *testing.T) {
	token := mintToken(t, `{"org_id": "8315", "plan": "pro"}`)
	if got := OrgID(token); got != "8315" {
		t.Errorf("OrgID() = %q, want %q", got, "8315")
	}
}

func TestOrgIDNumericJSONPayload(t *testing.T) {
	token := mintToken(t, `{"org_id": 8315}`)
	if got := OrgID(token); got != "8315" {
		t.Errorf("OrgID() = %q, want %q", got, "8315")
	}
}

func TestOrgIDSingleQuotedPayload(t *testing.T) {
	token := mintToken(t, `{'org_id': '42', 'role': 'admin'}`)
	if got := OrgID(token); got != "42" {
		t.Errorf("OrgID() = %q, want %q", got, "42")
	}
}

func TestOrgIDMissingField(t *testing.T) {
	token := mintToken(t, `{"plan": "pro"}`)

	if got := OrgID(token); got != "" {
		t.Errorf("OrgID() = %q, want empty", got)
	}
	_, err := Decode(token)
	if !errors.Is(err, ErrNoOrgID) {
		t.Errorf("Decode() error = %v, want ErrNoOrgID", err)
	}
}

func TestOrgIDMalformedToken(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "no separator", token: "abcdef"},
		{name: "not base64", token: "!!!.???"},
		{name: "short envelope", token: base64.RawURLEncoding.EncodeToString([]byte("tiny")) + "." + base64.RawURLEncoding.EncodeToString([]byte("key"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OrgID(tt.token); got != "" {
				t.Errorf("OrgID(%q) = %q, want empty", tt.token, got)
			}
		})
	}
}

func TestOrgIDCorruptedCiphertext(t *testing.T) {
	token := mintToken(t, `{"org_id": "8315"}`)

	payload, key, _ := strings.Cut(token, ".")
	raw, err := decodeBase64URL(payload)
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	// Flip a bit in the wrapped key so OAEP unwrapping fails
	raw[10] ^= 0xFF
	corrupted := base64.RawURLEncoding.EncodeToString(raw) + "." + key

	if got := OrgID(corrupted); got != "" {
		t.Errorf("OrgID() on corrupted token = %q, want empty", got)
	}
}

func TestOrgIDMisalignedCiphertext(t *testing.T) {
	token := mintToken(t, `{"org_id": "8315"}`)

	payload, key, _ := strings.Cut(token, ".")
	raw, err := decodeBase64URL(payload)
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	// Truncate to break AES block alignment
	raw = raw[:len(raw)-5]
	truncated := base64.RawURLEncoding.EncodeToString(raw) + "." + key

	_, err = Decode(truncated)
	if !errors.Is(err, ErrBadCiphertext) {
		t.Errorf("Decode() error = %v, want ErrBadCiphertext", err)
	}
}

func TestDecodeBase64URLPaddingOptional(t *testing.T) {
	want := []byte{0xfb, 0xef, 0xbe, 0x01, 0x7f, 0xff}
	withPad := base64.URLEncoding.EncodeToString(want)
	withoutPad := base64.RawURLEncoding.EncodeToString(want)

	for _, enc := range []string{withPad, withoutPad} {
		got, err := decodeBase64URL(enc)
		if err != nil {
			t.Fatalf("decodeBase64URL(%q) failed: %v", enc, err)
		}
		if string(got) != string(want) {
			t.Errorf("decodeBase64URL(%q) = %q, want %q", enc, got, want)
		}
	}
}
