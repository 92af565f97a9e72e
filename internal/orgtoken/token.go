// Package orgtoken resolves the organization scope from an encrypted
// token. The wire format is fixed by the issuing system and must stay
// bit-exact for interop:
//
//	token     = b64url(envelope) "." b64url(PKCS#8 DER RSA private key)
//	envelope  = wrappedKey(256 bytes, RSA-OAEP/SHA-1) || iv(16 bytes) || ciphertext
//	plaintext = PKCS#7-unpadded AES-256-CBC decryption, a small serialized
//	            map carrying an org_id field
//
// Decode keeps the failure reason; OrgID collapses every failure to an
// empty org id, which the caller layer turns into an authorization
// failure. Neither ever panics on hostile input.
package orgtoken

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rsa"
	"crypto/sha1"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

const (
	wrappedKeyLen = 256 // RSA-2048 OAEP block carrying the AES key
	ivLen         = 16  // AES-CBC initialization vector
)

// Decode errors. All of them collapse to "" at the OrgID boundary; they
// exist so failures stay observable in logs and tests.
var (
	ErrMalformedToken = errors.New("orgtoken: token is not <payload>.<key>")
	ErrBadEnvelope    = errors.New("orgtoken: envelope too short")
	ErrNotRSAKey      = errors.New("orgtoken: key part is not an RSA private key")
	ErrBadCiphertext  = errors.New("orgtoken: ciphertext is not block-aligned")
	ErrNoOrgID        = errors.New("orgtoken: payload carries no org_id")
)

// OrgID resolves the organization id from a token, or "" if the token
// is structurally or cryptographically invalid.
func OrgID(token string) string {
	id, err := Decode(token)
	if err != nil {
		return ""
	}
	return id
}

// Decode resolves the organization id from a token, preserving the
// failure reason.
func Decode(token string) (string, error) {
	payloadPart, keyPart, ok := strings.Cut(token, ".")
	if !ok {
		return "", ErrMalformedToken
	}

	envelope, err := decodeBase64URL(payloadPart)
	if err != nil {
		return "", fmt.Errorf("orgtoken: decode payload: %w", err)
	}
	keyDER, err := decodeBase64URL(keyPart)
	if err != nil {
		return "", fmt.Errorf("orgtoken: decode key: %w", err)
	}

	if len(envelope) < wrappedKeyLen+ivLen {
		return "", ErrBadEnvelope
	}
	wrappedKey := envelope[:wrappedKeyLen]
	iv := envelope[wrappedKeyLen : wrappedKeyLen+ivLen]
	ciphertext := envelope[wrappedKeyLen+ivLen:]

	parsed, err := x509.ParsePKCS8PrivateKey(keyDER)
	if err != nil {
		return "", fmt.Errorf("orgtoken: parse private key: %w", err)
	}
	priv, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return "", ErrNotRSAKey
	}

	aesKey, err := rsa.DecryptOAEP(sha1.New(), nil, priv, wrappedKey, nil)
	if err != nil {
		return "", fmt.Errorf("orgtoken: unwrap content key: %w", err)
	}

	block, err := aes.NewCipher(aesKey)
	if err != nil {
		return "", fmt.Errorf("orgtoken: content key: %w", err)
	}
	if len(ciphertext) == 0 || len(ciphertext)%block.BlockSize() != 0 {
		return "", ErrBadCiphertext
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)
	plaintext = unpadPKCS7(plaintext)

	return extractOrgID(string(plaintext))
}

// decodeBase64URL restores URL-safe Base64 ("-"/"_" for "+"/"/",
// padding optional) to standard Base64 and decodes it.
func decodeBase64URL(s string) ([]byte, error) {
	s = strings.ReplaceAll(s, "-", "+")
	s = strings.ReplaceAll(s, "_", "/")
	if m := len(s) % 4; m != 0 {
		s += strings.Repeat("=", 4-m)
	}
	return base64.StdEncoding.DecodeString(s)
}

// unpadPKCS7 strips PKCS#7 padding. Data that does not look padded is
// returned untouched; the producer does not always pad.
func unpadPKCS7(data []byte) []byte {
	if len(data) == 0 {
		return data
	}
	pad := int(data[len(data)-1])
	if pad < 1 || pad > aes.BlockSize || pad > len(data) {
		return data
	}
	for _, b := range data[len(data)-pad:] {
		if int(b) != pad {
			return data
		}
	}
	return data[:len(data)-pad]
}

// Upstream producers have emitted both JSON and single-quoted map
// literals; the fallback scan accepts either.
var orgIDRe = regexp.MustCompile(`['"]?org_id['"]?\s*:\s*['"]?([0-9A-Za-z_-]+)`)

// extractOrgID pulls the org_id field out of the decrypted payload.
func extractOrgID(plaintext string) (string, error) {
	var m map[string]any
	if err := json.Unmarshal([]byte(plaintext), &m); err == nil {
		switch v := m["org_id"].(type) {
		case string:
			if v != "" {
				return v, nil
			}
		case float64:
			return fmt.Sprintf("%.0f", v), nil
		}
	}

	if match := orgIDRe.FindStringSubmatch(plaintext); match != nil {
		return match[1], nil
	}
	return "", ErrNoOrgID
}
