package api

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/hkdf"
)

const (
	secureCookieVersion    = "v1"
	secureCookieKeySize    = 32
	secureCookieAADPrefix  = "aura.cookie."
	secureCookieVersionSep = "."
)

var (
	errInvalidSecureCookieValue = errors.New("invalid secure cookie value")
	errSecureCookiePurpose      = errors.New("secure cookie purpose is required")
	errSecureCookieCodecUnset   = errors.New("secure cookie codec is not initialized")
)

// secureCookieCodec seals cookie values with AES-GCM. The purpose is bound as
// additional data, so a value sealed for one cookie never opens as another.
// Sealed values look like "v1.<base64url(nonce || ciphertext)>".
type secureCookieCodec struct {
	aead cipher.AEAD
}

func newSecureCookieCodec(secretKey []byte) (*secureCookieCodec, error) {
	if len(secretKey) == 0 {
		return nil, errors.New("secure cookie secret key is required")
	}

	key, err := deriveSecureCookieKey(secretKey)
	if err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("init secure cookie cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("init secure cookie aead: %w", err)
	}
	return &secureCookieCodec{aead: aead}, nil
}

// deriveSecureCookieKey separates the cookie key from the JWT signing key.
func deriveSecureCookieKey(secretKey []byte) ([]byte, error) {
	key := make([]byte, secureCookieKeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secretKey, nil, []byte(secureCookieHKDFLabel)), key); err != nil {
		return nil, fmt.Errorf("derive secure cookie key: %w", err)
	}
	return key, nil
}

func (codec *secureCookieCodec) seal(purpose string, plaintext []byte) (string, error) {
	aad, err := codec.additionalData(purpose)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, codec.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("generate secure cookie nonce: %w", err)
	}
	sealed := codec.aead.Seal(nonce, nonce, plaintext, aad)
	return secureCookieVersion + secureCookieVersionSep + base64.RawURLEncoding.EncodeToString(sealed), nil
}

func (codec *secureCookieCodec) open(purpose string, rawValue string) ([]byte, error) {
	aad, err := codec.additionalData(purpose)
	if err != nil {
		return nil, err
	}

	version, encoded, found := strings.Cut(strings.TrimSpace(rawValue), secureCookieVersionSep)
	if !found || version != secureCookieVersion || encoded == "" {
		return nil, errInvalidSecureCookieValue
	}
	sealed, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, errInvalidSecureCookieValue
	}

	nonceSize := codec.aead.NonceSize()
	if len(sealed) <= nonceSize {
		return nil, errInvalidSecureCookieValue
	}
	plaintext, err := codec.aead.Open(nil, sealed[:nonceSize], sealed[nonceSize:], aad)
	if err != nil {
		return nil, errInvalidSecureCookieValue
	}
	return plaintext, nil
}

func (codec *secureCookieCodec) sealJSON(purpose string, value any) (string, error) {
	serialized, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("encode %s cookie: %w", purpose, err)
	}
	return codec.seal(purpose, serialized)
}

func (codec *secureCookieCodec) openJSON(purpose string, rawValue string, target any) error {
	plaintext, err := codec.open(purpose, rawValue)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(plaintext, target); err != nil {
		return errInvalidSecureCookieValue
	}
	return nil
}

func (codec *secureCookieCodec) additionalData(purpose string) ([]byte, error) {
	if codec == nil || codec.aead == nil {
		return nil, errSecureCookieCodecUnset
	}
	purpose = strings.TrimSpace(purpose)
	if purpose == "" {
		return nil, errSecureCookiePurpose
	}
	return []byte(secureCookieAADPrefix + purpose), nil
}
