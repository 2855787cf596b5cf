// Package security generates the random secrets Aura needs outside request handling.
package security

import (
	"crypto/rand"
	"errors"
	"math/big"
)

const (
	// SecretKeyAlphabet drops look-alike characters (0/O, 1/l/I) so keys
	// survive being copied by hand.
	SecretKeyAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"

	MinSecretKeyLength = 32
)

var (
	errNegativeLength = errors.New("length must be non-negative")
	errEmptyAlphabet  = errors.New("alphabet must not be empty")
)

// NewSecretKey returns a value suitable for SECRET_KEY. Lengths below
// MinSecretKeyLength are raised to it.
func NewSecretKey(length int) (string, error) {
	return RandomString(max(length, MinSecretKeyLength), SecretKeyAlphabet)
}

// RandomString draws each character uniformly from alphabet using crypto/rand.
func RandomString(length int, alphabet string) (string, error) {
	switch {
	case length < 0:
		return "", errNegativeLength
	case length == 0:
		return "", nil
	case alphabet == "":
		return "", errEmptyAlphabet
	}

	size := big.NewInt(int64(len(alphabet)))
	out := make([]byte, length)
	for index := range out {
		position, err := rand.Int(rand.Reader, size)
		if err != nil {
			return "", err
		}
		out[index] = alphabet[position.Int64()]
	}
	return string(out), nil
}
