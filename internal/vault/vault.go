// Package vault encrypts the sensitive credential field before it is
// persisted. AES-256-CBC with a fresh random IV per call; tokens are
// stored as ivHex:cipherHex, the same format already at rest.
//
// Note: CBC carries no integrity tag, so a tampered token decrypts to
// garbage rather than failing authentication. Kept for compatibility
// with existing stored credentials.
package vault

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrBadKey         = errors.New("vault: key must be 64 hex chars (32 bytes)")
	ErrMalformedToken = errors.New("vault: malformed ciphertext token")
)

type Vault struct {
	key []byte
}

// New builds a vault from a hex-encoded 256-bit key.
func New(hexKey string) (*Vault, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil || len(key) != 32 {
		return nil, ErrBadKey
	}
	return &Vault{key: key}, nil
}

// Encrypt returns ivHex:cipherHex for the given plaintext. A fresh IV is
// generated per call, so identical plaintexts never share a token.
func (v *Vault) Encrypt(plaintext string) (string, error) {
	block, err := aes.NewCipher(v.key)
	if err != nil {
		return "", err
	}

	iv := make([]byte, aes.BlockSize)
	if _, err := rand.Read(iv); err != nil {
		return "", fmt.Errorf("vault: generate iv: %w", err)
	}

	padded := pkcs7Pad([]byte(plaintext), aes.BlockSize)
	ct := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ct, padded)

	return hex.EncodeToString(iv) + ":" + hex.EncodeToString(ct), nil
}

// Decrypt reverses Encrypt. Any structural problem with the token (bad
// split, wrong IV length, non-hex data, broken padding) is reported as
// ErrMalformedToken.
func (v *Vault) Decrypt(token string) (string, error) {
	ivHex, ctHex, ok := strings.Cut(token, ":")
	if !ok {
		return "", ErrMalformedToken
	}

	iv, err := hex.DecodeString(ivHex)
	if err != nil || len(iv) != aes.BlockSize {
		return "", ErrMalformedToken
	}

	ct, err := hex.DecodeString(ctHex)
	if err != nil || len(ct) == 0 || len(ct)%aes.BlockSize != 0 {
		return "", ErrMalformedToken
	}

	block, err := aes.NewCipher(v.key)
	if err != nil {
		return "", err
	}

	plain := make([]byte, len(ct))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plain, ct)

	plain, err = pkcs7Unpad(plain, aes.BlockSize)
	if err != nil {
		return "", ErrMalformedToken
	}
	return string(plain), nil
}

func pkcs7Pad(b []byte, size int) []byte {
	n := size - len(b)%size
	return append(b, bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs7Unpad(b []byte, size int) ([]byte, error) {
	if len(b) == 0 || len(b)%size != 0 {
		return nil, errors.New("invalid padded length")
	}
	n := int(b[len(b)-1])
	if n == 0 || n > size || n > len(b) {
		return nil, errors.New("invalid padding byte")
	}
	for _, p := range b[len(b)-n:] {
		if int(p) != n {
			return nil, errors.New("inconsistent padding")
		}
	}
	return b[:len(b)-n], nil
}
