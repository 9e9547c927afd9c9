// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

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

	"github.com/MKhiriev/group-vault/models"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// SaltSize is the length of a group salt in bytes.
	SaltSize = 16
	// KeySize is the length of a derived AES-256 key in bytes.
	KeySize = 32
	// NonceSize is the length of an AES-GCM nonce in bytes.
	NonceSize = 12
	// KDFIterations is the PBKDF2 work factor. Existing vaults depend on it,
	// so it is not tunable.
	KDFIterations = 100000
)

// vaultCrypto is the private implementation of [VaultCrypto].
type vaultCrypto struct {
	iterations int
	random     io.Reader
}

// NewVaultCrypto constructs a [VaultCrypto] using PBKDF2-HMAC-SHA256 with
// [KDFIterations] rounds and AES-256-GCM.
func NewVaultCrypto() VaultCrypto {
	return &vaultCrypto{
		iterations: KDFIterations,
		random:     rand.Reader,
	}
}

// GenerateSalt implements [VaultCrypto].
func (c *vaultCrypto) GenerateSalt() (string, error) {
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(c.random, salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	return base64.StdEncoding.EncodeToString(salt), nil
}

// DeriveKey implements [VaultCrypto]. A salt that is not valid base64 is
// reported as [ErrInvalidSalt].
func (c *vaultCrypto) DeriveKey(passphrase []byte, salt string) ([]byte, error) {
	rawSalt, err := base64.StdEncoding.DecodeString(salt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSalt, err)
	}
	return pbkdf2.Key(passphrase, rawSalt, c.iterations, KeySize, sha256.New), nil
}

// Encrypt implements [VaultCrypto].
func (c *vaultCrypto) Encrypt(plaintext, key []byte) (string, string, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return "", "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(c.random, nonce); err != nil {
		return "", "", fmt.Errorf("generate nonce: %w", err)
	}

	ciphertext := gcm.Seal(nil, nonce, plaintext, nil)
	return base64.StdEncoding.EncodeToString(nonce), base64.StdEncoding.EncodeToString(ciphertext), nil
}

// Decrypt implements [VaultCrypto].
func (c *vaultCrypto) Decrypt(iv, ciphertext string, key []byte) ([]byte, error) {
	nonce, err := base64.StdEncoding.DecodeString(iv)
	if err != nil {
		return nil, fmt.Errorf("%w: decode iv: %v", ErrInvalidCiphertext, err)
	}
	sealed, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return nil, fmt.Errorf("%w: decode ciphertext: %v", ErrInvalidCiphertext, err)
	}

	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != gcm.NonceSize() {
		return nil, fmt.Errorf("%w: iv is %d bytes", ErrInvalidCiphertext, len(nonce))
	}

	// gcm.Open only fails on tag mismatch here: wrong key or tampered data.
	plaintext, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, ErrAuthFailed
	}
	return plaintext, nil
}

// EncryptItemList implements [VaultCrypto]. A nil list is sealed as "[]".
func (c *vaultCrypto) EncryptItemList(items []models.GroupItem, key []byte) (string, string, error) {
	if items == nil {
		items = []models.GroupItem{}
	}
	plaintext, err := json.Marshal(items)
	if err != nil {
		return "", "", fmt.Errorf("marshal items: %w", err)
	}
	defer ClearBytes(plaintext)

	return c.Encrypt(plaintext, key)
}

// DecryptItemList implements [VaultCrypto].
func (c *vaultCrypto) DecryptItemList(iv, ciphertext string, key []byte) ([]models.GroupItem, error) {
	plaintext, err := c.Decrypt(iv, ciphertext, key)
	if err != nil {
		return nil, err
	}
	defer ClearBytes(plaintext)

	items := make([]models.GroupItem, 0)
	if err := json.Unmarshal(plaintext, &items); err != nil {
		return nil, fmt.Errorf("%w: unmarshal items: %v", ErrInvalidCiphertext, err)
	}
	return items, nil
}

// EncryptFile implements [VaultCrypto].
func (c *vaultCrypto) EncryptFile(data []byte, meta models.FileMetadata, key []byte) (models.EncryptedFileBlob, error) {
	iv, ciphertext, err := c.Encrypt(data, key)
	if err != nil {
		return models.EncryptedFileBlob{}, fmt.Errorf("encrypt file: %w", err)
	}
	return models.EncryptedFileBlob{IV: iv, Ciphertext: ciphertext, Metadata: meta}, nil
}

// DecryptFile implements [VaultCrypto].
func (c *vaultCrypto) DecryptFile(blob models.EncryptedFileBlob, key []byte) ([]byte, error) {
	return c.Decrypt(blob.IV, blob.Ciphertext, key)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: got %d bytes", ErrInvalidKey, len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return gcm, nil
}

// ClearBytes overwrites b with zeroes.
func ClearBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// IsAuthFailure reports whether err means the key did not open the data.
func IsAuthFailure(err error) bool {
	return errors.Is(err, ErrAuthFailed)
}
