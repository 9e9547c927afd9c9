package crypto

import "github.com/MKhiriev/group-vault/models"

//go:generate mockgen -source=interfaces.go -destination=../mock/vault_crypto_mock.go -package=mock

// VaultCrypto holds every cryptographic primitive of the vault. It knows
// nothing about the network, the blob store or sessions.
//
// Flow for a single group:
//
//	salt          = GenerateSalt()
//	key           = DeriveKey(passphrase, salt)
//	iv, ct        = EncryptItemList(items, key)
//	items         = DecryptItemList(iv, ct, key)
type VaultCrypto interface {
	// GenerateSalt returns 16 random bytes encoded as standard base64.
	GenerateSalt() (string, error)

	// DeriveKey stretches passphrase with PBKDF2-HMAC-SHA256 into a 256-bit
	// AES key. Same passphrase and salt always yield the same key.
	DeriveKey(passphrase []byte, salt string) ([]byte, error)

	// Encrypt seals plaintext with AES-256-GCM under a fresh 96-bit nonce.
	// Both outputs are standard base64.
	Encrypt(plaintext, key []byte) (iv string, ciphertext string, err error)

	// Decrypt opens a value produced by Encrypt. A wrong key or tampered
	// ciphertext yields ErrAuthFailed.
	Decrypt(iv, ciphertext string, key []byte) ([]byte, error)

	// EncryptItemList encodes items as JSON and seals them.
	EncryptItemList(items []models.GroupItem, key []byte) (iv string, ciphertext string, err error)

	// DecryptItemList is the inverse of EncryptItemList.
	DecryptItemList(iv, ciphertext string, key []byte) ([]models.GroupItem, error)

	// EncryptFile seals a raw file and wraps it with its metadata.
	EncryptFile(data []byte, meta models.FileMetadata, key []byte) (models.EncryptedFileBlob, error)

	// DecryptFile returns the raw file bytes of blob.
	DecryptFile(blob models.EncryptedFileBlob, key []byte) ([]byte, error)
}
