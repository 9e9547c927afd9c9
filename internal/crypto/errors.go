package crypto

import "errors"

var (
	// ErrAuthFailed is the single signal for "wrong key or corrupted data".
	// Callers must not try to tell the two apart.
	ErrAuthFailed = errors.New("authentication failed: wrong key or corrupted data")
	// ErrInvalidCiphertext means the stored value is not decodable at all.
	ErrInvalidCiphertext = errors.New("invalid ciphertext")
	// ErrInvalidSalt means a group salt is not valid base64.
	ErrInvalidSalt = errors.New("invalid salt")
	// ErrInvalidKey means a key is not 32 bytes long.
	ErrInvalidKey = errors.New("invalid key length")
)
