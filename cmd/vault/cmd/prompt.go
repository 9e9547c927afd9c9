package cmd

import (
	"bufio"
	"bytes"
	"crypto/subtle"
	"errors"
	"fmt"
	"os"
	"syscall"

	"golang.org/x/term"

	"github.com/MKhiriev/group-vault/internal/crypto"
)

const (
	passphraseEnv = "VAULT_PASSPHRASE"
	tokenEnv      = "VAULT_TOKEN"
)

var errMismatch = errors.New("passphrases do not match")

var stdin = bufio.NewReader(os.Stdin)

// readSecret reads one line without echo. Piped input is read as is.
func readSecret(prompt string) ([]byte, error) {
	fd := int(syscall.Stdin)
	fmt.Fprint(os.Stderr, prompt)

	if !term.IsTerminal(fd) {
		line, err := stdin.ReadBytes('\n')
		fmt.Fprintln(os.Stderr)
		if err != nil && len(line) == 0 {
			return nil, fmt.Errorf("failed to read input: %w", err)
		}
		return bytes.TrimRight(line, "\r\n"), nil
	}

	secret, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return secret, nil
}

// envSecret copies the value of name so the caller may clear it.
func envSecret(name string) []byte {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}
	return []byte(v)
}

// readNewPassphrase asks twice. The caller clears the result.
func readNewPassphrase() ([]byte, error) {
	if p := envSecret(passphraseEnv); p != nil {
		return p, nil
	}

	first, err := readSecret("New group passphrase: ")
	if err != nil {
		return nil, err
	}
	second, err := readSecret("Repeat passphrase: ")
	if err != nil {
		crypto.ClearBytes(first)
		return nil, err
	}
	defer crypto.ClearBytes(second)

	if len(first) == 0 {
		return nil, errors.New("passphrase must not be empty")
	}
	if subtle.ConstantTimeCompare(first, second) != 1 {
		crypto.ClearBytes(first)
		return nil, errMismatch
	}
	return first, nil
}
