// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// IndexVersion is the schema version written into every vault index.
const IndexVersion = "2.0"

// IndexPath is the blob-store path of the vault index document.
const IndexPath = "vault-index.json"

// FilesPrefix is the blob-store directory holding encrypted file payloads.
const FilesPrefix = "files/"

// ItemType is the semantic kind of a [GroupItem]. It decides which of the
// Content, URL or Path fields carries the item payload.
type ItemType string

const (
	// ItemTypeFile is an uploaded file. The encrypted payload lives in a
	// separate blob addressed by GroupItem.Path.
	ItemTypeFile ItemType = "file"

	// ItemTypeLink is a bookmark. GroupItem.URL holds the target.
	ItemTypeLink ItemType = "link"

	// ItemTypeText is a free-form note. GroupItem.Content holds the text.
	ItemTypeText ItemType = "text"
)

// Valid reports whether t is one of the known item types.
func (t ItemType) Valid() bool {
	switch t {
	case ItemTypeFile, ItemTypeLink, ItemTypeText:
		return true
	}
	return false
}

// VaultIndex is the single plaintext document stored at [IndexPath].
// Group contents are opaque ciphertext; only ids, names, salts and
// timestamps are readable without a passphrase.
type VaultIndex struct {
	Version string  `json:"version"`
	Groups  []Group `json:"groups"`
}

// NewVaultIndex returns the bootstrap index used when the store holds no
// index yet.
func NewVaultIndex() VaultIndex {
	return VaultIndex{Version: IndexVersion, Groups: []Group{}}
}

// Clone returns a deep copy of the index so a mutation attempt never leaks
// into the session's committed view.
func (v VaultIndex) Clone() VaultIndex {
	groups := make([]Group, len(v.Groups))
	copy(groups, v.Groups)
	return VaultIndex{Version: v.Version, Groups: groups}
}

// FindGroup returns the position of the group with the given id, or -1.
func (v VaultIndex) FindGroup(groupID string) int {
	for i := range v.Groups {
		if v.Groups[i].ID == groupID {
			return i
		}
	}
	return -1
}

// Group is one independently protected compartment of the vault.
//
// Salt, IV and Ciphertext are standard base64. Ciphertext is the AES-GCM
// encryption of the JSON-encoded []GroupItem under the key derived from the
// group passphrase and Salt.
type Group struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Salt       string `json:"salt"`
	IV         string `json:"iv"`
	Ciphertext string `json:"ciphertext"`
	// Created and Modified are Unix milliseconds.
	Created  int64 `json:"created"`
	Modified int64 `json:"modified"`
}

// GroupItem is a single entry of a group. Exactly one of Content, URL or
// Path is populated, chosen by Type.
type GroupItem struct {
	ID       string   `json:"id"`
	Type     ItemType `json:"type"`
	Name     string   `json:"name"`
	Content  string   `json:"content,omitempty"`
	URL      string   `json:"url,omitempty"`
	Path     string   `json:"path,omitempty"`
	Size     int64    `json:"size,omitempty"`
	MimeType string   `json:"mimeType,omitempty"`
	Created  int64    `json:"created"`
}

// FileBlobPath returns the blob-store path of the encrypted payload for the
// file item with the given id.
func FileBlobPath(itemID string) string {
	return fmt.Sprintf("%s%s.enc", FilesPrefix, itemID)
}

// DecryptedGroup is the in-memory plaintext view of an unlocked group.
// It is never serialised; Key is the derived AES-256 key kept so the group
// can be re-encrypted after a mutation without asking for the passphrase.
type DecryptedGroup struct {
	ID    string
	Name  string
	Items []GroupItem
	Key   []byte `json:"-"`
}

// FindItem returns the position of the item with the given id, or -1.
func (g DecryptedGroup) FindItem(itemID string) int {
	for i := range g.Items {
		if g.Items[i].ID == itemID {
			return i
		}
	}
	return -1
}

// FileMetadata describes the plaintext file wrapped by an [EncryptedFileBlob].
type FileMetadata struct {
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	Type     string `json:"type"`
}

// EncryptedFileBlob is the JSON document stored at [FileBlobPath].
type EncryptedFileBlob struct {
	IV         string       `json:"iv"`
	Ciphertext string       `json:"ciphertext"`
	Metadata   FileMetadata `json:"metadata"`
}
