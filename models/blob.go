package models

import "time"

// Blob is one object of the versioned blob store.
//
// VersionTag is an opaque token minted by the store on every successful
// write. Conditional writes and deletes must present the tag they last
// observed.
type Blob struct {
	Path       string `json:"path"`
	Content    []byte `json:"content"`
	VersionTag string `json:"version_tag"`
}

// BlobInfo is a listing entry returned without the blob content.
type BlobInfo struct {
	Path       string    `json:"path"`
	VersionTag string    `json:"version_tag"`
	Size       int64     `json:"size"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// PutBlobRequest is the body of a conditional write. An empty VersionTag
// means create-only.
type PutBlobRequest struct {
	Content    []byte `json:"content"`
	VersionTag string `json:"version_tag,omitempty"`
}

// PutBlobResponse carries the tag minted for a successful write.
type PutBlobResponse struct {
	VersionTag string `json:"version_tag"`
}

// VersionResponse is returned by the blob server's version route.
type VersionResponse struct {
	Version string `json:"version"`
	Date    string `json:"date,omitempty"`
	Commit  string `json:"commit,omitempty"`
}
