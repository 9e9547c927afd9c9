package models

// ItemDraft is the caller-supplied part of a new [GroupItem]. The id,
// creation time and, for files, the blob path are assigned on add.
type ItemDraft struct {
	Type    ItemType
	Name    string
	Content string
	URL     string
}

// FileUpload is the plaintext file attached to a file draft.
type FileUpload struct {
	Filename string
	MimeType string
	Data     []byte
}
