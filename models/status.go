package models

// GroupStatus is the decryption state of a single group within a session.
type GroupStatus string

const (
	// StatusPending means the group is queued for the next unlock batch.
	StatusPending GroupStatus = "pending"
	// StatusDecrypting means a key derivation for the group is in flight.
	StatusDecrypting GroupStatus = "decrypting"
	// StatusSuccess means the group is unlocked. It is sticky for the session.
	StatusSuccess GroupStatus = "success"
	// StatusFailed means the last attempt did not authenticate.
	StatusFailed GroupStatus = "failed"
)

// UnlockReport summarises one unlock batch.
type UnlockReport struct {
	Attempted []string
	Unlocked  []string
	Failed    []string
}

// ReconcileReport lists file blobs found without a referencing item.
type ReconcileReport struct {
	Scanned  int
	Orphans  []string
	Deleted  []string
	Failures map[string]string
}

// ItemContent is the plaintext payload of an activated item.
type ItemContent struct {
	Item     GroupItem
	Data     []byte
	URL      string
	Filename string
	MimeType string
}
