package service

import (
	"sync"

	"github.com/MKhiriev/group-vault/internal/crypto"
	"github.com/MKhiriev/group-vault/internal/store"
	"github.com/MKhiriev/group-vault/models"
)

// Session is the whole per-user state of a vault client: the store handle
// and credential, the last observed index and its version tag, the
// decrypted groups and their unlock statuses, and the passphrase input.
//
// A Session is safe for concurrent use. Getters return copies.
type Session struct {
	mu sync.Mutex

	store      store.BlobStore
	credential string
	admin      bool

	index         models.VaultIndex
	indexTag      string
	loaded        bool
	uninitialized bool

	// groups keeps unlock order.
	groups     []models.DecryptedGroup
	statuses   map[string]*GroupFSM
	passphrase []byte
}

// NewSession starts a session reading through st without a credential.
func NewSession(st store.BlobStore) *Session {
	return &Session{
		store:    st,
		index:    models.NewVaultIndex(),
		statuses: make(map[string]*GroupFSM),
	}
}

func (s *Session) Store() store.BlobStore {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store
}

func (s *Session) Credential() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.credential
}

func (s *Session) IsAdmin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.admin
}

func (s *Session) Index() models.VaultIndex {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index.Clone()
}

func (s *Session) IndexTag() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexTag
}

// snapshot returns the index together with the tag it was read under.
func (s *Session) snapshot() (models.VaultIndex, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index.Clone(), s.indexTag
}

// Loaded reports whether the index was fetched at least once.
func (s *Session) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// Uninitialized reports whether the last load found no index. This is a
// convention: the store is not checked for other content.
func (s *Session) Uninitialized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.uninitialized
}

// SetPassphrase replaces the passphrase input. The previous value is
// zeroed; p is copied.
func (s *Session) SetPassphrase(p []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	crypto.ClearBytes(s.passphrase)
	s.passphrase = append([]byte(nil), p...)
}

// HasPassphrase reports whether a passphrase is waiting to be tried.
func (s *Session) HasPassphrase() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.passphrase) > 0
}

// Status returns the unlock status of a group. Groups never tried are
// pending.
func (s *Session) Status(groupID string) models.GroupStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f, ok := s.statuses[groupID]; ok {
		return f.State()
	}
	return models.StatusPending
}

// DecryptedGroups returns the unlocked groups in unlock order. Keys are
// not included.
func (s *Session) DecryptedGroups() []models.DecryptedGroup {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.DecryptedGroup, 0, len(s.groups))
	for _, g := range s.groups {
		c := copyGroup(g)
		c.Key = nil
		out = append(out, c)
	}
	return out
}

// DecryptedGroup returns one unlocked group without its key.
func (s *Session) DecryptedGroup(groupID string) (models.DecryptedGroup, bool) {
	g, ok := s.lookup(groupID)
	crypto.ClearBytes(g.Key)
	g.Key = nil
	return g, ok
}

// lookup returns a copy of an unlocked group including its key. It
// satisfies [GroupLookup].
func (s *Session) lookup(groupID string) (models.DecryptedGroup, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.groupPos(groupID)
	if i < 0 {
		return models.DecryptedGroup{}, false
	}
	return copyGroup(s.groups[i]), true
}

func (s *Session) groupPos(groupID string) int {
	for i := range s.groups {
		if s.groups[i].ID == groupID {
			return i
		}
	}
	return -1
}

// takePassphrase hands the passphrase to the caller and clears the field.
// The caller zeroes the returned slice.
func (s *Session) takePassphrase() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.passphrase
	s.passphrase = nil
	return p
}

func (s *Session) adopt(index models.VaultIndex, tag string, uninitialized bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.index = index.Clone()
	s.indexTag = tag
	s.loaded = true
	s.uninitialized = uninitialized
}

func (s *Session) authenticate(st store.BlobStore, credential string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store = st
	s.credential = credential
	s.admin = true
}

func (s *Session) demote() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.admin = false
}

// canMutate reports whether admin mutations may run, returning the store
// handle to use.
func (s *Session) canMutate() (store.BlobStore, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store, s.admin && s.store != nil
}

// transition moves a group's FSM, creating it in pending if absent.
func (s *Session) transition(groupID string, next models.GroupStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.statuses[groupID]
	if !ok {
		f = NewGroupFSM()
		s.statuses[groupID] = f
	}
	return f.Transition(next)
}

// cacheGroup stores g as unlocked. A group already cached is replaced in
// place and its old key zeroed.
func (s *Session) cacheGroup(g models.DecryptedGroup) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g = copyGroup(g)
	if i := s.groupPos(g.ID); i >= 0 {
		crypto.ClearBytes(s.groups[i].Key)
		s.groups[i] = g
		return
	}
	s.groups = append(s.groups, g)
}

// setItems replaces the item list of a cached group after a commit.
func (s *Session) setItems(groupID string, items []models.GroupItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.groupPos(groupID); i >= 0 {
		s.groups[i].Items = append([]models.GroupItem(nil), items...)
	}
}

// dropGroup forgets all decrypted state of a group.
func (s *Session) dropGroup(groupID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.groupPos(groupID); i >= 0 {
		crypto.ClearBytes(s.groups[i].Key)
		s.groups = append(s.groups[:i], s.groups[i+1:]...)
	}
	delete(s.statuses, groupID)
}

// cachedGroups returns copies of every unlocked group including keys.
func (s *Session) cachedGroups() []models.DecryptedGroup {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.DecryptedGroup, 0, len(s.groups))
	for _, g := range s.groups {
		out = append(out, copyGroup(g))
	}
	return out
}

// logout purges every secret except the credential.
func (s *Session) logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.groups {
		crypto.ClearBytes(s.groups[i].Key)
	}
	s.groups = nil
	s.statuses = make(map[string]*GroupFSM)
	crypto.ClearBytes(s.passphrase)
	s.passphrase = nil
	s.admin = false
}

func (s *Session) forgetCredential(anonymous store.BlobStore) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.credential = ""
	s.admin = false
	if anonymous != nil {
		s.store = anonymous
	}
}

func copyGroup(g models.DecryptedGroup) models.DecryptedGroup {
	return models.DecryptedGroup{
		ID:    g.ID,
		Name:  g.Name,
		Items: append([]models.GroupItem(nil), g.Items...),
		Key:   append([]byte(nil), g.Key...),
	}
}
