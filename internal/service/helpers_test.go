package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/group-vault/internal/config"
	"github.com/MKhiriev/group-vault/internal/logger"
	"github.com/MKhiriev/group-vault/internal/store"
	"github.com/MKhiriev/group-vault/internal/utils"
	"github.com/MKhiriev/group-vault/internal/workers"
	"github.com/MKhiriev/group-vault/models"
)

// sharedOpener hands out the same store for every credential, the way a
// local vault does. rejected credentials fail the access check.
type sharedOpener struct {
	mu       sync.Mutex
	st       store.BlobStore
	rejected map[string]bool
	opened   []string
}

func (o *sharedOpener) Open(credential string) (store.BlobStore, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.opened = append(o.opened, credential)
	if o.rejected[credential] {
		return rejectingStore{o.st}, nil
	}
	return o.st, nil
}

// rejectingStore fails every call as an unauthorized credential.
type rejectingStore struct{ store.BlobStore }

func (rejectingStore) GetBlob(context.Context, string) (models.Blob, error) {
	return models.Blob{}, store.ErrUnauthorized
}

type testEnv struct {
	store  store.BlobStore
	opener *sharedOpener
	svcs   *Services
	queue  *workers.Queue
}

func testVaultConfig() config.Vault {
	return config.Vault{
		Name:           "test",
		CommitAttempts: 3,
		CommitBackoff:  time.Millisecond,
	}
}

func newTestEnv(t *testing.T, cfg config.Vault) *testEnv {
	t.Helper()
	st := store.NewMemoryStore(utils.NewUUIDGenerator())
	return newTestEnvWithStore(t, cfg, st)
}

func newTestEnvWithStore(t *testing.T, cfg config.Vault, st store.BlobStore) *testEnv {
	t.Helper()
	q := workers.NewQueue(8, logger.Nop())
	q.Run()
	t.Cleanup(q.Stop)

	opener := &sharedOpener{st: st, rejected: map[string]bool{}}
	return &testEnv{
		store:  st,
		opener: opener,
		svcs:   NewServices(cfg, opener, q, utils.NewUUIDGenerator(), logger.Nop()),
		queue:  q,
	}
}

// newSession returns a loaded session reading anonymously.
func (e *testEnv) newSession(t *testing.T) *Session {
	t.Helper()
	sess := NewSession(e.store)
	require.NoError(t, e.svcs.IndexService.Load(context.Background(), sess))
	return sess
}

// adminSession returns a loaded, authenticated session.
func (e *testEnv) adminSession(t *testing.T) *Session {
	t.Helper()
	sess := e.newSession(t)
	require.NoError(t, e.svcs.AdminService.Authenticate(context.Background(), sess, "admin-token"))
	return sess
}

func (e *testEnv) unlock(t *testing.T, sess *Session, passphrase string) {
	t.Helper()
	sess.SetPassphrase([]byte(passphrase))
	_, err := e.svcs.UnlockService.Unlock(context.Background(), sess)
	require.NoError(t, err)
}
