package client

import (
	"fmt"
	"io"

	"github.com/MKhiriev/group-vault/internal/adapter"
	"github.com/MKhiriev/group-vault/internal/config"
	"github.com/MKhiriev/group-vault/internal/logger"
	"github.com/MKhiriev/group-vault/internal/store"
	"github.com/MKhiriev/group-vault/internal/utils"
	"github.com/MKhiriev/group-vault/models"
)

// storeOpener hands out blob store handles for a credential.
//
// Local backends have a single owner: every non-empty credential is
// accepted and all handles share one store. Remote handles carry the
// credential to the blob server and cache immutable file blobs.
type storeOpener struct {
	adapter   config.Adapter
	cacheSize int

	local  store.BlobStore
	closer io.Closer

	logger *logger.Logger
}

func newStoreOpener(cfg *config.ClientConfig, log *logger.Logger) (*storeOpener, error) {
	o := &storeOpener{adapter: cfg.Adapter, cacheSize: cfg.Vault.CacheSize, logger: log}

	switch cfg.Vault.Backend {
	case config.BackendBolt:
		st, err := store.NewBoltStore(cfg.Vault.BoltPath, utils.NewUUIDGenerator(), log)
		if err != nil {
			return nil, err
		}
		o.local, o.closer = st, st
	case config.BackendMemory:
		o.local = store.NewMemoryStore(utils.NewUUIDGenerator())
	case config.BackendHTTP:
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Vault.Backend)
	}

	return o, nil
}

func (o *storeOpener) Open(credential string) (store.BlobStore, error) {
	if o.local != nil {
		return o.local, nil
	}

	st, err := adapter.NewHTTPBlobStore(o.adapter, credential, o.logger)
	if err != nil {
		return nil, err
	}
	if o.cacheSize <= 0 {
		return st, nil
	}
	return store.NewCachedStore(st, o.cacheSize, models.FilesPrefix)
}

func (o *storeOpener) Close() error {
	if o.closer == nil {
		return nil
	}
	return o.closer.Close()
}
