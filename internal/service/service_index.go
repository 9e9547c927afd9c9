package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/group-vault/internal/crypto"
	"github.com/MKhiriev/group-vault/internal/logger"
	"github.com/MKhiriev/group-vault/internal/store"
	"github.com/MKhiriev/group-vault/models"
)

type indexService struct {
	crypto   crypto.VaultCrypto
	attempts int
	backoff  time.Duration
	logger   *logger.Logger
}

// NewIndexService returns an [IndexService] committing with at most
// attempts conditional writes, backoff apart.
func NewIndexService(c crypto.VaultCrypto, attempts int, backoff time.Duration, log *logger.Logger) IndexService {
	if attempts < 1 {
		attempts = 1
	}
	if backoff <= 0 {
		backoff = time.Millisecond
	}
	return &indexService{crypto: c, attempts: attempts, backoff: backoff, logger: log}
}

func (s *indexService) Load(ctx context.Context, sess *Session) error {
	blob, err := sess.Store().GetBlob(ctx, models.IndexPath)
	switch {
	case errors.Is(err, store.ErrBlobNotFound):
		s.logger.Debug().
			Str("func", "indexService.Load").
			Msg("no index stored, treating vault as uninitialized")
		sess.adopt(models.NewVaultIndex(), "", true)
		s.resync(sess)
		return nil
	case err != nil:
		return fmt.Errorf("load index: %w", mapStoreError(err))
	}

	var index models.VaultIndex
	if err = json.Unmarshal(blob.Content, &index); err != nil {
		return fmt.Errorf("%w: %w", ErrCorruptIndex, err)
	}
	if index.Version != models.IndexVersion {
		s.logger.Warn().
			Str("func", "indexService.Load").
			Str("version", index.Version).
			Msg("unexpected index version")
	}
	if index.Groups == nil {
		index.Groups = []models.Group{}
	}

	sess.adopt(index, blob.VersionTag, false)
	s.resync(sess)
	return nil
}

// resync re-decrypts every cached group from the adopted index with its
// cached key. Groups gone from the index, or whose ciphertext no longer
// opens, are dropped from the cache.
func (s *indexService) resync(sess *Session) {
	index := sess.Index()
	for _, cached := range sess.cachedGroups() {
		i := index.FindGroup(cached.ID)
		if i < 0 {
			sess.dropGroup(cached.ID)
			crypto.ClearBytes(cached.Key)
			continue
		}
		g := index.Groups[i]
		items, err := s.crypto.DecryptItemList(g.IV, g.Ciphertext, cached.Key)
		if err != nil {
			s.logger.Warn().
				Str("func", "indexService.resync").
				Str("group_id", g.ID).
				Msg("cached key no longer opens group, relocking")
			sess.dropGroup(cached.ID)
			crypto.ClearBytes(cached.Key)
			continue
		}
		sess.cacheGroup(models.DecryptedGroup{ID: g.ID, Name: g.Name, Items: items, Key: cached.Key})
		crypto.ClearBytes(cached.Key)
	}
}

func (s *indexService) Save(ctx context.Context, sess *Session, index models.VaultIndex) error {
	return s.save(ctx, sess, index, sess.IndexTag())
}

// save writes index conditioned on tag, the version it was derived from.
func (s *indexService) save(ctx context.Context, sess *Session, index models.VaultIndex, tag string) error {
	if index.Version == "" {
		index.Version = models.IndexVersion
	}
	if index.Groups == nil {
		index.Groups = []models.Group{}
	}

	content, err := json.Marshal(index)
	if err != nil {
		return fmt.Errorf("encode index: %w", err)
	}

	newTag, err := sess.Store().PutBlob(ctx, models.IndexPath, content, tag)
	if err != nil {
		return fmt.Errorf("save index: %w", mapStoreError(err))
	}

	sess.adopt(index, newTag, false)
	return nil
}

func (s *indexService) Commit(ctx context.Context, sess *Session, m Mutation) error {
	log := s.logger.GetChildLogger()
	attempt := 0

	b := retry.WithMaxRetries(uint64(s.attempts-1), retry.NewConstant(s.backoff))
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		attempt++
		if attempt > 1 {
			if err := s.Load(ctx, sess); err != nil {
				return err
			}
		}

		next, tag := sess.snapshot()
		if err := m(&next, sess.lookup); err != nil {
			return err
		}

		err := s.save(ctx, sess, next, tag)
		if errors.Is(err, ErrConflict) {
			log.Debug().
				Str("func", "indexService.Commit").
				Int("attempt", attempt).
				Msg("index changed concurrently, reloading")
			return retry.RetryableError(err)
		}
		return err
	})
	if errors.Is(err, ErrConflict) {
		return fmt.Errorf("commit gave up after %d attempts: %w", attempt, err)
	}
	return err
}
