package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/group-vault/internal/crypto"
	"github.com/MKhiriev/group-vault/internal/logger"
	"github.com/MKhiriev/group-vault/models"
)

type unlockService struct {
	crypto crypto.VaultCrypto
	queue  JobQueue
	pacer  Pacer
	logger *logger.Logger
}

// NewUnlockService returns an [UnlockService] running its batches on queue.
// queue must execute one job at a time.
func NewUnlockService(c crypto.VaultCrypto, queue JobQueue, pacer Pacer, log *logger.Logger) UnlockService {
	if pacer == nil {
		pacer = NoDelay{}
	}
	return &unlockService{crypto: c, queue: queue, pacer: pacer, logger: log}
}

func (s *unlockService) Unlock(ctx context.Context, sess *Session) (models.UnlockReport, error) {
	passphrase := sess.takePassphrase()
	if len(passphrase) == 0 {
		return models.UnlockReport{}, ErrNoPassphrase
	}

	// a group another queued batch is decrypting stays as it is
	for _, g := range sess.Index().Groups {
		if sess.Status(g.ID) != models.StatusSuccess {
			_ = sess.transition(g.ID, models.StatusPending)
		}
	}

	report := models.UnlockReport{}
	batchCtx := context.WithoutCancel(ctx)
	done, err := s.queue.Submit(ctx, func() {
		defer crypto.ClearBytes(passphrase)
		report = s.runBatch(batchCtx, sess, passphrase)
	})
	if err != nil {
		crypto.ClearBytes(passphrase)
		return models.UnlockReport{}, fmt.Errorf("queue unlock batch: %w", err)
	}

	select {
	case <-done:
		return report, nil
	case <-ctx.Done():
		// the batch keeps running; its results land in the session
		return models.UnlockReport{}, ctx.Err()
	}
}

// runBatch tries passphrase against every group not yet unlocked, in
// index order as of the start of the batch.
func (s *unlockService) runBatch(ctx context.Context, sess *Session, passphrase []byte) models.UnlockReport {
	var targets []models.Group
	for _, g := range sess.Index().Groups {
		if sess.Status(g.ID) != models.StatusSuccess {
			targets = append(targets, g)
		}
	}

	report := models.UnlockReport{
		Attempted: make([]string, 0, len(targets)),
		Unlocked:  []string{},
		Failed:    []string{},
	}

	for _, g := range targets {
		report.Attempted = append(report.Attempted, g.ID)
		_ = s.pacer.Wait(ctx)

		if err := sess.transition(g.ID, models.StatusDecrypting); err != nil {
			// dropped or unlocked by a concurrent reload
			continue
		}

		key, items, err := s.tryGroup(passphrase, g)
		if err != nil {
			s.logger.Debug().
				Str("func", "unlockService.runBatch").
				Str("group_id", g.ID).
				Bool("auth_failed", crypto.IsAuthFailure(err)).
				Msg("group did not unlock")
			_ = sess.transition(g.ID, models.StatusFailed)
			report.Failed = append(report.Failed, g.ID)
			continue
		}

		sess.cacheGroup(models.DecryptedGroup{ID: g.ID, Name: g.Name, Items: items, Key: key})
		crypto.ClearBytes(key)
		_ = sess.transition(g.ID, models.StatusSuccess)
		report.Unlocked = append(report.Unlocked, g.ID)
	}

	return report
}

func (s *unlockService) tryGroup(passphrase []byte, g models.Group) ([]byte, []models.GroupItem, error) {
	key, err := s.crypto.DeriveKey(passphrase, g.Salt)
	if err != nil {
		return nil, nil, err
	}
	items, err := s.crypto.DecryptItemList(g.IV, g.Ciphertext, key)
	if err != nil {
		crypto.ClearBytes(key)
		return nil, nil, err
	}
	return key, items, nil
}
