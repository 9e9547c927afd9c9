package service

import (
	"github.com/MKhiriev/group-vault/internal/config"
	"github.com/MKhiriev/group-vault/internal/crypto"
	"github.com/MKhiriev/group-vault/internal/logger"
	"github.com/MKhiriev/group-vault/internal/validators"
)

type Services struct {
	IndexService  IndexService
	UnlockService UnlockService
	AdminService  AdminService
}

// NewServices wires the vault client services over one crypto engine and
// one unlock queue.
func NewServices(cfg config.Vault, opener StoreOpener, queue JobQueue, ids IDGenerator, log *logger.Logger) *Services {
	vc := crypto.NewVaultCrypto()
	indexSvc := NewIndexService(vc, cfg.CommitAttempts, cfg.CommitBackoff, log)

	return &Services{
		IndexService:  indexSvc,
		UnlockService: NewUnlockService(vc, queue, NewPacer(cfg.UnlockDelay), log),
		AdminService: NewAdminService(cfg, indexSvc, vc, opener,
			validators.NewItemValidator(cfg.MaxFileSize), ids, log),
	}
}
