package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/group-vault/internal/config"
	"github.com/MKhiriev/group-vault/internal/logger"
	"github.com/MKhiriev/group-vault/internal/service"
	"github.com/MKhiriev/group-vault/internal/utils"
	"github.com/MKhiriev/group-vault/internal/workers"
	"github.com/MKhiriev/group-vault/models"
)

// TokenCache persists admin tokens between runs, keyed by vault name.
type TokenCache interface {
	Save(vault, token string) error
	Load(vault string) (string, error)
	Delete(vault string) error
}

// GroupView is the listing row of one group.
type GroupView struct {
	ID       string
	Name     string
	Status   models.GroupStatus
	Items    int
	Created  time.Time
	Modified time.Time
}

// App is one client session against one vault.
type App struct {
	cfg      *config.ClientConfig
	services *service.Services
	session  *service.Session
	opener   *storeOpener
	workers  *workers.Workers
	errs     *ErrorChannel
	tokens   TokenCache
	logger   *logger.Logger
}

// NewApp wires the client. tokens may be nil, in which case admin tokens
// are never remembered.
func NewApp(cfg *config.ClientConfig, tokens TokenCache, log *logger.Logger) (*App, error) {
	opener, err := newStoreOpener(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Vault.Backend, err)
	}

	anonymous, err := opener.Open("")
	if err != nil {
		_ = opener.Close()
		return nil, err
	}

	queue := workers.NewQueue(1, log)
	return &App{
		cfg:      cfg,
		services: service.NewServices(cfg.Vault, opener, queue, utils.NewUUIDGenerator(), log),
		session:  service.NewSession(anonymous),
		opener:   opener,
		workers:  workers.NewWorkers(queue),
		errs:     NewErrorChannel(cfg.Vault.ErrorTTL),
		tokens:   tokens,
		logger:   log,
	}, nil
}

// Start loads the index and restores a remembered admin token. A
// remembered token the store rejects is dropped from the cache.
func (a *App) Start(ctx context.Context) error {
	a.workers.Run()

	if err := a.services.IndexService.Load(ctx, a.session); err != nil {
		return a.report("load vault", err)
	}
	if a.tokens == nil {
		return nil
	}

	token, err := a.tokens.Load(a.cfg.Vault.Name)
	if err != nil || token == "" {
		return nil
	}
	if err = a.services.AdminService.Authenticate(ctx, a.session, token); err != nil {
		if errors.Is(err, service.ErrAuthentication) {
			a.logger.Info().
				Str("func", "App.Start").
				Str("vault", a.cfg.Vault.Name).
				Msg("remembered admin token rejected, dropping it")
			_ = a.tokens.Delete(a.cfg.Vault.Name)
		}
		a.report("restore admin token", err)
	}
	return nil
}

// Close purges every secret, drains the unlock queue and releases the
// store.
func (a *App) Close() error {
	a.services.AdminService.Logout(a.session)
	a.workers.Stop()
	return a.opener.Close()
}

// Errors exposes the user-visible error slot.
func (a *App) Errors() *ErrorChannel {
	return a.errs
}

func (a *App) IsAdmin() bool {
	return a.session.IsAdmin()
}

// Uninitialized reports whether the store held no index at the last load.
func (a *App) Uninitialized() bool {
	return a.session.Uninitialized()
}

// Refresh reloads the index.
func (a *App) Refresh(ctx context.Context) error {
	return a.report("refresh", a.services.IndexService.Load(ctx, a.session))
}

// Groups lists every group of the index in index order.
func (a *App) Groups() []GroupView {
	index := a.session.Index()
	views := make([]GroupView, 0, len(index.Groups))
	for _, g := range index.Groups {
		view := GroupView{
			ID:       g.ID,
			Name:     g.Name,
			Status:   a.session.Status(g.ID),
			Items:    -1,
			Created:  time.UnixMilli(g.Created),
			Modified: time.UnixMilli(g.Modified),
		}
		if dg, ok := a.session.DecryptedGroup(g.ID); ok {
			view.Items = len(dg.Items)
		}
		views = append(views, view)
	}
	return views
}

// Group returns the decrypted view of an unlocked group.
func (a *App) Group(groupID string) (models.DecryptedGroup, bool) {
	return a.session.DecryptedGroup(groupID)
}

// ResolveGroup finds a group by id or, failing that, by unique name.
func (a *App) ResolveGroup(ref string) (string, error) {
	index := a.session.Index()
	if index.FindGroup(ref) >= 0 {
		return ref, nil
	}

	var found string
	for _, g := range index.Groups {
		if g.Name != ref {
			continue
		}
		if found != "" {
			return "", fmt.Errorf("%w: %q", ErrAmbiguousGroup, ref)
		}
		found = g.ID
	}
	if found == "" {
		return "", fmt.Errorf("%w: %q", service.ErrGroupNotFound, ref)
	}
	return found, nil
}

// Unlock tries passphrase against every locked group.
func (a *App) Unlock(ctx context.Context, passphrase []byte) (models.UnlockReport, error) {
	a.session.SetPassphrase(passphrase)
	report, err := a.services.UnlockService.Unlock(ctx, a.session)
	return report, a.report("unlock", err)
}

// Login activates an admin token and remembers it when asked to.
func (a *App) Login(ctx context.Context, token string, remember bool) error {
	if err := a.services.AdminService.Authenticate(ctx, a.session, token); err != nil {
		return a.report("login", err)
	}
	if remember && a.tokens != nil {
		if err := a.tokens.Save(a.cfg.Vault.Name, a.session.Credential()); err != nil {
			a.logger.Warn().Err(err).
				Str("func", "App.Login").
				Msg("failed to remember admin token")
		}
	}
	return nil
}

// Logout purges decrypted state. With forget the admin token is dropped
// too, from the session and from the token cache.
func (a *App) Logout(forget bool) error {
	a.services.AdminService.Logout(a.session)
	if !forget {
		return nil
	}

	a.services.AdminService.ForgetCredential(a.session)
	if a.tokens != nil {
		return a.report("forget token", a.tokens.Delete(a.cfg.Vault.Name))
	}
	return nil
}

// CreateGroup and the other mutations below do nothing and return no error
// when the session holds no admin credential.
func (a *App) CreateGroup(ctx context.Context, name string, passphrase []byte) (string, error) {
	id, err := a.services.AdminService.CreateGroup(ctx, a.session, name, passphrase)
	return id, a.report("create group", err)
}

func (a *App) DeleteGroup(ctx context.Context, groupID string) error {
	return a.report("delete group", a.services.AdminService.DeleteGroup(ctx, a.session, groupID))
}

func (a *App) AddItem(ctx context.Context, groupID string, draft models.ItemDraft, upload *models.FileUpload) (models.GroupItem, error) {
	item, err := a.services.AdminService.AddItem(ctx, a.session, groupID, draft, upload)
	return item, a.report("add item", err)
}

func (a *App) DeleteItem(ctx context.Context, groupID, itemID string) error {
	return a.report("delete item", a.services.AdminService.DeleteItem(ctx, a.session, groupID, itemID))
}

// OpenItem decrypts an item of an unlocked group. Anonymous sessions may
// open items too.
func (a *App) OpenItem(ctx context.Context, groupID, itemID string) (models.ItemContent, error) {
	content, err := a.services.AdminService.OpenItem(ctx, a.session, groupID, itemID)
	return content, a.report("open item", err)
}

func (a *App) Reconcile(ctx context.Context, dryRun bool) (models.ReconcileReport, error) {
	report, err := a.services.AdminService.Reconcile(ctx, a.session, dryRun)
	return report, a.report("reconcile", err)
}

// report posts err to the error slot and returns it unchanged.
func (a *App) report(op string, err error) error {
	if err == nil {
		return nil
	}
	a.logger.Debug().Err(err).
		Str("func", "App."+op).
		Msg("operation failed")
	a.errs.Report(fmt.Errorf("%s: %w", op, err))
	return err
}
