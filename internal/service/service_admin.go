package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/group-vault/internal/config"
	"github.com/MKhiriev/group-vault/internal/crypto"
	"github.com/MKhiriev/group-vault/internal/logger"
	"github.com/MKhiriev/group-vault/internal/store"
	"github.com/MKhiriev/group-vault/internal/validators"
	"github.com/MKhiriev/group-vault/models"
)

const defaultMimeType = "application/octet-stream"

type adminService struct {
	index     IndexService
	crypto    crypto.VaultCrypto
	opener    StoreOpener
	validator validators.Validator
	ids       IDGenerator
	now       func() time.Time

	revalidate bool
	purgeBlobs bool

	logger *logger.Logger
}

// NewAdminService wires the admin mutation pipeline.
func NewAdminService(
	cfg config.Vault,
	index IndexService,
	c crypto.VaultCrypto,
	opener StoreOpener,
	validator validators.Validator,
	ids IDGenerator,
	log *logger.Logger,
) AdminService {
	return &adminService{
		index:      index,
		crypto:     c,
		opener:     opener,
		validator:  validator,
		ids:        ids,
		now:        time.Now,
		revalidate: cfg.RevalidateCredential,
		purgeBlobs: cfg.PurgeBlobs(),
		logger:     log,
	}
}

// checkAccess reads the index under st. A missing index still proves the
// credential was accepted.
func checkAccess(ctx context.Context, st store.BlobStore) error {
	_, err := st.GetBlob(ctx, models.IndexPath)
	if err == nil || errors.Is(err, store.ErrBlobNotFound) {
		return nil
	}
	return mapStoreError(err)
}

func (a *adminService) Authenticate(ctx context.Context, sess *Session, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("%w: empty admin token", ErrAuthentication)
	}

	st, err := a.opener.Open(token)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	if err = checkAccess(ctx, st); err != nil {
		return err
	}

	sess.authenticate(st, token)
	a.logger.Info().
		Str("func", "adminService.Authenticate").
		Msg("admin credential accepted")

	if !sess.Loaded() {
		if err = a.index.Load(ctx, sess); err != nil {
			return err
		}
	}
	if sess.Uninitialized() {
		if err = a.index.Save(ctx, sess, sess.Index()); err != nil {
			if !errors.Is(err, ErrConflict) {
				return fmt.Errorf("initialize vault: %w", err)
			}
			// initialized by someone else meanwhile
			return a.index.Load(ctx, sess)
		}
	}
	return nil
}

// begin gates a mutation. ok is false when the session may not mutate, in
// which case the mutation is skipped without an error.
func (a *adminService) begin(ctx context.Context, sess *Session, op string) (store.BlobStore, bool, error) {
	st, ok := sess.canMutate()
	if !ok {
		a.logger.Debug().
			Str("func", "adminService."+op).
			Msg("no admin credential, skipping mutation")
		return nil, false, nil
	}
	if a.revalidate {
		if err := checkAccess(ctx, st); err != nil {
			if errors.Is(err, ErrAuthentication) {
				sess.demote()
			}
			return nil, false, err
		}
	}
	return st, true, nil
}

func (a *adminService) CreateGroup(ctx context.Context, sess *Session, name string, passphrase []byte) (string, error) {
	if _, ok, err := a.begin(ctx, sess, "CreateGroup"); !ok {
		return "", err
	}
	if err := a.validator.Validate(ctx, validators.DraftGroup{Name: name, Passphrase: passphrase}); err != nil {
		return "", err
	}

	salt, err := a.crypto.GenerateSalt()
	if err != nil {
		return "", err
	}
	key, err := a.crypto.DeriveKey(passphrase, salt)
	if err != nil {
		return "", err
	}
	defer crypto.ClearBytes(key)

	iv, ciphertext, err := a.crypto.EncryptItemList([]models.GroupItem{}, key)
	if err != nil {
		return "", err
	}

	ts := a.now().UnixMilli()
	group := models.Group{
		ID:         a.ids.Generate(),
		Name:       name,
		Salt:       salt,
		IV:         iv,
		Ciphertext: ciphertext,
		Created:    ts,
		Modified:   ts,
	}

	err = a.index.Commit(ctx, sess, func(index *models.VaultIndex, _ GroupLookup) error {
		index.Groups = append(index.Groups, group)
		return nil
	})
	if err != nil {
		return "", err
	}
	return group.ID, nil
}

func (a *adminService) DeleteGroup(ctx context.Context, sess *Session, groupID string) error {
	st, ok, err := a.begin(ctx, sess, "DeleteGroup")
	if !ok {
		return err
	}

	// only blobs of an unlocked group are known
	var blobPaths []string
	if g, unlocked := sess.DecryptedGroup(groupID); unlocked {
		blobPaths = fileBlobPaths(g.Items)
	}

	err = a.index.Commit(ctx, sess, func(index *models.VaultIndex, _ GroupLookup) error {
		i := index.FindGroup(groupID)
		if i < 0 {
			return ErrGroupNotFound
		}
		index.Groups = append(index.Groups[:i], index.Groups[i+1:]...)
		return nil
	})
	if err != nil {
		return err
	}

	sess.dropGroup(groupID)
	if a.purgeBlobs {
		for _, p := range blobPaths {
			a.purgeBlob(ctx, st, p)
		}
	}
	return nil
}

func (a *adminService) AddItem(ctx context.Context, sess *Session, groupID string, draft models.ItemDraft, upload *models.FileUpload) (models.GroupItem, error) {
	st, ok, err := a.begin(ctx, sess, "AddItem")
	if !ok {
		return models.GroupItem{}, err
	}

	group, err := a.unlockedGroup(sess, groupID)
	if err != nil {
		return models.GroupItem{}, err
	}
	defer crypto.ClearBytes(group.Key)

	if err = a.validator.Validate(ctx, validators.DraftItem{Draft: draft, Upload: upload}); err != nil {
		return models.GroupItem{}, err
	}

	item := models.GroupItem{
		ID:      a.ids.Generate(),
		Type:    draft.Type,
		Name:    draft.Name,
		Content: draft.Content,
		URL:     draft.URL,
		Created: a.now().UnixMilli(),
	}

	var blobTag string
	if draft.Type == models.ItemTypeFile {
		item.Path = models.FileBlobPath(item.ID)
		item.Size = int64(len(upload.Data))
		item.MimeType = upload.MimeType
		if blobTag, err = a.uploadFile(ctx, st, item.Path, upload, group.Key); err != nil {
			return models.GroupItem{}, err
		}
	}

	var updated []models.GroupItem
	err = a.index.Commit(ctx, sess, func(index *models.VaultIndex, groups GroupLookup) error {
		items, err := a.rewriteGroup(index, groups, groupID, func(items []models.GroupItem) ([]models.GroupItem, error) {
			return append(items, item), nil
		})
		updated = items
		return err
	})
	if err != nil {
		if blobTag != "" {
			a.logger.Warn().
				Str("func", "adminService.AddItem").
				Str("path", item.Path).
				Msg("index commit failed after upload, removing blob")
			if derr := st.DeleteBlob(ctx, item.Path, blobTag); derr != nil {
				a.logger.Warn().Err(derr).
					Str("func", "adminService.AddItem").
					Str("path", item.Path).
					Msg("blob left for reconcile")
			}
		}
		return models.GroupItem{}, err
	}

	sess.setItems(groupID, updated)
	return item, nil
}

func (a *adminService) uploadFile(ctx context.Context, st store.BlobStore, path string, upload *models.FileUpload, key []byte) (string, error) {
	meta := models.FileMetadata{
		Filename: upload.Filename,
		Size:     int64(len(upload.Data)),
		Type:     upload.MimeType,
	}
	blob, err := a.crypto.EncryptFile(upload.Data, meta, key)
	if err != nil {
		return "", err
	}
	content, err := json.Marshal(blob)
	if err != nil {
		return "", fmt.Errorf("encode file blob: %w", err)
	}

	tag, err := st.PutBlob(ctx, path, content, "")
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", path, mapStoreError(err))
	}
	return tag, nil
}

func (a *adminService) DeleteItem(ctx context.Context, sess *Session, groupID, itemID string) error {
	st, ok, err := a.begin(ctx, sess, "DeleteItem")
	if !ok {
		return err
	}

	group, err := a.unlockedGroup(sess, groupID)
	if err != nil {
		return err
	}
	crypto.ClearBytes(group.Key)

	pos := group.FindItem(itemID)
	if pos < 0 {
		return ErrItemNotFound
	}
	removed := group.Items[pos]

	var updated []models.GroupItem
	err = a.index.Commit(ctx, sess, func(index *models.VaultIndex, groups GroupLookup) error {
		items, err := a.rewriteGroup(index, groups, groupID, func(items []models.GroupItem) ([]models.GroupItem, error) {
			for i := range items {
				if items[i].ID == itemID {
					return append(items[:i], items[i+1:]...), nil
				}
			}
			return nil, ErrItemNotFound
		})
		updated = items
		return err
	})
	if err != nil {
		return err
	}

	sess.setItems(groupID, updated)
	if a.purgeBlobs && removed.Type == models.ItemTypeFile && removed.Path != "" {
		a.purgeBlob(ctx, st, removed.Path)
	}
	return nil
}

// rewriteGroup applies edit to the decrypted items of groupID and stores
// the re-encrypted list into index.
func (a *adminService) rewriteGroup(
	index *models.VaultIndex,
	groups GroupLookup,
	groupID string,
	edit func([]models.GroupItem) ([]models.GroupItem, error),
) ([]models.GroupItem, error) {
	i := index.FindGroup(groupID)
	if i < 0 {
		return nil, ErrGroupNotFound
	}
	g, ok := groups(groupID)
	if !ok {
		return nil, ErrGroupLocked
	}
	defer crypto.ClearBytes(g.Key)

	items, err := edit(g.Items)
	if err != nil {
		return nil, err
	}
	iv, ciphertext, err := a.crypto.EncryptItemList(items, g.Key)
	if err != nil {
		return nil, err
	}

	index.Groups[i].IV = iv
	index.Groups[i].Ciphertext = ciphertext
	index.Groups[i].Modified = a.now().UnixMilli()
	return items, nil
}

// purgeBlob deletes path as a separate call after the index commit. A
// failure leaves an orphan for Reconcile.
func (a *adminService) purgeBlob(ctx context.Context, st store.BlobStore, path string) {
	blob, err := st.GetBlob(ctx, path)
	if err == nil {
		err = st.DeleteBlob(ctx, path, blob.VersionTag)
	}
	if err != nil && !errors.Is(err, store.ErrBlobNotFound) {
		a.logger.Warn().Err(err).
			Str("func", "adminService.purgeBlob").
			Str("path", path).
			Msg("blob left for reconcile")
	}
}

func (a *adminService) unlockedGroup(sess *Session, groupID string) (models.DecryptedGroup, error) {
	if sess.Index().FindGroup(groupID) < 0 {
		return models.DecryptedGroup{}, ErrGroupNotFound
	}
	g, ok := sess.lookup(groupID)
	if !ok {
		return models.DecryptedGroup{}, ErrGroupLocked
	}
	return g, nil
}

func (a *adminService) OpenItem(ctx context.Context, sess *Session, groupID, itemID string) (models.ItemContent, error) {
	group, err := a.unlockedGroup(sess, groupID)
	if err != nil {
		return models.ItemContent{}, err
	}
	defer crypto.ClearBytes(group.Key)

	pos := group.FindItem(itemID)
	if pos < 0 {
		return models.ItemContent{}, ErrItemNotFound
	}
	item := group.Items[pos]
	out := models.ItemContent{Item: item, Filename: item.Name, MimeType: item.MimeType}

	switch item.Type {
	case models.ItemTypeLink:
		out.URL = item.URL
	case models.ItemTypeText:
		out.Data = []byte(item.Content)
		out.MimeType = "text/plain"
	case models.ItemTypeFile:
		raw, err := sess.Store().GetBlob(ctx, item.Path)
		if err != nil {
			return models.ItemContent{}, fmt.Errorf("fetch %s: %w", item.Path, mapStoreError(err))
		}
		var blob models.EncryptedFileBlob
		if err = json.Unmarshal(raw.Content, &blob); err != nil {
			return models.ItemContent{}, fmt.Errorf("%w: %w", ErrCorruptBlob, err)
		}
		data, err := a.crypto.DecryptFile(blob, group.Key)
		if err != nil {
			return models.ItemContent{}, fmt.Errorf("%w: %w", ErrCorruptBlob, err)
		}
		out.Data = data
		if blob.Metadata.Filename != "" {
			out.Filename = blob.Metadata.Filename
		}
		if out.MimeType == "" {
			out.MimeType = blob.Metadata.Type
		}
	}
	if out.MimeType == "" && item.Type != models.ItemTypeLink {
		out.MimeType = defaultMimeType
	}
	return out, nil
}

func (a *adminService) Reconcile(ctx context.Context, sess *Session, dryRun bool) (models.ReconcileReport, error) {
	report := models.ReconcileReport{Orphans: []string{}, Deleted: []string{}, Failures: map[string]string{}}

	st, ok, err := a.begin(ctx, sess, "Reconcile")
	if !ok {
		return report, err
	}

	referenced := make(map[string]struct{})
	for _, g := range sess.Index().Groups {
		dg, unlocked := sess.DecryptedGroup(g.ID)
		if !unlocked {
			return report, fmt.Errorf("%w: %s is locked", ErrReconcileIncomplete, g.Name)
		}
		for _, p := range fileBlobPaths(dg.Items) {
			referenced[p] = struct{}{}
		}
	}

	infos, err := st.ListBlobs(ctx, models.FilesPrefix)
	if err != nil {
		return report, fmt.Errorf("list file blobs: %w", mapStoreError(err))
	}
	report.Scanned = len(infos)

	for _, info := range infos {
		if _, ok := referenced[info.Path]; ok {
			continue
		}
		report.Orphans = append(report.Orphans, info.Path)
		if dryRun {
			continue
		}
		if err := st.DeleteBlob(ctx, info.Path, info.VersionTag); err != nil {
			report.Failures[info.Path] = err.Error()
			continue
		}
		report.Deleted = append(report.Deleted, info.Path)
	}

	a.logger.Info().
		Str("func", "adminService.Reconcile").
		Int("scanned", report.Scanned).
		Int("orphans", len(report.Orphans)).
		Int("deleted", len(report.Deleted)).
		Bool("dry_run", dryRun).
		Msg("reconcile finished")
	return report, nil
}

func (a *adminService) Logout(sess *Session) {
	sess.logout()
}

func (a *adminService) ForgetCredential(sess *Session) {
	anonymous, err := a.opener.Open("")
	if err != nil {
		a.logger.Warn().Err(err).
			Str("func", "adminService.ForgetCredential").
			Msg("keeping current store handle")
		anonymous = nil
	}
	sess.forgetCredential(anonymous)
}

func fileBlobPaths(items []models.GroupItem) []string {
	var paths []string
	for _, it := range items {
		if it.Type == models.ItemTypeFile && it.Path != "" {
			paths = append(paths, it.Path)
		}
	}
	return paths
}
