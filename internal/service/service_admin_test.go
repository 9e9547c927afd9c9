package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/group-vault/internal/config"
	"github.com/MKhiriev/group-vault/internal/crypto"
	"github.com/MKhiriev/group-vault/internal/logger"
	"github.com/MKhiriev/group-vault/internal/mock"
	"github.com/MKhiriev/group-vault/internal/store"
	"github.com/MKhiriev/group-vault/internal/validators"
	"github.com/MKhiriev/group-vault/models"
)

func textDraft(name, content string) models.ItemDraft {
	return models.ItemDraft{Type: models.ItemTypeText, Name: name, Content: content}
}

// ── Authenticate ────────────────────────────────────────────────────────────

func TestAuthenticate_BootstrapsUninitializedVault(t *testing.T) {
	env := newTestEnv(t, testVaultConfig())
	ctx := context.Background()
	sess := env.newSession(t)
	require.True(t, sess.Uninitialized())

	require.NoError(t, env.svcs.AdminService.Authenticate(ctx, sess, "  admin-token "))

	assert.True(t, sess.IsAdmin())
	assert.Equal(t, "admin-token", sess.Credential())
	assert.False(t, sess.Uninitialized())

	blob, err := env.store.GetBlob(ctx, models.IndexPath)
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":"2.0","groups":[]}`, string(blob.Content))
	assert.Equal(t, blob.VersionTag, sess.IndexTag())
}

func TestAuthenticate_LoadsWhenNeverLoaded(t *testing.T) {
	env := newTestEnv(t, testVaultConfig())
	ctx := context.Background()
	admin := env.adminSession(t)
	_, err := env.svcs.AdminService.CreateGroup(ctx, admin, "School", []byte("pw"))
	require.NoError(t, err)

	fresh := NewSession(env.store)
	require.NoError(t, env.svcs.AdminService.Authenticate(ctx, fresh, "admin-token"))

	assert.Len(t, fresh.Index().Groups, 1)
}

func TestAuthenticate_RejectedCredential(t *testing.T) {
	env := newTestEnv(t, testVaultConfig())
	env.opener.rejected["bad"] = true
	sess := env.newSession(t)

	err := env.svcs.AdminService.Authenticate(context.Background(), sess, "bad")

	assert.ErrorIs(t, err, ErrAuthentication)
	assert.False(t, sess.IsAdmin())
	assert.Empty(t, sess.Credential())
}

func TestAuthenticate_EmptyToken(t *testing.T) {
	env := newTestEnv(t, testVaultConfig())

	err := env.svcs.AdminService.Authenticate(context.Background(), env.newSession(t), "   ")

	assert.ErrorIs(t, err, ErrAuthentication)
	assert.Empty(t, env.opener.opened)
}

// ── capability gate ─────────────────────────────────────────────────────────

func TestMutations_NoOpWithoutAdmin(t *testing.T) {
	env := newTestEnv(t, testVaultConfig())
	ctx := context.Background()
	sess := env.newSession(t)

	id, err := env.svcs.AdminService.CreateGroup(ctx, sess, "School", []byte("pw"))
	assert.NoError(t, err)
	assert.Empty(t, id)

	assert.NoError(t, env.svcs.AdminService.DeleteGroup(ctx, sess, "g"))
	item, err := env.svcs.AdminService.AddItem(ctx, sess, "g", textDraft("n", "c"), nil)
	assert.NoError(t, err)
	assert.Empty(t, item.ID)
	assert.NoError(t, env.svcs.AdminService.DeleteItem(ctx, sess, "g", "i"))
	_, err = env.svcs.AdminService.Reconcile(ctx, sess, false)
	assert.NoError(t, err)

	_, err = env.store.GetBlob(ctx, models.IndexPath)
	assert.ErrorIs(t, err, store.ErrBlobNotFound, "nothing may be written")
}

func TestMutations_RevalidateCredential(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	st := mock.NewMockBlobStore(ctrl)
	st.EXPECT().GetBlob(gomock.Any(), models.IndexPath).Return(models.Blob{}, store.ErrUnauthorized)

	cfg := testVaultConfig()
	cfg.RevalidateCredential = true
	env := newTestEnvWithStore(t, cfg, st)

	sess := NewSession(st)
	sess.authenticate(st, "revoked")

	_, err := env.svcs.AdminService.CreateGroup(context.Background(), sess, "School", []byte("pw"))

	assert.ErrorIs(t, err, ErrAuthentication)
	assert.False(t, sess.IsAdmin())
}

// ── scenarios ───────────────────────────────────────────────────────────────

func TestScenarioA_CreateThenUnlockEmptyGroup(t *testing.T) {
	env := newTestEnv(t, testVaultConfig())
	ctx := context.Background()
	admin := env.adminSession(t)

	id, err := env.svcs.AdminService.CreateGroup(ctx, admin, "School", []byte("hunter2"))
	require.NoError(t, err)

	index := admin.Index()
	require.Len(t, index.Groups, 1)
	g := index.Groups[0]
	assert.Equal(t, id, g.ID)
	assert.Equal(t, "School", g.Name)
	assert.NotEmpty(t, g.Salt)
	assert.Equal(t, g.Created, g.Modified)

	env.unlock(t, admin, "hunter2")
	dg, ok := admin.DecryptedGroup(id)
	require.True(t, ok)
	assert.Empty(t, dg.Items)
}

func TestCreateGroup_SaltsNeverRepeat(t *testing.T) {
	env := newTestEnv(t, testVaultConfig())
	ctx := context.Background()
	admin := env.adminSession(t)

	for range 3 {
		_, err := env.svcs.AdminService.CreateGroup(ctx, admin, "Same", []byte("same"))
		require.NoError(t, err)
	}

	seen := map[string]bool{}
	for _, g := range admin.Index().Groups {
		assert.False(t, seen[g.Salt])
		seen[g.Salt] = true
	}
}

func TestCreateGroup_Validation(t *testing.T) {
	env := newTestEnv(t, testVaultConfig())
	admin := env.adminSession(t)

	_, err := env.svcs.AdminService.CreateGroup(context.Background(), admin, " ", []byte("pw"))
	assert.ErrorIs(t, err, validators.ErrEmptyName)
	_, err = env.svcs.AdminService.CreateGroup(context.Background(), admin, "Name", nil)
	assert.ErrorIs(t, err, validators.ErrEmptyPassphrase)
}

func TestScenarioB_AddItemSurvivesReload(t *testing.T) {
	env := newTestEnv(t, testVaultConfig())
	ctx := context.Background()
	admin := env.adminSession(t)
	id, err := env.svcs.AdminService.CreateGroup(ctx, admin, "School", []byte("hunter2"))
	require.NoError(t, err)
	env.unlock(t, admin, "hunter2")
	before := admin.Index().Groups[0]

	item, err := env.svcs.AdminService.AddItem(ctx, admin, id, textDraft("note.txt", "hi"), nil)
	require.NoError(t, err)
	assert.NotEmpty(t, item.ID)

	after := admin.Index().Groups[0]
	assert.NotEqual(t, before.IV, after.IV, "iv must change on every re-encryption")
	assert.Equal(t, before.Salt, after.Salt)

	reloaded := env.newSession(t)
	env.unlock(t, reloaded, "hunter2")
	g, ok := reloaded.DecryptedGroup(id)
	require.True(t, ok)
	require.Len(t, g.Items, 1)
	assert.Equal(t, "note.txt", g.Items[0].Name)
	assert.Equal(t, "hi", g.Items[0].Content)
	assert.Equal(t, models.ItemTypeText, g.Items[0].Type)
	assert.Equal(t, item.ID, g.Items[0].ID)
}

func TestScenarioC_DeleteMiddleItemKeepsOrder(t *testing.T) {
	env := newTestEnv(t, testVaultConfig())
	ctx := context.Background()
	admin := env.adminSession(t)
	id, err := env.svcs.AdminService.CreateGroup(ctx, admin, "School", []byte("pw"))
	require.NoError(t, err)
	env.unlock(t, admin, "pw")

	var ids []string
	for _, name := range []string{"first", "middle", "last"} {
		item, err := env.svcs.AdminService.AddItem(ctx, admin, id, textDraft(name, name), nil)
		require.NoError(t, err)
		ids = append(ids, item.ID)
	}

	require.NoError(t, env.svcs.AdminService.DeleteItem(ctx, admin, id, ids[1]))

	reloaded := env.newSession(t)
	env.unlock(t, reloaded, "pw")
	g, _ := reloaded.DecryptedGroup(id)
	require.Len(t, g.Items, 2)
	assert.Equal(t, "first", g.Items[0].Name)
	assert.Equal(t, "last", g.Items[1].Name)
}

func TestAddItem_LockedGroupFailsClosed(t *testing.T) {
	env := newTestEnv(t, testVaultConfig())
	ctx := context.Background()
	admin := env.adminSession(t)
	id, err := env.svcs.AdminService.CreateGroup(ctx, admin, "School", []byte("pw"))
	require.NoError(t, err)
	tag := admin.IndexTag()

	_, err = env.svcs.AdminService.AddItem(ctx, admin, id, textDraft("n", "c"), nil)
	assert.ErrorIs(t, err, ErrGroupLocked)

	_, err = env.svcs.AdminService.AddItem(ctx, admin, "missing", textDraft("n", "c"), nil)
	assert.ErrorIs(t, err, ErrGroupNotFound)

	assert.Equal(t, tag, admin.IndexTag(), "index must not be written")
}

func TestAddItem_FileUploadedBeforeIndexCommit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	st := mock.NewMockBlobStore(ctrl)
	vc := mock.NewMockVaultCrypto(ctrl)
	key := []byte("k")

	blob := models.EncryptedFileBlob{IV: "fiv", Ciphertext: "fct", Metadata: models.FileMetadata{Filename: "a.pdf", Size: 3, Type: "application/pdf"}}
	blobJSON, _ := json.Marshal(blob)

	gomock.InOrder(
		vc.EXPECT().EncryptFile([]byte("pdf"), blob.Metadata, key).Return(blob, nil),
		st.EXPECT().PutBlob(gomock.Any(), "files/item-1.enc", blobJSON, "").Return("ft1", nil),
		vc.EXPECT().EncryptItemList(gomock.Any(), key).DoAndReturn(func(items []models.GroupItem, _ []byte) (string, string, error) {
			require.Len(t, items, 1)
			assert.Equal(t, "files/item-1.enc", items[0].Path)
			assert.Equal(t, int64(3), items[0].Size)
			assert.Equal(t, "application/pdf", items[0].MimeType)
			return "iv2", "ct2", nil
		}),
		st.EXPECT().PutBlob(gomock.Any(), models.IndexPath, gomock.Any(), "t1").Return("t2", nil),
	)

	svc := NewAdminService(testVaultConfig(), NewIndexService(vc, 3, time.Millisecond, logger.Nop()), vc,
		&sharedOpener{st: st}, validators.NewItemValidator(0), fixedIDs("item-1"), logger.Nop())

	sess := NewSession(st)
	sess.authenticate(st, "tok")
	sess.adopt(models.VaultIndex{Version: "2.0", Groups: []models.Group{{ID: "g", Name: "G", IV: "iv1", Ciphertext: "ct1"}}}, "t1", false)
	sess.cacheGroup(models.DecryptedGroup{ID: "g", Name: "G", Key: key})

	item, err := svc.AddItem(context.Background(), sess, "g",
		models.ItemDraft{Type: models.ItemTypeFile, Name: "a.pdf"},
		&models.FileUpload{Filename: "a.pdf", MimeType: "application/pdf", Data: []byte("pdf")})

	require.NoError(t, err)
	assert.Equal(t, "item-1", item.ID)
	assert.Equal(t, "t2", sess.IndexTag())
	assert.Equal(t, "ct2", sess.Index().Groups[0].Ciphertext)
	g, _ := sess.DecryptedGroup("g")
	assert.Len(t, g.Items, 1)
}

func TestAddItem_CommitFailureRemovesUploadedBlob(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	st := mock.NewMockBlobStore(ctrl)
	vc := mock.NewMockVaultCrypto(ctrl)
	key := []byte("k")

	vc.EXPECT().EncryptFile(gomock.Any(), gomock.Any(), key).Return(models.EncryptedFileBlob{}, nil)
	vc.EXPECT().EncryptItemList(gomock.Any(), key).Return("iv", "ct", nil)
	gomock.InOrder(
		st.EXPECT().PutBlob(gomock.Any(), "files/item-1.enc", gomock.Any(), "").Return("ft1", nil),
		st.EXPECT().PutBlob(gomock.Any(), models.IndexPath, gomock.Any(), "t1").Return("", store.ErrPermissionDenied),
		st.EXPECT().DeleteBlob(gomock.Any(), "files/item-1.enc", "ft1").Return(nil),
	)

	svc := NewAdminService(testVaultConfig(), NewIndexService(vc, 3, time.Millisecond, logger.Nop()), vc,
		&sharedOpener{st: st}, validators.NewItemValidator(0), fixedIDs("item-1"), logger.Nop())

	sess := NewSession(st)
	sess.authenticate(st, "tok")
	sess.adopt(models.VaultIndex{Version: "2.0", Groups: []models.Group{{ID: "g"}}}, "t1", false)
	sess.cacheGroup(models.DecryptedGroup{ID: "g", Key: key})

	_, err := svc.AddItem(context.Background(), sess, "g",
		models.ItemDraft{Type: models.ItemTypeFile, Name: "a"},
		&models.FileUpload{Filename: "a", Data: []byte("x")})

	assert.ErrorIs(t, err, ErrAuthentication)
	g, _ := sess.DecryptedGroup("g")
	assert.Empty(t, g.Items, "cache is updated only after commit")
}

// ── blob purge and items ────────────────────────────────────────────────────

func addFile(t *testing.T, env *testEnv, sess *Session, groupID, name string, data []byte) models.GroupItem {
	t.Helper()
	item, err := env.svcs.AdminService.AddItem(context.Background(), sess, groupID,
		models.ItemDraft{Type: models.ItemTypeFile, Name: name},
		&models.FileUpload{Filename: name, MimeType: "text/plain", Data: data})
	require.NoError(t, err)
	return item
}

func TestDeleteItem_PurgesBlobAfterCommit(t *testing.T) {
	env := newTestEnv(t, testVaultConfig())
	ctx := context.Background()
	admin := env.adminSession(t)
	id, _ := env.svcs.AdminService.CreateGroup(ctx, admin, "G", []byte("pw"))
	env.unlock(t, admin, "pw")

	item := addFile(t, env, admin, id, "a.txt", []byte("alpha"))
	_, err := env.store.GetBlob(ctx, item.Path)
	require.NoError(t, err)

	require.NoError(t, env.svcs.AdminService.DeleteItem(ctx, admin, id, item.ID))

	_, err = env.store.GetBlob(ctx, item.Path)
	assert.ErrorIs(t, err, store.ErrBlobNotFound)
}

func TestDeleteItem_KeepBlobs(t *testing.T) {
	cfg := testVaultConfig()
	cfg.KeepBlobs = true
	env := newTestEnv(t, cfg)
	ctx := context.Background()
	admin := env.adminSession(t)
	id, _ := env.svcs.AdminService.CreateGroup(ctx, admin, "G", []byte("pw"))
	env.unlock(t, admin, "pw")

	item := addFile(t, env, admin, id, "a.txt", []byte("alpha"))
	require.NoError(t, env.svcs.AdminService.DeleteItem(ctx, admin, id, item.ID))

	_, err := env.store.GetBlob(ctx, item.Path)
	assert.NoError(t, err)
}

func TestDeleteItem_Errors(t *testing.T) {
	env := newTestEnv(t, testVaultConfig())
	ctx := context.Background()
	admin := env.adminSession(t)
	id, _ := env.svcs.AdminService.CreateGroup(ctx, admin, "G", []byte("pw"))

	assert.ErrorIs(t, env.svcs.AdminService.DeleteItem(ctx, admin, id, "x"), ErrGroupLocked)
	env.unlock(t, admin, "pw")
	assert.ErrorIs(t, env.svcs.AdminService.DeleteItem(ctx, admin, id, "x"), ErrItemNotFound)
}

func TestDeleteGroup_PurgesCacheAndBlobs(t *testing.T) {
	env := newTestEnv(t, testVaultConfig())
	ctx := context.Background()
	admin := env.adminSession(t)
	id, _ := env.svcs.AdminService.CreateGroup(ctx, admin, "G", []byte("pw"))
	env.unlock(t, admin, "pw")
	item := addFile(t, env, admin, id, "a.txt", []byte("alpha"))

	require.NoError(t, env.svcs.AdminService.DeleteGroup(ctx, admin, id))

	assert.Empty(t, admin.Index().Groups)
	_, ok := admin.DecryptedGroup(id)
	assert.False(t, ok)
	assert.Equal(t, models.StatusPending, admin.Status(id))
	_, err := env.store.GetBlob(ctx, item.Path)
	assert.ErrorIs(t, err, store.ErrBlobNotFound)

	assert.ErrorIs(t, env.svcs.AdminService.DeleteGroup(ctx, admin, id), ErrGroupNotFound)
}

func TestOpenItem(t *testing.T) {
	env := newTestEnv(t, testVaultConfig())
	ctx := context.Background()
	admin := env.adminSession(t)
	id, _ := env.svcs.AdminService.CreateGroup(ctx, admin, "G", []byte("pw"))
	env.unlock(t, admin, "pw")

	text, err := env.svcs.AdminService.AddItem(ctx, admin, id, textDraft("note", "hello"), nil)
	require.NoError(t, err)
	link, err := env.svcs.AdminService.AddItem(ctx, admin, id, models.ItemDraft{Type: models.ItemTypeLink, Name: "docs", URL: "https://example.com"}, nil)
	require.NoError(t, err)
	file := addFile(t, env, admin, id, "a.txt", []byte("file body"))

	// a reader without admin rights may open items
	reader := env.newSession(t)
	env.unlock(t, reader, "pw")

	got, err := env.svcs.AdminService.OpenItem(ctx, reader, id, text.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), got.Data)
	assert.Equal(t, "text/plain", got.MimeType)

	got, err = env.svcs.AdminService.OpenItem(ctx, reader, id, link.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", got.URL)

	got, err = env.svcs.AdminService.OpenItem(ctx, reader, id, file.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("file body"), got.Data)
	assert.Equal(t, "a.txt", got.Filename)

	_, err = env.svcs.AdminService.OpenItem(ctx, reader, id, "nope")
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestOpenItem_CorruptBlob(t *testing.T) {
	env := newTestEnv(t, testVaultConfig())
	ctx := context.Background()
	admin := env.adminSession(t)
	id, _ := env.svcs.AdminService.CreateGroup(ctx, admin, "G", []byte("pw"))
	env.unlock(t, admin, "pw")
	file := addFile(t, env, admin, id, "a.txt", []byte("body"))

	current, err := env.store.GetBlob(ctx, file.Path)
	require.NoError(t, err)
	_, err = env.store.PutBlob(ctx, file.Path, []byte(`{"iv":"AAAAAAAAAAAAAAAA","ciphertext":"AAAAAAAAAAAAAAAAAAAAAA=="}`), current.VersionTag)
	require.NoError(t, err)

	_, err = env.svcs.AdminService.OpenItem(ctx, admin, id, file.ID)
	assert.ErrorIs(t, err, ErrCorruptBlob)
}

// ── reconcile ───────────────────────────────────────────────────────────────

func TestReconcile_DeletesOnlyUnreferencedBlobs(t *testing.T) {
	env := newTestEnv(t, testVaultConfig())
	ctx := context.Background()
	admin := env.adminSession(t)
	id, _ := env.svcs.AdminService.CreateGroup(ctx, admin, "G", []byte("pw"))
	env.unlock(t, admin, "pw")
	kept := addFile(t, env, admin, id, "kept.txt", []byte("k"))

	_, err := env.store.PutBlob(ctx, "files/orphan.enc", []byte("{}"), "")
	require.NoError(t, err)

	report, err := env.svcs.AdminService.Reconcile(ctx, admin, true)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Scanned)
	assert.Equal(t, []string{"files/orphan.enc"}, report.Orphans)
	assert.Empty(t, report.Deleted)
	_, err = env.store.GetBlob(ctx, "files/orphan.enc")
	require.NoError(t, err, "dry run must not delete")

	report, err = env.svcs.AdminService.Reconcile(ctx, admin, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"files/orphan.enc"}, report.Deleted)
	assert.Empty(t, report.Failures)

	_, err = env.store.GetBlob(ctx, "files/orphan.enc")
	assert.ErrorIs(t, err, store.ErrBlobNotFound)
	_, err = env.store.GetBlob(ctx, kept.Path)
	assert.NoError(t, err)
}

func TestReconcile_RequiresEveryGroupUnlocked(t *testing.T) {
	env := newTestEnv(t, testVaultConfig())
	ctx := context.Background()
	admin := env.adminSession(t)
	_, _ = env.svcs.AdminService.CreateGroup(ctx, admin, "A", []byte("pw-a"))
	_, _ = env.svcs.AdminService.CreateGroup(ctx, admin, "B", []byte("pw-b"))
	env.unlock(t, admin, "pw-a")

	_, err := env.svcs.AdminService.Reconcile(ctx, admin, false)

	assert.ErrorIs(t, err, ErrReconcileIncomplete)
}

// ── logout ──────────────────────────────────────────────────────────────────

func TestLogout_PurgesSecretsKeepsCredential(t *testing.T) {
	env := newTestEnv(t, testVaultConfig())
	ctx := context.Background()
	admin := env.adminSession(t)
	id, _ := env.svcs.AdminService.CreateGroup(ctx, admin, "G", []byte("pw"))
	env.unlock(t, admin, "pw")
	admin.SetPassphrase([]byte("typed but not submitted"))

	env.svcs.AdminService.Logout(admin)

	assert.Empty(t, admin.DecryptedGroups())
	assert.Equal(t, models.StatusPending, admin.Status(id))
	assert.False(t, admin.HasPassphrase())
	assert.False(t, admin.IsAdmin())
	assert.Equal(t, "admin-token", admin.Credential())

	env.svcs.AdminService.ForgetCredential(admin)
	assert.Empty(t, admin.Credential())
	assert.Equal(t, []string{"admin-token", ""}, env.opener.opened)
}

func TestNewAdminService_UsesPurgeSetting(t *testing.T) {
	svc := NewAdminService(config.Vault{KeepBlobs: true}, nil, crypto.NewVaultCrypto(), nil, nil, nil, logger.Nop()).(*adminService)
	assert.False(t, svc.purgeBlobs)
}

type fixedIDs string

func (f fixedIDs) Generate() string { return string(f) }
