package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/group-vault/internal/crypto"
	"github.com/MKhiriev/group-vault/internal/logger"
	"github.com/MKhiriev/group-vault/internal/mock"
	"github.com/MKhiriev/group-vault/internal/workers"
	"github.com/MKhiriev/group-vault/models"
)

func TestUnlock_WrongPassphraseIsolation(t *testing.T) {
	env := newTestEnv(t, testVaultConfig())
	ctx := context.Background()
	admin := env.adminSession(t)

	g1, err := env.svcs.AdminService.CreateGroup(ctx, admin, "One", []byte("alpha"))
	require.NoError(t, err)
	g2, err := env.svcs.AdminService.CreateGroup(ctx, admin, "Two", []byte("beta"))
	require.NoError(t, err)
	g3, err := env.svcs.AdminService.CreateGroup(ctx, admin, "Three", []byte("alpha"))
	require.NoError(t, err)

	sess := env.newSession(t)
	sess.SetPassphrase([]byte("alpha"))
	report, err := env.svcs.UnlockService.Unlock(ctx, sess)
	require.NoError(t, err)

	assert.Equal(t, []string{g1, g2, g3}, report.Attempted)
	assert.Equal(t, []string{g1, g3}, report.Unlocked)
	assert.Equal(t, []string{g2}, report.Failed)
	assert.Equal(t, models.StatusSuccess, sess.Status(g1))
	assert.Equal(t, models.StatusFailed, sess.Status(g2))
	assert.Equal(t, models.StatusSuccess, sess.Status(g3))

	// a wrong passphrase never reverts a success
	sess.SetPassphrase([]byte("wrong"))
	report, err = env.svcs.UnlockService.Unlock(ctx, sess)
	require.NoError(t, err)
	assert.Equal(t, []string{g2}, report.Attempted)
	assert.Equal(t, models.StatusSuccess, sess.Status(g1))
	assert.Equal(t, models.StatusSuccess, sess.Status(g3))
	assert.Equal(t, models.StatusFailed, sess.Status(g2))

	sess.SetPassphrase([]byte("beta"))
	report, err = env.svcs.UnlockService.Unlock(ctx, sess)
	require.NoError(t, err)
	assert.Equal(t, []string{g2}, report.Unlocked)

	groups := sess.DecryptedGroups()
	require.Len(t, groups, 3)
	// unlock order, not index order
	assert.Equal(t, []string{g1, g3, g2}, []string{groups[0].ID, groups[1].ID, groups[2].ID})
	for _, g := range groups {
		assert.Nil(t, g.Key, "keys must not leave the session")
	}
}

func TestUnlock_ScenarioD_WrongPassphraseClearsInput(t *testing.T) {
	env := newTestEnv(t, testVaultConfig())
	ctx := context.Background()
	admin := env.adminSession(t)
	id, err := env.svcs.AdminService.CreateGroup(ctx, admin, "School", []byte("hunter2"))
	require.NoError(t, err)

	sess := env.newSession(t)
	sess.SetPassphrase([]byte("hunter3"))
	report, err := env.svcs.UnlockService.Unlock(ctx, sess)

	require.NoError(t, err)
	assert.Equal(t, []string{id}, report.Failed)
	assert.Equal(t, models.StatusFailed, sess.Status(id))
	assert.False(t, sess.HasPassphrase())
}

func TestUnlock_NoPassphrase(t *testing.T) {
	env := newTestEnv(t, testVaultConfig())

	_, err := env.svcs.UnlockService.Unlock(context.Background(), env.newSession(t))

	assert.ErrorIs(t, err, ErrNoPassphrase)
}

func TestUnlock_EmptyVault(t *testing.T) {
	env := newTestEnv(t, testVaultConfig())
	sess := env.newSession(t)
	sess.SetPassphrase([]byte("pw"))

	report, err := env.svcs.UnlockService.Unlock(context.Background(), sess)

	require.NoError(t, err)
	assert.Empty(t, report.Attempted)
	assert.False(t, sess.HasPassphrase())
}

func TestUnlock_SequentialInIndexOrderWithPacing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	vc := mock.NewMockVaultCrypto(ctrl)
	key := []byte("0123456789abcdef0123456789abcdef")
	gomock.InOrder(
		vc.EXPECT().DeriveKey([]byte("pw"), "salt-a").Return(append([]byte(nil), key...), nil),
		vc.EXPECT().DecryptItemList("iv-a", "ct-a", key).Return(nil, crypto.ErrAuthFailed),
		vc.EXPECT().DeriveKey([]byte("pw"), "salt-b").Return(append([]byte(nil), key...), nil),
		vc.EXPECT().DecryptItemList("iv-b", "ct-b", key).Return([]models.GroupItem{{ID: "i1"}}, nil),
	)

	q := workers.NewQueue(1, logger.Nop())
	q.Run()
	defer q.Stop()

	pacer := &countingPacer{}
	svc := NewUnlockService(vc, q, pacer, logger.Nop())

	sess := NewSession(nil)
	sess.adopt(models.VaultIndex{Version: "2.0", Groups: []models.Group{
		{ID: "a", Salt: "salt-a", IV: "iv-a", Ciphertext: "ct-a"},
		{ID: "b", Salt: "salt-b", IV: "iv-b", Ciphertext: "ct-b"},
	}}, "t", false)
	sess.SetPassphrase([]byte("pw"))

	report, err := svc.Unlock(context.Background(), sess)

	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, report.Unlocked)
	assert.Equal(t, []string{"a"}, report.Failed)
	assert.Equal(t, 2, pacer.calls)
}

func TestUnlock_BatchSurvivesCallerCancellation(t *testing.T) {
	env := newTestEnv(t, testVaultConfig())
	admin := env.adminSession(t)
	id, err := env.svcs.AdminService.CreateGroup(context.Background(), admin, "Slow", []byte("pw"))
	require.NoError(t, err)

	q := workers.NewQueue(1, logger.Nop())
	q.Run()
	svc := NewUnlockService(crypto.NewVaultCrypto(), q, FixedDelay(50*time.Millisecond), logger.Nop())

	sess := env.newSession(t)
	sess.SetPassphrase([]byte("pw"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = svc.Unlock(ctx, sess)
	assert.ErrorIs(t, err, context.Canceled)

	// Stop waits for the already accepted batch
	q.Stop()
	assert.Equal(t, models.StatusSuccess, sess.Status(id))
}

type countingPacer struct{ calls int }

func (p *countingPacer) Wait(context.Context) error {
	p.calls++
	return nil
}

func TestGroupFSM_Transitions(t *testing.T) {
	f := NewGroupFSM()
	assert.Equal(t, models.StatusPending, f.State())

	require.NoError(t, f.Transition(models.StatusDecrypting))
	assert.ErrorIs(t, f.Transition(models.StatusPending), ErrInvalidTransition)
	require.NoError(t, f.Transition(models.StatusFailed))
	require.NoError(t, f.Transition(models.StatusPending))
	require.NoError(t, f.Transition(models.StatusDecrypting))
	require.NoError(t, f.Transition(models.StatusSuccess))

	for _, next := range []models.GroupStatus{models.StatusPending, models.StatusDecrypting, models.StatusFailed, models.StatusSuccess} {
		assert.ErrorIs(t, f.Transition(next), ErrInvalidTransition, "success must be sticky")
	}
	assert.Equal(t, models.StatusSuccess, f.State())

	g := NewGroupFSM()
	assert.ErrorIs(t, g.Transition(models.StatusSuccess), ErrInvalidTransition)
}

func TestPacer(t *testing.T) {
	assert.Equal(t, NoDelay{}, NewPacer(0))
	assert.Equal(t, FixedDelay(time.Second), NewPacer(time.Second))

	start := time.Now()
	require.NoError(t, FixedDelay(20*time.Millisecond).Wait(context.Background()))
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, FixedDelay(time.Hour).Wait(ctx), context.Canceled)
	assert.ErrorIs(t, NoDelay{}.Wait(ctx), context.Canceled)
}
