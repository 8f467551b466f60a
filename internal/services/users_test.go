package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/guardbox/internal/common"
	"github.com/dmitrijs2005/guardbox/internal/cryptox"
	"github.com/dmitrijs2005/guardbox/internal/models"
	"github.com/dmitrijs2005/guardbox/internal/repositories/users"
)

func newUserFixture(t *testing.T) (*UserService, users.Repository) {
	t.Helper()

	repo := users.NewInMemoryRepository()
	return NewUserService(repo, testLogger()), repo
}

func adminSession(username string) *Session {
	return &Session{UserName: username, Role: models.RoleAdmin}
}

func userSession(username string) *Session {
	return &Session{UserName: username, Role: models.RoleUser}
}

func TestRegister_FirstUserForcedAdmin(t *testing.T) {
	svc, _ := newUserFixture(t)

	// the requested role is user, but the first user must become admin
	user, err := svc.Register(context.Background(), nil, "alice", "pw1", models.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)
}

func TestRegister_EmptyUsername(t *testing.T) {
	svc, _ := newUserFixture(t)

	_, err := svc.Register(context.Background(), nil, "", "pw1", models.RoleUser)
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc, repo := newUserFixture(t)
	ctx := context.Background()

	first, err := svc.Register(ctx, nil, "alice", "pw1", models.RoleAdmin)
	require.NoError(t, err)

	_, err = svc.Register(ctx, adminSession("alice"), "alice", "otherpw", models.RoleUser)
	require.ErrorIs(t, err, common.ErrorAlreadyExists)

	// the existing record must be untouched
	stored, err := repo.Find(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, first.PasswordHash, stored.PasswordHash)
	assert.Equal(t, models.RoleAdmin, stored.Role)
}

func TestRegister_NonAdminActorDenied(t *testing.T) {
	svc, repo := newUserFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, nil, "alice", "pw1", models.RoleAdmin)
	require.NoError(t, err)

	_, err = svc.Register(ctx, userSession("bob"), "carol", "pw3", models.RoleUser)
	require.ErrorIs(t, err, common.ErrorPermissionDenied)

	_, err = svc.Register(ctx, nil, "carol", "pw3", models.RoleUser)
	require.ErrorIs(t, err, common.ErrorPermissionDenied)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "denied registration must not mutate the store")
}

func TestRegister_AdminCreatesUsersAndAdmins(t *testing.T) {
	svc, _ := newUserFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, nil, "alice", "pw1", models.RoleAdmin)
	require.NoError(t, err)

	bob, err := svc.Register(ctx, adminSession("alice"), "bob", "pw2", models.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, bob.Role)

	carol, err := svc.Register(ctx, adminSession("alice"), "carol", "pw3", models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, carol.Role)
}

func TestRegister_UnknownRoleFallsBackToUser(t *testing.T) {
	svc, _ := newUserFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, nil, "alice", "pw1", models.RoleAdmin)
	require.NoError(t, err)

	bob, err := svc.Register(ctx, adminSession("alice"), "bob", "pw2", models.Role("superuser"))
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, bob.Role)
}

func TestChangeOwnPassword(t *testing.T) {
	svc, repo := newUserFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, nil, "alice", "pw1", models.RoleAdmin)
	require.NoError(t, err)

	require.NoError(t, svc.ChangeOwnPassword(ctx, adminSession("alice"), "newpw"))

	stored, err := repo.Find(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, cryptox.CheckPassword(stored.PasswordHash, "newpw"))
	assert.False(t, cryptox.CheckPassword(stored.PasswordHash, "pw1"))
}

func TestChangeOwnPassword_NoSession(t *testing.T) {
	svc, _ := newUserFixture(t)

	err := svc.ChangeOwnPassword(context.Background(), nil, "newpw")
	assert.ErrorIs(t, err, common.ErrorPermissionDenied)
}

func TestResetOtherPassword(t *testing.T) {
	svc, repo := newUserFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, nil, "alice", "pw1", models.RoleAdmin)
	require.NoError(t, err)
	_, err = svc.Register(ctx, adminSession("alice"), "bob", "pw2", models.RoleUser)
	require.NoError(t, err)

	require.NoError(t, svc.ResetOtherPassword(ctx, adminSession("alice"), "bob", "newpw"))

	stored, err := repo.Find(ctx, "bob")
	require.NoError(t, err)
	assert.True(t, cryptox.CheckPassword(stored.PasswordHash, "newpw"))
}

func TestResetOtherPassword_NonAdminDenied(t *testing.T) {
	svc, repo := newUserFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, nil, "alice", "pw1", models.RoleAdmin)
	require.NoError(t, err)
	_, err = svc.Register(ctx, adminSession("alice"), "bob", "pw2", models.RoleUser)
	require.NoError(t, err)

	err = svc.ResetOtherPassword(ctx, userSession("bob"), "alice", "hijacked")
	require.ErrorIs(t, err, common.ErrorPermissionDenied)

	stored, err := repo.Find(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, cryptox.CheckPassword(stored.PasswordHash, "pw1"))
}

func TestResetOtherPassword_UnknownTarget(t *testing.T) {
	svc, _ := newUserFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, nil, "alice", "pw1", models.RoleAdmin)
	require.NoError(t, err)

	err = svc.ResetOtherPassword(ctx, adminSession("alice"), "ghost", "newpw")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestListUsers(t *testing.T) {
	svc, _ := newUserFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, nil, "carol", "pw1", models.RoleAdmin)
	require.NoError(t, err)
	_, err = svc.Register(ctx, adminSession("carol"), "alice", "pw2", models.RoleUser)
	require.NoError(t, err)

	list, err := svc.ListUsers(ctx, adminSession("carol"))
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "alice", list[0].UserName)
	assert.Equal(t, "carol", list[1].UserName)

	_, err = svc.ListUsers(ctx, userSession("alice"))
	assert.ErrorIs(t, err, common.ErrorPermissionDenied)
}

func TestHasUsers(t *testing.T) {
	svc, _ := newUserFixture(t)
	ctx := context.Background()

	has, err := svc.HasUsers(ctx)
	require.NoError(t, err)
	assert.False(t, has)

	_, err = svc.Register(ctx, nil, "alice", "pw1", models.RoleAdmin)
	require.NoError(t, err)

	has, err = svc.HasUsers(ctx)
	require.NoError(t, err)
	assert.True(t, has)
}
