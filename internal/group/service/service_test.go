package service

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanomu-app/tanomu/internal/clock"
	"github.com/tanomu-app/tanomu/internal/group/domain"
	"github.com/tanomu-app/tanomu/internal/group/repository"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

func setupService(t *testing.T) domain.Service {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	for _, ddl := range []string{
		`CREATE TABLE IF NOT EXISTS groups (
			id TEXT PRIMARY KEY,
			invite_token_hash TEXT NOT NULL UNIQUE,
			passphrase_hash TEXT NOT NULL,
			metadata TEXT NOT NULL DEFAULT '{}',
			created_at TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS members (
			id TEXT PRIMARY KEY,
			group_id TEXT NOT NULL,
			device_id TEXT NOT NULL,
			display_name TEXT NOT NULL,
			role TEXT NOT NULL,
			created_at TIMESTAMP,
			UNIQUE(group_id, device_id)
		)`,
	} {
		require.NoError(t, db.Exec(ddl).Error)
	}
	db.Exec(`DELETE FROM members`)
	db.Exec(`DELETE FROM groups`)

	return New(Params{
		DB:    db,
		Log:   zaptest.NewLogger(t),
		Clock: clock.NewFakeClock(time.Date(2024, 1, 1, 3, 0, 0, 0, time.UTC)),
		Repo:  repository.Provide(),
	})
}

func TestCreateGroup(t *testing.T) {
	svc := setupService(t)

	resp, err := svc.Create(context.Background(), domain.CreateGroupRequest{
		DeviceID:    "device-a",
		DisplayName: "Aki",
		Passphrase:  "secret",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.GroupID)
	assert.NotEmpty(t, resp.MemberID)
	assert.NotEmpty(t, resp.InviteToken)
	assert.Equal(t, domain.RoleAdmin, resp.Role)
}

func TestCreateGroupRejectsEmptyFields(t *testing.T) {
	svc := setupService(t)

	cases := []domain.CreateGroupRequest{
		{DeviceID: "", DisplayName: "Aki", Passphrase: "secret"},
		{DeviceID: "device-a", DisplayName: "  ", Passphrase: "secret"},
		{DeviceID: "device-a", DisplayName: "Aki", Passphrase: ""},
	}
	for _, req := range cases {
		_, err := svc.Create(context.Background(), req)
		assert.ErrorIs(t, err, domain.ErrInvalidPayload)
	}
}

func TestJoinGroup(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateGroupRequest{
		DeviceID:    "device-a",
		DisplayName: "Aki",
		Passphrase:  "secret",
	})
	require.NoError(t, err)

	joined, err := svc.Join(ctx, domain.JoinGroupRequest{
		InviteToken: created.InviteToken,
		DeviceID:    "device-b",
		DisplayName: "Ben",
		Passphrase:  "secret",
	})
	require.NoError(t, err)

	assert.Equal(t, created.GroupID, joined.GroupID)
	assert.Equal(t, domain.RoleMember, joined.Role)
	assert.False(t, joined.AlreadyMember)
	assert.NotEqual(t, created.MemberID, joined.MemberID)
}

func TestJoinGroupIdempotentPerDevice(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateGroupRequest{
		DeviceID:    "device-a",
		DisplayName: "Aki",
		Passphrase:  "secret",
	})
	require.NoError(t, err)

	req := domain.JoinGroupRequest{
		InviteToken: created.InviteToken,
		DeviceID:    "device-b",
		DisplayName: "Ben",
		Passphrase:  "secret",
	}
	first, err := svc.Join(ctx, req)
	require.NoError(t, err)
	second, err := svc.Join(ctx, req)
	require.NoError(t, err)

	assert.True(t, second.AlreadyMember)
	assert.Equal(t, first.MemberID, second.MemberID)
	assert.Equal(t, first.Role, second.Role)
}

func TestJoinGroupCreatorDeviceRecognized(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateGroupRequest{
		DeviceID:    "device-a",
		DisplayName: "Aki",
		Passphrase:  "secret",
	})
	require.NoError(t, err)

	joined, err := svc.Join(ctx, domain.JoinGroupRequest{
		InviteToken: created.InviteToken,
		DeviceID:    "device-a",
		DisplayName: "Aki",
		Passphrase:  "secret",
	})
	require.NoError(t, err)

	assert.True(t, joined.AlreadyMember)
	assert.Equal(t, created.MemberID, joined.MemberID)
	assert.Equal(t, domain.RoleAdmin, joined.Role)
}

func TestJoinGroupWrongPassphrase(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateGroupRequest{
		DeviceID:    "device-a",
		DisplayName: "Aki",
		Passphrase:  "secret",
	})
	require.NoError(t, err)

	_, err = svc.Join(ctx, domain.JoinGroupRequest{
		InviteToken: created.InviteToken,
		DeviceID:    "device-b",
		DisplayName: "Ben",
		Passphrase:  "wrong",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidPassphrase)
}

func TestJoinGroupUnknownToken(t *testing.T) {
	svc := setupService(t)

	_, err := svc.Join(context.Background(), domain.JoinGroupRequest{
		InviteToken: "nope",
		DeviceID:    "device-b",
		DisplayName: "Ben",
		Passphrase:  "secret",
	})
	assert.ErrorIs(t, err, domain.ErrGroupNotFound)
}

func TestAuthenticateMember(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateGroupRequest{
		DeviceID:    "device-a",
		DisplayName: "Aki",
		Passphrase:  "secret",
	})
	require.NoError(t, err)

	member, err := svc.AuthenticateMember(ctx, created.MemberID, created.GroupID, "device-a")
	require.NoError(t, err)
	assert.Equal(t, created.MemberID, member.ID)

	_, err = svc.AuthenticateMember(ctx, created.MemberID, created.GroupID, "device-x")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = svc.AuthenticateMember(ctx, "", created.GroupID, "device-a")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
