package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	catalogdomain "github.com/tanomu-app/tanomu/internal/catalog/domain"
	"github.com/tanomu-app/tanomu/internal/clock"
	"github.com/tanomu-app/tanomu/internal/request/domain"
	"github.com/tanomu-app/tanomu/internal/request/repository"
	"github.com/tanomu-app/tanomu/internal/seed"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

type fakeNotifier struct {
	mu         sync.Mutex
	groupID    string
	recipients []string
	message    string
	calls      int
}

func (n *fakeNotifier) Notify(ctx context.Context, groupID string, recipientMemberIDs []string, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.groupID = groupID
	n.recipients = recipientMemberIDs
	n.message = message
	n.calls++
}

type fixture struct {
	svc      domain.Service
	notifier *fakeNotifier
	clock    *clock.FakeClock
	db       *gorm.DB
}

func setup(t *testing.T) *fixture {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	ddl := []string{
		`CREATE TABLE IF NOT EXISTS tabs (
			id TEXT PRIMARY KEY, group_id TEXT, name TEXT NOT NULL,
			is_system INTEGER NOT NULL DEFAULT 0, sort_order INTEGER NOT NULL DEFAULT 0,
			archived_at TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS items (
			id TEXT PRIMARY KEY, tab_id TEXT NOT NULL, group_id TEXT, name TEXT NOT NULL,
			is_system INTEGER NOT NULL DEFAULT 0, sort_order INTEGER NOT NULL DEFAULT 0,
			archived_at TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS stores (
			id TEXT PRIMARY KEY, group_id TEXT, name TEXT NOT NULL,
			is_system INTEGER NOT NULL DEFAULT 0, sort_order INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS members (
			id TEXT PRIMARY KEY, group_id TEXT NOT NULL, device_id TEXT NOT NULL,
			display_name TEXT NOT NULL, role TEXT NOT NULL, created_at TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS requests (
			id TEXT PRIMARY KEY, group_id TEXT NOT NULL, sender_member_id TEXT NOT NULL,
			store_id TEXT, status TEXT NOT NULL DEFAULT 'requested', created_at TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS request_items (
			request_id TEXT NOT NULL, item_id TEXT NOT NULL, qty INTEGER NOT NULL DEFAULT 1,
			PRIMARY KEY (request_id, item_id)
		)`,
		`CREATE TABLE IF NOT EXISTS inbox_events (
			id TEXT PRIMARY KEY, request_id TEXT NOT NULL, recipient_member_id TEXT NOT NULL,
			read_at TIMESTAMP
		)`,
	}
	for _, stmt := range ddl {
		require.NoError(t, db.Exec(stmt).Error)
	}
	for _, table := range []string{"inbox_events", "request_items", "requests", "members", "items", "tabs", "stores"} {
		db.Exec(`DELETE FROM ` + table)
	}
	require.NoError(t, seed.EnsureSystemCatalog(db))

	for _, member := range [][3]string{
		{"m-aki", "Aki", "admin"},
		{"m-ben", "Ben", "member"},
		{"m-chi", "Chi", "member"},
	} {
		require.NoError(t, db.Exec(
			`INSERT INTO members (id, group_id, device_id, display_name, role, created_at)
			 VALUES (?, 'g1', ?, ?, ?, ?)`,
			member[0], "device-"+member[0], member[1], member[2], time.Now().UTC(),
		).Error)
	}

	notifier := &fakeNotifier{}
	clk := clock.NewFakeClock(time.Date(2024, 1, 1, 3, 0, 0, 0, time.UTC))
	svc := New(Params{
		DB:       db,
		Log:      zaptest.NewLogger(t),
		Clock:    clk,
		Repo:     repository.Provide(),
		Notifier: notifier,
	})
	return &fixture{svc: svc, notifier: notifier, clock: clk, db: db}
}

func createRequest(t *testing.T, f *fixture, lang catalogdomain.Language, storeID *string, itemIDs ...string) domain.CreateRequestResponse {
	t.Helper()
	resp, err := f.svc.Create(context.Background(), domain.CreateRequestRequest{
		GroupID:        "g1",
		SenderMemberID: "m-aki",
		StoreID:        storeID,
		ItemIDs:        itemIDs,
		SenderName:     "Aki",
		Language:       lang,
	})
	require.NoError(t, err)
	return resp
}

func TestCreateRequestJapaneseMessage(t *testing.T) {
	f := setup(t)
	storeID := "sys-store-summit"

	resp := createRequest(t, f, catalogdomain.LanguageJA, &storeID,
		"sys-item-tissue", "sys-item-carrot", "sys-item-carrot")

	assert.NotEmpty(t, resp.RequestID)
	assert.Equal(t, "Akiさんがサミットでティッシュ、にんじん x2を買ってほしいと言っています", resp.PushMessage)

	assert.Equal(t, 1, f.notifier.calls)
	assert.Equal(t, "g1", f.notifier.groupID)
	assert.ElementsMatch(t, []string{"m-ben", "m-chi"}, f.notifier.recipients)
	assert.Equal(t, resp.PushMessage, f.notifier.message)
}

func TestCreateRequestEnglishMessage(t *testing.T) {
	f := setup(t)
	storeID := "sys-store-summit"

	resp := createRequest(t, f, catalogdomain.LanguageEN, &storeID, "sys-item-tissue")
	assert.Equal(t, "Aki is asking to buy Tissue at Summit.", resp.PushMessage)

	resp = createRequest(t, f, catalogdomain.LanguageEN, nil, "sys-item-tissue", "sys-item-tissue")
	assert.Equal(t, "Aki is asking to buy Tissue x2.", resp.PushMessage)
}

func TestCreateRequestCollapsesDuplicates(t *testing.T) {
	f := setup(t)

	resp := createRequest(t, f, catalogdomain.LanguageEN, nil,
		"sys-item-tissue", "sys-item-tissue", "sys-item-carrot")

	var rows []struct {
		ItemID string `gorm:"column:item_id"`
		Qty    int    `gorm:"column:qty"`
	}
	require.NoError(t, f.db.Raw(
		`SELECT item_id, qty FROM request_items WHERE request_id = ? ORDER BY item_id`,
		resp.RequestID,
	).Scan(&rows).Error)

	require.Len(t, rows, 2)
	assert.Equal(t, "sys-item-carrot", rows[0].ItemID)
	assert.Equal(t, 1, rows[0].Qty)
	assert.Equal(t, "sys-item-tissue", rows[1].ItemID)
	assert.Equal(t, 2, rows[1].Qty)
}

func TestCreateRequestValidation(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, domain.CreateRequestRequest{
		GroupID:        "g1",
		SenderMemberID: "m-aki",
		ItemIDs:        nil,
		Language:       catalogdomain.LanguageEN,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidPayload)

	badStore := "no-such-store"
	_, err = f.svc.Create(ctx, domain.CreateRequestRequest{
		GroupID:        "g1",
		SenderMemberID: "m-aki",
		StoreID:        &badStore,
		ItemIDs:        []string{"sys-item-tissue"},
		Language:       catalogdomain.LanguageEN,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidStore)

	_, err = f.svc.Create(ctx, domain.CreateRequestRequest{
		GroupID:        "g1",
		SenderMemberID: "m-aki",
		ItemIDs:        []string{"no-such-item"},
		Language:       catalogdomain.LanguageEN,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidItem)

	assert.Zero(t, f.notifier.calls)
}

func TestInboxListsEventsForRecipient(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	resp := createRequest(t, f, catalogdomain.LanguageJA, nil, "sys-item-tissue", "sys-item-toilet-paper")

	events, err := f.svc.Inbox(ctx, "m-ben", "g1", catalogdomain.LanguageEN)
	require.NoError(t, err)
	require.Len(t, events, 1)

	event := events[0]
	assert.Equal(t, resp.RequestID, event.RequestID)
	assert.Equal(t, domain.StatusRequested, event.Status)
	assert.Equal(t, "Aki", event.SenderName)
	assert.Nil(t, event.ReadAt)
	require.Len(t, event.Items, 2)
	assert.Equal(t, "Tissue", event.Items[0].Name)

	// A member of another group sees nothing.
	events, err = f.svc.Inbox(ctx, "m-ben", "g2", catalogdomain.LanguageEN)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestAcknowledgeTransitions(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	resp := createRequest(t, f, catalogdomain.LanguageEN, nil, "sys-item-tissue")

	status, err := f.svc.Acknowledge(ctx, "m-ben", resp.RequestID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAcknowledged, status.Status)

	// Acknowledging again keeps the state.
	status, err = f.svc.Acknowledge(ctx, "m-chi", resp.RequestID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAcknowledged, status.Status)

	// Acknowledge never demotes a completed request.
	status, err = f.svc.Complete(ctx, "m-ben", resp.RequestID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, status.Status)

	status, err = f.svc.Acknowledge(ctx, "m-chi", resp.RequestID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, status.Status)
}

func TestAcknowledgeMarksEventRead(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	resp := createRequest(t, f, catalogdomain.LanguageEN, nil, "sys-item-tissue")

	_, err := f.svc.Acknowledge(ctx, "m-ben", resp.RequestID)
	require.NoError(t, err)

	events, err := f.svc.Inbox(ctx, "m-ben", "g1", catalogdomain.LanguageEN)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.NotNil(t, events[0].ReadAt)

	// Other recipients stay unread.
	events, err = f.svc.Inbox(ctx, "m-chi", "g1", catalogdomain.LanguageEN)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Nil(t, events[0].ReadAt)
}

func TestSenderCannotActOnOwnRequest(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	resp := createRequest(t, f, catalogdomain.LanguageEN, nil, "sys-item-tissue")

	_, err := f.svc.Acknowledge(ctx, "m-aki", resp.RequestID)
	assert.ErrorIs(t, err, domain.ErrRequestNotFound)

	_, err = f.svc.Complete(ctx, "m-aki", resp.RequestID)
	assert.ErrorIs(t, err, domain.ErrRequestNotFound)

	_, err = f.svc.Complete(ctx, "m-ben", "no-such-request")
	assert.ErrorIs(t, err, domain.ErrRequestNotFound)
}
