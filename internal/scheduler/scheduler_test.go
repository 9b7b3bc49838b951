package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanomu-app/tanomu/internal/clock"
	appconfig "github.com/tanomu-app/tanomu/internal/config"
	"github.com/tanomu-app/tanomu/internal/daywindow"
	pushrepository "github.com/tanomu-app/tanomu/internal/push/repository"
	quotadomain "github.com/tanomu-app/tanomu/internal/quota/domain"
	"github.com/tanomu-app/tanomu/internal/quota/gate"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

type memStore struct {
	mu     sync.Mutex
	record *quotadomain.QuotaRecord
}

func (s *memStore) Load(ctx context.Context) (*quotadomain.QuotaRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.record == nil {
		return nil, nil
	}
	copy := *s.record
	return &copy, nil
}

func (s *memStore) Save(ctx context.Context, record quotadomain.QuotaRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record = &record
	return nil
}

type fixture struct {
	sched *Scheduler
	store *memStore
	clock *clock.FakeClock
	db    *gorm.DB
}

func setup(t *testing.T) *fixture {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	ddl := []string{
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
		`CREATE TABLE IF NOT EXISTS push_subscriptions (
			id TEXT PRIMARY KEY, member_id TEXT NOT NULL, endpoint TEXT NOT NULL UNIQUE,
			p256dh TEXT NOT NULL, auth TEXT NOT NULL, updated_at TIMESTAMP
		)`,
	}
	for _, stmt := range ddl {
		require.NoError(t, db.Exec(stmt).Error)
	}
	for _, table := range []string{"requests", "request_items", "inbox_events", "push_subscriptions"} {
		db.Exec(`DELETE FROM ` + table)
	}

	store := &memStore{}
	log := zaptest.NewLogger(t)
	// 2024-01-01 12:00 JST.
	clk := clock.NewFakeClock(time.Date(2024, 1, 1, 3, 0, 0, 0, time.UTC))
	window := daywindow.MustLoad("Asia/Tokyo")

	sched, err := New(Params{
		DB:       db,
		Log:      log,
		Clock:    clk,
		Window:   window,
		Gate:     gate.New(gate.GlobalName, store, log),
		PushRepo: pushrepository.Provide(),
		AppCfg: appconfig.Config{
			Quota: appconfig.QuotaConfig{DailyWriteLimit: 300, Timezone: "Asia/Tokyo"},
		},
		Config: Config{RetentionDays: 30, PushRetentionDays: 180},
	})
	require.NoError(t, err)

	return &fixture{sched: sched, store: store, clock: clk, db: db}
}

func TestQuotaResetJobInitializesWindow(t *testing.T) {
	f := setup(t)

	require.NoError(t, f.sched.QuotaResetJob(context.Background()))

	require.NotNil(t, f.store.record)
	assert.Equal(t, "2024-01-01", f.store.record.DayKey)
	assert.Equal(t, 0, f.store.record.Count)
	assert.Equal(t, 300, f.store.record.Limit)
	assert.Equal(t, quotadomain.StateOpen, f.store.record.State)
}

func TestQuotaResetJobRollsPausedWindow(t *testing.T) {
	f := setup(t)
	f.store.record = &quotadomain.QuotaRecord{
		DayKey:   "2023-12-31",
		Count:    300,
		Limit:    300,
		State:    quotadomain.StatePaused,
		ResumeAt: "2023-12-31T15:00:00Z",
	}

	require.NoError(t, f.sched.QuotaResetJob(context.Background()))

	assert.Equal(t, "2024-01-01", f.store.record.DayKey)
	assert.Equal(t, 0, f.store.record.Count)
	assert.Equal(t, quotadomain.StateOpen, f.store.record.State)
	assert.Equal(t, "2024-01-01T15:00:00Z", f.store.record.ResumeAt)
}

func TestQuotaResetJobLeavesCurrentDayAlone(t *testing.T) {
	f := setup(t)
	f.store.record = &quotadomain.QuotaRecord{
		DayKey:   "2024-01-01",
		Count:    42,
		Limit:    300,
		State:    quotadomain.StateOpen,
		ResumeAt: "2024-01-01T15:00:00Z",
	}

	require.NoError(t, f.sched.QuotaResetJob(context.Background()))

	assert.Equal(t, 42, f.store.record.Count)
	assert.Equal(t, quotadomain.StateOpen, f.store.record.State)
}

func TestRetentionSweepDeletesOldRequests(t *testing.T) {
	f := setup(t)
	old := f.clock.Now().AddDate(0, 0, -31)
	recent := f.clock.Now().AddDate(0, 0, -1)

	seed := []struct {
		id        string
		createdAt time.Time
	}{
		{"r-old", old},
		{"r-recent", recent},
	}
	for _, r := range seed {
		require.NoError(t, f.db.Exec(
			`INSERT INTO requests (id, group_id, sender_member_id, status, created_at) VALUES (?, 'g1', 'm1', 'requested', ?)`,
			r.id, r.createdAt,
		).Error)
		require.NoError(t, f.db.Exec(
			`INSERT INTO request_items (request_id, item_id, qty) VALUES (?, 'i1', 1)`, r.id,
		).Error)
		require.NoError(t, f.db.Exec(
			`INSERT INTO inbox_events (id, request_id, recipient_member_id) VALUES (?, ?, 'm2')`,
			"e-"+r.id, r.id,
		).Error)
	}

	require.NoError(t, f.sched.RetentionSweepJob(context.Background()))

	var ids []string
	require.NoError(t, f.db.Raw(`SELECT id FROM requests`).Scan(&ids).Error)
	assert.Equal(t, []string{"r-recent"}, ids)

	var count int
	require.NoError(t, f.db.Raw(`SELECT COUNT(*) FROM request_items WHERE request_id = 'r-old'`).Scan(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, f.db.Raw(`SELECT COUNT(*) FROM inbox_events WHERE request_id = 'r-old'`).Scan(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, f.db.Raw(`SELECT COUNT(*) FROM inbox_events WHERE request_id = 'r-recent'`).Scan(&count).Error)
	assert.Equal(t, 1, count)
}

func TestPushRetentionPrunesStaleSubscriptions(t *testing.T) {
	f := setup(t)
	stale := f.clock.Now().AddDate(0, 0, -181)
	fresh := f.clock.Now().AddDate(0, 0, -7)

	require.NoError(t, f.db.Exec(
		`INSERT INTO push_subscriptions (id, member_id, endpoint, p256dh, auth, updated_at) VALUES ('s1', 'm1', 'https://push.example/stale', 'k', 'a', ?)`,
		stale,
	).Error)
	require.NoError(t, f.db.Exec(
		`INSERT INTO push_subscriptions (id, member_id, endpoint, p256dh, auth, updated_at) VALUES ('s2', 'm1', 'https://push.example/fresh', 'k', 'a', ?)`,
		fresh,
	).Error)

	require.NoError(t, f.sched.PushRetentionJob(context.Background()))

	var endpoints []string
	require.NoError(t, f.db.Raw(`SELECT endpoint FROM push_subscriptions`).Scan(&endpoints).Error)
	assert.Equal(t, []string{"https://push.example/fresh"}, endpoints)
}

func TestRunJobTimeoutIsSoft(t *testing.T) {
	f := setup(t)

	err := f.sched.runJob(context.Background(), "timeout_job", 5*time.Millisecond, func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	assert.NoError(t, err)
}

func TestRunOnceRunsOnlyEnabledJobs(t *testing.T) {
	f := setup(t)
	f.sched.cfg.EnabledJobs = []string{"quota_reset"}

	require.NoError(t, f.sched.RunOnce(context.Background()))

	// Only the quota job ran; the window exists and nothing else touched
	// the database tables.
	require.NotNil(t, f.store.record)
	assert.Equal(t, "2024-01-01", f.store.record.DayKey)
}
