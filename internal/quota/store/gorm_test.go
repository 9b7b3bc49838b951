package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanomu-app/tanomu/internal/quota/domain"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	err = db.Exec(`CREATE TABLE IF NOT EXISTS quota_states (
		name TEXT PRIMARY KEY,
		day_key TEXT NOT NULL,
		count INTEGER NOT NULL DEFAULT 0,
		write_limit INTEGER NOT NULL,
		state TEXT NOT NULL DEFAULT 'open',
		resume_at TEXT NOT NULL,
		updated_at TIMESTAMP
	)`).Error
	require.NoError(t, err)
	return db
}

func TestGormStoreLoadEmpty(t *testing.T) {
	store := NewGormStore(setupDB(t), t.Name())

	record, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestGormStoreSaveThenLoad(t *testing.T) {
	store := NewGormStore(setupDB(t), t.Name())
	ctx := context.Background()

	want := domain.QuotaRecord{
		DayKey:   "2024-01-01",
		Count:    7,
		Limit:    300,
		State:    domain.StateOpen,
		ResumeAt: "2024-01-01T15:00:00Z",
	}
	require.NoError(t, store.Save(ctx, want))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want, *got)
}

func TestGormStoreSaveOverwrites(t *testing.T) {
	store := NewGormStore(setupDB(t), t.Name())
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		record := domain.QuotaRecord{
			DayKey:   "2024-01-01",
			Count:    i,
			Limit:    300,
			State:    domain.StateOpen,
			ResumeAt: "2024-01-01T15:00:00Z",
		}
		if i == 3 {
			record.State = domain.StatePaused
		}
		require.NoError(t, store.Save(ctx, record))
	}

	got, err := store.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 3, got.Count)
	assert.Equal(t, domain.StatePaused, got.State)

	var rows int64
	require.NoError(t, store.db.Raw(
		`SELECT COUNT(*) FROM quota_states WHERE name = ?`, t.Name(),
	).Scan(&rows).Error)
	assert.EqualValues(t, 1, rows)
}

func TestGormStoreIsolatedByName(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		s := NewGormStore(db, fmt.Sprintf("%s-%d", t.Name(), i))
		require.NoError(t, s.Save(ctx, domain.QuotaRecord{
			DayKey:   "2024-01-01",
			Count:    i,
			Limit:    300,
			State:    domain.StateOpen,
			ResumeAt: "2024-01-01T15:00:00Z",
		}))
	}

	for i := 0; i < 3; i++ {
		s := NewGormStore(db, fmt.Sprintf("%s-%d", t.Name(), i))
		got, err := s.Load(ctx)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, i, got.Count)
	}
}
