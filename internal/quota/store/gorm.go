// Package store provides durable backends for the quota gate.
package store

import (
	"context"
	"time"

	"github.com/tanomu-app/tanomu/internal/quota/domain"
	"gorm.io/gorm"
)

type quotaStateRow struct {
	Name       string `gorm:"column:name"`
	DayKey     string `gorm:"column:day_key"`
	Count      int    `gorm:"column:count"`
	WriteLimit int    `gorm:"column:write_limit"`
	State      string `gorm:"column:state"`
	ResumeAt   string `gorm:"column:resume_at"`
}

// GormStore keeps the gate record in a single quota_states row.
type GormStore struct {
	db   *gorm.DB
	name string
}

func NewGormStore(db *gorm.DB, name string) *GormStore {
	return &GormStore{db: db, name: name}
}

func (s *GormStore) Load(ctx context.Context) (*domain.QuotaRecord, error) {
	var row quotaStateRow
	err := s.db.WithContext(ctx).Raw(
		`SELECT name, day_key, count, write_limit, state, resume_at
		 FROM quota_states WHERE name = ?`,
		s.name,
	).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.Name == "" {
		return nil, nil
	}
	return &domain.QuotaRecord{
		DayKey:   row.DayKey,
		Count:    row.Count,
		Limit:    row.WriteLimit,
		State:    domain.State(row.State),
		ResumeAt: row.ResumeAt,
	}, nil
}

func (s *GormStore) Save(ctx context.Context, record domain.QuotaRecord) error {
	return s.db.WithContext(ctx).Exec(
		`INSERT INTO quota_states (name, day_key, count, write_limit, state, resume_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
		   day_key = excluded.day_key,
		   count = excluded.count,
		   write_limit = excluded.write_limit,
		   state = excluded.state,
		   resume_at = excluded.resume_at,
		   updated_at = excluded.updated_at`,
		s.name,
		record.DayKey,
		record.Count,
		record.Limit,
		string(record.State),
		record.ResumeAt,
		time.Now().UTC(),
	).Error
}
