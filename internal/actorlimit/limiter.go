// Package actorlimit enforces a per-actor daily cap on group create and
// join calls. It is independent from the global write gate: the gate
// protects the whole deployment, this limiter slows down a single abusive
// address.
package actorlimit

import (
	"context"
	"time"

	"github.com/tanomu-app/tanomu/internal/clock"
	"github.com/tanomu-app/tanomu/internal/daywindow"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Limiter counts calls per actor key per local day in the
// daily_actor_limits table. A zero or negative limit disables it.
type Limiter struct {
	db     *gorm.DB
	window *daywindow.Window
	clock  clock.Clock
	limit  int
	log    *zap.Logger
}

func New(db *gorm.DB, window *daywindow.Window, clk clock.Clock, limit int, log *zap.Logger) *Limiter {
	return &Limiter{
		db:     db,
		window: window,
		clock:  clk,
		limit:  limit,
		log:    log.Named("actorlimit"),
	}
}

type actorRow struct {
	DayKey string `gorm:"column:day_key"`
	Count  int    `gorm:"column:count"`
}

// Allow increments the actor's counter for today and reports whether the
// call is still within the daily budget. The upsert resets the counter
// when the stored row belongs to an earlier day. Concurrent callers may
// briefly land on the same count; the limiter tolerates that, it is a
// brake rather than an exact meter.
func (l *Limiter) Allow(ctx context.Context, actorKey string) (bool, error) {
	if l.limit <= 0 {
		return true, nil
	}

	dayKey := l.window.DayKey(l.clock.Now())
	now := l.clock.Now().UTC().Format(time.RFC3339)

	err := l.db.WithContext(ctx).Exec(
		`INSERT INTO daily_actor_limits (actor_key, day_key, count, updated_at)
		 VALUES (?, ?, 1, ?)
		 ON CONFLICT(actor_key) DO UPDATE SET
		   day_key = CASE
		     WHEN daily_actor_limits.day_key = excluded.day_key THEN daily_actor_limits.day_key
		     ELSE excluded.day_key
		   END,
		   count = CASE
		     WHEN daily_actor_limits.day_key = excluded.day_key THEN daily_actor_limits.count + 1
		     ELSE 1
		   END,
		   updated_at = excluded.updated_at`,
		actorKey, dayKey, now,
	).Error
	if err != nil {
		return false, err
	}

	var row actorRow
	err = l.db.WithContext(ctx).Raw(
		`SELECT day_key, count FROM daily_actor_limits WHERE actor_key = ?`,
		actorKey,
	).Scan(&row).Error
	if err != nil {
		return false, err
	}

	if row.DayKey != dayKey {
		// Another writer rolled the row to a different day between our
		// upsert and read. Let the call through.
		return true, nil
	}
	if row.Count > l.limit {
		l.log.Warn("actor over daily create/join budget",
			zap.String("actor_key", actorKey),
			zap.String("day_key", dayKey),
			zap.Int("count", row.Count),
		)
		return false, nil
	}
	return true, nil
}
