// Package gate implements the serialized quota actor.
package gate

import (
	"context"
	"sync"

	"github.com/tanomu-app/tanomu/internal/quota/domain"
	"go.uber.org/zap"
)

// Gate owns one QuotaRecord and processes operations one at a time. The
// mutex is held across the storage read and write of every operation; that
// single critical section is what makes concurrent consume calls count
// exactly, with no lost or doubled updates.
type Gate struct {
	name  string
	mu    sync.Mutex
	store domain.Store
	log   *zap.Logger
}

func New(name string, store domain.Store, log *zap.Logger) *Gate {
	return &Gate{
		name:  name,
		store: store,
		log:   log.Named("quota.gate").With(zap.String("gate", name)),
	}
}

func (g *Gate) Name() string {
	return g.name
}

// ensureWindow applies lazy day-rollover: a missing record or a dayKey
// mismatch starts a fresh window, otherwise limit and resumeAt are refreshed
// so mid-day config changes take effect without losing the count. DayKey
// comparison is plain string equality; a calendar-earlier key also starts a
// fresh window.
func ensureWindow(record *domain.QuotaRecord, in domain.ConsumeInput) domain.QuotaRecord {
	if record == nil || record.DayKey != in.DayKey {
		return domain.QuotaRecord{
			DayKey:   in.DayKey,
			Count:    0,
			Limit:    in.Limit,
			State:    domain.StateOpen,
			ResumeAt: in.ResumeAt,
		}
	}

	current := *record
	current.Limit = in.Limit
	current.ResumeAt = in.ResumeAt
	return current
}

func (g *Gate) Consume(ctx context.Context, in domain.ConsumeInput) (domain.QuotaRecord, error) {
	if err := in.Validate(); err != nil {
		return domain.QuotaRecord{}, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	current, err := g.store.Load(ctx)
	if err != nil {
		return domain.QuotaRecord{}, err
	}

	record := ensureWindow(current, in)

	if record.State == domain.StatePaused {
		// Persist anyway so limit/resumeAt stay current while paused.
		if err := g.store.Save(ctx, record); err != nil {
			return domain.QuotaRecord{}, err
		}
		return record, nil
	}

	if record.Count+1 > record.Limit {
		record.State = domain.StatePaused
		if err := g.store.Save(ctx, record); err != nil {
			return domain.QuotaRecord{}, err
		}
		g.log.Warn("daily write quota exhausted",
			zap.String("day_key", record.DayKey),
			zap.Int("limit", record.Limit),
		)
		return record, nil
	}

	record.Count++
	if err := g.store.Save(ctx, record); err != nil {
		return domain.QuotaRecord{}, err
	}
	return record, nil
}

func (g *Gate) ForceReset(ctx context.Context, in domain.ConsumeInput) (domain.QuotaRecord, error) {
	if err := in.Validate(); err != nil {
		return domain.QuotaRecord{}, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	record := domain.QuotaRecord{
		DayKey:   in.DayKey,
		Count:    0,
		Limit:    in.Limit,
		State:    domain.StateOpen,
		ResumeAt: in.ResumeAt,
	}
	if err := g.store.Save(ctx, record); err != nil {
		return domain.QuotaRecord{}, err
	}

	g.log.Info("quota window reset",
		zap.String("day_key", record.DayKey),
		zap.Int("limit", record.Limit),
	)
	return record, nil
}

func (g *Gate) Status(ctx context.Context) (domain.QuotaRecord, bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	current, err := g.store.Load(ctx)
	if err != nil {
		return domain.QuotaRecord{}, false, err
	}
	if current == nil {
		return domain.QuotaRecord{}, false, nil
	}
	return *current, true, nil
}
