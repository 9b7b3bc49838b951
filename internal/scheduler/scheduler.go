package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tanomu-app/tanomu/internal/clock"
	appconfig "github.com/tanomu-app/tanomu/internal/config"
	"github.com/tanomu-app/tanomu/internal/daywindow"
	"github.com/tanomu-app/tanomu/internal/metrics"
	pushdomain "github.com/tanomu-app/tanomu/internal/push/domain"
	quotadomain "github.com/tanomu-app/tanomu/internal/quota/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrInvalidConfig = errors.New("scheduler: missing dependency")

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	Clock    clock.Clock
	Window   *daywindow.Window
	Gate     quotadomain.Gate
	PushRepo pushdomain.Repository
	AppCfg   appconfig.Config
	Metrics  *metrics.Metrics `optional:"true"`
	Config   Config           `optional:"true"`
}

type Scheduler struct {
	db       *gorm.DB
	log      *zap.Logger
	cfg      Config
	appCfg   appconfig.Config
	clock    clock.Clock
	window   *daywindow.Window
	gate     quotadomain.Gate
	pushRepo pushdomain.Repository
	metrics  *metrics.Metrics
}

func New(p Params) (*Scheduler, error) {
	if p.DB == nil || p.Log == nil || p.Clock == nil || p.Window == nil || p.Gate == nil || p.PushRepo == nil {
		return nil, ErrInvalidConfig
	}
	return &Scheduler{
		db:       p.DB,
		log:      p.Log.Named("scheduler").With(zap.String("component", "scheduler")),
		cfg:      p.Config.withDefaults(),
		appCfg:   p.AppCfg,
		clock:    p.Clock,
		window:   p.Window,
		gate:     p.Gate,
		pushRepo: p.PushRepo,
		metrics:  p.Metrics,
	}, nil
}

func (s *Scheduler) runJob(
	parent context.Context,
	name string,
	timeout time.Duration,
	fn func(ctx context.Context) error,
) error {
	start := s.clock.Now()
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	log := s.log.With(zap.String("job", name))
	err := fn(ctx)
	elapsed := time.Since(start)
	if err == nil {
		log.Debug("job finished", zap.Duration("elapsed", elapsed))
		return nil
	}

	// A deadline is a soft failure; the next tick picks the work back up.
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		log.Warn("job timed out",
			zap.Duration("timeout", timeout),
			zap.Error(err),
		)
		return nil
	}

	log.Error("job failed", zap.Duration("elapsed", elapsed), zap.Error(err))
	return fmt.Errorf("%s: %w", name, err)
}

func (s *Scheduler) RunOnce(parent context.Context) error {
	var err error

	jobs := []struct {
		Name    string
		Enabled bool
		Run     func(context.Context) error
	}{
		{"quota_reset", s.isJobEnabled("quota_reset"), func(ctx context.Context) error {
			return s.runJob(ctx, "quota_reset", s.cfg.JobTimeout, s.QuotaResetJob)
		}},
		{"retention_sweep", s.isJobEnabled("retention_sweep"), func(ctx context.Context) error {
			return s.runJob(ctx, "retention_sweep", s.cfg.JobTimeout, s.RetentionSweepJob)
		}},
		{"push_retention", s.isJobEnabled("push_retention"), func(ctx context.Context) error {
			return s.runJob(ctx, "push_retention", s.cfg.JobTimeout, s.PushRetentionJob)
		}},
	}

	for _, job := range jobs {
		if job.Enabled {
			err = errors.Join(err, job.Run(parent))
		}
	}

	return err
}

func (s *Scheduler) RunForever(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.RunInterval)
	defer ticker.Stop()

	for {
		if err := s.RunOnce(ctx); err != nil {
			s.log.Warn("scheduler run failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *Scheduler) isJobEnabled(jobName string) bool {
	// An empty EnabledJobs list enables everything (monolith mode).
	if len(s.cfg.EnabledJobs) == 0 {
		return true
	}
	for _, enabled := range s.cfg.EnabledJobs {
		if strings.EqualFold(enabled, jobName) {
			return true
		}
	}
	return false
}

// QuotaResetJob reopens the write gate once the logical day has rolled over.
// The gate also rolls lazily on its own; this job exists so a quiet morning
// still starts from a fresh window instead of waiting for the first write.
func (s *Scheduler) QuotaResetJob(ctx context.Context) error {
	now := s.clock.Now()
	dayKey := s.window.DayKey(now)

	record, ok, err := s.gate.Status(ctx)
	if err != nil {
		return err
	}
	if ok && record.DayKey == dayKey {
		return nil
	}

	fresh, err := s.gate.ForceReset(ctx, quotadomain.ConsumeInput{
		DayKey:   dayKey,
		Limit:    s.appCfg.Quota.DailyWriteLimit,
		ResumeAt: s.window.NextMidnightISO(now),
	})
	if err != nil {
		return err
	}
	s.metrics.QuotaForceReset()
	s.log.Info("quota window reset",
		zap.String("day_key", fresh.DayKey),
		zap.Int("limit", fresh.Limit),
	)
	return nil
}

// RetentionSweepJob drops requests past the retention window along with
// their items and inbox events.
func (s *Scheduler) RetentionSweepJob(ctx context.Context) error {
	cutoff := s.clock.Now().AddDate(0, 0, -s.cfg.RetentionDays)

	statements := []string{
		`DELETE FROM inbox_events
		 WHERE request_id IN (SELECT id FROM requests WHERE created_at < ?)`,
		`DELETE FROM request_items
		 WHERE request_id IN (SELECT id FROM requests WHERE created_at < ?)`,
		`DELETE FROM requests WHERE created_at < ?`,
	}

	var deleted int64
	for _, stmt := range statements {
		res := s.db.WithContext(ctx).Exec(stmt, cutoff)
		if res.Error != nil {
			return res.Error
		}
		deleted += res.RowsAffected
	}

	if deleted > 0 {
		s.log.Info("retention sweep removed rows",
			zap.Int64("rows", deleted),
			zap.Time("cutoff", cutoff),
		)
	}
	return nil
}

// PushRetentionJob prunes subscriptions that have not been refreshed by the
// browser in a long time. Dead endpoints are also removed on delivery
// failure; this catches the ones that never get sent to.
func (s *Scheduler) PushRetentionJob(ctx context.Context) error {
	cutoff := s.clock.Now().AddDate(0, 0, -s.cfg.PushRetentionDays)

	deleted, err := s.pushRepo.DeleteUpdatedBefore(ctx, s.db, cutoff)
	if err != nil {
		return err
	}
	if deleted > 0 {
		s.log.Info("stale push subscriptions pruned",
			zap.Int64("rows", deleted),
			zap.Time("cutoff", cutoff),
		)
	}
	return nil
}
