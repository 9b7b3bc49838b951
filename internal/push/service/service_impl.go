package service

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/tanomu-app/tanomu/internal/clock"
	"github.com/tanomu-app/tanomu/internal/config"
	"github.com/tanomu-app/tanomu/internal/metrics"
	"github.com/tanomu-app/tanomu/internal/push/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	Config  config.Config
	DB      *gorm.DB
	Log     *zap.Logger
	Clock   clock.Clock
	Repo    domain.Repository
	Sender  domain.Sender
	Metrics *metrics.Metrics `optional:"true"`
}

type Service struct {
	cfg     config.PushConfig
	db      *gorm.DB
	log     *zap.Logger
	clock   clock.Clock
	repo    domain.Repository
	sender  domain.Sender
	metrics *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		cfg:     p.Config.Push,
		db:      p.DB,
		log:     p.Log.Named("push.service"),
		clock:   p.Clock,
		repo:    p.Repo,
		sender:  p.Sender,
		metrics: p.Metrics,
	}
}

func (s *Service) Subscribe(ctx context.Context, req domain.SubscribeRequest) error {
	endpoint := strings.TrimSpace(req.Subscription.Endpoint)
	if req.GroupID == "" || req.MemberID == "" || endpoint == "" ||
		req.Subscription.Keys.P256dh == "" || req.Subscription.Keys.Auth == "" {
		return domain.ErrInvalidPayload
	}

	return s.repo.Upsert(ctx, s.db, &domain.Subscription{
		ID:        uuid.NewString(),
		MemberID:  req.MemberID,
		Endpoint:  endpoint,
		P256dh:    req.Subscription.Keys.P256dh,
		Auth:      req.Subscription.Keys.Auth,
		UpdatedAt: s.clock.Now(),
	})
}

func (s *Service) Notify(ctx context.Context, groupID string, recipientMemberIDs []string, message string) {
	if len(recipientMemberIDs) == 0 {
		return
	}
	if s.cfg.VAPIDPublicKey == "" || s.cfg.VAPIDPrivateKey == "" || s.cfg.VAPIDSubject == "" {
		return
	}

	subs, err := s.repo.ListByMemberIDs(ctx, s.db, recipientMemberIDs)
	if err != nil {
		s.log.Warn("push subscription lookup failed", zap.String("group_id", groupID), zap.Error(err))
		return
	}
	if len(subs) == 0 {
		return
	}

	var (
		mu    sync.Mutex
		stale []string
		wg    sync.WaitGroup
	)
	for _, sub := range subs {
		wg.Add(1)
		go func(sub domain.Subscription) {
			defer wg.Done()
			expired, err := s.sender.Send(ctx, sub, message)
			if err != nil {
				// Delivery is best effort; the request that triggered the
				// notification already succeeded.
				s.log.Debug("push delivery failed", zap.String("member_id", sub.MemberID), zap.Error(err))
				return
			}
			if expired {
				mu.Lock()
				stale = append(stale, sub.Endpoint)
				mu.Unlock()
				s.metrics.PushExpired()
				return
			}
			s.metrics.PushDelivered()
		}(sub)
	}
	wg.Wait()

	if len(stale) > 0 {
		if err := s.repo.DeleteByEndpoints(ctx, s.db, stale); err != nil {
			s.log.Warn("stale push subscription cleanup failed", zap.Error(err))
		}
	}
}
