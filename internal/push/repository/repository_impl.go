package repository

import (
	"context"
	"time"

	"github.com/tanomu-app/tanomu/internal/push/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Upsert(ctx context.Context, db *gorm.DB, sub *domain.Subscription) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO push_subscriptions (id, member_id, endpoint, p256dh, auth, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(endpoint) DO UPDATE SET
		   member_id = excluded.member_id,
		   p256dh = excluded.p256dh,
		   auth = excluded.auth,
		   updated_at = excluded.updated_at`,
		sub.ID,
		sub.MemberID,
		sub.Endpoint,
		sub.P256dh,
		sub.Auth,
		sub.UpdatedAt,
	).Error
}

func (r *repo) ListByMemberIDs(ctx context.Context, db *gorm.DB, memberIDs []string) ([]domain.Subscription, error) {
	if len(memberIDs) == 0 {
		return nil, nil
	}
	var subs []domain.Subscription
	err := db.WithContext(ctx).Raw(
		`SELECT id, member_id, endpoint, p256dh, auth, updated_at
		 FROM push_subscriptions WHERE member_id IN (?)`,
		memberIDs,
	).Scan(&subs).Error
	if err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *repo) DeleteByEndpoints(ctx context.Context, db *gorm.DB, endpoints []string) error {
	if len(endpoints) == 0 {
		return nil
	}
	return db.WithContext(ctx).Exec(
		`DELETE FROM push_subscriptions WHERE endpoint IN (?)`,
		endpoints,
	).Error
}

func (r *repo) DeleteUpdatedBefore(ctx context.Context, db *gorm.DB, cutoff time.Time) (int64, error) {
	result := db.WithContext(ctx).Exec(
		`DELETE FROM push_subscriptions WHERE updated_at < ?`,
		cutoff,
	)
	return result.RowsAffected, result.Error
}
