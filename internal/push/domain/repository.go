package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	// Upsert stores a subscription keyed by endpoint. A browser that
	// re-registers under another member takes the endpoint with it.
	Upsert(ctx context.Context, db *gorm.DB, sub *Subscription) error
	ListByMemberIDs(ctx context.Context, db *gorm.DB, memberIDs []string) ([]Subscription, error)
	DeleteByEndpoints(ctx context.Context, db *gorm.DB, endpoints []string) error
	DeleteUpdatedBefore(ctx context.Context, db *gorm.DB, cutoff time.Time) (int64, error)
}
