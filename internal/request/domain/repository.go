package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type InboxRow struct {
	EventID        string     `gorm:"column:event_id"`
	RequestID      string     `gorm:"column:request_id"`
	Status         string     `gorm:"column:status"`
	SenderMemberID string     `gorm:"column:sender_member_id"`
	SenderName     string     `gorm:"column:sender_name"`
	StoreID        *string    `gorm:"column:store_id"`
	StoreName      *string    `gorm:"column:store_name"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
	ReadAt         *time.Time `gorm:"column:read_at"`
}

type ItemRow struct {
	RequestID string `gorm:"column:request_id"`
	ItemID    string `gorm:"column:item_id"`
	Name      string `gorm:"column:name"`
	Qty       int    `gorm:"column:qty"`
}

type Repository interface {
	FindStore(ctx context.Context, db *gorm.DB, storeID, groupID string) (*StoreRef, error)
	FindAccessibleItems(ctx context.Context, db *gorm.DB, groupID string, itemIDs []string) ([]ItemRef, error)
	ListMemberIDs(ctx context.Context, db *gorm.DB, groupID string) ([]string, error)

	InsertRequest(ctx context.Context, db *gorm.DB, request *Request) error
	InsertRequestItem(ctx context.Context, db *gorm.DB, item *RequestItem) error
	InsertInboxEvent(ctx context.Context, db *gorm.DB, eventID, requestID, recipientMemberID string) error

	ListInbox(ctx context.Context, db *gorm.DB, memberID, groupID string, limit int) ([]InboxRow, error)
	ListRequestItems(ctx context.Context, db *gorm.DB, requestIDs []string) ([]ItemRow, error)

	// OwnsInboxEvent reports whether the member received the request and
	// is not its sender.
	OwnsInboxEvent(ctx context.Context, db *gorm.DB, requestID, memberID string) (bool, error)
	MarkAcknowledged(ctx context.Context, db *gorm.DB, requestID string) error
	MarkCompleted(ctx context.Context, db *gorm.DB, requestID string) error
	MarkRead(ctx context.Context, db *gorm.DB, requestID, memberID string, at time.Time) error
	GetStatus(ctx context.Context, db *gorm.DB, requestID string) (Status, error)
}
