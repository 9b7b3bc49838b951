package repository

import (
	"context"
	"time"

	"github.com/tanomu-app/tanomu/internal/request/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindStore(ctx context.Context, db *gorm.DB, storeID, groupID string) (*domain.StoreRef, error) {
	var store domain.StoreRef
	err := db.WithContext(ctx).Raw(
		`SELECT id, name FROM stores
		 WHERE id = ? AND (group_id IS NULL OR group_id = ?)`,
		storeID, groupID,
	).Scan(&store).Error
	if err != nil {
		return nil, err
	}
	if store.ID == "" {
		return nil, nil
	}
	return &store, nil
}

func (r *repo) FindAccessibleItems(ctx context.Context, db *gorm.DB, groupID string, itemIDs []string) ([]domain.ItemRef, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}
	var items []domain.ItemRef
	err := db.WithContext(ctx).Raw(
		`SELECT i.id, i.name
		 FROM items i
		 JOIN tabs t ON t.id = i.tab_id
		 WHERE i.id IN (?)
		   AND (t.group_id IS NULL OR t.group_id = ?)
		   AND t.archived_at IS NULL
		   AND i.archived_at IS NULL
		   AND (
		     i.is_system = 1
		     OR i.group_id = ?
		     OR (i.group_id IS NULL AND t.group_id = ?)
		   )`,
		itemIDs, groupID, groupID, groupID,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) ListMemberIDs(ctx context.Context, db *gorm.DB, groupID string) ([]string, error) {
	var ids []string
	err := db.WithContext(ctx).Raw(
		`SELECT id FROM members WHERE group_id = ?`,
		groupID,
	).Scan(&ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *repo) InsertRequest(ctx context.Context, db *gorm.DB, request *domain.Request) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO requests (id, group_id, sender_member_id, store_id, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		request.ID,
		request.GroupID,
		request.SenderMemberID,
		request.StoreID,
		string(request.Status),
		request.CreatedAt,
	).Error
}

func (r *repo) InsertRequestItem(ctx context.Context, db *gorm.DB, item *domain.RequestItem) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO request_items (request_id, item_id, qty) VALUES (?, ?, ?)`,
		item.RequestID,
		item.ItemID,
		item.Qty,
	).Error
}

func (r *repo) InsertInboxEvent(ctx context.Context, db *gorm.DB, eventID, requestID, recipientMemberID string) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO inbox_events (id, request_id, recipient_member_id) VALUES (?, ?, ?)`,
		eventID,
		requestID,
		recipientMemberID,
	).Error
}

func (r *repo) ListInbox(ctx context.Context, db *gorm.DB, memberID, groupID string, limit int) ([]domain.InboxRow, error) {
	var rows []domain.InboxRow
	err := db.WithContext(ctx).Raw(
		`SELECT
		   ie.id AS event_id,
		   ie.request_id AS request_id,
		   r.status AS status,
		   r.sender_member_id AS sender_member_id,
		   m.display_name AS sender_name,
		   r.store_id AS store_id,
		   s.name AS store_name,
		   r.created_at AS created_at,
		   ie.read_at AS read_at
		 FROM inbox_events ie
		 JOIN requests r ON r.id = ie.request_id
		 JOIN members m ON m.id = r.sender_member_id
		 LEFT JOIN stores s ON s.id = r.store_id
		 WHERE ie.recipient_member_id = ? AND r.group_id = ?
		 ORDER BY r.created_at DESC
		 LIMIT ?`,
		memberID, groupID, limit,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) ListRequestItems(ctx context.Context, db *gorm.DB, requestIDs []string) ([]domain.ItemRow, error) {
	if len(requestIDs) == 0 {
		return nil, nil
	}
	var rows []domain.ItemRow
	err := db.WithContext(ctx).Raw(
		`SELECT ri.request_id AS request_id, ri.item_id AS item_id, i.name AS name, ri.qty AS qty
		 FROM request_items ri
		 JOIN items i ON i.id = ri.item_id
		 WHERE ri.request_id IN (?)
		 ORDER BY i.sort_order ASC`,
		requestIDs,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) OwnsInboxEvent(ctx context.Context, db *gorm.DB, requestID, memberID string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Raw(
		`SELECT COUNT(*)
		 FROM requests r
		 JOIN inbox_events ie ON ie.request_id = r.id
		 WHERE r.id = ? AND ie.recipient_member_id = ? AND r.sender_member_id <> ?`,
		requestID, memberID, memberID,
	).Scan(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repo) MarkAcknowledged(ctx context.Context, db *gorm.DB, requestID string) error {
	return db.WithContext(ctx).Exec(
		`UPDATE requests
		 SET status = CASE WHEN status = 'requested' THEN 'acknowledged' ELSE status END
		 WHERE id = ?`,
		requestID,
	).Error
}

func (r *repo) MarkCompleted(ctx context.Context, db *gorm.DB, requestID string) error {
	return db.WithContext(ctx).Exec(
		`UPDATE requests SET status = 'completed' WHERE id = ?`,
		requestID,
	).Error
}

func (r *repo) MarkRead(ctx context.Context, db *gorm.DB, requestID, memberID string, at time.Time) error {
	return db.WithContext(ctx).Exec(
		`UPDATE inbox_events
		 SET read_at = COALESCE(read_at, ?)
		 WHERE request_id = ? AND recipient_member_id = ?`,
		at, requestID, memberID,
	).Error
}

func (r *repo) GetStatus(ctx context.Context, db *gorm.DB, requestID string) (domain.Status, error) {
	var status string
	err := db.WithContext(ctx).Raw(
		`SELECT status FROM requests WHERE id = ?`,
		requestID,
	).Scan(&status).Error
	if err != nil {
		return "", err
	}
	if status == "" {
		return "", domain.ErrRequestNotFound
	}
	return domain.Status(status), nil
}
