package repository

import (
	"context"
	"time"

	"github.com/tanomu-app/tanomu/internal/catalog/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) ListTabs(ctx context.Context, db *gorm.DB, groupID string) ([]domain.Tab, error) {
	var tabs []domain.Tab
	query := `SELECT id, group_id, name, is_system, sort_order, archived_at
		 FROM tabs
		 WHERE group_id IS NULL AND archived_at IS NULL
		 ORDER BY sort_order ASC`
	args := []interface{}{}
	if groupID != "" {
		query = `SELECT id, group_id, name, is_system, sort_order, archived_at
			 FROM tabs
			 WHERE (group_id IS NULL OR group_id = ?) AND archived_at IS NULL
			 ORDER BY sort_order ASC`
		args = append(args, groupID)
	}
	if err := db.WithContext(ctx).Raw(query, args...).Scan(&tabs).Error; err != nil {
		return nil, err
	}
	return tabs, nil
}

func (r *repo) ListItems(ctx context.Context, db *gorm.DB, groupID string) ([]domain.Item, error) {
	var items []domain.Item
	if groupID == "" {
		err := db.WithContext(ctx).Raw(
			`SELECT i.id, i.tab_id, i.group_id, i.name, i.is_system, i.sort_order, i.archived_at
			 FROM items i
			 JOIN tabs t ON t.id = i.tab_id
			 WHERE t.group_id IS NULL
			   AND t.archived_at IS NULL
			   AND i.is_system = 1
			   AND i.archived_at IS NULL
			 ORDER BY t.sort_order ASC, i.sort_order ASC`,
		).Scan(&items).Error
		if err != nil {
			return nil, err
		}
		return items, nil
	}

	err := db.WithContext(ctx).Raw(
		`SELECT i.id, i.tab_id, i.group_id, i.name, i.is_system, i.sort_order, i.archived_at
		 FROM items i
		 JOIN tabs t ON t.id = i.tab_id
		 WHERE (t.group_id IS NULL OR t.group_id = ?)
		   AND t.archived_at IS NULL
		   AND i.archived_at IS NULL
		   AND (
		     i.is_system = 1
		     OR i.group_id = ?
		     OR (i.group_id IS NULL AND t.group_id = ?)
		   )
		 ORDER BY t.sort_order ASC, i.sort_order ASC`,
		groupID, groupID, groupID,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) ListStores(ctx context.Context, db *gorm.DB, groupID string) ([]domain.StoreButton, error) {
	var stores []domain.StoreButton
	query := `SELECT id, group_id, name, is_system, sort_order
		 FROM stores WHERE group_id IS NULL ORDER BY sort_order ASC`
	args := []interface{}{}
	if groupID != "" {
		query = `SELECT id, group_id, name, is_system, sort_order
			 FROM stores WHERE group_id IS NULL OR group_id = ? ORDER BY sort_order ASC`
		args = append(args, groupID)
	}
	if err := db.WithContext(ctx).Raw(query, args...).Scan(&stores).Error; err != nil {
		return nil, err
	}
	return stores, nil
}

func (r *repo) FindTab(ctx context.Context, db *gorm.DB, tabID string) (*domain.Tab, error) {
	var tab domain.Tab
	err := db.WithContext(ctx).Raw(
		`SELECT id, group_id, name, is_system, sort_order, archived_at
		 FROM tabs WHERE id = ?`,
		tabID,
	).Scan(&tab).Error
	if err != nil {
		return nil, err
	}
	if tab.ID == "" {
		return nil, nil
	}
	return &tab, nil
}

func (r *repo) FindItem(ctx context.Context, db *gorm.DB, itemID string) (*domain.Item, *domain.Tab, error) {
	var item domain.Item
	err := db.WithContext(ctx).Raw(
		`SELECT id, tab_id, group_id, name, is_system, sort_order, archived_at
		 FROM items WHERE id = ?`,
		itemID,
	).Scan(&item).Error
	if err != nil {
		return nil, nil, err
	}
	if item.ID == "" {
		return nil, nil, nil
	}

	tab, err := r.FindTab(ctx, db, item.TabID)
	if err != nil {
		return nil, nil, err
	}
	return &item, tab, nil
}

func (r *repo) NextTabSort(ctx context.Context, db *gorm.DB, groupID string) (int, error) {
	var next int
	err := db.WithContext(ctx).Raw(
		`SELECT COALESCE(MAX(sort_order), 0) + 10
		 FROM tabs WHERE group_id = ? AND archived_at IS NULL`,
		groupID,
	).Scan(&next).Error
	if err != nil {
		return 0, err
	}
	return next, nil
}

func (r *repo) NextItemSort(ctx context.Context, db *gorm.DB, tabID string) (int, error) {
	var next int
	err := db.WithContext(ctx).Raw(
		`SELECT COALESCE(MAX(sort_order), 0) + 10
		 FROM items WHERE tab_id = ? AND archived_at IS NULL`,
		tabID,
	).Scan(&next).Error
	if err != nil {
		return 0, err
	}
	return next, nil
}

func (r *repo) InsertTab(ctx context.Context, db *gorm.DB, tab *domain.Tab) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO tabs (id, group_id, name, is_system, sort_order)
		 VALUES (?, ?, ?, ?, ?)`,
		tab.ID,
		tab.GroupID,
		tab.Name,
		tab.IsSystem,
		tab.SortOrder,
	).Error
}

func (r *repo) InsertItem(ctx context.Context, db *gorm.DB, item *domain.Item) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO items (id, tab_id, group_id, name, is_system, sort_order)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		item.ID,
		item.TabID,
		item.GroupID,
		item.Name,
		item.IsSystem,
		item.SortOrder,
	).Error
}

func (r *repo) ArchiveTab(ctx context.Context, db *gorm.DB, tabID string) error {
	return db.WithContext(ctx).Exec(
		`UPDATE tabs SET archived_at = ? WHERE id = ?`,
		time.Now().UTC(), tabID,
	).Error
}

func (r *repo) ArchiveItem(ctx context.Context, db *gorm.DB, itemID string) error {
	return db.WithContext(ctx).Exec(
		`UPDATE items SET archived_at = ? WHERE id = ?`,
		time.Now().UTC(), itemID,
	).Error
}
