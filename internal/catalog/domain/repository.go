package domain

import (
	"context"

	"gorm.io/gorm"
)

// Repository reads and writes catalog rows. Listing calls with an empty
// groupID return only the shared system catalog.
type Repository interface {
	ListTabs(ctx context.Context, db *gorm.DB, groupID string) ([]Tab, error)
	ListItems(ctx context.Context, db *gorm.DB, groupID string) ([]Item, error)
	ListStores(ctx context.Context, db *gorm.DB, groupID string) ([]StoreButton, error)

	FindTab(ctx context.Context, db *gorm.DB, tabID string) (*Tab, error)
	FindItem(ctx context.Context, db *gorm.DB, itemID string) (*Item, *Tab, error)
	NextTabSort(ctx context.Context, db *gorm.DB, groupID string) (int, error)
	NextItemSort(ctx context.Context, db *gorm.DB, tabID string) (int, error)
	InsertTab(ctx context.Context, db *gorm.DB, tab *Tab) error
	InsertItem(ctx context.Context, db *gorm.DB, item *Item) error
	ArchiveTab(ctx context.Context, db *gorm.DB, tabID string) error
	ArchiveItem(ctx context.Context, db *gorm.DB, itemID string) error
}
