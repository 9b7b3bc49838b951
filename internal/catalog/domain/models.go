package domain

import (
	"errors"
	"time"
)

type Tab struct {
	ID         string     `gorm:"column:id" json:"id"`
	GroupID    *string    `gorm:"column:group_id" json:"groupId"`
	Name       string     `gorm:"column:name" json:"name"`
	IsSystem   bool       `gorm:"column:is_system" json:"isSystem"`
	SortOrder  int        `gorm:"column:sort_order" json:"sortOrder"`
	ArchivedAt *time.Time `gorm:"column:archived_at" json:"-"`
}

type Item struct {
	ID         string     `gorm:"column:id" json:"id"`
	TabID      string     `gorm:"column:tab_id" json:"tabId"`
	GroupID    *string    `gorm:"column:group_id" json:"-"`
	Name       string     `gorm:"column:name" json:"name"`
	IsSystem   bool       `gorm:"column:is_system" json:"isSystem"`
	SortOrder  int        `gorm:"column:sort_order" json:"sortOrder"`
	ArchivedAt *time.Time `gorm:"column:archived_at" json:"-"`
}

type StoreButton struct {
	ID        string  `gorm:"column:id" json:"id"`
	GroupID   *string `gorm:"column:group_id" json:"groupId"`
	Name      string  `gorm:"column:name" json:"name"`
	IsSystem  bool    `gorm:"column:is_system" json:"isSystem"`
	SortOrder int     `gorm:"column:sort_order" json:"sortOrder"`
}

// Layout is the merged button layout a group sees: the shared system
// catalog plus the group's own custom tabs and items.
type Layout struct {
	Tabs   []Tab         `json:"tabs"`
	Items  []Item        `json:"items"`
	Stores []StoreButton `json:"stores"`
}

type CreateTabRequest struct {
	GroupID string
	Name    string `json:"name"`
}

type CreateItemRequest struct {
	GroupID string
	TabID   string `json:"tabId"`
	Name    string `json:"name"`
}

var (
	ErrInvalidPayload   = errors.New("invalid_payload")
	ErrTabNotFound      = errors.New("tab_not_found")
	ErrTabNotAccessible = errors.New("tab_not_accessible")
	ErrTabArchived      = errors.New("tab_archived")
	ErrTabNotDeletable  = errors.New("tab_not_deletable")
	ErrItemNotFound     = errors.New("item_not_found")
	ErrItemNotDeletable = errors.New("item_not_deletable")
)
