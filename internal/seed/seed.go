// Package seed inserts the built-in catalog rows shared by every group.
// Names are stored in Japanese; the catalog service localizes system rows
// per request language.
package seed

import (
	"gorm.io/gorm"
)

type systemTab struct {
	ID        string
	Name      string
	SortOrder int
}

type systemItem struct {
	ID        string
	TabID     string
	Name      string
	SortOrder int
}

type systemStore struct {
	ID        string
	Name      string
	SortOrder int
}

var systemTabs = []systemTab{
	{"sys-tab-detergent", "洗剤", 10},
	{"sys-tab-washroom", "洗面", 20},
	{"sys-tab-beauty", "美容", 30},
	{"sys-tab-kitchen", "キッチン", 40},
	{"sys-tab-store", "買い物メモ", 50},
}

var systemItems = []systemItem{
	{"sys-item-detergent", "sys-tab-detergent", "洗剤", 10},
	{"sys-item-refill", "sys-tab-detergent", "詰替え", 20},
	{"sys-item-tissue", "sys-tab-washroom", "ティッシュ", 10},
	{"sys-item-toilet-paper", "sys-tab-washroom", "トイレットペーパー", 20},
	{"sys-item-hand-paper", "sys-tab-washroom", "ハンドペーパー", 30},
	{"sys-item-cotton", "sys-tab-beauty", "コットン", 10},
	{"sys-item-shampoo", "sys-tab-beauty", "シャンプー", 20},
	{"sys-item-conditioner", "sys-tab-beauty", "リンス", 30},
	{"sys-item-kitchen-paper", "sys-tab-kitchen", "キッチンペーパー", 10},
	{"sys-item-carrot", "sys-tab-store", "にんじん", 10},
}

var systemStores = []systemStore{
	{"sys-store-summit", "サミット", 10},
	{"sys-store-nitori", "ニトリ", 20},
	{"sys-store-ikea", "IKEA", 30},
	{"sys-store-aeon", "イオン", 40},
	{"sys-store-gyomu", "業務スーパー", 50},
}

// EnsureSystemCatalog inserts missing system tabs, items and stores.
// Existing rows are left untouched so admins can reorder them.
func EnsureSystemCatalog(conn *gorm.DB) error {
	for _, tab := range systemTabs {
		var count int64
		if err := conn.Table("tabs").Where("id = ?", tab.ID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := conn.Exec(
			`INSERT INTO tabs (id, group_id, name, is_system, sort_order) VALUES (?, NULL, ?, 1, ?)`,
			tab.ID, tab.Name, tab.SortOrder,
		).Error; err != nil {
			return err
		}
	}

	for _, item := range systemItems {
		var count int64
		if err := conn.Table("items").Where("id = ?", item.ID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := conn.Exec(
			`INSERT INTO items (id, tab_id, group_id, name, is_system, sort_order) VALUES (?, ?, NULL, ?, 1, ?)`,
			item.ID, item.TabID, item.Name, item.SortOrder,
		).Error; err != nil {
			return err
		}
	}

	for _, store := range systemStores {
		var count int64
		if err := conn.Table("stores").Where("id = ?", store.ID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := conn.Exec(
			`INSERT INTO stores (id, group_id, name, is_system, sort_order) VALUES (?, NULL, ?, 1, ?)`,
			store.ID, store.Name, store.SortOrder,
		).Error; err != nil {
			return err
		}
	}

	return nil
}
