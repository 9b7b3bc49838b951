package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/tanomu-app/tanomu/internal/catalog/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("catalog.service"),
		repo: p.Repo,
	}
}

func (s *Service) SystemCatalog(ctx context.Context, lang domain.Language) (domain.Layout, error) {
	return s.layout(ctx, "", lang)
}

func (s *Service) GroupLayout(ctx context.Context, groupID string, lang domain.Language) (domain.Layout, error) {
	return s.layout(ctx, groupID, lang)
}

func (s *Service) layout(ctx context.Context, groupID string, lang domain.Language) (domain.Layout, error) {
	tabs, err := s.repo.ListTabs(ctx, s.db, groupID)
	if err != nil {
		return domain.Layout{}, err
	}
	items, err := s.repo.ListItems(ctx, s.db, groupID)
	if err != nil {
		return domain.Layout{}, err
	}
	stores, err := s.repo.ListStores(ctx, s.db, groupID)
	if err != nil {
		return domain.Layout{}, err
	}

	for i := range tabs {
		if tabs[i].IsSystem {
			tabs[i].Name = domain.LocalizeTabName(tabs[i].ID, tabs[i].Name, lang)
		}
	}
	for i := range items {
		if items[i].IsSystem {
			items[i].Name = domain.LocalizeItemName(items[i].ID, items[i].Name, lang)
		}
	}
	for i := range stores {
		if stores[i].IsSystem {
			stores[i].Name = domain.LocalizeStoreName(stores[i].ID, stores[i].Name, lang)
		}
	}

	if tabs == nil {
		tabs = []domain.Tab{}
	}
	if items == nil {
		items = []domain.Item{}
	}
	if stores == nil {
		stores = []domain.StoreButton{}
	}
	return domain.Layout{Tabs: tabs, Items: items, Stores: stores}, nil
}

func (s *Service) CreateTab(ctx context.Context, req domain.CreateTabRequest) (domain.Tab, error) {
	name := strings.TrimSpace(req.Name)
	if req.GroupID == "" || name == "" {
		return domain.Tab{}, domain.ErrInvalidPayload
	}

	sortOrder, err := s.repo.NextTabSort(ctx, s.db, req.GroupID)
	if err != nil {
		return domain.Tab{}, err
	}

	groupID := req.GroupID
	tab := domain.Tab{
		ID:        uuid.NewString(),
		GroupID:   &groupID,
		Name:      name,
		IsSystem:  false,
		SortOrder: sortOrder,
	}
	if err := s.repo.InsertTab(ctx, s.db, &tab); err != nil {
		return domain.Tab{}, err
	}
	return tab, nil
}

func (s *Service) CreateItem(ctx context.Context, req domain.CreateItemRequest) (domain.Item, error) {
	name := strings.TrimSpace(req.Name)
	if req.GroupID == "" || req.TabID == "" || name == "" {
		return domain.Item{}, domain.ErrInvalidPayload
	}

	tab, err := s.repo.FindTab(ctx, s.db, req.TabID)
	if err != nil {
		return domain.Item{}, err
	}
	if tab == nil {
		return domain.Item{}, domain.ErrTabNotFound
	}
	if tab.GroupID != nil && *tab.GroupID != req.GroupID {
		return domain.Item{}, domain.ErrTabNotAccessible
	}
	if tab.ArchivedAt != nil {
		return domain.Item{}, domain.ErrTabArchived
	}

	sortOrder, err := s.repo.NextItemSort(ctx, s.db, req.TabID)
	if err != nil {
		return domain.Item{}, err
	}

	groupID := req.GroupID
	item := domain.Item{
		ID:        uuid.NewString(),
		TabID:     req.TabID,
		GroupID:   &groupID,
		Name:      name,
		IsSystem:  false,
		SortOrder: sortOrder,
	}
	if err := s.repo.InsertItem(ctx, s.db, &item); err != nil {
		return domain.Item{}, err
	}
	return item, nil
}

func (s *Service) ArchiveTab(ctx context.Context, groupID, tabID string) error {
	tab, err := s.repo.FindTab(ctx, s.db, tabID)
	if err != nil {
		return err
	}
	if tab == nil {
		return domain.ErrTabNotFound
	}
	if tab.IsSystem || tab.GroupID == nil || *tab.GroupID != groupID {
		return domain.ErrTabNotDeletable
	}
	if tab.ArchivedAt != nil {
		return nil
	}
	return s.repo.ArchiveTab(ctx, s.db, tabID)
}

func (s *Service) ArchiveItem(ctx context.Context, groupID, itemID string) error {
	item, tab, err := s.repo.FindItem(ctx, s.db, itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrItemNotFound
	}

	belongsToGroup := (item.GroupID != nil && *item.GroupID == groupID) ||
		(item.GroupID == nil && tab != nil && tab.GroupID != nil && *tab.GroupID == groupID)
	if !belongsToGroup || item.IsSystem {
		return domain.ErrItemNotDeletable
	}
	if item.ArchivedAt != nil {
		return nil
	}
	return s.repo.ArchiveItem(ctx, s.db, itemID)
}
