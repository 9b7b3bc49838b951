package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	catalogdomain "github.com/tanomu-app/tanomu/internal/catalog/domain"
	"github.com/tanomu-app/tanomu/internal/clock"
	"github.com/tanomu-app/tanomu/internal/request/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const inboxLimit = 100

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	Clock    clock.Clock
	Repo     domain.Repository
	Notifier domain.Notifier
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	clock    clock.Clock
	repo     domain.Repository
	notifier domain.Notifier
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("request.service"),
		clock:    p.Clock,
		repo:     p.Repo,
		notifier: p.Notifier,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequestRequest) (domain.CreateRequestResponse, error) {
	if req.GroupID == "" || req.SenderMemberID == "" || len(req.ItemIDs) == 0 {
		return domain.CreateRequestResponse{}, domain.ErrInvalidPayload
	}

	var storeName string
	if req.StoreID != nil && *req.StoreID != "" {
		store, err := s.repo.FindStore(ctx, s.db, *req.StoreID, req.GroupID)
		if err != nil {
			return domain.CreateRequestResponse{}, err
		}
		if store == nil {
			return domain.CreateRequestResponse{}, domain.ErrInvalidStore
		}
		storeName = catalogdomain.LocalizeStoreName(store.ID, store.Name, req.Language)
	}

	// Collapse duplicate item ids into quantities, keeping first-seen order.
	qtyByItem := make(map[string]int, len(req.ItemIDs))
	orderedItemIDs := make([]string, 0, len(req.ItemIDs))
	for _, itemID := range req.ItemIDs {
		if _, seen := qtyByItem[itemID]; !seen {
			orderedItemIDs = append(orderedItemIDs, itemID)
		}
		qtyByItem[itemID]++
	}

	available, err := s.repo.FindAccessibleItems(ctx, s.db, req.GroupID, orderedItemIDs)
	if err != nil {
		return domain.CreateRequestResponse{}, err
	}
	if len(available) != len(orderedItemIDs) {
		return domain.CreateRequestResponse{}, domain.ErrInvalidItem
	}
	nameByItem := make(map[string]string, len(available))
	for _, item := range available {
		nameByItem[item.ID] = catalogdomain.LocalizeItemName(item.ID, item.Name, req.Language)
	}

	memberIDs, err := s.repo.ListMemberIDs(ctx, s.db, req.GroupID)
	if err != nil {
		return domain.CreateRequestResponse{}, err
	}

	request := domain.Request{
		ID:             uuid.NewString(),
		GroupID:        req.GroupID,
		SenderMemberID: req.SenderMemberID,
		StoreID:        req.StoreID,
		Status:         domain.StatusRequested,
		CreatedAt:      s.clock.Now(),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.InsertRequest(ctx, tx, &request); err != nil {
			return err
		}
		for _, itemID := range orderedItemIDs {
			item := domain.RequestItem{RequestID: request.ID, ItemID: itemID, Qty: qtyByItem[itemID]}
			if err := s.repo.InsertRequestItem(ctx, tx, &item); err != nil {
				return err
			}
		}
		for _, memberID := range memberIDs {
			if err := s.repo.InsertInboxEvent(ctx, tx, uuid.NewString(), request.ID, memberID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return domain.CreateRequestResponse{}, err
	}

	message := buildPushMessage(req.SenderName, storeName, orderedItemIDs, qtyByItem, nameByItem, req.Language)
	recipients := make([]string, 0, len(memberIDs))
	for _, memberID := range memberIDs {
		if memberID != req.SenderMemberID {
			recipients = append(recipients, memberID)
		}
	}
	s.notifier.Notify(ctx, req.GroupID, recipients, message)

	s.log.Info("request created",
		zap.String("request_id", request.ID),
		zap.String("group_id", req.GroupID),
		zap.Int("items", len(orderedItemIDs)),
	)
	return domain.CreateRequestResponse{RequestID: request.ID, PushMessage: message}, nil
}

func buildPushMessage(senderName, storeName string, orderedItemIDs []string, qtyByItem map[string]int, nameByItem map[string]string, lang catalogdomain.Language) string {
	readable := make([]string, 0, len(orderedItemIDs))
	for _, itemID := range orderedItemIDs {
		name := nameByItem[itemID]
		if name == "" {
			if lang == catalogdomain.LanguageJA {
				name = "不明"
			} else {
				name = "Unknown"
			}
		}
		if qty := qtyByItem[itemID]; qty > 1 {
			name = fmt.Sprintf("%s x%d", name, qty)
		}
		readable = append(readable, name)
	}

	if lang == catalogdomain.LanguageJA {
		at := ""
		if storeName != "" {
			at = storeName + "で"
		}
		return fmt.Sprintf("%sさんが%s%sを買ってほしいと言っています", senderName, at, strings.Join(readable, "、"))
	}

	at := ""
	if storeName != "" {
		at = " at " + storeName
	}
	return fmt.Sprintf("%s is asking to buy %s%s.", senderName, strings.Join(readable, ", "), at)
}

func (s *Service) Inbox(ctx context.Context, memberID, groupID string, lang catalogdomain.Language) ([]domain.InboxEvent, error) {
	rows, err := s.repo.ListInbox(ctx, s.db, memberID, groupID, inboxLimit)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []domain.InboxEvent{}, nil
	}

	requestIDs := make([]string, 0, len(rows))
	for _, row := range rows {
		requestIDs = append(requestIDs, row.RequestID)
	}
	itemRows, err := s.repo.ListRequestItems(ctx, s.db, requestIDs)
	if err != nil {
		return nil, err
	}

	itemsByRequest := make(map[string][]domain.InboxItem, len(rows))
	for _, row := range itemRows {
		itemsByRequest[row.RequestID] = append(itemsByRequest[row.RequestID], domain.InboxItem{
			Name: catalogdomain.LocalizeItemName(row.ItemID, row.Name, lang),
			Qty:  row.Qty,
		})
	}

	events := make([]domain.InboxEvent, 0, len(rows))
	for _, row := range rows {
		storeName := row.StoreName
		if row.StoreID != nil && row.StoreName != nil {
			localized := catalogdomain.LocalizeStoreName(*row.StoreID, *row.StoreName, lang)
			storeName = &localized
		}
		items := itemsByRequest[row.RequestID]
		if items == nil {
			items = []domain.InboxItem{}
		}
		events = append(events, domain.InboxEvent{
			EventID:        row.EventID,
			RequestID:      row.RequestID,
			Status:         domain.Status(row.Status),
			SenderMemberID: row.SenderMemberID,
			SenderName:     row.SenderName,
			StoreName:      storeName,
			Items:          items,
			CreatedAt:      row.CreatedAt,
			ReadAt:         row.ReadAt,
		})
	}
	return events, nil
}

func (s *Service) Acknowledge(ctx context.Context, memberID, requestID string) (domain.StatusResponse, error) {
	return s.transition(ctx, memberID, requestID, s.repo.MarkAcknowledged)
}

func (s *Service) Complete(ctx context.Context, memberID, requestID string) (domain.StatusResponse, error) {
	return s.transition(ctx, memberID, requestID, s.repo.MarkCompleted)
}

func (s *Service) transition(
	ctx context.Context,
	memberID, requestID string,
	mark func(context.Context, *gorm.DB, string) error,
) (domain.StatusResponse, error) {
	owns, err := s.repo.OwnsInboxEvent(ctx, s.db, requestID, memberID)
	if err != nil {
		return domain.StatusResponse{}, err
	}
	if !owns {
		return domain.StatusResponse{}, domain.ErrRequestNotFound
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mark(ctx, tx, requestID); err != nil {
			return err
		}
		return s.repo.MarkRead(ctx, tx, requestID, memberID, s.clock.Now())
	})
	if err != nil {
		return domain.StatusResponse{}, err
	}

	status, err := s.repo.GetStatus(ctx, s.db, requestID)
	if err != nil {
		return domain.StatusResponse{}, err
	}
	return domain.StatusResponse{RequestID: requestID, Status: status}, nil
}
