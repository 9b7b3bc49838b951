package domain

import (
	"errors"
	"time"

	catalogdomain "github.com/tanomu-app/tanomu/internal/catalog/domain"
)

type Status string

const (
	StatusRequested    Status = "requested"
	StatusAcknowledged Status = "acknowledged"
	StatusCompleted    Status = "completed"
)

type Request struct {
	ID             string    `gorm:"column:id"`
	GroupID        string    `gorm:"column:group_id"`
	SenderMemberID string    `gorm:"column:sender_member_id"`
	StoreID        *string   `gorm:"column:store_id"`
	Status         Status    `gorm:"column:status"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

type RequestItem struct {
	RequestID string `gorm:"column:request_id"`
	ItemID    string `gorm:"column:item_id"`
	Qty       int    `gorm:"column:qty"`
}

type ItemRef struct {
	ID   string `gorm:"column:id"`
	Name string `gorm:"column:name"`
}

type StoreRef struct {
	ID   string `gorm:"column:id"`
	Name string `gorm:"column:name"`
}

type InboxItem struct {
	Name string `json:"name"`
	Qty  int    `json:"qty"`
}

type InboxEvent struct {
	EventID        string      `json:"eventId"`
	RequestID      string      `json:"requestId"`
	Status         Status      `json:"status"`
	SenderMemberID string      `json:"senderMemberId"`
	SenderName     string      `json:"senderName"`
	StoreName      *string     `json:"storeName"`
	Items          []InboxItem `json:"items"`
	CreatedAt      time.Time   `json:"createdAt"`
	ReadAt         *time.Time  `json:"readAt"`
}

type CreateRequestRequest struct {
	GroupID        string   `json:"groupId"`
	SenderMemberID string   `json:"senderMemberId"`
	StoreID        *string  `json:"storeId"`
	ItemIDs        []string `json:"itemIds"`

	// SenderName and Language feed the notification text; they come from
	// the authenticated member and the request headers, not the body.
	SenderName string                 `json:"-"`
	Language   catalogdomain.Language `json:"-"`
}

type CreateRequestResponse struct {
	RequestID   string `json:"requestId"`
	PushMessage string `json:"pushMessage"`
}

type StatusResponse struct {
	RequestID string `json:"requestId"`
	Status    Status `json:"status"`
}

var (
	ErrInvalidPayload  = errors.New("invalid_payload")
	ErrInvalidStore    = errors.New("invalid_store_id")
	ErrInvalidItem     = errors.New("invalid_item_id")
	ErrRequestNotFound = errors.New("request_not_found")
)
