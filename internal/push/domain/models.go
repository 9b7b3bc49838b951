package domain

import (
	"errors"
	"time"
)

type Subscription struct {
	ID        string    `gorm:"column:id"`
	MemberID  string    `gorm:"column:member_id"`
	Endpoint  string    `gorm:"column:endpoint"`
	P256dh    string    `gorm:"column:p256dh"`
	Auth      string    `gorm:"column:auth"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

type SubscriptionKeys struct {
	P256dh string `json:"p256dh"`
	Auth   string `json:"auth"`
}

type SubscriptionPayload struct {
	Endpoint string           `json:"endpoint"`
	Keys     SubscriptionKeys `json:"keys"`
}

type SubscribeRequest struct {
	GroupID      string              `json:"groupId"`
	MemberID     string              `json:"memberId"`
	Subscription SubscriptionPayload `json:"subscription"`
}

var ErrInvalidPayload = errors.New("invalid_payload")
