package domain

import (
	"errors"
	"time"

	"gorm.io/datatypes"
)

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

type Group struct {
	ID              string            `gorm:"column:id"`
	InviteTokenHash string            `gorm:"column:invite_token_hash"`
	PassphraseHash  string            `gorm:"column:passphrase_hash"`
	Metadata        datatypes.JSONMap `gorm:"column:metadata"`
	CreatedAt       time.Time         `gorm:"column:created_at"`
}

type Member struct {
	ID          string    `gorm:"column:id"`
	GroupID     string    `gorm:"column:group_id"`
	DeviceID    string    `gorm:"column:device_id"`
	DisplayName string    `gorm:"column:display_name"`
	Role        Role      `gorm:"column:role"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

type CreateGroupRequest struct {
	DeviceID    string `json:"deviceId"`
	DisplayName string `json:"displayName"`
	Passphrase  string `json:"passphrase"`
}

type CreateGroupResponse struct {
	GroupID     string `json:"groupId"`
	MemberID    string `json:"memberId"`
	Role        Role   `json:"role"`
	InviteToken string `json:"inviteToken"`
}

type JoinGroupRequest struct {
	InviteToken string `json:"inviteToken"`
	DeviceID    string `json:"deviceId"`
	DisplayName string `json:"displayName"`
	Passphrase  string `json:"passphrase"`
}

type JoinGroupResponse struct {
	GroupID  string `json:"groupId"`
	MemberID string `json:"memberId"`
	Role     Role   `json:"role"`

	// AlreadyMember distinguishes a re-join by a known device from a
	// first join. Re-joins answer 200 instead of 201 and insert nothing.
	AlreadyMember bool `json:"-"`
}

var (
	ErrInvalidPayload    = errors.New("invalid_payload")
	ErrGroupNotFound     = errors.New("group_not_found")
	ErrInvalidPassphrase = errors.New("invalid_passphrase")
	ErrUnauthorized      = errors.New("unauthorized")
)
