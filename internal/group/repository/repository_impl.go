package repository

import (
	"context"

	"github.com/tanomu-app/tanomu/internal/group/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) InsertGroup(ctx context.Context, db *gorm.DB, group *domain.Group) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO groups (id, invite_token_hash, passphrase_hash, metadata, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		group.ID,
		group.InviteTokenHash,
		group.PassphraseHash,
		group.Metadata,
		group.CreatedAt,
	).Error
}

func (r *repo) FindGroupByInviteTokenHash(ctx context.Context, db *gorm.DB, hash string) (*domain.Group, error) {
	var group domain.Group
	err := db.WithContext(ctx).Raw(
		`SELECT id, invite_token_hash, passphrase_hash, metadata, created_at
		 FROM groups WHERE invite_token_hash = ?`,
		hash,
	).Scan(&group).Error
	if err != nil {
		return nil, err
	}
	if group.ID == "" {
		return nil, nil
	}
	return &group, nil
}

func (r *repo) InsertMember(ctx context.Context, db *gorm.DB, member *domain.Member) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO members (id, group_id, device_id, display_name, role, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		member.ID,
		member.GroupID,
		member.DeviceID,
		member.DisplayName,
		string(member.Role),
		member.CreatedAt,
	).Error
}

func (r *repo) FindMemberByDevice(ctx context.Context, db *gorm.DB, groupID, deviceID string) (*domain.Member, error) {
	var member domain.Member
	err := db.WithContext(ctx).Raw(
		`SELECT id, group_id, device_id, display_name, role, created_at
		 FROM members WHERE group_id = ? AND device_id = ?`,
		groupID,
		deviceID,
	).Scan(&member).Error
	if err != nil {
		return nil, err
	}
	if member.ID == "" {
		return nil, nil
	}
	return &member, nil
}

func (r *repo) FindMember(ctx context.Context, db *gorm.DB, memberID, groupID, deviceID string) (*domain.Member, error) {
	var member domain.Member
	err := db.WithContext(ctx).Raw(
		`SELECT id, group_id, device_id, display_name, role, created_at
		 FROM members WHERE id = ? AND group_id = ? AND device_id = ?`,
		memberID,
		groupID,
		deviceID,
	).Scan(&member).Error
	if err != nil {
		return nil, err
	}
	if member.ID == "" {
		return nil, nil
	}
	return &member, nil
}

func (r *repo) FindMemberByIDAndDevice(ctx context.Context, db *gorm.DB, memberID, deviceID string) (*domain.Member, error) {
	var member domain.Member
	err := db.WithContext(ctx).Raw(
		`SELECT id, group_id, device_id, display_name, role, created_at
		 FROM members WHERE id = ? AND device_id = ?`,
		memberID,
		deviceID,
	).Scan(&member).Error
	if err != nil {
		return nil, err
	}
	if member.ID == "" {
		return nil, nil
	}
	return &member, nil
}
