package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	InsertGroup(ctx context.Context, db *gorm.DB, group *Group) error
	FindGroupByInviteTokenHash(ctx context.Context, db *gorm.DB, hash string) (*Group, error)
	InsertMember(ctx context.Context, db *gorm.DB, member *Member) error
	FindMemberByDevice(ctx context.Context, db *gorm.DB, groupID, deviceID string) (*Member, error)
	FindMember(ctx context.Context, db *gorm.DB, memberID, groupID, deviceID string) (*Member, error)
	FindMemberByIDAndDevice(ctx context.Context, db *gorm.DB, memberID, deviceID string) (*Member, error)
}
