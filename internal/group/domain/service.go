package domain

import "context"

type Service interface {
	Create(ctx context.Context, req CreateGroupRequest) (CreateGroupResponse, error)
	Join(ctx context.Context, req JoinGroupRequest) (JoinGroupResponse, error)

	// AuthenticateMember resolves the caller's member row for a group, or
	// ErrUnauthorized when the id/device pair does not belong to it.
	AuthenticateMember(ctx context.Context, memberID, groupID, deviceID string) (*Member, error)

	// AuthenticateDevice resolves a member by id and device only, used by
	// endpoints that are not scoped to a single group.
	AuthenticateDevice(ctx context.Context, memberID, deviceID string) (*Member, error)
}
