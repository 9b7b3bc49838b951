package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/tanomu-app/tanomu/internal/clock"
	"github.com/tanomu-app/tanomu/internal/group/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("group.service"),
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateGroupRequest) (domain.CreateGroupResponse, error) {
	deviceID := strings.TrimSpace(req.DeviceID)
	displayName := strings.TrimSpace(req.DisplayName)
	if deviceID == "" || displayName == "" || req.Passphrase == "" {
		return domain.CreateGroupResponse{}, domain.ErrInvalidPayload
	}

	inviteToken, inviteTokenHash, err := NewInviteToken()
	if err != nil {
		return domain.CreateGroupResponse{}, err
	}
	passphraseHash, err := HashPassphrase(req.Passphrase)
	if err != nil {
		return domain.CreateGroupResponse{}, err
	}

	now := s.clock.Now()
	group := domain.Group{
		ID:              uuid.NewString(),
		InviteTokenHash: inviteTokenHash,
		PassphraseHash:  passphraseHash,
		Metadata:        datatypes.JSONMap{},
		CreatedAt:       now,
	}
	member := domain.Member{
		ID:          uuid.NewString(),
		GroupID:     group.ID,
		DeviceID:    deviceID,
		DisplayName: displayName,
		Role:        domain.RoleAdmin,
		CreatedAt:   now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.InsertGroup(ctx, tx, &group); err != nil {
			return err
		}
		return s.repo.InsertMember(ctx, tx, &member)
	})
	if err != nil {
		return domain.CreateGroupResponse{}, err
	}

	s.log.Info("group created", zap.String("group_id", group.ID))
	return domain.CreateGroupResponse{
		GroupID:     group.ID,
		MemberID:    member.ID,
		Role:        member.Role,
		InviteToken: inviteToken,
	}, nil
}

func (s *Service) Join(ctx context.Context, req domain.JoinGroupRequest) (domain.JoinGroupResponse, error) {
	inviteToken := strings.TrimSpace(req.InviteToken)
	deviceID := strings.TrimSpace(req.DeviceID)
	displayName := strings.TrimSpace(req.DisplayName)
	if inviteToken == "" || deviceID == "" || displayName == "" || req.Passphrase == "" {
		return domain.JoinGroupResponse{}, domain.ErrInvalidPayload
	}

	group, err := s.repo.FindGroupByInviteTokenHash(ctx, s.db, HashInviteToken(inviteToken))
	if err != nil {
		return domain.JoinGroupResponse{}, err
	}
	if group == nil {
		return domain.JoinGroupResponse{}, domain.ErrGroupNotFound
	}

	if !VerifyPassphrase(req.Passphrase, group.PassphraseHash) {
		return domain.JoinGroupResponse{}, domain.ErrInvalidPassphrase
	}

	existing, err := s.repo.FindMemberByDevice(ctx, s.db, group.ID, deviceID)
	if err != nil {
		return domain.JoinGroupResponse{}, err
	}
	if existing != nil {
		return domain.JoinGroupResponse{
			GroupID:       group.ID,
			MemberID:      existing.ID,
			Role:          existing.Role,
			AlreadyMember: true,
		}, nil
	}

	member := domain.Member{
		ID:          uuid.NewString(),
		GroupID:     group.ID,
		DeviceID:    deviceID,
		DisplayName: displayName,
		Role:        domain.RoleMember,
		CreatedAt:   s.clock.Now(),
	}
	if err := s.repo.InsertMember(ctx, s.db, &member); err != nil {
		return domain.JoinGroupResponse{}, err
	}

	s.log.Info("member joined", zap.String("group_id", group.ID), zap.String("member_id", member.ID))
	return domain.JoinGroupResponse{
		GroupID:  group.ID,
		MemberID: member.ID,
		Role:     member.Role,
	}, nil
}

func (s *Service) AuthenticateMember(ctx context.Context, memberID, groupID, deviceID string) (*domain.Member, error) {
	if memberID == "" || groupID == "" || deviceID == "" {
		return nil, domain.ErrUnauthorized
	}
	member, err := s.repo.FindMember(ctx, s.db, memberID, groupID, deviceID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, domain.ErrUnauthorized
	}
	return member, nil
}

func (s *Service) AuthenticateDevice(ctx context.Context, memberID, deviceID string) (*domain.Member, error) {
	if memberID == "" || deviceID == "" {
		return nil, domain.ErrUnauthorized
	}
	member, err := s.repo.FindMemberByIDAndDevice(ctx, s.db, memberID, deviceID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, domain.ErrUnauthorized
	}
	return member, nil
}
