package service

import (
	"context"

	"bowlingapp/club-service/internal/app/club/entity"
)

type AccessServiceInterface interface {
	ResolveAccessibleClubIDs(ctx context.Context, userID int64, role string) ([]int64, error)
	HasClubAccess(ctx context.Context, userID int64, role string, clubID int64) (bool, error)
}

type ClubServiceInterface interface {
	CreateClub(ctx context.Context, ownerUserID int64, req *entity.CreateClubRequest) (*entity.BowlingClub, error)
	GetClub(ctx context.Context, clubID int64) (*entity.BowlingClub, error)
	GetAllClubs(ctx context.Context) ([]entity.BowlingClub, error)
	AssignStaff(ctx context.Context, clubID int64, req *entity.AssignStaffRequest) (*entity.ClubStaff, error)
	SetStaffActive(ctx context.Context, staffID int64, isActive bool) error
}

type InvitationServiceInterface interface {
	InviteMechanic(ctx context.Context, clubID, mechanicID int64) (*entity.ClubInvitation, error)
	AcceptInvitation(ctx context.Context, invitationID int64) error
	RejectInvitation(ctx context.Context, invitationID int64) error
}
