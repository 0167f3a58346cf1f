package service

import "errors"

var (
	// Ошибки бизнес-логики для обработки в handlers
	ErrClubNotFound         = errors.New("club not found")
	ErrInvitationNotFound   = errors.New("invitation not found")
	ErrStaffNotFound        = errors.New("staff assignment not found")
	ErrInvitationNotPending = errors.New("invitation is not pending")
	ErrNotClubOwner         = errors.New("caller does not own this club")
)
