package entity

import (
	"fmt"
	"time"
)

// BowlingClub представляет боулинг-клуб
type BowlingClub struct {
	ClubID       int64     `json:"club_id" gorm:"column:club_id;primaryKey;autoIncrement"`
	OwnerID      *int64    `json:"owner_id,omitempty" gorm:"column:owner_id"`
	Name         string    `json:"name" gorm:"column:name;not null"`
	Address      string    `json:"address" gorm:"column:address;not null"`
	LanesCount   *int      `json:"lanes_count,omitempty" gorm:"column:lanes_count"`
	ContactPhone string    `json:"contact_phone,omitempty" gorm:"column:contact_phone"`
	ContactEmail string    `json:"contact_email,omitempty" gorm:"column:contact_email"`
	IsActive     bool      `json:"is_active" gorm:"column:is_active;default:true"`
	IsVerified   bool      `json:"is_verified" gorm:"column:is_verified;default:false"`
	CreatedAt    time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (BowlingClub) TableName() string {
	return "bowling_clubs"
}

// OwnerProfile связывает пользователя-владельца с его клубами (по owner_id в клубе)
type OwnerProfile struct {
	OwnerID   int64     `json:"owner_id" gorm:"column:owner_id;primaryKey;autoIncrement"`
	UserID    int64     `json:"user_id" gorm:"column:user_id;not null;uniqueIndex"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
}

func (OwnerProfile) TableName() string {
	return "owner_profiles"
}

// ClubStaff - формальное закрепление пользователя за клубом.
// Переключается между активным и неактивным состоянием, строки не удаляются.
type ClubStaff struct {
	StaffID    int64     `json:"staff_id" gorm:"column:staff_id;primaryKey;autoIncrement"`
	ClubID     int64     `json:"club_id" gorm:"column:club_id;not null"`
	UserID     int64     `json:"user_id" gorm:"column:user_id;not null"`
	Role       string    `json:"role" gorm:"column:role"`
	IsActive   bool      `json:"is_active" gorm:"column:is_active;default:true"`
	AssignedAt time.Time `json:"assigned_at" gorm:"column:assigned_at"`
}

func (ClubStaff) TableName() string {
	return "club_staff"
}

// InvitationStatus - закрытый набор статусов приглашения.
// Любое другое значение отклоняется на границе, строки не сравниваются напрямую.
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "PENDING"
	InvitationAccepted InvitationStatus = "ACCEPTED"
	InvitationRejected InvitationStatus = "REJECTED"
)

// ParseInvitationStatus проверяет строку на принадлежность закрытому набору
func ParseInvitationStatus(raw string) (InvitationStatus, error) {
	switch InvitationStatus(raw) {
	case InvitationPending, InvitationAccepted, InvitationRejected:
		return InvitationStatus(raw), nil
	default:
		return "", fmt.Errorf("unknown invitation status: %q", raw)
	}
}

// ClubInvitation - предложение аффилиации свободному механику.
// Видимость клуба даёт только статус ACCEPTED.
type ClubInvitation struct {
	InvitationID int64            `json:"invitation_id" gorm:"column:invitation_id;primaryKey;autoIncrement"`
	ClubID       int64            `json:"club_id" gorm:"column:club_id;not null"`
	MechanicID   int64            `json:"mechanic_id" gorm:"column:mechanic_id;not null"`
	Status       InvitationStatus `json:"status" gorm:"column:status;not null"`
	CreatedAt    time.Time        `json:"created_at" gorm:"column:created_at"`
	UpdatedAt    time.Time        `json:"updated_at" gorm:"column:updated_at"`
}

func (ClubInvitation) TableName() string {
	return "club_invitations"
}

// Роли, которые club-service понимает из JWT
const (
	RoleAdmin        = "ADMIN"
	RoleClubOwner    = "CLUB_OWNER"
	RoleHeadMechanic = "HEAD_MECHANIC"
	RoleMechanic     = "MECHANIC"
	RoleManager      = "MANAGER"
)
