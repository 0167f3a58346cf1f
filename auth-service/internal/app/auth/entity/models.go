package entity

import (
	"time"
)

// User представляет аккаунт пользователя платформы.
// Роль загружается вместе с пользователем, она нужна для выпуска токенов.
type User struct {
	ID           int64     `json:"id" db:"user_id"`
	Phone        string    `json:"phone" db:"phone"`
	PasswordHash string    `json:"-" db:"password_hash"` // не возвращаем в JSON
	Role         string    `json:"role" db:"role"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Роли пользователей платформы
const (
	RoleAdmin        = "ADMIN"
	RoleClubOwner    = "CLUB_OWNER"
	RoleHeadMechanic = "HEAD_MECHANIC"
	RoleMechanic     = "MECHANIC"
	RoleManager      = "MANAGER"
	RoleDefault      = "USER"
)

// Причины отзыва refresh токенов
const (
	RevokeReasonRotated       = "rotated"
	RevokeReasonExpired       = "expired"
	RevokeReasonReuseDetected = "reuse-detected"
	RevokeReasonLogout        = "logout"
	RevokeReasonUserDisabled  = "user-disabled"
)

// RefreshToken - персистентная запись о выданном refresh токене.
// Хранится только SHA-256 хэш, сырое значение существует лишь в момент выдачи.
// Записи не удаляются при ротации: цепочка ReplacedByTokenHash образует
// аудиторский след, очищаемый фоновой политикой ретенции.
type RefreshToken struct {
	ID                  int64      `json:"id" db:"refresh_token_id"`
	UserID              int64      `json:"user_id" db:"user_id"`
	TokenHash           string     `json:"-" db:"token_hash"`
	IssuedAt            time.Time  `json:"issued_at" db:"issued_at"`
	ExpiresAt           time.Time  `json:"expires_at" db:"expires_at"`
	Revoked             bool       `json:"revoked" db:"revoked"`
	RevokedAt           *time.Time `json:"revoked_at,omitempty" db:"revoked_at"`
	RevocationReason    string     `json:"revocation_reason,omitempty" db:"revocation_reason"`
	ReplacedByTokenHash string     `json:"-" db:"replaced_by_token_hash"`
}

// RotateOutcome - исход попытки ротации refresh токена
type RotateOutcome int

const (
	// RotateOK - токен найден, не отозван, не истёк; ротация выполнена
	RotateOK RotateOutcome = iota
	// RotateUnknown - токен с таким хэшем не зарегистрирован
	RotateUnknown
	// RotateReused - токен уже был отозван: повторное предъявление,
	// сигнал компрометации
	RotateReused
	// RotateExpired - срок действия токена истёк
	RotateExpired
)

// TokenPair содержит access и refresh токены
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"` // время жизни access token в секундах
}

// SecurityEvent - событие безопасности, публикуемое в Kafka для аудита
type SecurityEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	UserID    int64     `json:"user_id"`
	Phone     string    `json:"phone,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Типы событий безопасности
const (
	EventLogin         = "login"
	EventTokenRotated  = "token_rotated"
	EventReuseDetected = "reuse_detected"
	EventRevokeAll     = "revoke_all"
	EventLogout        = "logout"
)
