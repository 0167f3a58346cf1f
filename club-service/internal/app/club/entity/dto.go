package entity

// CreateClubRequest - запрос на регистрацию клуба
type CreateClubRequest struct {
	Name         string `json:"name" validate:"required,min=2,max=255"`
	Address      string `json:"address" validate:"required,min=2,max=512"`
	LanesCount   *int   `json:"lanes_count,omitempty" validate:"omitempty,min=1,max=100"`
	ContactPhone string `json:"contact_phone,omitempty" validate:"omitempty,e164"`
	ContactEmail string `json:"contact_email,omitempty" validate:"omitempty,email"`
}

// InviteMechanicRequest - запрос на приглашение механика в клуб
type InviteMechanicRequest struct {
	ClubID     int64 `json:"club_id" validate:"required,min=1"`
	MechanicID int64 `json:"mechanic_id" validate:"required,min=1"`
}

// AssignStaffRequest - запрос на закрепление сотрудника за клубом
type AssignStaffRequest struct {
	UserID int64  `json:"user_id" validate:"required,min=1"`
	Role   string `json:"role,omitempty"`
}

// SetStaffActiveRequest - запрос на включение/выключение сотрудника
type SetStaffActiveRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

// AccessibleClubsResponse - разрешённая область видимости вызывающего
type AccessibleClubsResponse struct {
	ClubIDs []int64 `json:"club_ids"`
	Total   int     `json:"total"`
}

// ClubListResponse - список клубов
type ClubListResponse struct {
	Clubs []BowlingClub `json:"clubs"`
	Total int           `json:"total"`
}

// ErrorResponse - стандартный ответ об ошибке
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// SuccessResponse - стандартный ответ об успехе
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
