package entity

// LoginRequest - запрос на вход по телефону и паролю
type LoginRequest struct {
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest - запрос на ротацию refresh токена
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LoginResponse - ответ на успешный вход
type LoginResponse struct {
	UserID int64     `json:"user_id"`
	Phone  string    `json:"phone"`
	Role   string    `json:"role"`
	Tokens TokenPair `json:"tokens"`
}

// MeResponse - информация о текущем пользователе
type MeResponse struct {
	UserID      *int64   `json:"user_id,omitempty"`
	Phone       string   `json:"phone"`
	Role        string   `json:"role"`
	Authorities []string `json:"authorities"`
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
