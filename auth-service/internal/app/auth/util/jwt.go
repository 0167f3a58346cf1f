package util

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"bowlingapp/auth-service/internal/app/auth/entity"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// AccessClaims - claims access токена. Subject - телефон пользователя,
// userId передаётся строкой и разбирается обратно при аутентификации.
type AccessClaims struct {
	UserID string `json:"userId,omitempty"`
	Role   string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// JWTManager выпускает и проверяет access токены и генерирует refresh токены
type JWTManager struct {
	secretKey            string
	accessTokenDuration  time.Duration
	refreshTokenDuration time.Duration
}

func NewJWTManager(secretKey string, accessDuration, refreshDuration time.Duration) *JWTManager {
	return &JWTManager{
		secretKey:            secretKey,
		accessTokenDuration:  accessDuration,
		refreshTokenDuration: refreshDuration,
	}
}

// GenerateAccessToken выпускает подписанный access токен для пользователя.
// Токен stateless: его валидность - функция подписи, срока и текущего времени.
func (m *JWTManager) GenerateAccessToken(user *entity.User) (string, error) {
	now := time.Now()
	role := user.Role
	if role == "" {
		role = entity.RoleDefault
	}

	claims := AccessClaims{
		UserID: strconv.FormatInt(user.ID, 10),
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Phone,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.secretKey))
}

// GenerateRefreshToken генерирует случайное непрозрачное значение.
// Сырое значение возвращается вызывающему один-единственный раз,
// в хранилище попадает только хэш.
func (m *JWTManager) GenerateRefreshToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// ValidateToken проверяет подпись и срок access токена
func (m *JWTManager) ValidateToken(tokenString string) (*AccessClaims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&AccessClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(m.secretKey), nil
		},
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*AccessClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// Authenticate проверяет токен и восстанавливает Principal.
// Нечитаемый userId - не ошибка: Principal строится без идентификатора.
func (m *JWTManager) Authenticate(tokenString string) (*entity.Principal, error) {
	claims, err := m.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	var userID *int64
	if claims.UserID != "" {
		if parsed, parseErr := strconv.ParseInt(claims.UserID, 10, 64); parseErr == nil {
			userID = &parsed
		}
	}

	return entity.NewPrincipal(userID, claims.Subject, claims.Role), nil
}

// HashToken возвращает hex-представление SHA-256 хэша refresh токена
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func (m *JWTManager) GetAccessTokenDuration() time.Duration {
	return m.accessTokenDuration
}

func (m *JWTManager) GetRefreshTokenDuration() time.Duration {
	return m.refreshTokenDuration
}
