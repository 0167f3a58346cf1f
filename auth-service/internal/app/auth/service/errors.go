package service

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid phone or password")
	ErrUserDisabled       = errors.New("user account is disabled")
	ErrUserNotFound       = errors.New("user not found")

	ErrInvalidToken     = errors.New("invalid token")
	ErrTokenBlacklisted = errors.New("token is blacklisted")

	// Исходы неуспешной ротации. Все три наружу отображаются как 401,
	// но reuse дополнительно эскалируется отзывом всех токенов владельца
	ErrRefreshTokenUnknown = errors.New("refresh token is not registered")
	ErrRefreshTokenExpired = errors.New("refresh token has expired")
	ErrRefreshTokenReused  = errors.New("refresh token reuse detected")

	ErrInternal = errors.New("internal error")
)
