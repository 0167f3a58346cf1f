package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"bowlingapp/auth-service/internal/app/auth/entity"
	"bowlingapp/auth-service/internal/app/auth/repository"
	"bowlingapp/auth-service/internal/app/auth/util"
	"bowlingapp/pkg/logger"
	"bowlingapp/pkg/metrics"
)

// AuthService обрабатывает бизнес-логику аутентификации:
// вход, ротацию refresh токенов, выход и восстановление Principal
type AuthService struct {
	userRepo      repository.UserRepository
	refreshRepo   repository.RefreshTokenRepository
	blacklistRepo repository.BlacklistRepository
	jwtManager    *util.JWTManager
	events        SecurityEventPublisher
}

// NewAuthService создает новый сервис аутентификации
func NewAuthService(
	userRepo repository.UserRepository,
	refreshRepo repository.RefreshTokenRepository,
	blacklistRepo repository.BlacklistRepository,
	jwtManager *util.JWTManager,
	events SecurityEventPublisher,
) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		refreshRepo:   refreshRepo,
		blacklistRepo: blacklistRepo,
		jwtManager:    jwtManager,
		events:        events,
	}
}

// Login выполняет вход по телефону и паролю, выпускает пару токенов
// и регистрирует запись о refresh токене
func (s *AuthService) Login(ctx context.Context, req *entity.LoginRequest) (*entity.LoginResponse, error) {
	user, err := s.userRepo.GetByPhone(ctx, req.Phone)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !util.CheckPassword(req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrUserDisabled
	}

	pair, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, entity.EventLogin, user.ID, user.Phone, "")

	return &entity.LoginResponse{
		UserID: user.ID,
		Phone:  user.Phone,
		Role:   user.Role,
		Tokens: *pair,
	}, nil
}

// Refresh обменивает refresh токен на новую пару токенов.
// Старый токен отзывается; повторное его предъявление - сигнал
// компрометации, по которому отзываются все токены владельца.
func (s *AuthService) Refresh(ctx context.Context, rawRefreshToken string) (*entity.TokenPair, error) {
	if rawRefreshToken == "" {
		return nil, ErrRefreshTokenUnknown
	}

	newRaw, err := s.jwtManager.GenerateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	now := time.Now()
	outcome, current, _, err := s.refreshRepo.Rotate(ctx,
		util.HashToken(rawRefreshToken),
		util.HashToken(newRaw),
		now,
		now.Add(s.jwtManager.GetRefreshTokenDuration()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to rotate refresh token: %w", err)
	}

	switch outcome {
	case entity.RotateUnknown:
		metrics.AuthTokenRotations.WithLabelValues("unknown").Inc()
		return nil, ErrRefreshTokenUnknown

	case entity.RotateExpired:
		metrics.AuthTokenRotations.WithLabelValues("expired").Inc()
		metrics.AuthTokensRevoked.WithLabelValues(entity.RevokeReasonExpired).Inc()
		return nil, ErrRefreshTokenExpired

	case entity.RotateReused:
		metrics.AuthTokenRotations.WithLabelValues("reuse_detected").Inc()
		metrics.AuthReuseDetections.Inc()

		// Эскалация: токен уже был потреблён, возможно украден и
		// воспроизведён. Отзываем все живые токены владельца.
		revoked, revokeErr := s.refreshRepo.RevokeAllForUser(ctx, current.UserID, entity.RevokeReasonReuseDetected)
		if revokeErr != nil {
			logger.Error().
				Err(revokeErr).
				Int64("user_id", current.UserID).
				Msg("failed to revoke tokens after reuse detection")
		}

		logger.Security(entity.EventReuseDetected).
			Int64("user_id", current.UserID).
			Int64("tokens_revoked", revoked).
			Msg("refresh token reuse detected, all user tokens revoked")

		s.publishEvent(ctx, entity.EventReuseDetected, current.UserID, "",
			fmt.Sprintf("revoked %d active tokens", revoked))

		return nil, ErrRefreshTokenReused
	}

	metrics.AuthTokenRotations.WithLabelValues("rotated").Inc()
	metrics.AuthTokensRevoked.WithLabelValues(entity.RevokeReasonRotated).Inc()

	user, err := s.userRepo.GetByID(ctx, current.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !user.IsActive {
		// Деактивированный аккаунт не должен продлевать сессию;
		// отзываем все его токены вместе со свежевыданным
		if _, revokeErr := s.refreshRepo.RevokeAllForUser(ctx, user.ID, entity.RevokeReasonUserDisabled); revokeErr != nil {
			logger.Error().
				Err(revokeErr).
				Int64("user_id", user.ID).
				Msg("failed to revoke tokens of disabled user")
		}
		return nil, ErrUserDisabled
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	metrics.AuthTokensIssued.WithLabelValues("access").Inc()
	metrics.AuthTokensIssued.WithLabelValues("refresh").Inc()

	s.publishEvent(ctx, entity.EventTokenRotated, user.ID, user.Phone, "")

	return &entity.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: newRaw,
		ExpiresIn:    int64(s.jwtManager.GetAccessTokenDuration().Seconds()),
	}, nil
}

// Logout отзывает предъявленный access токен через чёрный список
// и все refresh токены пользователя
func (s *AuthService) Logout(ctx context.Context, accessToken string) error {
	claims, err := s.jwtManager.ValidateToken(accessToken)
	if err != nil {
		// Невалидный или истёкший токен отзывать не нужно
		return nil
	}

	if err := s.blacklistRepo.AddToBlacklist(ctx, accessToken, claims.ExpiresAt.Time); err != nil {
		return fmt.Errorf("failed to blacklist token: %w", err)
	}

	principal, err := s.jwtManager.Authenticate(accessToken)
	if err != nil || principal.UserID == nil {
		return nil
	}

	s.publishEvent(ctx, entity.EventLogout, *principal.UserID, principal.Phone, "")

	return s.RevokeAll(ctx, *principal.UserID, entity.RevokeReasonLogout)
}

// RevokeAll отзывает все неотозванные refresh токены пользователя
func (s *AuthService) RevokeAll(ctx context.Context, userID int64, reason string) error {
	revoked, err := s.refreshRepo.RevokeAllForUser(ctx, userID, reason)
	if err != nil {
		return fmt.Errorf("failed to revoke user tokens: %w", err)
	}

	metrics.AuthTokensRevoked.WithLabelValues(reason).Add(float64(revoked))

	logger.Security(entity.EventRevokeAll).
		Int64("user_id", userID).
		Str("reason", reason).
		Int64("tokens_revoked", revoked).
		Msg("all refresh tokens revoked")

	s.publishEvent(ctx, entity.EventRevokeAll, userID, "", reason)

	return nil
}

// Authenticate проверяет access токен (подпись, срок, чёрный список)
// и восстанавливает Principal
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (*entity.Principal, error) {
	blacklisted, err := s.blacklistRepo.IsBlacklisted(ctx, accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to check blacklist: %w", err)
	}
	if blacklisted {
		return nil, ErrTokenBlacklisted
	}

	principal, err := s.jwtManager.Authenticate(accessToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	return principal, nil
}

// PurgeExpiredTokens удаляет отозванные refresh токены, чей срок жизни
// истёк раньше переданной границы. Возвращает число удалённых записей.
func (s *AuthService) PurgeExpiredTokens(ctx context.Context, before time.Time) (int64, error) {
	deleted, err := s.refreshRepo.DeleteExpiredRevoked(ctx, before)
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired tokens: %w", err)
	}

	if deleted > 0 {
		logger.Info().
			Int64("deleted", deleted).
			Time("before", before).
			Msg("purged expired refresh tokens")
	}

	return deleted, nil
}

// issueTokenPair выпускает access и refresh токены и сохраняет
// запись о refresh токене в реестре
func (s *AuthService) issueTokenPair(ctx context.Context, user *entity.User) (*entity.TokenPair, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	now := time.Now()
	record := &entity.RefreshToken{
		UserID:    user.ID,
		TokenHash: util.HashToken(refreshToken),
		IssuedAt:  now,
		ExpiresAt: now.Add(s.jwtManager.GetRefreshTokenDuration()),
	}
	if err := s.refreshRepo.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save refresh token: %w", err)
	}

	metrics.AuthTokensIssued.WithLabelValues("access").Inc()
	metrics.AuthTokensIssued.WithLabelValues("refresh").Inc()

	return &entity.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.jwtManager.GetAccessTokenDuration().Seconds()),
	}, nil
}

// publishEvent отправляет событие аудита; сбой шины не роняет основной поток
func (s *AuthService) publishEvent(ctx context.Context, eventType string, userID int64, phone, detail string) {
	if s.events == nil {
		return
	}

	event := entity.SecurityEvent{
		EventID:   uuid.NewString(),
		EventType: eventType,
		UserID:    userID,
		Phone:     phone,
		Detail:    detail,
		CreatedAt: time.Now(),
	}

	if err := s.events.Publish(ctx, event); err != nil {
		logger.Error().
			Err(err).
			Str("event_type", eventType).
			Int64("user_id", userID).
			Msg("failed to publish security event")
	}
}
