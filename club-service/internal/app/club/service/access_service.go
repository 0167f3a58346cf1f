package service

import (
	"context"
	"fmt"
	"time"

	"bowlingapp/club-service/internal/app/club/entity"
	"bowlingapp/club-service/internal/app/club/repository"
	"bowlingapp/pkg/metrics"
)

// AccessService вычисляет область видимости клубов для пользователя.
// Только чтения по независимым связям, без блокировок; каждый вызов
// пересчитывает множество от текущего состояния.
type AccessService struct {
	clubRepo       repository.ClubRepository
	staffRepo      repository.StaffRepository
	invitationRepo repository.InvitationRepository
}

// NewAccessService создает новый сервис области видимости
func NewAccessService(
	clubRepo repository.ClubRepository,
	staffRepo repository.StaffRepository,
	invitationRepo repository.InvitationRepository,
) *AccessService {
	return &AccessService{
		clubRepo:       clubRepo,
		staffRepo:      staffRepo,
		invitationRepo: invitationRepo,
	}
}

// ResolveAccessibleClubIDs возвращает множество доступных клубов.
// Пользователь может попадать в несколько категорий; результат - объединение
// без дубликатов:
//   - глобальный админ видит все клубы;
//   - владелец видит свои клубы;
//   - закреплённый сотрудник видит клубы активных закреплений;
//   - свободный механик (ни одной строки закрепления) видит клубы
//     принятых приглашений.
//
// Пустое множество - нормальный результат, не ошибка.
func (s *AccessService) ResolveAccessibleClubIDs(ctx context.Context, userID int64, role string) ([]int64, error) {
	start := time.Now()
	defer func() {
		metrics.ClubScopeResolutionDuration.Observe(time.Since(start).Seconds())
	}()

	if role == entity.RoleAdmin {
		metrics.ClubScopeResolutions.WithLabelValues("admin").Inc()
		return s.clubRepo.AllClubIDs(ctx)
	}

	seen := make(map[int64]struct{})
	var clubIDs []int64
	add := func(ids []int64) {
		for _, id := range ids {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			clubIDs = append(clubIDs, id)
		}
	}

	matched := false

	owned, err := s.clubRepo.FindOwnedClubIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve owned clubs: %w", err)
	}
	if len(owned) > 0 {
		metrics.ClubScopeResolutions.WithLabelValues("owner").Inc()
		matched = true
	}
	add(owned)

	active, err := s.staffRepo.FindActiveClubIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve staff clubs: %w", err)
	}
	if len(active) > 0 {
		metrics.ClubScopeResolutions.WithLabelValues("staff").Inc()
		matched = true
	}
	add(active)

	// Приглашения учитываются только у свободного механика: у пользователя
	// не должно быть ни одной строки закрепления, даже неактивной
	hasStaffRows, err := s.staffRepo.HasAssignments(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check staff assignments: %w", err)
	}
	if !hasStaffRows {
		invited, err := s.invitationRepo.FindClubIDsByMechanicAndStatus(ctx, userID, entity.InvitationAccepted)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve invitation clubs: %w", err)
		}
		if len(invited) > 0 {
			metrics.ClubScopeResolutions.WithLabelValues("invited").Inc()
			matched = true
		}
		add(invited)
	}

	if !matched {
		metrics.ClubScopeResolutions.WithLabelValues("none").Inc()
	}

	if clubIDs == nil {
		clubIDs = []int64{}
	}

	return clubIDs, nil
}

// HasClubAccess сообщает, входит ли клуб в область видимости пользователя
func (s *AccessService) HasClubAccess(ctx context.Context, userID int64, role string, clubID int64) (bool, error) {
	if clubID <= 0 {
		return false, nil
	}

	clubIDs, err := s.ResolveAccessibleClubIDs(ctx, userID, role)
	if err != nil {
		return false, err
	}

	for _, id := range clubIDs {
		if id == clubID {
			return true, nil
		}
	}

	return false, nil
}
