package processor

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"bowlingapp/auth-service/internal/app/auth/service"
)

// RetentionScheduler периодически чистит реестр refresh токенов:
// отозванные записи хранятся до конца retention-периода для аудита,
// затем удаляются.
type RetentionScheduler struct {
	cron      *cron.Cron
	authSvc   service.AuthServiceInterface
	retention time.Duration
}

func NewRetentionScheduler(authSvc service.AuthServiceInterface, retention time.Duration) *RetentionScheduler {
	c := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(log.Default())))

	return &RetentionScheduler{
		cron:      c,
		authSvc:   authSvc,
		retention: retention,
	}
}

func (s *RetentionScheduler) Start(ctx context.Context, schedule string) error {
	log.Printf("Starting retention scheduler with schedule: %s", schedule)

	_, err := s.cron.AddFunc(schedule, func() {
		log.Println("Cron job triggered: purging expired refresh tokens")

		before := time.Now().Add(-s.retention)
		deleted, err := s.authSvc.PurgeExpiredTokens(ctx, before)
		if err != nil {
			log.Printf("ERROR: Failed to purge expired refresh tokens: %v", err)
		} else {
			log.Printf("Cron job completed: %d expired refresh tokens purged", deleted)
		}
	})

	if err != nil {
		return err
	}

	s.cron.Start()
	log.Println("Retention scheduler started")

	return nil
}

func (s *RetentionScheduler) Stop() {
	log.Println("Stopping retention scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("Retention scheduler stopped")
}

func (s *RetentionScheduler) GetEntries() []cron.Entry {
	return s.cron.Entries()
}
