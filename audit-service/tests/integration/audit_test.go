//go:build integration

package integration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bowlingapp/audit-service/internal/app/audit/entity"
	"bowlingapp/audit-service/internal/app/audit/repository"
	"bowlingapp/audit-service/internal/app/audit/service"
)

const testMongoURI = "mongodb://localhost:27017"

// AuditIntegrationTestSuite гоняет сервис аудита против реального MongoDB
type AuditIntegrationTestSuite struct {
	suite.Suite
	client    *mongo.Client
	db        *mongo.Database
	eventRepo repository.EventRepository
	auditSvc  *service.AuditService
}

func TestAuditIntegrationSuite(t *testing.T) {
	suite.Run(t, new(AuditIntegrationTestSuite))
}

func (s *AuditIntegrationTestSuite) SetupSuite() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var err error
	s.client, err = mongo.Connect(ctx, options.Client().ApplyURI(testMongoURI))
	require.NoError(s.T(), err)
	require.NoError(s.T(), s.client.Ping(ctx, nil))

	s.db = s.client.Database("bowling_audit_test")
	s.eventRepo = repository.NewEventRepository(s.db, 90*24*time.Hour)
	s.auditSvc = service.NewAuditService(s.eventRepo)
}

func (s *AuditIntegrationTestSuite) TearDownSuite() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.db.Drop(ctx)
	s.client.Disconnect(ctx)
}

func (s *AuditIntegrationTestSuite) SetupTest() {
	ctx := context.Background()
	s.db.Collection("security_events").DeleteMany(ctx, bson.M{})
}

// ==================== Integration Tests ====================

func (s *AuditIntegrationTestSuite) TestRecordAndQueryEvents() {
	ctx := context.Background()

	// Записываем цепочку событий одного пользователя
	events := []*entity.SecurityEvent{
		{EventID: "evt-1", EventType: entity.EventLogin, UserID: 42, CreatedAt: time.Now().Add(-3 * time.Minute)},
		{EventID: "evt-2", EventType: entity.EventTokenRotated, UserID: 42, CreatedAt: time.Now().Add(-2 * time.Minute)},
		{EventID: "evt-3", EventType: entity.EventReuseDetected, UserID: 42, Detail: "refresh token replayed", CreatedAt: time.Now().Add(-time.Minute)},
		{EventID: "evt-4", EventType: entity.EventLogin, UserID: 99, CreatedAt: time.Now()},
	}
	for _, event := range events {
		s.Require().NoError(s.auditSvc.RecordEvent(ctx, event))
	}

	// Запрашиваем события пользователя 42, новые сверху
	stored, err := s.auditSvc.GetUserEvents(ctx, 42, 10)
	s.Require().NoError(err)
	s.Len(stored, 3)
	s.Equal("evt-3", stored[0].EventID)
	s.Equal("evt-1", stored[2].EventID)

	// События чужого пользователя не попадают в выборку
	for _, event := range stored {
		s.Equal(int64(42), event.UserID)
	}
}

func (s *AuditIntegrationTestSuite) TestCountByType() {
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		s.Require().NoError(s.auditSvc.RecordEvent(ctx, &entity.SecurityEvent{
			EventType: entity.EventRevokeAll,
			UserID:    int64(i + 1),
			CreatedAt: time.Now(),
		}))
	}

	count, err := s.eventRepo.CountByType(ctx, entity.EventRevokeAll)
	s.Require().NoError(err)
	s.Equal(int64(3), count)
}

func (s *AuditIntegrationTestSuite) TestTTLIndexExists() {
	ctx := context.Background()

	cursor, err := s.db.Collection("security_events").Indexes().List(ctx)
	s.Require().NoError(err)

	var indexes []bson.M
	s.Require().NoError(cursor.All(ctx, &indexes))

	found := false
	for _, idx := range indexes {
		if idx["name"] == "created_at_ttl_idx" {
			found = true
			s.NotNil(idx["expireAfterSeconds"])
		}
	}
	s.True(found, "TTL index on created_at must exist")
}

func (s *AuditIntegrationTestSuite) TestGetUserEvents_EmptyTrail() {
	ctx := context.Background()

	events, err := s.auditSvc.GetUserEvents(ctx, 777, 10)
	s.Require().NoError(err)
	s.NotNil(events)
	s.Empty(events)
}
