package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bowlingapp/audit-service/internal/app/audit/entity"
	"bowlingapp/pkg/logger"
)

type eventRepository struct {
	collection *mongo.Collection
}

// NewEventRepository создает новый репозиторий событий безопасности.
// Создает индекс по user_id и TTL индекс по created_at: события
// старше срока хранения MongoDB удаляет сама.
func NewEventRepository(db *mongo.Database, retention time.Duration) EventRepository {
	collection := db.Collection("security_events")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userIndexModel := mongo.IndexModel{
		Keys: bson.D{
			{Key: "user_id", Value: 1},
			{Key: "created_at", Value: -1},
		},
		Options: options.Index().SetName("user_id_created_at_idx"),
	}

	if _, err := collection.Indexes().CreateOne(ctx, userIndexModel); err != nil {
		// Индекс может уже существовать, работу не прерываем
		logger.Warn().Err(err).Msg("failed to create user_id index")
	}

	ttlIndexModel := mongo.IndexModel{
		Keys: bson.D{
			{Key: "created_at", Value: 1},
		},
		Options: options.Index().
			SetName("created_at_ttl_idx").
			SetExpireAfterSeconds(int32(retention.Seconds())),
	}

	if _, err := collection.Indexes().CreateOne(ctx, ttlIndexModel); err != nil {
		logger.Warn().Err(err).Msg("failed to create TTL index")
	}

	return &eventRepository{
		collection: collection,
	}
}

// Store сохраняет событие безопасности
func (r *eventRepository) Store(ctx context.Context, event *entity.SecurityEvent) error {
	event.StoredAt = time.Now()

	result, err := r.collection.InsertOne(ctx, event)
	if err != nil {
		return fmt.Errorf("failed to store security event: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		event.ID = oid
	}

	return nil
}

// FindByUser возвращает последние события пользователя, новые сверху
func (r *eventRepository) FindByUser(ctx context.Context, userID int64, limit int64) ([]entity.SecurityEvent, error) {
	filter := bson.M{"user_id": userID}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find security events: %w", err)
	}
	defer cursor.Close(ctx)

	var events []entity.SecurityEvent
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("failed to decode security events: %w", err)
	}

	return events, nil
}

// CountByType возвращает число событий данного типа
func (r *eventRepository) CountByType(ctx context.Context, eventType string) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"event_type": eventType})
	if err != nil {
		return 0, fmt.Errorf("failed to count security events: %w", err)
	}

	return count, nil
}
