package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config содержит все настройки Audit Service
// Включает конфигурацию для HTTP сервера, Kafka, MongoDB и JWT
type Config struct {
	Server ServerConfig
	Kafka  KafkaConfig
	Mongo  MongoConfig
	JWT    JWTConfig
	Log    LogConfig
}

// ServerConfig - настройки HTTP сервера
type ServerConfig struct {
	Host string
	Port string
}

// KafkaConfig - настройки Kafka consumer
type KafkaConfig struct {
	Brokers  []string
	Topic    string
	GroupID  string
	MinBytes int
	MaxBytes int
}

// MongoConfig - настройки MongoDB.
// Retention задаёт TTL индекса на created_at.
type MongoConfig struct {
	URI       string
	Database  string
	Retention time.Duration
}

// JWTConfig - настройки проверки JWT токенов.
// Секрет должен совпадать с auth-service.
type JWTConfig struct {
	Secret string
}

// LogConfig - настройки логирования
type LogConfig struct {
	Level string
}

// Load загружает конфигурацию из переменных окружения.
// Отсутствие ключа подписи - фатальная ошибка конфигурации.
func Load() (*Config, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}

	retentionDays := getEnvInt("AUDIT_RETENTION_DAYS", 90)

	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("SERVER_PORT", "8082"),
		},
		Kafka: KafkaConfig{
			Brokers:  strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
			Topic:    getEnv("KAFKA_TOPIC", "security-events"),
			GroupID:  getEnv("KAFKA_GROUP_ID", "audit-service"),
			MinBytes: getEnvInt("KAFKA_MIN_BYTES", 1),
			MaxBytes: getEnvInt("KAFKA_MAX_BYTES", 10e6),
		},
		Mongo: MongoConfig{
			URI:       getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database:  getEnv("MONGO_DATABASE", "bowling_audit"),
			Retention: time.Duration(retentionDays) * 24 * time.Hour,
		},
		JWT: JWTConfig{
			Secret: secret,
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

// Address возвращает адрес сервера в формате host:port
func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
