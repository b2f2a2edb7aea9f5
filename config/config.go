package config

import (
	"context"
	"database/sql"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

const NotificationsTopic = "notifications"

// Settings holds the values both services read from the environment.
type Settings struct {
	HTTPAddr        string
	PublicBaseURL   string
	DisplayTimezone string
	SweepSchedule   string
	SweepLeaseTTL   time.Duration

	SMTPAddr string
	SMTPFrom string
	SMTPUser string
	SMTPPass string

	NotificationMarkerTTL time.Duration

	GatewayAddr   string
	SessionSvcURL string
}

// Load reads an optional .env file and then the process environment.
func Load(log *logrus.Entry) Settings {
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file found, using process environment")
	}

	return Settings{
		HTTPAddr:        getEnv("HTTP_ADDR", ":8081"),
		PublicBaseURL:   getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),
		DisplayTimezone: getEnv("DISPLAY_TIMEZONE", "UTC"),
		SweepSchedule:   getEnv("SWEEP_SCHEDULE", "@every 60s"),
		SweepLeaseTTL:   getDuration("SWEEP_LEASE_TTL", 50*time.Second),

		SMTPAddr: getEnv("SMTP_ADDR", "localhost:25"),
		SMTPFrom: getEnv("SMTP_FROM", "noreply@meal-together.local"),
		SMTPUser: os.Getenv("SMTP_USER"),
		SMTPPass: os.Getenv("SMTP_PASSWORD"),

		NotificationMarkerTTL: getDuration("NOTIFICATION_MARKER_TTL", 72*time.Hour),

		GatewayAddr:   getEnv("GATEWAY_ADDR", ":8080"),
		SessionSvcURL: getEnv("SESSION_SVC_URL", "http://localhost:8081"),
	}
}

// NewLogger returns a JSON logger tagged with the service name.
func NewLogger(service string) *logrus.Entry {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	logger.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return logger.WithField("service", service)
}

func MustInitPostgres(log *logrus.Entry) *sql.DB {
	dbHost := getEnv("DB_HOST", "localhost")
	dbPort := getEnv("DB_PORT", "5432")
	dbName := getEnv("DB_NAME", "meal_together")
	dbUser := getEnv("DB_USER", "postgres")
	dbPassword := os.Getenv("DB_PASSWORD")

	connStr := "host=" + dbHost + " port=" + dbPort + " user=" + dbUser +
		" password=" + dbPassword + " dbname=" + dbName + " sslmode=disable"

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}

	if err = db.Ping(); err != nil {
		log.WithError(err).Fatal("failed to ping database")
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return db
}

func MustInitRedis(log *logrus.Entry) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: getEnv("REDIS_HOST", "localhost") + ":" + getEnv("REDIS_PORT", "6379"),
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.WithError(err).Fatal("failed to connect to redis")
	}

	return client
}

func NewKafkaReader(topic, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{getEnv("KAFKA_BROKER", "localhost:9092")},
		Topic:   topic,
		GroupID: groupID,
	})
}

func NewKafkaWriter(topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(getEnv("KAFKA_BROKER", "localhost:9092")),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
