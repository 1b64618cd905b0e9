package cmd

import (
	"fmt"
	"net/url"
	"strings"
)

// Config is read from the environment; see .env.example.
type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" envDefault:"production"`
	DBSslMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	// KafkaHost is a comma separated broker list. Empty means integration events are only logged.
	KafkaHost             string `env:"KAFKA_HOST"`
	KafkaPieceEventsTopic string `env:"KAFKA_PIECE_EVENTS_TOPIC" envDefault:"production.piece-events"`

	OutboxSchedule  string `env:"OUTBOX_SCHEDULE" envDefault:"*/5 * * * * *"`
	OutboxBatchSize int    `env:"OUTBOX_BATCH_SIZE" envDefault:"100"`
	AuditSchedule   string `env:"AUDIT_SCHEDULE" envDefault:"0 0 * * * *"`
	AuditBatchSize  int    `env:"AUDIT_BATCH_SIZE" envDefault:"500"`

	AutoMigrate bool `env:"AUTO_MIGRATE" envDefault:"true"`
}

// DSN is the postgres connection string for gorm.
func (c Config) DSN() string {
	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     fmt.Sprintf("%s:%s", c.DBHost, c.DBPort),
		Path:     c.DBName,
		RawQuery: url.Values{"sslmode": []string{c.DBSslMode}}.Encode(),
	}
	return dsn.String()
}

// KafkaBrokers splits KafkaHost. It is nil when Kafka is not configured.
func (c Config) KafkaBrokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaHost, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
