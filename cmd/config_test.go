package cmd

import (
	"testing"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Defaults(t *testing.T) {
	cfg, err := env.ParseAsWithOptions[Config](env.Options{Environment: map[string]string{}})
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 100, cfg.OutboxBatchSize)
	assert.Equal(t, "*/5 * * * * *", cfg.OutboxSchedule)
	assert.True(t, cfg.AutoMigrate)
	assert.Empty(t, cfg.KafkaHost)
}

func TestConfig_FromEnvironment(t *testing.T) {
	cfg, err := env.ParseAsWithOptions[Config](env.Options{Environment: map[string]string{
		"DB_HOST":           "db",
		"DB_PASSWORD":       "p@ss word",
		"DB_NAME":           "plant",
		"AUDIT_BATCH_SIZE":  "50",
		"AUTO_MIGRATE":      "false",
		"KAFKA_HOST":        "kafka-1:9092,kafka-2:9092",
		"OUTBOX_BATCH_SIZE": "10",
	}})
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.AuditBatchSize)
	assert.False(t, cfg.AutoMigrate)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers())
	assert.Equal(t, "postgres://postgres:p%40ss%20word@db:5432/plant?sslmode=disable", cfg.DSN())
}

func TestConfig_RejectsMalformedNumbers(t *testing.T) {
	_, err := env.ParseAsWithOptions[Config](env.Options{Environment: map[string]string{"OUTBOX_BATCH_SIZE": "many"}})
	require.Error(t, err)
}
