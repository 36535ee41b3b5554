package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/Astemirdum/smart-library/library/config"
)

func TestNewConfig(t *testing.T) {
	t.Setenv("LIBRARY_HTTP_PORT", "9090")
	t.Setenv("LOAN_MAX_ACTIVE", "5")
	t.Setenv("KAFKA_ADDRS", "kafka-1:9092,kafka-2:9092")

	cfg := config.NewConfig(
		config.WithLogLevel(zapcore.DebugLevel),
		config.WithWriteTimeout(time.Minute),
	)

	require.Equal(t, "9090", cfg.Server.Port)
	require.Equal(t, time.Minute, cfg.Server.WriteTimeout)
	require.Equal(t, zapcore.DebugLevel, cfg.Log.LogLevel)
	require.Equal(t, 5, cfg.Loan.MaxActiveLoans)
	require.Equal(t, 14*24*time.Hour, cfg.Loan.LoanPeriod)
	require.InDelta(t, 1.0, cfg.Loan.FinePerDay, 1e-9)
	require.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Addrs)
	require.True(t, cfg.Kafka.Enabled())

	// loaded once per process
	again := config.NewConfig()
	require.Equal(t, cfg.Server.Port, again.Server.Port)
}
