package postgres_test

import (
	"testing"

	"github.com/Astemirdum/smart-library/pkg/postgres"
	"github.com/stretchr/testify/require"
)

func TestDB_DSN(t *testing.T) {
	cfg := postgres.DB{
		Host:     "db",
		Port:     "5433",
		Username: "lib",
		Password: "p@ss word",
		NameDB:   "library",
		SSLMode:  "disable",
	}
	require.Equal(t, "postgres://lib:p%40ss%20word@db:5433/library?sslmode=disable", cfg.DSN())
}
