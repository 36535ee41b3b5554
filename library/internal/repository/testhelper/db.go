// Package testhelper starts a throwaway PostgreSQL for repository tests.
package testhelper

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/Astemirdum/smart-library/library/migrations"
	"github.com/Astemirdum/smart-library/pkg/postgres"
)

var (
	once    sync.Once
	shared  postgres.DB
	initErr error
)

// SetupTestDB starts one container per test binary, migrates it and returns
// a fresh pool closed on cleanup. Tables are truncated before returning.
func SetupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}

	once.Do(func() {
		shared, initErr = startContainer()
	})
	if initErr != nil {
		t.Fatalf("testhelper: setup test db: %v", initErr)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPostgresDB(ctx, &shared, migrations.MigrationFiles)
	if err != nil {
		t.Fatalf("testhelper: connect: %v", err)
	}
	t.Cleanup(pool.Close)

	if _, err := pool.Exec(ctx,
		`truncate loan_events, activities, user_issued_books, books, users restart identity cascade`); err != nil {
		t.Fatalf("testhelper: truncate: %v", err)
	}
	return pool
}

func startContainer() (postgres.DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "library",
				"POSTGRES_PASSWORD": "library",
				"POSTGRES_DB":       "library",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		},
		Started: true,
	})
	if err != nil {
		return postgres.DB{}, err
	}

	host, err := container.Host(ctx)
	if err != nil {
		return postgres.DB{}, err
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		return postgres.DB{}, err
	}

	return postgres.DB{
		Host:     host,
		Port:     port.Port(),
		Username: "library",
		Password: "library",
		NameDB:   "library",
		SSLMode:  "disable",
		MaxConns: 5,
	}, nil
}
