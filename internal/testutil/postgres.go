package testutil

import (
	"context"
	"fmt"
	"io"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/achrafato/MarkDown-App/internal/infrastructure/postgres"
)

const (
	pgCtxTimeout              = 30 * time.Second
	pgContainerStartupTimeout = 90 * time.Second
	pgContainerMemoryLimit    = 256 * 1024 * 1024 // 256MB
)

var (
	sharedPG     *SharedPostgresContainer
	sharedPGOnce sync.Once
	errSharedPG  error
)

// SharedPostgresContainer is a migrated Postgres started once per test binary.
type SharedPostgresContainer struct {
	Container testcontainers.Container
	DSN       string
}

// GetSharedPostgresContainer starts the container on first use and applies the schema.
func GetSharedPostgresContainer(ctx context.Context) (*SharedPostgresContainer, error) {
	sharedPGOnce.Do(func() {
		sharedPG, errSharedPG = startPostgresContainer(ctx)
	})
	return sharedPG, errSharedPG
}

func startPostgresContainer(ctx context.Context) (*SharedPostgresContainer, error) {
	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "blog",
			"POSTGRES_PASSWORD": "blog",
			"POSTGRES_DB":       "blog_test",
		},
		HostConfigModifier: func(hc *container.HostConfig) {
			hc.Memory = pgContainerMemoryLimit
			hc.MemorySwap = pgContainerMemoryLimit
		},
		WaitingFor: wait.ForAll(
			// postgres logs readiness twice: once for the init server, once for the real one
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(pgContainerStartupTimeout),
			wait.ForListeningPort("5432/tcp").WithStartupTimeout(pgContainerStartupTimeout),
		),
	}

	cont, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start Postgres container: %w", err)
	}

	host, err := cont.Host(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}
	port, err := cont.MappedPort(ctx, "5432")
	if err != nil {
		return nil, fmt.Errorf("failed to get container port: %w", err)
	}

	dsn := fmt.Sprintf("postgres://blog:blog@%s/blog_test?sslmode=disable", net.JoinHostPort(host, port.Port()))

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	if err := postgres.RunMigrations(dsn, logger); err != nil {
		return nil, fmt.Errorf("failed to migrate test database: %w", err)
	}

	return &SharedPostgresContainer{Container: cont, DSN: dsn}, nil
}

// SetupTestPool returns a pool on an emptied, migrated database.
// The test is skipped in -short mode or when Docker is unavailable.
func SetupTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping Postgres integration test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), pgContainerStartupTimeout)
	defer cancel()

	cont, err := GetSharedPostgresContainer(ctx)
	if err != nil {
		t.Skipf("Postgres container unavailable: %v", err)
	}

	pool, err := postgres.NewPool(ctx, cont.DSN, postgres.PoolOptions{MaxConns: 4})
	if err != nil {
		t.Fatalf("Failed to connect to Postgres: %v", err)
	}
	t.Cleanup(pool.Close)

	resetCtx, resetCancel := context.WithTimeout(context.Background(), pgCtxTimeout)
	defer resetCancel()
	if _, err := pool.Exec(resetCtx, `TRUNCATE comments, posts, users RESTART IDENTITY CASCADE`); err != nil {
		t.Fatalf("Failed to reset tables: %v", err)
	}

	return pool
}
