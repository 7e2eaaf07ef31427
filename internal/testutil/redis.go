package testutil

import (
	"context"
	"fmt"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	redisCtxTimeout              = 10 * time.Second
	redisContainerStartupTimeout = 60 * time.Second
	redisContainerMemoryLimit    = 128 * 1024 * 1024 // 128MB
)

var (
	sharedRedisAddr string
	sharedRedisOnce sync.Once
	errSharedRedis  error
)

func sharedRedis(ctx context.Context) (string, error) {
	sharedRedisOnce.Do(func() {
		req := testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			HostConfigModifier: func(hc *container.HostConfig) {
				hc.Memory = redisContainerMemoryLimit
				hc.MemorySwap = redisContainerMemoryLimit
			},
			WaitingFor: wait.ForListeningPort("6379/tcp").WithStartupTimeout(redisContainerStartupTimeout),
		}
		cont, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: req,
			Started:          true,
		})
		if err != nil {
			errSharedRedis = fmt.Errorf("failed to start Redis container: %w", err)
			return
		}
		host, err := cont.Host(ctx)
		if err != nil {
			errSharedRedis = err
			return
		}
		port, err := cont.MappedPort(ctx, "6379")
		if err != nil {
			errSharedRedis = err
			return
		}
		sharedRedisAddr = net.JoinHostPort(host, port.Port())
	})
	return sharedRedisAddr, errSharedRedis
}

// SetupTestRedis returns a flushed client on a shared Redis container.
// The test is skipped in -short mode or when Docker is unavailable.
func SetupTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping Redis integration test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisContainerStartupTimeout)
	defer cancel()

	addr, err := sharedRedis(ctx)
	if err != nil {
		t.Skipf("Redis container unavailable: %v", err)
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	pingCtx, pingCancel := context.WithTimeout(context.Background(), redisCtxTimeout)
	defer pingCancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		t.Fatalf("Failed to ping Redis: %v", err)
	}
	_ = client.FlushDB(pingCtx).Err()

	t.Cleanup(func() { _ = client.Close() })
	return client
}
