package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Redis     *bool     `json:"redis,omitempty"`
	CheckedAt time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	mu            sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	mu.RLock()
	defer mu.RUnlock()
	return currentHealth
}

func recordHealth(redisClient *redis.Client) {
	status := HealthStatus{CheckedAt: time.Now()}
	if redisClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		ok := redisClient.Ping(ctx).Err() == nil
		cancel()
		status.Redis = &ok
	}

	mu.Lock()
	currentHealth = status
	mu.Unlock()
}

// StartHealthMonitor checks the optional redis cache every interval until ctx
// is done. The first check runs immediately.
func StartHealthMonitor(ctx context.Context, redisClient *redis.Client, interval time.Duration) {
	recordHealth(redisClient)
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				recordHealth(redisClient)
			}
		}
	}()
}
