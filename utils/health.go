package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// DependencyProbe checks one external collaborator (calendar backend,
// text-generation service, ...).
type DependencyProbe func(ctx context.Context) error

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Redis     bool            `json:"redis"`
	Deps      map[string]bool `json:"deps"`
	CheckedAt time.Time       `json:"checkedAt"`
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

// StartHealthMonitor performs periodic health checks and updates in-memory
// state. The first check runs immediately so /health/deps never serves a
// zero-value snapshot. The redis client may be nil when running without
// Redis.
func StartHealthMonitor(redisClient *redis.Client, probes map[string]DependencyProbe) {
	go func() {
		checkHealth(redisClient, probes)

		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()

		for range ticker.C {
			checkHealth(redisClient, probes)
		}
	}()
}

func checkHealth(redisClient *redis.Client, probes map[string]DependencyProbe) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	redisHealthy := false
	if redisClient != nil {
		redisHealthy = redisClient.Ping(ctx).Err() == nil
	}

	depHealth := make(map[string]bool, len(probes))
	for name, probe := range probes {
		depHealth[name] = probe(ctx) == nil
	}

	mu.Lock()
	currentHealth = HealthStatus{
		Redis:     redisHealthy,
		Deps:      depHealth,
		CheckedAt: time.Now(),
	}
	mu.Unlock()
}
