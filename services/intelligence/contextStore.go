// File: services/intelligence/contextStore.go
package ai

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/go-redis/redis/v8"
)

const diagnosisPrefix = "diagnosis:"

// RedisDiagnosisCache stores diagnoses keyed by image digest.
type RedisDiagnosisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisDiagnosisCache(client *redis.Client, ttl time.Duration) *RedisDiagnosisCache {
	return &RedisDiagnosisCache{client: client, ttl: ttl}
}

func (s *RedisDiagnosisCache) Get(ctx context.Context, key string) (string, bool, error) {
	data, err := s.client.Get(ctx, diagnosisPrefix+key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return data, true, nil
}

func (s *RedisDiagnosisCache) Set(ctx context.Context, key, diagnosis string) error {
	return s.client.Set(ctx, diagnosisPrefix+key, diagnosis, s.ttl).Err()
}

// ImageKey returns the hex SHA-256 of image.
func ImageKey(image []byte) string {
	sum := sha256.Sum256(image)
	return hex.EncodeToString(sum[:])
}
