package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"portfolio/internal/cache"
	apperrors "portfolio/internal/errors"
	"portfolio/internal/repository"
)

// InfoService manages a key/value info section (about or contact).
type InfoService interface {
	GetAll(ctx context.Context) (map[string]string, error)
	// Upsert stores value under key. A nil value means the field was absent
	// from the request and is rejected; an empty string is a valid value.
	Upsert(ctx context.Context, key string, value *string) error
}

type infoService struct {
	repo     repository.InfoRepository
	cache    *cache.Client
	cacheKey string
	ttl      time.Duration
}

// NewAboutService creates the service behind the about page fields.
func NewAboutService(repo repository.InfoRepository, cache *cache.Client, ttl time.Duration) InfoService {
	return &infoService{repo: repo, cache: cache, cacheKey: aboutInfoCacheKey, ttl: ttlOrDefault(ttl)}
}

// NewContactService creates the service behind the contact page fields.
func NewContactService(repo repository.InfoRepository, cache *cache.Client, ttl time.Duration) InfoService {
	return &infoService{repo: repo, cache: cache, cacheKey: contactInfoCacheKey, ttl: ttlOrDefault(ttl)}
}

func (s *infoService) GetAll(ctx context.Context) (map[string]string, error) {
	return loadCached(ctx, s.cache, s.cacheKey, s.ttl, func(ctx context.Context) (map[string]string, error) {
		entries, err := s.repo.All(ctx)
		if err != nil {
			return nil, err
		}
		info := make(map[string]string, len(entries))
		for _, e := range entries {
			info[e.Key] = e.Value
		}
		return info, nil
	})
}

func (s *infoService) Upsert(ctx context.Context, key string, value *string) error {
	key = strings.TrimSpace(key)
	if key == "" || value == nil {
		return apperrors.NewValidationError("key and value are required")
	}
	if err := s.repo.Upsert(ctx, key, *value); err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	invalidateCached(ctx, s.cache, s.cacheKey)
	return nil
}
