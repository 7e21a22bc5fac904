package service

import (
	"context"
	"encoding/json"
	"errors"
	"path"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/class-enrollment-api/pkg/errors"
)

type memoryCacheRepo struct {
	entries map[string][]byte
	ttls    map[string]time.Duration
	failGet bool
}

func newMemoryCacheRepo() *memoryCacheRepo {
	return &memoryCacheRepo{entries: make(map[string][]byte), ttls: make(map[string]time.Duration)}
}

func (m *memoryCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	if m.failGet {
		return errors.New("connection refused")
	}
	raw, ok := m.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.entries[key] = raw
	m.ttls[key] = ttl
	return nil
}

func (m *memoryCacheRepo) DeleteByPattern(ctx context.Context, pattern string) error {
	for key := range m.entries {
		if ok, _ := path.Match(pattern, key); ok {
			delete(m.entries, key)
		}
	}
	return nil
}

func TestCacheServiceDisabled(t *testing.T) {
	repo := newMemoryCacheRepo()
	svc := NewCacheService(repo, nil, time.Minute, nil, false)

	require.NoError(t, svc.Set(context.Background(), "k", "v", 0))
	assert.Empty(t, repo.entries)

	var out string
	hit, err := svc.Get(context.Background(), "k", &out)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestCacheServiceRoundTripAndDefaultTTL(t *testing.T) {
	repo := newMemoryCacheRepo()
	metrics := NewMetricsService()
	svc := NewCacheService(repo, metrics, 2*time.Minute, nil, true)

	require.NoError(t, svc.Set(context.Background(), cacheKeyStudentList, []string{"a", "b"}, 0))
	assert.Equal(t, 2*time.Minute, repo.ttls[cacheKeyStudentList])

	var out []string
	hit, err := svc.Get(context.Background(), cacheKeyStudentList, &out)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []string{"a", "b"}, out)

	hit, err = svc.Get(context.Background(), cacheKeyClassList, &out)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestCacheServiceGetFailure(t *testing.T) {
	repo := newMemoryCacheRepo()
	repo.failGet = true
	svc := NewCacheService(repo, nil, 0, nil, true)

	var out []string
	hit, err := svc.Get(context.Background(), cacheKeyStudentList, &out)
	assert.Error(t, err)
	assert.False(t, hit)
}

func TestCacheServiceInvalidate(t *testing.T) {
	repo := newMemoryCacheRepo()
	svc := NewCacheService(repo, nil, 0, nil, true)
	ctx := context.Background()

	require.NoError(t, svc.Set(ctx, cacheKeyStudentList, 1, 0))
	require.NoError(t, svc.Set(ctx, studentClassesCacheKey("s1"), 1, 0))
	require.NoError(t, svc.Set(ctx, studentClassesCacheKey("s2"), 1, 0))
	require.NoError(t, svc.Set(ctx, classStudentsCacheKey("c1"), 1, 0))

	svc.Invalidate(ctx, cacheKeyStudentList, cachePatternStudentClasses)
	assert.NotContains(t, repo.entries, cacheKeyStudentList)
	assert.NotContains(t, repo.entries, studentClassesCacheKey("s1"))
	assert.NotContains(t, repo.entries, studentClassesCacheKey("s2"))
	assert.Contains(t, repo.entries, classStudentsCacheKey("c1"))
}
