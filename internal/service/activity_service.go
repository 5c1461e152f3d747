package service

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/medicine-service/internal/domain"
	"github.com/spec-kit/medicine-service/internal/repository"
	apperrors "github.com/spec-kit/medicine-service/pkg/util"
)

const (
	activityFetchPerSource = 10
	activityFeedSize       = 10
	activityCacheKey       = "activity:feed"
	activityCacheTTL       = 30 * time.Second
)

// ActivityService builds the recent-activity feed from user and medicine
// timestamps. Read-only; results are cached briefly in Redis.
type ActivityService struct {
	users     repository.UserRepository
	medicines repository.MedicineRepository
	cache     *redis.Client
	logger    *zap.Logger
}

// NewActivityService builds the service. cache may be nil.
func NewActivityService(users repository.UserRepository, medicines repository.MedicineRepository, cache *redis.Client, logger *zap.Logger) *ActivityService {
	return &ActivityService{users: users, medicines: medicines, cache: cache, logger: logger}
}

// Feed returns the merged, most-recent-first activity entries.
func (s *ActivityService) Feed(ctx context.Context) ([]domain.ActivityEntry, error) {
	if cached, ok := s.fromCache(ctx); ok {
		return cached, nil
	}

	users, err := s.users.ListRecent(ctx, activityFetchPerSource)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	meds, err := s.medicines.ListRecent(ctx, activityFetchPerSource)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	entries := make([]domain.ActivityEntry, 0, len(users)+len(meds))
	for i := range users {
		u := &users[i]
		entries = append(entries, domain.ActivityEntry{
			Kind:      domain.ActivityKindUser,
			Action:    classify(u.CreatedAt, u.UpdatedAt),
			EntityID:  u.ID,
			Label:     u.Username,
			Timestamp: u.UpdatedAt,
		})
	}
	for i := range meds {
		m := &meds[i]
		entries = append(entries, domain.ActivityEntry{
			Kind:      domain.ActivityKindMedicine,
			Action:    classify(m.CreatedAt, m.UpdatedAt),
			EntityID:  m.ID,
			Label:     m.Name,
			Timestamp: m.UpdatedAt,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})
	if len(entries) > activityFeedSize {
		entries = entries[:activityFeedSize]
	}

	s.toCache(ctx, entries)
	return entries, nil
}

// classify tags a record as created when it has never been touched since
// insertion, updated otherwise.
func classify(createdAt, updatedAt time.Time) domain.ActivityAction {
	if updatedAt.Equal(createdAt) {
		return domain.ActivityActionCreated
	}
	return domain.ActivityActionUpdated
}

func (s *ActivityService) fromCache(ctx context.Context) ([]domain.ActivityEntry, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, activityCacheKey).Result()
	if err != nil {
		return nil, false
	}
	var entries []domain.ActivityEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, false
	}
	return entries, true
}

func (s *ActivityService) toCache(ctx context.Context, entries []domain.ActivityEntry) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, activityCacheKey, raw, activityCacheTTL).Err(); err != nil && s.logger != nil {
		s.logger.Debug("activity cache write failed", zap.Error(err))
	}
}
