package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ncaillard/dentoplan-api/internal/models"
	appErrors "github.com/ncaillard/dentoplan-api/pkg/errors"
)

// PlanStore holds pending reschedule plans between planning and approval.
// Plans expire: an unapproved plan older than the TTL is gone and must be
// regenerated against fresh availability.
type PlanStore interface {
	Save(ctx context.Context, plan *models.ReschedulePlan) error
	Get(ctx context.Context, id string) (*models.ReschedulePlan, error)
	Delete(ctx context.Context, id string) error
}

const planKeyPrefix = "dentoplan:plan:"

// RedisPlanStore keeps pending plans in Redis so approval can arrive on any
// API instance.
type RedisPlanStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisPlanStore constructs a Redis-backed plan store.
func NewRedisPlanStore(client *redis.Client, ttl time.Duration) *RedisPlanStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &RedisPlanStore{client: client, ttl: ttl}
}

// Save serialises and stores the plan under its ID.
func (s *RedisPlanStore) Save(ctx context.Context, plan *models.ReschedulePlan) error {
	payload, err := json.Marshal(plan)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "marshal plan")
	}
	if err := s.client.Set(ctx, planKeyPrefix+plan.ID, payload, s.ttl).Err(); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "store plan")
	}
	return nil
}

// Get loads a pending plan, returning a not-found error once it has expired.
func (s *RedisPlanStore) Get(ctx context.Context, id string) (*models.ReschedulePlan, error) {
	payload, err := s.client.Get(ctx, planKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "plan not found or expired")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load plan")
	}
	var plan models.ReschedulePlan
	if err := json.Unmarshal(payload, &plan); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "decode plan")
	}
	return &plan, nil
}

// Delete removes a consumed plan.
func (s *RedisPlanStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, planKeyPrefix+id).Err(); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "delete plan")
	}
	return nil
}

// MemoryPlanStore is the single-process fallback used when Redis is not
// configured, and in tests.
type MemoryPlanStore struct {
	mu    sync.RWMutex
	ttl   time.Duration
	plans map[string]memoryPlanEntry
}

type memoryPlanEntry struct {
	plan    models.ReschedulePlan
	expires time.Time
}

// NewMemoryPlanStore constructs an in-memory plan store.
func NewMemoryPlanStore(ttl time.Duration) *MemoryPlanStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &MemoryPlanStore{ttl: ttl, plans: make(map[string]memoryPlanEntry)}
}

// Save stores the plan, evicting any expired entries along the way.
func (s *MemoryPlanStore) Save(_ context.Context, plan *models.ReschedulePlan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, entry := range s.plans {
		if now.After(entry.expires) {
			delete(s.plans, id)
		}
	}
	s.plans[plan.ID] = memoryPlanEntry{plan: *plan, expires: now.Add(s.ttl)}
	return nil
}

// Get returns a copy of the stored plan if it has not expired.
func (s *MemoryPlanStore) Get(_ context.Context, id string) (*models.ReschedulePlan, error) {
	s.mu.RLock()
	entry, ok := s.plans[id]
	s.mu.RUnlock()
	if !ok || time.Now().After(entry.expires) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "plan not found or expired")
	}
	plan := entry.plan
	return &plan, nil
}

// Delete removes a consumed plan.
func (s *MemoryPlanStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.plans, id)
	s.mu.Unlock()
	return nil
}
