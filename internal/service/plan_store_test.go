package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ncaillard/dentoplan-api/internal/models"
	appErrors "github.com/ncaillard/dentoplan-api/pkg/errors"
)

func samplePlan() *models.ReschedulePlan {
	return &models.ReschedulePlan{
		ID: "plan-1",
		Decisions: []models.SchedulingDecision{
			{AppointmentID: "a1", ProposedDate: "2025-03-12", ProposedTime: "10:00", Status: models.DecisionReady},
		},
		Stats:          models.PlanStats{Total: 1, Successful: 1},
		ExecutionReady: true,
		CreatedAt:      time.Now().UTC(),
	}
}

func TestRedisPlanStoreRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisPlanStore(client, time.Minute)

	require.NoError(t, store.Save(context.Background(), samplePlan()))

	got, err := store.Get(context.Background(), "plan-1")
	require.NoError(t, err)
	assert.Equal(t, "plan-1", got.ID)
	require.Len(t, got.Decisions, 1)
	assert.Equal(t, models.DecisionReady, got.Decisions[0].Status)

	require.NoError(t, store.Delete(context.Background(), "plan-1"))
	_, err = store.Get(context.Background(), "plan-1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestRedisPlanStoreExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisPlanStore(client, time.Minute)

	require.NoError(t, store.Save(context.Background(), samplePlan()))
	mr.FastForward(2 * time.Minute)

	_, err := store.Get(context.Background(), "plan-1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestMemoryPlanStoreRoundTrip(t *testing.T) {
	store := NewMemoryPlanStore(time.Minute)

	require.NoError(t, store.Save(context.Background(), samplePlan()))
	got, err := store.Get(context.Background(), "plan-1")
	require.NoError(t, err)
	assert.True(t, got.ExecutionReady)

	require.NoError(t, store.Delete(context.Background(), "plan-1"))
	_, err = store.Get(context.Background(), "plan-1")
	assert.Error(t, err)
}

func TestMemoryPlanStoreMiss(t *testing.T) {
	store := NewMemoryPlanStore(time.Minute)
	_, err := store.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
