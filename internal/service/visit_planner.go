package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ncaillard/dentoplan-api/internal/models"
	appErrors "github.com/ncaillard/dentoplan-api/pkg/errors"
)

type slotFinder interface {
	FreeSlots(ctx context.Context, date string, durationMinutes int) ([]string, error)
}

// VisitPlanner places a single visit near a target date, honouring the
// category's timing preference. The search is bounded: after the configured
// number of day advances it gives up with an unplaced decision instead of
// scanning the calendar forever.
type VisitPlanner struct {
	slots          slotFinder
	policy         *models.SchedulingPolicy
	maxDayAdvances int
	logger         *zap.Logger
}

// NewVisitPlanner wires the single-visit search.
func NewVisitPlanner(slots slotFinder, policy *models.SchedulingPolicy, maxDayAdvances int, logger *zap.Logger) *VisitPlanner {
	if maxDayAdvances <= 0 {
		maxDayAdvances = 14
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VisitPlanner{slots: slots, policy: policy, maxDayAdvances: maxDayAdvances, logger: logger}
}

// PlanVisitRequest describes one visit to place.
type PlanVisitRequest struct {
	TargetDate      time.Time
	DurationMinutes int
	Classification  models.TreatmentClassification
	// PreferredTime overrides the classification's preference when set.
	PreferredTime models.TimePreference
}

// PlanVisit finds the best available slot at or after the target date. The
// returned decision is never executed here; callers persist it themselves.
func (p *VisitPlanner) PlanVisit(ctx context.Context, req PlanVisitRequest) (*models.SchedulingDecision, error) {
	if req.DurationMinutes <= 0 {
		req.DurationMinutes = p.policy.DefaultVisitMinutes()
	}
	preference := req.Classification.PreferredTime
	if req.PreferredTime != "" {
		preference = req.PreferredTime
	}
	anchor := p.anchorMinutes(preference)

	candidate := req.TargetDate
	// Only queried working days count against the budget; skipping a closed
	// day or a Friday surgery still leaves the full number of attempts.
	for attempts := 0; attempts <= p.maxDayAdvances; {
		if !p.policy.IsWorkingDay(candidate) {
			candidate = candidate.AddDate(0, 0, 1)
			continue
		}
		if req.Classification.AvoidFriday && candidate.Weekday() == time.Friday {
			// Surgical visits skip Friday so post-operative issues do not
			// land on a closed weekend; the jump reaches Monday directly.
			candidate = candidate.AddDate(0, 0, 3)
			continue
		}

		date := candidate.Format(models.DateLayout)
		slots, err := p.slots.FreeSlots(ctx, date, req.DurationMinutes)
		if err != nil {
			return nil, err
		}
		if len(slots) == 0 {
			attempts++
			candidate = candidate.AddDate(0, 0, 1)
			continue
		}

		best, err := closestSlot(slots, anchor)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "select slot")
		}
		shifted := daysBetween(req.TargetDate, candidate)
		return &models.SchedulingDecision{
			ProposedDate: date,
			ProposedTime: best,
			Confidence:   confidenceForShift(shifted),
			Rationale:    placementRationale(preference, shifted),
			Status:       models.DecisionProposed,
		}, nil
	}

	p.logger.Info("no slot found within search window",
		zap.String("target_date", req.TargetDate.Format(models.DateLayout)),
		zap.Int("max_day_advances", p.maxDayAdvances))
	return &models.SchedulingDecision{
		Confidence: 0,
		Rationale:  fmt.Sprintf("no availability within %d days of target", p.maxDayAdvances),
		Status:     models.DecisionNoSlots,
	}, nil
}

func (p *VisitPlanner) anchorMinutes(preference models.TimePreference) int {
	switch preference {
	case models.PreferMorning:
		return p.policy.OpenMinutes()
	case models.PreferAfternoon:
		return p.policy.LunchEndMinutes() + 60
	default:
		return p.policy.OpenMinutes()
	}
}

// closestSlot picks the slot nearest the anchor; ties keep the earlier time.
func closestSlot(slots []string, anchor int) (string, error) {
	best := ""
	bestDistance := 0
	for _, slot := range slots {
		minutes, err := models.ParseClock(slot)
		if err != nil {
			return "", err
		}
		distance := minutes - anchor
		if distance < 0 {
			distance = -distance
		}
		if best == "" || distance < bestDistance {
			best = slot
			bestDistance = distance
		}
	}
	return best, nil
}

func confidenceForShift(days int) float64 {
	confidence := 1.0 - 0.05*float64(days)
	if confidence < 0.3 {
		return 0.3
	}
	return confidence
}

func placementRationale(preference models.TimePreference, shifted int) string {
	window := "first available window"
	switch preference {
	case models.PreferMorning:
		window = "preferred morning window"
	case models.PreferAfternoon:
		window = "preferred afternoon window"
	}
	if shifted == 0 {
		return "placed on target date in " + window
	}
	return fmt.Sprintf("shifted %d day(s) from target to reach %s", shifted, window)
}

func daysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}
