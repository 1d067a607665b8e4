package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ncaillard/dentoplan-api/internal/models"
	appErrors "github.com/ncaillard/dentoplan-api/pkg/errors"
)

type dayAppointmentLister interface {
	ListByDate(ctx context.Context, date string) ([]models.Appointment, error)
}

// AvailabilityService computes bookable start times against the clinic
// calendar and the booked appointments. It is a pure read: identical calendar
// state always yields identical slots.
type AvailabilityService struct {
	appointments dayAppointmentLister
	policy       *models.SchedulingPolicy
	logger       *zap.Logger
}

// NewAvailabilityService wires the slot computation.
func NewAvailabilityService(appointments dayAppointmentLister, policy *models.SchedulingPolicy, logger *zap.Logger) *AvailabilityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AvailabilityService{appointments: appointments, policy: policy, logger: logger}
}

// FreeSlots returns every bookable "HH:MM" start on the date for a visit of
// the given length, in ascending order. Non-working days yield an empty list.
func (s *AvailabilityService) FreeSlots(ctx context.Context, date string, durationMinutes int) ([]string, error) {
	day, err := time.Parse(models.DateLayout, date)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, fmt.Sprintf("invalid date %q", date))
	}
	if durationMinutes <= 0 {
		durationMinutes = s.policy.DefaultVisitMinutes()
	}
	if !s.policy.IsWorkingDay(day) {
		return []string{}, nil
	}

	booked, err := s.appointments.ListByDate(ctx, date)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load appointments")
	}

	type interval struct{ start, end int }
	busy := make([]interval, 0, len(booked)+1)
	// Booked visits block their duration plus the practice buffer.
	for _, appointment := range booked {
		start, err := models.ParseClock(appointment.Time)
		if err != nil {
			s.logger.Warn("skipping appointment with invalid time",
				zap.String("appointment_id", appointment.ID),
				zap.String("time", appointment.Time))
			continue
		}
		length := appointment.DurationMinutes
		if length <= 0 {
			length = s.policy.DefaultVisitMinutes()
		}
		busy = append(busy, interval{start: start, end: start + length + s.policy.BufferMinutes()})
	}
	busy = append(busy, interval{start: s.policy.LunchStartMinutes(), end: s.policy.LunchEndMinutes()})

	var slots []string
	for start := s.policy.FirstBookableMinutes(); start <= s.policy.LastBookableMinutes(); start += s.policy.SlotIntervalMinutes() {
		end := start + durationMinutes
		if end > s.policy.CloseMinutes() {
			break
		}
		free := true
		for _, b := range busy {
			if start < b.end && end > b.start {
				free = false
				break
			}
		}
		if free {
			slots = append(slots, models.FormatClock(start))
		}
	}
	if slots == nil {
		slots = []string{}
	}
	return slots, nil
}

// IsSlotFree reports whether the exact start time is currently bookable.
func (s *AvailabilityService) IsSlotFree(ctx context.Context, date, timeOfDay string, durationMinutes int) (bool, error) {
	slots, err := s.FreeSlots(ctx, date, durationMinutes)
	if err != nil {
		return false, err
	}
	for _, slot := range slots {
		if slot == timeOfDay {
			return true, nil
		}
	}
	return false, nil
}

// FreeSlotTable maps each working day in [from, from+days) to its free slots,
// skipping any date in exclude. Days with no capacity are omitted.
func (s *AvailabilityService) FreeSlotTable(ctx context.Context, from time.Time, days, durationMinutes int, exclude map[string]bool) (map[string][]string, error) {
	table := make(map[string][]string)
	for i := 0; i < days; i++ {
		day := from.AddDate(0, 0, i)
		date := day.Format(models.DateLayout)
		if exclude[date] || !s.policy.IsWorkingDay(day) {
			continue
		}
		slots, err := s.FreeSlots(ctx, date, durationMinutes)
		if err != nil {
			return nil, err
		}
		if len(slots) > 0 {
			table[date] = slots
		}
	}
	return table, nil
}
