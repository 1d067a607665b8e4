package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ncaillard/dentoplan-api/internal/dto"
	"github.com/ncaillard/dentoplan-api/internal/models"
	appErrors "github.com/ncaillard/dentoplan-api/pkg/errors"
)

// DayAnalysisService summarises the load of one clinic day so the front desk
// can steer new bookings away from crowded half-days.
type DayAnalysisService struct {
	appointments dayAppointmentLister
	slots        slotFinder
	classifier   *Classifier
	policy       *models.SchedulingPolicy
	logger       *zap.Logger
}

// NewDayAnalysisService constructs the service.
func NewDayAnalysisService(appointments dayAppointmentLister, slots slotFinder, classifier *Classifier, policy *models.SchedulingPolicy, logger *zap.Logger) *DayAnalysisService {
	if classifier == nil {
		classifier = NewClassifier()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DayAnalysisService{
		appointments: appointments,
		slots:        slots,
		classifier:   classifier,
		policy:       policy,
		logger:       logger,
	}
}

// AnalyzeDay reports morning and afternoon load, the heavy-treatment count
// and the remaining default-length slots, with advisory recommendations when
// a half-day is overloaded.
func (s *DayAnalysisService) AnalyzeDay(ctx context.Context, date string) (*dto.ScheduleAnalysisResponse, error) {
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid date")
	}

	booked, err := s.appointments.ListByDate(ctx, date)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load day appointments")
	}

	analysis := &dto.ScheduleAnalysisResponse{
		Date:            date,
		AvailableSlots:  []string{},
		Recommendations: []string{},
	}
	for _, appointment := range booked {
		analysis.TotalAppointments++
		start, err := models.ParseClock(appointment.Time)
		if err != nil {
			continue
		}
		if start < s.policy.LunchStartMinutes() {
			analysis.MorningLoad++
		} else {
			analysis.AfternoonLoad++
		}
		classification := s.classifier.Classify(appointment.Treatment)
		switch classification.Category {
		case models.CategorySurgical, models.CategoryEndodontic:
			analysis.SurgicalCount++
		default:
			analysis.RoutineCount++
		}
	}

	slots, err := s.slots.FreeSlots(ctx, date, s.policy.DefaultVisitMinutes())
	if err != nil {
		return nil, err
	}
	analysis.AvailableSlots = slots

	if analysis.MorningLoad > analysis.AfternoonLoad+2 {
		analysis.Recommendations = append(analysis.Recommendations, "morning is heavily loaded, prefer afternoon bookings")
	}
	if analysis.SurgicalCount >= 3 {
		analysis.Recommendations = append(analysis.Recommendations, "high surgical load, avoid adding surgeries to this day")
	}
	return analysis, nil
}
