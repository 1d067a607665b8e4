package models

import (
	"fmt"
	"strings"
	"time"
)

// SchedulingPolicy is the immutable clinic calendar every planner consumes.
// It is built once from configuration and passed explicitly; planners never
// mutate it.
type SchedulingPolicy struct {
	workingDays         map[time.Weekday]bool
	openMinutes         int
	closeMinutes        int
	lunchStartMinutes   int
	lunchEndMinutes     int
	bufferMinutes       int
	firstBookable       int
	lastBookable        int
	slotIntervalMinutes int
	defaultVisitMinutes int
}

var weekdayNames = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// PolicyParams carries the raw calendar values a policy is built from.
type PolicyParams struct {
	WorkingDays         []string
	OpenTime            string
	CloseTime           string
	LunchStart          string
	LunchEnd            string
	BufferMinutes       int
	FirstBookable       string
	LastBookable        string
	SlotIntervalMinutes int
	DefaultVisitMinutes int
}

// NewSchedulingPolicy validates and freezes a policy.
func NewSchedulingPolicy(params PolicyParams) (*SchedulingPolicy, error) {
	days := make(map[time.Weekday]bool, len(params.WorkingDays))
	for _, name := range params.WorkingDays {
		day, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("unknown working day %q", name)
		}
		days[day] = true
	}
	if len(days) == 0 {
		return nil, fmt.Errorf("at least one working day is required")
	}

	open, err := ParseClock(params.OpenTime)
	if err != nil {
		return nil, fmt.Errorf("invalid open time: %w", err)
	}
	close, err := ParseClock(params.CloseTime)
	if err != nil {
		return nil, fmt.Errorf("invalid close time: %w", err)
	}
	if close <= open {
		return nil, fmt.Errorf("close time must be after open time")
	}
	lunchStart, err := ParseClock(params.LunchStart)
	if err != nil {
		return nil, fmt.Errorf("invalid lunch start: %w", err)
	}
	lunchEnd, err := ParseClock(params.LunchEnd)
	if err != nil {
		return nil, fmt.Errorf("invalid lunch end: %w", err)
	}
	if lunchEnd < lunchStart {
		return nil, fmt.Errorf("lunch end must not precede lunch start")
	}

	first := open
	if params.FirstBookable != "" {
		if first, err = ParseClock(params.FirstBookable); err != nil {
			return nil, fmt.Errorf("invalid first bookable time: %w", err)
		}
	}
	last := close
	if params.LastBookable != "" {
		if last, err = ParseClock(params.LastBookable); err != nil {
			return nil, fmt.Errorf("invalid last bookable time: %w", err)
		}
	}

	interval := params.SlotIntervalMinutes
	if interval <= 0 {
		interval = 30
	}
	visit := params.DefaultVisitMinutes
	if visit <= 0 {
		visit = 60
	}
	buffer := params.BufferMinutes
	if buffer < 0 {
		buffer = 0
	}

	return &SchedulingPolicy{
		workingDays:         days,
		openMinutes:         open,
		closeMinutes:        close,
		lunchStartMinutes:   lunchStart,
		lunchEndMinutes:     lunchEnd,
		bufferMinutes:       buffer,
		firstBookable:       first,
		lastBookable:        last,
		slotIntervalMinutes: interval,
		defaultVisitMinutes: visit,
	}, nil
}

// IsWorkingDay reports whether the clinic is open on the given date.
func (p *SchedulingPolicy) IsWorkingDay(t time.Time) bool {
	return p.workingDays[t.Weekday()]
}

func (p *SchedulingPolicy) OpenMinutes() int         { return p.openMinutes }
func (p *SchedulingPolicy) CloseMinutes() int        { return p.closeMinutes }
func (p *SchedulingPolicy) LunchStartMinutes() int   { return p.lunchStartMinutes }
func (p *SchedulingPolicy) LunchEndMinutes() int     { return p.lunchEndMinutes }
func (p *SchedulingPolicy) BufferMinutes() int       { return p.bufferMinutes }
func (p *SchedulingPolicy) FirstBookableMinutes() int { return p.firstBookable }
func (p *SchedulingPolicy) LastBookableMinutes() int  { return p.lastBookable }
func (p *SchedulingPolicy) SlotIntervalMinutes() int  { return p.slotIntervalMinutes }
func (p *SchedulingPolicy) DefaultVisitMinutes() int  { return p.defaultVisitMinutes }

// Summary renders the human-readable policy digest shared with the oracle.
func (p *SchedulingPolicy) Summary() string {
	names := make([]string, 0, len(p.workingDays))
	for day := time.Monday; day <= time.Saturday; day++ {
		if p.workingDays[day] {
			names = append(names, strings.ToLower(day.String()))
		}
	}
	if p.workingDays[time.Sunday] {
		names = append(names, "sunday")
	}
	return fmt.Sprintf("working days %s, hours %s-%s, lunch %s-%s, buffer %d min",
		strings.Join(names, "/"),
		FormatClock(p.openMinutes), FormatClock(p.closeMinutes),
		FormatClock(p.lunchStartMinutes), FormatClock(p.lunchEndMinutes),
		p.bufferMinutes)
}

// ParseClock converts an "HH:MM" string into minutes since midnight.
func ParseClock(raw string) (int, error) {
	t, err := time.Parse(TimeLayout, strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("parse clock %q: %w", raw, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock renders minutes since midnight as "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
