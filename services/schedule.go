package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/google/uuid"

	"github.com/counselbook/counsel-booking/models"
	"github.com/counselbook/counsel-booking/store"
	"github.com/counselbook/counsel-booking/utils"
)

// AvailabilityCache is an optional read-through cache for the
// availability listing. The cached view is eventually consistent; the
// authoritative capacity check happens only inside the booking
// transaction.
type AvailabilityCache interface {
	Get(ctx context.Context, counselorID uuid.UUID, date string) ([]AvailableSlot, bool)
	Set(ctx context.Context, counselorID uuid.UUID, date string, slots []AvailableSlot)
	Invalidate(ctx context.Context, counselorID uuid.UUID)
}

type ScheduleService struct {
	store store.Store
	cache AvailabilityCache
}

func NewScheduleService(st store.Store, cache AvailabilityCache) *ScheduleService {
	return &ScheduleService{store: st, cache: cache}
}

var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

type ScheduleView struct {
	ID              uuid.UUID `json:"id"`
	Date            string    `json:"date"`
	StartTime       string    `json:"start_time"`
	EndTime         string    `json:"end_time"`
	MaxCapacity     int       `json:"max_capacity"`
	CurrentBookings int64     `json:"current_bookings"`
}

type AvailableSlot struct {
	ID             uuid.UUID `json:"id"`
	Date           string    `json:"date"`
	StartTime      string    `json:"start_time"`
	EndTime        string    `json:"end_time"`
	Available      bool      `json:"available"`
	RemainingSlots int       `json:"remaining_slots"`
}

// List returns the counselor's schedules with their active booking
// counts, optionally bounded to a date range.
func (s *ScheduleService) List(ctx context.Context, counselorID uuid.UUID, startDate, endDate string) ([]ScheduleView, error) {
	schedules, err := s.store.Schedules().ListByCounselor(ctx, counselorID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	out := make([]ScheduleView, 0, len(schedules))
	for _, sch := range schedules {
		active, err := s.store.Bookings().CountActive(ctx, sch.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, ScheduleView{
			ID:              sch.ID,
			Date:            sch.Date,
			StartTime:       sch.StartTime,
			EndTime:         sch.EndTime,
			MaxCapacity:     sch.MaxCapacity,
			CurrentBookings: active,
		})
	}
	return out, nil
}

// Create registers a new slot. The end time is always derived from the
// start time plus the fixed slot length; slots that would cross
// midnight are rejected rather than rolled into the next day.
// Duplicate (counselor, date, start) pairs conflict — a pre-check
// backed by the unique index, not the row lock: schedule creation is a
// counselor-private, low-contention operation.
func (s *ScheduleService) Create(ctx context.Context, counselorID uuid.UUID, date, startTime string) (*models.Schedule, error) {
	if !dateRe.MatchString(date) {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}
	endTime, err := utils.SlotEndTime(startTime, models.SlotDuration)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	exists, err := s.store.Schedules().Exists(ctx, counselorID, date, startTime)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateSchedule
	}

	schedule := models.Schedule{
		CounselorID: counselorID,
		Date:        date,
		StartTime:   startTime,
		EndTime:     endTime,
		MaxCapacity: models.DefaultMaxCapacity,
	}
	if err := s.store.Schedules().Create(ctx, &schedule); err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, counselorID)
	}
	return &schedule, nil
}

// Update mutates an owned schedule. The not-found check runs before the
// ownership comparison so a counselor probing foreign IDs learns only
// that the ID is unknown to them, in the right order.
func (s *ScheduleService) Update(ctx context.Context, counselorID, id uuid.UUID, date, startTime string) (*models.Schedule, error) {
	schedule, err := s.store.Schedules().FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}
	if schedule.CounselorID != counselorID {
		return nil, ErrNotOwner
	}

	if date != "" {
		if !dateRe.MatchString(date) {
			return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
		}
		schedule.Date = date
	}
	if startTime != "" {
		endTime, err := utils.SlotEndTime(startTime, models.SlotDuration)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		schedule.StartTime = startTime
		schedule.EndTime = endTime
	}

	if err := s.store.Schedules().Save(ctx, schedule); err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, counselorID)
	}
	return schedule, nil
}

// Remove deletes an owned schedule; its bookings cascade with it.
func (s *ScheduleService) Remove(ctx context.Context, counselorID, id uuid.UUID) error {
	schedule, err := s.store.Schedules().FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrScheduleNotFound
		}
		return err
	}
	if schedule.CounselorID != counselorID {
		return ErrNotOwner
	}
	if err := s.store.Schedules().Delete(ctx, schedule); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, counselorID)
	}
	return nil
}

// FindAvailable is the read-only view clients use to pick a slot. It
// takes no locks; remaining capacity may be stale by the time the
// booking is submitted, which Create resolves authoritatively.
func (s *ScheduleService) FindAvailable(ctx context.Context, counselorID uuid.UUID, date string) ([]AvailableSlot, error) {
	if s.cache != nil {
		if slots, ok := s.cache.Get(ctx, counselorID, date); ok {
			return slots, nil
		}
	}

	schedules, err := s.store.Schedules().ListByCounselorAndDate(ctx, counselorID, date)
	if err != nil {
		return nil, err
	}
	slots := make([]AvailableSlot, 0, len(schedules))
	for _, sch := range schedules {
		active, err := s.store.Bookings().CountActive(ctx, sch.ID)
		if err != nil {
			return nil, err
		}
		slots = append(slots, AvailableSlot{
			ID:             sch.ID,
			Date:           sch.Date,
			StartTime:      sch.StartTime,
			EndTime:        sch.EndTime,
			Available:      active < int64(sch.MaxCapacity),
			RemainingSlots: sch.MaxCapacity - int(active),
		})
	}

	if s.cache != nil {
		s.cache.Set(ctx, counselorID, date, slots)
	}
	return slots, nil
}
