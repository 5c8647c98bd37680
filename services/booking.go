package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/counselbook/counsel-booking/models"
	"github.com/counselbook/counsel-booking/store"
)

// BookingService is the booking engine. Create is the concurrency
// critical path of the whole system: it must never let the count of
// non-cancelled bookings on a schedule exceed its capacity, and it must
// consume an invitation token at most once, no matter how many requests
// race.
type BookingService struct {
	store store.Store
	cache AvailabilityCache
}

func NewBookingService(st store.Store, cache AvailabilityCache) *BookingService {
	return &BookingService{store: st, cache: cache}
}

type CreateBookingInput struct {
	ScheduleID  uuid.UUID
	Token       string
	ClientName  string
	ClientEmail string
	ClientPhone *string
}

type BookingResult struct {
	ID         uuid.UUID            `json:"id"`
	ScheduleID uuid.UUID            `json:"schedule_id"`
	ClientName string               `json:"client_name"`
	Status     models.BookingStatus `json:"status"`
}

// Create reserves a slot. Token checks run read-only before the
// transaction: token misuse is a client error, not a race needing the
// lock, and single-use is re-enforced atomically at the consume step.
//
// The critical section is one transaction: lock the schedule row,
// count active bookings under the lock, insert, consume the token,
// commit. The row lock serializes attempts against the same schedule;
// unrelated schedules never block each other.
func (s *BookingService) Create(ctx context.Context, in CreateBookingInput) (*BookingResult, error) {
	if in.ClientName == "" || in.ClientEmail == "" {
		return nil, fmt.Errorf("%w: client name and email are required", ErrInvalidInput)
	}

	inv, err := s.store.Invitations().FindByToken(ctx, in.Token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	if inv.Expired(time.Now()) {
		return nil, ErrTokenExpired
	}
	if inv.IsUsed {
		return nil, ErrTokenAlreadyUsed
	}

	var booking models.Booking
	err = s.store.InTransaction(ctx, func(tx store.Store) error {
		schedule, err := tx.Schedules().FindByIDForUpdate(ctx, in.ScheduleID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrScheduleNotFound
			}
			return err
		}

		active, err := tx.Bookings().CountActive(ctx, schedule.ID)
		if err != nil {
			return err
		}
		if active >= int64(schedule.MaxCapacity) {
			return ErrSlotFull
		}

		booking = models.Booking{
			ScheduleID:  schedule.ID,
			ClientName:  in.ClientName,
			ClientEmail: in.ClientEmail,
			ClientPhone: in.ClientPhone,
			Status:      models.StatusConfirmed,
		}
		if err := tx.Bookings().Create(ctx, &booking); err != nil {
			return err
		}

		consumed, err := tx.Invitations().Consume(ctx, in.Token)
		if err != nil {
			return err
		}
		if !consumed {
			// A racing booking consumed the token between our
			// pre-check and this point. Roll everything back.
			return ErrTokenAlreadyUsed
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, inv.CounselorID)
	}

	return &BookingResult{
		ID:         booking.ID,
		ScheduleID: booking.ScheduleID,
		ClientName: booking.ClientName,
		Status:     booking.Status,
	}, nil
}

// List returns bookings across the counselor's schedules, optionally
// narrowed to one schedule or one status, ordered by slot date and
// start time.
func (s *BookingService) List(ctx context.Context, counselorID uuid.UUID, scheduleID *uuid.UUID, status models.BookingStatus) ([]models.Booking, error) {
	if status != "" && !models.ValidBookingStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}
	return s.store.Bookings().ListForCounselor(ctx, counselorID, scheduleID, status)
}

// Get fetches one booking with its schedule and consultation record.
func (s *BookingService) Get(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	b, err := s.store.Bookings().FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

// UpdateStatus moves a booking through its lifecycle on behalf of the
// owning counselor. Cancelling a booking frees a slot: the capacity
// count excludes cancelled bookings, so the next Create against the
// schedule will see the freed seat.
func (s *BookingService) UpdateStatus(ctx context.Context, counselorID, bookingID uuid.UUID, next models.BookingStatus) (*models.Booking, error) {
	if !models.ValidBookingStatus(next) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, next)
	}

	b, err := s.store.Bookings().FindByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	schedule, err := s.store.Schedules().FindByID(ctx, b.ScheduleID)
	if err != nil {
		return nil, err
	}
	if schedule.CounselorID != counselorID {
		return nil, ErrNotOwner
	}

	if err := b.CanTransition(next); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	b.Status = next
	if err := s.store.Bookings().Save(ctx, b); err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, schedule.CounselorID)
	}
	return b, nil
}
