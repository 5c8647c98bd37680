package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/counselbook/counsel-booking/models"
	"github.com/counselbook/counsel-booking/store"
)

// RecordService manages post-session notes. It sits outside the
// concurrency-critical core: records are written after the fact,
// one per booking.
type RecordService struct {
	store store.Store
}

func NewRecordService(st store.Store) *RecordService {
	return &RecordService{store: st}
}

func (s *RecordService) ownedBooking(ctx context.Context, counselorID, bookingID uuid.UUID) (*models.Booking, error) {
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
	return b, nil
}

// Create attaches notes to a booking. At most one record per booking.
func (s *RecordService) Create(ctx context.Context, counselorID, bookingID uuid.UUID, notes string) (*models.ConsultationRecord, error) {
	if notes == "" {
		return nil, fmt.Errorf("%w: notes are required", ErrInvalidInput)
	}
	if _, err := s.ownedBooking(ctx, counselorID, bookingID); err != nil {
		return nil, err
	}

	if _, err := s.store.Records().FindByBookingID(ctx, bookingID); err == nil {
		return nil, ErrRecordExists
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	rec := models.ConsultationRecord{
		BookingID: bookingID,
		Notes:     notes,
	}
	if err := s.store.Records().Create(ctx, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Update replaces the notes of an existing record.
func (s *RecordService) Update(ctx context.Context, counselorID, bookingID uuid.UUID, notes string) (*models.ConsultationRecord, error) {
	if notes == "" {
		return nil, fmt.Errorf("%w: notes are required", ErrInvalidInput)
	}
	if _, err := s.ownedBooking(ctx, counselorID, bookingID); err != nil {
		return nil, err
	}

	rec, err := s.store.Records().FindByBookingID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	rec.Notes = notes
	if err := s.store.Records().Save(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Get fetches the record attached to a booking.
func (s *RecordService) Get(ctx context.Context, counselorID, bookingID uuid.UUID) (*models.ConsultationRecord, error) {
	if _, err := s.ownedBooking(ctx, counselorID, bookingID); err != nil {
		return nil, err
	}
	rec, err := s.store.Records().FindByBookingID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return rec, nil
}
