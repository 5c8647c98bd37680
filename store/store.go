// Package store defines the persistence gateway consumed by the
// service layer. Each repository exposes exactly the query shapes the
// services need; entities stay plain structs with no query capability
// of their own.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/counselbook/counsel-booking/models"
)

// ErrNotFound is returned by every Find* method when no row matches.
var ErrNotFound = errors.New("store: record not found")

type CounselorRepo interface {
	Create(ctx context.Context, c *models.Counselor) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Counselor, error)
	FindByEmail(ctx context.Context, email string) (*models.Counselor, error)
	Save(ctx context.Context, c *models.Counselor) error
	Count(ctx context.Context) (int64, error)
}

type ScheduleRepo interface {
	Create(ctx context.Context, s *models.Schedule) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Schedule, error)
	// FindByIDForUpdate fetches the schedule under an exclusive row
	// lock (SELECT ... FOR UPDATE). Only meaningful inside
	// Store.InTransaction; it is the single intentional blocking point
	// of the system.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Schedule, error)
	// Exists reports whether the counselor already has a schedule at
	// the given date and start time.
	Exists(ctx context.Context, counselorID uuid.UUID, date, startTime string) (bool, error)
	ListByCounselor(ctx context.Context, counselorID uuid.UUID, startDate, endDate string) ([]models.Schedule, error)
	ListByCounselorAndDate(ctx context.Context, counselorID uuid.UUID, date string) ([]models.Schedule, error)
	Save(ctx context.Context, s *models.Schedule) error
	Delete(ctx context.Context, s *models.Schedule) error
}

type BookingRepo interface {
	Create(ctx context.Context, b *models.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	// CountActive counts bookings for the schedule whose status is not
	// cancelled — the capacity-check query. Inside a transaction that
	// holds the schedule's row lock it sees a consistent snapshot.
	CountActive(ctx context.Context, scheduleID uuid.UUID) (int64, error)
	ListForCounselor(ctx context.Context, counselorID uuid.UUID, scheduleID *uuid.UUID, status models.BookingStatus) ([]models.Booking, error)
	Save(ctx context.Context, b *models.Booking) error
}

type InvitationRepo interface {
	Create(ctx context.Context, inv *models.InvitationLink) error
	FindByToken(ctx context.Context, token string) (*models.InvitationLink, error)
	// Consume sets is_used = true for the token only if it is still
	// unused, and reports whether this call won the flip. Called
	// inside the booking transaction; a false return means another
	// booking consumed the token first.
	Consume(ctx context.Context, token string) (bool, error)
	ListByCounselor(ctx context.Context, counselorID uuid.UUID) ([]models.InvitationLink, error)
}

type RecordRepo interface {
	Create(ctx context.Context, r *models.ConsultationRecord) error
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*models.ConsultationRecord, error)
	Save(ctx context.Context, r *models.ConsultationRecord) error
}

// Store bundles the repositories and provides transactional scope.
type Store interface {
	Counselors() CounselorRepo
	Schedules() ScheduleRepo
	Bookings() BookingRepo
	Invitations() InvitationRepo
	Records() RecordRepo
	// InTransaction runs fn against a Store whose repositories share
	// one transaction. fn returning an error rolls everything back.
	InTransaction(ctx context.Context, fn func(Store) error) error
}
