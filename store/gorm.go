package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/counselbook/counsel-booking/models"
)

// GormStore implements Store on a *gorm.DB. InTransaction hands fn a
// GormStore bound to the transaction handle, so the same repository
// code runs inside and outside transactions.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Counselors() CounselorRepo   { return gormCounselors{s.db} }
func (s *GormStore) Schedules() ScheduleRepo     { return gormSchedules{s.db} }
func (s *GormStore) Bookings() BookingRepo       { return gormBookings{s.db} }
func (s *GormStore) Invitations() InvitationRepo { return gormInvitations{s.db} }
func (s *GormStore) Records() RecordRepo         { return gormRecords{s.db} }

func (s *GormStore) InTransaction(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

type gormCounselors struct{ db *gorm.DB }

func (r gormCounselors) Create(ctx context.Context, c *models.Counselor) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r gormCounselors) FindByID(ctx context.Context, id uuid.UUID) (*models.Counselor, error) {
	var c models.Counselor
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r gormCounselors) FindByEmail(ctx context.Context, email string) (*models.Counselor, error) {
	var c models.Counselor
	if err := r.db.WithContext(ctx).First(&c, "email = ?", email).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r gormCounselors) Save(ctx context.Context, c *models.Counselor) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r gormCounselors) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Counselor{}).Count(&n).Error
	return n, err
}

type gormSchedules struct{ db *gorm.DB }

func (r gormSchedules) Create(ctx context.Context, s *models.Schedule) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r gormSchedules) FindByID(ctx context.Context, id uuid.UUID) (*models.Schedule, error) {
	var s models.Schedule
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

func (r gormSchedules) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Schedule, error) {
	var s models.Schedule
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&s, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

func (r gormSchedules) Exists(ctx context.Context, counselorID uuid.UUID, date, startTime string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Schedule{}).
		Where("counselor_id = ? AND date = ? AND start_time = ?", counselorID, date, startTime).
		Count(&n).Error
	return n > 0, err
}

func (r gormSchedules) ListByCounselor(ctx context.Context, counselorID uuid.UUID, startDate, endDate string) ([]models.Schedule, error) {
	q := r.db.WithContext(ctx).Where("counselor_id = ?", counselorID)
	if startDate != "" && endDate != "" {
		q = q.Where("date BETWEEN ? AND ?", startDate, endDate)
	}
	var out []models.Schedule
	err := q.Order("date ASC, start_time ASC").Find(&out).Error
	return out, err
}

func (r gormSchedules) ListByCounselorAndDate(ctx context.Context, counselorID uuid.UUID, date string) ([]models.Schedule, error) {
	q := r.db.WithContext(ctx).Where("counselor_id = ?", counselorID)
	if date != "" {
		q = q.Where("date = ?", date)
	}
	var out []models.Schedule
	err := q.Order("date ASC, start_time ASC").Find(&out).Error
	return out, err
}

func (r gormSchedules) Save(ctx context.Context, s *models.Schedule) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r gormSchedules) Delete(ctx context.Context, s *models.Schedule) error {
	// Bookings cascade with their schedule.
	if err := r.db.WithContext(ctx).Where("schedule_id = ?", s.ID).Delete(&models.Booking{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(s).Error
}

type gormBookings struct{ db *gorm.DB }

func (r gormBookings) Create(ctx context.Context, b *models.Booking) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r gormBookings) FindByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	var b models.Booking
	err := r.db.WithContext(ctx).
		Preload("Schedule").Preload("ConsultationRecord").
		First(&b, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &b, nil
}

func (r gormBookings) CountActive(ctx context.Context, scheduleID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Booking{}).
		Where("schedule_id = ? AND status <> ?", scheduleID, models.StatusCancelled).
		Count(&n).Error
	return n, err
}

func (r gormBookings) ListForCounselor(ctx context.Context, counselorID uuid.UUID, scheduleID *uuid.UUID, status models.BookingStatus) ([]models.Booking, error) {
	q := r.db.WithContext(ctx).Model(&models.Booking{}).
		Joins("JOIN schedules ON schedules.id = bookings.schedule_id").
		Where("schedules.counselor_id = ?", counselorID).
		Preload("Schedule")
	if scheduleID != nil {
		q = q.Where("bookings.schedule_id = ?", *scheduleID)
	}
	if status != "" {
		q = q.Where("bookings.status = ?", status)
	}
	var out []models.Booking
	err := q.Order("schedules.date ASC, schedules.start_time ASC").Find(&out).Error
	return out, err
}

func (r gormBookings) Save(ctx context.Context, b *models.Booking) error {
	return r.db.WithContext(ctx).Save(b).Error
}

type gormInvitations struct{ db *gorm.DB }

func (r gormInvitations) Create(ctx context.Context, inv *models.InvitationLink) error {
	return r.db.WithContext(ctx).Create(inv).Error
}

func (r gormInvitations) FindByToken(ctx context.Context, token string) (*models.InvitationLink, error) {
	var inv models.InvitationLink
	err := r.db.WithContext(ctx).Preload("Counselor").First(&inv, "token = ?", token).Error
	if err != nil {
		return nil, translate(err)
	}
	return &inv, nil
}

func (r gormInvitations) Consume(ctx context.Context, token string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.InvitationLink{}).
		Where("token = ? AND is_used = ?", token, false).
		Update("is_used", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r gormInvitations) ListByCounselor(ctx context.Context, counselorID uuid.UUID) ([]models.InvitationLink, error) {
	var out []models.InvitationLink
	err := r.db.WithContext(ctx).
		Where("counselor_id = ?", counselorID).
		Order("created_at DESC").Find(&out).Error
	return out, err
}

type gormRecords struct{ db *gorm.DB }

func (r gormRecords) Create(ctx context.Context, rec *models.ConsultationRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r gormRecords) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*models.ConsultationRecord, error) {
	var rec models.ConsultationRecord
	if err := r.db.WithContext(ctx).First(&rec, "booking_id = ?", bookingID).Error; err != nil {
		return nil, translate(err)
	}
	return &rec, nil
}

func (r gormRecords) Save(ctx context.Context, rec *models.ConsultationRecord) error {
	return r.db.WithContext(ctx).Save(rec).Error
}
