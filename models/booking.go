package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// ValidBookingStatus reports whether s is one of the known states.
func ValidBookingStatus(s BookingStatus) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

type Booking struct {
	ID                 uuid.UUID           `json:"id" gorm:"type:uuid;primaryKey"`
	ScheduleID         uuid.UUID           `json:"schedule_id" gorm:"type:uuid;not null;index:idx_bookings_schedule"`
	ClientName         string              `json:"client_name" gorm:"type:varchar(100);not null"`
	ClientEmail        string              `json:"client_email" gorm:"type:varchar(255);not null"`
	ClientPhone        *string             `json:"client_phone,omitempty" gorm:"type:varchar(20)"`
	Status             BookingStatus       `json:"status" gorm:"type:varchar(20);not null;index:idx_bookings_status"`
	Schedule           Schedule            `json:"schedule,omitempty" gorm:"foreignKey:ScheduleID"`
	ConsultationRecord *ConsultationRecord `json:"consultation_record,omitempty" gorm:"foreignKey:BookingID"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.Status == "" {
		b.Status = StatusConfirmed
	}
	return nil
}

// CanTransition validates a status change against the legal moves:
// pending may confirm or cancel, confirmed may complete or cancel,
// cancelled and completed are terminal.
func (b *Booking) CanTransition(next BookingStatus) error {
	switch b.Status {
	case StatusPending:
		if next != StatusConfirmed && next != StatusCancelled {
			return fmt.Errorf("invalid transition from pending to %s", next)
		}
	case StatusConfirmed:
		if next != StatusCompleted && next != StatusCancelled {
			return fmt.Errorf("invalid transition from confirmed to %s", next)
		}
	case StatusCancelled, StatusCompleted:
		return fmt.Errorf("no transitions allowed from %s", b.Status)
	}
	return nil
}
