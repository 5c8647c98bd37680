package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SlotDuration is the fixed length of every bookable slot. EndTime is
// always derived from StartTime + SlotDuration, never client-supplied.
const SlotDuration = 30 * time.Minute

// DefaultMaxCapacity is the number of clients a slot accepts unless the
// counselor overrides it.
const DefaultMaxCapacity = 3

type Schedule struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	CounselorID uuid.UUID `json:"counselor_id" gorm:"type:uuid;not null;uniqueIndex:idx_schedules_counselor_date_start"`
	Date        string    `json:"date" gorm:"type:date;not null;uniqueIndex:idx_schedules_counselor_date_start"`
	StartTime   string    `json:"start_time" gorm:"type:time;not null;uniqueIndex:idx_schedules_counselor_date_start"` // "HH:MM" 24h
	EndTime     string    `json:"end_time" gorm:"type:time;not null"`
	MaxCapacity int       `json:"max_capacity" gorm:"not null;default:3"`
	Counselor   Counselor `json:"counselor,omitempty" gorm:"foreignKey:CounselorID"`
	Bookings    []Booking `json:"bookings,omitempty" gorm:"foreignKey:ScheduleID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (s *Schedule) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.MaxCapacity == 0 {
		s.MaxCapacity = DefaultMaxCapacity
	}
	return nil
}
