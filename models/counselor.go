package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Counselor struct {
	ID              uuid.UUID        `json:"id" gorm:"type:uuid;primaryKey"`
	Email           string           `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Password        string           `json:"password,omitempty" gorm:"type:varchar(255);not null"`
	Name            string           `json:"name" gorm:"type:varchar(100);not null"`
	AvatarURL       string           `json:"avatar_url,omitempty" gorm:"type:varchar(512)"`
	Schedules       []Schedule       `json:"schedules,omitempty" gorm:"foreignKey:CounselorID;constraint:OnDelete:CASCADE"`
	InvitationLinks []InvitationLink `json:"invitation_links,omitempty" gorm:"foreignKey:CounselorID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

func (c *Counselor) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
