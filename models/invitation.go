package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InvitationTTL is how long an issued invitation link stays redeemable.
const InvitationTTL = 7 * 24 * time.Hour

// InvitationLink is a single-use capability token scoping a client
// email to one counselor. IsUsed is monotonic: it flips false→true at
// most once, inside the booking transaction.
type InvitationLink struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	CounselorID    uuid.UUID `json:"counselor_id" gorm:"type:uuid;not null"`
	Token          string    `json:"token" gorm:"type:varchar(255);uniqueIndex;not null"`
	RecipientEmail string    `json:"recipient_email" gorm:"type:varchar(255);not null"`
	ExpiresAt      time.Time `json:"expires_at" gorm:"not null"`
	IsUsed         bool      `json:"is_used" gorm:"not null;default:false"`
	Counselor      Counselor `json:"counselor,omitempty" gorm:"foreignKey:CounselorID"`
	CreatedAt      time.Time `json:"created_at"`
}

func (i *InvitationLink) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// Expired reports whether the link is past its expiration at the given
// instant.
func (i *InvitationLink) Expired(now time.Time) bool {
	return i.ExpiresAt.Before(now)
}
