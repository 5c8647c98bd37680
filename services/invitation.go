package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/counselbook/counsel-booking/models"
	"github.com/counselbook/counsel-booking/store"
	"github.com/counselbook/counsel-booking/utils"
)

// Mailer delivers invitation emails. Delivery failure never fails
// invitation creation; the booking engine does not depend on it.
type Mailer interface {
	SendInvitation(recipientEmail, counselorName, link string) error
}

type InvitationService struct {
	store     store.Store
	mailer    Mailer
	clientURL string
}

func NewInvitationService(st store.Store, mailer Mailer, clientURL string) *InvitationService {
	return &InvitationService{store: st, mailer: mailer, clientURL: clientURL}
}

type InvitationResult struct {
	ID        uuid.UUID `json:"id"`
	Token     string    `json:"token"`
	Link      string    `json:"link"`
	ExpiresAt time.Time `json:"expires_at"`
}

type CounselorInfo struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type ValidationResult struct {
	Valid          bool          `json:"valid"`
	Counselor      CounselorInfo `json:"counselor"`
	RecipientEmail string        `json:"recipient_email"`
}

// Create issues a single-use invitation: a 256-bit random token valid
// for seven days, persisted first, then mailed. A failed dispatch is
// logged and the invitation still stands.
func (s *InvitationService) Create(ctx context.Context, counselorID uuid.UUID, recipientEmail string) (*InvitationResult, error) {
	if recipientEmail == "" {
		return nil, fmt.Errorf("%w: recipient email is required", ErrInvalidInput)
	}

	token, err := utils.GenerateToken()
	if err != nil {
		return nil, err
	}

	inv := models.InvitationLink{
		CounselorID:    counselorID,
		Token:          token,
		RecipientEmail: recipientEmail,
		ExpiresAt:      time.Now().Add(models.InvitationTTL),
	}
	if err := s.store.Invitations().Create(ctx, &inv); err != nil {
		return nil, err
	}

	link := fmt.Sprintf("%s/booking?token=%s", s.clientURL, token)

	if s.mailer != nil {
		counselor, err := s.store.Counselors().FindByID(ctx, counselorID)
		if err == nil {
			if err := s.mailer.SendInvitation(recipientEmail, counselor.Name, link); err != nil {
				log.Printf("invitation %s created but email to %s failed: %v", inv.ID, recipientEmail, err)
			}
		}
	}

	return &InvitationResult{
		ID:        inv.ID,
		Token:     inv.Token,
		Link:      link,
		ExpiresAt: inv.ExpiresAt,
	}, nil
}

// Validate resolves a token for the booking UI, applying the same
// three checks the booking engine runs before its transaction.
func (s *InvitationService) Validate(ctx context.Context, token string) (*ValidationResult, error) {
	inv, err := s.store.Invitations().FindByToken(ctx, token)
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

	return &ValidationResult{
		Valid: true,
		Counselor: CounselorInfo{
			ID:   inv.Counselor.ID,
			Name: inv.Counselor.Name,
		},
		RecipientEmail: inv.RecipientEmail,
	}, nil
}

// List returns the counselor's issued invitations, newest first.
func (s *InvitationService) List(ctx context.Context, counselorID uuid.UUID) ([]models.InvitationLink, error) {
	return s.store.Invitations().ListByCounselor(ctx, counselorID)
}
