package services_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/counselbook/counsel-booking/models"
	"github.com/counselbook/counsel-booking/services"
	"github.com/counselbook/counsel-booking/store/storetest"
)

type recordingMailer struct {
	to, name, link string
	err            error
}

func (m *recordingMailer) SendInvitation(recipientEmail, counselorName, link string) error {
	m.to, m.name, m.link = recipientEmail, counselorName, link
	return m.err
}

func TestCreateInvitation(t *testing.T) {
	st := storetest.New()
	mailer := &recordingMailer{}
	svc := services.NewInvitationService(st, mailer, "http://localhost:3001")
	ctx := context.Background()
	counselor := seedCounselor(t, st)

	result, err := svc.Create(ctx, counselor.ID, "client@test.com")
	if err != nil {
		t.Fatalf("create invitation: %v", err)
	}

	if len(result.Token) != 64 {
		t.Errorf("token length = %d, want 64 hex chars", len(result.Token))
	}
	if want := "http://localhost:3001/booking?token=" + result.Token; result.Link != want {
		t.Errorf("link = %s, want %s", result.Link, want)
	}
	until := time.Until(result.ExpiresAt)
	if until < models.InvitationTTL-time.Minute || until > models.InvitationTTL {
		t.Errorf("expires in %v, want about %v", until, models.InvitationTTL)
	}

	if mailer.to != "client@test.com" {
		t.Errorf("mail sent to %q", mailer.to)
	}
	if mailer.name != counselor.Name {
		t.Errorf("mail names counselor %q, want %q", mailer.name, counselor.Name)
	}
	if !strings.Contains(mailer.link, result.Token) {
		t.Error("mailed link is missing the token")
	}
}

func TestCreateInvitationSurvivesMailFailure(t *testing.T) {
	st := storetest.New()
	mailer := &recordingMailer{err: fmt.Errorf("smtp down")}
	svc := services.NewInvitationService(st, mailer, "http://localhost:3001")
	ctx := context.Background()
	counselor := seedCounselor(t, st)

	result, err := svc.Create(ctx, counselor.ID, "client@test.com")
	if err != nil {
		t.Fatalf("creation must not fail on mail dispatch: %v", err)
	}
	if _, err := st.Invitations().FindByToken(ctx, result.Token); err != nil {
		t.Errorf("invitation not persisted: %v", err)
	}
}

func TestValidateInvitation(t *testing.T) {
	st := storetest.New()
	svc := services.NewInvitationService(st, nil, "http://localhost:3001")
	bookings := services.NewBookingService(st, nil)
	ctx := context.Background()
	counselor := seedCounselor(t, st)

	t.Run("valid token", func(t *testing.T) {
		inv := seedInvitation(t, st, counselor.ID)
		got, err := svc.Validate(ctx, inv.Token)
		if err != nil {
			t.Fatalf("validate: %v", err)
		}
		if !got.Valid {
			t.Error("valid = false")
		}
		if got.Counselor.ID != counselor.ID || got.Counselor.Name != counselor.Name {
			t.Errorf("counselor = %+v", got.Counselor)
		}
		if got.RecipientEmail != inv.RecipientEmail {
			t.Errorf("recipient = %s, want %s", got.RecipientEmail, inv.RecipientEmail)
		}
	})

	t.Run("unknown token", func(t *testing.T) {
		_, err := svc.Validate(ctx, "nope")
		if !errors.Is(err, services.ErrInvalidToken) {
			t.Errorf("err = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		inv := &models.InvitationLink{
			CounselorID:    counselor.ID,
			Token:          "validate-expired",
			RecipientEmail: "client@test.com",
			ExpiresAt:      time.Now().Add(-time.Minute),
		}
		if err := st.Invitations().Create(ctx, inv); err != nil {
			t.Fatal(err)
		}
		_, err := svc.Validate(ctx, inv.Token)
		if !errors.Is(err, services.ErrTokenExpired) {
			t.Errorf("err = %v, want ErrTokenExpired", err)
		}
	})

	t.Run("used token", func(t *testing.T) {
		inv := seedInvitation(t, st, counselor.ID)
		schedule := seedSchedule(t, st, counselor.ID, 3)
		if _, err := bookings.Create(ctx, bookingInput(schedule.ID, inv.Token)); err != nil {
			t.Fatal(err)
		}
		_, err := svc.Validate(ctx, inv.Token)
		if !errors.Is(err, services.ErrTokenAlreadyUsed) {
			t.Errorf("err = %v, want ErrTokenAlreadyUsed", err)
		}
	})
}
