package services_test

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/counselbook/counsel-booking/models"
	"github.com/counselbook/counsel-booking/services"
	"github.com/counselbook/counsel-booking/store/storetest"
)

func TestLogin(t *testing.T) {
	st := storetest.New()
	svc := services.NewAuthService(st, "test-secret")
	ctx := context.Background()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	counselor := &models.Counselor{
		Email:    "counselor@test.com",
		Password: string(hashed),
		Name:     "Counselor",
	}
	if err := st.Counselors().Create(ctx, counselor); err != nil {
		t.Fatal(err)
	}

	t.Run("valid credentials", func(t *testing.T) {
		result, err := svc.Login(ctx, "counselor@test.com", "password123")
		if err != nil {
			t.Fatalf("login: %v", err)
		}
		if result.Token == "" || result.RefreshToken == "" {
			t.Error("missing tokens")
		}
		if result.Counselor.ID != counselor.ID {
			t.Errorf("counselor id = %s, want %s", result.Counselor.ID, counselor.ID)
		}
	})

	// Unknown email and wrong password must be indistinguishable, or
	// the login endpoint enumerates accounts.
	t.Run("uniform failure message", func(t *testing.T) {
		_, unknownErr := svc.Login(ctx, "nobody@test.com", "password123")
		_, wrongErr := svc.Login(ctx, "counselor@test.com", "wrong")

		if !errors.Is(unknownErr, services.ErrInvalidCredentials) {
			t.Errorf("unknown email err = %v, want ErrInvalidCredentials", unknownErr)
		}
		if !errors.Is(wrongErr, services.ErrInvalidCredentials) {
			t.Errorf("wrong password err = %v, want ErrInvalidCredentials", wrongErr)
		}
		if unknownErr.Error() != wrongErr.Error() {
			t.Errorf("messages differ: %q vs %q", unknownErr, wrongErr)
		}
	})

	t.Run("refresh issues a new access token", func(t *testing.T) {
		result, err := svc.Login(ctx, "counselor@test.com", "password123")
		if err != nil {
			t.Fatal(err)
		}
		token, err := svc.Refresh(ctx, result.RefreshToken)
		if err != nil {
			t.Fatalf("refresh: %v", err)
		}
		if token == "" {
			t.Error("empty refreshed token")
		}
	})

	t.Run("refresh rejects garbage", func(t *testing.T) {
		_, err := svc.Refresh(ctx, "not-a-jwt")
		if !errors.Is(err, services.ErrInvalidCredentials) {
			t.Errorf("err = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("profile strips the credential hash", func(t *testing.T) {
		profile, err := svc.Profile(ctx, counselor.ID)
		if err != nil {
			t.Fatalf("profile: %v", err)
		}
		if profile.Password != "" {
			t.Error("profile leaked the password hash")
		}
	})
}
