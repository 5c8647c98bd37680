package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/counselbook/counsel-booking/models"
	"github.com/counselbook/counsel-booking/store"
)

type AuthService struct {
	store  store.Store
	secret []byte
}

func NewAuthService(st store.Store, secret string) *AuthService {
	return &AuthService{store: st, secret: []byte(secret)}
}

type LoginResult struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
	Counselor    struct {
		ID    uuid.UUID `json:"id"`
		Email string    `json:"email"`
		Name  string    `json:"name"`
	} `json:"counselor"`
}

// Login authenticates a counselor and issues a 24 h access token plus a
// 7 d refresh token. The failure message is identical for unknown email
// and wrong password; do not split them, that difference enumerates
// accounts.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	counselor, err := s.store.Counselors().FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(counselor.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.signToken(jwt.MapClaims{
		"id":    counselor.ID.String(),
		"email": counselor.Email,
		"role":  "counselor",
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
	})
	if err != nil {
		return nil, err
	}

	refresh, err := s.signToken(jwt.MapClaims{
		"id":    counselor.ID.String(),
		"email": counselor.Email,
		"exp":   time.Now().Add(7 * 24 * time.Hour).Unix(),
	})
	if err != nil {
		return nil, err
	}

	out := &LoginResult{Token: token, RefreshToken: refresh}
	out.Counselor.ID = counselor.ID
	out.Counselor.Email = counselor.Email
	out.Counselor.Name = counselor.Name
	return out, nil
}

// Refresh exchanges a valid refresh token for a new access token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidCredentials
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidCredentials
	}

	return s.signToken(jwt.MapClaims{
		"id":    claims["id"],
		"email": claims["email"],
		"role":  "counselor",
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
	})
}

// Profile returns the counselor behind an authenticated request, with
// the credential hash stripped.
func (s *AuthService) Profile(ctx context.Context, id uuid.UUID) (*models.Counselor, error) {
	counselor, err := s.store.Counselors().FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	counselor.Password = ""
	return counselor, nil
}

// SetAvatar stores the uploaded avatar URL on the counselor.
func (s *AuthService) SetAvatar(ctx context.Context, id uuid.UUID, url string) error {
	counselor, err := s.store.Counselors().FindByID(ctx, id)
	if err != nil {
		return err
	}
	counselor.AvatarURL = url
	return s.store.Counselors().Save(ctx, counselor)
}

func (s *AuthService) signToken(claims jwt.MapClaims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}
