package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/counselbook/counsel-booking/controllers"
	"github.com/counselbook/counsel-booking/models"
	"github.com/counselbook/counsel-booking/routes"
	"github.com/counselbook/counsel-booking/services"
	"github.com/counselbook/counsel-booking/store/storetest"
)

type testEnv struct {
	app       *fiber.App
	store     *storetest.Memory
	counselor *models.Counselor
}

func setup(t *testing.T) *testEnv {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	st := storetest.New()
	authSvc := services.NewAuthService(st, "test-secret")
	scheduleSvc := services.NewScheduleService(st, nil)
	invitationSvc := services.NewInvitationService(st, nil, "http://localhost:3001")
	bookingSvc := services.NewBookingService(st, nil)
	recordSvc := services.NewRecordService(st)

	app := fiber.New()
	routes.SetupAuthRoutes(app, controllers.NewAuthController(authSvc))
	routes.SetupScheduleRoutes(app, controllers.NewScheduleController(scheduleSvc, invitationSvc))
	routes.SetupInvitationRoutes(app, controllers.NewInvitationController(invitationSvc))
	routes.SetupBookingRoutes(app, controllers.NewBookingController(bookingSvc), controllers.NewRecordController(recordSvc))

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	counselor := &models.Counselor{
		Email:    "counselor@test.com",
		Password: string(hashed),
		Name:     "Test Counselor",
	}
	if err := st.Counselors().Create(context.Background(), counselor); err != nil {
		t.Fatal(err)
	}

	return &testEnv{app: app, store: st, counselor: counselor}
}

func (e *testEnv) login(t *testing.T) string {
	t.Helper()
	resp := e.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "counselor@test.com",
		"password": "password123",
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d", resp.StatusCode)
	}
	var body struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	return body.Token
}

func (e *testEnv) do(t *testing.T, method, path, token string, payload any) *http.Response {
	t.Helper()
	body := new(bytes.Buffer)
	if payload != nil {
		if err := json.NewEncoder(body).Encode(payload); err != nil {
			t.Fatal(err)
		}
	}
	req, err := http.NewRequest(method, path, body)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, int(5*time.Second/time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func (e *testEnv) seedSchedule(t *testing.T, capacity int) *models.Schedule {
	t.Helper()
	s := &models.Schedule{
		CounselorID: e.counselor.ID,
		Date:        "2025-03-01",
		StartTime:   "14:30",
		EndTime:     "15:00",
		MaxCapacity: capacity,
	}
	if err := e.store.Schedules().Create(context.Background(), s); err != nil {
		t.Fatal(err)
	}
	return s
}

func (e *testEnv) seedInvitation(t *testing.T) *models.InvitationLink {
	t.Helper()
	inv := &models.InvitationLink{
		CounselorID:    e.counselor.ID,
		Token:          fmt.Sprintf("tok-%s", uuid.New()),
		RecipientEmail: "client@test.com",
		ExpiresAt:      time.Now().Add(models.InvitationTTL),
	}
	if err := e.store.Invitations().Create(context.Background(), inv); err != nil {
		t.Fatal(err)
	}
	return inv
}

func TestCreateBookingEndpoint(t *testing.T) {
	env := setup(t)
	schedule := env.seedSchedule(t, 1)

	t.Run("books with a valid token", func(t *testing.T) {
		inv := env.seedInvitation(t)
		resp := env.do(t, http.MethodPost, "/bookings", "", map[string]any{
			"schedule_id":  schedule.ID.String(),
			"token":        inv.Token,
			"client_name":  "Client",
			"client_email": "client@test.com",
		})
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("status = %d, want 201", resp.StatusCode)
		}
		var result services.BookingResult
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			t.Fatal(err)
		}
		if result.Status != models.StatusConfirmed {
			t.Errorf("status = %s, want confirmed", result.Status)
		}
	})

	t.Run("full slot responds 409", func(t *testing.T) {
		inv := env.seedInvitation(t)
		resp := env.do(t, http.MethodPost, "/bookings", "", map[string]any{
			"schedule_id":  schedule.ID.String(),
			"token":        inv.Token,
			"client_name":  "Client",
			"client_email": "client@test.com",
		})
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusConflict {
			t.Errorf("status = %d, want 409", resp.StatusCode)
		}
	})

	t.Run("unknown token responds 400", func(t *testing.T) {
		resp := env.do(t, http.MethodPost, "/bookings", "", map[string]any{
			"schedule_id":  schedule.ID.String(),
			"token":        "bogus",
			"client_name":  "Client",
			"client_email": "client@test.com",
		})
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", resp.StatusCode)
		}
	})

	t.Run("unknown schedule responds 404", func(t *testing.T) {
		inv := env.seedInvitation(t)
		resp := env.do(t, http.MethodPost, "/bookings", "", map[string]any{
			"schedule_id":  uuid.New().String(),
			"token":        inv.Token,
			"client_name":  "Client",
			"client_email": "client@test.com",
		})
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("status = %d, want 404", resp.StatusCode)
		}
	})
}

func TestAvailableEndpoint(t *testing.T) {
	env := setup(t)
	env.seedSchedule(t, 3)
	inv := env.seedInvitation(t)

	resp := env.do(t, http.MethodGet, "/schedules/available?token="+inv.Token, "", nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body struct {
		Counselor services.CounselorInfo   `json:"counselor"`
		Schedules []services.AvailableSlot `json:"schedules"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Counselor.Name != env.counselor.Name {
		t.Errorf("counselor = %q", body.Counselor.Name)
	}
	if len(body.Schedules) != 1 || !body.Schedules[0].Available {
		t.Errorf("schedules = %+v", body.Schedules)
	}

	t.Run("bad token responds 400", func(t *testing.T) {
		resp := env.do(t, http.MethodGet, "/schedules/available?token=bogus", "", nil)
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", resp.StatusCode)
		}
	})
}

func TestProtectedScheduleEndpoints(t *testing.T) {
	env := setup(t)
	token := env.login(t)

	t.Run("rejects missing token", func(t *testing.T) {
		resp := env.do(t, http.MethodPost, "/schedules", "", map[string]string{
			"date": "2025-03-01", "start_time": "10:00",
		})
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", resp.StatusCode)
		}
	})

	t.Run("creates a schedule", func(t *testing.T) {
		resp := env.do(t, http.MethodPost, "/schedules", token, map[string]string{
			"date": "2025-03-01", "start_time": "10:00",
		})
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("status = %d, want 201", resp.StatusCode)
		}
		var s models.Schedule
		if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
			t.Fatal(err)
		}
		if s.EndTime != "10:30" {
			t.Errorf("end time = %s, want 10:30", s.EndTime)
		}
	})

	t.Run("duplicate responds 409", func(t *testing.T) {
		resp := env.do(t, http.MethodPost, "/schedules", token, map[string]string{
			"date": "2025-03-01", "start_time": "10:00",
		})
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusConflict {
			t.Errorf("status = %d, want 409", resp.StatusCode)
		}
	})
}
