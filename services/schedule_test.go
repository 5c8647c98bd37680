package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/counselbook/counsel-booking/models"
	"github.com/counselbook/counsel-booking/services"
	"github.com/counselbook/counsel-booking/store/storetest"
)

func TestCreateSchedule(t *testing.T) {
	st := storetest.New()
	svc := services.NewScheduleService(st, nil)
	ctx := context.Background()
	counselor := seedCounselor(t, st)

	t.Run("derives end time", func(t *testing.T) {
		s, err := svc.Create(ctx, counselor.ID, "2025-03-01", "14:30")
		if err != nil {
			t.Fatalf("create schedule: %v", err)
		}
		if s.EndTime != "15:00" {
			t.Errorf("end time = %s, want 15:00", s.EndTime)
		}
		if s.MaxCapacity != models.DefaultMaxCapacity {
			t.Errorf("capacity = %d, want %d", s.MaxCapacity, models.DefaultMaxCapacity)
		}
	})

	t.Run("rejects slot crossing midnight", func(t *testing.T) {
		_, err := svc.Create(ctx, counselor.ID, "2025-03-01", "23:30")
		if !errors.Is(err, services.ErrInvalidInput) {
			t.Errorf("err = %v, want ErrInvalidInput", err)
		}
	})

	t.Run("rejects duplicate slot", func(t *testing.T) {
		_, err := svc.Create(ctx, counselor.ID, "2025-03-01", "14:30")
		if !errors.Is(err, services.ErrDuplicateSchedule) {
			t.Errorf("err = %v, want ErrDuplicateSchedule", err)
		}
	})

	t.Run("rejects malformed date", func(t *testing.T) {
		_, err := svc.Create(ctx, counselor.ID, "03/01/2025", "10:00")
		if !errors.Is(err, services.ErrInvalidInput) {
			t.Errorf("err = %v, want ErrInvalidInput", err)
		}
	})
}

func TestUpdateScheduleChecksExistenceBeforeOwnership(t *testing.T) {
	st := storetest.New()
	svc := services.NewScheduleService(st, nil)
	ctx := context.Background()

	owner := seedCounselor(t, st)
	intruder := seedCounselor(t, st)
	schedule, err := svc.Create(ctx, owner.ID, "2025-03-01", "10:00")
	if err != nil {
		t.Fatal(err)
	}

	// A nonexistent ID is not-found for everyone, including the owner.
	_, err = svc.Update(ctx, owner.ID, uuid.New(), "", "11:00")
	if !errors.Is(err, services.ErrScheduleNotFound) {
		t.Errorf("err = %v, want ErrScheduleNotFound", err)
	}

	_, err = svc.Update(ctx, intruder.ID, schedule.ID, "", "11:00")
	if !errors.Is(err, services.ErrNotOwner) {
		t.Errorf("err = %v, want ErrNotOwner", err)
	}

	updated, err := svc.Update(ctx, owner.ID, schedule.ID, "", "11:00")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.EndTime != "11:30" {
		t.Errorf("end time = %s, want 11:30", updated.EndTime)
	}
}

func TestRemoveSchedule(t *testing.T) {
	st := storetest.New()
	svc := services.NewScheduleService(st, nil)
	bookings := services.NewBookingService(st, nil)
	ctx := context.Background()

	owner := seedCounselor(t, st)
	intruder := seedCounselor(t, st)
	schedule, err := svc.Create(ctx, owner.ID, "2025-03-01", "10:00")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := bookings.Create(ctx, bookingInput(schedule.ID, seedInvitation(t, st, owner.ID).Token)); err != nil {
		t.Fatal(err)
	}

	if err := svc.Remove(ctx, intruder.ID, schedule.ID); !errors.Is(err, services.ErrNotOwner) {
		t.Errorf("err = %v, want ErrNotOwner", err)
	}
	if err := svc.Remove(ctx, owner.ID, uuid.New()); !errors.Is(err, services.ErrScheduleNotFound) {
		t.Errorf("err = %v, want ErrScheduleNotFound", err)
	}

	if err := svc.Remove(ctx, owner.ID, schedule.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	// Bookings cascade with the schedule.
	active, err := st.Bookings().CountActive(ctx, schedule.ID)
	if err != nil {
		t.Fatal(err)
	}
	if active != 0 {
		t.Errorf("active bookings after cascade = %d, want 0", active)
	}
}

func TestFindAvailable(t *testing.T) {
	st := storetest.New()
	svc := services.NewScheduleService(st, nil)
	bookings := services.NewBookingService(st, nil)
	ctx := context.Background()

	counselor := seedCounselor(t, st)
	schedule, err := svc.Create(ctx, counselor.ID, "2025-03-01", "10:00")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := bookings.Create(ctx, bookingInput(schedule.ID, seedInvitation(t, st, counselor.ID).Token)); err != nil {
		t.Fatal(err)
	}

	slots, err := svc.FindAvailable(ctx, counselor.ID, "2025-03-01")
	if err != nil {
		t.Fatal(err)
	}
	if len(slots) != 1 {
		t.Fatalf("got %d slots, want 1", len(slots))
	}
	if !slots[0].Available {
		t.Error("slot should still be available")
	}
	if want := models.DefaultMaxCapacity - 1; slots[0].RemainingSlots != want {
		t.Errorf("remaining = %d, want %d", slots[0].RemainingSlots, want)
	}

	// Idempotent read: no writes in between, identical result.
	again, err := svc.FindAvailable(ctx, counselor.ID, "2025-03-01")
	if err != nil {
		t.Fatal(err)
	}
	if again[0].RemainingSlots != slots[0].RemainingSlots {
		t.Errorf("remaining changed between reads: %d then %d", slots[0].RemainingSlots, again[0].RemainingSlots)
	}

	t.Run("full slot is unavailable", func(t *testing.T) {
		for i := 1; i < models.DefaultMaxCapacity; i++ {
			if _, err := bookings.Create(ctx, bookingInput(schedule.ID, seedInvitation(t, st, counselor.ID).Token)); err != nil {
				t.Fatal(err)
			}
		}
		slots, err := svc.FindAvailable(ctx, counselor.ID, "2025-03-01")
		if err != nil {
			t.Fatal(err)
		}
		if slots[0].Available {
			t.Error("full slot reported available")
		}
		if slots[0].RemainingSlots != 0 {
			t.Errorf("remaining = %d, want 0", slots[0].RemainingSlots)
		}
	})
}
