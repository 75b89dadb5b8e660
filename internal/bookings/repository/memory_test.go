package repository

import (
	"context"
	"errors"
	"testing"

	bookingserrors "tablebot/internal/bookings/errors"
	"tablebot/pkg/model"
)

func booking(name, date, tm string, dietary model.Dietary) *model.Booking {
	return &model.Booking{
		CustomerName: name,
		Date:         date,
		Time:         tm,
		PartySize:    2,
		Dietary:      dietary,
	}
}

func TestMemoryRepository_CreateAssignsSequentialIDs(t *testing.T) {
	repo := NewMemoryBookingRepository()
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		b := booking("Alice", "2026-11-01", "12:00", model.DietaryNone)
		id, err := repo.Create(ctx, b)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if id != want || b.ID != want {
			t.Errorf("expected id %d, got %d (record %d)", want, id, b.ID)
		}
		if !b.Active || b.CreatedAt.IsZero() {
			t.Errorf("expected active record with created_at, got %+v", b)
		}
	}
}

func TestMemoryRepository_ReturnsCopies(t *testing.T) {
	repo := NewMemoryBookingRepository()
	ctx := context.Background()

	b := booking("Alice", "2026-11-01", "12:00", model.DietaryNone)
	id, _ := repo.Create(ctx, b)
	b.PartySize = 99

	got, err := repo.FindByID(ctx, id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got.PartySize = 50

	again, _ := repo.FindByID(ctx, id)
	if again.PartySize != 2 {
		t.Errorf("stored record was mutated through a copy: %d", again.PartySize)
	}
}

func TestMemoryRepository_FindByIDNotFound(t *testing.T) {
	_, err := NewMemoryBookingRepository().FindByID(context.Background(), 42)
	if !errors.Is(err, bookingserrors.ErrBookingNotFound) {
		t.Errorf("expected ErrBookingNotFound, got %v", err)
	}
}

func TestMemoryRepository_SoftDelete(t *testing.T) {
	repo := NewMemoryBookingRepository()
	ctx := context.Background()
	id, _ := repo.Create(ctx, booking("Alice", "2026-11-01", "12:00", model.DietaryNone))

	tests := []struct {
		name string
		id   int64
		want bool
	}{
		{"first delete", id, true},
		{"second delete", id, false},
		{"unknown id", 99, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := repo.SoftDelete(ctx, tt.id)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ok != tt.want {
				t.Errorf("expected %v, got %v", tt.want, ok)
			}
		})
	}

	list, _ := repo.FindActiveByCustomer(ctx, "Alice")
	if len(list) != 0 {
		t.Errorf("soft-deleted booking must not be listed, got %d", len(list))
	}
	got, err := repo.FindByID(ctx, id)
	if err != nil || got.Active {
		t.Errorf("expected inactive record, got %+v err=%v", got, err)
	}
}

func TestMemoryRepository_UpdateField(t *testing.T) {
	repo := NewMemoryBookingRepository()
	ctx := context.Background()
	id, _ := repo.Create(ctx, booking("Alice", "2026-11-01", "12:00", model.DietaryNone))

	ok, err := repo.UpdateField(ctx, id, model.FieldPartySize, 6)
	if err != nil || !ok {
		t.Fatalf("expected update, got ok=%v err=%v", ok, err)
	}
	got, _ := repo.FindByID(ctx, id)
	if got.PartySize != 6 {
		t.Errorf("expected party size 6, got %d", got.PartySize)
	}

	if _, err := repo.UpdateField(ctx, id, model.BookingField("customer_name"), "Eve"); !errors.Is(err, bookingserrors.ErrInvalidField) {
		t.Errorf("expected ErrInvalidField, got %v", err)
	}

	_, _ = repo.SoftDelete(ctx, id)
	ok, err = repo.UpdateField(ctx, id, model.FieldTime, "13:00")
	if err != nil || ok {
		t.Errorf("cancelled booking must not be updated, got ok=%v err=%v", ok, err)
	}
}

func TestMemoryRepository_FindActiveByCustomerOrdering(t *testing.T) {
	repo := NewMemoryBookingRepository()
	ctx := context.Background()

	_, _ = repo.Create(ctx, booking("Alice", "2026-11-05", "19:00", model.DietaryNone))
	_, _ = repo.Create(ctx, booking("Alice", "2026-11-05", "12:30", model.DietaryNone))
	_, _ = repo.Create(ctx, booking("Alice", "2026-11-01", "20:00", model.DietaryNone))
	_, _ = repo.Create(ctx, booking("Bob", "2026-10-30", "11:00", model.DietaryNone))

	list, err := repo.FindActiveByCustomer(ctx, "Alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"2026-11-01 20:00", "2026-11-05 12:30", "2026-11-05 19:00"}
	if len(list) != len(want) {
		t.Fatalf("expected %d bookings, got %d", len(want), len(list))
	}
	for i, b := range list {
		if got := b.Date + " " + b.Time; got != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], got)
		}
	}
}

func TestMemoryRepository_DietaryPreference(t *testing.T) {
	tests := []struct {
		name     string
		dietary  []model.Dietary
		want     model.Dietary
	}{
		{"no bookings", nil, ""},
		{"single booking is not a preference", []model.Dietary{model.DietaryVegan}, ""},
		{"two matching bookings", []model.Dietary{model.DietaryVegan, model.DietaryNone, model.DietaryVegan}, model.DietaryVegan},
		{"tie resolves alphabetically", []model.Dietary{model.DietaryVegan, model.DietaryHalal, model.DietaryVegan, model.DietaryHalal}, model.DietaryHalal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewMemoryBookingRepository()
			ctx := context.Background()
			for _, d := range tt.dietary {
				_, _ = repo.Create(ctx, booking("Alice", "2026-11-01", "12:00", d))
			}

			got, err := repo.DietaryPreference(ctx, "Alice")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestMemoryRepository_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewMemoryBookingRepository().Create(ctx, booking("Alice", "2026-11-01", "12:00", model.DietaryNone)); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
