package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"tablebot/internal/bookings/events"
	bookingserrors "tablebot/internal/bookings/errors"
	"tablebot/internal/bookings/repository"
	"tablebot/internal/bookings/validator"
	"tablebot/pkg/config"
	apperrors "tablebot/pkg/errors"
	"tablebot/pkg/logger"
	"tablebot/pkg/model"
)

// ────────────────────────────────────────────────
// Mocks
// ────────────────────────────────────────────────

type mockBookingRepository struct {
	createFunc            func(ctx context.Context, b *model.Booking) (int64, error)
	findByIDFunc          func(ctx context.Context, id int64) (*model.Booking, error)
	findActiveFunc        func(ctx context.Context, name string) ([]*model.Booking, error)
	softDeleteFunc        func(ctx context.Context, id int64) (bool, error)
	updateFieldFunc       func(ctx context.Context, id int64, field model.BookingField, value any) (bool, error)
	dietaryPreferenceFunc func(ctx context.Context, name string) (model.Dietary, error)
}

func (m *mockBookingRepository) Create(ctx context.Context, b *model.Booking) (int64, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, b)
	}
	return 1, nil
}

func (m *mockBookingRepository) FindByID(ctx context.Context, id int64) (*model.Booking, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return &model.Booking{ID: id}, nil
}

func (m *mockBookingRepository) FindActiveByCustomer(ctx context.Context, name string) ([]*model.Booking, error) {
	if m.findActiveFunc != nil {
		return m.findActiveFunc(ctx, name)
	}
	return []*model.Booking{}, nil
}

func (m *mockBookingRepository) SoftDelete(ctx context.Context, id int64) (bool, error) {
	if m.softDeleteFunc != nil {
		return m.softDeleteFunc(ctx, id)
	}
	return true, nil
}

func (m *mockBookingRepository) UpdateField(ctx context.Context, id int64, field model.BookingField, value any) (bool, error) {
	if m.updateFieldFunc != nil {
		return m.updateFieldFunc(ctx, id, field, value)
	}
	return true, nil
}

func (m *mockBookingRepository) DietaryPreference(ctx context.Context, name string) (model.Dietary, error) {
	if m.dietaryPreferenceFunc != nil {
		return m.dietaryPreferenceFunc(ctx, name)
	}
	return "", nil
}

type mockPublisher struct {
	events []events.Event
	err    error
}

func (m *mockPublisher) Publish(_ context.Context, e events.Event) error {
	m.events = append(m.events, e)
	return m.err
}

func testConfig() *config.Config {
	return &config.Config{
		Log:          logger.Discard(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		MaxPartySize: 20,
	}
}

func newTestService(repo repository.BookingRepository, pub events.Publisher) BookingService {
	cfg := testConfig()
	return NewBookingService(repo, validator.NewBookingValidator(cfg.MaxPartySize, cfg.Log), pub, cfg)
}

func validBooking() *model.Booking {
	return &model.Booking{
		CustomerName: "  alice ",
		Date:         "2026-11-02",
		Time:         "19:00",
		PartySize:    4,
		Dietary:      model.DietaryVegan,
	}
}

// ────────────────────────────────────────────────
// Create
// ────────────────────────────────────────────────

func TestCreate_SanitizesAndPublishes(t *testing.T) {
	var stored *model.Booking
	repo := &mockBookingRepository{
		createFunc: func(ctx context.Context, b *model.Booking) (int64, error) {
			stored = b
			b.ID = 12
			return 12, nil
		},
	}
	pub := &mockPublisher{}
	svc := newTestService(repo, pub)

	id, err := svc.Create(context.Background(), validBooking())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 12 {
		t.Errorf("expected id 12, got %d", id)
	}
	if stored.CustomerName != "Alice" {
		t.Errorf("expected normalized name 'Alice', got %q", stored.CustomerName)
	}
	if len(pub.events) != 1 || pub.events[0].Type != events.BookingCreated {
		t.Fatalf("expected one booking.created event, got %+v", pub.events)
	}
}

func TestCreate_ValidationError(t *testing.T) {
	called := false
	repo := &mockBookingRepository{
		createFunc: func(ctx context.Context, b *model.Booking) (int64, error) {
			called = true
			return 0, nil
		},
	}
	svc := newTestService(repo, nil)

	b := validBooking()
	b.PartySize = 25
	_, err := svc.Create(context.Background(), b)

	if !apperrors.HasCode(err, apperrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if called {
		t.Error("repository must not be called for invalid bookings")
	}
}

func TestCreate_RepositoryFailure(t *testing.T) {
	repo := &mockBookingRepository{
		createFunc: func(ctx context.Context, b *model.Booking) (int64, error) {
			return 0, errors.New("connection reset")
		},
	}
	pub := &mockPublisher{}
	svc := newTestService(repo, pub)

	_, err := svc.Create(context.Background(), validBooking())
	if !apperrors.HasCode(err, apperrors.CodeInternal) {
		t.Fatalf("expected internal error, got %v", err)
	}
	if len(pub.events) != 0 {
		t.Error("no event should be published for a failed create")
	}
}

func TestCreate_PublishFailureDoesNotFail(t *testing.T) {
	svc := newTestService(&mockBookingRepository{}, &mockPublisher{err: errors.New("broker down")})

	if _, err := svc.Create(context.Background(), validBooking()); err != nil {
		t.Fatalf("publish failure must not fail create, got %v", err)
	}
}

// ────────────────────────────────────────────────
// Get
// ────────────────────────────────────────────────

func TestGet(t *testing.T) {
	tests := []struct {
		name     string
		id       int64
		repoErr  error
		wantCode apperrors.Code
		wantIs   error
	}{
		{name: "found", id: 3},
		{name: "invalid id", id: 0, wantCode: apperrors.CodeInvalidInput, wantIs: bookingserrors.ErrInvalidBookingID},
		{name: "not found", id: 4, repoErr: bookingserrors.ErrBookingNotFound, wantCode: apperrors.CodeNotFound, wantIs: bookingserrors.ErrBookingNotFound},
		{name: "store failure", id: 5, repoErr: errors.New("timeout"), wantCode: apperrors.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockBookingRepository{
				findByIDFunc: func(ctx context.Context, id int64) (*model.Booking, error) {
					if tt.repoErr != nil {
						return nil, tt.repoErr
					}
					return &model.Booking{ID: id}, nil
				},
			}
			svc := newTestService(repo, nil)

			b, err := svc.Get(context.Background(), tt.id)
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if b.ID != tt.id {
					t.Errorf("expected id %d, got %d", tt.id, b.ID)
				}
				return
			}
			if !apperrors.HasCode(err, tt.wantCode) {
				t.Errorf("expected code %s, got %v", tt.wantCode, err)
			}
			if tt.wantIs != nil && !errors.Is(err, tt.wantIs) {
				t.Errorf("expected error to wrap %v, got %v", tt.wantIs, err)
			}
		})
	}
}

// ────────────────────────────────────────────────
// SoftDelete / UpdateField
// ────────────────────────────────────────────────

func TestSoftDelete_PublishesOnlyWhenMatched(t *testing.T) {
	tests := []struct {
		name       string
		matched    bool
		wantEvents int
	}{
		{"active booking", true, 1},
		{"already cancelled", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockBookingRepository{
				softDeleteFunc: func(ctx context.Context, id int64) (bool, error) {
					return tt.matched, nil
				},
			}
			pub := &mockPublisher{}
			svc := newTestService(repo, pub)

			ok, err := svc.SoftDelete(context.Background(), 9)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ok != tt.matched {
				t.Errorf("expected %v, got %v", tt.matched, ok)
			}
			if len(pub.events) != tt.wantEvents {
				t.Errorf("expected %d events, got %d", tt.wantEvents, len(pub.events))
			}
		})
	}
}

func TestUpdateField(t *testing.T) {
	tests := []struct {
		name      string
		field     model.BookingField
		value     any
		wantCode  apperrors.Code
		wantValue any
	}{
		{name: "time", field: model.FieldTime, value: "20:15", wantValue: "20:15"},
		{name: "dietary stored as string", field: model.FieldDietary, value: model.DietaryHalal, wantValue: "halal"},
		{name: "party size over max", field: model.FieldPartySize, value: 30, wantCode: apperrors.CodeValidation},
		{name: "bad date", field: model.FieldDate, value: "tomorrow", wantCode: apperrors.CodeValidation},
		{name: "unknown field", field: model.BookingField("name"), value: "Bob", wantCode: apperrors.CodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got any
			repo := &mockBookingRepository{
				updateFieldFunc: func(ctx context.Context, id int64, field model.BookingField, value any) (bool, error) {
					got = value
					return true, nil
				},
			}
			pub := &mockPublisher{}
			svc := newTestService(repo, pub)

			ok, err := svc.UpdateField(context.Background(), 2, tt.field, tt.value)
			if tt.wantCode != "" {
				if !apperrors.HasCode(err, tt.wantCode) {
					t.Fatalf("expected code %s, got %v", tt.wantCode, err)
				}
				if got != nil {
					t.Error("repository must not be called for rejected values")
				}
				return
			}
			if err != nil || !ok {
				t.Fatalf("expected success, got ok=%v err=%v", ok, err)
			}
			if got != tt.wantValue {
				t.Errorf("expected stored value %v (%T), got %v (%T)", tt.wantValue, tt.wantValue, got, got)
			}
			if len(pub.events) != 1 || pub.events[0].Field != string(tt.field) {
				t.Errorf("expected one update event for %s, got %+v", tt.field, pub.events)
			}
		})
	}
}

// ────────────────────────────────────────────────
// Customer lookups against the in-memory store
// ────────────────────────────────────────────────

func TestListActiveByCustomer_WithMemoryStore(t *testing.T) {
	svc := newTestService(repository.NewMemoryBookingRepository(), nil)
	ctx := context.Background()

	later := validBooking()
	later.Date = "2026-11-10"
	earlier := validBooking()
	earlier.Date = "2026-11-03"
	earlier.Time = "12:00"
	cancelled := validBooking()

	for _, b := range []*model.Booking{later, earlier, cancelled} {
		if _, err := svc.Create(ctx, b); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	if ok, err := svc.SoftDelete(ctx, cancelled.ID); err != nil || !ok {
		t.Fatalf("soft delete: ok=%v err=%v", ok, err)
	}

	list, err := svc.ListActiveByCustomer(ctx, "ALICE")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 active bookings, got %d", len(list))
	}
	if list[0].Date != "2026-11-03" || list[1].Date != "2026-11-10" {
		t.Errorf("expected date order, got %s then %s", list[0].Date, list[1].Date)
	}

	got, err := svc.Get(ctx, cancelled.ID)
	if err != nil {
		t.Fatalf("get cancelled: %v", err)
	}
	if got.Active {
		t.Error("cancelled booking must be returned with active=false")
	}
}

func TestListActiveByCustomer_EmptyName(t *testing.T) {
	svc := newTestService(&mockBookingRepository{}, nil)

	_, err := svc.ListActiveByCustomer(context.Background(), "   ")
	if !errors.Is(err, bookingserrors.ErrEmptyCustomerName) {
		t.Errorf("expected ErrEmptyCustomerName, got %v", err)
	}
}

func TestDietaryPreference_WithMemoryStore(t *testing.T) {
	svc := newTestService(repository.NewMemoryBookingRepository(), nil)
	ctx := context.Background()

	for _, d := range []model.Dietary{model.DietaryVegan, model.DietaryHalal, model.DietaryVegan} {
		b := validBooking()
		b.Dietary = d
		if _, err := svc.Create(ctx, b); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	pref, err := svc.DietaryPreference(ctx, "Alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pref != model.DietaryVegan {
		t.Errorf("expected vegan, got %q", pref)
	}

	pref, err = svc.DietaryPreference(ctx, "Bob")
	if err != nil || pref != "" {
		t.Errorf("expected no preference for Bob, got %q err=%v", pref, err)
	}
}
