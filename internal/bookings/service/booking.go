package service

import (
	"context"
	"errors"

	"tablebot/internal/bookings/events"
	bookingserrors "tablebot/internal/bookings/errors"
	"tablebot/internal/bookings/repository"
	"tablebot/internal/bookings/validator"
	"tablebot/pkg/config"
	apperrors "tablebot/pkg/errors"
	"tablebot/pkg/model"
	"tablebot/pkg/sanitizer"
)

type BookingService interface {
	Create(ctx context.Context, booking *model.Booking) (int64, error)
	Get(ctx context.Context, id int64) (*model.Booking, error)
	ListActiveByCustomer(ctx context.Context, customerName string) ([]*model.Booking, error)
	SoftDelete(ctx context.Context, id int64) (bool, error)
	UpdateField(ctx context.Context, id int64, field model.BookingField, value any) (bool, error)
	DietaryPreference(ctx context.Context, customerName string) (model.Dietary, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	validator *validator.BookingValidator
	publisher events.Publisher
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	validator *validator.BookingValidator,
	publisher events.Publisher,
	cfg *config.Config,
) BookingService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &bookingService{
		repo:      repo,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *bookingService) Create(ctx context.Context, booking *model.Booking) (int64, error) {
	s.sanitize(booking)
	if err := s.validate(booking); err != nil {
		return 0, err
	}

	id, err := s.repo.Create(ctx, booking)
	if err != nil {
		s.cfg.Log.Error("Failed to create booking", "customer_name", booking.CustomerName, "error", err)
		return 0, apperrors.Internal("Failed to create booking", err)
	}

	s.cfg.Log.Info("Booking created successfully",
		"id", id,
		"customer_name", booking.CustomerName,
		"booking_date", booking.Date,
		"booking_time", booking.Time,
		"party_size", booking.PartySize,
	)
	s.publish(ctx, events.Event{Type: events.BookingCreated, Booking: booking.Clone()})
	return id, nil
}

func (s *bookingService) Get(ctx context.Context, id int64) (*model.Booking, error) {
	if id <= 0 {
		return nil, apperrors.InvalidInput("Invalid booking ID", bookingserrors.ErrInvalidBookingID)
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrBookingNotFound) {
			return nil, apperrors.NotFound("Booking", id, err)
		}
		s.cfg.Log.Error("Failed to retrieve booking", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}

	return booking, nil
}

func (s *bookingService) ListActiveByCustomer(ctx context.Context, customerName string) ([]*model.Booking, error) {
	name, err := s.customerName(customerName)
	if err != nil {
		return nil, err
	}

	bookings, err := s.repo.FindActiveByCustomer(ctx, name)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings", "customer_name", name, "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}
	return bookings, nil
}

func (s *bookingService) SoftDelete(ctx context.Context, id int64) (bool, error) {
	if id <= 0 {
		return false, apperrors.InvalidInput("Invalid booking ID", bookingserrors.ErrInvalidBookingID)
	}

	ok, err := s.repo.SoftDelete(ctx, id)
	if err != nil {
		s.cfg.Log.Error("Failed to cancel booking", "id", id, "error", err)
		return false, apperrors.Internal("Failed to cancel booking", err)
	}
	if !ok {
		s.cfg.Log.Warn("No active booking to cancel", "id", id)
		return false, nil
	}

	s.cfg.Log.Info("Booking cancelled successfully", "id", id)
	s.publishStored(ctx, id, events.BookingCancelled, "")
	return true, nil
}

func (s *bookingService) UpdateField(ctx context.Context, id int64, field model.BookingField, value any) (bool, error) {
	if id <= 0 {
		return false, apperrors.InvalidInput("Invalid booking ID", bookingserrors.ErrInvalidBookingID)
	}
	if err := s.validator.ValidateField(field, value); err != nil {
		return false, s.validationError(err)
	}
	if d, ok := value.(model.Dietary); ok {
		value = string(d)
	}

	ok, err := s.repo.UpdateField(ctx, id, field, value)
	if err != nil {
		s.cfg.Log.Error("Failed to update booking", "id", id, "field", field, "error", err)
		return false, apperrors.Internal("Failed to update booking", err)
	}
	if !ok {
		s.cfg.Log.Warn("No active booking to update", "id", id, "field", field)
		return false, nil
	}

	s.cfg.Log.Info("Booking updated successfully", "id", id, "field", field)
	s.publishStored(ctx, id, events.BookingUpdated, string(field))
	return true, nil
}

func (s *bookingService) DietaryPreference(ctx context.Context, customerName string) (model.Dietary, error) {
	name, err := s.customerName(customerName)
	if err != nil {
		return "", err
	}

	pref, err := s.repo.DietaryPreference(ctx, name)
	if err != nil {
		s.cfg.Log.Error("Failed to compute dietary preference", "customer_name", name, "error", err)
		return "", apperrors.Internal("Failed to compute dietary preference", err)
	}
	return pref, nil
}

func (s *bookingService) customerName(raw string) (string, error) {
	name := sanitizer.NormalizeCustomerName(raw)
	if name == "" {
		return "", apperrors.InvalidInput("Customer name cannot be empty", bookingserrors.ErrEmptyCustomerName)
	}
	return name, nil
}

func (s *bookingService) sanitize(booking *model.Booking) {
	booking.CustomerName = sanitizer.NormalizeCustomerName(booking.CustomerName)
}

func (s *bookingService) validate(booking *model.Booking) error {
	if err := s.validator.Validate(booking); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "customer_name", booking.CustomerName, "error", err)
		return s.validationError(err)
	}
	return nil
}

func (s *bookingService) validationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, v := range verrs {
			fields[v.Field] = v.Message
		}
		return apperrors.Validation("Booking validation failed", fields, err)
	}
	if errors.Is(err, bookingserrors.ErrInvalidField) {
		return apperrors.InvalidInput(err.Error(), err)
	}
	return apperrors.Internal("Failed to validate booking", err)
}

func (s *bookingService) publishStored(ctx context.Context, id int64, eventType events.EventType, field string) {
	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.cfg.Log.Warn("Skipping booking event, reload failed", "id", id, "event_type", eventType, "error", err)
		return
	}
	s.publish(ctx, events.Event{Type: eventType, Booking: booking, Field: field})
}

// publish never fails the caller; the booking change is already committed.
func (s *bookingService) publish(ctx context.Context, event events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.cfg.Log.Error("Failed to publish booking event",
			"id", event.Booking.ID,
			"event_type", event.Type,
			"error", err,
		)
	}
}
