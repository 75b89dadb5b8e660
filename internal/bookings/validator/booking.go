package validator

import (
	"errors"
	"fmt"
	"strings"
	"time"

	bookingserrors "tablebot/internal/bookings/errors"
	"tablebot/pkg/logger"
	"tablebot/pkg/model"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type BookingValidator struct {
	validate     *validator.Validate
	maxPartySize int
	logger       *logger.Logger
}

func NewBookingValidator(maxPartySize int, log *logger.Logger) *BookingValidator {
	v := validator.New()
	bv := &BookingValidator{
		validate:     v,
		maxPartySize: maxPartySize,
		logger:       log,
	}

	custom := map[string]validator.Func{
		"booking_date": validateBookingDate,
		"booking_time": validateBookingTime,
		"dietary":      validateDietary,
		"party_size":   bv.validatePartySize,
	}
	for tag, fn := range custom {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatal("Failed to register validator", "tag", tag, "error", err)
		}
	}

	log.Debug("Booking validator initialized", "max_party_size", maxPartySize)
	return bv
}

func validateBookingDate(fl validator.FieldLevel) bool {
	_, err := time.Parse(model.DateLayout, fl.Field().String())
	return err == nil
}

func validateBookingTime(fl validator.FieldLevel) bool {
	_, err := time.Parse(model.TimeLayout, fl.Field().String())
	return err == nil
}

func validateDietary(fl validator.FieldLevel) bool {
	return model.Dietary(fl.Field().String()).Valid()
}

func (v *BookingValidator) validatePartySize(fl validator.FieldLevel) bool {
	n := fl.Field().Int()
	return n >= 1 && n <= int64(v.maxPartySize)
}

func (v *BookingValidator) Validate(booking *model.Booking) error {
	if err := v.validate.Struct(booking); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs, "")
		}
		return err
	}
	return nil
}

// ValidateField checks a single value destined for field using the same
// rules as Validate.
func (v *BookingValidator) ValidateField(field model.BookingField, value any) error {
	var tag string
	switch field {
	case model.FieldDate:
		tag = "required,booking_date"
	case model.FieldTime:
		tag = "required,booking_time"
	case model.FieldPartySize:
		tag = "required,party_size"
	case model.FieldDietary:
		tag = "required,dietary"
		if d, ok := value.(model.Dietary); ok {
			value = string(d)
		}
	default:
		return fmt.Errorf("%w: %s", bookingserrors.ErrInvalidField, field)
	}

	if err := v.validate.Var(value, tag); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs, string(field))
		}
		return err
	}
	return nil
}

// translateValidationErrors turns validator errors into readable messages.
// name replaces the field name for single-value checks, which have none.
func (v *BookingValidator) translateValidationErrors(errs validator.ValidationErrors, name string) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		field := err.Field()
		if name != "" {
			field = name
		}
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", field)
		case "min":
			message = fmt.Sprintf("%s must be at least %s", field, err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", field, err.Param())
		case "booking_date":
			message = fmt.Sprintf("%s must be a date in YYYY-MM-DD format", field)
		case "booking_time":
			message = fmt.Sprintf("%s must be a time in HH:MM format", field)
		case "party_size":
			message = fmt.Sprintf("%s must be between 1 and %d", field, v.maxPartySize)
		case "dietary":
			message = fmt.Sprintf("%s must be one of: %s", field, dietaryList())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   field,
			Message: message,
		})
	}

	return validationErrors
}

func dietaryList() string {
	names := make([]string, 0, len(model.DietaryOptions))
	for _, d := range model.DietaryOptions {
		names = append(names, string(d))
	}
	return strings.Join(names, ", ")
}
