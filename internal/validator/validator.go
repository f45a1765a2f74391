package validator

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/OriKozok/movie-town-server/internal/domain"
)

// Readable messages for the validation failures surfaced to clients.
const (
	ErrDefaultInvalid = "is invalid"
	ErrFutureTime     = "must be in the future"
	ErrGenre          = "must be one of ACTION, COMEDY, DRAMA, HORROR, ROMANCE, THRILLER"
)

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	validator.RegisterValidation("genre", validateGenre)
	validator.RegisterValidation("future", validateFuture)

	return validator
}

func validateGenre(fl validator.FieldLevel) bool {
	switch domain.Genre(fl.Field().String()) {
	case domain.Action, domain.Comedy, domain.Drama, domain.Horror, domain.Romance, domain.Thriller:
		return true
	}

	return false
}

func validateFuture(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}

	return t.After(time.Now())
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters long", err.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters long", err.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", err.Param())
	case "genre":
		return ErrGenre
	case "future":
		return ErrFutureTime
	default:
		return ErrDefaultInvalid
	}
}
