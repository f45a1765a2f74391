package domain

import "errors"

var (
	ErrRecordNotFound = errors.New("record not found")

	// Reservation input/state violations, checked in this order by the seat inventory.
	ErrNoSeatsSelected     = errors.New("no seats selected")
	ErrNoSuchSeat          = errors.New("seat does not exist for this screening")
	ErrInvalidSeatLayout   = errors.New("seats must be in the same row and in consecutive columns")
	ErrSeatAlreadyReserved = errors.New("seat(s) are already reserved")

	// Order cancellation policy violations.
	ErrOrderNotCancellable = errors.New("order is already cancelled or has been watched")
	ErrUnauthorized        = errors.New("operation not permitted for this user")

	// Scheduling conflicts and illegal mutations.
	ErrUnavailableTime = errors.New("screening time is in the past or overlaps another screening in the hall")
	ErrInvalidUpdate   = errors.New("only the start time of a screening may change")

	ErrUserAlreadyExists      = errors.New("user already exists with this email")
	ErrMovieAlreadyExists     = errors.New("movie already exists with this name")
	ErrCinemaAlreadyExists    = errors.New("cinema hall already exists in this city")
	ErrInvalidCinemaSize      = errors.New("cinema must have 5-15 rows and 10-30 columns")
	ErrScreeningAlreadyPlayed = errors.New("screening has already been played")
)
