// Package api holds the wire types exchanged with clients. The core is
// transport-agnostic; these types exist only at the controller boundary.
package api

import (
	"time"

	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"requestId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	Message          string            `json:"message"`
	ValidationErrors []ValidationError `json:"validationErrors"`
	RequestId        string            `json:"requestId,omitempty"`
	Timestamp        time.Time         `json:"timestamp"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type HealthcheckResponse struct {
	Status     string     `json:"status"`
	SystemInfo SystemInfo `json:"systemInfo"`
}

type SystemInfo struct {
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type UpdateUserRequest struct {
	Name  string `json:"name" validate:"required,min=2,max=100"`
	Email string `json:"email" validate:"required,email"`
}

type UserResponse struct {
	Id        int             `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	CreatedAt time.Time       `json:"createdAt"`
	Orders    []OrderResponse `json:"orders,omitempty"`
}

type MovieRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"required"`
	Genre       string `json:"genre" validate:"required,genre"`
	Duration    int    `json:"duration" validate:"required,gt=0"`
}

type MovieResponse struct {
	Id          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Genre       string `json:"genre"`
	Duration    int    `json:"duration"`
}

type CinemaRequest struct {
	City    string `json:"city" validate:"required,min=2,max=100"`
	Rows    int    `json:"rows" validate:"required"`
	Columns int    `json:"columns" validate:"required"`
}

type CinemaResponse struct {
	Id         int    `json:"id"`
	City       string `json:"city"`
	HallNumber int    `json:"hallNumber"`
	Rows       int    `json:"rows"`
	Columns    int    `json:"columns"`
}

type ScreeningRequest struct {
	MovieId   int       `json:"movieId" validate:"required"`
	CinemaId  int       `json:"cinemaId" validate:"required"`
	StartTime time.Time `json:"startTime" validate:"required,future"`
}

type ScreeningResponse struct {
	Id        int       `json:"id"`
	MovieId   int       `json:"movieId"`
	CinemaId  int       `json:"cinemaId"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

type Seat struct {
	Id        int  `json:"id"`
	Row       int  `json:"row"`
	Column    int  `json:"column"`
	Available bool `json:"available"`
}

type SeatRow struct {
	Row   int    `json:"row"`
	Seats []Seat `json:"seats"`
}

type SeatMapResponse struct {
	ScreeningId int       `json:"screeningId"`
	SeatRows    []SeatRow `json:"seatRows"`
}

type OrderRequest struct {
	ScreeningId int   `json:"screeningId" validate:"required"`
	SeatIds     []int `json:"seatIds" validate:"required"`
}

type OrderResponse struct {
	Id          int             `json:"id"`
	Reference   string          `json:"reference"`
	ScreeningId int             `json:"screeningId"`
	Price       decimal.Decimal `json:"price"`
	Status      string          `json:"status"`
	Seats       []Seat          `json:"seats,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}
