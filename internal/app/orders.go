package app

import (
	"errors"
	"net/http"

	"github.com/OriKozok/movie-town-server/api"
	"github.com/OriKozok/movie-town-server/internal/domain"
)

func (app *application) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var input api.OrderRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	userID := app.contextGetSession(r).Principal.UserID

	order, err := app.orders.PlaceOrder(r.Context(), userID, input.ScreeningId, input.SeatIds)
	if err != nil {
		app.reservationErrorResponse(w, r, err)
		return
	}

	seats, err := app.seatRepo.GetByOrderId(r.Context(), order.ID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	order.Seats = seats

	err = app.writeJSON(w, http.StatusCreated, toOrderResponse(*order), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) CancelOrder(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	userID := app.contextGetSession(r).Principal.UserID

	err = app.orders.CancelOrder(r.Context(), id, userID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.Is(err, domain.ErrUnauthorized):
			app.forbiddenResponse(w, r)
		case errors.Is(err, domain.ErrOrderNotCancellable):
			app.conflictResponse(w, r, err.Error())
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, api.MessageResponse{Message: "Order cancelled"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) GetUserOrders(w http.ResponseWriter, r *http.Request) {
	userID := app.contextGetSession(r).Principal.UserID

	orders, err := app.orderRepo.GetByUserId(r.Context(), userID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	for i := range orders {
		seats, err := app.seatRepo.GetByOrderId(r.Context(), orders[i].ID)
		if err != nil {
			app.serverErrorResponse(w, r, err)
			return
		}
		orders[i].Seats = seats
	}

	err = app.writeJSON(w, http.StatusOK, toOrderResponses(orders), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	order, err := app.orderRepo.GetById(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	if order.UserID != app.contextGetSession(r).Principal.UserID {
		app.forbiddenResponse(w, r)
		return
	}

	seats, err := app.seatRepo.GetByOrderId(r.Context(), order.ID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	order.Seats = seats

	err = app.writeJSON(w, http.StatusOK, toOrderResponse(*order), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) GetOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := app.orderRepo.GetAll(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toOrderResponses(orders), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) reservationErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNoSeatsSelected),
		errors.Is(err, domain.ErrInvalidSeatLayout):
		app.badRequestResponse(w, r, err)
	case errors.Is(err, domain.ErrNoSuchSeat):
		app.notFoundResponse(w, r)
	case errors.Is(err, domain.ErrSeatAlreadyReserved):
		app.conflictResponse(w, r, err.Error())
	default:
		app.serverErrorResponse(w, r, err)
	}
}

func toOrderResponse(order domain.Order) api.OrderResponse {
	resp := api.OrderResponse{
		Id:          order.ID,
		Reference:   order.Reference.String(),
		ScreeningId: order.ScreeningID,
		Price:       order.Price,
		Status:      string(order.Status),
		CreatedAt:   order.CreatedAt,
	}

	for _, seat := range order.Seats {
		resp.Seats = append(resp.Seats, api.Seat{
			Id:     seat.ID,
			Row:    seat.Row,
			Column: seat.Column,
		})
	}

	return resp
}

func toOrderResponses(orders []domain.Order) []api.OrderResponse {
	resp := make([]api.OrderResponse, len(orders))
	for i, order := range orders {
		resp[i] = toOrderResponse(order)
	}

	return resp
}
