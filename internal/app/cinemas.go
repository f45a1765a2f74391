package app

import (
	"errors"
	"net/http"
	"strings"

	"github.com/OriKozok/movie-town-server/api"
	"github.com/OriKozok/movie-town-server/internal/domain"
)

func (app *application) GetCinemas(w http.ResponseWriter, r *http.Request) {
	var (
		cinemas []domain.Cinema
		err     error
	)

	if city := r.URL.Query().Get("city"); city != "" {
		cinemas, err = app.cinemaRepo.GetByCity(r.Context(), strings.ToLower(city))
	} else {
		cinemas, err = app.cinemaRepo.GetAll(r.Context())
	}

	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := make([]api.CinemaResponse, len(cinemas))
	for i, cinema := range cinemas {
		resp[i] = toCinemaResponse(cinema)
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) GetCinema(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	cinema, err := app.cinemaRepo.GetById(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toCinemaResponse(*cinema), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) CreateCinema(w http.ResponseWriter, r *http.Request) {
	var input api.CinemaRequest

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

	cinema := domain.Cinema{
		City:    strings.ToLower(input.City),
		Rows:    input.Rows,
		Columns: input.Columns,
	}

	if !cinema.ValidSize() {
		app.badRequestResponse(w, r, domain.ErrInvalidCinemaSize)
		return
	}

	// Halls are numbered per city in order of creation.
	existing, err := app.cinemaRepo.GetByCity(r.Context(), cinema.City)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	cinema.HallNumber = len(existing) + 1

	err = app.cinemaRepo.Create(r.Context(), &cinema)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCinemaAlreadyExists):
			app.conflictResponse(w, r, err.Error())
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusCreated, toCinemaResponse(cinema), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) DeleteCinema(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	cinema, err := app.cinemaRepo.GetById(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.cinemaRepo.Delete(r.Context(), id)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	// Close the numbering gap left by the deleted hall.
	remaining, err := app.cinemaRepo.GetByCity(r.Context(), cinema.City)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	for _, other := range remaining {
		if other.HallNumber > cinema.HallNumber {
			other.HallNumber--
			if err := app.cinemaRepo.Update(r.Context(), &other); err != nil {
				app.serverErrorResponse(w, r, err)
				return
			}
		}
	}

	err = app.writeJSON(w, http.StatusOK, api.MessageResponse{Message: "Cinema deleted"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toCinemaResponse(cinema domain.Cinema) api.CinemaResponse {
	return api.CinemaResponse{
		Id:         cinema.ID,
		City:       cinema.City,
		HallNumber: cinema.HallNumber,
		Rows:       cinema.Rows,
		Columns:    cinema.Columns,
	}
}
