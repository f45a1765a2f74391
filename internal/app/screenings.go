package app

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/OriKozok/movie-town-server/api"
	"github.com/OriKozok/movie-town-server/internal/domain"
)

func (app *application) GetScreenings(w http.ResponseWriter, r *http.Request) {
	var (
		screenings []domain.Screening
		err        error
	)

	switch {
	case r.URL.Query().Get("movieId") != "":
		var movieID int
		movieID, err = strconv.Atoi(r.URL.Query().Get("movieId"))
		if err != nil {
			app.badRequestResponse(w, r, errors.New("invalid movieId parameter"))
			return
		}
		screenings, err = app.screeningRepo.GetByMovieId(r.Context(), movieID)
	case r.URL.Query().Get("city") != "":
		screenings, err = app.screeningsByCity(r, strings.ToLower(r.URL.Query().Get("city")))
	case r.URL.Query().Get("genre") != "":
		screenings, err = app.screeningsByGenre(r, domain.Genre(strings.ToUpper(r.URL.Query().Get("genre"))))
	default:
		screenings, err = app.screeningRepo.GetAll(r.Context())
	}

	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := make([]api.ScreeningResponse, len(screenings))
	for i, screening := range screenings {
		resp[i] = toScreeningResponse(screening)
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) screeningsByCity(r *http.Request, city string) ([]domain.Screening, error) {
	cinemas, err := app.cinemaRepo.GetByCity(r.Context(), city)
	if err != nil {
		return nil, err
	}

	screenings := make([]domain.Screening, 0)
	for _, cinema := range cinemas {
		more, err := app.screeningRepo.GetByCinemaId(r.Context(), cinema.ID)
		if err != nil {
			return nil, err
		}
		screenings = append(screenings, more...)
	}

	return screenings, nil
}

func (app *application) screeningsByGenre(r *http.Request, genre domain.Genre) ([]domain.Screening, error) {
	movies, err := app.movieRepo.GetByGenre(r.Context(), genre)
	if err != nil {
		return nil, err
	}

	screenings := make([]domain.Screening, 0)
	for _, movie := range movies {
		more, err := app.screeningRepo.GetByMovieId(r.Context(), movie.ID)
		if err != nil {
			return nil, err
		}
		screenings = append(screenings, more...)
	}

	return screenings, nil
}

func (app *application) GetScreening(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	screening, err := app.screeningRepo.GetById(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toScreeningResponse(*screening), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) GetScreeningSeats(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	screening, err := app.screeningRepo.GetById(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	if screening.StartTime.Before(time.Now()) {
		app.conflictResponse(w, r, domain.ErrScreeningAlreadyPlayed.Error())
		return
	}

	seats, ok := app.inventory.Seats(id)
	if !ok {
		app.notFoundResponse(w, r)
		return
	}

	resp := api.SeatMapResponse{
		ScreeningId: id,
		SeatRows:    toSeatRows(seats),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) CreateScreening(w http.ResponseWriter, r *http.Request) {
	var input api.ScreeningRequest

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

	screening, err := app.scheduler.AddScreening(r.Context(), input.MovieId, input.CinemaId, input.StartTime)
	if err != nil {
		app.screeningErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, toScreeningResponse(*screening), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) UpdateScreening(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input api.ScreeningRequest

	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	screening, err := app.scheduler.UpdateScreening(r.Context(), id, input.MovieId, input.CinemaId, input.StartTime)
	if err != nil {
		app.screeningErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toScreeningResponse(*screening), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) DeleteScreening(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.scheduler.DeleteScreening(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, api.MessageResponse{Message: "Screening deleted"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) screeningErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrRecordNotFound):
		app.notFoundResponse(w, r)
	case errors.Is(err, domain.ErrUnavailableTime):
		app.conflictResponse(w, r, err.Error())
	case errors.Is(err, domain.ErrInvalidUpdate):
		app.conflictResponse(w, r, err.Error())
	default:
		app.serverErrorResponse(w, r, err)
	}
}

func toScreeningResponse(screening domain.Screening) api.ScreeningResponse {
	return api.ScreeningResponse{
		Id:        screening.ID,
		MovieId:   screening.MovieID,
		CinemaId:  screening.CinemaID,
		StartTime: screening.StartTime,
		EndTime:   screening.EndTime,
	}
}

// toSeatRows groups a row-major sorted seat list into rows for the seat map.
func toSeatRows(seats []domain.Seat) []api.SeatRow {
	if len(seats) == 0 {
		return nil
	}

	var seatRows []api.SeatRow
	currentRow := api.SeatRow{Row: seats[0].Row}

	for _, v := range seats {
		if v.Row != currentRow.Row {
			seatRows = append(seatRows, currentRow)
			currentRow = api.SeatRow{Row: v.Row}
		}

		currentRow.Seats = append(currentRow.Seats, api.Seat{
			Id:        v.ID,
			Row:       v.Row,
			Column:    v.Column,
			Available: !v.Reserved(),
		})
	}

	seatRows = append(seatRows, currentRow)

	return seatRows
}
