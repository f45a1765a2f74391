package app

import (
	"errors"
	"net/http"
	"strings"
	"unicode"

	"github.com/OriKozok/movie-town-server/api"
	"github.com/OriKozok/movie-town-server/internal/domain"
)

func (app *application) GetMovies(w http.ResponseWriter, r *http.Request) {
	var (
		movies []domain.Movie
		err    error
	)

	switch {
	case r.URL.Query().Get("genre") != "":
		movies, err = app.movieRepo.GetByGenre(r.Context(), domain.Genre(strings.ToUpper(r.URL.Query().Get("genre"))))
	case r.URL.Query().Get("city") != "":
		movies, err = app.moviesByCity(r, strings.ToLower(r.URL.Query().Get("city")))
	default:
		movies, err = app.movieRepo.GetAll(r.Context())
	}

	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := make([]api.MovieResponse, len(movies))
	for i, movie := range movies {
		resp[i] = toMovieResponse(movie)
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// moviesByCity collects the distinct movies that have screenings in any hall
// of the city.
func (app *application) moviesByCity(r *http.Request, city string) ([]domain.Movie, error) {
	screenings, err := app.screeningsByCity(r, city)
	if err != nil {
		return nil, err
	}

	seen := make(map[int]bool)
	movies := make([]domain.Movie, 0)

	for _, screening := range screenings {
		if seen[screening.MovieID] {
			continue
		}
		seen[screening.MovieID] = true

		movie, err := app.movieRepo.GetById(r.Context(), screening.MovieID)
		if err != nil {
			return nil, err
		}

		movies = append(movies, *movie)
	}

	return movies, nil
}

func (app *application) GetMovie(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	movie, err := app.movieRepo.GetById(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toMovieResponse(*movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var input api.MovieRequest

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

	movie := domain.Movie{
		Name:        strings.ToUpper(input.Name),
		Description: capitalize(input.Description),
		Genre:       domain.Genre(input.Genre),
		Duration:    input.Duration,
	}

	err = app.movieRepo.Create(r.Context(), &movie)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMovieAlreadyExists):
			app.conflictResponse(w, r, err.Error())
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusCreated, toMovieResponse(movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input api.MovieRequest

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

	movie, err := app.movieRepo.GetById(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	// The name identifies the movie and cannot change.
	if movie.Name != strings.ToUpper(input.Name) {
		app.conflictResponse(w, r, "the movie name cannot be changed")
		return
	}

	movie.Description = capitalize(input.Description)
	movie.Genre = domain.Genre(input.Genre)
	movie.Duration = input.Duration

	err = app.movieRepo.Update(r.Context(), movie)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toMovieResponse(*movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.movieRepo.Delete(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, api.MessageResponse{Message: "Movie deleted"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toMovieResponse(movie domain.Movie) api.MovieResponse {
	return api.MovieResponse{
		Id:          movie.ID,
		Name:        movie.Name,
		Description: movie.Description,
		Genre:       string(movie.Genre),
		Duration:    movie.Duration,
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}

	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])

	return string(runes)
}
