package app

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/OriKozok/movie-town-server/api"
	"github.com/OriKozok/movie-town-server/internal/domain"
)

func TestGetMovies(t *testing.T) {
	ta := newTestApplication(t)

	ta.movieRepo.On("GetAll", mock.Anything).Return([]domain.Movie{
		{ID: 1, Name: "DUNE", Description: "Spice wars.", Genre: domain.Action, Duration: 155},
		{ID: 2, Name: "HEAT", Description: "Heist drama.", Genre: domain.Thriller, Duration: 170},
	}, nil)

	rr := ta.do(t, http.MethodGet, "/movies", "", nil)

	require.Equal(t, http.StatusOK, rr.Code)

	resp := decodeJSON[[]api.MovieResponse](t, rr)
	require.Len(t, resp, 2)
	assert.Equal(t, "DUNE", resp[0].Name)
}

func TestGetMovieNotFound(t *testing.T) {
	ta := newTestApplication(t)

	ta.movieRepo.On("GetById", mock.Anything, 42).Return(nil, domain.ErrRecordNotFound)

	rr := ta.do(t, http.MethodGet, "/movies/42", "", nil)

	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCreateMovie(t *testing.T) {
	ta := newTestApplication(t)
	token := ta.loginAsAdmin(t)

	ta.movieRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Movie")).
		Run(func(args mock.Arguments) {
			movie := args.Get(1).(*domain.Movie)
			// Names are stored uppercased, descriptions capitalized.
			assert.Equal(t, "DUNE", movie.Name)
			assert.Equal(t, "Spice wars on arrakis.", movie.Description)
			movie.ID = 1
		}).
		Return(nil)

	rr := ta.do(t, http.MethodPost, "/admin/movies", token, api.MovieRequest{
		Name:        "dune",
		Description: "spice wars on arrakis.",
		Genre:       "ACTION",
		Duration:    155,
	})

	require.Equal(t, http.StatusCreated, rr.Code)

	resp := decodeJSON[api.MovieResponse](t, rr)
	assert.Equal(t, 1, resp.Id)
	assert.Equal(t, "DUNE", resp.Name)
	ta.movieRepo.AssertExpectations(t)
}

func TestCreateMovieValidation(t *testing.T) {
	tests := []struct {
		name string
		body api.MovieRequest
	}{
		{
			name: "unknown genre",
			body: api.MovieRequest{Name: "dune", Description: "spice.", Genre: "WESTERN", Duration: 155},
		},
		{
			name: "zero duration",
			body: api.MovieRequest{Name: "dune", Description: "spice.", Genre: "ACTION"},
		},
		{
			name: "missing name",
			body: api.MovieRequest{Description: "spice.", Genre: "ACTION", Duration: 155},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ta := newTestApplication(t)
			token := ta.loginAsAdmin(t)

			rr := ta.do(t, http.MethodPost, "/admin/movies", token, tt.body)

			require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
			ta.movieRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateMovieDuplicateName(t *testing.T) {
	ta := newTestApplication(t)
	token := ta.loginAsAdmin(t)

	ta.movieRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Movie")).
		Return(domain.ErrMovieAlreadyExists)

	rr := ta.do(t, http.MethodPost, "/admin/movies", token, api.MovieRequest{
		Name: "dune", Description: "spice.", Genre: "ACTION", Duration: 155,
	})

	require.Equal(t, http.StatusConflict, rr.Code)
}

func TestUpdateMovieNameIsImmutable(t *testing.T) {
	ta := newTestApplication(t)
	token := ta.loginAsAdmin(t)

	ta.movieRepo.On("GetById", mock.Anything, 1).
		Return(&domain.Movie{ID: 1, Name: "DUNE", Description: "Spice.", Genre: domain.Action, Duration: 155}, nil)

	rr := ta.do(t, http.MethodPatch, "/admin/movies/1", token, api.MovieRequest{
		Name: "heat", Description: "spice.", Genre: "ACTION", Duration: 155,
	})

	require.Equal(t, http.StatusConflict, rr.Code)
	ta.movieRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCreateMovieRequiresAdmin(t *testing.T) {
	ta := newTestApplication(t)

	body := api.MovieRequest{Name: "dune", Description: "spice.", Genre: "ACTION", Duration: 155}

	rr := ta.do(t, http.MethodPost, "/admin/movies", "", body)
	require.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = ta.do(t, http.MethodPost, "/admin/movies", ta.loginAsUser(t, 7), body)
	require.Equal(t, http.StatusForbidden, rr.Code)
}
