package app

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/OriKozok/movie-town-server/internal/booking"
	"github.com/OriKozok/movie-town-server/internal/inventory"
	"github.com/OriKozok/movie-town-server/internal/mocks"
	"github.com/OriKozok/movie-town-server/internal/schedule"
	"github.com/OriKozok/movie-town-server/internal/session"
	appvalidator "github.com/OriKozok/movie-town-server/internal/validator"
)

type testApplication struct {
	*application

	index *schedule.Index

	movieRepo     *mocks.MockMovieRepo
	cinemaRepo    *mocks.MockCinemaRepo
	screeningRepo *mocks.MockScreeningRepo
	seatRepo      *mocks.MockSeatRepo
	orderRepo     *mocks.MockOrderRepo
	userRepo      *mocks.MockUserRepo
}

func newTestApplication(t *testing.T) *testApplication {
	t.Helper()

	ta := &testApplication{
		movieRepo:     new(mocks.MockMovieRepo),
		cinemaRepo:    new(mocks.MockCinemaRepo),
		screeningRepo: new(mocks.MockScreeningRepo),
		seatRepo:      new(mocks.MockSeatRepo),
		orderRepo:     new(mocks.MockOrderRepo),
		userRepo:      new(mocks.MockUserRepo),
	}

	var cfg config
	cfg.env = "test"
	cfg.admin.email = "admin@admin.com"
	cfg.admin.password = "admin"
	cfg.seatPrice = decimal.NewFromInt(15)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	inv := inventory.New()
	orders := booking.NewManager(inv, ta.orderRepo, ta.seatRepo, cfg.seatPrice)
	ta.index = schedule.NewIndex()
	scheduler := schedule.NewScheduler(
		ta.index, inv, orders,
		ta.movieRepo, ta.cinemaRepo, ta.screeningRepo, ta.seatRepo, logger)

	ta.application = &application{
		config:        cfg,
		logger:        logger,
		validator:     appvalidator.NewValidator(),
		sessions:      session.NewStore(),
		inventory:     inv,
		scheduler:     scheduler,
		orders:        orders,
		movieRepo:     ta.movieRepo,
		cinemaRepo:    ta.cinemaRepo,
		screeningRepo: ta.screeningRepo,
		seatRepo:      ta.seatRepo,
		orderRepo:     ta.orderRepo,
		userRepo:      ta.userRepo,
	}

	return ta
}

// loginAsUser plants a user session and returns its bearer token.
func (ta *testApplication) loginAsUser(t *testing.T, userID int) string {
	t.Helper()

	token, err := session.NewToken()
	require.NoError(t, err)

	ta.sessions.Put(token, session.UserPrincipal(userID), time.Now())

	return token
}

func (ta *testApplication) loginAsAdmin(t *testing.T) string {
	t.Helper()

	token, err := session.NewToken()
	require.NoError(t, err)

	ta.sessions.Put(token, session.AdminPrincipal(), time.Now())

	return token
}

// do routes the request through the full middleware chain and records the
// response.
func (ta *testApplication) do(t *testing.T, method, target, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, target, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	ta.routes().ServeHTTP(rr, req)

	return rr
}

func decodeJSON[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&v))

	return v
}
