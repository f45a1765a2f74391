package app

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/OriKozok/movie-town-server/api"
	"github.com/OriKozok/movie-town-server/internal/domain"
)

func TestGetCurrentUser(t *testing.T) {
	ta := newTestApplication(t)
	token := ta.loginAsUser(t, 7)

	ta.userRepo.On("GetById", mock.Anything, 7).
		Return(&domain.User{ID: 7, Name: "Dana", Email: "dana@example.com", CreatedAt: time.Now()}, nil)
	ta.orderRepo.On("GetByUserId", mock.Anything, 7).Return([]domain.Order{
		{ID: 31, Reference: uuid.New(), UserID: 7, ScreeningID: 1, Price: decimal.NewFromInt(30), Status: domain.OrderNotWatched},
	}, nil)

	rr := ta.do(t, http.MethodGet, "/users/me", token, nil)

	require.Equal(t, http.StatusOK, rr.Code)

	resp := decodeJSON[api.UserResponse](t, rr)
	assert.Equal(t, 7, resp.Id)
	assert.Equal(t, "dana@example.com", resp.Email)
	require.Len(t, resp.Orders, 1)
	assert.Equal(t, 31, resp.Orders[0].Id)
}

func TestUpdateUser(t *testing.T) {
	ta := newTestApplication(t)
	token := ta.loginAsUser(t, 7)

	ta.userRepo.On("GetById", mock.Anything, 7).
		Return(&domain.User{ID: 7, Name: "Dana", Email: "dana@example.com"}, nil)
	ta.userRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.ID == 7 && u.Name == "Dana L" && u.Email == "dana.l@example.com"
	})).Return(nil)

	rr := ta.do(t, http.MethodPatch, "/users/me", token, api.UpdateUserRequest{
		Name: "Dana L", Email: "Dana.L@Example.com",
	})

	require.Equal(t, http.StatusOK, rr.Code)
	ta.userRepo.AssertExpectations(t)
}

func TestUpdateUserConflicts(t *testing.T) {
	tests := []struct {
		name      string
		body      api.UpdateUserRequest
		setupMock func(*testApplication)
	}{
		{
			name: "admin email is off limits",
			body: api.UpdateUserRequest{Name: "Dana", Email: "Admin@Admin.com"},
		},
		{
			name: "email taken by another user",
			body: api.UpdateUserRequest{Name: "Dana", Email: "taken@example.com"},
			setupMock: func(ta *testApplication) {
				ta.userRepo.On("GetById", mock.Anything, 7).
					Return(&domain.User{ID: 7, Name: "Dana", Email: "dana@example.com"}, nil)
				ta.userRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.User")).
					Return(domain.ErrUserAlreadyExists)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ta := newTestApplication(t)
			token := ta.loginAsUser(t, 7)
			if tt.setupMock != nil {
				tt.setupMock(ta)
			}

			rr := ta.do(t, http.MethodPatch, "/users/me", token, tt.body)

			require.Equal(t, http.StatusConflict, rr.Code)
		})
	}
}

func TestGetUsersRequiresAdmin(t *testing.T) {
	ta := newTestApplication(t)

	rr := ta.do(t, http.MethodGet, "/admin/users", ta.loginAsUser(t, 7), nil)
	require.Equal(t, http.StatusForbidden, rr.Code)

	ta.userRepo.On("GetAll", mock.Anything).Return([]domain.User{
		{ID: 7, Name: "Dana", Email: "dana@example.com"},
	}, nil)

	rr = ta.do(t, http.MethodGet, "/admin/users", ta.loginAsAdmin(t), nil)
	require.Equal(t, http.StatusOK, rr.Code)

	resp := decodeJSON[[]api.UserResponse](t, rr)
	require.Len(t, resp, 1)
}
