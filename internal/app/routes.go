package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (app *application) routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)

	r.Use(middleware.Logger)
	r.Use(middleware.RequestID)
	r.Use(app.recoverPanic)
	r.Use(app.rateLimit)
	r.Use(app.authenticate)

	r.Get("/health", app.GetHealth)

	r.Post("/users", app.RegisterUser)
	r.Post("/sessions", app.Login)
	r.With(app.requireAuthentication).Delete("/sessions", app.Logout)

	r.Get("/movies", app.GetMovies)
	r.Get("/movies/{id}", app.GetMovie)

	r.Get("/screenings", app.GetScreenings)
	r.Get("/screenings/{id}", app.GetScreening)
	r.Get("/screenings/{id}/seats", app.GetScreeningSeats)

	r.With(app.requireUser).Route("/users/me", func(r chi.Router) {
		r.Get("/", app.GetCurrentUser)
		r.Patch("/", app.UpdateUser)
	})

	r.With(app.requireUser).Route("/orders", func(r chi.Router) {
		r.Post("/", app.CreateOrder)
		r.Get("/", app.GetUserOrders)
		r.Get("/{id}", app.GetOrder)
		r.Delete("/{id}", app.CancelOrder)
	})

	r.With(app.requireAdmin).Route("/admin", func(r chi.Router) {
		r.Post("/movies", app.CreateMovie)
		r.Patch("/movies/{id}", app.UpdateMovie)
		r.Delete("/movies/{id}", app.DeleteMovie)

		r.Get("/cinemas", app.GetCinemas)
		r.Get("/cinemas/{id}", app.GetCinema)
		r.Post("/cinemas", app.CreateCinema)
		r.Delete("/cinemas/{id}", app.DeleteCinema)

		r.Post("/screenings", app.CreateScreening)
		r.Patch("/screenings/{id}", app.UpdateScreening)
		r.Delete("/screenings/{id}", app.DeleteScreening)

		r.Get("/users", app.GetUsers)
		r.Get("/orders", app.GetOrders)
	})

	return r
}
