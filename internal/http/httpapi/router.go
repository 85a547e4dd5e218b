package httpapi

import (
	stdhttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"scholarmarket/internal/http/handlers"
	"scholarmarket/internal/middleware"
)

// NewRouter wires every endpoint. Public reads stay outside the auth group;
// everything that writes or is scoped to a caller sits behind Auth.
func NewRouter(app *handlers.App, verifier middleware.IdentityVerifier) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(
		chimw.RealIP,
		middleware.RequestID,
		chimw.Recoverer,
		middleware.Logger(app.Logger),
		middleware.CORS(app.Cfg.AllowedOrigins),
	)

	r.Get("/v1/healthz", app.Health)

	// Public catalogue.
	r.Get("/v1/scholarships", app.ScholarshipsList)
	r.Get("/v1/scholarships/{id}", app.ScholarshipsGet)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(verifier))

		r.Post("/v1/users", app.UsersUpsert)
		r.Get("/v1/users/me", app.UsersMe)
		r.Get("/v1/users", app.UsersList)
		r.Patch("/v1/users/{email}/role", app.UserRoleUpdate)

		r.Get("/v1/scholarships/mine", app.ScholarshipsMine)
		r.Post("/v1/scholarships", app.ScholarshipsCreate)
		r.Patch("/v1/scholarships/{id}", app.ScholarshipsUpdate)
		r.Delete("/v1/scholarships/{id}", app.ScholarshipsDelete)

		// Checkout endpoints take the per-IP limiter: they fan out to the
		// payment provider.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(app.Cfg.RateLimitPerMin, time.Minute))
			r.Post("/v1/checkout-sessions", app.CheckoutCreate)
			r.Post("/v1/checkout-confirmations", app.CheckoutConfirm)
		})

		r.Get("/v1/orders/mine", app.OrdersMine)
		r.Get("/v1/orders/moderated", app.OrdersModerated)
		r.Patch("/v1/orders/{id}/status", app.OrderStatusUpdate)
		r.Delete("/v1/orders/{id}", app.OrderDelete)
	})

	return r
}
