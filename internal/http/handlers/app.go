package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"scholarmarket/internal/domain"
	"scholarmarket/internal/infra"
	"scholarmarket/internal/infra/geoip"
	"scholarmarket/internal/middleware"
	"scholarmarket/internal/payment"
	"scholarmarket/internal/providers/stripe"
)

// CheckoutSessionCreator is the slice of the checkout provider used when a
// student starts a payment.
type CheckoutSessionCreator interface {
	CreateCheckoutSession(ctx context.Context, params stripe.CreateSessionParams) (*stripe.CheckoutSession, error)
}

// App is the handler container. Dependencies are injected at startup by
// cmd/api; handlers hold no package-level state.
type App struct {
	Logger       zerolog.Logger
	Cfg          *infra.Config
	Scholarships domain.ScholarshipRepository
	Orders       domain.OrderRepository
	Users        domain.UserRepository
	Reconciler   *payment.Reconciler
	Checkout     CheckoutSessionCreator
	GeoIP        geoip.CountryResolver
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, map[string]any{
		"error": map[string]string{"code": code, "message": message},
	})
}

func (a *App) currentUserEmail(r *http.Request) string {
	return middleware.CallerEmailFromContext(r.Context())
}

// callerWithRole loads the caller's stored account. Handlers behind Auth use
// it for role gating; an authenticated caller with no account yet reads as a
// plain student.
func (a *App) callerWithRole(r *http.Request) (*domain.User, error) {
	email := a.currentUserEmail(r)
	if email == "" {
		return nil, domain.ErrUnauthorized
	}
	u, err := a.Users.GetByEmail(r.Context(), email)
	if errors.Is(err, domain.ErrNotFound) {
		return &domain.User{Email: email, Role: domain.RoleStudent}, nil
	}
	return u, err
}
