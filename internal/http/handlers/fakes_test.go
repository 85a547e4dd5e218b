package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"scholarmarket/internal/domain"
	"scholarmarket/internal/infra"
	"scholarmarket/internal/middleware"
	"scholarmarket/internal/payment"
	"scholarmarket/internal/providers/stripe"
)

// Function-field fakes so each test scripts only the calls it expects; an
// unscripted call panics and fails the test loudly.

type stubScholarships struct {
	domain.ScholarshipRepository
	getByID func(ctx context.Context, id string) (*domain.Scholarship, error)
	create  func(ctx context.Context, s *domain.Scholarship) (*domain.Scholarship, error)
	list    func(ctx context.Context, f domain.ScholarshipFilter) ([]domain.Scholarship, error)
}

func (s *stubScholarships) GetByID(ctx context.Context, id string) (*domain.Scholarship, error) {
	return s.getByID(ctx, id)
}

func (s *stubScholarships) Create(ctx context.Context, sch *domain.Scholarship) (*domain.Scholarship, error) {
	return s.create(ctx, sch)
}

func (s *stubScholarships) List(ctx context.Context, f domain.ScholarshipFilter) ([]domain.Scholarship, error) {
	return s.list(ctx, f)
}

type stubOrders struct {
	domain.OrderRepository
	getByTxn          func(ctx context.Context, txn string) (*domain.Order, error)
	insert            func(ctx context.Context, o *domain.Order) (*domain.Order, error)
	listByStudent     func(ctx context.Context, email string) ([]domain.Order, error)
	updateStatusOwned func(ctx context.Context, id, email string, status domain.OrderStatus) (*domain.Order, error)
	deleteOwned       func(ctx context.Context, id, email string) error
}

func (s *stubOrders) GetByTransactionID(ctx context.Context, txn string) (*domain.Order, error) {
	return s.getByTxn(ctx, txn)
}

func (s *stubOrders) Insert(ctx context.Context, o *domain.Order) (*domain.Order, error) {
	return s.insert(ctx, o)
}

func (s *stubOrders) ListByStudent(ctx context.Context, email string) ([]domain.Order, error) {
	return s.listByStudent(ctx, email)
}

func (s *stubOrders) UpdateStatusOwned(ctx context.Context, id, email string, status domain.OrderStatus) (*domain.Order, error) {
	return s.updateStatusOwned(ctx, id, email, status)
}

func (s *stubOrders) DeleteOwned(ctx context.Context, id, email string) error {
	return s.deleteOwned(ctx, id, email)
}

type stubUsers struct {
	domain.UserRepository
	getByEmail    func(ctx context.Context, email string) (*domain.User, error)
	upsertOnLogin func(ctx context.Context, email, name, country string) (*domain.User, error)
	list          func(ctx context.Context) ([]domain.User, error)
	updateRole    func(ctx context.Context, email string, role domain.Role) (*domain.User, error)
}

func (s *stubUsers) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.getByEmail(ctx, email)
}

func (s *stubUsers) UpsertOnLogin(ctx context.Context, email, name, country string) (*domain.User, error) {
	return s.upsertOnLogin(ctx, email, name, country)
}

func (s *stubUsers) List(ctx context.Context) ([]domain.User, error) {
	return s.list(ctx)
}

func (s *stubUsers) UpdateRole(ctx context.Context, email string, role domain.Role) (*domain.User, error) {
	return s.updateRole(ctx, email, role)
}

type stubCheckout struct {
	get    func(ctx context.Context, id string) (*stripe.CheckoutSession, error)
	create func(ctx context.Context, params stripe.CreateSessionParams) (*stripe.CheckoutSession, error)
}

func (s *stubCheckout) GetCheckoutSession(ctx context.Context, id string) (*stripe.CheckoutSession, error) {
	return s.get(ctx, id)
}

func (s *stubCheckout) CreateCheckoutSession(ctx context.Context, params stripe.CreateSessionParams) (*stripe.CheckoutSession, error) {
	return s.create(ctx, params)
}

func testConfig() *infra.Config {
	return &infra.Config{
		ClientBaseURL:    "https://scholar.example.com",
		CheckoutCurrency: "usd",
	}
}

func testApp() *App {
	return &App{Logger: zerolog.Nop(), Cfg: testConfig()}
}

func (a *App) withReconciler(scholars domain.ScholarshipRepository, orders domain.OrderRepository, checkout payment.CheckoutProvider) *App {
	a.Scholarships = scholars
	a.Orders = orders
	a.Reconciler = payment.NewReconciler(scholars, orders, checkout, zerolog.Nop())
	return a
}

// authedRequest builds a request carrying a verified caller, the way the
// auth middleware would.
func authedRequest(method, target string, body io.Reader, email, name string) *http.Request {
	req := httptest.NewRequest(method, target, body)
	return req.WithContext(middleware.ContextWithCaller(req.Context(), email, name))
}

// routeRequest injects a chi URL parameter, since handlers are exercised
// without the router.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
