package handlers

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"scholarmarket/internal/domain"
	"scholarmarket/internal/middleware"
)

type userDTO struct {
	Email            string    `json:"email"`
	Name             string    `json:"name"`
	Role             string    `json:"role"`
	LastLoginCountry string    `json:"last_login_country,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	LastLoggedIn     time.Time `json:"last_logged_in"`
}

func toUserDTO(u *domain.User) userDTO {
	return userDTO{
		Email:            u.Email,
		Name:             u.Name,
		Role:             string(u.Role),
		LastLoginCountry: u.LastLoginCountry,
		CreatedAt:        u.CreatedAt,
		LastLoggedIn:     u.LastLoggedIn,
	}
}

// UsersUpsert is the sign-in hook: first call creates the account as a
// student, later calls only touch the login fields. Identity comes from the
// verified token, never the body.
func (a *App) UsersUpsert(w http.ResponseWriter, r *http.Request) {
	email := a.currentUserEmail(r)
	if email == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	name := middleware.CallerNameFromContext(r.Context())

	u, err := a.Users.UpsertOnLogin(r.Context(), email, name, a.loginCountry(r))
	if err != nil {
		a.Logger.Error().Err(err).Msg("upsert user failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to persist user")
		return
	}
	a.json(w, http.StatusOK, toUserDTO(u))
}

func (a *App) UsersMe(w http.ResponseWriter, r *http.Request) {
	email := a.currentUserEmail(r)
	if email == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	u, err := a.Users.GetByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "user not found")
			return
		}
		a.Logger.Error().Err(err).Msg("load user failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load user")
		return
	}
	a.json(w, http.StatusOK, toUserDTO(u))
}

func (a *App) UsersList(w http.ResponseWriter, r *http.Request) {
	if !a.requireAdmin(w, r) {
		return
	}
	items, err := a.Users.List(r.Context())
	if err != nil {
		a.Logger.Error().Err(err).Msg("list users failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load users")
		return
	}
	dtos := make([]userDTO, 0, len(items))
	for i := range items {
		dtos = append(dtos, toUserDTO(&items[i]))
	}
	a.json(w, http.StatusOK, map[string]any{"items": dtos})
}

type roleRequest struct {
	Role string `json:"role"`
}

func (a *App) UserRoleUpdate(w http.ResponseWriter, r *http.Request) {
	if !a.requireAdmin(w, r) {
		return
	}
	var req roleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	role := domain.Role(req.Role)
	if !role.Valid() {
		a.error(w, http.StatusBadRequest, "bad_request", "role must be student, moderator or admin")
		return
	}

	email := chi.URLParam(r, "email")
	u, err := a.Users.UpdateRole(r.Context(), email, role)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "user not found")
			return
		}
		a.Logger.Error().Err(err).Str("email", email).Msg("update role failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to update role")
		return
	}
	a.json(w, http.StatusOK, toUserDTO(u))
}

func (a *App) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	caller, err := a.callerWithRole(r)
	if err != nil {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return false
	}
	if caller.Role != domain.RoleAdmin {
		a.error(w, http.StatusForbidden, "forbidden", "admin role required")
		return false
	}
	return true
}

// loginCountry resolves the caller's country from the request IP. Best
// effort: empty when the GeoIP database is not configured or the lookup
// fails.
func (a *App) loginCountry(r *http.Request) string {
	if a.GeoIP == nil {
		return ""
	}
	ip := r.RemoteAddr
	if host, _, err := net.SplitHostPort(ip); err == nil {
		ip = host
	}
	code, err := a.GeoIP.CountryCode(ip)
	if err != nil {
		return ""
	}
	return code
}
