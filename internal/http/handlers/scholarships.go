package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"scholarmarket/internal/domain"
	"scholarmarket/internal/middleware"
)

type scholarshipRequest struct {
	ScholarshipName string `json:"scholarship_name"`
	UniversityName  string `json:"university_name"`
	Country         string `json:"country"`
	Category        string `json:"category"`
	TuitionFee      *int64 `json:"tuition_fee"`
	ApplicationFee  *int64 `json:"application_fee"`
	ServiceCharge   *int64 `json:"service_charge"`
}

type scholarshipDTO struct {
	ID              string    `json:"id"`
	ScholarshipName string    `json:"scholarship_name"`
	UniversityName  string    `json:"university_name"`
	Country         string    `json:"country"`
	Category        string    `json:"category"`
	TuitionFee      int64     `json:"tuition_fee"`
	ApplicationFee  int64     `json:"application_fee"`
	ServiceCharge   int64     `json:"service_charge"`
	ModeratorEmail  string    `json:"moderator_email"`
	ModeratorName   string    `json:"moderator_name"`
	CreatedAt       time.Time `json:"created_at"`
}

func toScholarshipDTO(s *domain.Scholarship) scholarshipDTO {
	return scholarshipDTO{
		ID:              s.ID,
		ScholarshipName: s.ScholarshipName,
		UniversityName:  s.UniversityName,
		Country:         s.Country,
		Category:        s.Category,
		TuitionFee:      s.TuitionFee,
		ApplicationFee:  s.ApplicationFee,
		ServiceCharge:   s.ServiceCharge,
		ModeratorEmail:  s.ModeratorEmail,
		ModeratorName:   s.ModeratorName,
		CreatedAt:       s.CreatedAt,
	}
}

// canonicalCountry normalizes free-form country input so equality filters on
// the public listing behave ("united kingdom" and "United Kingdom" are one
// bucket).
func canonicalCountry(country string) string {
	return cases.Title(language.English).String(strings.TrimSpace(country))
}

func (a *App) ScholarshipsCreate(w http.ResponseWriter, r *http.Request) {
	caller, err := a.callerWithRole(r)
	if err != nil {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	if !caller.Role.CanModerate() {
		a.error(w, http.StatusForbidden, "forbidden", "moderator role required")
		return
	}

	var req scholarshipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if strings.TrimSpace(req.ScholarshipName) == "" || strings.TrimSpace(req.UniversityName) == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "scholarship_name and university_name are required")
		return
	}

	s := &domain.Scholarship{
		ScholarshipName: strings.TrimSpace(req.ScholarshipName),
		UniversityName:  strings.TrimSpace(req.UniversityName),
		Country:         canonicalCountry(req.Country),
		Category:        strings.TrimSpace(req.Category),
		ModeratorEmail:  caller.Email,
		ModeratorName:   firstNonEmpty(middleware.CallerNameFromContext(r.Context()), caller.Name),
	}
	if req.TuitionFee != nil {
		s.TuitionFee = *req.TuitionFee
	}
	if req.ApplicationFee != nil {
		s.ApplicationFee = *req.ApplicationFee
	}
	if req.ServiceCharge != nil {
		s.ServiceCharge = *req.ServiceCharge
	}
	if s.TuitionFee < 0 || s.ApplicationFee < 0 || s.ServiceCharge < 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "fees must not be negative")
		return
	}

	created, err := a.Scholarships.Create(r.Context(), s)
	if err != nil {
		a.Logger.Error().Err(err).Msg("create scholarship failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to create scholarship")
		return
	}
	a.json(w, http.StatusCreated, toScholarshipDTO(created))
}

func (a *App) ScholarshipsList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.ScholarshipFilter{
		Search:   q.Get("search"),
		Country:  canonicalCountry(q.Get("country")),
		Category: strings.TrimSpace(q.Get("category")),
	}
	switch q.Get("sort") {
	case string(domain.SortFeesAsc):
		filter.Sort = domain.SortFeesAsc
	case string(domain.SortFeesDesc):
		filter.Sort = domain.SortFeesDesc
	}

	items, err := a.Scholarships.List(r.Context(), filter)
	if err != nil {
		a.Logger.Error().Err(err).Msg("list scholarships failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load scholarships")
		return
	}
	dtos := make([]scholarshipDTO, 0, len(items))
	for i := range items {
		dtos = append(dtos, toScholarshipDTO(&items[i]))
	}
	a.json(w, http.StatusOK, map[string]any{"items": dtos})
}

func (a *App) ScholarshipsGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s, err := a.Scholarships.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "scholarship not found")
			return
		}
		a.Logger.Error().Err(err).Str("scholarship_id", id).Msg("get scholarship failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load scholarship")
		return
	}
	a.json(w, http.StatusOK, toScholarshipDTO(s))
}

func (a *App) ScholarshipsMine(w http.ResponseWriter, r *http.Request) {
	email := a.currentUserEmail(r)
	if email == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	items, err := a.Scholarships.ListByModerator(r.Context(), email)
	if err != nil {
		a.Logger.Error().Err(err).Msg("list moderated scholarships failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load scholarships")
		return
	}
	dtos := make([]scholarshipDTO, 0, len(items))
	for i := range items {
		dtos = append(dtos, toScholarshipDTO(&items[i]))
	}
	a.json(w, http.StatusOK, map[string]any{"items": dtos})
}

func (a *App) ScholarshipsUpdate(w http.ResponseWriter, r *http.Request) {
	caller, err := a.callerWithRole(r)
	if err != nil {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	var req scholarshipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	patch := domain.ScholarshipPatch{
		ScholarshipName: strings.TrimSpace(req.ScholarshipName),
		UniversityName:  strings.TrimSpace(req.UniversityName),
		Country:         canonicalCountry(req.Country),
		Category:        strings.TrimSpace(req.Category),
		TuitionFee:      req.TuitionFee,
		ApplicationFee:  req.ApplicationFee,
		ServiceCharge:   req.ServiceCharge,
	}

	id := chi.URLParam(r, "id")
	var updated *domain.Scholarship
	if caller.Role == domain.RoleAdmin {
		updated, err = a.Scholarships.Update(r.Context(), id, patch)
	} else {
		updated, err = a.Scholarships.UpdateOwned(r.Context(), id, caller.Email, patch)
	}
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			a.error(w, http.StatusForbidden, "forbidden", "not the scholarship's moderator")
		case errors.Is(err, domain.ErrNotFound):
			a.error(w, http.StatusNotFound, "not_found", "scholarship not found")
		default:
			a.Logger.Error().Err(err).Str("scholarship_id", id).Msg("update scholarship failed")
			a.error(w, http.StatusInternalServerError, "internal", "failed to update scholarship")
		}
		return
	}
	a.json(w, http.StatusOK, toScholarshipDTO(updated))
}

func (a *App) ScholarshipsDelete(w http.ResponseWriter, r *http.Request) {
	caller, err := a.callerWithRole(r)
	if err != nil {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	id := chi.URLParam(r, "id")
	if caller.Role == domain.RoleAdmin {
		err = a.Scholarships.Delete(r.Context(), id)
	} else {
		err = a.Scholarships.DeleteOwned(r.Context(), id, caller.Email)
	}
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			a.error(w, http.StatusForbidden, "forbidden", "not the scholarship's moderator")
		case errors.Is(err, domain.ErrNotFound):
			a.error(w, http.StatusNotFound, "not_found", "scholarship not found")
		default:
			a.Logger.Error().Err(err).Str("scholarship_id", id).Msg("delete scholarship failed")
			a.error(w, http.StatusInternalServerError, "internal", "failed to delete scholarship")
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
