package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"scholarmarket/internal/domain"
	"scholarmarket/internal/payment"
	"scholarmarket/internal/providers/stripe"
)

type checkoutCreateRequest struct {
	ScholarshipID string `json:"scholarship_id"`
}

type checkoutConfirmRequest struct {
	SessionID string `json:"session_id"`
}

type orderDTO struct {
	ID             string    `json:"id"`
	SessionID      string    `json:"session_id"`
	TransactionID  string    `json:"transaction_id"`
	ScholarshipID  string    `json:"scholarship_id"`
	StudentEmail   string    `json:"student_email"`
	AmountPaid     int64     `json:"amount_paid"`
	PaymentStatus  string    `json:"payment_status"`
	Status         string    `json:"status"`
	ModeratorEmail string    `json:"moderator_email"`
	ModeratorName  string    `json:"moderator_name"`
	CreatedAt      time.Time `json:"created_at"`
}

func toOrderDTO(o *domain.Order) orderDTO {
	return orderDTO{
		ID:             o.ID,
		SessionID:      o.SessionID,
		TransactionID:  o.TransactionID,
		ScholarshipID:  o.ScholarshipID,
		StudentEmail:   o.StudentEmail,
		AmountPaid:     o.AmountPaid,
		PaymentStatus:  o.PaymentStatus,
		Status:         string(o.Status),
		ModeratorEmail: o.ModeratorEmail,
		ModeratorName:  o.ModeratorName,
		CreatedAt:      o.CreatedAt,
	}
}

// CheckoutCreate opens a hosted payment session for a scholarship. Amounts
// come from the stored listing, never from the client.
func (a *App) CheckoutCreate(w http.ResponseWriter, r *http.Request) {
	email := a.currentUserEmail(r)
	if email == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	var req checkoutCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.ScholarshipID == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "scholarship_id is required")
		return
	}

	scholarship, err := a.Scholarships.GetByID(r.Context(), req.ScholarshipID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "scholarship not found")
			return
		}
		a.Logger.Error().Err(err).Str("scholarship_id", req.ScholarshipID).Msg("load scholarship failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load scholarship")
		return
	}

	total := scholarship.CheckoutTotal()
	if total <= 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "scholarship has no payable amount")
		return
	}

	session, err := a.Checkout.CreateCheckoutSession(r.Context(), stripe.CreateSessionParams{
		ProductName:        scholarship.ScholarshipName,
		ProductDescription: scholarship.UniversityName,
		Currency:           a.Cfg.CheckoutCurrency,
		Amount:             total,
		CustomerEmail:      email,
		Metadata: map[string]string{
			payment.MetadataScholarshipID: scholarship.ID,
			"student_email":               email,
		},
		SuccessURL: a.Cfg.ClientBaseURL + "/payment-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  a.Cfg.ClientBaseURL + "/scholarships/" + scholarship.ID,
	})
	if err != nil {
		a.Logger.Error().Err(err).Str("scholarship_id", scholarship.ID).Msg("create checkout session failed")
		a.error(w, http.StatusBadGateway, "upstream_unavailable", "checkout provider unavailable")
		return
	}

	a.json(w, http.StatusOK, map[string]string{"url": session.URL})
}

// CheckoutConfirm reconciles a finished checkout into a durable order. The
// endpoint is safe to call any number of times for the same payment; replays
// get the originally recorded order back.
func (a *App) CheckoutConfirm(w http.ResponseWriter, r *http.Request) {
	var req checkoutConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	result, err := a.Reconciler.Reconcile(r.Context(), req.SessionID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSessionRequired):
			a.error(w, http.StatusBadRequest, "bad_request", "session_id is required")
		case errors.Is(err, domain.ErrScholarshipMissing):
			a.error(w, http.StatusNotFound, "scholarship_missing", "payment completed but the scholarship no longer exists")
		case errors.Is(err, domain.ErrUpstreamUnavailable):
			a.error(w, http.StatusBadGateway, "upstream_unavailable", "checkout provider unavailable, retry later")
		default:
			a.Logger.Error().Err(err).Str("session_id", req.SessionID).Msg("reconcile failed")
			a.error(w, http.StatusInternalServerError, "internal", "failed to confirm payment")
		}
		return
	}

	if !result.Paid {
		a.json(w, http.StatusBadRequest, map[string]any{
			"success":        false,
			"payment_status": result.PaymentStatus,
		})
		return
	}

	a.json(w, http.StatusOK, map[string]any{
		"success": true,
		"order":   toOrderDTO(result.Order),
	})
}
