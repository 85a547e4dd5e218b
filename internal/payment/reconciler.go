package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"scholarmarket/internal/domain"
	"scholarmarket/internal/providers/stripe"
)

// MetadataScholarshipID is the session metadata key carrying the target
// scholarship, set at session creation and read back during reconciliation.
const MetadataScholarshipID = "scholarship_id"

// CheckoutProvider is the slice of the hosted checkout API the reconciler
// needs: the authoritative session record for a reference.
type CheckoutProvider interface {
	GetCheckoutSession(ctx context.Context, sessionID string) (*stripe.CheckoutSession, error)
}

// Result is the stable outcome of reconciling a checkout session. For a paid
// session Order is set and Replayed reports whether the record already
// existed. For a session that never completed, Paid is false and
// PaymentStatus carries the provider's reported status; that is a valid
// terminal outcome, not an error.
type Result struct {
	Paid          bool
	PaymentStatus string
	Replayed      bool
	Order         *domain.Order
}

// Reconciler converts a completed-checkout reference into a durable,
// deduplicated order record. Dependencies are injected; the process entry
// point owns their lifecycle.
type Reconciler struct {
	scholarships domain.ScholarshipRepository
	orders       domain.OrderRepository
	checkout     CheckoutProvider
	logger       zerolog.Logger
}

func NewReconciler(scholarships domain.ScholarshipRepository, orders domain.OrderRepository, checkout CheckoutProvider, logger zerolog.Logger) *Reconciler {
	return &Reconciler{
		scholarships: scholarships,
		orders:       orders,
		checkout:     checkout,
		logger:       logger,
	}
}

// Reconcile fetches the session from the provider and records at most one
// order for its transaction reference. Calling it again for the same
// underlying payment, sequentially or concurrently, returns the first call's
// order: the pre-insert lookup catches replays, and a losing concurrent
// insert fails on the store's uniqueness constraint and is resolved by
// re-fetching the winner's row.
func (r *Reconciler) Reconcile(ctx context.Context, sessionID string) (*Result, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, domain.ErrSessionRequired
	}

	session, err := r.checkout.GetCheckoutSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch checkout session: %v", domain.ErrUpstreamUnavailable, err)
	}

	if session.PaymentStatus != stripe.PaymentStatusPaid {
		r.logger.Info().
			Str("session_id", sessionID).
			Str("payment_status", session.PaymentStatus).
			Msg("checkout session not paid, nothing to record")
		return &Result{Paid: false, PaymentStatus: session.PaymentStatus}, nil
	}

	scholarshipID := session.Metadata[MetadataScholarshipID]
	scholarship, err := r.scholarships.GetByID(ctx, scholarshipID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			r.logger.Error().
				Str("session_id", sessionID).
				Str("scholarship_id", scholarshipID).
				Msg("paid session references a missing scholarship")
			return nil, fmt.Errorf("scholarship %q: %w", scholarshipID, domain.ErrScholarshipMissing)
		}
		return nil, fmt.Errorf("lookup scholarship %q: %w", scholarshipID, err)
	}

	existing, err := r.orders.GetByTransactionID(ctx, session.PaymentIntent)
	if err == nil {
		return &Result{Paid: true, PaymentStatus: session.PaymentStatus, Replayed: true, Order: existing}, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("lookup order by transaction: %w", err)
	}

	// Moderator identity is copied off the scholarship here, not referenced,
	// so later reassignment never changes who owns this order.
	order := &domain.Order{
		SessionID:      session.ID,
		TransactionID:  session.PaymentIntent,
		ScholarshipID:  scholarship.ID,
		StudentEmail:   session.CustomerEmail,
		AmountPaid:     session.AmountTotal,
		PaymentStatus:  session.PaymentStatus,
		Status:         domain.OrderPending,
		ModeratorEmail: scholarship.ModeratorEmail,
		ModeratorName:  scholarship.ModeratorName,
	}

	created, err := r.orders.Insert(ctx, order)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateTransaction) {
			// Lost the race: another reconcile wrote the row between our
			// lookup and insert. Same answer as finding it up front.
			winner, ferr := r.orders.GetByTransactionID(ctx, session.PaymentIntent)
			if ferr != nil {
				return nil, fmt.Errorf("re-fetch order after duplicate insert: %w", ferr)
			}
			return &Result{Paid: true, PaymentStatus: session.PaymentStatus, Replayed: true, Order: winner}, nil
		}
		return nil, fmt.Errorf("insert order: %w", err)
	}

	r.logger.Info().
		Str("order_id", created.ID).
		Str("transaction_id", created.TransactionID).
		Str("scholarship_id", created.ScholarshipID).
		Msg("order recorded")
	return &Result{Paid: true, PaymentStatus: session.PaymentStatus, Order: created}, nil
}
