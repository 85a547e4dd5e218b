package domain

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// ErrSessionRequired marks a reconcile call with no session reference.
	// A client mistake, not a retryable condition.
	ErrSessionRequired = errors.New("checkout session reference required")

	// ErrScholarshipMissing marks a paid session whose target scholarship no
	// longer exists. The payment succeeded upstream, so this is surfaced
	// distinctly and never folded into a generic not-found.
	ErrScholarshipMissing = errors.New("referenced scholarship missing")

	// ErrDuplicateTransaction is returned by the order store when an insert
	// loses the uniqueness race on transaction id. The reconciler resolves it
	// by re-fetching; it never reaches a client.
	ErrDuplicateTransaction = errors.New("duplicate transaction reference")

	// ErrUpstreamUnavailable marks a failed round trip to the checkout
	// provider or storage. Safe to retry.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)
