package domain

import "context"

// ScholarshipRepository defines access methods for scholarship listings.
type ScholarshipRepository interface {
	Create(ctx context.Context, s *Scholarship) (*Scholarship, error)
	GetByID(ctx context.Context, id string) (*Scholarship, error)
	List(ctx context.Context, filter ScholarshipFilter) ([]Scholarship, error)
	ListByModerator(ctx context.Context, email string) ([]Scholarship, error)

	// UpdateOwned and DeleteOwned run as a single statement keyed on both id
	// and moderator email so the ownership check and the mutation cannot
	// observe different snapshots. Zero rows affected means ErrForbidden.
	UpdateOwned(ctx context.Context, id, moderatorEmail string, patch ScholarshipPatch) (*Scholarship, error)
	DeleteOwned(ctx context.Context, id, moderatorEmail string) error

	// Update and Delete are the admin variants, keyed on id only.
	Update(ctx context.Context, id string, patch ScholarshipPatch) (*Scholarship, error)
	Delete(ctx context.Context, id string) error
}

// OrderRepository handles order persistence. The backing store enforces a
// uniqueness constraint on transaction id; Insert reports a losing
// concurrent insert as ErrDuplicateTransaction.
type OrderRepository interface {
	Insert(ctx context.Context, o *Order) (*Order, error)
	GetByTransactionID(ctx context.Context, transactionID string) (*Order, error)
	ListByStudent(ctx context.Context, email string) ([]Order, error)
	ListByModerator(ctx context.Context, email string) ([]Order, error)

	// UpdateStatusOwned and DeleteOwned are the ownership gate: one statement
	// keyed on id and moderator email. Zero rows means ErrForbidden, also
	// when no such order exists.
	UpdateStatusOwned(ctx context.Context, id, moderatorEmail string, status OrderStatus) (*Order, error)
	DeleteOwned(ctx context.Context, id, moderatorEmail string) error
}

// UserRepository defines access methods for user accounts keyed on email.
type UserRepository interface {
	// UpsertOnLogin creates the account on first sign-in and touches the
	// last-login fields on later ones. It never changes an existing role.
	UpsertOnLogin(ctx context.Context, email, name, country string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]User, error)
	UpdateRole(ctx context.Context, email string, role Role) (*User, error)
}
