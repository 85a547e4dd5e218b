package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"scholarmarket/internal/domain"
	"scholarmarket/internal/infra"
	"scholarmarket/internal/sqlinline"
)

const uniqueViolationCode = "23505"

// OrderRepositoryPG implements domain.OrderRepository. The orders table
// carries a unique constraint on transaction_id; Insert translates the
// resulting constraint violation into domain.ErrDuplicateTransaction so the
// reconciler can take its idempotent-replay branch.
type OrderRepositoryPG struct {
	sql infra.SQLExecutor
}

func NewOrderRepository(sql infra.SQLExecutor) *OrderRepositoryPG {
	return &OrderRepositoryPG{sql: sql}
}

func (r *OrderRepositoryPG) Insert(ctx context.Context, o *domain.Order) (*domain.Order, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QInsertOrder,
		o.SessionID, o.TransactionID, o.ScholarshipID, o.StudentEmail,
		o.AmountPaid, o.PaymentStatus, string(o.Status),
		o.ModeratorEmail, o.ModeratorName,
	)
	created, err := scanOrder(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, domain.ErrDuplicateTransaction
		}
		return nil, err
	}
	return created, nil
}

func (r *OrderRepositoryPG) GetByTransactionID(ctx context.Context, transactionID string) (*domain.Order, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QSelectOrderByTransaction, transactionID)
	return scanOrder(row)
}

func (r *OrderRepositoryPG) ListByStudent(ctx context.Context, email string) ([]domain.Order, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListOrdersByStudent, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

func (r *OrderRepositoryPG) ListByModerator(ctx context.Context, email string) ([]domain.Order, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListOrdersByModerator, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

func (r *OrderRepositoryPG) UpdateStatusOwned(ctx context.Context, id, moderatorEmail string, status domain.OrderStatus) (*domain.Order, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QUpdateOrderStatusOwned, id, moderatorEmail, string(status))
	o, err := scanOrder(row)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrForbidden
	}
	return o, err
}

func (r *OrderRepositoryPG) DeleteOwned(ctx context.Context, id, moderatorEmail string) error {
	tag, err := r.sql.Exec(ctx, sqlinline.QDeleteOrderOwned, id, moderatorEmail)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrForbidden
	}
	return nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	var status string
	err := row.Scan(&o.ID, &o.SessionID, &o.TransactionID, &o.ScholarshipID, &o.StudentEmail,
		&o.AmountPaid, &o.PaymentStatus, &status, &o.ModeratorEmail, &o.ModeratorName, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	o.Status = domain.OrderStatus(status)
	return &o, nil
}

func collectOrders(rows pgx.Rows) ([]domain.Order, error) {
	var items []domain.Order
	for rows.Next() {
		var o domain.Order
		var status string
		if err := rows.Scan(&o.ID, &o.SessionID, &o.TransactionID, &o.ScholarshipID, &o.StudentEmail,
			&o.AmountPaid, &o.PaymentStatus, &status, &o.ModeratorEmail, &o.ModeratorName, &o.CreatedAt); err != nil {
			return nil, err
		}
		o.Status = domain.OrderStatus(status)
		items = append(items, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

var _ domain.OrderRepository = (*OrderRepositoryPG)(nil)
