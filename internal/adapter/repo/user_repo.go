package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"scholarmarket/internal/domain"
	"scholarmarket/internal/infra"
	"scholarmarket/internal/sqlinline"
)

// UserRepositoryPG implements domain.UserRepository backed by PostgreSQL.
type UserRepositoryPG struct {
	sql infra.SQLExecutor
}

func NewUserRepository(sql infra.SQLExecutor) *UserRepositoryPG {
	return &UserRepositoryPG{sql: sql}
}

func (r *UserRepositoryPG) UpsertOnLogin(ctx context.Context, email, name, country string) (*domain.User, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QUpsertUserOnLogin, email, name, country)
	return scanUser(row)
}

func (r *UserRepositoryPG) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QSelectUserByEmail, email)
	return scanUser(row)
}

func (r *UserRepositoryPG) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListUsers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.User
	for rows.Next() {
		var u domain.User
		var role string
		if err := rows.Scan(&u.Email, &u.Name, &role, &u.LastLoginCountry, &u.CreatedAt, &u.LastLoggedIn); err != nil {
			return nil, err
		}
		u.Role = domain.Role(role)
		items = append(items, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *UserRepositoryPG) UpdateRole(ctx context.Context, email string, role domain.Role) (*domain.User, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QUpdateUserRole, email, string(role))
	return scanUser(row)
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	var role string
	if err := row.Scan(&u.Email, &u.Name, &role, &u.LastLoginCountry, &u.CreatedAt, &u.LastLoggedIn); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	u.Role = domain.Role(role)
	return &u, nil
}

var _ domain.UserRepository = (*UserRepositoryPG)(nil)
