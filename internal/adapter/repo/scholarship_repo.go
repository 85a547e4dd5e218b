package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"scholarmarket/internal/domain"
	"scholarmarket/internal/infra"
	"scholarmarket/internal/sqlinline"
)

// ScholarshipRepositoryPG implements domain.ScholarshipRepository on top of
// the shared SQL executor.
type ScholarshipRepositoryPG struct {
	sql infra.SQLExecutor
}

func NewScholarshipRepository(sql infra.SQLExecutor) *ScholarshipRepositoryPG {
	return &ScholarshipRepositoryPG{sql: sql}
}

func (r *ScholarshipRepositoryPG) Create(ctx context.Context, s *domain.Scholarship) (*domain.Scholarship, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QInsertScholarship,
		s.ScholarshipName, s.UniversityName, s.Country, s.Category,
		s.TuitionFee, s.ApplicationFee, s.ServiceCharge,
		s.ModeratorEmail, s.ModeratorName,
	)
	return scanScholarship(row)
}

func (r *ScholarshipRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Scholarship, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QSelectScholarshipByID, id)
	return scanScholarship(row)
}

// List builds the public listing query from the filter: an ILIKE search over
// scholarship and university name, equality filters on country and category,
// and one of three sort orders.
func (r *ScholarshipRepositoryPG) List(ctx context.Context, filter domain.ScholarshipFilter) ([]domain.Scholarship, error) {
	var b strings.Builder
	b.WriteString(sqlinline.QListScholarshipsBase)

	var conds []string
	var args []any
	if s := strings.TrimSpace(filter.Search); s != "" {
		args = append(args, "%"+s+"%")
		conds = append(conds, fmt.Sprintf("(scholarship_name ilike $%d or university_name ilike $%d)", len(args), len(args)))
	}
	if filter.Country != "" {
		args = append(args, filter.Country)
		conds = append(conds, fmt.Sprintf("country = $%d", len(args)))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if len(conds) > 0 {
		b.WriteString("where ")
		b.WriteString(strings.Join(conds, " and "))
		b.WriteString("\n")
	}
	switch filter.Sort {
	case domain.SortFeesAsc:
		b.WriteString("order by application_fee + service_charge asc;")
	case domain.SortFeesDesc:
		b.WriteString("order by application_fee + service_charge desc;")
	default:
		b.WriteString("order by created_at desc;")
	}

	rows, err := r.sql.Query(ctx, b.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectScholarships(rows)
}

func (r *ScholarshipRepositoryPG) ListByModerator(ctx context.Context, email string) ([]domain.Scholarship, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListScholarshipsByModerator, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectScholarships(rows)
}

func (r *ScholarshipRepositoryPG) UpdateOwned(ctx context.Context, id, moderatorEmail string, patch domain.ScholarshipPatch) (*domain.Scholarship, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QUpdateScholarshipOwned,
		id, moderatorEmail,
		patch.ScholarshipName, patch.UniversityName, patch.Country, patch.Category,
		patch.TuitionFee, patch.ApplicationFee, patch.ServiceCharge,
	)
	s, err := scanScholarship(row)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrForbidden
	}
	return s, err
}

func (r *ScholarshipRepositoryPG) DeleteOwned(ctx context.Context, id, moderatorEmail string) error {
	tag, err := r.sql.Exec(ctx, sqlinline.QDeleteScholarshipOwned, id, moderatorEmail)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrForbidden
	}
	return nil
}

func (r *ScholarshipRepositoryPG) Update(ctx context.Context, id string, patch domain.ScholarshipPatch) (*domain.Scholarship, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QUpdateScholarship,
		id,
		patch.ScholarshipName, patch.UniversityName, patch.Country, patch.Category,
		patch.TuitionFee, patch.ApplicationFee, patch.ServiceCharge,
	)
	return scanScholarship(row)
}

func (r *ScholarshipRepositoryPG) Delete(ctx context.Context, id string) error {
	tag, err := r.sql.Exec(ctx, sqlinline.QDeleteScholarship, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanScholarship(row pgx.Row) (*domain.Scholarship, error) {
	var s domain.Scholarship
	err := row.Scan(&s.ID, &s.ScholarshipName, &s.UniversityName, &s.Country, &s.Category,
		&s.TuitionFee, &s.ApplicationFee, &s.ServiceCharge,
		&s.ModeratorEmail, &s.ModeratorName, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func collectScholarships(rows pgx.Rows) ([]domain.Scholarship, error) {
	var items []domain.Scholarship
	for rows.Next() {
		var s domain.Scholarship
		if err := rows.Scan(&s.ID, &s.ScholarshipName, &s.UniversityName, &s.Country, &s.Category,
			&s.TuitionFee, &s.ApplicationFee, &s.ServiceCharge,
			&s.ModeratorEmail, &s.ModeratorName, &s.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

var _ domain.ScholarshipRepository = (*ScholarshipRepositoryPG)(nil)
