package repo

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"scholarmarket/internal/domain"
)

func scholarshipRowValues(s domain.Scholarship) []any {
	return []any{
		s.ID, s.ScholarshipName, s.UniversityName, s.Country, s.Category,
		s.TuitionFee, s.ApplicationFee, s.ServiceCharge,
		s.ModeratorEmail, s.ModeratorName, s.CreatedAt,
	}
}

func sampleScholarship() domain.Scholarship {
	return domain.Scholarship{
		ID:              "7f1c2d3e-0000-4f0f-96d9-0f6a90b5a222",
		ScholarshipName: "Merit Excellence Award",
		UniversityName:  "University of Grenoble",
		Country:         "France",
		Category:        "masters",
		TuitionFee:      1200000,
		ApplicationFee:  10000,
		ServiceCharge:   2500,
		ModeratorEmail:  "mod@example.com",
		ModeratorName:   "Mod One",
		CreatedAt:       time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC),
	}
}

type listCapture struct {
	query string
	args  []any
}

func listWith(t *testing.T, filter domain.ScholarshipFilter) listCapture {
	t.Helper()
	var captured listCapture
	sql := &fakeExecutor{
		query: func(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
			captured.query = query
			captured.args = args
			return &sliceRows{}, nil
		},
	}
	r := NewScholarshipRepository(sql)
	if _, err := r.List(context.Background(), filter); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	return captured
}

func TestListDefaultsToNewestFirst(t *testing.T) {
	got := listWith(t, domain.ScholarshipFilter{})
	if !strings.Contains(got.query, "order by created_at desc") {
		t.Fatalf("query missing default sort:\n%s", got.query)
	}
	if strings.Contains(got.query, "where") {
		t.Fatalf("unfiltered list must carry no where clause:\n%s", got.query)
	}
	if len(got.args) != 0 {
		t.Fatalf("unfiltered list bound %d args", len(got.args))
	}
}

func TestListBindsSearchAndFilters(t *testing.T) {
	got := listWith(t, domain.ScholarshipFilter{
		Search:   "merit",
		Country:  "France",
		Category: "masters",
		Sort:     domain.SortFeesAsc,
	})
	if !strings.Contains(got.query, "scholarship_name ilike $1 or university_name ilike $1") {
		t.Fatalf("search clause missing:\n%s", got.query)
	}
	if !strings.Contains(got.query, "country = $2") || !strings.Contains(got.query, "category = $3") {
		t.Fatalf("equality filters missing:\n%s", got.query)
	}
	if !strings.Contains(got.query, "order by application_fee + service_charge asc") {
		t.Fatalf("fee sort missing:\n%s", got.query)
	}
	want := []any{"%merit%", "France", "masters"}
	if len(got.args) != len(want) {
		t.Fatalf("bound %d args, want %d", len(got.args), len(want))
	}
	for i := range want {
		if got.args[i] != want[i] {
			t.Fatalf("arg %d = %v, want %v", i, got.args[i], want[i])
		}
	}
}

func TestListTrimsBlankSearch(t *testing.T) {
	got := listWith(t, domain.ScholarshipFilter{Search: "   "})
	if len(got.args) != 0 {
		t.Fatalf("blank search must bind no args, got %v", got.args)
	}
}

func TestListFeesDescSort(t *testing.T) {
	got := listWith(t, domain.ScholarshipFilter{Sort: domain.SortFeesDesc})
	if !strings.Contains(got.query, "order by application_fee + service_charge desc") {
		t.Fatalf("descending fee sort missing:\n%s", got.query)
	}
}

func TestUpdateOwnedZeroRowsIsForbidden(t *testing.T) {
	sql := &fakeExecutor{
		queryRow: func(ctx context.Context, query string, args ...any) pgx.Row {
			return simpleRow{}
		},
	}
	r := NewScholarshipRepository(sql)

	_, err := r.UpdateOwned(context.Background(), "some-id", "other-mod@example.com", domain.ScholarshipPatch{})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("error = %v, want ErrForbidden", err)
	}
}

func TestDeleteDistinguishesOwnedFromAdmin(t *testing.T) {
	sql := &fakeExecutor{
		exec: func(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
			return pgconn.NewCommandTag("DELETE 0"), nil
		},
	}
	r := NewScholarshipRepository(sql)

	if err := r.DeleteOwned(context.Background(), "some-id", "mod@example.com"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("DeleteOwned error = %v, want ErrForbidden", err)
	}
	if err := r.Delete(context.Background(), "some-id"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Delete error = %v, want ErrNotFound", err)
	}
}

func TestGetByIDReturnsRow(t *testing.T) {
	want := sampleScholarship()
	sql := &fakeExecutor{
		queryRow: func(ctx context.Context, query string, args ...any) pgx.Row {
			return simpleRow{scan: func(dest ...any) error {
				return assignRow(scholarshipRowValues(want), dest...)
			}}
		},
	}
	r := NewScholarshipRepository(sql)

	got, err := r.GetByID(context.Background(), want.ID)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if got.ScholarshipName != want.ScholarshipName || got.CheckoutTotal() != 12500 {
		t.Fatalf("unexpected scholarship: %+v", got)
	}
}
