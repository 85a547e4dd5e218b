package domain

import "time"

// Scholarship is a marketplace listing owned by the moderator who created it.
// All monetary amounts are in cents.
type Scholarship struct {
	ID              string
	ScholarshipName string
	UniversityName  string
	Country         string
	Category        string
	TuitionFee      int64
	ApplicationFee  int64
	ServiceCharge   int64
	ModeratorEmail  string
	ModeratorName   string
	CreatedAt       time.Time
}

// CheckoutTotal is the amount a student pays to apply: the application fee
// plus the platform service charge. Tuition is informational only.
func (s *Scholarship) CheckoutTotal() int64 {
	return s.ApplicationFee + s.ServiceCharge
}

// ScholarshipFilter drives the public listing query. Zero values mean "no
// constraint" for that dimension.
type ScholarshipFilter struct {
	Search   string
	Country  string
	Category string
	Sort     ScholarshipSort
}

type ScholarshipSort string

const (
	SortNewest   ScholarshipSort = ""
	SortFeesAsc  ScholarshipSort = "fees_asc"
	SortFeesDesc ScholarshipSort = "fees_desc"
)

// ScholarshipPatch carries partial updates. Empty strings and nil amounts
// leave the stored value untouched.
type ScholarshipPatch struct {
	ScholarshipName string
	UniversityName  string
	Country         string
	Category        string
	TuitionFee      *int64
	ApplicationFee  *int64
	ServiceCharge   *int64
}
