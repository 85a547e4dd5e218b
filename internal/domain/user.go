package domain

import "time"

// Role is an account's marketplace role. Accounts start as students; only an
// admin promotes to moderator or admin.
type Role string

const (
	RoleStudent   Role = "student"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleModerator || r == RoleAdmin
}

// CanModerate reports whether the role may own scholarships and the orders
// placed against them.
func (r Role) CanModerate() bool {
	return r == RoleModerator || r == RoleAdmin
}

// User is keyed by email, which is also the identity the token verifier
// yields. LastLoginCountry is a best-effort GeoIP snapshot of the most
// recent sign-in and may be empty.
type User struct {
	Email            string
	Name             string
	Role             Role
	LastLoginCountry string
	CreatedAt        time.Time
	LastLoggedIn     time.Time
}
