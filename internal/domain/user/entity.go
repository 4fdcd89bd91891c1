package user

import "time"

type User struct {
	ID              string
	Email           string
	FullName        string
	PasswordHash    *string
	IsAdmin         bool
	IsActive        bool
	OAuthProvider   *string
	OAuthProviderID *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// DTO / Join
	EmployeeID *string
}

// CanManage reports whether the user may use the admin surfaces.
func (u *User) CanManage() bool {
	return u.IsAdmin
}
