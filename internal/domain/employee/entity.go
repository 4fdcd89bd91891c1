package employee

import "time"

type Employee struct {
	ID           string
	UserID       string
	EmployeeCode string
	Role         string
	Department   string
	JoiningDate  time.Time
	Salary       float64
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// DTO / Join
	FullName *string
	Email    *string
}
