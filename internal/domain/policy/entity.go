package policy

import "time"

type CompanyPolicy struct {
	ID        string
	Title     string
	FilePath  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CompanyHoliday struct {
	ID        string
	StartDate time.Time
	EndDate   time.Time
	Reason    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
