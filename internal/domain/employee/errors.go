package employee

import "errors"

var (
	ErrEmployeeNotFound     = errors.New("employee not found")
	ErrEmployeeCodeExists   = errors.New("employee code already exists")
	ErrEmployeeCodeReserved = errors.New("employee code is reserved")
	ErrEmailExists          = errors.New("email already registered")
	ErrNoEmployeeProfile    = errors.New("no employee profile linked to this account")
	ErrEmployeeInactive     = errors.New("employee is inactive")
)
