package employee

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/staffsync/attendance-backend-go/internal/domain/attendance"
	"github.com/staffsync/attendance-backend-go/internal/domain/employee"
	"github.com/staffsync/attendance-backend-go/internal/domain/leave"
	"github.com/staffsync/attendance-backend-go/internal/domain/user"
	"github.com/staffsync/attendance-backend-go/internal/pkg/database"
	"github.com/staffsync/attendance-backend-go/internal/repository/postgresql"
	"golang.org/x/crypto/bcrypt"
)

// paidLeaveDays is the yearly allowance seeded for paid leave types.
const paidLeaveDays = 12

type EmployeeServiceImpl struct {
	db *database.DB
	employee.EmployeeRepository
	user.UserRepository
	leave.LeaveTypeRepository
	leave.LeaveBalanceRepository
	leave.LeaveRequestRepository
	attendance.AttendanceRepository
}

func NewEmployeeService(
	db *database.DB,
	employeeRepo employee.EmployeeRepository,
	userRepo user.UserRepository,
	leaveTypeRepo leave.LeaveTypeRepository,
	leaveBalanceRepo leave.LeaveBalanceRepository,
	leaveRequestRepo leave.LeaveRequestRepository,
	attendanceRepo attendance.AttendanceRepository,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		db:                     db,
		EmployeeRepository:     employeeRepo,
		UserRepository:         userRepo,
		LeaveTypeRepository:    leaveTypeRepo,
		LeaveBalanceRepository: leaveBalanceRepo,
		LeaveRequestRepository: leaveRequestRepo,
		AttendanceRepository:   attendanceRepo,
	}
}

// Create implements employee.EmployeeService. The user account, employee
// profile, and initial leave balances are created in one transaction.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	emailExists, err := s.UserRepository.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to check email: %w", err)
	}
	if emailExists {
		return employee.EmployeeResponse{}, employee.ErrEmailExists
	}

	codeExists, err := s.EmployeeRepository.ExistsByEmployeeCode(ctx, req.EmployeeCode)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to check employee code: %w", err)
	}
	if codeExists {
		return employee.EmployeeResponse{}, employee.ErrEmployeeCodeExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}
	passwordHash := string(hash)

	joiningDate, err := time.Parse("2006-01-02", req.JoiningDate)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to parse joining date: %w", err)
	}

	var created employee.Employee
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		newUser, err := s.UserRepository.Create(txCtx, user.User{
			Email:        req.Email,
			FullName:     req.FullName,
			PasswordHash: &passwordHash,
			IsAdmin:      req.IsAdmin,
			IsActive:     true,
		})
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		created, err = s.EmployeeRepository.Create(txCtx, employee.Employee{
			UserID:       newUser.ID,
			EmployeeCode: req.EmployeeCode,
			Role:         req.Role,
			Department:   req.Department,
			JoiningDate:  joiningDate,
			Salary:       req.Salary,
			IsActive:     true,
		})
		if err != nil {
			return fmt.Errorf("failed to create employee: %w", err)
		}

		// Paid types start with the yearly allowance, unpaid with zero
		leaveTypes, err := s.LeaveTypeRepository.List(txCtx)
		if err != nil {
			return fmt.Errorf("failed to list leave types: %w", err)
		}
		for _, leaveType := range leaveTypes {
			totalDays := 0
			if leaveType.IsPaid {
				totalDays = paidLeaveDays
			}
			if _, err := s.LeaveBalanceRepository.Create(txCtx, leave.LeaveBalance{
				EmployeeID:  created.ID,
				LeaveTypeID: leaveType.ID,
				TotalDays:   totalDays,
				UsedDays:    0,
			}); err != nil {
				return fmt.Errorf("failed to seed leave balance: %w", err)
			}
		}

		created.FullName = &newUser.FullName
		created.Email = &newUser.Email
		return nil
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return mapEmployeeToResponse(created), nil
}

// Get implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Get(ctx context.Context, employeeCode string) (employee.EmployeeResponse, error) {
	found, err := s.EmployeeRepository.GetByEmployeeCode(ctx, employeeCode)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return mapEmployeeToResponse(found), nil
}

// List implements employee.EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	if err := filter.Validate(); err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	employees, total, err := s.EmployeeRepository.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeeResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, mapEmployeeToResponse(emp))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))

	return employee.ListEmployeeResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Employees:  responses,
	}, nil
}

// Update implements employee.EmployeeService. Profile and account fields
// change together, so the two updates share a transaction.
func (s *EmployeeServiceImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	found, err := s.EmployeeRepository.GetByEmployeeCode(ctx, req.EmployeeCode)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	if req.Role != nil {
		found.Role = *req.Role
	}
	if req.Department != nil {
		found.Department = *req.Department
	}
	if req.JoiningDate != nil && *req.JoiningDate != "" {
		joiningDate, err := time.Parse("2006-01-02", *req.JoiningDate)
		if err == nil {
			found.JoiningDate = joiningDate
		}
	}
	if req.Salary != nil {
		found.Salary = *req.Salary
	}
	if req.IsActive != nil {
		found.IsActive = *req.IsActive
	}

	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.EmployeeRepository.Update(txCtx, found); err != nil {
			return fmt.Errorf("failed to update employee: %w", err)
		}

		if req.FullName != nil || req.IsActive != nil {
			userData, err := s.UserRepository.GetByID(txCtx, found.UserID)
			if err != nil {
				return fmt.Errorf("failed to get user: %w", err)
			}
			if req.FullName != nil {
				userData.FullName = *req.FullName
			}
			if req.IsActive != nil {
				userData.IsActive = *req.IsActive
			}
			if err := s.UserRepository.Update(txCtx, userData); err != nil {
				return fmt.Errorf("failed to update user: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	updated, err := s.EmployeeRepository.GetByID(ctx, found.ID)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to get updated employee: %w", err)
	}

	return mapEmployeeToResponse(updated), nil
}

// Delete implements employee.EmployeeService. The employee's leave data
// and the backing user account go with the profile.
func (s *EmployeeServiceImpl) Delete(ctx context.Context, employeeCode string) error {
	found, err := s.EmployeeRepository.GetByEmployeeCode(ctx, employeeCode)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to get employee: %w", err)
	}

	return postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.AttendanceRepository.DeleteByEmployee(txCtx, found.ID); err != nil {
			return fmt.Errorf("failed to delete attendance records: %w", err)
		}
		if err := s.LeaveRequestRepository.DeleteByEmployee(txCtx, found.ID); err != nil {
			return fmt.Errorf("failed to delete leave requests: %w", err)
		}
		if err := s.LeaveBalanceRepository.DeleteByEmployee(txCtx, found.ID); err != nil {
			return fmt.Errorf("failed to delete leave balances: %w", err)
		}
		if err := s.EmployeeRepository.Delete(txCtx, found.ID); err != nil {
			return fmt.Errorf("failed to delete employee: %w", err)
		}
		if err := s.UserRepository.Delete(txCtx, found.UserID); err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		return nil
	})
}

func mapEmployeeToResponse(emp employee.Employee) employee.EmployeeResponse {
	var fullName, email string
	if emp.FullName != nil {
		fullName = *emp.FullName
	}
	if emp.Email != nil {
		email = *emp.Email
	}

	return employee.EmployeeResponse{
		ID:           emp.ID,
		EmployeeCode: emp.EmployeeCode,
		FullName:     fullName,
		Email:        email,
		Role:         emp.Role,
		Department:   emp.Department,
		JoiningDate:  emp.JoiningDate.Format("2006-01-02"),
		Salary:       emp.Salary,
		IsActive:     emp.IsActive,
		CreatedAt:    emp.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:    emp.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
