package leave

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/staffsync/attendance-backend-go/internal/domain/employee"
	"github.com/staffsync/attendance-backend-go/internal/domain/leave"
	"github.com/staffsync/attendance-backend-go/internal/pkg/database"
	"github.com/staffsync/attendance-backend-go/internal/pkg/validator"
	"github.com/staffsync/attendance-backend-go/internal/repository/postgresql"
)

type LeaveServiceImpl struct {
	db *database.DB
	leave.LeaveTypeRepository
	leave.LeaveBalanceRepository
	leave.LeaveRequestRepository
	employee.EmployeeRepository
}

func NewLeaveService(
	db *database.DB,
	leaveTypeRepo leave.LeaveTypeRepository,
	leaveBalanceRepo leave.LeaveBalanceRepository,
	leaveRequestRepo leave.LeaveRequestRepository,
	employeeRepo employee.EmployeeRepository,
) leave.LeaveService {
	return &LeaveServiceImpl{
		db:                     db,
		LeaveTypeRepository:    leaveTypeRepo,
		LeaveBalanceRepository: leaveBalanceRepo,
		LeaveRequestRepository: leaveRequestRepo,
		EmployeeRepository:     employeeRepo,
	}
}

func employeeIDFromClaims(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", employee.ErrNoEmployeeProfile
	}
	return employeeID, nil
}

// ListTypes implements leave.LeaveService.
func (s *LeaveServiceImpl) ListTypes(ctx context.Context) ([]leave.LeaveTypeResponse, error) {
	types, err := s.LeaveTypeRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave types: %w", err)
	}

	responses := make([]leave.LeaveTypeResponse, 0, len(types))
	for _, t := range types {
		responses = append(responses, leave.LeaveTypeResponse{
			ID:     t.ID,
			Code:   t.Code,
			Name:   t.Name,
			IsPaid: t.IsPaid,
		})
	}
	return responses, nil
}

// MyBalances implements leave.LeaveService.
func (s *LeaveServiceImpl) MyBalances(ctx context.Context) ([]leave.LeaveBalanceResponse, error) {
	employeeID, err := employeeIDFromClaims(ctx)
	if err != nil {
		return nil, err
	}

	balances, err := s.LeaveBalanceRepository.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave balances: %w", err)
	}

	responses := make([]leave.LeaveBalanceResponse, 0, len(balances))
	for _, b := range balances {
		var code, name string
		if b.LeaveTypeCode != nil {
			code = *b.LeaveTypeCode
		}
		if b.LeaveTypeName != nil {
			name = *b.LeaveTypeName
		}
		responses = append(responses, leave.LeaveBalanceResponse{
			LeaveTypeCode: code,
			LeaveTypeName: name,
			TotalDays:     b.TotalDays,
			UsedDays:      b.UsedDays,
			RemainingDays: b.Remaining(),
		})
	}
	return responses, nil
}

// Apply implements leave.LeaveService. Requests always start PENDING; the
// balance is only touched on approval.
func (s *LeaveServiceImpl) Apply(ctx context.Context, req leave.ApplyLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	employeeID, err := employeeIDFromClaims(ctx)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	leaveType, err := s.LeaveTypeRepository.GetByCode(ctx, strings.ToUpper(req.LeaveTypeCode))
	if err != nil {
		if errors.Is(err, leave.ErrLeaveTypeNotFound) {
			return leave.LeaveRequestResponse{}, leave.ErrLeaveTypeNotFound
		}
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to get leave type: %w", err)
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to parse start date: %w", err)
	}

	duration := leave.DurationKind(strings.ToUpper(req.Duration))
	endDate := startDate
	if duration == leave.DurationFull {
		endDate, err = time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			return leave.LeaveRequestResponse{}, fmt.Errorf("failed to parse end date: %w", err)
		}
	}

	totalDays := leave.TotalDaysFor(duration, startDate, endDate)

	// Reject up front when the balance can never cover the request
	balance, err := s.LeaveBalanceRepository.GetByEmployeeAndType(ctx, employeeID, leaveType.ID)
	if err != nil {
		if errors.Is(err, leave.ErrLeaveBalanceNotFound) {
			return leave.LeaveRequestResponse{}, leave.ErrLeaveBalanceNotFound
		}
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to get leave balance: %w", err)
	}
	if totalDays > balance.Remaining() {
		return leave.LeaveRequestResponse{}, leave.ErrInsufficientBalance
	}

	created, err := s.LeaveRequestRepository.Create(ctx, leave.LeaveRequest{
		EmployeeID:  employeeID,
		LeaveTypeID: leaveType.ID,
		StartDate:   startDate,
		EndDate:     endDate,
		Duration:    duration,
		TotalDays:   totalDays,
		Reason:      req.Reason,
		Status:      leave.StatusPending,
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	full, err := s.LeaveRequestRepository.GetByID(ctx, created.ID)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to get created leave request: %w", err)
	}

	return mapLeaveRequestToResponse(full), nil
}

// MyRequests implements leave.LeaveService.
func (s *LeaveServiceImpl) MyRequests(ctx context.Context, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestResponse, error) {
	if err := filter.Validate(); err != nil {
		return leave.ListLeaveRequestResponse{}, err
	}

	employeeID, err := employeeIDFromClaims(ctx)
	if err != nil {
		return leave.ListLeaveRequestResponse{}, err
	}
	filter.EmployeeID = &employeeID

	requests, total, err := s.LeaveRequestRepository.List(ctx, filter)
	if err != nil {
		return leave.ListLeaveRequestResponse{}, fmt.Errorf("failed to list my leave requests: %w", err)
	}

	return buildListResponse(requests, total, filter), nil
}

// UpdateRequest implements leave.LeaveService. Only the owner may edit,
// and only while the request is still pending.
func (s *LeaveServiceImpl) UpdateRequest(ctx context.Context, req leave.UpdateLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	employeeID, err := employeeIDFromClaims(ctx)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	found, err := s.LeaveRequestRepository.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, leave.ErrLeaveRequestNotFound) {
			return leave.LeaveRequestResponse{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to get leave request: %w", err)
	}

	if found.EmployeeID != employeeID {
		return leave.LeaveRequestResponse{}, leave.ErrLeaveRequestNotFound
	}
	if found.Status != leave.StatusPending {
		return leave.LeaveRequestResponse{}, leave.ErrLeaveRequestAlreadyProcessed
	}

	if req.LeaveTypeCode != nil {
		leaveType, err := s.LeaveTypeRepository.GetByCode(ctx, strings.ToUpper(*req.LeaveTypeCode))
		if err != nil {
			if errors.Is(err, leave.ErrLeaveTypeNotFound) {
				return leave.LeaveRequestResponse{}, leave.ErrLeaveTypeNotFound
			}
			return leave.LeaveRequestResponse{}, fmt.Errorf("failed to get leave type: %w", err)
		}
		found.LeaveTypeID = leaveType.ID
	}

	if req.StartDate != nil && *req.StartDate != "" {
		startDate, err := time.Parse("2006-01-02", *req.StartDate)
		if err == nil {
			found.StartDate = startDate
		}
	}
	if req.EndDate != nil && *req.EndDate != "" {
		endDate, err := time.Parse("2006-01-02", *req.EndDate)
		if err == nil {
			found.EndDate = endDate
		}
	}
	if req.Duration != nil {
		found.Duration = leave.DurationKind(strings.ToUpper(*req.Duration))
	}
	if req.Reason != nil {
		found.Reason = *req.Reason
	}

	if found.Duration == leave.DurationHalf {
		found.EndDate = found.StartDate
	}
	if found.EndDate.Before(found.StartDate) {
		return leave.LeaveRequestResponse{}, validator.ValidationErrors{{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		}}
	}
	found.TotalDays = leave.TotalDaysFor(found.Duration, found.StartDate, found.EndDate)

	if err := s.LeaveRequestRepository.Update(ctx, found); err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to update leave request: %w", err)
	}

	updated, err := s.LeaveRequestRepository.GetByID(ctx, req.ID)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to get updated leave request: %w", err)
	}

	return mapLeaveRequestToResponse(updated), nil
}

// DeleteMyRequest implements leave.LeaveService. Deleting an approved
// request refunds the days it consumed.
func (s *LeaveServiceImpl) DeleteMyRequest(ctx context.Context, id string) error {
	employeeID, err := employeeIDFromClaims(ctx)
	if err != nil {
		return err
	}

	found, err := s.LeaveRequestRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, leave.ErrLeaveRequestNotFound) {
			return leave.ErrLeaveRequestNotFound
		}
		return fmt.Errorf("failed to get leave request: %w", err)
	}
	if found.EmployeeID != employeeID {
		return leave.ErrLeaveRequestNotFound
	}
	if found.Status != leave.StatusPending {
		return leave.ErrLeaveRequestAlreadyProcessed
	}

	return s.deleteWithRefund(ctx, found)
}

// ListRequests implements leave.LeaveService.
func (s *LeaveServiceImpl) ListRequests(ctx context.Context, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestResponse, error) {
	if err := filter.Validate(); err != nil {
		return leave.ListLeaveRequestResponse{}, err
	}

	requests, total, err := s.LeaveRequestRepository.List(ctx, filter)
	if err != nil {
		return leave.ListLeaveRequestResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}

	return buildListResponse(requests, total, filter), nil
}

// SetStatus implements leave.LeaveService. The balance row is locked for
// the duration of the transaction so concurrent approvals cannot
// oversubscribe the allowance.
func (s *LeaveServiceImpl) SetStatus(ctx context.Context, req leave.SetStatusRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	found, err := s.LeaveRequestRepository.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, leave.ErrLeaveRequestNotFound) {
			return leave.LeaveRequestResponse{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to get leave request: %w", err)
	}

	newStatus := leave.Status(strings.ToUpper(req.Status))
	delta, ok := leave.TransitionDelta(found.Status, newStatus, found.TotalDays)
	if !ok {
		return leave.LeaveRequestResponse{}, leave.ErrInvalidStatusTransition
	}

	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if delta != 0 {
			balance, err := s.LeaveBalanceRepository.LockByEmployeeAndType(txCtx, found.EmployeeID, found.LeaveTypeID)
			if err != nil {
				return err
			}
			if err := s.LeaveBalanceRepository.AddUsedDays(txCtx, balance.ID, delta); err != nil {
				return err
			}
		}

		if found.Status != newStatus {
			if err := s.LeaveRequestRepository.UpdateStatus(txCtx, found.ID, newStatus); err != nil {
				return fmt.Errorf("failed to update leave request status: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	updated, err := s.LeaveRequestRepository.GetByID(ctx, req.ID)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to get updated leave request: %w", err)
	}

	return mapLeaveRequestToResponse(updated), nil
}

// DeleteRequest implements leave.LeaveService.
func (s *LeaveServiceImpl) DeleteRequest(ctx context.Context, id string) error {
	found, err := s.LeaveRequestRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, leave.ErrLeaveRequestNotFound) {
			return leave.ErrLeaveRequestNotFound
		}
		return fmt.Errorf("failed to get leave request: %w", err)
	}

	return s.deleteWithRefund(ctx, found)
}

func (s *LeaveServiceImpl) deleteWithRefund(ctx context.Context, found leave.LeaveRequest) error {
	return postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if found.Status == leave.StatusApproved {
			balance, err := s.LeaveBalanceRepository.LockByEmployeeAndType(txCtx, found.EmployeeID, found.LeaveTypeID)
			if err != nil {
				return err
			}
			if err := s.LeaveBalanceRepository.AddUsedDays(txCtx, balance.ID, -found.TotalDays); err != nil {
				return err
			}
		}

		if err := s.LeaveRequestRepository.Delete(txCtx, found.ID); err != nil {
			return fmt.Errorf("failed to delete leave request: %w", err)
		}
		return nil
	})
}

func mapLeaveRequestToResponse(req leave.LeaveRequest) leave.LeaveRequestResponse {
	var employeeName, employeeCode, leaveTypeCode, leaveTypeName string
	if req.EmployeeName != nil {
		employeeName = *req.EmployeeName
	}
	if req.EmployeeCode != nil {
		employeeCode = *req.EmployeeCode
	}
	if req.LeaveTypeCode != nil {
		leaveTypeCode = *req.LeaveTypeCode
	}
	if req.LeaveTypeName != nil {
		leaveTypeName = *req.LeaveTypeName
	}

	return leave.LeaveRequestResponse{
		ID:            req.ID,
		EmployeeID:    req.EmployeeID,
		EmployeeName:  employeeName,
		EmployeeCode:  employeeCode,
		LeaveTypeCode: leaveTypeCode,
		LeaveTypeName: leaveTypeName,
		StartDate:     req.StartDate.Format("2006-01-02"),
		EndDate:       req.EndDate.Format("2006-01-02"),
		Duration:      string(req.Duration),
		TotalDays:     req.TotalDays,
		Reason:        req.Reason,
		Status:        string(req.Status),
		AppliedAt:     req.AppliedAt.Format("2006-01-02 15:04:05"),
	}
}

func buildListResponse(requests []leave.LeaveRequest, total int64, filter leave.LeaveRequestFilter) leave.ListLeaveRequestResponse {
	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, req := range requests {
		responses = append(responses, mapLeaveRequestToResponse(req))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))

	return leave.ListLeaveRequestResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Requests:   responses,
	}
}
