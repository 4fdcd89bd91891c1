package policy

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/staffsync/attendance-backend-go/internal/domain/policy"
	"github.com/staffsync/attendance-backend-go/internal/pkg/storage"
)

// policyURLExpiry bounds signed URLs on storage backends that support them.
const policyURLExpiry = 24 * time.Hour

type PolicyServiceImpl struct {
	policy.PolicyRepository
	policy.HolidayRepository
	storage storage.FileStorage
}

func NewPolicyService(
	policyRepo policy.PolicyRepository,
	holidayRepo policy.HolidayRepository,
	fileStorage storage.FileStorage,
) policy.PolicyService {
	return &PolicyServiceImpl{
		PolicyRepository:  policyRepo,
		HolidayRepository: holidayRepo,
		storage:           fileStorage,
	}
}

// Upload implements policy.PolicyService. The document is stored under a
// generated name so uploads never collide.
func (s *PolicyServiceImpl) Upload(ctx context.Context, req policy.UploadPolicyRequest) (policy.PolicyResponse, error) {
	if err := req.Validate(); err != nil {
		return policy.PolicyResponse{}, err
	}

	ext := filepath.Ext(req.FileHeader.Filename)
	path := fmt.Sprintf("policies/%s%s", uuid.New().String(), ext)

	storedPath, err := s.storage.Upload(ctx, req.File, path, "application/pdf")
	if err != nil {
		return policy.PolicyResponse{}, fmt.Errorf("failed to store policy document: %w", err)
	}

	created, err := s.PolicyRepository.Create(ctx, policy.CompanyPolicy{
		Title:    req.Title,
		FilePath: storedPath,
	})
	if err != nil {
		// The row failed, so the orphaned file goes too.
		_ = s.storage.Delete(ctx, storedPath)
		return policy.PolicyResponse{}, fmt.Errorf("failed to create policy: %w", err)
	}

	return s.mapPolicyToResponse(ctx, created), nil
}

// List implements policy.PolicyService.
func (s *PolicyServiceImpl) List(ctx context.Context) ([]policy.PolicyResponse, error) {
	policies, err := s.PolicyRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list policies: %w", err)
	}

	responses := make([]policy.PolicyResponse, 0, len(policies))
	for _, pol := range policies {
		responses = append(responses, s.mapPolicyToResponse(ctx, pol))
	}
	return responses, nil
}

// Delete implements policy.PolicyService. The stored document is removed
// after the row so a failed delete never leaves a dangling reference.
func (s *PolicyServiceImpl) Delete(ctx context.Context, id string) error {
	found, err := s.PolicyRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, policy.ErrPolicyNotFound) {
			return policy.ErrPolicyNotFound
		}
		return fmt.Errorf("failed to get policy: %w", err)
	}

	if err := s.PolicyRepository.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete policy: %w", err)
	}

	_ = s.storage.Delete(ctx, found.FilePath)
	return nil
}

// CreateHoliday implements policy.PolicyService.
func (s *PolicyServiceImpl) CreateHoliday(ctx context.Context, req policy.CreateHolidayRequest) (policy.HolidayResponse, error) {
	if err := req.Validate(); err != nil {
		return policy.HolidayResponse{}, err
	}

	startDate, _ := time.Parse("2006-01-02", req.StartDate)
	endDate, _ := time.Parse("2006-01-02", req.EndDate)

	created, err := s.HolidayRepository.Create(ctx, policy.CompanyHoliday{
		StartDate: startDate,
		EndDate:   endDate,
		Reason:    req.Reason,
	})
	if err != nil {
		return policy.HolidayResponse{}, fmt.Errorf("failed to create holiday: %w", err)
	}

	return mapHolidayToResponse(created), nil
}

// ListHolidays implements policy.PolicyService.
func (s *PolicyServiceImpl) ListHolidays(ctx context.Context) ([]policy.HolidayResponse, error) {
	holidays, err := s.HolidayRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}

	responses := make([]policy.HolidayResponse, 0, len(holidays))
	for _, holiday := range holidays {
		responses = append(responses, mapHolidayToResponse(holiday))
	}
	return responses, nil
}

// DeleteHoliday implements policy.PolicyService.
func (s *PolicyServiceImpl) DeleteHoliday(ctx context.Context, id string) error {
	if err := s.HolidayRepository.Delete(ctx, id); err != nil {
		if errors.Is(err, policy.ErrHolidayNotFound) {
			return policy.ErrHolidayNotFound
		}
		return fmt.Errorf("failed to delete holiday: %w", err)
	}
	return nil
}

func (s *PolicyServiceImpl) mapPolicyToResponse(ctx context.Context, pol policy.CompanyPolicy) policy.PolicyResponse {
	fileURL, err := s.storage.GetURL(ctx, pol.FilePath, policyURLExpiry)
	if err != nil {
		fileURL = pol.FilePath
	}

	return policy.PolicyResponse{
		ID:        pol.ID,
		Title:     pol.Title,
		FileURL:   fileURL,
		CreatedAt: pol.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func mapHolidayToResponse(holiday policy.CompanyHoliday) policy.HolidayResponse {
	return policy.HolidayResponse{
		ID:        holiday.ID,
		StartDate: holiday.StartDate.Format("2006-01-02"),
		EndDate:   holiday.EndDate.Format("2006-01-02"),
		Reason:    holiday.Reason,
	}
}
