package netaccess

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/staffsync/attendance-backend-go/internal/domain/netaccess"
	"github.com/staffsync/attendance-backend-go/internal/pkg/clientip"
	"github.com/staffsync/attendance-backend-go/internal/pkg/database"
)

type NetAccessServiceImpl struct {
	db *database.DB
	netaccess.IPRangeRepository

	// allowLoopback lets local development traffic through the gate.
	allowLoopback bool
}

func NewNetAccessService(db *database.DB, ipRangeRepo netaccess.IPRangeRepository, allowLoopback bool) netaccess.NetAccessService {
	return &NetAccessServiceImpl{
		db:                db,
		IPRangeRepository: ipRangeRepo,
		allowLoopback:     allowLoopback,
	}
}

// Authorize implements netaccess.NetAccessService. The client is admitted
// when any active range contains its address. The denial error names the
// acceptable networks.
func (s *NetAccessServiceImpl) Authorize(ctx context.Context, clientIP string) error {
	if clientIP == "" {
		return netaccess.ErrClientUnresolved
	}

	if s.allowLoopback && clientip.IsLoopback(clientIP) {
		return nil
	}

	ranges, err := s.IPRangeRepository.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to list active IP ranges: %w", err)
	}

	names := make([]string, 0, len(ranges))
	for _, allowed := range ranges {
		if allowed.Contains(clientIP) {
			return nil
		}
		names = append(names, allowed.Name)
	}

	if len(names) == 0 {
		return fmt.Errorf("%w: no active office networks are configured", netaccess.ErrAccessDenied)
	}
	return fmt.Errorf("%w: allowed networks are %s", netaccess.ErrAccessDenied, strings.Join(names, ", "))
}

// Create implements netaccess.NetAccessService.
func (s *NetAccessServiceImpl) Create(ctx context.Context, req netaccess.CreateIPRangeRequest) (netaccess.IPRangeResponse, error) {
	if err := req.Validate(); err != nil {
		return netaccess.IPRangeResponse{}, err
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	created, err := s.IPRangeRepository.Create(ctx, netaccess.AllowedIPRange{
		Name:        req.Name,
		IPRange:     strings.TrimSpace(req.IPRange),
		Description: req.Description,
		IsActive:    isActive,
	})
	if err != nil {
		return netaccess.IPRangeResponse{}, fmt.Errorf("failed to create IP range: %w", err)
	}

	return mapIPRangeToResponse(created), nil
}

// List implements netaccess.NetAccessService.
func (s *NetAccessServiceImpl) List(ctx context.Context) ([]netaccess.IPRangeResponse, error) {
	ranges, err := s.IPRangeRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list IP ranges: %w", err)
	}

	responses := make([]netaccess.IPRangeResponse, 0, len(ranges))
	for _, allowed := range ranges {
		responses = append(responses, mapIPRangeToResponse(allowed))
	}
	return responses, nil
}

// Update implements netaccess.NetAccessService.
func (s *NetAccessServiceImpl) Update(ctx context.Context, req netaccess.UpdateIPRangeRequest) (netaccess.IPRangeResponse, error) {
	if err := req.Validate(); err != nil {
		return netaccess.IPRangeResponse{}, err
	}

	found, err := s.IPRangeRepository.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, netaccess.ErrIPRangeNotFound) {
			return netaccess.IPRangeResponse{}, netaccess.ErrIPRangeNotFound
		}
		return netaccess.IPRangeResponse{}, fmt.Errorf("failed to get IP range: %w", err)
	}

	if req.Name != nil {
		found.Name = *req.Name
	}
	if req.IPRange != nil {
		found.IPRange = strings.TrimSpace(*req.IPRange)
	}
	if req.Description != nil {
		found.Description = *req.Description
	}
	if req.IsActive != nil {
		found.IsActive = *req.IsActive
	}

	if err := s.IPRangeRepository.Update(ctx, found); err != nil {
		return netaccess.IPRangeResponse{}, fmt.Errorf("failed to update IP range: %w", err)
	}

	updated, err := s.IPRangeRepository.GetByID(ctx, req.ID)
	if err != nil {
		return netaccess.IPRangeResponse{}, fmt.Errorf("failed to get updated IP range: %w", err)
	}

	return mapIPRangeToResponse(updated), nil
}

// Delete implements netaccess.NetAccessService.
func (s *NetAccessServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.IPRangeRepository.Delete(ctx, id); err != nil {
		if errors.Is(err, netaccess.ErrIPRangeNotFound) {
			return netaccess.ErrIPRangeNotFound
		}
		return fmt.Errorf("failed to delete IP range: %w", err)
	}
	return nil
}

func mapIPRangeToResponse(allowed netaccess.AllowedIPRange) netaccess.IPRangeResponse {
	return netaccess.IPRangeResponse{
		ID:          allowed.ID,
		Name:        allowed.Name,
		IPRange:     allowed.IPRange,
		Description: allowed.Description,
		IsActive:    allowed.IsActive,
		CreatedAt:   allowed.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:   allowed.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
