package netaccess

import (
	"context"
	"errors"
	"testing"

	"github.com/staffsync/attendance-backend-go/internal/domain/netaccess"
	"github.com/stretchr/testify/assert"
)

type stubIPRangeRepo struct {
	netaccess.IPRangeRepository

	active []netaccess.AllowedIPRange
	err    error
}

func (s *stubIPRangeRepo) ListActive(ctx context.Context) ([]netaccess.AllowedIPRange, error) {
	return s.active, s.err
}

func newTestService(repo netaccess.IPRangeRepository, allowLoopback bool) netaccess.NetAccessService {
	return NewNetAccessService(nil, repo, allowLoopback)
}

func TestAuthorize_ClientInsideRange(t *testing.T) {
	svc := newTestService(&stubIPRangeRepo{active: []netaccess.AllowedIPRange{
		{Name: "HQ", IPRange: "192.168.1.0/24", IsActive: true},
	}}, false)

	err := svc.Authorize(context.Background(), "192.168.1.42")

	assert.NoError(t, err)
}

func TestAuthorize_ClientOutsideRangeNamesNetworks(t *testing.T) {
	svc := newTestService(&stubIPRangeRepo{active: []netaccess.AllowedIPRange{
		{Name: "HQ", IPRange: "192.168.1.0/24", IsActive: true},
		{Name: "Branch", IPRange: "10.1.0.0/16", IsActive: true},
	}}, false)

	err := svc.Authorize(context.Background(), "203.0.113.9")

	assert.ErrorIs(t, err, netaccess.ErrAccessDenied)
	assert.Contains(t, err.Error(), "HQ")
	assert.Contains(t, err.Error(), "Branch")
}

func TestAuthorize_NoActiveRangesConfigured(t *testing.T) {
	svc := newTestService(&stubIPRangeRepo{}, false)

	err := svc.Authorize(context.Background(), "203.0.113.9")

	assert.ErrorIs(t, err, netaccess.ErrAccessDenied)
	assert.Contains(t, err.Error(), "no active office networks")
}

func TestAuthorize_EmptyClientIP(t *testing.T) {
	svc := newTestService(&stubIPRangeRepo{}, false)

	err := svc.Authorize(context.Background(), "")

	assert.ErrorIs(t, err, netaccess.ErrClientUnresolved)
}

func TestAuthorize_LoopbackRespectsToggle(t *testing.T) {
	repo := &stubIPRangeRepo{}

	err := newTestService(repo, true).Authorize(context.Background(), "127.0.0.1")
	assert.NoError(t, err)

	err = newTestService(repo, false).Authorize(context.Background(), "127.0.0.1")
	assert.ErrorIs(t, err, netaccess.ErrAccessDenied)
}

func TestAuthorize_RepositoryErrorPropagates(t *testing.T) {
	boom := errors.New("connection refused")
	svc := newTestService(&stubIPRangeRepo{err: boom}, false)

	err := svc.Authorize(context.Background(), "203.0.113.9")

	assert.ErrorIs(t, err, boom)
}

func TestAuthorize_ExactIPRange(t *testing.T) {
	svc := newTestService(&stubIPRangeRepo{active: []netaccess.AllowedIPRange{
		{Name: "VPN exit", IPRange: "203.0.113.7", IsActive: true},
	}}, false)

	assert.NoError(t, svc.Authorize(context.Background(), "203.0.113.7"))
	assert.ErrorIs(t, svc.Authorize(context.Background(), "203.0.113.8"), netaccess.ErrAccessDenied)
}
