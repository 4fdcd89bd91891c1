package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/staffsync/attendance-backend-go/internal/domain/netaccess"
	"github.com/stretchr/testify/assert"
)

type stubNetAccessService struct {
	netaccess.NetAccessService

	allowed map[string]bool
	seenIP  string
}

func (s *stubNetAccessService) Authorize(ctx context.Context, clientIP string) error {
	s.seenIP = clientIP
	if s.allowed[clientIP] {
		return nil
	}
	return netaccess.ErrAccessDenied
}

func TestOfficeNetworkOnly_AllowsInRangeClient(t *testing.T) {
	svc := &stubNetAccessService{allowed: map[string]bool{"192.168.1.42": true}}
	handler := OfficeNetworkOnly(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/check-in", nil)
	req.RemoteAddr = "192.168.1.42:51000"
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "192.168.1.42", svc.seenIP)
}

func TestOfficeNetworkOnly_RejectsOutsideClient(t *testing.T) {
	svc := &stubNetAccessService{}
	handler := OfficeNetworkOnly(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run for a rejected client")
	}))

	req := httptest.NewRequest(http.MethodPost, "/check-in", nil)
	req.RemoteAddr = "203.0.113.9:51000"
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestOfficeNetworkOnly_UsesForwardedHeader(t *testing.T) {
	svc := &stubNetAccessService{allowed: map[string]bool{"198.51.100.7": true}}
	handler := OfficeNetworkOnly(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/check-in", nil)
	req.RemoteAddr = "10.0.0.1:443"
	req.Header.Set("X-Forwarded-For", "198.51.100.7, 10.0.0.1")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "198.51.100.7", svc.seenIP)
}
