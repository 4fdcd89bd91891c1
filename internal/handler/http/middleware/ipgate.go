package middleware

import (
	"net/http"

	"github.com/staffsync/attendance-backend-go/internal/domain/netaccess"
	"github.com/staffsync/attendance-backend-go/internal/handler/http/response"
	"github.com/staffsync/attendance-backend-go/internal/pkg/clientip"
)

// OfficeNetworkOnly rejects requests whose resolved client IP falls outside
// the configured office ranges. Applied to the clock endpoints so presence
// claims can only be made on-site.
func OfficeNetworkOnly(netAccessService netaccess.NetAccessService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientip.Resolve(r.Header, r.RemoteAddr)
			if err := netAccessService.Authorize(r.Context(), ip); err != nil {
				response.HandleError(w, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
