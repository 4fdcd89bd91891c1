package netaccess

import (
	"net/netip"
	"strings"
	"time"
)

type AllowedIPRange struct {
	ID          string
	Name        string
	IPRange     string // single IP or CIDR
	Description string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Contains reports whether the client IP falls inside the range. CIDR
// ranges use prefix containment; plain entries match exactly. Malformed
// ranges or addresses never match.
func (r AllowedIPRange) Contains(clientIP string) bool {
	rangeValue := strings.TrimSpace(r.IPRange)
	addr, err := netip.ParseAddr(strings.TrimSpace(clientIP))
	if err != nil {
		return false
	}

	if strings.Contains(rangeValue, "/") {
		prefix, err := netip.ParsePrefix(rangeValue)
		if err != nil {
			return false
		}
		return prefix.Contains(addr)
	}

	rangeAddr, err := netip.ParseAddr(rangeValue)
	if err != nil {
		return false
	}
	return rangeAddr == addr
}

// IsValidRange reports whether the value parses as a single IP or CIDR.
func IsValidRange(value string) bool {
	value = strings.TrimSpace(value)
	if strings.Contains(value, "/") {
		_, err := netip.ParsePrefix(value)
		return err == nil
	}
	_, err := netip.ParseAddr(value)
	return err == nil
}
