package netaccess

import "testing"

func TestContains_CIDR(t *testing.T) {
	r := AllowedIPRange{IPRange: "192.168.1.0/24"}

	cases := []struct {
		ip   string
		want bool
	}{
		{"192.168.1.50", true},
		{"192.168.1.1", true},
		{"192.168.1.255", true},
		{"192.168.2.50", false},
		{"10.0.0.1", false},
		{"not-an-ip", false},
		{"", false},
	}
	for _, c := range cases {
		if got := r.Contains(c.ip); got != c.want {
			t.Errorf("Contains(%q) in %s = %v, want %v", c.ip, r.IPRange, got, c.want)
		}
	}
}

func TestContains_SingleIP(t *testing.T) {
	r := AllowedIPRange{IPRange: "203.0.113.7"}

	if !r.Contains("203.0.113.7") {
		t.Errorf("Contains(exact match) = false, want true")
	}
	if r.Contains("203.0.113.8") {
		t.Errorf("Contains(different ip) = true, want false")
	}
}

func TestContains_MalformedRangeNeverMatches(t *testing.T) {
	cases := []string{"banana", "10.0.0.0/99", "300.1.1.1", ""}
	for _, bad := range cases {
		r := AllowedIPRange{IPRange: bad}
		if r.Contains("192.168.1.50") {
			t.Errorf("Contains() with range %q = true, want false", bad)
		}
	}
}

func TestContains_IPv6(t *testing.T) {
	r := AllowedIPRange{IPRange: "2001:db8::/32"}

	if !r.Contains("2001:db8::1") {
		t.Errorf("Contains(2001:db8::1) = false, want true")
	}
	if r.Contains("2001:db9::1") {
		t.Errorf("Contains(2001:db9::1) = true, want false")
	}
}

func TestIsValidRange(t *testing.T) {
	valid := []string{"192.168.1.0/24", "10.0.0.1", "2001:db8::/32", "::1", " 192.168.1.1 "}
	invalid := []string{"", "banana", "10.0.0.0/99", "192.168.1", "1.2.3.4/"}
	for _, v := range valid {
		if !IsValidRange(v) {
			t.Errorf("IsValidRange(%q) = false, want true", v)
		}
	}
	for _, v := range invalid {
		if IsValidRange(v) {
			t.Errorf("IsValidRange(%q) = true, want false", v)
		}
	}
}
