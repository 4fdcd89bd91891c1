package clientip

import (
	"net/http"
	"testing"
)

func TestResolve_HeaderPriority(t *testing.T) {
	header := http.Header{}
	header.Set("X-Real-IP", "203.0.113.10")
	header.Set("X-Forwarded-For", "198.51.100.5")

	got := Resolve(header, "192.0.2.1:54321")
	if got != "203.0.113.10" {
		t.Errorf("Resolve() = %q, want %q", got, "203.0.113.10")
	}
}

func TestResolve_ForwardedForChain(t *testing.T) {
	header := http.Header{}
	header.Set("X-Forwarded-For", "198.51.100.5, 10.0.0.1, 10.0.0.2")

	got := Resolve(header, "192.0.2.1:54321")
	if got != "198.51.100.5" {
		t.Errorf("Resolve() = %q, want %q", got, "198.51.100.5")
	}
}

func TestResolve_SkipsLoopbackHeaders(t *testing.T) {
	header := http.Header{}
	header.Set("X-Real-IP", "127.0.0.1")
	header.Set("X-Forwarded-For", "198.51.100.5")

	got := Resolve(header, "192.0.2.1:54321")
	if got != "198.51.100.5" {
		t.Errorf("Resolve() = %q, want %q", got, "198.51.100.5")
	}
}

func TestResolve_FallsBackToRemoteAddr(t *testing.T) {
	cases := []struct {
		name       string
		remoteAddr string
		want       string
	}{
		{"host with port", "192.0.2.1:54321", "192.0.2.1"},
		{"bare host", "192.0.2.1", "192.0.2.1"},
		{"ipv6 with port", "[2001:db8::1]:443", "2001:db8::1"},
		{"loopback remote is kept", "127.0.0.1:9999", "127.0.0.1"},
		{"empty", "", ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Resolve(http.Header{}, c.remoteAddr)
			if got != c.want {
				t.Errorf("Resolve(%q) = %q, want %q", c.remoteAddr, got, c.want)
			}
		})
	}
}

func TestResolve_AllHeadersLoopback(t *testing.T) {
	header := http.Header{}
	header.Set("X-Real-IP", "127.0.0.1")
	header.Set("X-Forwarded-For", "::1")
	header.Set("Forwarded", "127.0.0.1")

	got := Resolve(header, "203.0.113.10:1234")
	if got != "203.0.113.10" {
		t.Errorf("Resolve() = %q, want %q", got, "203.0.113.10")
	}
}

func TestIsLoopback(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"127.0.0.1", true},
		{"127.0.0.1:8080", true},
		{"::1", true},
		{"192.168.1.1", false},
		{"not-an-ip", false},
		{"", false},
	}
	for _, c := range cases {
		if got := IsLoopback(c.input); got != c.want {
			t.Errorf("IsLoopback(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}
