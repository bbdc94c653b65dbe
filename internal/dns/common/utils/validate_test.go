package utils

import (
	"strings"
	"testing"
)

func TestIsValidDomain(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"simple domain", "example.com", true},
		{"trailing dot", "example.com.", true},
		{"subdomain", "www.example.com", true},
		{"single label", "localhost", true},
		{"numbers and hyphens", "sub-domain1.example-site.com", true},
		{"underscore owner name", "_sip._tcp.example.com", true},
		{"IDN ASCII form", "xn--nxasmq6b.xn--j6w193g", true},
		{"empty string", "", false},
		{"just a dot", ".", false},
		{"whitespace", "   ", false},
		{"space in name", "exa mple.com", false},
		{"underscore-free invalid char", "example!.com", false},
		{"exactly 255 octets", strings.Repeat("a", 255), true},
		{"256 octets", strings.Repeat("a", 256), false},
		{"255 octets plus trailing dot", strings.Repeat("a", 255) + ".", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidDomain(tt.input); got != tt.want {
				t.Errorf("IsValidDomain(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsValidIP(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"valid IPv4", "8.8.8.8", true},
		{"valid IPv6", "2001:4860:4860::8888", true},
		{"not an IP", "example.com", false},
		{"empty string", "", false},
		{"out of range octet", "999.1.1.1", false},
		{"ip with port is not a bare IP", "8.8.8.8:53", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidIP(tt.input); got != tt.want {
				t.Errorf("IsValidIP(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
