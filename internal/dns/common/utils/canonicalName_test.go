package utils

import (
	"strings"
	"testing"
)

func TestCanonicalDNSName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple domain without trailing dot",
			input:    "example.com",
			expected: "example.com",
		},
		{
			name:     "simple domain with trailing dot",
			input:    "example.com.",
			expected: "example.com",
		},
		{
			name:     "uppercase domain",
			input:    "EXAMPLE.COM",
			expected: "example.com",
		},
		{
			name:     "mixed case domain",
			input:    "ExAmPlE.CoM",
			expected: "example.com",
		},
		{
			name:     "domain with leading whitespace",
			input:    "  example.com",
			expected: "example.com",
		},
		{
			name:     "domain with trailing whitespace",
			input:    "example.com  ",
			expected: "example.com",
		},
		{
			name:     "domain with leading and trailing whitespace",
			input:    "  example.com  ",
			expected: "example.com",
		},
		{
			name:     "domain with tabs and spaces",
			input:    "\t example.com \t",
			expected: "example.com",
		},
		{
			name:     "subdomain without trailing dot",
			input:    "www.example.com",
			expected: "www.example.com",
		},
		{
			name:     "subdomain with trailing dot",
			input:    "www.example.com.",
			expected: "www.example.com",
		},
		{
			name:     "deep subdomain with mixed case",
			input:    "API.Service.EXAMPLE.com",
			expected: "api.service.example.com",
		},
		{
			name:     "root domain",
			input:    ".",
			expected: "",
		},
		{
			name:     "root domain with whitespace",
			input:    " . ",
			expected: "",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "whitespace only",
			input:    "   ",
			expected: "",
		},
		{
			name:     "single label domain",
			input:    "localhost",
			expected: "localhost",
		},
		{
			name:     "single label with case and whitespace",
			input:    " LOCALHOST ",
			expected: "localhost",
		},
		{
			name:     "IDN domain (ASCII form)",
			input:    "xn--nxasmq6b.xn--j6w193g",
			expected: "xn--nxasmq6b.xn--j6w193g",
		},
		{
			name:     "domain with numbers",
			input:    "test123.example.com",
			expected: "test123.example.com",
		},
		{
			name:     "domain with hyphens",
			input:    "sub-domain.example-site.com",
			expected: "sub-domain.example-site.com",
		},
		{
			name:     "domain with mixed case and whitespace and dot",
			input:    "  WwW.ExAmPlE.CoM.  ",
			expected: "www.example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanonicalDNSName(tt.input)
			if got != tt.expected {
				t.Errorf("CanonicalDNSName(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCanonicalDNSName_Properties(t *testing.T) {
	t.Run("idempotent behavior", func(t *testing.T) {
		testCases := []string{
			"example.com",
			"EXAMPLE.COM",
			"  www.example.com  ",
			"localhost",
			".",
		}

		for _, input := range testCases {
			first := CanonicalDNSName(input)
			second := CanonicalDNSName(first)
			if first != second {
				t.Errorf("CanonicalDNSName is not idempotent for input %q: first=%q, second=%q", input, first, second)
			}
		}
	})

	t.Run("always lowercase output", func(t *testing.T) {
		inputs := []string{
			"EXAMPLE.COM",
			"WwW.ExAmPlE.CoM",
			"API.SERVICE.EXAMPLE.COM",
			"LOCALHOST",
		}

		for _, input := range inputs {
			got := CanonicalDNSName(input)
			if got != "" && got != strings.ToLower(got) {
				t.Errorf("CanonicalDNSName(%q) = %q, expected lowercase output", input, got)
			}
		}
	})

	t.Run("no trailing dot in output", func(t *testing.T) {
		inputs := []string{
			"example.com.",
			"www.example.com.",
			"localhost.",
		}

		for _, input := range inputs {
			got := CanonicalDNSName(input)
			if strings.HasSuffix(got, ".") {
				t.Errorf("CanonicalDNSName(%q) = %q, expected no trailing dot", input, got)
			}
		}
	})

	t.Run("empty or whitespace-only input produces empty output", func(t *testing.T) {
		inputs := []string{
			"",
			" ",
			"  ",
			"\t",
			"\n",
			" \t \n ",
		}

		for _, input := range inputs {
			got := CanonicalDNSName(input)
			if got != "" {
				t.Errorf("CanonicalDNSName(%q) = %q, expected empty output for whitespace-only input", input, got)
			}
		}
	})
}

func TestSplitCacheKey(t *testing.T) {
	tests := []struct {
		key      string
		wantName string
		wantType string
		wantOK   bool
	}{
		{"example.com:1", "example.com", "1", true},
		{"example.com:type:with:colons:28", "example.com:type:with:colons", "28", true},
		{"noColonHere", "", "", false},
	}
	for _, tt := range tests {
		name, typ, ok := SplitCacheKey(tt.key)
		if ok != tt.wantOK || name != tt.wantName || typ != tt.wantType {
			t.Errorf("SplitCacheKey(%q) = (%q, %q, %v), want (%q, %q, %v)",
				tt.key, name, typ, ok, tt.wantName, tt.wantType, tt.wantOK)
		}
	}
}
