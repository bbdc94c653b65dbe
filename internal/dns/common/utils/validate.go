package utils

import "net"

// maxDomainNameLength is the wire-format ceiling for a DNS name (RFC 1035
// §3.1): 255 octets including length-prefix bytes. Checked here against the
// presentation-form string length, which is always <= the wire length.
const maxDomainNameLength = 255

// IsValidDomain reports whether name is a structurally valid DNS name: no
// longer than 255 octets and built only from letters, digits, hyphens,
// underscores, and dots. Underscores are not RFC 952/1123 hostname
// characters but are long-standing practice for SRV/TXT owner names
// (_sip._tcp.example.com), which CanonicalDNSName already tolerates via its
// idna fallback. It does not check label length (63 octets) or syntax rules
// like leading/trailing hyphens; the 63-octet label limit is enforced only
// when a name is encoded to wire form by rrdata.EncodeDomainName.
func IsValidDomain(name string) bool {
	if name == "" || len(name) > maxDomainNameLength {
		return false
	}
	if name[len(name)-1] == '.' {
		name = name[:len(name)-1]
	}
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '-' || c == '.' || c == '_':
		default:
			return false
		}
	}
	return true
}

// IsValidIP reports whether ip parses as an IPv4 or IPv6 address.
func IsValidIP(ip string) bool {
	return net.ParseIP(ip) != nil
}
