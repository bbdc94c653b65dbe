package rrdata

import (
	"fmt"
	"net"

	"github.com/joshuafuller/cachedns/internal/dns/domain"
)

// EncodeAAAAData encodes an AAAA record string into its binary representation.
func EncodeAAAAData(data string) ([]byte, error) {
	// data = "2001:db8::ff00:42:8329"
	ip := net.ParseIP(data)
	if ip == nil || !isIPv6(ip) {
		return nil, fmt.Errorf("invalid AAAA record IP: %s", data)
	}
	return ip.To16(), nil
}

// decodeAAAAData decodes the 16-byte RDATA of an AAAA record.
func decodeAAAAData(raw []byte) (domain.AAAAData, error) {
	if len(raw) != 16 {
		return domain.AAAAData{}, fmt.Errorf("invalid AAAA record length: %d", len(raw))
	}
	return domain.AAAAData{IP: net.IP(raw).String()}, nil
}
