package rrdata

import (
	"fmt"
	"net"

	"github.com/joshuafuller/cachedns/internal/dns/domain"
)

// EncodeAData encodes an A record string into its binary representation.
func EncodeAData(data string) ([]byte, error) {
	// data = "192.168.0.1"
	ip := net.ParseIP(data)
	if ip == nil || !isIPv4(ip) {
		return nil, fmt.Errorf("invalid A record IP: %s", data)
	}
	return ip.To4(), nil
}

// decodeAData decodes the 4-byte RDATA of an A record.
func decodeAData(raw []byte) (domain.AData, error) {
	if len(raw) != 4 {
		return domain.AData{}, fmt.Errorf("invalid A record length: %d", len(raw))
	}
	return domain.AData{IP: net.IP(raw).String()}, nil
}
