package rrdata

import (
	"fmt"

	"github.com/joshuafuller/cachedns/internal/dns/domain"
)

// EncodeNSData encodes an NS record string into its binary representation.
func EncodeNSData(data string) ([]byte, error) {
	// data = "ns.example.com"
	return EncodeDomainName(data)
}

// decodeNSData decodes the name-only RDATA of an NS record, which may use
// message compression pointing back into msg.
func decodeNSData(msg []byte, offset int) (domain.NSData, error) {
	name, _, err := DecodeName(msg, offset)
	if err != nil {
		return domain.NSData{}, fmt.Errorf("NS rdata: %w", err)
	}
	return domain.NSData{Name: name}, nil
}
