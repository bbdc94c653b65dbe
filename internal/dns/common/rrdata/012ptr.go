package rrdata

import (
	"fmt"

	"github.com/joshuafuller/cachedns/internal/dns/domain"
)

// EncodePTRData encodes a PTR record string into its binary representation.
func EncodePTRData(data string) ([]byte, error) {
	// data = "ptr.example.com"
	return EncodeDomainName(data)
}

// decodePTRData decodes the name-only RDATA of a PTR record.
func decodePTRData(msg []byte, offset int) (domain.PTRData, error) {
	name, _, err := DecodeName(msg, offset)
	if err != nil {
		return domain.PTRData{}, fmt.Errorf("PTR rdata: %w", err)
	}
	return domain.PTRData{Name: name}, nil
}
