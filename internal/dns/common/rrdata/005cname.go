package rrdata

import (
	"fmt"

	"github.com/joshuafuller/cachedns/internal/dns/domain"
)

// EncodeCNAMEData encodes a CNAME record string into its binary representation.
func EncodeCNAMEData(data string) ([]byte, error) {
	// data = "cname.example.com"
	return EncodeDomainName(data)
}

// decodeCNAMEData decodes the name-only RDATA of a CNAME record.
func decodeCNAMEData(msg []byte, offset int) (domain.CNAMEData, error) {
	name, _, err := DecodeName(msg, offset)
	if err != nil {
		return domain.CNAMEData{}, fmt.Errorf("CNAME rdata: %w", err)
	}
	return domain.CNAMEData{Name: name}, nil
}
