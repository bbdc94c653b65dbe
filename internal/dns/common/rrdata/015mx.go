package rrdata

import (
	"encoding/binary"
	"fmt"

	"github.com/joshuafuller/cachedns/internal/dns/domain"
)

// EncodeMXData encodes an MX preference and exchange name into its binary representation.
func EncodeMXData(preference uint16, exchange string) ([]byte, error) {
	prefBytes := make([]byte, 2)
	binary.BigEndian.PutUint16(prefBytes, preference)
	encodedDomain, err := EncodeDomainName(exchange)
	if err != nil {
		return nil, fmt.Errorf("invalid MX exchange domain: %s", exchange)
	}
	return append(prefBytes, encodedDomain...), nil
}

// decodeMXData decodes the RDATA of an MX record: a 2-byte preference
// followed by a (possibly compressed) exchange name.
func decodeMXData(msg []byte, offset int, raw []byte) (domain.MXData, error) {
	if len(raw) < 3 {
		return domain.MXData{}, fmt.Errorf("invalid MX record length: %d", len(raw))
	}
	pref := binary.BigEndian.Uint16(raw[0:2])
	exchange, _, err := DecodeName(msg, offset+2)
	if err != nil {
		return domain.MXData{}, fmt.Errorf("MX rdata: %w", err)
	}
	return domain.MXData{Preference: pref, Exchange: exchange}, nil
}
