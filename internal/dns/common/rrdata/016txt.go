package rrdata

import (
	"fmt"

	"github.com/joshuafuller/cachedns/internal/dns/domain"
)

// EncodeTXTData encodes a single character-string, per RFC 1035 §3.3.14.
// A TXT record may carry several character-strings; this codec only ever
// writes (and reads) the first one, matching domain.TXTData.
func EncodeTXTData(text string) ([]byte, error) {
	if len(text) > 255 {
		return nil, fmt.Errorf("TXT segment too long: %d bytes", len(text))
	}
	encoded := make([]byte, 0, len(text)+1)
	encoded = append(encoded, byte(len(text)))
	encoded = append(encoded, text...)
	return encoded, nil
}

// decodeTXTData decodes the first character-string of a TXT record's RDATA.
func decodeTXTData(raw []byte) (domain.TXTData, error) {
	if len(raw) == 0 {
		return domain.TXTData{}, fmt.Errorf("empty TXT record")
	}
	length := int(raw[0])
	if 1+length > len(raw) {
		return domain.TXTData{}, fmt.Errorf("TXT character-string extends past rdata")
	}
	return domain.TXTData{Text: string(raw[1 : 1+length])}, nil
}
