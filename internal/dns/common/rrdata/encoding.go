package rrdata

import (
	"fmt"

	"github.com/joshuafuller/cachedns/internal/dns/domain"
)

// Encode serializes an RData value into its RFC 1035 RDATA wire
// representation. It never emits message compression; compression is purely
// a decode-side concern for this codec.
func Encode(data domain.RData) ([]byte, error) {
	switch d := data.(type) {
	case domain.AData:
		return EncodeAData(d.IP)
	case domain.AAAAData:
		return EncodeAAAAData(d.IP)
	case domain.NSData:
		return EncodeNSData(d.Name)
	case domain.CNAMEData:
		return EncodeCNAMEData(d.Name)
	case domain.PTRData:
		return EncodePTRData(d.Name)
	case domain.MXData:
		return EncodeMXData(d.Preference, d.Exchange)
	case domain.TXTData:
		return EncodeTXTData(d.Text)
	case domain.SOAData:
		return EncodeSOAData(d)
	case domain.UnknownData:
		return d.Raw, nil
	default:
		return nil, fmt.Errorf("rrdata: unsupported RData type %T", data)
	}
}
