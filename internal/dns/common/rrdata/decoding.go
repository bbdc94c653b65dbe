package rrdata

import (
	"github.com/joshuafuller/cachedns/internal/dns/domain"
)

// Decode parses the RDATA of a resource record into a typed RData value.
// msg is the full DNS message (some record types embed domain names that
// may use compression pointers back into msg), offset is where this
// record's RDATA begins within msg, and raw is the rdlength-bounded RDATA
// slice itself. Record types this codec does not model explicitly decode
// to domain.UnknownData, preserving the raw bytes verbatim.
func Decode(rrType domain.RRType, msg []byte, offset int, raw []byte) (domain.RData, error) {
	switch rrType {
	case domain.RRTypeA:
		return decodeAData(raw)
	case domain.RRTypeAAAA:
		return decodeAAAAData(raw)
	case domain.RRTypeNS:
		return decodeNSData(msg, offset)
	case domain.RRTypeCNAME:
		return decodeCNAMEData(msg, offset)
	case domain.RRTypePTR:
		return decodePTRData(msg, offset)
	case domain.RRTypeMX:
		return decodeMXData(msg, offset, raw)
	case domain.RRTypeTXT:
		return decodeTXTData(raw)
	case domain.RRTypeSOA:
		return decodeSOAData(msg, offset)
	default:
		cp := make([]byte, len(raw))
		copy(cp, raw)
		return domain.UnknownData{Type: rrType, Raw: cp}, nil
	}
}
