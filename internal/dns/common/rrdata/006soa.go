package rrdata

import (
	"encoding/binary"
	"fmt"

	"github.com/joshuafuller/cachedns/internal/dns/domain"
)

// EncodeSOAData encodes an SOA record into its binary representation.
func EncodeSOAData(d domain.SOAData) ([]byte, error) {
	mname, err := EncodeDomainName(d.MName)
	if err != nil {
		return nil, fmt.Errorf("invalid SOA mname: %v", err)
	}
	rname, err := EncodeDomainName(d.RName)
	if err != nil {
		return nil, fmt.Errorf("invalid SOA rname: %v", err)
	}

	u32 := make([]byte, 20)
	binary.BigEndian.PutUint32(u32[0:], d.Serial)
	binary.BigEndian.PutUint32(u32[4:], d.Refresh)
	binary.BigEndian.PutUint32(u32[8:], d.Retry)
	binary.BigEndian.PutUint32(u32[12:], d.Expire)
	binary.BigEndian.PutUint32(u32[16:], d.Minimum)

	var encoded []byte
	encoded = append(encoded, mname...)
	encoded = append(encoded, rname...)
	encoded = append(encoded, u32...)

	return encoded, nil
}

// decodeSOAData decodes the RDATA of an SOA record: two (possibly
// compressed) names followed by five 32-bit integers.
func decodeSOAData(msg []byte, offset int) (domain.SOAData, error) {
	mname, next, err := DecodeName(msg, offset)
	if err != nil {
		return domain.SOAData{}, fmt.Errorf("SOA mname: %w", err)
	}
	rname, next, err := DecodeName(msg, next)
	if err != nil {
		return domain.SOAData{}, fmt.Errorf("SOA rname: %w", err)
	}
	if next+20 > len(msg) {
		return domain.SOAData{}, fmt.Errorf("SOA record truncated")
	}
	return domain.SOAData{
		MName:   mname,
		RName:   rname,
		Serial:  binary.BigEndian.Uint32(msg[next:]),
		Refresh: binary.BigEndian.Uint32(msg[next+4:]),
		Retry:   binary.BigEndian.Uint32(msg[next+8:]),
		Expire:  binary.BigEndian.Uint32(msg[next+12:]),
		Minimum: binary.BigEndian.Uint32(msg[next+16:]),
	}, nil
}
