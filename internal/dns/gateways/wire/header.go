// Package wire implements the RFC 1035 wire format: building outgoing
// queries and parsing incoming DNS messages, including name compression.
package wire

import (
	"encoding/binary"
	"errors"

	"github.com/joshuafuller/cachedns/internal/dns/domain"
)

// HeaderSize is the fixed size in bytes of a DNS message header.
const HeaderSize = 12

// ErrMalformedPacket is returned when a DNS message cannot be parsed
// because it is truncated, has an invalid length field, or contains a
// corrupt name (an out-of-bounds label or a compression pointer loop).
var ErrMalformedPacket = errors.New("wire: malformed DNS packet")

type header struct {
	id      uint16
	flags   domain.Flags
	qdCount uint16
	anCount uint16
	nsCount uint16
	arCount uint16
}

func decodeHeader(data []byte) (header, error) {
	if len(data) < HeaderSize {
		return header{}, ErrMalformedPacket
	}
	return header{
		id:      binary.BigEndian.Uint16(data[0:2]),
		flags:   domain.DecodeFlags(binary.BigEndian.Uint16(data[2:4])),
		qdCount: binary.BigEndian.Uint16(data[4:6]),
		anCount: binary.BigEndian.Uint16(data[6:8]),
		nsCount: binary.BigEndian.Uint16(data[8:10]),
		arCount: binary.BigEndian.Uint16(data[10:12]),
	}, nil
}

func encodeHeader(buf []byte, h header) {
	binary.BigEndian.PutUint16(buf[0:2], h.id)
	binary.BigEndian.PutUint16(buf[2:4], h.flags.Encode())
	binary.BigEndian.PutUint16(buf[4:6], h.qdCount)
	binary.BigEndian.PutUint16(buf[6:8], h.anCount)
	binary.BigEndian.PutUint16(buf[8:10], h.nsCount)
	binary.BigEndian.PutUint16(buf[10:12], h.arCount)
}
