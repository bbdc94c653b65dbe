package wire

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"

	"github.com/joshuafuller/cachedns/internal/dns/common/rrdata"
	"github.com/joshuafuller/cachedns/internal/dns/domain"
)

// EncodeQuery builds a DNS query for the given question, per spec §4.1.1.
// recursionDesired sets the RD bit: true for a forwarding/DoH query, false
// for an iterative walk's queries to root/TLD/authoritative servers. The
// transaction ID is drawn uniformly at random so that upstream responses
// can be matched and spoofed/stray packets rejected; it is returned
// alongside the encoded bytes so callers can check it against the reply.
func EncodeQuery(q domain.Question, recursionDesired bool) (id uint16, raw []byte, err error) {
	id, err = randomID()
	if err != nil {
		return 0, nil, fmt.Errorf("wire: generating transaction id: %w", err)
	}

	h := header{
		id:      id,
		flags:   domain.Flags{RD: recursionDesired},
		qdCount: 1,
	}

	name, err := rrdata.EncodeDomainName(q.Name)
	if err != nil {
		return 0, nil, fmt.Errorf("wire: encoding question name: %w", err)
	}

	buf := make([]byte, HeaderSize, HeaderSize+len(name)+4)
	encodeHeader(buf, h)
	buf = append(buf, name...)
	buf = binary.BigEndian.AppendUint16(buf, uint16(q.Type))
	buf = binary.BigEndian.AppendUint16(buf, uint16(q.Class))

	return id, buf, nil
}

func randomID() (uint16, error) {
	var b [2]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b[:]), nil
}
