package wire

import (
	"encoding/binary"
	"fmt"

	"github.com/joshuafuller/cachedns/internal/dns/common/rrdata"
	"github.com/joshuafuller/cachedns/internal/dns/domain"
)

// EncodeMessage serializes a full DNS message (header, question, and all
// three record sections) to wire format. Record names are written without
// compression; this keeps the encoder simple at the cost of a few extra
// bytes per packet, which is immaterial for the the single-question
// responses this resolver ever emits.
func EncodeMessage(msg domain.Message) ([]byte, error) {
	if len(msg.Questions) > 0xFFFF || len(msg.Answers) > 0xFFFF ||
		len(msg.Authorities) > 0xFFFF || len(msg.Additionals) > 0xFFFF {
		return nil, fmt.Errorf("wire: section too large to encode")
	}

	buf := make([]byte, HeaderSize)
	encodeHeader(buf, header{
		id:      msg.ID,
		flags:   msg.Flags,
		qdCount: uint16(len(msg.Questions)),
		anCount: uint16(len(msg.Answers)),
		nsCount: uint16(len(msg.Authorities)),
		arCount: uint16(len(msg.Additionals)),
	})

	for _, q := range msg.Questions {
		name, err := rrdata.EncodeDomainName(q.Name)
		if err != nil {
			return nil, fmt.Errorf("wire: encoding question name: %w", err)
		}
		buf = append(buf, name...)
		buf = binary.BigEndian.AppendUint16(buf, uint16(q.Type))
		buf = binary.BigEndian.AppendUint16(buf, uint16(q.Class))
	}

	for _, section := range [][]domain.ResourceRecord{msg.Answers, msg.Authorities, msg.Additionals} {
		var err error
		buf, err = appendRecords(buf, section)
		if err != nil {
			return nil, err
		}
	}

	return buf, nil
}

func appendRecords(buf []byte, records []domain.ResourceRecord) ([]byte, error) {
	for _, rr := range records {
		name, err := rrdata.EncodeDomainName(rr.Name)
		if err != nil {
			return nil, fmt.Errorf("wire: encoding record name: %w", err)
		}
		buf = append(buf, name...)
		buf = binary.BigEndian.AppendUint16(buf, uint16(rr.Type))
		buf = binary.BigEndian.AppendUint16(buf, uint16(rr.Class))
		buf = binary.BigEndian.AppendUint32(buf, rr.TTL)

		rdata, err := rrdata.Encode(rr.Data)
		if err != nil {
			return nil, fmt.Errorf("wire: encoding rdata for %s: %w", rr.Type, err)
		}
		if len(rdata) > 0xFFFF {
			return nil, fmt.Errorf("wire: rdata too large: %d bytes", len(rdata))
		}
		buf = binary.BigEndian.AppendUint16(buf, uint16(len(rdata)))
		buf = append(buf, rdata...)
	}
	return buf, nil
}
