package wire

import (
	"encoding/binary"
	"fmt"

	"github.com/joshuafuller/cachedns/internal/dns/common/rrdata"
	"github.com/joshuafuller/cachedns/internal/dns/domain"
)

// DecodeMessage parses a complete DNS message (query or response) from its
// wire representation, per RFC 1035 §4.1. Any structural problem — a
// truncated header, a label or compression pointer that runs past the end
// of the buffer, an RDLENGTH that overruns the message — is reported as
// ErrMalformedPacket.
func DecodeMessage(data []byte) (domain.Message, error) {
	h, err := decodeHeader(data)
	if err != nil {
		return domain.Message{}, err
	}

	offset := HeaderSize

	questions := make([]domain.Question, 0, h.qdCount)
	for i := 0; i < int(h.qdCount); i++ {
		q, next, err := decodeQuestion(data, offset)
		if err != nil {
			return domain.Message{}, fmt.Errorf("%w: question %d: %v", ErrMalformedPacket, i, err)
		}
		questions = append(questions, q)
		offset = next
	}

	answers, offset, err := decodeRecords(data, offset, int(h.anCount))
	if err != nil {
		return domain.Message{}, fmt.Errorf("%w: answer section: %v", ErrMalformedPacket, err)
	}
	authorities, offset, err := decodeRecords(data, offset, int(h.nsCount))
	if err != nil {
		return domain.Message{}, fmt.Errorf("%w: authority section: %v", ErrMalformedPacket, err)
	}
	additionals, _, err := decodeRecords(data, offset, int(h.arCount))
	if err != nil {
		return domain.Message{}, fmt.Errorf("%w: additional section: %v", ErrMalformedPacket, err)
	}

	return domain.Message{
		ID:           h.id,
		Flags:        h.flags,
		Questions:    questions,
		Answers:      answers,
		Authorities:  authorities,
		Additionals:  additionals,
		EffectiveTTL: domain.ComputeEffectiveTTL(answers),
	}, nil
}

func decodeQuestion(data []byte, offset int) (domain.Question, int, error) {
	name, next, err := rrdata.DecodeName(data, offset)
	if err != nil {
		return domain.Question{}, 0, err
	}
	if next+4 > len(data) {
		return domain.Question{}, 0, fmt.Errorf("truncated question at offset %d", offset)
	}
	qtype := binary.BigEndian.Uint16(data[next : next+2])
	qclass := binary.BigEndian.Uint16(data[next+2 : next+4])
	return domain.Question{
		Name:  name,
		Type:  domain.RRType(qtype),
		Class: domain.RRClass(qclass),
	}, next + 4, nil
}

func decodeRecords(data []byte, offset int, count int) ([]domain.ResourceRecord, int, error) {
	records := make([]domain.ResourceRecord, 0, count)
	for i := 0; i < count; i++ {
		rr, next, err := decodeRecord(data, offset)
		if err != nil {
			return nil, 0, fmt.Errorf("record %d: %w", i, err)
		}
		records = append(records, rr)
		offset = next
	}
	return records, offset, nil
}

func decodeRecord(data []byte, offset int) (domain.ResourceRecord, int, error) {
	name, next, err := rrdata.DecodeName(data, offset)
	if err != nil {
		return domain.ResourceRecord{}, 0, err
	}
	if next+10 > len(data) {
		return domain.ResourceRecord{}, 0, fmt.Errorf("truncated record header at offset %d", offset)
	}
	rrType := domain.RRType(binary.BigEndian.Uint16(data[next : next+2]))
	rrClass := domain.RRClass(binary.BigEndian.Uint16(data[next+2 : next+4]))
	ttl := binary.BigEndian.Uint32(data[next+4 : next+8])
	rdLength := int(binary.BigEndian.Uint16(data[next+8 : next+10]))
	rdataOffset := next + 10

	if rdataOffset+rdLength > len(data) {
		return domain.ResourceRecord{}, 0, fmt.Errorf("rdlength %d exceeds remaining message", rdLength)
	}
	raw := data[rdataOffset : rdataOffset+rdLength]

	rdata, err := rrdata.Decode(rrType, data, rdataOffset, raw)
	if err != nil {
		return domain.ResourceRecord{}, 0, fmt.Errorf("decoding rdata: %w", err)
	}

	rr, err := domain.NewResourceRecord(name, rrType, rrClass, ttl, rdata)
	if err != nil {
		return domain.ResourceRecord{}, 0, err
	}
	return rr, rdataOffset + rdLength, nil
}
