package wire

import (
	"encoding/binary"
	"testing"

	"github.com/joshuafuller/cachedns/internal/dns/domain"
)

func TestEncodeQuery(t *testing.T) {
	q, err := domain.NewQuestion("example.com", domain.RRTypeA, domain.RRClassIN)
	if err != nil {
		t.Fatalf("NewQuestion failed: %v", err)
	}

	id, raw, err := EncodeQuery(q, true)
	if err != nil {
		t.Fatalf("EncodeQuery failed: %v", err)
	}
	if len(raw) < HeaderSize {
		t.Fatalf("encoded query shorter than header: %d bytes", len(raw))
	}
	if binary.BigEndian.Uint16(raw[0:2]) != id {
		t.Errorf("header ID %d does not match returned id %d", binary.BigEndian.Uint16(raw[0:2]), id)
	}
	flags := binary.BigEndian.Uint16(raw[2:4])
	if flags&0x0100 == 0 {
		t.Error("expected RD bit set in query flags")
	}
	if binary.BigEndian.Uint16(raw[4:6]) != 1 {
		t.Error("expected QDCOUNT=1")
	}
	if binary.BigEndian.Uint16(raw[6:8]) != 0 || binary.BigEndian.Uint16(raw[8:10]) != 0 || binary.BigEndian.Uint16(raw[10:12]) != 0 {
		t.Error("expected AN/NS/AR counts to be 0")
	}
}

func TestEncodeQuery_RecursionDesiredFalseClearsRDBit(t *testing.T) {
	q, err := domain.NewQuestion("example.com", domain.RRTypeA, domain.RRClassIN)
	if err != nil {
		t.Fatalf("NewQuestion failed: %v", err)
	}

	_, raw, err := EncodeQuery(q, false)
	if err != nil {
		t.Fatalf("EncodeQuery failed: %v", err)
	}
	flags := binary.BigEndian.Uint16(raw[2:4])
	if flags&0x0100 != 0 {
		t.Error("expected RD bit clear in query flags")
	}
}

func TestEncodeQuery_RandomizesID(t *testing.T) {
	q, _ := domain.NewQuestion("example.com", domain.RRTypeA, domain.RRClassIN)
	seen := map[uint16]bool{}
	for i := 0; i < 20; i++ {
		id, _, err := EncodeQuery(q, true)
		if err != nil {
			t.Fatalf("EncodeQuery failed: %v", err)
		}
		seen[id] = true
	}
	if len(seen) < 2 {
		t.Error("expected distinct transaction IDs across repeated calls")
	}
}

func TestEncodeQuery_RoundTripsThroughDecode(t *testing.T) {
	q, _ := domain.NewQuestion("www.example.com", domain.RRTypeAAAA, domain.RRClassIN)
	id, raw, err := EncodeQuery(q, true)
	if err != nil {
		t.Fatalf("EncodeQuery failed: %v", err)
	}
	msg, err := DecodeMessage(raw)
	if err != nil {
		t.Fatalf("DecodeMessage failed: %v", err)
	}
	if msg.ID != id {
		t.Errorf("got ID %d, want %d", msg.ID, id)
	}
	if !msg.Flags.RD {
		t.Error("expected RD flag set")
	}
	if len(msg.Questions) != 1 || msg.Questions[0].Name != "www.example.com" {
		t.Errorf("got questions %+v", msg.Questions)
	}
}
