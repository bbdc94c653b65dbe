package rrdata

import (
	"testing"

	"github.com/joshuafuller/cachedns/internal/dns/domain"
)

func TestDecode_DispatchesByType(t *testing.T) {
	aRaw, _ := EncodeAData("10.0.0.1")
	nsRaw, _ := EncodeNSData("ns1.example.com")

	tests := []struct {
		name    string
		rrType  domain.RRType
		msg     []byte
		raw     []byte
		wantErr bool
	}{
		{name: "A", rrType: domain.RRTypeA, msg: aRaw, raw: aRaw},
		{name: "NS", rrType: domain.RRTypeNS, msg: nsRaw, raw: nsRaw},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Decode(tt.rrType, tt.msg, 0, tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Decode error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && data == nil {
				t.Error("expected non-nil RData")
			}
		})
	}
}

func TestDecode_UnknownTypeIsOpaque(t *testing.T) {
	raw := []byte{1, 2, 3, 4}
	data, err := Decode(domain.RRTypeSRV, raw, 0, raw)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	unknown, ok := data.(domain.UnknownData)
	if !ok {
		t.Fatalf("got %T, want domain.UnknownData", data)
	}
	if string(unknown.Raw) != string(raw) {
		t.Errorf("got raw %v, want %v", unknown.Raw, raw)
	}
	if unknown.Type != domain.RRTypeSRV {
		t.Errorf("got type %v, want %v", unknown.Type, domain.RRTypeSRV)
	}
}
