package rrdata

import "testing"

func TestEncodeDecodeNSData(t *testing.T) {
	raw, err := EncodeNSData("ns1.example.com")
	if err != nil {
		t.Fatalf("EncodeNSData failed: %v", err)
	}
	data, err := decodeNSData(raw, 0)
	if err != nil {
		t.Fatalf("decodeNSData failed: %v", err)
	}
	if data.Name != "ns1.example.com" {
		t.Errorf("got %q, want ns1.example.com", data.Name)
	}
}

func TestDecodeNSData_Compressed(t *testing.T) {
	base, _ := EncodeDomainName("ns1.example.com")
	msg := append([]byte{}, base...)
	msg = append(msg, 0xC0, 0x00)
	data, err := decodeNSData(msg, len(base))
	if err != nil {
		t.Fatalf("decodeNSData failed: %v", err)
	}
	if data.Name != "ns1.example.com" {
		t.Errorf("got %q, want ns1.example.com", data.Name)
	}
}
