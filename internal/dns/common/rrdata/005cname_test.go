package rrdata

import "testing"

func TestEncodeDecodeCNAMEData(t *testing.T) {
	raw, err := EncodeCNAMEData("alias.example.com")
	if err != nil {
		t.Fatalf("EncodeCNAMEData failed: %v", err)
	}
	data, err := decodeCNAMEData(raw, 0)
	if err != nil {
		t.Fatalf("decodeCNAMEData failed: %v", err)
	}
	if data.Name != "alias.example.com" {
		t.Errorf("got %q, want alias.example.com", data.Name)
	}
}
