package resolver

import (
	"testing"
	"time"
)

func TestMetrics_RecordAndCount(t *testing.T) {
	m := NewMetrics()
	if m.Count() != 0 {
		t.Fatalf("got count %d, want 0", m.Count())
	}
	m.Record(time.Unix(0, 0), "example.com.", "recursive", 12.5, "success")
	m.Record(time.Unix(1, 0), "example.org.", "forward", 7.5, "failure")
	if m.Count() != 2 {
		t.Errorf("got count %d, want 2", m.Count())
	}
}

func TestMetrics_MeanDurationMs(t *testing.T) {
	m := NewMetrics()
	if got := m.MeanDurationMs(); got != 0 {
		t.Errorf("got mean %v on empty history, want 0", got)
	}
	m.Record(time.Unix(0, 0), "a.", "recursive", 10, "success")
	m.Record(time.Unix(0, 0), "b.", "recursive", 20, "success")
	if got := m.MeanDurationMs(); got != 15 {
		t.Errorf("got mean %v, want 15", got)
	}
}

func TestMetrics_Snapshot_ReturnsCopy(t *testing.T) {
	m := NewMetrics()
	m.Record(time.Unix(0, 0), "a.", "recursive", 10, "success")
	snap := m.Snapshot()
	snap[0].Name = "mutated"
	if m.Snapshot()[0].Name != "a." {
		t.Errorf("Snapshot leaked internal storage to caller mutation")
	}
}
