package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/joshuafuller/cachedns/internal/dns/domain"
	"github.com/joshuafuller/cachedns/internal/dns/gateways/wire"
)

func TestDoHClient_Query_Success(t *testing.T) {
	codec := wire.NewStdCodec()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") != dnsMessageContentType {
			t.Errorf("got Content-Type %q", r.Header.Get("Content-Type"))
		}
		body, _ := io.ReadAll(r.Body)
		reqMsg, err := codec.DecodeMessage(body)
		if err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		rr, _ := domain.NewResourceRecord("example.com", domain.RRTypeA, domain.RRClassIN, 60, domain.AData{IP: "5.6.7.8"})
		resp := domain.Message{
			ID:        reqMsg.ID,
			Flags:     domain.Flags{QR: true, RA: true, RCode: domain.RCodeNoError},
			Questions: reqMsg.Questions,
			Answers:   []domain.ResourceRecord{rr},
		}
		raw, err := codec.EncodeMessage(resp)
		if err != nil {
			http.Error(w, "encode failed", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", dnsMessageContentType)
		w.Write(raw)
	}))
	defer srv.Close()

	c := NewDoHClient(DoHClientOptions{Codec: codec})
	q := testQuestion(t)
	msg, err := c.Query(context.Background(), srv.URL, q, true)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(msg.Answers) != 1 || msg.Answers[0].Data.(domain.AData).IP != "5.6.7.8" {
		t.Fatalf("got answers %+v", msg.Answers)
	}
}

func TestDoHClient_Query_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewDoHClient(DoHClientOptions{})
	_, err := c.Query(context.Background(), srv.URL, testQuestion(t), true)
	if err == nil {
		t.Fatal("expected an error for non-200 status")
	}
}
