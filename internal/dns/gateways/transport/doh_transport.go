package transport

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"

	"github.com/joshuafuller/cachedns/internal/dns/common/log"
	"github.com/joshuafuller/cachedns/internal/dns/gateways/wire"
	"github.com/joshuafuller/cachedns/internal/dns/services/resolver"
)

const dnsMessageContentType = "application/dns-message"

// DoHTransport serves DNS over HTTPS (RFC 8484) requests: a POST body of
// wire-format bytes in, a POST body of wire-format bytes out. TLS
// termination is left to a reverse proxy, matching how DoH is usually
// fronted in practice; this transport only speaks plain HTTP.
type DoHTransport struct {
	addr   string
	codec  wire.Codec
	logger log.Logger
	server *http.Server
}

// NewDoHTransport creates a new DoH transport instance.
func NewDoHTransport(addr string, codec wire.Codec, logger log.Logger) *DoHTransport {
	return &DoHTransport{addr: addr, codec: codec, logger: logger}
}

// Start begins listening for DoH queries on the configured address.
func (t *DoHTransport) Start(ctx context.Context, handler resolver.DNSResponder) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/dns-query", t.handleQuery(handler))

	t.server = &http.Server{Addr: t.addr, Handler: mux}

	ln, err := net.Listen("tcp", t.addr)
	if err != nil {
		return fmt.Errorf("failed to bind DoH listener on %s: %w", t.addr, err)
	}
	t.addr = ln.Addr().String()

	t.logger.Info(map[string]any{"transport": "doh", "address": t.addr}, "DNS transport started")

	go func() {
		if err := t.server.Serve(ln); err != nil && err != http.ErrServerClosed {
			t.logger.Error(map[string]any{"error": err.Error()}, "DoH transport stopped unexpectedly")
		}
	}()

	go func() {
		<-ctx.Done()
		_ = t.Stop()
	}()

	return nil
}

// Stop gracefully shuts down the DoH transport.
func (t *DoHTransport) Stop() error {
	if t.server == nil {
		return nil
	}
	err := t.server.Close()
	t.logger.Info(map[string]any{"transport": "doh", "address": t.addr}, "DNS transport stopped")
	return err
}

// Address returns the network address the transport is bound to.
func (t *DoHTransport) Address() string {
	return t.addr
}

func (t *DoHTransport) handleQuery(handler resolver.DNSResponder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if r.Header.Get("Content-Type") != dnsMessageContentType {
			http.Error(w, "unsupported content type", http.StatusUnsupportedMediaType)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.logger.Warn(map[string]any{"error": err.Error()}, "failed to read DoH request body")
			http.Error(w, "failed to read body", http.StatusBadRequest)
			return
		}

		query, err := t.codec.DecodeMessage(body)
		if err != nil {
			t.logger.Warn(map[string]any{"error": err.Error()}, "failed to decode DoH query")
			http.Error(w, "malformed DNS message", http.StatusBadRequest)
			return
		}

		clientAddr, _ := net.ResolveTCPAddr("tcp", r.RemoteAddr)
		response := handler.HandleRequest(r.Context(), query, clientAddr)

		responseData, err := t.codec.EncodeMessage(response)
		if err != nil {
			t.logger.Error(map[string]any{"error": err.Error()}, "failed to encode DoH response")
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", dnsMessageContentType)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(responseData)
	}
}
