package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/joshuafuller/cachedns/internal/dns/domain"
	"github.com/joshuafuller/cachedns/internal/dns/gateways/wire"
)

const dnsMessageContentType = "application/dns-message"

// DefaultDoHProviders mirrors the well-known public resolvers, keyed by
// name. It is not consulted for a default: when no provider is configured,
// resolver.DefaultDoHProvider (the Google endpoint) is used.
var DefaultDoHProviders = map[string]string{
	"google":     "https://dns.google/dns-query",
	"cloudflare": "https://cloudflare-dns.com/dns-query",
}

// DoHClient sends a single DNS query to a DNS-over-HTTPS provider using the
// wire format defined in RFC 8484 (POST with an application/dns-message body).
type DoHClient struct {
	codec      wire.Codec
	httpClient *http.Client
}

// DoHClientOptions configures a DoHClient. Codec defaults to wire.NewStdCodec
// and HTTPClient to an *http.Client with a 3 second timeout.
type DoHClientOptions struct {
	Codec      wire.Codec
	HTTPClient *http.Client
}

// NewDoHClient builds a DoHClient, filling in defaults for any zero-valued option.
func NewDoHClient(opts DoHClientOptions) *DoHClient {
	if opts.Codec == nil {
		opts.Codec = wire.NewStdCodec()
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: 3 * time.Second}
	}
	return &DoHClient{codec: opts.Codec, httpClient: opts.HTTPClient}
}

// Query POSTs q's wire encoding to providerURL and decodes the response
// body. recursionDesired sets the outgoing query's RD bit.
func (c *DoHClient) Query(ctx context.Context, providerURL string, q domain.Question, recursionDesired bool) (domain.Message, error) {
	id, raw, err := c.codec.EncodeQuery(q, recursionDesired)
	if err != nil {
		return domain.Message{}, fmt.Errorf("client: encode query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, providerURL, bytes.NewReader(raw))
	if err != nil {
		return domain.Message{}, fmt.Errorf("client: build DoH request: %w", err)
	}
	req.Header.Set("Content-Type", dnsMessageContentType)
	req.Header.Set("Accept", dnsMessageContentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Message{}, fmt.Errorf("client: DoH request to %s: %w", providerURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Message{}, fmt.Errorf("client: DoH provider %s returned status %d", providerURL, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Message{}, fmt.Errorf("client: reading DoH response body: %w", err)
	}

	msg, err := c.codec.DecodeMessage(body)
	if err != nil {
		return domain.Message{}, fmt.Errorf("client: decode DoH response: %w", err)
	}
	if msg.ID != id {
		return domain.Message{}, fmt.Errorf("client: DoH response from %s has mismatched transaction id %d, want %d", providerURL, msg.ID, id)
	}
	return msg, nil
}
