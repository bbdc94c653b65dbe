// Package client sends DNS queries to upstream servers over UDP and DNS over
// HTTPS, and decodes their wire responses. It performs no caching, retry, or
// server-selection policy; that belongs to the services that compose it.
package client

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/joshuafuller/cachedns/internal/dns/domain"
	"github.com/joshuafuller/cachedns/internal/dns/gateways/wire"
)

// udpReadBufferSize is large enough for EDNS0 responses; plain DNS replies
// are capped at 512 bytes but resolvers commonly advertise larger UDP
// payload sizes.
const udpReadBufferSize = 4096

// DialFunc establishes a network connection, matching net.Dialer.DialContext.
// Tests inject a fake to avoid touching the network.
type DialFunc func(ctx context.Context, network, address string) (net.Conn, error)

// UDPClient sends a single DNS query to a single upstream server over UDP
// and returns its decoded response. It does not retry and does not consult
// a list of servers; callers that need either wrap UDPClient themselves.
type UDPClient struct {
	codec   wire.Codec
	dial    DialFunc
	timeout time.Duration
}

// UDPClientOptions configures a UDPClient. Codec defaults to wire.NewStdCodec,
// Dial to net.Dialer.DialContext, and Timeout to 3 seconds.
type UDPClientOptions struct {
	Codec   wire.Codec
	Dial    DialFunc
	Timeout time.Duration
}

// NewUDPClient builds a UDPClient, filling in defaults for any zero-valued option.
func NewUDPClient(opts UDPClientOptions) *UDPClient {
	if opts.Codec == nil {
		opts.Codec = wire.NewStdCodec()
	}
	if opts.Dial == nil {
		opts.Dial = (&net.Dialer{}).DialContext
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 3 * time.Second
	}
	return &UDPClient{codec: opts.Codec, dial: opts.Dial, timeout: opts.Timeout}
}

// Query sends q to server (host:port) and returns its decoded response.
// recursionDesired sets the outgoing query's RD bit. The context's deadline
// is honored if set; otherwise the client's default timeout applies. The
// response's transaction ID is verified against the one generated for the
// outgoing query.
func (c *UDPClient) Query(ctx context.Context, server string, q domain.Question, recursionDesired bool) (domain.Message, error) {
	ctx, cancel := c.ensureDeadline(ctx)
	if cancel != nil {
		defer cancel()
	}

	conn, err := c.dial(ctx, "udp", server)
	if err != nil {
		return domain.Message{}, fmt.Errorf("client: dial %s: %w", server, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	}

	id, raw, err := c.codec.EncodeQuery(q, recursionDesired)
	if err != nil {
		return domain.Message{}, fmt.Errorf("client: encode query: %w", err)
	}

	type result struct {
		msg domain.Message
		err error
	}
	resultCh := make(chan result, 1)

	go func() {
		if _, err := conn.Write(raw); err != nil {
			resultCh <- result{err: fmt.Errorf("client: write to %s: %w", server, err)}
			return
		}
		buf := make([]byte, udpReadBufferSize)
		n, err := conn.Read(buf)
		if err != nil {
			resultCh <- result{err: fmt.Errorf("client: read from %s: %w", server, err)}
			return
		}
		msg, err := c.codec.DecodeMessage(buf[:n])
		if err != nil {
			resultCh <- result{err: fmt.Errorf("client: decode response from %s: %w", server, err)}
			return
		}
		if msg.ID != id {
			resultCh <- result{err: fmt.Errorf("client: response from %s has mismatched transaction id %d, want %d", server, msg.ID, id)}
			return
		}
		resultCh <- result{msg: msg}
	}()

	select {
	case res := <-resultCh:
		return res.msg, res.err
	case <-ctx.Done():
		return domain.Message{}, ctx.Err()
	}
}

func (c *UDPClient) ensureDeadline(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, nil
	}
	return context.WithTimeout(ctx, c.timeout)
}
