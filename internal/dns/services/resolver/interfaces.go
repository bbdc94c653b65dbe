package resolver

import (
	"context"
	"net"

	"github.com/joshuafuller/cachedns/internal/dns/domain"
)

// UpstreamClient sends a single question to a single upstream server and
// returns its decoded response. recursionDesired sets the outgoing query's
// RD bit: the iterative resolver queries with it clear (it does its own
// delegation walk), the forward and DoH resolvers query with it set (they
// delegate recursion to the upstream). Implementations perform no retry and
// no server-selection policy — that belongs to the caller.
type UpstreamClient interface {
	Query(ctx context.Context, server string, q domain.Question, recursionDesired bool) (domain.Message, error)
}

// Cache defines the message-level cache the resolver façade consults before
// and after every resolution, per spec §4.4.
type Cache interface {
	Get(key string) (domain.Message, bool)
	Put(key string, msg domain.Message)
	Delete(key string)
	Clear()
	Len() int
}

// DNSResponder processes a single incoming DNS query and returns a response.
// Transports (UDP listener, DoH server) depend on this interface and never
// see network protocol details beyond decoding/encoding the wire message.
type DNSResponder interface {
	HandleRequest(ctx context.Context, query domain.Message, clientAddr net.Addr) domain.Message
}

// ModeResolver is satisfied by IterativeResolver, ForwardResolver, and
// DoHResolver: each resolves a single question using a different strategy,
// per spec §4.6's mode dispatch.
type ModeResolver interface {
	Resolve(ctx context.Context, q domain.Question) (domain.Message, error)
}
