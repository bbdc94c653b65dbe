package resolver

import (
	"context"
	"fmt"

	"github.com/joshuafuller/cachedns/internal/dns/domain"
)

// ForwardResolver sends a recursion-desired query to a single configured
// upstream server and returns its response, per spec §4.6.
type ForwardResolver struct {
	client    UpstreamClient
	forwarder string
}

// NewForwardResolver builds a ForwardResolver. An empty forwarder defaults
// to DefaultForwarder.
func NewForwardResolver(client UpstreamClient, forwarder string) *ForwardResolver {
	if forwarder == "" {
		forwarder = DefaultForwarder
	}
	return &ForwardResolver{client: client, forwarder: forwarder}
}

// Resolve forwards q to the configured upstream with RD=1.
func (r *ForwardResolver) Resolve(ctx context.Context, q domain.Question) (domain.Message, error) {
	msg, err := r.client.Query(ctx, r.forwarder, q, true)
	if err != nil {
		return domain.Message{}, fmt.Errorf("forward: querying %s: %w", r.forwarder, err)
	}
	return msg, nil
}

var _ ModeResolver = (*ForwardResolver)(nil)
