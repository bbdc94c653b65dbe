package resolver

import (
	"context"
	"fmt"

	"github.com/joshuafuller/cachedns/internal/dns/domain"
)

// DefaultDoHProvider is used when no DoH provider is configured.
const DefaultDoHProvider = "https://dns.google/dns-query"

// DoHResolver sends a query to a DNS-over-HTTPS provider, per spec §4.2/§4.6.
// It shares the same UpstreamClient shape as ForwardResolver: client.DoHClient
// satisfies UpstreamClient.Query(ctx, providerURL, q, recursionDesired) and
// always queries with recursionDesired=true, delegating the recursive walk
// to the provider.
type DoHResolver struct {
	client   UpstreamClient
	provider string
}

// NewDoHResolver builds a DoHResolver. An empty provider defaults to DefaultDoHProvider.
func NewDoHResolver(client UpstreamClient, provider string) *DoHResolver {
	if provider == "" {
		provider = DefaultDoHProvider
	}
	return &DoHResolver{client: client, provider: provider}
}

// Resolve sends q to the configured DoH provider.
func (r *DoHResolver) Resolve(ctx context.Context, q domain.Question) (domain.Message, error) {
	msg, err := r.client.Query(ctx, r.provider, q, true)
	if err != nil {
		return domain.Message{}, fmt.Errorf("doh: querying %s: %w", r.provider, err)
	}
	return msg, nil
}

var _ ModeResolver = (*DoHResolver)(nil)
