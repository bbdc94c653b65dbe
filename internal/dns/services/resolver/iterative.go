package resolver

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/joshuafuller/cachedns/internal/dns/common/log"
	"github.com/joshuafuller/cachedns/internal/dns/domain"
)

// Sentinel errors for the iterative walk's termination conditions, per spec
// §4.3 and §7.
var (
	// ErrUnreachable is returned when a nameserver fails to answer (timeout
	// or transport error). The walk never retries a server internally.
	ErrUnreachable = errors.New("iterative: upstream nameserver unreachable")
	// ErrNoDelegation is returned when a referral carries no usable NS.
	ErrNoDelegation = errors.New("iterative: no delegation found")
	// ErrHopLimitExceeded bounds the number of referral hops followed.
	ErrHopLimitExceeded = errors.New("iterative: hop limit exceeded")
	// ErrQueryLimitExceeded bounds the total number of queries issued,
	// including NS sub-resolutions sharing the same budget.
	ErrQueryLimitExceeded = errors.New("iterative: query limit exceeded")
	// ErrDelegationLoopDetected guards NS sub-resolution against
	// re-resolving a name already being resolved on the current stack.
	ErrDelegationLoopDetected = errors.New("iterative: delegation loop detected")
)

// DefaultHopLimit and DefaultQueryLimit match spec §4.3's recommendation.
const (
	DefaultHopLimit   = 16
	DefaultQueryLimit = 32
)

// IterativeResolver walks the DNS delegation chain from a root server down
// to an authoritative answer, per spec §4.3.
type IterativeResolver struct {
	client     UpstreamClient
	logger     log.Logger
	hopLimit   int
	queryLimit int
}

// IterativeResolverOptions configures an IterativeResolver. HopLimit and
// QueryLimit default to DefaultHopLimit/DefaultQueryLimit when <= 0.
type IterativeResolverOptions struct {
	Client     UpstreamClient
	Logger     log.Logger
	HopLimit   int
	QueryLimit int
}

// NewIterativeResolver builds an IterativeResolver.
func NewIterativeResolver(opts IterativeResolverOptions) *IterativeResolver {
	if opts.HopLimit <= 0 {
		opts.HopLimit = DefaultHopLimit
	}
	if opts.QueryLimit <= 0 {
		opts.QueryLimit = DefaultQueryLimit
	}
	if opts.Logger == nil {
		opts.Logger = log.GetLogger()
	}
	return &IterativeResolver{
		client:     opts.Client,
		logger:     opts.Logger,
		hopLimit:   opts.HopLimit,
		queryLimit: opts.QueryLimit,
	}
}

// walkState is shared across the top-level resolution and any NS
// sub-resolutions it triggers, so the hop/query budget and the
// in-progress-name guard apply to the whole call tree, not per hop.
type walkState struct {
	hops      int
	queries   int
	resolving map[string]struct{}
}

func newWalkState() *walkState {
	return &walkState{resolving: make(map[string]struct{})}
}

// Resolve performs a full iterative resolution for q, starting from a
// random root server hint.
func (r *IterativeResolver) Resolve(ctx context.Context, q domain.Question) (domain.Message, error) {
	return r.resolve(ctx, q, newWalkState())
}

func (r *IterativeResolver) resolve(ctx context.Context, q domain.Question, st *walkState) (domain.Message, error) {
	name := q.Name
	if _, inProgress := st.resolving[name]; inProgress {
		return domain.Message{}, fmt.Errorf("%w: %s", ErrDelegationLoopDetected, name)
	}
	st.resolving[name] = struct{}{}
	defer delete(st.resolving, name)

	currentNSIP := randomRootIP()

	for {
		if st.hops >= r.hopLimit {
			return domain.Message{}, fmt.Errorf("%w: %d hops", ErrHopLimitExceeded, st.hops)
		}
		st.hops++

		query, err := domain.NewQuestion(name, q.Type, q.Class)
		if err != nil {
			return domain.Message{}, fmt.Errorf("iterative: building query for %s: %w", name, err)
		}

		msg, err := r.query(ctx, currentNSIP, query, st)
		if err != nil {
			return domain.Message{}, err
		}
		if msg.HasAnswers() {
			return msg, nil
		}

		nextIP, err := r.nextNameserver(ctx, msg, st)
		if err != nil {
			return domain.Message{}, err
		}
		currentNSIP = nextIP
	}
}

// query enforces the shared query-count budget before dispatching to the
// upstream client.
func (r *IterativeResolver) query(ctx context.Context, server string, q domain.Question, st *walkState) (domain.Message, error) {
	if st.queries >= r.queryLimit {
		return domain.Message{}, fmt.Errorf("%w: %d queries", ErrQueryLimitExceeded, st.queries)
	}
	st.queries++

	// RD=0: the iterative walk performs its own delegation resolution and
	// never asks the server it's querying to recurse on its behalf.
	msg, err := r.client.Query(ctx, server+":53", q, false)
	if err != nil {
		r.logger.Debug(map[string]any{"server": server, "name": q.Name, "error": err}, "iterative query failed")
		return domain.Message{}, fmt.Errorf("%w: %s: %v", ErrUnreachable, server, err)
	}
	return msg, nil
}

// nextNameserver picks the next server to query from msg's referral,
// preferring glue records and falling back to resolving an NS name's own
// A record when no glue is present.
func (r *IterativeResolver) nextNameserver(ctx context.Context, msg domain.Message, st *walkState) (string, error) {
	var nsNames []string
	for _, rr := range msg.Authorities {
		if rr.Type != domain.RRTypeNS {
			continue
		}
		if ns, ok := rr.Data.(domain.NSData); ok {
			nsNames = append(nsNames, ns.Name)
		}
	}
	if len(nsNames) == 0 {
		return "", ErrNoDelegation
	}

	glue := map[string]string{}
	for _, rr := range msg.Additionals {
		if rr.Type != domain.RRTypeA {
			continue
		}
		if a, ok := rr.Data.(domain.AData); ok {
			glue[rr.Name] = a.IP
		}
	}

	for _, name := range nsNames {
		if ip, ok := glue[name]; ok {
			return ip, nil
		}
	}

	for _, name := range nsNames {
		nsQuestion, err := domain.NewQuestion(name, domain.RRTypeA, domain.RRClassIN)
		if err != nil {
			continue
		}
		nsMsg, err := r.resolve(ctx, nsQuestion, st)
		if err != nil {
			// Budget exhaustion and cycle detection apply to the whole
			// call tree, not just this candidate NS, so stop trying
			// siblings and propagate instead of moving on to the next name.
			if errors.Is(err, ErrHopLimitExceeded) || errors.Is(err, ErrQueryLimitExceeded) || errors.Is(err, ErrDelegationLoopDetected) {
				return "", err
			}
			continue
		}
		for _, rr := range nsMsg.Answers {
			if a, ok := rr.Data.(domain.AData); ok {
				return a.IP, nil
			}
		}
	}
	return "", ErrNoDelegation
}

func randomRootIP() string {
	ips := make([]string, 0, len(RootServers))
	for _, ip := range RootServers {
		ips = append(ips, ip)
	}
	return ips[rand.IntN(len(ips))]
}

var _ ModeResolver = (*IterativeResolver)(nil)
