// Package resolver implements the resolver façade (spec §4.6): the single
// entry point that checks the cache, dispatches to a resolution mode, and
// records the outcome.
package resolver

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/multierr"

	"github.com/joshuafuller/cachedns/internal/dns/common/clock"
	"github.com/joshuafuller/cachedns/internal/dns/common/log"
	"github.com/joshuafuller/cachedns/internal/dns/domain"
)

// Mode selects which resolution strategy Resolve dispatches to.
type Mode string

const (
	ModeAuto      Mode = "auto"
	ModeRecursive Mode = "recursive"
	ModeForward   Mode = "forward"
	ModeDoH       Mode = "doh"
)

// Source reports whether a Result came from the cache or the network.
type Source string

const (
	SourceCache   Source = "cache"
	SourceNetwork Source = "network"
)

// Result is the façade's response shape, per spec §4.6.
type Result struct {
	Source     Source
	Mode       Mode
	Data       domain.Message
	DNSSEC     domain.DNSSECInfo
	DurationMs float64
	Err        error
}

// Facade is the resolver's single entry point: cache-first lookup, mode
// dispatch, DNSSEC-presence summarization, and metrics recording.
type Facade struct {
	cache     Cache
	iterative ModeResolver
	forward   ModeResolver
	doh       ModeResolver
	clock     clock.Clock
	logger    log.Logger
	metrics   *Metrics
}

// FacadeOptions configures a Facade. Clock defaults to clock.RealClock and
// Logger to log.GetLogger(); Metrics defaults to a fresh Metrics instance.
type FacadeOptions struct {
	Cache     Cache
	Iterative ModeResolver
	Forward   ModeResolver
	DoH       ModeResolver
	Clock     clock.Clock
	Logger    log.Logger
	Metrics   *Metrics
}

// NewFacade builds a Facade.
func NewFacade(opts FacadeOptions) *Facade {
	if opts.Clock == nil {
		opts.Clock = clock.RealClock{}
	}
	if opts.Logger == nil {
		opts.Logger = log.GetLogger()
	}
	if opts.Metrics == nil {
		opts.Metrics = NewMetrics()
	}
	return &Facade{
		cache:     opts.Cache,
		iterative: opts.Iterative,
		forward:   opts.Forward,
		doh:       opts.DoH,
		clock:     opts.Clock,
		logger:    opts.Logger,
		metrics:   opts.Metrics,
	}
}

// Resolve implements spec §4.6's resolve(name, rrtype, mode) entry point.
func (f *Facade) Resolve(ctx context.Context, name string, rrtype domain.RRType, mode Mode) Result {
	start := f.clock.Now()

	q, err := domain.NewQuestion(name, rrtype, domain.RRClassIN)
	if err != nil {
		return Result{Mode: mode, Err: fmt.Errorf("facade: invalid question: %w", err), DurationMs: f.elapsedMs(start)}
	}

	key := q.CacheKey()
	if f.cache != nil {
		if msg, ok := f.cache.Get(key); ok {
			return Result{
				Source:     SourceCache,
				Mode:       mode,
				Data:       msg,
				DNSSEC:     msg.Summarize(),
				DurationMs: f.elapsedMs(start),
			}
		}
	}

	msg, usedMode, err := f.dispatch(ctx, q, mode)
	duration := f.elapsedMs(start)

	if err != nil {
		f.metrics.Record(f.clock.Now(), name, string(usedMode), duration, "failure")
		return Result{Mode: usedMode, Err: err, DurationMs: duration}
	}

	if f.cache != nil && msg.IsCacheable() {
		f.cache.Put(key, msg)
	}
	f.metrics.Record(f.clock.Now(), name, string(usedMode), duration, "success")

	return Result{
		Source:     SourceNetwork,
		Mode:       usedMode,
		Data:       msg,
		DNSSEC:     msg.Summarize(),
		DurationMs: duration,
	}
}

func (f *Facade) dispatch(ctx context.Context, q domain.Question, mode Mode) (domain.Message, Mode, error) {
	switch mode {
	case ModeRecursive:
		msg, err := f.iterative.Resolve(ctx, q)
		return msg, ModeRecursive, err
	case ModeForward:
		msg, err := f.forward.Resolve(ctx, q)
		return msg, ModeForward, err
	case ModeDoH:
		msg, err := f.doh.Resolve(ctx, q)
		return msg, ModeDoH, err
	case ModeAuto, "":
		return f.resolveAuto(ctx, q)
	default:
		return domain.Message{}, mode, fmt.Errorf("facade: unknown mode %q", mode)
	}
}

// resolveAuto tries recursive, then forward, then DoH, returning the first
// to produce a result. If all three fail, their errors are aggregated.
func (f *Facade) resolveAuto(ctx context.Context, q domain.Question) (domain.Message, Mode, error) {
	var errs error

	if msg, err := f.iterative.Resolve(ctx, q); err == nil {
		return msg, ModeRecursive, nil
	} else {
		f.logger.Debug(map[string]any{"name": q.Name, "error": err}, "recursive resolution failed, trying forward")
		errs = multierr.Append(errs, fmt.Errorf("recursive: %w", err))
	}

	if msg, err := f.forward.Resolve(ctx, q); err == nil {
		return msg, ModeForward, nil
	} else {
		f.logger.Debug(map[string]any{"name": q.Name, "error": err}, "forward resolution failed, trying doh")
		errs = multierr.Append(errs, fmt.Errorf("forward: %w", err))
	}

	if msg, err := f.doh.Resolve(ctx, q); err == nil {
		return msg, ModeDoH, nil
	} else {
		errs = multierr.Append(errs, fmt.Errorf("doh: %w", err))
	}

	return domain.Message{}, ModeAuto, fmt.Errorf("facade: all resolution modes failed: %w", errs)
}

func (f *Facade) elapsedMs(start time.Time) float64 {
	return float64(f.clock.Now().Sub(start)) / float64(time.Millisecond)
}
