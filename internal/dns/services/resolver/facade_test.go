package resolver

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/joshuafuller/cachedns/internal/dns/common/clock"
	"github.com/joshuafuller/cachedns/internal/dns/domain"
)

type fakeCache struct {
	store map[string]domain.Message
	puts  int
}

func newFakeCache() *fakeCache { return &fakeCache{store: map[string]domain.Message{}} }

func (c *fakeCache) Get(key string) (domain.Message, bool) { m, ok := c.store[key]; return m, ok }
func (c *fakeCache) Put(key string, msg domain.Message)    { c.puts++; c.store[key] = msg }
func (c *fakeCache) Delete(key string)                     { delete(c.store, key) }
func (c *fakeCache) Clear()                                 { c.store = map[string]domain.Message{} }
func (c *fakeCache) Len() int                               { return len(c.store) }

type fakeModeResolver struct {
	msg domain.Message
	err error
}

func (r *fakeModeResolver) Resolve(ctx context.Context, q domain.Question) (domain.Message, error) {
	return r.msg, r.err
}

func cacheableAnswer(t *testing.T, name, ip string) domain.Message {
	t.Helper()
	msg := answerMessage(t, name, ip)
	msg.Flags.RCode = domain.RCodeNoError
	return msg
}

func TestFacade_ReturnsFromCacheWithoutDispatch(t *testing.T) {
	cache := newFakeCache()
	want := cacheableAnswer(t, "example.com.", "1.2.3.4")
	q := mustQuestion(t, "example.com.", domain.RRTypeA)
	cache.store[q.CacheKey()] = want

	f := NewFacade(FacadeOptions{
		Cache:     cache,
		Iterative: &fakeModeResolver{err: errors.New("should not be called")},
		Forward:   &fakeModeResolver{err: errors.New("should not be called")},
		DoH:       &fakeModeResolver{err: errors.New("should not be called")},
		Clock:     &clock.MockClock{CurrentTime: time.Unix(0, 0)},
	})

	res := f.Resolve(context.Background(), "example.com.", domain.RRTypeA, ModeRecursive)
	if res.Err != nil {
		t.Fatalf("Resolve failed: %v", res.Err)
	}
	if res.Source != SourceCache {
		t.Errorf("got source %v, want cache", res.Source)
	}
}

func TestFacade_RecursiveModeCachesSuccessfulResult(t *testing.T) {
	cache := newFakeCache()
	msg := cacheableAnswer(t, "example.com.", "1.2.3.4")

	f := NewFacade(FacadeOptions{
		Cache:     cache,
		Iterative: &fakeModeResolver{msg: msg},
		Forward:   &fakeModeResolver{err: errors.New("unused")},
		DoH:       &fakeModeResolver{err: errors.New("unused")},
		Clock:     &clock.MockClock{CurrentTime: time.Unix(0, 0)},
	})

	res := f.Resolve(context.Background(), "example.com.", domain.RRTypeA, ModeRecursive)
	if res.Err != nil {
		t.Fatalf("Resolve failed: %v", res.Err)
	}
	if res.Source != SourceNetwork || res.Mode != ModeRecursive {
		t.Errorf("got source=%v mode=%v, want network/recursive", res.Source, res.Mode)
	}
	if cache.puts != 1 {
		t.Errorf("got %d cache puts, want 1", cache.puts)
	}
}

func TestFacade_AutoModeFallsBackThroughStrategies(t *testing.T) {
	cache := newFakeCache()
	msg := cacheableAnswer(t, "example.com.", "5.6.7.8")

	f := NewFacade(FacadeOptions{
		Cache:     cache,
		Iterative: &fakeModeResolver{err: errors.New("recursive down")},
		Forward:   &fakeModeResolver{err: errors.New("forward down")},
		DoH:       &fakeModeResolver{msg: msg},
		Clock:     &clock.MockClock{CurrentTime: time.Unix(0, 0)},
	})

	res := f.Resolve(context.Background(), "example.com.", domain.RRTypeA, ModeAuto)
	if res.Err != nil {
		t.Fatalf("Resolve failed: %v", res.Err)
	}
	if res.Mode != ModeDoH {
		t.Errorf("got mode %v, want doh", res.Mode)
	}
}

func TestFacade_AutoModeAggregatesErrorsWhenAllFail(t *testing.T) {
	f := NewFacade(FacadeOptions{
		Cache:     newFakeCache(),
		Iterative: &fakeModeResolver{err: errors.New("recursive down")},
		Forward:   &fakeModeResolver{err: errors.New("forward down")},
		DoH:       &fakeModeResolver{err: errors.New("doh down")},
		Clock:     &clock.MockClock{CurrentTime: time.Unix(0, 0)},
	})

	res := f.Resolve(context.Background(), "example.com.", domain.RRTypeA, ModeAuto)
	if res.Err == nil {
		t.Fatalf("expected an aggregated error, got nil")
	}
	for _, want := range []string{"recursive down", "forward down", "doh down"} {
		if !strings.Contains(res.Err.Error(), want) {
			t.Errorf("aggregated error %q missing %q", res.Err.Error(), want)
		}
	}
}

func TestFacade_DoesNotCacheUncacheableResult(t *testing.T) {
	cache := newFakeCache()
	empty := domain.Message{Flags: domain.Flags{RCode: domain.RCodeNXDomain}}

	f := NewFacade(FacadeOptions{
		Cache:     cache,
		Iterative: &fakeModeResolver{msg: empty},
		Forward:   &fakeModeResolver{err: errors.New("unused")},
		DoH:       &fakeModeResolver{err: errors.New("unused")},
		Clock:     &clock.MockClock{CurrentTime: time.Unix(0, 0)},
	})

	res := f.Resolve(context.Background(), "example.com.", domain.RRTypeA, ModeRecursive)
	if res.Err != nil {
		t.Fatalf("Resolve failed: %v", res.Err)
	}
	if cache.puts != 0 {
		t.Errorf("got %d cache puts, want 0 for an uncacheable result", cache.puts)
	}
}
