package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joshuafuller/cachedns/internal/dns/common/clock"
	"github.com/joshuafuller/cachedns/internal/dns/common/log"
	"github.com/joshuafuller/cachedns/internal/dns/config"
	"github.com/joshuafuller/cachedns/internal/dns/gateways/client"
	"github.com/joshuafuller/cachedns/internal/dns/gateways/transport"
	"github.com/joshuafuller/cachedns/internal/dns/gateways/wire"
	"github.com/joshuafuller/cachedns/internal/dns/repos/dnscache"
	"github.com/joshuafuller/cachedns/internal/dns/repos/storage"
	"github.com/joshuafuller/cachedns/internal/dns/services/resolver"
)

const (
	version = "0.1.0-dev"

	defaultShutdownTimeout = 10 * time.Second
)

// Application holds every long-lived component the server runs.
type Application struct {
	config     *config.AppConfig
	handler    resolver.DNSResponder
	transports []transport.ServerTransport
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	if err := log.Configure(cfg.Env, cfg.Log.Level); err != nil {
		fmt.Fprintf(os.Stderr, "Logging configuration error: %v\n", err)
		os.Exit(1)
	}

	log.Info(map[string]any{
		"version":       version,
		"env":           cfg.Env,
		"log_level":     cfg.Log.Level,
		"port":          cfg.Port,
		"cache_backend": cfg.Cache.Backend,
		"cache_size":    cfg.Cache.Size,
		"resolver_mode": cfg.Resolver.Mode,
		"forwarder":     cfg.Resolver.Forwarder,
		"doh_provider":  cfg.Resolver.DoHProvider,
	}, "starting DNS server")

	app, err := buildApplication(cfg)
	if err != nil {
		log.Fatal(map[string]any{"error": err.Error()}, "failed to build application")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Info(map[string]any{"signal": sig.String()}, "shutdown signal received")
		cancel()
	}()

	if err := app.Run(ctx); err != nil {
		log.Fatal(map[string]any{"error": err.Error()}, "server failed")
	}

	log.Info(nil, "DNS server stopped gracefully")
}

// buildApplication wires configuration, the cache, upstream clients, the
// three mode resolvers, the façade, and the configured transports together.
func buildApplication(cfg *config.AppConfig) (*Application, error) {
	logger := log.GetLogger()
	clk := clock.RealClock{}
	codec := wire.NewStdCodec()

	// buildCache may return a nil *dnscache.Cache on construction failure;
	// only assign it to the interface-typed field when non-nil, since a nil
	// concrete pointer boxed in a non-nil interface would pass Facade's
	// `f.cache != nil` check and then panic on use.
	var cache resolver.Cache
	if c := buildCache(cfg, clk, logger); c != nil {
		cache = c
	}

	udpClient := client.NewUDPClient(client.UDPClientOptions{
		Codec:   codec,
		Timeout: time.Duration(cfg.Resolver.TimeoutSeconds * float64(time.Second)),
	})
	dohClient := client.NewDoHClient(client.DoHClientOptions{Codec: codec})

	iterative := resolver.NewIterativeResolver(resolver.IterativeResolverOptions{
		Client:     udpClient,
		Logger:     logger,
		HopLimit:   cfg.Resolver.MaxHops,
		QueryLimit: cfg.Resolver.MaxQueries,
	})
	forward := resolver.NewForwardResolver(udpClient, cfg.Resolver.Forwarder)
	doh := resolver.NewDoHResolver(dohClient, cfg.Resolver.DoHProvider)

	facade := resolver.NewFacade(resolver.FacadeOptions{
		Cache:     cache,
		Iterative: iterative,
		Forward:   forward,
		DoH:       doh,
		Clock:     clk,
		Logger:    logger,
		Metrics:   resolver.NewMetrics(),
	})

	handler := resolver.NewServer(facade, resolver.Mode(cfg.Resolver.Mode), logger)

	udpAddr := fmt.Sprintf(":%d", cfg.Port)
	udpTransport, err := transport.NewTransport(transport.TransportUDP, udpAddr, codec, logger)
	if err != nil {
		return nil, fmt.Errorf("building UDP transport: %w", err)
	}

	return &Application{
		config:     cfg,
		handler:    handler,
		transports: []transport.ServerTransport{udpTransport},
	}, nil
}

// buildCache constructs the in-memory cache and, for "document" or
// "relational" backends, attaches the matching durable store so reads fall
// through on a miss and writes go through on every Put. An open/migrate
// failure for the durable store falls back to a memory-only cache with a
// warning rather than failing startup.
func buildCache(cfg *config.AppConfig, clk clock.Clock, logger log.Logger) *dnscache.Cache {
	cache, err := dnscache.New(cfg.Cache.Size, time.Duration(cfg.Cache.DefaultTTLSeconds)*time.Second, clk)
	if err != nil {
		logger.Error(map[string]any{"error": err.Error()}, "failed to build message cache, continuing without caching")
		return nil
	}

	backing, err := buildBacking(cfg)
	if err != nil {
		logger.Warn(map[string]any{
			"requested_backend": cfg.Cache.Backend,
			"error":             err.Error(),
		}, "durable cache backend unavailable, falling back to memory-only cache")
		return cache
	}
	if backing != nil {
		cache.UseBacking(backing, logger)
	}
	return cache
}

// buildBacking opens the durable store named by cfg.Cache.Backend. It
// returns a nil Backing (and nil error) for "memory", which needs none.
func buildBacking(cfg *config.AppConfig) (dnscache.Backing, error) {
	switch cfg.Cache.Backend {
	case "memory":
		return nil, nil
	case "document":
		return storage.NewDocumentStore(cfg.Cache.DocumentPath)
	case "relational":
		return storage.NewRelationalStore(cfg.Cache.RelationalDSN)
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}

// Run starts every transport and blocks until ctx is cancelled, then stops
// each within defaultShutdownTimeout.
func (app *Application) Run(ctx context.Context) error {
	for _, t := range app.transports {
		if err := t.Start(ctx, app.handler); err != nil {
			return fmt.Errorf("starting transport: %w", err)
		}
		log.Info(map[string]any{"address": t.Address()}, "transport started")
	}

	<-ctx.Done()
	log.Info(nil, "shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()

	done := make(chan struct{})
	go func() {
		for _, t := range app.transports {
			if err := t.Stop(); err != nil {
				log.Warn(map[string]any{"error": err.Error()}, "error stopping transport")
			}
		}
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-shutdownCtx.Done():
		return fmt.Errorf("shutdown timeout exceeded")
	}
}
