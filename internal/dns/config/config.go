package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/joshuafuller/cachedns/internal/dns/common/utils"
)

// AppConfig holds configuration values parsed from environment variables.
type AppConfig struct {
	// Env is the runtime environment, either "dev" or "prod".
	Env string `koanf:"env" validate:"required,oneof=dev prod"`

	// Port is the UDP port the DNS server binds to.
	Port int `koanf:"port" validate:"required,gte=1,lte=65535"`

	Log LoggingConfig `koanf:"log" validate:"required"`

	Cache CacheConfig `koanf:"cache" validate:"required"`

	Resolver ResolverConfig `koanf:"resolver" validate:"required"`
}

type LoggingConfig struct {
	// Level defines the logging level: "debug", "info", "warn", or "error".
	Level string `koanf:"level" validate:"required,oneof=debug info warn error"`
}

// CacheConfig configures the message cache (spec §4.4/§4.5/§6).
type CacheConfig struct {
	// Backend selects the durable store the cache delegates to.
	// "memory" keeps entries in the process only; "document" persists to
	// bbolt; "relational" persists to sqlite. Backend init failure falls
	// back to "memory", logged.
	Backend string `koanf:"backend" validate:"required,oneof=memory document relational"`

	// Size is the maximum number of cached messages (CACHE_SIZE).
	Size int `koanf:"size" validate:"gte=0"`

	// DefaultTTLSeconds is the fallback TTL applied to a message with no
	// answer records (DEFAULT_TTL).
	//
	// Tag has no underscore: envLoader's TransformFunc replaces every "_"
	// in an env var name with ".", so a tag like "default_ttl" could never
	// be addressed by an env var (DNS_CACHE_DEFAULT_TTL would transform to
	// "cache.default.ttl", not "cache.default_ttl").
	DefaultTTLSeconds int `koanf:"ttl" validate:"gte=1"`

	// DocumentPath is the bbolt database file path, used when Backend is "document".
	DocumentPath string `koanf:"documentpath"`

	// RelationalDSN is the sqlite data source, used when Backend is "relational".
	RelationalDSN string `koanf:"dsn"`
}

// ResolverConfig configures the resolver façade (spec §4.3/§4.6/§6).
type ResolverConfig struct {
	// Mode selects the resolution strategy: "recursive", "forward", "doh", or "auto".
	Mode string `koanf:"mode" validate:"required,oneof=recursive forward doh auto"`

	// TimeoutSeconds bounds each UDP/DoH call (TIMEOUT).
	TimeoutSeconds float64 `koanf:"timeout" validate:"required,gt=0"`

	// MaxHops bounds the iterative resolver's referral chain length.
	MaxHops int `koanf:"maxhops" validate:"required,gte=1"`

	// MaxQueries bounds the total queries (including NS sub-resolution) one
	// iterative resolution may issue.
	MaxQueries int `koanf:"maxqueries" validate:"required,gte=1"`

	// Forwarder is the upstream server used in "forward" mode, ip:port
	// (DEFAULT_FORWARDER).
	Forwarder string `koanf:"forwarder" validate:"required,ip_port"`

	// DoHProvider is the HTTPS endpoint used in "doh" mode.
	DoHProvider string `koanf:"dohprovider" validate:"required,url"`
}

// DEFAULT_APP_CONFIG defines the default application configuration settings for the DNS service.
var DEFAULT_APP_CONFIG = AppConfig{
	Env:  "prod",
	Port: 53,
	Log: LoggingConfig{
		Level: "info",
	},
	Cache: CacheConfig{
		Backend:           "memory",
		Size:              1000,
		DefaultTTLSeconds: 300,
		DocumentPath:      "/var/lib/rr-dns/cache.db",
		RelationalDSN:     "/var/lib/rr-dns/cache.sqlite",
	},
	Resolver: ResolverConfig{
		Mode:           "auto",
		TimeoutSeconds: 3.0,
		MaxHops:        16,
		MaxQueries:     32,
		Forwarder:      "8.8.8.8:53",
		DoHProvider:    "https://dns.google/dns-query",
	},
}

// validIPPort validates whether the provided field value is a valid IP address and port combination.
// It expects the value to be in the format "IP:Port". The function returns true if the IP address
// is valid and both the IP and port are non-empty; otherwise, it returns false.
func validIPPort(fl validator.FieldLevel) bool {
	// stringify the field value to get the IP:Port format.
	addr := fl.Field().String()
	// Split the address into IP and port.
	ip, port, err := net.SplitHostPort(addr)
	if err != nil || ip == "" || port == "" {
		return false
	}
	// Check if the IP address is valid.
	if !utils.IsValidIP(ip) {
		return false
	}
	// Check if the port is a valid number between 1 and 65535.
	portNum, err := strconv.ParseUint(port, 10, 16)
	return err == nil && portNum > 0 && portNum < 65536
}

// envLoader is a function that loads environment variables with the prefix "DNS_".
// It transforms the keys to lowercase and removes the prefix, and replaces _ with .
// and can be mocked in tests.
var envLoader = func(k *koanf.Koanf) error {
	// Load environment variables with prefix "DNS_".
	return k.Load(env.Provider(".", env.Opt{
		Prefix: "DNS_",
		TransformFunc: func(key, value string) (string, any) {
			key = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(key, "DNS_")), "_", ".")
			value = strings.TrimSpace(value)

			if value == "" {
				return key, value
			}

			if strings.Contains(value, " ") || strings.Contains(value, ",") {
				parts := strings.FieldsFunc(value, func(r rune) bool {
					return r == ' ' || r == ','
				})
				return key, parts
			}

			return key, value
		},
	}), nil)
}

// defaultLoader loads default configuration values into the provided Koanf instance
// using the structs provider and the DEFAULT_APP_CONFIG struct. It returns an error
// if loading fails.
var defaultLoader = func(k *koanf.Koanf) error {
	// Load default values using structs provider.
	return k.Load(structs.Provider(DEFAULT_APP_CONFIG, "koanf"), nil)
}

// registerValidation registers a custom validation function "ip_port" with the provided validator.
// It associates the "ip_port" tag with the validIPPort validation logic.
// Returns an error if registration fails.
var registerValidation = func(v *validator.Validate) error {
	return v.RegisterValidation("ip_port", validIPPort)
}

// Load parses environment variables and returns an AppConfig instance.
// It applies default values and runs validation automatically.
func Load() (*AppConfig, error) {
	k := koanf.New(".")

	// Load default values using structs provider.
	err := defaultLoader(k)
	if err != nil {
		return nil, fmt.Errorf("error loading default config: %w", err)
	}

	// Load environment variables with prefix "DNS_", using koanf/providers/env/v2 and Opt pattern.
	err = envLoader(k)
	if err != nil {
		return nil, fmt.Errorf("error loading env: %w", err)
	}

	var cfg AppConfig

	// Unmarshal the loaded configuration into AppConfig struct.
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Validate the configuration.
	validate := validator.New(validator.WithRequiredStructEnabled())

	// Register the custom validation function for IP:Port format.
	err = registerValidation(validate)
	if err != nil {
		return nil, fmt.Errorf("error registering validation: %w", err)
	}

	err = validate.Struct(&cfg)
	if err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &cfg, nil
}
