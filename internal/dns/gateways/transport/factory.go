package transport

import (
	"context"
	"fmt"

	"github.com/joshuafuller/cachedns/internal/dns/common/log"
	"github.com/joshuafuller/cachedns/internal/dns/gateways/wire"
	"github.com/joshuafuller/cachedns/internal/dns/services/resolver"
)

// ServerTransport defines the interface for DNS transport implementations.
type ServerTransport interface {
	Start(ctx context.Context, handler resolver.DNSResponder) error
	Stop() error
	Address() string
}

// NewTransport creates a new transport instance based on the specified type.
func NewTransport(transportType TransportType, addr string, codec wire.Codec, logger log.Logger) (ServerTransport, error) {
	switch transportType {
	case TransportUDP:
		return NewUDPTransport(addr, codec, logger), nil

	case TransportDoH:
		return NewDoHTransport(addr, codec, logger), nil

	default:
		return nil, fmt.Errorf("unsupported transport type: %s", transportType)
	}
}

// GetSupportedTransports returns a list of currently supported transport types.
func GetSupportedTransports() []TransportType {
	return []TransportType{TransportUDP, TransportDoH}
}

// IsTransportSupported checks if a given transport type is currently supported.
func IsTransportSupported(transportType TransportType) bool {
	for _, t := range GetSupportedTransports() {
		if t == transportType {
			return true
		}
	}
	return false
}
