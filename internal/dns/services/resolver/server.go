package resolver

import (
	"context"
	"net"

	"github.com/joshuafuller/cachedns/internal/dns/common/log"
	"github.com/joshuafuller/cachedns/internal/dns/domain"
)

// Server adapts a Facade to the DNSResponder interface transports depend on:
// it pulls the single question a transport decoded off the wire, resolves
// it, and shapes a response message carrying the same transaction ID and
// question section as the query, per RFC 1035 §4.1.
type Server struct {
	facade *Facade
	mode   Mode
	logger log.Logger
}

// NewServer builds a Server that answers every query using mode.
func NewServer(facade *Facade, mode Mode, logger log.Logger) *Server {
	if logger == nil {
		logger = log.GetLogger()
	}
	return &Server{facade: facade, mode: mode, logger: logger}
}

// HandleRequest implements DNSResponder.
func (s *Server) HandleRequest(ctx context.Context, query domain.Message, clientAddr net.Addr) domain.Message {
	if len(query.Questions) == 0 {
		return domain.Message{ID: query.ID, Flags: domain.Flags{QR: true, RCode: domain.RCodeFormErr}}
	}

	q := query.Questions[0]
	result := s.facade.Resolve(ctx, q.Name, q.Type, s.mode)

	if result.Err != nil {
		s.logger.Warn(map[string]any{
			"client": clientAddr.String(),
			"name":   q.Name,
			"mode":   string(result.Mode),
			"error":  result.Err,
		}, "resolution failed")
		return domain.Message{
			ID:        query.ID,
			Flags:     domain.Flags{QR: true, RCode: domain.RCodeServFail},
			Questions: query.Questions,
		}
	}

	resp := result.Data
	resp.ID = query.ID
	resp.Flags.QR = true
	resp.Questions = query.Questions
	return resp
}

var _ DNSResponder = (*Server)(nil)
