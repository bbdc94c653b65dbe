package wire

import "github.com/joshuafuller/cachedns/internal/dns/domain"

// Codec builds outgoing DNS queries and parses DNS messages received over
// the wire. Implementations must not retain references to the byte slices
// they are given.
type Codec interface {
	EncodeQuery(q domain.Question, recursionDesired bool) (id uint16, raw []byte, err error)
	DecodeMessage(raw []byte) (domain.Message, error)
	EncodeMessage(msg domain.Message) ([]byte, error)
}

// StdCodec is the default Codec, implementing plain RFC 1035 encoding with
// compression-aware decoding.
type StdCodec struct{}

// NewStdCodec returns the default wire codec.
func NewStdCodec() StdCodec {
	return StdCodec{}
}

func (StdCodec) EncodeQuery(q domain.Question, recursionDesired bool) (uint16, []byte, error) {
	return EncodeQuery(q, recursionDesired)
}

func (StdCodec) DecodeMessage(raw []byte) (domain.Message, error) {
	return DecodeMessage(raw)
}

func (StdCodec) EncodeMessage(msg domain.Message) ([]byte, error) {
	return EncodeMessage(msg)
}

var _ Codec = StdCodec{}
