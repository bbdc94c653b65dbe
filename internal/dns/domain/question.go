package domain

import (
	"fmt"

	"github.com/joshuafuller/cachedns/internal/dns/common/utils"
)

// Question represents a single entry of a DNS message's question section.
type Question struct {
	Name  string
	Type  RRType
	Class RRClass
}

// NewQuestion constructs a Question and validates its fields.
func NewQuestion(name string, rrtype RRType, class RRClass) (Question, error) {
	q := Question{
		Name:  utils.CanonicalDNSName(name),
		Type:  rrtype,
		Class: class,
	}
	if err := q.Validate(); err != nil {
		return Question{}, err
	}
	return q, nil
}

// Validate checks whether the Question fields are structurally and semantically valid.
func (q Question) Validate() error {
	if !utils.IsValidDomain(q.Name) {
		return fmt.Errorf("question name %q is empty, overlong, or contains invalid characters", q.Name)
	}
	if !q.Type.IsValid() {
		return fmt.Errorf("unsupported RRType: %d", q.Type)
	}
	if !q.Class.IsValid() {
		return fmt.Errorf("unsupported RRClass: %d", q.Class)
	}
	return nil
}

// CacheKey returns the cache key string derived from the question's name and type.
func (q Question) CacheKey() string {
	return GenerateCacheKey(q.Name, q.Type)
}
