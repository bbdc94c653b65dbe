package domain

// DefaultEffectiveTTL is the cache lifetime assigned to a message that has
// no answer records, per spec §3 and §9's negative-caching open question.
// Such a message is cached only when IsCacheable accepts it (NOERROR with a
// non-empty authority section, e.g. a referral); it then lives this long.
const DefaultEffectiveTTL uint32 = 300

// Message represents a full DNS message: header fields plus the four
// sections defined in RFC 1035 §4.1.
type Message struct {
	ID           uint16
	Flags        Flags
	Questions    []Question
	Answers      []ResourceRecord
	Authorities  []ResourceRecord
	Additionals  []ResourceRecord
	EffectiveTTL uint32
}

// ComputeEffectiveTTL returns the minimum TTL across a message's answer
// records, or DefaultEffectiveTTL when there are none.
func ComputeEffectiveTTL(answers []ResourceRecord) uint32 {
	if len(answers) == 0 {
		return DefaultEffectiveTTL
	}
	min := answers[0].TTL
	for _, rr := range answers[1:] {
		if rr.TTL < min {
			min = rr.TTL
		}
	}
	return min
}

// HasAnswers reports whether the message carries any answer records.
func (m Message) HasAnswers() bool {
	return len(m.Answers) > 0
}

// IsCacheable reports whether this message satisfies spec §3/§4.4's
// cacheability rule: RCODE must be NOERROR and at least one of the
// answer or authority sections must be non-empty. A response with an
// empty answer and empty authority section (e.g. a dead end) is never
// cached, and negative responses (NXDOMAIN et al.) are never cached
// either, per the resolved open question in §9.
func (m Message) IsCacheable() bool {
	if m.Flags.RCode != 0 {
		return false
	}
	return len(m.Answers) > 0 || len(m.Authorities) > 0
}

// DNSSECInfo summarizes the presence of DNSSEC-related record types across
// a message's sections, per spec §4.6 step 4. Full validation is out of
// scope; this is detection only.
type DNSSECInfo struct {
	HasRRSIG  bool
	HasDS     bool
	HasDNSKEY bool
}

// Summarize scans all sections of the message for RRSIG (46), DS (43), and
// DNSKEY (48) records.
func (m Message) Summarize() DNSSECInfo {
	var info DNSSECInfo
	scan := func(rrs []ResourceRecord) {
		for _, rr := range rrs {
			switch rr.Type {
			case RRTypeRRSIG:
				info.HasRRSIG = true
			case RRTypeDS:
				info.HasDS = true
			case RRTypeDNSKEY:
				info.HasDNSKEY = true
			}
		}
	}
	scan(m.Answers)
	scan(m.Authorities)
	scan(m.Additionals)
	return info
}
