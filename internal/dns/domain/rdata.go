package domain

import "fmt"

// RData is the tagged payload of a resource record. Its concrete type
// depends on the owning record's RRType; callers type-switch on it rather
// than inspecting raw bytes.
type RData interface {
	// rrType reports the RRType this variant decodes, used for sanity
	// checks when a record is assembled from parsed wire data.
	rrType() RRType
	String() string
}

// AData is the RDATA of an A record: an IPv4 address in dotted-quad form.
type AData struct {
	IP string
}

func (AData) rrType() RRType   { return RRTypeA }
func (d AData) String() string { return d.IP }

// AAAAData is the RDATA of an AAAA record: an IPv6 address in colon-hex form.
type AAAAData struct {
	IP string
}

func (AAAAData) rrType() RRType   { return RRTypeAAAA }
func (d AAAAData) String() string { return d.IP }

// NSData is the RDATA of an NS record: the delegated name server's name.
type NSData struct {
	Name string
}

func (NSData) rrType() RRType   { return RRTypeNS }
func (d NSData) String() string { return d.Name }

// CNAMEData is the RDATA of a CNAME record: the canonical name target.
type CNAMEData struct {
	Name string
}

func (CNAMEData) rrType() RRType   { return RRTypeCNAME }
func (d CNAMEData) String() string { return d.Name }

// PTRData is the RDATA of a PTR record: the pointed-to domain name.
type PTRData struct {
	Name string
}

func (PTRData) rrType() RRType   { return RRTypePTR }
func (d PTRData) String() string { return d.Name }

// MXData is the RDATA of an MX record.
type MXData struct {
	Preference uint16
	Exchange   string
}

func (MXData) rrType() RRType { return RRTypeMX }
func (d MXData) String() string {
	return fmt.Sprintf("%d %s", d.Preference, d.Exchange)
}

// TXTData is the RDATA of a TXT record: the first character-string only,
// per spec (subsequent character-strings in a multi-string TXT are ignored).
type TXTData struct {
	Text string
}

func (TXTData) rrType() RRType    { return RRTypeTXT }
func (d TXTData) String() string { return d.Text }

// SOAData is the RDATA of an SOA record.
type SOAData struct {
	MName   string
	RName   string
	Serial  uint32
	Refresh uint32
	Retry   uint32
	Expire  uint32
	Minimum uint32
}

func (SOAData) rrType() RRType { return RRTypeSOA }
func (d SOAData) String() string {
	return fmt.Sprintf("%s %s %d %d %d %d %d", d.MName, d.RName, d.Serial, d.Refresh, d.Retry, d.Expire, d.Minimum)
}

// UnknownData is the opaque RDATA arm for record types this codec does not
// model explicitly (e.g. SRV, DS, RRSIG, DNSKEY). The wire bytes are kept
// verbatim so the record can still be relayed or re-encoded.
type UnknownData struct {
	Type RRType
	Raw  []byte
}

func (u UnknownData) rrType() RRType  { return u.Type }
func (u UnknownData) String() string  { return fmt.Sprintf("\\# %d", len(u.Raw)) }
