package resolver

// RootServers lists the 13 IANA root server hints (A addresses), per
// spec §4.3. The iterative resolver starts each resolution from a
// uniformly random entry.
var RootServers = map[string]string{
	"a.root-servers.net": "198.41.0.4",
	"b.root-servers.net": "199.9.14.201",
	"c.root-servers.net": "192.33.4.12",
	"d.root-servers.net": "199.7.91.13",
	"e.root-servers.net": "192.203.230.10",
	"f.root-servers.net": "192.5.5.241",
	"g.root-servers.net": "192.112.36.4",
	"h.root-servers.net": "198.97.190.53",
	"i.root-servers.net": "192.36.148.17",
	"j.root-servers.net": "192.58.128.30",
	"k.root-servers.net": "193.0.14.129",
	"l.root-servers.net": "199.7.83.42",
	"m.root-servers.net": "202.12.27.33",
}

// DefaultForwarder is the upstream used by the forward resolver when no
// configuration overrides it.
const DefaultForwarder = "8.8.8.8:53"
