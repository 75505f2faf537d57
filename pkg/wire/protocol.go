package wire

import "strings"

// ProtocolVersion is the highest protocol version this package speaks.
const ProtocolVersion uint32 = 70016

// Network magics. The four bytes appear on the wire in little-endian order,
// so MainNet serializes as f9 be b4 d9.
const (
	MainNet  uint32 = 0xd9b4bef9
	TestNet3 uint32 = 0x0709110b
	SigNet   uint32 = 0x40cf030a
	RegTest  uint32 = 0xdab5bffa
)

// ServiceFlags is the bitmask of services a node advertises.
type ServiceFlags uint64

const (
	SFNodeNetwork ServiceFlags = 1 << iota
	SFNodeGetUTXO
	SFNodeBloom
	SFNodeWitness
	SFNodeXthin
	_
	SFNodeCompactFilters
	_
	_
	_
	SFNodeNetworkLimited
)

var serviceFlagNames = []struct {
	flag ServiceFlags
	name string
}{
	{SFNodeNetwork, "NETWORK"},
	{SFNodeGetUTXO, "GETUTXO"},
	{SFNodeBloom, "BLOOM"},
	{SFNodeWitness, "WITNESS"},
	{SFNodeXthin, "XTHIN"},
	{SFNodeCompactFilters, "COMPACT_FILTERS"},
	{SFNodeNetworkLimited, "NETWORK_LIMITED"},
}

func (f ServiceFlags) String() string {
	if f == 0 {
		return "NONE"
	}

	var names []string
	for _, sf := range serviceFlagNames {
		if f&sf.flag != 0 {
			names = append(names, sf.name)
			f &^= sf.flag
		}
	}
	if f != 0 {
		names = append(names, "UNKNOWN")
	}
	return strings.Join(names, "|")
}

// Has reports whether every bit in flag is set.
func (f ServiceFlags) Has(flag ServiceFlags) bool {
	return f&flag == flag
}
