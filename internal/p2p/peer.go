package p2p

import (
	"net"
	"time"

	"github.com/taekwondodev/bitcoin-p2p/pkg/wire"
)

// Peer is one connected remote node and what it told us about itself
// during and after the handshake.
type Peer struct {
	Addr       string
	Connection net.Conn
	Inbound    bool
	LastSeen   time.Time

	// Filled in from the peer's version message.
	Version     uint32
	Services    wire.ServiceFlags
	UserAgent   string
	StartHeight int32

	// Negotiated after the handshake.
	SendHeaders bool
	WtxidRelay  bool
	WantsAddrV2 bool
	FeeFilter   int64
}

func (p *Peer) applyVersion(v *wire.Version) {
	p.Version = v.Version
	p.Services = v.Services
	p.UserAgent = v.UserAgent
	p.StartHeight = v.StartHeight
}

// netAddress converts the peer's remote address to the wire form used in
// addr messages. The services are the ones the peer advertised.
func (p *Peer) netAddress() (wire.NetAddress, bool) {
	host, port, err := net.SplitHostPort(p.Addr)
	if err != nil {
		return wire.NetAddress{}, false
	}
	ip := net.ParseIP(host)
	if ip == nil {
		return wire.NetAddress{}, false
	}
	portNum, err := net.LookupPort("tcp", port)
	if err != nil {
		return wire.NetAddress{}, false
	}
	return wire.NetAddress{
		Services: p.Services,
		IP:       ip,
		Port:     uint16(portNum),
	}, true
}
