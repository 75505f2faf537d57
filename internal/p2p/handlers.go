package p2p

import (
	"fmt"
	"net"
	"time"

	"github.com/taekwondodev/bitcoin-p2p/pkg/wire"
)

// How many freshly learned addresses to dial per addr message.
const maxAddrDials = 8

// registerHandlers builds the command dispatch table once, at construction.
func (n *Node) registerHandlers() {
	n.handlers = map[string]func(*Peer, *wire.Message) error{
		wire.CmdPing:        n.handlePing,
		wire.CmdPong:        n.handlePong,
		wire.CmdAddr:        n.handleAddr,
		wire.CmdAddrV2:      n.handleAddrV2,
		wire.CmdGetAddr:     n.handleGetAddr,
		wire.CmdInv:         n.handleInv,
		wire.CmdGetData:     n.handleGetData,
		wire.CmdNotFound:    n.handleNotFound,
		wire.CmdHeaders:     n.handleHeaders,
		wire.CmdFeeFilter:   n.handleFeeFilter,
		wire.CmdSendHeaders: n.handleSendHeaders,
		wire.CmdWtxidRelay:  n.handleWtxidRelay,
		wire.CmdSendAddrV2:  n.handleSendAddrV2,
		wire.CmdReject:      n.handleReject,
	}
}

func (n *Node) handleMessage(p *Peer, msg *wire.Message) error {
	handler, exists := n.handlers[msg.Cmd()]
	if !exists {
		// Unrecognized commands are tolerated, not fatal: log and move on.
		n.log.Debug().
			Str("peer", p.Addr).
			Str("command", msg.Command().String()).
			Msg("ignoring message")
		return nil
	}

	return handler(p, msg)
}

func (n *Node) handlePing(p *Peer, msg *wire.Message) error {
	ping := msg.Payload.(*wire.Ping)
	return n.send(p, &wire.Pong{Nonce: ping.Nonce})
}

func (n *Node) handlePong(p *Peer, msg *wire.Message) error {
	// Keepalive only, LastSeen was already refreshed.
	return nil
}

func (n *Node) handleAddr(p *Peer, msg *wire.Message) error {
	addr := msg.Payload.(*wire.Addr)

	dials := 0
	for _, entry := range addr.Entries {
		hostPort := net.JoinHostPort(entry.Addr.IP.String(), fmt.Sprintf("%d", entry.Addr.Port))
		if err := n.addrBook.AddWithTime(hostPort, time.Unix(int64(entry.Time), 0)); err != nil {
			return err
		}
		if dials < maxAddrDials && hostPort != n.cfg.Listen {
			go n.Connect(hostPort)
			dials++
		}
	}
	return nil
}

func (n *Node) handleAddrV2(p *Peer, msg *wire.Message) error {
	addr := msg.Payload.(*wire.AddrV2)

	for _, entry := range addr.Entries {
		// Only IP networks map to dialable TCP addresses here.
		if entry.Network != wire.NetworkIPv4 && entry.Network != wire.NetworkIPv6 {
			continue
		}
		hostPort := net.JoinHostPort(net.IP(entry.Addr).String(), fmt.Sprintf("%d", entry.Port))
		if err := n.addrBook.AddWithTime(hostPort, time.Unix(int64(entry.Time), 0)); err != nil {
			return err
		}
	}
	return nil
}

func (n *Node) handleGetAddr(p *Peer, msg *wire.Message) error {
	entries := n.collectAddrEntries()
	if len(entries) == 0 {
		return nil
	}
	return n.send(p, &wire.Addr{Entries: entries})
}

func (n *Node) handleInv(p *Peer, msg *wire.Message) error {
	inv := msg.Payload.(*wire.Inv)

	fresh := n.inv.FilterNew(inv.Items)
	if len(fresh) == 0 {
		return nil
	}
	return n.send(p, &wire.GetData{Items: fresh})
}

func (n *Node) handleGetData(p *Peer, msg *wire.Message) error {
	// This node relays announcements but stores no blocks or transactions.
	getData := msg.Payload.(*wire.GetData)
	return n.send(p, &wire.NotFound{Items: getData.Items})
}

func (n *Node) handleNotFound(p *Peer, msg *wire.Message) error {
	notFound := msg.Payload.(*wire.NotFound)
	n.log.Debug().
		Str("peer", p.Addr).
		Int("items", len(notFound.Items)).
		Msg("peer is missing requested data")
	return nil
}

func (n *Node) handleHeaders(p *Peer, msg *wire.Message) error {
	headers := msg.Payload.(*wire.Headers)
	n.log.Info().
		Str("peer", p.Addr).
		Int("count", len(headers.Headers)).
		Msg("received headers")
	return nil
}

func (n *Node) handleFeeFilter(p *Peer, msg *wire.Message) error {
	feeFilter := msg.Payload.(*wire.FeeFilter)

	n.mu.Lock()
	p.FeeFilter = feeFilter.MinFee
	n.mu.Unlock()
	return nil
}

func (n *Node) handleSendHeaders(p *Peer, msg *wire.Message) error {
	n.mu.Lock()
	p.SendHeaders = true
	n.mu.Unlock()
	return nil
}

func (n *Node) handleWtxidRelay(p *Peer, msg *wire.Message) error {
	n.mu.Lock()
	p.WtxidRelay = true
	n.mu.Unlock()
	return nil
}

func (n *Node) handleSendAddrV2(p *Peer, msg *wire.Message) error {
	n.mu.Lock()
	p.WantsAddrV2 = true
	n.mu.Unlock()
	return nil
}

func (n *Node) handleReject(p *Peer, msg *wire.Message) error {
	reject := msg.Payload.(*wire.Reject)
	n.log.Warn().
		Str("peer", p.Addr).
		Str("rejected", reject.Message.String()).
		Stringer("code", reject.Code).
		Str("reason", reject.Reason).
		Msg("peer rejected our message")
	return nil
}

func (n *Node) collectAddrEntries() []wire.AddrEntry {
	n.mu.Lock()
	defer n.mu.Unlock()

	entries := make([]wire.AddrEntry, 0, len(n.peers))
	for _, peer := range n.peers {
		na, ok := peer.netAddress()
		if !ok {
			continue
		}
		entries = append(entries, wire.AddrEntry{
			Time: uint32(peer.LastSeen.Unix()),
			Addr: na,
		})
	}
	return entries
}
