package p2p

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/taekwondodev/bitcoin-p2p/internal/config"
	"github.com/taekwondodev/bitcoin-p2p/internal/inventory"
	"github.com/taekwondodev/bitcoin-p2p/pkg/wire"
)

const (
	readBufferSize   = 1024 * 1024
	writeBufferSize  = 1024 * 1024
	maxConnections   = 1000
	readTimeout      = 5 * time.Minute
	writeTimeout     = 10 * time.Second
	handshakeTimeout = 10 * time.Second
	connectTimeout   = 5 * time.Second
	saveInterval     = 15 * time.Minute
)

type Node struct {
	cfg      *config.Config
	magic    uint32
	nonce    uint64
	log      zerolog.Logger
	addrBook *AddrBook
	inv      *inventory.Tracker
	handlers map[string]func(*Peer, *wire.Message) error

	mu       sync.Mutex
	peers    map[string]*Peer
	listener net.Listener

	done chan struct{}
}

func NewNode(cfg *config.Config, log zerolog.Logger) (*Node, error) {
	magic, err := cfg.Magic()
	if err != nil {
		return nil, err
	}

	addrBook, err := OpenAddrBook(cfg.AddrBookPath)
	if err != nil {
		return nil, fmt.Errorf("open address book: %w", err)
	}

	inv, err := inventory.New(0)
	if err != nil {
		addrBook.Close()
		return nil, err
	}

	var nonceBuf [8]byte
	if _, err := rand.Read(nonceBuf[:]); err != nil {
		addrBook.Close()
		return nil, err
	}

	n := &Node{
		cfg:      cfg,
		magic:    magic,
		nonce:    binary.LittleEndian.Uint64(nonceBuf[:]),
		log:      log,
		addrBook: addrBook,
		inv:      inv,
		peers:    make(map[string]*Peer),
		done:     make(chan struct{}),
	}
	n.registerHandlers()
	return n, nil
}

type tcpKeepAliveListener struct{ *net.TCPListener }

func (ln tcpKeepAliveListener) Accept() (net.Conn, error) {
	tc, err := ln.AcceptTCP()
	if err != nil {
		return nil, err
	}
	tc.SetKeepAlive(true)
	tc.SetKeepAlivePeriod(3 * time.Minute)
	tc.SetReadBuffer(readBufferSize)
	tc.SetWriteBuffer(writeBufferSize)
	return tc, nil
}

func (n *Node) Start() error {
	listener, err := net.Listen("tcp", n.cfg.Listen)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", n.cfg.Listen, err)
	}
	defer listener.Close()
	listener = tcpKeepAliveListener{listener.(*net.TCPListener)}

	n.mu.Lock()
	n.listener = listener
	n.mu.Unlock()

	n.log.Info().Str("addr", n.cfg.Listen).Str("network", n.cfg.Network).Msg("node listening")

	n.connectKnownPeers()

	// Persist learned addresses periodically.
	go func() {
		ticker := time.NewTicker(saveInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				n.savePeers()
			case <-n.done:
				return
			}
		}
	}()

	// rate limit connections
	sem := make(chan struct{}, maxConnections)

	go func() {
		for {
			sem <- struct{}{}

			conn, err := listener.Accept()
			if err != nil {
				select {
				case <-n.done:
					return
				default:
				}
				n.log.Warn().Err(err).Msg("accept failed")
				<-sem
				continue
			}

			go func() {
				defer func() { <-sem }()
				n.handleConnection(conn, true)
			}()
		}
	}()

	<-n.done
	return nil
}

func (n *Node) Stop() {
	close(n.done)

	n.mu.Lock()
	if n.listener != nil {
		n.listener.Close()
	}
	for _, peer := range n.peers {
		peer.Connection.Close()
	}
	n.mu.Unlock()

	n.savePeers()
	if err := n.addrBook.Close(); err != nil {
		n.log.Warn().Err(err).Msg("closing address book")
	}
}

// connectKnownPeers dials the addresses remembered from previous runs, or
// the bootstrap list when the address book is empty.
func (n *Node) connectKnownPeers() {
	addrs, err := n.addrBook.All()
	if err != nil {
		n.log.Warn().Err(err).Msg("loading address book")
	}
	if len(addrs) == 0 {
		addrs = n.cfg.Bootstrap
	}

	for _, addr := range addrs {
		if addr != n.cfg.Listen {
			go n.Connect(addr)
		}
	}
}

func (n *Node) Connect(addr string) {
	n.mu.Lock()
	if _, exists := n.peers[addr]; exists {
		n.mu.Unlock()
		return
	}
	n.mu.Unlock()

	conn, err := net.DialTimeout("tcp", addr, connectTimeout)
	if err != nil {
		n.log.Warn().Err(err).Str("peer", addr).Msg("dial failed")
		return
	}

	go n.handleConnection(conn, false)
}

func (n *Node) handleConnection(conn net.Conn, inbound bool) {
	defer conn.Close()

	peer := &Peer{
		Addr:       conn.RemoteAddr().String(),
		Connection: conn,
		Inbound:    inbound,
		LastSeen:   time.Now(),
	}

	if err := n.performHandshake(peer); err != nil {
		n.log.Warn().Err(err).Str("peer", peer.Addr).Msg("handshake failed")
		return
	}

	n.mu.Lock()
	n.peers[peer.Addr] = peer
	n.mu.Unlock()

	if err := n.addrBook.Add(peer.Addr); err != nil {
		n.log.Warn().Err(err).Str("peer", peer.Addr).Msg("recording address")
	}

	n.log.Info().
		Str("peer", peer.Addr).
		Bool("inbound", inbound).
		Str("user_agent", peer.UserAgent).
		Stringer("services", peer.Services).
		Msg("peer connected")

	pingDone := make(chan struct{})
	defer close(pingDone)
	go n.keepAlive(peer, pingDone)

	for {
		msg, err := readMessage(conn, readTimeout)
		if err != nil {
			n.log.Debug().Err(err).Str("peer", peer.Addr).Msg("read failed")
			break
		}

		n.mu.Lock()
		peer.LastSeen = time.Now()
		n.mu.Unlock()

		if err := n.handleMessage(peer, msg); err != nil {
			n.log.Warn().Err(err).
				Str("peer", peer.Addr).
				Str("command", msg.Command().String()).
				Msg("handling message")
		}
	}

	n.removePeer(peer.Addr)
}

// performHandshake runs the version/verack exchange. The outbound side
// speaks first and also sends its verack first; the inbound side acknowledges
// only after reading that verack, so the two sides never block writing to
// each other at the same time.
func (n *Node) performHandshake(p *Peer) error {
	if p.Inbound {
		if err := n.readVersion(p); err != nil {
			return err
		}
		if err := n.send(p, n.buildVersion(p)); err != nil {
			return err
		}
		if err := n.readVerack(p); err != nil {
			return err
		}
		return n.send(p, &wire.Verack{})
	}

	if err := n.send(p, n.buildVersion(p)); err != nil {
		return err
	}
	if err := n.readVersion(p); err != nil {
		return err
	}
	if err := n.send(p, &wire.Verack{}); err != nil {
		return err
	}
	return n.readVerack(p)
}

func (n *Node) readVersion(p *Peer) error {
	msg, err := readMessage(p.Connection, handshakeTimeout)
	if err != nil {
		return err
	}
	version, ok := msg.Payload.(*wire.Version)
	if !ok {
		return fmt.Errorf("expected version, got %s", msg.Command())
	}
	if msg.Magic != n.magic {
		return fmt.Errorf("network magic mismatch: %#x", msg.Magic)
	}
	if version.Nonce == n.nonce {
		return errors.New("connected to self")
	}
	p.applyVersion(version)
	return nil
}

func (n *Node) readVerack(p *Peer) error {
	msg, err := readMessage(p.Connection, handshakeTimeout)
	if err != nil {
		return err
	}
	if _, ok := msg.Payload.(*wire.Verack); !ok {
		return fmt.Errorf("expected verack, got %s", msg.Command())
	}
	return nil
}

func (n *Node) buildVersion(p *Peer) *wire.Version {
	receiver, _ := p.netAddress()
	return &wire.Version{
		Version:   wire.ProtocolVersion,
		Services:  wire.SFNodeNetwork,
		Timestamp: time.Now().Unix(),
		Receiver:  receiver,
		Sender: wire.NetAddress{
			Services: wire.SFNodeNetwork,
			IP:       net.IPv6zero,
		},
		Nonce:     n.nonce,
		UserAgent: n.cfg.UserAgent,
		Relay:     true,
	}
}

func (n *Node) keepAlive(p *Peer, done <-chan struct{}) {
	ticker := time.NewTicker(n.cfg.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := n.sendPing(p); err != nil {
				n.log.Debug().Err(err).Str("peer", p.Addr).Msg("ping failed")
				return
			}
		case <-done:
			return
		case <-n.done:
			return
		}
	}
}

func (n *Node) sendPing(p *Peer) error {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return err
	}
	return n.send(p, &wire.Ping{Nonce: binary.LittleEndian.Uint64(buf[:])})
}

// Broadcast sends a payload to every connected peer, dropping peers whose
// connection has gone bad.
func (n *Node) Broadcast(payload wire.Payload) {
	msg := &wire.Message{Magic: n.magic, Payload: payload}
	data, err := msg.Serialize()
	if err != nil {
		n.log.Error().Err(err).Str("command", msg.Cmd()).Msg("serializing broadcast")
		return
	}

	n.mu.Lock()
	peers := make([]*Peer, 0, len(n.peers))
	for _, peer := range n.peers {
		peers = append(peers, peer)
	}
	n.mu.Unlock()

	for _, peer := range peers {
		peer.Connection.SetWriteDeadline(time.Now().Add(writeTimeout))
		if _, err := peer.Connection.Write(data); err != nil {
			n.log.Warn().Err(err).Str("peer", peer.Addr).Msg("broadcast failed")
			n.removePeer(peer.Addr)
		}
	}
}

// Peers returns a snapshot of the connected peers.
func (n *Node) Peers() []*Peer {
	n.mu.Lock()
	defer n.mu.Unlock()

	peers := make([]*Peer, 0, len(n.peers))
	for _, peer := range n.peers {
		snapshot := *peer
		peers = append(peers, &snapshot)
	}
	return peers
}

// KnownAddresses returns every address in the persistent address book.
func (n *Node) KnownAddresses() ([]string, error) {
	return n.addrBook.All()
}

func (n *Node) removePeer(addr string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if peer, exists := n.peers[addr]; exists {
		peer.Connection.Close()
		delete(n.peers, addr)
		n.log.Info().Str("peer", addr).Msg("peer disconnected")
	}
}

func (n *Node) savePeers() {
	n.mu.Lock()
	addrs := make([]string, 0, len(n.peers))
	for addr := range n.peers {
		addrs = append(addrs, addr)
	}
	n.mu.Unlock()

	for _, addr := range addrs {
		if err := n.addrBook.Add(addr); err != nil {
			n.log.Warn().Err(err).Str("peer", addr).Msg("saving address")
		}
	}
}
