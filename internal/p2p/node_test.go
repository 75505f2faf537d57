package p2p

import (
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/taekwondodev/bitcoin-p2p/internal/config"
	"github.com/taekwondodev/bitcoin-p2p/pkg/wire"
)

func testNode(t *testing.T) *Node {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.AddrBookPath = filepath.Join(t.TempDir(), "addrbook.db")

	n, err := NewNode(cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { n.addrBook.Close() })
	return n
}

func TestHandshakeOverPipe(t *testing.T) {
	client := testNode(t)
	server := testNode(t)

	cConn, sConn := net.Pipe()
	defer cConn.Close()
	defer sConn.Close()

	outPeer := &Peer{Addr: "203.0.113.1:8333", Connection: cConn}
	inPeer := &Peer{Addr: "203.0.113.2:49152", Connection: sConn, Inbound: true}

	errCh := make(chan error, 1)
	go func() { errCh <- server.performHandshake(inPeer) }()

	require.NoError(t, client.performHandshake(outPeer))
	require.NoError(t, <-errCh)

	require.Equal(t, client.cfg.UserAgent, inPeer.UserAgent)
	require.Equal(t, server.cfg.UserAgent, outPeer.UserAgent)
	require.Equal(t, uint32(wire.ProtocolVersion), outPeer.Version)
	require.True(t, outPeer.Services.Has(wire.SFNodeNetwork))
}

func TestHandshakeRejectsSelfConnection(t *testing.T) {
	n := testNode(t)

	cConn, sConn := net.Pipe()
	defer cConn.Close()

	outPeer := &Peer{Addr: "203.0.113.1:8333", Connection: cConn}
	inPeer := &Peer{Addr: "203.0.113.1:49152", Connection: sConn, Inbound: true}

	errCh := make(chan error, 1)
	go func() {
		err := n.performHandshake(inPeer)
		sConn.Close()
		errCh <- err
	}()

	require.Error(t, n.performHandshake(outPeer))
	require.ErrorContains(t, <-errCh, "self")
}

func TestHandlePingRepliesWithSameNonce(t *testing.T) {
	n := testNode(t)

	local, remote := net.Pipe()
	defer local.Close()
	defer remote.Close()

	peer := &Peer{Addr: "203.0.113.1:8333", Connection: local}

	go func() {
		msg := &wire.Message{Magic: wire.MainNet, Payload: &wire.Ping{Nonce: 99}}
		n.handleMessage(peer, msg)
	}()

	reply, err := readMessage(remote, time.Second)
	require.NoError(t, err)

	pong, ok := reply.Payload.(*wire.Pong)
	require.True(t, ok)
	require.Equal(t, uint64(99), pong.Nonce)
}

func TestHandleInvRequestsOnlyUnseenItems(t *testing.T) {
	n := testNode(t)

	local, remote := net.Pipe()
	defer local.Close()
	defer remote.Close()

	peer := &Peer{Addr: "203.0.113.1:8333", Connection: local}
	items := []wire.InvVect{
		{Type: wire.InvTypeBlock, Hash: hashFromByte(1)},
		{Type: wire.InvTypeTx, Hash: hashFromByte(2)},
	}

	go n.handleMessage(peer, &wire.Message{Magic: wire.MainNet, Payload: &wire.Inv{Items: items}})

	reply, err := readMessage(remote, time.Second)
	require.NoError(t, err)

	getData, ok := reply.Payload.(*wire.GetData)
	require.True(t, ok)
	require.Equal(t, items, getData.Items)

	// A repeated announcement produces no request at all.
	err = n.handleMessage(peer, &wire.Message{Magic: wire.MainNet, Payload: &wire.Inv{Items: items}})
	require.NoError(t, err)
}

func TestHandleGetDataAnswersNotFound(t *testing.T) {
	n := testNode(t)

	local, remote := net.Pipe()
	defer local.Close()
	defer remote.Close()

	peer := &Peer{Addr: "203.0.113.1:8333", Connection: local}
	items := []wire.InvVect{{Type: wire.InvTypeBlock, Hash: hashFromByte(3)}}

	go n.handleMessage(peer, &wire.Message{Magic: wire.MainNet, Payload: &wire.GetData{Items: items}})

	reply, err := readMessage(remote, time.Second)
	require.NoError(t, err)

	notFound, ok := reply.Payload.(*wire.NotFound)
	require.True(t, ok)
	require.Equal(t, items, notFound.Items)
}

func TestNegotiationHandlersSetPeerFlags(t *testing.T) {
	n := testNode(t)
	peer := &Peer{Addr: "203.0.113.1:8333"}

	require.NoError(t, n.handleMessage(peer, &wire.Message{Payload: &wire.SendHeaders{}}))
	require.NoError(t, n.handleMessage(peer, &wire.Message{Payload: &wire.WtxidRelay{}}))
	require.NoError(t, n.handleMessage(peer, &wire.Message{Payload: &wire.SendAddrV2{}}))
	require.NoError(t, n.handleMessage(peer, &wire.Message{Payload: &wire.FeeFilter{MinFee: 1000}}))

	require.True(t, peer.SendHeaders)
	require.True(t, peer.WtxidRelay)
	require.True(t, peer.WantsAddrV2)
	require.Equal(t, int64(1000), peer.FeeFilter)
}

func TestHandleAddrRecordsAddresses(t *testing.T) {
	n := testNode(t)
	peer := &Peer{Addr: "203.0.113.1:8333"}

	addr := &wire.Addr{Entries: []wire.AddrEntry{{
		Time: 1700000000,
		Addr: wire.NetAddress{IP: net.ParseIP("198.51.100.7"), Port: 8333},
	}}}
	require.NoError(t, n.handleMessage(peer, &wire.Message{Payload: addr}))

	lastSeen, ok := n.addrBook.LastSeen("198.51.100.7:8333")
	require.True(t, ok)
	require.Equal(t, int64(1700000000), lastSeen.Unix())
}

func hashFromByte(b byte) (h [32]byte) {
	h[0] = b
	return h
}
