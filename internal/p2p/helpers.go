package p2p

import (
	"net"
	"time"

	"github.com/taekwondodev/bitcoin-p2p/pkg/wire"
)

func (n *Node) send(p *Peer, payload wire.Payload) error {
	msg := &wire.Message{Magic: n.magic, Payload: payload}
	data, err := msg.Serialize()
	if err != nil {
		return err
	}

	p.Connection.SetWriteDeadline(time.Now().Add(writeTimeout))
	if _, err := p.Connection.Write(data); err != nil {
		n.log.Debug().Err(err).Str("peer", p.Addr).Str("command", msg.Cmd()).Msg("send failed")
		return err
	}

	n.log.Debug().Str("peer", p.Addr).Str("command", msg.Cmd()).Msg("sent")
	return nil
}

func readMessage(conn net.Conn, timeout time.Duration) (*wire.Message, error) {
	conn.SetReadDeadline(time.Now().Add(timeout))
	return wire.Decode(conn)
}
