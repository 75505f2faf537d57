// Package wire implements the Bitcoin p2p message envelope: the network
// magic, the 12-byte command, the checksummed payload container and the
// dispatch between raw payload bytes and typed messages. It frames and
// classifies messages only; it never interprets what a block or transaction
// means.
package wire

import (
	"bytes"
	"encoding/binary"
	"io"
)

// Canonical command names.
const (
	CmdVersion      = "version"
	CmdVerack       = "verack"
	CmdAddr         = "addr"
	CmdInv          = "inv"
	CmdGetData      = "getdata"
	CmdNotFound     = "notfound"
	CmdGetBlocks    = "getblocks"
	CmdGetHeaders   = "getheaders"
	CmdMemPool      = "mempool"
	CmdTx           = "tx"
	CmdBlock        = "block"
	CmdHeaders      = "headers"
	CmdSendHeaders  = "sendheaders"
	CmdGetAddr      = "getaddr"
	CmdPing         = "ping"
	CmdPong         = "pong"
	CmdMerkleBlock  = "merkleblock"
	CmdFilterLoad   = "filterload"
	CmdFilterAdd    = "filteradd"
	CmdFilterClear  = "filterclear"
	CmdGetCFilters  = "getcfilters"
	CmdCFilter      = "cfilter"
	CmdGetCFHeaders = "getcfheaders"
	CmdCFHeaders    = "cfheaders"
	CmdGetCFCheckpt = "getcfcheckpt"
	CmdCFCheckpt    = "cfcheckpt"
	CmdAlert        = "alert"
	CmdReject       = "reject"
	CmdFeeFilter    = "feefilter"
	CmdWtxidRelay   = "wtxidrelay"
	CmdAddrV2       = "addrv2"
	CmdSendAddrV2   = "sendaddrv2"
)

// Payload is the body of one protocol message.
type Payload interface {
	// Cmd returns the canonical command for this payload kind. Unknown
	// payloads report "unknown" no matter what command they carry.
	Cmd() string
	Encode(w io.Writer) error
	Decode(r io.Reader) error
}

// payloadCtors maps commands to payload constructors. Decode dispatch and
// Message.Command share a single table so the two paths cannot drift.
var payloadCtors = map[string]func() Payload{
	CmdVersion:      func() Payload { return new(Version) },
	CmdVerack:       func() Payload { return new(Verack) },
	CmdAddr:         func() Payload { return new(Addr) },
	CmdInv:          func() Payload { return new(Inv) },
	CmdGetData:      func() Payload { return new(GetData) },
	CmdNotFound:     func() Payload { return new(NotFound) },
	CmdGetBlocks:    func() Payload { return new(GetBlocks) },
	CmdGetHeaders:   func() Payload { return new(GetHeaders) },
	CmdMemPool:      func() Payload { return new(MemPool) },
	CmdTx:           func() Payload { return new(Tx) },
	CmdBlock:        func() Payload { return new(Block) },
	CmdHeaders:      func() Payload { return new(Headers) },
	CmdSendHeaders:  func() Payload { return new(SendHeaders) },
	CmdGetAddr:      func() Payload { return new(GetAddr) },
	CmdPing:         func() Payload { return new(Ping) },
	CmdPong:         func() Payload { return new(Pong) },
	CmdMerkleBlock:  func() Payload { return new(MerkleBlock) },
	CmdFilterLoad:   func() Payload { return new(FilterLoad) },
	CmdFilterAdd:    func() Payload { return new(FilterAdd) },
	CmdFilterClear:  func() Payload { return new(FilterClear) },
	CmdGetCFilters:  func() Payload { return new(GetCFilters) },
	CmdCFilter:      func() Payload { return new(CFilter) },
	CmdGetCFHeaders: func() Payload { return new(GetCFHeaders) },
	CmdCFHeaders:    func() Payload { return new(CFHeaders) },
	CmdGetCFCheckpt: func() Payload { return new(GetCFCheckpt) },
	CmdCFCheckpt:    func() Payload { return new(CFCheckpt) },
	CmdAlert:        func() Payload { return new(Alert) },
	CmdReject:       func() Payload { return new(Reject) },
	CmdFeeFilter:    func() Payload { return new(FeeFilter) },
	CmdWtxidRelay:   func() Payload { return new(WtxidRelay) },
	CmdAddrV2:       func() Payload { return new(AddrV2) },
	CmdSendAddrV2:   func() Payload { return new(SendAddrV2) },
}

// Message is one complete wire message: a network magic and a payload.
type Message struct {
	Magic   uint32
	Payload Payload
}

// Cmd returns the canonical command of the payload, or "unknown" for
// unrecognized messages regardless of the command they carry. Use Command to
// recover the literal command of an unknown message.
func (m *Message) Cmd() string {
	return m.Payload.Cmd()
}

// Command returns the command that goes on the wire: the stored one for
// unknown messages, the canonical one for everything else.
func (m *Message) Command() Command {
	if u, ok := m.Payload.(*Unknown); ok {
		return u.Command
	}
	cmd, _ := NewCommand(m.Payload.Cmd()) // canonical commands fit in 12 bytes
	return cmd
}

// Encode writes the message: magic, command, then the checked payload frame.
func (m *Message) Encode(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, m.Magic); err != nil {
		return err
	}
	if err := m.Command().Encode(w); err != nil {
		return err
	}

	var body bytes.Buffer
	if err := m.Payload.Encode(&body); err != nil {
		return err
	}
	return writeChecked(w, body.Bytes())
}

func (m *Message) Serialize() ([]byte, error) {
	var buf bytes.Buffer
	if err := m.Encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode reads one message from r. The payload is length- and checksum-
// validated first, then dispatched by command; structural decoders only ever
// see the verified payload bytes, never the live stream. A command with no
// registered decoder yields an Unknown payload holding the raw bytes.
func Decode(r io.Reader) (*Message, error) {
	var magic uint32
	if err := binary.Read(r, binary.LittleEndian, &magic); err != nil {
		return nil, err
	}

	cmd, err := decodeCommand(r)
	if err != nil {
		return nil, err
	}

	data, err := readChecked(r)
	if err != nil {
		return nil, err
	}

	ctor, ok := payloadCtors[cmd.String()]
	if !ok {
		return &Message{Magic: magic, Payload: &Unknown{Command: cmd, Data: data}}, nil
	}

	payload := ctor()
	if err := payload.Decode(bytes.NewReader(data)); err != nil {
		return nil, err
	}
	return &Message{Magic: magic, Payload: payload}, nil
}

// Deserialize decodes one message that must span the whole buffer.
func Deserialize(data []byte) (*Message, error) {
	msg, n, err := DeserializePartial(data)
	if err != nil {
		return nil, err
	}
	if n != len(data) {
		return nil, parseError("data not consumed entirely")
	}
	return msg, nil
}

// DeserializePartial decodes one message from the front of data and reports
// how many bytes it consumed, ignoring whatever follows.
func DeserializePartial(data []byte) (*Message, int, error) {
	r := bytes.NewReader(data)
	msg, err := Decode(r)
	if err != nil {
		return nil, 0, err
	}
	return msg, len(data) - r.Len(), nil
}
