package wire

import (
	"encoding/binary"
	"io"
)

// The content-free messages. Their payload is always zero bytes.

// Verack acknowledges a version message.
type Verack struct{}

func (*Verack) Cmd() string            { return CmdVerack }
func (*Verack) Encode(io.Writer) error { return nil }
func (*Verack) Decode(io.Reader) error { return nil }

// SendHeaders asks a peer to announce blocks with headers instead of inv.
type SendHeaders struct{}

func (*SendHeaders) Cmd() string            { return CmdSendHeaders }
func (*SendHeaders) Encode(io.Writer) error { return nil }
func (*SendHeaders) Decode(io.Reader) error { return nil }

// MemPool requests the contents of a peer's memory pool.
type MemPool struct{}

func (*MemPool) Cmd() string            { return CmdMemPool }
func (*MemPool) Encode(io.Writer) error { return nil }
func (*MemPool) Decode(io.Reader) error { return nil }

// GetAddr requests known peer addresses.
type GetAddr struct{}

func (*GetAddr) Cmd() string            { return CmdGetAddr }
func (*GetAddr) Encode(io.Writer) error { return nil }
func (*GetAddr) Decode(io.Reader) error { return nil }

// WtxidRelay signals BIP339 wtxid-based relay.
type WtxidRelay struct{}

func (*WtxidRelay) Cmd() string            { return CmdWtxidRelay }
func (*WtxidRelay) Encode(io.Writer) error { return nil }
func (*WtxidRelay) Decode(io.Reader) error { return nil }

// FilterClear removes a previously loaded bloom filter.
type FilterClear struct{}

func (*FilterClear) Cmd() string            { return CmdFilterClear }
func (*FilterClear) Encode(io.Writer) error { return nil }
func (*FilterClear) Decode(io.Reader) error { return nil }

// SendAddrV2 signals BIP155 addrv2 support.
type SendAddrV2 struct{}

func (*SendAddrV2) Cmd() string            { return CmdSendAddrV2 }
func (*SendAddrV2) Encode(io.Writer) error { return nil }
func (*SendAddrV2) Decode(io.Reader) error { return nil }

// Ping carries a nonce the peer echoes back in a pong.
type Ping struct {
	Nonce uint64
}

func (*Ping) Cmd() string { return CmdPing }

func (p *Ping) Encode(w io.Writer) error {
	return binary.Write(w, binary.LittleEndian, p.Nonce)
}

func (p *Ping) Decode(r io.Reader) error {
	return binary.Read(r, binary.LittleEndian, &p.Nonce)
}

// Pong answers a ping, echoing its nonce.
type Pong struct {
	Nonce uint64
}

func (*Pong) Cmd() string { return CmdPong }

func (p *Pong) Encode(w io.Writer) error {
	return binary.Write(w, binary.LittleEndian, p.Nonce)
}

func (p *Pong) Decode(r io.Reader) error {
	return binary.Read(r, binary.LittleEndian, &p.Nonce)
}

// FeeFilter announces the minimum fee rate for relayed transactions.
type FeeFilter struct {
	MinFee int64
}

func (*FeeFilter) Cmd() string { return CmdFeeFilter }

func (f *FeeFilter) Encode(w io.Writer) error {
	return binary.Write(w, binary.LittleEndian, f.MinFee)
}

func (f *FeeFilter) Decode(r io.Reader) error {
	return binary.Read(r, binary.LittleEndian, &f.MinFee)
}

// Alert carries the legacy signed alert payload, kept opaque.
type Alert struct {
	Payload []byte
}

func (*Alert) Cmd() string { return CmdAlert }

func (a *Alert) Encode(w io.Writer) error {
	return writeVarBytes(w, a.Payload)
}

func (a *Alert) Decode(r io.Reader) error {
	payload, err := readVarBytes(r)
	if err != nil {
		return err
	}
	a.Payload = payload
	return nil
}

// Unknown preserves a message this implementation does not recognize: the
// literal command and the raw, checksum-verified payload bytes. Re-encoding
// reproduces the original payload byte for byte.
type Unknown struct {
	Command Command
	Data    []byte
}

// Cmd always returns "unknown"; the carried command is in the Command field.
func (*Unknown) Cmd() string { return "unknown" }

func (u *Unknown) Encode(w io.Writer) error {
	_, err := w.Write(u.Data)
	return err
}

func (u *Unknown) Decode(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	u.Data = data
	return nil
}
