package wire

import (
	"encoding/binary"
	"io"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// InvType classifies what an inventory vector refers to.
type InvType uint32

const (
	InvTypeError         InvType = 0
	InvTypeTx            InvType = 1
	InvTypeBlock         InvType = 2
	InvTypeFilteredBlock InvType = 3
	InvTypeWitnessTx     InvType = 0x40000001
	InvTypeWitnessBlock  InvType = 0x40000002
)

func (t InvType) String() string {
	switch t {
	case InvTypeError:
		return "ERROR"
	case InvTypeTx:
		return "MSG_TX"
	case InvTypeBlock:
		return "MSG_BLOCK"
	case InvTypeFilteredBlock:
		return "MSG_FILTERED_BLOCK"
	case InvTypeWitnessTx:
		return "MSG_WITNESS_TX"
	case InvTypeWitnessBlock:
		return "MSG_WITNESS_BLOCK"
	default:
		return "MSG_UNKNOWN"
	}
}

// invVectSize is the serialized width of one inventory vector.
const invVectSize = 4 + 32

// MaxInvPerMsg is the protocol's documented ceiling on inventory items per
// message. This layer deliberately does not enforce it on decode, matching
// the reference implementation; allocation is still bounded by
// MaxPayloadSize.
const MaxInvPerMsg = 50000

// InvVect identifies one object a peer has or wants.
type InvVect struct {
	Type InvType
	Hash chainhash.Hash
}

func writeInvList(w io.Writer, items []InvVect) error {
	if err := writeVarInt(w, uint64(len(items))); err != nil {
		return err
	}
	for i := range items {
		if err := binary.Write(w, binary.LittleEndian, uint32(items[i].Type)); err != nil {
			return err
		}
		if _, err := w.Write(items[i].Hash[:]); err != nil {
			return err
		}
	}
	return nil
}

func readInvList(r io.Reader) ([]InvVect, error) {
	count, err := readListCount(r, invVectSize)
	if err != nil {
		return nil, err
	}
	items := make([]InvVect, 0, count)
	for i := uint64(0); i < count; i++ {
		var iv InvVect
		var typ uint32
		if err := binary.Read(r, binary.LittleEndian, &typ); err != nil {
			return nil, err
		}
		iv.Type = InvType(typ)
		if _, err := io.ReadFull(r, iv.Hash[:]); err != nil {
			return nil, err
		}
		items = append(items, iv)
	}
	return items, nil
}

// Inv announces objects a peer has.
type Inv struct {
	Items []InvVect
}

func (*Inv) Cmd() string { return CmdInv }

func (m *Inv) Encode(w io.Writer) error {
	return writeInvList(w, m.Items)
}

func (m *Inv) Decode(r io.Reader) error {
	items, err := readInvList(r)
	if err != nil {
		return err
	}
	m.Items = items
	return nil
}

// GetData requests objects announced in an inv.
type GetData struct {
	Items []InvVect
}

func (*GetData) Cmd() string { return CmdGetData }

func (m *GetData) Encode(w io.Writer) error {
	return writeInvList(w, m.Items)
}

func (m *GetData) Decode(r io.Reader) error {
	items, err := readInvList(r)
	if err != nil {
		return err
	}
	m.Items = items
	return nil
}

// NotFound answers a getdata for objects the peer no longer has.
type NotFound struct {
	Items []InvVect
}

func (*NotFound) Cmd() string { return CmdNotFound }

func (m *NotFound) Encode(w io.Writer) error {
	return writeInvList(w, m.Items)
}

func (m *NotFound) Decode(r io.Reader) error {
	items, err := readInvList(r)
	if err != nil {
		return err
	}
	m.Items = items
	return nil
}
