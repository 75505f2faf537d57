package wire

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// blockHeaderSize is the serialized width of one header.
const blockHeaderSize = 80

// BlockHeader is the 80-byte header of a block.
type BlockHeader struct {
	Version    int32
	PrevBlock  chainhash.Hash
	MerkleRoot chainhash.Hash
	Timestamp  uint32
	Bits       uint32
	Nonce      uint32
}

func (h *BlockHeader) Encode(w io.Writer) error {
	return binary.Write(w, binary.LittleEndian, h)
}

func (h *BlockHeader) Decode(r io.Reader) error {
	return binary.Read(r, binary.LittleEndian, h)
}

// BlockHash returns the double-SHA256 of the serialized header.
func (h *BlockHeader) BlockHash() chainhash.Hash {
	var buf bytes.Buffer
	_ = h.Encode(&buf) // writing to a buffer cannot fail
	return chainhash.DoubleHashH(buf.Bytes())
}

// Headers announces block headers. The protocol reuses the block wire shape
// for pure header broadcasts, so every header is followed by one literal
// zero byte where the transaction count would sit.
type Headers struct {
	Headers []*BlockHeader
}

func (*Headers) Cmd() string { return CmdHeaders }

func (m *Headers) Encode(w io.Writer) error {
	if err := writeVarInt(w, uint64(len(m.Headers))); err != nil {
		return err
	}
	for _, h := range m.Headers {
		if err := h.Encode(w); err != nil {
			return err
		}
		if _, err := w.Write([]byte{0}); err != nil {
			return err
		}
	}
	return nil
}

func (m *Headers) Decode(r io.Reader) error {
	count, err := readVarInt(r)
	if err != nil {
		return err
	}
	if count > math.MaxUint64/blockHeaderSize {
		return parseError("invalid headers count")
	}
	if size := count * blockHeaderSize; size > MaxPayloadSize {
		return &OversizedError{Requested: size, Max: MaxPayloadSize}
	}

	headers := make([]*BlockHeader, 0, count)
	for i := uint64(0); i < count; i++ {
		h := new(BlockHeader)
		if err := h.Decode(r); err != nil {
			return err
		}

		var txCount [1]byte
		if _, err := io.ReadFull(r, txCount[:]); err != nil {
			return err
		}
		if txCount[0] != 0 {
			return parseError("headers message should not contain transactions")
		}
		headers = append(headers, h)
	}
	m.Headers = headers
	return nil
}
