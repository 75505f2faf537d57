package wire

import (
	"encoding/binary"
	"io"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// MerkleBlock is a BIP37 filtered block: a header, the total transaction
// count and a partial merkle tree proving which transactions matched.
type MerkleBlock struct {
	Header       BlockHeader
	Transactions uint32
	Hashes       []chainhash.Hash
	Flags        []byte
}

func (*MerkleBlock) Cmd() string { return CmdMerkleBlock }

func (m *MerkleBlock) Encode(w io.Writer) error {
	if err := m.Header.Encode(w); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, m.Transactions); err != nil {
		return err
	}
	if err := writeVarInt(w, uint64(len(m.Hashes))); err != nil {
		return err
	}
	for i := range m.Hashes {
		if _, err := w.Write(m.Hashes[i][:]); err != nil {
			return err
		}
	}
	return writeVarBytes(w, m.Flags)
}

func (m *MerkleBlock) Decode(r io.Reader) error {
	if err := m.Header.Decode(r); err != nil {
		return err
	}
	if err := binary.Read(r, binary.LittleEndian, &m.Transactions); err != nil {
		return err
	}

	count, err := readListCount(r, chainhash.HashSize)
	if err != nil {
		return err
	}
	hashes := make([]chainhash.Hash, count)
	for i := uint64(0); i < count; i++ {
		if _, err := io.ReadFull(r, hashes[i][:]); err != nil {
			return err
		}
	}
	m.Hashes = hashes

	flags, err := readVarBytes(r)
	if err != nil {
		return err
	}
	m.Flags = flags
	return nil
}
