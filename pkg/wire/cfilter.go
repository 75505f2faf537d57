package wire

import (
	"encoding/binary"
	"io"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// BIP157/158 compact filter messages. Filter contents are opaque bytes here;
// evaluating them is out of scope.

// FilterTypeBasic is the only filter type currently defined.
const FilterTypeBasic uint8 = 0

// GetCFilters requests compact filters for a height range.
type GetCFilters struct {
	FilterType  uint8
	StartHeight uint32
	StopHash    chainhash.Hash
}

func (*GetCFilters) Cmd() string { return CmdGetCFilters }

func (m *GetCFilters) Encode(w io.Writer) error {
	if _, err := w.Write([]byte{m.FilterType}); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, m.StartHeight); err != nil {
		return err
	}
	_, err := w.Write(m.StopHash[:])
	return err
}

func (m *GetCFilters) Decode(r io.Reader) error {
	var typ [1]byte
	if _, err := io.ReadFull(r, typ[:]); err != nil {
		return err
	}
	m.FilterType = typ[0]
	if err := binary.Read(r, binary.LittleEndian, &m.StartHeight); err != nil {
		return err
	}
	_, err := io.ReadFull(r, m.StopHash[:])
	return err
}

// CFilter delivers one compact filter.
type CFilter struct {
	FilterType uint8
	BlockHash  chainhash.Hash
	Filter     []byte
}

func (*CFilter) Cmd() string { return CmdCFilter }

func (m *CFilter) Encode(w io.Writer) error {
	if _, err := w.Write([]byte{m.FilterType}); err != nil {
		return err
	}
	if _, err := w.Write(m.BlockHash[:]); err != nil {
		return err
	}
	return writeVarBytes(w, m.Filter)
}

func (m *CFilter) Decode(r io.Reader) error {
	var typ [1]byte
	if _, err := io.ReadFull(r, typ[:]); err != nil {
		return err
	}
	m.FilterType = typ[0]
	if _, err := io.ReadFull(r, m.BlockHash[:]); err != nil {
		return err
	}
	filter, err := readVarBytes(r)
	if err != nil {
		return err
	}
	m.Filter = filter
	return nil
}

// GetCFHeaders requests compact filter headers for a height range.
type GetCFHeaders struct {
	FilterType  uint8
	StartHeight uint32
	StopHash    chainhash.Hash
}

func (*GetCFHeaders) Cmd() string { return CmdGetCFHeaders }

func (m *GetCFHeaders) Encode(w io.Writer) error {
	if _, err := w.Write([]byte{m.FilterType}); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, m.StartHeight); err != nil {
		return err
	}
	_, err := w.Write(m.StopHash[:])
	return err
}

func (m *GetCFHeaders) Decode(r io.Reader) error {
	var typ [1]byte
	if _, err := io.ReadFull(r, typ[:]); err != nil {
		return err
	}
	m.FilterType = typ[0]
	if err := binary.Read(r, binary.LittleEndian, &m.StartHeight); err != nil {
		return err
	}
	_, err := io.ReadFull(r, m.StopHash[:])
	return err
}

// CFHeaders delivers a chain of compact filter hashes.
type CFHeaders struct {
	FilterType       uint8
	StopHash         chainhash.Hash
	PrevFilterHeader chainhash.Hash
	FilterHashes     []chainhash.Hash
}

func (*CFHeaders) Cmd() string { return CmdCFHeaders }

func (m *CFHeaders) Encode(w io.Writer) error {
	if _, err := w.Write([]byte{m.FilterType}); err != nil {
		return err
	}
	if _, err := w.Write(m.StopHash[:]); err != nil {
		return err
	}
	if _, err := w.Write(m.PrevFilterHeader[:]); err != nil {
		return err
	}
	if err := writeVarInt(w, uint64(len(m.FilterHashes))); err != nil {
		return err
	}
	for i := range m.FilterHashes {
		if _, err := w.Write(m.FilterHashes[i][:]); err != nil {
			return err
		}
	}
	return nil
}

func (m *CFHeaders) Decode(r io.Reader) error {
	var typ [1]byte
	if _, err := io.ReadFull(r, typ[:]); err != nil {
		return err
	}
	m.FilterType = typ[0]
	if _, err := io.ReadFull(r, m.StopHash[:]); err != nil {
		return err
	}
	if _, err := io.ReadFull(r, m.PrevFilterHeader[:]); err != nil {
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
	m.FilterHashes = hashes
	return nil
}

// GetCFCheckpt requests evenly spaced filter header checkpoints.
type GetCFCheckpt struct {
	FilterType uint8
	StopHash   chainhash.Hash
}

func (*GetCFCheckpt) Cmd() string { return CmdGetCFCheckpt }

func (m *GetCFCheckpt) Encode(w io.Writer) error {
	if _, err := w.Write([]byte{m.FilterType}); err != nil {
		return err
	}
	_, err := w.Write(m.StopHash[:])
	return err
}

func (m *GetCFCheckpt) Decode(r io.Reader) error {
	var typ [1]byte
	if _, err := io.ReadFull(r, typ[:]); err != nil {
		return err
	}
	m.FilterType = typ[0]
	_, err := io.ReadFull(r, m.StopHash[:])
	return err
}

// CFCheckpt delivers filter header checkpoints.
type CFCheckpt struct {
	FilterType    uint8
	StopHash      chainhash.Hash
	FilterHeaders []chainhash.Hash
}

func (*CFCheckpt) Cmd() string { return CmdCFCheckpt }

func (m *CFCheckpt) Encode(w io.Writer) error {
	if _, err := w.Write([]byte{m.FilterType}); err != nil {
		return err
	}
	if _, err := w.Write(m.StopHash[:]); err != nil {
		return err
	}
	if err := writeVarInt(w, uint64(len(m.FilterHeaders))); err != nil {
		return err
	}
	for i := range m.FilterHeaders {
		if _, err := w.Write(m.FilterHeaders[i][:]); err != nil {
			return err
		}
	}
	return nil
}

func (m *CFCheckpt) Decode(r io.Reader) error {
	var typ [1]byte
	if _, err := io.ReadFull(r, typ[:]); err != nil {
		return err
	}
	m.FilterType = typ[0]
	if _, err := io.ReadFull(r, m.StopHash[:]); err != nil {
		return err
	}

	count, err := readListCount(r, chainhash.HashSize)
	if err != nil {
		return err
	}
	headers := make([]chainhash.Hash, count)
	for i := uint64(0); i < count; i++ {
		if _, err := io.ReadFull(r, headers[i][:]); err != nil {
			return err
		}
	}
	m.FilterHeaders = headers
	return nil
}
