package wire

import (
	"encoding/binary"
	"io"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

func writeLocator(w io.Writer, version uint32, locator []chainhash.Hash, stop chainhash.Hash) error {
	if err := binary.Write(w, binary.LittleEndian, version); err != nil {
		return err
	}
	if err := writeVarInt(w, uint64(len(locator))); err != nil {
		return err
	}
	for i := range locator {
		if _, err := w.Write(locator[i][:]); err != nil {
			return err
		}
	}
	_, err := w.Write(stop[:])
	return err
}

func readLocator(r io.Reader) (uint32, []chainhash.Hash, chainhash.Hash, error) {
	var version uint32
	var stop chainhash.Hash
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return 0, nil, stop, err
	}

	count, err := readListCount(r, chainhash.HashSize)
	if err != nil {
		return 0, nil, stop, err
	}
	locator := make([]chainhash.Hash, count)
	for i := uint64(0); i < count; i++ {
		if _, err := io.ReadFull(r, locator[i][:]); err != nil {
			return 0, nil, stop, err
		}
	}

	if _, err := io.ReadFull(r, stop[:]); err != nil {
		return 0, nil, stop, err
	}
	return version, locator, stop, nil
}

// GetBlocks requests inventory for blocks after the best locator match, up
// to StopHash or the protocol's batch limit.
type GetBlocks struct {
	Version       uint32
	LocatorHashes []chainhash.Hash
	StopHash      chainhash.Hash
}

func (*GetBlocks) Cmd() string { return CmdGetBlocks }

func (m *GetBlocks) Encode(w io.Writer) error {
	return writeLocator(w, m.Version, m.LocatorHashes, m.StopHash)
}

func (m *GetBlocks) Decode(r io.Reader) error {
	version, locator, stop, err := readLocator(r)
	if err != nil {
		return err
	}
	m.Version, m.LocatorHashes, m.StopHash = version, locator, stop
	return nil
}

// GetHeaders is getblocks' headers-only counterpart.
type GetHeaders struct {
	Version       uint32
	LocatorHashes []chainhash.Hash
	StopHash      chainhash.Hash
}

func (*GetHeaders) Cmd() string { return CmdGetHeaders }

func (m *GetHeaders) Encode(w io.Writer) error {
	return writeLocator(w, m.Version, m.LocatorHashes, m.StopHash)
}

func (m *GetHeaders) Decode(r io.Reader) error {
	version, locator, stop, err := readLocator(r)
	if err != nil {
		return err
	}
	m.Version, m.LocatorHashes, m.StopHash = version, locator, stop
	return nil
}
