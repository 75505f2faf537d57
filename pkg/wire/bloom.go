package wire

import (
	"encoding/binary"
	"io"
)

// BloomUpdateType controls how a loaded bloom filter is updated when a
// matching output is found.
type BloomUpdateType uint8

const (
	BloomUpdateNone         BloomUpdateType = 0
	BloomUpdateAll          BloomUpdateType = 1
	BloomUpdateP2PubkeyOnly BloomUpdateType = 2
)

// FilterLoad installs a BIP37 bloom filter on the remote peer.
type FilterLoad struct {
	Filter    []byte
	HashFuncs uint32
	Tweak     uint32
	Flags     BloomUpdateType
}

func (*FilterLoad) Cmd() string { return CmdFilterLoad }

func (f *FilterLoad) Encode(w io.Writer) error {
	if err := writeVarBytes(w, f.Filter); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, f.HashFuncs); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, f.Tweak); err != nil {
		return err
	}
	_, err := w.Write([]byte{byte(f.Flags)})
	return err
}

func (f *FilterLoad) Decode(r io.Reader) error {
	filter, err := readVarBytes(r)
	if err != nil {
		return err
	}
	f.Filter = filter
	if err := binary.Read(r, binary.LittleEndian, &f.HashFuncs); err != nil {
		return err
	}
	if err := binary.Read(r, binary.LittleEndian, &f.Tweak); err != nil {
		return err
	}

	var flags [1]byte
	if _, err := io.ReadFull(r, flags[:]); err != nil {
		return err
	}
	if flags[0] > byte(BloomUpdateP2PubkeyOnly) {
		return parseError("unknown bloom update flag")
	}
	f.Flags = BloomUpdateType(flags[0])
	return nil
}

// FilterAdd adds one data element to the remote peer's loaded filter.
type FilterAdd struct {
	Data []byte
}

func (*FilterAdd) Cmd() string { return CmdFilterAdd }

func (f *FilterAdd) Encode(w io.Writer) error {
	return writeVarBytes(w, f.Data)
}

func (f *FilterAdd) Decode(r io.Reader) error {
	data, err := readVarBytes(r)
	if err != nil {
		return err
	}
	f.Data = data
	return nil
}
