package wire

import (
	"encoding/binary"
	"io"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// checksum returns the first four bytes of the double-SHA256 of data.
func checksum(data []byte) [4]byte {
	var sum [4]byte
	copy(sum[:], chainhash.DoubleHashB(data))
	return sum
}

// writeChecked frames data as length, truncated double-SHA256 checksum and
// the bytes themselves.
func writeChecked(w io.Writer, data []byte) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(data))); err != nil {
		return err
	}
	sum := checksum(data)
	if _, err := w.Write(sum[:]); err != nil {
		return err
	}
	_, err := w.Write(data)
	return err
}

// readChecked reads one checked frame and returns the raw payload bytes,
// uninterpreted. The declared length is validated against MaxPayloadSize
// before the buffer is allocated, and the checksum before the bytes are
// handed to any structural decoder.
func readChecked(r io.Reader) ([]byte, error) {
	var length uint32
	if err := binary.Read(r, binary.LittleEndian, &length); err != nil {
		return nil, err
	}
	if uint64(length) > MaxPayloadSize {
		return nil, &OversizedError{Requested: uint64(length), Max: MaxPayloadSize}
	}

	var declared [4]byte
	if _, err := io.ReadFull(r, declared[:]); err != nil {
		return nil, err
	}

	data := make([]byte, length)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, err
	}

	if sum := checksum(data); sum != declared {
		return nil, &ChecksumError{Expected: sum, Actual: declared}
	}
	return data, nil
}
