package wire

import (
	"encoding/binary"
	"io"
	"math"
	"unicode/utf8"
)

// MaxPayloadSize bounds every length a peer can declare: the checked payload
// container, variable-length byte buffers and list allocations. Anything
// larger is rejected before memory is reserved for it.
const MaxPayloadSize = 4000000

func writeVarInt(w io.Writer, v uint64) error {
	switch {
	case v < 0xfd:
		_, err := w.Write([]byte{byte(v)})
		return err
	case v <= 0xffff:
		if _, err := w.Write([]byte{0xfd}); err != nil {
			return err
		}
		return binary.Write(w, binary.LittleEndian, uint16(v))
	case v <= 0xffffffff:
		if _, err := w.Write([]byte{0xfe}); err != nil {
			return err
		}
		return binary.Write(w, binary.LittleEndian, uint32(v))
	default:
		if _, err := w.Write([]byte{0xff}); err != nil {
			return err
		}
		return binary.Write(w, binary.LittleEndian, v)
	}
}

func readVarInt(r io.Reader) (uint64, error) {
	var disc [1]byte
	if _, err := io.ReadFull(r, disc[:]); err != nil {
		return 0, err
	}

	switch disc[0] {
	case 0xff:
		var v uint64
		if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
			return 0, err
		}
		if v <= 0xffffffff {
			return 0, parseError("non-minimal varint")
		}
		return v, nil
	case 0xfe:
		var v uint32
		if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
			return 0, err
		}
		if v <= 0xffff {
			return 0, parseError("non-minimal varint")
		}
		return uint64(v), nil
	case 0xfd:
		var v uint16
		if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
			return 0, err
		}
		if v < 0xfd {
			return 0, parseError("non-minimal varint")
		}
		return uint64(v), nil
	default:
		return uint64(disc[0]), nil
	}
}

func writeVarBytes(w io.Writer, data []byte) error {
	if err := writeVarInt(w, uint64(len(data))); err != nil {
		return err
	}
	_, err := w.Write(data)
	return err
}

func readVarBytes(r io.Reader) ([]byte, error) {
	length, err := readVarInt(r)
	if err != nil {
		return nil, err
	}
	if length > MaxPayloadSize {
		return nil, &OversizedError{Requested: length, Max: MaxPayloadSize}
	}

	data := make([]byte, length)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, err
	}
	return data, nil
}

func writeVarString(w io.Writer, s string) error {
	return writeVarBytes(w, []byte(s))
}

func readVarString(r io.Reader) (string, error) {
	data, err := readVarBytes(r)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", parseError("string is not valid UTF-8")
	}
	return string(data), nil
}

// readListCount reads a list length and rejects it if the smallest possible
// serialization of that many items could not fit in a payload. The check runs
// before the caller allocates storage for the list.
func readListCount(r io.Reader, minItemSize uint64) (uint64, error) {
	count, err := readVarInt(r)
	if err != nil {
		return 0, err
	}
	if count > math.MaxUint64/minItemSize {
		return 0, parseError("invalid list length")
	}
	if size := count * minItemSize; size > MaxPayloadSize {
		return 0, &OversizedError{Requested: size, Max: MaxPayloadSize}
	}
	return count, nil
}

func readBool(r io.Reader) (bool, error) {
	var b [1]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return false, err
	}
	return b[0] != 0, nil
}

func writeBool(w io.Writer, v bool) error {
	b := byte(0)
	if v {
		b = 1
	}
	_, err := w.Write([]byte{b})
	return err
}
