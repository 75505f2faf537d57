package wire

import (
	"fmt"
	"io"
)

// CommandSize is the fixed on-wire width of a command. Shorter names are
// right-padded with zero bytes.
const CommandSize = 12

// Command is a message identifier of at most CommandSize ASCII bytes.
type Command struct {
	name string
}

// NewCommand builds a command from name. It fails if and only if name is
// longer than CommandSize bytes.
func NewCommand(name string) (Command, error) {
	if len(name) > CommandSize {
		return Command{}, fmt.Errorf("%w: %q has length %d", ErrCommandTooLong, name, len(name))
	}
	return Command{name: name}, nil
}

func (c Command) String() string {
	return c.name
}

// Encode writes the command as exactly CommandSize bytes. Construction
// already bounds the name, so padding never truncates.
func (c Command) Encode(w io.Writer) error {
	var raw [CommandSize]byte
	copy(raw[:], c.name)
	_, err := w.Write(raw[:])
	return err
}

// decodeCommand reads exactly CommandSize bytes and keeps, in order, every
// non-zero byte. The zero padding disappears, but so does any zero byte
// embedded in the middle of the name; high-bit bytes survive, so a command
// round-trips byte for byte as long as it contains no zeros.
func decodeCommand(r io.Reader) (Command, error) {
	var raw [CommandSize]byte
	if _, err := io.ReadFull(r, raw[:]); err != nil {
		return Command{}, err
	}

	name := make([]byte, 0, CommandSize)
	for _, b := range raw {
		if b > 0 {
			name = append(name, b)
		}
	}
	return Command{name: string(name)}, nil
}
