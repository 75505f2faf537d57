package wire

import (
	"errors"
	"fmt"
)

// ErrCommandTooLong is returned when constructing a command from a name
// longer than CommandSize bytes.
var ErrCommandTooLong = errors.New("wire: command longer than 12 bytes")

// OversizedError is returned when a peer declares a size that exceeds the
// allocation limit. The check always happens before any buffer is allocated.
type OversizedError struct {
	Requested uint64
	Max       uint64
}

func (e *OversizedError) Error() string {
	return fmt.Sprintf("wire: oversized allocation: requested %d bytes, max %d", e.Requested, e.Max)
}

// ChecksumError is returned when a payload does not match its declared
// checksum. Expected is computed locally, Actual is the value from the wire.
type ChecksumError struct {
	Expected [4]byte
	Actual   [4]byte
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("wire: checksum mismatch: expected %x, actual %x", e.Expected, e.Actual)
}

// ParseError is returned when input is structurally malformed in a way that
// is not covered by a more specific error.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return "wire: parse failed: " + e.Reason
}

func parseError(reason string) *ParseError {
	return &ParseError{Reason: reason}
}
