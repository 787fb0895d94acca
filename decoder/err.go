package decoder

import (
	"github.com/ezrec/chip8/translate"
)

var f = translate.From

// ErrUnsupportedInstruction is returned when no pattern matches.
type ErrUnsupportedInstruction uint16

func (err ErrUnsupportedInstruction) Error() string {
	return f("unsupported instruction 0x%04X", uint16(err))
}

func (err ErrUnsupportedInstruction) Is(target error) (ok bool) {
	_, ok = target.(ErrUnsupportedInstruction)
	return
}

// ErrPattern is returned for a malformed pattern.
type ErrPattern string

func (err ErrPattern) Error() string {
	return f("pattern '%v' must be %v nibbles", string(err), PATTERN_NIBBLES)
}
