package memory

import (
	"github.com/ezrec/chip8/translate"
)

var f = translate.From

// ErrOutOfBounds is returned for any access beyond the memory capacity.
type ErrOutOfBounds struct {
	Address uint16
	Length  int
}

func (err ErrOutOfBounds) Error() string {
	return f("out of bounds access at 0x%04x (%v bytes)", err.Address, err.Length)
}

func (err ErrOutOfBounds) Is(target error) (ok bool) {
	_, ok = target.(ErrOutOfBounds)
	return
}
