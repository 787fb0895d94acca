package emulator

import (
	"github.com/ezrec/chip8/translate"
)

var f = translate.From

// ErrRuntime locates a processor fault in the program listing.
type ErrRuntime struct {
	LineNo  int    // Source line, or 0 if the address is not in the listing.
	Address uint16 // Address of the faulting instruction.
	Err     error
}

func (err *ErrRuntime) Error() string {
	if err.LineNo == 0 {
		return f("0x%03x: %v", err.Address, err.Err)
	}
	return f("line %d (0x%03x): %v", err.LineNo, err.Address, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
