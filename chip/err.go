package chip

import (
	"errors"

	"github.com/ezrec/chip8/translate"
)

var f = translate.From

var (
	ErrStackUnderflow = errors.New(f("stack underflow"))
	ErrStackOverflow  = errors.New(f("stack overflow"))
	ErrFetch          = errors.New(f("fetch"))
)

// Fault is a fatal execution error, located at the faulting instruction.
type Fault struct {
	Address     uint16 // Address of the instruction.
	Instruction uint16 // Instruction word, if it was fetched.
	Err         error
}

func (err *Fault) Error() string {
	return f("0x%03x: 0x%04X %v", err.Address, err.Instruction, err.Err)
}

func (err *Fault) Unwrap() error {
	return err.Err
}
