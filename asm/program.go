package asm

import (
	"fmt"
	"iter"

	"github.com/ezrec/chip8/chip"
)

// Opcode is a line of assembled code with its source location.
type Opcode struct {
	LineNo    int
	Address   int
	Words     []string
	Bytes     []byte
	LinkLabel string
}

// Program is the output of the assembler.
type Program struct {
	Opcodes []Opcode
}

// Debug locates the opcode covering an address.
type Debug struct {
	*Opcode
	Index int
}

// Debug returns the opcode covering 'addr'; Opcode is nil if there is none.
func (prog *Program) Debug(addr uint16) (dbg Debug) {
	for n, op := range prog.Opcodes {
		if int(addr) >= op.Address && int(addr) < op.Address+len(op.Bytes) {
			dbg = Debug{
				Opcode: &prog.Opcodes[n],
				Index:  int(addr) - op.Address,
			}
			break
		}
	}

	return
}

// Binary returns the memory image from PROGRAM_START to the last byte.
// Gaps left by .org are zero filled.
func (prog *Program) Binary() (bins []byte) {
	for addr, value := range prog.Bytes() {
		offset := int(addr) - chip.PROGRAM_START
		if offset < 0 {
			continue
		}
		for len(bins) <= offset {
			bins = append(bins, 0)
		}
		bins[offset] = value
	}

	return
}

// Bytes iterates over every assembled byte and its address.
func (prog *Program) Bytes() iter.Seq2[uint16, byte] {
	return func(yield func(addr uint16, value byte) bool) {
		for _, op := range prog.Opcodes {
			for n, value := range op.Bytes {
				if !yield(uint16(op.Address+n), value) {
					return
				}
			}
		}
	}
}

// Disassemble lists a ROM image loaded at PROGRAM_START, one opcode per
// instruction word. LineNo is the word index, starting from 1.
func Disassemble(rom []byte) (prog *Program) {
	prog = &Program{}

	for n := 0; n < len(rom); n += 2 {
		op := Opcode{
			LineNo:  n/2 + 1,
			Address: chip.PROGRAM_START + n,
		}
		if n+1 < len(rom) {
			op.Bytes = rom[n : n+2]
			op.Words = fields(chip.Disassemble(uint16(rom[n])<<8 | uint16(rom[n+1])))
		} else {
			op.Bytes = rom[n : n+1]
			op.Words = []string{"db", fmt.Sprintf("0x%02X", rom[n])}
		}
		prog.Opcodes = append(prog.Opcodes, op)
	}

	return
}
