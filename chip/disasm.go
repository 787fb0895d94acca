package chip

import (
	"fmt"

	"github.com/ezrec/chip8/decoder"
)

// mnemonic formats a matched instruction as assembly text.
type mnemonic struct {
	pattern string
	format  func(op decoder.Operands) string
}

func formatNone(name string) func(op decoder.Operands) string {
	return func(op decoder.Operands) string { return name }
}

func formatAddr(name string) func(op decoder.Operands) string {
	return func(op decoder.Operands) string { return fmt.Sprintf("%v 0x%03X", name, op.N()) }
}

func formatVxByte(name string) func(op decoder.Operands) string {
	return func(op decoder.Operands) string { return fmt.Sprintf("%v v%X, 0x%02X", name, op.X(), op.N()) }
}

func formatVxVy(name string) func(op decoder.Operands) string {
	return func(op decoder.Operands) string { return fmt.Sprintf("%v v%X, v%X", name, op.X(), op.Y()) }
}

func formatVx(name string) func(op decoder.Operands) string {
	return func(op decoder.Operands) string { return fmt.Sprintf("%v v%X", name, op.X()) }
}

// The disassembly table mirrors the execution table, with text output
// instead of side effects.
var mnemonics = []mnemonic{
	{"00E0", formatNone("cls")},
	{"00EE", formatNone("ret")},
	{"1NNN", formatAddr("jp")},
	{"2NNN", formatAddr("call")},
	{"3XNN", formatVxByte("se")},
	{"4XNN", formatVxByte("sne")},
	{"5XY0", formatVxVy("se")},
	{"6XNN", formatVxByte("ld")},
	{"7XNN", formatVxByte("add")},
	{"8XY0", formatVxVy("ld")},
	{"8XY1", formatVxVy("or")},
	{"8XY2", formatVxVy("and")},
	{"8XY3", formatVxVy("xor")},
	{"8XY4", formatVxVy("add")},
	{"8XY5", formatVxVy("sub")},
	{"8XY6", formatVxVy("shr")},
	{"8XY7", formatVxVy("subn")},
	{"8XYE", formatVxVy("shl")},
	{"9XY0", formatVxVy("sne")},
	{"ANNN", func(op decoder.Operands) string { return fmt.Sprintf("ld i, 0x%03X", op.N()) }},
	{"BNNN", func(op decoder.Operands) string { return fmt.Sprintf("jp v0, 0x%03X", op.N()) }},
	{"CXNN", formatVxByte("rnd")},
	{"DXYN", func(op decoder.Operands) string {
		return fmt.Sprintf("drw v%X, v%X, %v", op.X(), op.Y(), op.N())
	}},
	{"EX9E", formatVx("skp")},
	{"EXA1", formatVx("sknp")},
	{"FX07", func(op decoder.Operands) string { return fmt.Sprintf("ld v%X, dt", op.X()) }},
	{"FX0A", func(op decoder.Operands) string { return fmt.Sprintf("ld v%X, k", op.X()) }},
	{"FX15", func(op decoder.Operands) string { return fmt.Sprintf("ld dt, v%X", op.X()) }},
	{"FX18", func(op decoder.Operands) string { return fmt.Sprintf("ld st, v%X", op.X()) }},
	{"FX1E", func(op decoder.Operands) string { return fmt.Sprintf("add i, v%X", op.X()) }},
	{"FX29", func(op decoder.Operands) string { return fmt.Sprintf("ld f, v%X", op.X()) }},
	{"FX33", func(op decoder.Operands) string { return fmt.Sprintf("ld b, v%X", op.X()) }},
	{"FX55", func(op decoder.Operands) string { return fmt.Sprintf("ld [i], v%X", op.X()) }},
	{"FX65", func(op decoder.Operands) string { return fmt.Sprintf("ld v%X, [i]", op.X()) }},
}

var disassembler = func() *decoder.Decoder {
	entries := make([]decoder.Entry, len(mnemonics))
	for n, m := range mnemonics {
		entries[n] = decoder.On(m.pattern, nil)
	}
	return decoder.NewDecoder(entries...)
}()

// Disassemble returns the assembly text of an instruction word.
// Unknown words are shown as data.
func Disassemble(inst uint16) string {
	index, op, ok := disassembler.Match(inst)
	if !ok {
		return fmt.Sprintf("db 0x%02X, 0x%02X", inst>>8, inst&0xff)
	}
	return mnemonics[index].format(op)
}
