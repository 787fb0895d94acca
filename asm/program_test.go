package asm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgram_Debug(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{
		Opcodes: []Opcode{
			{LineNo: 1, Address: 0x200, Words: []string{"cls"}, Bytes: []byte{0x00, 0xE0}},
			{LineNo: 2, Address: 0x202, Words: []string{"db", "1", "2", "3"}, Bytes: []byte{1, 2, 3}},
			{LineNo: 4, Address: 0x300, Words: []string{"jp", "0x300"}, Bytes: []byte{0x13, 0x00}},
		},
	}

	dbg := prog.Debug(0x200)
	assert.NotNil(dbg.Opcode)
	assert.Equal(1, dbg.LineNo)
	assert.Equal(0, dbg.Index)

	dbg = prog.Debug(0x204)
	assert.NotNil(dbg.Opcode)
	assert.Equal(2, dbg.LineNo)
	assert.Equal(2, dbg.Index)

	dbg = prog.Debug(0x205)
	assert.Nil(dbg.Opcode)

	dbg = prog.Debug(0x301)
	assert.NotNil(dbg.Opcode)
	assert.Equal(4, dbg.LineNo)
	assert.Equal(1, dbg.Index)
}

func TestProgram_Binary(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{
		Opcodes: []Opcode{
			{Address: 0x1fe, Bytes: []byte{0xAA, 0xBB}},
			{Address: 0x200, Bytes: []byte{0x00, 0xE0}},
			{Address: 0x204, Bytes: []byte{0x12}},
		},
	}

	assert.Equal([]byte{0x00, 0xE0, 0x00, 0x00, 0x12}, prog.Binary())

	var addrs []uint16
	for addr := range prog.Bytes() {
		addrs = append(addrs, addr)
		if len(addrs) == 3 {
			break
		}
	}
	assert.Equal([]uint16{0x1fe, 0x1ff, 0x200}, addrs)
}

func TestProgram_Disassemble(t *testing.T) {
	assert := assert.New(t)

	rom := []byte{0x00, 0xE0, 0xA2, 0x0A, 0xD0, 0x15, 0x12, 0x06, 0x7F}
	prog := Disassemble(rom)

	assert.Equal(5, len(prog.Opcodes))
	assert.Equal([]string{"cls"}, prog.Opcodes[0].Words)
	assert.Equal([]string{"ld", "i", "0x20A"}, prog.Opcodes[1].Words)
	assert.Equal([]string{"drw", "v0", "v1", "5"}, prog.Opcodes[2].Words)
	assert.Equal([]string{"db", "0x7F"}, prog.Opcodes[4].Words)
	assert.Equal(0x208, prog.Opcodes[4].Address)
	assert.Equal(rom, prog.Binary())

	// The listing reassembles to the same image.
	var lines []string
	for _, op := range prog.Opcodes {
		lines = append(lines, strings.Join(op.Words, " "))
	}
	again, err := (&Assembler{}).Parse(strings.NewReader(strings.Join(lines, "\n")))
	assert.NoError(err)
	assert.Equal(rom, again.Binary())
}
