package chip

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/chip8/decoder"
	"github.com/ezrec/chip8/memory"
)

func FuzzChip(f *testing.F) {
	f.Add(uint16(0x00e0), uint16(0x300), uint8(1), uint8(2), false)
	f.Add(uint16(0x00ee), uint16(0x300), uint8(1), uint8(2), true)
	f.Add(uint16(0x8124), uint16(0x300), uint8(0xff), uint8(2), false)
	f.Add(uint16(0xdfff), uint16(0xff0), uint8(1), uint8(2), false)
	f.Add(uint16(0xff65), uint16(0xffe), uint8(1), uint8(2), false)

	f.Fuzz(func(t *testing.T, inst uint16, index uint16, vx uint8, vy uint8, stack bool) {
		assert := assert.New(t)

		chip := NewChip(0)
		chip.Random = func() uint8 { return 0x5a }
		assert.NoError(chip.Load(PROGRAM_START, []byte{byte(inst >> 8), byte(inst)}))
		for n := range REGISTERS {
			chip.V[n] = vx + uint8(n)*vy
		}
		chip.I = index
		if stack {
			chip.Stack.Push(0x400)
		}
		p := &mockPeripheral{pending: []uint8{0xa}}

		halt, err := chip.Cycle(p)
		code := fmt.Sprintf("0x%04x %v\n%v", inst, Disassemble(inst), chip.String())

		assert.False(halt, code)
		if err != nil {
			var fault *Fault
			assert.True(errors.As(err, &fault), code)
			assert.Equal(uint16(PROGRAM_START), fault.Address, code)
			assert.Equal(inst, fault.Instruction, code)
			known := errors.Is(err, decoder.ErrUnsupportedInstruction(0)) ||
				errors.Is(err, ErrStackUnderflow) ||
				errors.Is(err, memory.ErrOutOfBounds{})
			assert.True(known, "%v: %v", code, err)
			return
		}

		assert.Equal(1, chip.Ticks, code)

		// Anything not a branch lands on the next instruction, or skips one.
		switch inst >> 12 {
		case 0x0:
			if inst == 0x00ee {
				assert.Equal(uint16(0x400), chip.Pc, code)
			} else {
				assert.Equal(uint16(PROGRAM_START+2), chip.Pc, code)
			}
		case 0x1:
			assert.Equal(inst&0xfff, chip.Pc, code)
		case 0x2:
			assert.Equal(inst&0xfff, chip.Pc, code)
			ret, _ := chip.Stack.Peek()
			assert.Equal(uint16(PROGRAM_START+2), ret, code)
		case 0xb:
			assert.Equal((inst&0xfff)+uint16(chip.V[0]), chip.Pc, code)
		default:
			pc := chip.Pc
			assert.True(pc == PROGRAM_START+2 || pc == PROGRAM_START+4, code)
		}
	})
}
