package chip

import (
	"github.com/ezrec/chip8/decoder"
)

// instructions is the CHIP-8 pattern table, in match order.
func (chip *Chip) instructions() []decoder.Entry {
	return []decoder.Entry{
		decoder.On("00E0", chip.opCls),
		decoder.On("00EE", chip.opRet),
		decoder.On("1NNN", chip.opJp),
		decoder.On("2NNN", chip.opCall),
		decoder.On("3XNN", chip.opSeImm),
		decoder.On("4XNN", chip.opSneImm),
		decoder.On("5XY0", chip.opSeReg),
		decoder.On("6XNN", chip.opLdImm),
		decoder.On("7XNN", chip.opAddImm),
		decoder.On("8XY0", chip.opLdReg),
		decoder.On("8XY1", chip.opOr),
		decoder.On("8XY2", chip.opAnd),
		decoder.On("8XY3", chip.opXor),
		decoder.On("8XY4", chip.opAdd),
		decoder.On("8XY5", chip.opSub),
		decoder.On("8XY6", chip.opShr),
		decoder.On("8XY7", chip.opSubn),
		decoder.On("8XYE", chip.opShl),
		decoder.On("9XY0", chip.opSneReg),
		decoder.On("ANNN", chip.opLdI),
		decoder.On("BNNN", chip.opJpV0),
		decoder.On("CXNN", chip.opRnd),
		decoder.On("DXYN", chip.opDrw),
		decoder.On("EX9E", chip.opSkp),
		decoder.On("EXA1", chip.opSknp),
		decoder.On("FX07", chip.opLdVxDt),
		decoder.On("FX0A", chip.opLdVxK),
		decoder.On("FX15", chip.opLdDtVx),
		decoder.On("FX18", chip.opLdStVx),
		decoder.On("FX1E", chip.opAddI),
		decoder.On("FX29", chip.opLdF),
		decoder.On("FX33", chip.opLdB),
		decoder.On("FX55", chip.opStore),
		decoder.On("FX65", chip.opRestore),
	}
}

// skipIf skips the next instruction when 'cond' holds.
func (chip *Chip) skipIf(cond bool) {
	if cond {
		chip.Pc += 2
	}
}

// flag converts a condition to a VF value.
func flag(cond bool) uint8 {
	if cond {
		return 1
	}
	return 0
}

func (chip *Chip) opCls(op decoder.Operands) error {
	chip.peripheral.Clear()
	return nil
}

func (chip *Chip) opRet(op decoder.Operands) error {
	ret, ok := chip.Stack.Pop()
	if !ok {
		return ErrStackUnderflow
	}
	chip.Pc = ret
	return nil
}

func (chip *Chip) opJp(op decoder.Operands) error {
	chip.Pc = op.N()
	return nil
}

func (chip *Chip) opCall(op decoder.Operands) error {
	if !chip.Stack.Push(chip.Pc) {
		return ErrStackOverflow
	}
	chip.Pc = op.N()
	return nil
}

func (chip *Chip) opSeImm(op decoder.Operands) error {
	chip.skipIf(chip.V[op.X()] == uint8(op.N()))
	return nil
}

func (chip *Chip) opSneImm(op decoder.Operands) error {
	chip.skipIf(chip.V[op.X()] != uint8(op.N()))
	return nil
}

func (chip *Chip) opSeReg(op decoder.Operands) error {
	chip.skipIf(chip.V[op.X()] == chip.V[op.Y()])
	return nil
}

func (chip *Chip) opSneReg(op decoder.Operands) error {
	chip.skipIf(chip.V[op.X()] != chip.V[op.Y()])
	return nil
}

func (chip *Chip) opLdImm(op decoder.Operands) error {
	chip.V[op.X()] = uint8(op.N())
	return nil
}

// opAddImm never touches VF.
func (chip *Chip) opAddImm(op decoder.Operands) error {
	chip.V[op.X()] += uint8(op.N())
	return nil
}

func (chip *Chip) opLdReg(op decoder.Operands) error {
	chip.V[op.X()] = chip.V[op.Y()]
	return nil
}

func (chip *Chip) opOr(op decoder.Operands) error {
	chip.V[op.X()] |= chip.V[op.Y()]
	return nil
}

func (chip *Chip) opAnd(op decoder.Operands) error {
	chip.V[op.X()] &= chip.V[op.Y()]
	return nil
}

func (chip *Chip) opXor(op decoder.Operands) error {
	chip.V[op.X()] ^= chip.V[op.Y()]
	return nil
}

// The ALU ops below write VF after the result, so VF as a destination
// always ends up holding the flag.

func (chip *Chip) opAdd(op decoder.Operands) error {
	sum := uint16(chip.V[op.X()]) + uint16(chip.V[op.Y()])
	chip.V[op.X()] = uint8(sum)
	chip.V[VF] = uint8(sum >> 8)
	return nil
}

func (chip *Chip) opSub(op decoder.Operands) error {
	vx, vy := chip.V[op.X()], chip.V[op.Y()]
	chip.V[op.X()] = vx - vy
	chip.V[VF] = flag(vx >= vy)
	return nil
}

func (chip *Chip) opSubn(op decoder.Operands) error {
	vx, vy := chip.V[op.X()], chip.V[op.Y()]
	chip.V[op.X()] = vy - vx
	chip.V[VF] = flag(vy >= vx)
	return nil
}

// opShr shifts VY, not VX.
func (chip *Chip) opShr(op decoder.Operands) error {
	vy := chip.V[op.Y()]
	chip.V[op.X()] = vy >> 1
	chip.V[VF] = vy & 1
	return nil
}

// opShl shifts VY, not VX.
func (chip *Chip) opShl(op decoder.Operands) error {
	vy := chip.V[op.Y()]
	chip.V[op.X()] = vy << 1
	chip.V[VF] = vy >> 7
	return nil
}

func (chip *Chip) opLdI(op decoder.Operands) error {
	chip.I = op.N()
	return nil
}

func (chip *Chip) opJpV0(op decoder.Operands) error {
	chip.Pc = uint16(chip.V[0]) + op.N()
	return nil
}

func (chip *Chip) opRnd(op decoder.Operands) error {
	chip.V[op.X()] = chip.random() & uint8(op.N())
	return nil
}

func (chip *Chip) opDrw(op decoder.Operands) error {
	sprite, err := chip.Memory.Bytes(chip.I, int(op.N()))
	if err != nil {
		return err
	}
	collision := chip.peripheral.Draw(chip.V[op.X()], chip.V[op.Y()], sprite)
	chip.V[VF] = flag(collision)
	return nil
}

func (chip *Chip) opSkp(op decoder.Operands) error {
	chip.skipIf(chip.peripheral.KeyDown(chip.V[op.X()] & 0xf))
	return nil
}

func (chip *Chip) opSknp(op decoder.Operands) error {
	chip.skipIf(!chip.peripheral.KeyDown(chip.V[op.X()] & 0xf))
	return nil
}

func (chip *Chip) opLdVxDt(op decoder.Operands) error {
	chip.V[op.X()] = chip.Delay
	return nil
}

// opLdVxK waits on the host for a key. On cancellation the program counter
// is left on this instruction, so a resumed run waits again.
func (chip *Chip) opLdVxK(op decoder.Operands) error {
	key, ok := chip.peripheral.Key()
	if !ok {
		chip.Pc -= 2
		chip.halt = true
		return nil
	}
	chip.V[op.X()] = key
	return nil
}

func (chip *Chip) opLdDtVx(op decoder.Operands) error {
	chip.Delay = chip.V[op.X()]
	return nil
}

func (chip *Chip) opLdStVx(op decoder.Operands) error {
	chip.Sound = chip.V[op.X()]
	return nil
}

func (chip *Chip) opAddI(op decoder.Operands) error {
	chip.I += uint16(chip.V[op.X()])
	return nil
}

func (chip *Chip) opLdF(op decoder.Operands) error {
	chip.I = FONT_START + uint16(chip.V[op.X()]&0xf)*FONT_GLYPH_SIZE
	return nil
}

func (chip *Chip) opLdB(op decoder.Operands) error {
	bcd, err := chip.Memory.Bytes(chip.I, 3)
	if err != nil {
		return err
	}
	vx := chip.V[op.X()]
	bcd[0] = vx / 100
	bcd[1] = (vx / 10) % 10
	bcd[2] = vx % 10
	return nil
}

func (chip *Chip) opStore(op decoder.Operands) error {
	count := int(op.X()) + 1
	view, err := chip.Memory.Bytes(chip.I, count)
	if err != nil {
		return err
	}
	copy(view, chip.V[:count])
	return nil
}

func (chip *Chip) opRestore(op decoder.Operands) error {
	count := int(op.X()) + 1
	view, err := chip.Memory.Bytes(chip.I, count)
	if err != nil {
		return err
	}
	copy(chip.V[:count], view)
	return nil
}
