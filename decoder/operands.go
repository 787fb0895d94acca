package decoder

// Operands are the wildcard fields extracted from a matched instruction.
type Operands struct {
	count int
	mask  [PATTERN_NIBBLES]byte
	value [PATTERN_NIBBLES]uint16
}

// add appends a nibble to the field named 'mask'.
func (op *Operands) add(mask byte, nibble uint16) {
	for n := range op.count {
		if op.mask[n] == mask {
			op.value[n] = (op.value[n] << 4) | nibble
			return
		}
	}

	op.mask[op.count] = mask
	op.value[op.count] = nibble
	op.count++
}

// Field returns the value of the field named 'mask', or 0 if the
// pattern has no such field.
func (op Operands) Field(mask byte) uint16 {
	for n := range op.count {
		if op.mask[n] == mask {
			return op.value[n]
		}
	}
	return 0
}

// Fields returns the mask letters present, in first-seen order.
func (op Operands) Fields() []byte {
	return append([]byte(nil), op.mask[:op.count]...)
}

// X is the conventional first register field.
func (op Operands) X() uint8 { return uint8(op.Field('X')) }

// Y is the conventional second register field.
func (op Operands) Y() uint8 { return uint8(op.Field('Y')) }

// N is the conventional immediate field, of whatever width the pattern gives it.
func (op Operands) N() uint16 { return op.Field('N') }
