package decoder

import (
	"strings"
)

// PATTERN_NIBBLES is the number of characters in a pattern.
const PATTERN_NIBBLES = 4

// Pattern is a compiled nibble pattern.
type Pattern struct {
	text  string
	mask  uint16 // Bits that must match.
	value uint16 // Required value of the masked bits.
}

// isHex reports whether 'c' is a literal hexadecimal digit.
func isHex(c byte) bool {
	return strings.IndexByte("0123456789abcdefABCDEF", c) >= 0
}

// hexValue returns the value of a hexadecimal digit.
func hexValue(c byte) uint16 {
	switch {
	case c >= '0' && c <= '9':
		return uint16(c - '0')
	case c >= 'a' && c <= 'f':
		return uint16(c-'a') + 10
	default:
		return uint16(c-'A') + 10
	}
}

// Compile parses a pattern.
func Compile(text string) (pat Pattern, err error) {
	if len(text) != PATTERN_NIBBLES {
		err = ErrPattern(text)
		return
	}

	pat.text = text
	for n := range PATTERN_NIBBLES {
		shift := uint(4 * (PATTERN_NIBBLES - 1 - n))
		c := text[n]
		if isHex(c) {
			pat.mask |= 0xf << shift
			pat.value |= hexValue(c) << shift
		}
	}

	return
}

// MustCompile parses a pattern, panicking if it is malformed.
// Patterns are written into tables by programmers, so a bad one is a bug.
func MustCompile(text string) Pattern {
	pat, err := Compile(text)
	if err != nil {
		panic(err.Error())
	}
	return pat
}

// String returns the pattern text.
func (pat Pattern) String() string {
	return pat.text
}

// Matches reports whether the literal nibbles of the pattern match 'inst'.
func (pat Pattern) Matches(inst uint16) bool {
	return (inst & pat.mask) == pat.value
}

// Extract pulls the wildcard fields out of 'inst'.
// The caller is expected to have checked Matches().
func (pat Pattern) Extract(inst uint16) (op Operands) {
	for n := range len(pat.text) {
		c := pat.text[n]
		if isHex(c) {
			continue
		}
		nibble := (inst >> uint(4*(PATTERN_NIBBLES-1-n))) & 0xf
		op.add(c, nibble)
	}

	return
}
