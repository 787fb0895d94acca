// Package decoder matches 16-bit instruction words against nibble patterns.
//
// A pattern is four characters, one per nibble, most significant first.
// A hexadecimal digit must match its nibble exactly. Any other character is
// a mask letter: its nibbles are not matched, but extracted. All nibbles
// sharing a mask letter are concatenated left to right into one field.
//
//	"00E0"  matches only 0x00E0
//	"8XY4"  matches 0x8xy4, X and Y are 4-bit fields
//	"1NNN"  matches 0x1nnn, N is a 12-bit field
//
// A Decoder tries its entries in declaration order, and the first match wins.
// Instruction set dialects are expressed by building a different table.
package decoder

import (
	"strings"
)

// Handler executes a matched instruction.
type Handler func(op Operands) error

// Entry is a single pattern and its handler.
type Entry struct {
	Pattern Pattern
	Handler Handler
}

// On creates a table entry, panicking on a malformed pattern.
func On(pattern string, handler Handler) Entry {
	return Entry{Pattern: MustCompile(pattern), Handler: handler}
}

// Decoder is an ordered table of patterns.
type Decoder struct {
	Entry []Entry
}

// NewDecoder creates a decoder from table entries.
func NewDecoder(entries ...Entry) (dec *Decoder) {
	dec = &Decoder{
		Entry: entries,
	}

	return
}

// Match finds the first entry matching 'inst'.
// Returns the entry index and extracted operands, or ok == false.
func (dec *Decoder) Match(inst uint16) (index int, op Operands, ok bool) {
	for n := range dec.Entry {
		pat := &dec.Entry[n].Pattern
		if !pat.Matches(inst) {
			continue
		}
		index = n
		op = pat.Extract(inst)
		ok = true
		return
	}

	return
}

// Decode dispatches 'inst' to the first matching handler.
func (dec *Decoder) Decode(inst uint16) (err error) {
	index, op, ok := dec.Match(inst)
	if !ok {
		err = ErrUnsupportedInstruction(inst)
		return
	}

	handler := dec.Entry[index].Handler
	if handler == nil {
		return
	}

	err = handler(op)
	return
}

// String lists the patterns in table order.
func (dec *Decoder) String() string {
	patterns := make([]string, len(dec.Entry))
	for n, entry := range dec.Entry {
		patterns[n] = entry.Pattern.String()
	}
	return strings.Join(patterns, " ")
}
