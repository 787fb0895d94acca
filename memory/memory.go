// Package memory implements the byte-addressable store of the CHIP-8 machine.
//
// All multi-byte values are big-endian. Every access is bounds checked, and
// an access outside the capacity fails with ErrOutOfBounds rather than
// wrapping.
package memory

import (
	"encoding/binary"
)

const (
	SIZE_CLASSIC = 0x1000  // Classic 4K address space.
	SIZE_MAXIMUM = 0x10000 // Full 16-bit address space.
)

// Memory is a fixed capacity RAM.
type Memory struct {
	data []byte
}

// NewMemory creates a zero-filled memory of the requested size.
// A size of zero selects SIZE_CLASSIC.
func NewMemory(size int) (mem *Memory) {
	if size <= 0 {
		size = SIZE_CLASSIC
	}
	if size > SIZE_MAXIMUM {
		panic("memory larger than the 16-bit address space")
	}

	mem = &Memory{
		data: make([]byte, size),
	}

	return
}

// Size returns the capacity in bytes.
func (mem *Memory) Size() int {
	return len(mem.data)
}

// Reset zero-fills the memory.
func (mem *Memory) Reset() {
	clear(mem.data)
}

// check validates a span of 'length' bytes starting at 'addr'.
func (mem *Memory) check(addr uint16, length int) (err error) {
	if length < 0 || int(addr)+length > len(mem.data) {
		err = ErrOutOfBounds{Address: addr, Length: length}
	}
	return
}

// Read8 reads a byte.
func (mem *Memory) Read8(addr uint16) (value uint8, err error) {
	err = mem.check(addr, 1)
	if err != nil {
		return
	}

	value = mem.data[addr]
	return
}

// Write8 writes a byte.
func (mem *Memory) Write8(addr uint16, value uint8) (err error) {
	err = mem.check(addr, 1)
	if err != nil {
		return
	}

	mem.data[addr] = value
	return
}

// Read16 reads a big-endian word.
func (mem *Memory) Read16(addr uint16) (value uint16, err error) {
	err = mem.check(addr, 2)
	if err != nil {
		return
	}

	value = binary.BigEndian.Uint16(mem.data[addr:])
	return
}

// Write16 writes a big-endian word.
func (mem *Memory) Write16(addr uint16, value uint16) (err error) {
	err = mem.check(addr, 2)
	if err != nil {
		return
	}

	binary.BigEndian.PutUint16(mem.data[addr:], value)
	return
}

// Bytes returns a mutable view of 'count' bytes starting at 'addr'.
func (mem *Memory) Bytes(addr uint16, count int) (view []byte, err error) {
	err = mem.check(addr, count)
	if err != nil {
		return
	}

	view = mem.data[int(addr) : int(addr)+count : int(addr)+count]
	return
}

// Words returns a mutable view of 'count' big-endian words starting at 'addr'.
func (mem *Memory) Words(addr uint16, count int) (view Words, err error) {
	if count < 0 {
		err = ErrOutOfBounds{Address: addr, Length: count}
		return
	}

	bytes, err := mem.Bytes(addr, count*2)
	if err != nil {
		return
	}

	view = Words(bytes)
	return
}

// Load copies 'data' into memory starting at 'addr'.
func (mem *Memory) Load(addr uint16, data []byte) (err error) {
	view, err := mem.Bytes(addr, len(data))
	if err != nil {
		return
	}

	copy(view, data)
	return
}

// Words is a view of memory as big-endian 16-bit elements.
type Words []byte

// Len returns the number of words in the view.
func (w Words) Len() int {
	return len(w) / 2
}

// At returns the word at index n.
func (w Words) At(n int) uint16 {
	return binary.BigEndian.Uint16(w[n*2:])
}

// Set replaces the word at index n.
func (w Words) Set(n int, value uint16) {
	binary.BigEndian.PutUint16(w[n*2:], value)
}
