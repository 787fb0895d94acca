package memory

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemory_New(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory(0)
	assert.Equal(SIZE_CLASSIC, mem.Size())

	mem = NewMemory(SIZE_MAXIMUM)
	assert.Equal(SIZE_MAXIMUM, mem.Size())

	assert.Panics(func() { NewMemory(SIZE_MAXIMUM + 1) })
}

func TestMemory_Byte(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory(SIZE_CLASSIC)

	val, err := mem.Read8(0x200)
	assert.NoError(err)
	assert.Equal(uint8(0), val)

	assert.NoError(mem.Write8(0x200, 0xa5))
	val, err = mem.Read8(0x200)
	assert.NoError(err)
	assert.Equal(uint8(0xa5), val)

	assert.NoError(mem.Write8(0xfff, 0x5a))
	_, err = mem.Read8(0x1000)
	assert.ErrorIs(err, ErrOutOfBounds{})
	assert.ErrorIs(mem.Write8(0x1000, 1), ErrOutOfBounds{})
}

func TestMemory_Word(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory(SIZE_CLASSIC)

	assert.NoError(mem.Write16(0x300, 0x1234))
	b0, _ := mem.Read8(0x300)
	b1, _ := mem.Read8(0x301)
	assert.Equal(uint8(0x12), b0)
	assert.Equal(uint8(0x34), b1)

	val, err := mem.Read16(0x300)
	assert.NoError(err)
	assert.Equal(uint16(0x1234), val)

	// Last full word fits, a straddling one does not.
	assert.NoError(mem.Write16(0xffe, 0xabcd))
	_, err = mem.Read16(0xfff)
	var oob ErrOutOfBounds
	assert.True(errors.As(err, &oob))
	assert.Equal(uint16(0xfff), oob.Address)
	assert.Equal(2, oob.Length)
}

func TestMemory_Bytes(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory(SIZE_CLASSIC)
	assert.NoError(mem.Load(0x400, []byte{1, 2, 3, 4}))

	view, err := mem.Bytes(0x401, 2)
	assert.NoError(err)
	assert.Equal([]byte{2, 3}, view)

	// Views are mutable.
	view[0] = 0x20
	val, _ := mem.Read8(0x401)
	assert.Equal(uint8(0x20), val)

	// Views cannot be grown past their window.
	assert.Equal(2, cap(view))

	_, err = mem.Bytes(0xff0, 0x11)
	assert.ErrorIs(err, ErrOutOfBounds{})
	_, err = mem.Bytes(0, -1)
	assert.ErrorIs(err, ErrOutOfBounds{})

	view, err = mem.Bytes(0x1000, 0)
	assert.NoError(err)
	assert.Len(view, 0)
}

func TestMemory_Words(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory(SIZE_CLASSIC)
	assert.NoError(mem.Load(0x200, []byte{0x60, 0x05, 0x12, 0x00}))

	words, err := mem.Words(0x200, 2)
	assert.NoError(err)
	assert.Equal(2, words.Len())
	assert.Equal(uint16(0x6005), words.At(0))
	assert.Equal(uint16(0x1200), words.At(1))

	words.Set(1, 0x1202)
	val, _ := mem.Read16(0x202)
	assert.Equal(uint16(0x1202), val)

	_, err = mem.Words(0xffe, 2)
	assert.ErrorIs(err, ErrOutOfBounds{})
}

func TestMemory_Load(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory(SIZE_CLASSIC)
	assert.ErrorIs(mem.Load(0xffe, []byte{1, 2, 3}), ErrOutOfBounds{})

	// Failed load leaves memory untouched.
	val, _ := mem.Read8(0xffe)
	assert.Equal(uint8(0), val)

	assert.NoError(mem.Load(0xffd, []byte{1, 2, 3}))
	mem.Reset()
	val, _ = mem.Read8(0xffd)
	assert.Equal(uint8(0), val)
}
