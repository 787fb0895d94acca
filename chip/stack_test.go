package chip

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStack_PushPop(t *testing.T) {
	assert := assert.New(t)

	s := &Stack{}
	assert.True(s.Empty())

	assert.True(s.Push(0x202))
	assert.True(s.Push(0x304))
	assert.False(s.Empty())

	val, ok := s.Peek()
	assert.True(ok)
	assert.Equal(uint16(0x304), val)
	assert.Equal(2, len(s.Data))

	val, ok = s.Pop()
	assert.True(ok)
	assert.Equal(uint16(0x304), val)

	val, ok = s.Pop()
	assert.True(ok)
	assert.Equal(uint16(0x202), val)

	val, ok = s.Pop()
	assert.False(ok)
	assert.Equal(uint16(0), val)
}

func TestStack_Full(t *testing.T) {
	assert := assert.New(t)

	s := &Stack{}
	for i := 0; i < STACK_LIMIT; i++ {
		assert.False(s.Full())
		assert.True(s.Push(uint16(i)))
	}

	assert.True(s.Full())
	assert.False(s.Push(0xffff))
	assert.Equal(STACK_LIMIT, len(s.Data))

	s.Reset()
	assert.True(s.Empty())
}
