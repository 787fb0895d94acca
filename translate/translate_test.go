package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	assert.NotNil(printer)
	assert.Equal("stack underflow", From("stack underflow"))
	assert.Equal("0x0200: v3", From("0x%04x: %v", 0x200, "v3"))
}
