package peripheral

import (
	"errors"

	"github.com/ezrec/chip8/translate"
)

var f = translate.From

var (
	ErrNotTerminal = errors.New(f("input is not a terminal"))
)
