// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package chip

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"
	"math/rand"

	"github.com/ezrec/chip8/decoder"
	"github.com/ezrec/chip8/memory"
)

const (
	PROGRAM_START = 0x200 // Reset value of the program counter.
	REGISTERS     = 16    // Number of V registers.
	VF            = 0xf   // Flag register index.
)

// Chip is the simulation context for the CHIP-8 processor.
type Chip struct {
	Verbose bool         // Set to enable verbose logging.
	Random  func() uint8 // Source for CXNN. Defaults to math/rand.

	Memory *memory.Memory  // Main memory.
	V      [REGISTERS]uint8 // General purpose registers.
	I      uint16           // Address register.
	Pc     uint16           // Program counter.
	Stack  Stack            // Subroutine return stack.
	Delay  uint8            // Delay timer.
	Sound  uint8            // Sound timer.

	Ticks  int // Instructions executed since reset.
	Frames int // Frames completed since reset.

	decoder    *decoder.Decoder
	peripheral Peripheral // Only valid during Cycle.
	halt       bool
}

// NewChip creates a processor with 'size' bytes of memory.
// A size of zero selects the classic 4K.
func NewChip(size int) (chip *Chip) {
	chip = &Chip{
		Memory: memory.NewMemory(size),
	}
	chip.decoder = decoder.NewDecoder(chip.instructions()...)

	chip.Reset()

	return
}

// Defines for the chip.
func (chip *Chip) Defines() iter.Seq2[string, string] {
	return maps.All(map[string]string{
		"PROGRAM_START": fmt.Sprintf("0x%x", PROGRAM_START),
		"FONT_START":    fmt.Sprintf("0x%x", FONT_START),
		"MEMORY_SIZE":   fmt.Sprintf("0x%x", chip.Memory.Size()),
	})
}

// Reset the processor state.
// - Zeros memory, registers, timers and statistics counters.
// - Empties the stack.
// - Sets the program counter to PROGRAM_START.
func (chip *Chip) Reset() {
	if chip.Verbose {
		log.Printf("chip: reset")
	}

	chip.Memory.Reset()
	clear(chip.V[:])
	chip.I = 0
	chip.Pc = PROGRAM_START
	chip.Stack.Reset()
	chip.Delay = 0
	chip.Sound = 0
	chip.Ticks = 0
	chip.Frames = 0
	chip.halt = false
}

// Load copies 'data' into memory at 'addr'.
func (chip *Chip) Load(addr uint16, data []byte) (err error) {
	if chip.Verbose {
		log.Printf("chip: load 0x%x bytes at 0x%03x", len(data), addr)
	}

	return chip.Memory.Load(addr, data)
}

// String returns the current register state as a string.
func (chip *Chip) String() (text string) {
	text += fmt.Sprintf("% 5s: %04X\n", "pc", chip.Pc)
	text += fmt.Sprintf("% 5s: %04X\n", "i", chip.I)
	for n, val := range chip.V {
		text += fmt.Sprintf("% 5s: %02X\n", fmt.Sprintf("v%X", n), val)
	}
	text += fmt.Sprintf("% 5s: %02X\n", "dt", chip.Delay)
	text += fmt.Sprintf("% 5s: %02X\n", "st", chip.Sound)
	if ret, ok := chip.Stack.Peek(); ok {
		text += fmt.Sprintf("% 5s: %04X (%v)\n", "stack", ret, len(chip.Stack.Data))
	} else {
		text += fmt.Sprintf("% 5s: ----\n", "stack")
	}

	return
}

// Cycle fetches, decodes and executes a single instruction.
// Returns halt == true if the instruction was cancelled by the host.
func (chip *Chip) Cycle(p Peripheral) (halt bool, err error) {
	pc := chip.Pc

	code, err := chip.Memory.Words(pc, 1)
	if err != nil {
		err = &Fault{Address: pc, Err: errors.Join(ErrFetch, err)}
		return
	}
	inst := code.At(0)

	chip.Pc += 2

	if chip.Verbose {
		log.Printf("chip: %03x: %04X %v", pc, inst, Disassemble(inst))
	}

	chip.peripheral = p
	chip.halt = false
	err = chip.decoder.Decode(inst)
	chip.peripheral = nil
	if err != nil {
		err = &Fault{Address: pc, Instruction: inst, Err: err}
		return
	}

	halt = chip.halt
	if !halt {
		chip.Ticks++
	}

	return
}

// Frame executes one 60 Hz frame.
// - Counts down the delay timer.
// - Counts down the sound timer, buzzing while it is running.
// - Executes up to 'cycles' instructions.
// - Presents the display and pumps host events.
//
// Returns stop == true if an instruction halted, or the host asked to quit.
func (chip *Chip) Frame(cycles int, p Peripheral) (stop bool, err error) {
	if chip.Delay > 0 {
		chip.Delay--
	}

	if chip.Sound > 0 {
		chip.Sound--
		p.Buzz(true)
	} else {
		p.Buzz(false)
	}

	for range cycles {
		var halt bool
		halt, err = chip.Cycle(p)
		if err != nil {
			return
		}
		if halt {
			if chip.Verbose {
				log.Printf("chip: halt at 0x%03x", chip.Pc)
			}
			stop = true
			return
		}
	}

	p.Present()
	stop = p.Pump()
	chip.Frames++

	return
}

// random returns the next CXNN random byte.
func (chip *Chip) random() uint8 {
	if chip.Random != nil {
		return chip.Random()
	}
	return uint8(rand.Uint32())
}
