// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/chip8/asm"
	"github.com/ezrec/chip8/chip"
	"github.com/ezrec/chip8/internal"
)

const (
	CYCLES_PER_FRAME = 10 // Default instructions per 60 Hz frame.
)

// Emulator state. Chip + host peripheral + program listing.
type Emulator struct {
	Verbose    bool            // If set, enables verbose logging.
	*chip.Chip                 // Reference to the processor simulation.
	Program    *asm.Program    // Reference to the currently running program listing.
	Peripheral chip.Peripheral // Host display, keypad and buzzer.

	CyclesPerFrame int // Instructions per frame.
}

// NewEmulator creates a new emulator with 'size' bytes of memory,
// attached to a host peripheral.
func NewEmulator(size int, p chip.Peripheral) (emu *Emulator) {
	emu = &Emulator{
		Chip:           chip.NewChip(size),
		Program:        &asm.Program{},
		Peripheral:     p,
		CyclesPerFrame: CYCLES_PER_FRAME,
	}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(map[string]string{
		"CYCLES_PER_FRAME": fmt.Sprintf("%v", emu.CyclesPerFrame),
	}),
		emu.Chip.Defines(),
	)
}

// Reset the chip, then load the font and the program image.
func (emu *Emulator) Reset() (err error) {
	emu.Chip.Verbose = false
	defer func() { emu.Chip.Verbose = emu.Verbose }()

	emu.Chip.Reset()

	err = emu.Chip.LoadFont()
	if err != nil {
		return
	}

	err = emu.Chip.Load(chip.PROGRAM_START, emu.Program.Binary())
	if err != nil {
		return
	}

	if emu.Verbose {
		log.Printf("emulator: reset, %d opcodes", len(emu.Program.Opcodes))
	}

	return
}

// LineNo returns the current line number for the executing opcode.
func (emu *Emulator) LineNo() int {
	return emu.lineOf(emu.Chip.Pc)
}

// lineOf returns the source line covering 'addr', or 0.
func (emu *Emulator) lineOf(addr uint16) int {
	dbg := emu.Program.Debug(addr)
	if dbg.Opcode == nil {
		return 0
	}

	return dbg.LineNo
}

// Frame runs a single frame of the emulator.
func (emu *Emulator) Frame() (done bool, err error) {
	// Set chip verbosity
	emu.Chip.Verbose = emu.Verbose

	done, err = emu.Chip.Frame(emu.CyclesPerFrame, emu.Peripheral)
	if err != nil {
		addr := emu.Chip.Pc
		var fault *chip.Fault
		if errors.As(err, &fault) {
			addr = fault.Address
		}
		err = &ErrRuntime{LineNo: emu.lineOf(addr), Address: addr, Err: err}
		done = true
	}

	return
}

// Run frames until the program halts, the host quits, or a fault occurs.
func (emu *Emulator) Run() (err error) {
	for done := false; !done; {
		done, err = emu.Frame()
	}

	if emu.Verbose {
		log.Printf("emulator: stopped after %d frames, %d ticks", emu.Chip.Frames, emu.Chip.Ticks)
	}

	return
}
