// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ezrec/chip8/asm"
	"github.com/ezrec/chip8/emulator"
	"github.com/ezrec/chip8/memory"
	"github.com/ezrec/chip8/peripheral"
)

func main() {
	var compile string
	var rom string
	var save string
	var disasm bool
	var cycles int
	var size int
	var verbose bool

	flag.StringVar(&compile, "c", "", ".asm file to compile")
	flag.StringVar(&rom, "f", "", ".ch8 ROM file to load")
	flag.StringVar(&save, "s", "", "Save the program image to a ROM file, do not execute")
	flag.BoolVar(&disasm, "d", false, "List the program, do not execute")
	flag.IntVar(&cycles, "cycles", emulator.CYCLES_PER_FRAME, "Instructions per 60 Hz frame")
	flag.IntVar(&size, "mem", memory.SIZE_CLASSIC, "Memory size in bytes")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if (len(compile) == 0) == (len(rom) == 0) {
		log.Fatalf("%v: exactly one of -c or -f is required", os.Args[0])
	}

	if size <= 0 || size > memory.SIZE_MAXIMUM {
		log.Fatalf("%v: -mem %v: out of range", os.Args[0], size)
	}

	if cycles <= 0 {
		log.Fatalf("%v: -cycles %v: out of range", os.Args[0], cycles)
	}

	emu := emulator.NewEmulator(size, nil)
	emu.CyclesPerFrame = cycles
	emu.Verbose = verbose

	var prog *asm.Program

	// Compile a new instruction stream.
	if len(compile) != 0 {
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		assembler := &asm.Assembler{Verbose: verbose}
		for key, value := range emu.Defines() {
			assembler.Predefine(key, value)
		}
		prog, err = assembler.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
	} else {
		data, err := os.ReadFile(rom)
		if err != nil {
			log.Fatalf("%v: %v", rom, err)
		}
		prog = asm.Disassemble(data)
	}

	if len(save) != 0 {
		err := os.WriteFile(save, prog.Binary(), 0o644)
		if err != nil {
			log.Fatalf("%v: %v", save, err)
		}
		return
	}

	if disasm {
		for _, op := range prog.Opcodes {
			fmt.Printf("%03X: %-8X %v\n", op.Address, op.Bytes, strings.Join(op.Words, " "))
		}
		return
	}

	term, err := peripheral.NewTerminal(os.Stdin, os.Stdout)
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}
	term.Verbose = verbose

	emu.Peripheral = term
	emu.Program = prog

	err = emu.Reset()
	if err == nil {
		err = emu.Run()
	}

	cerr := term.Close()
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}
	if cerr != nil {
		log.Fatalf("%v: %v", os.Args[0], cerr)
	}
}
