// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package asm

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/chip8/chip"
)

const (
	ADDRESS_LIMIT = 0x1000  // Exclusive limit of an NNN operand.
	IMAGE_LIMIT   = 0x10000 // Exclusive limit of an assembled address.
)

// Macro represents a macro definition in the assembly language.
type Macro struct {
	LineNo int      // Line number of the macro definition.
	Args   []string // Arguments for the macro.
	Lines  []string // Lines of macro text to expand.
}

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":        "0",
	"PROGRAM_START": fmt.Sprintf("%#x", chip.PROGRAM_START),
	"FONT_START":    fmt.Sprintf("%#x", chip.FONT_START),
}

// Assembler is a single pass macro assembler for CHIP-8 programs.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Opcode  []Opcode // List of generated opcodes.

	predefine map[string]string   // Predefines
	address   int                 // Address of the next opcode.
	expanded  int                 // Count of macro expansions.
	Label     map[string]int      // Map of labels to addresses.
	Equate    map[string]string   // Map of equates.
	Macro     map[string](*Macro) // Map of macros.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// numberOf parses a numeric word.
func numberOf(word string) (value int64, err error) {
	if len(word) > 0 && word[0] == '\'' {
		// Character quotes should have been expanded into
		// values in parseLine()
		err = ErrParseCharacter(strings.Trim(word, "'"))
		return
	}
	value, err = strconv.ParseInt(word, 0, 32)
	if err != nil {
		err = ErrParseNumber(word)
	}
	return
}

// valueOf returns the value of a numeric word that fits in 'bits'.
// Negative values are stored as two's complement.
func valueOf(word string, bits int) (value uint16, err error) {
	v64, err := numberOf(word)
	if err != nil {
		return
	}

	if v64 >= (int64(1)<<bits) || v64 < -(int64(1)<<(bits-1)) {
		err = ErrRangeInvalid
		return
	}

	value = uint16(v64 & ((int64(1) << bits) - 1))
	return
}

// register returns the index of a 'vX' register word.
func register(word string) (reg uint16, ok bool) {
	word = strings.ToLower(word)
	if len(word) != 2 || word[0] != 'v' {
		return
	}
	v, err := strconv.ParseUint(word[1:], 16, 4)
	if err != nil {
		return
	}

	reg = uint16(v)
	ok = true
	return
}

// vreg is register() for operands that must be registers.
func vreg(word string) (reg uint16, err error) {
	reg, ok := register(word)
	if !ok {
		err = ErrRegisterInvalid
	}
	return
}

var reIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)

// address returns an NNN operand, or the label to link it to.
func address(word string) (value uint16, label string, err error) {
	if reIdentifier.MatchString(word) {
		if _, ok := register(word); ok {
			err = ErrOperandInvalid
			return
		}
		label = word
		return
	}

	value, err = valueOf(word, 12)
	return
}

// arity checks the operand count.
func arity(args []string, least int, most int) (err error) {
	switch {
	case len(args) < least:
		err = ErrOpcodeValueMissing
	case len(args) > most:
		err = ErrOpcodeExtraArgs
	}
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var v64 int64
		v64, err = numberOf(str)
		if err != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt64(v64)
	}
	for key, addr := range asm.Label {
		if _, ok := pred[key]; !ok {
			pred[key] = starlark.MakeInt(addr)
		}
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

// fields splits a line on blanks and commas.
func fields(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == '\t' || r == ','
	})
}

var (
	reCharacter  = regexp.MustCompile(`'\\?[^']'`)
	reExpression = regexp.MustCompile(`\$\([^\$]*\)`)
)

// stripComment removes a ';' comment. A ';' inside a character literal
// does not start a comment.
func stripComment(text string) string {
	literals := reCharacter.FindAllStringIndex(text, -1)
	for n := 0; n < len(text); n++ {
		for len(literals) > 0 && literals[0][1] <= n {
			literals = literals[1:]
		}
		if len(literals) > 0 && literals[0][0] <= n {
			continue
		}
		if text[n] == ';' {
			return text[:n]
		}
	}
	return text
}

// parseLine parses a single line as an opcode.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do 'x' evaluations
	line = reCharacter.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			switch str[1:] {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "e":
				str = "\033"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%v", str[0])
	})

	// Do $() evaluations
	line = reExpression.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%v", value)
	})
	if err != nil {
		return
	}

	words = fields(line)

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words {
		// Check for equate next
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		asm.Label[label] = asm.address
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	// .macro processing
	macro, ok := asm.Macro[words[0]]
	if ok {
		name := words[0]

		args := words[1:]
		if len(args) != len(macro.Args) {
			err = ErrMacroSyntax
			return
		}
		// Turn args into equs
		old_equate := maps.Clone(asm.Equate)
		for n, arg := range macro.Args {
			asm.Equate[arg] = args[n]
		}
		defer func() { asm.Equate = old_equate }()

		asm.expanded++
		local := fmt.Sprintf("%v_%v_", name, asm.expanded)
		for n, line := range macro.Lines {
			lineno := macro.LineNo + n

			line = strings.ReplaceAll(line, "@", local)
			words, err = asm.parseLine(line, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				return
			}

			err = asm.parseWords(words, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				return
			}
		}

		words = nil
		return
	}

	return
}

// Parse parses an input stream into a Program containing opcodes.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {

	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	var macro *Macro

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.address = chip.PROGRAM_START
	asm.expanded = 0
	asm.Label = make(map[string]int, 16)
	asm.Opcode = asm.Opcode[:0]
	asm.Macro = make(map[string](*Macro))
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("asm: %v: %v", lineno, text)
		}

		line = strings.TrimSpace(stripComment(text))
		words := fields(line)

		// .macro NAME arg...
		if len(words) > 0 && words[0] == ".macro" {
			if macro != nil {
				err = ErrMacroNesting
				return
			}
			if len(words) < 2 {
				err = ErrMacroSyntax
				return
			}
			_, ok := asm.Macro[words[1]]
			if ok {
				err = ErrMacroDuplicate
				return
			}
			macro = &Macro{
				LineNo: lineno + 1,
			}
			if len(words) > 2 {
				macro.Args = words[2:]
			}
			asm.Macro[words[1]] = macro
			continue
		}

		if len(words) > 0 && words[0] == ".endm" {
			if macro == nil {
				err = ErrMacroLonelyEndm
				return
			}
			macro = nil
			continue
		}

		if macro != nil {
			macro.Lines = append(macro.Lines, line)
			continue
		}

		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	if macro != nil {
		err = ErrMacroLonely
		return
	}

	// Final linking of labels.
	for n := range asm.Opcode {
		op := &asm.Opcode[n]

		if len(op.LinkLabel) == 0 {
			continue
		}
		lineno = op.LineNo
		line = strings.Join(op.Words, " ")

		label := op.LinkLabel
		addr, ok := asm.Label[label]
		if !ok {
			err = ErrLabelMissing(label)
			return
		}
		if addr >= ADDRESS_LIMIT {
			err = ErrRangeInvalid
			return
		}
		op.Bytes[0] |= byte(addr >> 8)
		op.Bytes[1] |= byte(addr)
	}

	prog = &Program{
		Opcodes: slices.Clone(asm.Opcode),
	}

	return
}

// aluMap maps 8XYn register-to-register opcodes.
var aluMap = map[string]uint16{
	"or":   0x1,
	"and":  0x2,
	"xor":  0x3,
	"sub":  0x5,
	"subn": 0x7,
}

// ldFromVx maps 'ld <dst>, vX' destinations.
var ldFromVx = map[string]uint16{
	"dt":  0xF015,
	"st":  0xF018,
	"f":   0xF029,
	"b":   0xF033,
	"[i]": 0xF055,
}

// ldToVx maps 'ld vX, <src>' sources.
var ldToVx = map[string]uint16{
	"dt":  0xF007,
	"k":   0xF00A,
	"[i]": 0xF065,
}

// encode assembles a single instruction word.
func encode(mnemonic string, args []string) (inst uint16, label string, err error) {
	var x, y, value uint16

	switch mnemonic {
	case "cls", "ret":
		if err = arity(args, 0, 0); err != nil {
			return
		}
		inst = 0x00E0
		if mnemonic == "ret" {
			inst = 0x00EE
		}
	case "jp":
		if err = arity(args, 1, 2); err != nil {
			return
		}
		inst = 0x1000
		if len(args) == 2 {
			if x, err = vreg(args[0]); err != nil {
				return
			}
			if x != 0 {
				err = ErrRegisterInvalid
				return
			}
			inst = 0xB000
			args = args[1:]
		}
		value, label, err = address(args[0])
		inst |= value
	case "call":
		if err = arity(args, 1, 1); err != nil {
			return
		}
		value, label, err = address(args[0])
		inst = 0x2000 | value
	case "se", "sne":
		if err = arity(args, 2, 2); err != nil {
			return
		}
		if x, err = vreg(args[0]); err != nil {
			return
		}
		if y, ok := register(args[1]); ok {
			inst = 0x5000 | x<<8 | y<<4
			if mnemonic == "sne" {
				inst = 0x9000 | x<<8 | y<<4
			}
			return
		}
		value, err = valueOf(args[1], 8)
		inst = 0x3000 | x<<8 | value
		if mnemonic == "sne" {
			inst = 0x4000 | x<<8 | value
		}
	case "add":
		if err = arity(args, 2, 2); err != nil {
			return
		}
		if strings.ToLower(args[0]) == "i" {
			x, err = vreg(args[1])
			inst = 0xF01E | x<<8
			return
		}
		if x, err = vreg(args[0]); err != nil {
			return
		}
		if y, ok := register(args[1]); ok {
			inst = 0x8004 | x<<8 | y<<4
			return
		}
		value, err = valueOf(args[1], 8)
		inst = 0x7000 | x<<8 | value
	case "or", "and", "xor", "sub", "subn":
		if err = arity(args, 2, 2); err != nil {
			return
		}
		if x, err = vreg(args[0]); err != nil {
			return
		}
		if y, err = vreg(args[1]); err != nil {
			return
		}
		inst = 0x8000 | x<<8 | y<<4 | aluMap[mnemonic]
	case "shr", "shl":
		if err = arity(args, 1, 2); err != nil {
			return
		}
		if x, err = vreg(args[0]); err != nil {
			return
		}
		y = x
		if len(args) == 2 {
			if y, err = vreg(args[1]); err != nil {
				return
			}
		}
		inst = 0x8006 | x<<8 | y<<4
		if mnemonic == "shl" {
			inst = 0x800E | x<<8 | y<<4
		}
	case "rnd":
		if err = arity(args, 2, 2); err != nil {
			return
		}
		if x, err = vreg(args[0]); err != nil {
			return
		}
		value, err = valueOf(args[1], 8)
		inst = 0xC000 | x<<8 | value
	case "drw":
		if err = arity(args, 3, 3); err != nil {
			return
		}
		if x, err = vreg(args[0]); err != nil {
			return
		}
		if y, err = vreg(args[1]); err != nil {
			return
		}
		value, err = valueOf(args[2], 4)
		inst = 0xD000 | x<<8 | y<<4 | value
	case "skp", "sknp":
		if err = arity(args, 1, 1); err != nil {
			return
		}
		x, err = vreg(args[0])
		inst = 0xE09E | x<<8
		if mnemonic == "sknp" {
			inst = 0xE0A1 | x<<8
		}
	case "ld":
		if err = arity(args, 2, 2); err != nil {
			return
		}
		dst := strings.ToLower(args[0])
		src := strings.ToLower(args[1])
		if dst == "i" {
			value, label, err = address(args[1])
			inst = 0xA000 | value
			return
		}
		if code, ok := ldFromVx[dst]; ok {
			x, err = vreg(args[1])
			inst = code | x<<8
			return
		}
		if x, err = vreg(args[0]); err != nil {
			return
		}
		if code, ok := ldToVx[src]; ok {
			inst = code | x<<8
			return
		}
		if y, ok := register(args[1]); ok {
			inst = 0x8000 | x<<8 | y<<4
			return
		}
		value, err = valueOf(args[1], 8)
		inst = 0x6000 | x<<8 | value
	default:
		err = ErrInstructionInvalid
	}

	return
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	var codes []byte
	var label string

	// no-op
	if len(words) == 0 {
		return
	}

	initial_words := words

	defer func() {
		if err != nil || len(codes) == 0 {
			return
		}
		if asm.address+len(codes) > IMAGE_LIMIT {
			err = ErrRangeInvalid
			return
		}
		opcode := Opcode{LineNo: lineno, Address: asm.address, Words: initial_words, Bytes: codes, LinkLabel: label}
		asm.Opcode = append(asm.Opcode, opcode)
		asm.address += len(codes)
	}()

	mnemonic := strings.ToLower(words[0])
	args := words[1:]

	switch mnemonic {
	case ".org":
		if err = arity(args, 1, 1); err != nil {
			return
		}
		var value uint16
		value, err = valueOf(args[0], 16)
		if err != nil {
			return
		}
		if int(value) < asm.address {
			err = ErrOrgInvalid
			return
		}
		asm.address = int(value)
	case "db":
		if err = arity(args, 1, len(args)); err != nil {
			return
		}
		for _, arg := range args {
			var value uint16
			value, err = valueOf(arg, 8)
			if err != nil {
				return
			}
			codes = append(codes, byte(value))
		}
	case "dw":
		if err = arity(args, 1, len(args)); err != nil {
			return
		}
		for _, arg := range args {
			var value uint16
			value, err = valueOf(arg, 16)
			if err != nil {
				return
			}
			codes = append(codes, byte(value>>8), byte(value))
		}
	default:
		var inst uint16
		inst, label, err = encode(mnemonic, args)
		if err != nil {
			return
		}
		codes = []byte{byte(inst >> 8), byte(inst)}
	}

	return
}
