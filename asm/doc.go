// Package asm implements a macro assembler for CHIP-8 programs.
//
// Source lines use the common CHIP-8 mnemonics (cls, ret, jp, call, se, sne,
// ld, add, or, and, xor, sub, shr, subn, shl, rnd, drw, skp, sknp), with
// operands separated by blanks or commas. Comments start with ';'.
//
// Directives:
//
//	label:               label the next address
//	.equ NAME VALUE      define an equate
//	.macro NAME ARGS...  start a macro; '@' in its body makes local labels
//	.endm                end a macro
//	.org ADDR            move the next address forward
//	db BYTE...           emit bytes
//	dw WORD...           emit big-endian words
//
// Character literals ('A') become numbers, and $(...) is evaluated as a
// Starlark expression over the integer equates and the labels seen so far.
// Programs are assembled from PROGRAM_START.
package asm
