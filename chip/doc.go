// Package chip implements the CHIP-8 processor.
//
// The processor has sixteen 8-bit registers (V0-VF, with VF doubling as the
// carry, borrow and collision flag), a 16-bit address register (I), a 16-bit
// program counter starting at PROGRAM_START, a call stack of return
// addresses, and the 60 Hz delay and sound timers.
//
// Instructions are decoded with a pattern table from package decoder, and
// executed one per Cycle. Frame batches cycles into one 60 Hz tick, and
// drives the timers and the host Peripheral.
//
// All faults (unsupported instruction, stack underflow or overflow, memory
// access out of bounds) are returned as a *Fault, and end interpretation.
// The only graceful stop is the halt signal returned by Cycle and Frame.
package chip
