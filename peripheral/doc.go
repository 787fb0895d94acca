// Package peripheral provides host implementations of the chip.Peripheral
// capabilities.
//
// Screen is the XOR framebuffer shared by all hosts. Headless is a scripted
// host for tests and batch runs. Terminal drives a raw mode terminal, and
// Buzzer is its sound worker.
package peripheral
