package chip

// Timer paces execution to the host's frame rate.
type Timer interface {
	// Pump processes host events for one frame period, and
	// reports if the host asked to quit.
	Pump() (quit bool)
}

// Video is the 64x32 monochrome display.
type Video interface {
	// Clear blanks the display.
	Clear()
	// Draw XORs an 8-pixel wide sprite onto the display at (x, y), wrapping
	// at the edges. Returns true if any pixel was turned off.
	Draw(x, y uint8, sprite []byte) (collision bool)
	// Present flushes the display to the host.
	Present()
}

// Audio is the single tone buzzer.
type Audio interface {
	// Buzz starts or stops the tone. It is called every frame.
	Buzz(on bool)
}

// Input is the 16 key hexadecimal keypad.
type Input interface {
	// KeyDown reports if key 0x0-0xF is held.
	KeyDown(key uint8) bool
	// Key blocks until a key is pressed, and returns it.
	// Returns ok == false if the wait was cancelled.
	Key() (key uint8, ok bool)
}

// Peripheral is the full set of host capabilities used by the processor.
type Peripheral interface {
	Timer
	Video
	Audio
	Input
}
