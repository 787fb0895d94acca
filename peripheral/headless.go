package peripheral

import (
	"github.com/ezrec/chip8/chip"
)

// Headless is a scripted host with no display or sound device.
//
// Key waits are served from Pending; an empty queue cancels the wait.
// Pump requests a quit once MaxFrames frames have been pumped, if set.
type Headless struct {
	Screen

	Keys      [16]bool // Keys currently held.
	Pending   []uint8  // Key presses served to Key(), in order.
	MaxFrames int      // Quit after this many frames, if non-zero.

	Frames    int  // Frames pumped.
	Presented int  // Frames presented.
	Buzzing   bool // Current buzzer state.
	BuzzTicks int  // Frames spent buzzing.
}

var _ chip.Peripheral = (*Headless)(nil)

// Pump counts the frame.
func (h *Headless) Pump() (quit bool) {
	h.Frames++
	return h.MaxFrames > 0 && h.Frames >= h.MaxFrames
}

// Present counts the presentation.
func (h *Headless) Present() {
	h.Presented++
}

// Buzz records the buzzer state.
func (h *Headless) Buzz(on bool) {
	h.Buzzing = on
	if on {
		h.BuzzTicks++
	}
}

// KeyDown reports a held key.
func (h *Headless) KeyDown(key uint8) bool {
	return h.Keys[key&0xf]
}

// Key pops the next pending key press.
func (h *Headless) Key() (key uint8, ok bool) {
	if len(h.Pending) == 0 {
		return
	}
	key = h.Pending[0] & 0xf
	h.Pending = h.Pending[1:]
	ok = true
	return
}
