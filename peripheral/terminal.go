// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package peripheral

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/ezrec/chip8/chip"
)

const (
	FRAME_PERIOD = time.Second / 60 // One 60 Hz frame.
	KEY_HOLD     = 6                // Frames a key reads as held after a press.

	FRAME_WIDTH  = SCREEN_WIDTH*2 + 2 // Bordered screen width, in columns.
	FRAME_HEIGHT = SCREEN_HEIGHT + 2  // Bordered screen height, in rows.
)

// Terminal is a host on a raw mode ANSI terminal.
//
// Terminals report key presses but not releases, so a pressed key reads
// as held for KeyHold frames. Escape or Ctrl-C asks to quit, and also
// cancels a pending key wait.
type Terminal struct {
	Screen
	Verbose bool
	KeyHold int // Frames a key stays held after a press.

	output   io.Writer
	buzzer   *Buzzer
	keys     chan byte
	ticker   *time.Ticker
	held     [16]int
	quit     bool
	fd       int
	oldState *term.State

	size       func() (width, height int, err error)
	cols, rows int // Size at the last Present.
}

var _ chip.Peripheral = (*Terminal)(nil)

// newTerminal creates a terminal host fed from 'keys'.
func newTerminal(keys chan byte, output io.Writer, period time.Duration) (t *Terminal) {
	t = &Terminal{
		KeyHold: KEY_HOLD,
		output:  output,
		buzzer:  NewBuzzer(output, 0),
		keys:    keys,
		ticker:  time.NewTicker(period),
		fd:      -1,
	}

	return
}

// NewTerminal puts 'input' into raw mode, and starts reading keys from it.
func NewTerminal(input *os.File, output io.Writer) (t *Terminal, err error) {
	fd := int(input.Fd())
	if !term.IsTerminal(fd) {
		err = ErrNotTerminal
		return
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return
	}

	keys := make(chan byte, 16)
	t = newTerminal(keys, output, FRAME_PERIOD)
	t.fd = fd
	t.oldState = oldState
	t.size = func() (int, int, error) { return term.GetSize(fd) }

	// The reader exits on read error; a read blocked at Close is
	// abandoned to process exit.
	go func() {
		defer close(keys)
		buf := make([]byte, 1)
		for {
			n, err := input.Read(buf)
			if err != nil {
				return
			}
			if n > 0 {
				keys <- buf[0]
			}
		}
	}()

	// Clear and hide the cursor.
	_, err = io.WriteString(output, "\x1b[2J\x1b[?25l")

	return
}

// Close stops the buzzer and restores the terminal.
func (t *Terminal) Close() (err error) {
	t.ticker.Stop()
	err = t.buzzer.Close()

	if t.oldState != nil {
		_, werr := io.WriteString(t.output, "\x1b[?25h\r\n")
		err = errors.Join(err, werr, term.Restore(t.fd, t.oldState))
		t.oldState = nil
	}

	return
}

// press handles one host byte. Returns the keypad key, if it was one.
func (t *Terminal) press(b byte) (key uint8, ok bool) {
	switch b {
	case KEY_ESCAPE, KEY_CTRL_C:
		if t.Verbose {
			log.Printf("terminal: quit requested")
		}
		t.quit = true
		return
	}

	key, ok = lookupKey(b)
	if ok {
		t.held[key] = t.KeyHold
	}
	return
}

// receive handles a byte from the key channel.
func (t *Terminal) receive(b byte, open bool) (key uint8, ok bool) {
	if !open {
		t.quit = true
		return
	}
	return t.press(b)
}

// Pump ages held keys, then handles key presses until the next frame tick.
// Keys already queued are handled before the tick.
func (t *Terminal) Pump() (quit bool) {
	for n := range t.held {
		if t.held[n] > 0 {
			t.held[n]--
		}
	}

	for !t.quit {
		select {
		case b, open := <-t.keys:
			t.receive(b, open)
			continue
		default:
		}

		select {
		case b, open := <-t.keys:
			t.receive(b, open)
		case <-t.ticker.C:
			return t.quit
		}
	}

	return t.quit
}

// KeyDown reports if a key was pressed within the last KeyHold frames.
func (t *Terminal) KeyDown(key uint8) bool {
	return t.held[key&0xf] > 0
}

// Key blocks until a keypad key is pressed.
func (t *Terminal) Key() (key uint8, ok bool) {
	for !t.quit {
		b, open := <-t.keys
		key, ok = t.receive(b, open)
		if ok {
			return
		}
	}

	return 0, false
}

// Buzz forwards to the buzzer worker.
func (t *Terminal) Buzz(on bool) {
	t.buzzer.Buzz(on)
}

// Present redraws the screen in a border, centered in the terminal.
// A terminal too small for the border gets a notice instead.
func (t *Terminal) Present() {
	var buf bytes.Buffer

	cols, rows := FRAME_WIDTH, FRAME_HEIGHT
	if t.size != nil {
		width, height, err := t.size()
		if err == nil {
			cols, rows = width, height
		}
	}

	if cols != t.cols || rows != t.rows {
		buf.WriteString("\x1b[2J")
		t.cols, t.rows = cols, rows
	}

	if cols < FRAME_WIDTH || rows < FRAME_HEIGHT {
		buf.WriteString("\x1b[H")
		buf.WriteString(f("terminal too small: %vx%v, need %vx%v", cols, rows, FRAME_WIDTH, FRAME_HEIGHT))
		t.write(buf.Bytes())
		return
	}

	left := (cols-FRAME_WIDTH)/2 + 1
	top := (rows-FRAME_HEIGHT)/2 + 1
	line := func(n int) {
		fmt.Fprintf(&buf, "\x1b[%d;%dH", top+n, left)
	}

	line(0)
	buf.WriteString("┌" + strings.Repeat("─", FRAME_WIDTH-2) + "┐")
	for y, row := range t.Pixel {
		line(y + 1)
		buf.WriteString("│")
		for _, on := range row {
			if on {
				buf.WriteString("██")
			} else {
				buf.WriteString("  ")
			}
		}
		buf.WriteString("│")
	}
	line(FRAME_HEIGHT - 1)
	buf.WriteString("└" + strings.Repeat("─", FRAME_WIDTH-2) + "┘")

	t.write(buf.Bytes())
}

// write sends a rendered frame to the output.
func (t *Terminal) write(frame []byte) {
	_, err := t.output.Write(frame)
	if err != nil && t.Verbose {
		log.Printf("terminal: %v", err)
	}
}
