package peripheral

const (
	SCREEN_WIDTH  = 64
	SCREEN_HEIGHT = 32
)

// Screen is a monochrome framebuffer.
type Screen struct {
	Pixel [SCREEN_HEIGHT][SCREEN_WIDTH]bool
}

// Clear turns off all pixels.
func (s *Screen) Clear() {
	s.Pixel = [SCREEN_HEIGHT][SCREEN_WIDTH]bool{}
}

// flip toggles a pixel, wrapping coordinates, and returns the new value.
func (s *Screen) flip(x, y int) bool {
	x %= SCREEN_WIDTH
	y %= SCREEN_HEIGHT
	s.Pixel[y][x] = !s.Pixel[y][x]
	return s.Pixel[y][x]
}

// Draw XORs 'sprite' onto the screen with its top left corner at (x, y).
// Each byte is one row, MSB leftmost. Returns true if any pixel was
// turned off.
func (s *Screen) Draw(x, y uint8, sprite []byte) (collision bool) {
	for row, bits := range sprite {
		for col := range 8 {
			if bits&(0x80>>col) == 0 {
				continue
			}
			if !s.flip(int(x)+col, int(y)+row) {
				collision = true
			}
		}
	}

	return
}

// Lit returns the number of pixels on.
func (s *Screen) Lit() (count int) {
	for _, row := range s.Pixel {
		for _, on := range row {
			if on {
				count++
			}
		}
	}
	return
}

// String renders the screen as text, two characters per pixel.
func (s *Screen) String() string {
	buf := make([]byte, 0, SCREEN_HEIGHT*(SCREEN_WIDTH*2+1))
	for _, row := range s.Pixel {
		for _, on := range row {
			if on {
				buf = append(buf, "##"...)
			} else {
				buf = append(buf, ".."...)
			}
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}
