package peripheral

// Keypad layout, mapped onto the left of a QWERTY keyboard:
//
//	1 2 3 C      1 2 3 4
//	4 5 6 D      q w e r
//	7 8 9 E      a s d f
//	A 0 B F      z x c v
var keymap = map[byte]uint8{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xc,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xd,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xe,
	'z': 0xa, 'x': 0x0, 'c': 0xb, 'v': 0xf,
}

const (
	KEY_ESCAPE = 0x1b
	KEY_CTRL_C = 0x03
)

// lookupKey maps a host byte to a keypad key, ignoring case.
func lookupKey(b byte) (key uint8, ok bool) {
	if b >= 'A' && b <= 'Z' {
		b += 'a' - 'A'
	}
	key, ok = keymap[b]
	return
}
