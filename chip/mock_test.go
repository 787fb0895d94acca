package chip

// mockPeripheral records every capability call made by the chip.
type mockPeripheral struct {
	cleared   int
	presented int
	pumped    int
	buzz      []bool
	draws     [](struct {
		x, y   uint8
		sprite []byte
	})

	collision bool
	quit      bool
	keys      [16]bool
	pending   []uint8
}

var _ Peripheral = (*mockPeripheral)(nil)

func (m *mockPeripheral) Pump() bool {
	m.pumped++
	return m.quit
}

func (m *mockPeripheral) Clear() {
	m.cleared++
}

func (m *mockPeripheral) Draw(x, y uint8, sprite []byte) bool {
	m.draws = append(m.draws, struct {
		x, y   uint8
		sprite []byte
	}{x, y, append([]byte(nil), sprite...)})
	return m.collision
}

func (m *mockPeripheral) Present() {
	m.presented++
}

func (m *mockPeripheral) Buzz(on bool) {
	m.buzz = append(m.buzz, on)
}

func (m *mockPeripheral) KeyDown(key uint8) bool {
	return m.keys[key]
}

func (m *mockPeripheral) Key() (key uint8, ok bool) {
	if len(m.pending) == 0 {
		return
	}
	key = m.pending[0]
	m.pending = m.pending[1:]
	ok = true
	return
}
