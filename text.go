package segmux

import (
	"context"
	"time"
)

// Provides a basic translation from runes into digit values.
var defaultRuneMap = map[rune]Value{
	' ': Blank,
	'0': 0x0,
	'1': 0x1,
	'2': 0x2,
	'3': 0x3,
	'4': 0x4,
	'5': 0x5,
	'6': 0x6,
	'7': 0x7,
	'8': 0x8,
	'9': 0x9,
	'A': 0xA,
	'B': 0xB,
	'C': 0xC,
	'D': 0xD,
	'E': 0xE,
	'F': 0xF,
	'a': 0xA,
	'b': 0xB,
	'c': 0xC,
	'd': 0xD,
	'e': 0xE,
	'f': 0xF,
}

// ValueOf translates a rune into a digit value. It reports false for runes
// that have no glyph.
func ValueOf(r rune) (Value, bool) {
	v, ok := defaultRuneMap[r]
	return v, ok
}

// Display shows s on the display, one rune per digit starting at the
// leftmost. Runes without a glyph are shown as Blank, runes past the last
// digit are dropped, and digits past the end of s are blanked. All digits
// change together, so no tick shows part of the old string.
func (m *Multiplexer) Display(s string) {
	var vs [MaxDigits]Value
	for i := range vs {
		vs[i] = Blank
	}
	i := 0
	for _, r := range s {
		if i >= m.n {
			break
		}
		if v, ok := ValueOf(r); ok {
			vs[i] = v
		}
		i++
	}

	m.mu.Lock()
	copy(m.values[:m.n], vs[:m.n])
	m.pending = true
	m.mu.Unlock()
}

// CycleDigits animates a simple test pattern consisting of hex digits
// scrolling across the display, until ctx is done. Tick must be called
// concurrently for the pattern to appear.
func (m *Multiplexer) CycleDigits(ctx context.Context) {
	off := 0
	t := time.NewTicker(500 * time.Millisecond)
	defer t.Stop()
	for {
		for i := 0; i < m.n; i++ {
			m.SetDigit(i, Value((off+i)%16))
		}
		select {
		case <-t.C:
		case <-ctx.Done():
			return
		}
		off++
		off %= 16
	}
}
