package segmux

// Value is the value shown by one digit: 0-15 select a hex glyph, Blank turns
// every segment off.
type Value uint8

// Blank is the digit value with all segments off.
const Blank Value = 16

// errorGlyph has a table entry but SetDigit never accepts it.
const errorGlyph Value = 17

// Pattern holds the on/off state of segments a, b, c, d, e, f, g and dp, in
// that order.
type Pattern [8]bool

// Segment indexes into a Pattern.
const (
	SegA = iota
	SegB
	SegC
	SegD
	SegE
	SegF
	SegG
	SegDP
)

var glyphs = [18]uint8{
	//.GFEDCBA
	0b00111111, // 0
	0b00000110, // 1
	0b01011011, // 2
	0b01001111, // 3
	0b01100110, // 4
	0b01101101, // 5
	0b01111101, // 6
	0b00000111, // 7
	0b01111111, // 8
	0b01101111, // 9
	0b01110111, // A
	0b01111100, // b
	0b00111001, // C
	0b01011110, // d
	0b01111001, // E
	0b01110001, // F
	0b00000000, // blank
	0b01000000, // error
}

// Encode returns the segments lit for v. Values past the table encode as
// Blank.
func Encode(v Value) Pattern {
	if int(v) >= len(glyphs) {
		v = Blank
	}
	var p Pattern
	for i := range p {
		p[i] = glyphs[v]&(1<<i) != 0
	}
	return p
}
