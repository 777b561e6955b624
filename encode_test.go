package segmux

import "testing"

// pat turns "abcdefg.p" style bit strings into a Pattern.
func pat(s string) Pattern {
	var p Pattern
	for i := range p {
		p[i] = s[i] == '1'
	}
	return p
}

func TestEncode(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{0x0, "11111100"},
		{0x1, "01100000"},
		{0x2, "11011010"},
		{0x3, "11110010"},
		{0x4, "01100110"},
		{0x5, "10110110"},
		{0x6, "10111110"},
		{0x7, "11100000"},
		{0x8, "11111110"},
		{0x9, "11110110"},
		{0xA, "11101110"},
		{0xB, "00111110"},
		{0xC, "10011100"},
		{0xD, "01111010"},
		{0xE, "10011110"},
		{0xF, "10001110"},
		{Blank, "00000000"},
	}
	for _, test := range tests {
		if got, want := Encode(test.v), pat(test.want); got != want {
			t.Errorf("Encode(%d) = %v, want %v", test.v, got, want)
		}
	}
}

func TestEncodeNeverLightsDecimalPoint(t *testing.T) {
	for v := Value(0); v <= errorGlyph; v++ {
		if Encode(v)[SegDP] {
			t.Errorf("Encode(%d) lights dp", v)
		}
	}
}

func TestEncodeOutOfTable(t *testing.T) {
	if got, want := Encode(200), Encode(Blank); got != want {
		t.Errorf("Encode(200) = %v, want %v", got, want)
	}
	if got, want := Encode(errorGlyph), pat("00000010"); got != want {
		t.Errorf("Encode(errorGlyph) = %v, want %v", got, want)
	}
}
