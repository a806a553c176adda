package section

import (
	"math"
	"unicode/utf8"
)

// floatFromBits and floatBits convert between the raw uint64 read off the
// wire and an IEEE-754 double, since encoding/binary only moves integers.
func floatFromBits(bits uint64) float64 { return math.Float64frombits(bits) }
func floatBits(f float64) uint64        { return math.Float64bits(f) }

// cp1252HighRange maps the CP1252 bytes 0x80-0x9F to their Unicode code
// points. Latin-1 maps these bytes to the C1 control range, which is never
// what a logger's display-name field means; CP1252 reassigns this block to
// punctuation and a handful of extra letters, and is what AIM firmware
// actually emits. golang.org/x/text/encoding/charmap is the idiomatic
// library for this, but no repo in the reference corpus imports x/text, so
// this 32-entry table is implemented directly.
var cp1252HighRange = [32]rune{
	0x20AC, 0x0081, 0x201A, 0x0192, 0x201E, 0x2026, 0x2020, 0x2021,
	0x02C6, 0x2030, 0x0160, 0x2039, 0x0152, 0x008D, 0x017D, 0x008F,
	0x0090, 0x2018, 0x2019, 0x201C, 0x201D, 0x2022, 0x2013, 0x2014,
	0x02DC, 0x2122, 0x0161, 0x203A, 0x0153, 0x009D, 0x017E, 0x0178,
}

// decodeFixedString decodes a fixed-width, NUL-padded field: it stops at
// the first NUL byte, takes the run as UTF-8 if it is valid UTF-8 and
// otherwise decodes it byte-for-byte as CP1252 (which agrees with Latin-1
// outside 0x80-0x9F), then trims trailing whitespace.
func decodeFixedString(raw []byte) string {
	n := len(raw)
	for i, b := range raw {
		if b == 0 {
			n = i
			break
		}
	}

	var s string
	if utf8.Valid(raw[:n]) {
		s = string(raw[:n])
	} else {
		runes := make([]rune, 0, n)
		for _, b := range raw[:n] {
			if b >= 0x80 && b <= 0x9F {
				runes = append(runes, cp1252HighRange[b-0x80])
			} else {
				runes = append(runes, rune(b))
			}
		}

		s = string(runes)
	}

	end := len(s)
	for end > 0 {
		r := s[end-1]
		if r != ' ' && r != '\t' && r != '\r' && r != '\n' {
			break
		}
		end--
	}

	return s[:end]
}

// encodeFixedString writes s into a width-byte field, NUL-padding (or
// truncating) as needed. Used only by tests to build round-trippable
// fixtures; XRK file writing is out of scope for the parser itself.
func encodeFixedString(s string, width int) []byte {
	buf := make([]byte, width)
	n := copy(buf, s)
	_ = n // remaining bytes are already zero (NUL)

	return buf
}
