package tryte

import (
	"strings"
)

const (
	TRITS    = 9               // Trits per tryte.
	TRIBBLES = 3               // Tribbles per tryte.
	RANGE    = 19683           // Number of distinct trytes (3^9).
	BIAS     = (RANGE - 1) / 2 // Offset from centered value to unsigned value.
	MIN      = -BIAS           // Smallest tryte value.
	MAX      = BIAS            // Largest tryte value.

	// DIGITS is the tribble alphabet. The symbol at position n has the
	// signed digit value n-13, so '_' is zero.
	DIGITS = "ABCDEFGHIJKLM_NOPQRSTUVWXYZ"

	// TRIT_SYMBOLS maps the unsigned trit digits 0, 1, 2 (values -1, 0, 1).
	TRIT_SYMBOLS = "T01"
)

// Tryte is a nine-trit balanced-ternary word. The zero value is zero.
type Tryte int16

// New creates a Tryte, wrapping value into [MIN, MAX].
func New(value int) Tryte {
	value = value%RANGE + BIAS
	value %= RANGE
	if value < 0 {
		value += RANGE
	}
	return Tryte(value - BIAS)
}

// Wrap returns t reduced into [MIN, MAX], for trytes made by conversion.
func (t Tryte) Wrap() Tryte {
	if t >= MIN && t <= MAX {
		return t
	}
	return New(int(t))
}

// Digit returns the signed digit value of a tribble symbol.
func Digit(symbol byte) (digit int, err error) {
	pos := strings.IndexByte(DIGITS, symbol)
	if pos < 0 {
		err = &ErrDecode{Input: string(symbol), Err: ErrDecodeSymbol}
		return
	}

	digit = pos - 13
	return
}

// Symbol returns the tribble symbol for a signed digit, wrapping digits
// outside of -13..13 modulo 27.
func Symbol(digit int) byte {
	pos := (digit + 13) % len(DIGITS)
	if pos < 0 {
		pos += len(DIGITS)
	}
	return DIGITS[pos]
}

// IsSymbol is true if c is in the tribble alphabet.
func IsSymbol(c byte) bool {
	return strings.IndexByte(DIGITS, c) >= 0
}

// FromTribbles decodes a three symbol tribble string.
func FromTribbles(tribbles string) (t Tryte, err error) {
	if len(tribbles) != TRIBBLES {
		err = &ErrDecode{Input: tribbles, Err: ErrDecodeLength}
		return
	}

	value := 0
	for n := range TRIBBLES {
		pos := strings.IndexByte(DIGITS, tribbles[n])
		if pos < 0 {
			err = &ErrDecode{Input: tribbles, Err: ErrDecodeSymbol}
			return
		}
		value = value*len(DIGITS) + pos
	}

	t = Tryte(value - BIAS)
	return
}

// FromTrits decodes a nine symbol trit string of 'T', '0' and '1'.
func FromTrits(trits string) (t Tryte, err error) {
	if len(trits) != TRITS {
		err = &ErrDecode{Input: trits, Err: ErrDecodeLength}
		return
	}

	var raw [TRITS]uint8
	for n := range TRITS {
		pos := strings.IndexByte(TRIT_SYMBOLS, trits[n])
		if pos < 0 {
			err = &ErrDecode{Input: trits, Err: ErrDecodeSymbol}
			return
		}
		raw[n] = uint8(pos)
	}

	t = fromRaw(raw)
	return
}

// FromRawTrits decodes nine unsigned trit digits in {0, 1, 2}, most-significant first.
func FromRawTrits(digits []uint8) (t Tryte, err error) {
	if len(digits) != TRITS {
		err = &ErrDecode{Input: rawString(digits), Err: ErrDecodeLength}
		return
	}

	var raw [TRITS]uint8
	for n, digit := range digits {
		if digit > 2 {
			err = &ErrDecode{Input: rawString(digits), Err: ErrDecodeDigit}
			return
		}
		raw[n] = digit
	}

	t = fromRaw(raw)
	return
}

func rawString(digits []uint8) string {
	var sb strings.Builder
	for _, digit := range digits {
		sb.WriteByte('0' + digit)
	}
	return sb.String()
}

func fromRaw(raw [TRITS]uint8) Tryte {
	value := 0
	for _, digit := range raw {
		value = value*3 + int(digit)
	}
	return Tryte(value - BIAS)
}

// Int returns the centered integer value.
func (t Tryte) Int() int {
	return int(t)
}

// Tribbles returns the three symbol tribble string.
func (t Tryte) Tribbles() string {
	value := int(t) + BIAS
	out := [TRIBBLES]byte{}
	for n := TRIBBLES - 1; n >= 0; n-- {
		out[n] = DIGITS[value%len(DIGITS)]
		value /= len(DIGITS)
	}
	return string(out[:])
}

// String returns the tribble string.
func (t Tryte) String() string {
	return t.Tribbles()
}

// RawTrits returns the unsigned trit digits, most-significant first.
// A raw digit is the balanced trit plus one.
func (t Tryte) RawTrits() (raw [TRITS]uint8) {
	value := int(t) + BIAS
	for n := TRITS - 1; n >= 0; n-- {
		raw[n] = uint8(value % 3)
		value /= 3
	}
	return
}

// BalancedTrits returns the trits in {-1, 0, 1}, most-significant first.
func (t Tryte) BalancedTrits() (trits [TRITS]int8) {
	for n, digit := range t.RawTrits() {
		trits[n] = int8(digit) - 1
	}
	return
}

// Trits returns the nine symbol trit string.
func (t Tryte) Trits() string {
	raw := t.RawTrits()
	out := [TRITS]byte{}
	for n, digit := range raw {
		out[n] = TRIT_SYMBOLS[digit]
	}
	return string(out[:])
}

// Reverse swaps the order of the tribbles.
func (t Tryte) Reverse() Tryte {
	tribbles := []byte(t.Tribbles())
	tribbles[0], tribbles[2] = tribbles[2], tribbles[0]
	rev, _ := FromTribbles(string(tribbles))
	return rev
}

// Add returns t + other, wrapped.
func (t Tryte) Add(other Tryte) Tryte {
	return New(int(t) + int(other))
}

// Sub returns t - other, wrapped.
func (t Tryte) Sub(other Tryte) Tryte {
	return New(int(t) - int(other))
}

// Mul returns t * other, wrapped.
func (t Tryte) Mul(other Tryte) Tryte {
	return New(int(t) * int(other))
}

// Div returns the floor of t / other. Division by zero yields zero.
func (t Tryte) Div(other Tryte) Tryte {
	if other == 0 {
		return 0
	}

	a, b := int(t), int(other)
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return New(q)
}

// Compare returns -1, 0 or 1 as t is less than, equal to, or greater than other.
func (t Tryte) Compare(other Tryte) int {
	switch {
	case t < other:
		return -1
	case t > other:
		return 1
	}
	return 0
}
