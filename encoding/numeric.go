// Package encoding implements the value-level transforms of the Paradox
// on-disk format: the sign-biased big-endian numerics shared by every
// scalar type, and code-page text recovery for Alpha and memo payloads.
//
// # Sign-bit inversion
//
// Paradox stores signed numerics big-endian with the most significant bit
// flipped, so that an unsigned byte-wise comparison sorts values in signed
// order. DecodeSignedBE is the single reusable primitive: Short, Long,
// AutoInc, Date, Time and the index block shorts all express themselves
// in terms of it, and DecodeFloat64BE extends the same trick to doubles.
//
// An all-zero buffer is the stored null; callers decide whether that
// surfaces as a null value (dates, times) or as zero (plain integers).
package encoding

import (
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// paradoxDayOne is day number 1 in Paradox date fields: 0001-01-01 UTC.
var paradoxDayOne = time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC)

// DecodeSignedBE decodes an N-byte Paradox signed integer (1 <= N <= 8).
//
// The transform:
//  1. High bit of the first byte set: clear it, the value is non-negative.
//  2. Otherwise, any byte non-zero: set the high bit, the value is negative.
//  3. Otherwise the stored value is null.
//
// The transformed bytes are read as a big-endian signed integer of the
// original width and sign-extended to 64 bits.
//
// Returns:
//   - int64: Decoded value, 0 when null
//   - bool: true when the buffer held the all-zero null encoding, or its
//     length is outside 1..8
func DecodeSignedBE(buf []byte) (value int64, isNull bool) {
	n := len(buf)
	if n == 0 || n > 8 {
		return 0, true
	}

	first := buf[0]
	rest := false
	for _, b := range buf[1:] {
		if b != 0 {
			rest = true
			break
		}
	}

	switch {
	case first&0x80 != 0:
		first &^= 0x80
	case first != 0 || rest:
		first |= 0x80
	default:
		return 0, true
	}

	var u uint64
	u = uint64(first)
	for _, b := range buf[1:] {
		u = u<<8 | uint64(b)
	}

	shift := uint(64 - 8*n)

	return int64(u<<shift) >> shift, false
}

// DecodeFloat64BE decodes an 8-byte Paradox double.
//
// Negative doubles are stored with every byte complemented instead of just
// the sign bit, so byte comparison still sorts correctly:
//   - High bit of the first byte set: clear it, read as-is.
//   - Otherwise, any byte non-zero: complement all eight bytes.
//   - Otherwise null.
func DecodeFloat64BE(buf []byte) (value float64, isNull bool) {
	if len(buf) < 8 {
		return 0, true
	}

	var b [8]byte
	copy(b[:], buf[:8])

	if b[0]&0x80 != 0 {
		b[0] &^= 0x80
	} else {
		nonZero := false
		for _, v := range b {
			if v != 0 {
				nonZero = true
				break
			}
		}
		if !nonZero {
			return 0, true
		}
		for i := range b {
			b[i] = ^b[i]
		}
	}

	bits := uint64(b[0])<<56 | uint64(b[1])<<48 | uint64(b[2])<<40 | uint64(b[3])<<32 |
		uint64(b[4])<<24 | uint64(b[5])<<16 | uint64(b[6])<<8 | uint64(b[7])

	return math.Float64frombits(bits), false
}

// DecodeLogical decodes a 1-byte Paradox logical field.
// Zero is null; otherwise the high bit is toggled and the remaining bits
// decide the value.
func DecodeLogical(buf []byte) (value bool, isNull bool) {
	if len(buf) == 0 || buf[0] == 0 {
		return false, true
	}

	return buf[0]^0x80 != 0, false
}

// DecodeDate decodes a 4-byte Paradox date: days since 0001-01-01, with
// day 1 being 0001-01-01 itself, in the UTC calendar. Non-positive day
// numbers are null.
func DecodeDate(buf []byte) (time.Time, bool) {
	days, isNull := DecodeSignedBE(buf)
	if isNull || days <= 0 {
		return time.Time{}, true
	}

	return paradoxDayOne.AddDate(0, 0, int(days-1)), false
}

// DecodeTime decodes a 4-byte Paradox time-of-day: milliseconds since
// midnight after sign-bit normalization.
func DecodeTime(buf []byte) (time.Duration, bool) {
	millis, isNull := DecodeSignedBE(buf)
	if isNull {
		return 0, true
	}

	return time.Duration(millis) * time.Millisecond, false
}

// DecodeTimestamp decodes an 8-byte Paradox timestamp stored as a double:
// the integer part is a day number with the same epoch as DecodeDate, the
// fractional part scaled by 86,400 is the second within the day.
func DecodeTimestamp(buf []byte) (time.Time, bool) {
	v, isNull := DecodeFloat64BE(buf)
	if isNull {
		return time.Time{}, true
	}

	days := math.Floor(v)
	if days <= 0 {
		return time.Time{}, true
	}

	secs := (v - days) * 86400

	day := paradoxDayOne.AddDate(0, 0, int(days)-1)

	return day.Add(time.Duration(math.Round(secs*1000)) * time.Millisecond), false
}

// DecodeBCD decodes a 17-byte Paradox BCD field into a fixed-point decimal.
//
// The first byte carries the sign in its high bit and the stored scale in
// its low six bits; declaredScale (the descriptor length) overrides the
// stored scale when positive. The digit nibbles start at nibble index 2
// and are right-aligned within 34 logical digits: the leading 34-scale
// digits form the integer part, the trailing scale digits the fraction.
// Negative values store their nibbles complemented.
//
// Returns:
//   - decimal.Decimal: Parsed fixed-point value
//   - bool: true when the field is null (zero first byte or short buffer)
func DecodeBCD(buf []byte, declaredScale int) (decimal.Decimal, bool) {
	const digitCount = 34

	if len(buf) < 17 || buf[0] == 0 {
		return decimal.Decimal{}, true
	}

	scale := int(buf[0] & 0x3F)
	if declaredScale > 0 {
		scale = declaredScale
	}
	if scale > digitCount {
		scale = digitCount
	}

	negative := buf[0]&0x80 == 0

	// Collect digit nibbles, right-aligned to 34 logical digits.
	digits := make([]byte, 0, digitCount)
	for pad := digitCount - (len(buf)*2 - 2); pad > 0; pad-- {
		digits = append(digits, 0)
	}
	for i := 1; i < len(buf); i++ {
		b := buf[i]
		if negative {
			b ^= 0xFF
		}
		digits = append(digits, b>>4, b&0x0F)
	}
	digits = digits[:digitCount]

	intDigits := digits[:digitCount-scale]
	fracDigits := digits[digitCount-scale:]

	var sb strings.Builder
	if negative {
		sb.WriteByte('-')
	}

	start := 0
	for start < len(intDigits)-1 && intDigits[start] == 0 {
		start++
	}
	for _, d := range intDigits[start:] {
		sb.WriteByte('0' + d)
	}
	if len(intDigits) == 0 {
		sb.WriteByte('0')
	}

	if scale > 0 {
		sb.WriteByte('.')
		for _, d := range fracDigits {
			sb.WriteByte('0' + d)
		}
	}

	d, err := decimal.NewFromString(sb.String())
	if err != nil {
		return decimal.Decimal{}, true
	}

	return d, false
}
