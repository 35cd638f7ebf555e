package encoding

import (
	"encoding/binary"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// encodeSignedBE applies the inverse sign-bit transform: big-endian bytes
// of the value with the high bit of the first byte flipped.
func encodeSignedBE(v int64, width int) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(v))
	buf = buf[8-width:]

	out := make([]byte, width)
	copy(out, buf)
	out[0] ^= 0x80

	return out
}

// encodeFloat64BE applies the inverse double transform: set the high bit
// for non-negative values, complement every byte for negative ones.
func encodeFloat64BE(v float64) []byte {
	out := make([]byte, 8)
	binary.BigEndian.PutUint64(out, math.Float64bits(v))

	if v < 0 {
		for i := range out {
			out[i] = ^out[i]
		}
	} else {
		out[0] |= 0x80
	}

	return out
}

// rataDie computes the day number of a Gregorian date with day 1 being
// 0001-01-01, matching the Paradox date epoch.
func rataDie(year, month, day int) int64 {
	cumulative := []int{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334}

	y := year - 1
	n := int64(365*y + y/4 - y/100 + y/400)
	n += int64(cumulative[month-1] + day)

	leap := year%4 == 0 && (year%100 != 0 || year%400 == 0)
	if leap && month > 2 {
		n++
	}

	return n
}

func TestDecodeSignedBE_RoundTrip(t *testing.T) {
	t.Run("All int16 values", func(t *testing.T) {
		for v := math.MinInt16; v <= math.MaxInt16; v++ {
			buf := encodeSignedBE(int64(v), 2)
			got, isNull := DecodeSignedBE(buf)

			if v == math.MinInt16 {
				// The minimum value encodes to the all-zero null image;
				// Paradox reserves it as the stored null.
				require.True(t, isNull)
				continue
			}

			require.False(t, isNull, "value %d", v)
			require.Equal(t, int64(v), got, "value %d", v)
		}
	})

	t.Run("Sampled int32 values", func(t *testing.T) {
		samples := []int64{math.MinInt32 + 1, -123456, -1, 0, 1, 123456, math.MaxInt32}
		for _, v := range samples {
			buf := encodeSignedBE(v, 4)
			got, isNull := DecodeSignedBE(buf)
			require.False(t, isNull)
			require.Equal(t, v, got)
		}
	})
}

func TestDecodeSignedBE_Null(t *testing.T) {
	for _, width := range []int{1, 2, 4, 8} {
		_, isNull := DecodeSignedBE(make([]byte, width))
		require.True(t, isNull, "width %d", width)
	}

	_, isNull := DecodeSignedBE(nil)
	require.True(t, isNull)
}

func TestDecodeFloat64BE(t *testing.T) {
	t.Run("Round trip", func(t *testing.T) {
		samples := []float64{0, 1, -1, 3.14159, -3.14159, 1e300, -1e-300, 123456.789}
		for _, v := range samples {
			got, isNull := DecodeFloat64BE(encodeFloat64BE(v))
			require.False(t, isNull)
			require.InDelta(t, v, got, math.Abs(v)*1e-12)
		}
	})

	t.Run("Null", func(t *testing.T) {
		_, isNull := DecodeFloat64BE(make([]byte, 8))
		require.True(t, isNull)
	})

	t.Run("Short buffer", func(t *testing.T) {
		_, isNull := DecodeFloat64BE([]byte{0x80})
		require.True(t, isNull)
	})
}

func TestDecodeLogical(t *testing.T) {
	v, isNull := DecodeLogical([]byte{0x81})
	require.False(t, isNull)
	require.True(t, v)

	v, isNull = DecodeLogical([]byte{0x80})
	require.False(t, isNull)
	require.False(t, v)

	_, isNull = DecodeLogical([]byte{0x00})
	require.True(t, isNull)

	_, isNull = DecodeLogical(nil)
	require.True(t, isNull)
}

func TestDecodeDate(t *testing.T) {
	t.Run("Known date", func(t *testing.T) {
		buf := encodeSignedBE(rataDie(2023, 4, 15), 4)

		d, isNull := DecodeDate(buf)
		require.False(t, isNull)
		require.Equal(t, 2023, d.Year())
		require.Equal(t, time.April, d.Month())
		require.Equal(t, 15, d.Day())
		require.Equal(t, time.UTC, d.Location())
	})

	t.Run("Day one", func(t *testing.T) {
		d, isNull := DecodeDate(encodeSignedBE(1, 4))
		require.False(t, isNull)
		require.Equal(t, time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC), d)
	})

	t.Run("All-zero is null", func(t *testing.T) {
		_, isNull := DecodeDate(make([]byte, 4))
		require.True(t, isNull)
	})

	t.Run("Non-positive is null", func(t *testing.T) {
		_, isNull := DecodeDate(encodeSignedBE(-5, 4))
		require.True(t, isNull)
	})
}

func TestDecodeTime(t *testing.T) {
	buf := encodeSignedBE(30_600_000, 4) // 08:30:00 in milliseconds

	d, isNull := DecodeTime(buf)
	require.False(t, isNull)
	require.Equal(t, 30600*time.Second, d)

	_, isNull = DecodeTime(make([]byte, 4))
	require.True(t, isNull)
}

func TestDecodeTimestamp(t *testing.T) {
	t.Run("Known instant", func(t *testing.T) {
		v := float64(rataDie(2023, 4, 15)) + 36930.0/86400.0 // 10:15:30
		ts, isNull := DecodeTimestamp(encodeFloat64BE(v))

		require.False(t, isNull)
		require.Equal(t, time.Date(2023, 4, 15, 10, 15, 30, 0, time.UTC), ts)
	})

	t.Run("All-zero is null", func(t *testing.T) {
		_, isNull := DecodeTimestamp(make([]byte, 8))
		require.True(t, isNull)
	})
}

// encodeBCD builds a 17-byte BCD image from decimal digits right-aligned
// into the 32 stored nibbles.
func encodeBCD(digits string, scale int, negative bool) []byte {
	buf := make([]byte, 17)
	buf[0] = byte(scale & 0x3F)
	if !negative {
		buf[0] |= 0x80
	}

	nibbles := make([]byte, 32)
	for i, pos := len(digits)-1, 31; i >= 0 && pos >= 0; i, pos = i-1, pos-1 {
		nibbles[pos] = digits[i] - '0'
	}

	for i := 0; i < 16; i++ {
		b := nibbles[2*i]<<4 | nibbles[2*i+1]
		if negative {
			b = ^b
		}
		buf[1+i] = b
	}

	return buf
}

func TestDecodeBCD(t *testing.T) {
	t.Run("Positive with fraction", func(t *testing.T) {
		// 1234.56 stored with scale 2: digits ...123456, fraction 56.
		d, isNull := DecodeBCD(encodeBCD("123456", 2, false), 2)
		require.False(t, isNull)
		require.Equal(t, "1234.56", d.String())
	})

	t.Run("Negative", func(t *testing.T) {
		d, isNull := DecodeBCD(encodeBCD("123456", 2, true), 2)
		require.False(t, isNull)
		require.Equal(t, "-1234.56", d.String())
	})

	t.Run("Integer scale zero", func(t *testing.T) {
		d, isNull := DecodeBCD(encodeBCD("42", 0, false), 0)
		require.False(t, isNull)
		require.Equal(t, "42", d.String())
	})

	t.Run("Declared scale overrides stored", func(t *testing.T) {
		d, isNull := DecodeBCD(encodeBCD("123456", 4, false), 2)
		require.False(t, isNull)
		require.Equal(t, "1234.56", d.String())
	})

	t.Run("Null on zero first byte", func(t *testing.T) {
		_, isNull := DecodeBCD(make([]byte, 17), 2)
		require.True(t, isNull)
	})

	t.Run("Null on short buffer", func(t *testing.T) {
		_, isNull := DecodeBCD(make([]byte, 5), 2)
		require.True(t, isNull)
	})
}
