// Package table decodes Paradox .DB data blocks into typed records.
//
// A decoded Table owns its field descriptors, its records and, when loaded
// from a file path, the blob store backing its memo, binary and graphic
// fields. Records keep their raw row bytes and materialize typed values on
// demand; they are not portable beyond the lifetime of their table.
//
// # Value Model
//
// Every field decodes to a Value, a closed tagged union over text,
// integer, double, decimal, bool, date, time, timestamp, bytes, raw and
// image payloads, with null as the absent case. Dispatch from field type
// codes to variants follows the Paradox type table; unknown codes fall
// back to text when the payload looks printable and to raw bytes
// otherwise.
package table

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Kind discriminates the variants of a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindText
	KindInteger
	KindDouble
	KindDecimal
	KindBool
	KindDate
	KindTime
	KindTimestamp
	KindBytes
	KindRaw
	KindImage
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "Text"
	case KindInteger:
		return "Integer"
	case KindDouble:
		return "Double"
	case KindDecimal:
		return "Decimal"
	case KindBool:
		return "Bool"
	case KindDate:
		return "Date"
	case KindTime:
		return "Time"
	case KindTimestamp:
		return "Timestamp"
	case KindBytes:
		return "Bytes"
	case KindRaw:
		return "Raw"
	case KindImage:
		return "Image"
	default:
		return "Null"
	}
}

// Value is a decoded Paradox field value.
//
// The zero Value is null. Use the typed constructors and accessors; the
// discriminant is available through Kind().
type Value struct {
	kind    Kind
	text    string
	integer int64
	double  float64
	dec     decimal.Decimal
	boolean bool
	instant time.Time
	elapsed time.Duration
	bytes   []byte
}

// Null returns the null value.
func Null() Value { return Value{} }

// TextValue wraps a recovered string.
func TextValue(s string) Value { return Value{kind: KindText, text: s} }

// IntegerValue wraps a signed integer (Short, Long, AutoInc).
func IntegerValue(v int64) Value { return Value{kind: KindInteger, integer: v} }

// DoubleValue wraps a float (Number, Currency).
func DoubleValue(v float64) Value { return Value{kind: KindDouble, double: v} }

// DecimalValue wraps a BCD fixed-point decimal.
func DecimalValue(d decimal.Decimal) Value { return Value{kind: KindDecimal, dec: d} }

// BoolValue wraps a logical field value.
func BoolValue(b bool) Value { return Value{kind: KindBool, boolean: b} }

// DateValue wraps a calendar date (UTC midnight).
func DateValue(t time.Time) Value { return Value{kind: KindDate, instant: t} }

// TimeValue wraps a time of day as the elapsed duration since midnight.
func TimeValue(d time.Duration) Value { return Value{kind: KindTime, elapsed: d} }

// TimestampValue wraps an instant.
func TimestampValue(t time.Time) Value { return Value{kind: KindTimestamp, instant: t} }

// BytesValue wraps a raw byte sequence field (Bytes, Binary, OLE).
func BytesValue(b []byte) Value { return Value{kind: KindBytes, bytes: b} }

// RawValue wraps undecodable bytes from an unknown field type.
func RawValue(b []byte) Value { return Value{kind: KindRaw, bytes: b} }

// ImageValue wraps graphic blob bytes.
func ImageValue(b []byte) Value { return Value{kind: KindImage, bytes: b} }

// Kind returns the variant discriminant.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Text returns the string payload of a text value.
func (v Value) Text() (string, bool) { return v.text, v.kind == KindText }

// Integer returns the payload of an integer value.
func (v Value) Integer() (int64, bool) { return v.integer, v.kind == KindInteger }

// Double returns the payload of a double value.
func (v Value) Double() (float64, bool) { return v.double, v.kind == KindDouble }

// Decimal returns the payload of a decimal value.
func (v Value) Decimal() (decimal.Decimal, bool) { return v.dec, v.kind == KindDecimal }

// Bool returns the payload of a logical value.
func (v Value) Bool() (bool, bool) { return v.boolean, v.kind == KindBool }

// Date returns the payload of a date value.
func (v Value) Date() (time.Time, bool) { return v.instant, v.kind == KindDate }

// Time returns the payload of a time-of-day value.
func (v Value) Time() (time.Duration, bool) { return v.elapsed, v.kind == KindTime }

// Timestamp returns the payload of a timestamp value.
func (v Value) Timestamp() (time.Time, bool) { return v.instant, v.kind == KindTimestamp }

// Bytes returns the payload of a bytes, raw or image value.
func (v Value) Bytes() ([]byte, bool) {
	switch v.kind {
	case KindBytes, KindRaw, KindImage:
		return v.bytes, true
	default:
		return nil, false
	}
}

// FormattedString returns the canonical display rendering of the value:
// locale-neutral decimals with up to six fraction digits, decimals with
// two to six fraction digits, dates as yyyy-MM-dd UTC, timestamps as
// yyyy-MM-dd HH:mm:ss UTC, times as HH:MM:SS, booleans as true/false,
// bytes as space-separated uppercase hex and images as the literal
// [Image]. Null renders as the empty string.
func (v Value) FormattedString() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindInteger:
		return strconv.FormatInt(v.integer, 10)
	case KindDouble:
		return formatDouble(v.double)
	case KindDecimal:
		return formatDecimal(v.dec)
	case KindBool:
		if v.boolean {
			return "true"
		}
		return "false"
	case KindDate:
		return v.instant.UTC().Format("2006-01-02")
	case KindTimestamp:
		return v.instant.UTC().Format("2006-01-02 15:04:05")
	case KindTime:
		total := int64(v.elapsed / time.Second)
		return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total/60)%60, total%60)
	case KindBytes, KindRaw:
		return fmt.Sprintf("% X", v.bytes)
	case KindImage:
		return "[Image]"
	default:
		return ""
	}
}

func formatDouble(f float64) string {
	rounded := math.Round(f*1e6) / 1e6

	return strconv.FormatFloat(rounded, 'f', -1, 64)
}

func formatDecimal(d decimal.Decimal) string {
	places := -d.Exponent()
	if places < 2 {
		places = 2
	}
	if places > 6 {
		places = 6
	}

	return d.StringFixed(places)
}
