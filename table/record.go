package table

import (
	"github.com/LasCondes/ParadoxDataKit/blob"
	"github.com/LasCondes/ParadoxDataKit/encoding"
	"github.com/LasCondes/ParadoxDataKit/format"
	"github.com/LasCondes/ParadoxDataKit/internal/hash"
	"github.com/LasCondes/ParadoxDataKit/section"
)

// FieldValue pairs a decoded value with the descriptor of the field it
// came from.
type FieldValue struct {
	Descriptor section.FieldDescriptor
	Value      Value
}

// Record is one table row. It owns its raw row bytes and shares the
// descriptor list and blob store of the table that produced it; it is
// never mutated after decoding.
type Record struct {
	raw   []byte
	table *Table
}

// Raw returns the record's undecoded row bytes.
func (r *Record) Raw() []byte { return r.raw }

// Values decodes every field of the record in descriptor order.
func (r *Record) Values() []FieldValue {
	fields := r.table.Fields
	values := make([]FieldValue, len(fields))

	offset := 0
	for i, desc := range fields {
		end := offset + desc.Length
		if end > len(r.raw) {
			end = len(r.raw)
		}
		var slice []byte
		if offset < end {
			slice = r.raw[offset:end]
		}
		values[i] = FieldValue{
			Descriptor: desc,
			Value:      decodeField(desc, slice, r.table.store),
		}
		offset += desc.Length
	}

	return values
}

// FormattedValues renders every field through Value.FormattedString, in
// descriptor order.
func (r *Record) FormattedValues() []string {
	values := r.Values()
	out := make([]string, len(values))
	for i, fv := range values {
		out[i] = fv.Value.FormattedString()
	}

	return out
}

// Value returns the decoded value of the named field, matching the
// descriptor name case-insensitively. The second result is false when no
// field carries that name.
func (r *Record) Value(name string) (Value, bool) {
	idx, ok := r.table.fieldIndex[hash.FoldedID(name)]
	if !ok {
		return Null(), false
	}

	offset := 0
	for _, desc := range r.table.Fields[:idx] {
		offset += desc.Length
	}
	desc := r.table.Fields[idx]

	end := offset + desc.Length
	if end > len(r.raw) {
		end = len(r.raw)
	}
	var slice []byte
	if offset < end {
		slice = r.raw[offset:end]
	}

	return decodeField(desc, slice, r.table.store), true
}

// decodeField dispatches one field's bytes by type code.
func decodeField(desc section.FieldDescriptor, buf []byte, store *blob.Store) Value {
	if len(buf) == 0 {
		return Null()
	}

	switch desc.Type {
	case format.FieldAlpha:
		s := encoding.RecoverAlpha(buf)
		if s == "" {
			return Null()
		}
		return TextValue(s)

	case format.FieldDate:
		if t, isNull := encoding.DecodeDate(buf); !isNull {
			return DateValue(t)
		}
		return Null()

	case format.FieldShort:
		v, _ := encoding.DecodeSignedBE(buf)
		return IntegerValue(v)

	case format.FieldLong, format.FieldAutoInc:
		v, _ := encoding.DecodeSignedBE(buf)
		return IntegerValue(v)

	case format.FieldCurrency, format.FieldNumber:
		if f, isNull := encoding.DecodeFloat64BE(buf); !isNull {
			return DoubleValue(f)
		}
		return Null()

	case format.FieldLogical, format.FieldLogicalAlt:
		if b, isNull := encoding.DecodeLogical(buf); !isNull {
			return BoolValue(b)
		}
		return Null()

	case format.FieldTime:
		if d, isNull := encoding.DecodeTime(buf); !isNull {
			return TimeValue(d)
		}
		return Null()

	case format.FieldTimestamp:
		if t, isNull := encoding.DecodeTimestamp(buf); !isNull {
			return TimestampValue(t)
		}
		return Null()

	case format.FieldBCD:
		if d, isNull := encoding.DecodeBCD(buf, desc.Length); !isNull {
			return DecimalValue(d)
		}
		return Null()

	case format.FieldBytes:
		return BytesValue(buf)

	case format.FieldMemo, format.FieldBLOB, format.FieldFormattedMemo:
		payload := resolveBlob(buf, store)
		if len(payload) == 0 {
			return Null()
		}
		s := encoding.RecoverText(trimTrailingNULs(payload))
		if s == "" {
			return Null()
		}
		return TextValue(s)

	case format.FieldBinary, format.FieldOLE:
		payload := resolveBlob(buf, store)
		if len(payload) == 0 {
			return Null()
		}
		return BytesValue(payload)

	case format.FieldGraphic:
		payload := resolveBlob(buf, store)
		if len(payload) == 0 {
			return Null()
		}
		return ImageValue(payload)

	default:
		if looksPrintable(buf) {
			s := encoding.RecoverAlpha(buf)
			if s == "" {
				return Null()
			}
			return TextValue(s)
		}
		return RawValue(buf)
	}
}

// resolveBlob resolves a blob field through the store, degrading to the
// leader bytes when the store is absent or resolution fails.
func resolveBlob(buf []byte, store *blob.Store) []byte {
	if store == nil {
		leader, _, _ := blob.SplitField(buf)
		return leader
	}

	payload, _ := store.Resolve(buf)

	return payload
}

func trimTrailingNULs(buf []byte) []byte {
	end := len(buf)
	for end > 0 && buf[end-1] == 0 {
		end--
	}

	return buf[:end]
}

// looksPrintable reports whether every byte is NUL or renderable, the
// heuristic for unknown field type codes.
func looksPrintable(buf []byte) bool {
	for _, b := range buf {
		if b != 0 && b < 0x20 {
			return false
		}
	}

	return true
}
