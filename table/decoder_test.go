package table

import (
	"encoding/binary"
	"math"
	"testing"
	"time"

	"github.com/LasCondes/ParadoxDataKit/format"
	"github.com/stretchr/testify/require"
)

// tableFixture assembles a complete .DB image: header area, descriptor
// region and one data block per 1024-byte size factor unit.
type tableFixture struct {
	fields     []fixtureField
	tableName  string
	rowCount   uint32
	sizeFactor uint8
	rows       [][]byte
}

type fixtureField struct {
	typeCode format.FieldType
	length   uint8
	name     string
}

func (f tableFixture) build(t *testing.T) []byte {
	t.Helper()

	const headerLength = 0x200

	recordSize := 0
	for _, fld := range f.fields {
		recordSize += int(fld.length)
	}

	blockSize := int(f.sizeFactor) * 1024
	data := make([]byte, headerLength+blockSize)

	binary.LittleEndian.PutUint16(data[0x00:], uint16(recordSize))
	binary.LittleEndian.PutUint16(data[0x02:], headerLength)
	data[0x04] = byte(format.FileTypeIndexedTable)
	data[0x05] = f.sizeFactor
	binary.LittleEndian.PutUint32(data[0x06:], f.rowCount)
	binary.LittleEndian.PutUint16(data[0x21:], uint16(len(f.fields)))
	data[0x39] = 0x0C // Paradox 7: extended data header, field info at 0x78
	binary.LittleEndian.PutUint16(data[0x6A:], 1252)

	cursor := 0x78
	for _, fld := range f.fields {
		data[cursor] = byte(fld.typeCode)
		data[cursor+1] = fld.length
		cursor += 2
	}

	cursor += 4 + 4*len(f.fields) // pointer section
	cursor += 2 * len(f.fields)   // field-number section

	cursor += copy(data[cursor:], f.tableName)
	cursor++

	for _, fld := range f.fields {
		cursor += copy(data[cursor:], fld.name)
		cursor++
	}

	slot := headerLength + 6
	for _, row := range f.rows {
		require.Len(t, row, recordSize)
		copy(data[slot:], row)
		slot += recordSize
	}

	return data
}

func encodeParadoxInt(v int64, width int) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(v))
	out := make([]byte, width)
	copy(out, buf[8-width:])
	out[0] ^= 0x80

	return out
}

func encodeParadoxDouble(v float64) []byte {
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

// rataDie computes the Paradox day number of a Gregorian date
// (day 1 = 0001-01-01).
func rataDie(year, month, day int) int64 {
	cumulative := []int{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334}

	y := year - 1
	n := int64(365*y + y/4 - y/100 + y/400)
	n += int64(cumulative[month-1] + day)

	if month > 2 && year%4 == 0 && (year%100 != 0 || year%400 == 0) {
		n++
	}

	return n
}

func padAlpha(s string, width int) []byte {
	out := make([]byte, width)
	copy(out, s)

	return out
}

func TestDecode_AlphaTable(t *testing.T) {
	fixture := tableFixture{
		fields: []fixtureField{
			{format.FieldAlpha, 4, "CODE"},
			{format.FieldAlpha, 6, "DESC"},
		},
		tableName:  "MOCK.DB",
		rowCount:   2,
		sizeFactor: 1,
		rows: [][]byte{
			append(padAlpha("A001", 4), padAlpha("Widget", 6)...),
			append(padAlpha("A002", 4), padAlpha("Flange", 6)...),
		},
	}

	tbl, err := Decode(fixture.build(t), nil)
	require.NoError(t, err)

	require.Len(t, tbl.Fields, 2)
	require.Equal(t, "CODE", tbl.Fields[0].Name)
	require.Equal(t, "MOCK.DB", tbl.TableName)
	require.Len(t, tbl.Records, 2)

	values := tbl.Records[0].Values()
	require.Len(t, values, 2)

	text, ok := values[0].Value.Text()
	require.True(t, ok)
	require.Equal(t, "A001", text)

	text, ok = values[1].Value.Text()
	require.True(t, ok)
	require.Equal(t, "Widget", text)

	row2 := tbl.Records[1].FormattedValues()
	require.Equal(t, []string{"A002", "Flange"}, row2)
}

func TestDecode_NumericTable(t *testing.T) {
	row := encodeParadoxInt(25, 2)
	row = append(row, encodeParadoxInt(123456, 4)...)
	row = append(row, encodeParadoxDouble(3.14159)...)
	row = append(row, 0x81) // logical true
	row = append(row, encodeParadoxInt(rataDie(2023, 4, 15), 4)...)
	row = append(row, encodeParadoxInt(30_600_000, 4)...) // 08:30 in ms
	ts := float64(rataDie(2023, 4, 15)) + 36930.0/86400.0 // 10:15:30
	row = append(row, encodeParadoxDouble(ts)...)

	fixture := tableFixture{
		fields: []fixtureField{
			{format.FieldShort, 2, "QTY"},
			{format.FieldLong, 4, "SERIAL"},
			{format.FieldNumber, 8, "RATIO"},
			{format.FieldLogical, 1, "ACTIVE"},
			{format.FieldDate, 4, "SOLD"},
			{format.FieldTime, 4, "OPENED"},
			{format.FieldTimestamp, 8, "UPDATED"},
		},
		tableName:  "NUM.DB",
		rowCount:   1,
		sizeFactor: 1,
		rows:       [][]byte{row},
	}

	tbl, err := Decode(fixture.build(t), nil)
	require.NoError(t, err)
	require.Len(t, tbl.Records, 1)

	values := tbl.Records[0].Values()
	require.Len(t, values, 7)

	qty, ok := values[0].Value.Integer()
	require.True(t, ok)
	require.Equal(t, int64(25), qty)

	serial, ok := values[1].Value.Integer()
	require.True(t, ok)
	require.Equal(t, int64(123456), serial)

	ratio, ok := values[2].Value.Double()
	require.True(t, ok)
	require.InDelta(t, 3.14159, ratio, 1e-5)

	active, ok := values[3].Value.Bool()
	require.True(t, ok)
	require.True(t, active)

	sold, ok := values[4].Value.Date()
	require.True(t, ok)
	require.Equal(t, 2023, sold.Year())
	require.Equal(t, time.April, sold.Month())
	require.Equal(t, 15, sold.Day())

	opened, ok := values[5].Value.Time()
	require.True(t, ok)
	require.Equal(t, 30600*time.Second, opened)

	updated, ok := values[6].Value.Timestamp()
	require.True(t, ok)
	require.Equal(t, time.Date(2023, 4, 15, 10, 15, 30, 0, time.UTC), updated)
}

func TestDecode_CountInvariants(t *testing.T) {
	fixture := tableFixture{
		fields: []fixtureField{
			{format.FieldAlpha, 4, "CODE"},
			{format.FieldShort, 2, "QTY"},
		},
		tableName:  "INV.DB",
		rowCount:   3,
		sizeFactor: 1,
		rows: [][]byte{
			append(padAlpha("A", 4), encodeParadoxInt(1, 2)...),
			append(padAlpha("B", 4), encodeParadoxInt(2, 2)...),
			append(padAlpha("C", 4), encodeParadoxInt(3, 2)...),
		},
	}

	tbl, err := Decode(fixture.build(t), nil)
	require.NoError(t, err)

	// Record count matches the declared row count; every record decodes
	// to field-count values.
	require.Len(t, tbl.Records, int(tbl.Header.RowCount))
	require.Len(t, tbl.FieldDisplayNames(), int(tbl.Header.FieldCount))

	for _, rec := range tbl.Records {
		require.Len(t, rec.Values(), len(tbl.Fields))
		require.Len(t, rec.FormattedValues(), len(tbl.Fields))
	}
}

func TestDecode_TombstoneSkipped(t *testing.T) {
	fixture := tableFixture{
		fields: []fixtureField{
			{format.FieldAlpha, 4, "CODE"},
		},
		tableName:  "TOMB.DB",
		rowCount:   0, // walk the whole data area
		sizeFactor: 1,
		rows: [][]byte{
			padAlpha("A001", 4),
			make([]byte, 4), // tombstone slot
			padAlpha("A003", 4),
		},
	}

	tbl, err := Decode(fixture.build(t), nil)
	require.NoError(t, err)

	require.Len(t, tbl.Records, 2)
	require.Equal(t, []string{"A001"}, tbl.Records[0].FormattedValues())
	require.Equal(t, []string{"A003"}, tbl.Records[1].FormattedValues())
}

func TestRecord_ValueByName(t *testing.T) {
	fixture := tableFixture{
		fields: []fixtureField{
			{format.FieldAlpha, 4, "CODE"},
			{format.FieldShort, 2, "QTY"},
		},
		tableName:  "BYNAME.DB",
		rowCount:   1,
		sizeFactor: 1,
		rows: [][]byte{
			append(padAlpha("A001", 4), encodeParadoxInt(9, 2)...),
		},
	}

	tbl, err := Decode(fixture.build(t), nil)
	require.NoError(t, err)

	v, ok := tbl.Records[0].Value("qty")
	require.True(t, ok)

	qty, ok := v.Integer()
	require.True(t, ok)
	require.Equal(t, int64(9), qty)

	_, ok = tbl.Records[0].Value("missing")
	require.False(t, ok)
}

func TestTable_FieldByName(t *testing.T) {
	fixture := tableFixture{
		fields: []fixtureField{
			{format.FieldAlpha, 4, "CODE"},
		},
		tableName:  "LOOKUP.DB",
		sizeFactor: 1,
	}

	tbl, err := Decode(fixture.build(t), nil)
	require.NoError(t, err)

	desc, ok := tbl.FieldByName("code")
	require.True(t, ok)
	require.Equal(t, format.FieldAlpha, desc.Type)

	_, ok = tbl.FieldByName("nope")
	require.False(t, ok)
}

func TestTable_FormattedRecords(t *testing.T) {
	fixture := tableFixture{
		fields: []fixtureField{
			{format.FieldAlpha, 4, "CODE"},
		},
		tableName:  "FMT.DB",
		rowCount:   3,
		sizeFactor: 1,
		rows: [][]byte{
			padAlpha("A", 4), padAlpha("B", 4), padAlpha("C", 4),
		},
	}

	tbl, err := Decode(fixture.build(t), nil)
	require.NoError(t, err)

	sample := tbl.FormattedRecords(2)
	require.Len(t, sample, 2)

	all := tbl.FormattedRecords(0)
	require.Len(t, all, 3)
}
