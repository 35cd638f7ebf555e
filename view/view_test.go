package view

import (
	"encoding/binary"
	"testing"

	"github.com/LasCondes/ParadoxDataKit/errs"
	"github.com/stretchr/testify/require"
)

func buildViewImage(directory, tableFile string, labels ...string) []byte {
	data := []byte(Signature)
	data = append(data, 0, 0, 0) // NUL padding after the signature

	header := make([]byte, 10)
	binary.LittleEndian.PutUint16(header[0:], 1)      // version
	binary.LittleEndian.PutUint16(header[2:], 0x0020) // flags
	binary.LittleEndian.PutUint32(header[4:], 1024)   // declared length
	binary.LittleEndian.PutUint16(header[8:], 0x00A0) // first block offset
	data = append(data, header...)

	data = append(data, 0, 0) // padding before the strings

	data = append(data, directory...)
	data = append(data, 0)
	data = append(data, tableFile...)
	data = append(data, 0)
	for _, label := range labels {
		data = append(data, label...)
		data = append(data, 0)
	}

	return data
}

func TestParse(t *testing.T) {
	t.Run("Full header", func(t *testing.T) {
		data := buildViewImage(`WORK:DATA\CUS`, "SAMPLE.DB", "Form Title")

		tv, err := Parse(data)
		require.NoError(t, err)

		require.Equal(t, Signature, tv.Signature)
		require.Equal(t, uint16(1), tv.Version)
		require.Equal(t, uint16(0x0020), tv.Flags)
		require.Equal(t, uint32(1024), tv.DeclaredLength)
		require.Equal(t, uint16(0x00A0), tv.FirstBlockOffset)
		require.Equal(t, `WORK:DATA\CUS`, tv.DirectoryHint)
		require.Equal(t, "SAMPLE.DB", tv.TableFilename)
		require.Equal(t, []string{"Form Title"}, tv.Labels)
		require.Equal(t, `WORK:DATA\CUS\SAMPLE.DB`, tv.ResolvedTableReference())
		require.Equal(t, len(data), tv.Size)
	})

	t.Run("Separator-suffixed directory joins without backslash", func(t *testing.T) {
		data := buildViewImage(`WORK:DATA\`, "SAMPLE.DB")

		tv, err := Parse(data)
		require.NoError(t, err)
		require.Equal(t, `WORK:DATA\SAMPLE.DB`, tv.ResolvedTableReference())
	})

	t.Run("Label cap", func(t *testing.T) {
		data := buildViewImage("DIR", "T.DB", "L1", "L2", "L3", "L4", "L5", "L6")

		tv, err := Parse(data)
		require.NoError(t, err)
		require.Equal(t, []string{"L1", "L2", "L3", "L4"}, tv.Labels)
		// Uncollected strings stay in the opaque remainder.
		require.NotEmpty(t, tv.Remainder)
	})

	t.Run("Empty strings skipped", func(t *testing.T) {
		data := buildViewImage("DIR", "", "T.DB")

		tv, err := Parse(data)
		require.NoError(t, err)
		require.Equal(t, "DIR", tv.DirectoryHint)
		require.Equal(t, "T.DB", tv.TableFilename)
		require.Empty(t, tv.Labels)
	})

	t.Run("Too small", func(t *testing.T) {
		_, err := Parse([]byte("Borland"))
		require.ErrorIs(t, err, errs.ErrTooSmall)
	})

	t.Run("Invalid signature", func(t *testing.T) {
		data := make([]byte, 64)
		copy(data, "Not A Borland File!!!")

		_, err := Parse(data)
		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrInvalidSignature)

		var sig *errs.InvalidSignatureError
		require.ErrorAs(t, err, &sig)
		require.Equal(t, Signature, sig.Expected)
	})
}
