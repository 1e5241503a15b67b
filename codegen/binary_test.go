package codegen

import (
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"

	"github.com/handegar/fv1asm/base"
)

func testBinary(t *testing.T) *Binary {
	t.Helper()
	bin, err := AssembleSource(`
		rdax adcl, 1.0
		rda 1000, 0.5
		wrax dacl, 0.0
	`)
	assert.NoError(t, err)
	return bin
}

func TestRawBytesRoundTrip(t *testing.T) {
	bin := testBinary(t)

	raw := bin.ToRawBytes()
	assert.Equal(t, base.ProgramBytes, len(raw))

	// big-endian first word
	assert.Equal(t, byte(0x02), raw[0])
	assert.Equal(t, byte(0x88), raw[1])
	assert.Equal(t, byte(0x00), raw[2])
	assert.Equal(t, byte(0x00), raw[3])

	back, err := FromRawBytes(raw)
	assert.NoError(t, err)
	assert.Equal(t, bin.Words(), back.Words())
}

func TestFromRawBytesRejectsWrongSize(t *testing.T) {
	for _, size := range []int{0, 4, 511, 513, 1024} {
		_, err := FromRawBytes(make([]byte, size))
		assert.True(t, err != nil)
		sizeErr, ok := err.(*SizeError)
		assert.True(t, ok)
		assert.Equal(t, size, sizeErr.Size)
		assert.Equal(t, base.ProgramBytes, sizeErr.Expected)
	}
}

func TestHexTextRoundTrip(t *testing.T) {
	bin := testBinary(t)

	text := bin.ToHexText()
	lines := strings.Split(strings.TrimSpace(text), "\n")
	// 512 bytes in 16-byte records, plus the EOF record
	assert.Equal(t, 33, len(lines))
	assert.Equal(t, ":00000001FF", lines[32])
	assert.True(t, strings.HasPrefix(lines[0], ":10000000"))

	back, err := FromHexText(text)
	assert.NoError(t, err)
	assert.Equal(t, bin.Words(), back.Words())
}

func TestHexRecordChecksum(t *testing.T) {
	bin := testBinary(t)
	text := bin.ToHexText()

	// flip a data nibble; the record checksum no longer matches
	corrupted := strings.Replace(text, ":10000000", ":10000100", 1)
	_, err := FromHexText(corrupted)
	errorContains(t, err, "checksum")
}

func TestFromHexTextMalformed(t *testing.T) {
	_, err := FromHexText("10000000FF\n")
	assert.True(t, err != nil)

	_, err = FromHexText(":zz\n")
	assert.True(t, err != nil)
}

func TestToArrayText(t *testing.T) {
	bin := testBinary(t)
	text := bin.ToArrayText("reverb")

	assert.True(t, strings.HasPrefix(text, "const uint32_t reverb[128] = {"))
	assert.True(t, strings.HasSuffix(text, "};\n"))
	assert.True(t, strings.Contains(text, "0x02880000"))
	// 128 words at four per line
	assert.Equal(t, 32, strings.Count(text, "\n")-2)
}

func TestNewBinary(t *testing.T) {
	bin, err := NewBinary([]uint32{1, 2, 3})
	assert.NoError(t, err)
	assert.Equal(t, uint32(1), bin.Word(0))
	assert.Equal(t, uint32(3), bin.Word(2))
	assert.Equal(t, NopWord, bin.Word(3))

	_, err = NewBinary(make([]uint32, base.MaxInstructions+1))
	assert.True(t, err != nil)
}
