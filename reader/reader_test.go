package reader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/retrogolib/assert"

	"github.com/handegar/fv1asm/codegen"
	"github.com/handegar/fv1asm/writer"
)

func testImage(t *testing.T) *codegen.Binary {
	t.Helper()
	bin, err := codegen.AssembleSource("rdax adcl, 1.0\nwrax dacl, 0.0")
	assert.NoError(t, err)
	return bin
}

func TestReadBinRoundTrip(t *testing.T) {
	bin := testImage(t)
	path := filepath.Join(t.TempDir(), "prog.bin")
	assert.NoError(t, writer.WriteBin(path, bin))

	back, err := ReadBin(path)
	assert.NoError(t, err)
	assert.Equal(t, bin.Words(), back.Words())
}

func TestReadHexRoundTrip(t *testing.T) {
	bin := testImage(t)
	path := filepath.Join(t.TempDir(), "prog.hex")
	assert.NoError(t, writer.WriteHex(path, bin))

	back, err := ReadHex(path)
	assert.NoError(t, err)
	assert.Equal(t, bin.Words(), back.Words())
}

func TestReadImagePicksContainerByExtension(t *testing.T) {
	bin := testImage(t)
	dir := t.TempDir()

	binPath := filepath.Join(dir, "prog.bin")
	hexPath := filepath.Join(dir, "prog.HEX")
	assert.NoError(t, writer.WriteBin(binPath, bin))
	assert.NoError(t, writer.WriteHex(hexPath, bin))

	fromBin, err := ReadImage(binPath)
	assert.NoError(t, err)
	fromHex, err := ReadImage(hexPath)
	assert.NoError(t, err)
	assert.Equal(t, fromBin.Words(), fromHex.Words())
}

func TestReadBinRejectsTruncated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.bin")
	assert.NoError(t, os.WriteFile(path, make([]byte, 100), 0644))

	_, err := ReadBin(path)
	assert.True(t, err != nil)
}

func TestReadMissingFile(t *testing.T) {
	_, err := ReadBin(filepath.Join(t.TempDir(), "nope.bin"))
	assert.True(t, err != nil)

	_, err = ReadSource(filepath.Join(t.TempDir(), "nope.spn"))
	assert.True(t, err != nil)
}

func TestReadSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.spn")
	assert.NoError(t, os.WriteFile(path, []byte("clr\n"), 0644))

	src, err := ReadSource(path)
	assert.NoError(t, err)
	assert.Equal(t, "clr\n", src)
}
