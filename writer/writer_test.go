package writer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"

	"github.com/handegar/fv1asm/base"
	"github.com/handegar/fv1asm/codegen"
)

func TestWriteBin(t *testing.T) {
	bin, err := codegen.AssembleSource("clr")
	assert.NoError(t, err)

	path := filepath.Join(t.TempDir(), "prog.bin")
	assert.NoError(t, WriteBin(path, bin))

	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, base.ProgramBytes, len(data))
}

func TestWriteCArray(t *testing.T) {
	bin, err := codegen.AssembleSource("rdax adcl, 1.0")
	assert.NoError(t, err)

	path := filepath.Join(t.TempDir(), "prog.h")
	assert.NoError(t, WriteCArray(path, "my_patch", bin))

	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	text := string(data)
	assert.True(t, strings.HasPrefix(text, "const uint32_t my_patch[128]"))
	assert.True(t, strings.Contains(text, "0x02880000"))
}

func TestWriteToBadPath(t *testing.T) {
	bin, err := codegen.AssembleSource("clr")
	assert.NoError(t, err)

	err = WriteBin(filepath.Join(t.TempDir(), "no", "such", "dir", "x.bin"), bin)
	assert.True(t, err != nil)
}
