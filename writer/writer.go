package writer

import (
	"os"

	"github.com/pkg/errors"

	"github.com/handegar/fv1asm/codegen"
)

// WriteBin saves the raw 512-byte program image.
func WriteBin(filename string, bin *codegen.Binary) error {
	if err := os.WriteFile(filename, bin.ToRawBytes(), 0644); err != nil {
		return errors.Wrapf(err, "writing '%s'", filename)
	}
	return nil
}

// WriteHex saves the image as Intel-HEX records.
func WriteHex(filename string, bin *codegen.Binary) error {
	if err := os.WriteFile(filename, []byte(bin.ToHexText()), 0644); err != nil {
		return errors.Wrapf(err, "writing '%s'", filename)
	}
	return nil
}

// WriteCArray saves the image as a C source array named after the
// program, for embedding in firmware.
func WriteCArray(filename, arrayName string, bin *codegen.Binary) error {
	if err := os.WriteFile(filename, []byte(bin.ToArrayText(arrayName)), 0644); err != nil {
		return errors.Wrapf(err, "writing '%s'", filename)
	}
	return nil
}

// WriteSource saves disassembled listing text.
func WriteSource(filename, text string) error {
	if err := os.WriteFile(filename, []byte(text), 0644); err != nil {
		return errors.Wrapf(err, "writing '%s'", filename)
	}
	return nil
}
