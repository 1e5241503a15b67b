package reader

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/handegar/fv1asm/codegen"
)

// ReadBin loads a raw 512-byte program image.
func ReadBin(filename string) (*codegen.Binary, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "reading '%s'", filename)
	}
	bin, err := codegen.FromRawBytes(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing '%s'", filename)
	}
	return bin, nil
}

// ReadHex loads an Intel-HEX program image (SpinCAD and the Spin IDE
// export this format).
func ReadHex(filename string) (*codegen.Binary, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "reading '%s'", filename)
	}
	bin, err := codegen.FromHexText(string(data))
	if err != nil {
		return nil, errors.Wrapf(err, "parsing '%s'", filename)
	}
	return bin, nil
}

// ReadImage picks the container from the file extension: .hex is
// Intel-HEX, everything else is treated as a raw image.
func ReadImage(filename string) (*codegen.Binary, error) {
	if strings.EqualFold(filepath.Ext(filename), ".hex") {
		return ReadHex(filename)
	}
	return ReadBin(filename)
}

// ReadSource loads assembly source text.
func ReadSource(filename string) (string, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", errors.Wrapf(err, "reading '%s'", filename)
	}
	return string(data), nil
}
