package codegen

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/handegar/fv1asm/base"
)

// Binary is a complete program image: always exactly 128 words, with
// short programs padded by the NOP word.
type Binary struct {
	words [base.MaxInstructions]uint32
}

// NewBinary builds an image from up to 128 words.
func NewBinary(words []uint32) (*Binary, error) {
	if len(words) > base.MaxInstructions {
		return nil, &ProgramTooLargeError{Size: len(words), Max: base.MaxInstructions}
	}
	b := &Binary{}
	copy(b.words[:], words)
	return b, nil
}

// Words returns a copy of the 128 instruction words.
func (b *Binary) Words() []uint32 {
	words := make([]uint32, base.MaxInstructions)
	copy(words, b.words[:])
	return words
}

// Word returns the word at instruction index i.
func (b *Binary) Word(i int) uint32 {
	return b.words[i]
}

// ToRawBytes serializes the image as 512 bytes, each word big-endian.
func (b *Binary) ToRawBytes() []byte {
	out := make([]byte, base.ProgramBytes)
	for i, w := range b.words {
		binary.BigEndian.PutUint32(out[i*4:], w)
	}
	return out
}

// FromRawBytes parses a 512-byte big-endian image. Any other length
// is rejected.
func FromRawBytes(data []byte) (*Binary, error) {
	if len(data) != base.ProgramBytes {
		return nil, &SizeError{Size: len(data), Expected: base.ProgramBytes}
	}
	b := &Binary{}
	for i := range b.words {
		b.words[i] = binary.BigEndian.Uint32(data[i*4:])
	}
	return b, nil
}

// ToArrayText renders the image as a C source array for firmware
// embedding, four words per line.
func (b *Binary) ToArrayText(name string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "const uint32_t %s[%d] = {\n", name, base.MaxInstructions)
	for i := 0; i < base.MaxInstructions; i += 4 {
		sb.WriteString("   ")
		for j := i; j < i+4; j++ {
			fmt.Fprintf(&sb, " 0x%08X,", b.words[j])
		}
		sb.WriteString("\n")
	}
	sb.WriteString("};\n")
	return sb.String()
}
