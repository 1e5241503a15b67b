package codegen

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/handegar/fv1asm/base"
)

// Intel-HEX container: 16-byte data records covering the full
// 512-byte image, then the end-of-file record.

const hexRecordBytes = 16

// ToHexText renders the image as Intel-HEX records.
func (b *Binary) ToHexText() string {
	raw := b.ToRawBytes()
	var sb strings.Builder
	for addr := 0; addr < len(raw); addr += hexRecordBytes {
		writeHexRecord(&sb, uint16(addr), raw[addr:addr+hexRecordBytes])
	}
	sb.WriteString(":00000001FF\n")
	return sb.String()
}

func writeHexRecord(sb *strings.Builder, addr uint16, data []byte) {
	sum := byte(len(data)) + byte(addr>>8) + byte(addr)
	fmt.Fprintf(sb, ":%02X%04X00", len(data), addr)
	for _, d := range data {
		fmt.Fprintf(sb, "%02X", d)
		sum += d
	}
	fmt.Fprintf(sb, "%02X\n", byte(-sum))
}

// FromHexText parses Intel-HEX text back into a program image. Data
// records may use any record length; the decoded bytes must form a
// complete 512-byte image.
func FromHexText(text string) (*Binary, error) {
	raw := make([]byte, 0, base.ProgramBytes)
	for lineNo, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		data, end, err := parseHexRecord(line)
		if err != nil {
			return nil, fmt.Errorf("hex record on line %d: %w", lineNo+1, err)
		}
		if end {
			break
		}
		raw = append(raw, data...)
	}
	return FromRawBytes(raw)
}

func parseHexRecord(line string) (data []byte, end bool, err error) {
	if !strings.HasPrefix(line, ":") || len(line) < 11 {
		return nil, false, fmt.Errorf("malformed record %q", line)
	}
	raw, err := hex.DecodeString(line[1:])
	if err != nil {
		return nil, false, err
	}
	count := int(raw[0])
	if len(raw) != count+5 {
		return nil, false, fmt.Errorf("record length %d does not match count %d", len(raw), count)
	}
	var sum byte
	for _, b := range raw {
		sum += b
	}
	if sum != 0 {
		return nil, false, fmt.Errorf("checksum mismatch in record %q", line)
	}
	switch raw[3] {
	case 0x00:
		return raw[4 : 4+count], false, nil
	case 0x01:
		return nil, true, nil
	}
	return nil, false, fmt.Errorf("unsupported record type 0x%02X", raw[3])
}
