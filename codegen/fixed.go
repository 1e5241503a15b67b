package codegen

import "math"

// Fixed-point formats used in instruction words. Both encode via
// multiply-by-scale with rounding half away from zero, and reject
// values outside the representable range rather than clamping.

const (
	s114Scale = 1 << 14 // S1.14: [-2.0, 2.0)
	s10Scale  = 1 << 9  // S.10:  [-1.0, 1.0)
)

// EncodeS114 quantizes a coefficient into the 16-bit S1.14 field.
func EncodeS114(v float64) (uint32, error) {
	if v < -2.0 || v >= 2.0 {
		return 0, &CoefficientRangeError{Value: v, Min: -2.0, Max: 2.0}
	}
	n := int32(math.Round(v * s114Scale))
	// 1.99997 rounds up past the top of the field
	if n < -32768 || n > 32767 {
		return 0, &CoefficientRangeError{Value: v, Min: -2.0, Max: 2.0}
	}
	return uint32(uint16(n)), nil
}

// DecodeS114 recovers the coefficient from a 16-bit S1.14 field.
func DecodeS114(field uint32) float64 {
	return float64(int16(uint16(field&0xFFFF))) / s114Scale
}

// EncodeS10 quantizes an offset into the 11-bit S.10 field.
func EncodeS10(v float64) (uint32, error) {
	if v < -1.0 || v >= 1.0 {
		return 0, &CoefficientRangeError{Value: v, Min: -1.0, Max: 1.0}
	}
	n := int32(math.Round(v * s10Scale))
	if n < -512 || n > 511 {
		return 0, &CoefficientRangeError{Value: v, Min: -1.0, Max: 1.0}
	}
	return uint32(n) & 0x7FF, nil
}

// DecodeS10 recovers the offset from an 11-bit S.10 field,
// sign-extending from bit 10.
func DecodeS10(field uint32) float64 {
	n := int32(field & 0x7FF)
	if n&0x400 != 0 {
		n -= 0x800
	}
	return float64(n) / s10Scale
}
