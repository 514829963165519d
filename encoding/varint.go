// Package encoding produces the byte layouts the portable verifier's
// deserializer expects: tagged variable-width integers and the base-p limb
// encoding of 32-byte commitment digests.
package encoding

import "encoding/binary"

// Tag bytes of the portable verifier's integer deserializer. The format
// reserves other tag values for schema features unused here.
const (
	tagU32 = 0x00
	tagU16 = 0x02
	tagU8  = 0x04
)

// AppendUint32 appends the tagged variable-width encoding of v to dst and
// returns the extended slice. The tag is chosen by magnitude: one payload
// byte up to 255, two little-endian bytes up to 65535, four little-endian
// bytes above that. The three branches partition the uint32 range.
func AppendUint32(dst []byte, v uint32) []byte {
	switch {
	case v > 0xFFFF:
		dst = append(dst, tagU32)
		dst = binary.LittleEndian.AppendUint32(dst, v)
	case v > 0xFF:
		dst = append(dst, tagU16)
		dst = binary.LittleEndian.AppendUint16(dst, uint16(v))
	default:
		dst = append(dst, tagU8, byte(v))
	}
	return dst
}

// EncodeUint32 returns the tagged encoding of v.
func EncodeUint32(v uint32) []byte {
	return AppendUint32(nil, v)
}
