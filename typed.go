package bytestream

import (
	"math"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// Declared ranges for the integer accessors. The writers take int64 so
// out-of-range values can be rejected instead of silently wrapped.
const (
	minInt8   = math.MinInt8
	maxInt8   = math.MaxInt8
	maxUint8  = math.MaxUint8
	minInt16  = math.MinInt16
	maxInt16  = math.MaxInt16
	maxUint16 = math.MaxUint16
	minInt24  = -0x800000
	maxInt24  = 0x7FFFFF
	maxUint24 = 0xFFFFFF
	minInt32  = math.MinInt32
	maxInt32  = math.MaxInt32
	maxUint32 = math.MaxUint32
)

// readFixed decodes the next value for tag, failing with ErrIO when
// fewer bytes than the tag's width remain. Nothing is consumed on
// failure.
func (s *Stream) readFixed(tag typeTag) (uint64, error) {
	c := &s.codecs[tag]
	if r := s.Remaining(); r < c.width {
		return 0, errors.Wrapf(ErrIO, "attempted to read %d bytes but only %d remain", c.width, r)
	}

	v := c.unpack(s.buf[s.pos:])
	s.pos += c.width
	return v, nil
}

// writeFixed encodes v for tag at the cursor. Validation happens in the
// typed writers before this point, so no partial write can occur.
func (s *Stream) writeFixed(tag typeTag, v uint64) {
	c := &s.codecs[tag]
	c.pack(s.grow(c.width), v)
	s.pos += c.width
}

// ReadUint8 reads a 1 byte unsigned integer from the stream.
func (s *Stream) ReadUint8() (uint8, error) {
	v, err := s.readFixed(tagUint8)
	return uint8(v), err
}

// WriteUint8 writes a 1 byte unsigned integer to the stream.
func (s *Stream) WriteUint8(v int64) error {
	if v < 0 || v > maxUint8 {
		return errors.Wrapf(ErrOverflow, "%d not in range of uint8", v)
	}
	s.writeFixed(tagUint8, uint64(v))
	return nil
}

// ReadInt8 reads a 1 byte signed integer from the stream.
func (s *Stream) ReadInt8() (int8, error) {
	v, err := s.readFixed(tagInt8)
	return int8(uint8(v)), err
}

// WriteInt8 writes a 1 byte signed integer to the stream.
func (s *Stream) WriteInt8(v int64) error {
	if v < minInt8 || v > maxInt8 {
		return errors.Wrapf(ErrOverflow, "%d not in range of int8", v)
	}
	s.writeFixed(tagInt8, uint64(uint8(int8(v))))
	return nil
}

// ReadUint16 reads a 2 byte unsigned integer from the stream.
func (s *Stream) ReadUint16() (uint16, error) {
	v, err := s.readFixed(tagUint16)
	return uint16(v), err
}

// WriteUint16 writes a 2 byte unsigned integer to the stream.
func (s *Stream) WriteUint16(v int64) error {
	if v < 0 || v > maxUint16 {
		return errors.Wrapf(ErrOverflow, "%d not in range of uint16", v)
	}
	s.writeFixed(tagUint16, uint64(v))
	return nil
}

// ReadInt16 reads a 2 byte signed integer from the stream.
func (s *Stream) ReadInt16() (int16, error) {
	v, err := s.readFixed(tagInt16)
	return int16(uint16(v)), err
}

// WriteInt16 writes a 2 byte signed integer to the stream.
func (s *Stream) WriteInt16(v int64) error {
	if v < minInt16 || v > maxInt16 {
		return errors.Wrapf(ErrOverflow, "%d not in range of int16", v)
	}
	s.writeFixed(tagInt16, uint64(uint16(int16(v))))
	return nil
}

// ReadUint32 reads a 4 byte unsigned integer from the stream.
func (s *Stream) ReadUint32() (uint32, error) {
	v, err := s.readFixed(tagUint32)
	return uint32(v), err
}

// WriteUint32 writes a 4 byte unsigned integer to the stream.
func (s *Stream) WriteUint32(v int64) error {
	if v < 0 || v > maxUint32 {
		return errors.Wrapf(ErrOverflow, "%d not in range of uint32", v)
	}
	s.writeFixed(tagUint32, uint64(v))
	return nil
}

// ReadInt32 reads a 4 byte signed integer from the stream.
func (s *Stream) ReadInt32() (int32, error) {
	v, err := s.readFixed(tagInt32)
	return int32(uint32(v)), err
}

// WriteInt32 writes a 4 byte signed integer to the stream.
func (s *Stream) WriteInt32(v int64) error {
	if v < minInt32 || v > maxInt32 {
		return errors.Wrapf(ErrOverflow, "%d not in range of int32", v)
	}
	s.writeFixed(tagInt32, uint64(uint32(int32(v))))
	return nil
}

// ReadUint24 reads a 3 byte unsigned integer from the stream. There is
// no native 3 byte type, so the bytes are assembled one at a time in
// the order the active endianness dictates.
func (s *Stream) ReadUint24() (uint32, error) {
	if r := s.Remaining(); r < 3 {
		return 0, errors.Wrapf(ErrIO, "attempted to read 3 bytes but only %d remain", r)
	}

	b := s.buf[s.pos : s.pos+3]
	s.pos += 3

	if s.endian.isLittle() {
		return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16, nil
	}
	return uint32(b[2]) | uint32(b[1])<<8 | uint32(b[0])<<16, nil
}

// WriteUint24 writes a 3 byte unsigned integer to the stream.
func (s *Stream) WriteUint24(v int64) error {
	if v < 0 || v > maxUint24 {
		return errors.Wrapf(ErrOverflow, "%d not in range of uint24", v)
	}

	b := s.grow(3)
	n := uint32(v)
	if s.endian.isLittle() {
		b[0], b[1], b[2] = byte(n), byte(n>>8), byte(n>>16)
	} else {
		b[0], b[1], b[2] = byte(n>>16), byte(n>>8), byte(n)
	}
	s.pos += 3
	return nil
}

// ReadInt24 reads a 3 byte signed integer from the stream.
func (s *Stream) ReadInt24() (int32, error) {
	n, err := s.ReadUint24()
	if err != nil {
		return 0, err
	}

	// two's complement adjustment for the 24 bit sign bit
	if n&0x800000 != 0 {
		return int32(n) - 0x1000000, nil
	}
	return int32(n), nil
}

// WriteInt24 writes a 3 byte signed integer to the stream.
func (s *Stream) WriteInt24(v int64) error {
	if v < minInt24 || v > maxInt24 {
		return errors.Wrapf(ErrOverflow, "%d not in range of int24", v)
	}

	if v < 0 {
		v += 0x1000000
	}
	return s.WriteUint24(v)
}

// ReadFloat32 reads a 4 byte float from the stream.
func (s *Stream) ReadFloat32() (float32, error) {
	v, err := s.readFixed(tagFloat32)
	return math.Float32frombits(uint32(v)), err
}

// WriteFloat32 writes a 4 byte float to the stream. The value is
// narrowed from float64, the way single precision wire fields are
// produced from Go's default float type.
func (s *Stream) WriteFloat32(v float64) error {
	s.writeFixed(tagFloat32, uint64(math.Float32bits(float32(v))))
	return nil
}

// ReadFloat64 reads an 8 byte float from the stream.
func (s *Stream) ReadFloat64() (float64, error) {
	v, err := s.readFixed(tagFloat64)
	return math.Float64frombits(v), err
}

// WriteFloat64 writes an 8 byte float to the stream.
func (s *Stream) WriteFloat64(v float64) error {
	s.writeFixed(tagFloat64, math.Float64bits(v))
	return nil
}

// ReadUTF8 reads exactly length bytes and decodes them as UTF-8. The
// length always comes from the caller; no prefix is read from the
// stream. Malformed UTF-8 fails with ErrValue after consuming the
// bytes.
func (s *Stream) ReadUTF8(length int) (string, error) {
	b, err := s.ReadBytes(length)
	if err != nil {
		return "", err
	}

	if !utf8.Valid(b) {
		return "", errors.Wrapf(ErrValue, "%d byte payload is not valid UTF-8", length)
	}
	return string(b), nil
}

// WriteUTF8 writes the UTF-8 bytes of text to the stream. Callers
// holding raw bytes write them through Write directly.
func (s *Stream) WriteUTF8(text string) error {
	_, err := s.Write([]byte(text))
	return err
}
