package bytestream

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// Endian identifies the byte order a Stream uses for its multi-byte
// typed accessors.
type Endian byte

// The four valid byte order codes. EndianNetwork is the default for
// every new Stream and the order required by the wire format this
// package ultimately serves.
const (
	EndianNetwork Endian = '!'
	EndianNative  Endian = '@'
	EndianLittle  Endian = '<'
	EndianBig     Endian = '>'
)

// systemEndian is whichever of EndianLittle/EndianBig matches the host,
// probed once at process start and never re-probed.
var systemEndian = probeSystemEndian()

func probeSystemEndian() Endian {
	var b [4]byte
	binary.NativeEndian.PutUint32(b[:], 0x01020304)
	if b[0] == 0x01 {
		return EndianBig
	}
	return EndianLittle
}

func (e Endian) valid() bool {
	switch e {
	case EndianNetwork, EndianNative, EndianLittle, EndianBig:
		return true
	}
	return false
}

// isLittle resolves the code against the host order for EndianNative.
func (e Endian) isLittle() bool {
	if e == EndianNative {
		return systemEndian == EndianLittle
	}
	return e == EndianLittle
}

func (e Endian) byteOrder() binary.ByteOrder {
	if e.isLittle() {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// typeTag indexes the codec table, one entry per fixed-width primitive.
type typeTag int

const (
	tagUint8 typeTag = iota
	tagInt8
	tagUint16
	tagInt16
	tagUint32
	tagInt32
	tagFloat32
	tagFloat64
	numTags
)

// codec is a packer/unpacker pair bound to a byte order. Integer and
// float values travel through it as raw bits in a uint64.
type codec struct {
	width  int
	pack   func(dst []byte, v uint64)
	unpack func(src []byte) uint64
}

type codecTable [numTags]codec

// compileCodecs builds the full table for the given code. The table is
// always replaced as a unit so no entry can carry a stale byte order.
func compileCodecs(e Endian) codecTable {
	order := e.byteOrder()

	c8 := codec{
		width:  1,
		pack:   func(dst []byte, v uint64) { dst[0] = byte(v) },
		unpack: func(src []byte) uint64 { return uint64(src[0]) },
	}
	c16 := codec{
		width:  2,
		pack:   func(dst []byte, v uint64) { order.PutUint16(dst, uint16(v)) },
		unpack: func(src []byte) uint64 { return uint64(order.Uint16(src)) },
	}
	c32 := codec{
		width:  4,
		pack:   func(dst []byte, v uint64) { order.PutUint32(dst, uint32(v)) },
		unpack: func(src []byte) uint64 { return uint64(order.Uint32(src)) },
	}
	c64 := codec{
		width:  8,
		pack:   func(dst []byte, v uint64) { order.PutUint64(dst, v) },
		unpack: func(src []byte) uint64 { return order.Uint64(src) },
	}

	var t codecTable
	t[tagUint8] = c8
	t[tagInt8] = c8
	t[tagUint16] = c16
	t[tagInt16] = c16
	t[tagUint32] = c32
	t[tagInt32] = c32
	t[tagFloat32] = c32
	t[tagFloat64] = c64
	return t
}

// Endian returns the byte order code currently in effect. EndianNative
// is reported as set, not resolved to the host order, so the setting
// round-trips exactly.
func (s *Stream) Endian() Endian {
	return s.endian
}

// SetEndian switches the byte order used by subsequent typed reads and
// writes. Bytes already in the stream are untouched. An unrecognized
// code fails with ErrValue and leaves the previous order active.
func (s *Stream) SetEndian(e Endian) error {
	if !e.valid() {
		return errors.Wrapf(ErrValue, "unrecognized endianness code %q", byte(e))
	}

	s.endian = e
	s.codecs = compileCodecs(e)
	return nil
}
