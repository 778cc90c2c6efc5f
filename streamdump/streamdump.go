// Package streamdump decodes the contents of a byte stream written as
// a flat sequence of marker-prefixed primitive values, the layout the
// wire codecs above the stream produce
//
// the reader is separate from the cli, with the decoding implemented in
// streamdump.go while the cli is implemented in cmd/streamdump
//
// ```
// go get github.com/amfkit/bytestream/streamdump/cmd/streamdump
// ```
package streamdump

import (
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/amfkit/bytestream"
)

// Kind is the one byte marker written before every value.
type Kind byte

// Markers for the primitive values the stream surface can carry.
const (
	NumberKind    Kind = 0x00 // 8 byte float
	BooleanKind   Kind = 0x01 // 1 byte, zero is false
	StringKind    Kind = 0x02 // 2 byte unsigned length, then UTF-8
	NullKind      Kind = 0x05
	UndefinedKind Kind = 0x06
	ArrayKind     Kind = 0x0a // 4 byte unsigned count, then values
	DateKind      Kind = 0x0b // 8 byte float millis, 2 byte tz offset
)

func (k Kind) String() string {
	switch k {
	case NumberKind:
		return "number"
	case BooleanKind:
		return "boolean"
	case StringKind:
		return "string"
	case NullKind:
		return "null"
	case UndefinedKind:
		return "undefined"
	case ArrayKind:
		return "array"
	case DateKind:
		return "date"
	}
	return fmt.Sprintf("unknown(0x%02x)", byte(k))
}

// Entry is one decoded value along with the offset of its marker.
type Entry struct {
	Offset int64
	Kind   Kind
	Value  interface{}
}

// Date is a decoded DateKind value: an instant plus the timezone offset
// (in minutes) it was written with.
type Date struct {
	Time     time.Time
	TzOffset int16
}

// Dump decodes data from offset 0 to the end. The values come back in
// stream order; an unknown marker or a truncated payload fails with the
// offset it happened at.
func Dump(data []byte) ([]Entry, error) {
	s := bytestream.NewFromBytes(data)

	var entries []Entry
	for !s.AtEOF() {
		entry, err := readEntry(s)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func readEntry(s *bytestream.Stream) (Entry, error) {
	offset := s.Tell()

	marker, err := s.ReadUint8()
	if err != nil {
		return Entry{}, errors.Wrapf(err, "reading marker at offset %d", offset)
	}

	value, err := readValue(s, Kind(marker))
	if err != nil {
		return Entry{}, errors.Wrapf(err, "decoding %v at offset %d", Kind(marker), offset)
	}

	return Entry{Offset: offset, Kind: Kind(marker), Value: value}, nil
}

func readValue(s *bytestream.Stream, kind Kind) (interface{}, error) {
	switch kind {
	case NumberKind:
		return s.ReadFloat64()

	case BooleanKind:
		b, err := s.ReadUint8()
		return b != 0, err

	case StringKind:
		length, err := s.ReadUint16()
		if err != nil {
			return nil, err
		}
		return s.ReadUTF8(int(length))

	case NullKind, UndefinedKind:
		return nil, nil

	case ArrayKind:
		count, err := s.ReadUint32()
		if err != nil {
			return nil, err
		}

		values := make([]interface{}, 0, count)
		for i := uint32(0); i < count; i++ {
			entry, err := readEntry(s)
			if err != nil {
				return nil, err
			}
			values = append(values, entry.Value)
		}
		return values, nil

	case DateKind:
		millis, err := s.ReadFloat64()
		if err != nil {
			return nil, err
		}
		tz, err := s.ReadInt16()
		if err != nil {
			return nil, err
		}
		return Date{
			Time:     time.UnixMilli(int64(millis)).UTC(),
			TzOffset: tz,
		}, nil
	}

	return nil, errors.Errorf("unknown marker 0x%02x", byte(kind))
}
