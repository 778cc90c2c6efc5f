package bytestream

import (
	"bytes"
	"io"
	"math"
	"testing"

	"github.com/pkg/errors"
)

func TestUint8RoundTrip(t *testing.T) {
	cases := []int64{0, 1, 127, 128, 200, 255}

	for _, val := range cases {
		s := New()

		if err := s.WriteUint8(val); err != nil {
			t.Error(err)
			return
		}
		if s.Tell() != 1 {
			t.Error("Not writing 1 byte for uint8")
			return
		}

		s.MustSeek(0, io.SeekStart)
		got, err := s.ReadUint8()
		if err != nil {
			t.Error(err)
			return
		}
		if int64(got) != val {
			t.Errorf("expected %v, got %v", val, got)
		}
	}
}

func TestInt8RoundTrip(t *testing.T) {
	cases := []int64{-128, -1, 0, 1, 127}

	for _, val := range cases {
		s := New()

		if err := s.WriteInt8(val); err != nil {
			t.Error(err)
			return
		}

		s.MustSeek(0, io.SeekStart)
		got, err := s.ReadInt8()
		if err != nil {
			t.Error(err)
			return
		}
		if int64(got) != val {
			t.Errorf("expected %v, got %v", val, got)
		}
	}
}

func TestUint16RoundTrip(t *testing.T) {
	cases := []int64{0, 1, 255, 256, 32767, 65535}

	for _, e := range []Endian{EndianBig, EndianLittle, EndianNetwork, EndianNative} {
		for _, val := range cases {
			s := New()
			if err := s.SetEndian(e); err != nil {
				t.Fatal(err)
			}

			if err := s.WriteUint16(val); err != nil {
				t.Error(err)
				return
			}
			if s.Tell() != 2 {
				t.Error("Not writing 2 bytes for uint16")
				return
			}

			s.MustSeek(0, io.SeekStart)
			got, err := s.ReadUint16()
			if err != nil {
				t.Error(err)
				return
			}
			if int64(got) != val {
				t.Errorf("endian %c: expected %v, got %v", e, val, got)
			}
		}
	}
}

func TestInt16RoundTrip(t *testing.T) {
	cases := []int64{-32768, -1, 0, 1, 32767}

	for _, e := range []Endian{EndianBig, EndianLittle} {
		for _, val := range cases {
			s := New()
			if err := s.SetEndian(e); err != nil {
				t.Fatal(err)
			}

			if err := s.WriteInt16(val); err != nil {
				t.Error(err)
				return
			}

			s.MustSeek(0, io.SeekStart)
			got, err := s.ReadInt16()
			if err != nil {
				t.Error(err)
				return
			}
			if int64(got) != val {
				t.Errorf("endian %c: expected %v, got %v", e, val, got)
			}
		}
	}
}

func TestUint32RoundTrip(t *testing.T) {
	cases := []int64{0, 1, 65535, 65536, 2147483647, 4294967295}

	for _, e := range []Endian{EndianBig, EndianLittle} {
		for _, val := range cases {
			s := New()
			if err := s.SetEndian(e); err != nil {
				t.Fatal(err)
			}

			if err := s.WriteUint32(val); err != nil {
				t.Error(err)
				return
			}
			if s.Tell() != 4 {
				t.Error("Not writing 4 bytes for uint32")
				return
			}

			s.MustSeek(0, io.SeekStart)
			got, err := s.ReadUint32()
			if err != nil {
				t.Error(err)
				return
			}
			if int64(got) != val {
				t.Errorf("endian %c: expected %v, got %v", e, val, got)
			}
		}
	}
}

func TestInt32RoundTrip(t *testing.T) {
	cases := []int64{-2147483648, -1, 0, 1, 2147483647}

	for _, e := range []Endian{EndianBig, EndianLittle} {
		for _, val := range cases {
			s := New()
			if err := s.SetEndian(e); err != nil {
				t.Fatal(err)
			}

			if err := s.WriteInt32(val); err != nil {
				t.Error(err)
				return
			}

			s.MustSeek(0, io.SeekStart)
			got, err := s.ReadInt32()
			if err != nil {
				t.Error(err)
				return
			}
			if int64(got) != val {
				t.Errorf("endian %c: expected %v, got %v", e, val, got)
			}
		}
	}
}

func TestWriteRangeRejection(t *testing.T) {
	cases := []struct {
		name  string
		write func(s *Stream, v int64) error
		vals  []int64
	}{
		{"uint8", (*Stream).WriteUint8, []int64{-1, 256}},
		{"int8", (*Stream).WriteInt8, []int64{-129, 128}},
		{"uint16", (*Stream).WriteUint16, []int64{-1, 65536}},
		{"int16", (*Stream).WriteInt16, []int64{-32769, 32768}},
		{"uint24", (*Stream).WriteUint24, []int64{-1, 0x1000000}},
		{"int24", (*Stream).WriteInt24, []int64{-8388609, 8388608}},
		{"uint32", (*Stream).WriteUint32, []int64{-1, 4294967296}},
		{"int32", (*Stream).WriteInt32, []int64{-2147483649, 2147483648}},
	}

	for _, c := range cases {
		for _, v := range c.vals {
			s := New()

			err := c.write(s, v)
			if errors.Cause(err) != ErrOverflow {
				t.Errorf("%v: expected ErrOverflow for %v, got %v", c.name, v, err)
			}
			if s.Len() != 0 || s.Tell() != 0 {
				t.Errorf("%v: a rejected write must not emit any bytes", c.name)
			}
		}
	}
}

func TestReadShortData(t *testing.T) {
	s := NewFromBytes([]byte{1, 2, 3})
	s.MustSeek(2, io.SeekStart)

	if _, err := s.ReadUint16(); errors.Cause(err) != ErrIO {
		t.Errorf("expected ErrIO for a short uint16, got %v", err)
	}
	if _, err := s.ReadUint24(); errors.Cause(err) != ErrIO {
		t.Errorf("expected ErrIO for a short uint24, got %v", err)
	}
	if _, err := s.ReadUint32(); errors.Cause(err) != ErrIO {
		t.Errorf("expected ErrIO for a short uint32, got %v", err)
	}
	if _, err := s.ReadFloat64(); errors.Cause(err) != ErrIO {
		t.Errorf("expected ErrIO for a short float64, got %v", err)
	}

	if s.Tell() != 2 {
		t.Error("a failed typed read must not consume anything")
	}
}

func TestUint24Layout(t *testing.T) {
	s := New()
	if err := s.SetEndian(EndianBig); err != nil {
		t.Fatal(err)
	}
	if err := s.WriteUint24(1); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(s.buf, []byte{0x00, 0x00, 0x01}) {
		t.Errorf("big endian uint24(1): expected 00 00 01, got %x", s.buf)
	}

	s = New()
	if err := s.SetEndian(EndianLittle); err != nil {
		t.Fatal(err)
	}
	if err := s.WriteUint24(1); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(s.buf, []byte{0x01, 0x00, 0x00}) {
		t.Errorf("little endian uint24(1): expected 01 00 00, got %x", s.buf)
	}
}

func TestInt24SignRoundTrip(t *testing.T) {
	s := New()

	if err := s.WriteInt24(-1); err != nil {
		t.Fatal(err)
	}

	// -1 travels as the unsigned 24 bit value 0xFFFFFF
	if !bytes.Equal(s.buf, []byte{0xFF, 0xFF, 0xFF}) {
		t.Errorf("expected ff ff ff on the wire, got %x", s.buf)
	}

	s.MustSeek(0, io.SeekStart)
	got, err := s.ReadInt24()
	if err != nil {
		t.Fatal(err)
	}
	if got != -1 {
		t.Errorf("expected -1, got %v", got)
	}
}

func TestInt24RoundTrip(t *testing.T) {
	cases := []int64{-8388608, -1, 0, 1, 8388607}

	for _, e := range []Endian{EndianBig, EndianLittle} {
		for _, val := range cases {
			s := New()
			if err := s.SetEndian(e); err != nil {
				t.Fatal(err)
			}

			if err := s.WriteInt24(val); err != nil {
				t.Error(err)
				return
			}
			if s.Tell() != 3 {
				t.Error("Not writing 3 bytes for int24")
				return
			}

			s.MustSeek(0, io.SeekStart)
			got, err := s.ReadInt24()
			if err != nil {
				t.Error(err)
				return
			}
			if int64(got) != val {
				t.Errorf("endian %c: expected %v, got %v", e, val, got)
			}
		}
	}
}

func TestUint24RoundTrip(t *testing.T) {
	cases := []int64{0, 1, 255, 65536, 0xFFFFFF}

	for _, e := range []Endian{EndianBig, EndianLittle, EndianNative} {
		for _, val := range cases {
			s := New()
			if err := s.SetEndian(e); err != nil {
				t.Fatal(err)
			}

			if err := s.WriteUint24(val); err != nil {
				t.Error(err)
				return
			}

			s.MustSeek(0, io.SeekStart)
			got, err := s.ReadUint24()
			if err != nil {
				t.Error(err)
				return
			}
			if int64(got) != val {
				t.Errorf("endian %c: expected %v, got %v", e, val, got)
			}
		}
	}
}

func TestFloat32RoundTrip(t *testing.T) {
	cases := []float64{0, 1, -1, 0.5, 3.141592653589793}

	s := New()
	if err := s.WriteFloat32(1); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(s.buf, []byte{0x3F, 0x80, 0x00, 0x00}) {
		t.Errorf("big endian float32(1): expected 3f800000, got %x", s.buf)
	}

	for _, e := range []Endian{EndianBig, EndianLittle} {
		for _, val := range cases {
			s := New()
			if err := s.SetEndian(e); err != nil {
				t.Fatal(err)
			}

			if err := s.WriteFloat32(val); err != nil {
				t.Error(err)
				return
			}
			if s.Tell() != 4 {
				t.Error("Not writing 4 bytes for float32")
				return
			}

			s.MustSeek(0, io.SeekStart)
			got, err := s.ReadFloat32()
			if err != nil {
				t.Error(err)
				return
			}
			if got != float32(val) {
				t.Errorf("endian %c: expected %v, got %v", e, float32(val), got)
			}
		}
	}
}

func TestFloat64RoundTrip(t *testing.T) {
	cases := []float64{0, 1, -1, 0.5, 3.141592653589793, math.MaxFloat64}

	for _, e := range []Endian{EndianBig, EndianLittle} {
		for _, val := range cases {
			s := New()
			if err := s.SetEndian(e); err != nil {
				t.Fatal(err)
			}

			if err := s.WriteFloat64(val); err != nil {
				t.Error(err)
				return
			}
			if s.Tell() != 8 {
				t.Error("Not writing 8 bytes for float64")
				return
			}

			s.MustSeek(0, io.SeekStart)
			got, err := s.ReadFloat64()
			if err != nil {
				t.Error(err)
				return
			}
			if got != val {
				t.Errorf("endian %c: expected %v, got %v", e, val, got)
			}
		}
	}
}

func TestFloat64NaN(t *testing.T) {
	s := New()
	if err := s.WriteFloat64(math.NaN()); err != nil {
		t.Fatal(err)
	}

	s.MustSeek(0, io.SeekStart)
	got, err := s.ReadFloat64()
	if err != nil {
		t.Fatal(err)
	}
	if !math.IsNaN(got) {
		t.Errorf("expected NaN back, got %v", got)
	}
}

func TestUTF8(t *testing.T) {
	cases := []string{"", "MMV", "héllo wörld", "日本語"}

	for _, val := range cases {
		s := New()

		if err := s.WriteUTF8(val); err != nil {
			t.Error(err)
			return
		}
		if s.Len() != len(val) {
			t.Errorf("expected %v bytes written, got %v", len(val), s.Len())
			return
		}

		s.MustSeek(0, io.SeekStart)
		got, err := s.ReadUTF8(len(val))
		if err != nil {
			t.Error(err)
			return
		}
		if got != val {
			t.Errorf("expected %q, got %q", val, got)
		}
	}
}

func TestUTF8Invalid(t *testing.T) {
	s := NewFromBytes([]byte{0xFF, 0xFE, 0xFD})

	if _, err := s.ReadUTF8(3); errors.Cause(err) != ErrValue {
		t.Errorf("expected ErrValue for malformed UTF-8, got %v", err)
	}
}

func TestUTF8PastEnd(t *testing.T) {
	s := NewFromBytes([]byte("ab"))

	if _, err := s.ReadUTF8(3); errors.Cause(err) != ErrIO {
		t.Errorf("expected ErrIO when the length exceeds the stream, got %v", err)
	}
}
