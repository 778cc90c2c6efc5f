// Package bytestream implements the endian-aware, bounds-checked byte
// stream underneath an AMF style wire codec.
//
// initially tried to build the codecs directly over bytes.Buffer, but
// that only ever writes at the end and cannot seek, while a wire codec
// constantly needs to jump back and patch length prefixes it could not
// know up front
//
// this implements a growable in-memory buffer with a single read/write
// cursor, a selectable byte order, and a family of fixed-width typed
// accessors that validate ranges before writing and available bytes
// before reading, so the codec layer above never has to reason about
// truncated or garbage values
package bytestream

import (
	"io"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Version is the last tagged version of the package
const Version = "1.0.0"

// Stream is a randomly seekable, growable byte buffer with a combined
// read/write cursor. Writes overwrite from the cursor and extend the
// buffer as needed. A Stream is not safe for concurrent use.
type Stream struct {
	buf    []byte
	pos    int
	endian Endian
	codecs codecTable
}

// New creates an empty Stream in network byte order.
func New() *Stream {
	return &Stream{
		endian: EndianNetwork,
		codecs: compileCodecs(EndianNetwork),
	}
}

// NewFromBytes creates a Stream holding a copy of data, cursor at 0.
func NewFromBytes(data []byte) *Stream {
	s := New()
	s.buf = append(s.buf, data...)
	return s
}

// NewFromString creates a Stream holding the UTF-8 bytes of text.
func NewFromString(text string) *Stream {
	s := New()
	s.buf = []byte(text)
	return s
}

// NewFromReader creates a Stream from the full contents of src. The
// source is read from its beginning regardless of its current offset,
// and its offset is restored afterwards. The capture is eager; the
// Stream holds no reference to src once construction returns.
func NewFromReader(src io.ReadSeeker) (*Stream, error) {
	data, err := drain(src)
	if err != nil {
		return nil, err
	}

	s := New()
	s.buf = data
	return s, nil
}

// drain captures the entire contents of src and puts its offset back
// where it was. If another consumer moves src concurrently the restored
// offset is whatever was observed here; callers must not share src.
func drain(src io.ReadSeeker) ([]byte, error) {
	old, err := src.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, errors.Wrap(err, "could not record source position")
	}

	if _, err = src.Seek(0, io.SeekStart); err != nil {
		return nil, errors.Wrap(err, "could not rewind source")
	}

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, errors.Wrap(err, "could not capture source contents")
	}

	if _, err = src.Seek(old, io.SeekStart); err != nil {
		return nil, errors.Wrap(err, "could not restore source position")
	}

	if logging {
		logger.Info("captured source contents", zap.Int("bytes", len(data)))
	}

	return data, nil
}

// Len returns the number of bytes currently stored.
func (s *Stream) Len() int { return len(s.buf) }

// Tell returns the current cursor position.
func (s *Stream) Tell() int64 { return int64(s.pos) }

// Remaining returns the number of unread bytes after the cursor.
func (s *Stream) Remaining() int { return len(s.buf) - s.pos }

// AtEOF reports whether the cursor sits exactly at the end of the
// stream.
func (s *Stream) AtEOF() bool { return s.pos == len(s.buf) }

// Bytes returns a copy of the full stream contents, independent of the
// cursor position.
func (s *Stream) Bytes() []byte {
	out := make([]byte, len(s.buf))
	copy(out, s.buf)
	return out
}

// Seek repositions the cursor using the io.Seek* whence constants and
// returns the new absolute position. A position outside [0, Len()]
// fails with ErrValue and leaves the cursor where it was.
func (s *Stream) Seek(offset int64, whence int) (int64, error) {
	var base int64
	switch whence {
	case io.SeekStart:
		base = 0
	case io.SeekCurrent:
		base = int64(s.pos)
	case io.SeekEnd:
		base = int64(len(s.buf))
	default:
		return 0, errors.Wrapf(ErrValue, "unknown seek whence %d", whence)
	}

	abs := base + offset
	if abs < 0 || abs > int64(len(s.buf)) {
		return 0, errors.Wrapf(ErrValue, "seek position %d outside stream of length %d", abs, len(s.buf))
	}

	s.pos = int(abs)
	return abs, nil
}

// MustSeek will try to reposition the cursor and panic on error.
func (s *Stream) MustSeek(offset int64, whence int) int64 {
	pos, err := s.Seek(offset, whence)
	if err != nil {
		panic(err)
	}
	return pos
}

// Truncate discards all stored bytes at and beyond size. The cursor is
// clamped so it never points past the new end.
func (s *Stream) Truncate(size int) {
	if size < 0 {
		size = 0
	}
	if size > len(s.buf) {
		size = len(s.buf)
	}

	s.buf = s.buf[:size]
	if s.pos > size {
		s.pos = size
	}
}

// grow makes room for n more bytes at the cursor and returns the write
// window covering exactly those bytes.
func (s *Stream) grow(n int) []byte {
	need := s.pos + n
	if need > len(s.buf) {
		if need <= cap(s.buf) {
			s.buf = s.buf[:need]
		} else {
			nb := make([]byte, need, 2*need)
			copy(nb, s.buf)
			s.buf = nb
		}
	}
	return s.buf[s.pos : s.pos+n]
}

// Write stores p at the cursor, overwriting existing bytes and
// extending the stream as needed, and advances the cursor past it.
// It never fails; the error return satisfies io.Writer.
func (s *Stream) Write(p []byte) (int, error) {
	copy(s.grow(len(p)), p)
	s.pos += len(p)
	return len(p), nil
}

// ReadBytes reads and returns the next n bytes, advancing the cursor.
// n == -1 reads everything up to the end of the stream. n == 0 returns
// an empty slice without touching the cursor, even at end of stream.
// Reading at end of stream, asking for more bytes than remain, or
// passing n < -1 fails with ErrIO.
func (s *Stream) ReadBytes(n int) ([]byte, error) {
	if n == 0 {
		return []byte{}, nil
	}
	if n < -1 {
		return nil, errors.Wrapf(ErrIO, "invalid read length %d", n)
	}
	if s.AtEOF() {
		return nil, errors.Wrap(ErrIO, "attempted to read but already at the end")
	}
	if n == -1 {
		n = s.Remaining()
	}
	if n > s.Remaining() {
		return nil, errors.Wrapf(ErrIO, "attempted to read %d bytes but only %d remain", n, s.Remaining())
	}

	out := make([]byte, n)
	copy(out, s.buf[s.pos:])
	s.pos += n
	return out, nil
}

// Peek returns up to size bytes ahead of the cursor without consuming
// them. size == -1 peeks to the end of the stream. Peeking past the end
// is not an error; only the available bytes come back. size < -1 fails
// with ErrValue.
func (s *Stream) Peek(size int) ([]byte, error) {
	if size == -1 {
		size = s.Remaining()
	}
	if size < -1 {
		return nil, errors.Wrapf(ErrValue, "cannot peek backwards (%d)", size)
	}
	if size > s.Remaining() {
		size = s.Remaining()
	}

	out := make([]byte, size)
	copy(out, s.buf[s.pos:])
	return out, nil
}

// Append adds data at the logical end of the stream. The cursor does
// not move.
func (s *Stream) Append(data []byte) {
	s.buf = append(s.buf, data...)
}

// AppendString appends the UTF-8 bytes of text without moving the
// cursor.
func (s *Stream) AppendString(text string) {
	s.buf = append(s.buf, text...)
}

// AppendFrom appends the full contents of src without moving the
// cursor. Like NewFromReader it captures eagerly, reading src from the
// beginning and restoring its offset afterwards.
func (s *Stream) AppendFrom(src io.ReadSeeker) error {
	data, err := drain(src)
	if err != nil {
		return err
	}

	s.buf = append(s.buf, data...)
	return nil
}

// Consume discards everything before the cursor, shifting the unread
// remainder to offset 0 and resetting the cursor. Long-lived streams
// that are read incrementally call this to bound their memory growth.
func (s *Stream) Consume() {
	if s.pos == 0 {
		return
	}

	n := copy(s.buf, s.buf[s.pos:])
	s.buf = s.buf[:n]
	s.pos = 0
}

// Concat returns a new Stream holding the receiver's bytes followed by
// other's bytes. Neither operand's cursor matters or moves; the result
// starts at cursor 0 in network byte order.
func (s *Stream) Concat(other *Stream) *Stream {
	n := New()
	n.buf = make([]byte, 0, len(s.buf)+len(other.buf))
	n.buf = append(n.buf, s.buf...)
	n.buf = append(n.buf, other.buf...)
	return n
}
