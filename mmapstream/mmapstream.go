// Package mmapstream provides byte streams seeded from memory mapped
// files, for codecs that work over message buffers persisted on disk.
package mmapstream

import (
	"os"
	"path"

	"github.com/edsrzf/mmap-go"
	"github.com/pkg/errors"

	"github.com/amfkit/bytestream"
)

// MappedStream is a Stream whose initial contents come from a memory
// mapped file. The stream owns a private copy of the mapping so it can
// grow freely; Sync pushes the mapped prefix of the contents back.
type MappedStream struct {
	*bytestream.Stream
	m    mmap.MMap
	f    *os.File
	loc  string // location of the memory mapped file
	size int    // size in bytes
}

// Create will create (replacing any existing file) a zero-filled file
// of the given size, map it, and return a stream over the mapping.
func Create(loc string, size int) (*MappedStream, error) {
	if _, err := os.Stat(loc); err == nil {
		err = os.Remove(loc)
		if err != nil {
			return nil, err
		}
	}

	// ensure destination directory exists
	dir := path.Dir(loc)
	err := os.MkdirAll(dir, 0700)
	if err != nil {
		return nil, err
	}

	f, err := os.OpenFile(loc, os.O_CREATE|os.O_RDWR|os.O_EXCL, 0644)
	if err != nil {
		return nil, err
	}

	l, err := f.Write(make([]byte, size))
	if err != nil {
		return nil, err
	}
	if l < size {
		return nil, errors.Errorf("could not initialize %d bytes", size)
	}

	return open(f, loc)
}

// Open maps an existing file and returns a stream over its contents.
func Open(loc string) (*MappedStream, error) {
	f, err := os.OpenFile(loc, os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}

	return open(f, loc)
}

func open(f *os.File, loc string) (*MappedStream, error) {
	m, err := mmap.Map(f, mmap.RDWR, 0)
	if err != nil {
		f.Close()
		return nil, errors.Wrap(err, "could not map file")
	}

	return &MappedStream{
		Stream: bytestream.NewFromBytes(m),
		m:      m,
		f:      f,
		loc:    loc,
		size:   len(m),
	}, nil
}

// Size returns the size of the backing mapping in bytes.
func (ms *MappedStream) Size() int { return ms.size }

// Sync copies the stream contents back into the mapping and flushes
// them to the file. Contents the stream has grown beyond the mapped
// size do not fit and are not synced.
func (ms *MappedStream) Sync() error {
	copy(ms.m, ms.Stream.Bytes())
	return errors.Wrap(ms.m.Flush(), "could not flush mapping")
}

// Unmap will manually delete the memory mapping of the backing file
func (ms *MappedStream) Unmap(removefile bool) error {
	if err := ms.m.Unmap(); err != nil {
		return err
	}

	if err := ms.f.Close(); err != nil {
		return err
	}

	if removefile {
		if err := os.Remove(ms.loc); err != nil {
			return err
		}
	}

	return nil
}
