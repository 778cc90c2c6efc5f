// Package iostat instruments a byte stream with size distributions for
// its read and write traffic, so codec layers can see how a wire format
// actually exercises the stream underneath them.
package iostat

import (
	"github.com/codahale/hdrhistogram"
	"github.com/pkg/errors"

	"github.com/amfkit/bytestream"
)

// largest single operation the histograms can record, 1GB
const maxOpSize = 1 << 30

// Stats is a summary of one direction of recorded traffic.
type Stats struct {
	Count int64
	Mean  float64
	P50   int64
	P99   int64
	Max   int64
}

// Recorder wraps a Stream and records the byte count of every read and
// write that goes through it into HDR histograms. Operations performed
// directly on the underlying stream are not seen.
type Recorder struct {
	s      *bytestream.Stream
	reads  *hdrhistogram.Histogram
	writes *hdrhistogram.Histogram
}

// NewRecorder creates a Recorder over s.
func NewRecorder(s *bytestream.Stream) *Recorder {
	return &Recorder{
		s:      s,
		reads:  hdrhistogram.New(1, maxOpSize, 3),
		writes: hdrhistogram.New(1, maxOpSize, 3),
	}
}

// Stream returns the underlying stream.
func (r *Recorder) Stream() *bytestream.Stream { return r.s }

// RecordRead notes an n byte read performed outside the Recorder's own
// methods, such as a typed accessor called on the stream directly.
func (r *Recorder) RecordRead(n int) error {
	return errors.Wrap(r.reads.RecordValue(int64(n)), "could not record read size")
}

// RecordWrite notes an n byte write performed outside the Recorder's
// own methods.
func (r *Recorder) RecordWrite(n int) error {
	return errors.Wrap(r.writes.RecordValue(int64(n)), "could not record write size")
}

// Write forwards to the stream and records the written size.
func (r *Recorder) Write(p []byte) (int, error) {
	n, err := r.s.Write(p)
	if err != nil {
		return n, err
	}
	return n, r.RecordWrite(n)
}

// ReadBytes forwards to the stream and records the size actually read.
// Failed reads record nothing.
func (r *Recorder) ReadBytes(n int) ([]byte, error) {
	b, err := r.s.ReadBytes(n)
	if err != nil {
		return nil, err
	}
	return b, r.RecordRead(len(b))
}

// ReadStats summarizes the recorded read sizes.
func (r *Recorder) ReadStats() Stats { return summarize(r.reads) }

// WriteStats summarizes the recorded write sizes.
func (r *Recorder) WriteStats() Stats { return summarize(r.writes) }

// Reset discards everything recorded so far.
func (r *Recorder) Reset() {
	r.reads.Reset()
	r.writes.Reset()
}

func summarize(h *hdrhistogram.Histogram) Stats {
	return Stats{
		Count: h.TotalCount(),
		Mean:  h.Mean(),
		P50:   h.ValueAtQuantile(50),
		P99:   h.ValueAtQuantile(99),
		Max:   h.Max(),
	}
}
