package iostat

import (
	"bytes"
	"testing"

	"github.com/amfkit/bytestream"
)

func TestRecorderWrites(t *testing.T) {
	r := NewRecorder(bytestream.New())

	sizes := []int{1, 2, 4, 8, 8, 8}
	total := 0
	for _, n := range sizes {
		if _, err := r.Write(make([]byte, n)); err != nil {
			t.Error(err)
			return
		}
		total += n
	}

	if r.Stream().Len() != total {
		t.Errorf("expected %v bytes in the stream, got %v", total, r.Stream().Len())
	}

	st := r.WriteStats()
	if st.Count != int64(len(sizes)) {
		t.Errorf("expected %v recorded writes, got %v", len(sizes), st.Count)
	}
	if st.Max != 8 {
		t.Errorf("expected max write of 8, got %v", st.Max)
	}
	if st.P50 != 4 && st.P50 != 8 {
		t.Errorf("unexpected p50 %v", st.P50)
	}
}

func TestRecorderReads(t *testing.T) {
	s := bytestream.NewFromBytes([]byte("abcdef"))
	r := NewRecorder(s)

	b, err := r.ReadBytes(2)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(b, []byte("ab")) {
		t.Errorf("expected 'ab', got %v", b)
	}

	if _, err = r.ReadBytes(-1); err != nil {
		t.Fatal(err)
	}

	st := r.ReadStats()
	if st.Count != 2 {
		t.Errorf("expected 2 recorded reads, got %v", st.Count)
	}
	if st.Max != 4 {
		t.Errorf("expected max read of 4, got %v", st.Max)
	}

	// failed reads record nothing
	if _, err = r.ReadBytes(1); err == nil {
		t.Error("expected an error reading at the end")
	}
	if r.ReadStats().Count != 2 {
		t.Error("a failed read must not be recorded")
	}
}

func TestRecorderReset(t *testing.T) {
	r := NewRecorder(bytestream.New())

	if _, err := r.Write([]byte{1, 2, 3}); err != nil {
		t.Fatal(err)
	}

	r.Reset()

	if r.WriteStats().Count != 0 {
		t.Error("expected no recorded writes after Reset")
	}
}
