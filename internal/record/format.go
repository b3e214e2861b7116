// Package record stores radar frames as a zstd-compressed stream of
// msgpack values: one Header followed by any number of Frames.
package record

import (
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"

	"ppi-radar.klederson.com/internal/radar"
)

// Extension is the file suffix used for recordings.
const Extension = ".msgpack.zst"

const formatVersion = 1

// Header describes the static part of a recording.
type Header struct {
	Version  int `msgpack:"version"`
	Rings    int `msgpack:"rings"`
	Radials  int `msgpack:"radials"`
	Segments int `msgpack:"segments"`

	// Packed x,y,r,g,b,a grid vertices.
	RingVertices   []float32 `msgpack:"ring_vertices"`
	RadialVertices []float32 `msgpack:"radial_vertices"`
}

// Target is the recorded state of one target.
type Target struct {
	ID       string  `msgpack:"id"`
	Angle    float32 `msgpack:"angle"`
	Radius   float32 `msgpack:"radius"`
	Detected bool    `msgpack:"detected"`
}

// Frame is one recorded update.
type Frame struct {
	Seq       int       `msgpack:"seq"`
	Time      float64   `msgpack:"time"` // seconds since the first frame
	Angle     float32   `msgpack:"angle"`
	Tolerance float32   `msgpack:"tolerance"`
	Sweep     []float32 `msgpack:"sweep"` // packed triangle fan
	Targets   []Target  `msgpack:"targets"`
	Messages  []string  `msgpack:"messages,omitempty"`
}

// Detected returns how many targets were lit in the frame.
func (f *Frame) Detected() int {
	n := 0
	for _, t := range f.Targets {
		if t.Detected {
			n++
		}
	}
	return n
}

// Writer encodes a recording.
type Writer struct {
	zw  *zstd.Encoder
	enc *msgpack.Encoder

	wroteHeader bool
}

func NewWriter(w io.Writer) (*Writer, error) {
	zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd writer: %w", err)
	}
	return &Writer{zw: zw, enc: msgpack.NewEncoder(zw)}, nil
}

// WriteHeader writes the header. It must be called once, before any frame.
func (w *Writer) WriteHeader(h Header) error {
	if w.wroteHeader {
		return errors.New("record: header already written")
	}
	h.Version = formatVersion
	if err := w.enc.Encode(&h); err != nil {
		return fmt.Errorf("failed to encode header: %w", err)
	}
	w.wroteHeader = true
	return nil
}

func (w *Writer) WriteFrame(f *Frame) error {
	if !w.wroteHeader {
		return errors.New("record: frame written before header")
	}
	if err := w.enc.Encode(f); err != nil {
		return fmt.Errorf("failed to encode frame %d: %w", f.Seq, err)
	}
	return nil
}

// Close flushes the compressed stream. It does not close the underlying
// writer.
func (w *Writer) Close() error {
	if err := w.zw.Close(); err != nil {
		return fmt.Errorf("failed to close zstd writer: %w", err)
	}
	return nil
}

// Reader decodes a recording.
type Reader struct {
	zr     *zstd.Decoder
	dec    *msgpack.Decoder
	header Header
}

// NewReader reads and checks the header.
func NewReader(r io.Reader) (*Reader, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd reader: %w", err)
	}
	rd := &Reader{zr: zr, dec: msgpack.NewDecoder(zr)}
	if err := rd.dec.Decode(&rd.header); err != nil {
		zr.Close()
		return nil, fmt.Errorf("failed to decode header: %w", err)
	}
	if rd.header.Version != formatVersion {
		zr.Close()
		return nil, fmt.Errorf("unsupported recording version %d", rd.header.Version)
	}
	return rd, nil
}

func (r *Reader) Header() Header {
	return r.header
}

// Next returns the next frame, or io.EOF at the end of the recording.
func (r *Reader) Next() (*Frame, error) {
	var f Frame
	if err := r.dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("failed to decode frame: %w", err)
	}
	return &f, nil
}

func (r *Reader) Close() {
	r.zr.Close()
}

// NewHeader captures a session's grid geometry.
func NewHeader(s *radar.Session) Header {
	l := s.Layout()
	return Header{
		Rings:          l.Rings,
		Radials:        l.Radials,
		Segments:       l.Segments,
		RingVertices:   radar.Pack(nil, s.Rings()),
		RadialVertices: radar.Pack(nil, s.Radials()),
	}
}

// NewFrame converts a session frame and the tracker's targets into a
// recorded frame.
func NewFrame(seq int, t float64, f radar.Frame, targets []radar.Target, msgs []string) *Frame {
	rf := &Frame{
		Seq:       seq,
		Time:      t,
		Angle:     f.Angle,
		Tolerance: f.Tolerance,
		Sweep:     radar.Pack(nil, f.Sweep.Vertices),
		Targets:   make([]Target, len(targets)),
		Messages:  msgs,
	}
	for i, tg := range targets {
		rf.Targets[i] = Target{ID: tg.ID, Angle: tg.Angle, Radius: tg.Radius, Detected: tg.Detected}
	}
	return rf
}
