package stream

import (
	"errors"
	"fmt"
	"io"
)

var (
	// ErrReadFailed and ErrWriteFailed are reported when a callback
	// returns a negative count.
	ErrReadFailed  = errors.New("read failed")
	ErrWriteFailed = errors.New("write failed")
	// ErrBadCount is reported when a callback claims more bytes than
	// it was given.
	ErrBadCount = errors.New("invalid byte count")
)

// IOError reports a failed or short read or write on a stream.
type IOError struct {
	Op     string
	Offset int64
	Want   int
	Got    int
	Err    error
}

func (e *IOError) Unwrap() error {
	return e.Err
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s at offset %d (want %d, got %d): %s", e.Op, e.Offset, e.Want, e.Got, e.Err.Error())
}

// ReadFunc is a read capability: it fills p and returns the number of
// bytes read, 0 at end of stream or a negative number on failure.
type ReadFunc func(p []byte) int

func (f ReadFunc) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	n := f(p)
	switch {
	case n == 0:
		return 0, io.EOF
	case n < 0:
		return 0, ErrReadFailed
	case n > len(p):
		return 0, ErrBadCount
	}
	return n, nil
}

// WriteFunc is a write capability: it consumes p and returns the
// number of bytes written, negative on failure. Writing fewer than
// len(p) bytes is a short write.
type WriteFunc func(p []byte) int

func (f WriteFunc) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	n := f(p)
	switch {
	case n < 0:
		return 0, ErrWriteFailed
	case n > len(p):
		return 0, ErrBadCount
	case n < len(p):
		return n, io.ErrShortWrite
	}
	return n, nil
}

// Reader tracks the offset of an underlying reader and reports its
// failures as *IOError. io.EOF is passed through.
type Reader struct {
	r   io.Reader
	off int64
	err error
}

func NewReader(r io.Reader) *Reader {
	if sr, ok := r.(*Reader); ok {
		return sr
	}
	return &Reader{r: r}
}

func (r *Reader) Read(p []byte) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	n, err := r.r.Read(p)
	if n < 0 || n > len(p) {
		n, err = 0, ErrBadCount
	}
	r.off += int64(n)
	if err == nil || err == io.EOF {
		return n, err
	}
	r.err = ioErr("read", r.off, len(p), n, err)
	return n, r.err
}

// Offset returns the number of bytes read so far.
func (r *Reader) Offset() int64 {
	return r.off
}

// Writer tracks the offset of an underlying writer. A failed or short
// write is reported as *IOError and is final: the write is not retried
// and later writes return the same error.
type Writer struct {
	w   io.Writer
	off int64
	err error
}

func NewWriter(w io.Writer) *Writer {
	if sw, ok := w.(*Writer); ok {
		return sw
	}
	return &Writer{w: w}
}

func (w *Writer) Write(p []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	n, err := w.w.Write(p)
	if n < 0 || n > len(p) {
		n, err = 0, ErrBadCount
	}
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	start := w.off
	w.off += int64(n)
	if err == nil {
		return n, nil
	}
	w.err = ioErr("write", start, len(p), n, err)
	return n, w.err
}

// Offset returns the number of bytes written so far.
func (w *Writer) Offset() int64 {
	return w.off
}

// Err returns the error which stopped the writer, if any.
func (w *Writer) Err() error {
	return w.err
}

func ioErr(op string, off int64, want, got int, err error) error {
	var ioe *IOError
	if errors.As(err, &ioe) {
		return err
	}
	return &IOError{Op: op, Offset: off, Want: want, Got: got, Err: err}
}
