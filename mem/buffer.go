package mem

import (
	"errors"
	"io"
)

// Buffer is a growable byte slice. Formatting code appends to it directly
// with strconv style functions.
type Buffer struct {
	data []byte
}

// Len returns the length of the buffer.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Cap returns the capacity of the buffer.
func (b *Buffer) Cap() int {
	return cap(b.data)
}

// Bytes returns the buffer, but keeps ownership.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Reset empties the buffer and keeps it's capacity.
func (b *Buffer) Reset() {
	b.data = b.data[:0]
}

// Append calls fn with the buffer and keeps whatever fn returns, e.g.
//
//	buf.Append(func(b []byte) []byte { return strconv.AppendInt(b, 42, 10) })
func (b *Buffer) Append(fn func([]byte) []byte) {
	b.data = fn(b.data)
}

// Write appends to the buffer.
func (b *Buffer) Write(p []byte) (int, error) {
	b.data = append(b.data, p...)
	return len(p), nil
}

// WriteByte appends a byte to the buffer.
func (b *Buffer) WriteByte(c byte) error {
	b.data = append(b.data, c)
	return nil
}

// WriteString appends a string to the buffer.
func (b *Buffer) WriteString(s string) (int, error) {
	b.data = append(b.data, s...)
	return len(s), nil
}

// WriteRepeat appends n times the byte c. Nothing is appended for n <= 0.
func (b *Buffer) WriteRepeat(c byte, n int) {
	for ; n > 0; n-- {
		b.data = append(b.data, c)
	}
}

// WriteTo writes the bytes to the writer.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b.data)
	return int64(n), err
}

// ReadFrom reads from the reader until EOF and appends to the buffer.
func (b *Buffer) ReadFrom(r io.Reader) (int64, error) {
	size := int64(0)

	for {
		if len(b.data) == cap(b.data) {
			b.data = append(b.data, 0)[:len(b.data)]
		}

		n, err := r.Read(b.data[len(b.data):cap(b.data)])
		if n != 0 {
			b.data = b.data[:len(b.data)+n]
			size += int64(n)
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				return size, nil
			}

			return size, err
		}

		if n == 0 {
			break
		}
	}

	return size, nil
}

// String returns the data in the buffer a string.
func (b *Buffer) String() string {
	return string(b.data)
}
