package model

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Records use a fixed little-endian binary layout: one layout version byte,
// then fields in declaration order. Strings and lists are u32 length-prefixed;
// optional fields carry a one-byte presence tag. A reader needs no metadata
// beyond the layout version to decode a record.

type recordWriter struct {
	buf bytes.Buffer
}

func newRecordWriter(layoutVersion uint8) *recordWriter {
	w := &recordWriter{}
	w.buf.WriteByte(layoutVersion)
	return w
}

func (w *recordWriter) u8(v uint8) {
	w.buf.WriteByte(v)
}

func (w *recordWriter) boolean(v bool) {
	if v {
		w.buf.WriteByte(1)
	} else {
		w.buf.WriteByte(0)
	}
}

func (w *recordWriter) u64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	w.buf.Write(b[:])
}

func (w *recordWriter) i64(v int64) {
	w.u64(uint64(v))
}

func (w *recordWriter) str(s string) {
	var n [4]byte
	binary.LittleEndian.PutUint32(n[:], uint32(len(s)))
	w.buf.Write(n[:])
	w.buf.WriteString(s)
}

func (w *recordWriter) u64s(vs []uint64) {
	var n [4]byte
	binary.LittleEndian.PutUint32(n[:], uint32(len(vs)))
	w.buf.Write(n[:])
	for _, v := range vs {
		w.u64(v)
	}
}

// optI64 writes a presence tag followed by the value when present.
func (w *recordWriter) optI64(v *int64) {
	if v == nil {
		w.buf.WriteByte(0)
		return
	}
	w.buf.WriteByte(1)
	w.i64(*v)
}

func (w *recordWriter) bytes() []byte {
	return w.buf.Bytes()
}

type recordReader struct {
	data []byte
	pos  int
	err  error
}

func newRecordReader(data []byte, wantVersion uint8) (*recordReader, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty record")
	}
	if data[0] != wantVersion {
		return nil, fmt.Errorf("unknown record layout version %d", data[0])
	}
	return &recordReader{data: data, pos: 1}, nil
}

func (r *recordReader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if r.pos+n > len(r.data) {
		r.err = fmt.Errorf("record truncated at offset %d", r.pos)
		return nil
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b
}

func (r *recordReader) u8() uint8 {
	b := r.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (r *recordReader) boolean() bool {
	return r.u8() == 1
}

func (r *recordReader) u64() uint64 {
	b := r.take(8)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

func (r *recordReader) i64() int64 {
	return int64(r.u64())
}

func (r *recordReader) str() string {
	n := r.take(4)
	if n == nil {
		return ""
	}
	b := r.take(int(binary.LittleEndian.Uint32(n)))
	if b == nil {
		return ""
	}
	return string(b)
}

func (r *recordReader) u64list() []uint64 {
	n := r.take(4)
	if n == nil {
		return nil
	}
	count := int(binary.LittleEndian.Uint32(n))
	vs := make([]uint64, 0, count)
	for i := 0; i < count; i++ {
		vs = append(vs, r.u64())
	}
	return vs
}

func (r *recordReader) optI64() *int64 {
	if r.u8() == 0 {
		return nil
	}
	v := r.i64()
	return &v
}

// finish reports any accumulated decode error and rejects trailing bytes.
func (r *recordReader) finish() error {
	if r.err != nil {
		return r.err
	}
	if r.pos != len(r.data) {
		return fmt.Errorf("record has %d trailing bytes", len(r.data)-r.pos)
	}
	return nil
}
