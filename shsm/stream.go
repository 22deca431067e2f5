package shsm

import (
	"bytes"
	"io"
	"math"
	"unicode/utf8"

	"github.com/anaminus/parse"
	"github.com/siafile/siafile"
	"github.com/siafile/siafile/errors"
	xunicode "golang.org/x/text/encoding/unicode"
)

// reader wraps a cursor over an in-memory file. The first failure is recorded
// as a DataError; every read method returns true once a failure occurred.
type reader struct {
	fr   *parse.BinaryReader
	size int64

	strictStrings bool

	warn errors.Errors
	err  error
}

func newReader(b []byte) *reader {
	return &reader{
		fr:   parse.NewBinaryReader(bytes.NewReader(b)),
		size: int64(len(b)),
	}
}

func (r *reader) offset() int64 {
	return r.fr.N()
}

func (r *reader) remaining() int64 {
	return r.size - r.fr.N()
}

// fail records err as occurring at off while reading field.
func (r *reader) fail(off int64, field string, err error) bool {
	if r.err == nil {
		r.err = DataError{Offset: off, Field: field, Cause: err}
	}
	return true
}

// check records a failure of the cursor, if any.
func (r *reader) check(off int64, field string, failed bool) bool {
	if !failed {
		return false
	}
	err := r.fr.Err()
	if err == nil || err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return r.fail(off, field, err)
}

// need fails if fewer than n bytes remain. Lengths read from the file are
// checked with need before anything is allocated for them.
func (r *reader) need(off int64, field string, n int64) bool {
	if r.err != nil {
		return true
	}
	if n < 0 || n > r.remaining() {
		return r.fail(off, field, io.ErrUnexpectedEOF)
	}
	return false
}

func (r *reader) number(field string, v interface{}) bool {
	if r.err != nil {
		return true
	}
	off := r.offset()
	return r.check(off, field, r.fr.Number(v))
}

func (r *reader) bytes(field string, p []byte) bool {
	if r.err != nil {
		return true
	}
	off := r.offset()
	return r.check(off, field, r.fr.Bytes(p))
}

// count reads a u32 count of elements that each occupy at least size bytes.
func (r *reader) count(field string, size int64, n *uint32) bool {
	off := r.offset()
	if r.number(field, n) {
		return true
	}
	return r.need(off, field, int64(*n)*size)
}

// text reads n bytes as a string. Ill-formed UTF-8 is replaced and reported
// as a warning, or as an error when strings are strict.
func (r *reader) text(field string, n int64, s *string) bool {
	off := r.offset()
	if r.need(off, field, n) {
		return true
	}
	b := make([]byte, n)
	if r.bytes(field, b) {
		return true
	}
	if utf8.Valid(b) {
		*s = string(b)
		return false
	}
	w := InvalidUTF8Warning{Offset: off, Field: field}
	if r.strictStrings {
		return r.fail(off, field, w)
	}
	v, err := xunicode.UTF8.NewDecoder().Bytes(b)
	if err != nil {
		return r.fail(off, field, err)
	}
	r.warn = r.warn.Append(w)
	*s = string(v)
	return false
}

// string reads a string with a u32 length prefix.
func (r *reader) string(field string, s *string) bool {
	var length uint32
	if r.number(field, &length) {
		return true
	}
	return r.text(field, int64(length), s)
}

// shortString reads a string with a u8 length prefix.
func (r *reader) shortString(field string, s *string) bool {
	var length uint8
	if r.number(field, &length) {
		return true
	}
	return r.text(field, int64(length), s)
}

////////////////////////////////////////////////////////////////

// writer wraps a cursor over an in-memory buffer. The first failure is
// recorded as an EncodeError; every write method returns true once a failure
// occurred.
type writer struct {
	fw  *parse.BinaryWriter
	buf bytes.Buffer
	err error
}

func newWriter() *writer {
	w := &writer{}
	w.fw = parse.NewBinaryWriter(&w.buf)
	return w
}

func (w *writer) fail(field string, err error) bool {
	if w.err == nil {
		w.err = EncodeError{Field: field, Cause: err}
	}
	return true
}

func (w *writer) number(field string, v interface{}) bool {
	if w.err != nil {
		return true
	}
	if w.fw.Number(v) {
		return w.fail(field, w.fw.Err())
	}
	return false
}

func (w *writer) bytes(field string, p []byte) bool {
	if w.err != nil {
		return true
	}
	if w.fw.Bytes(p) {
		return w.fail(field, w.fw.Err())
	}
	return false
}

// count writes n as a u32.
func (w *writer) count(field string, n int) bool {
	if uint64(n) > math.MaxUint32 {
		return w.fail(field, ErrTooMany)
	}
	return w.number(field, uint32(n))
}

// shortCount writes n as a u8.
func (w *writer) shortCount(field string, n int) bool {
	if n > math.MaxUint8 {
		return w.fail(field, ErrTooMany)
	}
	return w.number(field, uint8(n))
}

func (w *writer) string(field string, s string) bool {
	if uint64(len(s)) > math.MaxUint32 {
		return w.fail(field, ErrStringTooLong)
	}
	if w.number(field, uint32(len(s))) {
		return true
	}
	return w.bytes(field, []byte(s))
}

func (w *writer) shortString(field string, s string) bool {
	if len(s) > math.MaxUint8 {
		return w.fail(field, ErrStringTooLong)
	}
	if w.number(field, uint8(len(s))) {
		return true
	}
	return w.bytes(field, []byte(s))
}

// fixedString writes s padded with zeros or truncated to n bytes.
func (w *writer) fixedString(field string, n int, s string) bool {
	b := make([]byte, n)
	copy(b, s)
	return w.bytes(field, b)
}

func (r *reader) vector3(field string, v *siafile.Vector3) bool {
	return r.number(field, &v.X) ||
		r.number(field, &v.Y) ||
		r.number(field, &v.Z)
}

func (w *writer) vector3(field string, v siafile.Vector3) bool {
	return w.number(field, v.X) ||
		w.number(field, v.Y) ||
		w.number(field, v.Z)
}
