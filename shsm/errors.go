package shsm

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// Indicates a nil model was passed to the encoder.
	ErrNilModel = errors.New("model is nil")
	// Indicates a nil mesh within a model.
	ErrNilMesh = errors.New("mesh is nil")
	// Indicates a nil material within a mesh.
	ErrNilMaterial = errors.New("material is nil")
	// Indicates a nil instance within a model.
	ErrNilInstance = errors.New("instance is nil")
	// Indicates a count that does not fit in its length prefix.
	ErrTooMany = errors.New("too many elements for length prefix")
	// Indicates a string that does not fit in its length prefix.
	ErrStringTooLong = errors.New("string too long for length prefix")
)

// sanitize renders b with unprintable bytes replaced by '.'.
func sanitize(b []byte) string {
	var s strings.Builder
	for _, c := range b {
		if 32 <= c && c <= 126 {
			s.WriteByte(c)
		} else {
			s.WriteByte('.')
		}
	}
	return s.String()
}

// ErrBadHeader indicates that the file does not begin with the expected
// header tag. The value is the actual bytes found.
type ErrBadHeader [4]byte

func (err ErrBadHeader) Error() string {
	return fmt.Sprintf("expected header %q, found %q (% 02X)", headerTag, sanitize(err[:]), err[:])
}

// ErrBadFooter indicates that the file does not end with the expected footer
// tag. The value is the actual bytes found.
type ErrBadFooter [4]byte

func (err ErrBadFooter) Error() string {
	return fmt.Sprintf("expected footer %q, found %q (% 02X)", footerTag, sanitize(err[:]), err[:])
}

// ErrUnknownTextureKind indicates a texture kind byte not known by the codec.
type ErrUnknownTextureKind uint8

func (err ErrUnknownTextureKind) Error() string {
	return fmt.Sprintf("unknown texture kind %d", uint8(err))
}

// ErrUnknownVertexType indicates a vertex layout bitfield that was not
// observed in shipped files. Only reported by a strict decoder.
type ErrUnknownVertexType uint32

func (err ErrUnknownVertexType) Error() string {
	return fmt.Sprintf("unknown vertex type %d (0x%X)", uint32(err), uint32(err))
}

// ErrUnknownMeshType indicates a mesh_type sub-type byte not known by the
// codec.
type ErrUnknownMeshType uint8

func (err ErrUnknownMeshType) Error() string {
	return fmt.Sprintf("unknown mesh type %d", uint8(err))
}

// ErrUnknownTerminalKind indicates a terminal record kind byte not known by
// the codec.
type ErrUnknownTerminalKind uint8

func (err ErrUnknownTerminalKind) Error() string {
	return fmt.Sprintf("unknown terminal record kind %d", uint8(err))
}

// ErrUnknownKind indicates a keyed terminal record with a kind string not
// known by the codec.
type ErrUnknownKind struct {
	// Tag is the record kind byte that preceded the kind string.
	Tag  uint8
	Kind string
}

func (err ErrUnknownKind) Error() string {
	return fmt.Sprintf("unknown kind %q for record kind %d", err.Kind, err.Tag)
}

// ErrIndexCount indicates a per-mesh index count that does not describe whole
// triangles.
type ErrIndexCount uint32

func (err ErrIndexCount) Error() string {
	return fmt.Sprintf("index count %d is not a multiple of 3", uint32(err))
}

// ErrUnsupportedRecord indicates a TerminalRecord implementation that the
// encoder does not know how to write.
type ErrUnsupportedRecord struct {
	Record interface{}
}

func (err ErrUnsupportedRecord) Error() string {
	return fmt.Sprintf("unsupported terminal record %T", err.Record)
}

// ErrSkinnedFlag indicates a skinning flag other than 0 or 1.
type ErrSkinnedFlag uint32

func (err ErrSkinnedFlag) Error() string {
	return fmt.Sprintf("invalid skinned flag %d", uint32(err))
}

// FaceIndexError indicates that a triangle refers to a vertex outside of the
// vertex list of its mesh.
type FaceIndexError struct {
	// Mesh is the position of the mesh within the model.
	Mesh int
	// Index is the offending vertex index.
	Index uint32
	// VertexCount is the length of the vertex list of the mesh.
	VertexCount int
}

func (err FaceIndexError) Error() string {
	return fmt.Sprintf("mesh #%d: face index %d out of range of %d vertices", err.Mesh, err.Index, err.VertexCount)
}

// CountError indicates that a count field does not agree with the counts it
// summarizes.
type CountError struct {
	Field    string
	Declared uint32
	Actual   uint32
}

func (err CountError) Error() string {
	return fmt.Sprintf("%s: declared %d, actual %d", err.Field, err.Declared, err.Actual)
}

// DataError wraps an error that occurred while decoding byte data.
type DataError struct {
	// Offset is the byte offset where the error occurred.
	Offset int64
	// Field names the value being read.
	Field string

	Cause error
}

func (err DataError) Error() string {
	var s strings.Builder
	s.WriteString("data error")
	if err.Offset >= 0 {
		s.WriteString(" at ")
		s.Write(strconv.AppendInt(nil, err.Offset, 10))
	}
	if err.Field != "" {
		s.WriteString(" (")
		s.WriteString(err.Field)
		s.WriteString(")")
	}
	if err.Cause != nil {
		s.WriteString(": ")
		s.WriteString(err.Cause.Error())
	}
	return s.String()
}

func (err DataError) Unwrap() error {
	return err.Cause
}

// EncodeError indicates that a model cannot be represented in the format.
type EncodeError struct {
	// Field names the value being written.
	Field string

	Cause error
}

func (err EncodeError) Error() string {
	if err.Cause == nil {
		return "encode " + err.Field
	}
	return "encode " + err.Field + ": " + err.Cause.Error()
}

func (err EncodeError) Unwrap() error {
	return err.Cause
}

// InvalidUTF8Warning indicates that a string contained ill-formed UTF-8, which
// was replaced. Encoding the decoded model will not reproduce the original
// bytes.
type InvalidUTF8Warning struct {
	Offset int64
	Field  string
}

func (w InvalidUTF8Warning) Error() string {
	return fmt.Sprintf("invalid UTF-8 in %s at %d replaced", w.Field, w.Offset)
}

// TrailingDataWarning indicates that bytes follow the footer.
type TrailingDataWarning struct {
	Offset int64
	Length int64
}

func (w TrailingDataWarning) Error() string {
	return fmt.Sprintf("%d bytes of trailing data at %d", w.Length, w.Offset)
}
