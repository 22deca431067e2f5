package shsm

import (
	"encoding/binary"
	"math"
)

// app concatenates values into a byte slice. Numbers are little-endian; an
// int is a single byte.
func app(bs ...interface{}) []byte {
	var s []byte
	for _, b := range bs {
		switch b := b.(type) {
		case string:
			s = append(s, b...)
		case []byte:
			s = append(s, b...)
		case byte:
			s = append(s, b)
		case int:
			s = append(s, byte(b))
		case uint16:
			s = append(s, byte(b), byte(b>>8))
		case uint32:
			var n [4]byte
			binary.LittleEndian.PutUint32(n[:], b)
			s = append(s, n[:]...)
		case float32:
			var n [4]byte
			binary.LittleEndian.PutUint32(n[:], math.Float32bits(b))
			s = append(s, n[:]...)
		case []uint16:
			for _, v := range b {
				s = append(s, byte(v), byte(v>>8))
			}
		default:
			panic("app: unsupported type")
		}
	}
	return s
}

// head returns the header and scalar sections.
func head(name string) []byte {
	return app(
		"SHSM", uint32(1), uint32(len(name)), name,
		make([]byte, 12), float32(2),
		float32(-1), float32(-1), float32(-1),
		float32(1), float32(1), float32(1),
	)
}

// tail returns the sections after the triangles with no skinning, the given
// terminal record, and no instances.
func tail(terminal ...interface{}) []byte {
	if len(terminal) == 0 {
		terminal = []interface{}{byte(0)}
	}
	return app(
		uint32(0), uint32(0),
		app(terminal...),
		uint32(0),
		"EHSM",
	)
}

// minimalFile has no meshes and a position-only layout.
func minimalFile() []byte {
	return app(
		head("x"),
		uint32(0),
		uint32(0),
		uint32(0), uint32(1),
		uint32(0),
		tail(),
	)
}

type meshFixture struct {
	textureKind byte
	indices     []uint16
}

// meshFile builds a file with one mesh of three position-only vertices. It
// also returns the offset of the first index.
func meshFile(f meshFixture) (b []byte, indexOffset int) {
	if f.indices == nil {
		f.indices = []uint16{0, 1, 2}
	}
	prefix := app(
		head("mesh"),
		// Mesh table.
		uint32(1),
		uint32(0), uint32(3), uint32(0), uint32(len(f.indices)), uint32(7), make([]byte, 8),
		// Mesh detail.
		uint32(1),
		make([]byte, 16),
		uint32(3), "mat",
		byte(1),
		uint32(4), "base", byte(1),
		f.textureKind, uint32(5), "a/tex",
		make([]byte, 64),
		// Vertices.
		uint32(3), uint32(1),
		float32(0), float32(0), float32(0),
		float32(1), float32(0), float32(0),
		float32(0), float32(1), float32(0),
		// Triangles.
		uint32(len(f.indices)),
	)
	return app(prefix, f.indices, tail()), len(prefix)
}
