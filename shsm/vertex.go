package shsm

import (
	"encoding/binary"
	"math"

	"github.com/siafile/siafile"
)

func getFloat(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}

func putFloat(b []byte, v float32) {
	binary.LittleEndian.PutUint32(b, math.Float32bits(v))
}

func getVector2(b []byte) siafile.Vector2 {
	return siafile.Vector2{X: getFloat(b[0:4]), Y: getFloat(b[4:8])}
}

func putVector2(b []byte, v siafile.Vector2) {
	putFloat(b[0:4], v.X)
	putFloat(b[4:8], v.Y)
}

func getVector3(b []byte) siafile.Vector3 {
	return siafile.Vector3{X: getFloat(b[0:4]), Y: getFloat(b[4:8]), Z: getFloat(b[8:12])}
}

func putVector3(b []byte, v siafile.Vector3) {
	putFloat(b[0:4], v.X)
	putFloat(b[4:8], v.Y)
	putFloat(b[8:12], v.Z)
}

// fieldCodec converts one attribute of a vertex. Each function receives a
// slice that begins at the attribute and is at least as long as it.
type fieldCodec struct {
	get func(b []byte, v *siafile.Vertex)
	put func(b []byte, v *siafile.Vertex)
}

var fieldCodecs = map[siafile.VertexField]fieldCodec{
	siafile.FieldPosition: {
		get: func(b []byte, v *siafile.Vertex) { v.Position = getVector3(b) },
		put: func(b []byte, v *siafile.Vertex) { putVector3(b, v.Position) },
	},
	siafile.FieldNormal: {
		get: func(b []byte, v *siafile.Vertex) { v.Normal = getVector3(b) },
		put: func(b []byte, v *siafile.Vertex) { putVector3(b, v.Normal) },
	},
	siafile.FieldUV1: {
		get: func(b []byte, v *siafile.Vertex) { v.UV1 = getVector2(b) },
		put: func(b []byte, v *siafile.Vertex) { putVector2(b, v.UV1) },
	},
	siafile.FieldUV2: {
		get: func(b []byte, v *siafile.Vertex) { v.UV2 = getVector2(b) },
		put: func(b []byte, v *siafile.Vertex) { putVector2(b, v.UV2) },
	},
	siafile.FieldUnknownA: {
		get: func(b []byte, v *siafile.Vertex) { copy(v.UnknownA[:], b) },
		put: func(b []byte, v *siafile.Vertex) { copy(b, v.UnknownA[:]) },
	},
	siafile.FieldTangent: {
		get: func(b []byte, v *siafile.Vertex) {
			v.Tangent = getVector3(b)
			copy(v.TangentTail[:], b[12:16])
		},
		put: func(b []byte, v *siafile.Vertex) {
			putVector3(b, v.Tangent)
			copy(b[12:16], v.TangentTail[:])
		},
	},
	siafile.FieldSkin: {
		get: func(b []byte, v *siafile.Vertex) {
			copy(v.BoneIDs[:], b[0:4])
			for i := range v.Weights {
				v.Weights[i] = getFloat(b[4+i*4:])
			}
		},
		put: func(b []byte, v *siafile.Vertex) {
			copy(b[0:4], v.BoneIDs[:])
			for i, w := range v.Weights {
				putFloat(b[4+i*4:], w)
			}
		},
	},
	siafile.FieldUnknownB: {
		get: func(b []byte, v *siafile.Vertex) {},
		put: func(b []byte, v *siafile.Vertex) {},
	},
	siafile.FieldUnknownC: {
		get: func(b []byte, v *siafile.Vertex) { copy(v.UnknownC[:], b) },
		put: func(b []byte, v *siafile.Vertex) { copy(b, v.UnknownC[:]) },
	},
	siafile.FieldUnknownD: {
		get: func(b []byte, v *siafile.Vertex) { copy(v.UnknownD[:], b) },
		put: func(b []byte, v *siafile.Vertex) { copy(b, v.UnknownD[:]) },
	},
}

// verticesFromBytes decodes len(vs) vertex records from b, which must hold
// exactly len(vs) records of the layout's stride.
func verticesFromBytes(b []byte, layout siafile.VertexLayout, vs []siafile.Vertex) {
	fields := layout.Fields()
	stride := layout.Stride()
	for i := range vs {
		rec := b[i*stride : i*stride+stride]
		for _, f := range fields {
			fieldCodecs[f].get(rec, &vs[i])
			rec = rec[f.Size():]
		}
	}
}

// verticesToBytes appends the records of vs to b. Attributes absent from the
// layout are not written.
func verticesToBytes(b []byte, layout siafile.VertexLayout, vs []siafile.Vertex) []byte {
	fields := layout.Fields()
	stride := layout.Stride()
	n := len(b)
	b = append(b, make([]byte, len(vs)*stride)...)
	for i := range vs {
		rec := b[n+i*stride : n+i*stride+stride]
		for _, f := range fields {
			fieldCodecs[f].put(rec, &vs[i])
			rec = rec[f.Size():]
		}
	}
	return b
}

////////////////////////////////////////////////////////////////

// trianglesFromBytes decodes len(ts) triangles from b using indices of the
// given width.
func trianglesFromBytes(b []byte, width int, ts []siafile.Triangle) {
	for i := range ts {
		for j := range ts[i] {
			k := (i*3 + j) * width
			if width == 2 {
				ts[i][j] = uint32(binary.LittleEndian.Uint16(b[k:]))
			} else {
				ts[i][j] = binary.LittleEndian.Uint32(b[k:])
			}
		}
	}
}

// trianglesToBytes appends ts to b using indices of the given width.
func trianglesToBytes(b []byte, width int, ts []siafile.Triangle) []byte {
	n := len(b)
	b = append(b, make([]byte, len(ts)*3*width)...)
	for i, t := range ts {
		for j, index := range t {
			k := n + (i*3+j)*width
			if width == 2 {
				binary.LittleEndian.PutUint16(b[k:], uint16(index))
			} else {
				binary.LittleEndian.PutUint32(b[k:], index)
			}
		}
	}
	return b
}
