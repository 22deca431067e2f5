package shsm

import (
	"io"

	"github.com/siafile/siafile"
	"github.com/siafile/siafile/errors"
)

// Encoder encodes a siafile.Model into a stream of bytes.
type Encoder struct{}

// Encode formats model and writes the result to w. Every count field is
// derived from the lengths of the lists in the model. Nothing is written to w
// if model cannot be represented.
func (e Encoder) Encode(w io.Writer, model *siafile.Model) error {
	if w == nil {
		return errors.New("nil writer")
	}
	b, err := e.encode(model)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// Encode formats model using a default Encoder.
func Encode(model *siafile.Model) ([]byte, error) {
	return Encoder{}.encode(model)
}

type encodeState struct {
	*writer
	model      *siafile.Model
	indexWidth int
}

type encodeStep func(s *encodeState) (failed bool)

var encodeSteps = [sectionDone]encodeStep{
	sectionHeader:     (*encodeState).header,
	sectionScalars:    (*encodeState).scalars,
	sectionMeshTable:  (*encodeState).meshTable,
	sectionMeshDetail: (*encodeState).meshDetail,
	sectionVertices:   (*encodeState).vertices,
	sectionTriangles:  (*encodeState).triangles,
	sectionSkinning:   (*encodeState).skinning,
	sectionTerminal:   (*encodeState).terminal,
	sectionInstances:  (*encodeState).instances,
	sectionFooter:     (*encodeState).footer,
}

func (e Encoder) encode(model *siafile.Model) ([]byte, error) {
	if model == nil {
		return nil, EncodeError{Field: "model", Cause: ErrNilModel}
	}
	s := &encodeState{
		writer:     newWriter(),
		model:      model,
		indexWidth: model.IndexWidth(),
	}
	for sec := sectionHeader; sec < sectionDone; sec++ {
		if encodeSteps[sec](s) {
			return nil, s.err
		}
	}
	return s.buf.Bytes(), nil
}

func (s *encodeState) header() bool {
	return s.bytes("header", []byte(headerTag)) ||
		s.number("version", s.model.Version) ||
		s.string("name", s.model.Name)
}

func (s *encodeState) scalars() bool {
	m := s.model
	return s.bytes("preamble", m.Preamble[:]) ||
		s.number("radius", m.Radius) ||
		s.vector3("bounds min", m.Bounds.Min) ||
		s.vector3("bounds max", m.Bounds.Max)
}

func (s *encodeState) meshTable() bool {
	if s.count("mesh table count", len(s.model.Meshes)) {
		return true
	}
	for _, mesh := range s.model.Meshes {
		if mesh == nil {
			return s.fail("mesh", ErrNilMesh)
		}
		if s.number("vertex offset", mesh.VertexOffset) ||
			s.count("vertex count", len(mesh.Vertices)) ||
			s.number("triangle offset", mesh.TriangleOffset) ||
			s.count("index count", len(mesh.Triangles)*3) ||
			s.number("mesh id", mesh.ID) ||
			s.bytes("mesh extra", mesh.Extra[:]) {
			return true
		}
	}
	return false
}

func (s *encodeState) meshDetail() bool {
	if s.count("mesh count", len(s.model.Meshes)) {
		return true
	}
	for _, mesh := range s.model.Meshes {
		if s.bytes("mesh hash", mesh.Hash[:]) ||
			s.bytes("mesh unknown", mesh.Unknown1[:]) ||
			s.bytes("mesh unknown", mesh.Unknown2[:]) ||
			s.bytes("mesh unknown", mesh.Unknown3[:]) ||
			s.string("material kind", mesh.MaterialKind) {
			return true
		}
		if s.materials(mesh) {
			return true
		}
		if s.bytes("mesh trailer", mesh.Trailer[:]) {
			return true
		}
	}
	return false
}

func (s *encodeState) materials(mesh *siafile.Mesh) bool {
	if s.shortCount("material count", len(mesh.Materials)) {
		return true
	}
	for _, mat := range mesh.Materials {
		if mat == nil {
			return s.fail("material", ErrNilMaterial)
		}
		if s.string("material name", mat.Kind) ||
			s.shortCount("texture count", len(mat.Textures)) {
			return true
		}
		for _, tex := range mat.Textures {
			if !tex.Kind.Valid() {
				return s.fail("texture kind", ErrUnknownTextureKind(tex.Kind))
			}
			if s.number("texture kind", uint8(tex.Kind)) ||
				s.string("texture path", tex.Path) {
				return true
			}
		}
	}
	return false
}

func (s *encodeState) vertices() bool {
	if s.count("vertex total", s.model.VertexCount()) ||
		s.number("vertex layout", s.model.Layout.Bits()) {
		return true
	}
	var raw []byte
	for _, mesh := range s.model.Meshes {
		raw = verticesToBytes(raw[:0], s.model.Layout, mesh.Vertices)
		if s.bytes("vertices", raw) {
			return true
		}
	}
	return false
}

func (s *encodeState) triangles() bool {
	if s.count("index total", s.model.TriangleCount()*3) {
		return true
	}
	var raw []byte
	for i, mesh := range s.model.Meshes {
		for _, t := range mesh.Triangles {
			if index := t.Max(); int64(index) >= int64(len(mesh.Vertices)) {
				return s.fail("triangles", FaceIndexError{
					Mesh:        i,
					Index:       index,
					VertexCount: len(mesh.Vertices),
				})
			}
		}
		raw = trianglesToBytes(raw[:0], s.indexWidth, mesh.Triangles)
		if s.bytes("triangles", raw) {
			return true
		}
	}
	return false
}

func (s *encodeState) skinning() bool {
	m := s.model
	if !m.Skinned {
		return s.number("skinned", uint32(0)) ||
			s.number("bone count", m.BoneCount)
	}
	if s.number("skinned", uint32(1)) ||
		s.count("bone count", len(m.Bones)) ||
		s.bytes("root bone hash", m.RootBoneHash[:]) {
		return true
	}
	for i := range m.Bones {
		if s.bytes("bone", m.Bones[i][:]) {
			return true
		}
	}
	return false
}

func (s *encodeState) instances() bool {
	if s.count("instance count", len(s.model.Instances)) {
		return true
	}
	for _, inst := range s.model.Instances {
		if inst == nil {
			return s.fail("instance", ErrNilInstance)
		}
		if s.number("instance kind", inst.Kind) {
			return true
		}
		for _, v := range inst.Transform {
			if s.number("instance transform", v) {
				return true
			}
		}
		if s.bytes("instance unknown", inst.Unknown[:]) ||
			s.count("instance position count", len(inst.Positions)) {
			return true
		}
		for _, group := range inst.Positions {
			for _, v := range group {
				if s.vector3("instance position", v) {
					return true
				}
			}
		}
		if s.string("instance name", inst.Name) ||
			s.string("instance path", inst.Path) {
			return true
		}
	}
	return false
}

func (s *encodeState) footer() bool {
	return s.bytes("footer", []byte(footerTag))
}
