package shsm

import (
	"bytes"
	"io"

	"github.com/siafile/siafile"
	"github.com/siafile/siafile/errors"
)

// Decoder decodes a stream of bytes into a siafile.Model.
type Decoder struct {
	// If StrictLayout is true, then a vertex layout that was not observed in
	// shipped files is rejected with ErrUnknownVertexType. Otherwise, any
	// layout is decoded according to its bits.
	StrictLayout bool

	// If StrictStrings is true, then a string with ill-formed UTF-8 is
	// rejected. Otherwise, invalid sequences are replaced with U+FFFD and an
	// InvalidUTF8Warning is returned.
	StrictStrings bool

	// Stats, if not nil, is filled with information about the structure of
	// the decoded data.
	Stats *DecoderStats
}

// Decode reads data from r and decodes it into a Model.
//
// warn contains warnings that did not prevent decoding, such as replaced
// strings or data following the footer.
func (d Decoder) Decode(r io.Reader) (model *siafile.Model, warn, err error) {
	if r == nil {
		return nil, nil, errors.New("nil reader")
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, err
	}
	return d.decode(b)
}

// Decode decodes b into a Model using a default Decoder. Warnings are
// discarded.
func Decode(b []byte) (*siafile.Model, error) {
	model, _, err := Decoder{}.decode(b)
	return model, err
}

// decodeState holds the values carried between the sections of a file.
type decodeState struct {
	*reader
	strictLayout bool

	model *siafile.Model

	// Counts from the mesh table.
	vertexCounts []uint32
	indexCounts  []uint32
	vertexTotal  int64

	indexWidth int
	sections   []SectionStats
}

type decodeStep func(s *decodeState) (failed bool)

// decodeSteps maps each section to the step that reads it. Steps run in
// section order.
var decodeSteps = [sectionDone]decodeStep{
	sectionHeader:     (*decodeState).header,
	sectionScalars:    (*decodeState).scalars,
	sectionMeshTable:  (*decodeState).meshTable,
	sectionMeshDetail: (*decodeState).meshDetail,
	sectionVertices:   (*decodeState).vertices,
	sectionTriangles:  (*decodeState).triangles,
	sectionSkinning:   (*decodeState).skinning,
	sectionTerminal:   (*decodeState).terminal,
	sectionInstances:  (*decodeState).instances,
	sectionFooter:     (*decodeState).footer,
}

func (d Decoder) decode(b []byte) (model *siafile.Model, warn, err error) {
	s := &decodeState{
		reader:       newReader(b),
		strictLayout: d.StrictLayout,
		model:        &siafile.Model{},
	}
	s.strictStrings = d.StrictStrings

	for sec := sectionHeader; sec < sectionDone; sec++ {
		start := s.offset()
		if decodeSteps[sec](s) {
			break
		}
		s.sections = append(s.sections, SectionStats{
			Name:   sec.String(),
			Offset: start,
			Length: s.offset() - start,
		})
	}

	if d.Stats != nil {
		d.Stats.fill(s)
	}
	if s.err != nil {
		return nil, s.warn.Return(), s.err
	}
	return s.model, s.warn.Return(), nil
}

func (s *decodeState) header() bool {
	off := s.offset()
	var tag [4]byte
	if s.bytes("header", tag[:]) {
		return true
	}
	if !bytes.Equal(tag[:], []byte(headerTag)) {
		return s.fail(off, "header", ErrBadHeader(tag))
	}
	if s.number("version", &s.model.Version) {
		return true
	}
	return s.string("name", &s.model.Name)
}

func (s *decodeState) scalars() bool {
	m := s.model
	return s.bytes("preamble", m.Preamble[:]) ||
		s.number("radius", &m.Radius) ||
		s.vector3("bounds min", &m.Bounds.Min) ||
		s.vector3("bounds max", &m.Bounds.Max)
}

func (s *decodeState) meshTable() bool {
	var n uint32
	if s.count("mesh table count", meshTableEntrySize, &n) {
		return true
	}
	s.model.Meshes = make([]*siafile.Mesh, n)
	s.vertexCounts = make([]uint32, n)
	s.indexCounts = make([]uint32, n)
	for i := range s.model.Meshes {
		mesh := &siafile.Mesh{}
		s.model.Meshes[i] = mesh
		if s.number("vertex offset", &mesh.VertexOffset) ||
			s.number("vertex count", &s.vertexCounts[i]) ||
			s.number("triangle offset", &mesh.TriangleOffset) {
			return true
		}
		off := s.offset()
		if s.number("index count", &s.indexCounts[i]) {
			return true
		}
		if s.indexCounts[i]%3 != 0 {
			return s.fail(off, "index count", ErrIndexCount(s.indexCounts[i]))
		}
		if s.number("mesh id", &mesh.ID) ||
			s.bytes("mesh extra", mesh.Extra[:]) {
			return true
		}
		s.vertexTotal += int64(s.vertexCounts[i])
	}
	return false
}

func (s *decodeState) meshDetail() bool {
	off := s.offset()
	var n uint32
	if s.number("mesh count", &n) {
		return true
	}
	if int(n) != len(s.model.Meshes) {
		return s.fail(off, "mesh count", CountError{
			Field:    "mesh count",
			Declared: n,
			Actual:   uint32(len(s.model.Meshes)),
		})
	}
	for _, mesh := range s.model.Meshes {
		if s.bytes("mesh hash", mesh.Hash[:]) ||
			s.bytes("mesh unknown", mesh.Unknown1[:]) ||
			s.bytes("mesh unknown", mesh.Unknown2[:]) ||
			s.bytes("mesh unknown", mesh.Unknown3[:]) ||
			s.string("material kind", &mesh.MaterialKind) {
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

func (s *decodeState) materials(mesh *siafile.Mesh) bool {
	var n uint8
	if s.number("material count", &n) {
		return true
	}
	mesh.Materials = make([]*siafile.Material, n)
	for i := range mesh.Materials {
		mat := &siafile.Material{}
		mesh.Materials[i] = mat
		if s.string("material name", &mat.Kind) {
			return true
		}
		var t uint8
		if s.number("texture count", &t) {
			return true
		}
		mat.Textures = make([]siafile.Texture, t)
		for j := range mat.Textures {
			tex := &mat.Textures[j]
			off := s.offset()
			var kind uint8
			if s.number("texture kind", &kind) {
				return true
			}
			tex.Kind = siafile.TextureKind(kind)
			if !tex.Kind.Valid() {
				return s.fail(off, "texture kind", ErrUnknownTextureKind(kind))
			}
			if s.string("texture path", &tex.Path) {
				return true
			}
		}
	}
	return false
}

func (s *decodeState) vertices() bool {
	off := s.offset()
	var total uint32
	if s.number("vertex total", &total) {
		return true
	}
	if int64(total) != s.vertexTotal {
		return s.fail(off, "vertex total", CountError{
			Field:    "vertex total",
			Declared: total,
			Actual:   uint32(s.vertexTotal),
		})
	}

	off = s.offset()
	var bits uint32
	if s.number("vertex layout", &bits) {
		return true
	}
	layout := siafile.LayoutFromBits(bits)
	if s.strictLayout && !layout.Known() {
		return s.fail(off, "vertex layout", ErrUnknownVertexType(bits))
	}
	s.model.Layout = layout

	stride := int64(layout.Stride())
	for i, mesh := range s.model.Meshes {
		n := int64(s.vertexCounts[i])
		off := s.offset()
		if s.need(off, "vertices", n*stride) {
			return true
		}
		raw := make([]byte, n*stride)
		if s.bytes("vertices", raw) {
			return true
		}
		mesh.Vertices = make([]siafile.Vertex, n)
		verticesFromBytes(raw, layout, mesh.Vertices)
	}
	return false
}

func (s *decodeState) triangles() bool {
	var sum int64
	for _, n := range s.indexCounts {
		sum += int64(n)
	}
	off := s.offset()
	var total uint32
	if s.number("index total", &total) {
		return true
	}
	if int64(total) != sum {
		return s.fail(off, "index total", CountError{
			Field:    "index total",
			Declared: total,
			Actual:   uint32(sum),
		})
	}

	s.indexWidth = siafile.IndexWidthFor(int(s.vertexTotal))
	width := int64(s.indexWidth)
	for i, mesh := range s.model.Meshes {
		n := int64(s.indexCounts[i] / 3)
		off := s.offset()
		if s.need(off, "triangles", n*3*width) {
			return true
		}
		raw := make([]byte, n*3*width)
		if s.bytes("triangles", raw) {
			return true
		}
		mesh.Triangles = make([]siafile.Triangle, n)
		trianglesFromBytes(raw, s.indexWidth, mesh.Triangles)
		for j, t := range mesh.Triangles {
			for _, index := range t {
				if int64(index) >= int64(len(mesh.Vertices)) {
					return s.fail(off+int64(j)*3*width, "triangles", FaceIndexError{
						Mesh:        i,
						Index:       index,
						VertexCount: len(mesh.Vertices),
					})
				}
			}
		}
	}
	return false
}

func (s *decodeState) skinning() bool {
	m := s.model
	off := s.offset()
	var flag uint32
	if s.number("skinned", &flag) {
		return true
	}
	if flag > 1 {
		return s.fail(off, "skinned", ErrSkinnedFlag(flag))
	}
	m.Skinned = flag == 1
	if s.number("bone count", &m.BoneCount) {
		return true
	}
	if !m.Skinned {
		return false
	}
	if s.bytes("root bone hash", m.RootBoneHash[:]) {
		return true
	}
	if s.need(s.offset(), "bones", int64(m.BoneCount)*boneSize) {
		return true
	}
	m.Bones = make([]siafile.Bone, m.BoneCount)
	for i := range m.Bones {
		if s.bytes("bone", m.Bones[i][:]) {
			return true
		}
	}
	return false
}

func (s *decodeState) instances() bool {
	var n uint32
	if s.count("instance count", instanceFixedSize, &n) {
		return true
	}
	s.model.Instances = make([]*siafile.Instance, n)
	for i := range s.model.Instances {
		inst := &siafile.Instance{}
		s.model.Instances[i] = inst
		if s.number("instance kind", &inst.Kind) {
			return true
		}
		for j := range inst.Transform {
			if s.number("instance transform", &inst.Transform[j]) {
				return true
			}
		}
		if s.bytes("instance unknown", inst.Unknown[:]) {
			return true
		}
		var groups uint32
		if s.count("instance position count", positionGroupSize, &groups) {
			return true
		}
		inst.Positions = make([][4]siafile.Vector3, groups)
		for j := range inst.Positions {
			for k := range inst.Positions[j] {
				if s.vector3("instance position", &inst.Positions[j][k]) {
					return true
				}
			}
		}
		if s.string("instance name", &inst.Name) ||
			s.string("instance path", &inst.Path) {
			return true
		}
	}
	return false
}

func (s *decodeState) footer() bool {
	off := s.offset()
	var tag [4]byte
	if s.bytes("footer", tag[:]) {
		return true
	}
	if !bytes.Equal(tag[:], []byte(footerTag)) {
		return s.fail(off, "footer", ErrBadFooter(tag))
	}
	if n := s.remaining(); n > 0 {
		s.warn = s.warn.Append(TrailingDataWarning{Offset: s.offset(), Length: n})
	}
	return false
}
