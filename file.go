// The siafile package handles the manipulation of SHSM model documents, the
// ".sia" mesh containers used by the Sports Interactive match engine.
//
// A document begins with a Model struct. A Model contains a list of Meshes,
// each of which holds its own materials, vertices and triangles, followed by
// document-wide skinning data, an optional terminal record, and a list of
// placement Instances.
//
// Many fields of the format have no known meaning. These are kept as
// fixed-size byte arrays so that they survive a decode/encode round-trip
// untouched.
//
// Models can be decoded from and encoded to the binary format with the "shsm"
// sub-package. Models can also be created manually; the codec derives every
// count field from the lengths of the lists in the Model.
package siafile

////////////////////////////////////////////////////////////////

// Vector2 is a pair of 32-bit floats.
type Vector2 struct {
	X, Y float32
}

// Vector3 is a triple of 32-bit floats.
type Vector3 struct {
	X, Y, Z float32
}

// BoundingBox is an axis-aligned box. On the wire, Min is stored before Max.
type BoundingBox struct {
	Min Vector3
	Max Vector3
}

////////////////////////////////////////////////////////////////

// Model is the root of a decoded SHSM document.
type Model struct {
	// Version is the first field after the header. Always observed as a
	// small number; its meaning is unconfirmed.
	Version uint32

	// Name is the display name of the model.
	Name string

	// Preamble follows the name. Observed to be zero.
	Preamble [12]byte

	// Radius resembles a bounding sphere radius or a scale.
	Radius float32

	Bounds BoundingBox

	// Meshes is the ordered list of meshes in the model.
	Meshes []*Mesh

	// Layout selects which vertex attributes are present for every vertex
	// of every mesh.
	Layout VertexLayout

	// Skinned indicates whether the model carries a bone table.
	Skinned bool

	// BoneCount is written verbatim when Skinned is false. When Skinned is
	// true, the length of Bones is written instead.
	BoneCount uint32

	// RootBoneHash precedes the bone table of a skinned model.
	RootBoneHash [4]byte

	// Bones is present only when Skinned is true.
	Bones []Bone

	// Terminal is the record following the skinning section. A nil value
	// indicates that no record is present.
	Terminal TerminalRecord

	// Instances is the placement table at the end of the document.
	Instances []*Instance
}

// VertexCount returns the total number of vertices over all meshes.
func (m *Model) VertexCount() int {
	n := 0
	for _, mesh := range m.Meshes {
		if mesh != nil {
			n += len(mesh.Vertices)
		}
	}
	return n
}

// TriangleCount returns the total number of triangles over all meshes.
func (m *Model) TriangleCount() int {
	n := 0
	for _, mesh := range m.Meshes {
		if mesh != nil {
			n += len(mesh.Triangles)
		}
	}
	return n
}

// MaxShortIndexVertices is the largest vertex total for which triangle
// indices are stored with 16 bits.
const MaxShortIndexVertices = 65535

// IndexWidth returns the size in bytes of a triangle index, as determined by
// the total number of vertices in the model.
func (m *Model) IndexWidth() int {
	return IndexWidthFor(m.VertexCount())
}

// IndexWidthFor returns the index width for a given vertex total.
func IndexWidthFor(vertexTotal int) int {
	if vertexTotal > MaxShortIndexVertices {
		return 4
	}
	return 2
}

// Copy returns a deep copy of the model.
func (m *Model) Copy() *Model {
	if m == nil {
		return nil
	}
	c := *m
	if m.Meshes != nil {
		c.Meshes = make([]*Mesh, len(m.Meshes))
		for i, mesh := range m.Meshes {
			c.Meshes[i] = mesh.Copy()
		}
	}
	if m.Bones != nil {
		c.Bones = make([]Bone, len(m.Bones))
		copy(c.Bones, m.Bones)
	}
	if m.Instances != nil {
		c.Instances = make([]*Instance, len(m.Instances))
		for i, inst := range m.Instances {
			c.Instances[i] = inst.Copy()
		}
	}
	// Every TerminalRecord variant is a value type.
	return &c
}

////////////////////////////////////////////////////////////////

// Mesh is a single mesh of a model.
type Mesh struct {
	// VertexOffset and TriangleOffset are stored in the mesh table. Their
	// semantics are not known, and they are written back unchanged.
	VertexOffset   uint32
	TriangleOffset uint32

	ID uint32

	// Extra ends the mesh table entry.
	Extra [8]byte

	// Hash and the three Unknown fields begin the mesh detail entry.
	Hash     [4]byte
	Unknown1 [4]byte
	Unknown2 [4]byte
	Unknown3 [4]byte

	// MaterialKind is the mesh-level material kind tag.
	MaterialKind string

	Materials []*Material

	// Trailer ends the mesh detail entry.
	Trailer [64]byte

	Vertices  []Vertex
	Triangles []Triangle
}

// Copy returns a deep copy of the mesh.
func (mesh *Mesh) Copy() *Mesh {
	if mesh == nil {
		return nil
	}
	c := *mesh
	if mesh.Materials != nil {
		c.Materials = make([]*Material, len(mesh.Materials))
		for i, mat := range mesh.Materials {
			c.Materials[i] = mat.Copy()
		}
	}
	if mesh.Vertices != nil {
		c.Vertices = make([]Vertex, len(mesh.Vertices))
		copy(c.Vertices, mesh.Vertices)
	}
	if mesh.Triangles != nil {
		c.Triangles = make([]Triangle, len(mesh.Triangles))
		copy(c.Triangles, mesh.Triangles)
	}
	return &c
}

// Material is an entry in the material table of a mesh.
type Material struct {
	Kind     string
	Textures []Texture
}

// Copy returns a deep copy of the material.
func (mat *Material) Copy() *Material {
	if mat == nil {
		return nil
	}
	c := *mat
	if mat.Textures != nil {
		c.Textures = make([]Texture, len(mat.Textures))
		copy(c.Textures, mat.Textures)
	}
	return &c
}

// Texture refers to a texture file by path.
type Texture struct {
	Kind TextureKind
	Path string
}

// Vertex holds every attribute a vertex may have. Only the attributes enabled
// by the VertexLayout of the model are meaningful.
type Vertex struct {
	Position Vector3
	Normal   Vector3
	UV1      Vector2
	UV2      Vector2
	UnknownA [8]byte

	Tangent     Vector3
	TangentTail [4]byte

	BoneIDs [4]uint8
	Weights [4]float32

	UnknownC [20]byte
	UnknownD [4]byte
}

// Triangle is a triple of vertex indices into the vertex list of the owning
// mesh.
type Triangle [3]uint32

// Max returns the largest index of the triangle.
func (t Triangle) Max() uint32 {
	m := t[0]
	if t[1] > m {
		m = t[1]
	}
	if t[2] > m {
		m = t[2]
	}
	return m
}

// Bone is an opaque bone record.
type Bone [56]byte

// Instance is a placement record.
type Instance struct {
	Kind uint32

	// Transform resembles a transformation, but its layout is unconfirmed.
	Transform [14]float32

	Unknown [24]byte

	// Positions is a list of groups of four positions.
	Positions [][4]Vector3

	Name string
	Path string
}

// Copy returns a deep copy of the instance.
func (inst *Instance) Copy() *Instance {
	if inst == nil {
		return nil
	}
	c := *inst
	if inst.Positions != nil {
		c.Positions = make([][4]Vector3, len(inst.Positions))
		copy(c.Positions, inst.Positions)
	}
	return &c
}
