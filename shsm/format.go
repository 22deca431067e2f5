// Package shsm implements a decoder and encoder for the SHSM binary model
// format, the ".sia" mesh containers of the Sports Interactive match engine.
//
// The easiest way to decode and encode files is through the functions Decode
// and Encode. These convert directly between byte slices and Model structures
// specified by the siafile package.
//
// A file is a single little-endian stream with no alignment or padding. It is
// made of the following sections, in order:
//
//	Header      "SHSM", version, name
//	Scalars     preamble, radius, bounding box
//	MeshTable   one entry of counts per mesh
//	MeshDetail  one entry of hashes and materials per mesh
//	Vertices    vertex layout, then the vertices of each mesh
//	Triangles   the triangles of each mesh
//	Skinning    skinned flag, bone count, bone table
//	Terminal    an optional tagged record
//	Instances   the placement table
//	Footer      "EHSM"
//
// Counts in the MeshTable are authoritative while decoding. While encoding,
// every count is derived from the lengths of the lists in the Model.
package shsm

const (
	headerTag = "SHSM"
	footerTag = "EHSM"
)

// Sizes of fixed-length records.
const (
	meshTableEntrySize = 4*5 + 8
	boneSize           = 56
	instanceFixedSize  = 4 + 14*4 + 24 + 4 + 4 + 4
	positionGroupSize  = 4 * 3 * 4
)

// section identifies one of the sections of a file.
type section uint8

const (
	sectionHeader section = iota
	sectionScalars
	sectionMeshTable
	sectionMeshDetail
	sectionVertices
	sectionTriangles
	sectionSkinning
	sectionTerminal
	sectionInstances
	sectionFooter

	sectionDone
)

var sectionNames = [sectionDone]string{
	sectionHeader:     "Header",
	sectionScalars:    "Scalars",
	sectionMeshTable:  "MeshTable",
	sectionMeshDetail: "MeshDetail",
	sectionVertices:   "Vertices",
	sectionTriangles:  "Triangles",
	sectionSkinning:   "Skinning",
	sectionTerminal:   "Terminal",
	sectionInstances:  "Instances",
	sectionFooter:     "Footer",
}

func (s section) String() string {
	if s >= sectionDone {
		return "Done"
	}
	return sectionNames[s]
}
