package shsm

// SectionStats describes the location of one section of a file.
type SectionStats struct {
	Name   string `json:"name"`
	Offset int64  `json:"offset"`
	Length int64  `json:"length"`
}

// DecoderStats describes the structure of decoded data. If decoding fails,
// only the sections read before the failure are described.
type DecoderStats struct {
	Size     int64          `json:"size"`
	Sections []SectionStats `json:"sections"`

	LayoutBits uint32 `json:"layout_bits"`
	Layout     string `json:"layout"`
	Stride     int    `json:"stride"`
	IndexWidth int    `json:"index_width"`

	Meshes    int `json:"meshes"`
	Materials int `json:"materials"`
	Textures  int `json:"textures"`
	Vertices  int `json:"vertices"`
	Triangles int `json:"triangles"`
	Bones     int `json:"bones"`
	Instances int `json:"instances"`

	Terminal string `json:"terminal,omitempty"`
	Warnings int    `json:"warnings"`
}

func (st *DecoderStats) fill(s *decodeState) {
	m := s.model
	*st = DecoderStats{
		Size:       s.size,
		Sections:   s.sections,
		LayoutBits: m.Layout.Bits(),
		Layout:     m.Layout.String(),
		Stride:     m.Layout.Stride(),
		IndexWidth: s.indexWidth,
		Meshes:     len(m.Meshes),
		Vertices:   m.VertexCount(),
		Triangles:  m.TriangleCount(),
		Bones:      len(m.Bones),
		Instances:  len(m.Instances),
		Warnings:   len(s.warn),
	}
	for _, mesh := range m.Meshes {
		if mesh == nil {
			continue
		}
		st.Materials += len(mesh.Materials)
		for _, mat := range mesh.Materials {
			if mat != nil {
				st.Textures += len(mat.Textures)
			}
		}
	}
	if rec := m.Terminal; rec != nil {
		if st.Terminal = rec.Kind(); st.Terminal == "" {
			st.Terminal = "opaque"
		}
	}
}
