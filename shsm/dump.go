package shsm

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"unicode"

	"github.com/siafile/siafile"
	"github.com/siafile/siafile/errors"
)

// Dump writes to w a readable representation of the binary format decoded from
// r.
func (d Decoder) Dump(w io.Writer, r io.Reader) (warn, err error) {
	if r == nil {
		return nil, errors.New("nil reader")
	}
	if w == nil {
		return nil, errors.New("nil writer")
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var stats DecoderStats
	d.Stats = &stats
	m, warn, err := d.decode(b)
	if err != nil {
		return warn, err
	}

	bw := bufio.NewWriter(w)
	bw.WriteString("Header: ")
	dumpSig(bw, []byte(headerTag))
	fmt.Fprintf(bw, "\nVersion: %d", m.Version)
	bw.WriteString("\nName: ")
	dumpString(bw, 0, m.Name)
	bw.WriteString("\nPreamble: ")
	dumpBytes(bw, 0, m.Preamble[:])
	fmt.Fprintf(bw, "\nRadius: %g", m.Radius)
	fmt.Fprintf(bw, "\nBounds: %v, %v", m.Bounds.Min, m.Bounds.Max)
	fmt.Fprintf(bw, "\nLayout: %d (%s) (stride:%d)", m.Layout.Bits(), m.Layout, stats.Stride)
	fmt.Fprintf(bw, "\nIndexWidth: %d", stats.IndexWidth)
	fmt.Fprintf(bw, "\nSections: (count:%d) {", len(stats.Sections))
	for _, sec := range stats.Sections {
		dumpNewline(bw, 1)
		fmt.Fprintf(bw, "%s: %d (len:%d)", sec.Name, sec.Offset, sec.Length)
	}
	bw.WriteString("\n}")
	fmt.Fprintf(bw, "\nMeshes: (count:%d) {", len(m.Meshes))
	for i, mesh := range m.Meshes {
		dumpMesh(bw, 1, i, m.Layout, mesh)
	}
	bw.WriteString("\n}")
	fmt.Fprintf(bw, "\nSkinned: %t", m.Skinned)
	fmt.Fprintf(bw, "\nBoneCount: %d", m.BoneCount)
	if m.Skinned {
		bw.WriteString("\nRootBoneHash: ")
		dumpBytes(bw, 0, m.RootBoneHash[:])
		fmt.Fprintf(bw, "\nBones: (count:%d) {", len(m.Bones))
		for i, bone := range m.Bones {
			dumpNewline(bw, 1)
			fmt.Fprintf(bw, "#%d: ", i)
			dumpBytes(bw, 1, bone[:])
		}
		bw.WriteString("\n}")
	}
	bw.WriteString("\nTerminal: ")
	dumpTerminal(bw, 0, m.Terminal)
	fmt.Fprintf(bw, "\nInstances: (count:%d) {", len(m.Instances))
	for i, inst := range m.Instances {
		dumpInstance(bw, 1, i, inst)
	}
	bw.WriteString("\n}")
	bw.WriteString("\nFooter: ")
	dumpSig(bw, []byte(footerTag))
	bw.WriteByte('\n')

	return warn, bw.Flush()
}

func dumpMesh(w *bufio.Writer, indent, i int, layout siafile.VertexLayout, mesh *siafile.Mesh) {
	dumpNewline(w, indent)
	fmt.Fprintf(w, "#%d: {", i)
	dumpNewline(w, indent+1)
	fmt.Fprintf(w, "ID: %d", mesh.ID)
	dumpNewline(w, indent+1)
	fmt.Fprintf(w, "VertexOffset: %d", mesh.VertexOffset)
	dumpNewline(w, indent+1)
	fmt.Fprintf(w, "TriangleOffset: %d", mesh.TriangleOffset)
	dumpNewline(w, indent+1)
	w.WriteString("Extra: ")
	dumpBytes(w, indent+1, mesh.Extra[:])
	dumpNewline(w, indent+1)
	w.WriteString("Hash: ")
	dumpBytes(w, indent+1, mesh.Hash[:])
	for j, u := range [][4]byte{mesh.Unknown1, mesh.Unknown2, mesh.Unknown3} {
		dumpNewline(w, indent+1)
		fmt.Fprintf(w, "Unknown%d: ", j+1)
		dumpBytes(w, indent+1, u[:])
	}
	dumpNewline(w, indent+1)
	w.WriteString("MaterialKind: ")
	dumpString(w, indent+1, mesh.MaterialKind)
	dumpNewline(w, indent+1)
	fmt.Fprintf(w, "Materials: (count:%d) {", len(mesh.Materials))
	for j, mat := range mesh.Materials {
		dumpNewline(w, indent+2)
		fmt.Fprintf(w, "#%d: ", j)
		dumpString(w, indent+2, mat.Kind)
		w.WriteString(" {")
		for _, tex := range mat.Textures {
			dumpNewline(w, indent+3)
			fmt.Fprintf(w, "%d (%s): ", tex.Kind, tex.Kind)
			dumpString(w, indent+3, tex.Path)
		}
		dumpNewline(w, indent+2)
		w.WriteByte('}')
	}
	dumpNewline(w, indent+1)
	w.WriteByte('}')
	dumpNewline(w, indent+1)
	w.WriteString("Trailer: ")
	dumpBytes(w, indent+1, mesh.Trailer[:])

	dumpNewline(w, indent+1)
	fmt.Fprintf(w, "Vertices: (count:%d) {", len(mesh.Vertices))
	for j := range mesh.Vertices {
		dumpNewline(w, indent+2)
		fmt.Fprintf(w, "%d:", j)
		dumpVertex(w, layout, &mesh.Vertices[j])
	}
	dumpNewline(w, indent+1)
	w.WriteByte('}')

	dumpNewline(w, indent+1)
	fmt.Fprintf(w, "Triangles: (count:%d) {", len(mesh.Triangles))
	for j, t := range mesh.Triangles {
		dumpNewline(w, indent+2)
		fmt.Fprintf(w, "%d: %d %d %d", j, t[0], t[1], t[2])
	}
	dumpNewline(w, indent+1)
	w.WriteByte('}')
	dumpNewline(w, indent)
	w.WriteByte('}')
}

func dumpVertex(w *bufio.Writer, layout siafile.VertexLayout, v *siafile.Vertex) {
	for _, f := range layout.Fields() {
		switch f {
		case siafile.FieldPosition:
			fmt.Fprintf(w, " P%v", v.Position)
		case siafile.FieldNormal:
			fmt.Fprintf(w, " N%v", v.Normal)
		case siafile.FieldUV1:
			fmt.Fprintf(w, " UV1%v", v.UV1)
		case siafile.FieldUV2:
			fmt.Fprintf(w, " UV2%v", v.UV2)
		case siafile.FieldUnknownA:
			fmt.Fprintf(w, " A[% 02X]", v.UnknownA)
		case siafile.FieldTangent:
			fmt.Fprintf(w, " T%v[% 02X]", v.Tangent, v.TangentTail)
		case siafile.FieldSkin:
			fmt.Fprintf(w, " B%v W%v", v.BoneIDs, v.Weights)
		case siafile.FieldUnknownC:
			fmt.Fprintf(w, " C[% 02X]", v.UnknownC)
		case siafile.FieldUnknownD:
			fmt.Fprintf(w, " D[% 02X]", v.UnknownD)
		}
	}
}

func dumpTerminal(w *bufio.Writer, indent int, rec siafile.TerminalRecord) {
	switch rec := rec.(type) {
	case nil:
		w.WriteString("(none)")
	case siafile.TerminalOpaque:
		fmt.Fprintf(w, "%d ", rec.RecordKind())
		dumpBytes(w, indent, rec[:])
	case siafile.MeshTypeRecord:
		fmt.Fprintf(w, "%d %s {", rec.RecordKind(), rec.Kind())
		dumpNewline(w, indent+1)
		fmt.Fprintf(w, "Type: %d (%s)", uint8(rec.Type), rec.Type)
		if rec.Type == siafile.MeshTypeRenderFlags {
			dumpNewline(w, indent+1)
			w.WriteString("Flags: ")
			dumpBytes(w, indent+1, rec.Flags[:])
		}
		dumpNewline(w, indent+1)
		w.WriteString("Value: ")
		dumpString(w, indent+1, rec.Value)
		dumpNewline(w, indent)
		w.WriteByte('}')
	default:
		fmt.Fprintf(w, "%d %s: %v", rec.RecordKind(), rec.Kind(), rec)
	}
}

func dumpInstance(w *bufio.Writer, indent, i int, inst *siafile.Instance) {
	dumpNewline(w, indent)
	fmt.Fprintf(w, "#%d: {", i)
	dumpNewline(w, indent+1)
	fmt.Fprintf(w, "Kind: %d", inst.Kind)
	dumpNewline(w, indent+1)
	fmt.Fprintf(w, "Transform: %v", inst.Transform)
	dumpNewline(w, indent+1)
	w.WriteString("Unknown: ")
	dumpBytes(w, indent+1, inst.Unknown[:])
	dumpNewline(w, indent+1)
	fmt.Fprintf(w, "Positions: (count:%d) {", len(inst.Positions))
	for _, group := range inst.Positions {
		dumpNewline(w, indent+2)
		fmt.Fprintf(w, "%v %v %v %v", group[0], group[1], group[2], group[3])
	}
	dumpNewline(w, indent+1)
	w.WriteByte('}')
	dumpNewline(w, indent+1)
	w.WriteString("Name: ")
	dumpString(w, indent+1, inst.Name)
	dumpNewline(w, indent+1)
	w.WriteString("Path: ")
	dumpString(w, indent+1, inst.Path)
	dumpNewline(w, indent)
	w.WriteByte('}')
}

func dumpNewline(w *bufio.Writer, indent int) {
	w.WriteByte('\n')
	for i := 0; i < indent; i++ {
		w.WriteByte('\t')
	}
}

func dumpSig(w *bufio.Writer, sig []byte) {
	for _, c := range sig {
		if unicode.IsPrint(rune(c)) {
			w.WriteByte(c)
		} else {
			w.WriteByte('.')
		}
	}
	fmt.Fprintf(w, " (% 02X)", sig)
}

func dumpString(w *bufio.Writer, indent int, s string) {
	for _, r := range s {
		if !unicode.IsGraphic(r) {
			dumpBytes(w, indent, []byte(s))
			return
		}
	}
	fmt.Fprintf(w, "(len:%d) ", len(s))
	w.WriteString(strconv.Quote(s))
}

func dumpBytes(w *bufio.Writer, indent int, b []byte) {
	fmt.Fprintf(w, "(len:%d)", len(b))
	const width = 16
	for j := 0; j < len(b); j += width {
		dumpNewline(w, indent+1)
		w.WriteString("| ")
		for i := j; i < j+width; {
			if i < len(b) {
				s := strconv.FormatUint(uint64(b[i]), 16)
				if len(s) == 1 {
					w.WriteString("0")
				}
				w.WriteString(s)
			} else if len(b) < width {
				break
			} else {
				w.WriteString("  ")
			}
			i++
			if i%8 == 0 && i < j+width {
				w.WriteString("  ")
			} else {
				w.WriteString(" ")
			}
		}
		w.WriteString("|")
		n := len(b)
		if j+width < n {
			n = j + width
		}
		for i := j; i < n; i++ {
			if 32 <= b[i] && b[i] <= 126 {
				w.WriteRune(rune(b[i]))
			} else {
				w.WriteByte('.')
			}
		}
		w.WriteByte('|')
	}
}
