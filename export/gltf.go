// Package export converts SHSM models into glTF documents.
package export

import (
	"fmt"
	"io"
	"path"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/siafile/siafile"
)

type converter struct {
	opts     Options
	doc      *gltf.Document
	textures map[string]uint32
}

// ToGLTF converts m into a glTF document. Each mesh with triangles becomes a
// node with a mesh of one primitive. Instances become empty nodes that carry
// their name and path as extras.
func ToGLTF(m *siafile.Model, opts Options) (*gltf.Document, error) {
	if m == nil {
		return nil, fmt.Errorf("model is nil")
	}
	if opts.Scale == 0 {
		opts.Scale = 1
	}
	c := &converter{
		opts:     opts,
		doc:      gltf.NewDocument(),
		textures: map[string]uint32{},
	}
	for i, mesh := range m.Meshes {
		if mesh == nil || len(mesh.Triangles) == 0 {
			continue
		}
		if err := c.addMesh(m, i, mesh); err != nil {
			return nil, err
		}
	}
	for i, inst := range m.Instances {
		if inst == nil {
			continue
		}
		c.addNode(&gltf.Node{
			Name: inst.Name,
			Extras: map[string]interface{}{
				"instance":  i,
				"kind":      inst.Kind,
				"path":      inst.Path,
				"transform": inst.Transform[:],
			},
		})
	}
	if len(c.doc.Textures) > 0 {
		c.doc.Samplers = []*gltf.Sampler{{}}
	}
	return c.doc, nil
}

func (c *converter) addNode(node *gltf.Node) {
	c.doc.Nodes = append(c.doc.Nodes, node)
	c.doc.Scenes[0].Nodes = append(c.doc.Scenes[0].Nodes, uint32(len(c.doc.Nodes)-1))
}

func (c *converter) addMesh(m *siafile.Model, i int, mesh *siafile.Mesh) error {
	layout := m.Layout
	n := len(mesh.Vertices)
	positions := make([][3]float32, n)
	var normals [][3]float32
	var uv1, uv2 [][2]float32
	if layout.Normal {
		normals = make([][3]float32, n)
	}
	if layout.UV1 {
		uv1 = make([][2]float32, n)
	}
	if layout.UV2 {
		uv2 = make([][2]float32, n)
	}
	for j, v := range mesh.Vertices {
		p := v.Position
		positions[j] = [3]float32{p.X * c.opts.Scale, p.Y * c.opts.Scale, p.Z * c.opts.Scale}
		if normals != nil {
			normals[j] = [3]float32{v.Normal.X, v.Normal.Y, v.Normal.Z}
		}
		if uv1 != nil {
			uv1[j] = c.texcoord(v.UV1)
		}
		if uv2 != nil {
			uv2[j] = c.texcoord(v.UV2)
		}
	}

	indices := make([]uint32, 0, len(mesh.Triangles)*3)
	for _, t := range mesh.Triangles {
		if top := t.Max(); int(top) >= n {
			return fmt.Errorf("mesh #%d: face index %d out of range of %d vertices", i, top, n)
		}
		indices = append(indices, t[0], t[1], t[2])
	}

	attributes := map[string]uint32{
		"POSITION": modeler.WritePosition(c.doc, positions),
	}
	if normals != nil {
		attributes["NORMAL"] = modeler.WriteNormal(c.doc, normals)
	}
	if uv1 != nil {
		attributes["TEXCOORD_0"] = modeler.WriteTextureCoord(c.doc, uv1)
	}
	if uv2 != nil {
		attributes["TEXCOORD_1"] = modeler.WriteTextureCoord(c.doc, uv2)
	}
	prim := &gltf.Primitive{
		Indices:    gltf.Index(modeler.WriteIndices(c.doc, indices)),
		Attributes: attributes,
	}
	if len(mesh.Materials) > 0 && mesh.Materials[0] != nil {
		prim.Material = gltf.Index(c.addMaterial(mesh.Materials[0]))
	}

	name := fmt.Sprintf("%s_%d", m.Name, i)
	c.doc.Meshes = append(c.doc.Meshes, &gltf.Mesh{
		Name:       name,
		Primitives: []*gltf.Primitive{prim},
		Extras: map[string]interface{}{
			"id":            mesh.ID,
			"material_kind": mesh.MaterialKind,
		},
	})
	c.addNode(&gltf.Node{
		Name: name,
		Mesh: gltf.Index(uint32(len(c.doc.Meshes) - 1)),
	})
	return nil
}

func (c *converter) texcoord(v siafile.Vector2) [2]float32 {
	if c.opts.FlipV {
		return [2]float32{v.X, 1 - v.Y}
	}
	return [2]float32{v.X, v.Y}
}

// addMaterial converts mat and returns its index. Albedo and normal textures
// are mapped to their glTF slots; other textures are listed in the extras by
// kind.
func (c *converter) addMaterial(mat *siafile.Material) uint32 {
	mm := &gltf.Material{
		Name:                 mat.Kind,
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{},
	}
	extras := map[string]interface{}{}
	for _, tex := range mat.Textures {
		switch tex.Kind {
		case siafile.TextureAlbedo:
			if mm.PBRMetallicRoughness.BaseColorTexture == nil {
				mm.PBRMetallicRoughness.BaseColorTexture = &gltf.TextureInfo{
					Index: c.addTexture(tex.Path),
				}
				continue
			}
		case siafile.TextureNormal:
			if mm.NormalTexture == nil {
				mm.NormalTexture = &gltf.NormalTexture{
					Index: gltf.Index(c.addTexture(tex.Path)),
				}
				continue
			}
		}
		extras[tex.Kind.String()] = c.textureURI(tex.Path)
	}
	if len(extras) > 0 {
		mm.Extras = extras
	}
	c.doc.Materials = append(c.doc.Materials, mm)
	return uint32(len(c.doc.Materials) - 1)
}

func (c *converter) textureURI(p string) string {
	uri := p + c.opts.TextureExt
	if c.opts.TextureRoot != "" {
		uri = path.Join(c.opts.TextureRoot, uri)
	}
	return uri
}

// addTexture returns the index of the texture referring to p, adding an image
// and texture for it if needed.
func (c *converter) addTexture(p string) uint32 {
	if index, ok := c.textures[p]; ok {
		return index
	}
	c.doc.Images = append(c.doc.Images, &gltf.Image{
		Name: path.Base(p),
		URI:  c.textureURI(p),
	})
	c.doc.Textures = append(c.doc.Textures, &gltf.Texture{
		Sampler: gltf.Index(0),
		Source:  gltf.Index(uint32(len(c.doc.Images) - 1)),
	})
	index := uint32(len(c.doc.Textures) - 1)
	c.textures[p] = index
	return index
}

// Write encodes doc to w. If binary is false, buffers are embedded in the
// JSON as data URIs.
func Write(w io.Writer, doc *gltf.Document, binary bool) error {
	if !binary {
		for _, b := range doc.Buffers {
			b.EmbeddedResource()
		}
	}
	e := gltf.NewEncoder(w)
	e.AsBinary = binary
	return e.Encode(doc)
}

// Save encodes doc to the named file.
func Save(doc *gltf.Document, name string, binary bool) error {
	if binary {
		return gltf.SaveBinary(doc, name)
	}
	for _, b := range doc.Buffers {
		b.EmbeddedResource()
	}
	return gltf.Save(doc, name)
}
