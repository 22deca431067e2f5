package shsm

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/siafile/siafile"
	xerrors "github.com/siafile/siafile/errors"
)

func TestDecodeMinimal(t *testing.T) {
	b := minimalFile()
	m, warn, err := Decoder{}.Decode(bytes.NewReader(b))
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	if warn != nil {
		t.Error("unexpected warning:", warn)
	}
	if m.Version != 1 {
		t.Errorf("expected version 1, got %d", m.Version)
	}
	if m.Name != "x" {
		t.Errorf("expected name %q, got %q", "x", m.Name)
	}
	if m.Radius != 2 {
		t.Errorf("expected radius 2, got %g", m.Radius)
	}
	if want := (siafile.BoundingBox{
		Min: siafile.Vector3{X: -1, Y: -1, Z: -1},
		Max: siafile.Vector3{X: 1, Y: 1, Z: 1},
	}); m.Bounds != want {
		t.Errorf("expected bounds %v, got %v", want, m.Bounds)
	}
	if len(m.Meshes) != 0 {
		t.Errorf("expected no meshes, got %d", len(m.Meshes))
	}
	if want := (siafile.VertexLayout{Position: true}); m.Layout != want {
		t.Errorf("expected layout %v, got %v", want, m.Layout)
	}
	if m.Skinned || m.BoneCount != 0 {
		t.Error("expected no skinning")
	}
	if m.Terminal != nil {
		t.Errorf("expected no terminal record, got %v", m.Terminal)
	}
	if len(m.Instances) != 0 {
		t.Errorf("expected no instances, got %d", len(m.Instances))
	}

	out, err := Encode(m)
	if err != nil {
		t.Fatal("unexpected encode error:", err)
	}
	if !bytes.Equal(out, b) {
		t.Errorf("round trip mismatch:\n% 02X\n% 02X", b, out)
	}
}

func TestDecodeMesh(t *testing.T) {
	b, _ := meshFile(meshFixture{textureKind: 2})
	m, err := Decode(b)
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	if len(m.Meshes) != 1 {
		t.Fatalf("expected 1 mesh, got %d", len(m.Meshes))
	}
	mesh := m.Meshes[0]
	if mesh.ID != 7 {
		t.Errorf("expected mesh id 7, got %d", mesh.ID)
	}
	if mesh.MaterialKind != "mat" {
		t.Errorf("expected material kind %q, got %q", "mat", mesh.MaterialKind)
	}
	if len(mesh.Materials) != 1 || mesh.Materials[0].Kind != "base" {
		t.Fatalf("unexpected materials %v", mesh.Materials)
	}
	if want := []siafile.Texture{{Kind: siafile.TextureNormal, Path: "a/tex"}}; len(mesh.Materials[0].Textures) != 1 || mesh.Materials[0].Textures[0] != want[0] {
		t.Errorf("expected textures %v, got %v", want, mesh.Materials[0].Textures)
	}
	if len(mesh.Vertices) != 3 {
		t.Fatalf("expected 3 vertices, got %d", len(mesh.Vertices))
	}
	if want := (siafile.Vector3{X: 1}); mesh.Vertices[1].Position != want {
		t.Errorf("expected position %v, got %v", want, mesh.Vertices[1].Position)
	}
	if want := (siafile.Vector2{}); mesh.Vertices[1].UV1 != want {
		t.Errorf("expected absent UV1 to be zero, got %v", mesh.Vertices[1].UV1)
	}
	if len(mesh.Triangles) != 1 || mesh.Triangles[0] != (siafile.Triangle{0, 1, 2}) {
		t.Errorf("unexpected triangles %v", mesh.Triangles)
	}

	out, err := Encode(m)
	if err != nil {
		t.Fatal("unexpected encode error:", err)
	}
	if !bytes.Equal(out, b) {
		t.Errorf("round trip mismatch:\n% 02X\n% 02X", b, out)
	}
}

func TestDecodeNilReader(t *testing.T) {
	if _, _, err := (Decoder{}).Decode(nil); err == nil {
		t.Error("expected error")
	}
}

func TestDecodeBadHeader(t *testing.T) {
	b := minimalFile()
	copy(b, "SHSX")
	_, err := Decode(b)
	var bad ErrBadHeader
	if !errors.As(err, &bad) {
		t.Fatal("expected error (bad header), got:", err)
	}
	if string(bad[:]) != "SHSX" {
		t.Errorf("expected found header %q, got %q", "SHSX", bad[:])
	}
	var derr DataError
	if !errors.As(err, &derr) || derr.Offset != 0 {
		t.Error("expected data error at offset 0, got:", err)
	}
}

func TestDecodeBadFooter(t *testing.T) {
	b := minimalFile()
	copy(b[len(b)-4:], "EHSN")
	_, err := Decode(b)
	var bad ErrBadFooter
	if !errors.As(err, &bad) {
		t.Fatal("expected error (bad footer), got:", err)
	}
	var derr DataError
	if !errors.As(err, &derr) || derr.Offset != int64(len(b)-4) {
		t.Errorf("expected data error at offset %d, got: %v", len(b)-4, err)
	}
}

func TestDecodeTruncated(t *testing.T) {
	b, _ := meshFile(meshFixture{})
	for n := 0; n < len(b); n++ {
		_, err := Decode(b[:n])
		if !errors.Is(err, io.ErrUnexpectedEOF) {
			t.Errorf("length %d: expected error (unexpected EOF), got: %v", n, err)
		}
	}
}

func TestDecodeUnknownTextureKind(t *testing.T) {
	b, _ := meshFile(meshFixture{textureKind: 99})
	_, err := Decode(b)
	var kind ErrUnknownTextureKind
	if !errors.As(err, &kind) {
		t.Fatal("expected error (unknown texture kind), got:", err)
	}
	if kind != 99 {
		t.Errorf("expected texture kind 99, got %d", kind)
	}
}

func TestDecodeFaceIndex(t *testing.T) {
	b, off := meshFile(meshFixture{indices: []uint16{0, 1, 5}})
	_, err := Decode(b)
	var face FaceIndexError
	if !errors.As(err, &face) {
		t.Fatal("expected error (face index), got:", err)
	}
	if want := (FaceIndexError{Mesh: 0, Index: 5, VertexCount: 3}); face != want {
		t.Errorf("expected %v, got %v", want, face)
	}
	var derr DataError
	if !errors.As(err, &derr) || derr.Offset != int64(off) {
		t.Errorf("expected data error at offset %d, got: %v", off, err)
	}
}

func TestDecodeIndexCount(t *testing.T) {
	b, _ := meshFile(meshFixture{indices: []uint16{0, 1}})
	_, err := Decode(b)
	var count ErrIndexCount
	if !errors.As(err, &count) || count != 2 {
		t.Error("expected error (index count 2), got:", err)
	}
}

func TestDecodeCountMismatch(t *testing.T) {
	mesh, _ := meshFile(meshFixture{})
	tests := []struct {
		name  string
		field string
		b     []byte
	}{
		{"mesh count", "mesh count", app(
			head("x"),
			uint32(0),
			uint32(1),
		)},
		{"vertex total", "vertex total", app(
			head("x"),
			uint32(0),
			uint32(0),
			uint32(4), uint32(1),
		)},
		{"index total", "index total", app(
			head("x"),
			uint32(0),
			uint32(0),
			uint32(0), uint32(1),
			uint32(3),
		)},
		{"mesh vertex total", "vertex total", bytes.Replace(mesh,
			app(uint32(3), uint32(1), float32(0)),
			app(uint32(2), uint32(1), float32(0)),
			1,
		)},
	}
	for _, tt := range tests {
		_, err := Decode(tt.b)
		var count CountError
		if !errors.As(err, &count) {
			t.Errorf("%s: expected error (count mismatch), got: %v", tt.name, err)
			continue
		}
		if count.Field != tt.field {
			t.Errorf("%s: expected field %q, got %q", tt.name, tt.field, count.Field)
		}
	}
}

func TestDecodeHugeCount(t *testing.T) {
	b := app(
		head("x"),
		uint32(0xFFFFFFFF),
	)
	_, err := Decode(b)
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Error("expected error (unexpected EOF), got:", err)
	}
}

func TestDecodeStrictLayout(t *testing.T) {
	b := minimalFile()
	if _, _, err := (Decoder{}).Decode(bytes.NewReader(b)); err != nil {
		t.Fatal("unexpected error:", err)
	}
	_, _, err := Decoder{StrictLayout: true}.Decode(bytes.NewReader(b))
	var vt ErrUnknownVertexType
	if !errors.As(err, &vt) || vt != 1 {
		t.Error("expected error (unknown vertex type 1), got:", err)
	}
}

func TestDecodeReservedLayoutBits(t *testing.T) {
	b := app(
		head("x"),
		uint32(0),
		uint32(0),
		uint32(0), uint32(1<<20|3),
		uint32(0),
		tail(),
	)
	m, err := Decode(b)
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	if m.Layout.Reserved != 1<<20 {
		t.Errorf("expected reserved bits %X, got %X", 1<<20, m.Layout.Reserved)
	}
	out, err := Encode(m)
	if err != nil {
		t.Fatal("unexpected encode error:", err)
	}
	if !bytes.Equal(out, b) {
		t.Error("round trip mismatch")
	}
}

func TestDecodeInvalidUTF8(t *testing.T) {
	b := app(
		head("a\xffb"),
		uint32(0),
		uint32(0),
		uint32(0), uint32(1),
		uint32(0),
		tail(),
	)
	m, warn, err := Decoder{}.Decode(bytes.NewReader(b))
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	if m.Name != "a\uFFFDb" {
		t.Errorf("expected replaced name, got %q", m.Name)
	}
	var w InvalidUTF8Warning
	if !xerrors.As(warn, &w) {
		t.Fatal("expected warning (invalid UTF-8), got:", warn)
	}
	if w.Offset != 12 || w.Field != "name" {
		t.Errorf("unexpected warning %v", w)
	}

	_, _, err = Decoder{StrictStrings: true}.Decode(bytes.NewReader(b))
	if !errors.As(err, &w) {
		t.Error("expected error (invalid UTF-8), got:", err)
	}
}

func TestDecodeTrailingData(t *testing.T) {
	b := app(minimalFile(), "xx")
	_, warn, err := Decoder{}.Decode(bytes.NewReader(b))
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	var w TrailingDataWarning
	if !xerrors.As(warn, &w) {
		t.Fatal("expected warning (trailing data), got:", warn)
	}
	if w.Offset != int64(len(b)-2) || w.Length != 2 {
		t.Errorf("unexpected warning %v", w)
	}
}

func TestDecodeSkinning(t *testing.T) {
	bones := make([]byte, 2*56)
	for i := range bones {
		bones[i] = byte(i)
	}
	body := app(
		head("x"),
		uint32(0),
		uint32(0),
		uint32(0), uint32(1),
		uint32(0),
	)
	b := app(
		body,
		uint32(1), uint32(2), "root", bones,
		byte(0), uint32(0), "EHSM",
	)
	m, err := Decode(b)
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	if !m.Skinned || m.BoneCount != 2 || len(m.Bones) != 2 {
		t.Fatalf("unexpected skinning: %t %d %d", m.Skinned, m.BoneCount, len(m.Bones))
	}
	if string(m.RootBoneHash[:]) != "root" {
		t.Errorf("unexpected root bone hash %q", m.RootBoneHash[:])
	}
	if m.Bones[1][0] != 56 {
		t.Errorf("unexpected bone data % 02X", m.Bones[1][:])
	}
	out, err := Encode(m)
	if err != nil {
		t.Fatal("unexpected encode error:", err)
	}
	if !bytes.Equal(out, b) {
		t.Error("round trip mismatch")
	}

	// An unskinned model keeps its bone count without a bone table.
	b = app(body, uint32(0), uint32(9), byte(0), uint32(0), "EHSM")
	m, err = Decode(b)
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	if m.Skinned || m.BoneCount != 9 || m.Bones != nil {
		t.Errorf("unexpected skinning: %t %d %d", m.Skinned, m.BoneCount, len(m.Bones))
	}
	if out, _ := Encode(m); !bytes.Equal(out, b) {
		t.Error("round trip mismatch")
	}

	b = app(body, uint32(2), uint32(0), byte(0), uint32(0), "EHSM")
	_, err = Decode(b)
	var flag ErrSkinnedFlag
	if !errors.As(err, &flag) || flag != 2 {
		t.Error("expected error (skinned flag 2), got:", err)
	}
}

func TestDecodeInstances(t *testing.T) {
	transform := make([]interface{}, 14)
	for i := range transform {
		transform[i] = float32(i)
	}
	b := app(
		head("x"),
		uint32(0),
		uint32(0),
		uint32(0), uint32(1),
		uint32(0),
		uint32(0), uint32(0),
		byte(0),
		uint32(1),
		uint32(3), app(transform...), make([]byte, 24),
		uint32(1),
		float32(1), float32(2), float32(3),
		float32(4), float32(5), float32(6),
		float32(7), float32(8), float32(9),
		float32(10), float32(11), float32(12),
		uint32(4), "goal", uint32(6), "a/goal",
		"EHSM",
	)
	m, err := Decode(b)
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	if len(m.Instances) != 1 {
		t.Fatalf("expected 1 instance, got %d", len(m.Instances))
	}
	inst := m.Instances[0]
	if inst.Kind != 3 || inst.Transform[13] != 13 || inst.Name != "goal" || inst.Path != "a/goal" {
		t.Errorf("unexpected instance %+v", inst)
	}
	if len(inst.Positions) != 1 || inst.Positions[0][3] != (siafile.Vector3{X: 10, Y: 11, Z: 12}) {
		t.Errorf("unexpected positions %v", inst.Positions)
	}
	out, err := Encode(m)
	if err != nil {
		t.Fatal("unexpected encode error:", err)
	}
	if !bytes.Equal(out, b) {
		t.Error("round trip mismatch")
	}
}

func TestDecoderStats(t *testing.T) {
	b, _ := meshFile(meshFixture{})
	var stats DecoderStats
	if _, _, err := (Decoder{Stats: &stats}).Decode(bytes.NewReader(b)); err != nil {
		t.Fatal("unexpected error:", err)
	}
	if stats.Size != int64(len(b)) {
		t.Errorf("expected size %d, got %d", len(b), stats.Size)
	}
	if stats.Stride != 12 || stats.IndexWidth != 2 {
		t.Errorf("unexpected stride %d and index width %d", stats.Stride, stats.IndexWidth)
	}
	if stats.Meshes != 1 || stats.Materials != 1 || stats.Textures != 1 || stats.Vertices != 3 || stats.Triangles != 1 {
		t.Errorf("unexpected counts %+v", stats)
	}
	if len(stats.Sections) != int(sectionDone) {
		t.Fatalf("expected %d sections, got %d", sectionDone, len(stats.Sections))
	}
	var end int64
	for i, sec := range stats.Sections {
		if sec.Name != section(i).String() {
			t.Errorf("section %d: expected name %s, got %s", i, section(i), sec.Name)
		}
		if sec.Offset != end {
			t.Errorf("section %s: expected offset %d, got %d", sec.Name, end, sec.Offset)
		}
		end = sec.Offset + sec.Length
	}
	if end != int64(len(b)) {
		t.Errorf("sections end at %d, expected %d", end, len(b))
	}
	if v := stats.Sections[sectionVertices]; v.Length != 8+3*12 {
		t.Errorf("unexpected vertex section length %d", v.Length)
	}
}
