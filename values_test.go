package siafile_test

import (
	"testing"

	"github.com/siafile/siafile"
)

func TestTextureKind(t *testing.T) {
	for _, k := range []siafile.TextureKind{0, 1, 2, 5, 6, 7} {
		if !k.Valid() {
			t.Errorf("expected texture kind %d to be valid", k)
		}
	}
	for _, k := range []siafile.TextureKind{3, 4, 8, 99} {
		if k.Valid() {
			t.Errorf("expected texture kind %d to be invalid", k)
		}
	}
	if s := siafile.TextureNormal.String(); s != "Normal" {
		t.Errorf("unexpected result from String: %s", s)
	}
	if s := siafile.TextureKind(99).String(); s != "TextureKind(99)" {
		t.Errorf("unexpected result from String: %s", s)
	}
}

func TestMeshType(t *testing.T) {
	widths := map[siafile.MeshType]int{
		siafile.MeshTypeRenderFlags:    0,
		siafile.MeshTypeVariableLength: 0,
		siafile.MeshTypeBodyPart:       4,
		siafile.MeshTypeGlasses:        7,
		siafile.MeshTypeRearCap:        8,
		siafile.MeshTypeStadiumRoof:    12,
		siafile.MeshTypePlayerTunnel:   13,
		siafile.MeshTypeSideCap:        14,
	}
	for mt, w := range widths {
		if !mt.Valid() {
			t.Errorf("expected mesh type %s to be valid", mt)
		}
		if mt.FixedWidth() != w {
			t.Errorf("%s: expected width %d, got %d", mt, w, mt.FixedWidth())
		}
	}
	if siafile.MeshType(3).Valid() {
		t.Error("expected mesh type 3 to be invalid")
	}
}

func TestNewFlagRecord(t *testing.T) {
	tests := []struct {
		kind string
		want siafile.TerminalRecord
	}{
		{siafile.KindIsBanner, siafile.BannerFlag(1)},
		{siafile.KindIsCompBanner, siafile.CompBannerFlag(1)},
		{siafile.KindIsMatchBall, siafile.MatchBallFlag(1)},
		{siafile.KindIsTeamLogo, siafile.TeamLogoFlag(1)},
		{siafile.KindMeshType, nil},
		{"unknown", nil},
	}
	for _, tt := range tests {
		rec := siafile.NewFlagRecord(tt.kind, 1)
		if rec != tt.want {
			t.Errorf("%s: expected %#v, got %#v", tt.kind, tt.want, rec)
		}
		if rec != nil && (rec.Kind() != tt.kind || rec.RecordKind() != siafile.RecordKeyed) {
			t.Errorf("%s: unexpected kind %q %d", tt.kind, rec.Kind(), rec.RecordKind())
		}
	}
	if siafile.BannerFlag(0).Bool() || !siafile.BannerFlag(2).Bool() {
		t.Error("unexpected result from Bool")
	}
}
