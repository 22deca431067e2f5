package siafile

import (
	"strconv"
)

////////////////////////////////////////////////////////////////

// TextureKind indicates how a texture is used by a material.
type TextureKind uint8

const (
	TextureAlbedo              TextureKind = 0
	TextureRoughnessMetallicAO TextureKind = 1
	TextureNormal              TextureKind = 2
	TextureMask                TextureKind = 5
	TextureLightmap            TextureKind = 6
	TextureFlow                TextureKind = 7
)

// Valid returns whether the value is a known texture kind.
func (k TextureKind) Valid() bool {
	switch k {
	case TextureAlbedo,
		TextureRoughnessMetallicAO,
		TextureNormal,
		TextureMask,
		TextureLightmap,
		TextureFlow:
		return true
	}
	return false
}

// String returns the name of the texture kind.
func (k TextureKind) String() string {
	switch k {
	case TextureAlbedo:
		return "Albedo"
	case TextureRoughnessMetallicAO:
		return "RoughnessMetallicAO"
	case TextureNormal:
		return "Normal"
	case TextureMask:
		return "Mask"
	case TextureLightmap:
		return "Lightmap"
	case TextureFlow:
		return "Flow"
	}
	return "TextureKind(" + strconv.Itoa(int(k)) + ")"
}

////////////////////////////////////////////////////////////////

// MeshType is the sub-type byte of a "mesh_type" terminal record. It selects
// the shape of the record's payload.
type MeshType uint8

const (
	MeshTypeRenderFlags    MeshType = 2
	MeshTypeVariableLength MeshType = 8
	MeshTypeBodyPart       MeshType = 88
	MeshTypeGlasses        MeshType = 136
	MeshTypeRearCap        MeshType = 152
	MeshTypeStadiumRoof    MeshType = 216
	MeshTypePlayerTunnel   MeshType = 232
	MeshTypeSideCap        MeshType = 248
)

// Valid returns whether the value is a known mesh type.
func (t MeshType) Valid() bool {
	switch t {
	case MeshTypeRenderFlags,
		MeshTypeVariableLength,
		MeshTypeBodyPart,
		MeshTypeGlasses,
		MeshTypeRearCap,
		MeshTypeStadiumRoof,
		MeshTypePlayerTunnel,
		MeshTypeSideCap:
		return true
	}
	return false
}

// FixedWidth returns the byte length of the value of a mesh type that is
// stored without a length prefix. Returns 0 for prefixed or unknown types.
func (t MeshType) FixedWidth() int {
	switch t {
	case MeshTypeBodyPart:
		return 4
	case MeshTypeGlasses:
		return 7
	case MeshTypeRearCap:
		return 8
	case MeshTypeStadiumRoof:
		return 12
	case MeshTypePlayerTunnel:
		return 13
	case MeshTypeSideCap:
		return 14
	}
	return 0
}

// String returns the name of the mesh type.
func (t MeshType) String() string {
	switch t {
	case MeshTypeRenderFlags:
		return "RenderFlags"
	case MeshTypeVariableLength:
		return "VariableLength"
	case MeshTypeBodyPart:
		return "BodyPart"
	case MeshTypeGlasses:
		return "Glasses"
	case MeshTypeRearCap:
		return "RearCap"
	case MeshTypeStadiumRoof:
		return "StadiumRoof"
	case MeshTypePlayerTunnel:
		return "PlayerTunnel"
	case MeshTypeSideCap:
		return "SideCap"
	}
	return "MeshType(" + strconv.Itoa(int(t)) + ")"
}

////////////////////////////////////////////////////////////////

// Record kind bytes of the terminal record.
const (
	RecordNone   uint8 = 0
	RecordOpaque uint8 = 2
	RecordKeyed  uint8 = 42
)

// Kind strings of keyed terminal records.
const (
	KindMeshType     = "mesh_type"
	KindIsBanner     = "is_banner"
	KindIsCompBanner = "is_comp_banner"
	KindIsMatchBall  = "is_match_ball"
	KindIsTeamLogo   = "is_team_logo"
)

// TerminalRecord is the record that follows the skinning section of a model.
// The set of implementations is closed; a nil TerminalRecord indicates that
// the record is absent.
type TerminalRecord interface {
	// RecordKind returns the record kind byte of the record.
	RecordKind() uint8
	// Kind returns the kind string of a keyed record, or an empty string.
	Kind() string

	terminalRecord()
}

// TerminalOpaque is a record of kind 2, holding 16 uninterpreted bytes.
type TerminalOpaque [16]byte

func (TerminalOpaque) RecordKind() uint8 { return RecordOpaque }
func (TerminalOpaque) Kind() string      { return "" }
func (TerminalOpaque) terminalRecord()   {}

// MeshTypeRecord is a "mesh_type" record.
type MeshTypeRecord struct {
	Type MeshType

	// Flags is present only for MeshTypeRenderFlags.
	Flags [4]byte

	// Value is the string payload. For fixed-width types, the value is
	// padded with zeros or truncated to the width when encoded.
	Value string
}

func (MeshTypeRecord) RecordKind() uint8 { return RecordKeyed }
func (MeshTypeRecord) Kind() string      { return KindMeshType }
func (MeshTypeRecord) terminalRecord()   {}

// BannerFlag is an "is_banner" record.
type BannerFlag uint8

func (BannerFlag) RecordKind() uint8 { return RecordKeyed }
func (BannerFlag) Kind() string      { return KindIsBanner }
func (BannerFlag) terminalRecord()   {}

// Bool returns whether the flag is set.
func (f BannerFlag) Bool() bool { return f != 0 }

// CompBannerFlag is an "is_comp_banner" record.
type CompBannerFlag uint8

func (CompBannerFlag) RecordKind() uint8 { return RecordKeyed }
func (CompBannerFlag) Kind() string      { return KindIsCompBanner }
func (CompBannerFlag) terminalRecord()   {}

// Bool returns whether the flag is set.
func (f CompBannerFlag) Bool() bool { return f != 0 }

// MatchBallFlag is an "is_match_ball" record.
type MatchBallFlag uint8

func (MatchBallFlag) RecordKind() uint8 { return RecordKeyed }
func (MatchBallFlag) Kind() string      { return KindIsMatchBall }
func (MatchBallFlag) terminalRecord()   {}

// Bool returns whether the flag is set.
func (f MatchBallFlag) Bool() bool { return f != 0 }

// TeamLogoFlag is an "is_team_logo" record.
type TeamLogoFlag uint8

func (TeamLogoFlag) RecordKind() uint8 { return RecordKeyed }
func (TeamLogoFlag) Kind() string      { return KindIsTeamLogo }
func (TeamLogoFlag) terminalRecord()   {}

// Bool returns whether the flag is set.
func (f TeamLogoFlag) Bool() bool { return f != 0 }

// NewFlagRecord returns the flag record for a keyed kind string, or nil if
// the kind is not a flag kind.
func NewFlagRecord(kind string, value uint8) TerminalRecord {
	switch kind {
	case KindIsBanner:
		return BannerFlag(value)
	case KindIsCompBanner:
		return CompBannerFlag(value)
	case KindIsMatchBall:
		return MatchBallFlag(value)
	case KindIsTeamLogo:
		return TeamLogoFlag(value)
	}
	return nil
}
