package shsm

import (
	"github.com/siafile/siafile"
)

func (s *decodeState) terminal() bool {
	off := s.offset()
	var kind uint8
	if s.number("terminal kind", &kind) {
		return true
	}
	switch kind {
	case siafile.RecordNone:
		return false
	case siafile.RecordOpaque:
		var rec siafile.TerminalOpaque
		if s.bytes("terminal data", rec[:]) {
			return true
		}
		s.model.Terminal = rec
		return false
	case siafile.RecordKeyed:
		return s.keyedRecord()
	}
	return s.fail(off, "terminal kind", ErrUnknownTerminalKind(kind))
}

func (s *decodeState) keyedRecord() bool {
	off := s.offset()
	var kind string
	if s.shortString("record kind", &kind) {
		return true
	}
	switch kind {
	case siafile.KindMeshType:
		return s.meshTypeRecord()
	case siafile.KindIsBanner,
		siafile.KindIsCompBanner,
		siafile.KindIsMatchBall,
		siafile.KindIsTeamLogo:
		var v uint8
		if s.number(kind, &v) {
			return true
		}
		s.model.Terminal = siafile.NewFlagRecord(kind, v)
		return false
	}
	return s.fail(off, "record kind", ErrUnknownKind{Tag: siafile.RecordKeyed, Kind: kind})
}

func (s *decodeState) meshTypeRecord() bool {
	off := s.offset()
	var t uint8
	if s.number("mesh type", &t) {
		return true
	}
	rec := siafile.MeshTypeRecord{Type: siafile.MeshType(t)}
	switch {
	case rec.Type == siafile.MeshTypeRenderFlags:
		if s.bytes("render flags", rec.Flags[:]) ||
			s.shortString("mesh type value", &rec.Value) {
			return true
		}
	case rec.Type == siafile.MeshTypeVariableLength:
		if s.string("mesh type value", &rec.Value) {
			return true
		}
	case rec.Type.FixedWidth() > 0:
		if s.text("mesh type value", int64(rec.Type.FixedWidth()), &rec.Value) {
			return true
		}
	default:
		return s.fail(off, "mesh type", ErrUnknownMeshType(t))
	}
	s.model.Terminal = rec
	return false
}

////////////////////////////////////////////////////////////////

func (s *encodeState) terminal() bool {
	switch rec := s.model.Terminal.(type) {
	case nil:
		return s.number("terminal kind", siafile.RecordNone)
	case siafile.TerminalOpaque:
		return s.number("terminal kind", siafile.RecordOpaque) ||
			s.bytes("terminal data", rec[:])
	case siafile.MeshTypeRecord:
		return s.meshTypeRecord(rec)
	case siafile.BannerFlag:
		return s.flagRecord(rec.Kind(), uint8(rec))
	case siafile.CompBannerFlag:
		return s.flagRecord(rec.Kind(), uint8(rec))
	case siafile.MatchBallFlag:
		return s.flagRecord(rec.Kind(), uint8(rec))
	case siafile.TeamLogoFlag:
		return s.flagRecord(rec.Kind(), uint8(rec))
	default:
		return s.fail("terminal", ErrUnsupportedRecord{Record: rec})
	}
}

func (s *encodeState) flagRecord(kind string, v uint8) bool {
	return s.number("terminal kind", siafile.RecordKeyed) ||
		s.shortString("record kind", kind) ||
		s.number(kind, v)
}

func (s *encodeState) meshTypeRecord(rec siafile.MeshTypeRecord) bool {
	if !rec.Type.Valid() {
		return s.fail("mesh type", ErrUnknownMeshType(rec.Type))
	}
	if s.number("terminal kind", siafile.RecordKeyed) ||
		s.shortString("record kind", siafile.KindMeshType) ||
		s.number("mesh type", uint8(rec.Type)) {
		return true
	}
	switch rec.Type {
	case siafile.MeshTypeRenderFlags:
		return s.bytes("render flags", rec.Flags[:]) ||
			s.shortString("mesh type value", rec.Value)
	case siafile.MeshTypeVariableLength:
		return s.string("mesh type value", rec.Value)
	default:
		return s.fixedString("mesh type value", rec.Type.FixedWidth(), rec.Value)
	}
}
