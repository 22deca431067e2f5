package siafile

import (
	"encoding/json"
	"errors"
	"fmt"
)

// terminalJSON is the JSON form of a TerminalRecord. Record selects which of
// the other fields are used.
type terminalJSON struct {
	Record uint8  `json:"record"`
	Kind   string `json:"kind,omitempty"`

	// Opaque record.
	Data *[16]byte `json:"data,omitempty"`

	// Mesh type record.
	Type  MeshType `json:"type,omitempty"`
	Flags *[4]byte `json:"flags,omitempty"`
	Value string   `json:"value,omitempty"`

	// Flag records.
	Flag *uint8 `json:"flag,omitempty"`
}

func terminalToJSON(rec TerminalRecord) *terminalJSON {
	if rec == nil {
		return nil
	}
	t := &terminalJSON{Record: rec.RecordKind(), Kind: rec.Kind()}
	switch rec := rec.(type) {
	case TerminalOpaque:
		data := [16]byte(rec)
		t.Data = &data
	case MeshTypeRecord:
		t.Type = rec.Type
		t.Value = rec.Value
		if rec.Type == MeshTypeRenderFlags {
			flags := rec.Flags
			t.Flags = &flags
		}
	case BannerFlag:
		t.Flag = flagPtr(uint8(rec))
	case CompBannerFlag:
		t.Flag = flagPtr(uint8(rec))
	case MatchBallFlag:
		t.Flag = flagPtr(uint8(rec))
	case TeamLogoFlag:
		t.Flag = flagPtr(uint8(rec))
	}
	return t
}

func flagPtr(v uint8) *uint8 {
	return &v
}

func terminalFromJSON(t *terminalJSON) (TerminalRecord, error) {
	if t == nil {
		return nil, nil
	}
	switch t.Record {
	case RecordNone:
		return nil, nil
	case RecordOpaque:
		var rec TerminalOpaque
		if t.Data != nil {
			rec = *t.Data
		}
		return rec, nil
	case RecordKeyed:
	default:
		return nil, fmt.Errorf("unknown terminal record kind %d", t.Record)
	}
	if t.Kind == KindMeshType {
		rec := MeshTypeRecord{Type: t.Type, Value: t.Value}
		if t.Flags != nil {
			rec.Flags = *t.Flags
		}
		return rec, nil
	}
	var v uint8
	if t.Flag != nil {
		v = *t.Flag
	}
	if rec := NewFlagRecord(t.Kind, v); rec != nil {
		return rec, nil
	}
	return nil, fmt.Errorf("unknown terminal record kind %q", t.Kind)
}

// MarshalJSON implements json.Marshaler. Byte arrays are written as arrays of
// numbers, and the terminal record as a tagged object. Models holding NaN or
// infinite floats cannot be marshaled.
func (m *Model) MarshalJSON() (b []byte, err error) {
	type model Model
	return json.Marshal(struct {
		*model
		Terminal *terminalJSON
	}{
		model:    (*model)(m),
		Terminal: terminalToJSON(m.Terminal),
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *Model) UnmarshalJSON(b []byte) (err error) {
	if m == nil {
		return errors.New("nil model")
	}
	type model Model
	var v struct {
		*model
		Terminal *terminalJSON
	}
	var r Model
	v.model = (*model)(&r)
	if err = json.Unmarshal(b, &v); err != nil {
		return err
	}
	if r.Terminal, err = terminalFromJSON(v.Terminal); err != nil {
		return err
	}
	*m = r
	return nil
}
