package siafile

import (
	"strings"
)

// VertexField identifies an attribute of a vertex.
type VertexField uint8

// The order of these constants is the order of the bits in the layout
// bitfield, and the order in which present attributes appear on the wire.
const (
	FieldPosition VertexField = iota
	FieldNormal
	FieldUV1
	FieldUV2
	FieldUnknownA
	FieldTangent
	FieldSkin
	FieldUnknownB
	FieldUnknownC
	FieldUnknownD

	fieldCount
)

var fieldNames = [fieldCount]string{
	FieldPosition: "Position",
	FieldNormal:   "Normal",
	FieldUV1:      "UV1",
	FieldUV2:      "UV2",
	FieldUnknownA: "UnknownA",
	FieldTangent:  "Tangent",
	FieldSkin:     "Skin",
	FieldUnknownB: "UnknownB",
	FieldUnknownC: "UnknownC",
	FieldUnknownD: "UnknownD",
}

// Size in bytes of each field within a vertex record.
var fieldSizes = [fieldCount]int{
	FieldPosition: 12,
	FieldNormal:   12,
	FieldUV1:      8,
	FieldUV2:      8,
	FieldUnknownA: 8,
	FieldTangent:  12 + 4,
	FieldSkin:     4 + 16,
	FieldUnknownB: 0,
	FieldUnknownC: 20,
	FieldUnknownD: 4,
}

// String returns the name of the field.
func (f VertexField) String() string {
	if f >= fieldCount {
		return "Invalid"
	}
	return fieldNames[f]
}

// Size returns the number of bytes the field occupies in a vertex record.
func (f VertexField) Size() int {
	if f >= fieldCount {
		return 0
	}
	return fieldSizes[f]
}

// reservedMask selects the bits of the layout that have no known field.
const reservedMask = ^uint32(1<<fieldCount - 1)

// VertexLayout is the settings bitfield that determines which attributes are
// present for the vertices of a model.
type VertexLayout struct {
	Position bool
	Normal   bool
	UV1      bool
	UV2      bool
	UnknownA bool
	Tangent  bool
	Skinned  bool
	UnknownB bool
	UnknownC bool
	UnknownD bool

	// Reserved holds the bits above the named flags. They are written back
	// unchanged.
	Reserved uint32
}

// LayoutFromBits unpacks a raw bitfield.
func LayoutFromBits(bits uint32) VertexLayout {
	l := VertexLayout{Reserved: bits & reservedMask}
	for f := VertexField(0); f < fieldCount; f++ {
		*l.flag(f) = bits&(1<<f) != 0
	}
	return l
}

func (l *VertexLayout) flag(f VertexField) *bool {
	switch f {
	case FieldPosition:
		return &l.Position
	case FieldNormal:
		return &l.Normal
	case FieldUV1:
		return &l.UV1
	case FieldUV2:
		return &l.UV2
	case FieldUnknownA:
		return &l.UnknownA
	case FieldTangent:
		return &l.Tangent
	case FieldSkin:
		return &l.Skinned
	case FieldUnknownB:
		return &l.UnknownB
	case FieldUnknownC:
		return &l.UnknownC
	case FieldUnknownD:
		return &l.UnknownD
	}
	panic("invalid vertex field")
}

// Has returns whether the given field is enabled.
func (l VertexLayout) Has(f VertexField) bool {
	if f >= fieldCount {
		return false
	}
	return *l.flag(f)
}

// Set enables or disables the given field.
func (l *VertexLayout) Set(f VertexField, v bool) {
	*l.flag(f) = v
}

// Bits packs the layout into its raw bitfield, including reserved bits.
func (l VertexLayout) Bits() uint32 {
	bits := l.Reserved & reservedMask
	for f := VertexField(0); f < fieldCount; f++ {
		if *l.flag(f) {
			bits |= 1 << f
		}
	}
	return bits
}

// Fields returns the enabled fields in wire order. Fields that occupy no
// bytes are included.
func (l VertexLayout) Fields() []VertexField {
	fields := make([]VertexField, 0, fieldCount)
	for f := VertexField(0); f < fieldCount; f++ {
		if *l.flag(f) {
			fields = append(fields, f)
		}
	}
	return fields
}

// Stride returns the number of bytes occupied by a single vertex.
func (l VertexLayout) Stride() int {
	n := 0
	for _, f := range l.Fields() {
		n += f.Size()
	}
	return n
}

// knownLayouts are the vertex types observed in shipped files.
var knownLayouts = map[uint32]bool{
	3:   true,
	7:   true,
	39:  true,
	47:  true,
	199: true,
	231: true,
	239: true,
	487: true,
	495: true,
	551: true,
	559: true,
	575: true,
}

// Known returns whether the layout is one of the vertex types observed in
// shipped files.
func (l VertexLayout) Known() bool {
	return knownLayouts[l.Bits()]
}

// String returns the enabled field names separated by "|".
func (l VertexLayout) String() string {
	fields := l.Fields()
	names := make([]string, 0, len(fields)+1)
	for _, f := range fields {
		names = append(names, f.String())
	}
	if l.Reserved&reservedMask != 0 {
		names = append(names, "Reserved")
	}
	if len(names) == 0 {
		return "None"
	}
	return strings.Join(names, "|")
}
