package siafile

import (
	"testing"
)

func TestLayoutBits(t *testing.T) {
	for _, bits := range []uint32{0, 1, 3, 7, 39, 47, 199, 231, 239, 487, 495, 551, 559, 575, 1023, 1<<31 | 3} {
		if b := LayoutFromBits(bits).Bits(); b != bits {
			t.Errorf("expected bits %d, got %d", bits, b)
		}
	}
	l := LayoutFromBits(1<<31 | 1)
	if l.Reserved != 1<<31 {
		t.Errorf("expected reserved bit, got %X", l.Reserved)
	}
	if !l.Position || l.Normal {
		t.Errorf("unexpected layout %v", l)
	}
}

func TestLayoutStride(t *testing.T) {
	tests := []struct {
		bits   uint32
		stride int
	}{
		{0, 0},
		{1, 12},
		{3, 24},
		{7, 32},
		{39, 48},
		{47, 56},
		{199, 52},
		{231, 68},
		{239, 76},
		{551, 52},
		{575, 68},
		{1 << 7, 0},
		{1023, 108},
	}
	for _, tt := range tests {
		if s := LayoutFromBits(tt.bits).Stride(); s != tt.stride {
			t.Errorf("%d: expected stride %d, got %d", tt.bits, tt.stride, s)
		}
	}
}

func TestLayoutFields(t *testing.T) {
	l := LayoutFromBits(0)
	l.Set(FieldTangent, true)
	l.Set(FieldPosition, true)
	l.Set(FieldUnknownB, true)
	fields := l.Fields()
	want := []VertexField{FieldPosition, FieldTangent, FieldUnknownB}
	if len(fields) != len(want) {
		t.Fatalf("expected %v, got %v", want, fields)
	}
	for i := range want {
		if fields[i] != want[i] {
			t.Errorf("field %d: expected %s, got %s", i, want[i], fields[i])
		}
	}
	if !l.Has(FieldTangent) || l.Has(FieldNormal) || l.Has(VertexField(200)) {
		t.Error("unexpected result from Has")
	}
	if s := l.String(); s != "Position|Tangent|UnknownB" {
		t.Errorf("unexpected result from String: %s", s)
	}
}

func TestLayoutKnown(t *testing.T) {
	if !LayoutFromBits(575).Known() {
		t.Error("expected 575 to be known")
	}
	if LayoutFromBits(1).Known() {
		t.Error("expected 1 to be unknown")
	}
	if s := LayoutFromBits(0).String(); s != "None" {
		t.Errorf("unexpected result from String: %s", s)
	}
	if s := LayoutFromBits(1 << 12).String(); s != "Reserved" {
		t.Errorf("unexpected result from String: %s", s)
	}
}
