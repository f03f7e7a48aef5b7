package texview

import (
	"errors"
	"testing"

	"github.com/woozymasta/bcn"
)

func TestTypedAccessChecks(t *testing.T) {
	t.Parallel()

	c, err := NewCube(6, 2, bcn.FormatRGBA8, Dimensions{4, 4})
	if err != nil {
		t.Fatalf("NewCube: %v", err)
	}

	n, err := SizeOf[uint16](c)
	if err != nil {
		t.Fatalf("SizeOf[uint16]: %v", err)
	}
	if n != 6*(64+16)/2 {
		t.Fatalf("SizeOf[uint16] = %d, want %d", n, 6*(64+16)/2)
	}

	if _, err := SizeOf[uint64](c); !errors.Is(err, ErrTexelTooWide) || !IsContractViolation(err) {
		t.Fatalf("SizeOf[uint64]: %v", err)
	}
	if _, err := DataOf[[8]byte](c); !errors.Is(err, ErrTexelTooWide) {
		t.Fatalf("DataOf[[8]byte]: %v", err)
	}
	if _, err := SizeOf[struct{}](c); !errors.Is(err, ErrTexelSizeMismatch) {
		t.Fatalf("SizeOf[struct{}]: %v", err)
	}

	// Reads may cover part of a block, writes must cover exactly one.
	if _, err := DataOf[uint16](c); err != nil {
		t.Fatalf("DataOf[uint16]: %v", err)
	}
	if err := ClearTexel(c, uint16(1)); !errors.Is(err, ErrTexelSizeMismatch) || !IsContractViolation(err) {
		t.Fatalf("ClearTexel[uint16]: %v", err)
	}
	if err := ClearTexel(c, uint64(1)); !errors.Is(err, ErrTexelSizeMismatch) {
		t.Fatalf("ClearTexel[uint64]: %v", err)
	}
	if err := ClearTexel(c.WithFormat(bcn.FormatDXT5), uint32(1)); !errors.Is(err, ErrIncompatibleFormat) {
		t.Fatalf("ClearTexel through wider format: %v", err)
	}
}

func TestDataOfAliasesStorage(t *testing.T) {
	t.Parallel()

	c, err := NewCube(1, 1, bcn.FormatRGBA8, Dimensions{2, 2})
	if err != nil {
		t.Fatalf("NewCube: %v", err)
	}

	values, err := DataOf[uint32](c)
	if err != nil {
		t.Fatalf("DataOf: %v", err)
	}
	if len(values) != 4 {
		t.Fatalf("len = %d, want 4", len(values))
	}
	values[2] = 0xFFFFFFFF

	raw := c.Storage().Data()
	for i := 8; i < 12; i++ {
		if raw[i] != 0xFF {
			t.Fatalf("byte %d = %#x, typed write not visible", i, raw[i])
		}
	}
}

func TestDataOfSpansSkippedLevels(t *testing.T) {
	t.Parallel()

	c, err := NewCube(6, 2, bcn.FormatRGBA8, Dimensions{4, 4})
	if err != nil {
		t.Fatalf("NewCube: %v", err)
	}
	top, err := c.Slice(0, 1, 0, 0)
	if err != nil {
		t.Fatalf("Slice: %v", err)
	}

	n, err := SizeOf[uint32](top)
	if err != nil {
		t.Fatalf("SizeOf: %v", err)
	}
	values, err := DataOf[uint32](top)
	if err != nil {
		t.Fatalf("DataOf: %v", err)
	}
	// Two 64-byte base levels with face 0's 16-byte level 1 between them.
	if n != 2*16 || len(values) != (64+16+64)/4 {
		t.Fatalf("SizeOf = %d, len(DataOf) = %d, want 32 and 36", n, len(values))
	}
}

func TestViewWithin(t *testing.T) {
	t.Parallel()

	parent := View{BaseLayer: 0, MaxLayer: 1, BaseFace: 2, MaxFace: 5, BaseLevel: 0, MaxLevel: 3}

	tests := []struct {
		name  string
		child View
		want  bool
	}{
		{name: "same", child: parent, want: true},
		{name: "narrow", child: View{MaxLayer: 0, BaseFace: 3, MaxFace: 4, BaseLevel: 1, MaxLevel: 2}, want: true},
		{name: "face-below", child: View{MaxLayer: 0, BaseFace: 1, MaxFace: 4, MaxLevel: 2}, want: false},
		{name: "level-above", child: View{MaxLayer: 0, BaseFace: 2, MaxFace: 4, MaxLevel: 4}, want: false},
		{name: "reversed", child: View{MaxLayer: 0, BaseFace: 4, MaxFace: 3, MaxLevel: 0}, want: false},
	}

	for _, tc := range tests {
		if got := tc.child.Within(parent); got != tc.want {
			t.Fatalf("%s: Within = %v, want %v", tc.name, got, tc.want)
		}
	}
}
