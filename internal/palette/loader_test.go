package palette

import (
	"errors"
	"testing"
)

func TestFromMappings_PreservesOrder(t *testing.T) {
	p, invalid := FromMappings([]Mapping{
		{Key: "FFFFFF", Label: "WHITE_WOOL"},
		{Key: "000000", Label: "BLACK_WOOL"},
		{Key: "B02E26", Label: "RED_WOOL"},
	}, Materials())

	if len(invalid) != 0 {
		t.Fatalf("unexpected invalid entries: %v", invalid)
	}

	want := []string{"WHITE_WOOL", "BLACK_WOOL", "RED_WOOL"}
	entries := p.Entries()
	if len(entries) != len(want) {
		t.Fatalf("got %d entries, want %d", len(entries), len(want))
	}
	for i, e := range entries {
		if e.Label != want[i] {
			t.Errorf("entry %d: got %s, want %s", i, e.Label, want[i])
		}
	}
	if entries[2].Color != RGB(0xB0, 0x2E, 0x26) {
		t.Errorf("entry 2 color: got %v", entries[2].Color)
	}
}

func TestFromMappings_SkipsInvalid(t *testing.T) {
	p, invalid := FromMappings([]Mapping{
		{Key: "FFFFFF", Label: "WHITE_WOOL"},
		{Key: "NOTHEX", Label: "BLACK_WOOL"},
		{Key: "123456", Label: "NOT_A_BLOCK"},
		{Key: "F9801D", Label: "minecraft:orange_wool"},
	}, Materials())

	if p.Len() != 2 {
		t.Fatalf("got %d entries, want 2", p.Len())
	}
	if got := p.Entries()[1].Label; got != "ORANGE_WOOL" {
		t.Errorf("label not canonicalized: got %s", got)
	}

	if len(invalid) != 2 {
		t.Fatalf("got %d invalid entries, want 2", len(invalid))
	}
	for _, err := range invalid {
		if !errors.Is(err, ErrInvalidEntry) {
			t.Errorf("error %v should match ErrInvalidEntry", err)
		}
		var iee *InvalidEntryError
		if !errors.As(err, &iee) {
			t.Errorf("error %v should be *InvalidEntryError", err)
		}
	}
}

func TestFromMappings_NilResolverAcceptsAnyLabel(t *testing.T) {
	p, invalid := FromMappings([]Mapping{
		{Key: "010203", Label: "anything goes"},
		{Key: "040506", Label: ""},
	}, nil)

	if p.Len() != 1 {
		t.Errorf("got %d entries, want 1", p.Len())
	}
	if len(invalid) != 1 {
		t.Errorf("got %d invalid entries, want 1 (empty label)", len(invalid))
	}
}

func TestFromMappings_AllInvalidYieldsEmptyPalette(t *testing.T) {
	p, invalid := FromMappings([]Mapping{{Key: "zz", Label: "WHITE_WOOL"}}, Materials())
	if p.Len() != 0 {
		t.Errorf("got %d entries, want 0", p.Len())
	}
	if len(invalid) != 1 {
		t.Errorf("got %d invalid entries, want 1", len(invalid))
	}
	if _, err := p.Closest(RGB(0, 0, 0)); !errors.Is(err, ErrNoPaletteConfigured) {
		t.Errorf("Closest: got %v, want ErrNoPaletteConfigured", err)
	}
}

func TestMaterials_Resolve(t *testing.T) {
	m := Materials()
	if m.Len() < 16 {
		t.Fatalf("embedded material list too small: %d", m.Len())
	}

	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"WHITE_WOOL", "WHITE_WOOL", true},
		{"white_wool", "WHITE_WOOL", true},
		{"minecraft:white_wool", "WHITE_WOOL", true},
		{"Light Blue Wool", "LIGHT_BLUE_WOOL", true},
		{"light-gray-concrete", "LIGHT_GRAY_CONCRETE", true},
		{"  STONE  ", "STONE", true},
		{"DIAMOND_SWORD", "DIAMOND_SWORD", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := m.Resolve(tt.in)
			if ok != tt.wantOK {
				t.Fatalf("Resolve(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewMaterialSet(t *testing.T) {
	m := NewMaterialSet("custom block", "", "minecraft:glass")
	if m.Len() != 2 {
		t.Errorf("Len = %d, want 2", m.Len())
	}
	if _, ok := m.Resolve("CUSTOM_BLOCK"); !ok {
		t.Error("CUSTOM_BLOCK should resolve")
	}
	if _, ok := m.Resolve("glass"); !ok {
		t.Error("glass should resolve")
	}
}
