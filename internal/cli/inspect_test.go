package cli

import (
	"testing"

	"github.com/matzehuels/bookrack/pkg/color"
	"github.com/matzehuels/bookrack/pkg/item"
	"github.com/matzehuels/bookrack/pkg/scene"
)

func ptr(v float64) *float64 { return &v }

func TestBookRows(t *testing.T) {
	edge := color.RGB(0, 128, 128)
	specs := []item.BookSpec{
		{Height: 30, Width: 4.8, BaseColor: color.Gray(240)},
		{
			Height:      25.5,
			Width:       3,
			BaseColor:   color.RGB(255, 0, 0),
			EdgeRatio:   ptr(0.15),
			EdgeColor:   &edge,
			ShadowLevel: ptr(0.5),
			ShadowRatio: ptr(0.3),
		},
	}

	rows := bookRows(specs)
	want := [][]string{
		{"1", "30.00", "4.80", "#f0f0f0", "-", "-", "-"},
		{"2", "25.50", "3.00", "#ff0000", "0.15 #008080", "-", "0.50 / 0.30"},
	}
	if len(rows) != len(want) {
		t.Fatalf("len(rows) = %d, want %d", len(rows), len(want))
	}
	for i := range want {
		for j := range want[i] {
			if rows[i][j] != want[i][j] {
				t.Errorf("rows[%d][%d] = %q, want %q", i, j, rows[i][j], want[i][j])
			}
		}
	}
}

func TestCellColorDropsAlpha(t *testing.T) {
	spec := item.BookSpec{Height: 1, Width: 1, BaseColor: color.RGB(1, 2, 3).WithAlpha(180)}
	if got := cellColor(spec, 3); got != "#010203" {
		t.Errorf("cellColor(base) = %q, want #010203", got)
	}
	if got := cellColor(spec, 4); got != "" {
		t.Errorf("cellColor(missing edge) = %q, want empty", got)
	}
}

func TestPaletteColors(t *testing.T) {
	cfg := scene.Default()
	a, err := paletteColors(cfg, 12)
	if err != nil {
		t.Fatalf("paletteColors: %v", err)
	}
	if len(a) != 12 {
		t.Fatalf("len = %d, want 12", len(a))
	}
	b, _ := paletteColors(cfg, 12)
	for i := range a {
		if a[i].Hex() != b[i].Hex() {
			t.Errorf("palette not deterministic at %d: %s vs %s", i, a[i].Hex(), b[i].Hex())
		}
	}

	cfg.ColorMap = "nope"
	if _, err := paletteColors(cfg, 1); err == nil {
		t.Error("expected error for unknown colour map")
	}
}

func TestBookTableRenders(t *testing.T) {
	specs := []item.BookSpec{{Height: 10, Width: 2, BaseColor: color.Gray(10)}}
	if out := bookTable(specs).Render(); out == "" {
		t.Error("empty table")
	}
}
