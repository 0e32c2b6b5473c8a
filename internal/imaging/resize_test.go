package imaging

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestTargetDimensions(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		maxEdge       int
		wantW, wantH  int
	}{
		{"fits", 100, 50, 128, 100, 50},
		{"exactly max", 128, 128, 128, 128, 128},
		{"wide", 256, 64, 128, 128, 32},
		{"tall", 64, 256, 128, 32, 128},
		{"square oversize", 300, 300, 128, 128, 128},
		{"truncates not rounds", 300, 200, 128, 128, 85},
		{"truncates tall", 199, 300, 128, 84, 128},
		{"wide only over", 129, 1, 128, 128, 0},
		{"extreme wide", 10000, 10, 128, 128, 0},
		{"extreme tall", 3, 1000, 128, 0, 128},
		{"tiny max edge", 5, 3, 1, 1, 0},
		{"one pixel", 1, 1, 1, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TargetDimensions(tt.width, tt.height, tt.maxEdge)
			if err != nil {
				t.Fatalf("TargetDimensions failed: %v", err)
			}
			if got.Width != tt.wantW || got.Height != tt.wantH {
				t.Errorf("TargetDimensions(%d, %d, %d) = %dx%d, want %dx%d",
					tt.width, tt.height, tt.maxEdge, got.Width, got.Height, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestTargetDimensions_Properties(t *testing.T) {
	const maxEdge = 50
	for w := 1; w <= 120; w += 7 {
		for h := 1; h <= 120; h += 5 {
			got, err := TargetDimensions(w, h, maxEdge)
			if err != nil {
				t.Fatalf("TargetDimensions(%d,%d) failed: %v", w, h, err)
			}
			switch {
			case w <= maxEdge && h <= maxEdge:
				if got.Width != w || got.Height != h {
					t.Errorf("%dx%d should pass through, got %dx%d", w, h, got.Width, got.Height)
				}
			case w > h:
				if got.Width != maxEdge || got.Height != maxEdge*h/w {
					t.Errorf("%dx%d: got %dx%d, want %dx%d", w, h, got.Width, got.Height, maxEdge, maxEdge*h/w)
				}
			default:
				if got.Height != maxEdge || got.Width != maxEdge*w/h {
					t.Errorf("%dx%d: got %dx%d, want %dx%d", w, h, got.Width, got.Height, maxEdge*w/h, maxEdge)
				}
			}
		}
	}
}

func TestTargetDimensions_Invalid(t *testing.T) {
	tests := []struct {
		name                   string
		width, height, maxEdge int
	}{
		{"zero width", 0, 10, 128},
		{"zero height", 10, 0, 128},
		{"negative", -5, 10, 128},
		{"zero max edge", 10, 10, 0},
		{"negative max edge", 10, 10, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := TargetDimensions(tt.width, tt.height, tt.maxEdge)
			if !errors.Is(err, ErrInvalidDimensions) {
				t.Errorf("got %v, want ErrInvalidDimensions", err)
			}
		})
	}
}

func TestResize_Dimensions(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		wantW, wantH  int
	}{
		{"wide", 256, 64, 128, 32},
		{"tall", 64, 256, 32, 128},
		{"pass-through", 128, 128, 128, 128},
		{"small", 10, 20, 10, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := createPatternImage(tt.width, tt.height)
			out, err := Resize(img, 128, FilterNearest)
			if err != nil {
				t.Fatalf("Resize failed: %v", err)
			}
			b := out.Bounds()
			if b.Min != (image.Point{}) {
				t.Errorf("origin: got %v, want (0,0)", b.Min)
			}
			if b.Dx() != tt.wantW || b.Dy() != tt.wantH {
				t.Errorf("size: got %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.wantW, tt.wantH)
			}
		})
	}
}

func TestResize_NearestKeepsQuadrantColors(t *testing.T) {
	img := createPatternImage(256, 256)
	out, err := Resize(img, 64, FilterNearest)
	if err != nil {
		t.Fatalf("Resize failed: %v", err)
	}

	tests := []struct {
		x, y int
		want color.NRGBA
	}{
		{5, 5, color.NRGBA{255, 0, 0, 255}},
		{60, 5, color.NRGBA{0, 255, 0, 255}},
		{5, 60, color.NRGBA{0, 0, 255, 255}},
		{60, 60, color.NRGBA{255, 255, 255, 255}},
	}
	for _, tt := range tests {
		if got := out.NRGBAAt(tt.x, tt.y); got != tt.want {
			t.Errorf("pixel (%d,%d): got %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestResize_PassThroughCopies(t *testing.T) {
	img := createInMemoryImage(4, 4, color.RGBA{10, 20, 30, 255})
	out, err := Resize(img, 8, FilterNearest)
	if err != nil {
		t.Fatalf("Resize failed: %v", err)
	}

	out.SetNRGBA(0, 0, color.NRGBA{255, 255, 255, 255})
	if got := img.RGBAAt(0, 0); got != (color.RGBA{10, 20, 30, 255}) {
		t.Errorf("source mutated through result: got %v", got)
	}
}

func TestResize_OffsetBounds(t *testing.T) {
	full := createPatternImage(200, 100)
	sub := full.SubImage(image.Rect(100, 0, 200, 100)) // green/white half

	out, err := Resize(sub, 50, FilterNearest)
	if err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	if out.Bounds() != image.Rect(0, 0, 50, 50) {
		t.Fatalf("bounds: got %v", out.Bounds())
	}
	if got := out.NRGBAAt(0, 0); got != (color.NRGBA{0, 255, 0, 255}) {
		t.Errorf("top-left: got %v, want green", got)
	}
}

func TestResize_ZeroEdge(t *testing.T) {
	img := createInMemoryImage(1000, 3, color.White)
	out, err := Resize(img, 128, FilterNearest)
	if err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	if out.Bounds().Dx() != 128 || out.Bounds().Dy() != 0 {
		t.Errorf("size: got %dx%d, want 128x0", out.Bounds().Dx(), out.Bounds().Dy())
	}
}

func TestResize_AllFilters(t *testing.T) {
	img := createPatternImage(90, 30)
	for _, f := range []Filter{FilterNearest, FilterBox, FilterLinear, FilterCatmullRom, FilterLanczos} {
		t.Run(string(f), func(t *testing.T) {
			out, err := Resize(img, 45, f)
			if err != nil {
				t.Fatalf("Resize failed: %v", err)
			}
			if out.Bounds().Dx() != 45 || out.Bounds().Dy() != 15 {
				t.Errorf("size: got %v", out.Bounds())
			}
		})
	}
}

func TestResize_Deterministic(t *testing.T) {
	img := createPatternImage(333, 111)
	a, err := Resize(img, 100, FilterBox)
	if err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	b, _ := Resize(img, 100, FilterBox)
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			t.Fatalf("byte %d differs between runs", i)
		}
	}
}

func TestResize_Errors(t *testing.T) {
	img := createInMemoryImage(10, 10, color.White)

	if _, err := Resize(img, 0, FilterNearest); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("max edge 0: got %v, want ErrInvalidDimensions", err)
	}
	if _, err := Resize(img, 5, Filter("sharpest")); err == nil {
		t.Error("unknown filter should fail")
	}
	empty := image.NewRGBA(image.Rect(0, 0, 0, 0))
	if _, err := Resize(empty, 5, FilterNearest); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("empty image: got %v, want ErrInvalidDimensions", err)
	}
}

func TestParseFilter(t *testing.T) {
	tests := []struct {
		in      string
		want    Filter
		wantErr bool
	}{
		{"", FilterNearest, false},
		{"nearest", FilterNearest, false},
		{" Box ", FilterBox, false},
		{"LANCZOS", FilterLanczos, false},
		{"catmullrom", FilterCatmullRom, false},
		{"bicubic", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFilter(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseFilter(%q) should fail", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFilter(%q) failed: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseFilter(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}
