package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ironsheep/image-builder-mcp/internal/config"
)

func setup(t *testing.T) (cfgPath, imgPath string) {
	t.Helper()
	t.Setenv(config.EnvMaxEdge, "")
	dir := t.TempDir()

	cfgPath = filepath.Join(dir, "config.yml")
	cfg := "maxEdge: 4\ncolorBlockMap:\n  \"FF0000\": RED_WOOL\n  \"0000FF\": BLUE_WOOL\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if y < 4 {
				img.Set(x, y, color.RGBA{240, 10, 10, 255})
			} else {
				img.Set(x, y, color.RGBA{10, 10, 240, 255})
			}
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode failed: %v", err)
	}
	imgPath = filepath.Join(dir, "in.png")
	if err := os.WriteFile(imgPath, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return cfgPath, imgPath
}

func TestRun_NoArguments(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run(nil, &stdout, &stderr); code != 2 {
		t.Errorf("exit code: got %d, want 2", code)
	}
	if !strings.HasPrefix(stderr.String(), "Usage: buildimage <imageURL>") {
		t.Errorf("usage not printed: %q", stderr.String())
	}
	if stdout.Len() != 0 {
		t.Errorf("nothing should be built, stdout: %q", stdout.String())
	}
}

func TestRun_Build(t *testing.T) {
	cfgPath, imgPath := setup(t)
	preview := filepath.Join(filepath.Dir(imgPath), "preview.png")

	var stdout, stderr bytes.Buffer
	args := []string{"-config", cfgPath, "-rows", "-x", "5", "-p", preview, "-scale", "2", imgPath}
	if code := run(args, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, stderr.String())
	}

	out := stdout.String()
	for _, want := range []string{
		"source: 8x8 png",
		"grid:   4x4 at (5, 0, 0)",
		"RED_WOOL",
		"BLUE_WOOL",
		"RED_WOOL RED_WOOL RED_WOOL RED_WOOL\n",
		"Preview written to",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	f, err := os.Open(preview)
	if err != nil {
		t.Fatalf("preview not written: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("preview is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 8 {
		t.Errorf("preview size: got %dx%d, want 8x8", b.Dx(), b.Dy())
	}
}

func TestRun_Failures(t *testing.T) {
	cfgPath, imgPath := setup(t)

	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantErr  string
	}{
		{"missing image", []string{"-config", cfgPath, imgPath + ".nope"}, 1, "fetch_error"},
		{"not an image", []string{"-config", cfgPath, cfgPath}, 1, "decode_error"},
		{"missing config", []string{"-config", cfgPath + ".nope", imgPath}, 1, "Failed to load config"},
		{"negative max edge", []string{"-max-edge", "-1", imgPath}, 2, "cannot be negative"},
		{"unknown flag", []string{"-nope", imgPath}, 2, "flag provided but not defined"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if code := run(tt.args, &stdout, &stderr); code != tt.wantCode {
				t.Errorf("exit code: got %d, want %d", code, tt.wantCode)
			}
			if !strings.Contains(stderr.String(), tt.wantErr) {
				t.Errorf("stderr missing %q: %s", tt.wantErr, stderr.String())
			}
		})
	}
}

func TestToURL(t *testing.T) {
	if got := toURL("https://example.com/a.png"); got != "https://example.com/a.png" {
		t.Errorf("URL changed: %s", got)
	}
	got := toURL("some/image.png")
	if !strings.HasPrefix(got, "file:///") || !strings.HasSuffix(got, "/some/image.png") {
		t.Errorf("local path: got %s", got)
	}
}
