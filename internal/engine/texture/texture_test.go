package texture

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

var (
	red   = color.RGBA{255, 0, 0, 255}
	green = color.RGBA{0, 255, 0, 255}
	blue  = color.RGBA{0, 0, 255, 128}
	white = color.RGBA{255, 255, 255, 255}
)

// checker returns a 2x2 image: red green / blue white.
func checker() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, red)
	img.SetRGBA(1, 0, green)
	img.SetRGBA(0, 1, blue)
	img.SetRGBA(1, 1, white)
	return img
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestLoadPNG(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, checker()); err != nil {
		t.Fatalf("png.Encode failed: %v", err)
	}

	img, err := Load(writeFile(t, "checker.png", buf.Bytes()))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 2 {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	if img.RGBAAt(1, 0) != green {
		t.Errorf("pixel (1,0) = %v, want green", img.RGBAAt(1, 0))
	}
}

func TestLoadBMP(t *testing.T) {
	opaque := image.NewRGBA(image.Rect(0, 0, 3, 1))
	opaque.SetRGBA(0, 0, red)
	opaque.SetRGBA(1, 0, green)
	opaque.SetRGBA(2, 0, white)

	var buf bytes.Buffer
	if err := bmp.Encode(&buf, opaque); err != nil {
		t.Fatalf("bmp.Encode failed: %v", err)
	}

	img, err := Load(writeFile(t, "strip.bmp", buf.Bytes()))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if img.RGBAAt(0, 0) != red || img.RGBAAt(2, 0) != white {
		t.Errorf("unexpected pixels: %v %v", img.RGBAAt(0, 0), img.RGBAAt(2, 0))
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.png")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v, want os.ErrNotExist", err)
	}
	if _, err := Load(writeFile(t, "junk.png", []byte("not an image"))); err == nil {
		t.Error("expected error for garbage data")
	}
}

// tgaHeader builds an 18-byte header.
func tgaHeader(imageType byte, w, h int, bpp byte, topToBottom bool) []byte {
	hdr := make([]byte, tgaHeaderSize)
	hdr[2] = imageType
	hdr[12], hdr[13] = byte(w), byte(w>>8)
	hdr[14], hdr[15] = byte(h), byte(h>>8)
	hdr[16] = bpp
	if topToBottom {
		hdr[17] = 0x20
	}
	return hdr
}

func TestDecodeTGAUncompressedBottomUp(t *testing.T) {
	// Bottom row first: blue white, then red green.
	data := tgaHeader(TGATypeUncompressed, 2, 2, 32, false)
	for _, c := range []color.RGBA{blue, white, red, green} {
		data = append(data, c.B, c.G, c.R, c.A)
	}

	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("DecodeTGA failed: %v", err)
	}
	want := checker()
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if img.RGBAAt(x, y) != want.RGBAAt(x, y) {
				t.Errorf("pixel (%d,%d) = %v, want %v", x, y, img.RGBAAt(x, y), want.RGBAAt(x, y))
			}
		}
	}
}

func TestDecodeTGARLE(t *testing.T) {
	data := tgaHeader(TGATypeRLE, 4, 1, 24, true)
	data = append(data,
		0x82, 0, 0, 255, // run of 3 red
		0x00, 0, 255, 0, // raw packet, 1 green
	)

	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("DecodeTGA failed: %v", err)
	}
	for x := 0; x < 3; x++ {
		if img.RGBAAt(x, 0) != red {
			t.Errorf("pixel %d = %v, want red", x, img.RGBAAt(x, 0))
		}
	}
	if img.RGBAAt(3, 0) != green {
		t.Errorf("pixel 3 = %v, want green", img.RGBAAt(3, 0))
	}
}

func TestDecodeTGAErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"short", []byte{0, 0, 2}},
		{"color mapped", append([]byte{0, 1}, make([]byte, 16)...)},
		{"grayscale", tgaHeader(3, 1, 1, 8, false)},
		{"16 bit", tgaHeader(TGATypeUncompressed, 1, 1, 16, false)},
		{"truncated raw", append(tgaHeader(TGATypeUncompressed, 2, 2, 24, false), 1, 2, 3)},
		{"truncated rle", tgaHeader(TGATypeRLE, 2, 2, 24, false)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeTGA(tt.data); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadTGAByExtension(t *testing.T) {
	data := tgaHeader(TGATypeUncompressed, 1, 1, 24, false)
	data = append(data, 255, 0, 0) // BGR blue

	img, err := Load(writeFile(t, "dot.TGA", data))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if img.RGBAAt(0, 0) != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("pixel = %v, want blue", img.RGBAAt(0, 0))
	}
}

func TestFlipVertical(t *testing.T) {
	flipped := FlipVertical(checker())
	if flipped.RGBAAt(0, 0) != blue || flipped.RGBAAt(1, 1) != green {
		t.Errorf("flip: (0,0) = %v, (1,1) = %v", flipped.RGBAAt(0, 0), flipped.RGBAAt(1, 1))
	}
}

func TestToRGBAReanchors(t *testing.T) {
	sub := checker().SubImage(image.Rect(1, 1, 2, 2))
	rgba := ToRGBA(sub)
	if rgba.Bounds() != image.Rect(0, 0, 1, 1) {
		t.Fatalf("bounds = %v", rgba.Bounds())
	}
	if rgba.RGBAAt(0, 0) != white {
		t.Errorf("pixel = %v, want white", rgba.RGBAAt(0, 0))
	}
}

func TestFit(t *testing.T) {
	big := image.NewRGBA(image.Rect(0, 0, 400, 100))
	fitted := Fit(big, 200)
	if fitted.Bounds().Dx() != 200 || fitted.Bounds().Dy() != 50 {
		t.Errorf("Fit bounds = %v, want 200x50", fitted.Bounds())
	}

	small := checker()
	if Fit(small, 200) != small {
		t.Error("Fit should return small images unchanged")
	}
}
