package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/http"
	"testing"
)

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := range w {
		for y := range h {
			img.Set(x, y, c)
		}
	}
	return img
}

func testJPEG(w, h int) []byte {
	var buf bytes.Buffer
	jpeg.Encode(&buf, solid(w, h, color.RGBA{200, 30, 30, 255}), &jpeg.Options{Quality: 90})
	return buf.Bytes()
}

func testPNG(w, h int) []byte {
	var buf bytes.Buffer
	png.Encode(&buf, solid(w, h, color.RGBA{30, 30, 200, 255}))
	return buf.Bytes()
}

func decodeSize(t *testing.T, data []byte) (int, int) {
	t.Helper()
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	return img.Bounds().Dx(), img.Bounds().Dy()
}

func TestPhotoOutputsJPEG(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"jpeg", testJPEG(100, 80)},
		{"png", testPNG(100, 80)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Photo(bytes.NewReader(tt.data))
			if err != nil {
				t.Fatalf("Photo: %v", err)
			}
			if got := http.DetectContentType(out); got != "image/jpeg" {
				t.Errorf("expected image/jpeg, got %s", got)
			}
		})
	}
}

func TestPhotoShrinksKeepingAspect(t *testing.T) {
	out, err := Photo(bytes.NewReader(testPNG(1600, 400)))
	if err != nil {
		t.Fatalf("Photo: %v", err)
	}

	w, h := decodeSize(t, out)
	if w != MaxDimension || h != 200 {
		t.Errorf("expected %dx200, got %dx%d", MaxDimension, w, h)
	}
}

func TestPhotoTallImage(t *testing.T) {
	out, err := Photo(bytes.NewReader(testJPEG(300, 1200)))
	if err != nil {
		t.Fatalf("Photo: %v", err)
	}

	w, h := decodeSize(t, out)
	if w != 200 || h != MaxDimension {
		t.Errorf("expected 200x%d, got %dx%d", MaxDimension, w, h)
	}
}

func TestPhotoSmallImageNotUpscaled(t *testing.T) {
	out, err := Photo(bytes.NewReader(testJPEG(50, 50)))
	if err != nil {
		t.Fatalf("Photo: %v", err)
	}

	if w, h := decodeSize(t, out); w != 50 || h != 50 {
		t.Errorf("small image should not be resized: got %dx%d", w, h)
	}
}

func TestPhotoRejectsOtherFormats(t *testing.T) {
	for _, data := range [][]byte{[]byte("not an image"), []byte("GIF89a...")} {
		_, err := Photo(bytes.NewReader(data))
		if !errors.Is(err, ErrUnsupported) {
			t.Errorf("%q: expected ErrUnsupported, got %v", data, err)
		}
	}
}

func TestPhotoRejectsOversizedUpload(t *testing.T) {
	data := make([]byte, MaxUploadSize+1)
	copy(data, "\x89PNG\r\n\x1a\n")

	_, err := Photo(bytes.NewReader(data))
	if !errors.Is(err, ErrTooLarge) {
		t.Errorf("expected ErrTooLarge, got %v", err)
	}
}
