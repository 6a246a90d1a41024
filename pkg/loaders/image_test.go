package loaders

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

// TestLoadImage creates a test PNG and verifies loading
func TestLoadImage(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.png")

	// Create a simple 2x2 test image
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255}) // Top-left: white
	img.Set(1, 0, color.RGBA{R: 255, G: 0, B: 0, A: 255})     // Top-right: red
	img.Set(0, 1, color.RGBA{R: 0, G: 255, B: 0, A: 255})     // Bottom-left: green
	img.Set(1, 1, color.RGBA{R: 0, G: 0, B: 255, A: 255})     // Bottom-right: blue

	f, err := os.Create(testFile)
	if err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		t.Fatalf("Failed to encode PNG: %v", err)
	}
	f.Close()

	fb, err := LoadImage(testFile)
	if err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}

	if fb.Width != 2 || fb.Height != 2 {
		t.Errorf("Expected 2x2 image, got %dx%d", fb.Width, fb.Height)
	}

	// ColorAt counts rows from the bottom
	tests := []struct {
		name     string
		x, y     int
		expected core.Vec3
	}{
		{"top-left white", 0, 1, core.NewVec3(1, 1, 1)},
		{"top-right red", 1, 1, core.NewVec3(1, 0, 0)},
		{"bottom-left green", 0, 0, core.NewVec3(0, 1, 0)},
		{"bottom-right blue", 1, 0, core.NewVec3(0, 0, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fb.ColorAt(tt.x, tt.y); !got.ApproxEquals(tt.expected, 1e-6) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

// TestLoadImageNotFound verifies error handling for missing files
func TestLoadImageNotFound(t *testing.T) {
	_, err := LoadImage("nonexistent.png")
	if err == nil {
		t.Error("Expected error for non-existent file, got nil")
	}
}

func testFramebuffer() *renderer.Framebuffer {
	fb := renderer.NewFramebuffer(8, 6)
	for row := 0; row < fb.Height; row++ {
		for x := 0; x < fb.Width; x++ {
			fb.SetRGB(x, row, uint8(x*30), uint8(row*40), 128)
		}
	}
	return fb
}

func TestSaveImage_RoundTrip(t *testing.T) {
	tests := []struct {
		filename string
		lossy    bool
	}{
		{"out.png", false},
		{"out.bmp", false},
		{"out.tif", false},
		{"out.TIFF", false},
		{"out.jpg", true},
		{"out.jpeg", true},
	}

	src := testFramebuffer()
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.filename)
			if err := SaveImage(path, src); err != nil {
				t.Fatalf("SaveImage failed: %v", err)
			}

			loaded, err := LoadImage(path)
			if err != nil {
				t.Fatalf("LoadImage failed: %v", err)
			}
			if loaded.Width != src.Width || loaded.Height != src.Height {
				t.Fatalf("Expected %dx%d, got %dx%d", src.Width, src.Height, loaded.Width, loaded.Height)
			}

			maxDiff, totalDiff := 0, 0
			for i := range src.Pix {
				diff := int(src.Pix[i]) - int(loaded.Pix[i])
				if diff < 0 {
					diff = -diff
				}
				maxDiff = max(maxDiff, diff)
				totalDiff += diff
			}

			if !tt.lossy && maxDiff != 0 {
				t.Errorf("Expected lossless round trip, max byte difference %d", maxDiff)
			}
			if meanDiff := float64(totalDiff) / float64(len(src.Pix)); tt.lossy && meanDiff > 12 {
				t.Errorf("Expected mean byte difference <= 12, got %f", meanDiff)
			}
		})
	}
}

func TestSaveImage_UnknownFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.webp")

	err := SaveImage(path, testFramebuffer())
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Expected ErrUnknownFormat, got %v", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("Expected no file to be created for an unknown format")
	}
}
