package screen

import (
	"errors"
	"image"
	"image/color"
	"path/filepath"
	"testing"
)

// fakeSampler serves captures from a virtual desktop image.
func fakeSampler(desktop *image.RGBA, display image.Rectangle) (*Sampler, *[]image.Rectangle) {
	var requests []image.Rectangle
	s := &Sampler{
		bounds: func(int) image.Rectangle { return display },
		capture: func(r image.Rectangle) (*image.RGBA, error) {
			requests = append(requests, r)
			out := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
			for y := 0; y < r.Dy(); y++ {
				for x := 0; x < r.Dx(); x++ {
					out.Set(x, y, desktop.At(r.Min.X+x, r.Min.Y+y))
				}
			}
			return out, nil
		},
	}
	return s, &requests
}

func TestCaptureKeepsRequestedCoordinates(t *testing.T) {
	desktop := image.NewRGBA(image.Rect(0, 0, 200, 100))
	desktop.Set(50, 40, color.RGBA{R: 255, A: 255})

	s, _ := fakeSampler(desktop, image.Rect(0, 0, 200, 100))
	img, err := s.Capture(image.Rect(40, 30, 60, 50))
	if err != nil {
		t.Fatalf("Capture() error = %v", err)
	}
	if img.Bounds() != image.Rect(40, 30, 60, 50) {
		t.Errorf("Bounds() = %v", img.Bounds())
	}
	r, _, _, _ := img.At(50, 40).RGBA()
	if r>>8 != 255 {
		t.Errorf("pixel (50,40) red = %d, want 255", r>>8)
	}
}

func TestCaptureOffsetsSecondaryDisplay(t *testing.T) {
	desktop := image.NewRGBA(image.Rect(0, 0, 400, 100))
	desktop.Set(210, 20, color.RGBA{G: 255, A: 255})

	// Second display sits to the right of a 200px wide primary.
	s, reqs := fakeSampler(desktop, image.Rect(200, 0, 400, 100))
	img, err := s.Capture(image.Rect(0, 0, 50, 50))
	if err != nil {
		t.Fatalf("Capture() error = %v", err)
	}
	if got := (*reqs)[0]; got != image.Rect(200, 0, 250, 50) {
		t.Errorf("absolute capture rect = %v", got)
	}
	_, g, _, _ := img.At(10, 20).RGBA()
	if g>>8 != 255 {
		t.Errorf("pixel (10,20) green = %d, want 255", g>>8)
	}
}

func TestCaptureClampsToDisplay(t *testing.T) {
	s, _ := fakeSampler(image.NewRGBA(image.Rect(0, 0, 100, 100)), image.Rect(0, 0, 100, 100))

	img, err := s.Capture(image.Rect(90, 90, 120, 120))
	if err != nil {
		t.Fatalf("Capture() error = %v", err)
	}
	if img.Bounds() != image.Rect(90, 90, 100, 100) {
		t.Errorf("Bounds() = %v", img.Bounds())
	}

	if _, err := s.Capture(image.Rect(500, 500, 510, 510)); err == nil {
		t.Error("Capture() outside display should fail")
	}
}

func TestCaptureError(t *testing.T) {
	boom := errors.New("no display")
	s := &Sampler{
		bounds:  func(int) image.Rectangle { return image.Rect(0, 0, 10, 10) },
		capture: func(image.Rectangle) (*image.RGBA, error) { return nil, boom },
	}
	if _, err := s.Capture(image.Rect(0, 0, 5, 5)); !errors.Is(err, boom) {
		t.Errorf("Capture() error = %v, want wrapped %v", err, boom)
	}
}

func TestSaveAndLoadPNG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 2, color.RGBA{R: 10, G: 20, B: 30, A: 255})

	path := filepath.Join(t.TempDir(), "capture.png")
	if err := SavePNG(img, path); err != nil {
		t.Fatalf("SavePNG() error = %v", err)
	}
	loaded, err := LoadImage(path)
	if err != nil {
		t.Fatalf("LoadImage() error = %v", err)
	}
	r, g, b, _ := loaded.At(1, 2).RGBA()
	if r>>8 != 10 || g>>8 != 20 || b>>8 != 30 {
		t.Errorf("pixel = (%d,%d,%d), want (10,20,30)", r>>8, g>>8, b>>8)
	}
}
