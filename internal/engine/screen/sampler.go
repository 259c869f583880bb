package screen

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/kbinani/screenshot"
)

// Sampler captures pixels from one display. Coordinates are display-local:
// (0, 0) is the top-left corner of the selected display.
type Sampler struct {
	DisplayIndex int

	// capture grabs an absolute screen rectangle; replaced in tests.
	capture func(image.Rectangle) (*image.RGBA, error)
	bounds  func(int) image.Rectangle
}

// NewSampler creates a sampler on the main display
func NewSampler() *Sampler {
	return &Sampler{
		DisplayIndex: 0,
		capture:      screenshot.CaptureRect,
		bounds:       screenshot.GetDisplayBounds,
	}
}

// SetDisplayID sets the target display index for capturing
func (s *Sampler) SetDisplayID(index int) {
	s.DisplayIndex = index
}

// DisplayBounds returns the absolute bounds of the selected display.
func (s *Sampler) DisplayBounds() image.Rectangle {
	return s.bounds(s.DisplayIndex)
}

// CaptureScreen returns the whole display
func (s *Sampler) CaptureScreen() (image.Image, error) {
	bounds := s.DisplayBounds()
	return s.Capture(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
}

// Capture grabs region (display-local) and returns an image whose Bounds()
// equal the captured part of region, so callers index it with the same
// coordinates they asked for.
func (s *Sampler) Capture(region image.Rectangle) (image.Image, error) {
	display := s.DisplayBounds()
	local := region.Intersect(image.Rect(0, 0, display.Dx(), display.Dy()))
	if local.Empty() {
		return nil, fmt.Errorf("region %v is outside display %d (%dx%d)", region, s.DisplayIndex, display.Dx(), display.Dy())
	}

	img, err := s.capture(local.Add(display.Min))
	if err != nil {
		return nil, fmt.Errorf("failed to capture screen %d: %w", s.DisplayIndex, err)
	}
	relocate(img, local.Min)
	return img, nil
}

// relocate moves img's bounds to start at origin without copying pixels.
func relocate(img *image.RGBA, origin image.Point) {
	img.Rect = img.Rect.Sub(img.Rect.Min).Add(origin)
}

// LoadImage loads a PNG from the filesystem
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return png.Decode(f)
}

// SavePNG writes img to path.
func SavePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// NumDisplays returns the number of active displays.
func NumDisplays() int {
	return screenshot.NumActiveDisplays()
}

// DisplayLabel describes display i for selectors, e.g. "Display 0 (1920x1080)".
func DisplayLabel(i int) string {
	b := screenshot.GetDisplayBounds(i)
	return fmt.Sprintf("Display %d (%dx%d)", i, b.Dx(), b.Dy())
}
