package capture

import (
	"fmt"
	"image"

	"github.com/kbinani/screenshot"

	"shotbot/internal/frame"
)

// ScreenshotSource захват через kbinani/screenshot (Windows, macOS, X11)
type ScreenshotSource struct{}

// Capture захватывает область и переупаковывает RGBA в порядок захвата BGRA
func (ScreenshotSource) Capture(rect image.Rectangle) (*frame.Frame, error) {
	img, err := screenshot.CaptureRect(rect)
	if err != nil {
		return nil, captureErr(rect, err)
	}
	f := frame.FromRGBA(img)
	f.Origin = rect.Min
	return f, nil
}

// CheckDisplay находит монитор с точкой p и проверяет, что он один и начинается в (0, 0)
func CheckDisplay(p image.Point) (image.Rectangle, error) {
	n := screenshot.NumActiveDisplays()
	if n == 0 {
		return image.Rectangle{}, fmt.Errorf("no active displays found")
	}
	for i := 0; i < n; i++ {
		bounds := screenshot.GetDisplayBounds(i)
		if !p.In(bounds) {
			continue
		}
		if bounds.Min != (image.Point{}) {
			return bounds, fmt.Errorf("multi-monitor not yet supported: display %d at %v", i, bounds)
		}
		return bounds, nil
	}
	return image.Rectangle{}, fmt.Errorf("point %v is outside of all %d displays", p, n)
}
