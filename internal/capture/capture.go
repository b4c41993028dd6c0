package capture

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"shotbot/internal/frame"
)

// ErrCapture ошибка соединения или протокола при захвате экрана
var ErrCapture = errors.New("screen capture failed")

// Source захватывает прямоугольную область экрана целиком.
// Частичных кадров не бывает: либо весь кадр, либо ошибка.
type Source interface {
	Capture(rect image.Rectangle) (*frame.Frame, error)
}

// SourceFunc адаптер функции к Source
type SourceFunc func(rect image.Rectangle) (*frame.Frame, error)

func (f SourceFunc) Capture(rect image.Rectangle) (*frame.Frame, error) { return f(rect) }

// Backend имя реализации захвата в конфигурации
type Backend string

const (
	BackendX11        Backend = "x11"
	BackendScreenshot Backend = "screenshot"
)

// NewSource создает источник кадров по имени бэкенда
func NewSource(backend string) (Source, func() error, error) {
	switch Backend(strings.ToLower(backend)) {
	case BackendX11:
		src, err := NewX11Source("")
		if err != nil {
			return nil, nil, err
		}
		return src, src.Close, nil
	case BackendScreenshot, "":
		return ScreenshotSource{}, func() error { return nil }, nil
	}
	return nil, nil, fmt.Errorf("unknown capture backend %q", backend)
}

func captureErr(rect image.Rectangle, err error) error {
	return fmt.Errorf("%w: rect %v: %v", ErrCapture, rect, err)
}
