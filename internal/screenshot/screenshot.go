package screenshot

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"

	"shotbot/internal/capture"
	"shotbot/internal/frame"
)

// ScreenshotManager снимки экрана для осмотра и отладки
type ScreenshotManager struct {
	source      capture.Source
	dir         string
	saveLocally bool
}

// NewScreenshotManager создает менеджер; saveLocally включает сохранение отладочных снимков
func NewScreenshotManager(source capture.Source, dir string, saveLocally bool) *ScreenshotManager {
	return &ScreenshotManager{source: source, dir: dir, saveLocally: saveLocally}
}

// ShouldSaveLocally возвращает true, если снимки должны сохраняться на диск
func (m *ScreenshotManager) ShouldSaveLocally() bool {
	return m.saveLocally
}

// CaptureScreenshot захватывает область в память
func (m *ScreenshotManager) CaptureScreenshot(rect image.Rectangle) (*frame.Frame, error) {
	f, err := m.source.Capture(rect)
	if err != nil {
		return nil, fmt.Errorf("failed to capture screenshot: %w", err)
	}
	return f, nil
}

// SaveScreenshot захватывает область и всегда сохраняет её в dir/name
func (m *ScreenshotManager) SaveScreenshot(rect image.Rectangle, name string) (string, error) {
	f, err := m.CaptureScreenshot(rect)
	if err != nil {
		return "", err
	}
	path := filepath.Join(m.dir, name)
	if err := SaveFrame(f, path); err != nil {
		return "", err
	}
	return path, nil
}

// SaveDebugFrame сохраняет кадр с отметкой времени, если включено сохранение снимков
func (m *ScreenshotManager) SaveDebugFrame(f *frame.Frame, prefix string) (string, error) {
	if !m.saveLocally {
		return "", nil
	}
	path := filepath.Join(m.dir, fmt.Sprintf("%s_%d.png", prefix, time.Now().UnixNano()))
	if err := SaveFrame(f, path); err != nil {
		return "", err
	}
	return path, nil
}

// SaveFrame пишет кадр в файл; формат по расширению (png, jpg, bmp, tiff, gif)
func SaveFrame(f *frame.Frame, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	if err := imaging.Save(f.ToImage(), path); err != nil {
		return fmt.Errorf("failed to save snapshot %s: %w", path, err)
	}
	return nil
}

// FrameToPNG кодирует кадр в PNG для хранения в базе
func FrameToPNG(f *frame.Frame) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, f.ToImage()); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}
