package window

import (
	"fmt"
	"image"

	"shotbot/internal/capture"
	"shotbot/internal/logger"
)

// WindowInitializer находит окно игры на экране
type WindowInitializer struct {
	source    capture.Source
	screen    image.Rectangle
	topOffset int
	logger    *logger.LoggerManager
}

// NewWindowInitializer создает новый экземпляр WindowInitializer; topOffset пропускает
// панели сверху экрана
func NewWindowInitializer(source capture.Source, screen image.Rectangle, topOffset int, loggerManager *logger.LoggerManager) *WindowInitializer {
	return &WindowInitializer{
		source:    source,
		screen:    screen,
		topOffset: topOffset,
		logger:    loggerManager,
	}
}

// DetectGameOrigin снимает весь экран и возвращает левый верхний угол окна игры
func (w *WindowInitializer) DetectGameOrigin() (image.Point, error) {
	f, err := w.source.Capture(w.screen)
	if err != nil {
		return image.Point{}, fmt.Errorf("ошибка захвата экрана: %w", err)
	}
	rect, err := FindGameWindow(f, w.topOffset)
	if err != nil {
		return image.Point{}, fmt.Errorf("окно не найдено: %w", err)
	}
	w.logger.Info("🪟 Окно игры найдено: %v (%dx%d)", rect.Min, rect.Dx(), rect.Dy())
	return rect.Min, nil
}
