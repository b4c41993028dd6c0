package locator

import (
	"errors"
	"fmt"
	"image"

	"shotbot/internal/frame"
)

// ErrInsufficientData кадр меньше шаблона
var ErrInsufficientData = errors.New("frame is shorter than template")

// MatchResult лучшее совпадение шаблона в кадре
type MatchResult struct {
	Point  image.Point // экранные координаты центра совпадения
	Score  int         // минимальная сумма модулей разностей по байтам
	Offset int         // байтовое смещение окна в буфере кадра
}

// Locate ищет шаблон в кадре, сдвигая окно на каждый байт буфера.
// Окна, не выровненные по пикселю, тоже участвуют в поиске.
func Locate(f *frame.Frame, t Template) (MatchResult, error) {
	return LocateStride(f, t, 1)
}

// LocateStride то же, что Locate, но с заданным шагом окна (4 = только по пикселям)
func LocateStride(f *frame.Frame, t Template, stride int) (MatchResult, error) {
	if stride <= 0 {
		return MatchResult{}, fmt.Errorf("invalid search stride %d", stride)
	}
	tmpl := t.Pix
	if len(tmpl) == 0 {
		return MatchResult{}, errors.New("empty template")
	}
	if len(f.Pix) < len(tmpl) {
		return MatchResult{}, fmt.Errorf("%w: %d < %d bytes", ErrInsufficientData, len(f.Pix), len(tmpl))
	}

	bestOffset, bestScore := -1, 0
	last := len(f.Pix) - len(tmpl)
	for off := 0; off <= last; off += stride {
		score := sad(f.Pix[off:off+len(tmpl)], tmpl, bestScore, bestOffset >= 0)
		// при равенстве остается более раннее смещение
		if bestOffset < 0 || score < bestScore {
			bestOffset, bestScore = off, score
		}
	}

	// центрируем совпадение на середине шаблона
	index := (bestOffset + len(tmpl)/2) / frame.BytesPerPixel
	return MatchResult{
		Point:  f.PixelToPoint(index),
		Score:  bestScore,
		Offset: bestOffset,
	}, nil
}

// sad сумма модулей разностей; прерывается, как только сумма не может стать лучше limit
func sad(window, tmpl []byte, limit int, bounded bool) int {
	sum := 0
	for i, want := range tmpl {
		d := int(window[i]) - int(want)
		if d < 0 {
			d = -d
		}
		sum += d
		if bounded && sum >= limit {
			return sum
		}
	}
	return sum
}
