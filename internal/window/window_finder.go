package window

import (
	"errors"
	"image"

	"shotbot/internal/frame"
)

// ErrWindowNotFound на кадре нет ни одного нечерного пикселя
var ErrWindowNotFound = errors.New("game window not found")

// blackLevel каналы ниже порога считаются черной рамкой
const blackLevel = 10

func isBlack(f *frame.Frame, x, y int) bool {
	r, g, b := f.At(x, y)
	return r < blackLevel && g < blackLevel && b < blackLevel
}

// FindGameWindow ищет первую нечерную точку ниже skipTop строк, затем расширяет
// прямоугольник до черной границы по строке и столбцу этой точки.
// Результат в экранных координатах.
func FindGameWindow(f *frame.Frame, skipTop int) (image.Rectangle, error) {
	startX, startY := -1, -1
	for y := skipTop; y < f.Height && startY < 0; y++ {
		for x := 0; x < f.Width; x++ {
			if !isBlack(f, x, y) {
				startX, startY = x, y
				break
			}
		}
	}
	if startY < 0 {
		return image.Rectangle{}, ErrWindowNotFound
	}

	left, right := startX, startX
	for x := startX + 1; x < f.Width && !isBlack(f, x, startY); x++ {
		right = x
	}
	for x := startX - 1; x >= 0 && !isBlack(f, x, startY); x-- {
		left = x
	}
	top, bottom := startY, startY
	for y := startY + 1; y < f.Height && !isBlack(f, startX, y); y++ {
		bottom = y
	}
	for y := startY - 1; y >= skipTop && !isBlack(f, startX, y); y-- {
		top = y
	}

	return image.Rect(left, top, right+1, bottom+1).Add(f.Origin), nil
}
