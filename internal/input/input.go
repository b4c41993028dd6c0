package input

import (
	"fmt"
	"image"
	"strings"
)

// Button кнопка мыши
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
)

func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	case ButtonMiddle:
		return "middle"
	}
	return fmt.Sprintf("button%d", int(b))
}

// Pointer синтетический ввод мыши. Ошибка любого вызова прерывает текущую операцию.
type Pointer interface {
	Move(x, y int) error
	Press(b Button) error
	Release(b Button) error
	Position() (image.Point, error)
}

// Click нажимает и отпускает кнопку
func Click(p Pointer, b Button) error {
	if err := p.Press(b); err != nil {
		return err
	}
	return p.Release(b)
}

// MoveTo перемещает указатель в точку
func MoveTo(p Pointer, pt image.Point) error {
	return p.Move(pt.X, pt.Y)
}

// Backend имя реализации ввода в конфигурации
type Backend string

const (
	BackendX11     Backend = "x11"
	BackendArduino Backend = "arduino"
)

// ParseBackend разбирает имя бэкенда ввода
func ParseBackend(name string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(name))); b {
	case BackendX11, BackendArduino:
		return b, nil
	case "":
		return BackendX11, nil
	}
	return "", fmt.Errorf("unknown input backend %q", name)
}
