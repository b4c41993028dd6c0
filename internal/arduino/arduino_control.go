package arduino

import (
	"bufio"
	"fmt"
	"image"
	"io"
	"strings"

	"shotbot/internal/input"
)

// Pointer управление мышью через Arduino (HID) по последовательному порту.
//
// Протокол строковый, по одной команде на строку:
//
//	move:X,Y      -> received
//	press:left    -> received
//	release:left  -> received
//	position      -> position:X,Y
type Pointer struct {
	w io.Writer
	r *bufio.Reader
}

var _ input.Pointer = (*Pointer)(nil)

// NewPointer оборачивает открытый порт (или любой io.ReadWriter)
func NewPointer(port io.ReadWriter) *Pointer {
	return &Pointer{w: port, r: bufio.NewReader(port)}
}

// Move перемещает курсор в абсолютные координаты
func (p *Pointer) Move(x, y int) error {
	return ProcessAndWait(p.w, p.r, fmt.Sprintf("move:%d,%d", x, y))
}

// Press зажимает кнопку
func (p *Pointer) Press(b input.Button) error {
	return ProcessAndWait(p.w, p.r, "press:"+b.String())
}

// Release отпускает кнопку
func (p *Pointer) Release(b input.Button) error {
	return ProcessAndWait(p.w, p.r, "release:"+b.String())
}

// Position запрашивает текущие координаты курсора
func (p *Pointer) Position() (image.Point, error) {
	if err := SendCommand(p.w, "position"); err != nil {
		return image.Point{}, err
	}
	response, err := ReadResponse(p.r)
	if err != nil {
		return image.Point{}, err
	}
	coords, ok := strings.CutPrefix(response, "position:")
	if !ok {
		return image.Point{}, fmt.Errorf("%w: '%s'", ErrUnexpectedResponse, response)
	}
	var pt image.Point
	if _, err := fmt.Sscanf(coords, "%d,%d", &pt.X, &pt.Y); err != nil {
		return image.Point{}, fmt.Errorf("%w: bad position '%s': %v", ErrUnexpectedResponse, coords, err)
	}
	return pt, nil
}
