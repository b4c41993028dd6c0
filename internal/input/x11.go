package input

import (
	"fmt"
	"image"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgb/xtest"
)

// X11Pointer мышь через расширение XTEST
type X11Pointer struct {
	conn *xgb.Conn
	root xproto.Window
}

// NewX11Pointer подключается к дисплею (пустая строка = $DISPLAY)
func NewX11Pointer(display string) (*X11Pointer, error) {
	conn, err := xgb.NewConnDisplay(display)
	if err != nil {
		return nil, fmt.Errorf("connect to X server: %w", err)
	}
	if err := xtest.Init(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("XTEST extension unavailable: %w", err)
	}
	root := xproto.Setup(conn).DefaultScreen(conn).Root
	return &X11Pointer{conn: conn, root: root}, nil
}

// x11Button номер кнопки в протоколе X
func x11Button(b Button) byte {
	switch b {
	case ButtonRight:
		return 3
	case ButtonMiddle:
		return 2
	}
	return 1
}

func (p *X11Pointer) fake(eventType, detail byte, x, y int16) error {
	return xtest.FakeInputChecked(p.conn, eventType, detail, 0, p.root, x, y, 0).Check()
}

// Move перемещает указатель в абсолютные координаты экрана
func (p *X11Pointer) Move(x, y int) error {
	if err := p.fake(xproto.MotionNotify, 0, int16(x), int16(y)); err != nil {
		return fmt.Errorf("move pointer to %d,%d: %w", x, y, err)
	}
	return nil
}

// Press нажимает кнопку
func (p *X11Pointer) Press(b Button) error {
	if err := p.fake(xproto.ButtonPress, x11Button(b), 0, 0); err != nil {
		return fmt.Errorf("press %s: %w", b, err)
	}
	return nil
}

// Release отпускает кнопку
func (p *X11Pointer) Release(b Button) error {
	if err := p.fake(xproto.ButtonRelease, x11Button(b), 0, 0); err != nil {
		return fmt.Errorf("release %s: %w", b, err)
	}
	return nil
}

// Position текущая позиция указателя
func (p *X11Pointer) Position() (image.Point, error) {
	reply, err := xproto.QueryPointer(p.conn, p.root).Reply()
	if err != nil {
		return image.Point{}, fmt.Errorf("query pointer: %w", err)
	}
	return image.Pt(int(reply.RootX), int(reply.RootY)), nil
}

// Close закрывает соединение
func (p *X11Pointer) Close() error {
	p.conn.Close()
	return nil
}
