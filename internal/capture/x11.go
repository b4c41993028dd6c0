package capture

import (
	"fmt"
	"image"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"

	"shotbot/internal/frame"
)

// X11Source захват корневого окна X-сервера через GetImage (ZPixmap).
// При глубине 24/32 бит сервер отдает пиксели сразу в порядке B, G, R, X.
type X11Source struct {
	conn *xgb.Conn
	root xproto.Window
}

// NewX11Source подключается к дисплею (пустая строка = $DISPLAY)
func NewX11Source(display string) (*X11Source, error) {
	conn, err := xgb.NewConnDisplay(display)
	if err != nil {
		return nil, fmt.Errorf("%w: connect to X server: %v", ErrCapture, err)
	}
	screen := xproto.Setup(conn).DefaultScreen(conn)
	if screen.RootDepth < 24 {
		conn.Close()
		return nil, fmt.Errorf("%w: unsupported root depth %d", ErrCapture, screen.RootDepth)
	}
	return &X11Source{conn: conn, root: screen.Root}, nil
}

// Capture запрашивает изображение области корневого окна
func (s *X11Source) Capture(rect image.Rectangle) (*frame.Frame, error) {
	w, h := rect.Dx(), rect.Dy()
	reply, err := xproto.GetImage(s.conn, xproto.ImageFormatZPixmap, xproto.Drawable(s.root),
		int16(rect.Min.X), int16(rect.Min.Y), uint16(w), uint16(h), 0xffffffff).Reply()
	if err != nil {
		return nil, captureErr(rect, err)
	}
	f, err := frame.New(reply.Data, rect.Min, w, h)
	if err != nil {
		return nil, captureErr(rect, err)
	}
	return f, nil
}

// Close закрывает соединение с X-сервером
func (s *X11Source) Close() error {
	s.conn.Close()
	return nil
}
