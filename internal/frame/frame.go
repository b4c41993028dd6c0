package frame

import (
	"fmt"
	"image"
	"image/color"
)

// BytesPerPixel размер пикселя в буфере захвата (B, G, R, X)
const BytesPerPixel = 4

// Frame захваченная прямоугольная область экрана.
// Пиксели лежат подряд без выравнивания строк в порядке B, G, R, X.
type Frame struct {
	Pix    []byte
	Width  int
	Height int
	Origin image.Point // экранные координаты левого верхнего пикселя
}

// New создает кадр поверх готового BGRA буфера
func New(pix []byte, origin image.Point, width, height int) (*Frame, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid frame size %dx%d", width, height)
	}
	if len(pix) != width*height*BytesPerPixel {
		return nil, fmt.Errorf("frame buffer has %d bytes, want %d for %dx%d", len(pix), width*height*BytesPerPixel, width, height)
	}
	return &Frame{Pix: pix, Width: width, Height: height, Origin: origin}, nil
}

// FromRGBA переупаковывает *image.RGBA в BGRA кадр с началом в rect.Min
func FromRGBA(img *image.RGBA) *Frame {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	pix := make([]byte, w*h*BytesPerPixel)
	for y := 0; y < h; y++ {
		src := img.Pix[y*img.Stride : y*img.Stride+w*4]
		dst := pix[y*w*BytesPerPixel : (y+1)*w*BytesPerPixel]
		for x := 0; x < w; x++ {
			i := x * 4
			dst[i] = src[i+2]
			dst[i+1] = src[i+1]
			dst[i+2] = src[i]
			dst[i+3] = 0
		}
	}
	return &Frame{Pix: pix, Width: w, Height: h, Origin: b.Min}
}

// Bounds прямоугольник кадра в экранных координатах
func (f *Frame) Bounds() image.Rectangle {
	return image.Rect(f.Origin.X, f.Origin.Y, f.Origin.X+f.Width, f.Origin.Y+f.Height)
}

// At возвращает компоненты пикселя по локальным координатам кадра
func (f *Frame) At(x, y int) (r, g, b uint8) {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return 0, 0, 0
	}
	i := (y*f.Width + x) * BytesPerPixel
	return f.Pix[i+2], f.Pix[i+1], f.Pix[i]
}

// PixelToPoint переводит индекс пикселя в экранную точку
func (f *Frame) PixelToPoint(index int) image.Point {
	return image.Point{
		X: f.Origin.X + index%f.Width,
		Y: f.Origin.Y + index/f.Width,
	}
}

// ToImage копирует кадр в *image.RGBA для сохранения на диск
func (f *Frame) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			r, g, b := f.At(x, y)
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return img
}
