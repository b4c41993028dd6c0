package locator

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"shotbot/internal/frame"
)

// Template эталонный фрагмент изображения в порядке байтов захвата (B, G, R, X)
type Template struct {
	Pix    []byte
	Width  int
	Height int
}

// Len длина шаблона в байтах
func (t Template) Len() int { return len(t.Pix) }

// ballPattern мяч 6x4: o - оранжевая кожа, d - темный шов, . - фон площадки
var ballPattern = []string{
	".oooo.",
	"oodooo",
	"ooodoo",
	".oooo.",
}

var palette = map[byte][3]byte{ // B, G, R
	'.': {0x3a, 0x6b, 0x2e},
	'o': {0x1e, 0x7a, 0xf0},
	'd': {0x10, 0x2a, 0x5c},
}

// DefaultTemplate встроенный шаблон мяча
var DefaultTemplate = fromPattern(ballPattern)

func fromPattern(rows []string) Template {
	w, h := len(rows[0]), len(rows)
	pix := make([]byte, 0, w*h*frame.BytesPerPixel)
	for _, row := range rows {
		for i := 0; i < len(row); i++ {
			c := palette[row[i]]
			pix = append(pix, c[0], c[1], c[2], 0)
		}
	}
	return Template{Pix: pix, Width: w, Height: h}
}

// LoadTemplate загружает шаблон из файла изображения (png, jpeg, bmp, tiff, webp)
func LoadTemplate(path string) (Template, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return Template{}, fmt.Errorf("failed to open template %s: %w", path, err)
	}
	return FromImage(img), nil
}

// FromImage переводит изображение в шаблон
func FromImage(img image.Image) Template {
	nrgba := imaging.Clone(img)
	w, h := nrgba.Rect.Dx(), nrgba.Rect.Dy()
	pix := make([]byte, 0, w*h*frame.BytesPerPixel)
	for y := 0; y < h; y++ {
		row := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+w*4]
		for x := 0; x < w*4; x += 4 {
			pix = append(pix, row[x+2], row[x+1], row[x], 0)
		}
	}
	return Template{Pix: pix, Width: w, Height: h}
}
