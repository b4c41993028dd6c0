package planner

import (
	"errors"
	"image"
	"math"
)

// ErrDegenerateVector начало и цель совпадают, направление не определено
var ErrDegenerateVector = errors.New("aim vector has zero length")

// DefaultAimLength длина вектора прицеливания по умолчанию
const DefaultAimLength = 125.0

// PlanAim вектор от origin к target, растянутый или сжатый до длины length
func PlanAim(origin, target image.Point, length float64) (dx, dy float64, err error) {
	vx := float64(target.X - origin.X)
	vy := float64(target.Y - origin.Y)
	norm := math.Hypot(vx, vy)
	if norm == 0 {
		return 0, 0, ErrDegenerateVector
	}
	scale := length / norm
	return vx * scale, vy * scale, nil
}

// AimPoint точка, в которую нужно увести указатель из origin
func AimPoint(origin, target image.Point, length float64) (image.Point, error) {
	dx, dy, err := PlanAim(origin, target, length)
	if err != nil {
		return image.Point{}, err
	}
	return image.Pt(origin.X+int(math.Round(dx)), origin.Y+int(math.Round(dy))), nil
}
