package planner

import "image"

// Geometry окно игры на экране
type Geometry struct {
	Origin       image.Point // левый верхний угол окна игры
	Width        int
	Height       int
	TargetRadius int
	Goal         image.Point // цель прицельного удара относительно окна
}

// DefaultGeometry окно 400x720, радиус цели 80
func DefaultGeometry(origin image.Point) Geometry {
	return Geometry{
		Origin:       origin,
		Width:        400,
		Height:       720,
		TargetRadius: 80,
		Goal:         image.Pt(200, 120),
	}
}

// CenterX горизонтальный центр окна
func (g Geometry) CenterX() int {
	return g.Origin.X + g.Width/2
}

// Bounds прямоугольник окна игры
func (g Geometry) Bounds() image.Rectangle {
	return image.Rectangle{Min: g.Origin, Max: g.Origin.Add(image.Pt(g.Width, g.Height))}
}

// FocusPoint точка чуть выше окна, клик по ней возвращает фокус игре
func (g Geometry) FocusPoint() image.Point {
	return image.Pt(g.CenterX(), g.Origin.Y-5)
}

// CenterShot удар по центру
func (g Geometry) CenterShot() image.Point {
	return image.Pt(g.CenterX(), g.Origin.Y+11*g.Height/16)
}

// LobShot удар свечой у нижнего края
func (g Geometry) LobShot() image.Point {
	return image.Pt(g.CenterX(), g.Origin.Y+g.Height-g.TargetRadius-1)
}

// GoalPoint цель прицельного удара в экранных координатах
func (g Geometry) GoalPoint() image.Point {
	return g.Origin.Add(g.Goal)
}
