package closet

import "github.com/raushankrgupta/virtual-closet/models"

// Placement defaults applied wherever a placement enters the canvas
const (
	DefaultX        = 150.0
	DefaultY        = 100.0
	DefaultScale    = 1.0
	DefaultRotation = 0
	DefaultZIndex   = 1

	MinScale = 0.5
	MaxScale = 2.0

	RotationStep = 90

	// ItemFootprint is the rendered edge length of an item at scale 1
	ItemFootprint = 120.0
)

// NormalizePlacement fills unset placement fields with their defaults and
// brings the rest back inside their valid ranges. The result shares no memory
// with p.
func NormalizePlacement(p models.PlacedItem) models.PlacedItem {
	p = p.Clone()
	if p.Position == nil {
		p.Position = &models.Position{X: DefaultX, Y: DefaultY}
	}
	if p.Scale == 0 {
		p.Scale = DefaultScale
	}
	p.Scale = clampScale(p.Scale)
	p.Rotation = normalizeRotation(p.Rotation)
	if p.ZIndex <= 0 {
		p.ZIndex = DefaultZIndex
	}
	return p
}

func clampScale(s float64) float64 {
	return clamp(s, MinScale, MaxScale)
}

// normalizeRotation wraps degrees into [0, 360) and snaps down to a quarter turn
func normalizeRotation(deg int) int {
	deg %= 360
	if deg < 0 {
		deg += 360
	}
	return deg - deg%RotationStep
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
