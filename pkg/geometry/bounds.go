package geometry

import "math"

// BoundingBox represents an axis-aligned bounding box
type BoundingBox struct {
	Min, Max Vector3
}

// NewBoundingBox creates an empty bounding box that any point will extend
func NewBoundingBox() BoundingBox {
	return BoundingBox{
		Min: NewVector3(math.Inf(1), math.Inf(1), math.Inf(1)),
		Max: NewVector3(math.Inf(-1), math.Inf(-1), math.Inf(-1)),
	}
}

// Extend grows the bounding box to include the point
func (b *BoundingBox) Extend(p Vector3) {
	b.Min = b.Min.Min(p)
	b.Max = b.Max.Max(p)
}

// Empty reports whether no point has been added
func (b BoundingBox) Empty() bool {
	return b.Min.X > b.Max.X
}

// Size returns the extent along each axis
func (b BoundingBox) Size() Vector3 {
	if b.Empty() {
		return Vector3{}
	}
	return b.Max.Sub(b.Min)
}

// Diagonal returns the length of the box diagonal
func (b BoundingBox) Diagonal() float64 {
	return b.Size().Length()
}
