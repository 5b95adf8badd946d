package worldmodel

import (
	"sync"

	"fieldctl/geometry"
	"fieldctl/robot"
)

// Division B field defaults, used until a geometry frame arrives from
// vision.
const (
	DefaultLength    = 9.0
	DefaultWidth     = 6.0
	DefaultGoalWidth = 1.0
	DefaultGoalDepth = 0.18
)

// Field holds mutable field dimensions and derives the bounding box and
// goal rectangles from them. Blue's goal sits at the negative-x end.
type Field struct {
	mu                               sync.Mutex
	length, width, goalWidth, goalDepth float64
}

// NewField returns a field at the Division B defaults.
func NewField() *Field {
	return &Field{
		length:    DefaultLength,
		width:     DefaultWidth,
		goalWidth: DefaultGoalWidth,
		goalDepth: DefaultGoalDepth,
	}
}

// SetDimensions overwrites the field's dimensions, e.g. from a vision
// geometry packet.
func (f *Field) SetDimensions(length, width, goalWidth, goalDepth float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.length, f.width, f.goalWidth, f.goalDepth = length, width, goalWidth, goalDepth
}

// SetLengthWidth overwrites only the length and width, leaving goal
// dimensions as they are: the vision geometry block carries field
// length/width but no goal box, so ingestion updates only these two and
// keeps whatever goal dimensions are already in effect.
func (f *Field) SetLengthWidth(length, width float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.length, f.width = length, width
}

// Dimensions returns the field's current length, width, goal width, and
// goal depth, in that order.
func (f *Field) Dimensions() (length, width, goalWidth, goalDepth float64) {
	return f.dims()
}

func (f *Field) dims() (length, width, goalWidth, goalDepth float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.length, f.width, f.goalWidth, f.goalDepth
}

// BoundingBox returns the full field rectangle, centered on the origin.
func (f *Field) BoundingBox() geometry.Rect {
	length, width, _, _ := f.dims()
	return geometry.NewRect(
		geometry.Point2{X: -length / 2, Y: -width / 2},
		geometry.Point2{X: length / 2, Y: width / 2},
	)
}

// BlueGoal returns the blue goal box, at the field's negative-x end.
func (f *Field) BlueGoal() geometry.Rect {
	length, _, goalWidth, goalDepth := f.dims()
	return geometry.NewRect(
		geometry.Point2{X: -length / 2, Y: -goalWidth / 2},
		geometry.Point2{X: -length/2 + goalDepth, Y: goalWidth / 2},
	)
}

// YellowGoal returns the yellow goal box, at the field's positive-x end.
func (f *Field) YellowGoal() geometry.Rect {
	length, _, goalWidth, goalDepth := f.dims()
	return geometry.NewRect(
		geometry.Point2{X: length/2 - goalDepth, Y: -goalWidth / 2},
		geometry.Point2{X: length / 2, Y: goalWidth / 2},
	)
}

// EnemyGoal returns the goal belonging to the opponent of color: the one a
// robot of that color should be shooting at.
func (f *Field) EnemyGoal(color robot.TeamColor) geometry.Rect {
	if color == robot.Blue {
		return f.YellowGoal()
	}
	return f.BlueGoal()
}
