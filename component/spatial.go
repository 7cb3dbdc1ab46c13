// Package component defines the data schema shared by all systems.
// Components are plain data; behavior lives in systems.
package component

import (
	"github.com/lixenwraith/vi-racer/vmath"
)

// TransformComponent is the world pose of an entity
// For track segments Position mirrors the segment start position
type TransformComponent struct {
	Position vmath.Vec3F
	Rotation vmath.Quat
	Scale    vmath.Vec3F
}

// NewTransform returns an unrotated unit-scale transform at pos
func NewTransform(pos vmath.Vec3F) TransformComponent {
	return TransformComponent{
		Position: pos,
		Rotation: vmath.QuatIdentity,
		Scale:    vmath.V3FOne,
	}
}

// Forward returns the world heading of the transform
func (t *TransformComponent) Forward() vmath.Vec3F {
	return vmath.QuatForward(t.Rotation)
}
