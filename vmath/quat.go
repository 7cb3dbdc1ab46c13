package vmath

import (
	"math"
)

// Quat is a unit quaternion orientation (W scalar part)
type Quat struct {
	W, X, Y, Z float64
}

// QuatIdentity faces V3FForward with +Y up
var QuatIdentity = Quat{W: 1}

// QuatFromAxisAngle builds a rotation of angle radians about axis
func QuatFromAxisAngle(axis Vec3F, angle float64) Quat {
	a := V3FNormalize(axis)
	if a == V3FZero {
		return QuatIdentity
	}
	s, c := math.Sincos(angle * 0.5)
	return Quat{W: c, X: a.X * s, Y: a.Y * s, Z: a.Z * s}
}

// QuatMul composes rotations: result applies b first, then a
func QuatMul(a, b Quat) Quat {
	return Quat{
		W: a.W*b.W - a.X*b.X - a.Y*b.Y - a.Z*b.Z,
		X: a.W*b.X + a.X*b.W + a.Y*b.Z - a.Z*b.Y,
		Y: a.W*b.Y - a.X*b.Z + a.Y*b.W + a.Z*b.X,
		Z: a.W*b.Z + a.X*b.Y - a.Y*b.X + a.Z*b.W,
	}
}

func QuatDot(a, b Quat) float64 {
	return a.W*b.W + a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

func QuatNormalize(q Quat) Quat {
	mag := math.Sqrt(QuatDot(q, q))
	if mag == 0 {
		return QuatIdentity
	}
	inv := 1.0 / mag
	return Quat{q.W * inv, q.X * inv, q.Y * inv, q.Z * inv}
}

// QuatRotate applies q to v
func QuatRotate(q Quat, v Vec3F) Vec3F {
	u := Vec3F{q.X, q.Y, q.Z}
	t := V3FScale(V3FCross(u, v), 2)
	return V3FAdd(V3FAdd(v, V3FScale(t, q.W)), V3FCross(u, t))
}

// QuatForward returns the world heading of an orientation
func QuatForward(q Quat) Vec3F {
	return QuatRotate(q, V3FForward)
}

// QuatSlerp spherically interpolates a→b along the shortest arc
func QuatSlerp(a, b Quat, t float64) Quat {
	d := QuatDot(a, b)
	if d < 0 {
		b = Quat{-b.W, -b.X, -b.Y, -b.Z}
		d = -d
	}

	// Nearly parallel: sin(theta) underflows, nlerp is indistinguishable
	if d > 0.9995 {
		return QuatNormalize(Quat{
			W: a.W + (b.W-a.W)*t,
			X: a.X + (b.X-a.X)*t,
			Y: a.Y + (b.Y-a.Y)*t,
			Z: a.Z + (b.Z-a.Z)*t,
		})
	}

	theta := math.Acos(d)
	sinTheta := math.Sin(theta)
	wa := math.Sin((1-t)*theta) / sinTheta
	wb := math.Sin(t*theta) / sinTheta
	return Quat{
		W: a.W*wa + b.W*wb,
		X: a.X*wa + b.X*wb,
		Y: a.Y*wa + b.Y*wb,
		Z: a.Z*wa + b.Z*wb,
	}
}

// QuatLookRotation returns the orientation whose forward (-Z) points along dir
// Falls back to identity for a zero direction and swaps the reference up when dir is vertical
func QuatLookRotation(dir, up Vec3F) Quat {
	f := V3FNormalize(dir)
	if f == V3FZero {
		return QuatIdentity
	}
	r := V3FCross(f, up)
	if V3FMagSq(r) < 1e-12 {
		r = V3FCross(f, Vec3F{0, 0, 1})
	}
	r = V3FNormalize(r)
	u := V3FCross(r, f)

	// Columns: local X→r, local Y→u, local Z→-f
	m00, m01, m02 := r.X, u.X, -f.X
	m10, m11, m12 := r.Y, u.Y, -f.Y
	m20, m21, m22 := r.Z, u.Z, -f.Z

	var q Quat
	trace := m00 + m11 + m22
	switch {
	case trace > 0:
		s := 0.5 / math.Sqrt(trace+1)
		q = Quat{W: 0.25 / s, X: (m21 - m12) * s, Y: (m02 - m20) * s, Z: (m10 - m01) * s}
	case m00 > m11 && m00 > m22:
		s := 2 * math.Sqrt(1+m00-m11-m22)
		q = Quat{W: (m21 - m12) / s, X: 0.25 * s, Y: (m01 + m10) / s, Z: (m02 + m20) / s}
	case m11 > m22:
		s := 2 * math.Sqrt(1+m11-m00-m22)
		q = Quat{W: (m02 - m20) / s, X: (m01 + m10) / s, Y: 0.25 * s, Z: (m12 + m21) / s}
	default:
		s := 2 * math.Sqrt(1+m22-m00-m11)
		q = Quat{W: (m10 - m01) / s, X: (m02 + m20) / s, Y: (m12 + m21) / s, Z: 0.25 * s}
	}
	return QuatNormalize(q)
}

// QuatAngle returns the rotation angle between two orientations in radians
func QuatAngle(a, b Quat) float64 {
	d := math.Abs(QuatDot(a, b))
	if d > 1 {
		d = 1
	}
	return 2 * math.Acos(d)
}
