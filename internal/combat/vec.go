package combat

import "math"

// Vec2 is a point or direction on the arena floor.
type Vec2 struct {
	X, Y float64
}

// Add returns v+o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v-o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Scale returns v*s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Len returns the vector length.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Angle returns the heading of the vector in radians.
func (v Vec2) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// Heading returns the unit vector for an angle in radians.
func Heading(angle float64) Vec2 {
	return Vec2{math.Cos(angle), math.Sin(angle)}
}

// Transform is a fighter's position and facing on the arena floor. The
// rendering layer owns the real rigid body; the core keeps this
// lightweight mirror so movement states and distance checks work
// headless.
type Transform struct {
	Pos    Vec2
	Facing float64 // radians
}

// Distance returns the distance between two transforms.
func (t Transform) Distance(o Transform) float64 {
	return t.Pos.Sub(o.Pos).Len()
}

// RotateToward turns the facing toward the target angle by at most
// maxDelta radians, taking the short way around.
func (t *Transform) RotateToward(target, maxDelta float64) {
	diff := normalizeAngle(target - t.Facing)
	if math.Abs(diff) <= maxDelta {
		t.Facing = target
		return
	}
	if diff > 0 {
		t.Facing = normalizeAngle(t.Facing + maxDelta)
	} else {
		t.Facing = normalizeAngle(t.Facing - maxDelta)
	}
}

// normalizeAngle wraps an angle into (-pi, pi].
func normalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
