package game

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

var worldUp = mgl32.Vec3{0, 1, 0}

// UpAxis returns the unit up axis for the given gravity vector, which is the opposite of the gravity
// direction. Gravity along a world axis yields that exact axis, and zero gravity falls back to +Y.
func UpAxis(gravity mgl32.Vec3) mgl32.Vec3 {
	if gravity.LenSqr() <= 1e-12 {
		return worldUp
	}

	up := gravity.Mul(-1).Normalize()
	for i := 0; i < 3; i++ {
		if math32.Abs(up[i]) >= 1-1e-6 {
			snapped := mgl32.Vec3{}
			snapped[i] = math32.Copysign(1, up[i])
			return snapped
		}
	}
	return up
}

// ProjectOnPlane removes the component of v along the unit normal n.
func ProjectOnPlane(v, n mgl32.Vec3) mgl32.Vec3 {
	return v.Sub(n.Mul(v.Dot(n)))
}

// VerticalComponent returns the signed length of v along the unit up axis.
func VerticalComponent(v, up mgl32.Vec3) float32 {
	return v.Dot(up)
}

// SplitVertical splits v into its planar part and its signed vertical length along up.
func SplitVertical(v, up mgl32.Vec3) (planar mgl32.Vec3, vertical float32) {
	vertical = v.Dot(up)
	return v.Sub(up.Mul(vertical)), vertical
}

// SlopeAngle returns the angle in radians between a surface normal and the up axis.
func SlopeAngle(normal, up mgl32.Vec3) float32 {
	return math32.Acos(ClampFloat(normal.Dot(up), -1, 1))
}

// WrapAngle wraps an angle in radians into [-pi, pi).
func WrapAngle(a float32) float32 {
	a = math32.Mod(a+math32.Pi, 2*math32.Pi)
	if a < 0 {
		a += 2 * math32.Pi
	}
	a -= math32.Pi
	if a >= math32.Pi {
		a -= 2 * math32.Pi
	}
	return a
}

// ClampFloat clamps the given value to the given range.
func ClampFloat(num, min, max float32) float32 {
	if num < min {
		return min
	}
	return math32.Min(num, max)
}

// Float32ApproxEq determines whether two floating point numbers are close enough to each other
// by a threshold of 1e-5.
func Float32ApproxEq(a, b float32) bool {
	return math32.Abs(a-b) <= 1e-5
}

// IsFinite returns true if f is neither NaN nor infinite.
func IsFinite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}

// IsFiniteVec3 returns true if every component of v is finite.
func IsFiniteVec3(v mgl32.Vec3) bool {
	return IsFinite(v[0]) && IsFinite(v[1]) && IsFinite(v[2])
}

// IsFiniteVec2 returns true if every component of v is finite.
func IsFiniteVec2(v mgl32.Vec2) bool {
	return IsFinite(v[0]) && IsFinite(v[1])
}

// ZeroSmall zeroes every component of v with a magnitude below VelocityEpsilon.
func ZeroSmall(v mgl32.Vec3) mgl32.Vec3 {
	for i := 0; i < 3; i++ {
		if math32.Abs(v[i]) < VelocityEpsilon {
			v[i] = 0
		}
	}
	return v
}

// LerpVec3 linearly interpolates between a and b by t.
func LerpVec3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// AbsVec32 will return the given vector, but all the values of it are switched to their absolute values.
func AbsVec32(vec mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{math32.Abs(vec.X()), math32.Abs(vec.Y()), math32.Abs(vec.Z())}
}

// PlanarLenSqr returns the squared length of v once its component along up is removed.
func PlanarLenSqr(v, up mgl32.Vec3) float32 {
	planar, _ := SplitVertical(v, up)
	return planar.LenSqr()
}
