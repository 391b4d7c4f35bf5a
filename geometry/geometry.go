package geometry

import (
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/kinematic/game"
	"github.com/oomph-ac/kinematic/oerror"
)

const (
	OpCastShape = "cast_shape"
	OpOverlap   = "overlap"
)

// Entity identifies a single collider within a scene.
type Entity uint64

// Shape is the collision shape of a body: an axis aligned box anchored at the centre of its base,
// which is the position a body reports as its own.
type Shape struct {
	Width  float32
	Height float32
}

// BBox returns the bounding box of the shape when its base sits at pos.
func (s Shape) BBox(pos mgl32.Vec3) cube.BBox {
	return game.AABBFromDimensions(s.Width, s.Height).Translate(pos)
}

// HalfExtents returns half the size of the shape on each axis.
func (s Shape) HalfExtents() mgl32.Vec3 {
	return mgl32.Vec3{s.Width / 2, s.Height / 2, s.Width / 2}
}

// Center returns the centre of the shape when its base sits at pos.
func (s Shape) Center(pos mgl32.Vec3) mgl32.Vec3 {
	return pos.Add(mgl32.Vec3{0, s.Height / 2})
}

// Valid returns true if the shape has a finite, positive size.
func (s Shape) Valid() bool {
	return game.IsFinite(s.Width) && game.IsFinite(s.Height) && s.Width > 0 && s.Height > 0
}

// Hit is the first contact found by a shape cast.
type Hit struct {
	// Point is the contact point on the surface that was hit.
	Point mgl32.Vec3
	// Normal is the unit surface normal at Point, facing the body.
	Normal mgl32.Vec3
	// Distance is how far along the cast direction the shape travelled before touching the surface.
	Distance float32
	// Penetration is greater than zero if the shape already overlapped the surface at the cast origin.
	Penetration float32
	Entity      Entity
}

// Querier answers collision queries against a scene. Implementations must not mutate the scene while
// a query is running, and must be safe for concurrent use by multiple bodies.
type Querier interface {
	// CastShape sweeps shape from origin along the unit direction for up to maxDistance and returns the
	// first hit, if any.
	CastShape(shape Shape, origin, direction mgl32.Vec3, maxDistance float32) (Hit, bool, error)
	// Overlap returns every entity intersecting shape when placed at pose.
	Overlap(shape Shape, pose mgl32.Vec3) ([]Entity, error)
}

// ValidateCast checks the arguments of a cast and returns a GeometryError if any of them cannot be
// used. The direction returned is normalised.
func ValidateCast(shape Shape, origin, direction mgl32.Vec3, maxDistance float32) (mgl32.Vec3, error) {
	if !shape.Valid() {
		return direction, oerror.NewGeometryError(OpCastShape, "degenerate shape %vx%v", shape.Width, shape.Height)
	}
	if !game.IsFiniteVec3(origin) || !game.IsFiniteVec3(direction) || !game.IsFinite(maxDistance) {
		return direction, oerror.NewGeometryError(OpCastShape, "non-finite query (origin=%v direction=%v distance=%v)", origin, direction, maxDistance)
	}
	if maxDistance < 0 {
		return direction, oerror.NewGeometryError(OpCastShape, "negative cast distance %v", maxDistance)
	}
	if direction.LenSqr() <= 1e-12 {
		return direction, oerror.NewGeometryError(OpCastShape, "zero cast direction")
	}
	return direction.Normalize(), nil
}

// ValidateOverlap checks the arguments of an overlap query.
func ValidateOverlap(shape Shape, pose mgl32.Vec3) error {
	if !shape.Valid() {
		return oerror.NewGeometryError(OpOverlap, "degenerate shape %vx%v", shape.Width, shape.Height)
	}
	if !game.IsFiniteVec3(pose) {
		return oerror.NewGeometryError(OpOverlap, "non-finite pose %v", pose)
	}
	return nil
}
