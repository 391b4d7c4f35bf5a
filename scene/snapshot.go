package scene

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/ethaniccc/float32-cube/cube/trace"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/kinematic/game"
	"github.com/oomph-ac/kinematic/geometry"
)

// broadphaseMargin is added around swept bodies before colliders are tested in detail.
const broadphaseMargin = 0.05

// Box is a solid axis aligned box collider.
type Box struct {
	Entity geometry.Entity
	BBox   cube.BBox
}

// Slope is a solid wedge: every point of Bounds lying on or below the plane described by Normal and
// Offset (Normal·x <= Offset). Bodies are blocked by the inclined surface and by the parts of the faces
// of Bounds below it.
type Slope struct {
	Entity geometry.Entity
	Normal mgl32.Vec3
	Offset float32
	Bounds cube.BBox
}

// Snapshot is an immutable view of a scene's colliders. It implements geometry.Querier and may be shared
// freely between goroutines.
type Snapshot struct {
	boxes  []Box
	slopes []Slope

	fingerprint uint64
}

var _ geometry.Querier = (*Snapshot)(nil)

// Boxes returns a copy of the box colliders in the snapshot.
func (s *Snapshot) Boxes() []Box {
	return append([]Box(nil), s.boxes...)
}

// Slopes returns a copy of the slope colliders in the snapshot.
func (s *Snapshot) Slopes() []Slope {
	return append([]Slope(nil), s.slopes...)
}

// Len returns the amount of colliders in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.boxes) + len(s.slopes)
}

// Fingerprint returns a hash of every collider in the snapshot. Two snapshots with equal colliders
// have equal fingerprints.
func (s *Snapshot) Fingerprint() uint64 {
	return s.fingerprint
}

// CastShape ...
func (s *Snapshot) CastShape(shape geometry.Shape, origin, direction mgl32.Vec3, maxDistance float32) (geometry.Hit, bool, error) {
	dir, err := geometry.ValidateCast(shape, origin, direction, maxDistance)
	if err != nil {
		return geometry.Hit{}, false, err
	}

	var (
		best  geometry.Hit
		found bool
	)
	consider := func(hit geometry.Hit) {
		if !found || hit.Distance < best.Distance || (hit.Distance == best.Distance && hit.Penetration > best.Penetration) {
			best, found = hit, true
		}
	}

	body := shape.BBox(origin)
	swept := body.Extend(dir.Mul(maxDistance)).Grow(broadphaseMargin)
	for _, b := range s.boxes {
		if !swept.IntersectsWith(b.BBox) {
			continue
		}
		if hit, ok := castBox(b, shape, origin, body, dir, maxDistance); ok {
			consider(hit)
		}
	}
	for _, sl := range s.slopes {
		if !swept.IntersectsWith(sl.Bounds) {
			continue
		}
		if hit, ok := castSlope(sl, shape, origin, body, dir, maxDistance); ok {
			consider(hit)
		}
	}
	return best, found, nil
}

// Overlap ...
func (s *Snapshot) Overlap(shape geometry.Shape, pose mgl32.Vec3) ([]geometry.Entity, error) {
	if err := geometry.ValidateOverlap(shape, pose); err != nil {
		return nil, err
	}

	var entities []geometry.Entity
	body := shape.BBox(pose)
	for _, b := range s.boxes {
		if body.IntersectsWith(b.BBox) {
			entities = append(entities, b.Entity)
		}
	}
	for _, sl := range s.slopes {
		if body.IntersectsWith(sl.Bounds) && slopeGap(sl, shape.Center(pose), shape.HalfExtents()) < -game.ContactEpsilon {
			entities = append(entities, sl.Entity)
		}
	}
	return entities, nil
}

// castBox sweeps the body against a box by casting a ray from the body's centre against the box grown
// by the body's half extents.
func castBox(b Box, shape geometry.Shape, origin mgl32.Vec3, body cube.BBox, dir mgl32.Vec3, maxDistance float32) (geometry.Hit, bool) {
	half := shape.HalfExtents()
	center := shape.Center(origin)

	if p, ok := game.BBPenetration(b.BBox, body); ok {
		if dir.Dot(p.Normal) >= 0 {
			// Separating or sliding along the surface.
			return geometry.Hit{}, false
		}
		return geometry.Hit{
			Point:       center.Sub(mulEach(p.Normal, half)),
			Normal:      p.Normal,
			Penetration: p.Depth,
			Entity:      b.Entity,
		}, true
	}
	hit, ok := traceBox(b.BBox, shape, origin, dir, maxDistance)
	hit.Entity = b.Entity
	return hit, ok
}

// traceBox sweeps a body that does not touch bb against it.
func traceBox(bb cube.BBox, shape geometry.Shape, origin, dir mgl32.Vec3, maxDistance float32) (geometry.Hit, bool) {
	half := shape.HalfExtents()
	center := shape.Center(origin)

	expanded := bb.GrowVec3(half)
	result, ok := trace.BBoxIntercept(expanded, center, center.Add(dir.Mul(maxDistance)))
	if !ok {
		return geometry.Hit{}, false
	}
	pos := result.Position()
	dist := pos.Sub(center).Dot(dir)
	if dist > maxDistance {
		return geometry.Hit{}, false
	}
	normal := game.NearestFaceNormal(expanded, pos, dir)
	if normal.Dot(dir) >= 0 {
		return geometry.Hit{}, false
	}
	return geometry.Hit{
		Point:    pos.Sub(mulEach(normal, half)),
		Normal:   normal,
		Distance: math32.Max(0, dist),
	}, true
}

// castSlope sweeps the body against the wedge of a slope. The inclined surface is tested using the
// support point of the body box along the surface normal, the faces of Bounds below it like those of
// a box.
func castSlope(sl Slope, shape geometry.Shape, origin mgl32.Vec3, body cube.BBox, dir mgl32.Vec3, maxDistance float32) (geometry.Hit, bool) {
	half := shape.HalfExtents()
	center := shape.Center(origin)
	gap := slopeGap(sl, center, half)

	if body.IntersectsWith(sl.Bounds) {
		if gap < -game.ContactEpsilon {
			normal, depth := slopePenetration(sl, body, gap)
			if dir.Dot(normal) >= 0 {
				return geometry.Hit{}, false
			}
			point := center.Sub(mulEach(normal, half))
			if normal == sl.Normal {
				point = center.Sub(supportOffset(sl.Normal, half))
			}
			return geometry.Hit{
				Point:       point,
				Normal:      normal,
				Penetration: depth,
				Entity:      sl.Entity,
			}, true
		}
		return castSlopeSurface(sl, shape, origin, dir, maxDistance, gap)
	}

	surface, surfaceOK := geometry.Hit{}, false
	if gap > game.ContactEpsilon {
		surface, surfaceOK = castSlopeSurface(sl, shape, origin, dir, maxDistance, gap)
	}
	face, faceOK := castSlopeFaces(sl, shape, origin, dir, maxDistance)
	if faceOK && (!surfaceOK || face.Distance < surface.Distance) {
		return face, true
	}
	return surface, surfaceOK
}

// castSlopeSurface sweeps the body against the inclined surface of a slope. gap is the current
// distance between the body and the surface as returned by slopeGap.
func castSlopeSurface(sl Slope, shape geometry.Shape, origin, dir mgl32.Vec3, maxDistance, gap float32) (geometry.Hit, bool) {
	half := shape.HalfExtents()
	approach := dir.Dot(sl.Normal)
	if approach >= 0 {
		return geometry.Hit{}, false
	}
	if gap <= game.ContactEpsilon {
		// Touching the surface.
		return geometry.Hit{
			Point:       shape.Center(origin).Sub(supportOffset(sl.Normal, half)),
			Normal:      sl.Normal,
			Penetration: math32.Max(0, -gap),
			Entity:      sl.Entity,
		}, true
	}

	dist := gap / -approach
	if dist > maxDistance {
		return geometry.Hit{}, false
	}
	at := origin.Add(dir.Mul(dist))
	if !shape.BBox(at).IntersectsWith(sl.Bounds.Grow(broadphaseMargin)) {
		return geometry.Hit{}, false
	}
	return geometry.Hit{
		Point:    shape.Center(at).Sub(supportOffset(sl.Normal, half)),
		Normal:   sl.Normal,
		Distance: dist,
		Entity:   sl.Entity,
	}, true
}

// castSlopeFaces sweeps a body outside of the Bounds of a slope against the faces of Bounds. Faces
// facing along the surface normal are left to castSlopeSurface, and a face only blocks where the body
// would end up below the surface.
func castSlopeFaces(sl Slope, shape geometry.Shape, origin, dir mgl32.Vec3, maxDistance float32) (geometry.Hit, bool) {
	hit, ok := traceBox(sl.Bounds, shape, origin, dir, maxDistance)
	if !ok || hit.Normal.Dot(sl.Normal) > game.ContactEpsilon {
		return geometry.Hit{}, false
	}
	at := origin.Add(dir.Mul(hit.Distance))
	if slopeGap(sl, shape.Center(at), shape.HalfExtents()) >= -game.ContactEpsilon {
		return geometry.Hit{}, false
	}
	hit.Entity = sl.Entity
	return hit, true
}

// slopePenetration returns the shortest way out of the wedge of a slope for a body overlapping it:
// either through the inclined surface or through one of the faces of Bounds below it.
func slopePenetration(sl Slope, body cube.BBox, gap float32) (mgl32.Vec3, float32) {
	normal, depth := sl.Normal, -gap
	bmin, bmax := body.Min(), body.Max()
	smin, smax := sl.Bounds.Min(), sl.Bounds.Max()
	for i := 0; i < 3; i++ {
		var n mgl32.Vec3
		n[i] = 1
		if d := smax[i] - bmin[i]; d < depth && n.Dot(sl.Normal) <= game.ContactEpsilon {
			normal, depth = n, d
		}
		n[i] = -1
		if d := bmax[i] - smin[i]; d < depth && n.Dot(sl.Normal) <= game.ContactEpsilon {
			normal, depth = n, d
		}
	}
	return normal, math32.Max(0, depth)
}

// slopeGap returns the signed distance between the lowest point of a box (relative to the slope normal)
// and the slope surface. Negative values mean the box is below the surface.
func slopeGap(sl Slope, center, half mgl32.Vec3) float32 {
	return center.Dot(sl.Normal) - game.AbsVec32(sl.Normal).Dot(half) - sl.Offset
}

// supportOffset returns the offset from a box centre to its corner furthest along -normal.
func supportOffset(normal, half mgl32.Vec3) mgl32.Vec3 {
	var off mgl32.Vec3
	for i := 0; i < 3; i++ {
		if normal[i] != 0 {
			off[i] = math32.Copysign(half[i], normal[i])
		}
	}
	return off
}

func mulEach(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}
