package game

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

// AABBFromDimensions returns a bounding box from the given dimensions, anchored at the centre of its base.
func AABBFromDimensions(width, height float32) cube.BBox {
	h := width / 2
	return cube.Box(
		-h, 0, -h,
		h, height, h,
	)
}

// BBoxCenter returns the centre point of a bounding box.
func BBoxCenter(bb cube.BBox) mgl32.Vec3 {
	return bb.Min().Add(bb.Max()).Mul(0.5)
}

// BBHasZeroVolume returns true if the bounding box has zero volume on any axis.
func BBHasZeroVolume(bb cube.BBox) bool {
	size := bb.Max().Sub(bb.Min())
	return size[0] <= 0 || size[1] <= 0 || size[2] <= 0
}

// Penetration describes the axis of least penetration between two touching or overlapping boxes.
type Penetration struct {
	Axis int
	// Depth is how far the moving box must travel along Normal to stop overlapping. It is zero
	// when the boxes only touch.
	Depth  float32
	Normal mgl32.Vec3
}

// BBPenetration finds the smallest translation that separates the moving box from the stationary one.
// False is returned if the boxes are apart by more than ContactEpsilon on any axis.
func BBPenetration(stationary, moving cube.BBox) (Penetration, bool) {
	if BBHasZeroVolume(stationary) {
		return Penetration{}, false
	}

	var (
		axisPenetrations = [3]float32{}
		normalDirs       = [3]float32{}
	)
	for i := 0; i < 3; i++ {
		minPenetration := moving.Max()[i] - stationary.Min()[i]
		maxPenetration := stationary.Max()[i] - moving.Min()[i]
		if minPenetration < -ContactEpsilon || maxPenetration < -ContactEpsilon {
			return Penetration{}, false
		}

		if minPenetration < maxPenetration {
			axisPenetrations[i] = math32.Max(0, minPenetration)
			normalDirs[i] = -1
		} else {
			axisPenetrations[i] = math32.Max(0, maxPenetration)
			normalDirs[i] = 1
		}
	}

	bestAxis := 0
	for i := 1; i < 3; i++ {
		if axisPenetrations[i] < axisPenetrations[bestAxis] {
			bestAxis = i
		}
	}

	p := Penetration{Axis: bestAxis, Depth: axisPenetrations[bestAxis]}
	p.Normal[bestAxis] = normalDirs[bestAxis]
	return p, true
}

// NearestFaceNormal returns the outward normal of the face of bb closest to the point given. Faces
// whose normal points along dir are skipped, so that a ray travelling along dir is only ever
// matched against a face it could have entered through.
func NearestFaceNormal(bb cube.BBox, point, dir mgl32.Vec3) mgl32.Vec3 {
	best, bestDist := mgl32.Vec3{}, float32(math32.MaxFloat32)
	for i := 0; i < 3; i++ {
		var d, sign float32
		switch {
		case dir[i] > 0:
			d, sign = math32.Abs(point[i]-bb.Min()[i]), -1
		case dir[i] < 0:
			d, sign = math32.Abs(point[i]-bb.Max()[i]), 1
		default:
			continue
		}
		if d < bestDist {
			best, bestDist = mgl32.Vec3{}, d
			best[i] = sign
		}
	}
	return best
}
