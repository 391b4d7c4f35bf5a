package scene

import (
	"bytes"
	"encoding/binary"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/kinematic/game"
	"github.com/oomph-ac/kinematic/geometry"
	"github.com/oomph-ac/kinematic/internal"
	"github.com/oomph-ac/kinematic/oerror"
	"github.com/zeebo/xxh3"
)

// Builder collects colliders and produces an immutable Snapshot from them.
type Builder struct {
	boxes  []Box
	slopes []Slope
	next   geometry.Entity
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{next: 1}
}

// AddBox adds a solid box collider and returns the entity assigned to it.
func (b *Builder) AddBox(bb cube.BBox) geometry.Entity {
	e := b.nextEntity()
	b.boxes = append(b.boxes, Box{Entity: e, BBox: bb})
	return e
}

// AddSlope adds an inclined surface through point with the normal given, solid within bounds, and
// returns the entity assigned to it.
func (b *Builder) AddSlope(normal, point mgl32.Vec3, bounds cube.BBox) geometry.Entity {
	e := b.nextEntity()
	if normal.LenSqr() > 0 {
		normal = normal.Normalize()
	}
	b.slopes = append(b.slopes, Slope{
		Entity: e,
		Normal: normal,
		Offset: normal.Dot(point),
		Bounds: bounds,
	})
	return e
}

func (b *Builder) nextEntity() geometry.Entity {
	e := b.next
	b.next++
	return e
}

// Build validates the colliders added and returns a Snapshot of them. The Builder may be reused after
// Build is called; the Snapshot does not share memory with it.
func (b *Builder) Build() (*Snapshot, error) {
	for _, box := range b.boxes {
		if !game.IsFiniteVec3(box.BBox.Min()) || !game.IsFiniteVec3(box.BBox.Max()) || game.BBHasZeroVolume(box.BBox) {
			return nil, oerror.NewGeometryError("build", "box %d is degenerate (%v -> %v)", box.Entity, box.BBox.Min(), box.BBox.Max())
		}
	}
	for _, sl := range b.slopes {
		if !game.IsFiniteVec3(sl.Normal) || !game.Float32ApproxEq(sl.Normal.Len(), 1) || !game.IsFinite(sl.Offset) {
			return nil, oerror.NewGeometryError("build", "slope %d has an invalid plane (normal=%v)", sl.Entity, sl.Normal)
		}
		if game.BBHasZeroVolume(sl.Bounds) {
			return nil, oerror.NewGeometryError("build", "slope %d has empty bounds", sl.Entity)
		}
	}

	s := &Snapshot{
		boxes:  append([]Box(nil), b.boxes...),
		slopes: append([]Slope(nil), b.slopes...),
	}
	s.fingerprint = fingerprint(s)
	return s, nil
}

// fingerprint hashes the colliders of a snapshot in insertion order.
func fingerprint(s *Snapshot) uint64 {
	buf := internal.GetBuffer()
	defer internal.PutBuffer(buf)

	for _, box := range s.boxes {
		writeVec3(buf, box.BBox.Min())
		writeVec3(buf, box.BBox.Max())
	}
	buf.WriteByte(0xff)
	for _, sl := range s.slopes {
		writeVec3(buf, sl.Normal)
		_ = binary.Write(buf, binary.LittleEndian, sl.Offset)
		writeVec3(buf, sl.Bounds.Min())
		writeVec3(buf, sl.Bounds.Max())
	}
	return xxh3.Hash(buf.Bytes())
}

func writeVec3(buf *bytes.Buffer, v mgl32.Vec3) {
	_ = binary.Write(buf, binary.LittleEndian, v)
}
