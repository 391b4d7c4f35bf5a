package scene

import (
	"fmt"
	"os"

	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// Spec is the on-disk description of a scene.
type Spec struct {
	Name   string      `yaml:"name"`
	Boxes  []BoxSpec   `yaml:"boxes"`
	Slopes []SlopeSpec `yaml:"slopes"`
}

// BoxSpec describes a solid box by two opposite corners.
type BoxSpec struct {
	Name string     `yaml:"name"`
	Min  [3]float32 `yaml:"min"`
	Max  [3]float32 `yaml:"max"`
}

// SlopeSpec describes a ramp filling the box between Min and Max. The ramp surface starts at the bottom
// edge of the box on the side opposite to Rises and climbs at Angle degrees towards the Rises side.
type SlopeSpec struct {
	Name  string     `yaml:"name"`
	Min   [3]float32 `yaml:"min"`
	Max   [3]float32 `yaml:"max"`
	Angle float32    `yaml:"angle"`
	// Rises is one of "+x", "-x", "+z" or "-z".
	Rises string `yaml:"rises"`
}

// LoadSpec reads and decodes a YAML scene spec from the file given.
func LoadSpec(filename string) (Spec, error) {
	var zero Spec
	data, err := os.ReadFile(filename)
	if err != nil {
		return zero, fmt.Errorf("scene: load %s: %w", filename, err)
	}
	return ParseSpec(data)
}

// ParseSpec decodes a YAML scene spec.
func ParseSpec(data []byte) (Spec, error) {
	var spec Spec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return Spec{}, fmt.Errorf("scene: unmarshal: %w", err)
	}
	return spec, nil
}

// Marshal encodes the spec as YAML.
func (s Spec) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}

// Build turns the spec into a Snapshot.
func (s Spec) Build() (*Snapshot, error) {
	b := NewBuilder()
	for _, box := range s.Boxes {
		b.AddBox(cube.Box(box.Min[0], box.Min[1], box.Min[2], box.Max[0], box.Max[1], box.Max[2]))
	}
	for _, sl := range s.Slopes {
		normal, point, err := sl.plane()
		if err != nil {
			return nil, err
		}
		b.AddSlope(normal, point, cube.Box(sl.Min[0], sl.Min[1], sl.Min[2], sl.Max[0], sl.Max[1], sl.Max[2]))
	}
	return b.Build()
}

// plane returns the normal of the ramp surface and a point on its low edge.
func (s SlopeSpec) plane() (mgl32.Vec3, mgl32.Vec3, error) {
	if s.Angle <= 0 || s.Angle >= 90 {
		return mgl32.Vec3{}, mgl32.Vec3{}, fmt.Errorf("scene: slope %q: angle must be in (0, 90), got %v", s.Name, s.Angle)
	}
	sin, cos := math32.Sincos(mgl32.DegToRad(s.Angle))
	lo, hi := mgl32.Vec3(s.Min), mgl32.Vec3(s.Max)

	switch s.Rises {
	case "+x":
		return mgl32.Vec3{-sin, cos, 0}, mgl32.Vec3{lo[0], lo[1], lo[2]}, nil
	case "-x":
		return mgl32.Vec3{sin, cos, 0}, mgl32.Vec3{hi[0], lo[1], lo[2]}, nil
	case "+z":
		return mgl32.Vec3{0, cos, -sin}, mgl32.Vec3{lo[0], lo[1], lo[2]}, nil
	case "-z":
		return mgl32.Vec3{0, cos, sin}, mgl32.Vec3{lo[0], lo[1], hi[2]}, nil
	}
	return mgl32.Vec3{}, mgl32.Vec3{}, fmt.Errorf("scene: slope %q: unknown rise direction %q", s.Name, s.Rises)
}

// DefaultArena returns the spec of a small arena: a ground slab, a ramp, a handful of platforms at
// increasing heights, a crate and four boundary walls.
func DefaultArena() Spec {
	s := Spec{Name: "arena"}
	s.Boxes = append(s.Boxes, BoxSpec{Name: "ground", Min: [3]float32{-20, -1, -20}, Max: [3]float32{20, 0, 20}})
	for i := 0; i < 5; i++ {
		x := float32(i)*3 - 6
		top := 0.25 + float32(i)*0.25
		s.Boxes = append(s.Boxes, BoxSpec{
			Name: fmt.Sprintf("platform_%d", i),
			Min:  [3]float32{x - 1, 0, 4},
			Max:  [3]float32{x + 1, top, 6},
		})
	}
	s.Boxes = append(s.Boxes,
		BoxSpec{Name: "crate", Min: [3]float32{4, 0, -4}, Max: [3]float32{5, 1, -3}},
		BoxSpec{Name: "wall_north", Min: [3]float32{-20, 0, -20.5}, Max: [3]float32{20, 4, -20}},
		BoxSpec{Name: "wall_south", Min: [3]float32{-20, 0, 20}, Max: [3]float32{20, 4, 20.5}},
		BoxSpec{Name: "wall_west", Min: [3]float32{-20.5, 0, -20}, Max: [3]float32{-20, 4, 20}},
		BoxSpec{Name: "wall_east", Min: [3]float32{20, 0, -20}, Max: [3]float32{20.5, 4, 20}},
	)
	s.Slopes = append(s.Slopes, SlopeSpec{
		Name:  "ramp",
		Min:   [3]float32{-8, 0, -10},
		Max:   [3]float32{-4, 2, -4},
		Angle: 17,
		Rises: "-z",
	})
	return s
}
