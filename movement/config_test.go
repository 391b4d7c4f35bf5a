package movement

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/kinematic/geometry"
	"github.com/oomph-ac/kinematic/oerror"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config rejected: %v", err)
	}
}

func TestConfigValidation(t *testing.T) {
	cases := map[string]func(cfg *Config){
		"Acceleration":        func(cfg *Config) { cfg.Acceleration = -1 },
		"MaxSpeed":            func(cfg *Config) { cfg.MaxSpeed = math32.NaN() },
		"Damping":             func(cfg *Config) { cfg.Damping = 0 },
		"JumpCooldown":        func(cfg *Config) { cfg.JumpCooldown = -0.5 },
		"MaxSlopeAngle":       func(cfg *Config) { cfg.MaxSlopeAngle = math32.Pi },
		"Gravity":             func(cfg *Config) { cfg.Gravity = mgl32.Vec3{0, math32.Inf(-1), 0} },
		"PitchMax":            func(cfg *Config) { cfg.PitchMax = 2 },
		"Shape":               func(cfg *Config) { cfg.Shape = geometry.Shape{Width: 0, Height: 1.8} },
		"GroundProbeDistance": func(cfg *Config) { cfg.GroundProbeDistance = cfg.SkinWidth },
		"StepHeight":          func(cfg *Config) { cfg.StepHeight = cfg.Shape.Height },
		"MaxIterations":       func(cfg *Config) { cfg.MaxIterations = 0 },
		"SkinWidth":           func(cfg *Config) { cfg.SkinWidth = math32.Inf(1) },
	}
	for field, mutate := range cases {
		cfg := DefaultConfig()
		mutate(&cfg)

		err := cfg.Validate()
		if !oerror.IsConfig(err) {
			t.Fatalf("%s: expected a config error, got %v", field, err)
		}
		if _, simErr := NewSimulator(cfg, testLogger()); !oerror.IsConfig(simErr) {
			t.Fatalf("%s: simulator must refuse the config, got %v", field, simErr)
		}
		var cfgErr *oerror.ConfigError
		if !errors.As(err, &cfgErr) || cfgErr.Field != field {
			t.Fatalf("expected field %s to be blamed, got %v", field, err)
		}
	}
}

func TestPitchOrderValidation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PitchMin, cfg.PitchMax = 0.5, 0.2
	if err := cfg.Validate(); !oerror.IsConfig(err) {
		t.Fatalf("expected inverted pitch limits to be rejected, got %v", err)
	}
}

func TestDampingOfOneIsAccepted(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Damping = 1
	if err := cfg.Validate(); err != nil {
		t.Fatalf("damping of one must be accepted: %v", err)
	}
}
