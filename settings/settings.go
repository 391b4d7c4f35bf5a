package settings

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/kinematic/game"
	"github.com/oomph-ac/kinematic/geometry"
	"github.com/oomph-ac/kinematic/movement"
	"github.com/oomph-ac/kinematic/oerror"
	"github.com/pelletier/go-toml"
	"github.com/sirupsen/logrus"
)

// Settings contains everything that can be configured for a controller and the program running it.
type Settings struct {
	Controller struct {
		Acceleration float64
		MaxSpeed     float64
		// Damping is the fraction of planar velocity kept per second without move input.
		Damping      float64
		JumpImpulse  float64
		JumpCooldown float64
		// MaxSlope is the steepest walkable surface, in degrees.
		MaxSlope float64
		Gravity  []float64

		MouseSensitivity   float64
		GamepadSensitivity float64
		// PitchMin and PitchMax bound how far the camera may look down and up, in degrees.
		PitchMin float64
		PitchMax float64

		Width               float64
		Height              float64
		SkinWidth           float64
		GroundProbeDistance float64
		GroundBias          float64
		StepHeight          float64
		MaxIterations       int
		VerticalEpsilon     float64
	}
	Log struct {
		Level string
	}
	Sentry struct {
		DSN string
	}
	Simulation struct {
		// TickRate is the amount of ticks simulated per second.
		TickRate int
		// Workers is the amount of goroutines ticking bodies. Zero uses one per CPU.
		Workers int
	}
	Scene struct {
		Path  string
		Watch bool
	}
}

// DefaultSettings returns the default settings.
func DefaultSettings() Settings {
	settings := Settings{}

	settings.Controller.Acceleration = f64(game.DefaultAcceleration)
	settings.Controller.MaxSpeed = f64(game.DefaultMaxSpeed)
	settings.Controller.Damping = f64(game.DefaultDamping)
	settings.Controller.JumpImpulse = f64(game.DefaultJumpImpulse)
	settings.Controller.JumpCooldown = f64(game.DefaultJumpCooldown)
	settings.Controller.MaxSlope = f64(mgl32.RadToDeg(game.DefaultMaxSlopeAngle))
	settings.Controller.Gravity = []float64{0, f64(game.DefaultGravity), 0}

	settings.Controller.MouseSensitivity = f64(game.DefaultMouseSensitivity)
	settings.Controller.GamepadSensitivity = f64(game.DefaultGamepadSensitivity)
	settings.Controller.PitchMin = -f64(mgl32.RadToDeg(game.DefaultPitchLimit))
	settings.Controller.PitchMax = f64(mgl32.RadToDeg(game.DefaultPitchLimit))

	settings.Controller.Width = f64(game.DefaultBodyWidth)
	settings.Controller.Height = f64(game.DefaultBodyHeight)
	settings.Controller.SkinWidth = f64(game.DefaultSkinWidth)
	settings.Controller.GroundProbeDistance = f64(game.DefaultGroundProbeDistance)
	settings.Controller.GroundBias = f64(game.DefaultGroundBias)
	settings.Controller.StepHeight = f64(game.DefaultStepHeight)
	settings.Controller.MaxIterations = game.DefaultMaxIterations
	settings.Controller.VerticalEpsilon = f64(game.DefaultVerticalEpsilon)

	settings.Log.Level = logrus.InfoLevel.String()
	settings.Simulation.TickRate = 60
	settings.Scene.Path = "arena.yaml"
	settings.Scene.Watch = true
	return settings
}

// SaveDefault will create and save the default settings file. If the file already exists, it will return an error.
func SaveDefault(path string) error {
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return errors.New("settings file already exists")
	}
	data, err := toml.Marshal(DefaultSettings())
	if err != nil {
		return fmt.Errorf("failed encoding default settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed creating settings file: %w", err)
	}
	return nil
}

// Load will load the settings from your settings file. If the file does not exist, the default
// settings are written to it first.
func Load(path string) (Settings, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := SaveDefault(path); err != nil {
			return Settings{}, err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("error reading settings: %w", err)
	}
	settings := DefaultSettings()
	if err = toml.Unmarshal(data, &settings); err != nil {
		return Settings{}, fmt.Errorf("error decoding settings: %w", err)
	}
	return settings, nil
}

// Config converts the controller settings into a validated movement configuration.
func (s Settings) Config() (movement.Config, error) {
	c := s.Controller
	if len(c.Gravity) != 3 {
		return movement.Config{}, oerror.NewConfigError("Gravity", "must have 3 components, got %d", len(c.Gravity))
	}

	cfg := movement.Config{
		Acceleration:        float32(c.Acceleration),
		MaxSpeed:            float32(c.MaxSpeed),
		Damping:             float32(c.Damping),
		JumpImpulse:         float32(c.JumpImpulse),
		JumpCooldown:        float32(c.JumpCooldown),
		MaxSlopeAngle:       mgl32.DegToRad(float32(c.MaxSlope)),
		Gravity:             mgl32.Vec3{float32(c.Gravity[0]), float32(c.Gravity[1]), float32(c.Gravity[2])},
		MouseSensitivity:    float32(c.MouseSensitivity),
		GamepadSensitivity:  float32(c.GamepadSensitivity),
		PitchMin:            mgl32.DegToRad(float32(c.PitchMin)),
		PitchMax:            mgl32.DegToRad(float32(c.PitchMax)),
		Shape:               geometry.Shape{Width: float32(c.Width), Height: float32(c.Height)},
		SkinWidth:           float32(c.SkinWidth),
		GroundProbeDistance: float32(c.GroundProbeDistance),
		GroundBias:          float32(c.GroundBias),
		StepHeight:          float32(c.StepHeight),
		MaxIterations:       c.MaxIterations,
		VerticalEpsilon:     float32(c.VerticalEpsilon),
	}
	return cfg, cfg.Validate()
}

// LogLevel returns the configured log level.
func (s Settings) LogLevel() (logrus.Level, error) {
	lvl, err := logrus.ParseLevel(s.Log.Level)
	if err != nil {
		return logrus.InfoLevel, oerror.NewConfigError("Log.Level", "%v", err)
	}
	return lvl, nil
}

// TickInterval returns the duration of a single simulation tick.
func (s Settings) TickInterval() (time.Duration, error) {
	if s.Simulation.TickRate <= 0 || s.Simulation.TickRate > 1000 {
		return 0, oerror.NewConfigError("Simulation.TickRate", "must be in [1, 1000], got %d", s.Simulation.TickRate)
	}
	return time.Second / time.Duration(s.Simulation.TickRate), nil
}

// f64 widens v to the float64 with the shortest decimal form that still reads back as v, so that
// defaults such as 0.8 are written to the settings file as 0.8.
func f64(v float32) float64 {
	f, _ := strconv.ParseFloat(strconv.FormatFloat(float64(v), 'g', -1, 32), 64)
	return f
}
