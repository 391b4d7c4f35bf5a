package settings

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/kinematic/movement"
	"github.com/oomph-ac/kinematic/oerror"
	"github.com/sirupsen/logrus"
)

func TestDefaultSettingsMatchDefaultConfig(t *testing.T) {
	cfg, err := DefaultSettings().Config()
	if err != nil {
		t.Fatalf("default settings rejected: %v", err)
	}
	def := movement.DefaultConfig()

	angles := []struct {
		name      string
		got, want float32
	}{
		{"MaxSlopeAngle", cfg.MaxSlopeAngle, def.MaxSlopeAngle},
		{"PitchMin", cfg.PitchMin, def.PitchMin},
		{"PitchMax", cfg.PitchMax, def.PitchMax},
	}
	for _, a := range angles {
		if math32.Abs(a.got-a.want) > 1e-5 {
			t.Fatalf("%s: expected %v, got %v", a.name, a.want, a.got)
		}
	}
	cfg.MaxSlopeAngle, cfg.PitchMin, cfg.PitchMax = def.MaxSlopeAngle, def.PitchMin, def.PitchMax
	if cfg != def {
		t.Fatalf("expected %+v, got %+v", def, cfg)
	}
}

func TestLoadWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")

	s, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.Simulation.TickRate != 60 || s.Controller.MaxIterations != 4 {
		t.Fatalf("expected default settings, got %+v", s)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected the default file to be written: %v", err)
	}
	for _, section := range []string{"[Controller]", "[Log]", "[Sentry]", "[Simulation]", "[Scene]"} {
		if !strings.Contains(string(data), section) {
			t.Fatalf("expected section %s in the default file:\n%s", section, data)
		}
	}
	if !strings.Contains(string(data), "0.8") {
		t.Fatalf("expected defaults to be written in their short form:\n%s", data)
	}

	if err := SaveDefault(path); err == nil {
		t.Fatalf("saving defaults over an existing file must fail")
	}
}

func TestLoadReadsChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	if err := SaveDefault(path); err != nil {
		t.Fatalf("save default: %v", err)
	}

	data, _ := os.ReadFile(path)
	edited := strings.Replace(string(data), "JumpImpulse = 7.0", "JumpImpulse = 9.5", 1)
	edited = strings.Replace(edited, `Level = "info"`, `Level = "debug"`, 1)
	if edited == string(data) {
		t.Fatalf("expected the default file to hold the values being edited:\n%s", data)
	}
	if err := os.WriteFile(path, []byte(edited), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg, err := s.Config()
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if cfg.JumpImpulse != 9.5 {
		t.Fatalf("expected the edited jump impulse, got %v", cfg.JumpImpulse)
	}
	if lvl, err := s.LogLevel(); err != nil || lvl != logrus.DebugLevel {
		t.Fatalf("expected debug level, got %v (%v)", lvl, err)
	}
}

func TestAsymmetricPitchRange(t *testing.T) {
	s := DefaultSettings()
	s.Controller.PitchMin, s.Controller.PitchMax = -60, 80
	cfg, err := s.Config()
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if math32.Abs(cfg.PitchMin-mgl32.DegToRad(-60)) > 1e-5 || math32.Abs(cfg.PitchMax-mgl32.DegToRad(80)) > 1e-5 {
		t.Fatalf("expected a pitch range of [-60, 80] degrees, got [%v, %v]", cfg.PitchMin, cfg.PitchMax)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	if err := os.WriteFile(path, []byte("[Controller\nMaxSpeed = "), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected a decoding error")
	}
}

func TestInvalidSettings(t *testing.T) {
	s := DefaultSettings()
	s.Controller.Damping = 2
	if _, err := s.Config(); !oerror.IsConfig(err) {
		t.Fatalf("expected a config error, got %v", err)
	}

	s = DefaultSettings()
	s.Controller.Gravity = []float64{0, -9.81}
	if _, err := s.Config(); !oerror.IsConfig(err) {
		t.Fatalf("expected a config error for a short gravity vector, got %v", err)
	}

	s = DefaultSettings()
	s.Controller.PitchMin, s.Controller.PitchMax = 30, -30
	if _, err := s.Config(); !oerror.IsConfig(err) {
		t.Fatalf("expected a config error for an inverted pitch range, got %v", err)
	}

	s = DefaultSettings()
	s.Log.Level = "loud"
	if _, err := s.LogLevel(); !oerror.IsConfig(err) {
		t.Fatalf("expected a config error for an unknown level, got %v", err)
	}

	s = DefaultSettings()
	if d, err := s.TickInterval(); err != nil || d != time.Second/60 {
		t.Fatalf("expected a 60 Hz tick, got %v (%v)", d, err)
	}
	s.Simulation.TickRate = 0
	if _, err := s.TickInterval(); !oerror.IsConfig(err) {
		t.Fatalf("expected a config error for a zero tick rate, got %v", err)
	}
}
