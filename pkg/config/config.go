package config

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Mr-Kurtis72/VEX-2025-High-Stakes/pkg/chassis"
	"github.com/Mr-Kurtis72/VEX-2025-High-Stakes/pkg/hardware"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	yaml "gopkg.in/yaml.v2"
)

var ErrUnknownVariant = errors.New("unknown program variant")

type Config struct {
	Variant     string        `yaml:"variant"`
	CyclePeriod time.Duration `yaml:"cyclePeriod"`

	Hardware string                    `yaml:"hardware"` // dummy or pi
	Pi       hardware.PiConfig         `yaml:"pi"`
	Chassis  Chassis                   `yaml:"chassis"`
	Display  Display                   `yaml:"display"`
	Sounds   map[string]string         `yaml:"sounds,omitempty"` // mode name or "start" -> wav file
	Bindings map[string]hardware.Input `yaml:"bindings"`

	Toggles []Toggle `yaml:"toggles,omitempty"`
	Intake  *Intake  `yaml:"intake,omitempty"`
	Drive   Drive    `yaml:"drive"`
	Trim    *Trim    `yaml:"trim,omitempty"`

	InitialPose chassis.Pose `yaml:"initialPose"`
	Autonomous  []Step       `yaml:"autonomous,omitempty"`
}

type Chassis struct {
	Left       []int              `yaml:"left"`
	Right      []int              `yaml:"right"`
	Dimensions chassis.Dimensions `yaml:"dimensions"`
	Sim        chassis.SimConfig  `yaml:"sim"`
}

type Display struct {
	Status      string        `yaml:"status"` // pose, buttons or empty
	Period      time.Duration `yaml:"period"`
	Framebuffer string        `yaml:"framebuffer,omitempty"`
}

type Toggle struct {
	Name    string        `yaml:"name"`
	Binding string        `yaml:"binding"`
	Policy  string        `yaml:"policy"` // edge or time
	Holdoff time.Duration `yaml:"holdoff,omitempty"`

	// Always toggles run from startup in every mode, like the brain screen
	// button callbacks; the others only run in opcontrol.
	Always bool   `yaml:"always,omitempty"`
	Output Output `yaml:"output"`
}

type Output struct {
	Kind     string       `yaml:"kind"` // pin, motor or text
	Pin      hardware.Pin `yaml:"pin,omitempty"`
	Ports    []int        `yaml:"ports,omitempty"`
	Velocity int          `yaml:"velocity,omitempty"`
	Line     int          `yaml:"line,omitempty"`
	Text     string       `yaml:"text,omitempty"`
}

type Intake struct {
	Ports    []int  `yaml:"ports"`
	Velocity int    `yaml:"velocity"`
	Forward  string `yaml:"forward"`
	Reverse  string `yaml:"reverse"`
}

type Drive struct {
	Enabled bool          `yaml:"enabled"`
	Forward hardware.Axis `yaml:"forward"`
	Turn    hardware.Axis `yaml:"turn"`
}

// Trim nudges the intake velocity up and down from the controller.
type Trim struct {
	Up   string `yaml:"up"`
	Down string `yaml:"down"`
	Step int    `yaml:"step"`
}

// Step is one autonomous step.  Which fields matter depends on Kind.
type Step struct {
	Kind string `yaml:"kind"`

	X       float64       `yaml:"x,omitempty"`
	Y       float64       `yaml:"y,omitempty"`
	Heading float64       `yaml:"heading,omitempty"`
	Timeout time.Duration `yaml:"timeout,omitempty"`
	Reverse bool          `yaml:"reverse,omitempty"`

	Left     int           `yaml:"left,omitempty"`
	Right    int           `yaml:"right,omitempty"`
	Duration time.Duration `yaml:"duration,omitempty"`
	Toggle   string        `yaml:"toggle,omitempty"`
	Engage   bool          `yaml:"engage,omitempty"`
	Settle   time.Duration `yaml:"settle,omitempty"`

	Path      string  `yaml:"path,omitempty"`
	Lookahead float64 `yaml:"lookahead,omitempty"`

	Velocity int `yaml:"velocity,omitempty"`
}

const (
	StepMoveToPose  = "moveToPose"
	StepTurnToPoint = "turnToPoint"
	StepFollowPath  = "followPath"
	StepDrivePulse  = "drivePulse"
	StepIntake      = "intake"
	StepWait        = "wait"
)

// Load starts from the built-in variant, overlays the YAML file at path if
// there is one and writes the result next to it as <name>-in-use.yaml.
func Load(path, variant string, log logrus.FieldLogger) (*Config, error) {
	cfg, err := Variant(variant)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	if path == "" {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	data, err := ioutil.ReadFile(path)
	if os.IsNotExist(err) {
		log.Infof("No config at %s, using the %s defaults", path, variant)
	} else if err != nil {
		return nil, errors.Wrap(err, "failed to read config")
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", path)
	}
	if cfg.Variant != variant {
		return nil, errors.Errorf("%s is for variant %q, not %q", path, cfg.Variant, variant)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Write out the config that we are using.
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal config")
	}
	if err := ioutil.WriteFile(InUsePath(path), out, 0666); err != nil {
		log.WithError(err).Warn("Failed to write the in-use config")
	}
	return cfg, nil
}

func InUsePath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "-in-use" + ext
}

func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Validate catches the mistakes that would otherwise only show up mid-match.
// Bindings are checked against the hardware when the robot is built.
func (c *Config) Validate() error {
	if c.CyclePeriod <= 0 {
		return errors.New("cyclePeriod must be positive")
	}
	switch c.Hardware {
	case "dummy", "pi":
	default:
		return errors.Errorf("unknown hardware %q", c.Hardware)
	}
	switch c.Display.Status {
	case "", "pose", "buttons":
	default:
		return errors.Errorf("unknown display status %q", c.Display.Status)
	}
	if c.Intake != nil {
		// The buttons pick the direction; this is only the speed.
		if v := c.Intake.Velocity; v < 0 || v > hardware.MaxVelocity {
			return errors.Errorf("intake velocity %d outside [0, %d]", v, hardware.MaxVelocity)
		}
	}
	names := map[string]bool{}
	for _, t := range c.Toggles {
		if names[t.Name] {
			return errors.Errorf("toggle %q defined twice", t.Name)
		}
		names[t.Name] = true
		switch t.Policy {
		case "", "edge":
			if t.Holdoff < 0 {
				return errors.Errorf("toggle %q: negative holdoff", t.Name)
			}
		case "time":
			if t.Holdoff <= 0 {
				return errors.Errorf("toggle %q: time policy needs a positive holdoff", t.Name)
			}
		default:
			return errors.Errorf("toggle %q: unknown policy %q", t.Name, t.Policy)
		}
		switch t.Output.Kind {
		case "pin", "text":
		case "motor":
			if err := checkVelocity("toggle "+t.Name, t.Output.Velocity); err != nil {
				return err
			}
		default:
			return errors.Errorf("toggle %q: unknown output kind %q", t.Name, t.Output.Kind)
		}
	}
	for i, s := range c.Autonomous {
		if err := s.validate(names); err != nil {
			return errors.Wrapf(err, "autonomous step %d", i+1)
		}
	}
	return nil
}

func (s Step) validate(toggles map[string]bool) error {
	switch s.Kind {
	case StepMoveToPose, StepTurnToPoint, StepFollowPath:
		if s.Timeout <= 0 {
			return errors.Errorf("%s needs a positive timeout", s.Kind)
		}
		if s.Kind == StepFollowPath {
			if _, err := Path(s.Path); err != nil {
				return err
			}
		}
	case StepDrivePulse:
		if err := checkVelocity("left", s.Left); err != nil {
			return err
		}
		if err := checkVelocity("right", s.Right); err != nil {
			return err
		}
		if s.Toggle != "" && !toggles[s.Toggle] {
			return errors.Errorf("drivePulse: no toggle %q", s.Toggle)
		}
	case StepIntake:
		return checkVelocity("intake", s.Velocity)
	case StepWait:
	default:
		return errors.Errorf("unknown step kind %q", s.Kind)
	}
	return nil
}

func checkVelocity(what string, v int) error {
	if v < -hardware.MaxVelocity || v > hardware.MaxVelocity {
		return errors.Errorf("%s velocity %d outside [-%d, %d]", what, v, hardware.MaxVelocity, hardware.MaxVelocity)
	}
	return nil
}
