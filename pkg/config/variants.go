package config

import (
	"embed"
	"sort"
	"time"

	"github.com/Mr-Kurtis72/VEX-2025-High-Stakes/pkg/chassis"
	"github.com/Mr-Kurtis72/VEX-2025-High-Stakes/pkg/hardware"
	"github.com/pkg/errors"
)

//go:embed paths/*.txt
var paths embed.FS

// Path returns an embedded path asset by file name.
func Path(name string) (*chassis.Path, error) {
	data, err := paths.ReadFile("paths/" + name)
	if err != nil {
		return nil, errors.Errorf("no path asset %q", name)
	}
	return chassis.ParsePath(name, data)
}

const (
	Main               = "main"
	MainPath           = "main-path"
	ScreenMotorControl = "screen-motor-control"
	ScreenTest         = "screen-test"
)

var variants = map[string]func() *Config{
	Main:               mainConfig,
	MainPath:           mainPathConfig,
	ScreenMotorControl: screenMotorControlConfig,
	ScreenTest:         screenTestConfig,
}

func Variants() []string {
	var names []string
	for n := range variants {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Variant returns a fresh copy of a built-in variant.
func Variant(name string) (*Config, error) {
	f, ok := variants[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownVariant, "%q", name)
	}
	return f(), nil
}

func base(name string) *Config {
	return &Config{
		Variant:     name,
		CyclePeriod: 25 * time.Millisecond,
		Hardware:    "dummy",
		Pi: hardware.PiConfig{
			GPIOInputs: map[hardware.Input]string{
				hardware.ScreenLeft:   "GPIO5",
				hardware.ScreenCenter: "GPIO6",
				hardware.ScreenRight:  "GPIO13",
			},
			GPIOOutputs: map[hardware.Pin]string{
				"A": "GPIO17",
				"E": "GPIO27",
			},
			MotorFlushPeriod: 5 * time.Millisecond,
		},
		Chassis: Chassis{
			Left:  []int{-7, -6},
			Right: []int{18, 19},
			Dimensions: chassis.Dimensions{
				TrackWidth:      12.75,
				WheelDiameter:   3.25,
				RPM:             360,
				HorizontalDrift: 2,
			},
		},
		Display: Display{
			Period: 20 * time.Millisecond,
		},
		Bindings: map[string]hardware.Input{},
	}
}

func mainConfig() *Config {
	c := base(Main)
	c.Display.Status = "pose"
	c.Display.Period = 25 * time.Millisecond
	c.Bindings = map[string]hardware.Input{
		"Stake Lock":            "L1",
		"Conveyer Spin":         "R1",
		"Reverse Conveyer Spin": "R2",
		"Velocity Up":           "Up",
		"Velocity Down":         "Down",
	}
	c.Toggles = []Toggle{{
		Name:    "Stake Lock",
		Binding: "Stake Lock",
		Policy:  "edge",
		Holdoff: 250 * time.Millisecond,
		Output:  Output{Kind: "pin", Pin: "E"},
	}}
	c.Intake = &Intake{
		Ports:    []int{1, 5},
		Velocity: 127,
		Forward:  "Conveyer Spin",
		Reverse:  "Reverse Conveyer Spin",
	}
	c.Drive = Drive{Enabled: true, Forward: "LeftY", Turn: "RightX"}
	c.Trim = &Trim{Up: "Velocity Up", Down: "Velocity Down", Step: 10}
	c.InitialPose = chassis.Pose{X: -55.5, Y: 12, Theta: 270}

	// The stake latch is on the back so the approach is driven in reverse.
	c.Autonomous = []Step{
		{Kind: StepMoveToPose, X: -46, Y: 12, Heading: 270, Timeout: 1500 * time.Millisecond, Reverse: true},
		{Kind: StepTurnToPoint, X: -24, Y: 24, Timeout: 1500 * time.Millisecond, Reverse: true},
		{
			Kind: StepDrivePulse, Left: -127, Right: -127, Duration: 300 * time.Millisecond,
			Toggle: "Stake Lock", Engage: true, Settle: 250 * time.Millisecond,
		},
		{Kind: StepIntake, Velocity: 127},
	}
	return c
}

func mainPathConfig() *Config {
	c := mainConfig()
	c.Variant = MainPath
	c.Toggles[0].Policy = "time"
	c.Toggles[0].Holdoff = 250 * time.Millisecond
	c.Autonomous = []Step{
		{Kind: StepFollowPath, Path: "path.txt", Lookahead: 15, Timeout: 5000 * time.Millisecond},
	}
	return c
}

func screenButtons(c *Config) {
	c.Bindings = map[string]hardware.Input{
		"Left Button":   hardware.ScreenLeft,
		"Center Button": hardware.ScreenCenter,
		"Right Button":  hardware.ScreenRight,
	}
	c.Display.Status = "buttons"
}

func screenMotorControlConfig() *Config {
	c := base(ScreenMotorControl)
	screenButtons(c)
	c.Toggles = []Toggle{
		{
			Name: "Test Motor", Binding: "Left Button", Policy: "edge", Always: true,
			Output: Output{Kind: "motor", Ports: []int{1}, Velocity: -127},
		},
		{
			Name: "Pneumatics", Binding: "Center Button", Policy: "edge", Always: true,
			Output: Output{Kind: "pin", Pin: "A"},
		},
		{
			Name: "Right Text", Binding: "Right Button", Policy: "edge", Always: true,
			Output: Output{Kind: "text", Line: 4, Text: "Right button was pressed!"},
		},
	}
	return c
}

func screenTestConfig() *Config {
	c := base(ScreenTest)
	screenButtons(c)
	for i, side := range []string{"Left", "Center", "Right"} {
		c.Toggles = append(c.Toggles, Toggle{
			Name: side + " Text", Binding: side + " Button", Policy: "edge", Always: true,
			Output: Output{Kind: "text", Line: 2 + i, Text: side + " button was pressed!"},
		})
	}
	return c
}
