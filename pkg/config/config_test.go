package config

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus/hooks/test"
	yaml "gopkg.in/yaml.v2"
)

func TestVariantsValidate(t *testing.T) {
	if len(Variants()) != 4 {
		t.Fatalf("Expected four variants, got %v", Variants())
	}
	for _, name := range Variants() {
		c, err := Variant(name)
		if err != nil {
			t.Fatal(err)
		}
		if err := c.Validate(); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
}

func TestVariantsDiffer(t *testing.T) {
	m, _ := Variant(Main)
	mp, _ := Variant(MainPath)
	if m.Toggles[0].Policy != "edge" || mp.Toggles[0].Policy != "time" || mp.Toggles[0].Holdoff != 250*time.Millisecond {
		t.Errorf("Unexpected toggle policies %+v %+v", m.Toggles[0], mp.Toggles[0])
	}
	if len(m.Autonomous) != 4 || m.Autonomous[0].Timeout != 1500*time.Millisecond || !m.Autonomous[0].Reverse {
		t.Errorf("Unexpected main script %+v", m.Autonomous)
	}
	if len(mp.Autonomous) != 1 || mp.Autonomous[0].Kind != StepFollowPath {
		t.Errorf("Unexpected path script %+v", mp.Autonomous)
	}
	// Variants are independent copies.
	m.Toggles[0].Name = "changed"
	if again, _ := Variant(Main); again.Toggles[0].Name != "Stake Lock" {
		t.Error("Variant should return a fresh value")
	}
}

func TestUnknownVariant(t *testing.T) {
	_, err := Variant("nope")
	if errors.Cause(err) != ErrUnknownVariant {
		t.Fatalf("Expected ErrUnknownVariant, got %v", err)
	}
}

func TestEmbeddedPath(t *testing.T) {
	p, err := Path("path.txt")
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Points) != 12 || p.Points[11].X != -24 || p.Points[11].Y != 24 {
		t.Fatalf("Unexpected path %+v", p.Points)
	}
	if _, err := Path("missing.txt"); err == nil {
		t.Fatal("Missing path should fail")
	}
}

func TestValidateRejects(t *testing.T) {
	for name, mutate := range map[string]func(c *Config){
		"zero cycle":      func(c *Config) { c.CyclePeriod = 0 },
		"no timeout":      func(c *Config) { c.Autonomous[0].Timeout = 0 },
		"bad kind":        func(c *Config) { c.Autonomous[0].Kind = "jump" },
		"fast intake":     func(c *Config) { c.Intake.Velocity = 200 },
		"unknown toggle":  func(c *Config) { c.Autonomous[2].Toggle = "Clamp" },
		"bad output":      func(c *Config) { c.Toggles[0].Output.Kind = "servo" },
		"duplicate":       func(c *Config) { c.Toggles = append(c.Toggles, c.Toggles[0]) },
		"bad hardware":    func(c *Config) { c.Hardware = "cloud" },
		"bad path asset":  func(c *Config) { c.Autonomous = []Step{{Kind: StepFollowPath, Path: "x.txt", Timeout: time.Second}} },
		"bad pulse speed": func(c *Config) { c.Autonomous[2].Left = -128 },
		"reversed intake": func(c *Config) { c.Intake.Velocity = -100 },
		"no time holdoff": func(c *Config) { c.Toggles[0].Policy, c.Toggles[0].Holdoff = "time", 0 },
		"negative holdoff": func(c *Config) {
			c.Toggles[0].Policy, c.Toggles[0].Holdoff = "time", -time.Millisecond
		},
		"bad policy": func(c *Config) { c.Toggles[0].Policy = "level" },
	} {
		c, _ := Variant(Main)
		mutate(c)
		if err := c.Validate(); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}

func tempDir(t *testing.T) string {
	dir, err := ioutil.TempDir("", "config")
	if err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestLoadOverlaysFile(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "robot.yaml")
	err := ioutil.WriteFile(path, []byte("variant: main\ncyclePeriod: 50ms\nintake:\n  velocity: 100\n"), 0666)
	if err != nil {
		t.Fatal(err)
	}

	log, _ := test.NewNullLogger()
	c, err := Load(path, Main, log)
	if err != nil {
		t.Fatal(err)
	}
	if c.CyclePeriod != 50*time.Millisecond || c.Intake.Velocity != 100 {
		t.Errorf("Overlay not applied: %v %+v", c.CyclePeriod, c.Intake)
	}
	if c.Toggles[0].Name != "Stake Lock" {
		t.Errorf("Defaults should survive the overlay: %+v", c.Toggles)
	}

	data, err := ioutil.ReadFile(filepath.Join(dir, "robot-in-use.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	var inUse Config
	if err := yaml.Unmarshal(data, &inUse); err != nil {
		t.Fatal(err)
	}
	if inUse.CyclePeriod != 50*time.Millisecond || len(inUse.Autonomous) != 4 {
		t.Errorf("In-use copy does not match: %+v", inUse)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)
	log, _ := test.NewNullLogger()
	c, err := Load(filepath.Join(dir, "robot.yaml"), ScreenTest, log)
	if err != nil {
		t.Fatal(err)
	}
	if c.Display.Status != "buttons" || len(c.Toggles) != 3 {
		t.Errorf("Unexpected defaults %+v", c)
	}
}

func TestLoadRejectsOtherVariant(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "robot.yaml")
	if err := ioutil.WriteFile(path, []byte("variant: screen-test\n"), 0666); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path, Main, nil); err == nil {
		t.Fatal("A file for another variant should be rejected")
	}
}

func TestInUsePath(t *testing.T) {
	if p := InUsePath("/cfg/robot.yaml"); p != "/cfg/robot-in-use.yaml" {
		t.Fatal(p)
	}
}
