package motorboard

import (
	"io"
	"os/exec"
	"time"

	"github.com/kr/pty"
	"github.com/pkg/errors"
	"golang.org/x/exp/io/i2c"
)

// Register map of the motor coprocessor.  Each smart motor port has a signed
// velocity register; writing a port number to RegBrake brakes that port.
const (
	DefaultAddr = 0x42
	DefaultBus  = "/dev/i2c-1"

	RegVelocityBase = 0x20
	RegBrake        = 0x40

	MaxPort = 21
)

type Config struct {
	Bus     string `yaml:"bus"`
	Address int    `yaml:"address"`

	// FlashCommand, if set, is run through a pty before the board is opened.
	FlashCommand []string `yaml:"flashCommand"`
}

type Interface interface {
	SetVelocity(port int, velocity int8) error
	Brake(port int) error
	Close() error
}

type Board struct {
	dev *i2c.Device
}

func New(cfg Config, flashOutput io.Writer) (*Board, error) {
	if cfg.Bus == "" {
		cfg.Bus = DefaultBus
	}
	if cfg.Address == 0 {
		cfg.Address = DefaultAddr
	}
	if len(cfg.FlashCommand) > 0 {
		if err := Flash(cfg.FlashCommand, flashOutput); err != nil {
			return nil, errors.Wrap(err, "failed to flash motor board")
		}
	}
	dev, err := i2c.Open(&i2c.Devfs{Dev: cfg.Bus}, cfg.Address)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open motor board on %s", cfg.Bus)
	}
	return &Board{dev: dev}, nil
}

// Flash runs the firmware loader.  The loader requires a TTY, or it reports
// success but the board doesn't actually boot, so it is wrapped in a pty.
func Flash(command []string, output io.Writer) error {
	cmd := exec.Command(command[0], command[1:]...)
	f, err := pty.Start(cmd)
	if err != nil {
		return err
	}
	defer f.Close()
	if output != nil {
		go io.Copy(output, f)
	}
	if err := cmd.Wait(); err != nil {
		return err
	}
	// Give the board time to boot...
	time.Sleep(25 * time.Millisecond)
	return nil
}

func checkPort(port int) error {
	if port < 1 || port > MaxPort {
		return errors.Errorf("motor port %d out of range", port)
	}
	return nil
}

func (b *Board) SetVelocity(port int, velocity int8) error {
	if err := checkPort(port); err != nil {
		return err
	}
	return b.dev.Write([]byte{byte(RegVelocityBase + port), byte(velocity)})
}

func (b *Board) Brake(port int) error {
	if err := checkPort(port); err != nil {
		return err
	}
	return b.dev.Write([]byte{RegBrake, byte(port)})
}

func (b *Board) Close() error {
	return b.dev.Close()
}
