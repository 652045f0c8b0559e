package hardware

import (
	"context"
	"os"
	"time"

	"github.com/Mr-Kurtis72/VEX-2025-High-Stakes/pkg/joystick"
	"github.com/Mr-Kurtis72/VEX-2025-High-Stakes/pkg/motorboard"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"periph.io/x/periph/conn/gpio"
	"periph.io/x/periph/conn/gpio/gpioreg"
	"periph.io/x/periph/host"
)

type PiConfig struct {
	JoystickDevice string `yaml:"joystickDevice"`

	// GPIO pin names (as known to periph, e.g. "GPIO17") per input/output.
	// Inputs are wired active-low with the internal pull-up.
	GPIOInputs  map[Input]string `yaml:"gpioInputs"`
	GPIOOutputs map[Pin]string   `yaml:"gpioOutputs"`

	MotorBoard       motorboard.Config `yaml:"motorBoard"`
	MotorFlushPeriod time.Duration     `yaml:"motorFlushPeriod"`
}

// Pi drives the robot from a Raspberry Pi: a USB pad for the controller,
// GPIO for buttons and solenoids, and the motor coprocessor on I2C.
type Pi struct {
	cfg PiConfig
	log logrus.FieldLogger

	controller *joystick.Controller
	inputs     map[Input]gpio.PinIO
	outputs    map[Pin]gpio.PinIO
	motors     *motorLoop
	motorsDone chan struct{}
	board      motorboard.Interface
}

var _ Interface = (*Pi)(nil)

func NewPi(cfg PiConfig, log logrus.FieldLogger) (*Pi, error) {
	if cfg.JoystickDevice == "" {
		cfg.JoystickDevice = os.Getenv("JOYSTICK_DEVICE")
	}
	if cfg.JoystickDevice == "" {
		cfg.JoystickDevice = "/dev/input/js0"
	}
	if cfg.MotorFlushPeriod <= 0 {
		cfg.MotorFlushPeriod = 5 * time.Millisecond
	}

	// Make sure periph is initialized.
	if _, err := host.Init(); err != nil {
		return nil, errors.Wrap(err, "failed to initialise periph")
	}

	p := &Pi{
		cfg:        cfg,
		log:        log,
		controller: joystick.NewController(),
		inputs:     map[Input]gpio.PinIO{},
		outputs:    map[Pin]gpio.PinIO{},
	}
	for in, name := range cfg.GPIOInputs {
		pin := gpioreg.ByName(name)
		if pin == nil {
			return nil, errors.Errorf("no GPIO pin %q for input %s", name, in)
		}
		if err := pin.In(gpio.PullUp, gpio.NoEdge); err != nil {
			return nil, errors.Wrapf(err, "failed to configure %s as input", name)
		}
		p.inputs[in] = pin
	}
	for out, name := range cfg.GPIOOutputs {
		pin := gpioreg.ByName(name)
		if pin == nil {
			return nil, errors.Errorf("no GPIO pin %q for output %s", name, out)
		}
		if err := pin.Out(gpio.Low); err != nil {
			return nil, errors.Wrapf(err, "failed to configure %s as output", name)
		}
		p.outputs[out] = pin
	}

	board, err := motorboard.New(cfg.MotorBoard, log.WithField("system", "motorboard").WriterLevel(logrus.DebugLevel))
	if err != nil {
		return nil, err
	}
	p.board = board
	p.motors = newMotorLoop(board, log.WithField("system", "motors"))
	return p, nil
}

// Start kicks off the motor loop and, once the pad appears, the joystick
// reader.  Both stop when ctx is done.
func (p *Pi) Start(ctx context.Context) {
	p.motorsDone = make(chan struct{})
	go func() {
		defer close(p.motorsDone)
		p.motors.loop(ctx, p.cfg.MotorFlushPeriod)
	}()
	go p.loopReadingJoystick(ctx)
}

func (p *Pi) loopReadingJoystick(ctx context.Context) {
	firstLog := true
	for ctx.Err() == nil {
		j, err := joystick.NewJoystick(p.cfg.JoystickDevice)
		if err != nil {
			if firstLog {
				p.log.WithError(err).Warn("Waiting for joystick")
				firstLog = false
			}
			time.Sleep(1 * time.Second)
			continue
		}
		p.log.Info("Opened joystick")
		firstLog = true
		err = p.controller.Loop(ctx, j, p.log)
		if ctx.Err() == nil {
			p.log.WithError(err).Warn("Joystick lost; inputs hold their last values")
		}
	}
}

func (p *Pi) ReadDigital(in Input) bool {
	if pin, ok := p.inputs[in]; ok {
		return pin.Read() == gpio.Low
	}
	held, _ := p.controller.Digital(string(in))
	return held
}

func (p *Pi) ReadAnalog(axis Axis) int {
	v, _ := p.controller.Analog(string(axis))
	return v
}

func (p *Pi) WriteDigitalOutput(pin Pin, value bool) {
	out, ok := p.outputs[pin]
	if !ok {
		p.log.Errorf("Write to unmapped output %s", pin)
		return
	}
	if err := out.Out(gpio.Level(value)); err != nil {
		p.log.WithError(err).Errorf("Failed to write output %s", pin)
	}
}

func (p *Pi) SetMotorVelocity(port Motor, velocity int) {
	p.motors.set(port, MotorState{Velocity: ClampVelocity(velocity)})
}

func (p *Pi) BrakeMotor(port Motor) {
	p.motors.set(port, MotorState{Braked: true})
}

func (p *Pi) HasInput(in Input) bool {
	if _, ok := p.inputs[in]; ok {
		return true
	}
	return joystick.HasDigital(string(in))
}

func (p *Pi) HasAxis(axis Axis) bool {
	_, ok := joystick.Axes[string(axis)]
	return ok
}

func (p *Pi) HasOutput(pin Pin) bool {
	_, ok := p.outputs[pin]
	return ok
}

// Shutdown releases the outputs and the bus.  Cancel the context passed to
// Start first; Shutdown waits for the motor loop's final brake.
func (p *Pi) Shutdown() {
	if p.motorsDone != nil {
		<-p.motorsDone
	}
	for pin, out := range p.outputs {
		if err := out.Out(gpio.Low); err != nil {
			p.log.WithError(err).Errorf("Failed to release output %s", pin)
		}
	}
	if err := p.board.Close(); err != nil {
		p.log.WithError(err).Error("Failed to close motor board")
	}
}
