package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/Mr-Kurtis72/VEX-2025-High-Stakes/pkg/config"
	"github.com/Mr-Kurtis72/VEX-2025-High-Stakes/pkg/hardware"
	"github.com/Mr-Kurtis72/VEX-2025-High-Stakes/pkg/input"
	"github.com/Mr-Kurtis72/VEX-2025-High-Stakes/pkg/robot"
	"github.com/Mr-Kurtis72/VEX-2025-High-Stakes/pkg/sound"
	"github.com/alecthomas/kong"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var CLI struct {
	Debug bool `help:"Log every cycle's decisions."`

	Run   RunCmd   `cmd:"" default:"withargs" help:"Run the robot."`
	Check CheckCmd `cmd:"" help:"Validate a config and print the one that would be used."`
}

type Context struct {
	Root *log.Logger
	Log  log.FieldLogger
}

func (c *Context) logger(system string) log.FieldLogger {
	return c.Root.WithField("system", system)
}

type ConfigFlags struct {
	Config  string `default:"/cfg/robot.yaml" help:"YAML overlay on the variant defaults."`
	Variant string `default:"main" enum:"main,main-path,screen-motor-control,screen-test" help:"Program variant."`
}

type RunCmd struct {
	ConfigFlags `embed:""`

	Mode     string `default:"match" enum:"match,disabled,autonomous,opcontrol" help:"Mode to start in."`
	Hardware string `help:"Override the configured hardware (dummy or pi)."`
}

type CheckCmd struct {
	ConfigFlags `embed:""`
}

func main() {
	fmt.Println("---- High Stakes ----")
	fmt.Println("GOMAXPROCS", runtime.GOMAXPROCS(0))

	kctx := kong.Parse(&CLI)
	root := log.New()
	if CLI.Debug {
		root.SetLevel(log.DebugLevel)
	}
	err := kctx.Run(&Context{Root: root, Log: root.WithField("system", "main")})
	kctx.FatalIfErrorf(err)
}

func (c *CheckCmd) Run(cli *Context) error {
	cfg, err := config.Load(c.Config, c.Variant, cli.Log)
	if err != nil {
		return err
	}
	if _, err := robot.New(cfg, robot.Deps{HW: hardware.NewDummy(cli.logger("hardware")), Log: cli.logger("robot")}); err != nil {
		return err
	}
	out, err := cfg.Marshal()
	if err != nil {
		return err
	}
	fmt.Print(string(out))
	return nil
}

func (c *RunCmd) Run(cli *Context) error {
	cfg, err := config.Load(c.Config, c.Variant, cli.logger("config"))
	if err != nil {
		return err
	}
	if c.Hardware != "" {
		cfg.Hardware = c.Hardware
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	// Our global context, we cancel it to trigger shutdown.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Hook Ctrl-C etc.
	registerSignalHandlers(cancel, cli.Log)

	hw, player, shutdown, err := openHardware(ctx, cfg, cli)
	if err != nil {
		return err
	}
	defer func() {
		cli.Log.Info("Zeroing motors for shut down")
		cancel()
		shutdown()
		player.Close()
	}()
	player.Play(cfg.Sounds["start"])

	r, err := robot.New(cfg, robot.Deps{HW: hw, Log: cli.logger("robot")})
	if err != nil {
		return errors.Wrap(err, "bad robot config")
	}
	defer r.Close()
	r.Initialize(ctx)

	allModes := r.Modes()
	activeModeIdx := 0
	for i, m := range allModes {
		if m.Name() == c.Mode {
			activeModeIdx = i
		}
	}
	activeMode := allModes[activeModeIdx]
	cli.Log.Infof("----- %s -----", activeMode.Name())
	activeMode.Start(ctx)

	switchMode := func(delta int) {
		activeMode.Stop()
		activeModeIdx += delta
		activeModeIdx = (activeModeIdx + len(allModes)) % len(allModes)
		activeMode = allModes[activeModeIdx]
		cli.Log.Infof("----- %s -----", activeMode.Name())
		player.Play(activeMode.StartupSound())
		activeMode.Start(ctx)
	}

	// Options and Share step through the modes, as on the bench there is no
	// field control to do it.
	var next, prev input.Edge
	ticker := time.NewTicker(cfg.CyclePeriod)
	defer ticker.Stop()
	watchdog := time.NewTicker(5 * time.Second)
	defer watchdog.Stop()
	for {
		select {
		case <-ctx.Done():
			cli.Log.Info("Context done, stopping active mode and shutting down")
			activeMode.Stop()
			return nil
		case <-ticker.C:
			if next.Rising(hw.ReadDigital("Options")) {
				cli.Log.Info("Options pressed: switching modes >>")
				switchMode(1)
			} else if prev.Rising(hw.ReadDigital("Share")) {
				cli.Log.Info("Share pressed: switching modes <<")
				switchMode(-1)
			}
		case <-watchdog.C:
			cli.Log.Debug("Main loop still running")
		}
	}
}

func openHardware(ctx context.Context, cfg *config.Config, cli *Context) (hardware.Interface, *sound.Player, func(), error) {
	switch cfg.Hardware {
	case "pi":
		pi, err := hardware.NewPi(cfg.Pi, cli.logger("hardware"))
		if err != nil {
			return nil, nil, nil, errors.Wrap(err, "failed to open hardware")
		}
		pi.Start(ctx)
		return pi, sound.New(cli.logger("sound")), pi.Shutdown, nil
	default:
		return hardware.NewDummy(cli.logger("hardware")), sound.Silent(cli.logger("sound")), func() {}, nil
	}
}

func registerSignalHandlers(cancelFunc context.CancelFunc, logger log.FieldLogger) {
	// Hook Ctrl-C to cause shut down.
	signals := make(chan os.Signal, 2)
	signal.Notify(signals, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		s := <-signals
		logger.Warn("Signal: ", s)
		cancelFunc()
		time.Sleep(2 * time.Second)
		os.Exit(0)
	}()
}
