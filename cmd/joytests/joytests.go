package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/Mr-Kurtis72/VEX-2025-High-Stakes/pkg/joystick"
	log "github.com/sirupsen/logrus"
)

// Prints what the robot would sample from the pad, by input name, so
// bindings can be checked against a real controller.
func main() {
	// Our global context, we cancel it to trigger shutdown.
	ctx, cancel := context.WithCancel(context.Background())

	// Hook Ctrl-C etc.
	registerSignalHandlers(cancel)

	logger := log.New().WithField("system", "joytests")
	controller := joystick.NewController()
	go loopReadingJoystick(ctx, controller, logger)

	digital := names(joystick.Buttons)
	for n := range joystick.DPad {
		digital = append(digital, n)
	}
	sort.Strings(digital)
	var analog []string
	for n := range joystick.Axes {
		analog = append(analog, n)
	}
	sort.Strings(analog)

	last := ""
	for ctx.Err() == nil {
		var parts []string
		for _, n := range digital {
			if held, _ := controller.Digital(n); held {
				parts = append(parts, n)
			}
		}
		for _, n := range analog {
			v, _ := controller.Analog(n)
			parts = append(parts, fmt.Sprintf("%s=%d", n, v))
		}
		line := strings.Join(parts, " ")
		if line != last {
			fmt.Println(line)
			last = line
		}
		time.Sleep(25 * time.Millisecond)
	}
}

func names(m map[string]uint8) []string {
	var out []string
	for n := range m {
		out = append(out, n)
	}
	return out
}

func loopReadingJoystick(ctx context.Context, c *joystick.Controller, logger log.FieldLogger) {
	firstLog := true
	for ctx.Err() == nil {
		jDev := os.Getenv("JOYSTICK_DEVICE")
		if jDev == "" {
			jDev = "/dev/input/js0"
		}
		j, err := joystick.NewJoystick(jDev)
		if err != nil {
			if firstLog {
				logger.WithError(err).Warn("Waiting for joystick")
				firstLog = false
			}
			time.Sleep(1 * time.Second)
			continue
		}
		logger.Info("Opened joystick")
		firstLog = true
		err = c.Loop(ctx, j, logger)
		logger.WithError(err).Warn("Joystick failed")
	}
}

func registerSignalHandlers(cancelFunc context.CancelFunc) {
	// Hook Ctrl-C to cause shut down.
	signals := make(chan os.Signal, 2)
	signal.Notify(signals, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		s := <-signals
		log.Println("Signal: ", s)
		cancelFunc()
		time.Sleep(2 * time.Second)
		os.Exit(0)
	}()
}
