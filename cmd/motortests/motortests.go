package main

import (
	"fmt"
	"os"
	"time"

	"github.com/Mr-Kurtis72/VEX-2025-High-Stakes/pkg/motorboard"
	"github.com/alecthomas/kong"
)

var CLI struct {
	Port int    `default:"1" help:"Smart motor port."`
	Bus  string `default:"/dev/i2c-1" help:"I2C bus."`
}

// Steps one motor port through a velocity ramp and brakes it, to check the
// wiring and direction of a port.
func main() {
	kong.Parse(&CLI)

	fmt.Println("Motor board test program")
	board, err := motorboard.New(motorboard.Config{Bus: CLI.Bus}, os.Stdout)
	if err != nil {
		panic(err)
	}
	defer board.Close()

	for _, v := range []int8{32, 64, 127, 0, -32, -64, -127} {
		fmt.Printf("Port %d velocity %d\n", CLI.Port, v)
		if err := board.SetVelocity(CLI.Port, v); err != nil {
			fmt.Println("Write failed:", err)
		}
		time.Sleep(500 * time.Millisecond)
	}
	fmt.Println("Braking")
	if err := board.Brake(CLI.Port); err != nil {
		fmt.Println("Write failed:", err)
	}
}
