package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/Mr-Kurtis72/VEX-2025-High-Stakes/pkg/screen"
)

// Each line typed on stdin is shown on the next screen line, wrapping round.
func main() {
	dev := "/dev/fb1"
	if len(os.Args) > 1 {
		dev = os.Args[1]
	}
	fb, err := screen.OpenFramebuffer(dev)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer fb.Close()

	d := screen.New(nil)
	d.SetText(0, "Screen test")
	d.SetText(1, screen.Compass(90))
	if err := fb.Show(d.Lines()); err != nil {
		fmt.Println("Screen failure: ", err)
		return
	}

	reader := bufio.NewReader(os.Stdin)
	for line := 2; ; line = (line + 1) % screen.Lines {
		fmt.Print("> ")
		text, err := reader.ReadString('\n')
		if err != nil {
			fmt.Println("\nFailed to read stdin: ", err)
			return
		}
		d.SetText(line, strings.TrimSpace(text))
		if err := fb.Show(d.Lines()); err != nil {
			fmt.Println("Screen failure: ", err)
			return
		}
	}
}
