package cmd

import (
	"fmt"
	"os"
)

// checkTERM verifies that the TERM environment variable is not "dumb".
func checkTERM() error {
	if os.Getenv("TERM") == "dumb" {
		return fmt.Errorf("TERM=dumb is not supported")
	}
	return nil
}

// preflight runs the terminal checks the picker needs before it takes
// over the screen.
func preflight() error {
	// Step 1: Check the controlling terminal is openable.
	if err := checkTTY(); err != nil {
		return err
	}
	// Step 2: Check TERM != "dumb".
	if err := checkTERM(); err != nil {
		return err
	}
	// Step 3: Check terminal width.
	return checkTermWidth()
}
