package cmd

import (
	"os"
	"runtime"
	"strconv"

	"github.com/mattn/go-isatty"
)

// ANSI color codes for terminal output.
// applyColorMode sets them from --color before any command runs.
var (
	colorRed    = ""
	colorGreen  = ""
	colorYellow = ""
	colorCyan   = ""
	colorDim    = ""
	colorBold   = ""
	colorReset  = ""
)

// colorMode is the --color flag: auto, always or never.
var colorMode = "auto"

func enableColors() {
	colorRed = "\033[0;31m"
	colorGreen = "\033[0;32m"
	colorYellow = "\033[0;33m"
	colorCyan = "\033[0;36m"
	colorDim = "\033[2m"
	colorBold = "\033[1m"
	colorReset = "\033[0m"
}

func disableColors() {
	colorRed = ""
	colorGreen = ""
	colorYellow = ""
	colorCyan = ""
	colorDim = ""
	colorBold = ""
	colorReset = ""
}

func applyColorMode() {
	switch colorMode {
	case "always":
		enableColors()
	case "never":
		disableColors()
	default:
		if shouldDisableColors() || !isTerminal() {
			disableColors()
		} else {
			enableColors()
		}
	}
}

// isTerminal reports whether stdout is a terminal.
func isTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd())
}

func shouldDisableColors() bool {
	// Check NO_COLOR environment variable (https://no-color.org/)
	if os.Getenv("NO_COLOR") != "" {
		return true
	}

	if os.Getenv("TERM") == "dumb" {
		return true
	}

	// On Windows, check if ANSI is supported
	if runtime.GOOS == "windows" {
		if os.Getenv("WT_SESSION") != "" {
			return false // Windows Terminal supports ANSI
		}
		if os.Getenv("TERM_PROGRAM") != "" {
			return false // Modern terminal emulator
		}
		return os.Getenv("ANSICON") == "" && os.Getenv("ConEmuANSI") != "ON"
	}

	return false
}

// terminalWidth returns the stdout width: ioctl first, then $COLUMNS,
// then 80.
func terminalWidth() int {
	if w := getTermWidthIoctl(); w > 0 {
		return w
	}
	if w, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && w > 0 {
		return w
	}
	return 80
}
