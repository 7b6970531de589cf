//go:build windows

package cmd

import "errors"

const ttyPath = "CONIN$"

func checkTTY() error {
	return errors.New("the interactive picker is not supported on Windows; use picker.backend fzf")
}

func checkTermWidth() error { return nil }

func acquireLock(string) (int, error) { return -1, nil }

func releaseLock(int) {}
