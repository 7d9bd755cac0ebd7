//go:build darwin
// +build darwin

package sysinfo

import (
	"fmt"
	"image"
	"os/exec"
)

// GetScreenDimensions returns the primary desktop dimensions on macOS.
func GetScreenDimensions() (int, int, error) {
	out, err := exec.Command("system_profiler", "SPDisplaysDataType", "-json").Output()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to run system_profiler: %w", err)
	}
	return ParseSystemProfiler(out)
}

// GetWorkingArea returns the full screen; the menu bar and dock auto-hide rules are not exposed
// without Cocoa bindings.
func GetWorkingArea() (image.Rectangle, error) {
	w, h, err := GetScreenDimensions()
	if err != nil {
		return image.Rectangle{}, err
	}
	return image.Rect(0, 0, w, h), nil
}
