//go:build linux
// +build linux

package sysinfo

import (
	"fmt"
	"image"
	"os/exec"
)

// GetScreenDimensions returns the desktop dimensions on Linux.
func GetScreenDimensions() (int, int, error) {
	out, err := exec.Command("xdpyinfo").Output()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get screen resolution: %w", err)
	}
	return ParseXdpyinfo(string(out))
}

// GetWorkingArea returns the part of the screen not reserved by panels, as advertised by the
// window manager through _NET_WORKAREA. Window managers that do not publish it get the full screen.
func GetWorkingArea() (image.Rectangle, error) {
	out, err := exec.Command("xprop", "-root", "_NET_WORKAREA").Output()
	if err == nil {
		if area, perr := ParseNetWorkArea(string(out)); perr == nil {
			return area, nil
		}
	}

	w, h, err := GetScreenDimensions()
	if err != nil {
		return image.Rectangle{}, err
	}
	return image.Rect(0, 0, w, h), nil
}
