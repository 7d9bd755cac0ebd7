//go:build windows
// +build windows

package sysinfo

import (
	"image"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32               = windows.NewLazySystemDLL("user32.dll")
	getSystemMetrics     = user32.NewProc("GetSystemMetrics")
	systemParametersInfo = user32.NewProc("SystemParametersInfoW")
)

const (
	SMCXScreen     = 0
	SMCYScreen     = 1
	SPIGetWorkArea = 0x0030
)

// GetScreenDimensions returns the primary desktop dimension (width and height) in pixels.
func GetScreenDimensions() (int, int, error) {
	width, _, err := getSystemMetrics.Call(uintptr(SMCXScreen))
	if err != windows.NOERROR {
		return 0, 0, err
	}
	height, _, err := getSystemMetrics.Call(uintptr(SMCYScreen))
	if err != windows.NOERROR {
		return 0, 0, err
	}

	return int(width), int(height), nil
}

// GetWorkingArea returns the primary monitor area not covered by the taskbar.
func GetWorkingArea() (image.Rectangle, error) {
	var r windows.Rect
	ret, _, err := systemParametersInfo.Call(
		uintptr(SPIGetWorkArea),
		0,
		uintptr(unsafe.Pointer(&r)),
		0,
	)
	if ret == 0 {
		if err == nil || err == syscall.Errno(0) {
			err = syscall.EINVAL
		}
		return image.Rectangle{}, err
	}
	return image.Rect(int(r.Left), int(r.Top), int(r.Right), int(r.Bottom)), nil
}
