//go:build windows
// +build windows

package wallpaper

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/dixieflatline76/Backdrop/pkg/sysinfo"
	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
)

var (
	user32               = windows.NewLazySystemDLL("user32.dll")
	kernel32             = windows.NewLazySystemDLL("kernel32.dll")
	systemParametersInfo = user32.NewProc("SystemParametersInfoW")
	showWindow           = user32.NewProc("ShowWindow")
	getConsoleWindow     = kernel32.NewProc("GetConsoleWindow")
)

// windowsOS implements the OS interface for Windows.
type windowsOS struct{}

// Windows API constants (defined manually)
const (
	SPISetDeskWallpaper = 0x0014
	SPIFUpdateIniFile   = 0x01
	SPIFSendChange      = 0x02
	SWHide              = 0

	desktopKey = `Control Panel\Desktop`
)

// wallpaperStyles maps a display mode to the WallpaperStyle and TileWallpaper registry values.
var wallpaperStyles = map[DisplayMode][2]string{
	DisplayTile:    {"0", "1"},
	DisplayCenter:  {"0", "0"},
	DisplayStretch: {"2", "0"},
	DisplayFit:     {"6", "0"},
	DisplayFill:    {"10", "0"},
}

// SetWallpaper writes the style to the registry and then asks the shell to switch the background.
func (w *windowsOS) SetWallpaper(imagePath string, mode DisplayMode) error {
	if err := w.setStyle(mode); err != nil {
		return err
	}

	imagePathUTF16, err := windows.UTF16PtrFromString(imagePath)
	if err != nil {
		return err
	}

	ret, _, err := systemParametersInfo.Call(
		uintptr(SPISetDeskWallpaper),
		uintptr(0),
		uintptr(unsafe.Pointer(imagePathUTF16)),
		uintptr(SPIFUpdateIniFile|SPIFSendChange),
	)
	if ret == 0 {
		return fmt.Errorf("SystemParametersInfoW: %w", err)
	}

	return nil
}

func (w *windowsOS) setStyle(mode DisplayMode) error {
	style, ok := wallpaperStyles[mode]
	if !ok {
		style = wallpaperStyles[DisplayStretch]
	}

	key, err := registry.OpenKey(registry.CURRENT_USER, desktopKey, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("opening %s: %w", desktopKey, err)
	}
	defer key.Close()

	if err := key.SetStringValue("WallpaperStyle", style[0]); err != nil {
		return fmt.Errorf("setting WallpaperStyle: %w", err)
	}
	if err := key.SetStringValue("TileWallpaper", style[1]); err != nil {
		return fmt.Errorf("setting TileWallpaper: %w", err)
	}
	return nil
}

// GetDesktopDimension returns the desktop dimension (width and height) in pixels.
func (w *windowsOS) GetDesktopDimension() (int, int, error) {
	return sysinfo.GetScreenDimensions()
}

// GetWorkingArea returns the area not covered by the taskbar.
func (w *windowsOS) GetWorkingArea() (image.Rectangle, error) {
	return sysinfo.GetWorkingArea()
}

// HideConsoleWindow hides the console the process was started from.
func HideConsoleWindow() {
	hwnd, _, _ := getConsoleWindow.Call()
	if hwnd == 0 {
		return
	}
	showWindow.Call(hwnd, uintptr(SWHide))
}

// getOS returns a new instance of the windowsOS struct.
func getOS() OS {
	return &windowsOS{}
}
