//go:build darwin
// +build darwin

package wallpaper

import (
	"fmt"
	"image"
	"os/exec"

	"github.com/dixieflatline76/Backdrop/pkg/sysinfo"
)

// macOSOS implements the OS interface for macOS.
type macOSOS struct{}

// SetWallpaper sets the desktop wallpaper on macOS. The desktop always scales to fill, so mode is ignored.
func (m *macOSOS) SetWallpaper(imagePath string, _ DisplayMode) error {
	// Use AppleScript to set the wallpaper
	script := fmt.Sprintf(`
                tell application "System Events"
                        tell every desktop
                                set picture to POSIX file "%s"
                        end tell
                end tell
        `, imagePath)

	cmd := exec.Command("osascript", "-e", script)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("failed to set wallpaper: %w: %s", err, out)
	}

	return nil
}

// GetDesktopDimension returns the desktop dimensions on macOS.
func (m *macOSOS) GetDesktopDimension() (int, int, error) {
	return sysinfo.GetScreenDimensions()
}

// GetWorkingArea returns the full screen; the menu bar and dock are not subtracted.
func (m *macOSOS) GetWorkingArea() (image.Rectangle, error) {
	return sysinfo.GetWorkingArea()
}

// getOS returns a new instance of the macOSOS struct.
func getOS() OS {
	return &macOSOS{}
}
