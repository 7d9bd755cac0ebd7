//go:build !windows

package wallpaper

// HideConsoleWindow only has an effect on Windows.
func HideConsoleWindow() {}
