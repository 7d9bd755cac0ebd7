package wallpaper

import (
	"image"
	"strings"
)

// OS interface defines the operating system specific operations.
type OS interface {
	GetDesktopDimension() (int, int, error)
	// GetWorkingArea returns the desktop minus taskbars and docks, in screen coordinates.
	GetWorkingArea() (image.Rectangle, error)
	SetWallpaper(path string, mode DisplayMode) error
}

// DisplayMode is how the desktop lays the background out.
type DisplayMode int

const (
	DisplayTile DisplayMode = iota
	DisplayCenter
	DisplayStretch
	DisplayFit
	DisplayFill
)

var displayModeNames = map[DisplayMode]string{
	DisplayTile:    "tile",
	DisplayCenter:  "center",
	DisplayStretch: "stretch",
	DisplayFit:     "fit",
	DisplayFill:    "fill",
}

func (m DisplayMode) String() string {
	if name, ok := displayModeNames[m]; ok {
		return name
	}
	return "stretch"
}

// ParseDisplayMode maps a case-insensitive mode name; anything unknown stretches.
func ParseDisplayMode(s string) DisplayMode {
	s = strings.ToLower(strings.TrimSpace(s))
	for mode, name := range displayModeNames {
		if name == s {
			return mode
		}
	}
	return DisplayStretch
}

// NewOS returns the installer for the running platform.
func NewOS() OS {
	return getOS()
}
