//go:build linux
// +build linux

package wallpaper

import (
	"fmt"
	"image"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dixieflatline76/Backdrop/pkg/sysinfo"
	"github.com/dixieflatline76/Backdrop/util/log"
)

// linuxOS implements the OS interface for Linux.
type linuxOS struct{}

// getOS returns a new instance of the linuxOS struct.
func getOS() OS {
	return &linuxOS{}
}

// Per-desktop spellings of the display modes.
var (
	gnomePictureOptions = map[DisplayMode]string{
		DisplayTile:    "wallpaper",
		DisplayCenter:  "centered",
		DisplayStretch: "stretched",
		DisplayFit:     "scaled",
		DisplayFill:    "zoom",
	}
	kdeFillModes = map[DisplayMode]int{
		DisplayStretch: 0,
		DisplayFit:     1,
		DisplayFill:    2,
		DisplayTile:    3,
		DisplayCenter:  6,
	}
	xfceImageStyles = map[DisplayMode]int{
		DisplayCenter:  1,
		DisplayTile:    2,
		DisplayStretch: 3,
		DisplayFit:     4,
		DisplayFill:    5,
	}
)

// SetWallpaper sets the desktop wallpaper on Linux, supporting X11 and some Wayland compositors.
func (l *linuxOS) SetWallpaper(imagePath string, mode DisplayMode) error {
	desktopEnv := os.Getenv("XDG_CURRENT_DESKTOP")
	if desktopEnv == "" {
		desktopEnv = os.Getenv("DESKTOP_SESSION")
	}
	desktopEnv = strings.ToLower(desktopEnv)

	if os.Getenv("WAYLAND_DISPLAY") != "" {
		// Wayland
		switch {
		case strings.Contains(desktopEnv, "gnome") || strings.Contains(desktopEnv, "mutter"):
			return l.setWallpaperGNOME(imagePath, mode)
		case strings.Contains(desktopEnv, "kde"):
			return l.setWallpaperKDE(imagePath, mode)
		case strings.Contains(desktopEnv, "sway"):
			return l.setWallpaperSway(imagePath, mode)
		default:
			return fmt.Errorf("unsupported Wayland compositor: %s", desktopEnv)
		}
	}

	// X11
	switch {
	case strings.Contains(desktopEnv, "gnome") || strings.Contains(desktopEnv, "unity") || strings.Contains(desktopEnv, "cinnamon"):
		return l.setWallpaperGNOME(imagePath, mode)
	case strings.Contains(desktopEnv, "kde"):
		return l.setWallpaperKDE(imagePath, mode)
	case strings.Contains(desktopEnv, "xfce"):
		return l.setWallpaperXFCE(imagePath, mode)
	default:
		return fmt.Errorf("unsupported X11 desktop environment: %s", desktopEnv)
	}
}

// GetDesktopDimension returns the desktop dimensions on Linux.
func (l *linuxOS) GetDesktopDimension() (int, int, error) {
	return sysinfo.GetScreenDimensions()
}

// GetWorkingArea returns the _NET_WORKAREA of the root window.
func (l *linuxOS) GetWorkingArea() (image.Rectangle, error) {
	return sysinfo.GetWorkingArea()
}

// setWallpaperGNOME sets the wallpaper for GNOME-based desktop environments.
func (l *linuxOS) setWallpaperGNOME(imagePath string, mode DisplayMode) error {
	uri := "file://" + imagePath
	settings := [][]string{
		{"picture-uri", uri},
		{"picture-uri-dark", uri},
		{"picture-options", gnomePictureOptions[mode]},
	}
	for _, kv := range settings {
		out, err := exec.Command("gsettings", "set", "org.gnome.desktop.background", kv[0], kv[1]).CombinedOutput()
		if err != nil {
			// picture-uri-dark only exists on GNOME 42 and later.
			if kv[0] == "picture-uri-dark" {
				log.Debugf("gsettings %s: %v: %s", kv[0], err, out)
				continue
			}
			return fmt.Errorf("gsettings set %s: %w: %s", kv[0], err, strings.TrimSpace(string(out)))
		}
	}
	return nil
}

// setWallpaperKDE sets the wallpaper for KDE Plasma through its scripting interface.
func (l *linuxOS) setWallpaperKDE(imagePath string, mode DisplayMode) error {
	script := fmt.Sprintf(`
var allDesktops = desktops();
for (i=0;i<allDesktops.length;i++) {
    d = allDesktops[i];
    d.wallpaperPlugin = "org.kde.image";
    d.currentConfigGroup = Array("Wallpaper", "org.kde.image", "General");
    d.writeConfig("Image", "file://%s");
    d.writeConfig("FillMode", %d);
}`, imagePath, kdeFillModes[mode])

	cmd := exec.Command("dbus-send", "--session",
		"--dest=org.kde.plasmashell", "--type=method_call",
		"/PlasmaShell", "org.kde.PlasmaShell.evaluateScript",
		"string:"+script)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("plasmashell evaluateScript: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}

// setWallpaperXFCE sets the wallpaper for XFCE.
func (l *linuxOS) setWallpaperXFCE(imagePath string, mode DisplayMode) error {
	// Check if the XFCE configuration file exists
	if _, err := l.getXFCEDesktopConfigFile(); err != nil {
		return err
	}

	base := "/backdrop/screen0/monitor0/workspace0/"
	if err := exec.Command("xfconf-query", "--channel", "xfce4-desktop",
		"--property", base+"last-image", "--set", imagePath).Run(); err != nil {
		return fmt.Errorf("xfconf-query last-image: %w", err)
	}
	if err := exec.Command("xfconf-query", "--channel", "xfce4-desktop",
		"--property", base+"image-style", "--set", strconv.Itoa(xfceImageStyles[mode])).Run(); err != nil {
		return fmt.Errorf("xfconf-query image-style: %w", err)
	}
	return nil
}

// getXFCEDesktopConfigFile retrieves the path to the XFCE desktop configuration file.
func (l *linuxOS) getXFCEDesktopConfigFile() (string, error) {
	// Check if the file exists in the default location
	defaultConfigFile := filepath.Join(os.Getenv("HOME"), ".config", "xfce4", "xfconf", "xfce-perchannel-xml", "xfce4-desktop.xml")
	if _, err := os.Stat(defaultConfigFile); err == nil {
		return defaultConfigFile, nil
	}

	return "", fmt.Errorf("could not find XFCE desktop configuration file")
}

// setWallpaperSway starts swaybg, which keeps running to hold the background.
func (l *linuxOS) setWallpaperSway(imagePath string, mode DisplayMode) error {
	// Make sure swaybg is installed
	cmd := exec.Command("swaybg", "-i", imagePath, "-m", mode.String())
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting swaybg: %w", err)
	}
	return cmd.Process.Release()
}
