package sysinfo

import (
	"encoding/json"
	"fmt"
	"image"
	"regexp"
	"strconv"
	"strings"
)

var (
	// resolutionRegex matches strings like "3456 x 2234", "2880 x 1864 Retina" or "1920x1080 pixels"
	resolutionRegex = regexp.MustCompile(`(\d+)\s*x\s*(\d+)`)
)

// systemProfilerOutput represents the nested structure of system_profiler -json
type systemProfilerOutput struct {
	Displays []gpuInfo `json:"SPDisplaysDataType"`
}

type gpuInfo struct {
	NDRVs []displayInfo `json:"spdisplays_ndrvs"`
}

type displayInfo struct {
	Resolution string `json:"_spdisplays_pixels"` // e.g. "3420 x 2214"
	Main       string `json:"spdisplays_main"`    // "spdisplays_yes"
}

// ParseSystemProfiler extracts the main display resolution from `system_profiler SPDisplaysDataType -json`.
func ParseSystemProfiler(data []byte) (int, int, error) {
	var profiler systemProfilerOutput
	if err := json.Unmarshal(data, &profiler); err != nil {
		return 0, 0, fmt.Errorf("decoding system_profiler JSON: %w", err)
	}

	for _, gpu := range profiler.Displays {
		for _, display := range gpu.NDRVs {
			if display.Main == "spdisplays_yes" {
				return ParseResolution(display.Resolution)
			}
		}
	}

	// No main display flagged, take the first one
	if len(profiler.Displays) > 0 && len(profiler.Displays[0].NDRVs) > 0 {
		return ParseResolution(profiler.Displays[0].NDRVs[0].Resolution)
	}

	return 0, 0, fmt.Errorf("no displays found in system_profiler output")
}

// ParseXdpyinfo extracts the screen size from xdpyinfo output, which carries a line like
// "  dimensions:    1920x1080 pixels (508x285 millimeters)".
func ParseXdpyinfo(out string) (int, int, error) {
	for _, line := range strings.Split(out, "\n") {
		if !strings.Contains(line, "dimensions:") {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) >= 2 {
			return ParseResolution(parts[1])
		}
	}
	return 0, 0, fmt.Errorf("failed to parse screen resolution")
}

// ParseNetWorkArea parses the first desktop's work area from `xprop -root _NET_WORKAREA`,
// e.g. "_NET_WORKAREA(CARDINAL) = 0, 27, 1920, 1053, 0, 27, 1920, 1053".
func ParseNetWorkArea(out string) (image.Rectangle, error) {
	idx := strings.Index(out, "=")
	if idx == -1 {
		return image.Rectangle{}, fmt.Errorf("no work area in %q", strings.TrimSpace(out))
	}

	fields := strings.Split(out[idx+1:], ",")
	if len(fields) < 4 {
		return image.Rectangle{}, fmt.Errorf("work area needs 4 values, got %d", len(fields))
	}

	var v [4]int
	for i := 0; i < 4; i++ {
		n, err := strconv.Atoi(strings.TrimSpace(fields[i]))
		if err != nil {
			return image.Rectangle{}, fmt.Errorf("work area value %q: %w", fields[i], err)
		}
		v[i] = n
	}

	// x, y, width, height
	if v[2] <= 0 || v[3] <= 0 {
		return image.Rectangle{}, fmt.Errorf("empty work area")
	}
	return image.Rect(v[0], v[1], v[0]+v[2], v[1]+v[3]), nil
}

// ParseResolution parses "WxH" or "W x H" into width and height.
func ParseResolution(s string) (int, int, error) {
	matches := resolutionRegex.FindStringSubmatch(s)
	if len(matches) < 3 {
		return 0, 0, fmt.Errorf("failed to parse resolution from string: %s", s)
	}

	width, errW := strconv.Atoi(matches[1])
	height, errH := strconv.Atoi(matches[2])
	if errW != nil || errH != nil {
		return 0, 0, fmt.Errorf("failed to convert dimensions: %v, %v", errW, errH)
	}
	if width == 0 || height == 0 {
		return 0, 0, fmt.Errorf("zero dimension in %q", s)
	}

	return width, height, nil
}
